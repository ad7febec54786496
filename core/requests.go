package core

const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeRefreshToken      = "refresh_token"
)

// String returns a pointer to v, for optional arguments.
func String(v string) *string {
	return &v
}

// StringValue returns the pointed-to value or "" when p is nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func AuthorizationCodeBody(clientID, clientSecret, code string) map[string]any {
	return map[string]any{
		"client_id":     clientID,
		"client_secret": clientSecret,
		"grant_type":    GrantTypeAuthorizationCode,
		"code":          code,
	}
}

func RefreshTokenBody(clientID, clientSecret, refreshToken string) map[string]any {
	return map[string]any{
		"client_id":     clientID,
		"client_secret": clientSecret,
		"grant_type":    GrantTypeRefreshToken,
		"refresh_token": refreshToken,
	}
}

// UserTransferBody omits description when nil; an empty string is sent as is.
func UserTransferBody(appID string, amount int64, description *string) map[string]any {
	body := map[string]any{
		"appId":  appID,
		"tokens": amount,
	}
	if description != nil {
		body["description"] = *description
	}
	return body
}

// ServerTransferBody targets either a user id or an account address. Sending
// neither is left for the server to reject.
func ServerTransferBody(amount int64, userID *string, accountAddress *string) map[string]any {
	body := map[string]any{
		"amount": amount,
	}
	if userID != nil {
		body["user"] = *userID
	}
	if accountAddress != nil {
		body["address"] = *accountAddress
	}
	return body
}
