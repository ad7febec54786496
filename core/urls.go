package core

import (
	"net/url"
	"strings"
)

// AuthorizationURL builds the OAuth consent page. redirect_uri is omitted when
// redirectURL is nil.
func (c *Client) AuthorizationURL(redirectURL *string) string {
	var b strings.Builder
	b.WriteString(c.webBaseURL())
	b.WriteString("/oauth/authorize?response_type=code&inline=true")
	writeQuery(&b, "client_id", c.ClientID())
	if redirectURL != nil {
		writeQuery(&b, "redirect_uri", *redirectURL)
	}
	return b.String()
}

// GuestSignupURL lets a guest created through CreateGuestAccount register a
// full account.
func (c *Client) GuestSignupURL(accessToken string, redirectURL *string) string {
	var b strings.Builder
	b.WriteString(c.webBaseURL())
	b.WriteString("/guest?response_type=code&inline=true")
	writeQuery(&b, "client_id", c.ClientID())
	writeQuery(&b, "token", accessToken)
	if redirectURL != nil {
		writeQuery(&b, "redirect_uri", *redirectURL)
	}
	return b.String()
}

// TransferAuthorizationURL is the page where a user approves a transfer
// request. firebaseToken is only set for guest accounts.
func (c *Client) TransferAuthorizationURL(requestID string, firebaseToken *string) string {
	var b strings.Builder
	b.WriteString(c.webBaseURL())
	b.WriteString("/requests/")
	b.WriteString(url.PathEscape(requestID))
	b.WriteString("?inline=true")
	if firebaseToken != nil {
		writeQuery(&b, "firebase_token", *firebaseToken)
	}
	return b.String()
}

// TokenURL shows the app's current tokens to an operator.
func (c *Client) TokenURL() string {
	var b strings.Builder
	b.WriteString(c.webBaseURL())
	b.WriteString("/access-token?")
	b.WriteString("app_id=")
	b.WriteString(url.QueryEscape(c.ClientID()))
	writeQuery(&b, "app_key", c.clientKey())
	return b.String()
}

func (c *Client) webBaseURL() string {
	if c == nil {
		return ""
	}
	return c.config.WebBaseURL()
}

func writeQuery(b *strings.Builder, key string, value string) {
	b.WriteByte('&')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}
