package command

import (
	"strings"
)

const (
	TypeExchangeCode          = "quarters.command.oauth.exchange_code"
	TypeRefreshAccessToken    = "quarters.command.oauth.refresh"
	TypeCreateGuestAccount    = "quarters.command.guest.create"
	TypeRequestTransfer       = "quarters.command.transfer.request"
	TypeRequestServerTransfer = "quarters.command.transfer.request_server"
)

type ExchangeCodeMessage struct {
	Code string
}

func (ExchangeCodeMessage) Type() string { return TypeExchangeCode }

func (m ExchangeCodeMessage) Validate() error {
	if strings.TrimSpace(m.Code) == "" {
		return commandValidationError("code", "authorization code is required")
	}
	return nil
}

type RefreshAccessTokenMessage struct {
	RefreshToken string
}

func (RefreshAccessTokenMessage) Type() string { return TypeRefreshAccessToken }

func (m RefreshAccessTokenMessage) Validate() error {
	if strings.TrimSpace(m.RefreshToken) == "" {
		return commandValidationError("refresh_token", "refresh token is required")
	}
	return nil
}

type CreateGuestAccountMessage struct {
	ServerKey string
}

func (CreateGuestAccountMessage) Type() string { return TypeCreateGuestAccount }

func (m CreateGuestAccountMessage) Validate() error {
	if strings.TrimSpace(m.ServerKey) == "" {
		return commandValidationError("server_key", "server key is required")
	}
	return nil
}

type RequestTransferMessage struct {
	AccessToken string
	Amount      int64
	Description *string
}

func (RequestTransferMessage) Type() string { return TypeRequestTransfer }

func (m RequestTransferMessage) Validate() error {
	if strings.TrimSpace(m.AccessToken) == "" {
		return commandValidationError("access_token", "access token is required")
	}
	if m.Amount <= 0 {
		return commandValidationError("amount", "amount must be positive")
	}
	return nil
}

// RequestServerTransferMessage pays out from the app account. Exactly one of
// UserID or AccountAddress is normally set.
type RequestServerTransferMessage struct {
	ServerKey      string
	AppAddress     string
	Amount         int64
	UserID         *string
	AccountAddress *string
}

func (RequestServerTransferMessage) Type() string { return TypeRequestServerTransfer }

func (m RequestServerTransferMessage) Validate() error {
	if strings.TrimSpace(m.ServerKey) == "" {
		return commandValidationError("server_key", "server key is required")
	}
	if strings.TrimSpace(m.AppAddress) == "" {
		return commandValidationError("app_address", "app account address is required")
	}
	if m.Amount <= 0 {
		return commandValidationError("amount", "amount must be positive")
	}
	if m.UserID == nil && m.AccountAddress == nil {
		return commandValidationError("user", "user id or account address is required")
	}
	return nil
}
