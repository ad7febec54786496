package query

import (
	"strings"
)

const (
	TypeGetUser           = "quarters.query.user.get"
	TypeListAccounts      = "quarters.query.accounts.list"
	TypeGetAccountBalance = "quarters.query.accounts.balance"
)

type GetUserMessage struct {
	AccessToken string
}

func (GetUserMessage) Type() string { return TypeGetUser }

func (m GetUserMessage) Validate() error {
	return validateAccessToken(m.AccessToken)
}

type ListAccountsMessage struct {
	AccessToken string
}

func (ListAccountsMessage) Type() string { return TypeListAccounts }

func (m ListAccountsMessage) Validate() error {
	return validateAccessToken(m.AccessToken)
}

type GetAccountBalanceMessage struct {
	AccessToken    string
	AccountAddress string
}

func (GetAccountBalanceMessage) Type() string { return TypeGetAccountBalance }

func (m GetAccountBalanceMessage) Validate() error {
	if err := validateAccessToken(m.AccessToken); err != nil {
		return err
	}
	if strings.TrimSpace(m.AccountAddress) == "" {
		return queryValidationError("account_address", "account address is required")
	}
	return nil
}

func validateAccessToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return queryValidationError("access_token", "access token is required")
	}
	return nil
}
