package quarters

import (
	"fmt"

	quarterscommand "github.com/goliatone/go-quarters/command"
	quartersquery "github.com/goliatone/go-quarters/query"
)

type CommandQueryClient interface {
	quarterscommand.MutatingClient
	quartersquery.UserReader
	quartersquery.AccountReader
}

type Commands struct {
	ExchangeCode          *quarterscommand.ExchangeCodeCommand
	RefreshAccessToken    *quarterscommand.RefreshAccessTokenCommand
	CreateGuestAccount    *quarterscommand.CreateGuestAccountCommand
	RequestTransfer       *quarterscommand.RequestTransferCommand
	RequestServerTransfer *quarterscommand.RequestServerTransferCommand
}

type Queries struct {
	GetUser           *quartersquery.GetUserQuery
	ListAccounts      *quartersquery.ListAccountsQuery
	GetAccountBalance *quartersquery.GetAccountBalanceQuery
}

// Facade exposes the client operations as go-command handlers.
type Facade struct {
	client   CommandQueryClient
	commands Commands
	queries  Queries
}

func NewFacade(client CommandQueryClient) (*Facade, error) {
	if client == nil {
		return nil, fmt.Errorf("quarters: command/query client is required")
	}
	return &Facade{
		client: client,
		commands: Commands{
			ExchangeCode:          quarterscommand.NewExchangeCodeCommand(client),
			RefreshAccessToken:    quarterscommand.NewRefreshAccessTokenCommand(client),
			CreateGuestAccount:    quarterscommand.NewCreateGuestAccountCommand(client),
			RequestTransfer:       quarterscommand.NewRequestTransferCommand(client),
			RequestServerTransfer: quarterscommand.NewRequestServerTransferCommand(client),
		},
		queries: Queries{
			GetUser:           quartersquery.NewGetUserQuery(client),
			ListAccounts:      quartersquery.NewListAccountsQuery(client),
			GetAccountBalance: quartersquery.NewGetAccountBalanceQuery(client),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Client() CommandQueryClient {
	if f == nil {
		return nil
	}
	return f.client
}
