package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-quarters/core"
)

// MutatingClient is the part of the Quarters client that issues tokens,
// creates accounts or moves quarters. *core.Client satisfies it.
type MutatingClient interface {
	ExchangeAuthorizationCode(code string) *core.Call[core.RefreshToken]
	RefreshAccessToken(refreshToken string) *core.Call[core.AccessToken]
	CreateGuestAccount(serverKey string) *core.Call[core.GuestAccount]
	RequestTransfer(accessToken string, amount int64, description *string) *core.Call[core.TransferRequest]
	RequestServerTransfer(
		serverKey string,
		appAddress string,
		amount int64,
		userID *string,
		accountAddress *string,
	) *core.Call[core.TransferRequest]
}

type ExchangeCodeCommand struct {
	client MutatingClient
}

func NewExchangeCodeCommand(client MutatingClient) *ExchangeCodeCommand {
	return &ExchangeCodeCommand{client: client}
}

func (c *ExchangeCodeCommand) Execute(ctx context.Context, msg ExchangeCodeMessage) error {
	if c == nil || c.client == nil {
		return commandDependencyError("command: exchange code client is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return executeAndStore(ctx, c.client.ExchangeAuthorizationCode(msg.Code))
}

type RefreshAccessTokenCommand struct {
	client MutatingClient
}

func NewRefreshAccessTokenCommand(client MutatingClient) *RefreshAccessTokenCommand {
	return &RefreshAccessTokenCommand{client: client}
}

func (c *RefreshAccessTokenCommand) Execute(ctx context.Context, msg RefreshAccessTokenMessage) error {
	if c == nil || c.client == nil {
		return commandDependencyError("command: refresh client is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return executeAndStore(ctx, c.client.RefreshAccessToken(msg.RefreshToken))
}

type CreateGuestAccountCommand struct {
	client MutatingClient
}

func NewCreateGuestAccountCommand(client MutatingClient) *CreateGuestAccountCommand {
	return &CreateGuestAccountCommand{client: client}
}

func (c *CreateGuestAccountCommand) Execute(ctx context.Context, msg CreateGuestAccountMessage) error {
	if c == nil || c.client == nil {
		return commandDependencyError("command: guest account client is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return executeAndStore(ctx, c.client.CreateGuestAccount(msg.ServerKey))
}

type RequestTransferCommand struct {
	client MutatingClient
}

func NewRequestTransferCommand(client MutatingClient) *RequestTransferCommand {
	return &RequestTransferCommand{client: client}
}

func (c *RequestTransferCommand) Execute(ctx context.Context, msg RequestTransferMessage) error {
	if c == nil || c.client == nil {
		return commandDependencyError("command: transfer client is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return executeAndStore(ctx, c.client.RequestTransfer(msg.AccessToken, msg.Amount, msg.Description))
}

type RequestServerTransferCommand struct {
	client MutatingClient
}

func NewRequestServerTransferCommand(client MutatingClient) *RequestServerTransferCommand {
	return &RequestServerTransferCommand{client: client}
}

func (c *RequestServerTransferCommand) Execute(ctx context.Context, msg RequestServerTransferMessage) error {
	if c == nil || c.client == nil {
		return commandDependencyError("command: server transfer client is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return executeAndStore(ctx, c.client.RequestServerTransfer(
		msg.ServerKey,
		msg.AppAddress,
		msg.Amount,
		msg.UserID,
		msg.AccountAddress,
	))
}

func executeAndStore[T any](ctx context.Context, call *core.Call[T]) error {
	if call == nil {
		return commandDependencyError("command: client returned no call")
	}
	resp, err := call.Execute(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, resp.Value)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
