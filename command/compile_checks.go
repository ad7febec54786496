package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-quarters/core"
)

var (
	_ gocmd.Commander[ExchangeCodeMessage]          = (*ExchangeCodeCommand)(nil)
	_ gocmd.Commander[RefreshAccessTokenMessage]    = (*RefreshAccessTokenCommand)(nil)
	_ gocmd.Commander[CreateGuestAccountMessage]    = (*CreateGuestAccountCommand)(nil)
	_ gocmd.Commander[RequestTransferMessage]       = (*RequestTransferCommand)(nil)
	_ gocmd.Commander[RequestServerTransferMessage] = (*RequestServerTransferCommand)(nil)

	_ MutatingClient = (*core.Client)(nil)
)
