package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-quarters/core"
)

var (
	_ gocmd.Querier[GetUserMessage, core.User]                     = (*GetUserQuery)(nil)
	_ gocmd.Querier[ListAccountsMessage, []core.Account]           = (*ListAccountsQuery)(nil)
	_ gocmd.Querier[GetAccountBalanceMessage, core.AccountBalance] = (*GetAccountBalanceQuery)(nil)

	_ UserReader    = (*core.Client)(nil)
	_ AccountReader = (*core.Client)(nil)
)
