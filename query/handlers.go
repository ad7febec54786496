package query

import (
	"context"

	"github.com/goliatone/go-quarters/core"
)

type UserReader interface {
	GetUser(accessToken string) *core.Call[core.User]
}

type AccountReader interface {
	GetAccounts(accessToken string) *core.Call[[]core.Account]
	GetAccountBalance(accessToken string, accountAddress string) *core.Call[core.AccountBalance]
}

type GetUserQuery struct {
	reader UserReader
}

func NewGetUserQuery(reader UserReader) *GetUserQuery {
	return &GetUserQuery{reader: reader}
}

func (q *GetUserQuery) Query(ctx context.Context, msg GetUserMessage) (core.User, error) {
	if q == nil || q.reader == nil {
		return core.User{}, queryDependencyError("query: user reader is required")
	}
	if err := msg.Validate(); err != nil {
		return core.User{}, err
	}
	return executeValue(ctx, q.reader.GetUser(msg.AccessToken))
}

type ListAccountsQuery struct {
	reader AccountReader
}

func NewListAccountsQuery(reader AccountReader) *ListAccountsQuery {
	return &ListAccountsQuery{reader: reader}
}

// Query returns every account listed for the user, in API order.
func (q *ListAccountsQuery) Query(ctx context.Context, msg ListAccountsMessage) ([]core.Account, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: account reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return executeValue(ctx, q.reader.GetAccounts(msg.AccessToken))
}

type GetAccountBalanceQuery struct {
	reader AccountReader
}

func NewGetAccountBalanceQuery(reader AccountReader) *GetAccountBalanceQuery {
	return &GetAccountBalanceQuery{reader: reader}
}

func (q *GetAccountBalanceQuery) Query(
	ctx context.Context,
	msg GetAccountBalanceMessage,
) (core.AccountBalance, error) {
	if q == nil || q.reader == nil {
		return core.AccountBalance{}, queryDependencyError("query: account reader is required")
	}
	if err := msg.Validate(); err != nil {
		return core.AccountBalance{}, err
	}
	return executeValue(ctx, q.reader.GetAccountBalance(msg.AccessToken, msg.AccountAddress))
}

func executeValue[T any](ctx context.Context, call *core.Call[T]) (T, error) {
	var zero T
	if call == nil {
		return zero, queryDependencyError("query: reader returned no call")
	}
	resp, err := call.Execute(ctx)
	if err != nil {
		return zero, err
	}
	return resp.Value, nil
}
