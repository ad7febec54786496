// Package quarters is a client for the Pocketful of Quarters API. It covers
// OAuth token exchange, account and balance reads, guest accounts and
// transfer requests, and builds the web URLs users are sent to.
package quarters

import (
	"github.com/goliatone/go-quarters/core"
	"github.com/goliatone/go-quarters/transport"
)

type Config = core.Config
type Option = core.Option
type Client = core.Client
type Environment = core.Environment

type Call[T any] = core.Call[T]
type Response[T any] = core.Response[T]
type Callback[T any] = core.Callback[T]

type RefreshToken = core.RefreshToken
type AccessToken = core.AccessToken
type User = core.User
type Account = core.Account
type AccountBalance = core.AccountBalance
type GuestAccount = core.GuestAccount
type TransferRequest = core.TransferRequest

const (
	Production  = core.Production
	Development = core.Development
	Sandbox     = core.Sandbox
)

var (
	WithLogger           = core.WithLogger
	WithLoggerProvider   = core.WithLoggerProvider
	WithMetricsRecorder  = core.WithMetricsRecorder
	WithErrorMapper      = core.WithErrorMapper
	WithConfigProvider   = core.WithConfigProvider
	WithOptionsResolver  = core.WithOptionsResolver
	WithTransport        = core.WithTransport
	WithCallbackExecutor = core.WithCallbackExecutor
	WithCallIDGenerator  = core.WithCallIDGenerator
	WithShortURLs        = core.WithShortURLs
	WithNow              = core.WithNow
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func ParseEnvironment(value string) (Environment, error) {
	return core.ParseEnvironment(value)
}

// String returns a pointer to v, for optional arguments.
func String(v string) *string {
	return core.String(v)
}

// NewClient builds a client that talks to the API over HTTP unless
// WithTransport supplies another adapter.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithTransport(transport.NewRESTAdapter(nil)))
	all = append(all, opts...)
	return core.NewClient(cfg, all...)
}
