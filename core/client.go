package core

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Client is the Quarters API façade. It is immutable once built and safe for
// concurrent use; each method returns an independent pending Call.
type Client struct {
	config  Config
	runtime *callRuntime
	logger  Logger
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	builder := defaultClientBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("quarters", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("quarters"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = MapError
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.callbackExecutor == nil {
		builder.callbackExecutor = InlineExecutor
	}
	if builder.callIDs == nil {
		builder.callIDs = uuid.NewString
	}
	if builder.now == nil {
		builder.now = func() time.Time { return time.Now().UTC() }
	}
	if builder.transport == nil {
		return nil, mapBuildError(builder.errorMapper, newError(
			"quarters: transport adapter is required",
			goerrors.CategoryInternal,
			ErrorInternal,
		))
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.shortURLs != nil {
		finalConfig.ShortURLs = *builder.shortURLs
	}

	client := &Client{
		config: finalConfig,
		logger: logger,
		runtime: &callRuntime{
			transport:   builder.transport,
			logger:      logger,
			metrics:     builder.metricsRecorder,
			errorMapper: builder.errorMapper,
			executor:    builder.callbackExecutor,
			callIDs:     builder.callIDs,
			now:         builder.now,
		},
	}
	logger.Debug("quarters client ready",
		"environment", string(finalConfig.Environment),
		"short_urls", finalConfig.ShortURLs,
		"transport", builder.transport.Kind(),
	)
	return client, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

func (c *Client) ClientID() string {
	if c == nil {
		return ""
	}
	return c.config.ClientID
}

func (c *Client) Environment() Environment {
	if c == nil {
		return ""
	}
	return c.config.Environment
}

// ExchangeAuthorizationCode trades the code from the consent redirect for a
// refresh and access token pair.
func (c *Client) ExchangeAuthorizationCode(code string) *Call[RefreshToken] {
	return buildCall(c, OperationExchangeCode, callInput[RefreshToken]{
		body: AuthorizationCodeBody(c.ClientID(), c.clientKey(), code),
	})
}

// RefreshAccessToken issues a new access token. Expired tokens are never
// refreshed implicitly.
func (c *Client) RefreshAccessToken(refreshToken string) *Call[AccessToken] {
	return buildCall(c, OperationRefreshAccessToken, callInput[AccessToken]{
		body: RefreshTokenBody(c.ClientID(), c.clientKey(), refreshToken),
	})
}

func (c *Client) GetUser(accessToken string) *Call[User] {
	return buildCall(c, OperationGetUser, callInput[User]{
		token: accessToken,
	})
}

// GetAccounts returns every account the API lists. The API may return more
// than one entry for a single user; all of them are surfaced.
func (c *Client) GetAccounts(accessToken string) *Call[[]Account] {
	return buildCall(c, OperationListAccounts, callInput[[]Account]{
		token: accessToken,
	})
}

func (c *Client) GetAccountBalance(accessToken string, accountAddress string) *Call[AccountBalance] {
	return buildCall(c, OperationGetAccountBalance, callInput[AccountBalance]{
		token:  accessToken,
		params: map[string]string{PathParamAddress: accountAddress},
	})
}

// CreateGuestAccount is authenticated with the app server key.
func (c *Client) CreateGuestAccount(serverKey string) *Call[GuestAccount] {
	return buildCall(c, OperationCreateGuestAccount, callInput[GuestAccount]{
		token: serverKey,
	})
}

// RequestTransfer asks the user to approve a transfer to this app. The user
// approves it on TransferAuthorizationURL.
func (c *Client) RequestTransfer(accessToken string, amount int64, description *string) *Call[TransferRequest] {
	return buildCall(c, OperationRequestUserTransfer, callInput[TransferRequest]{
		token:  accessToken,
		body:   UserTransferBody(c.ClientID(), amount, description),
		decode: decodeTransferRequest(TransferKindUser),
	})
}

// RequestServerTransfer sends quarters from the app account at appAddress to
// either userID or accountAddress.
func (c *Client) RequestServerTransfer(
	serverKey string,
	appAddress string,
	amount int64,
	userID *string,
	accountAddress *string,
) *Call[TransferRequest] {
	return buildCall(c, OperationRequestServerTransfer, callInput[TransferRequest]{
		token:  serverKey,
		params: map[string]string{PathParamAppAddress: appAddress},
		body:   ServerTransferBody(amount, userID, accountAddress),
		decode: decodeTransferRequest(TransferKindServer),
	})
}

func (c *Client) clientKey() string {
	if c == nil {
		return ""
	}
	return c.config.ClientKey
}

type callInput[T any] struct {
	token  string
	params map[string]string
	body   map[string]any
	decode Decoder[T]
}

func buildCall[T any](c *Client, operation Operation, in callInput[T]) *Call[T] {
	if c == nil {
		return newCall[T](nil, operation, TransportRequest{}, in.decode, nil)
	}
	endpoint, err := LookupEndpoint(operation)
	if err != nil {
		return newCall(c.runtime, operation, TransportRequest{}, in.decode, err)
	}
	request, err := endpoint.BuildRequest(
		c.config.Environment.APIBaseURL(),
		strings.TrimSpace(in.token),
		in.params,
		in.body,
	)
	return newCall(c.runtime, operation, request, in.decode, err)
}
