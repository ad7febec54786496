package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

type Operation string

const (
	OperationExchangeCode          Operation = "exchange_code"
	OperationRefreshAccessToken    Operation = "refresh_access_token"
	OperationGetUser               Operation = "get_user"
	OperationListAccounts          Operation = "list_accounts"
	OperationGetAccountBalance     Operation = "get_account_balance"
	OperationCreateGuestAccount    Operation = "create_guest_account"
	OperationRequestUserTransfer   Operation = "request_user_transfer"
	OperationRequestServerTransfer Operation = "request_server_transfer"
)

// AuthMode states which credential an endpoint expects in the Authorization header.
type AuthMode string

const (
	AuthNone        AuthMode = "none"
	AuthAccessToken AuthMode = "access_token"
	AuthServerKey   AuthMode = "server_key"
)

const (
	PathParamAddress    = "address"
	PathParamAppAddress = "app_address"
)

type Endpoint struct {
	Operation Operation
	Method    string
	Path      string
	Auth      AuthMode
	HasBody   bool
}

// Endpoints is the wire contract with the Quarters API.
var Endpoints = map[Operation]Endpoint{
	OperationExchangeCode: {
		Operation: OperationExchangeCode,
		Method:    http.MethodPost,
		Path:      "oauth/token",
		Auth:      AuthNone,
		HasBody:   true,
	},
	OperationRefreshAccessToken: {
		Operation: OperationRefreshAccessToken,
		Method:    http.MethodPost,
		Path:      "oauth/token",
		Auth:      AuthNone,
		HasBody:   true,
	},
	OperationGetUser: {
		Operation: OperationGetUser,
		Method:    http.MethodGet,
		Path:      "me",
		Auth:      AuthAccessToken,
	},
	OperationListAccounts: {
		Operation: OperationListAccounts,
		Method:    http.MethodGet,
		Path:      "accounts",
		Auth:      AuthAccessToken,
	},
	OperationGetAccountBalance: {
		Operation: OperationGetAccountBalance,
		Method:    http.MethodGet,
		Path:      "accounts/{" + PathParamAddress + "}/balance",
		Auth:      AuthAccessToken,
	},
	OperationCreateGuestAccount: {
		Operation: OperationCreateGuestAccount,
		Method:    http.MethodPost,
		Path:      "new-guest",
		Auth:      AuthServerKey,
	},
	OperationRequestUserTransfer: {
		Operation: OperationRequestUserTransfer,
		Method:    http.MethodPost,
		Path:      "requests",
		Auth:      AuthAccessToken,
		HasBody:   true,
	},
	OperationRequestServerTransfer: {
		Operation: OperationRequestServerTransfer,
		Method:    http.MethodPost,
		Path:      "accounts/{" + PathParamAppAddress + "}/transfer",
		Auth:      AuthServerKey,
		HasBody:   true,
	},
}

func LookupEndpoint(operation Operation) (Endpoint, error) {
	endpoint, ok := Endpoints[operation]
	if !ok {
		return Endpoint{}, newError(
			fmt.Sprintf("quarters: operation %q is not registered", operation),
			goerrors.CategoryInternal,
			ErrorInternal,
		)
	}
	return endpoint, nil
}

func (e Endpoint) Authenticated() bool {
	return e.Auth != "" && e.Auth != AuthNone
}

// ResolvePath substitutes {name} placeholders with path-escaped values.
func (e Endpoint) ResolvePath(params map[string]string) (string, error) {
	path := e.Path
	for {
		start := strings.Index(path, "{")
		if start < 0 {
			return path, nil
		}
		end := strings.Index(path[start:], "}")
		if end < 0 {
			return "", newError(
				fmt.Sprintf("quarters: malformed path template %q", e.Path),
				goerrors.CategoryInternal,
				ErrorInternal,
			)
		}
		name := path[start+1 : start+end]
		value := strings.TrimSpace(params[name])
		if value == "" {
			return "", newError(
				fmt.Sprintf("quarters: path parameter %q is required for %s", name, e.Operation),
				goerrors.CategoryBadInput,
				ErrorBadInput,
			)
		}
		path = path[:start] + url.PathEscape(value) + path[start+end+1:]
	}
}

// BuildRequest produces the transport request for this endpoint rooted at baseURL.
func (e Endpoint) BuildRequest(
	baseURL string,
	token string,
	params map[string]string,
	body map[string]any,
) (TransportRequest, error) {
	path, err := e.ResolvePath(params)
	if err != nil {
		return TransportRequest{}, err
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	req := TransportRequest{
		Method:  e.Method,
		URL:     baseURL + path,
		Headers: map[string]string{"Accept": "application/json"},
		Metadata: map[string]any{
			"operation": string(e.Operation),
			"path":      e.Path,
		},
	}
	if e.Authenticated() {
		req.Headers["Authorization"] = BearerAuthorization(token)
	}
	if e.HasBody {
		if body == nil {
			body = map[string]any{}
		}
		encoded, err := json.Marshal(body)
		if err != nil {
			return TransportRequest{}, wrapError(err, goerrors.CategoryBadInput, "quarters: encode request body", ErrorBadInput)
		}
		req.Body = encoded
		req.Headers["Content-Type"] = "application/json"
	}
	return req, nil
}

func BearerAuthorization(token string) string {
	return "Bearer " + token
}
