package core

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RefreshToken is returned by the authorization code exchange.
type RefreshToken struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

// AccessToken is returned by the refresh token exchange.
type AccessToken struct {
	AccessToken string `json:"access_token"`
}

type User struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

type Account struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Created string `json:"created"`
	UserID  string `json:"userId"`
}

// CreatedAt parses the ISO-8601 creation timestamp.
func (a Account) CreatedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(a.Created))
}

type AccountBalance struct {
	Quarters          int64  `json:"quarters"`
	FormattedQuarters string `json:"formattedQuarters"`
	Ethers            int64  `json:"ethers"`
	FormattedEthers   string `json:"formattedEthers"`
}

const weiExponent = -18

// Ether converts the integer ethers balance (wei) into ether units.
func (b AccountBalance) Ether() decimal.Decimal {
	return decimal.New(b.Ethers, weiExponent)
}

// GuestAccount is an Account created with the app server key. Its access token
// is scoped to the guest and feeds GuestSignupURL.
type GuestAccount struct {
	Account
	AccessToken   string `json:"access_token"`
	FirebaseToken string `json:"firebase_token"`
}

type TransferKind string

const (
	TransferKindUser   TransferKind = "user"
	TransferKindServer TransferKind = "server"
)

// TransferRequest covers both transfer flows. Server-initiated requests carry
// the settlement transaction hash; user-initiated ones never do.
type TransferRequest struct {
	Kind            TransferKind
	ID              string
	TransactionHash string
}

func (t TransferRequest) IsServer() bool {
	return t.Kind == TransferKindServer
}

type transferRequestPayload struct {
	ID        string `json:"id"`
	RequestID string `json:"requestId"`
	TxID      string `json:"txId"`
}

func decodeTransferRequest(kind TransferKind) Decoder[TransferRequest] {
	return func(body []byte) (TransferRequest, error) {
		if len(strings.TrimSpace(string(body))) == 0 {
			return TransferRequest{Kind: kind}, nil
		}
		var payload transferRequestPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return TransferRequest{}, err
		}
		out := TransferRequest{Kind: kind, ID: payload.ID}
		if out.ID == "" {
			out.ID = payload.RequestID
		}
		if kind == TransferKindServer {
			out.TransactionHash = payload.TxID
		}
		return out, nil
	}
}

// Decoder turns a successful response body into a model.
type Decoder[T any] func(body []byte) (T, error)

// JSONDecoder decodes into T, ignoring unknown fields.
func JSONDecoder[T any]() Decoder[T] {
	return func(body []byte) (T, error) {
		var out T
		if len(strings.TrimSpace(string(body))) == 0 {
			return out, nil
		}
		err := json.Unmarshal(body, &out)
		return out, err
	}
}
