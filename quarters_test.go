package quarters

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/goliatone/go-quarters/transport"
)

// redirectDoer sends every request to target, keeping path and query.
type redirectDoer struct {
	client *http.Client
	target *url.URL
}

func (d redirectDoer) Do(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = d.target.Scheme
	req.URL.Host = d.target.Host
	req.Host = d.target.Host
	return d.client.Do(req)
}

func TestNewClient_DefaultsToRESTTransport(t *testing.T) {
	client, err := NewClient(Config{ClientID: "app_1", ClientKey: "key_1"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	call := client.GetUser("tok")
	if call.Request().URL != "https://api.pocketfulofquarters.com/v1/me" {
		t.Fatalf("unexpected url %q", call.Request().URL)
	}
}

func TestClient_EndToEndOverHTTP(t *testing.T) {
	type seen struct {
		path string
		auth string
		body string
	}
	requests := make(chan seen, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- seen{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: string(body)}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/oauth/token":
			_, _ = w.Write([]byte(`{"refresh_token":"r1","access_token":"a1"}`))
		case "/v1/accounts/0xabc/balance":
			_, _ = w.Write([]byte(`{"quarters":42,"formattedQuarters":"42","ethers":1000000000000000000,"formattedEthers":"1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	target, _ := url.Parse(server.URL)
	adapter := transport.NewRESTAdapter(redirectDoer{client: server.Client(), target: target})
	client, err := NewClient(Config{ClientID: "app_1", ClientKey: "key_1", Environment: Sandbox}, WithTransport(adapter))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	tokens, err := client.ExchangeAuthorizationCode("code_1").Execute(context.Background())
	if err != nil {
		t.Fatalf("exchange code: %v", err)
	}
	first := <-requests
	if first.path != "/v1/oauth/token" || first.auth != "" {
		t.Fatalf("unexpected token request %#v", first)
	}

	balance, err := client.GetAccountBalance(tokens.Value.AccessToken, "0xabc").Execute(context.Background())
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	second := <-requests
	if second.auth != "Bearer a1" {
		t.Fatalf("expected access token from exchange, got %q", second.auth)
	}
	if balance.Value.Quarters != 42 || balance.Value.Ether().String() != "1" {
		t.Fatalf("unexpected balance %#v", balance.Value)
	}
}
