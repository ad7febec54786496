package gocommand

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-command"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	quarters "github.com/goliatone/go-quarters"
	quarterscommand "github.com/goliatone/go-quarters/command"
	"github.com/goliatone/go-quarters/devkit"
	quartersquery "github.com/goliatone/go-quarters/query"
)

type okMessage struct{}

func (okMessage) Type() string { return "quarters.command.ok" }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "" }

type failingMessage struct{}

func (failingMessage) Type() string { return "quarters.command.fail" }

func (failingMessage) Validate() error { return errors.New("invalid payload") }

func newFacade(t *testing.T, scripts ...devkit.Script) *quarters.Facade {
	t.Helper()
	client, err := quarters.NewClient(quarters.Config{ClientID: "app_1", ClientKey: "key_1"},
		quarters.WithTransport(devkit.NewFakeTransport(scripts...)))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	facade, err := quarters.NewFacade(client)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	return facade
}

func TestValidateMessageContract(t *testing.T) {
	if err := ValidateMessageContract(okMessage{}); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := ValidateMessageContract(invalidMessage{}); err == nil {
		t.Fatalf("expected empty type to fail contract validation")
	}
	if err := ValidateMessageContract(failingMessage{}); err == nil {
		t.Fatalf("expected Validate() failure to bubble")
	}
	if err := ValidateMessageContract(quarterscommand.ExchangeCodeMessage{}); err == nil {
		t.Fatalf("expected missing code to fail")
	}
}

func TestRegisterFacade_DispatchAndQuery(t *testing.T) {
	facade := newFacade(t,
		devkit.Raw(http.StatusOK, `{"access_token":"a1"}`),
		devkit.Raw(http.StatusOK, `[{"id":"acc_1","address":"0x1"}]`),
	)
	adapter := NewRegistryAdapter(command.NewRegistry())

	subs, err := RegisterFacade(adapter, facade)
	if err != nil {
		t.Fatalf("register facade: %v", err)
	}
	defer subs.Unsubscribe()
	if len(subs) != 8 {
		t.Fatalf("expected eight subscriptions, got %d", len(subs))
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	if err := Dispatch(context.Background(), quarterscommand.RefreshAccessTokenMessage{RefreshToken: "r1"}); err != nil {
		t.Fatalf("dispatch refresh: %v", err)
	}

	accounts, err := Query[quartersquery.ListAccountsMessage, []quarters.Account](
		context.Background(),
		quartersquery.ListAccountsMessage{AccessToken: "a1"},
	)
	if err != nil {
		t.Fatalf("query accounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Address != "0x1" {
		t.Fatalf("unexpected accounts %#v", accounts)
	}
}

func TestRegisterFacade_RequiresFacade(t *testing.T) {
	if _, err := RegisterFacade(NewRegistryAdapter(nil), nil); err == nil {
		t.Fatalf("expected error for nil facade")
	}
}

func TestQueueResolverMirrorsTransferCommands(t *testing.T) {
	facade := newFacade(t)
	adapter := NewRegistryAdapter(command.NewRegistry())
	queueRegistry := jobqueuecommand.NewRegistry()

	if err := adapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	if !adapter.HasResolver("queue") {
		t.Fatalf("expected queue resolver to be registered")
	}
	if err := adapter.RegisterCommand(facade.Commands().RequestServerTransfer); err != nil {
		t.Fatalf("register command: %v", err)
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	if _, ok := queueRegistry.Get(quarterscommand.TypeRequestServerTransfer); !ok {
		t.Fatalf("expected server transfer command to be mirrored into queue registry")
	}
}
