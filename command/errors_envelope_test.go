package command

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-quarters/core"
)

func TestMessages_ValidateReturnsRichError(t *testing.T) {
	messages := map[string]interface{ Validate() error }{
		"exchange code":   ExchangeCodeMessage{},
		"refresh":         RefreshAccessTokenMessage{},
		"guest":           CreateGuestAccountMessage{},
		"transfer":        RequestTransferMessage{AccessToken: "tok"},
		"server transfer": RequestServerTransferMessage{ServerKey: "srv"},
	}
	for name, msg := range messages {
		err := msg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) {
			t.Fatalf("%s: expected go-errors envelope, got %T", name, err)
		}
		if rich.Category != goerrors.CategoryValidation {
			t.Fatalf("%s: expected validation category, got %q", name, rich.Category)
		}
		if rich.TextCode != core.ErrorBadInput {
			t.Fatalf("%s: expected %q text code, got %q", name, core.ErrorBadInput, rich.TextCode)
		}
	}
}

func TestExchangeCodeCommand_NilClientReturnsRichError(t *testing.T) {
	var cmd *ExchangeCodeCommand
	err := cmd.Execute(context.Background(), ExchangeCodeMessage{Code: "c"})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
