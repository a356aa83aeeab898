package gocommand

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-command"

	twitchcommand "github.com/goliatone/go-twitch/command"
	"github.com/goliatone/go-twitch/core"
	twitchquery "github.com/goliatone/go-twitch/query"
)

type okMessage struct{}

func (okMessage) Type() string { return "twitch.command.ok" }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "" }

type failingMessage struct{}

func (failingMessage) Type() string { return "twitch.command.fail" }

func (failingMessage) Validate() error { return errors.New("invalid payload") }

type dispatchMessage struct {
	ID string
}

func (dispatchMessage) Type() string { return "twitch.command.test" }

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
	if err := ValidateMessageContract(twitchcommand.RefreshMessage{}); err == nil {
		t.Fatalf("expected refresh message without target to fail")
	}
}

func TestRegistryAndDispatchWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	executed := 0
	customResolverCalled := 0

	cmd := command.CommandFunc[dispatchMessage](func(context.Context, dispatchMessage) error {
		executed++
		return nil
	})

	sub, err := RegisterAndSubscribe(adapter, cmd)
	if err != nil {
		t.Fatalf("register and subscribe: %v", err)
	}
	defer sub.Unsubscribe()
	if err := adapter.AddResolver("custom", func(any, command.CommandMeta, *command.Registry) error {
		customResolverCalled++
		return nil
	}); err != nil {
		t.Fatalf("add resolver: %v", err)
	}
	if !adapter.HasResolver(" custom ") {
		t.Fatalf("expected custom resolver to be registered")
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}
	if customResolverCalled == 0 {
		t.Fatalf("expected resolver hook to run during initialization")
	}

	if err := Dispatch(context.Background(), dispatchMessage{ID: "m1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if executed != 1 {
		t.Fatalf("expected command execution count=1, got %d", executed)
	}
}

func TestNilAdapterRejectsRegistration(t *testing.T) {
	var adapter *RegistryAdapter
	if adapter.Registry() != nil {
		t.Fatalf("expected nil registry for nil adapter")
	}
	if adapter.HasResolver("custom") {
		t.Fatalf("expected nil adapter to report no resolvers")
	}
	cmd := command.CommandFunc[dispatchMessage](func(context.Context, dispatchMessage) error { return nil })
	if _, err := RegisterAndSubscribe(adapter, cmd); err == nil {
		t.Fatalf("expected registration on nil adapter to fail")
	}
	if _, err := RegisterHandlers(adapter, Handlers{Refresh: twitchcommand.NewRefreshCommand(nil)}); err == nil {
		t.Fatalf("expected handler bundle on nil adapter to fail")
	}
}

type lastErrorSource struct {
	last *core.LastError
}

func (s lastErrorSource) LastError() *core.LastError { return s.last }

func TestRegisterHandlersSubscribesQueries(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	subs, err := RegisterHandlers(adapter, Handlers{
		LastError: twitchquery.NewLastErrorQuery(map[string]twitchquery.LastErrorSource{
			core.FamilyKraken: lastErrorSource{last: &core.LastError{Code: 404, Message: "not found", Kind: core.ErrorKindAPI}},
		}),
	})
	if err != nil {
		t.Fatalf("register handlers: %v", err)
	}
	defer subs.Unsubscribe()
	if len(subs) != 1 {
		t.Fatalf("expected nil handlers to be skipped, got %d subscriptions", len(subs))
	}

	last, err := Query[twitchquery.LastErrorMessage, *core.LastError](context.Background(), twitchquery.LastErrorMessage{Family: "Kraken"})
	if err != nil {
		t.Fatalf("query last error: %v", err)
	}
	if last == nil || last.Code != 404 || last.Kind != core.ErrorKindAPI {
		t.Fatalf("unexpected last error %#v", last)
	}
}
