package command

import (
	"context"
	"errors"
	"testing"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/helix"
)

type stubAuthenticator struct {
	exchangeFn func(ctx context.Context, code string, redirectURI string) (core.TokenPair, error)
	clientFn   func(ctx context.Context, scopes []string) (core.TokenPair, error)
	refreshFn  func(ctx context.Context, target string) (string, error)
}

func (s stubAuthenticator) ExchangeAuthorizationCode(ctx context.Context, code string, redirectURI string) (core.TokenPair, error) {
	return s.exchangeFn(ctx, code, redirectURI)
}

func (s stubAuthenticator) ClientCredentials(ctx context.Context, scopes []string) (core.TokenPair, error) {
	return s.clientFn(ctx, scopes)
}

func (s stubAuthenticator) Refresh(ctx context.Context, target string) (string, error) {
	return s.refreshFn(ctx, target)
}

type stubChannels struct {
	updateFn     func(ctx context.Context, loginOrID string, update helix.ChannelUpdate, target string) error
	commercialFn func(ctx context.Context, loginOrID string, length int, target string) (*helix.Commercial, error)
}

func (s stubChannels) Update(ctx context.Context, loginOrID string, update helix.ChannelUpdate, target string) error {
	return s.updateFn(ctx, loginOrID, update, target)
}

func (s stubChannels) StartCommercial(ctx context.Context, loginOrID string, length int, target string) (*helix.Commercial, error) {
	return s.commercialFn(ctx, loginOrID, length, target)
}

type stubTags struct {
	replaceFn func(ctx context.Context, broadcaster string, tagIDs []string, target string) error
}

func (s stubTags) ReplaceStreamTags(ctx context.Context, broadcaster string, tagIDs []string, target string) error {
	return s.replaceFn(ctx, broadcaster, tagIDs, target)
}

func TestExchangeCodeCommand_StoresTokensForTarget(t *testing.T) {
	store := core.NewMemoryCredentialStore(core.ClientIdentity{ClientID: "cid", ClientSecret: "secret"})
	auth := stubAuthenticator{
		exchangeFn: func(_ context.Context, code string, redirectURI string) (core.TokenPair, error) {
			if code != "abc" || redirectURI != "http://localhost/cb" {
				t.Fatalf("unexpected exchange input %q %q", code, redirectURI)
			}
			return core.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	}

	cmd := NewExchangeCodeCommand(auth, store)
	collector := gocmd.NewResult[core.TokenPair]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, ExchangeCodeMessage{Code: "abc", RedirectURI: "http://localhost/cb", Target: "streamer"}); err != nil {
		t.Fatalf("execute exchange: %v", err)
	}
	result, ok := collector.Load()
	if !ok || result.AccessToken != "access" {
		t.Fatalf("expected stored token pair result, got %#v ok=%v", result, ok)
	}
	record, ok := store.Record("streamer")
	if !ok || record.AccessToken != "access" || record.RefreshToken != "refresh" {
		t.Fatalf("expected tokens stored for target, got %#v", record)
	}
}

func TestExchangeCodeCommand_PropagatesExchangeError(t *testing.T) {
	failure := core.NewAuthenticationError(400, "invalid code")
	auth := stubAuthenticator{
		exchangeFn: func(context.Context, string, string) (core.TokenPair, error) {
			return core.TokenPair{}, failure
		},
	}
	err := NewExchangeCodeCommand(auth, nil).Execute(context.Background(), ExchangeCodeMessage{Code: "x", RedirectURI: "y"})
	if !errors.Is(err, failure) {
		t.Fatalf("expected exchange error, got %v", err)
	}
}

func TestClientCredentialsCommand_StoresPair(t *testing.T) {
	auth := stubAuthenticator{
		clientFn: func(_ context.Context, scopes []string) (core.TokenPair, error) {
			if len(scopes) != 1 || scopes[0] != "user:read:email" {
				t.Fatalf("unexpected scopes %v", scopes)
			}
			return core.TokenPair{AccessToken: "app"}, nil
		},
	}
	collector := gocmd.NewResult[core.TokenPair]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	if err := NewClientCredentialsCommand(auth).Execute(ctx, ClientCredentialsMessage{Scopes: []string{"user:read:email"}}); err != nil {
		t.Fatalf("execute client credentials: %v", err)
	}
	if result, _ := collector.Load(); result.AccessToken != "app" || result.RefreshToken != "" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestRefreshCommand_StoresNewRefreshToken(t *testing.T) {
	auth := stubAuthenticator{
		refreshFn: func(_ context.Context, target string) (string, error) {
			if target != "streamer" {
				t.Fatalf("unexpected target %q", target)
			}
			return "new-refresh", nil
		},
	}
	collector := gocmd.NewResult[string]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	if err := NewRefreshCommand(auth).Execute(ctx, RefreshMessage{Target: "streamer"}); err != nil {
		t.Fatalf("execute refresh: %v", err)
	}
	if result, _ := collector.Load(); result != "new-refresh" {
		t.Fatalf("unexpected refresh result %q", result)
	}
}

func TestChannelCommands_DelegateToService(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		called := false
		channels := stubChannels{
			updateFn: func(_ context.Context, loginOrID string, update helix.ChannelUpdate, target string) error {
				called = true
				if loginOrID != "streamer" || update.Title != "hello" || target != "editor" {
					t.Fatalf("unexpected update input %q %#v %q", loginOrID, update, target)
				}
				return nil
			},
		}
		msg := UpdateChannelMessage{Channel: "streamer", Update: helix.ChannelUpdate{Title: "hello"}, Target: "editor"}
		if err := NewUpdateChannelCommand(channels).Execute(context.Background(), msg); err != nil {
			t.Fatalf("execute update: %v", err)
		}
		if !called {
			t.Fatalf("expected update invocation")
		}
	})

	t.Run("start commercial", func(t *testing.T) {
		channels := stubChannels{
			commercialFn: func(_ context.Context, _ string, length int, _ string) (*helix.Commercial, error) {
				return &helix.Commercial{Length: length, RetryAfter: 480}, nil
			},
		}
		collector := gocmd.NewResult[helix.Commercial]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := NewStartCommercialCommand(channels).Execute(ctx, StartCommercialMessage{Channel: "44", Length: 60}); err != nil {
			t.Fatalf("execute commercial: %v", err)
		}
		if result, _ := collector.Load(); result.Length != 60 || result.RetryAfter != 480 {
			t.Fatalf("unexpected commercial result %#v", result)
		}
	})

	t.Run("replace stream tags", func(t *testing.T) {
		var got []string
		tags := stubTags{
			replaceFn: func(_ context.Context, _ string, tagIDs []string, _ string) error {
				got = tagIDs
				return nil
			},
		}
		if err := NewReplaceStreamTagsCommand(tags).Execute(context.Background(), ReplaceStreamTagsMessage{Broadcaster: "44", TagIDs: []string{"t1", "t2"}}); err != nil {
			t.Fatalf("execute replace tags: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected tags forwarded, got %v", got)
		}
	})
}

func TestMessages_ValidateReturnsRichError(t *testing.T) {
	cases := map[string]interface{ Validate() error }{
		"exchange code":    ExchangeCodeMessage{RedirectURI: "x"},
		"refresh":          RefreshMessage{},
		"update channel":   UpdateChannelMessage{Channel: "streamer"},
		"start commercial": StartCommercialMessage{Channel: "streamer", Length: 45},
		"replace tags":     ReplaceStreamTagsMessage{},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			err := msg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var rich *goerrors.Error
			if !goerrors.As(err, &rich) {
				t.Fatalf("expected go-errors envelope, got %T", err)
			}
			if rich.Category != goerrors.CategoryValidation {
				t.Fatalf("expected validation category, got %q", rich.Category)
			}
			if rich.TextCode != core.TwitchErrorBadInput {
				t.Fatalf("expected %q text code, got %q", core.TwitchErrorBadInput, rich.TextCode)
			}
		})
	}
	if err := (ClientCredentialsMessage{}).Validate(); err != nil {
		t.Fatalf("expected client credentials message to be valid, got %v", err)
	}
}

func TestCommands_NilDependencyReturnsRichError(t *testing.T) {
	var cmd *RefreshCommand
	err := cmd.Execute(context.Background(), RefreshMessage{Target: "x"})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}

	if err := NewExchangeCodeCommand(stubAuthenticator{
		exchangeFn: func(context.Context, string, string) (core.TokenPair, error) { return core.TokenPair{}, nil },
	}, nil).Execute(context.Background(), ExchangeCodeMessage{Code: "c", RedirectURI: "r", Target: "t"}); err == nil {
		t.Fatalf("expected missing store error when target is set")
	}
}
