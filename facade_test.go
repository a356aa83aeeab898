package twitch

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-twitch/client"
	twitchcommand "github.com/goliatone/go-twitch/command"
	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/devkit"
	"github.com/goliatone/go-twitch/providers/helix"
	twitchquery "github.com/goliatone/go-twitch/query"
)

func newTestService(t *testing.T, scripts ...devkit.TransportScript) (*Service, *devkit.FakeTransport) {
	t.Helper()
	fake := devkit.NewFakeTransport(scripts...)
	store := core.NewMemoryCredentialStore(
		core.ClientIdentity{ClientID: "cid", ClientSecret: "secret"},
		core.CredentialRecord{Target: "streamer", AccessToken: "streamer-token", RefreshToken: "streamer-refresh"},
	)
	svc, err := NewService(DefaultConfig(),
		WithCredentialStore(store),
		WithClientOptions(client.WithTransport(fake), client.WithoutRefresh()),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, fake
}

func TestSetup_RequiresClientIDWithoutStore(t *testing.T) {
	_, err := Setup(context.Background(), Config{})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetup_RejectsInvalidBaseURL(t *testing.T) {
	_, err := Setup(context.Background(), Config{ClientID: "cid", HelixBaseURL: "not-a-url"})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetup_RuntimeConfigReachesClients(t *testing.T) {
	fake := devkit.NewFakeTransport(devkit.JSON(http.StatusOK, map[string]any{"data": []any{}}))
	svc, err := Setup(context.Background(),
		Config{ClientID: "cid", HelixBaseURL: "https://helix.example.test/v2", DefaultTarget: "streamer"},
		WithClientOptions(client.WithTransport(fake), client.WithoutRefresh()),
	)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if svc.Config().KrakenBaseURL != core.DefaultKrakenBaseURL {
		t.Fatalf("expected kraken default base url, got %q", svc.Config().KrakenBaseURL)
	}
	if svc.Store().ClientID() != "cid" {
		t.Fatalf("expected memory store seeded from config, got %q", svc.Store().ClientID())
	}
	if svc.Helix().API().DefaultTarget() != "streamer" {
		t.Fatalf("expected default target from config")
	}

	if _, err := svc.Helix().Users().GetUsers(context.Background(), "twitchdev"); err != nil {
		t.Fatalf("get users: %v", err)
	}
	req := fake.Last()
	if devkit.Path(req) != "/v2/users" {
		t.Fatalf("expected configured helix base url, got %s", req.URL)
	}
}

func TestService_LastErrorByFamily(t *testing.T) {
	svc, _ := newTestService(t, devkit.Status(http.StatusInternalServerError))

	if svc.LastError(core.FamilyKraken) != nil {
		t.Fatalf("expected no kraken failure")
	}
	if _, err := svc.Kraken().Streams().Info(context.Background(), "44"); err == nil {
		t.Fatalf("expected server error")
	}
	last := svc.LastError("Kraken")
	if last == nil || last.Code != http.StatusInternalServerError {
		t.Fatalf("expected kraken last error 500, got %#v", last)
	}
	if svc.LastError(core.FamilyHelix) != nil {
		t.Fatalf("expected helix client to keep its own last error")
	}
	if svc.LastError("clips") != nil {
		t.Fatalf("expected unknown family to read nil")
	}
}

func TestNewFacade_WiresCommandsAndQueries(t *testing.T) {
	svc, _ := newTestService(t)

	facade, err := NewFacade(svc)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	commands := facade.Commands()
	if commands.ExchangeCode == nil || commands.Refresh == nil || commands.UpdateChannel == nil {
		t.Fatalf("expected command handlers to be wired")
	}
	queries := facade.Queries()
	if queries.GetUsers == nil || queries.LastError == nil || queries.SearchCategories == nil {
		t.Fatalf("expected query handlers to be wired")
	}
	handlers := facade.Handlers()
	if handlers.ReplaceStreamTags != commands.ReplaceStreamTags || handlers.GetStreams != queries.GetStreams {
		t.Fatalf("expected handler bundle to reuse facade handlers")
	}
	if facade.Service() != svc {
		t.Fatalf("expected facade to keep its service")
	}

	if _, err := NewFacade(nil); err == nil {
		t.Fatalf("expected nil service to be rejected")
	}
}

func TestFacade_CommandAndQueryDelegation(t *testing.T) {
	svc, fake := newTestService(t,
		devkit.Status(http.StatusNoContent),
		devkit.JSON(http.StatusOK, map[string]any{"data": []any{
			map[string]any{"id": "509658", "name": "Just Chatting"},
		}}),
	)
	facade, err := NewFacade(svc)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	if err := facade.Commands().ReplaceStreamTags.Execute(context.Background(), twitchcommand.ReplaceStreamTagsMessage{
		Broadcaster: "44",
		TagIDs:      []string{"t1"},
		Target:      "streamer",
	}); err != nil {
		t.Fatalf("replace stream tags: %v", err)
	}
	req := fake.Last()
	if req.Method != http.MethodPut || devkit.Path(req) != "/helix/streams/tags" {
		t.Fatalf("unexpected tag request %s %s", req.Method, req.URL)
	}
	if req.Headers["Authorization"] != "Bearer streamer-token" {
		t.Fatalf("expected streamer token, got %q", req.Headers["Authorization"])
	}

	categories, err := facade.Queries().SearchCategories.Query(context.Background(), twitchquery.SearchCategoriesMessage{Query: "chatting"})
	if err != nil {
		t.Fatalf("search categories: %v", err)
	}
	if len(categories) != 1 || categories[0] != (helix.Category{ID: "509658", Name: "Just Chatting"}) {
		t.Fatalf("unexpected categories %#v", categories)
	}

	last, err := facade.Queries().LastError.Query(context.Background(), twitchquery.LastErrorMessage{Family: core.FamilyAuth})
	if err != nil {
		t.Fatalf("last error query: %v", err)
	}
	if last != nil {
		t.Fatalf("expected auth client without failures, got %#v", last)
	}
}
