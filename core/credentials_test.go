package core

import (
	"context"
	"testing"
)

func TestMemoryCredentialStore_UnknownTargetIsEmpty(t *testing.T) {
	store := NewMemoryCredentialStore(ClientIdentity{ClientID: "cid", ClientSecret: "secret"})
	token, err := store.AccessToken(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("expected no error for unknown target, got %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	if store.ClientID() != "cid" || store.ClientSecret() != "secret" {
		t.Fatalf("unexpected identity")
	}
}

func TestMemoryCredentialStore_SetTokens(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore(ClientIdentity{ClientID: "cid"},
		CredentialRecord{Target: "alice", AccessToken: "a1", RefreshToken: "r1"},
	)
	if err := store.SetAccessToken(ctx, "alice", "a2"); err != nil {
		t.Fatalf("set access token: %v", err)
	}
	if err := store.SetRefreshToken(ctx, "alice", "r2"); err != nil {
		t.Fatalf("set refresh token: %v", err)
	}
	record, ok := store.Record("alice")
	if !ok || record.AccessToken != "a2" || record.RefreshToken != "r2" {
		t.Fatalf("unexpected record %#v", record)
	}
	if err := store.SetAccessToken(ctx, " ", "x"); !IsValidation(err) {
		t.Fatalf("expected validation error for empty target, got %v", err)
	}
}

func TestMemoryCredentialStore_DefaultToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore(ClientIdentity{})
	if err := store.SetDefaultAccessToken(ctx, "app"); err != nil {
		t.Fatalf("set default token: %v", err)
	}
	token, _ := store.DefaultAccessToken(ctx)
	if token != "app" {
		t.Fatalf("expected default token, got %q", token)
	}
}

func TestMemoryLoginCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryLoginCache()
	cache.Set(ctx, "Alice", "1")
	if id, ok := cache.Get(ctx, "alice"); !ok || id != "1" {
		t.Fatalf("expected cached id, got %q %v", id, ok)
	}
	cache.Clear(ctx)
	if _, ok := cache.Get(ctx, "alice"); ok {
		t.Fatalf("expected cache cleared")
	}
}
