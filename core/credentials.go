package core

import (
	"context"
	"strings"
	"sync"
)

type MemoryCredentialStore struct {
	identity ClientIdentity

	mu           sync.RWMutex
	records      map[string]CredentialRecord
	defaultToken string
}

func NewMemoryCredentialStore(identity ClientIdentity, records ...CredentialRecord) *MemoryCredentialStore {
	store := &MemoryCredentialStore{
		identity: identity,
		records:  make(map[string]CredentialRecord, len(records)),
	}
	for _, record := range records {
		target := strings.TrimSpace(record.Target)
		if target == "" {
			continue
		}
		record.Target = target
		store.records[target] = record
	}
	return store
}

func (s *MemoryCredentialStore) ClientID() string {
	return s.identity.ClientID
}

func (s *MemoryCredentialStore) ClientSecret() string {
	return s.identity.ClientSecret
}

func (s *MemoryCredentialStore) AccessToken(_ context.Context, target string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[strings.TrimSpace(target)].AccessToken, nil
}

func (s *MemoryCredentialStore) RefreshToken(_ context.Context, target string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[strings.TrimSpace(target)].RefreshToken, nil
}

func (s *MemoryCredentialStore) SetAccessToken(_ context.Context, target string, token string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return NewBadInputError("core: credential target is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record := s.records[target]
	record.Target = target
	record.AccessToken = token
	s.records[target] = record
	return nil
}

func (s *MemoryCredentialStore) SetRefreshToken(_ context.Context, target string, token string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return NewBadInputError("core: credential target is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record := s.records[target]
	record.Target = target
	record.RefreshToken = token
	s.records[target] = record
	return nil
}

func (s *MemoryCredentialStore) SetTokens(_ context.Context, target string, pair TokenPair) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return NewBadInputError("core: credential target is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record := s.records[target]
	record.Target = target
	record.AccessToken = pair.AccessToken
	record.RefreshToken = pair.RefreshToken
	s.records[target] = record
	return nil
}

func (s *MemoryCredentialStore) DefaultAccessToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultToken, nil
}

func (s *MemoryCredentialStore) SetDefaultAccessToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.defaultToken = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryCredentialStore) Record(target string) (CredentialRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[strings.TrimSpace(target)]
	return record, ok
}
