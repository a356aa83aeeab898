package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-twitch/core"
)

// CredentialStore persists per-target token pairs in twitch_credentials. The
// client identity is configuration and stays in memory.
type CredentialStore struct {
	db       *bun.DB
	repo     repository.Repository[*credentialRecord]
	identity core.ClientIdentity
}

func NewCredentialStore(db *bun.DB, identity core.ClientIdentity) (*CredentialStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*credentialRecord](db, credentialHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid credential repository wiring: %w", err)
		}
	}
	return &CredentialStore{db: db, repo: repo, identity: identity}, nil
}

func (s *CredentialStore) ClientID() string {
	return s.identity.ClientID
}

func (s *CredentialStore) ClientSecret() string {
	return s.identity.ClientSecret
}

// AccessToken returns "" for unknown targets.
func (s *CredentialStore) AccessToken(ctx context.Context, target string) (string, error) {
	record, err := s.find(ctx, target)
	if err != nil || record == nil {
		return "", err
	}
	return record.AccessToken, nil
}

func (s *CredentialStore) RefreshToken(ctx context.Context, target string) (string, error) {
	record, err := s.find(ctx, target)
	if err != nil || record == nil {
		return "", err
	}
	return record.RefreshToken, nil
}

func (s *CredentialStore) SetAccessToken(ctx context.Context, target string, token string) error {
	target, err := requireTarget(target)
	if err != nil {
		return err
	}
	return s.upsert(ctx, target, func(record *credentialRecord) {
		record.AccessToken = token
	})
}

func (s *CredentialStore) SetRefreshToken(ctx context.Context, target string, token string) error {
	target, err := requireTarget(target)
	if err != nil {
		return err
	}
	return s.upsert(ctx, target, func(record *credentialRecord) {
		record.RefreshToken = token
	})
}

// SetTokens stores both halves of a pair in one transaction.
func (s *CredentialStore) SetTokens(ctx context.Context, target string, pair core.TokenPair) error {
	target, err := requireTarget(target)
	if err != nil {
		return err
	}
	return s.upsert(ctx, target, func(record *credentialRecord) {
		record.AccessToken = pair.AccessToken
		record.RefreshToken = pair.RefreshToken
	})
}

func (s *CredentialStore) DefaultAccessToken(ctx context.Context) (string, error) {
	return s.AccessToken(ctx, defaultTargetKey)
}

func (s *CredentialStore) SetDefaultAccessToken(ctx context.Context, token string) error {
	return s.upsert(ctx, defaultTargetKey, func(record *credentialRecord) {
		record.AccessToken = token
	})
}

func (s *CredentialStore) Records(ctx context.Context) ([]core.CredentialRecord, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: credential store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.target <> ?", defaultTargetKey)
		}),
		repository.OrderBy("target ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.CredentialRecord, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

// Delete removes a target. Unknown targets are ignored.
func (s *CredentialStore) Delete(ctx context.Context, target string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: credential store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*credentialRecord)(nil)).
		Where("target = ?", strings.TrimSpace(target)).
		Exec(ctx)
	return err
}

func (s *CredentialStore) find(ctx context.Context, target string) (*credentialRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: credential store is not configured")
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, nil
	}
	return findCredentialTx(ctx, s.db, target)
}

func (s *CredentialStore) upsert(ctx context.Context, target string, apply func(*credentialRecord)) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: credential store is not configured")
	}
	now := time.Now().UTC()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := findCredentialTx(ctx, tx, target)
		if err != nil {
			return err
		}
		if record == nil {
			record = &credentialRecord{
				ID:        uuid.NewString(),
				Target:    target,
				CreatedAt: now,
				UpdatedAt: now,
			}
			apply(record)
			_, err = tx.NewInsert().Model(record).Exec(ctx)
			return err
		}
		apply(record)
		record.UpdatedAt = now
		_, err = tx.NewUpdate().Model(record).Where("id = ?", record.ID).Exec(ctx)
		return err
	})
}

func findCredentialTx(ctx context.Context, db bun.IDB, target string) (*credentialRecord, error) {
	record := &credentialRecord{}
	err := db.NewSelect().
		Model(record).
		Where("?TableAlias.target = ?", target).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func requireTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", core.NewBadInputError("sqlstore: credential target is required")
	}
	if target == defaultTargetKey {
		return "", core.NewBadInputError("sqlstore: credential target " + defaultTargetKey + " is reserved")
	}
	return target, nil
}
