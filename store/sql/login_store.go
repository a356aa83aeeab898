package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-twitch/core"
)

// LoginStore is a LoginCache that survives restarts. Lookup failures read as
// misses so a broken database only costs an extra API call.
type LoginStore struct {
	db     *bun.DB
	logger core.Logger
}

func NewLoginStore(db *bun.DB, logger core.Logger) (*LoginStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &LoginStore{db: db, logger: logger}, nil
}

func (s *LoginStore) Get(ctx context.Context, login string) (string, bool) {
	key := core.NormalizeLogin(login)
	if key == "" {
		return "", false
	}
	record := &userLoginRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.login = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.warn(ctx, "login lookup failed", key, err)
		}
		return "", false
	}
	return record.UserID, true
}

func (s *LoginStore) Set(ctx context.Context, login string, id string) {
	key := core.NormalizeLogin(login)
	if key == "" || id == "" {
		return
	}
	record := &userLoginRecord{Login: key, UserID: id, CreatedAt: time.Now().UTC()}
	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (login) DO UPDATE").
		Set("user_id = EXCLUDED.user_id").
		Exec(ctx)
	if err != nil {
		s.warn(ctx, "login store failed", key, err)
	}
}

func (s *LoginStore) Clear(ctx context.Context) {
	_, err := s.db.NewDelete().
		Model((*userLoginRecord)(nil)).
		Where("1 = 1").
		Exec(ctx)
	if err != nil {
		s.warn(ctx, "login cache clear failed", "", err)
	}
}

func (s *LoginStore) warn(ctx context.Context, msg string, login string, err error) {
	core.LogWithLevel(ctx, s.logger, "warn", msg, map[string]any{
		"login": login,
		"error": err.Error(),
	})
}
