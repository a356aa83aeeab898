package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"

	twitch "github.com/goliatone/go-twitch"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	DefaultSourceLabel = "go-twitch"
)

// Schema lists the migration stems every dialect must ship as an up/down pair.
var Schema = []string{
	"00001_twitch_credentials",
	"00002_twitch_user_logins",
}

var dialectDirs = map[string]string{
	DialectPostgres: "data/sql/migrations",
	DialectSQLite:   "data/sql/migrations/sqlite",
}

type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

type Registration struct {
	SourceLabel string
	Dialects    []string
}

type Option func(*Registration)

func WithSourceLabel(label string) Option {
	return func(r *Registration) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			r.SourceLabel = trimmed
		}
	}
}

func WithDialects(dialects ...string) Option {
	return func(r *Registration) {
		next := make([]string, 0, len(dialects))
		for _, dialect := range dialects {
			dialect = strings.ToLower(strings.TrimSpace(dialect))
			if dialect != "" && !slices.Contains(next, dialect) {
				next = append(next, dialect)
			}
		}
		if len(next) > 0 {
			r.Dialects = next
		}
	}
}

// Filesystem returns the migrations of one dialect after checking that every
// schema stem is present and that each up file has its down file.
func Filesystem(dialect string) (fs.FS, error) {
	dir, ok := dialectDirs[strings.ToLower(strings.TrimSpace(dialect))]
	if !ok {
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
	sub, err := fs.Sub(twitch.GetMigrationsFS(), dir)
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve %s: %w", dir, err)
	}
	if err := checkPairs(sub, dir); err != nil {
		return nil, err
	}
	return sub, nil
}

func Register(ctx context.Context, registerFn RegisterFunc, opts ...Option) (Registration, error) {
	reg := Registration{
		SourceLabel: DefaultSourceLabel,
		Dialects:    []string{DialectPostgres, DialectSQLite},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&reg)
		}
	}
	if registerFn == nil {
		return reg, fmt.Errorf("migrations: register function is required")
	}

	for _, dialect := range reg.Dialects {
		fsys, err := Filesystem(dialect)
		if err != nil {
			return reg, err
		}
		if err := registerFn(ctx, dialect, reg.SourceLabel, fsys); err != nil {
			return reg, fmt.Errorf("migrations: register %s: %w", dialect, err)
		}
	}
	return reg, nil
}

func checkPairs(fsys fs.FS, dir string) error {
	ups, err := stems(fsys, ".up.sql")
	if err != nil {
		return fmt.Errorf("migrations: list %s: %w", dir, err)
	}
	downs, err := stems(fsys, ".down.sql")
	if err != nil {
		return fmt.Errorf("migrations: list %s: %w", dir, err)
	}
	for _, name := range Schema {
		if !slices.Contains(ups, name) {
			return fmt.Errorf("migrations: %s is missing %s.up.sql", dir, name)
		}
	}
	for _, name := range ups {
		if !slices.Contains(downs, name) {
			return fmt.Errorf("migrations: %s has no %s.down.sql", dir, name)
		}
	}
	for _, name := range downs {
		if !slices.Contains(ups, name) {
			return fmt.Errorf("migrations: %s has no %s.up.sql", dir, name)
		}
	}
	return nil
}

func stems(fsys fs.FS, suffix string) ([]string, error) {
	matches, err := fs.Glob(fsys, "*"+suffix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, strings.TrimSuffix(match, suffix))
	}
	sort.Strings(out)
	return out, nil
}
