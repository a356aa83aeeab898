package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	twitch "github.com/goliatone/go-twitch"
	_ "github.com/mattn/go-sqlite3"
)

func TestFilesystem_ServesEachDialect(t *testing.T) {
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		fsys, err := Filesystem(dialect)
		if err != nil {
			t.Fatalf("filesystem %s: %v", dialect, err)
		}
		content, err := fs.ReadFile(fsys, "00001_twitch_credentials.up.sql")
		if err != nil {
			t.Fatalf("read %s credentials migration: %v", dialect, err)
		}
		if !strings.Contains(string(content), "twitch_credentials") {
			t.Fatalf("expected %s migration to create twitch_credentials", dialect)
		}
	}
	if _, err := Filesystem("mysql"); err == nil {
		t.Fatalf("expected unsupported dialect error")
	}
}

func TestCheckPairs_RejectsUnmatchedOrMissingFiles(t *testing.T) {
	complete := fstest.MapFS{}
	for _, name := range Schema {
		complete[name+".up.sql"] = &fstest.MapFile{Data: []byte("SELECT 1;")}
		complete[name+".down.sql"] = &fstest.MapFile{Data: []byte("SELECT 1;")}
	}
	if err := checkPairs(complete, "complete"); err != nil {
		t.Fatalf("expected complete schema to pass, got %v", err)
	}

	missingDown := fstest.MapFS{}
	for name, file := range complete {
		missingDown[name] = file
	}
	delete(missingDown, Schema[1]+".down.sql")
	if err := checkPairs(missingDown, "missing-down"); err == nil {
		t.Fatalf("expected missing down file to fail")
	}

	orphanDown := fstest.MapFS{}
	for name, file := range complete {
		orphanDown[name] = file
	}
	orphanDown["00003_extra.down.sql"] = &fstest.MapFile{Data: []byte("SELECT 1;")}
	if err := checkPairs(orphanDown, "orphan-down"); err == nil {
		t.Fatalf("expected down file without up file to fail")
	}

	missingSchema := fstest.MapFS{
		Schema[0] + ".up.sql":   &fstest.MapFile{Data: []byte("SELECT 1;")},
		Schema[0] + ".down.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	if err := checkPairs(missingSchema, "missing-schema"); err == nil {
		t.Fatalf("expected missing login migration to fail")
	}
}

func TestRegister_LimitsDialects(t *testing.T) {
	var calls []string
	reg, err := Register(context.Background(), func(_ context.Context, dialect string, label string, _ fs.FS) error {
		calls = append(calls, dialect)
		if label != DefaultSourceLabel {
			t.Fatalf("expected default label, got %q", label)
		}
		return nil
	}, WithDialects(" SQLite ", "sqlite"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(calls) != 1 || calls[0] != DialectSQLite {
		t.Fatalf("expected a single sqlite registration, got %v", calls)
	}
	if len(reg.Dialects) != 1 {
		t.Fatalf("expected deduped dialects, got %v", reg.Dialects)
	}
}

func TestRegister_RequiresRegisterFunc(t *testing.T) {
	if _, err := Register(context.Background(), nil); err == nil {
		t.Fatalf("expected error without register func")
	}
}

func TestRegister_SourceLabelOverride(t *testing.T) {
	var labels []string
	reg, err := Register(context.Background(), func(_ context.Context, _ string, label string, _ fs.FS) error {
		labels = append(labels, label)
		return nil
	}, WithSourceLabel("twitch-app"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.SourceLabel != "twitch-app" {
		t.Fatalf("expected label override, got %q", reg.SourceLabel)
	}
	if len(labels) != 2 || labels[0] != "twitch-app" {
		t.Fatalf("unexpected labels %v", labels)
	}
}

func TestRegister_UnknownDialectFails(t *testing.T) {
	_, err := Register(context.Background(), func(context.Context, string, string, fs.FS) error {
		t.Fatalf("register func must not run for unknown dialects")
		return nil
	}, WithDialects("mysql"))
	if err == nil {
		t.Fatalf("expected unknown dialect to fail")
	}
}

func TestMigrationPairs_ExistForBothDialects(t *testing.T) {
	root := twitch.GetMigrationsFS()
	names := []string{"00001_twitch_credentials", "00002_twitch_user_logins"}
	for _, name := range names {
		for _, dir := range []string{"data/sql/migrations/", "data/sql/migrations/sqlite/"} {
			for _, suffix := range []string{".up.sql", ".down.sql"} {
				migrationPath := dir + name + suffix
				content, err := fs.ReadFile(root, migrationPath)
				if err != nil {
					t.Fatalf("read migration %s: %v", migrationPath, err)
				}
				if strings.TrimSpace(string(content)) == "" {
					t.Fatalf("expected migration %s to have SQL content", migrationPath)
				}
			}
		}
	}
}

func TestSQLiteCredentialMigration_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-credentials?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()

	sqliteMigrations, err := fs.Sub(twitch.GetMigrationsFS(), "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}
	ctx := context.Background()
	if err := execSQLMigration(ctx, db, sqliteMigrations, "00001_twitch_credentials.up.sql"); err != nil {
		t.Fatalf("apply up: %v", err)
	}

	insert := `INSERT INTO twitch_credentials (id, target, access_token, refresh_token) VALUES (?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, insert, "a", "streamer", "token", "refresh"); err != nil {
		t.Fatalf("insert credential: %v", err)
	}
	if _, err := db.ExecContext(ctx, insert, "b", "streamer", "other", "other"); err == nil {
		t.Fatalf("expected unique target violation")
	}

	if err := execSQLMigration(ctx, db, sqliteMigrations, "00001_twitch_credentials.down.sql"); err != nil {
		t.Fatalf("apply down: %v", err)
	}
	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'twitch_credentials'").Scan(&name)
	if err != sql.ErrNoRows {
		t.Fatalf("expected table dropped, got name=%q err=%v", name, err)
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filepath.Clean(filename))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
