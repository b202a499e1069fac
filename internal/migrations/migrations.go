// Package migrations embeds the schema migrations for every supported database.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/sbilibin2017/users-api/internal/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// dialects maps a configured DB driver to its goose dialect and migration directory.
var dialects = map[string]struct {
	dialect string
	dir     string
}{
	"postgres": {dialect: "postgres", dir: "postgres"},
	"sqlite":   {dialect: "sqlite3", dir: "sqlite"},
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) { logger.Log.Infof(format, v...) }
func (gooseLogger) Fatalf(format string, v ...interface{}) { logger.Log.Fatalf(format, v...) }

// Up applies every pending migration for driver.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	goose.SetBaseFS(Migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(d.dialect); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, d.dir)
}
