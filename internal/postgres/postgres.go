package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	applicationName = "order-orchestrator"
	pingTimeout     = 5 * time.Second
)

// New opens the pool and checks it answers within pingTimeout.
func New(ctx context.Context, cfg config.Postgres) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	return db, nil
}

// DSN renders cfg as a libpq keyword/value string. Values are quoted so
// passwords with spaces or quotes survive.
func DSN(cfg config.Postgres) string {
	pairs := []struct{ key, value string }{
		{"host", cfg.Host},
		{"port", strconv.Itoa(cfg.Port)},
		{"user", cfg.User},
		{"password", cfg.Password},
		{"dbname", cfg.DBName},
		{"sslmode", cfg.SSLMode},
		{"application_name", applicationName},
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(quote(p.value))
	}
	return b.String()
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quote(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
