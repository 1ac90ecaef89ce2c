// Package iodb connects pokedb to PostgreSQL. One pgx pool per process
// serves raw queries, the schema manager and the GORM store.
package iodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// maxConns is small because every worker process opens its own pool.
const maxConns = 4

type pgxOperator struct {
	appName string
	pool    *pgxpool.Pool
	gormDB  *gorm.DB
}

// Option configures the operator.
type Option func(*pgxOperator)

// OptAppName sets application_name reported to PostgreSQL.
func OptAppName(s string) Option {
	return func(p *pgxOperator) {
		if s != "" {
			p.appName = s
		}
	}
}

// NewPgxOperator creates a database operator. It does not connect.
func NewPgxOperator(opts ...Option) db.Operator {
	res := &pgxOperator{appName: config.AppName}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// connString renders the settings as a keyword/value connection
// string. Values are quoted so passwords may contain any character.
func connString(cfg *config.DatabaseConfig, appName string) string {
	quote := func(s string) string {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `'`, `\'`)
		return "'" + s + "'"
	}
	parts := []string{
		"host=" + quote(cfg.Host),
		fmt.Sprintf("port=%d", cfg.Port),
		"user=" + quote(cfg.User),
		"dbname=" + quote(cfg.Database),
		"sslmode=" + quote(cfg.SSLMode),
		"application_name=" + quote(appName),
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quote(cfg.Password))
	}
	return strings.Join(parts, " ")
}

func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	poolConfig, err := pgxpool.ParseConfig(connString(cfg, p.appName))
	if err != nil {
		return ConnectionError(cfg, err)
	}
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg, err)
	}

	p.pool = pool
	return nil
}

func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	p.gormDB = nil
	return nil
}

func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// GORM opens a GORM handle over the pool on the first call and
// returns the same handle afterwards.
func (p *pgxOperator) GORM() (*gorm.DB, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}
	if p.gormDB != nil {
		return p.gormDB, nil
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(p.pool)}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	p.gormDB = gormDB
	return gormDB, nil
}

func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	tables, err := p.tables(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if t == tableName {
			return true, nil
		}
	}
	return false, nil
}

func (p *pgxOperator) HasTables(ctx context.Context) (bool, error) {
	tables, err := p.tables(ctx)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

// DropAllTables drops every table of the public schema in one
// statement.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	tables, err := p.tables(ctx)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return nil
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = pgx.Identifier{t}.Sanitize()
	}
	q := "DROP TABLE IF EXISTS " + strings.Join(names, ", ") + " CASCADE"
	if _, err = p.pool.Exec(ctx, q); err != nil {
		return DropTablesError(tables, err)
	}
	return nil
}

// tables lists tables of the public schema.
func (p *pgxOperator) tables(ctx context.Context) ([]string, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	rows, err := p.pool.Query(ctx,
		`SELECT tablename FROM pg_tables WHERE schemaname = 'public'
		 ORDER BY tablename`)
	if err != nil {
		return nil, QueryTablesError(err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, QueryTablesError(err)
	}
	return res, nil
}
