package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/jwalitptl/hospital-records/config"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

// Opener opens and verifies a single database handle.
type Opener func(ctx context.Context, driver, dsn string) (*sqlx.DB, error)

// Provider opens scoped connections to the configured store.
type Provider struct {
	cfg     config.DatabaseConfig
	open    Opener
	log     *logger.Logger
	metrics *metrics.Metrics
}

type Option func(*Provider)

// WithOpener replaces the function used to open handles.
func WithOpener(open Opener) Option {
	return func(p *Provider) { p.open = open }
}

func WithLogger(log *logger.Logger) Option {
	return func(p *Provider) { p.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

func NewProvider(cfg config.DatabaseConfig, opts ...Option) *Provider {
	p := &Provider{
		cfg:  cfg,
		open: openDB,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// openDB opens a handle limited to one physical connection and pings it, so
// a nil error means the server accepted us.
func openDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // the ping error is the one worth reporting
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Conn is a connection handed out by Acquire. Close must be called once the
// caller is done with it.
type Conn struct {
	*sqlx.DB
	database string
	once     sync.Once
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// Close releases the connection. Only the first call has an effect; a
// failure to close is logged and otherwise ignored.
func (c *Conn) Close() {
	c.once.Do(func() {
		if err := c.DB.Close(); err != nil {
			c.log.Warn(err, "failed to close database connection", "database", c.database)
		}
		c.metrics.ObserveClose()
	})
}

// Acquire opens a connection to database, or to the configured target when
// database is empty. Failed attempts are retried after RetryDelay, up to
// MaxRetries attempts in total. When every attempt fails the returned error
// is a connection AppError wrapping the last failure.
func (p *Provider) Acquire(ctx context.Context, database string) (*Conn, error) {
	if database == "" {
		database = p.cfg.Name
	}
	dsn := p.cfg.DSN(database)

	maxAttempts := p.cfg.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.cfg.RetryDelay), uint64(maxAttempts-1)),
		ctx,
	)

	var (
		db       *sqlx.DB
		attempts int
	)
	connect := func() error {
		attempts++
		var err error
		db, err = p.open(ctx, p.cfg.Driver, dsn)
		p.metrics.ObserveConnect(err)
		return err
	}
	notify := func(err error, next time.Duration) {
		p.log.Warn(err, "database connection attempt failed",
			"database", database, "attempt", attempts, "max_attempts", maxAttempts, "retry_in", next.String())
	}

	if err := backoff.RetryNotify(connect, policy, notify); err != nil {
		p.log.Error(err, "giving up on database connection", "database", database, "attempts", attempts)
		return nil, apperrors.NewConnection(attempts, err)
	}

	p.log.Debug("database connection opened", "database", database, "attempts", attempts)
	return &Conn{DB: db, database: database, log: p.log, metrics: p.metrics}, nil
}

// WithConn runs fn with a freshly acquired connection to the target database
// and closes it afterwards, whether fn returns or panics. op names the
// operation in metrics and logs.
func (p *Provider) WithConn(ctx context.Context, op string, fn func(db *sqlx.DB) error) (err error) {
	started := time.Now()
	defer func() { p.metrics.ObserveOperation(op, started, err) }()

	conn, err := p.Acquire(ctx, "")
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn.DB)
}

// WithTx runs fn inside a transaction on a scoped connection. The
// transaction commits when fn returns nil and rolls back otherwise.
func (p *Provider) WithTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	return p.WithConn(ctx, op, func(db *sqlx.DB) error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		defer func() {
			if r := recover(); r != nil {
				tx.Rollback() //nolint:errcheck // re-panicking below
				panic(r)
			}
		}()

		if err := fn(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				p.log.Warn(rbErr, "failed to roll back transaction", "operation", op)
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}

// Ping checks that the target database accepts connections and queries.
func (p *Provider) Ping(ctx context.Context) error {
	return p.WithConn(ctx, "ping", func(db *sqlx.DB) error {
		var one int
		if err := db.GetContext(ctx, &one, "SELECT 1"); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		return nil
	})
}
