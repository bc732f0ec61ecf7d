package database

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/config"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

func testConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:     "postgres",
		Name:       "HospitalDB",
		Server:     "localhost",
		Port:       5432,
		User:       "postgres",
		AdminName:  "postgres",
		Encrypt:    "no",
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return sqlx.NewDb(db, "postgres"), mock
}

func staticOpener(db *sqlx.DB) Opener {
	return func(context.Context, string, string) (*sqlx.DB, error) { return db, nil }
}

func TestAcquire_RetriesUntilSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	calls := 0
	opener := func(_ context.Context, driver, dsn string) (*sqlx.DB, error) {
		calls++
		assert.Equal(t, "postgres", driver)
		assert.Contains(t, dsn, "dbname=HospitalDB")
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return db, nil
	}
	m := metrics.NewMetrics("hospital", "test")
	p := NewProvider(testConfig(), WithOpener(opener), WithMetrics(m))

	conn, err := p.Acquire(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConnectionAttempts.WithLabelValues("error")))

	mock.ExpectClose()
	conn.Close()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquire_ExhaustsRetries(t *testing.T) {
	calls := 0
	lastErr := errors.New("attempt 3 failed")
	opener := func(context.Context, string, string) (*sqlx.DB, error) {
		calls++
		if calls == 3 {
			return nil, lastErr
		}
		return nil, errors.New("connection refused")
	}
	p := NewProvider(testConfig(), WithOpener(opener))

	conn, err := p.Acquire(context.Background(), "")
	assert.Nil(t, conn)
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, apperrors.IsConnection(err))
	assert.ErrorIs(t, err, lastErr)
}

func TestAcquire_AtLeastOneAttempt(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRetries = 0
	calls := 0
	opener := func(context.Context, string, string) (*sqlx.DB, error) {
		calls++
		return nil, errors.New("refused")
	}

	_, err := NewProvider(cfg, WithOpener(opener)).Acquire(context.Background(), "")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestAcquire_WaitsBetweenAttempts(t *testing.T) {
	cfg := testConfig()
	cfg.RetryDelay = 20 * time.Millisecond
	opener := func(context.Context, string, string) (*sqlx.DB, error) {
		return nil, errors.New("refused")
	}

	started := time.Now()
	_, err := NewProvider(cfg, WithOpener(opener)).Acquire(context.Background(), "")
	assert.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 40*time.Millisecond)
}

func TestAcquire_NamedDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	var gotDSN string
	opener := func(_ context.Context, _ string, dsn string) (*sqlx.DB, error) {
		gotDSN = dsn
		return db, nil
	}

	conn, err := NewProvider(testConfig(), WithOpener(opener)).Acquire(context.Background(), "postgres")
	require.NoError(t, err)
	assert.Contains(t, gotDSN, "dbname=postgres")

	mock.ExpectClose()
	conn.Close()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConn_CloseExactlyOnce(t *testing.T) {
	db, mock := newMockDB(t)
	m := metrics.NewMetrics("hospital", "test")
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)), WithMetrics(m))

	conn, err := p.Acquire(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseConnections))

	mock.ExpectClose()
	conn.Close()
	conn.Close()

	assert.Equal(t, 0.0, testutil.ToFloat64(m.DatabaseConnections))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConn_CloseFailureIsSwallowed(t *testing.T) {
	db, mock := newMockDB(t)
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf, JSON: true})
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)), WithLogger(log))

	conn, err := p.Acquire(context.Background(), "")
	require.NoError(t, err)

	mock.ExpectClose().WillReturnError(errors.New("socket gone"))
	assert.NotPanics(t, conn.Close)
	assert.Contains(t, buf.String(), "failed to close database connection")
}

func TestWithConn_ClosesOnError(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)))
	boom := errors.New("boom")

	mock.ExpectClose()
	err := p.WithConn(context.Background(), "test", func(*sqlx.DB) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConn_ClosesOnPanic(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)))

	mock.ExpectClose()
	assert.Panics(t, func() {
		_ = p.WithConn(context.Background(), "test", func(*sqlx.DB) error { panic("kaboom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConn_ConnectionFailureSkipsFn(t *testing.T) {
	opener := func(context.Context, string, string) (*sqlx.DB, error) {
		return nil, errors.New("refused")
	}
	p := NewProvider(testConfig(), WithOpener(opener))

	called := false
	err := p.WithConn(context.Background(), "test", func(*sqlx.DB) error {
		called = true
		return nil
	})
	assert.True(t, apperrors.IsConnection(err))
	assert.False(t, called)
}

func TestWithTx_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	m := metrics.NewMetrics("hospital", "test")
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)), WithMetrics(m))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patients")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectClose()

	err := p.WithTx(context.Background(), "patient.delete", func(tx *sqlx.Tx) error {
		_, err := tx.Exec("DELETE FROM patients WHERE id = $1", 1)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("patient.delete", "success")))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)))
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectClose()

	err := p.WithTx(context.Background(), "test", func(*sqlx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)))

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectClose()

	assert.Panics(t, func() {
		_ = p.WithTx(context.Background(), "test", func(*sqlx.Tx) error { panic("kaboom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)))

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
	mock.ExpectClose()

	err := p.WithTx(context.Background(), "test", func(*sqlx.Tx) error { return nil })
	assert.ErrorContains(t, err, "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvider(testConfig(), WithOpener(staticOpener(db)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectClose()

	assert.NoError(t, p.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
