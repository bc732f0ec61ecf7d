package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// duplicateDatabase is the SQLSTATE returned when CREATE DATABASE loses a
// race against another process creating the same database.
const duplicateDatabase = "42P04"

// Initialize creates the target database when it does not exist yet, then
// creates the patients, doctors and appointments tables if missing.
func Initialize(ctx context.Context, p *Provider) error {
	if err := ensureDatabase(ctx, p); err != nil {
		return err
	}

	err := p.WithTx(ctx, "schema.create", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.log.Info("database schema ready", "database", p.cfg.Name)
	return nil
}

func ensureDatabase(ctx context.Context, p *Provider) error {
	admin, err := p.Acquire(ctx, p.cfg.AdminName)
	if err != nil {
		return err
	}
	defer admin.Close()

	var exists bool
	err = admin.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, p.cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to check database %q: %w", p.cfg.Name, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot take bind parameters.
	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(p.cfg.Name)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == duplicateDatabase {
			return nil
		}
		return fmt.Errorf("failed to create database %q: %w", p.cfg.Name, err)
	}

	p.log.Info("database created", "database", p.cfg.Name)
	return nil
}
