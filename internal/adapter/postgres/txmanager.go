package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// TxManager manages database transactions using the context pattern.
// A nested RunInTx call that finds a transaction already in the context
// executes its callback inline; the outer call owns commit and rollback.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default).
// On success: commits.
// On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// RunInTxWithAudit executes fn within a database transaction after setting
// the transaction-local audit variables read by the audit triggers. The
// variables vanish at commit or rollback, so a rolled-back unit of work
// leaves no audit rows and no actor state behind.
func (m *TxManager) RunInTxWithAudit(ctx context.Context, actx domain.AuditContext, fn func(ctx context.Context) error) error {
	if err := actx.Validate(); err != nil {
		return err
	}
	return m.run(ctx, &actx, fn)
}

func (m *TxManager) run(ctx context.Context, actx *domain.AuditContext, fn func(ctx context.Context) error) (err error) {
	// Already inside a transaction: execute inline, outer owns the commit.
	if txFromCtx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if actx != nil {
		if err := setAuditContext(ctx, tx, *actx); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}

	txCtx := withTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// setAuditContext installs SET LOCAL app.* variables for the audit triggers.
// SET LOCAL does not support parameter binding, so values are escaped by
// doubling single quotes before interpolation.
func setAuditContext(ctx context.Context, tx pgx.Tx, actx domain.AuditContext) error {
	vars := []struct {
		name  string
		value string
	}{
		{"app.current_user_id", actx.UserID},
		{"app.session_id", actx.SessionID},
		{"app.ip_address", actx.IPAddress},
		{"app.user_agent", actx.UserAgent},
	}

	for _, v := range vars {
		if v.value == "" {
			continue
		}
		stmt := fmt.Sprintf("SET LOCAL %s = '%s'", v.name, escapeQuotes(v.value))
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("set audit context %s: %w", v.name, err)
		}
	}

	return nil
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
