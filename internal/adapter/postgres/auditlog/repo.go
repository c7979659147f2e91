// Package auditlog implements the read-only repository over the trigger-fed
// audit trail. Rows are written exclusively by the database triggers; this
// package only lists and aggregates them.
package auditlog

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Repo provides audit log reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const auditColumns = `id, table_name, record_id, operation, old_values, new_values,
    changed_fields, user_id, session_id, ip_address, user_agent, timestamp`

// List returns one page of audit entries matching the filter, newest first,
// with the total count matching the filter ignoring pagination.
func (r *Repo) List(ctx context.Context, filter domain.AuditLogFilter, limit, offset int) ([]domain.AuditLogEntry, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	base := sq.Select().From("taxonomy_audit_log").PlaceholderFormat(sq.Dollar)

	if filter.TableName != "" {
		base = base.Where(sq.Eq{"table_name": filter.TableName})
	}
	if filter.Operation != "" {
		base = base.Where(sq.Eq{"operation": string(filter.Operation)})
	}
	if filter.UserID != "" {
		base = base.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.RecordID != "" {
		base = base.Where(sq.Eq{"record_id": filter.RecordID})
	}
	if filter.From != nil {
		base = base.Where(sq.GtOrEq{"timestamp": *filter.From})
	}
	if filter.To != nil {
		base = base.Where(sq.LtOrEq{"timestamp": *filter.To})
	}

	countSQL, countArgs, err := base.Column("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	listSQL, listArgs, err := base.
		Column(auditColumns).
		OrderBy("timestamp DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, total, nil
}

const recordHistorySQL = `
SELECT ` + auditColumns + `
FROM taxonomy_audit_log
WHERE table_name = $1 AND record_id = $2
ORDER BY timestamp DESC, id DESC`

// RecordHistory returns the full audit trail of one record, newest first.
func (r *Repo) RecordHistory(ctx context.Context, tableName, recordID string) ([]domain.AuditLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, recordHistorySQL, tableName, recordID)
	if err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	return entries, nil
}

const totalSQL = `SELECT count(*) FROM taxonomy_audit_log`

const byTableSQL = `
SELECT table_name, count(*)
FROM taxonomy_audit_log
GROUP BY table_name
ORDER BY count(*) DESC`

const byOperationSQL = `
SELECT operation, count(*)
FROM taxonomy_audit_log
GROUP BY operation
ORDER BY count(*) DESC`

const recentActivitySQL = `
SELECT to_char(timestamp::date, 'YYYY-MM-DD') AS day, count(*)
FROM taxonomy_audit_log
WHERE timestamp >= now() - make_interval(days => $1)
GROUP BY day
ORDER BY day`

// Stats aggregates the audit trail: total rows, per-table and per-operation
// counts, and per-day activity over the trailing window.
func (r *Repo) Stats(ctx context.Context, recentDays int) (*domain.AuditStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	stats := &domain.AuditStats{
		ByTable:        []domain.TableCount{},
		ByOperation:    []domain.OperationCount{},
		RecentActivity: []domain.DayCount{},
	}

	if err := querier.QueryRow(ctx, totalSQL).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("audit total: %w", err)
	}

	rows, err := querier.Query(ctx, byTableSQL)
	if err != nil {
		return nil, fmt.Errorf("audit by table: %w", err)
	}
	for rows.Next() {
		var c domain.TableCount
		if err := rows.Scan(&c.TableName, &c.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan table count: %w", err)
		}
		stats.ByTable = append(stats.ByTable, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit by table: %w", err)
	}

	rows, err = querier.Query(ctx, byOperationSQL)
	if err != nil {
		return nil, fmt.Errorf("audit by operation: %w", err)
	}
	for rows.Next() {
		var (
			op string
			c  domain.OperationCount
		)
		if err := rows.Scan(&op, &c.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan operation count: %w", err)
		}
		c.Operation = domain.AuditOperation(op)
		stats.ByOperation = append(stats.ByOperation, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit by operation: %w", err)
	}

	rows, err = querier.Query(ctx, recentActivitySQL, recentDays)
	if err != nil {
		return nil, fmt.Errorf("audit recent activity: %w", err)
	}
	for rows.Next() {
		var c domain.DayCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		stats.RecentActivity = append(stats.RecentActivity, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit recent activity: %w", err)
	}

	return stats, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEntries(rows pgx.Rows) ([]domain.AuditLogEntry, error) {
	var result []domain.AuditLogEntry
	for rows.Next() {
		var (
			e  domain.AuditLogEntry
			op string
		)
		err := rows.Scan(
			&e.ID, &e.TableName, &e.RecordID, &op, &e.OldValues, &e.NewValues,
			&e.ChangedFields, &e.UserID, &e.SessionID, &e.IPAddress, &e.UserAgent,
			&e.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		e.Operation = domain.AuditOperation(op)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.AuditLogEntry{}
	}

	return result, nil
}
