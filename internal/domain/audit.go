package domain

import (
	"strings"
	"time"
)

// AuditOperation is the SQL operation recorded by the audit triggers.
type AuditOperation string

const (
	AuditInsert AuditOperation = "INSERT"
	AuditUpdate AuditOperation = "UPDATE"
	AuditDelete AuditOperation = "DELETE"
)

func (op AuditOperation) String() string { return string(op) }

func (op AuditOperation) IsValid() bool {
	switch op {
	case AuditInsert, AuditUpdate, AuditDelete:
		return true
	}
	return false
}

// ChangedFieldsMarker is the coarse changed-fields value written for UPDATEs
// whose before/after snapshots differ. The triggers do not compute a precise
// per-column diff; consumers needing exact deltas diff the JSON snapshots.
const ChangedFieldsMarker = "multiple_fields"

// AuditContext is the actor metadata attached to a unit of work. Only the
// user ID is required; the remaining fields degrade to NULL audit columns
// when absent.
type AuditContext struct {
	UserID    string
	SessionID string
	IPAddress string
	UserAgent string
}

// Validate checks that the context is usable for auditing.
func (c AuditContext) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return NewValidationError("userId", "required")
	}
	return nil
}

// AuditLogEntry is one append-only row of the audit trail. OldValues and
// NewValues are full-row JSON snapshots; which of them is set depends on
// the operation.
type AuditLogEntry struct {
	ID            int64      `json:"id"`
	TableName     string     `json:"tableName"`
	RecordID      string     `json:"recordId"`
	Operation     AuditOperation `json:"operation"`
	OldValues     *string    `json:"oldValues"`
	NewValues     *string    `json:"newValues"`
	ChangedFields *string    `json:"changedFields"`
	UserID        *string    `json:"userId"`
	SessionID     *string    `json:"sessionId"`
	IPAddress     *string    `json:"ipAddress"`
	UserAgent     *string    `json:"userAgent"`
	Timestamp     time.Time  `json:"timestamp"`
}

// AuditLogFilter narrows an audit log listing. Zero values mean "no filter".
type AuditLogFilter struct {
	TableName string
	Operation AuditOperation
	UserID    string
	RecordID  string
	From      *time.Time
	To        *time.Time
}

// AuditLogPage is one page of a filtered audit log listing.
type AuditLogPage struct {
	Data       []AuditLogEntry `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// OperationCount and TableCount are grouped aggregates for audit statistics.
type OperationCount struct {
	Operation AuditOperation `json:"operation"`
	Count     int            `json:"count"`
}

type TableCount struct {
	TableName string `json:"tableName"`
	Count     int    `json:"count"`
}

// DayCount buckets audit activity by calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AuditStats is the aggregate view over the audit trail.
type AuditStats struct {
	Total          int              `json:"total"`
	ByTable        []TableCount     `json:"byTable"`
	ByOperation    []OperationCount `json:"byOperation"`
	RecentActivity []DayCount       `json:"recentActivity"`
}

// AuditedTables is the fixed list of tables carrying audit triggers.
var AuditedTables = []string{
	"occupations",
	"synonyms",
	"taxonomy_sources",
	"taxonomy_groups",
	"taxonomy_relationships",
	"synonym_source_mapping",
	"synonym_relationships",
	"occupation_synonyms",
	"occupation_source_mapping",
	"occupation_taxonomy_mapping",
}
