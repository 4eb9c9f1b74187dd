// Package core provides the business logic for the office import pipeline.
// This package has no transport or driver dependencies: the spreadsheet
// reader and the database are reached through the RowSource and Store
// interfaces, so the whole pipeline can be exercised with in-memory doubles.
package core

import (
	"context"
	"fmt"
)

// Severity classifies a validation finding. Critical findings abort the
// entire import before any row is persisted; advisory findings are reported
// and do not block the run.
type Severity string

const (
	SeverityAdvisory Severity = "advisory"
	SeverityCritical Severity = "critical"
)

// FieldSpec declares one spreadsheet column: the source header, the
// canonical field name used in validation output, the database column it
// lands in, and its constraints. Adding a field to the import is a single
// entry in officeFields.
type FieldSpec struct {
	Header   string // Column header as it appears in the spreadsheet
	Field    string // Canonical field name used in error reporting
	Column   string // Database column name
	MaxLen   int    // Maximum length, 0 for unenforced
	Required bool   // Record is excluded from persistence without it
}

// RawRow is one spreadsheet row as produced by the reader: a mapping from
// column header to raw cell value. Empty cells are present with value "".
type RawRow struct {
	Row   int // 1-based row number as seen in the source file
	Cells map[string]string
}

// RowSource reads the ordered data rows of a spreadsheet file, skipping a
// fixed number of leading rows. Implemented by internal/xlsx.
type RowSource interface {
	ReadRows(path string) ([]RawRow, error)
}

// OfficeRecord is the canonical unit of work. The empty string means the
// field is absent and binds as NULL on insert. Records are mutated only to
// fill in a missing OfficeCode during reconciliation.
type OfficeRecord struct {
	Row            int
	OfficeCode     string
	OfficeDesc     string
	Address1       string
	Address2       string
	Address3       string
	ContactPerson  string
	ContactNumber  string
	Email          string
	Website        string
	BankName       string
	BankBranch     string
	BankAccount    string
	RegistrationNo string
	TaxNo          string
}

// ValidationError is a single validation finding. Findings are data, not
// faults: they travel in ImportResult.Errors, never on the error channel.
// Field is the canonical field name, or a synthetic name such as "database"
// (per-row insert failure) or "general" (infrastructure fault).
type ValidationError struct {
	Row      int      `json:"row,omitempty"`
	Field    string   `json:"field"`
	Value    string   `json:"value,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (e ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d, %s: %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ImportResult is the terminal output of one import run.
type ImportResult struct {
	Success         bool              `json:"success"`
	RecordsImported int               `json:"recordsImported"`
	Errors          []ValidationError `json:"errors,omitempty"`
	Message         string            `json:"message"`
	GeneratedCodes  map[string]string `json:"generatedCodes,omitempty"`
}

// ConnectionParams describe the target SQL Server database. Port and
// CountryID default to 1433 and 1 when zero.
type ConnectionParams struct {
	Server    string `json:"server"`
	Database  string `json:"database"`
	User      string `json:"user"`
	Password  string `json:"password"`
	Port      int    `json:"port"`
	CountryID int    `json:"countryId"`
}

// TableCounts holds the row counts reported by the status operation.
type TableCounts struct {
	Offices   int64 `json:"offices"`
	Employees int64 `json:"employees"`
	Clients   int64 `json:"clients"`
}

// Store is the persistence surface the pipeline talks to. Implemented by
// internal/store against SQL Server; tests use an in-memory double.
type Store interface {
	// InsertOffice writes one office row with a freshly generated primary
	// key. Absent optional fields bind as NULL.
	InsertOffice(ctx context.Context, rec OfficeRecord, countryID int) error

	// ExecBatch executes one batch of a licensing script verbatim.
	ExecBatch(ctx context.Context, batch string) error

	// TableCounts returns the office/employee/client row counts.
	TableCounts(ctx context.Context) (TableCounts, error)

	Ping(ctx context.Context) error
	Close() error
}

// ConnectFunc dials a Store. Wired to store.Connect in main; tests
// substitute a fake.
type ConnectFunc func(ctx context.Context, p ConnectionParams) (Store, error)
