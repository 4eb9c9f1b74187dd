// Package store implements core.Store against SQL Server using sqlx and the
// go-mssqldb driver.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/mvanrooyen/officeloader/internal/core"
)

// Store wraps a sqlx handle to the target database. All access to the
// database goes through this single shared handle; callers serialize use.
type Store struct {
	db *sqlx.DB
}

// Connect dials SQL Server with the given parameters and verifies the
// connection. Satisfies core.ConnectFunc.
func Connect(ctx context.Context, p core.ConnectionParams) (core.Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlserver", dsn(p))
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%d/%s: %w", p.Server, p.Port, p.Database, err)
	}
	return &Store{db: db}, nil
}

// dsn builds the sqlserver:// connection URL.
func dsn(p core.ConnectionParams) string {
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Server + ":" + strconv.Itoa(p.Port),
		RawQuery: url.Values{"database": {p.Database}}.Encode(),
	}
	return u.String()
}

const insertOfficeSQL = `INSERT INTO Office (
	OfficeID, CountryID, OfficeCode, OfficeDesc,
	Address1, Address2, Address3,
	ContactPerson, ContactNumber, Email, Website,
	BankName, BankBranch, BankAccount,
	RegistrationNo, TaxNo
) VALUES (
	@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8,
	@p9, @p10, @p11, @p12, @p13, @p14, @p15, @p16
)`

// InsertOffice writes one office row. The primary key is a fresh UUID;
// absent optional fields bind as NULL.
func (s *Store) InsertOffice(ctx context.Context, rec core.OfficeRecord, countryID int) error {
	_, err := s.db.ExecContext(ctx, insertOfficeSQL,
		uuid.NewString(), countryID,
		nullable(rec.OfficeCode), rec.OfficeDesc,
		nullable(rec.Address1), nullable(rec.Address2), nullable(rec.Address3),
		nullable(rec.ContactPerson), nullable(rec.ContactNumber),
		nullable(rec.Email), nullable(rec.Website),
		nullable(rec.BankName), nullable(rec.BankBranch), nullable(rec.BankAccount),
		nullable(rec.RegistrationNo), nullable(rec.TaxNo),
	)
	if err != nil {
		return fmt.Errorf("insert office %q: %w", rec.OfficeCode, err)
	}
	return nil
}

// ExecBatch executes one batch of a licensing script verbatim.
func (s *Store) ExecBatch(ctx context.Context, batch string) error {
	if _, err := s.db.ExecContext(ctx, batch); err != nil {
		return fmt.Errorf("execute batch: %w", err)
	}
	return nil
}

// TableCounts returns the row counts for the three status tables.
func (s *Store) TableCounts(ctx context.Context) (core.TableCounts, error) {
	var c core.TableCounts
	for _, q := range []struct {
		table string
		dest  *int64
	}{
		{"Office", &c.Offices},
		{"Employee", &c.Employees},
		{"Client", &c.Clients},
	} {
		if err := s.db.GetContext(ctx, q.dest, "SELECT COUNT(*) FROM "+q.table); err != nil {
			return core.TableCounts{}, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return c, nil
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
