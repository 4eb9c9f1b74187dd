package core

// importer.go sequences the import pipeline:
//
//	ingest -> normalize -> validate -> abort on critical
//	       -> reconcile codes -> persist each row -> aggregate
//
// Persistence is row by row with no transaction around the batch; partial
// success is success. One bad row never blocks another.

import (
	"context"
	"fmt"
	"log/slog"
)

// Importer runs one office import against a configured store.
type Importer struct {
	source    RowSource
	store     Store
	countryID int
}

// NewImporter wires the pipeline to a row source and a store.
func NewImporter(source RowSource, store Store, countryID int) *Importer {
	return &Importer{source: source, store: store, countryID: countryID}
}

// Import runs the full pipeline for one spreadsheet file. It always returns
// a structured result: infrastructure faults (unreadable file, dead
// connection) become a single "general" error with zero imports, never a
// partial result.
func (imp *Importer) Import(ctx context.Context, path string) ImportResult {
	rows, err := imp.source.ReadRows(path)
	if err != nil {
		return generalFailure(fmt.Errorf("read spreadsheet: %w", err))
	}

	records := NormalizeRows(rows)
	errs := ValidateRecords(records)
	if HasCritical(errs) {
		return ImportResult{
			Errors:  errs,
			Message: fmt.Sprintf("import aborted: %d critical validation error(s), nothing imported", criticalCount(errs)),
		}
	}

	batch := persistable(records)
	generated := ReconcileCodes(batch)

	imported := 0
	for _, rec := range batch {
		if err := imp.store.InsertOffice(ctx, rec, imp.countryID); err != nil {
			slog.Warn("office insert failed", "row", rec.Row, "code", rec.OfficeCode, "error", err)
			errs = append(errs, ValidationError{
				Row:      rec.Row,
				Field:    "database",
				Value:    rec.OfficeCode,
				Message:  err.Error(),
				Severity: SeverityAdvisory,
			})
			continue
		}
		imported++
	}

	return ImportResult{
		Success:         imported > 0,
		RecordsImported: imported,
		Errors:          errs,
		Message:         fmt.Sprintf("imported %d of %d office records", imported, len(batch)),
		GeneratedCodes:  generated,
	}
}

// persistable filters the batch down to the records eligible for
// reconciliation and persistence: a description is present and the row is
// not a leaked header.
func persistable(records []OfficeRecord) []OfficeRecord {
	batch := make([]OfficeRecord, 0, len(records))
	for _, rec := range records {
		if rec.OfficeDesc == "" || IsSentinelRow(rec) {
			continue
		}
		batch = append(batch, rec)
	}
	return batch
}

// generalFailure wraps an infrastructure fault as a terminal result.
func generalFailure(err error) ImportResult {
	return ImportResult{
		Message: err.Error(),
		Errors: []ValidationError{{
			Field:    "general",
			Message:  err.Error(),
			Severity: SeverityCritical,
		}},
	}
}
