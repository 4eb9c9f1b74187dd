package core

// validation.go applies the office business rules to a normalized batch.
//
// Each rule carries an explicit severity. A critical finding (missing
// description, duplicate code) aborts the whole import before any row is
// persisted; advisory findings (missing code, length overruns) are reported
// alongside the result and never block the run.

import "fmt"

// ValidateRecords evaluates the batch in file order and returns every
// finding. Row numbers on the records already reflect the source file's
// numbering.
//
// Duplicate detection is first-seen-wins: the first occurrence of a code
// claims it, every later occurrence is flagged.
func ValidateRecords(records []OfficeRecord) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]struct{})

	for _, rec := range records {
		if IsSentinelRow(rec) {
			continue
		}

		if rec.OfficeCode == "" {
			errs = append(errs, ValidationError{
				Row:      rec.Row,
				Field:    "officeCode",
				Message:  "office code is required and will be auto-generated",
				Severity: SeverityAdvisory,
			})
		} else {
			if _, dup := seen[rec.OfficeCode]; dup {
				errs = append(errs, ValidationError{
					Row:      rec.Row,
					Field:    "officeCode",
					Value:    rec.OfficeCode,
					Message:  fmt.Sprintf("duplicate office code %q in batch", rec.OfficeCode),
					Severity: SeverityCritical,
				})
			} else {
				seen[rec.OfficeCode] = struct{}{}
			}
			if len(rec.OfficeCode) > maxCodeLen {
				errs = append(errs, ValidationError{
					Row:      rec.Row,
					Field:    "officeCode",
					Value:    rec.OfficeCode,
					Message:  fmt.Sprintf("office code exceeds %d characters", maxCodeLen),
					Severity: SeverityAdvisory,
				})
			}
		}

		if rec.OfficeDesc == "" {
			errs = append(errs, ValidationError{
				Row:      rec.Row,
				Field:    "officeDesc",
				Message:  "office description is required",
				Severity: SeverityCritical,
			})
		} else if len(rec.OfficeDesc) > maxDescLen {
			errs = append(errs, ValidationError{
				Row:      rec.Row,
				Field:    "officeDesc",
				Value:    rec.OfficeDesc,
				Message:  fmt.Sprintf("office description exceeds %d characters", maxDescLen),
				Severity: SeverityAdvisory,
			})
		}
	}

	return errs
}

// HasCritical reports whether any finding aborts the run.
func HasCritical(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// criticalCount returns the number of critical findings, for the abort
// message.
func criticalCount(errs []ValidationError) int {
	n := 0
	for _, e := range errs {
		if e.Severity == SeverityCritical {
			n++
		}
	}
	return n
}
