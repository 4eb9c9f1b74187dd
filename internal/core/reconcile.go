package core

// reconcile.go fills in missing office codes within one batch.
//
// The reconciler runs only on a batch with no critical validation findings.
// Candidates are derived from the description and deduplicated against every
// code in the batch, including codes assigned earlier in the same pass, so
// no two records in one run ever share a code. Uniqueness against codes
// already in the database is deliberately not checked here; such conflicts
// surface as per-row insert failures.

import "fmt"

// codeStemLen is how much of the base candidate survives when a 2-digit
// collision counter is appended.
const codeStemLen = 8

// ReconcileCodes assigns a code to every record that lacks one, in file
// order, mutating the batch in place. Returns the mapping from office
// description to generated code.
func ReconcileCodes(records []OfficeRecord) map[string]string {
	taken := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.OfficeCode != "" {
			taken[rec.OfficeCode] = struct{}{}
		}
	}

	generated := make(map[string]string)
	for i := range records {
		if records[i].OfficeCode != "" {
			continue
		}
		code := nextCode(records[i].OfficeDesc, taken)
		records[i].OfficeCode = code
		taken[code] = struct{}{}
		generated[records[i].OfficeDesc] = code
	}
	return generated
}

// DeriveBaseCode builds the candidate code for a description: uppercase,
// ASCII letters and digits only, first 10 characters.
func DeriveBaseCode(desc string) string {
	buf := make([]byte, 0, maxCodeLen)
	for i := 0; i < len(desc) && len(buf) < maxCodeLen; i++ {
		c := desc[i]
		switch {
		case c >= 'a' && c <= 'z':
			buf = append(buf, c-'a'+'A')
		case (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// nextCode returns the first candidate not present in taken: the base code
// itself, or the 8-character stem with a zero-padded counter probed upward
// from 01.
func nextCode(desc string, taken map[string]struct{}) string {
	base := DeriveBaseCode(desc)
	if _, ok := taken[base]; !ok {
		return base
	}

	stem := base
	if len(stem) > codeStemLen {
		stem = stem[:codeStemLen]
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%02d", stem, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
