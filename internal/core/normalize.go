package core

import "strings"

// nullSentinel is the textual literal some spreadsheet exports write into
// cells that should be empty.
const nullSentinel = "null"

// NormalizeRow maps a raw spreadsheet row onto an OfficeRecord using the
// office field table. Only configured columns are carried over; a cell whose
// value equals the literal "null" (any casing) becomes absent. No validation
// happens here: normalization is a pure function of its input.
func NormalizeRow(raw RawRow) OfficeRecord {
	rec := OfficeRecord{Row: raw.Row}
	for _, spec := range officeFields {
		setField(&rec, spec.Field, normalizeNull(raw.Cells[spec.Header]))
	}
	return rec
}

// NormalizeRows normalizes a batch in order.
func NormalizeRows(rows []RawRow) []OfficeRecord {
	records := make([]OfficeRecord, len(rows))
	for i, raw := range rows {
		records[i] = NormalizeRow(raw)
	}
	return records
}

// normalizeNull converts the textual null sentinel to the absent value.
// Everything else, including the already-empty cell, passes through
// unchanged.
func normalizeNull(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), nullSentinel) {
		return ""
	}
	return v
}

// setField assigns a canonical field by name. The field table and this
// switch are the only two places a new column touches.
func setField(rec *OfficeRecord, field, value string) {
	switch field {
	case "officeCode":
		rec.OfficeCode = value
	case "officeDesc":
		rec.OfficeDesc = value
	case "address1":
		rec.Address1 = value
	case "address2":
		rec.Address2 = value
	case "address3":
		rec.Address3 = value
	case "contactPerson":
		rec.ContactPerson = value
	case "contactNumber":
		rec.ContactNumber = value
	case "email":
		rec.Email = value
	case "website":
		rec.Website = value
	case "bankName":
		rec.BankName = value
	case "bankBranch":
		rec.BankBranch = value
	case "bankAccount":
		rec.BankAccount = value
	case "registrationNo":
		rec.RegistrationNo = value
	case "taxNo":
		rec.TaxNo = value
	}
}
