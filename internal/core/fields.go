package core

const (
	maxCodeLen = 10
	maxDescLen = 100
)

// officeFields is the declarative field table for the office import: one
// entry per spreadsheet column, in persistence order. Length limits are
// enforced for the code and description only; the remaining fields are
// free-form text.
var officeFields = []FieldSpec{
	{Header: "OfficeCode", Field: "officeCode", Column: "OfficeCode", MaxLen: maxCodeLen},
	{Header: "OfficeDesc", Field: "officeDesc", Column: "OfficeDesc", MaxLen: maxDescLen, Required: true},
	{Header: "Address1", Field: "address1", Column: "Address1"},
	{Header: "Address2", Field: "address2", Column: "Address2"},
	{Header: "Address3", Field: "address3", Column: "Address3"},
	{Header: "ContactPerson", Field: "contactPerson", Column: "ContactPerson"},
	{Header: "ContactNumber", Field: "contactNumber", Column: "ContactNumber"},
	{Header: "Email", Field: "email", Column: "Email"},
	{Header: "Website", Field: "website", Column: "Website"},
	{Header: "BankName", Field: "bankName", Column: "BankName"},
	{Header: "BankBranch", Field: "bankBranch", Column: "BankBranch"},
	{Header: "BankAccount", Field: "bankAccount", Column: "BankAccount"},
	{Header: "RegistrationNo", Field: "registrationNo", Column: "RegistrationNo"},
	{Header: "TaxNo", Field: "taxNo", Column: "TaxNo"},
}

// OfficeFields returns a copy of the field table for callers that surface
// the expected columns, such as the field-listing endpoint.
func OfficeFields() []FieldSpec {
	out := make([]FieldSpec, len(officeFields))
	copy(out, officeFields)
	return out
}

// codeSentinels are office-code values that mark a header or template row
// the reader failed to exclude. Compared uppercase.
var codeSentinels = map[string]struct{}{
	"OFFICECODE":  {},
	"OFFICE CODE": {},
	"CODE":        {},
}

// IsSentinelRow reports whether a record is a leaked header or template row.
// Such rows are skipped by validation and never persisted.
func IsSentinelRow(rec OfficeRecord) bool {
	_, ok := codeSentinels[upperASCII(rec.OfficeCode)]
	return ok
}

// upperASCII uppercases ASCII letters without allocating for the common
// already-upper case.
func upperASCII(s string) string {
	hasLower := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			hasLower = true
			break
		}
	}
	if !hasLower {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
