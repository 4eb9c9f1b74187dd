package core

// doubles_test.go holds the in-memory RowSource and Store used across the
// pipeline tests.

import (
	"context"
	"errors"
	"sync"
)

// fakeSource returns a canned row sequence or a read error.
type fakeSource struct {
	rows []RawRow
	err  error
}

func (f *fakeSource) ReadRows(path string) ([]RawRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

// fakeStore records inserted offices and can be told to reject specific
// office codes.
type fakeStore struct {
	mu       sync.Mutex
	inserted []OfficeRecord
	country  []int
	failOn   map[string]error
	batches  []string
	counts   TableCounts
	closed   bool
	pingErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{failOn: make(map[string]error)}
}

func (f *fakeStore) InsertOffice(ctx context.Context, rec OfficeRecord, countryID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[rec.OfficeCode]; ok {
		return err
	}
	f.inserted = append(f.inserted, rec)
	f.country = append(f.country, countryID)
	return nil
}

func (f *fakeStore) ExecBatch(ctx context.Context, batch string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[batch]; ok {
		return err
	}
	f.batches = append(f.batches, batch)
	return nil
}

func (f *fakeStore) TableCounts(ctx context.Context) (TableCounts, error) {
	return f.counts, nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

var errBoom = errors.New("boom")

// officeRow builds a RawRow with the given code and description.
func officeRow(row int, code, desc string) RawRow {
	return RawRow{
		Row: row,
		Cells: map[string]string{
			"OfficeCode": code,
			"OfficeDesc": desc,
		},
	}
}
