package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(rows []RawRow) (*Service, *fakeStore) {
	st := newFakeStore()
	connect := func(ctx context.Context, p ConnectionParams) (Store, error) {
		return st, nil
	}
	return NewService(&fakeSource{rows: rows}, connect), st
}

func configure(t *testing.T, svc *Service, p ConnectionParams) ConnectionAck {
	t.Helper()
	ack, err := svc.Configure(context.Background(), p)
	require.NoError(t, err)
	return ack
}

func TestConfigure_AppliesDefaults(t *testing.T) {
	svc, _ := newTestService(nil)

	ack := configure(t, svc, ConnectionParams{
		Server: "db01", Database: "config", User: "loader",
	})

	assert.Equal(t, "db01", ack.Server)
	assert.Equal(t, "config", ack.Database)
	assert.Equal(t, 1433, ack.Port)
	assert.Equal(t, 1, ack.CountryID)
	assert.True(t, svc.Configured())
}

func TestConfigure_ExplicitValuesKept(t *testing.T) {
	svc, _ := newTestService(nil)

	ack := configure(t, svc, ConnectionParams{
		Server: "db01", Database: "config", User: "loader",
		Port: 14330, CountryID: 27,
	})

	assert.Equal(t, 14330, ack.Port)
	assert.Equal(t, 27, ack.CountryID)
}

func TestConfigure_ReplacesAndClosesPriorHandle(t *testing.T) {
	first := newFakeStore()
	second := newFakeStore()
	handles := []*fakeStore{first, second}
	i := 0
	svc := NewService(&fakeSource{}, func(ctx context.Context, p ConnectionParams) (Store, error) {
		st := handles[i]
		i++
		return st, nil
	})

	configure(t, svc, ConnectionParams{Server: "a", Database: "d", User: "u"})
	configure(t, svc, ConnectionParams{Server: "b", Database: "d", User: "u"})

	assert.True(t, first.closed, "prior handle must be closed on reconfiguration")
	assert.False(t, second.closed)
}

func TestConfigure_PingFailureClosesHandle(t *testing.T) {
	st := newFakeStore()
	st.pingErr = errBoom
	svc := NewService(&fakeSource{}, func(ctx context.Context, p ConnectionParams) (Store, error) {
		return st, nil
	})

	_, err := svc.Configure(context.Background(), ConnectionParams{Server: "a", Database: "d", User: "u"})

	assert.Error(t, err)
	assert.True(t, st.closed)
	assert.False(t, svc.Configured())
}

func TestOperations_RequireConfiguration(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.RunLicensingScript(ctx, "license.sql")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Status(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)

	result := svc.ImportOffices(ctx, "offices.xlsx")
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "general", result.Errors[0].Field)
}

func TestRunLicensingScript_ExecutesBatchesInOrder(t *testing.T) {
	svc, st := newTestService(nil)
	configure(t, svc, ConnectionParams{Server: "a", Database: "d", User: "u"})

	path := filepath.Join(t.TempDir(), "license.sql")
	script := "CREATE TABLE Licence (id int)\nGO\nINSERT INTO Licence VALUES (1)\ngo\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	result, err := svc.RunLicensingScript(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Batches)
	require.Len(t, st.batches, 2)
	assert.Equal(t, "CREATE TABLE Licence (id int)", st.batches[0])
	assert.Equal(t, "INSERT INTO Licence VALUES (1)", st.batches[1])
}

func TestRunLicensingScript_FirstFailingBatchAborts(t *testing.T) {
	svc, st := newTestService(nil)
	st.failOn["BAD"] = errBoom
	configure(t, svc, ConnectionParams{Server: "a", Database: "d", User: "u"})

	path := filepath.Join(t.TempDir(), "license.sql")
	require.NoError(t, os.WriteFile(path, []byte("OK1\nGO\nBAD\nGO\nOK2"), 0o644))

	result, err := svc.RunLicensingScript(context.Background(), path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch 2 of 3")
	assert.Equal(t, 1, result.Batches)
	assert.Equal(t, []string{"OK1"}, st.batches)
}

func TestRunLicensingScript_MissingFile(t *testing.T) {
	svc, _ := newTestService(nil)
	configure(t, svc, ConnectionParams{Server: "a", Database: "d", User: "u"})

	_, err := svc.RunLicensingScript(context.Background(), filepath.Join(t.TempDir(), "nope.sql"))
	assert.ErrorContains(t, err, "read script")
}

func TestStatus_ReportsCountsAndLabel(t *testing.T) {
	svc, st := newTestService(nil)
	st.counts = TableCounts{Offices: 7, Employees: 120, Clients: 41}
	configure(t, svc, ConnectionParams{Server: "a", Database: "d", User: "u"})

	report, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), report.Offices)
	assert.Equal(t, int64(120), report.Employees)
	assert.Equal(t, int64(41), report.Clients)
	assert.Equal(t, "operational", report.Status)
}

func TestImportOffices_UsesSessionCountry(t *testing.T) {
	svc, st := newTestService([]RawRow{officeRow(2, "HQ", "Head Office")})
	configure(t, svc, ConnectionParams{Server: "a", Database: "d", User: "u", CountryID: 27})

	result := svc.ImportOffices(context.Background(), "offices.xlsx")

	assert.True(t, result.Success)
	require.Len(t, st.country, 1)
	assert.Equal(t, 27, st.country[0])
}

func TestClose_ReleasesHandle(t *testing.T) {
	svc, st := newTestService(nil)
	configure(t, svc, ConnectionParams{Server: "a", Database: "d", User: "u"})

	svc.Close()

	assert.True(t, st.closed)
	assert.False(t, svc.Configured())
}
