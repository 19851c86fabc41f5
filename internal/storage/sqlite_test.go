package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/doclift/internal/ir"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "doclift.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateSchema())
	return db
}

func testRun(id string, startedAt time.Time) ir.Run {
	return ir.Run{
		ID:        id,
		StartedAt: startedAt,
		Source:    "src",
		IRVersion: ir.Version,
		Files: []ir.FileReport{
			{Path: "a.py", Declarations: 2, Coverage: ir.Coverage{Total: 2, Documented: 1, Percent: 50}},
		},
		Diagnostics: []ir.Diagnostic{
			{ID: id + "-d1", RuleID: "DOC-MISSING", Severity: ir.SeverityError,
				File: "a.py", Line: 3, Symbol: "Shape", Message: "Class Shape missing docstring"},
			{ID: id + "-d2", RuleID: "DOC-RETURNS", Severity: ir.SeverityWarning,
				File: "a.py", Line: 9, Symbol: "pick", Message: "pick - Missing 'Returns:' section for function with return statement"},
		},
		Coverage: ir.Coverage{Total: 2, Documented: 1, Percent: 50},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)
	run := testRun("run-1", time.Now().UTC())

	require.NoError(t, db.SaveRun(&run))

	got, err := db.LoadRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Diagnostics, got.Diagnostics)
	assert.Equal(t, run.Coverage, got.Coverage)

	ok, err := db.HasRun("run-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = db.HasRun("run-x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveRun_UpsertReplacesDiagnostics(t *testing.T) {
	db := openTestDB(t)
	run := testRun("run-1", time.Now().UTC())
	require.NoError(t, db.SaveRun(&run))

	run.Diagnostics = run.Diagnostics[:1]
	require.NoError(t, db.SaveRun(&run))

	ds, err := db.ListDiagnostics("run-1", "WARNING")
	require.NoError(t, err)
	assert.Len(t, ds, 1)
}

func TestLoadLatestRun(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC()
	older := testRun("run-old", now.Add(-time.Hour))
	newer := testRun("run-new", now)
	require.NoError(t, db.SaveRun(&older))
	require.NoError(t, db.SaveRun(&newer))

	got, err := db.LoadLatestRun()
	require.NoError(t, err)
	assert.Equal(t, "run-new", got.ID)
}

func TestListRuns(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC()
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		r := testRun(id, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, db.SaveRun(&r))
	}

	rows, err := db.ListRuns(2, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "run-c", rows[0].ID)
	assert.Equal(t, 1, rows[0].Errors)
	assert.Equal(t, 1, rows[0].Warnings)
	assert.Equal(t, 2, rows[0].Diagnostics)

	rest, err := db.ListRuns(10, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "run-a", rest[0].ID)
}

func TestListDiagnostics_MinSeverity(t *testing.T) {
	db := openTestDB(t)
	run := testRun("run-1", time.Now().UTC())
	require.NoError(t, db.SaveRun(&run))

	all, err := db.ListDiagnostics("run-1", "WARNING")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	errsOnly, err := db.ListDiagnostics("run-1", "ERROR")
	require.NoError(t, err)
	require.Len(t, errsOnly, 1)
	assert.Equal(t, ir.SeverityError, errsOnly[0].Severity)
}

func TestUsersAndSessions(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateUser("alice", "hash", "admin")
	require.NoError(t, err)
	assert.Positive(t, id)

	u, hash, err := db.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "admin", u.Role)
	assert.Equal(t, "hash", hash)

	_, _, err = db.GetUserByUsername("nobody")
	assert.Error(t, err)

	require.NoError(t, db.CreateSession(id, "tok-1", time.Now().Add(time.Hour)))
	got, err := db.GetSession("tok-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	// expired session is invisible
	require.NoError(t, db.CreateSession(id, "tok-old", time.Now().Add(-time.Hour)))
	_, err = db.GetSession("tok-old")
	assert.Error(t, err)

	require.NoError(t, db.DeleteSession("tok-1"))
	_, err = db.GetSession("tok-1")
	assert.Error(t, err)
}

func TestWaivers(t *testing.T) {
	db := openTestDB(t)

	active, err := db.CreateWaiver("DOC-MISSING", "a.py", "", "", "migration", "alice", time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	expired, err := db.CreateWaiver("DOC-ARGS", "", "", "", "old", "alice", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_ = expired

	ws, err := db.ListWaivers(true)
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, active, ws[0].ID)
	assert.Equal(t, "DOC-MISSING", ws[0].RuleID)
	assert.Equal(t, "a.py", ws[0].File)
	assert.Nil(t, ws[0].RevokedAt)

	all, err := db.ListWaivers(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, db.RevokeWaiver(active))
	ws, err = db.ListWaivers(true)
	require.NoError(t, err)
	assert.Empty(t, ws)

	all, err = db.ListWaivers(false)
	require.NoError(t, err)
	for _, w := range all {
		if w.ID == active {
			assert.NotNil(t, w.RevokedAt)
		}
	}
}

func TestLogAudit(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.LogAudit("alice", "login", "", map[string]any{"ip": "127.0.0.1"}))
	require.NoError(t, db.LogAudit("alice", "waivers:create", "/api/v1/waivers", nil))
}
