package storage

import (
	"database/sql"
	"time"

	"github.com/codewithboateng/doclift/internal/ir"
)

// ListRuns returns a lightweight list of runs with counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.ir_version, r.errors, r.warnings,
		       (SELECT COUNT(1) FROM diagnostics d WHERE d.run_id = r.id) AS diagnostics
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.IRVersion, &rr.Errors, &rr.Warnings, &rr.Diagnostics); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListDiagnostics returns diagnostics for a run at or above a minimum
// severity (WARNING returns everything, ERROR only errors).
func (db *DB) ListDiagnostics(runID, minSeverity string) ([]ir.Diagnostic, error) {
	const q = `
		SELECT id, rule_id, severity, file, line, symbol, message
		  FROM diagnostics
		 WHERE run_id = ?
		   AND (CASE severity WHEN 'ERROR' THEN 2 ELSE 1 END)
		       >= (CASE ? WHEN 'ERROR' THEN 2 ELSE 1 END)
		 ORDER BY file, line,
		       (CASE severity WHEN 'ERROR' THEN 2 ELSE 1 END) DESC,
		       rule_id, id`
	rows, err := db.conn.Query(q, runID, minSeverity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Diagnostic
	for rows.Next() {
		var d ir.Diagnostic
		var sev string
		if err := rows.Scan(&d.ID, &d.RuleID, &sev, &d.File, &d.Line, &d.Symbol, &d.Message); err != nil {
			return nil, err
		}
		d.Severity = ir.Severity(sev)
		out = append(out, d)
	}
	return out, rows.Err()
}

// HasRun reports whether a run with the given id is stored.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
