// Package checker is the run driver: it resolves input paths, parses each
// source file, extracts declarations and feeds them through the rule engine,
// accumulating everything into a single ir.Run.
package checker

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/codewithboateng/doclift/internal/coverage"
	"github.com/codewithboateng/doclift/internal/extract"
	"github.com/codewithboateng/doclift/internal/ir"
	"github.com/codewithboateng/doclift/internal/pysrc"
	"github.com/codewithboateng/doclift/internal/rules"
)

// RuleIDParse tags the file-level diagnostic for unparseable sources.
const RuleIDParse = "PARSE"

const (
	testFileMarker = "test_"
	testDirName    = "tests"
)

// Check validates every path in input order and returns the populated run.
// Files are processed sequentially; the run is the only accumulator.
func Check(ctx context.Context, paths []string) ir.Run {
	run := ir.Run{
		ID:        "run-" + uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Source:    strings.Join(paths, " "),
		IRVersion: ir.Version,
	}

	for _, p := range Expand(paths) {
		if IsTestPath(p) {
			continue
		}
		src, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				run.Notices = append(run.Notices, fmt.Sprintf("%s does not exist", p))
			} else {
				run.Notices = append(run.Notices, fmt.Sprintf("%s: %v", p, err))
			}
			continue
		}
		checkFile(ctx, &run, p, src)
	}

	for _, f := range run.Files {
		run.Coverage = coverage.Merge(run.Coverage, f.Coverage)
	}
	return run
}

func checkFile(ctx context.Context, run *ir.Run, path string, src []byte) {
	fr := ir.FileReport{Path: path}

	root, err := pysrc.Parse(ctx, src)
	if err != nil {
		line := 1
		var serr *pysrc.SyntaxError
		if errors.As(err, &serr) {
			line = serr.Line
		}
		fr.ParseFailed = true
		run.Files = append(run.Files, fr)
		run.Append(ir.Diagnostic{
			ID:       parseDiagID(path, line),
			RuleID:   RuleIDParse,
			Severity: ir.SeverityError,
			File:     path,
			Line:     line,
			Message:  "Syntax error - " + err.Error(),
		})
		return
	}

	decls := extract.Declarations(path, root)
	fr.Declarations = len(decls)
	fr.Coverage = coverage.Summarize(decls)
	run.Files = append(run.Files, fr)
	run.Append(rules.Evaluate(decls)...)
}

// Expand resolves ** glob patterns into concrete paths; plain paths pass
// through untouched. A pattern that matches nothing is kept as-is so it
// surfaces as a does-not-exist notice downstream.
func Expand(paths []string) []string {
	var out []string
	for _, p := range paths {
		if !strings.ContainsAny(p, "*?[{") {
			out = append(out, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p)
		if err != nil || len(matches) == 0 {
			out = append(out, p)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

// IsTestPath reports whether the path is a test artifact by naming
// convention: the file name carries the test marker, or any directory on the
// path is the designated tests directory. Such paths are skipped entirely.
func IsTestPath(p string) bool {
	if strings.Contains(filepath.Base(p), testFileMarker) {
		return true
	}
	for _, seg := range strings.Split(filepath.ToSlash(filepath.Dir(p)), "/") {
		if seg == testDirName {
			return true
		}
	}
	return false
}

func parseDiagID(path string, line int) string {
	sum := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%s|%s|%d", RuleIDParse, path, line)))
	return fmt.Sprintf("%s-%08x", RuleIDParse, sum)
}
