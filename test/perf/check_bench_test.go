package perf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codewithboateng/doclift/internal/checker"
	"github.com/codewithboateng/doclift/internal/rules"
)

const benchModule = `"""Bench module."""


class Widget:
    """A widget."""

    def render(self, indent):
        """Render."""
        return " " * indent


def compute(a, b):
    """Add.

    Args:
        a (int): First.
        b (int): Second.

    Returns:
        int: Sum.
    """
    return a + b


def undocumented(x):
    return x
`

func BenchmarkCheck_Small(b *testing.B) {
	dir := b.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bench.py"), []byte(benchModule), 0o644); err != nil {
		b.Fatal(err)
	}
	rules.SetSettings(rules.Settings{Disabled: map[string]bool{}})
	paths := []string{filepath.Join(dir, "bench.py")}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run := checker.Check(context.Background(), paths)
		if len(run.Files) == 0 {
			b.Fatal("no files checked")
		}
	}
}

func BenchmarkCheck_ManyFiles(b *testing.B) {
	dir := b.TempDir()
	// pad the module so each file carries a few dozen declarations
	var sb strings.Builder
	sb.WriteString(benchModule)
	for i := 0; i < 20; i++ {
		sb.WriteString("\n\ndef extra_")
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString("(n):\n    \"\"\"Extra.\n\n    Args:\n        n (int): N.\n    \"\"\"\n    print(n)\n")
	}
	content := []byte(sb.String())

	var paths []string
	for i := 0; i < 50; i++ {
		p := filepath.Join(dir, "mod"+strings.Repeat("x", i%5)+string(rune('a'+i%26))+".py")
		if err := os.WriteFile(p, content, 0o644); err != nil {
			b.Fatal(err)
		}
		paths = append(paths, p)
	}
	rules.SetSettings(rules.Settings{Disabled: map[string]bool{}})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run := checker.Check(context.Background(), paths)
		if run.Coverage.Total == 0 {
			b.Fatal("no declarations found")
		}
	}
}
