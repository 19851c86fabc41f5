// Package wiki converts reStructuredText documentation into Markdown
// pages suitable for a GitHub wiki.
package wiki

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	reHeaderH1   = regexp.MustCompile(`(?m)^(.+)\n=+\n`)
	reHeaderH2   = regexp.MustCompile(`(?m)^(.+)\n-+\n`)
	reHeaderH3   = regexp.MustCompile(`(?m)^(.+)\n~+\n`)
	reCodeBlock  = regexp.MustCompile(`\.\. code-block:: (\w+)\n`)
	reInlineCode = regexp.MustCompile("``([^`]+)``")
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reLink       = regexp.MustCompile("`([^<`]+?)\\s*<([^>]+)>`_")
	reBullet     = regexp.MustCompile(`(?m)^- `)
	reDirective  = regexp.MustCompile(`\.\. \w+::[ \t]*\n`)
	reBlankRuns  = regexp.MustCompile(`\n{3,}`)
)

// RSTToMarkdown converts a subset of RST syntax to Markdown. It is a
// pragmatic converter, not a full RST parser: section underlines, code
// blocks, inline literals, emphasis, external links, bullets and bare
// directives are handled; everything else passes through unchanged.
func RSTToMarkdown(rst string) string {
	out := reHeaderH1.ReplaceAllString(rst, "# $1\n\n")
	out = reHeaderH2.ReplaceAllString(out, "## $1\n\n")
	out = reHeaderH3.ReplaceAllString(out, "### $1\n\n")
	out = reCodeBlock.ReplaceAllString(out, "```$1\n")
	// Inline literals before emphasis so `` pairs don't read as *.
	out = reInlineCode.ReplaceAllString(out, "`$1`")
	out = reItalic.ReplaceAllString(out, "_$1_")
	out = reLink.ReplaceAllString(out, "[$1]($2)")
	out = reBullet.ReplaceAllString(out, "* ")
	out = reDirective.ReplaceAllString(out, "")
	out = reBlankRuns.ReplaceAllString(out, "\n\n")
	return out
}

// Page is one converted wiki page.
type Page struct {
	Source string // RST path relative to the source dir
	Name   string // wiki page name, e.g. "Getting-Started"
	Out    string // written Markdown path
}

// ProcessDocs converts every *.rst under srcDir into Markdown under
// outDir and writes a Home.md index. Missing source files are logged
// and skipped rather than failing the whole conversion.
func ProcessDocs(srcDir, outDir, title string, log *slog.Logger) ([]Page, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("wiki: create %s: %w", outDir, err)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(srcDir, "**", "*.rst"))
	if err != nil {
		return nil, fmt.Errorf("wiki: glob %s: %w", srcDir, err)
	}
	sort.Strings(matches)

	var pages []Page
	for _, rstPath := range matches {
		rel, err := filepath.Rel(srcDir, rstPath)
		if err != nil {
			rel = filepath.Base(rstPath)
		}
		name := pageName(rel)

		b, err := os.ReadFile(rstPath)
		if err != nil {
			log.Warn("wiki source not readable, skipping", "path", rstPath, "error", err)
			continue
		}
		md := RSTToMarkdown(string(b))
		outPath := filepath.Join(outDir, name+".md")
		if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
			return pages, fmt.Errorf("wiki: write %s: %w", outPath, err)
		}
		log.Info("converted wiki page", "source", rel, "page", name)
		pages = append(pages, Page{Source: rel, Name: name, Out: outPath})
	}

	homePath := filepath.Join(outDir, "Home.md")
	if err := os.WriteFile(homePath, []byte(homePage(title, pages)), 0o644); err != nil {
		return pages, fmt.Errorf("wiki: write %s: %w", homePath, err)
	}
	log.Info("wrote wiki home page", "path", homePath, "pages", len(pages))
	return pages, nil
}

// pageName turns "getting-started.rst" into "Getting-Started".
func pageName(rel string) string {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	parts := strings.FieldsFunc(base, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}

func homePage(title string, pages []Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("Welcome to the project documentation wiki!\n\n")
	b.WriteString("## Pages\n\n")
	for _, p := range pages {
		fmt.Fprintf(&b, "* [%s](%s)\n", strings.ReplaceAll(p.Name, "-", " "), p.Name)
	}
	if len(pages) == 0 {
		b.WriteString("_No pages converted yet._\n")
	}
	return b.String()
}
