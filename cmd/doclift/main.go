package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codewithboateng/doclift/internal/api"
	"github.com/codewithboateng/doclift/internal/checker"
	"github.com/codewithboateng/doclift/internal/ir"
	"github.com/codewithboateng/doclift/internal/reporting"
	"github.com/codewithboateng/doclift/internal/rules"
	"github.com/codewithboateng/doclift/internal/rulesdsl"
	"github.com/codewithboateng/doclift/internal/security"
	"github.com/codewithboateng/doclift/internal/shared"
	"github.com/codewithboateng/doclift/internal/storage"
	"github.com/codewithboateng/doclift/internal/wiki"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "wiki":
		wikiCmd(os.Args[2:])
	case "version":
		fmt.Println("doclift IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `doclift – Python docstring conformance checker

Usage:
  doclift check  [--config ./configs/doclift.yaml] [--db ./doclift.db] [--out ./reports] [--save] [--disable RULE,RULE] [--pack ./pack.yaml] <paths...>
  doclift report --run <run-id>  [--out ./reports] [--db ./doclift.db] [--config ...]
  doclift diff   --base <run-id> --head <run-id> [--out ./reports] [--db ./doclift.db] [--config ...]
  doclift serve  [--addr :8080] [--db ./doclift.db] [--config ...]
  doclift wiki   [--src ./docs/source] [--out ./wiki] [--title "Project Wiki"] [--config ...]
  doclift version
`)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	dbPath := fs.String("db", "", "SQLite database path")
	outDir := fs.String("out", "", "Output directory for reports")
	save := fs.Bool("save", false, "Persist the run to the database")
	disable := fs.String("disable", "", "Comma-separated rule IDs to skip")
	var packs stringList
	fs.Var(&packs, "pack", "YAML rule pack (repeatable)")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	paths := fs.Args()
	if len(paths) == 0 {
		paths = cfg.Check.Sources
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	disabled := cfg.Check.DisabledRules
	if *disable != "" {
		disabled = splitCSV(*disable)
	}
	packPaths := cfg.Check.RulePacks
	if len(packs) > 0 {
		packPaths = packs
	}

	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "check: at least one path (or check.sources in config) is required")
		os.Exit(2)
	}

	rules.SetSettings(rules.Settings{Disabled: rules.DisabledSet(disabled)})
	for _, p := range packPaths {
		n, err := rulesdsl.LoadAndRegister(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "check: rule pack %s: %v\n", p, err)
			os.Exit(2)
		}
		logger.Info("loaded rule pack", "path", p, "rules", n)
	}

	run := checker.Check(context.Background(), paths)
	run.Context.DisabledRules = disabled
	run.Context.RulePacks = packPaths

	if *save {
		db, err := storage.OpenSQLite(*dbPath)
		if err != nil {
			slog.Error("db open error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			slog.Error("db schema error", "err", err)
			os.Exit(1)
		}
		if waivers, err := db.ListWaivers(true); err == nil && len(waivers) > 0 {
			kept, waived := rules.ApplyWaivers(run.Diagnostics, waivers)
			if waived > 0 {
				run.Diagnostics = kept
				run.Notices = append(run.Notices, fmt.Sprintf("%d diagnostic(s) suppressed by active waivers", waived))
			}
		}
		if err := db.SaveRun(&run); err != nil {
			slog.Error("db save run error", "err", err)
			os.Exit(1)
		}
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			slog.Error("cannot create out dir", "err", err)
			os.Exit(1)
		}
		jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
		htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
		slog.Info("check complete",
			"run", run.ID,
			"json", jsonPath,
			"html", htmlPath,
			"db", filepath.Clean(*dbPath),
		)
	}

	reporting.WriteConsole(os.Stdout, &run)
	if !run.AllValid() {
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID (defaults to latest)")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	var run ir.Run
	if *runID == "" {
		run, err = db.LoadLatestRun()
	} else {
		run, err = db.LoadRun(*runID)
	}
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	path, _ := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	fmt.Printf("Diff OK\n  %s\n", path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	bootstrapAdmin(db, logger)

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		SessionDuration: time.Duration(cfg.API.SessionHours) * time.Hour,
	}
	logger.Info("api listening", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

// bootstrapAdmin creates an initial admin account on first start when
// DOCLIFT_ADMIN_USER / DOCLIFT_ADMIN_PASSWORD are set.
func bootstrapAdmin(db *storage.DB, logger *slog.Logger) {
	user := os.Getenv("DOCLIFT_ADMIN_USER")
	pass := os.Getenv("DOCLIFT_ADMIN_PASSWORD")
	if user == "" || pass == "" {
		return
	}
	if _, _, err := db.GetUserByUsername(user); err == nil {
		return // already present
	}
	hash, err := security.HashPassword(pass)
	if err != nil {
		logger.Warn("admin bootstrap failed", "error", err)
		return
	}
	if _, err := db.CreateUser(user, hash, "admin"); err != nil {
		logger.Warn("admin bootstrap failed", "error", err)
		return
	}
	logger.Info("created admin user", "username", user)
}

func wikiCmd(args []string) {
	fs := flag.NewFlagSet("wiki", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	srcDir := fs.String("src", "", "Directory of RST sources")
	outDir := fs.String("out", "", "Output directory for wiki pages")
	title := fs.String("title", "", "Wiki home page title")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *srcDir == "" {
		*srcDir = cfg.Wiki.SourceDir
	}
	if *outDir == "" {
		*outDir = cfg.Wiki.OutDir
	}
	if *title == "" {
		*title = cfg.Wiki.Title
	}
	if *title == "" {
		*title = "Project Wiki"
	}

	pages, err := wiki.ProcessDocs(*srcDir, *outDir, *title, logger)
	if err != nil {
		slog.Error("wiki conversion error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Wiki OK\n  Pages: %d\n  Out: %s\n", len(pages), filepath.Clean(*outDir))
}

type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
