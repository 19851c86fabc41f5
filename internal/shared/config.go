package shared

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./doclift.db"
	} `yaml:"database"`

	Check struct {
		Sources       []string `yaml:"sources"`        // ["src/**/*.py"]
		RulePacks     []string `yaml:"rule_packs"`     // extra YAML rule packs
		DisabledRules []string `yaml:"disabled_rules"` // rule IDs to skip
	} `yaml:"check"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Wiki struct {
		SourceDir string `yaml:"source_dir"` // "./docs/source"
		OutDir    string `yaml:"out_dir"`    // "./wiki"
		Title     string `yaml:"title"`      // wiki home page title
	} `yaml:"wiki"`

	API struct {
		Addr         string `yaml:"addr"`          // ":8080"
		SessionHours int    `yaml:"session_hours"` // 12
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./doclift.db"
	c.Reporting.OutDir = "./reports"
	c.Wiki.SourceDir = "./docs/source"
	c.Wiki.OutDir = "./wiki"
	c.API.Addr = ":8080"
	c.API.SessionHours = 12
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("DOCLIFT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("DOCLIFT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("DOCLIFT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("DOCLIFT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DOCLIFT_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("DOCLIFT_DISABLED_RULES"); v != "" {
		c.Check.DisabledRules = splitList(v)
	}
	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
