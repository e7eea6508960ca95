package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file in the repository root.
const FileName = "bilanz.yaml"

// Config represents the top-level bilanz.yaml configuration.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	Fiscal     FiscalConfig     `yaml:"fiscal"`
	Accounting AccountingConfig `yaml:"accounting"`
	Log        LogConfig        `yaml:"log"`
	Git        GitConfig        `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name      string `yaml:"name" validate:"required"`
	LegalForm string `yaml:"legal_form,omitempty"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start" validate:"datetime=01-02"` // "MM-DD"
	// PeriodEnd is the default Bilanz date as "MM-DD" in the current year.
	// Empty means today.
	PeriodEnd string `yaml:"period_end,omitempty" validate:"omitempty,datetime=01-02"`
}

// AccountingConfig selects the chart of accounts and the journal location.
type AccountingConfig struct {
	Standard string `yaml:"standard" validate:"oneof=hgb_standard datev_skr03 datev_skr04 custom"`
	Journal  string `yaml:"journal" validate:"required"`
	Locale   string `yaml:"locale"`
}

// LogConfig controls the CLI's log handler.
type LogConfig struct {
	Format string `yaml:"format" validate:"oneof=text json"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Env holds the environment overrides read by LoadProject.
type Env struct {
	LogFormat     string `envconfig:"LOG_FORMAT"`
	GitAutoCommit *bool  `envconfig:"GIT_AUTO_COMMIT"`
	Journal       string `envconfig:"JOURNAL"`
	Locale        string `envconfig:"LOCALE"`
}

// EnvPrefix is prepended to every Env variable, e.g. BILANZ_LOG_FORMAT.
const EnvPrefix = "BILANZ"

var validate = validator.New()

// Load reads a bilanz.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadProject reads bilanz.yaml from a project root, loads an optional .env
// next to it and applies BILANZ_* environment overrides. Variables already
// set in the environment win over .env entries.
func LoadProject(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	cfg.Apply(env)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overlays the non-empty environment overrides onto c.
func (c *Config) Apply(env Env) {
	if env.LogFormat != "" {
		c.Log.Format = env.LogFormat
	}
	if env.GitAutoCommit != nil {
		c.Git.AutoCommit = *env.GitAutoCommit
	}
	if env.Journal != "" {
		c.Accounting.Journal = env.Journal
	}
	if env.Locale != "" {
		c.Accounting.Locale = env.Locale
	}
}

// Validate checks field formats and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s: %q fails %s", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPeriodEnd returns the configured period end in now's year, or now
// itself when none is configured.
func (f FiscalConfig) DefaultPeriodEnd(now time.Time) (time.Time, error) {
	if f.PeriodEnd == "" {
		return now, nil
	}
	md, err := time.Parse("01-02", f.PeriodEnd)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing fiscal period_end %q: %w", f.PeriodEnd, err)
	}
	return time.Date(now.Year(), md.Month(), md.Day(), 0, 0, 0, 0, now.Location()), nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Accounting: AccountingConfig{
			Standard: "hgb_standard",
			Journal:  "journal/events.csv",
			Locale:   "de-DE",
		},
		Log: LogConfig{
			Format: "text",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Bilanz",
			AuthorEmail: "bilanz@localhost",
		},
	}
}
