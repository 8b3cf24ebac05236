package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/spf13/viper"
)

const (
	DefaultConfigName = "rowseed.config"
	DefaultAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	EnvPrefix         = "ROWSEED"
)

// envKeys are the scalar keys that can be overridden with ROWSEED_<KEY>,
// dots replaced by underscores (ROWSEED_SEED_ROWS).
var envKeys = []string{
	"database.provider", "database.path", "database.url_env",
	"seed.profile", "seed.table", "seed.rows", "seed.int_min", "seed.int_max",
	"seed.text_length", "seed.alphabet", "seed.index_column", "seed.strict",
	"seed.random_seed", "seed.record_runs", "seed.progress_every", "seed.quiet",
	"export.path",
}

type Config struct {
	Version  string               `json:"version" mapstructure:"version"`
	Database Database             `json:"database" mapstructure:"database"`
	Seed     Seed                 `json:"seed" mapstructure:"seed"`
	Schema   []types.SchemaColumn `json:"schema" mapstructure:"schema"`
	Export   Export               `json:"export" mapstructure:"export"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	Path     string `json:"path" mapstructure:"path"`
	URLEnv   string `json:"url_env,omitempty" mapstructure:"url_env"`
}

type Seed struct {
	Profile       string `json:"profile" mapstructure:"profile"`
	Table         string `json:"table" mapstructure:"table"`
	Rows          int    `json:"rows" mapstructure:"rows"`
	IntMin        int    `json:"int_min" mapstructure:"int_min"`
	IntMax        int    `json:"int_max" mapstructure:"int_max"`
	TextLength    int    `json:"text_length" mapstructure:"text_length"`
	Alphabet      string `json:"alphabet" mapstructure:"alphabet"`
	IndexColumn   string `json:"index_column" mapstructure:"index_column"` // empty = no secondary index
	Strict        bool   `json:"strict" mapstructure:"strict"`
	RandomSeed    int64  `json:"random_seed" mapstructure:"random_seed"`
	RecordRuns    bool   `json:"record_runs" mapstructure:"record_runs"`
	ProgressEvery int    `json:"progress_every" mapstructure:"progress_every"`
	Quiet         bool   `json:"quiet" mapstructure:"quiet"`
}

type Export struct {
	Path string `json:"path" mapstructure:"path"`
}

// Profile captures one of the two stock seeding runs.
type Profile struct {
	Rows        int
	IntMin      int
	IntMax      int
	IndexColumn string
	Quiet       bool
}

var Profiles = map[string]Profile{
	// 10k rows, ages 10..100, index on name, prints progress lines
	"default": {Rows: 10000, IntMin: 10, IntMax: 100, IndexColumn: "name"},
	// 100k rows, ages 6..100, no index, silent
	"bulk": {Rows: 100000, IntMin: 6, IntMax: 100, Quiet: true},
}

// Values returns the config keys a profile governs.
func (p Profile) Values() map[string]interface{} {
	return map[string]interface{}{
		"seed.rows":         p.Rows,
		"seed.int_min":      p.IntMin,
		"seed.int_max":      p.IntMax,
		"seed.index_column": p.IndexColumn,
		"seed.quiet":        p.Quiet,
	}
}

// ApplyProfile selects a profile and forces its values over whatever the
// config file or environment says, except for keys where keep returns true.
func ApplyProfile(v *viper.Viper, name string, keep func(key string) bool) error {
	profile, ok := Profiles[name]
	if !ok {
		return fmt.Errorf("unknown seed profile: %s", name)
	}

	v.Set("seed.profile", name)
	for key, value := range profile.Values() {
		if keep != nil && keep(key) {
			continue
		}
		v.Set(key, value)
	}
	return nil
}

// ConfigureEnv makes v read ROWSEED_* environment variables.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	// AutomaticEnv only answers Get calls; Unmarshal sees env values only
	// for keys it knows about.
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.applyDefaults(v.IsSet); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults(isSet func(string) bool) error {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./sample.db"
	}

	if c.Seed.Profile == "" {
		c.Seed.Profile = "default"
	}
	profile, ok := Profiles[c.Seed.Profile]
	if !ok {
		return fmt.Errorf("unknown seed profile: %s", c.Seed.Profile)
	}

	// Zero is a legitimate explicit value for these, so only fill unset keys.
	if !isSet("seed.rows") {
		c.Seed.Rows = profile.Rows
	}
	if !isSet("seed.int_min") {
		c.Seed.IntMin = profile.IntMin
	}
	if !isSet("seed.int_max") {
		c.Seed.IntMax = profile.IntMax
	}
	if !isSet("seed.index_column") {
		c.Seed.IndexColumn = profile.IndexColumn
	}
	if !isSet("seed.quiet") {
		c.Seed.Quiet = profile.Quiet
	}

	if c.Seed.Table == "" {
		c.Seed.Table = "RandomData"
	}
	if c.Seed.TextLength == 0 {
		c.Seed.TextLength = 5
	}
	if c.Seed.Alphabet == "" {
		c.Seed.Alphabet = DefaultAlphabet
	}
	if len(c.Schema) == 0 {
		c.Schema = types.DefaultSchema()
	}
	if c.Export.Path == "" {
		c.Export.Path = "export"
	}
	return nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	if c.Database.URLEnv != "" {
		if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
			return dbURL, nil
		}
		if !c.IsSQLite() {
			return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
		}
	}
	if !c.IsSQLite() {
		return "", fmt.Errorf("provider %s needs database.url_env pointing at a connection URL", c.Database.Provider)
	}
	return c.Database.Path, nil
}

func (c *Config) IsSQLite() bool {
	return strings.HasPrefix(c.Database.Provider, "sqlite")
}

func (c *Config) Table() types.SchemaTable {
	table := types.SchemaTable{Name: c.Seed.Table, Columns: c.Schema}
	if col := c.Seed.IndexColumn; col != "" {
		table.Indexes = []types.SchemaIndex{{
			Name:    types.IndexName(c.Seed.Table, col),
			Table:   c.Seed.Table,
			Columns: []string{col},
		}}
	}
	return table
}

func (c *Config) Validate() error {
	if !database.IsSupportedProvider(c.Database.Provider) {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, database.SupportedProviders)
	}

	if err := common.ValidateIdentifier("table", c.Seed.Table); err != nil {
		return err
	}
	if c.Seed.Rows < 0 {
		return fmt.Errorf("seed.rows cannot be negative: %d", c.Seed.Rows)
	}
	if c.Seed.IntMin > c.Seed.IntMax {
		return fmt.Errorf("seed.int_min (%d) is greater than seed.int_max (%d)", c.Seed.IntMin, c.Seed.IntMax)
	}
	if c.Seed.TextLength <= 0 {
		return fmt.Errorf("seed.text_length must be positive: %d", c.Seed.TextLength)
	}
	if c.Seed.ProgressEvery < 0 {
		return fmt.Errorf("seed.progress_every cannot be negative: %d", c.Seed.ProgressEvery)
	}

	if len(c.Schema) == 0 {
		return fmt.Errorf("schema cannot be empty")
	}
	seen := make(map[string]bool, len(c.Schema))
	for _, col := range c.Schema {
		if err := common.ValidateIdentifier("column", col.Name); err != nil {
			return err
		}
		if err := common.ValidateTypeName(col.Name, string(col.Type)); err != nil {
			return err
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate column in schema: %s", col.Name)
		}
		seen[col.Name] = true
	}

	if c.Seed.IndexColumn != "" && !seen[c.Seed.IndexColumn] {
		return fmt.Errorf("index column %s is not part of the schema", c.Seed.IndexColumn)
	}

	return nil
}
