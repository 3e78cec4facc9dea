// Package config loads server configuration from an optional .env file, an
// optional YAML file, and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Service names
const (
	ServicePDB         = "pdb"
	ServicePubChem     = "pubchem"
	ServiceChEMBL      = "chembl"
	ServiceOpenTargets = "opentargets"
	ServiceSureChEMBL  = "surechembl"
	ServiceDrugBank    = "drugbank"
)

// AllServices lists every backend in registration order.
var AllServices = []string{
	ServicePDB,
	ServicePubChem,
	ServiceChEMBL,
	ServiceOpenTargets,
	ServiceSureChEMBL,
	ServiceDrugBank,
}

// Default endpoints
const (
	DefaultPDBDataURL     = "https://data.rcsb.org/rest/v1"
	DefaultPDBSearchURL   = "https://search.rcsb.org/rcsbsearch/v2"
	DefaultPDBFilesURL    = "https://files.rcsb.org/download"
	DefaultPubChemURL     = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	DefaultChEMBLURL      = "https://www.ebi.ac.uk/chembl/api/data"
	DefaultOpenTargetsURL = "https://api.platform.opentargets.org/api/v4/graphql"
	DefaultSureChEMBLURL  = "https://www.surechembl.org/api"
	DefaultDrugBankURL    = "https://api.drugbank.com/v1"
)

// Config holds the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Guard    GuardConfig    `yaml:"guard"`
	Services []string       `yaml:"services"`
	Backends BackendsConfig `yaml:"backends"`
	DrugBank DrugBankConfig `yaml:"drugbank"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds transport settings.
type ServerConfig struct {
	Transport    string `yaml:"transport"` // stdio, http
	Addr         string `yaml:"addr"`
	RateLimit    int    `yaml:"rate_limit"` // requests per minute per IP
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// GuardConfig holds timeout and worker pool settings.
type GuardConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	SequenceTimeout time.Duration `yaml:"sequence_timeout"`
	MaxConcurrent   int           `yaml:"max_concurrent"`
}

// BackendsConfig holds backend base URLs.
type BackendsConfig struct {
	PDBData     string `yaml:"pdb_data"`
	PDBSearch   string `yaml:"pdb_search"`
	PDBFiles    string `yaml:"pdb_files"`
	PubChem     string `yaml:"pubchem"`
	ChEMBL      string `yaml:"chembl"`
	OpenTargets string `yaml:"opentargets"`
	SureChEMBL  string `yaml:"surechembl"`
	DrugBank    string `yaml:"drugbank"`
}

// DrugBankConfig holds DrugBank credentials.
type DrugBankConfig struct {
	APIKey string `yaml:"api_key"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load builds the configuration. A missing .env file is ignored; one that
// does not parse is an error. path, or CHEMDATA_CONFIG when path is empty,
// names an optional YAML file.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if path == "" {
		path = os.Getenv("CHEMDATA_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}
	num := func(key string, dst *int) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", key, v)
		}
		*dst = n
		return nil
	}

	str("CHEMDATA_TRANSPORT", &c.Server.Transport)
	str("CHEMDATA_HTTP_ADDR", &c.Server.Addr)
	if v := getenv("CHEMDATA_SERVICES"); v != "" {
		c.Services = SplitList(v)
	}
	if err := dur("CHEMDATA_TIMEOUT", &c.Guard.Timeout); err != nil {
		return err
	}
	if err := dur("CHEMDATA_SEQUENCE_TIMEOUT", &c.Guard.SequenceTimeout); err != nil {
		return err
	}
	if err := num("CHEMDATA_MAX_CONCURRENT", &c.Guard.MaxConcurrent); err != nil {
		return err
	}
	if err := num("CHEMDATA_RATE_LIMIT", &c.Server.RateLimit); err != nil {
		return err
	}
	if v := getenv("CHEMDATA_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHEMDATA_MAX_BODY_BYTES: invalid integer %q", v)
		}
		c.Server.MaxBodyBytes = n
	}
	str("DRUGBANK_API_KEY", &c.DrugBank.APIKey)
	str("LOG_LEVEL", &c.Logging.Level)

	str("PDB_DATA_URL", &c.Backends.PDBData)
	str("PDB_SEARCH_URL", &c.Backends.PDBSearch)
	str("PDB_FILES_URL", &c.Backends.PDBFiles)
	str("PUBCHEM_URL", &c.Backends.PubChem)
	str("CHEMBL_URL", &c.Backends.ChEMBL)
	str("OPENTARGETS_URL", &c.Backends.OpenTargets)
	str("SURECHEMBL_URL", &c.Backends.SureChEMBL)
	str("DRUGBANK_URL", &c.Backends.DrugBank)
	return nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Server.Transport == "" {
		c.Server.Transport = TransportStdio
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "0.0.0.0:8000"
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 120
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	if c.Guard.Timeout == 0 {
		c.Guard.Timeout = 30 * time.Second
	}
	if c.Guard.SequenceTimeout == 0 {
		c.Guard.SequenceTimeout = 60 * time.Second
	}
	if c.Guard.MaxConcurrent == 0 {
		c.Guard.MaxConcurrent = 8
	}
	if len(c.Services) == 0 {
		c.Services = append([]string(nil), AllServices...)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	b := &c.Backends
	setDefault(&b.PDBData, DefaultPDBDataURL)
	setDefault(&b.PDBSearch, DefaultPDBSearchURL)
	setDefault(&b.PDBFiles, DefaultPDBFilesURL)
	setDefault(&b.PubChem, DefaultPubChemURL)
	setDefault(&b.ChEMBL, DefaultChEMBLURL)
	setDefault(&b.OpenTargets, DefaultOpenTargetsURL)
	setDefault(&b.SureChEMBL, DefaultSureChEMBLURL)
	setDefault(&b.DrugBank, DefaultDrugBankURL)
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("server.transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Server.Transport)
	}
	for _, s := range c.Services {
		if !IsService(s) {
			return fmt.Errorf("unknown service %q (known: %s)", s, strings.Join(AllServices, ", "))
		}
	}
	if c.Guard.Timeout <= 0 {
		return fmt.Errorf("guard.timeout must be positive, got %s", c.Guard.Timeout)
	}
	if c.Guard.SequenceTimeout <= 0 {
		return fmt.Errorf("guard.sequence_timeout must be positive, got %s", c.Guard.SequenceTimeout)
	}
	if c.Guard.MaxConcurrent <= 0 {
		return fmt.Errorf("guard.max_concurrent must be positive, got %d", c.Guard.MaxConcurrent)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit cannot be negative, got %d", c.Server.RateLimit)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Enabled reports whether service is in the configured service list.
func (c *Config) Enabled(service string) bool {
	for _, s := range c.Services {
		if s == service {
			return true
		}
	}
	return false
}

// IsService reports whether name is a known backend.
func IsService(name string) bool {
	for _, s := range AllServices {
		if s == name {
			return true
		}
	}
	return false
}

func loadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", filename, err)
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// parseDuration accepts Go durations ("45s") and bare seconds ("45").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}

func setDefault(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
	*dst = strings.TrimRight(*dst, "/")
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
