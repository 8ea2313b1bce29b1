/*
Package config manages TOML config for SuggestScope.

The file holds the suggest endpoint settings, export destination, the
taxonomy table and the display sections:

	[fetch]
	endpoint = "https://suggestqueries.google.com/complete/search"
	language = "en"
	timeout_ms = 10000
	skip_failed = false

	[export]
	dir = "."
	file_name = "google_suggestions_categorized.csv"

	[[taxonomy]]
	name = "Questions"
	prefixes = ["Will", "Why", "Which"]

	[[display]]
	title = "Alphabetical order"
	category = "Alphabet"

The taxonomy is read once at startup and never changes afterwards.
A missing file is created with defaults; a broken one is recovered section by section.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/suggestscope/internal/utils"
	"github.com/bastiangx/suggestscope/pkg/export"
	"github.com/bastiangx/suggestscope/pkg/fetch"
	"github.com/bastiangx/suggestscope/pkg/taxonomy"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Environment overrides, also read from a .env file in the working directory.
const (
	EnvEndpoint  = "SUGGESTSCOPE_ENDPOINT"
	EnvLanguage  = "SUGGESTSCOPE_LANG"
	EnvExportDir = "SUGGESTSCOPE_EXPORT_DIR"
)

// Config holds the entire config structure
type Config struct {
	Fetch    FetchConfig         `toml:"fetch"`
	Export   ExportConfig        `toml:"export"`
	Taxonomy []taxonomy.Category `toml:"taxonomy"`
	Display  []DisplayConfig     `toml:"display"`
}

// FetchConfig has suggestion source options.
type FetchConfig struct {
	Endpoint   string `toml:"endpoint"`
	Client     string `toml:"client"`
	Language   string `toml:"language"`
	UserAgent  string `toml:"user_agent"`
	TimeoutMs  int    `toml:"timeout_ms"`
	SkipFailed bool   `toml:"skip_failed"`
}

// ExportConfig holds CSV destination options.
type ExportConfig struct {
	Dir         string `toml:"dir"`
	FileName    string `toml:"file_name"`
	UniqueNames bool   `toml:"unique_names"`
}

// DisplayConfig is one rendered section: a heading and the category it shows.
type DisplayConfig struct {
	Title    string `toml:"title"`
	Category string `toml:"category"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/suggestscope
// 2. ~/Library/Application Support/suggestscope (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppDirName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppDirName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/suggestscope/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			Endpoint:   fetch.DefaultEndpoint,
			Client:     fetch.DefaultClient,
			Language:   fetch.DefaultLanguage,
			UserAgent:  fetch.DefaultUserAgent,
			TimeoutMs:  int(fetch.DefaultTimeout / time.Millisecond),
			SkipFailed: false,
		},
		Export: ExportConfig{
			Dir:         ".",
			FileName:    export.DefaultFileName,
			UniqueNames: false,
		},
		Taxonomy: taxonomy.DefaultCategories(),
		Display:  DefaultDisplay(),
	}
}

// DefaultDisplay returns the five rendered sections.
// "Competitors" has no taxonomy entry and always renders as empty.
func DefaultDisplay() []DisplayConfig {
	return []DisplayConfig{
		{Title: "Questions", Category: "Questions"},
		{Title: "Prepositions", Category: "Prepositions"},
		{Title: "Competitors", Category: "Competitors"},
		{Title: "Complaints", Category: "Complaints"},
		{Title: "Alphabetical order", Category: "Alphabet"},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file.
// Tables present in the file replace the default tables entirely.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	// decoding appends to slices, so start the tables empty
	config.Taxonomy = nil
	config.Display = nil

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.fillMissingTables()
	return config, nil
}

func (c *Config) fillMissingTables() {
	if len(c.Taxonomy) == 0 {
		c.Taxonomy = taxonomy.DefaultCategories()
	}
	if len(c.Display) == 0 {
		c.Display = DefaultDisplay()
	}
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if fetchSection, ok := utils.ExtractSection(tempConfig, "fetch"); ok {
		extractFetchConfig(fetchSection, &config.Fetch)
	}
	if exportSection, ok := utils.ExtractSection(tempConfig, "export"); ok {
		extractExportConfig(exportSection, &config.Export)
	}
	if tables, ok := utils.ExtractTables(tempConfig, "taxonomy"); ok {
		if cats := extractTaxonomy(tables); len(cats) > 0 {
			config.Taxonomy = cats
		}
	}
	if tables, ok := utils.ExtractTables(tempConfig, "display"); ok {
		if sections := extractDisplay(tables); len(sections) > 0 {
			config.Display = sections
		}
	}
	return config, nil
}

// extractFetchConfig extracts fetch configuration from a map
func extractFetchConfig(data map[string]any, f *FetchConfig) {
	if val, ok := utils.ExtractString(data, "endpoint"); ok {
		f.Endpoint = val
	}
	if val, ok := utils.ExtractString(data, "client"); ok {
		f.Client = val
	}
	if val, ok := utils.ExtractString(data, "language"); ok {
		f.Language = val
	}
	if val, ok := utils.ExtractString(data, "user_agent"); ok {
		f.UserAgent = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		f.TimeoutMs = val
	}
	if val, ok := utils.ExtractBool(data, "skip_failed"); ok {
		f.SkipFailed = val
	}
}

// extractExportConfig extracts export configuration from a map
func extractExportConfig(data map[string]any, e *ExportConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		e.Dir = val
	}
	if val, ok := utils.ExtractString(data, "file_name"); ok {
		e.FileName = val
	}
	if val, ok := utils.ExtractBool(data, "unique_names"); ok {
		e.UniqueNames = val
	}
}

// extractTaxonomy keeps every [[taxonomy]] table with a name
func extractTaxonomy(tables []map[string]any) []taxonomy.Category {
	var cats []taxonomy.Category
	for _, t := range tables {
		name, ok := utils.ExtractString(t, "name")
		if !ok || name == "" {
			continue
		}
		prefixes, _ := utils.ExtractStrings(t, "prefixes")
		cats = append(cats, taxonomy.Category{Name: name, Prefixes: prefixes})
	}
	return cats
}

// extractDisplay keeps every [[display]] table with a category
func extractDisplay(tables []map[string]any) []DisplayConfig {
	var sections []DisplayConfig
	for _, t := range tables {
		category, ok := utils.ExtractString(t, "category")
		if !ok || category == "" {
			continue
		}
		title, _ := utils.ExtractString(t, "title")
		if title == "" {
			title = category
		}
		sections = append(sections, DisplayConfig{Title: title, Category: category})
	}
	return sections
}

// ApplyEnv loads .env when present and applies SUGGESTSCOPE_* overrides.
func (c *Config) ApplyEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debugf("No usable .env file: %v", err)
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Fetch.Endpoint = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Fetch.Language = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		c.Export.Dir = v
	}
}

// BuildTaxonomy validates the taxonomy table.
func (c *Config) BuildTaxonomy() (*taxonomy.Taxonomy, error) {
	return taxonomy.New(c.Taxonomy)
}

// GoogleOptions converts the fetch section for fetch.NewGoogle.
func (c *Config) GoogleOptions() fetch.GoogleOptions {
	return fetch.GoogleOptions{
		Endpoint:  c.Fetch.Endpoint,
		Client:    c.Fetch.Client,
		Language:  c.Fetch.Language,
		UserAgent: c.Fetch.UserAgent,
		Timeout:   time.Duration(c.Fetch.TimeoutMs) * time.Millisecond,
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
