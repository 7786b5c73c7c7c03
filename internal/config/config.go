// Package config holds the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/bookstore/internal/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Log     LogConfig     `koanf:"log"`
	Report  ReportConfig  `koanf:"report"`
	Catalog CatalogConfig `koanf:"catalog"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// ReportConfig controls report rendering. The key is "topn" rather than
// "top_n" so environment overrides (BOOKSTORE_REPORT_TOPN) survive the
// underscore-to-dot key transform.
type ReportConfig struct {
	TopN int `koanf:"topn"`
}

type CatalogConfig struct {
	Preload bool `koanf:"preload"`
}

// Defaults returns the configuration used when no file or environment
// overrides are present. The program is fully functional with these alone.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":       "info",
		"report.topn":     3,
		"catalog.preload": true,
	}
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Catalog Configuration ---\n")
	b.WriteString(fmt.Sprintf("  catalog.preload: %t\n", c.Catalog.Preload))

	b.WriteString("\n--- Reporting ---\n")
	b.WriteString(fmt.Sprintf("  report.topn: %d\n", c.Report.TopN))

	b.WriteString("\n--- Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))

	return b.String()
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.Report.TopN < 1 {
		return fmt.Errorf("report.topn must be at least 1, got %d", c.Report.TopN)
	}
	return nil
}
