// Package config builds the process configuration for the SharePoint MCP server.
//
// Values are resolved once at startup, in order: built-in defaults, an
// optional TOML file, then environment variables. The resulting Config is
// passed by pointer to every component that needs it and is never mutated
// afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable names.
const (
	EnvTenantID       = "TENANT_ID"
	EnvClientID       = "CLIENT_ID"
	EnvClientSecret   = "CLIENT_SECRET" //nolint:gosec // G101: variable name, not a credential
	EnvSiteID         = "SITE_ID"
	EnvRegion         = "SHAREPOINT_REGION"
	EnvGraphBaseURL   = "GRAPH_BASE_URL"
	EnvAuthority      = "SHAREPOINT_AUTHORITY"
	EnvRequestTimeout = "SHAREPOINT_REQUEST_TIMEOUT"
)

// Defaults.
const (
	DefaultGraphBaseURL = "https://graph.microsoft.com/v1.0"
	DefaultAuthority    = "https://login.microsoftonline.com"
	DefaultGraphScope   = "https://graph.microsoft.com/.default"
)

// Config holds credentials and the site binding for one SharePoint tenant.
type Config struct {
	// TenantID is the Azure AD tenant the app registration lives in.
	TenantID string
	// ClientID is the app registration's application id.
	ClientID string
	// ClientSecret is the app registration's client secret.
	ClientSecret string
	// SiteID scopes every per-site operation.
	SiteID string
	// Region is passed to the search API. Graph requires it for
	// application permissions (e.g. "NAM", "EUR").
	Region string
	// GraphBaseURL is the Graph API root.
	GraphBaseURL string
	// Authority is the identity platform host used to build the token URL.
	Authority string
	// RequestTimeout bounds each upstream HTTP call. Zero means no timeout.
	RequestTimeout time.Duration
}

// fileConfig mirrors the TOML file layout.
type fileConfig struct {
	TenantID       string `toml:"tenant_id"`
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	SiteID         string `toml:"site_id"`
	Region         string `toml:"region"`
	GraphBaseURL   string `toml:"graph_base_url"`
	Authority      string `toml:"authority"`
	RequestTimeout string `toml:"request_timeout"`
}

// Default returns a Config with endpoint defaults and empty credentials.
func Default() *Config {
	return &Config{
		GraphBaseURL: DefaultGraphBaseURL,
		Authority:    DefaultAuthority,
	}
}

// Load resolves the configuration. path may be empty, in which case no file
// is read. Missing credentials are not an error: they surface on the first
// upstream call.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("parse config file %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIfNotEmpty(&c.TenantID, fc.TenantID)
	setIfNotEmpty(&c.ClientID, fc.ClientID)
	setIfNotEmpty(&c.ClientSecret, fc.ClientSecret)
	setIfNotEmpty(&c.SiteID, fc.SiteID)
	setIfNotEmpty(&c.Region, fc.Region)
	setIfNotEmpty(&c.GraphBaseURL, fc.GraphBaseURL)
	setIfNotEmpty(&c.Authority, fc.Authority)

	if fc.RequestTimeout != "" {
		d, err := parseTimeout(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("config file request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setIfNotEmpty(&c.TenantID, getenv(EnvTenantID))
	setIfNotEmpty(&c.ClientID, getenv(EnvClientID))
	setIfNotEmpty(&c.ClientSecret, getenv(EnvClientSecret))
	setIfNotEmpty(&c.SiteID, getenv(EnvSiteID))
	setIfNotEmpty(&c.Region, getenv(EnvRegion))
	setIfNotEmpty(&c.GraphBaseURL, getenv(EnvGraphBaseURL))
	setIfNotEmpty(&c.Authority, getenv(EnvAuthority))

	if val := getenv(EnvRequestTimeout); val != "" {
		d, err := parseTimeout(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}

	return nil
}

// TokenURL returns the client-credentials token endpoint for the tenant.
func (c *Config) TokenURL() string {
	return strings.TrimRight(c.Authority, "/") + "/" + c.TenantID + "/oauth2/v2.0/token"
}

// MissingCredentials lists the credential fields that are empty.
// Used for startup warnings only; it never blocks startup.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.TenantID == "" {
		missing = append(missing, EnvTenantID)
	}
	if c.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if c.SiteID == "" {
		missing = append(missing, EnvSiteID)
	}
	return missing
}

// parseTimeout accepts a Go duration ("30s") or a bare number of seconds.
func parseTimeout(val string) (time.Duration, error) {
	if n, err := strconv.Atoi(val); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative timeout %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", val, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative timeout %s", d)
	}
	return d, nil
}

func setIfNotEmpty(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}
