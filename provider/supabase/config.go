package supabase

import (
	"os"
	"strings"

	"github.com/goliatone/go-errors"
)

// Config holds the identity-service connection settings. Values left empty
// are resolved from the environment; explicit values always win.
type Config struct {
	// URL is the project base URL (e.g. "https://xyz.supabase.co").
	URL string

	// AnonKey is the public (anonymous) API key used for token exchange.
	AnonKey string

	// ServiceKey is the privileged service-role key used for invites and
	// account listing. Never expose it to clients.
	ServiceKey string

	// JWTSecret signs access tokens; route guards verify sessions with it.
	JWTSecret string
}

var (
	urlEnvVars        = []string{"SUPABASE_URL", "PUBLIC_SUPABASE_URL"}
	anonKeyEnvVars    = []string{"SUPABASE_ANON_KEY", "PUBLIC_SUPABASE_ANON_KEY", "PUBLIC_SUPABASE_KEY"}
	serviceKeyEnvVars = []string{"SUPABASE_SERVICE_ROLE_KEY"}
	jwtSecretEnvVars  = []string{"SUPABASE_JWT_SECRET"}
)

// Resolve layers environment variables under any explicitly set values and
// returns the effective configuration. First non-empty source wins.
func (c Config) Resolve() Config {
	c.URL = strings.TrimRight(firstNonEmpty(c.URL, fromEnv(urlEnvVars)), "/")
	c.AnonKey = firstNonEmpty(c.AnonKey, fromEnv(anonKeyEnvVars))
	c.ServiceKey = firstNonEmpty(c.ServiceKey, fromEnv(serviceKeyEnvVars))
	c.JWTSecret = firstNonEmpty(c.JWTSecret, fromEnv(jwtSecretEnvVars))
	return c
}

// ValidatePublic checks the settings needed for token exchange. Missing
// values are a deployment problem, reported as a server error rather than an
// auth failure.
func (c Config) ValidatePublic() error {
	if c.URL == "" || c.AnonKey == "" {
		return errors.New(
			"identity service config missing: set SUPABASE_URL and SUPABASE_ANON_KEY",
			errors.CategoryInternal,
		).WithCode(errors.CodeInternal).WithTextCode("CONFIG_MISSING")
	}
	return nil
}

// ValidateService checks the settings needed for privileged operations.
func (c Config) ValidateService() error {
	if err := c.ValidatePublic(); err != nil {
		return err
	}
	if c.ServiceKey == "" {
		return errors.New(
			"identity service config missing: set SUPABASE_SERVICE_ROLE_KEY",
			errors.CategoryInternal,
		).WithCode(errors.CodeInternal).WithTextCode("CONFIG_MISSING")
	}
	return nil
}

func fromEnv(names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
