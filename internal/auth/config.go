package auth

import "os"

// Config holds auth configuration
type Config struct {
	Issuer   string
	JWKSURL  string
	Audience string
}

// LoadConfig reads config from env. AUTH_ISSUER and AUTH_JWKS_URL select the
// identity provider; AUTH_AUD is optional. When AUTH_JWKS_URL is unset the
// API runs without token verification (local development).
func LoadConfig() Config {
	return Config{
		Issuer:   os.Getenv("AUTH_ISSUER"),
		JWKSURL:  os.Getenv("AUTH_JWKS_URL"),
		Audience: os.Getenv("AUTH_AUD"),
	}
}

// Enabled reports whether token verification is configured.
func (c Config) Enabled() bool {
	return c.JWKSURL != ""
}
