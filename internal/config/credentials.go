package config

import "strings"

// CredentialsConfig resolves per-provider API credentials from
// environment-variable-shaped config keys (<PROVIDER>_API_KEY,
// <PROVIDER>_API_SECRET), mirroring the original ConfigManager's
// get_api_key mapping.
type CredentialsConfig struct {
	keys    map[string]string
	secrets map[string]string
}

// NewCredentialsConfig builds a CredentialsConfig from resolved
// key/secret maps (already lower-cased provider names).
func NewCredentialsConfig(keys, secrets map[string]string) CredentialsConfig {
	return CredentialsConfig{keys: keys, secrets: secrets}
}

// APIKey returns the resolved credential string for provider, or empty
// if none is configured. The core only ever asks for a resolved
// string; it never reads environment variables directly.
func (c CredentialsConfig) APIKey(provider string) string {
	return c.keys[strings.ToLower(provider)]
}

// APISecret returns the resolved secret for providers that require a
// key/secret pair (e.g. GoPlus's signed token refresh).
func (c CredentialsConfig) APISecret(provider string) string {
	return c.secrets[strings.ToLower(provider)]
}
