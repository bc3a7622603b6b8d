package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// applyFallbacks applies environment variable fallbacks
func (c *Config) applyFallbacks() {
	// Note: per-operation API key fallbacks are handled in Get...Config() methods

	c.applyAIKeyFallbacks()
	c.applyServerAPIKeyFallbacks()
	c.applyHistoryFallbacks()
	c.applyTLSDefaults()
	c.applyObservabilityDefaults()
}

// applyAIKeyFallbacks picks up the provider-conventional API key variables
// when no key was configured explicitly
func (c *Config) applyAIKeyFallbacks() {
	if c.AI.APIKey != "" {
		return
	}
	c.AI.APIKey = providerAPIKeyFromEnv(c.AI.Provider)
}

// applyServerAPIKeyFallbacks applies API key fallbacks from environment variables
func (c *Config) applyServerAPIKeyFallbacks() {
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("RESUMEFORGE_SERVER_APIKEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
			// Trim whitespace from each key
			for i, key := range c.Server.APIKeys {
				c.Server.APIKeys[i] = strings.TrimSpace(key)
			}
		}
	}
}

// applyHistoryFallbacks applies history configuration fallbacks
func (c *Config) applyHistoryFallbacks() {
	if c.History.DSN == "" {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			c.History.DSN = dsn
		}
	}
}

// applyTLSDefaults applies TLS-related defaults that depend on other settings
func (c *Config) applyTLSDefaults() {
	// Set default client auth policy for mutual TLS if not specified
	if c.Server.TLS.Mode == "mutual" && c.Server.TLS.ClientAuthPolicy == "" {
		c.Server.TLS.ClientAuthPolicy = "require"
	}

	// Set default TLS version if not specified
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}
}

// applyObservabilityDefaults applies observability defaults derived from the environment
func (c *Config) applyObservabilityDefaults() {
	// Set dynamic service instance ID if not specified
	if c.Observability.ServiceInstance == "" {
		// Try to get hostname, fallback to default
		if hostname, err := os.Hostname(); err == nil {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-%s", c.Observability.ServiceName, hostname)
		} else {
			c.Observability.ServiceInstance = fmt.Sprintf("%s-1", c.Observability.ServiceName)
		}
	}

	// Set console output based on log level if not explicitly configured
	if c.App.LogLevel == "debug" && !c.Observability.ConsoleOutput {
		c.Observability.ConsoleOutput = true
	}
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	// Log config file source
	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	// Log environment variables that are set
	envVars := []string{
		"RESUMEFORGE_AI_APIKEY",
		"RESUMEFORGE_AI_PROVIDER",
		"RESUMEFORGE_AI_MODEL",
		"RESUMEFORGE_SERVER_PORT",
		"RESUMEFORGE_SERVER_HOST",
		"RESUMEFORGE_APP_LOGLEVEL",
		"RESUMEFORGE_HISTORY_DSN",
		"RESUMEFORGE_VAULT_ENABLED",
		"GEMINI_API_KEY",
		"ANTHROPIC_API_KEY",
		"DATABASE_URL",
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			// Mask sensitive values
			lower := strings.ToLower(envVar)
			if strings.Contains(lower, "apikey") || strings.Contains(lower, "key") ||
				strings.Contains(lower, "dsn") || strings.Contains(lower, "database") {
				log.Printf("[CONFIG]   %s=***MASKED***", envVar)
			} else {
				log.Printf("[CONFIG]   %s=%s", envVar, value)
			}
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	// Log key configuration values (with sensitive data masked)
	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] AI Provider: %s", c.AI.Provider)
	log.Printf("[CONFIG] AI Model: %s", c.AI.Model)
	if c.AI.APIKey != "" {
		log.Println("[CONFIG] AI API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] AI API Key: ***NOT SET***")
	}
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] TLS Mode: %s", c.Server.TLS.Mode)
	log.Printf("[CONFIG] History Enabled: %t", c.History.Enabled)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)

	// Log operation-specific configurations
	log.Println("[CONFIG] === Operation-Specific AI Configurations ===")
	log.Printf("[CONFIG] Parse - Provider: %s, Model: %s", c.AI.Parse.Provider, c.AI.Parse.Model)
	log.Printf("[CONFIG] Rewrite - Provider: %s, Model: %s", c.AI.Rewrite.Provider, c.AI.Rewrite.Model)
	log.Printf("[CONFIG] CoverLetter - Provider: %s, Model: %s", c.AI.CoverLetter.Provider, c.AI.CoverLetter.Model)
	log.Printf("[CONFIG] Interview - Provider: %s, Model: %s", c.AI.Interview.Provider, c.AI.Interview.Model)

	log.Println("[CONFIG] =====================================")
}
