package cmd

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Azure/subscription-copilot/pkg/azure"
)

const (
	envTenantID     = "AZURE_TENANT_ID"
	envClientID     = "AZURE_CLIENT_ID"
	envClientSecret = "AZURE_CLIENT_SECRET"
	envSubscription = "AZURE_SUBSCRIPTION"
)

// Config is the resolved credential and session configuration for one
// invocation.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Subscription string
}

// Credential returns the service principal credential, or nil when
// none was configured so the ambient environment credential is used.
func (c *Config) Credential() *azure.Credential {
	if c.TenantID == "" && c.ClientID == "" && c.ClientSecret == "" {
		return nil
	}
	return &azure.Credential{
		TenantID:     c.TenantID,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}

// loadConfig resolves configuration with flag > .env file > process
// environment precedence.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	envVars := make(map[string]string)
	if wd, err := os.Getwd(); err == nil {
		envFile := filepath.Join(wd, ".env")
		if _, err := os.Stat(envFile); err == nil {
			if fromFile, err := godotenv.Read(envFile); err == nil {
				envVars = fromFile
			}
		}
	}

	tenant, _ := cmd.Flags().GetString("tenant")
	clientID, _ := cmd.Flags().GetString("client-id")
	clientSecret, _ := cmd.Flags().GetString("client-secret")
	subscription, _ := cmd.Flags().GetString("subscription")

	return &Config{
		TenantID:     getFirstNonEmpty(tenant, envVars[envTenantID], os.Getenv(envTenantID)),
		ClientID:     getFirstNonEmpty(clientID, envVars[envClientID], os.Getenv(envClientID)),
		ClientSecret: getFirstNonEmpty(clientSecret, envVars[envClientSecret], os.Getenv(envClientSecret)),
		Subscription: getFirstNonEmpty(subscription, envVars[envSubscription], os.Getenv(envSubscription)),
	}, nil
}

func getFirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
