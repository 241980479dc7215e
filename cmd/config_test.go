package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// chdir changes the working directory for the duration of the test,
// matching t.Chdir from Go 1.24, which this toolchain predates.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("tenant", "", "")
	cmd.Flags().String("client-id", "", "")
	cmd.Flags().String("client-secret", "", "")
	cmd.Flags().String("subscription", "", "")
	return cmd
}

func TestGetFirstNonEmpty(t *testing.T) {
	if got := getFirstNonEmpty("", "", "third"); got != "third" {
		t.Errorf("expected %q, got %q", "third", got)
	}
	if got := getFirstNonEmpty("first", "second"); got != "first" {
		t.Errorf("expected %q, got %q", "first", got)
	}
	if got := getFirstNonEmpty(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	t.Setenv(envTenantID, "env-tenant")
	chdir(t, t.TempDir())

	cmd := newTestCommand()
	if err := cmd.Flags().Set("tenant", "flag-tenant"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TenantID != "flag-tenant" {
		t.Errorf("expected flag to win, got %q", cfg.TenantID)
	}
}

func TestLoadConfigDotEnvBeatsProcessEnv(t *testing.T) {
	t.Setenv(envSubscription, "from-process-env")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(envSubscription+"=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := loadConfig(newTestCommand())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Subscription != "from-dotenv" {
		t.Errorf("expected .env to win over process env, got %q", cfg.Subscription)
	}
}

func TestConfigCredentialNilWhenUnset(t *testing.T) {
	cfg := &Config{Subscription: "Dev"}
	if cfg.Credential() != nil {
		t.Error("expected nil credential when no service principal is configured")
	}

	cfg = &Config{TenantID: "t", ClientID: "c", ClientSecret: "s"}
	cred := cfg.Credential()
	if cred == nil || cred.TenantID != "t" {
		t.Errorf("unexpected credential: %+v", cred)
	}
}
