package cfg

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"ENVIRONMENT", "LOG_LEVEL", "HIBP_API_KEY", "HIBP_USER_AGENT", "HIBP_PASSWORDS_URL", "HIBP_API_URL", "REQUEST_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.UserAgent != "pwncheck-cli" {
		t.Errorf("UserAgent = %q", c.UserAgent)
	}
	if c.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v", c.RequestTimeout)
	}
	if c.APIKey.Value() != "" {
		t.Errorf("APIKey should be empty by default")
	}
	if err := Validate(c); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HIBP_USER_AGENT", "from-env")
	t.Setenv("HIBP_API_KEY", "")
	os.Unsetenv("HIBP_API_KEY")
	data := "HIBP_API_KEY=dotenv-key-0123456789\nHIBP_USER_AGENT=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.APIKey.Value() != "dotenv-key-0123456789" {
		t.Errorf("APIKey not read from .env")
	}
	if c.UserAgent != "from-env" {
		t.Errorf("environment must win over .env, got %q", c.UserAgent)
	}
}

func TestLoadBadDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("REQUEST_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid REQUEST_TIMEOUT")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Cfg {
		return &Cfg{
			Environment:    "development",
			UserAgent:      "ua",
			PasswordsURL:   "https://api.pwnedpasswords.com",
			APIURL:         "http://127.0.0.1:8080/api/v3",
			RequestTimeout: time.Second,
		}
	}
	tests := []struct {
		name    string
		mutate  func(c *Cfg)
		wantErr bool
	}{
		{"valid", func(c *Cfg) {}, false},
		{"empty user agent", func(c *Cfg) { c.UserAgent = " " }, true},
		{"bad scheme", func(c *Cfg) { c.APIURL = "ftp://example.com" }, true},
		{"no host", func(c *Cfg) { c.PasswordsURL = "https://" }, true},
		{"http in production", func(c *Cfg) { c.Environment = "production" }, true},
		{"zero timeout", func(c *Cfg) { c.RequestTimeout = 0 }, true},
		{"huge timeout", func(c *Cfg) { c.RequestTimeout = time.Hour }, true},
	}
	for _, tt := range tests {
		c := valid()
		tt.mutate(c)
		err := Validate(c)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSecretRedacted(t *testing.T) {
	s := NewSecret("hunter2")
	if got := fmt.Sprintf("%v", s); got != "***REDACTED***" {
		t.Errorf("secret printed as %q", got)
	}
	c := &Cfg{APIKey: s}
	c.Wipe()
	if c.APIKey.Value() != "\x00\x00\x00\x00\x00\x00\x00" {
		t.Errorf("Wipe did not zero the key")
	}
}

func TestValidateReportsFirstBadURL(t *testing.T) {
	c := &Cfg{
		UserAgent:      "ua",
		PasswordsURL:   "ftp://passwords.example",
		APIURL:         "https://",
		RequestTimeout: time.Second,
	}
	for i := 0; i < 20; i++ {
		err := Validate(c)
		if err == nil || err.Error() != "HIBP_PASSWORDS_URL must be an http(s) URL" {
			t.Fatalf("run %d: Validate() = %v, want the HIBP_PASSWORDS_URL error", i, err)
		}
	}
	c.PasswordsURL = "https://api.pwnedpasswords.com"
	if err := Validate(c); err == nil || err.Error() != "HIBP_API_URL has no host" {
		t.Errorf("Validate() = %v, want the HIBP_API_URL error", err)
	}
}
