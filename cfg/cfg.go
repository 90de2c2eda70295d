package cfg

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Secret struct {
	value []byte
}

func NewSecret(s string) Secret {
	return Secret{value: []byte(s)}
}
func (s Secret) Value() string {
	return string(s.value)
}
func (s Secret) Wipe() {
	for i := range s.value {
		s.value[i] = 0
	}
}
func (s Secret) String() string {
	return "***REDACTED***"
}

type Cfg struct {
	Environment    string
	LogLevel       string
	APIKey         Secret
	UserAgent      string
	PasswordsURL   string
	APIURL         string
	RequestTimeout time.Duration
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "load .env")
	}
	c := &Cfg{}
	c.Environment = getEnv("ENVIRONMENT", "development")
	c.LogLevel = getEnv("LOG_LEVEL", "warn")
	c.APIKey = NewSecret(getEnv("HIBP_API_KEY", ""))
	c.UserAgent = getEnv("HIBP_USER_AGENT", "pwncheck-cli")
	c.PasswordsURL = getEnv("HIBP_PASSWORDS_URL", "https://api.pwnedpasswords.com")
	c.APIURL = getEnv("HIBP_API_URL", "https://haveibeenpwned.com/api/v3")
	var err error
	c.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Validate does not require an API key; the CLI may take it from a flag.
func Validate(c *Cfg) error {
	if strings.TrimSpace(c.UserAgent) == "" {
		return errors.New("HIBP_USER_AGENT must not be empty")
	}
	endpoints := []struct {
		name, raw string
	}{
		{"HIBP_PASSWORDS_URL", c.PasswordsURL},
		{"HIBP_API_URL", c.APIURL},
	}
	for _, e := range endpoints {
		u, err := url.Parse(e.raw)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", e.name)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return errors.Errorf("%s must be an http(s) URL", e.name)
		}
		if u.Scheme == "http" && c.Environment == "production" {
			return errors.Errorf("%s must use https in production", e.name)
		}
		if u.Host == "" {
			return errors.Errorf("%s has no host", e.name)
		}
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.RequestTimeout > 5*time.Minute {
		return errors.New("REQUEST_TIMEOUT cannot exceed 5m")
	}
	return nil
}
func (c *Cfg) Wipe() {
	c.APIKey.Wipe()
}
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := getEnv(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration for %s", key)
	}
	return v, nil
}
