package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"pwncheck/cfg"
	"pwncheck/pkg/domain"
	"pwncheck/svc/hibp"
	"pwncheck/svc/util"
)

type options struct {
	apiKey        string
	emailAddress  string
	password      string
	breach        string
	passwordCheck bool
	breachesCheck bool
	pastesCheck   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pwncheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.StringVar(&o.apiKey, "apiKey", "", "API key from https://haveibeenpwned.com/API/Key (default $HIBP_API_KEY)")
	fs.StringVar(&o.emailAddress, "emailAddress", "", "Email address for breach and paste checks")
	fs.StringVar(&o.password, "password", "", "Password to look up")
	fs.StringVar(&o.breach, "breach", "", "Breach name to show details for")
	fs.BoolVar(&o.passwordCheck, "passwordCheck", false, "Check whether a password has been pwned. Requires -password")
	fs.BoolVar(&o.breachesCheck, "breachesCheck", false, "List breaches for an email address. Requires -emailAddress")
	fs.BoolVar(&o.pastesCheck, "pastesCheck", false, "List pastes for an email address. Requires -emailAddress")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	defer c.Wipe()
	if err := cfg.Validate(c); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 1
	}
	util.InitLog(stderr, c.LogLevel, c.Environment == "development")

	if o.apiKey == "" {
		o.apiKey = c.APIKey.Value()
	}
	if err := o.validate(); err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	client := hibp.New(
		hibp.WithPasswordsURL(c.PasswordsURL),
		hibp.WithAPIURL(c.APIURL),
	)
	ck := &checker{client: client, cfg: c, opts: o, out: stdout}
	steps := []struct {
		enabled bool
		name    string
		fn      func(context.Context) error
	}{
		{o.passwordCheck, "password check", ck.password},
		{o.breachesCheck, "breaches check", ck.breaches},
		{o.pastesCheck, "pastes check", ck.pastes},
		{o.breach != "", "breach lookup", ck.breachInfo},
	}
	for _, s := range steps {
		if !s.enabled {
			continue
		}
		if err := ck.do(s.fn); err != nil {
			util.Error().Err(err).Str("step", s.name).Str("code", domain.Code(err)).Msg("lookup failed")
			fmt.Fprintf(stderr, "%s failed: %v\n", s.name, err)
			return 1
		}
	}
	return 0
}

func (o options) validate() error {
	if !o.passwordCheck && !o.breachesCheck && !o.pastesCheck && o.breach == "" {
		return fmt.Errorf("nothing to do: pass -passwordCheck, -breachesCheck, -pastesCheck or -breach")
	}
	if o.apiKey == "" {
		return fmt.Errorf("-apiKey is required")
	}
	if o.passwordCheck && o.password == "" {
		return fmt.Errorf("-passwordCheck requires -password")
	}
	if (o.breachesCheck || o.pastesCheck) && o.emailAddress == "" {
		return fmt.Errorf("-breachesCheck and -pastesCheck require -emailAddress")
	}
	return nil
}

type checker struct {
	client *hibp.Client
	cfg    *cfg.Cfg
	opts   options
	out    io.Writer
}

// do bounds one lookup by the configured timeout and tags it with a request id.
func (ck *checker) do(fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), ck.cfg.RequestTimeout)
	defer cancel()
	return fn(util.WithRequestID(ctx, util.NewRequestID()))
}

func (ck *checker) password(ctx context.Context) error {
	n, err := ck.client.PasswordCount(ctx, ck.opts.apiKey, ck.cfg.UserAgent, ck.opts.password)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(ck.out, "That password has not been found in any breaches")
		return nil
	}
	fmt.Fprintf(ck.out, "That password has been found in %d breaches\nRecommend not to use\n", n)
	return nil
}

func (ck *checker) breaches(ctx context.Context) error {
	breaches, found, err := ck.client.BreachesForAccount(ctx, ck.opts.apiKey, ck.cfg.UserAgent, ck.opts.emailAddress)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(ck.out, "That email address has been involved in no breaches")
		return nil
	}
	fmt.Fprintln(ck.out, "That email address has been involved in the following breaches")
	for _, b := range breaches {
		fmt.Fprintln(ck.out, b.Name)
	}
	return nil
}

func (ck *checker) pastes(ctx context.Context) error {
	pastes, err := ck.client.PastesForAccount(ctx, ck.opts.apiKey, ck.cfg.UserAgent, ck.opts.emailAddress)
	if err != nil {
		return err
	}
	if len(pastes) == 0 {
		fmt.Fprintln(ck.out, "That email address has been found in no pastes")
		return nil
	}
	fmt.Fprintln(ck.out, "That email address has been found in the following pastes")
	for _, p := range pastes {
		fmt.Fprintf(ck.out, "%s/%s\n", p.Source, p.ID)
	}
	return nil
}

func (ck *checker) breachInfo(ctx context.Context) error {
	b, err := ck.client.Breach(ctx, ck.opts.apiKey, ck.cfg.UserAgent, ck.opts.breach)
	if err != nil {
		return err
	}
	if b == nil {
		fmt.Fprintf(ck.out, "No breach named %s\n", ck.opts.breach)
		return nil
	}
	fmt.Fprintf(ck.out, "%s (%s)\n", b.Title, b.Domain)
	fmt.Fprintf(ck.out, "Breach date: %s\n", b.BreachDate)
	fmt.Fprintf(ck.out, "Accounts: %d\n", b.PwnCount)
	fmt.Fprintf(ck.out, "Data classes: %s\n", strings.Join(b.DataClasses, ", "))
	return nil
}
