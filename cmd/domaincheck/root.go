// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/H0llyW00dzZ/domain-validator/src/config"
	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/H0llyW00dzZ/domain-validator/src/metrics"
	"github.com/H0llyW00dzZ/domain-validator/src/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitOK       = 0
	exitNegative = 1 // a domain is invalid or not verified
	exitFailure  = 2 // the check could not be performed
)

// exitError carries an exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// app holds the state shared by all subcommands of one invocation.
type app struct {
	v         *viper.Viper
	logger    *zap.Logger
	cfg       config.Config
	registry  *prometheus.Registry
	recorder  *metrics.Recorder
	client    *resolver.Client // nil when the system resolver is used
	validator *domain.Validator
}

func newApp() *app {
	v := viper.New()
	v.SetEnvPrefix("DOMAINCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &app{
		v:      v,
		logger: zap.NewNop(),
	}
}

// run executes the command line args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp()
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if ferr := a.finish(); ferr != nil && err == nil {
		err = ferr
	}

	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "domaincheck:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "domaincheck:", err)
	return exitFailure
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "domaincheck",
		Short: "Validate custom domains and verify domain ownership",
		Long: `domaincheck validates domain names before they are accepted as custom
domains: syntax, length limits, reserved names and DNS resolvability.

It also generates DNS TXT ownership challenges and verifies them once the
record has been published.

Settings come from an optional YAML file (--config), DOMAINCHECK_*
environment variables and flags, in increasing order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.StringSlice("server", nil, "DNS server address, repeatable (default from /etc/resolv.conf)")
	flags.Duration("timeout", domain.DefaultResolverTimeout, "time limit for each DNS stage")
	flags.Bool("ascii-only", true, "reject Unicode labels")
	flags.Int("retries", 2, "retries per DNS server after transient failures")
	flags.Bool("system-resolver", false, "resolve through the operating system instead of querying servers directly")
	flags.BoolP("verbose", "v", false, "development logging at debug level")
	flags.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		a.validateCmd(),
		a.punycodeCmd(),
		a.unicodeCmd(),
		a.challengeCmd(),
		a.serversCmd(),
		versionCmd(),
	)
	return root
}

// setup builds the logger, resolver and validator from the configuration
// file with environment and flag overrides applied.
func (a *app) setup() error {
	logger, err := newLogger(a.v.GetBool("verbose"))
	if err != nil {
		return err
	}
	a.logger = logger

	cfg := config.Default()
	if path := a.v.GetString("config"); path != "" {
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	a.overlay(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	var r domain.Resolver
	if cfg.Resolver.System {
		r = resolver.NewSystem(nil)
	} else {
		a.client = resolver.New(append(cfg.ResolverOptions(), resolver.WithLogger(logger))...)
		r = a.client
	}

	a.registry = prometheus.NewRegistry()
	instrumented, err := metrics.NewResolver(r, a.registry)
	if err != nil {
		return err
	}
	if a.recorder, err = metrics.NewRecorder(a.registry); err != nil {
		return err
	}

	a.validator = domain.New(instrumented, append(cfg.DomainOptions(), domain.WithLogger(logger))...)

	logger.Debug("configuration loaded",
		zap.Bool("ascii_only", cfg.Validator.ASCIIOnly),
		zap.Duration("resolver_timeout", cfg.Validator.ResolverTimeout),
		zap.Bool("system_resolver", cfg.Resolver.System),
		zap.Strings("servers", cfg.Resolver.Servers),
	)
	return nil
}

// overlay applies environment variables and flags that were set
// explicitly on top of cfg.
func (a *app) overlay(cfg *config.Config) {
	if a.v.IsSet("server") {
		cfg.Resolver.Servers = a.v.GetStringSlice("server")
	}
	if a.v.IsSet("timeout") {
		cfg.Validator.ResolverTimeout = a.v.GetDuration("timeout")
	}
	if a.v.IsSet("ascii-only") {
		cfg.Validator.ASCIIOnly = a.v.GetBool("ascii-only")
	}
	if a.v.IsSet("retries") {
		cfg.Resolver.MaxRetries = a.v.GetInt("retries")
	}
	if a.v.IsSet("system-resolver") {
		cfg.Resolver.System = a.v.GetBool("system-resolver")
	}
}

// finish writes the metrics file, if requested, and flushes the logger.
func (a *app) finish() error {
	defer func() { _ = a.logger.Sync() }()

	path := a.v.GetString("metrics-file")
	if path == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// unicodeValidator returns a local-only validator for the conversion
// commands. Unicode mode is enabled unless ASCII-only was requested
// explicitly.
func (a *app) unicodeValidator() *domain.Validator {
	asciiOnly := a.v.IsSet("ascii-only") && a.v.GetBool("ascii-only")
	opts := append(a.cfg.DomainOptions(), domain.WithASCIIOnly(asciiOnly), domain.WithLogger(a.logger))
	return domain.New(nil, opts...)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the domaincheck version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "domaincheck %s\n", version)
		},
	}
}
