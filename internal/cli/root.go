// Package cli implements the sentry-cordova command line.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/strongdm/sentry-cordova-go/internal/config"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/backend"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/transports/async"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/transports/httpsentry"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/transports/multi"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/transports/stderr"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dsn        string
	debug      bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "sentry-cordova",
		Short:         "Sentry Cordova SDK tooling",
		Long:          "sentry-cordova sends test events through the Cordova client\nand injects the report dialog into web view pages.",
		Version:       cordova.SDKVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "DSN, overrides the config file and SENTRY_DSN")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "print SDK diagnostics")

	root.AddCommand(
		newCaptureCommand(flags),
		newDialogCommand(flags),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.dsn != "" {
		cfg.DSN = f.dsn
	}
	if f.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds a client for cfg. Events always pass through the async
// queue; the stderr transport is added in front of HTTP when requested.
func newClient(cfg *config.Config, errOut io.Writer, clientOpts ...cordova.ClientOption) (*cordova.Client, error) {
	opts := cfg.ClientOptions()

	var transports []core.Transport
	if cfg.Transport.Stderr {
		stderrOpts := []stderr.StderrTransportOption{stderr.WithWriter(errOut)}
		if cfg.Transport.Verbose {
			stderrOpts = append(stderrOpts, stderr.WithVerbose())
		}
		transports = append(transports, stderr.NewStderrTransport(stderrOpts...))
	}
	if opts.DSN != "" {
		transports = append(transports, httpsentry.NewHTTPTransport(opts))
	}

	queued := async.NewAsyncTransport(
		multi.NewMultiTransport(transports...),
		async.WithQueueSize(cfg.Transport.QueueSize),
	)

	backendOpts := []backend.Option{backend.WithTransport(queued)}
	if cfg.Transport.RateLimit > 0 {
		backendOpts = append(backendOpts, backend.WithRateLimit(cfg.Transport.RateLimit, cfg.Transport.Burst))
	}

	all := []cordova.ClientOption{cordova.WithBackendOptions(backendOpts...)}
	if cfg.Debug {
		all = append(all, cordova.WithLogger(log.New(errOut, "", log.LstdFlags)))
	}
	all = append(all, clientOpts...)

	return cordova.NewClient(opts, all...)
}
