// options.go re-exports the client configuration and defines adapter options.

package cordova

import (
	"log"

	"github.com/strongdm/sentry-cordova-go/pkg/cordova/backend"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// Options configures a Client. See core.Options for the recognized fields.
type Options = core.Options

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	host           Host
	logger         *log.Logger
	backendFactory core.BackendFactory
	backendOptions []backend.Option
	baseOptions    []core.BaseOption
}

// WithHost sets the environment queried for a document by ShowReportDialog.
// Without it the client behaves as a process with no document.
func WithHost(host Host) ClientOption {
	return func(c *clientConfig) {
		if host != nil {
			c.host = host
		}
	}
}

// WithLogger sets the logger for SDK diagnostics.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithBackendFactory replaces the Cordova backend.
func WithBackendFactory(factory core.BackendFactory) ClientOption {
	return func(c *clientConfig) {
		c.backendFactory = factory
	}
}

// WithBackendOptions configures the default Cordova backend.
// Ignored when WithBackendFactory is used.
func WithBackendOptions(opts ...backend.Option) ClientOption {
	return func(c *clientConfig) {
		c.backendOptions = append(c.backendOptions, opts...)
	}
}

// WithBaseOptions passes options through to the base client.
func WithBaseOptions(opts ...core.BaseOption) ClientOption {
	return func(c *clientConfig) {
		c.baseOptions = append(c.baseOptions, opts...)
	}
}
