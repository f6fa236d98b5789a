package cordova

// SDK identity reported on every event.
const (
	SDKName    = "sentry.javascript.cordova"
	SDKVersion = "0.15.0"

	// PackageName is the distribution the SDK ships as.
	PackageName = "npm:sentry-cordova"

	// DefaultPlatform is set on events that do not name a platform.
	DefaultPlatform = "javascript"
)
