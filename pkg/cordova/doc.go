// Package cordova is the Sentry client for Cordova and other hybrid mobile
// web views.
//
// The client composes with the generic base pipeline in package core: it
// tags every outgoing event with the platform and the Cordova SDK identity,
// then hands the event back to the base pipeline unchanged in every other
// respect. It can also inject the user feedback (report dialog) script into
// the host web view.
//
// # Quick Start
//
//	client, err := cordova.NewClient(cordova.Options{
//	    DSN:     "https://public@o0.ingest.sentry.io/1",
//	    Release: "my-app@1.2.0",
//	}, cordova.WithHost(webview.NewHost(doc)))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if id := client.CaptureException(ctx, err, nil, nil); id != nil {
//	    client.ShowReportDialog(cordova.ReportDialogOptions{
//	        DialogOptions: core.DialogOptions{EventID: string(*id)},
//	    })
//	}
//
// # Design Principles
//
//   - The adapter is purely additive: it never suppresses or short-circuits base preparation
//   - Capture and report dialog calls never fail the caller: problems are logged
//   - No mutable state beyond the configuration captured at construction
package cordova
