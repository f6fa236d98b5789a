// report_dialog.go injects the user feedback form into the host document.

package cordova

import (
	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// ReportDialogOptions configures ShowReportDialog.
type ReportDialogOptions struct {
	core.DialogOptions

	// DSN overrides the client's configured DSN.
	DSN string

	// OnLoad is called once the dialog script has loaded.
	OnLoad func()
}

// ShowReportDialog shows a report dialog to the user to send feedback for a
// specific event. It is best effort: every failed precondition aborts
// without returning an error, in this order:
//
//  1. no document in the host: silently
//  2. client disabled: logged
//  3. no EventID: logged
//  4. no DSN, neither override nor configured: logged
//
// Otherwise an async script pointing at the report dialog endpoint is
// appended to the document head, or to the body when there is no head.
func (c *Client) ShowReportDialog(opts ReportDialogOptions) {
	// doesn't work without a document (headless or native-only runtimes)
	doc, ok := c.host.Document()
	if !ok || doc == nil {
		return
	}

	if !c.IsEnabled() {
		c.logger.Error("Trying to call showReportDialog with Sentry Client is disabled")
		return
	}

	rawDSN := opts.DSN
	if rawDSN == "" {
		rawDSN = c.Options().DSN
	}

	if opts.EventID == "" {
		c.logger.Error("Missing `eventId` option in showReportDialog call")
		return
	}

	if rawDSN == "" {
		c.logger.Error("Missing `Dsn` option in showReportDialog call")
		return
	}

	dsn, err := sentry.NewDsn(rawDSN)
	if err != nil {
		c.logger.Error("Invalid `Dsn` option in showReportDialog call: %v", err)
		return
	}

	parent := doc.Head()
	if parent == nil {
		parent = doc.Body()
	}
	if parent == nil {
		c.logger.Error("Document has neither head nor body in showReportDialog call")
		return
	}

	parent.AppendChild(&ScriptElement{
		Src:    core.ReportDialogEndpoint(dsn, opts.DialogOptions),
		Async:  true,
		OnLoad: opts.OnLoad,
	})
}
