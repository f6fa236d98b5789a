// api.go builds endpoint URLs derived from a DSN.

package core

import (
	"fmt"
	"net/url"

	"github.com/getsentry/sentry-go"
)

// DialogUser pre-fills the report dialog's name and email fields.
type DialogUser struct {
	Name  string
	Email string
}

// DialogOptions are the report dialog settings encoded into its URL.
type DialogOptions struct {
	// EventID correlates the feedback with a captured event.
	EventID string

	User *DialogUser

	Lang           string
	Title          string
	Subtitle       string
	Subtitle2      string
	LabelName      string
	LabelEmail     string
	LabelComments  string
	LabelClose     string
	LabelSubmit    string
	ErrorGeneric   string
	ErrorFormEntry string
	SuccessMessage string
}

// ReportDialogEndpoint returns the script URL of the report dialog for dsn.
// Empty options are left out of the query.
func ReportDialogEndpoint(dsn *sentry.Dsn, opts DialogOptions) string {
	endpoint := baseURL(dsn) + dsn.GetPath() + "/api/embed/error-page/"

	query := url.Values{}
	query.Set("dsn", PublicDSN(dsn))

	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	set("eventId", opts.EventID)
	if opts.User != nil {
		set("name", opts.User.Name)
		set("email", opts.User.Email)
	}
	set("lang", opts.Lang)
	set("title", opts.Title)
	set("subtitle", opts.Subtitle)
	set("subtitle2", opts.Subtitle2)
	set("labelName", opts.LabelName)
	set("labelEmail", opts.LabelEmail)
	set("labelComments", opts.LabelComments)
	set("labelClose", opts.LabelClose)
	set("labelSubmit", opts.LabelSubmit)
	set("errorGeneric", opts.ErrorGeneric)
	set("errorFormEntry", opts.ErrorFormEntry)
	set("successMessage", opts.SuccessMessage)

	return endpoint + "?" + query.Encode()
}

// PublicDSN renders dsn without its secret key.
func PublicDSN(dsn *sentry.Dsn) string {
	return fmt.Sprintf("%s://%s@%s%s%s/%s",
		dsn.GetScheme(), dsn.GetPublicKey(), dsn.GetHost(), portSuffix(dsn), dsn.GetPath(), dsn.GetProjectID())
}

func baseURL(dsn *sentry.Dsn) string {
	return fmt.Sprintf("%s://%s%s", dsn.GetScheme(), dsn.GetHost(), portSuffix(dsn))
}

// portSuffix returns ":port" unless the port is the scheme's default.
func portSuffix(dsn *sentry.Dsn) string {
	port := dsn.GetPort()
	switch {
	case port == 0:
		return ""
	case dsn.GetScheme() == "https" && port == 443:
		return ""
	case dsn.GetScheme() == "http" && port == 80:
		return ""
	}
	return fmt.Sprintf(":%d", port)
}
