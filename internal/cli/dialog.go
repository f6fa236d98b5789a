package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/webview"
)

func newDialogCommand(flags *globalFlags) *cobra.Command {
	var (
		eventID   string
		inPath    string
		outPath   string
		userName  string
		userEmail string
	)

	cmd := &cobra.Command{
		Use:   "dialog",
		Short: "Inject the report dialog script into an HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" {
				return errors.New("--in is required")
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			in, err := os.Open(inPath)
			if err != nil {
				return fmt.Errorf("open page: %w", err)
			}
			defer in.Close()

			doc, err := webview.Parse(in)
			if err != nil {
				return err
			}

			client, err := newClient(cfg, cmd.ErrOrStderr(), cordova.WithHost(webview.NewHost(doc)))
			if err != nil {
				return err
			}
			defer client.Close()

			dialog := cordova.ReportDialogOptions{DialogOptions: cfg.DialogOptions(eventID)}
			if userName != "" || userEmail != "" {
				dialog.User = &core.DialogUser{Name: userName, Email: userEmail}
			}

			before := len(doc.Scripts())
			client.ShowReportDialog(dialog)
			if len(doc.Scripts()) == before {
				return errors.New("report dialog was not injected, run with --debug for details")
			}

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			return doc.Render(out)
		},
	}

	cmd.Flags().StringVar(&eventID, "event-id", "", "event the feedback is about")
	cmd.Flags().StringVar(&inPath, "in", "", "HTML page to inject into")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")
	cmd.Flags().StringVar(&userName, "user-name", "", "pre-filled user name")
	cmd.Flags().StringVar(&userEmail, "user-email", "", "pre-filled user email")
	return cmd
}
