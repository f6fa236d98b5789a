package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

func newCaptureCommand(flags *globalFlags) *cobra.Command {
	var (
		message string
		level   string
		tags    map[string]string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Send a message event through the Cordova client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return errors.New("--message is required")
			}
			lvl, err := parseLevel(level)
			if err != nil {
				return err
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer client.Close()

			scope := sentry.NewScope()
			scope.SetTags(tags)

			id := client.CaptureMessage(cmd.Context(), message, lvl, scope)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := client.Flush(ctx); err != nil {
				return fmt.Errorf("flush: %w", err)
			}

			if id == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "event not sent")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(*id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "message to send")
	cmd.Flags().StringVarP(&level, "level", "l", "info", "level: debug, info, warning, error or fatal")
	cmd.Flags().StringToStringVarP(&tags, "tag", "t", nil, "tags as key=value")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "how long to wait for delivery")
	return cmd
}

func parseLevel(s string) (sentry.Level, error) {
	switch lvl := sentry.Level(s); lvl {
	case sentry.LevelDebug, sentry.LevelInfo, sentry.LevelWarning, sentry.LevelError, sentry.LevelFatal:
		return lvl, nil
	}
	return "", fmt.Errorf("unknown level %q", s)
}
