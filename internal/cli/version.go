package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the SDK identity",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", cordova.SDKName, cordova.SDKVersion, cordova.PackageName)
		},
	}
}
