package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/idbot/cmd/idbot/internal"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s idbot %s\n", internal.Logo, internal.FormatVersion())
			build, goVer := internal.FormatBuildInfo()
			if build != "" {
				_, _ = fmt.Fprintf(out, "  Build: %s\n", build)
			}
			_, _ = fmt.Fprintf(out, "  Go: %s\n", goVer)
			return nil
		},
	}
}
