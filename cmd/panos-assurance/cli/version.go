package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/version"
)

func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current version and exit",
		Long:  `Print the current version and exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("panos-assurance %s\n", version.Version())

			return nil
		},
	}
	return cmd
}
