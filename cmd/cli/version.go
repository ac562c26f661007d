package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapassist/mapassist/internal/version"
)

func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Printf("mapassist %s\n", info.Version)
			if info.GitCommit != "" {
				fmt.Printf("  commit:     %s\n", info.GitCommit)
			}
			if info.BuildDate != "" {
				fmt.Printf("  built:      %s\n", info.BuildDate)
			}
			fmt.Printf("  go version: %s\n", info.GoVersion)
			fmt.Printf("  platform:   %s\n", info.Platform)
		},
	}

	return cmd
}
