package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s version %s\n", a.prog, version)
			fmt.Fprintf(a.stdout, "  Go:       %s\n", runtime.Version())
			fmt.Fprintf(a.stdout, "  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
