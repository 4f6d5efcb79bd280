package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if output, _ := cmd.Flags().GetString("output"); output == "json" {
			return writeJSON(out, map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
			})
		}
		fmt.Fprintf(out, "questlang %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", commit)
		fmt.Fprintf(out, "Build date: %s\n", date)
		fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	versionCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
}
