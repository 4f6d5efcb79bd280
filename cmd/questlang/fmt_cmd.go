package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/questlang/questlang/format"
	"github.com/questlang/questlang/parser"
)

var fmtCmd = &cobra.Command{
	Use:     "fmt [file]",
	Aliases: []string{"f"},
	Short:   "Format QuestLang source code",
	Args:    cobra.MaximumNArgs(1),
	RunE:    fmtHandler,
}

func init() {
	addInputFlags(fmtCmd)
	fmtCmd.Flags().BoolP("write", "w", false, "Write result to source file")
}

func fmtHandler(cmd *cobra.Command, args []string) error {
	sources, err := getSources(cmd, args)
	if err != nil {
		return err
	}
	src := sources[0]
	formatted, err := format.Bytes(context.Background(), []byte(src.code),
		parser.WithFilename(src.name), parser.WithLogger(newLogger()))
	if err != nil {
		return err
	}

	if write, _ := cmd.Flags().GetBool("write"); write && src.name != "" {
		// Write back to file
		return os.WriteFile(src.name, formatted, 0o644)
	}

	// Print to stdout
	fmt.Fprint(cmd.OutOrStdout(), string(formatted))
	return nil
}
