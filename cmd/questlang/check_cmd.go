package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/parser"
	"github.com/questlang/questlang/syntax"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check QuestLang scripts for syntax errors",
	Long: `Parse each script and report every syntax error found. With --preset,
also reject language features the preset disallows. The command fails if
any file has problems.`,
	RunE: checkHandler,
}

func init() {
	addInputFlags(checkCmd)
	checkCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	checkCmd.Flags().String("preset", "full",
		"Feature preset to enforce ("+strings.Join(syntax.PresetNames(), ", ")+")")
	checkCmd.Flags().Int("max-errors", parser.MaxErrors, "Errors reported per file before giving up (0 for no limit)")
	viper.BindPFlag("preset", checkCmd.Flags().Lookup("preset"))
	viper.BindPFlag("max-errors", checkCmd.Flags().Lookup("max-errors"))
}

// fileReport is the JSON output for one checked file.
type fileReport struct {
	File        string              `json:"file"`
	Diagnostics []parser.Diagnostic `json:"diagnostics"`
	Violations  []string            `json:"violations,omitempty"`
}

func checkHandler(cmd *cobra.Command, args []string) error {
	sources, err := getSources(cmd, args)
	if err != nil {
		return err
	}
	preset := viper.GetString("preset")
	config, ok := syntax.Preset(preset)
	if !ok {
		return fmt.Errorf("unknown preset %q (expected one of: %s)",
			preset, strings.Join(syntax.PresetNames(), ", "))
	}

	c := &checker{
		validator: syntax.NewSyntaxValidator(config),
		formatter: errors.NewFormatter(colorEnabled(os.Stderr)),
		stderr:    cmd.ErrOrStderr(),
		options: []parser.Option{
			parser.WithMaxErrors(viper.GetInt("max-errors")),
			parser.WithLogger(newLogger()),
		},
	}

	var result *multierror.Error
	var reports []fileReport
	for _, src := range sources {
		report, err := c.check(cmd.Context(), src)
		reports = append(reports, report)
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	if output, _ := cmd.Flags().GetString("output"); output == "json" {
		if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	} else if result == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) ok\n", len(sources))
	}
	return result.ErrorOrNil()
}

type checker struct {
	validator *syntax.SyntaxValidator
	formatter *errors.Formatter
	stderr    io.Writer
	options   []parser.Option
}

// check parses one source, writes its diagnostics to stderr and returns
// a summary error if it has any problems.
func (c *checker) check(ctx context.Context, src source) (fileReport, error) {
	name := src.name
	if name == "" {
		name = "<input>"
	}
	report := fileReport{File: name, Diagnostics: []parser.Diagnostic{}}
	if ctx == nil {
		ctx = context.Background()
	}

	opts := append([]parser.Option{parser.WithFilename(src.name)}, c.options...)
	file, err := parser.Parse(ctx, src.code, opts...)
	if err != nil {
		report.Diagnostics = parser.Diagnostics(err)
		var errs *parser.Errors
		if stderrors.As(err, &errs) {
			fmt.Fprintln(c.stderr, c.formatter.FormatMultiple(errs.ToFormattedMultiple()))
			return report, fmt.Errorf("%s: %d syntax error(s)", name, errs.Count())
		}
		return report, fmt.Errorf("%s: %w", name, err)
	}

	violations := c.validator.Validate(file)
	for _, v := range violations {
		report.Violations = append(report.Violations, v.Error())
		fmt.Fprintln(c.stderr, v.Error())
	}
	if len(violations) > 0 {
		return report, fmt.Errorf("%s: %w", name, syntax.NewValidationErrors(violations))
	}
	return report, nil
}
