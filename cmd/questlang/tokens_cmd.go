package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/questlang/questlang/internal/lexer"
	"github.com/questlang/questlang/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the tokens of a QuestLang script",
	Args:  cobra.MaximumNArgs(1),
	RunE:  tokensHandler,
}

func init() {
	addInputFlags(tokensCmd)
	tokensCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
}

// tokenJSON is one token in the JSON output.
type tokenJSON struct {
	Type    token.Type `json:"type"`
	Kind    token.Kind `json:"kind"`
	Literal string     `json:"literal"`
	Line    int        `json:"line"`
	Column  int        `json:"column"`
}

func tokensHandler(cmd *cobra.Command, args []string) error {
	sources, err := getSources(cmd, args)
	if err != nil {
		return err
	}
	src := sources[0]
	tokens, lexErr := lexer.Tokenize(src.code, lexer.WithFile(src.name))

	out := cmd.OutOrStdout()
	if output, _ := cmd.Flags().GetString("output"); output == "json" {
		list := make([]tokenJSON, 0, len(tokens))
		for _, tok := range tokens {
			list = append(list, tokenJSON{
				Type:    tok.Type,
				Kind:    tok.Type.Kind(),
				Literal: tok.Literal,
				Line:    tok.StartPosition.LineNumber(),
				Column:  tok.StartPosition.ColumnNumber(),
			})
		}
		if err := writeJSON(out, list); err != nil {
			return err
		}
		return lexErr
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n",
			tok.StartPosition.LineNumber(), tok.StartPosition.ColumnNumber(), tok.Type, tok.Literal)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return lexErr
}
