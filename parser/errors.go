package parser

import (
	stderrors "errors"
	"fmt"

	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/internal/lexer"
	"github.com/questlang/questlang/internal/token"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although one of `Cause` or `Message`
// are recommended. If `Cause` is set, `Message` will be ignored.
type ErrorOpts struct {
	ErrType       string
	Code          errors.ErrorCode
	Message       string
	Hint          string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewParserError returns a new BaseParserError populated with
// the given error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{
		errType:       opts.ErrType,
		code:          opts.Code,
		message:       opts.Message,
		hint:          opts.Hint,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Type() string
	Code() errors.ErrorCode
	Message() string
	Hint() string
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Error() string
	errors.FriendlyError
	errors.FormattableError
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	// Type of the error, e.g. "syntax error"
	errType string
	// Stable diagnostic code
	code errors.ErrorCode
	// The error message
	message string
	// Optional suggestion shown below the source excerpt
	hint string
	// The wrapped error
	cause error
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
}

func (e *BaseParserError) Error() string {
	msg := e.Message()
	if e.file != "" {
		msg = fmt.Sprintf("%s:%d:%d: %s", e.file,
			e.startPosition.LineNumber(), e.startPosition.ColumnNumber(), msg)
	} else {
		msg = fmt.Sprintf("%d:%d: %s",
			e.startPosition.LineNumber(), e.startPosition.ColumnNumber(), msg)
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	return msg
}

func (e *BaseParserError) FriendlyErrorMessage() string {
	formatter := errors.NewFormatter(false)
	return formatter.Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *BaseParserError) ToFormatted() *errors.FormattedError {
	start := e.startPosition
	end := e.endPosition
	endColumn := 0
	if end.Line == start.Line {
		endColumn = end.ColumnNumber()
	}
	return &errors.FormattedError{
		Code:      e.code,
		Kind:      e.errType,
		Message:   e.Message(),
		Filename:  e.file,
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: endColumn,
		SourceLines: []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
		},
		Hint: e.hint,
	}
}

func (e *BaseParserError) Cause() error {
	return e.cause
}

// Message returns the error message, taken from the cause when one is set.
func (e *BaseParserError) Message() string {
	var le *lexer.Error
	if stderrors.As(e.cause, &le) {
		return le.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

func (e *BaseParserError) Code() errors.ErrorCode {
	return e.code
}

func (e *BaseParserError) Hint() string {
	return e.hint
}

func (e *BaseParserError) StartPosition() token.Position {
	return e.startPosition
}

func (e *BaseParserError) EndPosition() token.Position {
	return e.endPosition
}

func (e *BaseParserError) File() string {
	return e.file
}

func (e *BaseParserError) SourceCode() string {
	return e.sourceCode
}

func (e *BaseParserError) Unwrap() error {
	return e.cause
}

func (e *BaseParserError) Type() string {
	return e.errType
}

// NewSyntaxError returns a new SyntaxError populated with the given error data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

// SyntaxError reports a token sequence that matches no production.
type SyntaxError struct {
	*BaseParserError
}

// NewLexError wraps a lexer failure.
func NewLexError(cause *lexer.Error, file, sourceCode string) *LexError {
	return &LexError{BaseParserError: NewParserError(ErrorOpts{
		ErrType:       "lexical error",
		Code:          cause.Code,
		Cause:         cause,
		File:          file,
		StartPosition: cause.Pos,
		EndPosition:   cause.End,
		SourceCode:    sourceCode,
	})}
}

// LexError reports an unrecognized character or an unterminated string or
// block comment. Lexing stops at the first one.
type LexError struct {
	*BaseParserError
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	case token.STRING:
		return "string"
	case token.NUMBER:
		return "number"
	case token.DICE:
		return "dice literal"
	}
	if t.IsKeyword() {
		return fmt.Sprintf("'%s'", t.Spelling())
	}
	return fmt.Sprintf("'%s'", string(t))
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.STRING:
		return fmt.Sprintf("string \"%s\"", t.Literal)
	case token.IDENT:
		return fmt.Sprintf("identifier '%s'", t.Literal)
	case token.NUMBER, token.DICE:
		return t.Literal
	}
	if t.Literal == "" {
		return string(t.Type)
	}
	return fmt.Sprintf("'%s'", t.Literal)
}

// Errors wraps multiple parser errors for multi-error reporting.
// It implements the error interface so it can be returned from Parse().
type Errors struct {
	errs []ParserError
}

// NewErrors creates an Errors from a slice of ParserError.
func NewErrors(errs []ParserError) *Errors {
	if len(errs) == 0 {
		return nil
	}
	return &Errors{errs: errs}
}

// Error implements the error interface. Returns the first error message.
func (e *Errors) Error() string {
	if len(e.errs) == 0 {
		return ""
	}
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.errs[0].Error(), len(e.errs)-1)
}

// Errors returns the underlying slice of parser errors.
func (e *Errors) Errors() []ParserError {
	return e.errs
}

// Count returns the number of errors.
func (e *Errors) Count() int {
	return len(e.errs)
}

// First returns the first error, or nil if empty.
func (e *Errors) First() ParserError {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs[0]
}

// FriendlyErrorMessage returns a formatted message showing all errors.
func (e *Errors) FriendlyErrorMessage() string {
	formatter := errors.NewFormatter(false)
	return formatter.FormatMultiple(e.ToFormattedMultiple())
}

// ToFormattedMultiple converts all errors to FormattedError for display.
func (e *Errors) ToFormattedMultiple() []*errors.FormattedError {
	formatted := make([]*errors.FormattedError, 0, len(e.errs))
	for _, err := range e.errs {
		formatted = append(formatted, err.ToFormatted())
	}
	return formatted
}

// Unwrap returns the underlying errors for use with errors.Is/As.
func (e *Errors) Unwrap() []error {
	result := make([]error, len(e.errs))
	for i, err := range e.errs {
		result[i] = err
	}
	return result
}

// Diagnostic is the flattened, display-independent form of a parse error.
type Diagnostic struct {
	Severity errors.Severity `json:"severity"`
	Code     errors.ErrorCode `json:"code,omitempty"`
	Message  string           `json:"message"`
	Hint     string           `json:"hint,omitempty"`
	File     string           `json:"file,omitempty"`
	Start    token.Position   `json:"start"`
	End      token.Position   `json:"end"`
}

// Diagnostics flattens an error returned by Parse into a list of
// diagnostics. It returns nil for a nil error.
func Diagnostics(err error) []Diagnostic {
	if err == nil {
		return nil
	}
	var list *Errors
	if stderrors.As(err, &list) {
		out := make([]Diagnostic, 0, list.Count())
		for _, e := range list.errs {
			out = append(out, diagnosticOf(e))
		}
		return out
	}
	var pe ParserError
	if stderrors.As(err, &pe) {
		return []Diagnostic{diagnosticOf(pe)}
	}
	return []Diagnostic{{Severity: errors.SeverityError, Message: err.Error()}}
}

func diagnosticOf(e ParserError) Diagnostic {
	return Diagnostic{
		Severity: errors.SeverityError,
		Code:     e.Code(),
		Message:  e.Message(),
		Hint:     e.Hint(),
		File:     e.File(),
		Start:    e.StartPosition(),
		End:      e.EndPosition(),
	}
}
