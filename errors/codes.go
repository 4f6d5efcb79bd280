package errors

// ErrorCode represents a unique identifier for error types.
// Lexical and syntax errors share the E1xxx range.
type ErrorCode string

const (
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Missing expression
	E1005 ErrorCode = "E1005" // Invalid assignment target
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1010 ErrorCode = "E1010" // Unterminated block comment
	E1011 ErrorCode = "E1011" // Invalid method receiver
	E1012 ErrorCode = "E1012" // Unexpected character
	E1013 ErrorCode = "E1013" // Invalid dialogue choice
	E1014 ErrorCode = "E1014" // Invalid skill check
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "invalid assignment target",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "unterminated block comment",
	E1011: "invalid method receiver",
	E1012: "unexpected character",
	E1013: "invalid dialogue choice",
	E1014: "invalid skill check",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// IsLexical reports whether the code is raised by the lexer rather than
// the parser.
func (c ErrorCode) IsLexical() bool {
	switch c {
	case E1002, E1010, E1012:
		return true
	}
	return false
}

// Category returns "lexical" or "syntax" for known codes.
func (c ErrorCode) Category() string {
	if _, ok := codeDescriptions[c]; !ok {
		return "unknown"
	}
	if c.IsLexical() {
		return "lexical"
	}
	return "syntax"
}
