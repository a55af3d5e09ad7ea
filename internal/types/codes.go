package types

// Error codes carried by syntax and resolution errors. Centralizing these
// prevents silent breakage from typos in string literals.

// Parser error codes.
const (
	CodeUnexpectedToken        = "unexpected-token"
	CodeExpectedText           = "expected-text"
	CodeExpectedSeparator      = "expected-separator"
	CodeMissingModuleName      = "missing-module-name"
	CodeInvalidTag             = "invalid-tag"
	CodeInvalidExtensionMarker = "invalid-extension-marker"
	CodeUnexpectedEnd          = "unexpected-end"
	CodeNoText                 = "no-text"
	CodeInvalidRangeValue      = "invalid-range-value"
	CodeInvalidNumber          = "invalid-number"
	CodeUnterminatedString     = "unterminated-string"
	CodeUnterminatedComment    = "unterminated-comment"
	CodeUnexpectedCharacter    = "unexpected-character"
)

// Resolver error codes.
const (
	CodeSymbolNotFound      = "symbol-not-found"
	CodeTypeNotFound        = "type-not-found"
	CodeImportNotFound      = "import-not-found"
	CodeValueCycle          = "value-cycle"
	CodeDuplicateDefinition = "duplicate-definition"
	CodeEmptyRange          = "empty-range"
)

// AllCodes returns all known error codes grouped by phase.
func AllCodes() []CodeInfo {
	return []CodeInfo{
		{Code: CodeUnexpectedToken, Phase: "parser"},
		{Code: CodeExpectedText, Phase: "parser"},
		{Code: CodeExpectedSeparator, Phase: "parser"},
		{Code: CodeMissingModuleName, Phase: "parser"},
		{Code: CodeInvalidTag, Phase: "parser"},
		{Code: CodeInvalidExtensionMarker, Phase: "parser"},
		{Code: CodeUnexpectedEnd, Phase: "parser"},
		{Code: CodeNoText, Phase: "parser"},
		{Code: CodeInvalidRangeValue, Phase: "parser"},
		{Code: CodeInvalidNumber, Phase: "parser"},
		{Code: CodeUnterminatedString, Phase: "lexer"},
		{Code: CodeUnterminatedComment, Phase: "lexer"},
		{Code: CodeUnexpectedCharacter, Phase: "lexer"},
		{Code: CodeSymbolNotFound, Phase: "resolver"},
		{Code: CodeTypeNotFound, Phase: "resolver"},
		{Code: CodeImportNotFound, Phase: "resolver"},
		{Code: CodeValueCycle, Phase: "resolver"},
		{Code: CodeDuplicateDefinition, Phase: "resolver"},
		{Code: CodeEmptyRange, Phase: "resolver"},
	}
}

// CodeInfo describes an error code and the phase that emits it.
type CodeInfo struct {
	Code  string
	Phase string
}
