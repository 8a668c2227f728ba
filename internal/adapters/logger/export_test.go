package logger

// Exported for white-box tests of error formatting.
var (
	CollectMessages  = collectMessages
	FormatErrorChain = formatErrorChain
)
