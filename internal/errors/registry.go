package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Runtime (E001-E019)

	"E001": {
		Category: CategoryRuntime,
		Message:  "Handler panicked",
	},

	// Config (E020-E039)

	"E020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"E021": {
		Category:   CategoryConfig,
		Message:    "Configuration file unreadable",
		Suggestion: "Check the path passed to --config and the file permissions.",
	},
	"E022": {
		Category:   CategoryConfig,
		Message:    "Unsupported configuration format",
		Suggestion: "Use a .yaml, .yml or .json file.",
	},

	// Protocol (E060-E079)

	"E060": {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Handler not found",
	},
	"E062": {
		Category: CategoryProtocol,
		Message:  "Frame too large",
	},

	// Server (E080-E099)

	"E080": {
		Category:   CategoryServer,
		Message:    "Server failed to start",
		Suggestion: "Is another process already listening on this address?",
	},
}

// Lookup returns the template for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
