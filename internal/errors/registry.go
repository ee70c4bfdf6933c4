package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (S001-S019)
	// ============================================

	"S001": {
		Category:   CategoryConfig,
		Message:    "Failed to read configuration",
		Detail:     "The configuration file could not be read or parsed.",
		Suggestion: "Check that the file exists and is valid YAML.",
	},
	"S002": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Detail:     "A configuration value is out of range or malformed.",
		Suggestion: "Run 'storefront config' to list every setting and its environment variable.",
	},
	"S003": {
		Category: CategoryConfig,
		Message:  "Failed to load .env file",
		Detail:   "The dotenv file exists but could not be parsed.",
	},

	// ============================================
	// Transport Errors (S100-S119)
	// ============================================

	"S100": {
		Category:   CategoryTransport,
		Message:    "Backend unreachable",
		Detail:     "The request did not reach the backend.",
		Suggestion: "Check STOREFRONT_API_URL, or start a local backend with 'storefront mock'.",
	},
	"S101": {
		Category:   CategoryTransport,
		Message:    "Backend returned an error status",
		Suggestion: "Check the backend logs for the request ID.",
	},
	"S102": {
		Category: CategoryTransport,
		Message:  "Backend rejected the request",
		Detail:   "The backend answered with success=false.",
	},
	"S103": {
		Category:   CategoryTransport,
		Message:    "Unexpected response payload",
		Detail:     "The response body did not match the expected shape.",
		Suggestion: "Make sure the client and backend versions match.",
	},
	"S104": {
		Category:   CategoryTransport,
		Message:    "Request timed out",
		Suggestion: "Raise STOREFRONT_TIMEOUT or check backend load.",
	},
	"S105": {
		Category: CategoryTransport,
		Message:  "Request canceled",
	},
	"S106": {
		Category:   CategoryTransport,
		Message:    "Resource not found",
		Suggestion: "List the collection to see which IDs exist.",
	},
	"S107": {
		Category:   CategoryTransport,
		Message:    "Not authorized",
		Suggestion: "Set STOREFRONT_API_TOKEN to a valid token.",
	},

	// ============================================
	// Validation Errors (S120-S139)
	// ============================================

	"S120": {
		Category:   CategoryValidation,
		Message:    "Invalid payload file",
		Detail:     "The payload file could not be decoded.",
		Suggestion: "Payload files are YAML or JSON objects using the API field names.",
	},
	"S121": {
		Category: CategoryValidation,
		Message:  "Invalid identifier",
	},

	// ============================================
	// CLI Errors (S140-S159)
	// ============================================

	"S140": {
		Category:   CategoryCLI,
		Message:    "Unknown output format",
		Suggestion: "Use one of: table, json, yaml.",
	},
	"S141": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The mock backend stopped with an error.",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
