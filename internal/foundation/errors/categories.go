package errors

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryConfig represents user-facing configuration and input errors.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// CategoryFileSystem covers read, write and create-directory failures.
	CategoryFileSystem ErrorCategory = "filesystem"
	// CategoryTemplate covers template parse and execution failures.
	CategoryTemplate ErrorCategory = "template"
	// CategoryShell covers transform command strings that cannot be split into words.
	CategoryShell ErrorCategory = "shell"
	// CategoryTransform covers transform processes that cannot be started or fail in strict mode.
	CategoryTransform ErrorCategory = "transform"
	// CategoryPath covers paths that unexpectedly lack the prefix they are rewritten from.
	CategoryPath ErrorCategory = "path"
	// CategoryEncoding covers content that must be text but is not valid UTF-8.
	CategoryEncoding ErrorCategory = "encoding"
	// CategoryPathConversion covers paths that cannot be represented as template names.
	CategoryPathConversion ErrorCategory = "path_conversion"

	CategoryBuild    ErrorCategory = "build"
	CategoryStore    ErrorCategory = "store"
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution completely
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}
