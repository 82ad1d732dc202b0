package driven

// ConfigStore provides persistent application configuration.
// Keys use dot notation, e.g. "store.department" or "llm.api_key".
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value ("" when unset).
	GetString(key string) string

	// GetInt retrieves an integer value (0 when unset).
	GetInt(key string) int

	// GetBool retrieves a boolean value (false when unset).
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value (nil when unset).
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error
}
