// Package appconf holds the application-level configuration shared by the
// composition root, the HTTP layer, and the debug UI.
package appconf

// Environment describes which mode the application runs in.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// String returns the lowercase name of the environment.
func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps a CLI/env flag value onto an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config is the application configuration. The planning core never reads
// this directly; it receives already-constructed clients instead.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	Verbose   bool
	RateLimit int

	// ProviderKey authenticates against the combined place/routing provider.
	ProviderKey string

	// PlaceCachePath is the SQLite file backing the resolved-place cache.
	// ":memory:" is used by tests.
	PlaceCachePath string
}
