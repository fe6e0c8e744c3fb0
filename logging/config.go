package logging

// Config contains the configurable items for this package.
type Config struct {
	Environment string `long:"environment" description:"Logger environment, 'dev' for console output"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Environment: "dev",
	}
}
