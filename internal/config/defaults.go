package config

const (
	defaultConfigPath            = "~/.config/plexmissing/config.yaml"
	projectConfigName            = "config.yaml"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBLanguage          = "en"
	defaultTMDBRequestsPerSecond = 20
	defaultOutputDir             = "."
	defaultRequestTimeout        = 30
	defaultLogLevel              = "warn"
	defaultLogFormat             = "console"
)

// Default returns a Config populated with repository defaults. Credentials
// are left empty.
func Default() Config {
	return Config{
		TMDBBaseURL:           defaultTMDBBaseURL,
		TMDBLanguage:          defaultTMDBLanguage,
		TMDBRequestsPerSecond: defaultTMDBRequestsPerSecond,
		OutputDir:             defaultOutputDir,
		RequestTimeout:        defaultRequestTimeout,
		LogLevel:              defaultLogLevel,
		LogFormat:             defaultLogFormat,
	}
}
