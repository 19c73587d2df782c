package config

// Working-directory strategy names accepted in [workdir] strategy.
const (
	StrategyCurrent   = "current"
	StrategySpecified = "specified"
	StrategyTemporary = "temporary"
	StrategyUserData  = "user-data"
)

const (
	defaultStrategy  = StrategyCurrent
	defaultStorePath = "~/.local/share/isynspec/lines.db"
	defaultLogDir    = "~/.local/share/isynspec/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Workdir: Workdir{
			Strategy: defaultStrategy,
			Lock:     true,
		},
		Store: Store{
			Path: defaultStorePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
