package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Extract  ExtractConfig  `yaml:"extract"`
	Engine   EngineConfig   `yaml:"engine"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ExtractConfig tunes the message extraction rules.
type ExtractConfig struct {
	MinMessageLen int `yaml:"min_message_len" env:"EXTRACT_MIN_MESSAGE_LEN" env-default:"10"`
	TitleMaxLen   int `yaml:"title_max_len"   env:"EXTRACT_TITLE_MAX_LEN"   env-default:"100"`
	SnippetLen    int `yaml:"snippet_len"     env:"EXTRACT_SNIPPET_LEN"     env-default:"200"`

	// ChannelProjectWins controls which project source takes precedence
	// when a message carries an explicit "project: x" marker AND arrives
	// from a proj-/project-/team- channel. True matches the historical
	// behavior (channel name wins).
	ChannelProjectWins bool `yaml:"channel_project_wins" env:"EXTRACT_CHANNEL_PROJECT_WINS" env-default:"true"`
}

// EngineConfig tunes workflow and digest behavior.
type EngineConfig struct {
	SearchDefaultLimit int `yaml:"search_default_limit" env:"ENGINE_SEARCH_DEFAULT_LIMIT" env-default:"50"`
	StaleAfterDays     int `yaml:"stale_after_days"     env:"ENGINE_STALE_AFTER_DAYS"     env-default:"30"`
	FocusTopN          int `yaml:"focus_top_n"          env:"ENGINE_FOCUS_TOP_N"          env-default:"5"`
	DigestItemLimit    int `yaml:"digest_item_limit"    env:"ENGINE_DIGEST_ITEM_LIMIT"    env-default:"100"`
}
