package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Backend struct {
	BaseURL string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type SessionConfig struct {
	TTL          time.Duration `yaml:"ttl" validate:"required|min:1"`
	CacheSize    int           `yaml:"cacheSize" validate:"required|min:1"`
	SnapshotPath string        `yaml:"snapshotPath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Backend   Backend       `yaml:"backend"`
	Session   SessionConfig `yaml:"session"`
	Logger    LoggerConfig  `yaml:"logger"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}
