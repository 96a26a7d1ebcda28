package providers

import (
	"fmt"
	"path/filepath"
	"potatoguard/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "POTATO_LOG_LEVEL")
	viper.BindEnv("backend.baseUrl", "POTATO_BACKEND_URL")
	viper.BindEnv("session.ttl", "POTATO_SESSION_TTL")
	viper.BindEnv("session.cacheSize", "POTATO_SESSION_CACHE_SIZE")
	viper.BindEnv("metrics.enabled", "POTATO_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	// The backend location is resolved exactly once here; everything
	// downstream receives it through the config struct.
	conf.Backend.BaseURL = strings.TrimRight(conf.Backend.BaseURL, "/")

	conf.AppName = "PotatoGuardGateway"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
