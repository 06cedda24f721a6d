package config

import (
	"fmt"
	"os"

	viperlib "github.com/spf13/viper"

	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/paths"
)

// configKeyDelimiter is "::" rather than viper's default "." so that
// dotted values (a notification_title containing punctuation, a future
// per-domain distraction rule) never get misread as a nested path.
const configKeyDelimiter = "::"

// Load reads config.toml from explicitPath, or from the default config
// directory if explicitPath is empty, layering it over Defaults(). A
// missing config file is not an error: Flux runs on defaults until the user
// creates one.
func Load(explicitPath string) (Config, string, error) {
	v := viperlib.NewWithOptions(viperlib.KeyDelimiter(configKeyDelimiter))
	v.SetConfigType("toml")

	applyDefaults(v, Defaults())

	configPath := explicitPath
	if configPath == "" {
		defaultPath, err := paths.DefaultConfigPath()
		if err != nil {
			return Config{}, "", fmt.Errorf("config: resolve default path: %w", err)
		}
		configPath = defaultPath
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			log.Info(log.CatConfig, "no config file found, using defaults", "path", configPath)
			var cfg Config
			if err := v.Unmarshal(&cfg); err != nil {
				return Config{}, "", fmt.Errorf("config: unmarshal defaults: %w", err)
			}
			return cfg, "", nil
		}
		return Config{}, "", fmt.Errorf("config: read %s: %w", configPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("config: unmarshal %s: %w", configPath, err)
	}

	log.Info(log.CatConfig, "config loaded", "path", configPath)
	return cfg, configPath, nil
}

func applyDefaults(v *viperlib.Viper, d Config) {
	v.SetDefault("timer::check_in_threshold_percents", d.Timer.CheckInThresholdPercents)
	v.SetDefault("timer::default_duration_minutes", d.Timer.DefaultDurationMinutes)

	v.SetDefault("tracker::sample_interval_seconds", d.Tracker.SampleIntervalSeconds)
	v.SetDefault("tracker::short_burst_threshold_seconds", d.Tracker.ShortBurstThresholdSecs)
	v.SetDefault("tracker::distraction_applications", d.Tracker.DistractionApplications)
	v.SetDefault("tracker::friction_applications", d.Tracker.FrictionApplications)
	v.SetDefault("tracker::whitelist", d.Tracker.Whitelist)
	v.SetDefault("tracker::distraction_alerting_enabled", d.Tracker.DistractionAlertingEnabled)
	v.SetDefault("tracker::distraction_threshold_seconds", d.Tracker.DistractionThresholdSeconds)
	v.SetDefault("tracker::friction_threshold_seconds", d.Tracker.FrictionThresholdSeconds)
	v.SetDefault("tracker::script_detector_path", d.Tracker.ScriptDetectorPath)

	v.SetDefault("notifier::check_in_timeout_seconds", d.Notifier.CheckInTimeoutSeconds)
	v.SetDefault("notifier::max_concurrent_dispatch", d.Notifier.MaxConcurrentDispatch)

	v.SetDefault("digest::weekday", d.Digest.Weekday)
	v.SetDefault("digest::hour", d.Digest.Hour)
	v.SetDefault("digest::lookback_days", d.Digest.LookbackDays)

	v.SetDefault("storage::database_path", d.Storage.DatabasePath)
	v.SetDefault("storage::suggestions_path", d.Storage.SuggestionsPath)

	v.SetDefault("tracing::enabled", d.Tracing.Enabled)
	v.SetDefault("tracing::exporter", d.Tracing.Exporter)
	v.SetDefault("tracing::file_path", d.Tracing.FilePath)
	v.SetDefault("tracing::otlp_endpoint", d.Tracing.OTLPAddr)

	v.SetDefault("default_mode", d.DefaultMode)

	v.SetDefault("localization::language", d.Localization.Language)
	v.SetDefault("localization::notification_title", d.Localization.NotificationTitle)
}

// ResolveStoragePaths fills in any StorageConfig fields left empty in
// config.toml with Flux's platform default locations.
func ResolveStoragePaths(cfg Config) (Config, error) {
	if cfg.Storage.DatabasePath == "" {
		p, err := paths.DefaultDatabasePath()
		if err != nil {
			return cfg, err
		}
		cfg.Storage.DatabasePath = p
	}
	if cfg.Storage.SuggestionsPath == "" {
		p, err := paths.DefaultSuggestionsPath()
		if err != nil {
			return cfg, err
		}
		cfg.Storage.SuggestionsPath = p
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "file" && cfg.Tracing.FilePath == "" {
		p, err := paths.DefaultTracesFilePath()
		if err != nil {
			return cfg, err
		}
		cfg.Tracing.FilePath = p
	}
	return cfg, nil
}
