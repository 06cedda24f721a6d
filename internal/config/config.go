// Package config provides configuration types and defaults for the Flux
// daemon.
package config

import "time"

// Config holds every tunable of the Flux daemon, loaded once at startup and
// handed to actors as an immutable snapshot. Only the fields documented as
// "live" in Watch are re-read while the daemon runs; everything else
// (thresholds, schedules, storage paths) takes effect on next restart so an
// actor's state machine never observes a rule change mid-session.
type Config struct {
	Timer        TimerConfig        `mapstructure:"timer"`
	Tracker      TrackerConfig      `mapstructure:"tracker"`
	Notifier     NotifierConfig     `mapstructure:"notifier"`
	Digest       DigestConfig       `mapstructure:"digest"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Tracing      TracingConfig      `mapstructure:"tracing"`
	DefaultMode  string             `mapstructure:"default_mode"`
	Localization LocalizationConfig `mapstructure:"localization"`
}

// TimerConfig governs the session timer actor.
type TimerConfig struct {
	// CheckInThresholdPercents are the elapsed-fraction points (of a
	// bounded session's planned duration) at which the Timer asks the
	// Notifier to check in with the user.
	CheckInThresholdPercents []int `mapstructure:"check_in_threshold_percents"`
	// DefaultDurationMinutes is the Timer's session length for a start
	// message that carries no duration. The IPC server always passes one
	// (25 minutes when a StartSession request omits it), so sessions started
	// over IPC do not use this value.
	DefaultDurationMinutes int `mapstructure:"default_duration_minutes"`
}

// TrackerConfig governs the app tracker actor's sampling and classification.
type TrackerConfig struct {
	SampleIntervalSeconds   int      `mapstructure:"sample_interval_seconds"`
	ShortBurstThresholdSecs int      `mapstructure:"short_burst_threshold_seconds"`
	DistractionApplications []string `mapstructure:"distraction_applications"`
	FrictionApplications    []string `mapstructure:"friction_applications"`
	Whitelist               []string `mapstructure:"whitelist"`
	// DistractionAlertingEnabled gates whether a crossed distraction
	// threshold actually dispatches a notification, independent of
	// detection itself still running (so suggestions.json stays populated
	// even with alerts muted).
	DistractionAlertingEnabled  bool `mapstructure:"distraction_alerting_enabled"`
	DistractionThresholdSeconds int  `mapstructure:"distraction_threshold_seconds"`
	FrictionThresholdSeconds    int  `mapstructure:"friction_threshold_seconds"`
	// ScriptDetectorPath, when non-empty, names an executable the App
	// Tracker shells out to each sample for app/title detection.
	ScriptDetectorPath string `mapstructure:"script_detector_path"`
}

// NotifierConfig governs the notifier actor's reply-channel timeouts and
// worker pool size.
type NotifierConfig struct {
	CheckInTimeoutSeconds int `mapstructure:"check_in_timeout_seconds"`
	MaxConcurrentDispatch int `mapstructure:"max_concurrent_dispatch"`
}

// DigestConfig governs the weekly digest scheduler.
type DigestConfig struct {
	Weekday        string `mapstructure:"weekday"` // e.g. "monday"
	Hour           int    `mapstructure:"hour"`    // 0-23, local time
	LookbackDays   int    `mapstructure:"lookback_days"`
}

// StorageConfig controls where Flux persists its database and documents.
type StorageConfig struct {
	DatabasePath    string `mapstructure:"database_path"`
	SuggestionsPath string `mapstructure:"suggestions_path"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"` // "none", "file", "stdout", "otlp"
	FilePath string `mapstructure:"file_path"`
	OTLPAddr string `mapstructure:"otlp_endpoint"`
}

// LocalizationConfig holds read-only presentation fields that the config
// watcher is allowed to hot-reload, since changing display language or
// notification phrasing mid-session never affects the Timer/Tracker state
// machines.
type LocalizationConfig struct {
	Language           string `mapstructure:"language"`
	NotificationTitle  string `mapstructure:"notification_title"`
}

// Defaults returns Flux's built-in configuration, used both as the base the
// user's config.toml overrides and as the fallback when no config file is
// found.
func Defaults() Config {
	return Config{
		Timer: TimerConfig{
			CheckInThresholdPercents: []int{25, 50, 75},
			DefaultDurationMinutes:   50,
		},
		Tracker: TrackerConfig{
			SampleIntervalSeconds:       5,
			ShortBurstThresholdSecs:     15,
			DistractionApplications:     []string{"reddit", "twitter", "youtube"},
			FrictionApplications:        []string{"slack", "mail"},
			Whitelist:                   []string{},
			DistractionAlertingEnabled:  true,
			DistractionThresholdSeconds: 60,
			FrictionThresholdSeconds:    30,
			ScriptDetectorPath:          "",
		},
		Notifier: NotifierConfig{
			CheckInTimeoutSeconds: 120,
			MaxConcurrentDispatch: 4,
		},
		Digest: DigestConfig{
			Weekday:      "monday",
			Hour:         9,
			LookbackDays: 7,
		},
		Storage: StorageConfig{
			DatabasePath:    "",
			SuggestionsPath: "",
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "none",
		},
		DefaultMode: "ai-assisted",
		Localization: LocalizationConfig{
			Language:          "en",
			NotificationTitle: "Flux",
		},
	}
}

// DefaultDuration returns the timer's default session length as a
// time.Duration.
func (c TimerConfig) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationMinutes) * time.Minute
}

// CheckInTimeout returns the notifier's check-in reply timeout as a
// time.Duration.
func (c NotifierConfig) CheckInTimeout() time.Duration {
	return time.Duration(c.CheckInTimeoutSeconds) * time.Second
}

// ShortBurstThreshold returns the tracker's short-burst window as a
// time.Duration.
func (c TrackerConfig) ShortBurstThreshold() time.Duration {
	return time.Duration(c.ShortBurstThresholdSecs) * time.Second
}

// SampleInterval returns the tracker's polling interval as a time.Duration.
func (c TrackerConfig) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalSeconds) * time.Second
}

// DistractionThreshold returns the consecutive-seconds threshold that
// triggers a distraction alert.
func (c TrackerConfig) DistractionThreshold() time.Duration {
	return time.Duration(c.DistractionThresholdSeconds) * time.Second
}

// FrictionThreshold returns the consecutive-seconds threshold that triggers
// a friction reminder.
func (c TrackerConfig) FrictionThreshold() time.Duration {
	return time.Duration(c.FrictionThresholdSeconds) * time.Second
}

// Lookback returns the digest scheduler's trailing window as a
// time.Duration.
func (c DigestConfig) Lookback() time.Duration {
	return time.Duration(c.LookbackDays) * 24 * time.Hour
}
