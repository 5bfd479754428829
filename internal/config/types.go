package config

// Config is the full deployment configuration document. Per-user visual state
// (element positions, scales, options) lives in the state tree, not here.
// This file carries the knobs an operator sets once.
type Config struct {
	Background BackgroundConfig `mapstructure:"background"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
	Features   map[string]bool  `mapstructure:"features"`
}

// BackgroundConfig controls the image rotation collaborator.
type BackgroundConfig struct {
	Provider      string `mapstructure:"provider" validate:"omitempty,oneof=builtin unsplash pexels"`
	Query         string `mapstructure:"query" validate:"omitempty,max=100"`
	CycleInterval int    `mapstructure:"cycle_interval" validate:"omitempty,min=10,max=86400"`
}

// StorageConfig locates the persisted snapshots.
type StorageConfig struct {
	StateFile     string `mapstructure:"state_file"`
	FavoritesFile string `mapstructure:"favorites_file"`
}

// LogConfig selects logging behavior.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}
