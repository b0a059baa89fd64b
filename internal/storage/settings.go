package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"traychime/internal/core/model"
)

const settingsFileName = "settings.json"

const (
	keyWorkStartHour = "work_start_hour"
	keyWorkEndHour   = "work_end_hour"
	keySoundEnabled  = "sound_enabled"
	keyAutostart     = "autostart_enabled"
)

// Store persists user settings as a flat JSON blob.
type Store struct {
	mu    sync.Mutex
	viper *viper.Viper
	path  string
	log   *zap.Logger
}

// DefaultPath resolves the settings location under the OS config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// NewStore creates a store backed by the given file path.
func NewStore(path string, log *zap.Logger) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	defaults := model.DefaultSettings()
	v.SetDefault(keyWorkStartHour, defaults.Hours.Start)
	v.SetDefault(keyWorkEndHour, defaults.Hours.End)
	v.SetDefault(keySoundEnabled, defaults.SoundEnabled)
	v.SetDefault(keyAutostart, defaults.Autostart)

	return &Store{viper: v, path: path, log: log}
}

// Load reads settings from disk. A missing, malformed or out-of-range file
// falls back to defaults and a fresh file is written in its place.
func (store *Store) Load() model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()

	defaults := model.DefaultSettings()
	if err := store.viper.ReadInConfig(); err != nil {
		store.log.Warn("read settings, using defaults",
			zap.String("path", store.path), zap.Error(err))
		_ = store.writeLocked(defaults)
		return defaults
	}

	loaded := model.Settings{
		Hours: model.WorkHours{
			Start: store.viper.GetInt(keyWorkStartHour),
			End:   store.viper.GetInt(keyWorkEndHour),
		},
		SoundEnabled: store.viper.GetBool(keySoundEnabled),
		Autostart:    store.viper.GetBool(keyAutostart),
	}
	if err := loaded.Hours.Validate(); err != nil {
		store.log.Warn("settings out of range, using defaults",
			zap.String("path", store.path), zap.Error(err))
		_ = store.writeLocked(defaults)
		return defaults
	}
	return loaded
}

// Save writes settings to disk. On failure the error is logged and returned;
// callers keep their in-memory state and the next mutation retries.
func (store *Store) Save(settings model.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.writeLocked(settings)
}

func (store *Store) writeLocked(settings model.Settings) error {
	store.viper.Set(keyWorkStartHour, settings.Hours.Start)
	store.viper.Set(keyWorkEndHour, settings.Hours.End)
	store.viper.Set(keySoundEnabled, settings.SoundEnabled)
	store.viper.Set(keyAutostart, settings.Autostart)

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		store.log.Warn("create config directory", zap.Error(err))
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := store.viper.WriteConfigAs(store.path); err != nil {
		store.log.Warn("write settings file",
			zap.String("path", store.path), zap.Error(err))
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
