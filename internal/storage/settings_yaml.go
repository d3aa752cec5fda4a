package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"setbeast/internal/core/model"

	"gopkg.in/yaml.v3"
)

const (
	// SettingsFileName is the file holding the settings record.
	SettingsFileName = "settings.yaml"
	// SettingsKey identifies the workout settings record inside the file.
	SettingsKey = "workoutSettings"
)

const (
	fieldBeepVolume       = "beep_volume"
	fieldVibration        = "vibration_enabled"
	fieldIntervalOptions  = "interval_options"
	fieldLastUsedInterval = "last_used_interval"
)

type yamlSettings struct {
	BeepVolume       *float64 `yaml:"beep_volume"`
	VibrationEnabled *bool    `yaml:"vibration_enabled"`
	IntervalOptions  []int    `yaml:"interval_options"`
	LastUsedInterval *int     `yaml:"last_used_interval"`
}

// SettingsStore keeps the settings record in a YAML file.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore returns a store backed by the settings file in dir.
func NewSettingsStore(dir string) *SettingsStore {
	return &SettingsStore{path: filepath.Join(dir, SettingsFileName)}
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads the settings record.
// If the file or the record does not exist, default settings are returned
// with found set to false.
func (store *SettingsStore) Load() (settings model.Settings, found bool, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings = model.DefaultSettings()
	document, err := store.readDocumentLocked()
	if err != nil {
		return settings, false, err
	}

	raw, ok := document[SettingsKey]
	if !ok || raw == nil {
		return settings, false, nil
	}

	// Round-trip through YAML to decode the generic record into typed fields.
	encoded, err := yaml.Marshal(raw)
	if err != nil {
		return settings, false, fmt.Errorf("encode settings record: %w", err)
	}
	var fileData yamlSettings
	if err := yaml.Unmarshal(encoded, &fileData); err != nil {
		return settings, false, fmt.Errorf("parse settings record: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, true, nil
}

// Save merges patch into the stored record. Fields absent from the patch and
// keys unknown to this version are preserved.
func (store *SettingsStore) Save(patch model.SettingsPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	document, err := store.readDocumentLocked()
	if err != nil {
		return err
	}

	record, _ := document[SettingsKey].(map[string]any)
	if record == nil {
		record = map[string]any{}
	}
	if patch.BeepVolume != nil {
		record[fieldBeepVolume] = *patch.BeepVolume
	}
	if patch.VibrationEnabled != nil {
		record[fieldVibration] = *patch.VibrationEnabled
	}
	if patch.IntervalOptions != nil {
		record[fieldIntervalOptions] = model.NormalizeIntervals(patch.IntervalOptions)
	}
	if patch.LastUsedInterval != nil {
		record[fieldLastUsedInterval] = *patch.LastUsedInterval
	}
	document[SettingsKey] = record

	serialized, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpPath := store.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

func (store *SettingsStore) readDocumentLocked() (map[string]any, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	document := map[string]any{}
	if err := yaml.Unmarshal(rawData, &document); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	if document == nil {
		document = map[string]any{}
	}
	return document, nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.BeepVolume != nil && *fileData.BeepVolume >= 0 && *fileData.BeepVolume <= 1 {
		settings.BeepVolume = *fileData.BeepVolume
	}
	if fileData.VibrationEnabled != nil {
		settings.VibrationEnabled = *fileData.VibrationEnabled
	}
	if options := model.NormalizeIntervals(fileData.IntervalOptions); len(options) >= model.MinIntervalOptions {
		settings.IntervalOptions = options
	}
	if fileData.LastUsedInterval != nil && *fileData.LastUsedInterval > 0 {
		settings.LastUsedInterval = *fileData.LastUsedInterval
	}
}
