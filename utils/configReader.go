package utils

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// ConfigReader provides section-based access to a single JSON config file.
// Sections that are requested but missing from the file are filled with the
// caller's defaults and written back on WriteBackConfigIfChanged.
type ConfigReader struct {
	logger      log.FieldLogger
	configPath  string
	configBytes []byte
	changed     bool
}

// NewConfigReader reads the config file at configPath, a missing file is treated
// as an empty config and created on write-back
func NewConfigReader(logger log.FieldLogger, configPath string) (*ConfigReader, error) {
	cr := &ConfigReader{logger: logger, configPath: configPath, configBytes: []byte("{}")}
	byt, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		logger.Infof("Config file %v does not exist, using defaults", configPath)
		cr.changed = true
		return cr, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %v: %w", configPath, err)
	}
	if len(byt) > 0 {
		cr.configBytes = byt
	}
	return cr, nil
}

// ReadSectionWithDefaults reads sectionName into configStruct, leaving fields that are
// not present in the file at the defaults the caller set before the call
func (cr *ConfigReader) ReadSectionWithDefaults(sectionName string, configStruct interface{}) error {
	newBytes, err := ReadConfigWithDefaults(cr.configBytes, sectionName, configStruct)
	if err != nil {
		return fmt.Errorf("reading config section %v: %w", sectionName, err)
	}
	if newBytes != nil {
		cr.configBytes = newBytes
		cr.changed = true
	}
	return nil
}

// WriteBackConfigIfChanged persists added default sections so the user finds them in the file
func (cr *ConfigReader) WriteBackConfigIfChanged() error {
	if !cr.changed {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cr.configPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(cr.configPath, cr.configBytes, 0o644); err != nil {
		return err
	}
	cr.changed = false
	return nil
}

// GetConfigDir returns the directory of the config file, relative paths in the
// config are resolved against it
func (cr *ConfigReader) GetConfigDir() string {
	return filepath.Dir(cr.configPath)
}

// GetFullPath resolves path against the config dir unless it is already absolute
func (cr *ConfigReader) GetFullPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cr.GetConfigDir(), path)
}
