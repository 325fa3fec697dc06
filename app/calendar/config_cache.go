package calendar

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	viewsDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewConfigCache(viewsDir string) *ConfigCache {
	return &ConfigCache{
		viewsDir: viewsDir,
		cache:    make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.viewsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.viewsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive view name from filename (remove .yml extension)
		viewName := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := cc.LoadConfig(viewName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("View configuration loaded", "view", viewName, "database", config.DatabaseID, "date_property", config.DateProperty)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(viewName string) (*Config, error) {
	configFile := cc.getConfigFilePath(viewName)
	viewConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	// Set view name from parameter
	viewConfig.Name = viewName

	if err := cc.validateConfig(viewConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	loc, err := time.LoadLocation(viewConfig.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: unknown timezone %q", configFile, viewConfig.Timezone)
	}
	viewConfig.location = loc

	// Store in cache
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[viewConfig.Name] = viewConfig

	return viewConfig, nil
}

func (cc *ConfigCache) GetConfig(viewName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	viewConfig, ok := cc.cache[viewName]
	if !ok {
		return nil, fmt.Errorf("view config with name '%s' not found", viewName)
	}
	return viewConfig, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(cc.cache))
	for k, v := range cc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var viewConfig Config
	if err := yaml.Unmarshal(data, &viewConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if viewConfig.TitleProperty == "" {
		viewConfig.TitleProperty = "Name"
	}
	if viewConfig.Timezone == "" {
		viewConfig.Timezone = "UTC"
	}

	return &viewConfig, nil
}

func (cc *ConfigCache) validateConfig(viewConfig *Config) error {
	if viewConfig == nil {
		return fmt.Errorf("viewConfig is nil")
	}

	requiredFields := map[string]string{
		"database_id":   viewConfig.DatabaseID,
		"date_property": viewConfig.DateProperty,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]*int{
		"query_days_back":    viewConfig.QueryDaysBack,
		"query_days_forward": viewConfig.QueryDaysForward,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue != nil && *fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative or omitted", fieldName)
		}
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(viewName string) string {
	return filepath.Join(cc.viewsDir, viewName+".yml")
}
