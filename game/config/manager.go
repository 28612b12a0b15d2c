package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nelsp/pb-power-grid/game/engine"
	"github.com/nelsp/pb-power-grid/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles game configuration loading and caching
type Manager struct {
	configDir   string
	defaultName string
	configs     map[string]*GameConfig
	mu          sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*GameConfig),
	}

	if err := m.pickDefault(); err != nil {
		return nil, fmt.Errorf("failed to pick default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name
func (m *Manager) LoadConfig(name string) (*GameConfig, error) {
	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}

	// Cache the config
	m.configs[name] = config
	return config, nil
}

// readConfig reads and validates a config file without touching the cache.
func (m *Manager) readConfig(name string) (*GameConfig, error) {
	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	return LoadFile(filepath.Join(m.configDir, filename))
}

// LoadFile reads and validates a single config file. A rules_file reference
// is resolved relative to the config's directory.
func LoadFile(configPath string) (*GameConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Resolve the rules file, if any
	if config.RulesFile != "" {
		rules, err := loadRules(filepath.Join(filepath.Dir(configPath), config.RulesFile))
		if err != nil {
			return nil, err
		}
		config.rules = rules
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// loadRules parses a yaml rules file.
func loadRules(path string) (*engine.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: rules file %s", ErrConfigNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	// Start from the standard tables so a rules file may override only
	// some of them.
	rules := engine.DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	return rules, nil
}

// Setup builds a partial engine setup from a named configuration. An empty
// name means the default. The caller fills in players, strategies, and the
// seed.
func (m *Manager) Setup(configName string) (*engine.Setup, error) {
	if configName == "" {
		configName = m.DefaultName()
	}
	config, err := m.LoadConfig(configName)
	if err != nil {
		return nil, err
	}
	return config.NewSetup()
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// Remove .json extension for config name
		name := strings.TrimSuffix(entry.Name(), ".json")

		// Try to load the config to get details
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name, // This is the identifier to use for game creation
			Name:        config.Name,
			Description: config.Description,
			Cities:      len(config.Map.Cities),
			Plants:      len(config.Plants),
		})
	}

	return configs, nil
}

// DefaultName returns the name of the default configuration.
func (m *Manager) DefaultName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	if _, err := m.LoadConfig(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = name
	return nil
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*GameConfig)
	m.mu.Unlock()

	return m.pickDefault()
}

// pickDefault chooses the default configuration: europe if present,
// otherwise the first valid config in the directory.
func (m *Manager) pickDefault() error {
	if _, err := m.LoadConfig("europe"); err == nil {
		m.mu.Lock()
		m.defaultName = "europe"
		m.mu.Unlock()
		return nil
	}

	configs, err := m.ListConfigs()
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		return fmt.Errorf("no valid configurations in %s", m.configDir)
	}

	m.mu.Lock()
	m.defaultName = configs[0].ConfigID
	m.mu.Unlock()
	return nil
}

// SaveConfig saves a configuration to disk
func (m *Manager) SaveConfig(name string, config *GameConfig) error {
	// Validate config before saving
	if err := config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	configPath := filepath.Join(m.configDir, filename)

	// Marshal config to JSON with indentation
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}
