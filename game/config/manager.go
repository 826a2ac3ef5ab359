package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/go2048/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *service.GameConfig
	configs       map[string]*service.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a configuration manager reading JSON files from
// configDir. A missing directory is not an error: only the built-in classic
// config is available then.
func NewManager(configDir string) (*Manager, error) {
	info, err := os.Stat(configDir)
	switch {
	case os.IsNotExist(err):
		log.Printf("Config directory %s not found, using built-in configs", configDir)
	case err != nil:
		return nil, fmt.Errorf("failed to stat config directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("config path is not a directory: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*service.GameConfig),
	}
	m.defaultConfig = m.loadDefaultConfig()

	return m, nil
}

// LoadConfig loads a configuration by name, with or without the .json suffix
func (m *Manager) LoadConfig(name string) (*service.GameConfig, error) {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

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

	m.configs[name] = config
	return config, nil
}

// ListConfigs returns information about all available configurations,
// sorted by id. The built-in classic config is listed unless a file overrides it.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	configs := []*service.ConfigInfo{}
	hasClassic := false

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(name)
		if err != nil {
			log.Printf("Skipping config %s: %v", entry.Name(), err)
			continue
		}

		if name == ClassicName {
			hasClassic = true
		}
		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
		})
	}

	if !hasClassic {
		classic := Classic()
		configs = append(configs, &service.ConfigInfo{
			ConfigID:    ClassicName,
			Name:        classic.Name,
			Description: classic.Description,
			BuiltIn:     true,
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *service.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops cached configurations and reloads the classic default.
// A default picked with SetDefault is replaced.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*service.GameConfig)
	m.mu.Unlock()

	config := m.loadDefaultConfig()

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// readConfig reads and validates name from disk; callers hold the write lock
func (m *Manager) readConfig(name string) (*service.GameConfig, error) {
	data, err := os.ReadFile(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			if name == ClassicName {
				return Classic(), nil
			}
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config service.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// loadDefaultConfig loads classic from disk, falling back to the built-in one
func (m *Manager) loadDefaultConfig() *service.GameConfig {
	config, err := m.LoadConfig(ClassicName)
	if err != nil {
		log.Printf("Failed to load %s config, using built-in: %v", ClassicName, err)
		return Classic()
	}
	return config
}
