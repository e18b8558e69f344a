package tenant

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	AppID    string          `json:"app_id" yaml:"app_id"`
	AppName  string          `json:"app_name" yaml:"app_name"`
	Features map[string]bool `json:"features" yaml:"features"`
}

type AppsFile struct {
	Apps []AppConfig `json:"apps" yaml:"apps"`
}

type Registry struct {
	mu   sync.RWMutex
	apps map[string]*AppConfig
}

func NewRegistry() *Registry {
	return &Registry{
		apps: make(map[string]*AppConfig),
	}
}

// LoadFromFile reads the tenant list. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read apps config: %w", err)
	}

	var file AppsFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse apps config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Apps {
		if err := registry.Register(&file.Apps[i]); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (r *Registry) Register(cfg *AppConfig) error {
	if strings.TrimSpace(cfg.AppID) == "" {
		return errors.New("app_id is required for every app")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.apps[cfg.AppID]; dup {
		return fmt.Errorf("duplicate app_id %q", cfg.AppID)
	}
	r.apps[cfg.AppID] = cfg
	return nil
}

func (r *Registry) Get(appID string) *AppConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.apps[appID]
}

func (r *Registry) Exists(appID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.apps[appID]
	return ok
}

func (r *Registry) HasFeature(appID, feature string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.apps[appID]
	if !ok {
		return false
	}
	return cfg.Features[feature]
}

// All returns the registered apps ordered by app_id.
func (r *Registry) All() []*AppConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*AppConfig, 0, len(r.apps))
	for _, cfg := range r.apps {
		result = append(result, cfg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AppID < result[j].AppID })
	return result
}
