package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string        `json:"log_level" yaml:"log_level"`
	API      APIConfig     `json:"api" yaml:"api"`
	Storage  StorageConfig `json:"storage" yaml:"storage"`
	Kafka    KafkaConfig   `json:"kafka" yaml:"kafka"`
	Import   ImportConfig  `json:"import" yaml:"import"`
}

type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	Dir    string `json:"dir" yaml:"dir"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

type KafkaConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
	GroupID string   `json:"group_id" yaml:"group_id"`
}

type ImportConfig struct {
	IndexFile  string `json:"index_file" yaml:"index_file"`
	CasesFile  string `json:"cases_file" yaml:"cases_file"`
	SourceFile string `json:"source_file" yaml:"source_file"`
	Region     string `json:"region" yaml:"region"`
	State      string `json:"state" yaml:"state"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		API:      APIConfig{Enabled: true, Addr: ":8080"},
		Storage:  StorageConfig{Driver: "file", Dir: "data"},
		Kafka:    KafkaConfig{Enabled: false},
		Import: ImportConfig{
			IndexFile:  "alerts-index.json",
			CasesFile:  "cases.json",
			SourceFile: "alerts-export.csv",
		},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if strings.HasPrefix(trimmed, "{") {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if path == "" || cfg == nil {
		return errors.New("config path or config is empty")
	}
	var data []byte
	var err error
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "file"
	}
	if cfg.Storage.Driver == "file" && cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "data"
	}
	if cfg.Import.IndexFile == "" {
		cfg.Import.IndexFile = "alerts-index.json"
	}
	if cfg.Import.CasesFile == "" {
		cfg.Import.CasesFile = "cases.json"
	}
	if cfg.Import.SourceFile == "" {
		cfg.Import.SourceFile = "alerts-export.csv"
	}
}

func Validate(cfg *Config) error {
	if cfg.API.Enabled && cfg.API.Addr == "" {
		return errors.New("api.addr required when api.enabled is true")
	}
	switch strings.ToLower(cfg.Storage.Driver) {
	case "file", "sqlite", "postgres", "postgresql":
	default:
		return errors.New("storage.driver must be file, sqlite, or postgres")
	}
	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" || cfg.Kafka.GroupID == "" {
			return errors.New("kafka requires brokers, topic, group_id")
		}
	}
	return nil
}

type Manager struct {
	path string
	cfg  atomic.Value
}

func NewManager(path string) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{path: path}
	m.cfg.Store(cfg)
	return m, nil
}

// NewStaticManager wraps an in-memory config, for wiring without a file.
func NewStaticManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	applyDefaults(cfg)
	m := &Manager{}
	m.cfg.Store(cfg)
	return m
}

func (m *Manager) Get() *Config {
	if v := m.cfg.Load(); v != nil {
		return v.(*Config)
	}
	return DefaultConfig()
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Reload() (*Config, error) {
	if m.path == "" {
		return m.Get(), nil
	}
	cfg, err := Load(m.path)
	if err != nil {
		return nil, err
	}
	m.cfg.Store(cfg)
	return cfg, nil
}
