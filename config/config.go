// Package config loads the engine's YAML configuration file: where the
// heap file lives, how large the buffer pool should be, and (for the
// daemon driver) how often to flush.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultBufferPoolSize = 64

// Config is the on-disk shape of an engine configuration file.
type Config struct {
	HeapFile       string `yaml:"heap_file"`
	BufferPoolSize int    `yaml:"buffer_pool_size"`
	// FlushInterval is a cron expression (see github.com/robfig/cron/v3),
	// consulted only by cmd/lightd's background flush loop.
	FlushInterval string `yaml:"flush_interval"`
}

// Load reads and parses path, filling in BufferPoolSize with a default if
// the file leaves it zero.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if c.HeapFile == "" {
		return nil, fmt.Errorf("config: %s: heap_file is required", path)
	}
	if c.BufferPoolSize <= 0 {
		c.BufferPoolSize = defaultBufferPoolSize
	}
	return &c, nil
}
