package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoriesConfig holds dynamic story definitions (read/write).
type StoriesConfig struct {
	Stories map[string]StoryEntry `yaml:"stories,omitempty"`
}

// StoryEntry holds configuration for a specific story.
type StoryEntry struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description,omitempty"`
}

// LoadStories loads story configuration from the .storygraph directory.
func LoadStories(basePath string) (*StoriesConfig, error) {
	storiesFile := filepath.Join(basePath, DefaultConfigDir, DefaultStoriesFile)

	data, err := os.ReadFile(storiesFile)
	if os.IsNotExist(err) {
		// Return empty config if file doesn't exist
		return &StoriesConfig{
			Stories: make(map[string]StoryEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stories file: %w", err)
	}

	var cfg StoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing stories file: %w", err)
	}

	if cfg.Stories == nil {
		cfg.Stories = make(map[string]StoryEntry)
	}

	return &cfg, nil
}

// Save writes the stories configuration to the stories file.
func (s *StoriesConfig) Save(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	storiesFile := filepath.Join(configDir, DefaultStoriesFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling stories config: %w", err)
	}

	if err := os.WriteFile(storiesFile, data, 0600); err != nil {
		return fmt.Errorf("writing stories file: %w", err)
	}

	return nil
}

// Add adds a story to the configuration.
func (s *StoriesConfig) Add(name string, entry StoryEntry) {
	if s.Stories == nil {
		s.Stories = make(map[string]StoryEntry)
	}
	s.Stories[name] = entry
}

// Remove removes a story from the configuration.
func (s *StoriesConfig) Remove(name string) {
	if s.Stories != nil {
		delete(s.Stories, name)
	}
}

// Get returns the configuration for a specific story.
func (s *StoriesConfig) Get(name string) (*StoryEntry, error) {
	if len(s.Stories) == 0 {
		return nil, errors.New("no stories configured")
	}

	entry, ok := s.Stories[name]
	if !ok {
		var b strings.Builder
		count := 0
		for k := range s.Stories {
			if count > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			count++
			if count >= 5 {
				b.WriteString(", ...")
				break
			}
		}
		return nil, fmt.Errorf("story %q not found (available: %s)", name, b.String())
	}

	return &entry, nil
}

// Exists checks if a story exists in the configuration.
func (s *StoriesConfig) Exists(name string) bool {
	if s.Stories == nil {
		return false
	}
	_, ok := s.Stories[name]
	return ok
}

// StoriesExists checks if a stories config file exists in the given path.
func StoriesExists(basePath string) bool {
	storiesFile := filepath.Join(basePath, DefaultConfigDir, DefaultStoriesFile)
	_, err := os.Stat(storiesFile)
	return err == nil
}
