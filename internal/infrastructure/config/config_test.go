package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStoryName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "mystory",
			expected: "mystory",
		},
		{
			name:     "uppercase converted",
			input:    "MyStory",
			expected: "mystory",
		},
		{
			name:     "spaces to underscores",
			input:    "my story",
			expected: "my_story",
		},
		{
			name:     "hyphens to underscores",
			input:    "my-story",
			expected: "my_story",
		},
		{
			name:     "special characters removed",
			input:    "my@story!",
			expected: "mystory",
		},
		{
			name:     "consecutive underscores collapsed",
			input:    "my--story",
			expected: "my_story",
		},
		{
			name:     "leading trailing underscores trimmed",
			input:    "-my-story-",
			expected: "my_story",
		},
		{
			name:     "empty string returns default",
			input:    "",
			expected: "default",
		},
		{
			name:     "only special chars returns default",
			input:    "!!!",
			expected: "default",
		},
		{
			name:     "numbers preserved",
			input:    "story123",
			expected: "story123",
		},
		{
			name:     "complex mixed input",
			input:    "Iron-Throne (Book 1)",
			expected: "iron_throne_book_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeStoryName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfigDir(t *testing.T) {
	result := ConfigDir("/home/user/project")
	assert.Equal(t, "/home/user/project/.storygraph", result)
}

func TestConfigFilePath(t *testing.T) {
	result := ConfigFilePath("/home/user/project")
	assert.Equal(t, "/home/user/project/.storygraph/config.yaml", result)
}

func TestSQLitePathForStory(t *testing.T) {
	result := SQLitePathForStory("/home/user/project", "My Story")
	expected := filepath.Join("/home/user/project", ".storygraph", "stories", "my_story", "story.db")
	assert.Equal(t, expected, result)
}

func TestWriteDefaultAndLoad(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.SQLite.Path)
}

func TestWriteDefaultAlreadyExists(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	err := WriteDefault(dir)
	assert.Error(t, err)
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestStoriesConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadStories(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Stories)

	cfg.Add("novel", StoryEntry{ID: "story-1", Description: "first draft"})
	require.NoError(t, cfg.Save(dir))

	loaded, err := LoadStories(dir)
	require.NoError(t, err)
	require.True(t, loaded.Exists("novel"))

	entry, err := loaded.Get("novel")
	require.NoError(t, err)
	assert.Equal(t, "story-1", entry.ID)
	assert.Equal(t, "first draft", entry.Description)

	_, err = loaded.Get("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "novel")

	loaded.Remove("novel")
	assert.False(t, loaded.Exists("novel"))
}
