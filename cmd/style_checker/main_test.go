package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/engine"
)

func TestPreloadSession_ReusesSessionAcrossRestarts(t *testing.T) {
	dataDir := t.TempDir()
	dictPath := filepath.Join(t.TempDir(), "corrections.json")
	require.NoError(t, os.WriteFile(dictPath, []byte(`{"teh": "the"}`), 0644))

	first := engine.NewEngine(dataDir, config.DefaultCheckSettings(), 1)
	firstID, err := preloadSession(first, dictPath)
	require.NoError(t, err)
	first.Close()

	require.NoError(t, os.WriteFile(dictPath, []byte(`{"teh": "the", "adn": "and"}`), 0644))

	second := engine.NewEngine(dataDir, config.DefaultCheckSettings(), 1)
	defer second.Close()
	secondID, err := preloadSession(second, dictPath)
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID)
	sessions := second.ListSessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, 2, sessions[0].DictionarySize)
}

func TestPreloadSession_BrokenDictionary(t *testing.T) {
	checker := engine.NewEngine(t.TempDir(), config.DefaultCheckSettings(), 1)
	defer checker.Close()

	dictPath := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(dictPath, []byte(`{"teh": `), 0644))

	_, err := preloadSession(checker, dictPath)
	assert.Error(t, err)
	assert.Empty(t, checker.ListSessions(), "a failed first load leaves no session behind")

	_, err = preloadSession(checker, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
