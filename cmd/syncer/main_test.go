package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seconddraft/internal/domain"
	"seconddraft/internal/storage/files"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCommandStreams(t, args...)
	return stdout, err
}

func runCommandStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeServiceConfig(t *testing.T, contentDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "content_dir: " + contentDir + "\nlog_level: error\ndatabase:\n  path: " + filepath.Join(t.TempDir(), "test.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestCollectionsCommand(t *testing.T) {
	contentDir := t.TempDir()
	store := files.NewStore(contentDir)
	require.NoError(t, store.WriteCollectionMetadata(&domain.CollectionMetadata{ID: "c1", Name: "Stories", PostCount: 3}))

	out, err := runCommand(t, "--config", writeServiceConfig(t, contentDir), "collections", "--json")
	require.NoError(t, err)

	var got []domain.CollectionMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Stories", got[0].Name)
}

func TestWarmAndRenderCommands(t *testing.T) {
	contentDir := t.TempDir()
	store := files.NewStore(contentDir)
	_, err := store.WritePost("c1", "1", []byte("---\ntitle: \"Hello\"\npostId: \"1\"\ncollectionId: \"c1\"\n---\n\nFirst paragraph\n"))
	require.NoError(t, err)
	configPath := writeServiceConfig(t, contentDir)

	out, err := runCommand(t, "--config", configPath, "warm", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "c1")

	out, err = runCommand(t, "--config", configPath, "render", "c1", "1")
	require.NoError(t, err)

	var doc domain.RenderedDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Hello", doc.Title)
	assert.Equal(t, "First paragraph", doc.Description)
}

func TestRenderCommand_LogsStayOffStdout(t *testing.T) {
	contentDir := t.TempDir()
	_, err := files.NewStore(contentDir).WritePost("c1", "1", []byte("---\ntitle: \"Hello\"\npostId: \"1\"\ncollectionId: \"c1\"\n---\n\nBody\n"))
	require.NoError(t, err)

	stdout, stderr, err := runCommandStreams(t, "--config", writeServiceConfig(t, contentDir), "--log-level", "info", "render", "c1", "1")
	require.NoError(t, err)

	var doc domain.RenderedDocument
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Hello", doc.Title)
	assert.Contains(t, stderr, "connected to database")
}

func TestPostsCommand(t *testing.T) {
	contentDir := t.TempDir()
	store := files.NewStore(contentDir)
	for _, id := range []string{"1", "2"} {
		_, err := store.WritePost("c1", id, []byte("---\ntitle: \"Post "+id+"\"\npostId: \""+id+"\"\ncollectionId: \"c1\"\n---\n\nBody\n"))
		require.NoError(t, err)
	}
	configPath := writeServiceConfig(t, contentDir)

	_, err := runCommand(t, "--config", configPath, "warm", "c1")
	require.NoError(t, err)

	out, err := runCommand(t, "--config", configPath, "posts", "c1", "--json")
	require.NoError(t, err)

	var posts []domain.PostMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &posts))
	require.Len(t, posts, 2)
	assert.ElementsMatch(t, []string{"Post 1", "Post 2"}, []string{posts[0].Title, posts[1].Title})

	out, err = runCommand(t, "--config", configPath, "posts", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "Post 1")
}

func TestExitCode(t *testing.T) {
	assert.Zero(t, exitCode(nil))
	assert.Zero(t, exitCode(fmt.Errorf("scheduler: %w", context.Canceled)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestRenderCommand_MissingPost(t *testing.T) {
	_, err := runCommand(t, "--config", writeServiceConfig(t, t.TempDir()), "render", "c1", "404")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestSetupLogger(t *testing.T) {
	assert.True(t, setupLogger("debug", io.Discard).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, setupLogger("warn", io.Discard).Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, setupLogger("bogus", io.Discard).Enabled(context.Background(), slog.LevelInfo))
}

func TestSummaryTable(t *testing.T) {
	out := summaryTable(&domain.SyncSummary{Stats: []domain.SyncStats{
		{CollectionID: "c1", Viewable: 4, Existing: 2, New: 2, PostCount: 4},
	}})

	assert.Contains(t, out, "COLLECTION")
	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 3)
	assert.Contains(t, out, "c1")
}
