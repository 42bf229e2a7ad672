package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherSignalsRemoval(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(filepath.Join(dir, "credentials.json"))
	require.NoError(t, store.Save(testCredentials()))

	w, err := NewWatcher(store, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Remove(store.Path()))

	select {
	case <-w.Removed():
	case <-time.After(5 * time.Second):
		t.Fatal("expected removal signal")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(filepath.Join(dir, "credentials.json"))
	require.NoError(t, store.Save(testCredentials()))

	w, err := NewWatcher(store, nil)
	require.NoError(t, err)
	defer w.Close()

	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	require.NoError(t, os.Remove(other))

	select {
	case <-w.Removed():
		t.Fatal("unexpected removal signal for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherSurvivesSave(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(filepath.Join(dir, "credentials.json"))
	require.NoError(t, store.Save(testCredentials()))

	w, err := NewWatcher(store, nil)
	require.NoError(t, err)
	defer w.Close()

	// A save replaces the file via rename; that is not a logout.
	// The rename of the temp file onto the path shows up as a create
	// for the watched name, not a remove.
	require.NoError(t, store.Save(testCredentials()))

	select {
	case <-w.Removed():
		t.Fatal("unexpected removal signal after save")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseReleasesChannel(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(filepath.Join(dir, "credentials.json"))

	w, err := NewWatcher(store, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Removed():
		require.False(t, ok, "removed channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("expected removed channel to close")
	}
}
