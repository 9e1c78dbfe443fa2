// ABOUTME: Tests for persistent session storage
// ABOUTME: Verifies round trips, key deletion, and corrupt-file recovery

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreLoad_MissingFile(t *testing.T) {
	store := NewStore(t.TempDir())
	snap, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.AccessToken != "" || snap.RefreshToken != "" || snap.User != nil {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestStoreSaveLoad_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	want := &Snapshot{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &User{ID: 12, Username: "alice", Roles: []string{"ROLE_USER"}},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AccessToken != "access" || got.RefreshToken != "refresh" {
		t.Errorf("unexpected tokens: %+v", got)
	}
	if got.User == nil || got.User.ID != 12 || got.User.Username != "alice" {
		t.Errorf("unexpected user: %+v", got.User)
	}
	if len(got.User.Roles) != 1 || got.User.Roles[0] != "ROLE_USER" {
		t.Errorf("unexpected roles: %v", got.User.Roles)
	}
}

func TestStoreSave_FileMode(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save(&Snapshot{AccessToken: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions on credential file, got %o", info.Mode().Perm())
	}
}

func TestStoreSetAccessToken_EmptyDeletes(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Save(&Snapshot{AccessToken: "access", RefreshToken: "refresh"})

	if err := store.SetAccessToken(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, _ := store.Load()
	if snap.AccessToken != "" {
		t.Errorf("expected access token removed, got %q", snap.AccessToken)
	}
	if snap.RefreshToken != "refresh" {
		t.Errorf("expected refresh token untouched, got %q", snap.RefreshToken)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Save(&Snapshot{AccessToken: "access", User: &User{Username: "alice"}})

	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, _ := store.Load()
	if snap.AccessToken != "" || snap.User != nil {
		t.Errorf("expected everything cleared, got %+v", snap)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("unexpected error on repeat clear: %v", err)
	}
}

func TestStoreLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600)

	store := NewStore(dir)
	snap, err := store.Load()
	if err != nil {
		t.Fatalf("expected corrupt file to yield empty snapshot, got error: %v", err)
	}
	if snap.AccessToken != "" {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}
