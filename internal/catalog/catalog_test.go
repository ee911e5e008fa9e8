package catalog_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"moviezone-bot/internal/catalog"
)

const testOwnerID int64 = 5379553841

func newTestStore(t *testing.T) (*catalog.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := catalog.New(dir, testOwnerID, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, dir
}

func openStore(t *testing.T, dir string) *catalog.Store {
	t.Helper()
	s, err := catalog.New(dir, testOwnerID, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestInitialization(t *testing.T) {
	s, dir := newTestStore(t)

	t.Run("seeds empty collections", func(t *testing.T) {
		for _, name := range []string{"users.json", "admins.json", "movies.json", "channels.json", "requests.json", "tokens.json"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected %s to exist: %v", name, err)
			}
		}
	})

	t.Run("does not overwrite existing state", func(t *testing.T) {
		id, err := s.AddMovie(catalog.Movie{Title: "Persisted", Type: catalog.TypeSingle})
		if err != nil {
			t.Fatal(err)
		}
		reopened := openStore(t, dir)
		if got := reopened.GetMovie(id); got == nil || got.Title != "Persisted" {
			t.Fatalf("movie lost across reopen: %+v", got)
		}
	})

	t.Run("malformed collection loads as empty", func(t *testing.T) {
		dir2 := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir2, "movies.json"), []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		s2 := openStore(t, dir2)
		if s2.GetMovie(1) != nil {
			t.Fatal("expected empty collection from malformed file")
		}
		// The store must still be writable and restart the counter at 1.
		id, err := s2.AddMovie(catalog.Movie{Title: "Fresh"})
		if err != nil {
			t.Fatal(err)
		}
		if id != 1 {
			t.Fatalf("expected id 1 after recovery, got %d", id)
		}
	})
}

func TestUsers(t *testing.T) {
	s, _ := newTestStore(t)

	t.Run("upsert creates once", func(t *testing.T) {
		created, err := s.UpsertUserSeen(42, "Alice", "alice")
		if err != nil {
			t.Fatal(err)
		}
		if !created {
			t.Fatal("expected first upsert to create")
		}
		created, err = s.UpsertUserSeen(42, "Alice", "alice")
		if err != nil {
			t.Fatal(err)
		}
		if created {
			t.Fatal("expected second upsert to not create")
		}
		if !s.UserExists(42) {
			t.Fatal("expected user to exist")
		}
	})

	t.Run("upsert refreshes changed fields", func(t *testing.T) {
		if _, err := s.UpsertUserSeen(42, "Alicia", ""); err != nil {
			t.Fatal(err)
		}
		u := s.GetUser(42)
		if u == nil || u.FirstName != "Alicia" || u.Username != "" {
			t.Fatalf("expected refreshed record, got %+v", u)
		}
	})

	t.Run("role precedence", func(t *testing.T) {
		if got := s.GetUserRole(testOwnerID); got != catalog.RoleOwner {
			t.Fatalf("owner resolved to %q", got)
		}
		if got := s.GetUserRole(42); got != catalog.RoleUser {
			t.Fatalf("plain user resolved to %q", got)
		}
		if _, err := s.AddAdmin(42, "ali", "Alicia", ""); err != nil {
			t.Fatal(err)
		}
		if got := s.GetUserRole(42); got != catalog.RoleAdmin {
			t.Fatalf("admin resolved to %q", got)
		}
		// The owner never resolves to admin, even when present in the
		// admin collection.
		if _, err := s.AddAdmin(testOwnerID, "boss", "Owner", ""); err != nil {
			t.Fatal(err)
		}
		if got := s.GetUserRole(testOwnerID); got != catalog.RoleOwner {
			t.Fatalf("owner with admin record resolved to %q", got)
		}
	})
}

func TestAdmins(t *testing.T) {
	s, _ := newTestStore(t)

	if ok, err := s.AddAdmin(100, "rex", "Rex", "rexdog"); err != nil || !ok {
		t.Fatalf("AddAdmin: ok=%v err=%v", ok, err)
	}

	t.Run("duplicate id rejected", func(t *testing.T) {
		ok, err := s.AddAdmin(100, "other", "Other", "")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected duplicate id to be rejected")
		}
	})

	t.Run("duplicate short name rejected", func(t *testing.T) {
		ok, err := s.AddAdmin(101, "rex", "Impostor", "")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected duplicate short name to be rejected")
		}
	})

	t.Run("lookup", func(t *testing.T) {
		if a := s.GetAdminInfo(100); a == nil || a.ShortName != "rex" {
			t.Fatalf("GetAdminInfo: %+v", a)
		}
		if a := s.GetAdminInfo(999); a != nil {
			t.Fatalf("expected nil for unknown admin, got %+v", a)
		}
		if got := len(s.ListAdmins()); got != 1 {
			t.Fatalf("expected 1 admin, got %d", got)
		}
	})

	t.Run("remove by id then short name", func(t *testing.T) {
		if ok, _ := s.AddAdmin(102, "ana", "Ana", ""); !ok {
			t.Fatal("AddAdmin failed")
		}
		if ok, err := s.RemoveAdmin("100"); err != nil || !ok {
			t.Fatalf("remove by id: ok=%v err=%v", ok, err)
		}
		if ok, err := s.RemoveAdmin("ana"); err != nil || !ok {
			t.Fatalf("remove by short name: ok=%v err=%v", ok, err)
		}
		if ok, _ := s.RemoveAdmin("ana"); ok {
			t.Fatal("expected second removal to fail")
		}
	})
}

// Short-name uniqueness is enforced at creation, but data written before
// enforcement may carry duplicates. Removal must take exactly one record
// per call and fail only once no match remains.
func TestRemoveAdminDuplicateShortNames(t *testing.T) {
	dir := t.TempDir()
	legacy := map[string]map[string]any{
		"200": {"user_id": 200, "short_name": "dup", "first_name": "First", "added_at": "2024-01-01T00:00:00Z"},
		"201": {"user_id": 201, "short_name": "dup", "first_name": "Second", "added_at": "2024-01-02T00:00:00Z"},
	}
	b, err := json.Marshal(legacy)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "admins.json"), b, 0o644); err != nil {
		t.Fatal(err)
	}

	s := openStore(t, dir)
	if ok, err := s.RemoveAdmin("dup"); err != nil || !ok {
		t.Fatalf("first removal: ok=%v err=%v", ok, err)
	}
	if got := len(s.ListAdmins()); got != 1 {
		t.Fatalf("expected exactly one record removed, %d left", got)
	}
	if ok, err := s.RemoveAdmin("dup"); err != nil || !ok {
		t.Fatalf("second removal: ok=%v err=%v", ok, err)
	}
	if ok, _ := s.RemoveAdmin("dup"); ok {
		t.Fatal("expected removal to fail once no match remains")
	}
}

func TestChannels(t *testing.T) {
	s, _ := newTestStore(t)

	if ok, err := s.AddChannel("@movies", "Movie Zone", "mz"); err != nil || !ok {
		t.Fatalf("AddChannel: ok=%v err=%v", ok, err)
	}
	if ok, _ := s.AddChannel("@movies", "Again", "mz2"); ok {
		t.Fatal("expected duplicate channel id to be rejected")
	}
	if ok, _ := s.AddChannel("@other", "Other", "mz"); ok {
		t.Fatal("expected duplicate short name to be rejected")
	}
	if c := s.GetChannelInfo("@movies"); c == nil || c.Name != "Movie Zone" {
		t.Fatalf("GetChannelInfo: %+v", c)
	}
	if got := len(s.ListChannels()); got != 1 {
		t.Fatalf("expected 1 channel, got %d", got)
	}
	if ok, err := s.RemoveChannel("mz"); err != nil || !ok {
		t.Fatalf("remove by short name: ok=%v err=%v", ok, err)
	}
	if ok, _ := s.RemoveChannel("@movies"); ok {
		t.Fatal("expected channel to be gone")
	}
}

func TestTokens(t *testing.T) {
	s, _ := newTestStore(t)

	id, err := s.AddMovie(catalog.Movie{Title: "Tokenized", Type: catalog.TypeSingle})
	if err != nil {
		t.Fatal(err)
	}

	tok, err := s.CreateDownloadToken(id, "720p", 0)
	if err != nil {
		t.Fatal(err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}
	info := s.GetTokenInfo(tok)
	if info == nil || info.MovieID != id || info.Quality != "720p" {
		t.Fatalf("GetTokenInfo: %+v", info)
	}
	if s.GetTokenInfo("nope") != nil {
		t.Fatal("expected nil for unknown token")
	}

	if _, err := s.CreateDownloadToken(id, "1080p", 0); err != nil {
		t.Fatal(err)
	}
	n, err := s.PurgeMovieTokens(id)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 tokens purged, got %d", n)
	}
	if s.GetTokenInfo(tok) != nil {
		t.Fatal("expected token gone after purge")
	}
}
