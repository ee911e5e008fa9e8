package bot

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
)

func TestWizardSessionLifecycle(t *testing.T) {
	w := newWizardManager(time.Minute)

	if s := w.get(42); s != nil {
		t.Fatal("expected no session before begin")
	}

	s := w.begin(42)
	if s.step != stepTitle {
		t.Fatalf("fresh session step = %d, want stepTitle", s.step)
	}
	if s.movie.AddedBy != 42 {
		t.Fatalf("AddedBy = %d, want 42", s.movie.AddedBy)
	}
	if w.get(42) != s {
		t.Fatal("get should return the live session")
	}

	// begin replaces any previous session
	s2 := w.begin(42)
	if s2 == s {
		t.Fatal("begin should produce a fresh session")
	}

	w.end(42)
	if w.get(42) != nil {
		t.Fatal("session should be gone after end")
	}
}

func TestWizardSessionExpiry(t *testing.T) {
	w := newWizardManager(10 * time.Millisecond)
	w.begin(7)

	time.Sleep(25 * time.Millisecond)
	if w.get(7) != nil {
		t.Fatal("idle session should have expired")
	}
	if _, ok := w.sessions[7]; ok {
		t.Fatal("expired session should be removed from the map")
	}
}

func TestWizardSessionExpiryRefresh(t *testing.T) {
	w := newWizardManager(40 * time.Millisecond)
	w.begin(7)

	// keep touching the session under the timeout; it must stay alive
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		if w.get(7) == nil {
			t.Fatal("active session expired despite refreshes")
		}
	}
}

func TestToggleCategory(t *testing.T) {
	s := &uploadSession{}

	s.toggleCategory("Action 💥")
	s.toggleCategory("Comedy 🤣")
	if !reflect.DeepEqual(s.movie.Categories, []string{"Action 💥", "Comedy 🤣"}) {
		t.Fatalf("categories = %v", s.movie.Categories)
	}

	s.toggleCategory("Action 💥")
	if !reflect.DeepEqual(s.movie.Categories, []string{"Comedy 🤣"}) {
		t.Fatalf("after toggle off: %v", s.movie.Categories)
	}
}

func TestRemainingQualities(t *testing.T) {
	s := &uploadSession{}
	if got := s.remainingQualities(); !reflect.DeepEqual(got, []string{"480p", "720p", "1080p"}) {
		t.Fatalf("fresh session remaining = %v", got)
	}

	s.quality = "720p"
	s.addQualityFile("file-720", catalog.FileDocument)
	if s.step != stepQuality {
		t.Fatalf("step after upload = %d, want stepQuality", s.step)
	}
	if s.quality != "" {
		t.Fatalf("quality not cleared: %q", s.quality)
	}
	if s.movie.Files[0].Kind != catalog.FileDocument {
		t.Fatalf("file kind = %q", s.movie.Files[0].Kind)
	}
	if got := s.remainingQualities(); !reflect.DeepEqual(got, []string{"480p", "1080p"}) {
		t.Fatalf("remaining = %v", got)
	}

	s.quality = "480p"
	s.addQualityFile("file-480", catalog.FileVideo)
	s.quality = "1080p"
	s.addQualityFile("file-1080", catalog.FileDocument)
	if got := s.remainingQualities(); len(got) != 0 {
		t.Fatalf("remaining after all uploads = %v", got)
	}
}

func TestAddEpisodeFile(t *testing.T) {
	s := &uploadSession{}
	s.movie.Type = catalog.TypeSeries

	for want := 1; want <= 3; want++ {
		if got := s.addEpisodeFile("ep", catalog.FileVideo); got != want {
			t.Fatalf("episode number = %d, want %d", got, want)
		}
	}
	if s.movie.EpisodeCount() != 3 {
		t.Fatalf("EpisodeCount = %d, want 3", s.movie.EpisodeCount())
	}
	if s.movie.Files[2].Episode != 3 {
		t.Fatalf("third file episode = %d", s.movie.Files[2].Episode)
	}
	if s.movie.Files[0].Kind != catalog.FileVideo {
		t.Fatalf("episode kind = %q", s.movie.Files[0].Kind)
	}
}

// Updates are dispatched concurrently, so a double-tap can mutate one
// session from two goroutines. Run with -race.
func TestUploadSessionConcurrentToggles(t *testing.T) {
	w := newWizardManager(time.Minute)
	w.begin(1)

	const rounds = 100
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		cat := config.UploadCategories[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				s := w.get(1)
				s.mu.Lock()
				s.movie.Title = "Contended"
				s.step = stepCategories
				s.toggleCategory(cat)
				s.mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s := w.get(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	// each category toggled an even number of times ends deselected
	if len(s.movie.Categories) != 0 {
		t.Fatalf("categories after even toggles = %v", s.movie.Categories)
	}
	if s.movie.Title != "Contended" || s.step != stepCategories {
		t.Fatalf("session state corrupted: title=%q step=%d", s.movie.Title, s.step)
	}
}
