package bot

import (
	"sync"
	"time"

	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
)

// The upload dialogue is an explicit state sequence. Title and the
// metadata steps consume text, the file steps consume documents, and
// everything in between moves through inline-keyboard callbacks.
type wizStep int

const (
	stepTitle wizStep = iota
	stepCategories
	stepLanguages
	stepYear
	stepRuntime
	stepRating
	stepType
	stepQuality // picking the next quality to upload, or finishing
	stepFile    // waiting for the file of the selected quality
	stepEpisode // waiting for the next episode file
)

// uploadSession is one admin's in-flight upload dialogue.
//
// Updates are dispatched concurrently, so two taps or a text+callback
// pair from the same admin can arrive at once. Handlers must hold mu
// while reading or mutating step, movie and quality; the manager's own
// lock only guards the session map.
type uploadSession struct {
	mu sync.Mutex

	step       wizStep
	movie      catalog.Movie
	quality    string // quality the next file will be stored under
	lastActive time.Time
}

func (s *uploadSession) toggleCategory(cat string) {
	for i, c := range s.movie.Categories {
		if c == cat {
			s.movie.Categories = append(s.movie.Categories[:i], s.movie.Categories[i+1:]...)
			return
		}
	}
	s.movie.Categories = append(s.movie.Categories, cat)
}

func (s *uploadSession) toggleLanguage(lang string) {
	for i, l := range s.movie.Languages {
		if l == lang {
			s.movie.Languages = append(s.movie.Languages[:i], s.movie.Languages[i+1:]...)
			return
		}
	}
	s.movie.Languages = append(s.movie.Languages, lang)
}

// remainingQualities lists the qualities no file has been uploaded for yet.
func (s *uploadSession) remainingQualities() []string {
	have := map[string]bool{}
	for _, f := range s.movie.Files {
		if f.Quality != "" {
			have[f.Quality] = true
		}
	}
	out := []string{}
	for _, q := range config.Qualities {
		if !have[q] {
			out = append(out, q)
		}
	}
	return out
}

// addQualityFile attaches an uploaded file under the currently selected
// quality and returns to quality selection.
func (s *uploadSession) addQualityFile(fileID, kind string) {
	s.movie.Files = append(s.movie.Files, catalog.MovieFile{FileID: fileID, Kind: kind, Quality: s.quality})
	s.quality = ""
	s.step = stepQuality
}

// addEpisodeFile attaches the next episode and reports its number.
func (s *uploadSession) addEpisodeFile(fileID, kind string) int {
	n := s.movie.EpisodeCount() + 1
	s.movie.Files = append(s.movie.Files, catalog.MovieFile{FileID: fileID, Kind: kind, Episode: n})
	return n
}

// wizardManager keeps the per-user sessions. Sessions idle past the
// timeout are dropped on next access, aborting the dialogue.
type wizardManager struct {
	mu       sync.Mutex
	sessions map[int64]*uploadSession
	timeout  time.Duration
}

func newWizardManager(timeout time.Duration) *wizardManager {
	return &wizardManager{
		sessions: make(map[int64]*uploadSession),
		timeout:  timeout,
	}
}

// begin starts a fresh session for a user, replacing any previous one.
func (w *wizardManager) begin(userID int64) *uploadSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := &uploadSession{step: stepTitle, lastActive: time.Now()}
	s.movie.AddedBy = userID
	w.sessions[userID] = s
	return s
}

// get returns the user's live session, refreshing its activity clock.
// An expired session is removed and nil returned.
func (w *wizardManager) get(userID int64) *uploadSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.sessions[userID]
	if !ok {
		return nil
	}
	if time.Since(s.lastActive) > w.timeout {
		delete(w.sessions, userID)
		return nil
	}
	s.lastActive = time.Now()
	return s
}

func (w *wizardManager) end(userID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, userID)
}
