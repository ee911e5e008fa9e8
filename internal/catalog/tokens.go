package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CreateDownloadToken mints an opaque shareable token resolving to a movie,
// optionally narrowed to one quality or one episode.
func (s *Store) CreateDownloadToken(movieID int, quality string, episode int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := s.loadTokens()
	token := uuid.NewString()
	tokens[token] = DownloadToken{
		Token:     token,
		MovieID:   movieID,
		Quality:   quality,
		Episode:   episode,
		CreatedAt: time.Now(),
	}
	if err := s.save(tokensFile, tokens); err != nil {
		return "", err
	}
	return token, nil
}

// GetTokenInfo resolves a token, or nil if unknown.
func (s *Store) GetTokenInfo(token string) *DownloadToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.loadTokens()[token]
	if !ok {
		return nil
	}
	return &t
}

// PurgeMovieTokens removes every token pointing at a movie and reports how
// many were removed. Called best-effort after DeleteMovie.
func (s *Store) PurgeMovieTokens(movieID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := s.loadTokens()
	removed := 0
	for key, t := range tokens {
		if t.MovieID == movieID {
			delete(tokens, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(tokensFile, tokens); err != nil {
		return 0, err
	}
	s.log.Info("purged download tokens", "movie_id", movieID, "count", removed)
	return removed, nil
}
