package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// CategoryAll matches every movie regardless of its tags.
const CategoryAll = "All 🌐"

func movieKey(id int) string { return strconv.Itoa(id) }

// AddMovie stores a new movie. The id is assigned from the collection
// counter, the added-at timestamp is stamped and the download counter
// zeroed, regardless of what the caller passed in those fields.
func (s *Store) AddMovie(m Movie) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadMovies()
	m.ID = doc.NextID
	m.AddedAt = time.Now()
	m.DownloadCount = 0

	doc.Movies[movieKey(m.ID)] = m
	doc.NextID++

	if err := s.save(moviesFile, doc); err != nil {
		return 0, err
	}
	s.log.Info("added new movie", "movie_id", m.ID, "title", m.Title)
	return m.ID, nil
}

// GetMovie returns a movie by id, or nil if absent.
func (s *Store) GetMovie(id int) *Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.loadMovies().Movies[movieKey(id)]
	if !ok {
		return nil
	}
	m = m.clone()
	return &m
}

// SearchMoviesByTitle finds movies whose title contains the query,
// case-insensitively. Scanning stops once limit matches are collected;
// order follows collection iteration, not relevance.
func (s *Store) SearchMoviesByTitle(query string, limit int) []Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	results := []Movie{}
	for _, m := range s.loadMovies().Movies {
		if strings.Contains(strings.ToLower(m.Title), q) {
			results = append(results, m.clone())
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// FuzzySearchMovies ranks movies by fuzzy title match, best first. Ties
// break by lowercase title so the order is stable.
func (s *Store) FuzzySearchMovies(query string, limit int) []Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	type ranked struct {
		m    Movie
		rank int
	}
	matches := []ranked{}
	for _, m := range s.loadMovies().Movies {
		r := fuzzy.RankMatchNormalizedFold(query, m.Title)
		if r < 0 {
			continue
		}
		matches = append(matches, ranked{m: m.clone(), rank: r})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return strings.ToLower(matches[i].m.Title) < strings.ToLower(matches[j].m.Title)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Movie, 0, len(matches))
	for _, r := range matches {
		out = append(out, r.m)
	}
	return out
}

// GetMoviesByFirstLetter finds movies whose title starts with the given
// letter, case-insensitively, with the same early-stop behavior as
// SearchMoviesByTitle.
func (s *Store) GetMoviesByFirstLetter(letter string, limit int) []Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	want, _ := utf8.DecodeRuneInString(strings.ToUpper(letter))
	results := []Movie{}
	for _, m := range s.loadMovies().Movies {
		if m.Title == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(strings.ToUpper(m.Title))
		if first == want {
			results = append(results, m.clone())
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// GetMoviesByCategory returns the [offset, offset+limit) slice of all
// movies carrying the category tag (or every movie for CategoryAll),
// sorted by lowercase title ascending. The full match set is sorted before
// slicing; pagination is not stable otherwise.
func (s *Store) GetMoviesByCategory(category string, limit, offset int) []Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	matching := []Movie{}
	for _, m := range s.loadMovies().Movies {
		if category == CategoryAll {
			matching = append(matching, m.clone())
			continue
		}
		for _, c := range m.Categories {
			if c == category {
				matching = append(matching, m.clone())
				break
			}
		}
	}

	sort.Slice(matching, func(i, j int) bool {
		return strings.ToLower(matching[i].Title) < strings.ToLower(matching[j].Title)
	})

	if offset >= len(matching) {
		return []Movie{}
	}
	end := offset + limit
	if end > len(matching) {
		end = len(matching)
	}
	s.log.Debug("category search", "category", category, "found", len(matching), "returned", end-offset)
	return matching[offset:end]
}

// CountMoviesByCategory returns the size of the full match set for a
// category, for building pagination controls.
func (s *Store) CountMoviesByCategory(category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, m := range s.loadMovies().Movies {
		if category == CategoryAll {
			n++
			continue
		}
		for _, c := range m.Categories {
			if c == category {
				n++
				break
			}
		}
	}
	return n
}

// DeleteMovie removes a movie by id. No cascading effect on other
// collections; the caller purges tokens separately, best effort.
func (s *Store) DeleteMovie(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadMovies()
	key := movieKey(id)
	if _, ok := doc.Movies[key]; !ok {
		return false, nil
	}
	delete(doc.Movies, key)
	if err := s.save(moviesFile, doc); err != nil {
		return false, err
	}
	s.log.Info("deleted movie", "movie_id", id)
	return true, nil
}

// IncrementDownloadCount bumps a movie's download counter, persisting
// immediately. A no-op for an absent id.
func (s *Store) IncrementDownloadCount(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadMovies()
	key := movieKey(id)
	m, ok := doc.Movies[key]
	if !ok {
		return nil
	}
	m.DownloadCount++
	doc.Movies[key] = m
	return s.save(moviesFile, doc)
}

// GetMoviesByUploader returns movies added by the given admin or owner,
// newest first, truncated to limit.
func (s *Store) GetMoviesByUploader(uploaderID int64, limit int) []Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []Movie{}
	for _, m := range s.loadMovies().Movies {
		if m.AddedBy == uploaderID {
			results = append(results, m.clone())
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].AddedAt.After(results[j].AddedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// CountMovies returns the total number of cataloged movies.
func (s *Store) CountMovies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loadMovies().Movies)
}
