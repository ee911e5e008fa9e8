// Package catalog is the bot's persistence layer: six independent JSON
// collections under a data directory, each read and written as a whole
// document. One store-wide mutex serializes every read-modify-write, so
// concurrent handlers cannot lose updates. A missing or unparseable
// collection file is a recoverable condition and loads as empty.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Collection file names under the data directory.
const (
	usersFile    = "users.json"
	adminsFile   = "admins.json"
	moviesFile   = "movies.json"
	channelsFile = "channels.json"
	requestsFile = "requests.json"
	tokensFile   = "tokens.json"
)

// Store owns all collections exclusively. Callers receive copies of
// records, never live references.
type Store struct {
	mu      sync.Mutex
	dir     string
	ownerID int64
	log     *slog.Logger
}

// New opens a store rooted at dir, creating the directory and seeding any
// absent collection with its empty-state document. Existing non-empty
// collections are never overwritten. ownerID is the configured owner
// identity used by GetUserRole.
func New(dir string, ownerID int64, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{dir: dir, ownerID: ownerID, log: log}

	seeds := map[string]any{
		usersFile:    map[string]User{},
		adminsFile:   map[string]Admin{},
		moviesFile:   moviesDoc{NextID: 1, Movies: map[string]Movie{}},
		channelsFile: map[string]Channel{},
		requestsFile: requestsDoc{NextID: 1, Requests: map[string]Request{}},
		tokensFile:   map[string]DownloadToken{},
	}
	for name, doc := range seeds {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := s.save(name, doc); err != nil {
			return nil, fmt.Errorf("seed %s: %w", name, err)
		}
		log.Info("initialized collection", "file", name)
	}
	return s, nil
}

// moviesDoc is the on-disk envelope for the movie collection. NextID is
// monotonically non-decreasing and always exceeds every existing key.
type moviesDoc struct {
	NextID int              `json:"next_id"`
	Movies map[string]Movie `json:"movies"`
}

type requestsDoc struct {
	NextID   int                `json:"next_id"`
	Requests map[string]Request `json:"requests"`
}

// load reads a collection file into v. Absence and malformed content are
// recoverable: v is left untouched and the condition is logged.
func (s *Store) load(name string, v any) {
	path := filepath.Join(s.dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read collection, treating as empty", "file", name, "error", err)
		}
		return
	}
	if err := json.Unmarshal(b, v); err != nil {
		s.log.Warn("malformed collection file, treating as empty", "file", name, "error", err)
	}
}

// save persists a collection document via temp-file-and-rename so a
// concurrent reader never observes a partial write.
func (s *Store) save(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *Store) loadUsers() map[string]User {
	users := map[string]User{}
	s.load(usersFile, &users)
	if users == nil {
		users = map[string]User{}
	}
	return users
}

func (s *Store) loadAdmins() map[string]Admin {
	admins := map[string]Admin{}
	s.load(adminsFile, &admins)
	if admins == nil {
		admins = map[string]Admin{}
	}
	return admins
}

func (s *Store) loadMovies() moviesDoc {
	doc := moviesDoc{NextID: 1, Movies: map[string]Movie{}}
	s.load(moviesFile, &doc)
	if doc.Movies == nil {
		doc.Movies = map[string]Movie{}
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}
	return doc
}

func (s *Store) loadChannels() map[string]Channel {
	channels := map[string]Channel{}
	s.load(channelsFile, &channels)
	if channels == nil {
		channels = map[string]Channel{}
	}
	return channels
}

func (s *Store) loadRequests() requestsDoc {
	doc := requestsDoc{NextID: 1, Requests: map[string]Request{}}
	s.load(requestsFile, &doc)
	if doc.Requests == nil {
		doc.Requests = map[string]Request{}
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}
	return doc
}

func (s *Store) loadTokens() map[string]DownloadToken {
	tokens := map[string]DownloadToken{}
	s.load(tokensFile, &tokens)
	if tokens == nil {
		tokens = map[string]DownloadToken{}
	}
	return tokens
}
