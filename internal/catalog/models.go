package catalog

import "time"

// Role of a caller, determining which operations they may invoke.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Request statuses. Status is an open string; these are the values the bot
// itself writes.
const (
	StatusPending   = "pending"
	StatusFulfilled = "fulfilled"
	StatusRejected  = "rejected"
)

// Movie types.
const (
	TypeSingle = "single"
	TypeSeries = "series"
)

// User is anyone the bot has ever seen. Created on first interaction,
// never deleted.
type User struct {
	ID        int64     `json:"user_id"`
	FirstName string    `json:"first_name"`
	Username  string    `json:"username,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
	IsActive  bool      `json:"is_active"`
}

// Admin is a privileged user. ShortName doubles as an alternate lookup key.
type Admin struct {
	ID        int64     `json:"user_id"`
	ShortName string    `json:"short_name"`
	FirstName string    `json:"first_name"`
	Username  string    `json:"username,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// File kinds. A file must be re-sent with the method matching how it was
// uploaded; a video file_id is rejected by sendDocument and vice versa.
const (
	FileDocument = "document"
	FileVideo    = "video"
)

// MovieFile is one downloadable Telegram file attached to a movie.
// Quality is set for single movies, Episode for series episodes.
// An empty Kind means document, the only kind older records carry.
type MovieFile struct {
	FileID  string `json:"file_id"`
	Kind    string `json:"kind,omitempty"`
	Quality string `json:"quality,omitempty"`
	Episode int    `json:"episode,omitempty"`
}

// Movie is a catalog entry, movie or series.
type Movie struct {
	ID            int         `json:"movie_id"`
	Title         string      `json:"title"`
	Type          string      `json:"type"`
	Categories    []string    `json:"categories"`
	Languages     []string    `json:"languages"`
	ReleaseYear   string      `json:"release_year,omitempty"`
	Runtime       string      `json:"runtime,omitempty"`
	Rating        string      `json:"imdb_rating,omitempty"`
	Files         []MovieFile `json:"files"`
	AddedBy       int64       `json:"added_by"`
	AddedAt       time.Time   `json:"added_at"`
	DownloadCount int         `json:"download_count"`
}

// clone returns a copy whose slice fields do not alias the stored record.
func (m Movie) clone() Movie {
	out := m
	out.Categories = append([]string(nil), m.Categories...)
	out.Languages = append([]string(nil), m.Languages...)
	out.Files = append([]MovieFile(nil), m.Files...)
	return out
}

// EpisodeCount reports how many episode files a series carries.
func (m Movie) EpisodeCount() int {
	n := 0
	for _, f := range m.Files {
		if f.Episode > 0 {
			n++
		}
	}
	return n
}

// Channel is a Telegram channel the bot posts to.
type Channel struct {
	ID        string    `json:"channel_id"`
	Name      string    `json:"channel_name"`
	ShortName string    `json:"short_name"`
	AddedAt   time.Time `json:"added_at"`
}

// Request is a user's ask for a movie that is not yet in the catalog.
// Requests are never physically deleted; status transitions only.
type Request struct {
	ID          int        `json:"request_id"`
	UserID      int64      `json:"user_id"`
	MovieName   string     `json:"movie_name"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// PendingRequest is a Request with the requesting user's record attached.
// User is the zero value when the referent no longer resolves.
type PendingRequest struct {
	Request
	User User `json:"user"`
}

// DownloadToken maps an opaque deep-link token back to a movie. Quality is
// set for single-quality links; a token with neither quality nor episode
// resolves to the whole upload.
type DownloadToken struct {
	Token     string    `json:"token"`
	MovieID   int       `json:"movie_id"`
	Quality   string    `json:"quality,omitempty"`
	Episode   int       `json:"episode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
