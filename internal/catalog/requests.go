package catalog

import (
	"sort"
	"strconv"
	"time"
)

func requestKey(id int) string { return strconv.Itoa(id) }

// AddMovieRequest records a user's movie request with status pending.
// The id is assigned from the collection counter.
func (s *Store) AddMovieRequest(userID int64, movieName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadRequests()
	id := doc.NextID
	doc.Requests[requestKey(id)] = Request{
		ID:          id,
		UserID:      userID,
		MovieName:   movieName,
		Status:      StatusPending,
		RequestedAt: time.Now(),
	}
	doc.NextID++

	if err := s.save(requestsFile, doc); err != nil {
		return 0, err
	}
	s.log.Info("added movie request", "request_id", id, "movie_name", movieName, "user_id", userID)
	return id, nil
}

// GetPendingRequests returns the [offset, offset+limit) slice of pending
// requests, newest first (descending request id), each with the requesting
// user's record attached. A request whose user no longer resolves carries
// an empty user record, never an error.
func (s *Store) GetPendingRequests(limit, offset int) []PendingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	pending := []PendingRequest{}
	for _, r := range s.loadRequests().Requests {
		if r.Status != StatusPending {
			continue
		}
		pending = append(pending, PendingRequest{
			Request: r,
			User:    users[userKey(r.UserID)],
		})
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].ID > pending[j].ID })

	if offset >= len(pending) {
		return []PendingRequest{}
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}
	return pending[offset:end]
}

// GetPendingRequestsCount counts requests with status pending.
func (s *Store) GetPendingRequestsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.loadRequests().Requests {
		if r.Status == StatusPending {
			n++
		}
	}
	return n
}

// UpdateRequestStatus sets a request's status and updated-at timestamp and
// returns the updated record. Absence returns nil, not an error.
func (s *Store) UpdateRequestStatus(id int, status string) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadRequests()
	key := requestKey(id)
	r, ok := doc.Requests[key]
	if !ok {
		return nil, nil
	}

	now := time.Now()
	r.Status = status
	r.UpdatedAt = &now
	doc.Requests[key] = r

	if err := s.save(requestsFile, doc); err != nil {
		return nil, err
	}
	s.log.Info("updated request status", "request_id", id, "status", status)
	return &r, nil
}
