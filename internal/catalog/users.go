package catalog

import (
	"strconv"
	"time"
)

func userKey(id int64) string { return strconv.FormatInt(id, 10) }

// UserExists reports whether the user has interacted with the bot before.
func (s *Store) UserExists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loadUsers()[userKey(id)]
	return ok
}

// UpsertUserSeen records a user interaction. A new user is created with the
// current timestamp and marked active; an existing user's name and handle
// are refreshed in place, persisting only when something changed.
// Returns whether the user was newly created.
func (s *Store) UpsertUserSeen(id int64, firstName, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	key := userKey(id)

	u, ok := users[key]
	if !ok {
		users[key] = User{
			ID:        id,
			FirstName: firstName,
			Username:  username,
			JoinedAt:  time.Now(),
			IsActive:  true,
		}
		if err := s.save(usersFile, users); err != nil {
			return false, err
		}
		s.log.Info("added new user", "user_id", id, "first_name", firstName)
		return true, nil
	}

	changed := false
	if u.FirstName != firstName {
		u.FirstName = firstName
		changed = true
	}
	if u.Username != username {
		u.Username = username
		changed = true
	}
	if changed {
		users[key] = u
		if err := s.save(usersFile, users); err != nil {
			return false, err
		}
	}
	return false, nil
}

// GetUser returns a user record, or nil if unknown.
func (s *Store) GetUser(id int64) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.loadUsers()[userKey(id)]
	if !ok {
		return nil
	}
	return &u
}

// CountUsers returns how many users the bot has ever seen.
func (s *Store) CountUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loadUsers())
}

// GetUserRole resolves a caller's role. The owner check runs first: the
// owner identity never resolves to admin even if it also appears in the
// admin collection.
func (s *Store) GetUserRole(id int64) Role {
	if id == s.ownerID {
		return RoleOwner
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loadAdmins()[userKey(id)]; ok {
		return RoleAdmin
	}
	return RoleUser
}
