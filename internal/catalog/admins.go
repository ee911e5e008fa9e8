package catalog

import "time"

// AddAdmin creates an admin record. It fails without mutation when the id
// is already an admin or the short name is already taken; short names are
// an alternate lookup key and must stay unique.
func (s *Store) AddAdmin(id int64, shortName, firstName, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := s.loadAdmins()
	key := userKey(id)
	if _, ok := admins[key]; ok {
		s.log.Warn("admin already exists", "user_id", id)
		return false, nil
	}
	for _, a := range admins {
		if a.ShortName == shortName {
			s.log.Warn("admin short name already in use", "short_name", shortName)
			return false, nil
		}
	}

	admins[key] = Admin{
		ID:        id,
		ShortName: shortName,
		FirstName: firstName,
		Username:  username,
		AddedAt:   time.Now(),
	}
	if err := s.save(adminsFile, admins); err != nil {
		return false, err
	}
	s.log.Info("added new admin", "user_id", id, "short_name", shortName)
	return true, nil
}

// GetAdminInfo returns an admin record, or nil if unknown.
func (s *Store) GetAdminInfo(id int64) *Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.loadAdmins()[userKey(id)]
	if !ok {
		return nil
	}
	return &a
}

// RemoveAdmin removes an admin addressed by numeric id or by short name.
// Exact id match wins; otherwise the first record with a matching short
// name is removed. Returns false if neither matches.
func (s *Store) RemoveAdmin(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := s.loadAdmins()
	if _, ok := admins[identifier]; ok {
		delete(admins, identifier)
		if err := s.save(adminsFile, admins); err != nil {
			return false, err
		}
		s.log.Info("removed admin", "user_id", identifier)
		return true, nil
	}

	for key, a := range admins {
		if a.ShortName == identifier {
			delete(admins, key)
			if err := s.save(adminsFile, admins); err != nil {
				return false, err
			}
			s.log.Info("removed admin", "short_name", identifier)
			return true, nil
		}
	}

	s.log.Warn("admin not found", "identifier", identifier)
	return false, nil
}

// ListAdmins returns all admins, unordered.
func (s *Store) ListAdmins() []Admin {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := s.loadAdmins()
	out := make([]Admin, 0, len(admins))
	for _, a := range admins {
		out = append(out, a)
	}
	return out
}
