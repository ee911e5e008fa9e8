package catalog

import "time"

// AddChannel creates a channel record. Fails without mutation when the
// channel id or short name is already in use.
func (s *Store) AddChannel(id, name, shortName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := s.loadChannels()
	if _, ok := channels[id]; ok {
		s.log.Warn("channel already exists", "channel_id", id)
		return false, nil
	}
	for _, c := range channels {
		if c.ShortName == shortName {
			s.log.Warn("channel short name already in use", "short_name", shortName)
			return false, nil
		}
	}

	channels[id] = Channel{
		ID:        id,
		Name:      name,
		ShortName: shortName,
		AddedAt:   time.Now(),
	}
	if err := s.save(channelsFile, channels); err != nil {
		return false, err
	}
	s.log.Info("added new channel", "channel_id", id, "short_name", shortName)
	return true, nil
}

// RemoveChannel removes a channel addressed by id or short name, with the
// same resolution order as RemoveAdmin.
func (s *Store) RemoveChannel(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := s.loadChannels()
	if _, ok := channels[identifier]; ok {
		delete(channels, identifier)
		if err := s.save(channelsFile, channels); err != nil {
			return false, err
		}
		s.log.Info("removed channel", "channel_id", identifier)
		return true, nil
	}

	for key, c := range channels {
		if c.ShortName == identifier {
			delete(channels, key)
			if err := s.save(channelsFile, channels); err != nil {
				return false, err
			}
			s.log.Info("removed channel", "short_name", identifier)
			return true, nil
		}
	}

	s.log.Warn("channel not found", "identifier", identifier)
	return false, nil
}

// GetChannelInfo returns a channel record, or nil if unknown.
func (s *Store) GetChannelInfo(id string) *Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.loadChannels()[id]
	if !ok {
		return nil
	}
	return &c
}

// ListChannels returns all channels, unordered.
func (s *Store) ListChannels() []Channel {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := s.loadChannels()
	out := make([]Channel, 0, len(channels))
	for _, c := range channels {
		out = append(out, c)
	}
	return out
}
