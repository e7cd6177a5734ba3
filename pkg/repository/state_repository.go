package repository

import "sync"

// stateRepository remembers which chats are about to send a negative prompt.
type stateRepository struct {
	mu      sync.Mutex
	editing map[chatKey]struct{}
}

func NewStateRepository() *stateRepository {
	return &stateRepository{editing: make(map[chatKey]struct{})}
}

func (s *stateRepository) StartEditing(chatID int64, topicID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing[chatKey{chatID, topicID}] = struct{}{}
}

func (s *stateRepository) IsEditing(chatID int64, topicID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.editing[chatKey{chatID, topicID}]
	return ok
}

func (s *stateRepository) Clear(chatID int64, topicID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.editing, chatKey{chatID, topicID})
}
