package syncer

import (
	"github.com/vincewoo/splitwiser/internal/models"
)

// Observer получает снимок SyncState при каждом переходе состояния
type Observer func(models.SyncState)

// Subscribe registers an observer. The current state is delivered
// synchronously before Subscribe returns; every later transition is delivered
// to all live observers in the order transitions occurred. The returned
// function unsubscribes the observer.
func (s *Service) Subscribe(fn Observer) (unsubscribe func()) {
	// notifyMu сериализует доставку: начальный снимок не может
	// перемешаться с параллельным переходом
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id := s.nextObserverID
	s.nextObserverID++
	s.observers[id] = fn
	snapshot := s.state.Clone()
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// State returns a snapshot of the current sync state.
func (s *Service) State() models.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// publish применяет мутацию состояния и доставляет снимок всем подписчикам.
// Внешний notifyMu гарантирует что подписчики видят переходы в том порядке,
// в котором они произошли.
func (s *Service) publish(mutate func(*models.SyncState)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state.Clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
