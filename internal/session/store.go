package session

import (
	"log"
	"sync"
	"time"

	"taskbot/internal/domain/entity"
)

// Session состояние диалога одного пользователя.
// Data имеет смысл только пока State не пуст.
type Session struct {
	State        entity.FlowStep
	Data         map[string]any
	LastActivity time.Time
}

// Store in-memory хранилище сессий. Состояние не переживает рестарт
// процесса: незавершённые диалоги начинаются заново через /start.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	ttl      time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewStore создаёт хранилище сессий с заданным временем жизни
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
}

// Get возвращает копию сессии пользователя, создавая её при первом
// обращении. Каждый вызов обновляет LastActivity.
func (s *Store) Get(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getLocked(userID)
	sess.LastActivity = time.Now()

	// Копия, чтобы данные не менялись вне блокировки
	data := make(map[string]any, len(sess.Data))
	for k, v := range sess.Data {
		data[k] = v
	}

	return Session{State: sess.State, Data: data, LastActivity: sess.LastActivity}
}

// SetState устанавливает шаг диалога, не трогая данные
func (s *Store) SetState(userID int64, state entity.FlowStep) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getLocked(userID)
	sess.State = state
	sess.LastActivity = time.Now()
}

// SetData сохраняет одно значение в данных сессии
func (s *Store) SetData(userID int64, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getLocked(userID)
	sess.Data[key] = value
	sess.LastActivity = time.Now()
}

// Clear сбрасывает сессию в пустое состояние. Ключ пользователя
// сохраняется, удаление выполняет только Sweep.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &Session{
		Data:         make(map[string]any),
		LastActivity: time.Now(),
	}
}

// Sweep удаляет сессии без активности дольше maxAge и возвращает
// количество удалённых
func (s *Store) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > maxAge {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len количество сессий в хранилище
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartSweeper запускает фоновую очистку устаревших сессий
func (s *Store) StartSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				if n := s.Sweep(s.ttl); n > 0 {
					log.Printf("Session sweep removed %d expired session(s)", n)
				}
			}
		}
	}()
}

// Stop останавливает фоновую очистку
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) getLocked(userID int64) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{
			Data:         make(map[string]any),
			LastActivity: time.Now(),
		}
		s.sessions[userID] = sess
	}
	return sess
}
