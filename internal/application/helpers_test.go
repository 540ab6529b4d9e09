package application

import (
	"errors"
	"sync"
	"time"

	"taskbot/internal/domain/port"
	"taskbot/internal/infrastructure/storage"
	"taskbot/internal/session"
)

// fakeSender записывает отправленные сообщения вместо доставки
type fakeSender struct {
	mu       sync.Mutex
	messages []port.Message
	failFor  map[int64]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: make(map[int64]bool)}
}

func (f *fakeSender) Send(msg port.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[msg.ChatID] {
		return errors.New("chat unreachable")
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeSender) sentTo(chatID int64) []port.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []port.Message
	for _, msg := range f.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out
}

func (f *fakeSender) lastTo(chatID int64) (port.Message, bool) {
	msgs := f.sentTo(chatID)
	if len(msgs) == 0 {
		return port.Message{}, false
	}
	return msgs[len(msgs)-1], true
}

func (f *fakeSender) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = nil
}

var _ port.Sender = (*fakeSender)(nil)

// env общая обвязка сервисных тестов
type env struct {
	users    *storage.MemoryUserRepository
	projects *storage.MemoryProjectRepository
	tasks    *storage.MemoryTaskRepository
	sessions *session.Store
	sender   *fakeSender
}

func newEnv() *env {
	return &env{
		users:    storage.NewMemoryUserRepository(),
		projects: storage.NewMemoryProjectRepository(),
		tasks:    storage.NewMemoryTaskRepository(),
		sessions: session.NewStore(time.Hour),
		sender:   newFakeSender(),
	}
}

func (e *env) userService() *UserService {
	return NewUserService(e.users, e.projects, e.sessions, e.sender)
}

func (e *env) projectService() *ProjectService {
	return NewProjectService(e.users, e.projects, e.sessions, e.sender)
}

func (e *env) taskService() *TaskService {
	return NewTaskService(e.users, e.projects, e.tasks, e.sessions, e.sender)
}
