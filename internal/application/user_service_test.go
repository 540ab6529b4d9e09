package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskbot/internal/domain/entity"
)

func TestRegistration_EndToEnd(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()

	svc.Register(ctx, 100, 100)
	require.Equal(t, entity.StepUserName, e.sessions.Get(100).State)

	svc.HandleRegistrationInput(ctx, 100, 100, "alice_tg", entity.StepUserName, "Alice")
	require.Equal(t, entity.StepUserSurname, e.sessions.Get(100).State)

	svc.HandleRegistrationInput(ctx, 100, 100, "alice_tg", entity.StepUserSurname, "Smith")
	require.Equal(t, entity.StepUserRole, e.sessions.Get(100).State)

	svc.HandleRegistrationInput(ctx, 100, 100, "alice_tg", entity.StepUserRole, "Developer")
	require.Equal(t, entity.StepUserContact, e.sessions.Get(100).State)

	svc.HandleRegistrationInput(ctx, 100, 100, "alice_tg", entity.StepUserContact, "skip")

	user, err := e.users.GetByTelegramID(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "Smith", user.Surname)
	require.Equal(t, "Developer", user.Role)
	// Пропущенный контакт заменяется на Telegram username
	require.Equal(t, "alice_tg", user.Contact)
	require.Equal(t, "Alice Smith", user.FullName())

	require.Equal(t, entity.StepNone, e.sessions.Get(100).State)
	require.Empty(t, e.sessions.Get(100).Data)
}

func TestRegistration_AlreadyRegistered(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()

	require.NoError(t, e.users.Create(ctx, entity.NewUser(100, "alice", "Alice", "", "", "alice")))

	svc.Register(ctx, 100, 100)

	// Диалог не начинается
	require.Equal(t, entity.StepNone, e.sessions.Get(100).State)

	last, ok := e.sender.lastTo(100)
	require.True(t, ok)
	require.Contains(t, last.Text, "already registered")
}

func TestRegistration_CancelMidFlow(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()

	svc.Register(ctx, 100, 100)
	svc.HandleRegistrationInput(ctx, 100, 100, "alice_tg", entity.StepUserName, "Alice")
	svc.HandleRegistrationInput(ctx, 100, 100, "alice_tg", entity.StepUserSurname, "cancel")

	_, err := e.users.GetByTelegramID(ctx, 100)
	require.ErrorIs(t, err, entity.ErrNotFound)
	require.Equal(t, entity.StepNone, e.sessions.Get(100).State)
	require.Empty(t, e.sessions.Get(100).Data)
}

func TestProfile_RequiresRegistration(t *testing.T) {
	e := newEnv()
	svc := e.userService()

	svc.Profile(context.Background(), 100, 100)

	last, ok := e.sender.lastTo(100)
	require.True(t, ok)
	require.Contains(t, last.Text, "not registered")
}
