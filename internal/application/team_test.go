package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShowTeam_MembersOnly(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()
	project := joinFixture(t, e)

	// Не участник не видит команду
	svc.ShowTeam(ctx, 2, 2, project.ID)

	last, ok := e.sender.lastTo(2)
	require.True(t, ok)
	require.Contains(t, last.Text, "don't have access")

	// Администратор видит список и кнопку добавления
	svc.ShowTeam(ctx, 1, 1, project.ID)

	last, ok = e.sender.lastTo(1)
	require.True(t, ok)
	require.Contains(t, last.Text, "Admin")
	require.NotNil(t, last.Keyboard)

	var labels []string
	for _, row := range last.Keyboard.Rows {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	require.Contains(t, labels[0], "Add Member")
}

func TestStartAddMember_ListsOutsiders(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()
	project := joinFixture(t, e)

	svc.StartAddMember(ctx, 1, 1, project.ID)

	last, ok := e.sender.lastTo(1)
	require.True(t, ok)
	require.NotNil(t, last.Keyboard)
	require.True(t, last.Keyboard.Inline)
	// Единственный кандидат и кнопка возврата
	require.Len(t, last.Keyboard.Rows, 2)
	require.Equal(t, "Bob", last.Keyboard.Rows[0][0].Text)
}

func TestStartAddMember_AdminOnly(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()
	project := joinFixture(t, e)

	svc.StartAddMember(ctx, 2, 2, project.ID)

	last, ok := e.sender.lastTo(2)
	require.True(t, ok)
	require.Contains(t, last.Text, "Only the project admin")
}

func TestConfirmAddMember(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()
	project := joinFixture(t, e)

	// Ожидающая заявка снимается при прямом добавлении
	user, err := e.users.GetByTelegramID(ctx, 2)
	require.NoError(t, err)
	user.PendingProjectIDs = append(user.PendingProjectIDs, project.ID)
	require.NoError(t, e.users.Save(ctx, user))

	svc.ConfirmAddMember(ctx, 1, 1, project.ID, 2)

	updated, err := e.users.GetByTelegramID(ctx, 2)
	require.NoError(t, err)
	require.True(t, updated.IsMemberOf(project.ID))
	require.False(t, updated.HasPendingRequest(project.ID))

	// Новый участник уведомляется
	last, ok := e.sender.lastTo(2)
	require.True(t, ok)
	require.Contains(t, last.Text, "added to the project")
}

func TestConfirmAddMember_AlreadyMember(t *testing.T) {
	e := newEnv()
	svc := e.userService()
	ctx := context.Background()
	project := joinFixture(t, e)

	svc.ConfirmAddMember(ctx, 1, 1, project.ID, 2)
	e.sender.reset()
	svc.ConfirmAddMember(ctx, 1, 1, project.ID, 2)

	last, ok := e.sender.lastTo(1)
	require.True(t, ok)
	require.Contains(t, last.Text, "already a member")

	user, err := e.users.GetByTelegramID(ctx, 2)
	require.NoError(t, err)

	count := 0
	for _, id := range user.ProjectIDs {
		if id == project.ID {
			count++
		}
	}
	require.Equal(t, 1, count)
}
