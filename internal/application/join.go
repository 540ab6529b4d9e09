package application

import (
	"context"
	"fmt"
	"log"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
	"taskbot/internal/ui"
)

const (
	msgJoinStart      = ui.EmojiProject + " *Join Project*\n\nPlease enter the project name you want to join:"
	msgJoinCancelled  = ui.EmojiCancel + " Join project cancelled."
	msgAlreadyMember  = ui.EmojiInfo + " You are already a member of this project."
	msgAlreadyPending = ui.EmojiInfo + " You already have a pending request to join this project."
	msgJoinError      = ui.EmojiError + " There was an error processing your request. Please try again later."
	msgProjectGone    = ui.EmojiError + " Project not found."
	msgUserGone       = ui.EmojiError + " User not found."
	msgNoPending      = ui.EmojiError + " No pending request found."
)

// StartJoin начинает диалог вступления в проект
func (s *UserService) StartJoin(ctx context.Context, chatID, userID int64) {
	if _, err := s.users.GetByTelegramID(ctx, userID); err != nil {
		if err == entity.ErrNotFound {
			send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		} else {
			log.Printf("Error starting join flow for user %d: %v", userID, err)
			send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		}
		return
	}

	s.sessions.SetState(userID, entity.StepJoinProject)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     msgJoinStart,
		Markdown: true,
		Keyboard: ui.CancelRow(),
	})
}

// HandleJoinInput обрабатывает имя проекта на шаге вступления.
// Ненайденный проект оставляет пользователя на том же шаге.
func (s *UserService) HandleJoinInput(ctx context.Context, chatID, userID int64, text string) {
	if IsCancelToken(text) {
		s.sessions.Clear(userID)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinCancelled, Keyboard: ui.MainMenu()})
		return
	}

	project, err := s.projects.GetByName(ctx, text)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     fmt.Sprintf("%s Project %q not found. Please check the name and try again.", ui.EmojiError, text),
			Keyboard: ui.CancelRow(),
		})
		return
	}
	if err != nil {
		log.Printf("Error processing join for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		s.sessions.Clear(userID)
		return
	}

	user, err := s.users.GetByTelegramID(ctx, userID)
	if err != nil {
		log.Printf("Error processing join for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		s.sessions.Clear(userID)
		return
	}

	if user.IsMemberOf(project.ID) {
		s.sessions.Clear(userID)
		send(s.sender, port.Message{ChatID: chatID, Text: msgAlreadyMember, Keyboard: ui.MainMenu()})
		return
	}

	if user.HasPendingRequest(project.ID) {
		s.sessions.Clear(userID)
		send(s.sender, port.Message{ChatID: chatID, Text: msgAlreadyPending, Keyboard: ui.MainMenu()})
		return
	}

	user.PendingProjectIDs = append(user.PendingProjectIDs, project.ID)
	if err := s.users.Save(ctx, user); err != nil {
		log.Printf("Error saving join request for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		s.sessions.Clear(userID)
		return
	}

	// Уведомление администратора негарантированное: заявка уже
	// сохранена, сбой доставки её не откатывает
	adminMsg := port.Message{
		ChatID:   project.AdminID,
		Text:     fmt.Sprintf("%s *Join Request*\n\nUser *%s* has requested to join your project %q.", ui.EmojiNotification, user.FullName(), project.Name),
		Markdown: true,
		Keyboard: ui.Inline([]port.Button{
			ui.Btn(ui.EmojiSelect+" Approve", fmt.Sprintf("approve_join:%s:%d", project.ID, user.TelegramID)),
			ui.Btn(ui.EmojiCancel+" Reject", fmt.Sprintf("reject_join:%s:%d", project.ID, user.TelegramID)),
		}),
	}
	if err := s.sender.Send(adminMsg); err != nil {
		log.Printf("Error notifying admin %d about join request: %v", project.AdminID, err)
	}

	s.sessions.Clear(userID)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     fmt.Sprintf("%s Your request to join %q has been sent to the project admin. You will be notified when they respond.", ui.EmojiSuccess, project.Name),
		Keyboard: ui.MainMenu(),
	})
}

// ApproveJoin одобряет заявку на вступление (только администратор)
func (s *UserService) ApproveJoin(ctx context.Context, chatID, adminID int64, projectID string, requestUserID int64) {
	project, requestUser, ok := s.loadJoinRequest(ctx, chatID, adminID, projectID, requestUserID)
	if !ok {
		return
	}

	requestUser.RemovePendingRequest(projectID)
	requestUser.ProjectIDs = append(requestUser.ProjectIDs, projectID)
	if err := s.users.Save(ctx, requestUser); err != nil {
		log.Printf("Error approving join request: %v", err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		return
	}

	send(s.sender, port.Message{
		ChatID: chatID,
		Text:   fmt.Sprintf("%s You have approved %s to join %q.", ui.EmojiSuccess, requestUser.FullName(), project.Name),
	})

	// Негарантированное уведомление заявителя
	err := s.sender.Send(port.Message{
		ChatID: requestUserID,
		Text:   fmt.Sprintf("%s Your request to join the project %q has been approved! You are now a team member.", ui.EmojiNotification, project.Name),
	})
	if err != nil {
		log.Printf("Error notifying user %d about approval: %v", requestUserID, err)
	}
}

// RejectJoin отклоняет заявку на вступление (только администратор)
func (s *UserService) RejectJoin(ctx context.Context, chatID, adminID int64, projectID string, requestUserID int64) {
	project, requestUser, ok := s.loadJoinRequest(ctx, chatID, adminID, projectID, requestUserID)
	if !ok {
		return
	}

	requestUser.RemovePendingRequest(projectID)
	if err := s.users.Save(ctx, requestUser); err != nil {
		log.Printf("Error rejecting join request: %v", err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		return
	}

	send(s.sender, port.Message{
		ChatID: chatID,
		Text:   fmt.Sprintf("%s You have rejected %s's request to join %q.", ui.EmojiSuccess, requestUser.FullName(), project.Name),
	})

	err := s.sender.Send(port.Message{
		ChatID: requestUserID,
		Text:   fmt.Sprintf("%s Your request to join the project %q has been rejected.", ui.EmojiNotification, project.Name),
	})
	if err != nil {
		log.Printf("Error notifying user %d about rejection: %v", requestUserID, err)
	}
}

// loadJoinRequest общие проверки для одобрения и отклонения заявки
func (s *UserService) loadJoinRequest(ctx context.Context, chatID, adminID int64, projectID string, requestUserID int64) (*entity.Project, *entity.User, bool) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectGone})
		return nil, nil, false
	}
	if err != nil {
		log.Printf("Error loading project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		return nil, nil, false
	}

	if !project.IsAdmin(adminID) {
		send(s.sender, port.Message{
			ChatID: chatID,
			Text:   ui.EmojiError + " Only the project admin can manage join requests.",
		})
		return nil, nil, false
	}

	requestUser, err := s.users.GetByTelegramID(ctx, requestUserID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgUserGone})
		return nil, nil, false
	}
	if err != nil {
		log.Printf("Error loading user %d: %v", requestUserID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgJoinError})
		return nil, nil, false
	}

	if !requestUser.HasPendingRequest(projectID) {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNoPending})
		return nil, nil, false
	}

	return project, requestUser, true
}
