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
	msgTeamError  = ui.EmojiError + " There was an error loading the team. Please try again later."
	msgNoAccess   = ui.EmojiError + " You don't have access to this project."
	msgAdminsOnly = ui.EmojiError + " Only the project admin can add members."
)

// ShowTeam показывает участников проекта
func (s *UserService) ShowTeam(ctx context.Context, chatID, userID int64, projectID string) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectGone})
		return
	}
	if err != nil {
		log.Printf("Error showing team for project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTeamError})
		return
	}

	viewer, err := s.users.GetByTelegramID(ctx, userID)
	if err != nil || !viewer.IsMemberOf(projectID) {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNoAccess})
		return
	}

	members, err := s.users.FindByProject(ctx, projectID)
	if err != nil {
		log.Printf("Error loading team for project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTeamError})
		return
	}

	text := fmt.Sprintf("%s *Team for %q*\n\n", ui.EmojiTeam, project.Name)
	if len(members) == 0 {
		text += "No team members yet."
	} else {
		for i, member := range members {
			text += fmt.Sprintf("%d. *%s*", i+1, member.FullName())
			if member.Role != "" {
				text += " - " + member.Role
			}
			if project.IsAdmin(member.TelegramID) {
				text += " (Admin)"
			}
			text += "\n"
		}
	}

	var rows [][]port.Button
	if project.IsAdmin(userID) {
		rows = append(rows, []port.Button{
			ui.Btn(ui.EmojiAddUser+" Add Member", "add_member:"+projectID),
		})
	}
	rows = append(rows, []port.Button{
		ui.Btn(ui.EmojiBack+" Back to Project", "back_to_project:"+projectID),
	})

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     text,
		Markdown: true,
		Keyboard: ui.Inline(rows...),
	})
}

// StartAddMember показывает администратору список пользователей вне проекта
func (s *UserService) StartAddMember(ctx context.Context, chatID, adminID int64, projectID string) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectGone})
		return
	}
	if err != nil {
		log.Printf("Error starting add member for project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTeamError})
		return
	}

	if !project.IsAdmin(adminID) {
		send(s.sender, port.Message{ChatID: chatID, Text: msgAdminsOnly})
		return
	}

	candidates, err := s.users.FindNotInProject(ctx, projectID)
	if err != nil {
		log.Printf("Error loading candidates for project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTeamError})
		return
	}

	if len(candidates) == 0 {
		send(s.sender, port.Message{
			ChatID: chatID,
			Text:   ui.EmojiInfo + " There are no registered users that can be added to this project.",
		})
		return
	}

	var rows [][]port.Button
	for _, candidate := range candidates {
		rows = append(rows, []port.Button{
			ui.Btn(candidate.FullName(), fmt.Sprintf("add_member_confirm:%s:%d", projectID, candidate.TelegramID)),
		})
	}
	rows = append(rows, []port.Button{
		ui.Btn(ui.EmojiBack+" Back", "view_team:"+projectID),
	})

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     fmt.Sprintf("%s *Add Team Member*\n\nSelect a user to add to %q:", ui.EmojiAddUser, project.Name),
		Markdown: true,
		Keyboard: ui.Inline(rows...),
	})
}

// ConfirmAddMember добавляет выбранного пользователя в проект
func (s *UserService) ConfirmAddMember(ctx context.Context, chatID, adminID int64, projectID string, newUserID int64) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectGone})
		return
	}
	if err != nil {
		log.Printf("Error adding member to project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTeamError})
		return
	}

	if !project.IsAdmin(adminID) {
		send(s.sender, port.Message{ChatID: chatID, Text: msgAdminsOnly})
		return
	}

	newMember, err := s.users.GetByTelegramID(ctx, newUserID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgUserGone})
		return
	}
	if err != nil {
		log.Printf("Error loading user %d: %v", newUserID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTeamError})
		return
	}

	if newMember.IsMemberOf(projectID) {
		send(s.sender, port.Message{ChatID: chatID, Text: msgAlreadyMember})
		return
	}

	newMember.RemovePendingRequest(projectID)
	newMember.ProjectIDs = append(newMember.ProjectIDs, projectID)
	if err := s.users.Save(ctx, newMember); err != nil {
		log.Printf("Error adding member %d to project %s: %v", newUserID, projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTeamError})
		return
	}

	send(s.sender, port.Message{
		ChatID: chatID,
		Text:   fmt.Sprintf("%s %s has been added to %q.", ui.EmojiSuccess, newMember.FullName(), project.Name),
	})

	// Негарантированное уведомление нового участника
	err = s.sender.Send(port.Message{
		ChatID: newUserID,
		Text:   fmt.Sprintf("%s You have been added to the project %q.", ui.EmojiNotification, project.Name),
	})
	if err != nil {
		log.Printf("Error notifying user %d about membership: %v", newUserID, err)
	}
}
