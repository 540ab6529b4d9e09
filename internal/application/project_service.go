package application

import (
	"context"
	"fmt"
	"log"
	"strings"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
	"taskbot/internal/session"
	"taskbot/internal/ui"
)

const (
	msgProjectCreateStart = ui.EmojiNewProject + " *Create New Project*\n\nPlease enter a name for your project:"
	msgProjectAskDesc     = ui.EmojiEditProject + ` Please enter a description for your project (or type "skip" to skip):`
	msgProjectCreateError = ui.EmojiError + " There was an error creating your project. Please try again later."
	msgProjectNotFound    = ui.EmojiError + " Project not found."
	msgProjectError       = ui.EmojiError + " There was an error showing project details. Please try again later."
	msgProjectAdminsOnly  = ui.EmojiError + " Only the project admin can edit this project."
	msgDeleteAdminsOnly   = ui.EmojiError + " Only the project admin can delete this project."
)

// ProjectService меню проектов, создание, редактирование и удаление
type ProjectService struct {
	users    port.UserRepository
	projects port.ProjectRepository
	sessions *session.Store
	sender   port.Sender
}

func NewProjectService(users port.UserRepository, projects port.ProjectRepository, sessions *session.Store, sender port.Sender) *ProjectService {
	return &ProjectService{
		users:    users,
		projects: projects,
		sessions: sessions,
		sender:   sender,
	}
}

// ShowMenu показывает меню проектов. Активный диалог сбрасывается,
// накопленные данные сессии сохраняются.
func (s *ProjectService) ShowMenu(ctx context.Context, chatID, userID int64) {
	s.sessions.SetState(userID, entity.StepNone)

	user, err := s.users.GetByTelegramID(ctx, userID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}
	if err != nil {
		log.Printf("Error showing projects menu for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return
	}

	var rows [][]string
	if len(user.ProjectIDs) > 0 {
		projects, err := s.projects.FindByIDs(ctx, user.ProjectIDs)
		if err != nil {
			log.Printf("Error loading projects for user %d: %v", userID, err)
			send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
			return
		}
		for _, project := range projects {
			rows = append(rows, []string{ui.EmojiProject + " " + project.Name})
		}
	}
	rows = append(rows, []string{ui.LabelCreateProject}, []string{ui.LabelBackToMenu})

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     ui.EmojiProjects + " *Projects*\n\nSelect a project or create a new one:",
		Markdown: true,
		Keyboard: ui.Reply(rows...),
	})
}

// StartCreation начинает диалог создания проекта
func (s *ProjectService) StartCreation(ctx context.Context, chatID, userID int64) {
	s.sessions.SetState(userID, entity.StepProjectName)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     msgProjectCreateStart,
		Markdown: true,
		Keyboard: ui.CancelRow(),
	})
}

// HandleCreateInput обрабатывает свободный ввод на шагах создания проекта
func (s *ProjectService) HandleCreateInput(ctx context.Context, chatID, userID int64, step entity.FlowStep, text string) {
	out := projectCreateAdvance(step, text)

	switch out.Kind {
	case OutcomeCancel:
		s.sessions.Clear(userID)
		s.ShowMenu(ctx, chatID, userID)

	case OutcomeRetry:
		send(s.sender, port.Message{ChatID: chatID, Text: out.ErrText, Keyboard: ui.CancelRow()})

	case OutcomeAdvance:
		for k, v := range out.Patch {
			s.sessions.SetData(userID, k, v)
		}
		s.sessions.SetState(userID, out.Next)
		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     msgProjectAskDesc,
			Markdown: true,
			Keyboard: ui.SkipCancelRow(),
		})

	case OutcomeComplete:
		s.completeCreation(ctx, chatID, userID, dataString(out.Patch, "projectDescription"))
	}
}

func (s *ProjectService) completeCreation(ctx context.Context, chatID, userID int64, description string) {
	sess := s.sessions.Get(userID)
	name := dataString(sess.Data, "projectName")

	user, err := s.users.GetByTelegramID(ctx, userID)
	if err == entity.ErrNotFound {
		s.sessions.Clear(userID)
		send(s.sender, port.Message{
			ChatID: chatID,
			Text:   ui.EmojiError + " You need to be registered to create a project. Use /start to register.",
		})
		return
	}
	if err != nil {
		log.Printf("Error creating project for user %d: %v", userID, err)
		s.sessions.Clear(userID)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectCreateError})
		return
	}

	project := entity.NewProject(name, description, userID)
	if err := s.projects.Create(ctx, project); err != nil {
		log.Printf("Error creating project %q: %v", name, err)
		s.sessions.Clear(userID)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectCreateError})
		s.ShowMenu(ctx, chatID, userID)
		return
	}

	// Проект уже создан: при сбое второй записи пользователю
	// сообщается об ошибке, первое сохранение не откатывается
	user.ProjectIDs = append(user.ProjectIDs, project.ID)
	if err := s.users.Save(ctx, user); err != nil {
		log.Printf("Error linking project %s to user %d: %v", project.ID, userID, err)
		s.sessions.Clear(userID)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectCreateError})
		s.ShowMenu(ctx, chatID, userID)
		return
	}

	s.sessions.Clear(userID)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     fmt.Sprintf("%s Project *%s* created successfully!", ui.EmojiSuccess, name),
		Markdown: true,
	})
	s.ShowMenu(ctx, chatID, userID)
}

// ShowDetailsByName показывает проект, выбранный кнопкой меню "📁 <имя>"
func (s *ProjectService) ShowDetailsByName(ctx context.Context, chatID, userID int64, buttonText string) {
	name := strings.TrimPrefix(buttonText, ui.EmojiProject+" ")

	project, err := s.projects.GetByName(ctx, name)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectNotFound})
		return
	}
	if err != nil {
		log.Printf("Error showing project %q: %v", name, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return
	}

	s.sendDetails(ctx, chatID, userID, project)
}

// ShowDetailsByID показывает проект по идентификатору из callback-данных
func (s *ProjectService) ShowDetailsByID(ctx context.Context, chatID, userID int64, projectID string) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectNotFound})
		return
	}
	if err != nil {
		log.Printf("Error showing project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return
	}

	s.sendDetails(ctx, chatID, userID, project)
}

func (s *ProjectService) sendDetails(ctx context.Context, chatID, userID int64, project *entity.Project) {
	members, err := s.users.FindByProject(ctx, project.ID)
	if err != nil {
		log.Printf("Error counting members of project %s: %v", project.ID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return
	}

	isAdmin := project.IsAdmin(userID)

	var rows [][]port.Button
	if isAdmin {
		rows = append(rows, []port.Button{
			ui.Btn(ui.EmojiEditProject+" Edit", "edit_project:"+project.ID),
			ui.Btn(ui.EmojiDeleteProject+" Delete", "delete_project:"+project.ID),
		})
	}
	rows = append(rows, []port.Button{
		ui.Btn(ui.EmojiTeam+" View Team", "view_team:"+project.ID),
		ui.Btn(ui.EmojiTasks+" View Tasks", "view_tasks:"+project.ID),
	})

	text := fmt.Sprintf("%s *%s*\n\n", ui.EmojiProject, project.Name)
	if project.Description != "" {
		text += fmt.Sprintf("%s *Description:* %s\n", ui.EmojiInfo, project.Description)
	}
	text += fmt.Sprintf("%s *Team Members:* %d\n", ui.EmojiTeam, len(members))
	text += fmt.Sprintf("%s *Work Days:* %s\n", ui.EmojiCalendar, strings.Join(project.WorkDays, ", "))
	text += fmt.Sprintf("%s *Created:* %s\n", ui.EmojiInfo, project.CreatedAt.Format("Jan 2, 2006"))
	if isAdmin {
		text += "\n" + ui.EmojiWarning + " You are the admin of this project."
	}

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     text,
		Markdown: true,
		Keyboard: ui.Inline(rows...),
	})
}

// StartEdit показывает администратору меню редактирования проекта
func (s *ProjectService) StartEdit(ctx context.Context, chatID, userID int64, projectID string) {
	project, ok := s.requireAdmin(ctx, chatID, userID, projectID, msgProjectAdminsOnly)
	if !ok {
		return
	}

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     ui.EmojiEditProject + " *Edit Project*\n\nWhat would you like to edit?",
		Markdown: true,
		Keyboard: ui.Inline(
			[]port.Button{
				ui.Btn(ui.EmojiEditProject+" Edit Name", "edit_project_name:"+project.ID),
				ui.Btn(ui.EmojiEditProject+" Edit Description", "edit_project_desc:"+project.ID),
			},
			[]port.Button{
				ui.Btn(ui.EmojiBack+" Back", "view_project:"+project.ID),
			},
		),
	})
}

// StartEditName начинает ввод нового имени проекта
func (s *ProjectService) StartEditName(ctx context.Context, chatID, userID int64, projectID string) {
	if _, ok := s.requireAdmin(ctx, chatID, userID, projectID, msgProjectAdminsOnly); !ok {
		return
	}

	s.sessions.SetState(userID, entity.StepProjectEditName)
	s.sessions.SetData(userID, "projectId", projectID)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     ui.EmojiEditProject + " Please enter a new name for the project:",
		Keyboard: ui.CancelRow(),
	})
}

// StartEditDesc начинает ввод нового описания проекта
func (s *ProjectService) StartEditDesc(ctx context.Context, chatID, userID int64, projectID string) {
	if _, ok := s.requireAdmin(ctx, chatID, userID, projectID, msgProjectAdminsOnly); !ok {
		return
	}

	s.sessions.SetState(userID, entity.StepProjectEditDesc)
	s.sessions.SetData(userID, "projectId", projectID)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     ui.EmojiEditProject + " Please enter a new description for the project:",
		Keyboard: ui.CancelRow(),
	})
}

// HandleEditInput обрабатывает свободный ввод на шагах редактирования
func (s *ProjectService) HandleEditInput(ctx context.Context, chatID, userID int64, step entity.FlowStep, text string) {
	if IsCancelToken(text) {
		s.sessions.Clear(userID)
		s.ShowMenu(ctx, chatID, userID)
		return
	}

	sess := s.sessions.Get(userID)
	projectID := dataString(sess.Data, "projectId")

	project, ok := s.requireAdmin(ctx, chatID, userID, projectID, msgProjectAdminsOnly)
	if !ok {
		s.sessions.Clear(userID)
		return
	}

	switch step {
	case entity.StepProjectEditName:
		project.Name = text
	case entity.StepProjectEditDesc:
		project.Description = text
	}

	s.sessions.Clear(userID)

	if err := s.projects.Save(ctx, project); err != nil {
		log.Printf("Error updating project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return
	}

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     fmt.Sprintf("%s Project updated successfully!", ui.EmojiSuccess),
		Markdown: true,
	})
	s.sendDetails(ctx, chatID, userID, project)
}

// ConfirmDelete спрашивает подтверждение удаления проекта
func (s *ProjectService) ConfirmDelete(ctx context.Context, chatID, userID int64, projectID string) {
	project, ok := s.requireAdmin(ctx, chatID, userID, projectID, msgDeleteAdminsOnly)
	if !ok {
		return
	}

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     fmt.Sprintf("%s *Delete Project*\n\nAre you sure you want to delete the project %q? This action cannot be undone.", ui.EmojiWarning, project.Name),
		Markdown: true,
		Keyboard: ui.Inline([]port.Button{
			ui.Btn(ui.EmojiSelect+" Yes, delete", "confirm_delete_project:"+project.ID),
			ui.Btn(ui.EmojiCancel+" No, cancel", "cancel_delete_project:"+project.ID),
		}),
	})
}

// Delete удаляет проект и убирает его из списков всех пользователей
func (s *ProjectService) Delete(ctx context.Context, chatID, userID int64, projectID string) {
	project, ok := s.requireAdmin(ctx, chatID, userID, projectID, msgDeleteAdminsOnly)
	if !ok {
		return
	}

	if err := s.users.RemoveProjectFromAll(ctx, projectID); err != nil {
		log.Printf("Error detaching project %s from users: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		log.Printf("Error deleting project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return
	}

	s.sessions.Clear(userID)

	send(s.sender, port.Message{
		ChatID: chatID,
		Text:   fmt.Sprintf("%s Project %q has been deleted successfully.", ui.EmojiSuccess, project.Name),
	})
	s.ShowMenu(ctx, chatID, userID)
}

// CancelDelete отменяет удаление и возвращает к деталям проекта
func (s *ProjectService) CancelDelete(ctx context.Context, chatID, userID int64, projectID string) {
	s.sessions.Clear(userID)
	s.ShowDetailsByID(ctx, chatID, userID, projectID)
}

func (s *ProjectService) requireAdmin(ctx context.Context, chatID, userID int64, projectID, denyText string) (*entity.Project, bool) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectNotFound})
		return nil, false
	}
	if err != nil {
		log.Printf("Error loading project %s: %v", projectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProjectError})
		return nil, false
	}

	if !project.IsAdmin(userID) {
		send(s.sender, port.Message{ChatID: chatID, Text: denyText})
		return nil, false
	}

	return project, true
}
