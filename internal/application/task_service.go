package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
	"taskbot/internal/session"
	"taskbot/internal/ui"
)

const (
	msgTaskCreateStart = ui.EmojiTask + " *Create New Task*\n\nPlease enter a name for your task:"
	msgTaskAskDesc     = ui.EmojiTask + ` Please enter a description for your task (or type "skip" to skip):`
	msgTaskAskDueDate  = ui.EmojiCalendar + ` Please enter a due date for the task (format: YYYY-MM-DD) or type "skip" to skip:`
	msgTaskAskType     = ui.EmojiTask + " Please select the task type:"
	msgTaskAskRole     = ui.EmojiUser + ` What role is this task for? (e.g., Developer, Designer) or type "skip":`
	msgTaskAskPriority = ui.EmojiTask + " Please select the task priority:"
	msgTaskAskEffort   = ui.EmojiClock + ` How many days of effort? (e.g., 0.5) or type "skip" for 1 day:`
	msgTaskCreateError = ui.EmojiError + " There was an error creating your task. Please try again later."
	msgTaskNotFound    = ui.EmojiError + " Task not found."
	msgTaskError       = ui.EmojiError + " There was an error loading your tasks. Please try again later."
	msgTaskNoAccess    = ui.EmojiError + " You don't have access to this task."
	msgTaskNoRights    = ui.EmojiError + " Only the project admin or the assignee can update this task."
	msgNeedProject     = ui.EmojiError + " You need to be a member of at least one project to create tasks."
)

// TaskService меню задач, создание, статусы и списки
type TaskService struct {
	users    port.UserRepository
	projects port.ProjectRepository
	tasks    port.TaskRepository
	sessions *session.Store
	sender   port.Sender
}

func NewTaskService(users port.UserRepository, projects port.ProjectRepository, tasks port.TaskRepository, sessions *session.Store, sender port.Sender) *TaskService {
	return &TaskService{
		users:    users,
		projects: projects,
		tasks:    tasks,
		sessions: sessions,
		sender:   sender,
	}
}

// ShowMenu показывает меню задач. Активный диалог сбрасывается.
func (s *TaskService) ShowMenu(ctx context.Context, chatID, userID int64) {
	s.sessions.SetState(userID, entity.StepNone)

	user, err := s.users.GetByTelegramID(ctx, userID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}
	if err != nil {
		log.Printf("Error showing tasks menu for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	var rows [][]string
	if len(user.ProjectIDs) > 0 {
		rows = append(rows, []string{ui.LabelCreateTask})
	}
	rows = append(rows,
		[]string{ui.LabelMyTasks},
		[]string{ui.LabelStatusTodo, ui.LabelStatusInProgress},
		[]string{ui.LabelStatusDone},
		[]string{ui.LabelBackToMenu},
	)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     ui.EmojiTasks + " *Tasks*\n\nSelect an option:",
		Markdown: true,
		Keyboard: ui.Reply(rows...),
	})
}

// StartCreation начинает диалог создания задачи. Пользователь без
// проектов отклоняется до входа в диалог; при единственном проекте шаг
// выбора пропускается.
func (s *TaskService) StartCreation(ctx context.Context, chatID, userID int64) {
	user, err := s.users.GetByTelegramID(ctx, userID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}
	if err != nil {
		log.Printf("Error starting task creation for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskCreateError})
		return
	}

	if len(user.ProjectIDs) == 0 {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNeedProject})
		return
	}

	if len(user.ProjectIDs) == 1 {
		s.BeginForProject(ctx, chatID, userID, user.ProjectIDs[0])
		return
	}

	projects, err := s.projects.FindByIDs(ctx, user.ProjectIDs)
	if err != nil {
		log.Printf("Error loading projects for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskCreateError})
		return
	}

	var rows [][]port.Button
	for _, project := range projects {
		rows = append(rows, []port.Button{ui.Btn(project.Name, "create_task:"+project.ID)})
	}
	rows = append(rows, []port.Button{ui.Btn(ui.LabelCancel, "cancel_task_creation")})

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     ui.EmojiTask + " *Create New Task*\n\nPlease select a project for this task:",
		Markdown: true,
		Keyboard: ui.Inline(rows...),
	})
}

// BeginForProject входит в диалог создания задачи для выбранного проекта
func (s *TaskService) BeginForProject(ctx context.Context, chatID, userID int64, projectID string) {
	s.sessions.SetState(userID, entity.StepTaskName)
	s.sessions.SetData(userID, "projectId", projectID)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     msgTaskCreateStart,
		Markdown: true,
		Keyboard: ui.CancelRow(),
	})
}

// CancelCreation отменяет создание задачи (inline-кнопка выбора проекта)
func (s *TaskService) CancelCreation(ctx context.Context, chatID, userID int64) {
	s.sessions.Clear(userID)
	s.ShowMenu(ctx, chatID, userID)
}

// HandleCreateInput обрабатывает свободный ввод на шагах создания задачи
func (s *TaskService) HandleCreateInput(ctx context.Context, chatID, userID int64, step entity.FlowStep, text string) {
	out := taskCreateAdvance(step, text)

	switch out.Kind {
	case OutcomeCancel:
		s.sessions.Clear(userID)
		s.ShowMenu(ctx, chatID, userID)

	case OutcomeRetry:
		// Шаг не меняется, пользователь получает ту же клавиатуру
		send(s.sender, port.Message{ChatID: chatID, Text: out.ErrText, Keyboard: s.creationKeyboard(step)})

	case OutcomeAdvance:
		for k, v := range out.Patch {
			s.sessions.SetData(userID, k, v)
		}
		s.sessions.SetState(userID, out.Next)
		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     s.creationPrompt(out.Next),
			Keyboard: s.creationKeyboard(out.Next),
		})

	case OutcomeComplete:
		s.completeCreation(ctx, chatID, userID, dataFloat(out.Patch, "taskEffort"))
	}
}

func (s *TaskService) creationPrompt(step entity.FlowStep) string {
	switch step {
	case entity.StepTaskDescription:
		return msgTaskAskDesc
	case entity.StepTaskDueDate:
		return msgTaskAskDueDate
	case entity.StepTaskType:
		return msgTaskAskType
	case entity.StepTaskRole:
		return msgTaskAskRole
	case entity.StepTaskPriority:
		return msgTaskAskPriority
	case entity.StepTaskEffort:
		return msgTaskAskEffort
	}
	return ""
}

func (s *TaskService) creationKeyboard(step entity.FlowStep) *port.Keyboard {
	switch step {
	case entity.StepTaskType:
		return ui.Reply(
			[]string{ui.LabelTypeFeature, ui.LabelTypeResearch, ui.LabelTypeBug},
			[]string{ui.LabelCancel},
		)
	case entity.StepTaskPriority:
		return ui.Reply(
			[]string{ui.LabelPriorityLow, ui.LabelPriorityMedium, ui.LabelPriorityHigh},
			[]string{ui.LabelCancel},
		)
	case entity.StepTaskName:
		return ui.CancelRow()
	}
	return ui.SkipCancelRow()
}

func (s *TaskService) completeCreation(ctx context.Context, chatID, userID int64, effort float64) {
	sess := s.sessions.Get(userID)

	task := entity.NewTask(
		dataString(sess.Data, "taskName"),
		dataString(sess.Data, "taskDescription"),
		dataString(sess.Data, "projectId"),
		userID,
	)
	task.DueDate = dataTime(sess.Data, "taskDueDate")
	if t, ok := sess.Data["taskType"].(entity.TaskType); ok {
		task.TaskType = t
	}
	task.RoleType = dataString(sess.Data, "taskRole")
	if p, ok := sess.Data["taskPriority"].(entity.TaskPriority); ok {
		task.Priority = p
	}
	task.Effort = effort

	s.sessions.Clear(userID)

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Printf("Error creating task %q: %v", task.Name, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskCreateError})
		return
	}

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     fmt.Sprintf("%s Task *%s* created successfully!", ui.EmojiSuccess, task.Name),
		Markdown: true,
	})
	s.ShowMenu(ctx, chatID, userID)
}

// UpdateStatus меняет статус задачи (администратор или исполнитель)
func (s *TaskService) UpdateStatus(ctx context.Context, chatID, userID int64, taskID string, status entity.TaskStatus) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskNotFound})
		return
	}
	if err != nil {
		log.Printf("Error loading task %s: %v", taskID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	user, err := s.users.GetByTelegramID(ctx, userID)
	if err != nil {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		log.Printf("Error loading project %s: %v", task.ProjectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	if !user.IsMemberOf(task.ProjectID) {
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskNoAccess})
		return
	}

	isAdmin := project.IsAdmin(userID)
	isAssignee := task.AssignedTo == userID
	if !isAdmin && !isAssignee {
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskNoRights})
		return
	}

	oldStatus := task.Status
	task.SetStatus(status)

	if err := s.tasks.Save(ctx, task); err != nil {
		log.Printf("Error updating task %s status: %v", taskID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	s.ShowDetails(ctx, chatID, userID, taskID)

	// Администратор негарантированно уведомляется о завершении чужой задачи
	if status == entity.StatusDone && oldStatus != entity.StatusDone && !isAdmin {
		err := s.sender.Send(port.Message{
			ChatID:   project.AdminID,
			Text:     fmt.Sprintf("%s *Task Completed*\n\nTask %q in project %q has been marked as done by %s.", ui.EmojiNotification, task.Name, project.Name, user.FullName()),
			Markdown: true,
		})
		if err != nil {
			log.Printf("Error notifying admin %d about completed task: %v", project.AdminID, err)
		}
	}
}

// ShowDetails показывает карточку задачи
func (s *TaskService) ShowDetails(ctx context.Context, chatID, userID int64, taskID string) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskNotFound})
		return
	}
	if err != nil {
		log.Printf("Error loading task %s: %v", taskID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	user, err := s.users.GetByTelegramID(ctx, userID)
	if err != nil || !user.IsMemberOf(task.ProjectID) {
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskNoAccess})
		return
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		log.Printf("Error loading project %s: %v", task.ProjectID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	isAdmin := project.IsAdmin(userID)
	isAssignee := task.AssignedTo == userID

	text := fmt.Sprintf("%s *%s*\n\n", ui.EmojiTask, task.Name)
	if task.Description != "" {
		text += task.Description + "\n\n"
	}
	text += fmt.Sprintf("%s *Project:* %s\n", ui.EmojiProject, project.Name)
	text += fmt.Sprintf("%s *Status:* %s\n", statusEmoji(task.Status), task.Status)
	text += fmt.Sprintf("%s *Type:* %s\n", typeEmoji(task.TaskType), task.TaskType)
	text += fmt.Sprintf("%s *Priority:* %s\n", priorityEmoji(task.Priority), task.Priority)
	if task.DueDate != nil {
		text += fmt.Sprintf("%s *Due Date:* %s\n", ui.EmojiDeadline, task.DueDate.Format(dueDateLayout))
	}
	if task.Effort > 0 {
		text += fmt.Sprintf("%s *Effort:* %g day(s)\n", ui.EmojiClock, task.Effort)
	}
	if task.RoleType != "" {
		text += fmt.Sprintf("%s *Role:* %s\n", ui.EmojiUser, task.RoleType)
	}
	text += fmt.Sprintf("%s *Created:* %s\n", ui.EmojiCalendar, task.CreatedAt.Format("Jan 2, 2006"))
	if task.CompletedAt != nil {
		text += fmt.Sprintf("%s *Completed:* %s\n", ui.EmojiDone, task.CompletedAt.Format("Jan 2, 2006"))
	}

	var rows [][]port.Button
	if isAdmin || isAssignee {
		var statusButtons []port.Button
		if task.Status != entity.StatusTodo {
			statusButtons = append(statusButtons, ui.Btn(ui.LabelStatusTodo, "task_status:"+task.ID+":todo"))
		}
		if task.Status != entity.StatusInProgress {
			statusButtons = append(statusButtons, ui.Btn(ui.LabelStatusInProgress, "task_status:"+task.ID+":in-progress"))
		}
		if task.Status != entity.StatusDone {
			statusButtons = append(statusButtons, ui.Btn(ui.LabelStatusDone, "task_status:"+task.ID+":done"))
		}
		rows = append(rows, statusButtons)

		if isAdmin {
			rows = append(rows, []port.Button{
				ui.Btn(ui.EmojiEditProject+" Edit", "edit_task:"+task.ID),
				ui.Btn(ui.EmojiDeleteProject+" Delete", "delete_task:"+task.ID),
			})
		}
	}
	rows = append(rows, []port.Button{ui.Btn(ui.EmojiBack+" Back", "back_to_tasks")})

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     text,
		Markdown: true,
		Keyboard: ui.Inline(rows...),
	})
}

// ShowMyTasks показывает задачи пользователя, сгруппированные по статусу
func (s *TaskService) ShowMyTasks(ctx context.Context, chatID, userID int64) {
	if _, err := s.users.GetByTelegramID(ctx, userID); err != nil {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}

	tasks, err := s.tasks.FindByAssignee(ctx, userID)
	if err != nil {
		log.Printf("Error loading tasks for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	if len(tasks) == 0 {
		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     ui.EmojiInfo + " You have no tasks assigned to you.",
			Keyboard: ui.BackToMenu(),
		})
		return
	}

	projectNames := s.projectNames(ctx, tasks)

	groups := map[entity.TaskStatus][]*entity.Task{}
	for _, task := range tasks {
		groups[task.Status] = append(groups[task.Status], task)
	}

	text := ui.EmojiTask + " *Your Tasks*\n\n"
	text += s.taskGroup(groups[entity.StatusTodo], ui.EmojiTodo, "To Do", projectNames)
	text += s.taskGroup(groups[entity.StatusInProgress], ui.EmojiInProgress, "In Progress", projectNames)
	text += s.taskGroup(groups[entity.StatusDone], ui.EmojiDone, "Done", projectNames)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     text,
		Markdown: true,
		Keyboard: ui.BackToMenu(),
	})
}

func (s *TaskService) taskGroup(tasks []*entity.Task, emoji, title string, projectNames map[string]string) string {
	if len(tasks) == 0 {
		return ""
	}

	text := fmt.Sprintf("%s *%s (%d)*\n", emoji, title, len(tasks))
	for i, task := range tasks {
		due := "No due date"
		if task.DueDate != nil {
			due = task.DueDate.Format(dueDateLayout)
		}
		text += fmt.Sprintf("%d. *%s*\n   Project: %s | Due: %s\n", i+1, task.Name, projectNames[task.ProjectID], due)
	}
	return text + "\n"
}

// ShowMyTasksByStatus показывает задачи пользователя с одним статусом
func (s *TaskService) ShowMyTasksByStatus(ctx context.Context, chatID, userID int64, status entity.TaskStatus) {
	if _, err := s.users.GetByTelegramID(ctx, userID); err != nil {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}

	tasks, err := s.tasks.FindByAssignee(ctx, userID)
	if err != nil {
		log.Printf("Error loading tasks for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	var filtered []*entity.Task
	for _, task := range tasks {
		if task.Status == status {
			filtered = append(filtered, task)
		}
	}

	if len(filtered) == 0 {
		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     fmt.Sprintf("%s You have no %q tasks.", ui.EmojiInfo, status),
			Keyboard: ui.BackToMenu(),
		})
		return
	}

	projectNames := s.projectNames(ctx, filtered)

	var title string
	switch status {
	case entity.StatusTodo:
		title = "To Do"
	case entity.StatusInProgress:
		title = "In Progress"
	default:
		title = "Done"
	}

	text := ui.EmojiTask + " *Your Tasks*\n\n" + s.taskGroup(filtered, statusEmoji(status), title, projectNames)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     text,
		Markdown: true,
		Keyboard: ui.BackToMenu(),
	})
}

// ShowToday показывает незавершённые задачи со сроком сегодня или раньше
func (s *TaskService) ShowToday(ctx context.Context, chatID, userID int64) {
	if _, err := s.users.GetByTelegramID(ctx, userID); err != nil {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}

	tasks, err := s.tasks.FindByAssignee(ctx, userID)
	if err != nil {
		log.Printf("Error loading today tasks for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgTaskError})
		return
	}

	today := startOfDay(time.Now())

	var todayTasks []*entity.Task
	for _, task := range tasks {
		if task.Status == entity.StatusDone || task.DueDate == nil {
			continue
		}
		if !startOfDay(*task.DueDate).After(today) {
			todayTasks = append(todayTasks, task)
		}
	}

	if len(todayTasks) == 0 {
		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     ui.EmojiInfo + " You have no tasks scheduled for today.",
			Keyboard: ui.BackToMenu(),
		})
		return
	}

	projectNames := s.projectNames(ctx, todayTasks)

	text := ui.EmojiCalendar + " *Your Tasks For Today*\n\n"
	for i, task := range todayTasks {
		text += fmt.Sprintf("%d. %s %s *%s*\n", i+1, statusEmoji(task.Status), priorityEmoji(task.Priority), task.Name)
		text += fmt.Sprintf("   Project: %s\n   Status: %s\n", projectNames[task.ProjectID], task.Status)
		overdue := ""
		if startOfDay(*task.DueDate).Before(today) {
			overdue = " " + ui.EmojiWarning + " OVERDUE"
		}
		text += fmt.Sprintf("   Due: %s%s\n\n", task.DueDate.Format(dueDateLayout), overdue)
	}

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     text,
		Markdown: true,
		Keyboard: ui.BackToMenu(),
	})
}

// projectNames имена проектов для набора задач
func (s *TaskService) projectNames(ctx context.Context, tasks []*entity.Task) map[string]string {
	ids := make([]string, 0, len(tasks))
	seen := map[string]bool{}
	for _, task := range tasks {
		if !seen[task.ProjectID] {
			seen[task.ProjectID] = true
			ids = append(ids, task.ProjectID)
		}
	}

	names := map[string]string{}
	projects, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		log.Printf("Error loading project names: %v", err)
	}
	for _, project := range projects {
		names[project.ID] = project.Name
	}
	for _, id := range ids {
		if names[id] == "" {
			names[id] = "Unknown Project"
		}
	}
	return names
}

func statusEmoji(status entity.TaskStatus) string {
	switch status {
	case entity.StatusTodo:
		return ui.EmojiTodo
	case entity.StatusInProgress:
		return ui.EmojiInProgress
	default:
		return ui.EmojiDone
	}
}

func typeEmoji(taskType entity.TaskType) string {
	switch taskType {
	case entity.TaskResearch:
		return ui.EmojiResearch
	case entity.TaskBug:
		return ui.EmojiBug
	default:
		return ui.EmojiFeature
	}
}

func priorityEmoji(priority entity.TaskPriority) string {
	switch priority {
	case entity.PriorityHigh:
		return ui.EmojiHighPriority
	case entity.PriorityLow:
		return ui.EmojiLowPriority
	default:
		return ui.EmojiMediumPriority
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
