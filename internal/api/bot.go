package telegram

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "taskbot/internal/application"
	"taskbot/internal/container"
	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
	"taskbot/internal/session"
	"taskbot/internal/ui"
)

const (
	msgWelcome = ui.EmojiInfo + ` *Welcome to Task Manager Bot!*

This bot helps you manage projects and tasks with your team.`

	msgHelp = ui.EmojiHelp + ` *Task Manager Bot Help*

Here are the available commands:

/start - Start the bot and register
/help - Show this help message
/projects - Manage your projects
/tasks - Manage your tasks
/today - Show tasks for today
/profile - View your profile
/join - Join a project`

	msgMainMenu       = ui.EmojiMenu + " *Main Menu*"
	msgUnknownCommand = ui.EmojiHelp + " Unknown command. Use /help to see available commands."
	msgUnknownInput   = ui.EmojiError + " I don't understand that command. Please use the menu options or type /help to see available commands."
	msgNotImplemented = "This button is not implemented yet."
)

// callbackResponder подтверждает callback-запросы. В работе это
// *tgbotapi.BotAPI.
type callbackResponder interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot маршрутизирует входящие обновления Telegram
type Bot struct {
	api       *tgbotapi.BotAPI
	responder callbackResponder
	sessions  *session.Store
	users     *app.UserService
	projects  *app.ProjectService
	tasks     *app.TaskService
	sender    port.Sender
}

// NewBot создаёт бота поверх авторизованного клиента Bot API
func NewBot(botAPI *tgbotapi.BotAPI, c *container.Container) *Bot {
	return &Bot{
		api:       botAPI,
		responder: botAPI,
		sessions:  c.Sessions,
		users:     c.Users,
		projects:  c.Projects,
		tasks:     c.Tasks,
		sender:    c.Sender,
	}
}

// Run запускает основной цикл обработки обновлений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(ctx, update.CallbackQuery)
		case update.Message != nil:
			b.handleMessage(ctx, update.Message)
		}
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение: сперва команды,
// затем свободный текст
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if msg.Text == "" {
		return
	}

	b.handleText(ctx, msg.Chat.ID, msg.From.ID, msg.From.UserName, msg.Text)
}

// handleCommand обрабатывает команды. Команда выполняется независимо
// от активного диалога и сама по себе его не сбрасывает.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		b.send(port.Message{ChatID: chatID, Text: msgWelcome, Markdown: true, Keyboard: ui.MainMenu()})
		b.users.Register(ctx, chatID, userID)

	case "help":
		b.send(port.Message{ChatID: chatID, Text: msgHelp, Markdown: true})

	case "projects":
		b.projects.ShowMenu(ctx, chatID, userID)

	case "tasks":
		b.tasks.ShowMenu(ctx, chatID, userID)

	case "today":
		b.tasks.ShowToday(ctx, chatID, userID)

	case "profile":
		b.users.Profile(ctx, chatID, userID)

	case "join":
		b.users.StartJoin(ctx, chatID, userID)

	default:
		b.send(port.Message{ChatID: chatID, Text: msgUnknownCommand})
	}
}

// handleText обрабатывает свободный текст. Порядок существенный:
// активный шаг диалога перекрывает кнопки меню, поэтому пользователь
// посреди диалога, набравший текст кнопки, остаётся в диалоге.
func (b *Bot) handleText(ctx context.Context, chatID, userID int64, username, text string) {
	sess := b.sessions.Get(userID)
	if sess.State != entity.StepNone {
		b.dispatchFlow(ctx, chatID, userID, username, sess.State, text)
		return
	}

	switch text {
	case ui.LabelProjects:
		b.projects.ShowMenu(ctx, chatID, userID)
		return
	case ui.LabelTasks:
		b.tasks.ShowMenu(ctx, chatID, userID)
		return
	case ui.LabelMyTasks:
		b.tasks.ShowMyTasks(ctx, chatID, userID)
		return
	case ui.LabelCreateTask:
		b.tasks.StartCreation(ctx, chatID, userID)
		return
	case ui.LabelCreateProject:
		b.projects.StartCreation(ctx, chatID, userID)
		return
	case ui.LabelStatusTodo:
		b.tasks.ShowMyTasksByStatus(ctx, chatID, userID, entity.StatusTodo)
		return
	case ui.LabelStatusInProgress:
		b.tasks.ShowMyTasksByStatus(ctx, chatID, userID, entity.StatusInProgress)
		return
	case ui.LabelStatusDone:
		b.tasks.ShowMyTasksByStatus(ctx, chatID, userID, entity.StatusDone)
		return
	case ui.LabelBackToMenu:
		b.sessions.Clear(userID)
		b.send(port.Message{ChatID: chatID, Text: msgMainMenu, Markdown: true, Keyboard: ui.MainMenu()})
		return
	}

	if strings.HasPrefix(text, ui.EmojiProject+" ") {
		b.projects.ShowDetailsByName(ctx, chatID, userID, text)
		return
	}

	b.send(port.Message{ChatID: chatID, Text: msgUnknownInput})
}

// dispatchFlow передаёт ввод обработчику активного шага диалога
func (b *Bot) dispatchFlow(ctx context.Context, chatID, userID int64, username string, step entity.FlowStep, text string) {
	switch step {
	case entity.StepUserName, entity.StepUserSurname, entity.StepUserRole, entity.StepUserContact:
		b.users.HandleRegistrationInput(ctx, chatID, userID, username, step, text)

	case entity.StepJoinProject:
		b.users.HandleJoinInput(ctx, chatID, userID, text)

	case entity.StepProjectName, entity.StepProjectDescription:
		b.projects.HandleCreateInput(ctx, chatID, userID, step, text)

	case entity.StepProjectEditName, entity.StepProjectEditDesc:
		b.projects.HandleEditInput(ctx, chatID, userID, step, text)

	case entity.StepTaskName, entity.StepTaskDescription, entity.StepTaskDueDate,
		entity.StepTaskType, entity.StepTaskRole, entity.StepTaskPriority, entity.StepTaskEffort:
		b.tasks.HandleCreateInput(ctx, chatID, userID, step, text)

	default:
		// Шаг из старой версии бота: сбрасываем сессию
		b.sessions.Clear(userID)
		b.send(port.Message{ChatID: chatID, Text: msgUnknownInput})
	}
}

// handleCallback обрабатывает нажатия inline-кнопок. Запрос
// подтверждается до выполнения обработчика, чтобы снять индикатор
// ожидания независимо от результата.
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	action := decodeCallback(query.Data)

	switch action.kind {
	case cbUnknown, cbEditProfile, cbEditTask, cbDeleteTask, cbViewTasks:
		b.answer(query.ID, msgNotImplemented, true)
	default:
		b.answer(query.ID, "", false)
	}

	if query.Message == nil || query.From == nil {
		return
	}
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	switch action.kind {
	case cbEditProject:
		b.projects.StartEdit(ctx, chatID, userID, action.projectID)
	case cbDeleteProject:
		b.projects.ConfirmDelete(ctx, chatID, userID, action.projectID)
	case cbConfirmDeleteProject:
		b.projects.Delete(ctx, chatID, userID, action.projectID)
	case cbCancelDeleteProject:
		b.projects.CancelDelete(ctx, chatID, userID, action.projectID)
	case cbViewProject, cbBackToProject:
		b.projects.ShowDetailsByID(ctx, chatID, userID, action.projectID)
	case cbEditProjectName:
		b.projects.StartEditName(ctx, chatID, userID, action.projectID)
	case cbEditProjectDesc:
		b.projects.StartEditDesc(ctx, chatID, userID, action.projectID)

	case cbViewTeam:
		b.users.ShowTeam(ctx, chatID, userID, action.projectID)
	case cbApproveJoin:
		b.users.ApproveJoin(ctx, chatID, userID, action.projectID, action.userID)
	case cbRejectJoin:
		b.users.RejectJoin(ctx, chatID, userID, action.projectID, action.userID)
	case cbAddMember:
		b.users.StartAddMember(ctx, chatID, userID, action.projectID)
	case cbAddMemberConfirm:
		b.users.ConfirmAddMember(ctx, chatID, userID, action.projectID, action.userID)
	case cbBackToMenu:
		b.sessions.Clear(userID)
		b.send(port.Message{ChatID: chatID, Text: msgMainMenu, Markdown: true, Keyboard: ui.MainMenu()})

	case cbCreateTask:
		b.tasks.BeginForProject(ctx, chatID, userID, action.projectID)
	case cbCancelTaskCreation:
		b.tasks.CancelCreation(ctx, chatID, userID)
	case cbTaskStatus:
		b.tasks.UpdateStatus(ctx, chatID, userID, action.taskID, action.status)
	case cbBackToTasks:
		b.tasks.ShowMenu(ctx, chatID, userID)
	}
}

func (b *Bot) answer(queryID, text string, alert bool) {
	callback := tgbotapi.NewCallback(queryID, text)
	callback.ShowAlert = alert

	if _, err := b.responder.Request(callback); err != nil {
		log.Printf("Error answering callback query: %v", err)
	}
}

func (b *Bot) send(msg port.Message) {
	if err := b.sender.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", msg.ChatID, err)
	}
}
