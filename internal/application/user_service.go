package application

import (
	"context"
	"fmt"
	"log"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
	"taskbot/internal/session"
	"taskbot/internal/ui"
)

const (
	msgRegistrationStart     = ui.EmojiUser + " *Registration*\n\nPlease enter your first name:"
	msgRegistrationCancelled = ui.EmojiCancel + " Registration cancelled."
	msgAskSurname            = ui.EmojiUser + ` Great! Now please enter your surname (or "skip" to skip):`
	msgAskRole               = ui.EmojiUser + " Thanks! What is your role? (e.g., Developer, Designer, etc.):"
	msgAskContact            = ui.EmojiUser + " Almost done! Please provide your contact information (email, phone, or Telegram username):"
	msgRegistrationError     = ui.EmojiError + " There was an error during registration. Please try again later."
	msgNotRegistered         = ui.EmojiError + " You are not registered. Please use /start to register."
	msgProfileError          = ui.EmojiError + " There was an error loading your profile. Please try again later."
)

// UserService регистрация, профиль, команда и вступление в проекты
type UserService struct {
	users    port.UserRepository
	projects port.ProjectRepository
	sessions *session.Store
	sender   port.Sender
}

func NewUserService(users port.UserRepository, projects port.ProjectRepository, sessions *session.Store, sender port.Sender) *UserService {
	return &UserService{
		users:    users,
		projects: projects,
		sessions: sessions,
		sender:   sender,
	}
}

// Register начинает диалог регистрации, если пользователь ещё не
// зарегистрирован
func (s *UserService) Register(ctx context.Context, chatID, userID int64) {
	existing, err := s.users.GetByTelegramID(ctx, userID)
	if err == nil {
		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     fmt.Sprintf("%s You are already registered as *%s*.", ui.EmojiInfo, existing.FullName()),
			Markdown: true,
		})
		return
	}
	if err != entity.ErrNotFound {
		log.Printf("Error registering user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgRegistrationError})
		return
	}

	s.sessions.SetState(userID, entity.StepUserName)

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     msgRegistrationStart,
		Markdown: true,
		Keyboard: ui.CancelRow(),
	})
}

// HandleRegistrationInput обрабатывает свободный ввод на шагах регистрации
func (s *UserService) HandleRegistrationInput(ctx context.Context, chatID, userID int64, username string, step entity.FlowStep, text string) {
	out := registrationAdvance(step, text, username)

	switch out.Kind {
	case OutcomeCancel:
		s.sessions.Clear(userID)
		send(s.sender, port.Message{ChatID: chatID, Text: msgRegistrationCancelled, Keyboard: ui.MainMenu()})

	case OutcomeRetry:
		send(s.sender, port.Message{ChatID: chatID, Text: out.ErrText, Keyboard: ui.CancelRow()})

	case OutcomeAdvance:
		for k, v := range out.Patch {
			s.sessions.SetData(userID, k, v)
		}
		s.sessions.SetState(userID, out.Next)
		s.sendRegistrationPrompt(chatID, out.Next)

	case OutcomeComplete:
		sess := s.sessions.Get(userID)
		user := entity.NewUser(
			userID,
			username,
			dataString(sess.Data, "name"),
			dataString(sess.Data, "surname"),
			dataString(sess.Data, "role"),
			dataString(out.Patch, "contact"),
		)

		s.sessions.Clear(userID)

		if err := s.users.Create(ctx, user); err != nil {
			log.Printf("Error completing registration for user %d: %v", userID, err)
			send(s.sender, port.Message{ChatID: chatID, Text: msgRegistrationError})
			return
		}

		send(s.sender, port.Message{
			ChatID:   chatID,
			Text:     fmt.Sprintf("%s *Registration Successful!*\n\nWelcome, %s! You can now use the task management features.", ui.EmojiSuccess, user.Name),
			Markdown: true,
			Keyboard: ui.MainMenu(),
		})
	}
}

func (s *UserService) sendRegistrationPrompt(chatID int64, step entity.FlowStep) {
	switch step {
	case entity.StepUserSurname:
		send(s.sender, port.Message{ChatID: chatID, Text: msgAskSurname, Keyboard: ui.SkipCancelRow()})

	case entity.StepUserRole:
		send(s.sender, port.Message{
			ChatID: chatID,
			Text:   msgAskRole,
			Keyboard: ui.Reply(
				[]string{"Developer", "Designer"},
				[]string{"Manager", "Tester", "Other"},
				[]string{ui.LabelSkip, ui.LabelCancel},
			),
		})

	case entity.StepUserContact:
		send(s.sender, port.Message{ChatID: chatID, Text: msgAskContact, Keyboard: ui.SkipCancelRow()})
	}
}

// Profile показывает профиль пользователя
func (s *UserService) Profile(ctx context.Context, chatID, userID int64) {
	user, err := s.users.GetByTelegramID(ctx, userID)
	if err == entity.ErrNotFound {
		send(s.sender, port.Message{ChatID: chatID, Text: msgNotRegistered})
		return
	}
	if err != nil {
		log.Printf("Error showing profile for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProfileError})
		return
	}

	projects, err := s.projects.FindByIDs(ctx, user.ProjectIDs)
	if err != nil {
		log.Printf("Error loading projects for user %d: %v", userID, err)
		send(s.sender, port.Message{ChatID: chatID, Text: msgProfileError})
		return
	}

	text := fmt.Sprintf("%s *Your Profile*\n\n*Name:* %s\n", ui.EmojiUser, user.FullName())
	if user.Role != "" {
		text += fmt.Sprintf("*Role:* %s\n", user.Role)
	}
	if user.Contact != "" {
		text += fmt.Sprintf("*Contact:* %s\n", user.Contact)
	}
	text += fmt.Sprintf("*Joined:* %s\n", user.CreatedAt.Format("Jan 2, 2006"))

	if len(projects) > 0 {
		text += "\n*Projects:*\n"
		for _, project := range projects {
			text += fmt.Sprintf("- %s\n", project.Name)
		}
	}

	send(s.sender, port.Message{
		ChatID:   chatID,
		Text:     text,
		Markdown: true,
		Keyboard: ui.Inline(
			[]port.Button{ui.Btn(ui.EmojiEditUser+" Edit Profile", "edit_profile")},
			[]port.Button{ui.Btn(ui.EmojiBack+" Back to Menu", "back_to_menu")},
		),
	})
}
