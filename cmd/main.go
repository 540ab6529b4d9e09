package main

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskbot/config"
	telegram "taskbot/internal/api"
	"taskbot/internal/container"
	"taskbot/internal/infrastructure/storage"
	"taskbot/internal/scheduler"
	"taskbot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// Подключаемся к базе
	db, err := storage.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := storage.NewGormUserRepository(db)
	projectRepo := storage.NewGormProjectRepository(db)
	taskRepo := storage.NewGormTaskRepository(db)

	// Хранилище сессий с фоновой очисткой
	sessions := session.NewStore(cfg.SessionTTL)
	sessions.StartSweeper(cfg.SessionSweepInterval)
	defer sessions.Stop()

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	sender := telegram.NewSender(botAPI)

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, projectRepo, taskRepo, sessions, sender)

	// Ежедневные напоминания: просроченные утром, предстоящие вечером
	sched := scheduler.New()
	sched.ScheduleDaily(cfg.OverdueHour, cfg.OverdueMinute, func() {
		appContainer.Notifier.CheckOverdueTasks(context.Background())
	})
	sched.ScheduleDaily(cfg.UpcomingHour, cfg.UpcomingMinute, func() {
		appContainer.Notifier.CheckUpcomingTasks(context.Background())
	})
	defer sched.Stop()

	bot := telegram.NewBot(botAPI, appContainer)

	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
