package container

import (
	app "taskbot/internal/application"
	"taskbot/internal/domain/port"
	"taskbot/internal/scheduler"
	"taskbot/internal/session"
)

type Container struct {
	Sessions *session.Store
	Sender   port.Sender
	Users    *app.UserService
	Projects *app.ProjectService
	Tasks    *app.TaskService
	Notifier *scheduler.Notifier
}

func New(userRepo port.UserRepository, projectRepo port.ProjectRepository, taskRepo port.TaskRepository, sessions *session.Store, sender port.Sender) *Container {
	return &Container{
		Sessions: sessions,
		Sender:   sender,
		Users:    app.NewUserService(userRepo, projectRepo, sessions, sender),
		Projects: app.NewProjectService(userRepo, projectRepo, sessions, sender),
		Tasks:    app.NewTaskService(userRepo, projectRepo, taskRepo, sessions, sender),
		Notifier: scheduler.NewNotifier(taskRepo, projectRepo, sender),
	}
}
