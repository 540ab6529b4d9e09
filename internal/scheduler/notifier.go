package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
	"taskbot/internal/ui"
)

// Notifier рассылает напоминания о просроченных и предстоящих задачах.
// Доставка at-least-once: отправленные напоминания нигде не
// запоминаются, рестарт процесса между срабатыванием и завершением
// задания может привести к повторной рассылке за тот же день.
type Notifier struct {
	tasks    port.TaskRepository
	projects port.ProjectRepository
	sender   port.Sender
}

func NewNotifier(tasks port.TaskRepository, projects port.ProjectRepository, sender port.Sender) *Notifier {
	return &Notifier{tasks: tasks, projects: projects, sender: sender}
}

// CheckOverdueTasks отправляет каждому исполнителю одно сообщение со
// всеми его незавершёнными задачами, просроченными к началу сегодняшнего
// дня. Сбой доставки одному получателю не прерывает рассылку остальным.
func (n *Notifier) CheckOverdueTasks(ctx context.Context) {
	today := startOfDay(time.Now())

	tasks, err := n.tasks.FindDueBefore(ctx, today)
	if err != nil {
		log.Printf("Error checking overdue tasks: %v", err)
		return
	}

	byAssignee := groupByAssignee(tasks)
	names := n.projectNames(ctx, tasks)

	for userID, userTasks := range byAssignee {
		text := ui.EmojiNotification + " *Overdue Tasks Reminder*\n\n"
		text += fmt.Sprintf("You have %d overdue task(s):\n\n", len(userTasks))

		for i, task := range userTasks {
			text += fmt.Sprintf("%d. *%s*\n   Project: %s\n   Due Date: %s\n   Status: %s\n\n",
				i+1, task.Name, names[task.ProjectID], task.DueDate.Format("2006-01-02"), task.Status)
		}

		err := n.sender.Send(port.Message{ChatID: userID, Text: text, Markdown: true})
		if err != nil {
			log.Printf("Error sending overdue notification to user %d: %v", userID, err)
		}
	}

	log.Printf("Checked %d overdue task(s)", len(tasks))
}

// CheckUpcomingTasks отправляет напоминания о задачах со сроком завтра
func (n *Notifier) CheckUpcomingTasks(ctx context.Context) {
	tomorrow := startOfDay(time.Now()).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	tasks, err := n.tasks.FindDueBetween(ctx, tomorrow, dayAfter)
	if err != nil {
		log.Printf("Error checking upcoming tasks: %v", err)
		return
	}

	byAssignee := groupByAssignee(tasks)
	names := n.projectNames(ctx, tasks)

	for userID, userTasks := range byAssignee {
		text := ui.EmojiNotification + " *Upcoming Tasks Reminder*\n\n"
		text += fmt.Sprintf("You have %d task(s) due tomorrow:\n\n", len(userTasks))

		for i, task := range userTasks {
			text += fmt.Sprintf("%d. *%s*\n   Project: %s\n   Status: %s\n\n",
				i+1, task.Name, names[task.ProjectID], task.Status)
		}

		err := n.sender.Send(port.Message{ChatID: userID, Text: text, Markdown: true})
		if err != nil {
			log.Printf("Error sending upcoming notification to user %d: %v", userID, err)
		}
	}

	log.Printf("Checked %d upcoming task(s)", len(tasks))
}

func groupByAssignee(tasks []*entity.Task) map[int64][]*entity.Task {
	byAssignee := make(map[int64][]*entity.Task)
	for _, task := range tasks {
		if task.AssignedTo == 0 {
			continue
		}
		byAssignee[task.AssignedTo] = append(byAssignee[task.AssignedTo], task)
	}
	return byAssignee
}

func (n *Notifier) projectNames(ctx context.Context, tasks []*entity.Task) map[string]string {
	ids := make([]string, 0, len(tasks))
	seen := map[string]bool{}
	for _, task := range tasks {
		if !seen[task.ProjectID] {
			seen[task.ProjectID] = true
			ids = append(ids, task.ProjectID)
		}
	}

	names := map[string]string{}
	projects, err := n.projects.FindByIDs(ctx, ids)
	if err != nil {
		log.Printf("Error loading project names for notifications: %v", err)
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

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
