package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskbot/internal/domain/entity"
)

func taskFixture(t *testing.T, e *env, projectNames ...string) []*entity.Project {
	t.Helper()
	ctx := context.Background()

	user := entity.NewUser(100, "alice", "Alice", "", "", "alice")
	var projects []*entity.Project
	for _, name := range projectNames {
		project := entity.NewProject(name, "", 100)
		user.ProjectIDs = append(user.ProjectIDs, project.ID)
		require.NoError(t, e.projects.Create(ctx, project))
		projects = append(projects, project)
	}
	require.NoError(t, e.users.Create(ctx, user))
	return projects
}

func TestTaskCreation_RequiresProject(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	taskFixture(t, e)

	svc.StartCreation(ctx, 100, 100)

	// Диалог не начинается
	require.Equal(t, entity.StepNone, e.sessions.Get(100).State)

	last, ok := e.sender.lastTo(100)
	require.True(t, ok)
	require.Contains(t, last.Text, "at least one project")
}

func TestTaskCreation_SingleProjectSkipsChooser(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	projects := taskFixture(t, e, "Alpha")

	svc.StartCreation(ctx, 100, 100)

	sess := e.sessions.Get(100)
	require.Equal(t, entity.StepTaskName, sess.State)
	require.Equal(t, projects[0].ID, sess.Data["projectId"])
}

func TestTaskCreation_MultipleProjectsShowChooser(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	taskFixture(t, e, "Alpha", "Beta")

	svc.StartCreation(ctx, 100, 100)

	// Диалог начинается только после выбора проекта
	require.Equal(t, entity.StepNone, e.sessions.Get(100).State)

	last, ok := e.sender.lastTo(100)
	require.True(t, ok)
	require.NotNil(t, last.Keyboard)
	require.True(t, last.Keyboard.Inline)
	require.Len(t, last.Keyboard.Rows, 3) // два проекта и отмена
}

func TestTaskCreation_EndToEnd(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	projects := taskFixture(t, e, "Alpha")

	svc.StartCreation(ctx, 100, 100)
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskName, "Fix login")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskDescription, "Users cannot log in")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskDueDate, "2026-09-01")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskType, "bug")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskRole, "Developer")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskPriority, "high")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskEffort, "0.5")

	tasks, err := e.tasks.FindByAssignee(ctx, 100)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	require.Equal(t, "Fix login", task.Name)
	require.Equal(t, "Users cannot log in", task.Description)
	require.Equal(t, projects[0].ID, task.ProjectID)
	require.Equal(t, entity.TaskBug, task.TaskType)
	require.Equal(t, "Developer", task.RoleType)
	require.Equal(t, entity.PriorityHigh, task.Priority)
	require.Equal(t, 0.5, task.Effort)
	require.Equal(t, entity.StatusTodo, task.Status)
	require.Equal(t, int64(100), task.CreatedBy)
	require.Equal(t, int64(100), task.AssignedTo)
	require.NotNil(t, task.DueDate)
	require.Equal(t, "2026-09-01", task.DueDate.Format("2006-01-02"))

	require.Equal(t, entity.StepNone, e.sessions.Get(100).State)
	require.Empty(t, e.sessions.Get(100).Data)
}

func TestTaskCreation_InvalidDateKeepsStepAndData(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	taskFixture(t, e, "Alpha")

	svc.StartCreation(ctx, 100, 100)
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskName, "Fix login")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskDescription, "skip")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskDueDate, "2024-02-30")

	sess := e.sessions.Get(100)
	require.Equal(t, entity.StepTaskDueDate, sess.State)
	require.Equal(t, "Fix login", sess.Data["taskName"])

	last, ok := e.sender.lastTo(100)
	require.True(t, ok)
	require.Contains(t, last.Text, "Invalid date format")
}

func TestTaskCreation_SkipDueDate(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	taskFixture(t, e, "Alpha")

	svc.StartCreation(ctx, 100, 100)
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskName, "Research caching")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskDescription, "skip")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskDueDate, "skip")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskType, "research")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskRole, "skip")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskPriority, "low")
	svc.HandleCreateInput(ctx, 100, 100, entity.StepTaskEffort, "skip")

	tasks, err := e.tasks.FindByAssignee(ctx, 100)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Nil(t, tasks[0].DueDate)
	require.Equal(t, 1.0, tasks[0].Effort)
	require.Equal(t, "", tasks[0].RoleType)
}

func TestUpdateStatus_Authorization(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	project := entity.NewProject("Alpha", "", 1)
	admin := entity.NewUser(1, "admin", "Admin", "", "", "admin")
	assignee := entity.NewUser(2, "bob", "Bob", "", "", "bob")
	member := entity.NewUser(3, "eve", "Eve", "", "", "eve")
	admin.ProjectIDs = append(admin.ProjectIDs, project.ID)
	assignee.ProjectIDs = append(assignee.ProjectIDs, project.ID)
	member.ProjectIDs = append(member.ProjectIDs, project.ID)
	require.NoError(t, e.users.Create(ctx, admin))
	require.NoError(t, e.users.Create(ctx, assignee))
	require.NoError(t, e.users.Create(ctx, member))
	require.NoError(t, e.projects.Create(ctx, project))

	task := entity.NewTask("Fix login", "", project.ID, 1)
	task.AssignedTo = 2
	require.NoError(t, e.tasks.Create(ctx, task))

	// Участник без прав не меняет статус
	svc.UpdateStatus(ctx, 3, 3, task.ID, entity.StatusDone)
	stored, err := e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusTodo, stored.Status)

	last, ok := e.sender.lastTo(3)
	require.True(t, ok)
	require.Contains(t, last.Text, "Only the project admin or the assignee")

	// Исполнитель меняет
	svc.UpdateStatus(ctx, 2, 2, task.ID, entity.StatusInProgress)
	stored, err = e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusInProgress, stored.Status)
	require.Nil(t, stored.CompletedAt)

	// Администратор тоже
	svc.UpdateStatus(ctx, 1, 1, task.ID, entity.StatusTodo)
	stored, err = e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusTodo, stored.Status)
}

func TestUpdateStatus_DoneNotifiesAdmin(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	project := entity.NewProject("Alpha", "", 1)
	admin := entity.NewUser(1, "admin", "Admin", "", "", "admin")
	assignee := entity.NewUser(2, "bob", "Bob", "", "", "bob")
	admin.ProjectIDs = append(admin.ProjectIDs, project.ID)
	assignee.ProjectIDs = append(assignee.ProjectIDs, project.ID)
	require.NoError(t, e.users.Create(ctx, admin))
	require.NoError(t, e.users.Create(ctx, assignee))
	require.NoError(t, e.projects.Create(ctx, project))

	task := entity.NewTask("Fix login", "", project.ID, 1)
	task.AssignedTo = 2
	require.NoError(t, e.tasks.Create(ctx, task))

	svc.UpdateStatus(ctx, 2, 2, task.ID, entity.StatusDone)

	stored, err := e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusDone, stored.Status)
	require.NotNil(t, stored.CompletedAt)

	adminMsgs := e.sender.sentTo(1)
	require.Len(t, adminMsgs, 1)
	require.Contains(t, adminMsgs[0].Text, "Task Completed")
}

func TestShowToday_MarksOverdue(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	projects := taskFixture(t, e, "Alpha")

	yesterday := time.Now().AddDate(0, 0, -1)
	today := time.Now()
	tomorrow := time.Now().AddDate(0, 0, 1)

	overdue := entity.NewTask("Overdue task", "", projects[0].ID, 100)
	overdue.DueDate = &yesterday
	dueToday := entity.NewTask("Today task", "", projects[0].ID, 100)
	dueToday.DueDate = &today
	future := entity.NewTask("Future task", "", projects[0].ID, 100)
	future.DueDate = &tomorrow
	require.NoError(t, e.tasks.Create(ctx, overdue))
	require.NoError(t, e.tasks.Create(ctx, dueToday))
	require.NoError(t, e.tasks.Create(ctx, future))

	svc.ShowToday(ctx, 100, 100)

	last, ok := e.sender.lastTo(100)
	require.True(t, ok)
	require.Contains(t, last.Text, "Overdue task")
	require.Contains(t, last.Text, "OVERDUE")
	require.Contains(t, last.Text, "Today task")
	require.NotContains(t, last.Text, "Future task")
}

func TestShowMyTasksByStatus_Filters(t *testing.T) {
	e := newEnv()
	svc := e.taskService()
	ctx := context.Background()

	projects := taskFixture(t, e, "Alpha")

	todo := entity.NewTask("Todo task", "", projects[0].ID, 100)
	done := entity.NewTask("Done task", "", projects[0].ID, 100)
	done.SetStatus(entity.StatusDone)
	require.NoError(t, e.tasks.Create(ctx, todo))
	require.NoError(t, e.tasks.Create(ctx, done))

	svc.ShowMyTasksByStatus(ctx, 100, 100, entity.StatusTodo)

	last, ok := e.sender.lastTo(100)
	require.True(t, ok)
	require.Contains(t, last.Text, "Todo task")
	require.NotContains(t, last.Text, "Done task")
}
