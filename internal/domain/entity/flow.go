package entity

// FlowStep шаг активного диалога пользователя.
// Пустое значение StepNone означает, что активного диалога нет.
type FlowStep string

const (
	StepNone FlowStep = ""

	// Регистрация
	StepUserName    FlowStep = "waiting_user_name"
	StepUserSurname FlowStep = "waiting_user_surname"
	StepUserRole    FlowStep = "waiting_user_role"
	StepUserContact FlowStep = "waiting_user_contact"

	// Вступление в проект
	StepJoinProject FlowStep = "waiting_join_project"

	// Создание проекта
	StepProjectName        FlowStep = "waiting_project_name"
	StepProjectDescription FlowStep = "waiting_project_description"

	// Редактирование проекта
	StepProjectEditName FlowStep = "editing_project_name"
	StepProjectEditDesc FlowStep = "editing_project_description"

	// Создание задачи
	StepTaskName        FlowStep = "waiting_task_name"
	StepTaskDescription FlowStep = "waiting_task_description"
	StepTaskDueDate     FlowStep = "waiting_task_due_date"
	StepTaskType        FlowStep = "waiting_task_type"
	StepTaskRole        FlowStep = "waiting_task_role_type"
	StepTaskPriority    FlowStep = "waiting_task_priority"
	StepTaskEffort      FlowStep = "waiting_task_effort"
)
