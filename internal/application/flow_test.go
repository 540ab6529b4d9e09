package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskbot/internal/domain/entity"
)

func TestTaskCreateAdvance_InvalidCalendarDateRetries(t *testing.T) {
	out := taskCreateAdvance(entity.StepTaskDueDate, "2024-02-30")

	require.Equal(t, OutcomeRetry, out.Kind)
	require.NotEmpty(t, out.ErrText)
	require.Empty(t, out.Patch)
}

func TestTaskCreateAdvance_BadFormatRetries(t *testing.T) {
	for _, input := range []string{"tomorrow", "30-02-2024", "2024/02/01", ""} {
		out := taskCreateAdvance(entity.StepTaskDueDate, input)
		require.Equal(t, OutcomeRetry, out.Kind, "input %q", input)
	}
}

func TestTaskCreateAdvance_SkipDueDate(t *testing.T) {
	for _, input := range []string{"skip", "Skip", "SKIP"} {
		out := taskCreateAdvance(entity.StepTaskDueDate, input)

		require.Equal(t, OutcomeAdvance, out.Kind, "input %q", input)
		require.Equal(t, entity.StepTaskType, out.Next)
		require.Nil(t, out.Patch["taskDueDate"].(*time.Time))
	}
}

func TestTaskCreateAdvance_ValidDate(t *testing.T) {
	out := taskCreateAdvance(entity.StepTaskDueDate, "2024-06-15")

	require.Equal(t, OutcomeAdvance, out.Kind)
	due := out.Patch["taskDueDate"].(*time.Time)
	require.NotNil(t, due)
	require.Equal(t, 2024, due.Year())
	require.Equal(t, time.June, due.Month())
	require.Equal(t, 15, due.Day())
}

func TestTaskCreateAdvance_CancelFromEveryStep(t *testing.T) {
	steps := []entity.FlowStep{
		entity.StepTaskName,
		entity.StepTaskDescription,
		entity.StepTaskDueDate,
		entity.StepTaskType,
		entity.StepTaskRole,
		entity.StepTaskPriority,
		entity.StepTaskEffort,
	}

	for _, step := range steps {
		require.Equal(t, OutcomeCancel, taskCreateAdvance(step, "❌ Cancel").Kind, "step %s", step)
		require.Equal(t, OutcomeCancel, taskCreateAdvance(step, "cancel").Kind, "step %s", step)
		require.Equal(t, OutcomeCancel, taskCreateAdvance(step, "CANCEL").Kind, "step %s", step)
	}
}

func TestTaskCreateAdvance_TypeAndPriority(t *testing.T) {
	out := taskCreateAdvance(entity.StepTaskType, "⭐ Feature")
	require.Equal(t, OutcomeAdvance, out.Kind)
	require.Equal(t, entity.TaskFeature, out.Patch["taskType"])

	out = taskCreateAdvance(entity.StepTaskType, "bug")
	require.Equal(t, OutcomeAdvance, out.Kind)
	require.Equal(t, entity.TaskBug, out.Patch["taskType"])

	out = taskCreateAdvance(entity.StepTaskType, "chore")
	require.Equal(t, OutcomeRetry, out.Kind)

	out = taskCreateAdvance(entity.StepTaskPriority, "🔴 High")
	require.Equal(t, OutcomeAdvance, out.Kind)
	require.Equal(t, entity.PriorityHigh, out.Patch["taskPriority"])

	out = taskCreateAdvance(entity.StepTaskPriority, "urgent")
	require.Equal(t, OutcomeRetry, out.Kind)
}

func TestTaskCreateAdvance_Effort(t *testing.T) {
	out := taskCreateAdvance(entity.StepTaskEffort, "0.5")
	require.Equal(t, OutcomeComplete, out.Kind)
	require.Equal(t, 0.5, out.Patch["taskEffort"])

	out = taskCreateAdvance(entity.StepTaskEffort, "skip")
	require.Equal(t, OutcomeComplete, out.Kind)
	require.Equal(t, 1.0, out.Patch["taskEffort"])

	for _, input := range []string{"-1", "0", "three"} {
		out = taskCreateAdvance(entity.StepTaskEffort, input)
		require.Equal(t, OutcomeRetry, out.Kind, "input %q", input)
	}
}

func TestRegistrationAdvance_SkipUsesDefaults(t *testing.T) {
	out := registrationAdvance(entity.StepUserSurname, "skip", "alice_tg")
	require.Equal(t, OutcomeAdvance, out.Kind)
	require.Equal(t, "", out.Patch["surname"])

	// Пропуск контакта подставляет Telegram username
	out = registrationAdvance(entity.StepUserContact, "Skip", "alice_tg")
	require.Equal(t, OutcomeComplete, out.Kind)
	require.Equal(t, "alice_tg", out.Patch["contact"])
}

func TestRegistrationAdvance_CancelFromEveryStep(t *testing.T) {
	steps := []entity.FlowStep{
		entity.StepUserName,
		entity.StepUserSurname,
		entity.StepUserRole,
		entity.StepUserContact,
	}
	for _, step := range steps {
		require.Equal(t, OutcomeCancel, registrationAdvance(step, "❌ Cancel", "u").Kind, "step %s", step)
	}
}

func TestProjectCreateAdvance(t *testing.T) {
	out := projectCreateAdvance(entity.StepProjectName, "Alpha")
	require.Equal(t, OutcomeAdvance, out.Kind)
	require.Equal(t, entity.StepProjectDescription, out.Next)
	require.Equal(t, "Alpha", out.Patch["projectName"])

	out = projectCreateAdvance(entity.StepProjectDescription, "skip")
	require.Equal(t, OutcomeComplete, out.Kind)
	require.Equal(t, "", out.Patch["projectDescription"])
}
