package application

import (
	"log"
	"strconv"
	"strings"
	"time"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
	"taskbot/internal/ui"
)

// OutcomeKind результат обработки одного шага диалога
type OutcomeKind int

const (
	// OutcomeAdvance переход к следующему шагу
	OutcomeAdvance OutcomeKind = iota
	// OutcomeRetry ввод не прошёл проверку, шаг не меняется
	OutcomeRetry
	// OutcomeCancel пользователь отменил диалог
	OutcomeCancel
	// OutcomeComplete достигнут последний шаг, данные готовы к сохранению
	OutcomeComplete
)

// Outcome результат чистой функции перехода шага
type Outcome struct {
	Kind    OutcomeKind
	Next    entity.FlowStep
	Patch   map[string]any
	ErrText string
}

func advanceTo(next entity.FlowStep, patch map[string]any) Outcome {
	return Outcome{Kind: OutcomeAdvance, Next: next, Patch: patch}
}

func retryWith(errText string) Outcome {
	return Outcome{Kind: OutcomeRetry, ErrText: errText}
}

func cancelled() Outcome {
	return Outcome{Kind: OutcomeCancel}
}

func completeWith(patch map[string]any) Outcome {
	return Outcome{Kind: OutcomeComplete, Patch: patch}
}

// IsCancelToken распознаёт универсальную отмену: кнопку или слово
// "cancel" в любом регистре
func IsCancelToken(text string) bool {
	return text == ui.LabelCancel || strings.EqualFold(strings.TrimSpace(text), "cancel")
}

// IsSkipToken распознаёт пропуск необязательного поля
func IsSkipToken(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "skip")
}

const dueDateLayout = "2006-01-02"

// registrationAdvance переходы диалога регистрации.
// username подставляется в контакт при пропуске последнего шага.
func registrationAdvance(step entity.FlowStep, input, username string) Outcome {
	if IsCancelToken(input) {
		return cancelled()
	}

	switch step {
	case entity.StepUserName:
		return advanceTo(entity.StepUserSurname, map[string]any{"name": input})

	case entity.StepUserSurname:
		surname := input
		if IsSkipToken(input) {
			surname = ""
		}
		return advanceTo(entity.StepUserRole, map[string]any{"surname": surname})

	case entity.StepUserRole:
		role := input
		if IsSkipToken(input) {
			role = ""
		}
		return advanceTo(entity.StepUserContact, map[string]any{"role": role})

	case entity.StepUserContact:
		contact := input
		if IsSkipToken(input) {
			contact = username
		}
		return completeWith(map[string]any{"contact": contact})
	}

	return cancelled()
}

// projectCreateAdvance переходы диалога создания проекта
func projectCreateAdvance(step entity.FlowStep, input string) Outcome {
	if IsCancelToken(input) {
		return cancelled()
	}

	switch step {
	case entity.StepProjectName:
		return advanceTo(entity.StepProjectDescription, map[string]any{"projectName": input})

	case entity.StepProjectDescription:
		description := input
		if IsSkipToken(input) {
			description = ""
		}
		return completeWith(map[string]any{"projectDescription": description})
	}

	return cancelled()
}

// taskCreateAdvance переходы диалога создания задачи
func taskCreateAdvance(step entity.FlowStep, input string) Outcome {
	if IsCancelToken(input) {
		return cancelled()
	}

	switch step {
	case entity.StepTaskName:
		return advanceTo(entity.StepTaskDescription, map[string]any{"taskName": input})

	case entity.StepTaskDescription:
		description := input
		if IsSkipToken(input) {
			description = ""
		}
		return advanceTo(entity.StepTaskDueDate, map[string]any{"taskDescription": description})

	case entity.StepTaskDueDate:
		if IsSkipToken(input) {
			return advanceTo(entity.StepTaskType, map[string]any{"taskDueDate": (*time.Time)(nil)})
		}
		due, err := time.Parse(dueDateLayout, strings.TrimSpace(input))
		if err != nil {
			return retryWith(ui.EmojiError + ` Invalid date format. Please use the format YYYY-MM-DD or type "skip" to skip.`)
		}
		return advanceTo(entity.StepTaskType, map[string]any{"taskDueDate": &due})

	case entity.StepTaskType:
		taskType, ok := parseTaskType(input)
		if !ok {
			return retryWith(ui.EmojiError + " Unknown task type. Please choose Feature, Research or Bug.")
		}
		return advanceTo(entity.StepTaskRole, map[string]any{"taskType": taskType})

	case entity.StepTaskRole:
		role := input
		if IsSkipToken(input) {
			role = ""
		}
		return advanceTo(entity.StepTaskPriority, map[string]any{"taskRole": role})

	case entity.StepTaskPriority:
		priority, ok := parsePriority(input)
		if !ok {
			return retryWith(ui.EmojiError + " Unknown priority. Please choose Low, Medium or High.")
		}
		return advanceTo(entity.StepTaskEffort, map[string]any{"taskPriority": priority})

	case entity.StepTaskEffort:
		if IsSkipToken(input) {
			return completeWith(map[string]any{"taskEffort": 1.0})
		}
		effort, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil || effort <= 0 {
			return retryWith(ui.EmojiError + ` Effort must be a positive number of days (e.g. 0.5) or "skip".`)
		}
		return completeWith(map[string]any{"taskEffort": effort})
	}

	return cancelled()
}

func parseTaskType(input string) (entity.TaskType, bool) {
	switch input {
	case ui.LabelTypeFeature:
		return entity.TaskFeature, true
	case ui.LabelTypeResearch:
		return entity.TaskResearch, true
	case ui.LabelTypeBug:
		return entity.TaskBug, true
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "feature":
		return entity.TaskFeature, true
	case "research":
		return entity.TaskResearch, true
	case "bug":
		return entity.TaskBug, true
	}
	return "", false
}

func parsePriority(input string) (entity.TaskPriority, bool) {
	switch input {
	case ui.LabelPriorityLow:
		return entity.PriorityLow, true
	case ui.LabelPriorityMedium:
		return entity.PriorityMedium, true
	case ui.LabelPriorityHigh:
		return entity.PriorityHigh, true
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "low":
		return entity.PriorityLow, true
	case "medium":
		return entity.PriorityMedium, true
	case "high":
		return entity.PriorityHigh, true
	}
	return "", false
}

func dataString(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func dataTime(data map[string]any, key string) *time.Time {
	if v, ok := data[key].(*time.Time); ok {
		return v
	}
	return nil
}

func dataFloat(data map[string]any, key string) float64 {
	if v, ok := data[key].(float64); ok {
		return v
	}
	return 0
}

// send отправляет сообщение, сбой доставки только логируется
func send(sender port.Sender, msg port.Message) {
	if err := sender.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", msg.ChatID, err)
	}
}
