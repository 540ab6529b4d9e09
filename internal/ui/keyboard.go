package ui

import "taskbot/internal/domain/port"

// Подписи кнопок главного меню и общих действий
const (
	LabelCancel = EmojiCancel + " Cancel"
	LabelSkip   = "Skip"

	LabelProjects      = EmojiProjects + " Projects"
	LabelTasks         = EmojiTasks + " Tasks"
	LabelTeam          = EmojiTeam + " Team"
	LabelSettings      = EmojiSettings + " Settings"
	LabelMyTasks       = EmojiTask + " My Tasks"
	LabelCreateTask    = EmojiTask + " Create New Task"
	LabelCreateProject = EmojiNewProject + " Create New Project"
	LabelBackToMenu    = EmojiBack + " Back to Menu"

	LabelTypeFeature  = EmojiFeature + " Feature"
	LabelTypeResearch = EmojiResearch + " Research"
	LabelTypeBug      = EmojiBug + " Bug"

	LabelPriorityLow    = EmojiLowPriority + " Low"
	LabelPriorityMedium = EmojiMediumPriority + " Medium"
	LabelPriorityHigh   = EmojiHighPriority + " High"

	LabelStatusTodo       = EmojiTodo + " To Do"
	LabelStatusInProgress = EmojiInProgress + " In Progress"
	LabelStatusDone       = EmojiDone + " Done"
)

// Reply собирает обычную reply-клавиатуру из рядов подписей
func Reply(rows ...[]string) *port.Keyboard {
	kb := &port.Keyboard{}
	for _, row := range rows {
		var buttons []port.Button
		for _, text := range row {
			buttons = append(buttons, port.Button{Text: text})
		}
		kb.Rows = append(kb.Rows, buttons)
	}
	return kb
}

// Inline собирает inline-клавиатуру из рядов кнопок
func Inline(rows ...[]port.Button) *port.Keyboard {
	return &port.Keyboard{Inline: true, Rows: rows}
}

// Btn inline-кнопка с callback-данными
func Btn(text, data string) port.Button {
	return port.Button{Text: text, Data: data}
}

// MainMenu клавиатура главного меню
func MainMenu() *port.Keyboard {
	return Reply(
		[]string{LabelProjects, LabelTasks},
		[]string{LabelTeam, LabelSettings},
	)
}

// BackToMenu клавиатура с единственной кнопкой возврата в меню
func BackToMenu() *port.Keyboard {
	return Reply([]string{LabelBackToMenu})
}

// CancelRow клавиатура с единственной кнопкой отмены
func CancelRow() *port.Keyboard {
	return Reply([]string{LabelCancel})
}

// SkipCancelRow клавиатура с кнопками пропуска и отмены
func SkipCancelRow() *port.Keyboard {
	return Reply([]string{LabelSkip, LabelCancel})
}
