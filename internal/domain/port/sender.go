package port

// Button кнопка клавиатуры. Data заполняется только для inline-кнопок.
type Button struct {
	Text string
	Data string
}

// Keyboard описание клавиатуры, независимое от транспорта
type Keyboard struct {
	Inline bool
	Rows   [][]Button
}

// Message исходящее сообщение
type Message struct {
	ChatID   int64
	Text     string
	Markdown bool
	Keyboard *Keyboard
}

// Sender интерфейс отправки сообщений пользователям.
// Доставка негарантированная: вызывающий решает, логировать ли ошибку
// или прервать операцию.
type Sender interface {
	Send(msg Message) error
}
