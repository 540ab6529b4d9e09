package ui

// Эмодзи для сообщений и кнопок
const (
	EmojiProject       = "📁"
	EmojiNewProject    = "🆕"
	EmojiEditProject   = "✏️"
	EmojiDeleteProject = "🗑️"
	EmojiProjects      = "📂"

	EmojiUser     = "👤"
	EmojiTeam     = "👥"
	EmojiAddUser  = "➕"
	EmojiEditUser = "🔄"

	EmojiTask       = "📝"
	EmojiTasks      = "📋"
	EmojiTodo       = "📌"
	EmojiInProgress = "⏳"
	EmojiDone       = "✅"
	EmojiFeature    = "⭐"
	EmojiResearch   = "🔍"
	EmojiBug        = "🐞"

	EmojiLowPriority    = "🟢"
	EmojiMediumPriority = "🟡"
	EmojiHighPriority   = "🔴"

	EmojiCalendar = "📅"
	EmojiClock    = "⏰"
	EmojiDeadline = "⏱️"

	EmojiSuccess = "✅"
	EmojiError   = "❌"
	EmojiWarning = "⚠️"
	EmojiInfo    = "💡"
	EmojiHelp    = "❓"

	EmojiNotification = "🔔"

	EmojiBack     = "⬅️"
	EmojiSelect   = "✔️"
	EmojiCancel   = "❌"
	EmojiSettings = "⚙️"
	EmojiMenu     = "📋"
)
