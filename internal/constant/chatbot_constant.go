package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// Session titles
	SessionTitlePrefix   = "Chat with "
	SessionTitleMaxRunes = 50

	// A session keeps its document-derived title until this many turns have
	// been recorded; the first user query after that no longer replaces it.
	SessionRetitleTurnLimit = 3

	SuggestedQuestionCount = 3

	ExportFilenamePrefix = "chat_history_"
)
