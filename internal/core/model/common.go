package model

// Message Entry Type
const (
	EntryMessage   = "message"
	EntryAssistant = "assistant"
	EntryUser      = "user"
)

// Model pricing keys
const (
	ModelOpus45   = "opus-4-5"
	ModelSonnet45 = "sonnet-4-5"
	ModelHaiku45  = "haiku-4-5"
	ModelOpus     = "opus"
	ModelSonnet   = "sonnet"
	ModelHaiku    = "haiku"
	ModelDefault  = ModelSonnet
)
