package model

import (
	"time"
)

// ConversationLog is the subset of a Claude Code JSONL entry needed to
// extract usage. Everything else in the record is ignored.
type ConversationLog struct {
	IsMeta    bool    `json:"isMeta,omitempty"`
	Message   Message `json:"message"`
	RequestId string  `json:"requestId,omitempty"`
	SessionId string  `json:"sessionId"`
	Timestamp string  `json:"timestamp"`
	Type      string  `json:"type"`
	Uuid      string  `json:"uuid"`
}

type Message struct {
	Id    string `json:"id,omitempty"`
	Model string `json:"model,omitempty"`
	Role  string `json:"role"`
	Usage Usage  `json:"usage,omitempty"`
}

type Usage struct {
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
}

// UsageEvent is one already-parsed usage fact. It is the only input the
// aggregation and rendering layers accept.
type UsageEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Model      string    `json:"model"`
	SessionID  string    `json:"sessionId,omitempty"`
	Input      int64     `json:"input"`
	Output     int64     `json:"output"`
	CacheRead  int64     `json:"cacheRead"`
	CacheWrite int64     `json:"cacheWrite"`
}

// TotalTokens returns the sum of all token categories.
func (e UsageEvent) TotalTokens() int64 {
	return e.Input + e.Output + e.CacheRead + e.CacheWrite
}

// HasUsage reports whether the event carries any tokens at all.
func (e UsageEvent) HasUsage() bool {
	return e.TotalTokens() > 0
}

// ToUsageEvent converts a log entry into a UsageEvent. The boolean is false
// for entries that carry no assistant usage.
func (l ConversationLog) ToUsageEvent() (UsageEvent, bool) {
	if l.Type != EntryAssistant && l.Type != EntryMessage {
		return UsageEvent{}, false
	}
	if l.IsMeta {
		return UsageEvent{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, l.Timestamp)
	if err != nil {
		return UsageEvent{}, false
	}
	u := l.Message.Usage
	ev := UsageEvent{
		Timestamp:  ts,
		Model:      l.Message.Model,
		SessionID:  l.SessionId,
		Input:      u.InputTokens,
		Output:     u.OutputTokens,
		CacheRead:  u.CacheReadInputTokens,
		CacheWrite: u.CacheCreationInputTokens,
	}
	if !ev.HasUsage() {
		return UsageEvent{}, false
	}
	return ev, true
}

// DedupKey identifies a single API response. Claude Code may write the same
// response to several lines while streaming.
func (l ConversationLog) DedupKey() string {
	if l.Message.Id == "" {
		return ""
	}
	return l.Message.Id + ":" + l.RequestId
}
