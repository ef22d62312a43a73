package fixtures

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

// Model names as Claude Code writes them.
const (
	ModelOpus45   = "claude-opus-4-5-20251101"
	ModelSonnet45 = "claude-sonnet-4-5-20250929"
	ModelHaiku45  = "claude-haiku-4-5-20251001"
	ModelSonnet4  = "claude-sonnet-4-20250514"
)

// Entry is one assistant response with usage. ID doubles as the message and
// request ID, so repeating an ID reproduces a response logged twice.
type Entry struct {
	ID         string
	Time       time.Time
	Model      string
	Input      int64
	Output     int64
	CacheRead  int64
	CacheWrite int64
}

// TestDataGenerator writes Claude Code style JSONL logs below a base dir.
type TestDataGenerator struct {
	baseDir string
}

func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{baseDir: baseDir}
}

// GetBaseDir returns the base directory for test data
func (g *TestDataGenerator) GetBaseDir() string {
	return g.baseDir
}

// WriteSession writes project/session.jsonl with a user prompt followed by
// one assistant line per entry, and returns the file path.
func (g *TestDataGenerator) WriteSession(project, session string, entries ...Entry) (string, error) {
	logs := make([]model.ConversationLog, 0, len(entries)+1)
	if len(entries) > 0 {
		logs = append(logs, model.ConversationLog{
			Type:      model.EntryUser,
			Uuid:      "uuid-user-" + session,
			SessionId: session,
			Timestamp: entries[0].Time.Add(-time.Second).UTC().Format(time.RFC3339Nano),
			Message:   model.Message{Role: "user"},
		})
	}
	for i, e := range entries {
		logs = append(logs, model.ConversationLog{
			Type:      model.EntryAssistant,
			Uuid:      fmt.Sprintf("uuid-%s-%d", session, i),
			SessionId: session,
			RequestId: "req_" + e.ID,
			Timestamp: e.Time.UTC().Format(time.RFC3339Nano),
			Message: model.Message{
				Id:    e.ID,
				Role:  "assistant",
				Model: e.Model,
				Usage: model.Usage{
					InputTokens:              e.Input,
					OutputTokens:             e.Output,
					CacheReadInputTokens:     e.CacheRead,
					CacheCreationInputTokens: e.CacheWrite,
				},
			},
		})
	}
	path := filepath.Join(g.baseDir, project, session+".jsonl")
	return path, g.writeJSONL(path, logs)
}

// GenerateMultiModelSession writes ten responses fifteen minutes apart,
// rotating through opus, sonnet and haiku.
func (g *TestDataGenerator) GenerateMultiModelSession(project string, startTime time.Time) (string, error) {
	models := []string{ModelSonnet45, ModelOpus45, ModelHaiku45}
	entries := make([]Entry, 0, 10)
	for i := 0; i < 10; i++ {
		entries = append(entries, Entry{
			ID:         fmt.Sprintf("msg_%s_%02d", project, i),
			Time:       startTime.Add(time.Duration(i*15) * time.Minute),
			Model:      models[i%len(models)],
			Input:      int64(1000 + i*100),
			Output:     int64(500 + i*50),
			CacheRead:  int64(10000 + i*1000),
			CacheWrite: int64(50 + i*5),
		})
	}
	return g.WriteSession(project, "multi-model", entries...)
}

// GenerateDailyActivity writes one sonnet response per day for days days.
func (g *TestDataGenerator) GenerateDailyActivity(project string, startTime time.Time, days int) (string, error) {
	entries := make([]Entry, 0, days)
	for i := 0; i < days; i++ {
		entries = append(entries, Entry{
			ID:         fmt.Sprintf("msg_%s_day%03d", project, i),
			Time:       startTime.AddDate(0, 0, i),
			Model:      ModelSonnet45,
			Input:      int64(1500 + i*10),
			Output:     120,
			CacheRead:  4000,
			CacheWrite: 300,
		})
	}
	return g.WriteSession(project, "daily", entries...)
}

// GenerateLargeDataset writes numEntries responses one minute apart.
func (g *TestDataGenerator) GenerateLargeDataset(project string, startTime time.Time, numEntries int) (string, error) {
	models := []string{ModelSonnet45, ModelOpus45, ModelHaiku45, ModelSonnet4}
	entries := make([]Entry, 0, numEntries)
	for i := 0; i < numEntries; i++ {
		entries = append(entries, Entry{
			ID:         fmt.Sprintf("msg_%s_%06d", project, i),
			Time:       startTime.Add(time.Duration(i) * time.Minute),
			Model:      models[i%len(models)],
			Input:      int64(500 + (i%1000)*2),
			Output:     int64(250 + i%500),
			CacheRead:  int64(50 + i%100),
			CacheWrite: int64(25 + i%50),
		})
	}
	return g.WriteSession(project, "large", entries...)
}

// CreateEmptyProject creates a project directory holding an empty log.
func (g *TestDataGenerator) CreateEmptyProject(project string) (string, error) {
	path := filepath.Join(g.baseDir, project, "empty.jsonl")
	return path, g.writeJSONL(path, nil)
}

// AppendRaw appends raw lines, e.g. corrupt JSON, to an existing log.
func (g *TestDataGenerator) AppendRaw(path string, lines ...string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	return nil
}

func (g *TestDataGenerator) writeJSONL(filename string, logs []model.ConversationLog) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range logs {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return err
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	return w.Flush()
}
