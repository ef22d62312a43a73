package parser

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-claude-usage/internal/core/model"
	"github.com/penwyp/go-claude-usage/internal/util"
)

// Record is one usage event with the key used to drop duplicates.
type Record struct {
	Key   string
	Event model.UsageEvent
}

// Parser reads Claude Code conversation logs. Parsed files are cached by
// FileInfo, so repeated loads only re-read files that changed.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string]cachedFile
}

type cachedFile struct {
	info    util.FileInfo
	records []Record
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File    string
	Records []Record
	Error   error
}

// NewParser creates a parser reading at most concurrency files at once.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string]cachedFile),
	}
}

// ParseFile returns the usage records of one JSONL file. Lines that are
// not valid JSON or carry no assistant usage are skipped.
func (p *Parser) ParseFile(path string) ([]Record, error) {
	info, err := util.GetFileInfo(path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && cached.info == info {
		p.mu.Unlock()
		return cached.records, nil
	}
	p.mu.Unlock()

	util.LogDebugf("Start parsing file: %s", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		var entry model.ConversationLog
		if err := sonic.Unmarshal(scanner.Bytes(), &entry); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", path, lineCount, err)
			continue
		}
		ev, ok := entry.ToUsageEvent()
		if !ok {
			continue
		}
		records = append(records, Record{Key: entry.DedupKey(), Event: ev})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	p.mu.Lock()
	p.cache[path] = cachedFile{info: info, records: records}
	p.mu.Unlock()

	util.LogDebug("Parsed file", util.F("file", path), util.F("lines", lineCount), util.F("records", len(records)))
	return records, nil
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			records, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s - %v", f, err)
			}
			results <- ParseResult{File: f, Records: records, Error: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// Load parses files and returns their events ordered by time. A response
// logged more than once (same message and request ID) is counted once.
// Unreadable files are skipped; Load fails only when none could be read.
func (p *Parser) Load(files []string) ([]model.UsageEvent, error) {
	var results []ParseResult
	for res := range p.ParseFiles(files) {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	seen := make(map[string]struct{})
	var events []model.UsageEvent
	failed := 0
	var lastErr error
	for _, res := range results {
		if res.Error != nil {
			failed++
			lastErr = res.Error
			util.LogWarn("Skipping unreadable log file", util.F("file", res.File), util.F("error", res.Error.Error()))
			continue
		}
		for _, rec := range res.Records {
			if rec.Key != "" {
				if _, dup := seen[rec.Key]; dup {
					continue
				}
				seen[rec.Key] = struct{}{}
			}
			events = append(events, rec.Event)
		}
	}

	if len(files) > 0 && failed == len(files) {
		return nil, fmt.Errorf("no log file could be read: %w", lastErr)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })
	util.LogDebugf("Loaded %d events from %d files (%d duplicates dropped)", len(events), len(files)-failed, dupCount(results, len(events)))
	return events, nil
}

func dupCount(results []ParseResult, kept int) int {
	total := 0
	for _, res := range results {
		total += len(res.Records)
	}
	return total - kept
}
