package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// JSONLWriter records events as JSON Lines: one JSON object per event.
type JSONLWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewJSONLWriter creates a recorder writing to w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w)}
}

func (j *JSONLWriter) Record(e Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if _, err := j.w.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return j.w.WriteByte('\n')
}

// Flush writes any buffered events to the underlying writer.
func (j *JSONLWriter) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.w.Flush()
}

// ParseJSONL reads events back from a JSONL stream, one object per line.
func ParseJSONL(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	var events []Event
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}

// timestamp format used by the SQLite store.
const sqliteTimeFormat = time.RFC3339Nano
