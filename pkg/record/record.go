// Package record implements the first pipeline stage: reading a newline
// delimited stream of JSON objects into raw, unresolved attribute bags.
package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hugozap/volare/pkg/volerr"
)

// Record is a raw attribute bag as read from one JSONL line. Forward
// references inside it (children, source, target, ...) are not resolved
// at this stage; the tree builder resolves them in a second pass.
type Record map[string]any

// ID returns the record's "id" attribute, or "" if absent or non-string.
func (r Record) ID() string {
	return r.str("id")
}

// Type returns the record's "type" attribute, or "" if absent or non-string.
func (r Record) Type() string {
	return r.str("type")
}

func (r Record) str(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// StrList reads key as a list of strings, tolerating a missing key (returns nil).
func (r Record) StrList(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Parse reads a JSONL stream and returns the declared root id plus the
// id-keyed map of raw records. Blank lines and lines beginning with "#" are
// skipped. The first non-ignored line determines the root id.
func Parse(r io.Reader) (rootID string, records map[string]Record, err error) {
	records = make(map[string]Record)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return "", nil, &volerr.ParseError{LineNo: lineNo, Detail: err.Error()}
		}

		id := rec.ID()
		if id == "" {
			return "", nil, &volerr.ParseError{LineNo: lineNo, Detail: "record missing required \"id\""}
		}
		if rec.Type() == "" {
			return "", nil, &volerr.ParseError{LineNo: lineNo, Detail: "record missing required \"type\""}
		}

		if _, exists := records[id]; exists {
			return "", nil, &volerr.DuplicateId{ID: id}
		}
		records[id] = rec

		if rootID == "" {
			rootID = id
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("reading record stream: %w", err)
	}
	if rootID == "" {
		return "", nil, &volerr.ParseError{LineNo: 0, Detail: "empty input: no root record"}
	}

	return rootID, records, nil
}
