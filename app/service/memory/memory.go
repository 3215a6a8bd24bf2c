package memory

import (
	"fmt"
	"strings"
	"sync"
)

// formattedRecordLimit bounds how many recent turns Format serializes into
// prompt context. Records itself is unbounded for the session lifetime.
const formattedRecordLimit = 20

// Record is one completed turn: what the user sent and what came back.
type Record struct {
	Input  string
	Output string
}

// Buffer is an append-only conversation log owned by a single session.
// Insertion order is chronological and meaningful.
type Buffer struct {
	mu      sync.RWMutex
	records []Record
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Append(input, output string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, Record{Input: input, Output: output})
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.records)
}

func (b *Buffer) Records() []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]Record, len(b.records))
	copy(result, b.records)

	return result
}

// Format serializes the most recent turns as prompt context.
func (b *Buffer) Format() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.records) == 0 {
		return "No conversation so far"
	}

	recent := b.records
	if len(recent) > formattedRecordLimit {
		recent = recent[len(recent)-formattedRecordLimit:]
	}

	var builder strings.Builder

	for _, rec := range recent {
		builder.WriteString(fmt.Sprintf("Human: %s\nAI: %s\n", rec.Input, rec.Output))
	}

	return builder.String()
}
