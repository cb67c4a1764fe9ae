// Package notify surfaces the outcome of mutating actions to the user.
// Messages are fire-and-forget; nothing else reads them back.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Sink interface {
	Success(msg string)
	Error(msg string)
}

// ConsoleSink prints outcomes to the terminal.
type ConsoleSink struct {
	Out io.Writer
	Err io.Writer
}

func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{Out: os.Stdout, Err: os.Stderr}
}

func (s *ConsoleSink) Success(msg string) {
	fmt.Fprintf(s.Out, "✓ %s\n", msg)
}

func (s *ConsoleSink) Error(msg string) {
	fmt.Fprintf(s.Err, "✗ %s\n", msg)
}

// MemSink records notifications for tests.
type MemSink struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func NewMemSink() *MemSink {
	return &MemSink{}
}

func (s *MemSink) Success(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Successes = append(s.Successes, msg)
}

func (s *MemSink) Error(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, msg)
}
