package notify

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleSinkWritesToSeparateStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	sink := &ConsoleSink{Out: &out, Err: &errOut}

	sink.Success("Book created successfully!")
	sink.Error("Failed to load books")

	assert.Equal(t, "✓ Book created successfully!\n", out.String())
	assert.Equal(t, "✗ Failed to load books\n", errOut.String())
}

func TestMemSinkRecordsInOrder(t *testing.T) {
	sink := NewMemSink()
	sink.Success("first")
	sink.Success("second")
	sink.Error("oops")

	assert.Equal(t, []string{"first", "second"}, sink.Successes)
	assert.Equal(t, []string{"oops"}, sink.Errors)
}

func TestMemSinkIsSafeForConcurrentUse(t *testing.T) {
	sink := NewMemSink()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Success("ok")
			sink.Error("fail")
		}()
	}
	wg.Wait()

	assert.Len(t, sink.Successes, 16)
	assert.Len(t, sink.Errors, 16)
}
