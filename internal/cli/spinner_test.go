package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer lets the animation goroutine and the test write concurrently.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testSpinner(ctx context.Context, message string) (*Spinner, *syncBuffer) {
	buf := &syncBuffer{}
	s := newSpinnerWithContext(ctx, message)
	s.out = buf
	return s, buf
}

func TestSpinnerRendersMessage(t *testing.T) {
	s, buf := testSpinner(context.Background(), "Building diagram...")
	s.Start()
	time.Sleep(3 * frameInterval)
	s.Stop()

	if !strings.Contains(buf.String(), "Building diagram...") {
		t.Error("spinner never rendered its message")
	}
}

func TestSpinnerParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := testSpinner(ctx, "Publishing...")
	s.Start()

	cancel()
	time.Sleep(2 * frameInterval)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation from the parent context")
	}
	s.Stop()
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), frameInterval/2)
	defer cancel()

	s, _ := testSpinner(ctx, "Rendering...")
	s.Start()
	time.Sleep(2 * frameInterval)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := testSpinner(context.Background(), "Importing...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopHelpers(t *testing.T) {
	s, _ := testSpinner(context.Background(), "Arranging...")
	s.Start()
	s.StopWithSuccess("Arranged")

	s2, _ := testSpinner(context.Background(), "Arranging...")
	s2.Start()
	s2.StopWithError("Arrange failed")
}
