package queue

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/posts-gateway/internal/core/ports"
)

// syncWriter serializes writes from concurrent workers.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestDispatcher_WritesAuditLog(t *testing.T) {
	out := &syncWriter{}
	log := zerolog.New(out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, log)
	d.Start(ctx)

	d.Record(ports.AuditEvent{Kind: ports.AuditLogin, Username: "alice", Success: true, At: time.Now()})
	d.Record(ports.AuditEvent{Kind: ports.AuditRegister, Username: "bob", Success: false, At: time.Now()})

	deadline := time.After(2 * time.Second)
	for {
		s := out.String()
		if strings.Contains(s, "alice") && strings.Contains(s, "bob") {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("audit events were not processed; log so far: %s", s)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index for a username must be deterministic")
		}
	}
	if first < 0 || first >= len(d.workers) {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
