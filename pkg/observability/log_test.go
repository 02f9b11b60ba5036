package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnSolveStart(ctx, "recursive", 4)
	h.OnSolveComplete(ctx, "recursive", 9, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "svg", time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "solution")
	h.OnResponse(ctx, "POST", "/solve", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"solve", "lifts=9", "rendered with error", "boom", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksRegister(t *testing.T) {
	defer Reset()
	h := NewLogHooks(nil)
	h.Register()
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("Register should install the hooks in every slot")
	}
}
