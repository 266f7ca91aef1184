package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	layoutStarts int
	renderDone   int
}

func (h *recordingPipelineHooks) OnLayoutStart(context.Context, int, int) { h.layoutStarts++ }
func (h *recordingPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renderDone++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	// No hooks registered: every emission must be safe.
	Pipeline().OnLayoutStart(ctx, 2, 3)
	Pipeline().OnLayoutComplete(ctx, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, errors.New("boom"))
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 128)
	HTTP().OnRequest(ctx, "GET", "localhost", "/healthz")
	HTTP().OnResponse(ctx, "GET", "localhost", "/healthz", 200, time.Millisecond)
	HTTP().OnError(ctx, "GET", "localhost", "/healthz", errors.New("refused"))
}

func TestSetAndReset(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	p := &recordingPipelineHooks{}
	c := &recordingCacheHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(c)

	Pipeline().OnLayoutStart(ctx, 2, 3)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")

	if p.layoutStarts != 1 || p.renderDone != 1 {
		t.Errorf("pipeline hooks saw %d starts, %d completions; want 1, 1", p.layoutStarts, p.renderDone)
	}
	if c.hits != 1 || c.misses != 2 {
		t.Errorf("cache hooks saw %d hits, %d misses; want 1, 2", c.hits, c.misses)
	}

	Reset()
	Cache().OnCacheHit(ctx, "artifact")
	if c.hits != 1 {
		t.Errorf("Reset() did not detach hooks: hits = %d, want 1", c.hits)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	p := &recordingPipelineHooks{}
	SetPipelineHooks(p)
	SetPipelineHooks(nil)

	Pipeline().OnLayoutStart(context.Background(), 1, 1)
	if p.layoutStarts != 1 {
		t.Errorf("SetPipelineHooks(nil) replaced the registered hooks")
	}
}
