package notify

import (
	"strings"
	"testing"
	"time"
)

func TestBar_PushAndVisible(t *testing.T) {
	b := NewBar(20)
	now := time.Now()

	b.Push(Notification{Animation: "walk", Message: "saved", Timestamp: now})
	b.Push(Notification{Animation: "jump", Message: "saved", Timestamp: now})
	b.Push(Notification{Animation: "die", Message: "failed", Timestamp: now})

	visible := b.Visible()
	if len(visible) != 2 {
		t.Fatalf("Visible() = %d items, want 2", len(visible))
	}
	if visible[0].Animation != "jump" {
		t.Errorf("visible[0].Animation = %q, want jump", visible[0].Animation)
	}
	if visible[1].Animation != "die" {
		t.Errorf("visible[1].Animation = %q, want die", visible[1].Animation)
	}
}

func TestBar_VisibleEmpty(t *testing.T) {
	b := NewBar(20)
	if len(b.Visible()) != 0 {
		t.Error("empty bar should have no visible items")
	}
}

func TestBar_MaxBuffer(t *testing.T) {
	b := NewBar(3)
	now := time.Now()

	for i := 0; i < 10; i++ {
		b.Push(Notification{Animation: string(rune('a' + i)), Timestamp: now})
	}

	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (max buffer)", b.Len())
	}
}

func TestBar_Render(t *testing.T) {
	b := NewBar(20)
	now := time.Now()
	b.Push(Notification{Animation: "walk", Message: "saved walk.png", Timestamp: now.Add(-5 * time.Second)})

	out := b.Render(80, now)
	if !strings.Contains(out, "walk: saved walk.png") {
		t.Errorf("Render() = %q, want walk message", out)
	}
	if !strings.Contains(out, "5s ago") {
		t.Errorf("Render() = %q, want age suffix", out)
	}
}

func TestBar_RenderTruncates(t *testing.T) {
	b := NewBar(20)
	now := time.Now()
	b.Push(Notification{Animation: "a-very-long-animation-name", Message: "saved somewhere deep", Timestamp: now})

	out := b.Render(20, now)
	if len([]rune(out)) > 20 {
		t.Errorf("Render() length = %d, want <= 20", len([]rune(out)))
	}
	if !strings.HasSuffix(out, "…") {
		t.Errorf("Render() = %q, want ellipsis suffix", out)
	}
}

func TestBell_RingOnTriggerStates(t *testing.T) {
	b := NewBell(10*time.Second, []string{"DONE", "FAILED"})
	now := time.Now()

	if !b.Ring("DONE", now) {
		t.Error("DONE should ring")
	}
	if b.Ring("DONE", now.Add(time.Second)) {
		t.Error("second ring inside debounce window should be suppressed")
	}
	if !b.Ring("FAILED", now.Add(time.Minute)) {
		t.Error("FAILED after debounce should ring")
	}
}

func TestBell_IgnoresOtherStates(t *testing.T) {
	b := NewBell(time.Second, []string{"FAILED"})
	if b.Ring("RENDERING", time.Now()) {
		t.Error("non-trigger state should not ring")
	}
}
