package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Errorf("IsTooSmall(%d, %d) = false, want true", MinWidth-1, MinHeight)
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Errorf("IsTooSmall(%d, %d) = true, want false", MinWidth, MinHeight)
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Quiz", "3/10", 100)
	for _, want := range []string{"Karuta", "Quiz", "3/10"} {
		if !strings.Contains(h, want) {
			t.Errorf("RenderHeader() missing %q", want)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 100)
	if !strings.Contains(f, "Enter") || !strings.Contains(f, "Select") {
		t.Errorf("RenderFooter() = %q, want key and description", f)
	}
}

func TestRenderHeader_Compact(t *testing.T) {
	h := RenderHeader("Quiz", "3/10", MinWidth)
	if strings.Contains(h, "Karuta") {
		t.Errorf("compact RenderHeader() = %q, want romanized name dropped", h)
	}
	if !strings.Contains(h, "百人一首") {
		t.Errorf("compact RenderHeader() = %q, want anthology name", h)
	}
}

func TestRenderFooter_CompactDropsDescriptions(t *testing.T) {
	hints := []KeyHint{{Key: "Enter", Description: "Select"}}
	f := RenderFooter(hints, MinWidth)
	if !strings.Contains(f, "Enter") {
		t.Errorf("compact RenderFooter() = %q, want key", f)
	}
	if strings.Contains(f, "Select") {
		t.Errorf("compact RenderFooter() = %q, want description dropped", f)
	}
}

func TestContentHeight(t *testing.T) {
	header := RenderHeader("Quiz", "", 100)
	footer := RenderFooter(nil, 100)
	used := strings.Count(header, "\n") + 1 + strings.Count(footer, "\n") + 1

	if got, want := ContentHeight(header, footer, 40), 40-used; got != want {
		t.Errorf("ContentHeight(40) = %d, want %d", got, want)
	}
	if got := ContentHeight(header, footer, 2); got != 0 {
		t.Errorf("ContentHeight(2) = %d, want 0", got)
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Quiz", "", 100)
	footer := RenderFooter(nil, 100)
	frame := RenderFrame(header, "content", footer, 100, 30)
	if got := strings.Count(frame, "\n") + 1; got != 30 {
		t.Errorf("frame lines = %d, want 30", got)
	}
}
