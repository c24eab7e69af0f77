package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/sonarmap"
)

func TestRenderMapEmpty(t *testing.T) {
	out := RenderMap(sonarmap.New(nil), RenderOptions{Title: "SONAR"})
	if !strings.Contains(out, sonarmap.NoDataMessage) {
		t.Errorf("RenderMap() on empty map = %q, expected no-data message", out)
	}
	if !strings.HasPrefix(out, "SONAR") {
		t.Errorf("RenderMap() should start with the title, got %q", out)
	}
}

func TestRenderMapRowsAndMarker(t *testing.T) {
	m := sonarmap.New(nil)
	m.Set(core.C(0, 0), 'a')
	m.Set(core.C(2, 0), 'b')
	m.Set(core.C(0, 1), 'c')

	out := RenderMap(m, RenderOptions{})
	if !strings.Contains(out, "a b") || !strings.Contains(out, "c  ") {
		t.Errorf("RenderMap() missing rows:\n%s", out)
	}

	marker := core.C(1, 1)
	out = RenderMap(m, RenderOptions{Marker: &marker})
	if !strings.Contains(out, "c@") {
		t.Errorf("RenderMap() missing marker:\n%s", out)
	}

	outside := core.C(10, 10)
	out = RenderMap(m, RenderOptions{Marker: &outside})
	if strings.ContainsRune(out, MarkerRune) {
		t.Errorf("RenderMap() drew a marker outside the map:\n%s", out)
	}
}

func TestRenderMapCropsAroundMarker(t *testing.T) {
	m := sonarmap.New(nil)
	for x := 0; x < 20; x++ {
		m.Set(core.C(x, 0), rune('a'+x))
	}

	marker := core.C(15, 0)
	out := RenderMap(m, RenderOptions{Marker: &marker, MaxWidth: 5})
	if !strings.Contains(out, "no@qr") {
		t.Errorf("RenderMap() crop = \n%s\nexpected window no@qr", out)
	}
	if strings.Contains(out, "a") {
		t.Errorf("RenderMap() crop kept cells outside the window:\n%s", out)
	}
}

func TestRenderMapCropsHugeMapBeforeRendering(t *testing.T) {
	m := sonarmap.New(nil)
	m.Set(core.C(0, 0), 'a')
	m.Set(core.C(0, 1<<40), 'z')

	marker := core.C(0, 1<<40)
	out := RenderMap(m, RenderOptions{Marker: &marker, MaxWidth: 10, MaxHeight: 3})
	if !strings.Contains(out, "@") {
		t.Errorf("RenderMap() cropped view missing marker:\n%s", out)
	}
	if strings.Contains(out, "too large") {
		t.Errorf("RenderMap() cropped view should fit:\n%s", out)
	}
}

func TestRenderMapTooLargeWithoutCrop(t *testing.T) {
	m := sonarmap.New(nil)
	m.Set(core.C(0, 0), 'a')
	m.Set(core.C(0, 1<<40), 'z')

	out := RenderMap(m, RenderOptions{})
	if !strings.Contains(out, sonarmap.TooLargeMessage(m.BoundingBox())) {
		t.Errorf("RenderMap() = %q, expected the too-large notice", out)
	}
}

func TestCropRange(t *testing.T) {
	tests := []struct {
		n, limit, focus int
		start, end      int
	}{
		{10, 0, 5, 0, 10},
		{10, 20, 5, 0, 10},
		{10, 4, 0, 0, 4},
		{10, 4, 5, 3, 7},
		{10, 4, 9, 6, 10},
	}

	for _, tt := range tests {
		start, end := cropRange(tt.n, tt.limit, tt.focus)
		if start != tt.start || end != tt.end {
			t.Errorf("cropRange(%d, %d, %d) = %d, %d; expected %d, %d",
				tt.n, tt.limit, tt.focus, start, end, tt.start, tt.end)
		}
	}
}
