package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fern/internal/driver"
)

func newTestModel(files ...string) *checkModel {
	ch := make(chan driver.FileEvent)
	return NewCheckModel("check", files, ch).(*checkModel)
}

func TestApplyEvent(t *testing.T) {
	m := newTestModel("a.fern", "b.fern")

	m.Update(eventMsg{Path: "a.fern", Status: driver.StatusParsing})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent after parsing = %v", got)
	}
	m.Update(eventMsg{Path: "a.fern", Status: driver.StatusError, Errors: 2})
	m.Update(eventMsg{Path: "b.fern", Status: driver.StatusCached})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent after finish = %v", got)
	}
	if m.finished() != 2 || m.errors != 2 {
		t.Fatalf("finished = %d errors = %d", m.finished(), m.errors)
	}

	// финальный статус не перезаписывается
	m.Update(eventMsg{Path: "a.fern", Status: driver.StatusParsing})
	if m.items[0].status != driver.StatusError {
		t.Fatalf("final status overwritten: %v", m.items[0].status)
	}
	// неизвестные файлы игнорируются
	m.Update(eventMsg{Path: "zzz.fern", Status: driver.StatusDone})
	if m.finished() != 2 {
		t.Fatalf("unknown path changed the model")
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newTestModel("a.fern", "b.fern")
	m.Update(eventMsg{Path: "a.fern", Status: driver.StatusError, Errors: 3})
	m.Update(doneMsg{})

	view := m.View()
	if !strings.Contains(view, "done: check (1/2)") {
		t.Fatalf("header missing:\n%s", view)
	}
	if !strings.Contains(view, "a.fern (3)") {
		t.Fatalf("error count missing:\n%s", view)
	}
	if !strings.Contains(view, "queued") || !strings.Contains(view, "b.fern") {
		t.Fatalf("queued file missing:\n%s", view)
	}
}

func TestEmptyView(t *testing.T) {
	if got := newTestModel().View(); got != "" {
		t.Fatalf("empty model view = %q", got)
	}
}

func TestListenForEventClosed(t *testing.T) {
	ch := make(chan driver.FileEvent)
	close(ch)
	m := NewCheckModel("check", []string{"a.fern"}, ch).(*checkModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatalf("closed channel should yield doneMsg")
	}
	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatalf("doneMsg should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel("a.fern")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.prog.Width != 116 {
		t.Fatalf("width = %d prog = %d", m.width, m.prog.Width)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdefghij", 4, "a..."},
		{"变量变量", 7, "变量..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
