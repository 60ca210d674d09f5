package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func step(t *testing.T, m reviewModel, keys ...string) reviewModel {
	t.Helper()
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.Update(keyMsg(k))
	}
	out, ok := model.(reviewModel)
	if !ok {
		t.Fatalf("model type changed: %T", model)
	}
	return out
}

func TestReviewModelStartsAllChecked(t *testing.T) {
	m := newReviewModel([]string{"flask", "requests"})
	got := m.selected()
	if len(got) != 2 {
		t.Errorf("selected = %v, want all names checked initially", got)
	}
}

func TestReviewModelToggle(t *testing.T) {
	m := newReviewModel([]string{"flask", "requests", "aiohttp"})

	// Uncheck the second entry.
	m = step(t, m, "j", " ")
	got := m.selected()
	if len(got) != 2 || got[0] != "flask" || got[1] != "aiohttp" {
		t.Errorf("selected = %v, want [flask aiohttp]", got)
	}

	// Toggle it back.
	m = step(t, m, " ")
	if len(m.selected()) != 3 {
		t.Errorf("selected = %v, want all three", m.selected())
	}
}

func TestReviewModelAllNone(t *testing.T) {
	m := newReviewModel([]string{"a", "b", "c"})

	m = step(t, m, "n")
	if len(m.selected()) != 0 {
		t.Errorf("selected = %v, want none after 'n'", m.selected())
	}

	m = step(t, m, "a")
	if len(m.selected()) != 3 {
		t.Errorf("selected = %v, want all after 'a'", m.selected())
	}
}

func TestReviewModelConfirm(t *testing.T) {
	m := newReviewModel([]string{"a"})
	m = step(t, m, "enter")
	if !m.Confirmed {
		t.Error("enter should confirm the selection")
	}

	m2 := newReviewModel([]string{"a"})
	m2 = step(t, m2, "q")
	if m2.Confirmed {
		t.Error("q should not confirm")
	}
}

func TestReviewModelCursorBounds(t *testing.T) {
	m := newReviewModel([]string{"a", "b"})
	m = step(t, m, "k", "k")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want clamped at 0", m.Cursor)
	}
	m = step(t, m, "j", "j", "j")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want clamped at last entry", m.Cursor)
	}
}

func TestReviewModelView(t *testing.T) {
	m := newReviewModel([]string{"flask", "requests"})
	view := m.View()
	for _, want := range []string{"flask", "requests", "[x]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
