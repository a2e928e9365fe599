package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgeisenh/bonsai/internal/config"
	"github.com/sgeisenh/bonsai/internal/source"
)

func testConfig() *config.Config {
	return &config.Config{
		Theme:        "dark",
		Locale:       "en",
		RowHeight:    1,
		HeaderHeight: 1,
		Overscan:     20,
		DefaultSort:  "name",
		Keys:         config.DefaultKeyBindings(),
	}
}

func newTestModel(t *testing.T, width, height int, names ...string) Model {
	t.Helper()
	m := New(testConfig(), "/tmp/fake", nil)

	um, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	m = um.(Model)

	entries := make([]source.Entry, len(names))
	now := time.Now()
	for i, n := range names {
		entries[i] = source.Entry{Name: n, Size: int64(100 * (i + 1)), ModTime: now.Add(time.Duration(i) * time.Minute)}
	}
	um, _ = m.Update(entriesMsg{entries: entries})
	return um.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		um, _ := m.Update(msg)
		m = um.(Model)
	}
	return m
}

func focusedKey(t *testing.T, m Model) string {
	t.Helper()
	k, ok := m.engine.VisuallyFocusedKey()
	if !ok {
		t.Fatalf("expected a focused row, got none")
	}
	return k
}

func TestDownEntersAtTopAndWalks(t *testing.T) {
	m := newTestModel(t, 80, 20, "alpha", "beta", "gamma")

	m = press(t, m, "j")
	if got := focusedKey(t, m); got != "alpha" {
		t.Fatalf("first down: focus = %q, want alpha", got)
	}

	m = press(t, m, "j")
	if got := focusedKey(t, m); got != "beta" {
		t.Fatalf("second down: focus = %q, want beta", got)
	}

	m = press(t, m, "k")
	if got := focusedKey(t, m); got != "alpha" {
		t.Fatalf("up: focus = %q, want alpha", got)
	}
}

func TestUnfocusThenDownResumes(t *testing.T) {
	m := newTestModel(t, 80, 20, "alpha", "beta", "gamma")

	m = press(t, m, "j", "j", "esc")
	if _, ok := m.engine.VisuallyFocusedKey(); ok {
		t.Fatalf("esc should clear focus")
	}

	m = press(t, m, "j")
	if got := focusedKey(t, m); got != "gamma" {
		t.Fatalf("resume down: focus = %q, want gamma", got)
	}
}

func TestScrollFollowsFocusPastViewport(t *testing.T) {
	// height 5 → header 1 + 3 rows + status bar 1.
	m := newTestModel(t, 80, 5, "a", "b", "c", "d", "e", "f")

	m = press(t, m, "j", "j", "j", "j")
	if got := focusedKey(t, m); got != "d" {
		t.Fatalf("focus = %q, want d", got)
	}
	if m.scrollRow != 1 {
		t.Fatalf("scrollRow = %d, want 1 (row d revealed at bottom)", m.scrollRow)
	}
}

func TestFilterReconcilesFocusOntoSurvivor(t *testing.T) {
	m := newTestModel(t, 80, 20, "alpha", "beta", "gamma")

	m = press(t, m, "j")
	if got := focusedKey(t, m); got != "alpha" {
		t.Fatalf("focus = %q, want alpha", got)
	}

	m = press(t, m, "/", "g", "a", "enter")
	if got := m.coll.Len(); got != 1 {
		t.Fatalf("filtered length = %d, want 1", got)
	}
	// The focused key fell out of the view; focus lands on the row now
	// occupying its slot.
	if got := focusedKey(t, m); got != "gamma" {
		t.Fatalf("after filter: focus = %q, want gamma", got)
	}
}

func TestFilterEscCancels(t *testing.T) {
	m := newTestModel(t, 80, 20, "alpha", "beta", "gamma")

	m = press(t, m, "/", "g", "a", "esc")
	if m.filtering {
		t.Fatalf("esc should leave filter mode")
	}
	if got := m.coll.Len(); got != 3 {
		t.Fatalf("cancelled filter should restore all rows, got %d", got)
	}
}

func TestSortCycleKeepsFocusByKey(t *testing.T) {
	m := newTestModel(t, 80, 20, "alpha", "beta", "gamma")

	m = press(t, m, "j", "j") // beta
	m = press(t, m, "s")      // size sort: descending → gamma, beta, alpha

	if got := focusedKey(t, m); got != "beta" {
		t.Fatalf("after re-sort: focus = %q, want beta (key survives)", got)
	}
	if got := m.sortColumn; got != "size" {
		t.Fatalf("sortColumn = %q, want size", got)
	}
}

func TestPageDownJumpsToRangeBottom(t *testing.T) {
	m := newTestModel(t, 80, 5, "a", "b", "c", "d", "e", "f")

	um, _ := m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m = um.(Model)
	// visible range is (0, 2); page down targets its bottom edge.
	if got := focusedKey(t, m); got != "c" {
		t.Fatalf("page down: focus = %q, want c", got)
	}
}

func TestHiddenToggleTriggersRescan(t *testing.T) {
	m := newTestModel(t, 80, 20, "alpha")
	if m.showHidden {
		t.Fatalf("hidden should start disabled")
	}

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(".")}
	um, cmd := m.Update(msg)
	m = um.(Model)
	if !m.showHidden {
		t.Fatalf("hidden toggle did not flip")
	}
	if cmd == nil {
		t.Fatalf("hidden toggle should schedule a rescan")
	}
}

func TestScanFeedsTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt")
	writeFile(t, dir, "two.txt")
	writeFile(t, dir, ".hidden")

	entries, err := source.Scan(dir, false)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	m := New(testConfig(), dir, nil)
	um, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = um.(Model)
	um, _ = m.Update(entriesMsg{entries: entries})
	m = um.(Model)

	if got := m.coll.Len(); got != 2 {
		t.Fatalf("table rows = %d, want 2 (dotfile excluded)", got)
	}
	m = press(t, m, "j")
	if got := focusedKey(t, m); got != "one.txt" {
		t.Fatalf("focus = %q, want one.txt", got)
	}
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
