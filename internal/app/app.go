package app

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sgeisenh/bonsai/internal/collate"
	"github.com/sgeisenh/bonsai/internal/common"
	"github.com/sgeisenh/bonsai/internal/config"
	"github.com/sgeisenh/bonsai/internal/focus"
	"github.com/sgeisenh/bonsai/internal/source"
	"github.com/sgeisenh/bonsai/internal/ui"
	"github.com/sgeisenh/bonsai/internal/ui/components"
)

// Model is the top-level Bubbletea model: it owns the collator and the focus
// engine and translates key presses into focus actions, scroll intents into
// viewport offsets, and filesystem events into re-collations.
type Model struct {
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	logger *log.Logger

	dir    string
	coll   *collate.Collator[source.Entry]
	engine *focus.Engine[string, source.Entry]
	geom   focus.Geometry

	width  int
	height int
	// scrollRow is the logical index of the first visible row.
	scrollRow int

	sortColumn string
	showHidden bool

	filtering   bool
	filterInput textinput.Model

	showHelp  bool
	statusMsg string
	statusErr bool
	statusExp time.Time
}

// entriesMsg carries a fresh directory scan from a background command.
type entriesMsg struct {
	entries []source.Entry
}

// New creates the application model for the given directory. The logger may
// be nil; when set it receives focus-engine trace output.
func New(cfg *config.Config, dir string, logger *log.Logger) Model {
	geom := focus.Geometry{
		RowHeight:    cfg.RowHeight,
		HeaderHeight: cfg.HeaderHeight,
	}

	engine := focus.NewEngine[string, source.Entry](geom)
	if logger != nil {
		engine.SetTrace(logger.Printf)
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 128

	return Model{
		cfg:         cfg,
		styles:      ui.NewStyles(ui.ThemeByName(cfg.Theme)),
		keys:        NewKeyMap(cfg.Keys),
		logger:      logger,
		dir:         dir,
		coll:        collate.New[source.Entry](cfg.LanguageTag()),
		engine:      engine,
		geom:        geom,
		sortColumn:  cfg.DefaultSort,
		showHidden:  cfg.ShowHidden,
		filterInput: ti,
	}
}

// Init triggers the first directory scan.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.rescan(), textinput.Blink)
}

// rescan lists the directory in the background.
func (m Model) rescan() tea.Cmd {
	dir, hidden := m.dir, m.showHidden
	return func() tea.Msg {
		entries, err := source.Scan(dir, hidden)
		if err != nil {
			return common.ErrMsg{Err: err}
		}
		return entriesMsg{entries: entries}
	}
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case entriesMsg:
		m.setEntries(msg.entries)
		return m, nil

	case common.RefreshMsg:
		return m, m.rescan()

	case common.ErrMsg:
		m.statusMsg = msg.Err.Error()
		m.statusErr = true
		m.statusExp = time.Now().Add(5 * time.Second)
		return m, nil

	case common.InfoMsg:
		m.statusMsg = msg.Text
		m.statusErr = false
		m.statusExp = time.Now().Add(3 * time.Second)
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses. When the filter bar is active it captures
// every key except the ones that leave it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.applyFilter("")
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter(m.filterInput.Value())
		return m, cmd
	}

	if m.showHelp {
		// Any dismissal key closes the overlay; navigation keys fall through.
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Unfocus) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.rescan()

	case key.Matches(msg, m.keys.Hidden):
		m.showHidden = !m.showHidden
		state := "hidden files: off"
		if m.showHidden {
			state = "hidden files: on"
		}
		return m, tea.Batch(m.rescan(), common.CmdInfo(state))

	case key.Matches(msg, m.keys.Sort):
		m.cycleSort()
		return m, common.CmdInfo("sort: " + m.sortColumn)

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Unfocus):
		w, vr := m.snapshot()
		m.engine.Unfocus(w, vr)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		w, vr := m.snapshot()
		m.applyEffects(m.engine.FocusUp(w, vr))
		return m, nil

	case key.Matches(msg, m.keys.Down):
		w, vr := m.snapshot()
		m.applyEffects(m.engine.FocusDown(w, vr))
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		w, vr := m.snapshot()
		m.applyEffects(m.engine.PageUp(w, vr))
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		w, vr := m.snapshot()
		m.applyEffects(m.engine.PageDown(w, vr))
		return m, nil
	}

	return m, nil
}

// handleMouse maps wheel scrolling to viewport movement and clicks to
// explicit row selection.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollRow -= 3
		m.clampScroll()
		return m, nil

	case tea.MouseButtonWheelDown:
		m.scrollRow += 3
		m.clampScroll()
		return m, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		row := msg.Y - m.geom.HeaderHeight
		if row < 0 || row >= m.visibleRows() {
			return m, nil
		}
		w, vr := m.snapshot()
		if t, ok := focus.FindByIndex(w, m.scrollRow+row); ok {
			m.applyEffects(m.engine.Focus(t.Key, w, vr))
		}
		return m, nil
	}

	return m, nil
}

// setEntries feeds a fresh scan into the collator and re-resolves focus
// against the new ordering.
func (m *Model) setEntries(entries []source.Entry) {
	items := make([]collate.Item[source.Entry], len(entries))
	for i, e := range entries {
		items[i] = collate.Item[source.Entry]{Key: e.Name, Filter: e.Name, Value: e}
	}
	m.coll.SetItems(items)
	m.coll.SetLess(lessFor(m.sortColumn))
	m.clampScroll()

	w, vr := m.snapshot()
	m.engine.Reconcile(w, vr)
}

// applyFilter updates the live filter query and re-resolves focus.
func (m *Model) applyFilter(query string) {
	m.coll.SetFilter(query)
	m.clampScroll()
	w, vr := m.snapshot()
	m.engine.Reconcile(w, vr)
}

// cycleSort advances name → size → modified → name.
func (m *Model) cycleSort() {
	switch m.sortColumn {
	case "name":
		m.sortColumn = "size"
	case "size":
		m.sortColumn = "modified"
	default:
		m.sortColumn = "name"
	}
	m.coll.SetLess(lessFor(m.sortColumn))

	w, vr := m.snapshot()
	m.engine.Reconcile(w, vr)
}

// lessFor builds the column comparator. Directories sort before files in
// every column; within a group the key collation breaks ties.
func lessFor(column string) func(a, b collate.Item[source.Entry]) bool {
	return func(a, b collate.Item[source.Entry]) bool {
		if a.Value.Dir != b.Value.Dir {
			return a.Value.Dir
		}
		switch column {
		case "size":
			return a.Value.Size > b.Value.Size
		case "modified":
			return a.Value.ModTime.After(b.Value.ModTime)
		default:
			return false
		}
	}
}

// ── Viewport geometry ───────────────────────────────────────────────────────

// visibleRows is the number of table rows that fit in the current height.
func (m Model) visibleRows() int {
	h := m.height - m.geom.HeaderHeight - 1 // status bar
	if m.filtering {
		h--
	}
	if m.geom.RowHeight > 1 {
		h /= m.geom.RowHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}

// snapshot materializes the window around the viewport (with overscan on both
// sides) and the inclusive visible range the engine transitions against.
func (m Model) snapshot() (focus.Window[string, source.Entry], focus.Range) {
	over := m.cfg.Overscan
	start := m.scrollRow - over
	if start < 0 {
		start = 0
	}
	w := m.coll.Materialize(start, m.visibleRows()+2*over)
	vr := focus.Range{Start: m.scrollRow, End: m.scrollRow + m.visibleRows() - 1}
	return w, vr
}

// applyEffects converts a scroll intent into a new viewport offset.
func (m *Model) applyEffects(eff focus.Effects[string]) {
	s := eff.Scroll
	if s == nil {
		return
	}
	rh := m.geom.RowHeight
	if rh < 1 {
		rh = 1
	}
	switch s.Anchor {
	case focus.AnchorTop:
		// Offset positions the row's top just below the header.
		m.scrollRow = (s.Offset + m.geom.HeaderHeight) / rh
	case focus.AnchorBottom:
		// Offset is the row's bottom edge; align it with the viewport's.
		px := s.Offset - m.visibleRows()*rh
		if px < 0 {
			px = 0
		}
		m.scrollRow = px / rh
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxRow := m.coll.Len() - m.visibleRows()
	if maxRow < 0 {
		maxRow = 0
	}
	if m.scrollRow > maxRow {
		m.scrollRow = maxRow
	}
	if m.scrollRow < 0 {
		m.scrollRow = 0
	}
}

// ── Rendering ───────────────────────────────────────────────────────────────

// View renders the whole screen. Pure — no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		return components.RenderHelp(m.styles, m.width, m.height, m.helpSections())
	}

	visible := m.visibleRows()
	total := m.coll.Len()

	showScrollbar := total > visible
	tableW := m.width
	if showScrollbar {
		tableW = m.width - 2
	}

	header := components.RenderTableHeader(m.styles, tableW)

	w := m.coll.Materialize(m.scrollRow, visible)
	focusedKey, focused := m.engine.VisuallyFocusedKey()
	present := focused && m.coll.Contains(focusedKey)

	rows := make([]components.TableRow, 0, len(w.Rows))
	for _, r := range w.Rows {
		rows = append(rows, components.TableRow{
			Name:     r.Data.Name,
			Size:     formatSize(r.Data.Size, r.Data.Dir),
			Modified: formatModified(r.Data.ModTime),
			IsDir:    r.Data.Dir,
			Focused:  focused && r.Key == focusedKey,
			Stale:    focused && r.Key == focusedKey && !present,
		})
	}
	body := components.RenderTableRows(m.styles, tableW, rows)
	body = lipgloss.NewStyle().Width(tableW).Height(visible).Render(body)

	if showScrollbar {
		pct := 0.0
		if maxRow := total - visible; maxRow > 0 {
			pct = float64(m.scrollRow) / float64(maxRow)
		}
		bar := components.RenderScrollbar(m.styles, visible, total, visible, pct)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " "+bar)
	}

	sections := []string{header, body}

	if m.filtering {
		sections = append(sections, m.styles.FilterBar.Width(m.width).Render(m.filterInput.View()))
	}

	data := components.StatusBarData{
		Path:       m.dir,
		Shown:      total,
		Total:      m.coll.Total(),
		Filter:     m.coll.Filter(),
		SortColumn: m.sortColumn,
	}
	if focused {
		data.FocusedKey = focusedKey
		data.Present = present
	}
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		data.Message = m.statusMsg
		data.IsError = m.statusErr
	}
	sections = append(sections, components.RenderStatusBar(m.styles, data, m.width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) helpSections() []components.HelpSection {
	k := m.keys
	return []components.HelpSection{
		{
			Title: "Navigation",
			Entries: []components.HelpEntry{
				{Key: k.Up.Help().Key, Desc: k.Up.Help().Desc},
				{Key: k.Down.Help().Key, Desc: k.Down.Help().Desc},
				{Key: k.PageUp.Help().Key, Desc: k.PageUp.Help().Desc},
				{Key: k.PageDown.Help().Key, Desc: k.PageDown.Help().Desc},
				{Key: k.Unfocus.Help().Key, Desc: k.Unfocus.Help().Desc},
			},
		},
		{
			Title: "View",
			Entries: []components.HelpEntry{
				{Key: k.Filter.Help().Key, Desc: k.Filter.Help().Desc},
				{Key: k.Sort.Help().Key, Desc: k.Sort.Help().Desc},
				{Key: k.Hidden.Help().Key, Desc: k.Hidden.Help().Desc},
				{Key: k.Refresh.Help().Key, Desc: k.Refresh.Help().Desc},
			},
		},
		{
			Title: "General",
			Entries: []components.HelpEntry{
				{Key: k.Help.Help().Key, Desc: k.Help.Help().Desc},
				{Key: k.Quit.Help().Key, Desc: k.Quit.Help().Desc},
			},
		},
	}
}

// formatSize renders a byte count with a short binary-ish unit. Directories
// show a dash: their reported size is filesystem noise, not content.
func formatSize(n int64, dir bool) string {
	if dir {
		return "–"
	}
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	case n < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(1024*1024*1024))
	}
}

func formatModified(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Year() == time.Now().Year() {
		return t.Format("Jan 02 15:04")
	}
	return t.Format("Jan 02  2006")
}
