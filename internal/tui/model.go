package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jasperwreed/toolfind/internal/catalog"
	"github.com/jasperwreed/toolfind/internal/history"
	"github.com/jasperwreed/toolfind/internal/keymap"
	"github.com/jasperwreed/toolfind/internal/models"
	"github.com/jasperwreed/toolfind/internal/palette"
	"github.com/jasperwreed/toolfind/internal/search"
)

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	Catalog  *catalog.Catalog
	History  *history.Store
	Search   search.Options
	Registry *keymap.Registry

	BaseURL        string
	PopularCount   int
	PopularDisplay int
	RecentDisplay  int
	Debounce       time.Duration

	// Source is shown in the title bar, usually the catalog path.
	Source string
	// Copy writes to the system clipboard.
	Copy func(text string) error
}

func (o *Options) setDefaults() {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.History == nil {
		o.History = history.NewStore(nil, history.DefaultCapacity)
	}
	if o.Registry == nil {
		o.Registry = keymap.Global
	}
	if o.BaseURL == "" {
		o.BaseURL = "/tool/"
	}
	if o.PopularCount <= 0 {
		o.PopularCount = 6
	}
	if o.PopularDisplay <= 0 {
		o.PopularDisplay = 4
	}
	if o.RecentDisplay <= 0 {
		o.RecentDisplay = 5
	}
	if o.Copy == nil {
		o.Copy = clipboard.WriteAll
	}
}

// queryMsg carries a debounced query; stale sequence numbers are dropped.
type queryMsg struct {
	seq  int
	text string
}

// scrollLock is held by the palette while it is open. The background list
// and detail pane receive no input while locked.
type scrollLock struct {
	locked bool
}

func (l *scrollLock) Acquire() { l.locked = true }
func (l *scrollLock) Release() { l.locked = false }

// navigator routes palette selections to the browser panes.
type navigator struct {
	m *Model
}

func (n navigator) OpenTool(slug string)   { n.m.showTool(slug) }
func (n navigator) OpenCategory(id string) { n.m.filterCategory(id) }

// Model is the browser: a catalog list, a detail pane showing the open
// tool page, and the command palette drawn over both.
type Model struct {
	opts     Options
	cat      *catalog.Catalog
	searcher *search.Searcher
	history  *history.Store
	palette  *palette.Machine
	lock     *scrollLock

	keys     KeyMap
	help     help.Model
	list     list.Model
	viewport viewport.Model
	input    textinput.Model

	width  int
	height int
	ready  bool

	selected      *models.Tool
	filter        string
	page          string
	statusMessage string

	zeroCursor int
	seq        int
}

func NewModel(opts Options) *Model {
	opts.setDefaults()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tools"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	vp := viewport.New(0, 0)

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "Search tools..."
	input.CharLimit = 128

	m := &Model{
		opts:       opts,
		cat:        opts.Catalog,
		history:    opts.History,
		lock:       &scrollLock{},
		keys:       DefaultKeyMap,
		help:       help.New(),
		list:       l,
		viewport:   vp,
		input:      input,
		zeroCursor: -1,
	}
	m.searcher = search.NewSearcher(search.NewIndex(m.cat.Tools()), opts.Search)
	m.palette = palette.New(m.searcher, m.history, navigator{m: m}, palette.WithCapture(m.lock))
	m.palette.Mount(opts.Registry)

	m.refreshList()
	m.updateViewport()
	return m
}

// Close unmounts the palette's global shortcut.
func (m *Model) Close() {
	m.palette.Unmount()
}

func (m *Model) Palette() *palette.Machine {
	return m.palette
}

// Page is the path of the tool or category currently shown.
func (m *Model) Page() string {
	return m.page
}

func (m *Model) Filter() string {
	return m.filter
}

func (m *Model) StatusMessage() string {
	return m.statusMessage
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		listWidth := m.width / 3
		m.list.SetSize(listWidth, m.height-3)

		m.viewport.Width = m.width - listWidth - 4
		m.viewport.Height = m.height - 5
		m.input.Width = m.modalWidth() - 8
		m.help.Width = m.width
		return m, nil

	case CatalogReloadedMsg:
		m.reloadCatalog(msg.Catalog)
		return m, nil

	case queryMsg:
		if msg.seq == m.seq && m.palette.IsOpen() {
			m.applyQuery(msg.text)
		}
		return m, nil

	case tea.KeyMsg:
		if m.palette.IsOpen() {
			return m, m.handlePaletteKey(msg)
		}
		if handled, cmd := m.handleBrowserKey(msg); handled {
			return m, cmd
		}

	case tea.MouseMsg:
		if m.palette.IsOpen() {
			m.handlePaletteMouse(msg)
			return m, nil
		}
	}

	if m.lock.locked {
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleBrowserKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		if m.opts.Registry.Dispatch(msg.String()) {
			return true, m.syncInput()
		}
		return false, nil

	case key.Matches(msg, m.keys.Focus):
		m.palette.Open()
		return true, m.syncInput()

	case key.Matches(msg, m.keys.Quit):
		return true, tea.Quit

	case key.Matches(msg, m.keys.Select):
		if item, ok := m.list.SelectedItem().(listItem); ok {
			m.showTool(item.tool.Slug)
		}
		return true, nil

	case key.Matches(msg, m.keys.ClearFilter):
		if m.filter != "" {
			m.filter = ""
			m.refreshList()
			m.statusMessage = "Showing all tools"
		}
		return true, nil

	case key.Matches(msg, m.keys.CopyLink):
		if item, ok := m.list.SelectedItem().(listItem); ok {
			m.copyLink(item.tool)
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit

	case key.Matches(msg, m.keys.Open):
		m.palette.HandleKey(palette.KeyOpen)
		return nil

	case key.Matches(msg, m.keys.Close):
		m.palette.HandleKey(palette.KeyEscape)
		return m.syncInput()

	case key.Matches(msg, m.keys.Up):
		m.palette.HandleKey(palette.KeyUp)
		return nil

	case key.Matches(msg, m.keys.Down):
		m.palette.HandleKey(palette.KeyDown)
		return nil

	case key.Matches(msg, m.keys.NextItem):
		m.moveZeroCursor(1)
		return nil

	case key.Matches(msg, m.keys.PrevItem):
		m.moveZeroCursor(-1)
		return nil

	case key.Matches(msg, m.keys.Select):
		m.flushQuery()
		if m.palette.Mode() == palette.OpenEmpty {
			items := m.zeroQueryActions()
			if m.zeroCursor >= 0 && m.zeroCursor < len(items) {
				m.activate(items[m.zeroCursor])
			}
			return m.syncInput()
		}
		m.palette.HandleKey(palette.KeyEnter)
		return m.syncInput()

	case key.Matches(msg, m.keys.ClearHistory):
		m.history.Clear()
		m.zeroCursor = -1
		m.statusMessage = "Search history cleared"
		return nil

	case key.Matches(msg, m.keys.CopyLink):
		if i := m.palette.Highlighted(); i >= 0 {
			m.copyLink(m.palette.Results()[i])
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != before {
		return tea.Batch(cmd, m.queryChanged(text))
	}
	return cmd
}

// queryChanged feeds typed text to the palette, immediately or after the
// configured debounce. Clearing the field is never delayed.
func (m *Model) queryChanged(text string) tea.Cmd {
	m.seq++
	if m.opts.Debounce <= 0 || text == "" {
		m.applyQuery(text)
		return nil
	}
	seq := m.seq
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return queryMsg{seq: seq, text: text}
	})
}

// flushQuery applies a pending debounced query before a selection.
func (m *Model) flushQuery() {
	if text := m.input.Value(); text != m.palette.Query() {
		m.seq++
		m.applyQuery(text)
	}
}

func (m *Model) applyQuery(text string) {
	m.palette.SetQuery(text)
	m.zeroCursor = -1
}

// syncInput keeps the text field's focus and value in step with the
// palette after a transition.
func (m *Model) syncInput() tea.Cmd {
	if m.palette.IsOpen() {
		if m.input.Value() != m.palette.Query() {
			m.input.SetValue(m.palette.Query())
			m.input.CursorEnd()
		}
		if !m.input.Focused() {
			return m.input.Focus()
		}
		return nil
	}
	m.input.Blur()
	m.input.SetValue("")
	m.zeroCursor = -1
	return nil
}

func (m *Model) moveZeroCursor(delta int) {
	if m.palette.Mode() != palette.OpenEmpty {
		return
	}
	n := len(m.zeroQueryActions())
	if n == 0 {
		return
	}
	if m.zeroCursor < 0 {
		if delta > 0 {
			m.zeroCursor = 0
		} else {
			m.zeroCursor = n - 1
		}
		return
	}
	m.zeroCursor = (m.zeroCursor + delta + n) % n
}

// activate performs the action behind a palette row.
func (m *Model) activate(a rowAction) {
	switch a.kind {
	case actionResult:
		m.palette.CommitAt(a.index)
	case actionCategory:
		m.palette.SelectCategory(a.category.ID)
	case actionPopular:
		m.palette.SelectPopular(a.tool)
	case actionRecent:
		m.seq++
		m.palette.SelectRecent(a.query)
		m.zeroCursor = -1
	}
}

func (m *Model) handlePaletteMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	lines, actions := m.paletteContent()
	x, y := m.modalOrigin()
	w, h := m.modalWidth(), len(lines)+2

	if msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h {
		m.palette.Close()
		m.syncInput()
		return
	}

	row := msg.Y - y - 1
	if row < 0 || row >= len(actions) || actions[row] == nil {
		return
	}
	m.activate(*actions[row])
	m.syncInput()
}

func (m *Model) copyLink(tool models.Tool) {
	url := m.opts.BaseURL + tool.Slug
	if err := m.opts.Copy(url); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = fmt.Sprintf("Copied %s", url)
}

func (m *Model) showTool(slug string) {
	for _, tool := range m.cat.Tools() {
		if tool.Slug != slug {
			continue
		}
		t := tool
		m.selected = &t
		m.page = m.opts.BaseURL + slug
		m.statusMessage = "Opened " + m.page
		m.selectInList(slug)
		m.updateViewport()
		return
	}
	m.statusMessage = fmt.Sprintf("Unknown tool: %s", slug)
}

func (m *Model) filterCategory(id string) {
	m.filter = id
	m.selected = nil
	m.page = "/category/" + id
	m.refreshList()
	m.updateViewport()

	name := id
	if cat, ok := m.cat.CategoryOf(id); ok {
		name = cat.Name
	}
	m.statusMessage = fmt.Sprintf("Showing %s tools", name)
}

func (m *Model) reloadCatalog(cat *catalog.Catalog) {
	m.cat = cat
	m.searcher = search.NewSearcher(search.NewIndex(cat.Tools()), m.opts.Search)
	m.palette.SetSearcher(m.searcher)
	m.zeroCursor = -1

	if m.selected != nil {
		slug := m.selected.Slug
		m.selected = nil
		for _, tool := range cat.Tools() {
			if tool.Slug == slug {
				t := tool
				m.selected = &t
			}
		}
	}
	m.refreshList()
	m.updateViewport()
	m.statusMessage = fmt.Sprintf("Catalog reloaded: %d tools", cat.Len())
}

func (m *Model) refreshList() {
	tools := m.cat.Tools()
	if m.filter != "" {
		tools = m.cat.InCategory(m.filter)
	}

	items := make([]list.Item, 0, len(tools))
	for _, tool := range tools {
		cat, _ := m.cat.CategoryOf(tool.Category)
		items = append(items, listItem{tool: tool, category: cat})
	}
	m.list.SetItems(items)

	m.list.Title = "Tools"
	if cat, ok := m.cat.CategoryOf(m.filter); ok {
		m.list.Title = "Tools: " + cat.Name
	}
}

func (m *Model) selectInList(slug string) {
	for i, item := range m.list.Items() {
		if li, ok := item.(listItem); ok && li.tool.Slug == slug {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) updateViewport() {
	if m.selected == nil {
		m.viewport.SetContent(m.welcomeContent())
		m.viewport.GotoTop()
		return
	}

	tool := m.selected
	cat, _ := m.cat.CategoryOf(tool.Category)

	var content strings.Builder
	content.WriteString(titleStyle.Render(catalog.Icon(tool.Category) + " " + tool.Name))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("Page: %s\n", m.opts.BaseURL+tool.Slug))
	content.WriteString(fmt.Sprintf("Category: %s\n", categoryStyle(cat).Render(cat.Name)))
	if len(tool.Keywords) > 0 {
		content.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(tool.Keywords, ", ")))
	}
	if tool.Popular {
		content.WriteString("Popular\n")
	}
	content.WriteString("\n" + strings.Repeat("─", 40) + "\n\n")
	content.WriteString(tool.Description)
	content.WriteString("\n")

	m.viewport.SetContent(content.String())
	m.viewport.GotoTop()
}

func (m *Model) welcomeContent() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("Tool catalog"))
	content.WriteString("\n\n")

	stats := m.cat.Stats()
	content.WriteString(fmt.Sprintf("%d tools in %d categories\n\n", stats.TotalTools, stats.CategoryCount))
	for _, cat := range m.cat.Categories() {
		content.WriteString(fmt.Sprintf("  %s %s: %d\n",
			catalog.Icon(cat.ID), categoryStyle(cat).Render(cat.Name), stats.CategoryBreakdown[cat.ID]))
	}
	content.WriteString("\nPress ctrl+k or / to search.\n")
	return content.String()
}

func (m *Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	base := m.baseView()
	if !m.palette.IsOpen() {
		return base
	}

	lines, _ := m.paletteContent()
	modal := modalStyle.Width(m.modalWidth() - 2).Render(strings.Join(lines, "\n"))
	x, y := m.modalOrigin()
	return spliceOverlay(base, strings.Split(modal, "\n"), x, y)
}

func (m *Model) baseView() string {
	listView := paneStyle.
		Width(m.width/3 - 2).
		Height(m.height - 3).
		Render(m.list.View())

	contentView := paneStyle.
		Width(m.width - m.width/3 - 2).
		Height(m.height - 3).
		Render(m.viewport.View())

	var bottomBar string
	switch {
	case m.palette.IsOpen():
		bottomBar = helpStyle.Render("  " + m.palette.Mode().String())
	case m.statusMessage != "":
		bottomBar = statusStyle.Render("  " + m.statusMessage)
	default:
		bottomBar = "  " + m.help.View(browserKeys{KeyMap: m.keys})
	}

	source := m.opts.Source
	if source == "" {
		source = "built-in catalog"
	}
	topBar := lipgloss.JoinHorizontal(
		lipgloss.Left,
		titleStyle.Render("toolfind"),
		dimStyle.Render("  "+source),
	)
	if m.page != "" {
		topBar = lipgloss.JoinHorizontal(lipgloss.Left, topBar, dimStyle.Render("  "+m.page))
	}

	return topBar + "\n" +
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			listView,
			contentView,
		) + "\n" + bottomBar
}
