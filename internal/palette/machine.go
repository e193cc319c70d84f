// Package palette implements the command palette's modal state machine:
// open/closed state, the active query, and the selection cursor over the
// ranked results. It knows nothing about rendering; the TUI feeds it
// events and reads its state back.
package palette

import (
	"github.com/jasperwreed/toolfind/internal/keymap"
	"github.com/jasperwreed/toolfind/internal/models"
)

type Mode int

const (
	Closed Mode = iota
	OpenEmpty
	OpenSearching
)

func (m Mode) String() string {
	switch m {
	case Closed:
		return "closed"
	case OpenEmpty:
		return "open-empty"
	case OpenSearching:
		return "open-searching"
	default:
		return "unknown"
	}
}

// Key is an input the machine understands, independent of how the
// terminal reports it.
type Key int

const (
	KeyOpen Key = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyEnter
)

// OpenShortcut is the global key that opens the palette.
const OpenShortcut = "ctrl+k"

type Searcher interface {
	Search(query string) []models.Tool
}

type History interface {
	Record(query string)
}

// Navigator performs page navigation on the machine's behalf.
type Navigator interface {
	OpenTool(slug string)
	OpenCategory(id string)
}

// Capture is acquired while the palette is open: the host suppresses
// background scrolling and routes all keys to the palette.
type Capture interface {
	Acquire()
	Release()
}

type nopCapture struct{}

func (nopCapture) Acquire() {}
func (nopCapture) Release() {}

type Option func(*Machine)

func WithCapture(c Capture) Option {
	return func(m *Machine) {
		m.capture = c
	}
}

// Machine is owned by a single event loop; it is not safe for concurrent
// use. No operation fails: input that makes no sense in the current state
// is ignored.
type Machine struct {
	searcher Searcher
	history  History
	nav      Navigator
	capture  Capture

	mode    Mode
	text    string
	results []models.Tool
	active  int

	release func()
}

func New(searcher Searcher, history History, nav Navigator, opts ...Option) *Machine {
	m := &Machine{
		searcher: searcher,
		history:  history,
		nav:      nav,
		capture:  nopCapture{},
		active:   -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Mode() Mode {
	return m.mode
}

func (m *Machine) IsOpen() bool {
	return m.mode != Closed
}

func (m *Machine) Query() string {
	return m.text
}

// Results is the ranked result list for the current query.
func (m *Machine) Results() []models.Tool {
	return m.results
}

// ActiveIndex is the explicit selection, or -1 when nothing was chosen
// and a commit would take the first result.
func (m *Machine) ActiveIndex() int {
	return m.active
}

// Highlighted is the row a commit would select, or -1 with no results.
func (m *Machine) Highlighted() int {
	if len(m.results) == 0 {
		return -1
	}
	return max(m.active, 0)
}

// SetSearcher swaps the engine, for example after the catalog reloads,
// and re-evaluates the current query against it.
func (m *Machine) SetSearcher(s Searcher) {
	m.searcher = s
	if m.IsOpen() {
		m.SetQuery(m.text)
	}
}

func (m *Machine) Open() {
	if m.IsOpen() {
		return
	}
	m.mode = OpenEmpty
	m.text = ""
	m.results = nil
	m.active = -1
	m.capture.Acquire()
}

func (m *Machine) Close() {
	if !m.IsOpen() {
		return
	}
	m.mode = Closed
	m.text = ""
	m.results = nil
	m.active = -1
	m.capture.Release()
}

// SetQuery replaces the query text. Typing into the closed search bar
// focuses it, so a closed palette opens first.
func (m *Machine) SetQuery(text string) {
	if !m.IsOpen() {
		m.Open()
	}
	m.text = text
	m.active = -1
	if text == "" {
		m.mode = OpenEmpty
		m.results = nil
		return
	}
	m.mode = OpenSearching
	m.results = m.searcher.Search(text)
}

// Next moves the cursor down, wrapping to the first row. With no explicit
// selection the first row counts as selected.
func (m *Machine) Next() {
	n := len(m.results)
	if n == 0 {
		return
	}
	m.active = (max(m.active, 0) + 1) % n
}

// Prev moves the cursor up, wrapping to the last row.
func (m *Machine) Prev() {
	n := len(m.results)
	if n == 0 {
		return
	}
	m.active = (max(m.active, 0) - 1 + n) % n
}

// Commit selects the active result, or the first one when none is active.
// It reports whether anything was selected.
func (m *Machine) Commit() bool {
	if len(m.results) == 0 {
		return false
	}
	return m.CommitAt(max(m.active, 0))
}

// CommitAt selects the result at index i, as a click on that row does.
func (m *Machine) CommitAt(i int) bool {
	if i < 0 || i >= len(m.results) {
		return false
	}
	tool := m.results[i]
	m.history.Record(m.text)
	m.nav.OpenTool(tool.Slug)
	m.Close()
	return true
}

// SelectRecent replays a query from the history list.
func (m *Machine) SelectRecent(query string) {
	m.SetQuery(query)
}

// SelectPopular navigates to a tool picked from the zero-query view.
func (m *Machine) SelectPopular(tool models.Tool) {
	if !m.IsOpen() {
		return
	}
	m.nav.OpenTool(tool.Slug)
	m.Close()
}

// SelectCategory navigates to a quick category from the zero-query view.
func (m *Machine) SelectCategory(id string) {
	if !m.IsOpen() {
		return
	}
	m.nav.OpenCategory(id)
	m.Close()
}

// HandleKey applies a key and reports whether the palette consumed it.
// KeyOpen only fires while closed; every other key only while open.
func (m *Machine) HandleKey(k Key) bool {
	if k == KeyOpen {
		if m.IsOpen() {
			return false
		}
		m.Open()
		return true
	}
	if !m.IsOpen() {
		return false
	}

	switch k {
	case KeyEscape:
		m.Close()
	case KeyUp:
		m.Prev()
	case KeyDown:
		m.Next()
	case KeyEnter:
		m.Commit()
	default:
		return false
	}
	return true
}

// Mount binds the global open shortcut in r. Mounting an already mounted
// machine does nothing, so remounts never stack duplicate handlers.
func (m *Machine) Mount(r *keymap.Registry) {
	if m.release != nil {
		return
	}
	m.release = r.Bind(OpenShortcut, func() {
		m.HandleKey(KeyOpen)
	})
}

// Unmount releases the shortcut and any capture still held.
func (m *Machine) Unmount() {
	if m.release != nil {
		m.release()
		m.release = nil
	}
	m.Close()
}

// Mounted reports whether the open shortcut is currently bound.
func (m *Machine) Mounted() bool {
	return m.release != nil
}
