package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jasperwreed/toolfind/internal/catalog"
	"github.com/jasperwreed/toolfind/internal/models"
	"github.com/jasperwreed/toolfind/internal/palette"
	"github.com/jasperwreed/toolfind/internal/search"
)

type actionKind int

const (
	actionResult actionKind = iota
	actionCategory
	actionPopular
	actionRecent
)

// rowAction is what selecting a palette row does.
type rowAction struct {
	kind     actionKind
	index    int
	tool     models.Tool
	category models.Category
	query    string
}

const modalTop = 2

func (m *Model) modalWidth() int {
	w := min(max(m.width*3/5, 44), 72)
	return max(min(w, m.width-2), 20)
}

func (m *Model) modalOrigin() (int, int) {
	return max((m.width-m.modalWidth())/2, 0), modalTop
}

// zeroQueryActions lists the rows of the empty-query view in display
// order: quick categories, popular tools, then recent searches. The three
// groups are never merged.
func (m *Model) zeroQueryActions() []rowAction {
	var actions []rowAction
	for _, cat := range m.cat.QuickCategories() {
		actions = append(actions, rowAction{kind: actionCategory, category: cat})
	}

	popular := m.cat.Popular(m.opts.PopularCount)
	for _, tool := range popular[:min(len(popular), m.opts.PopularDisplay)] {
		actions = append(actions, rowAction{kind: actionPopular, tool: tool})
	}

	for _, q := range m.history.Recent(m.opts.RecentDisplay) {
		actions = append(actions, rowAction{kind: actionRecent, query: q})
	}
	return actions
}

// paletteContent renders the modal's inner lines and, per line, the
// action a click on it performs.
func (m *Model) paletteContent() ([]string, []*rowAction) {
	inner := m.modalWidth() - 4

	var (
		lines   []string
		actions []*rowAction
	)
	add := func(line string, a *rowAction) {
		lines = append(lines, ansi.Truncate(line, inner, "…"))
		actions = append(actions, a)
	}

	add(m.input.View(), nil)
	add(dimStyle.Render(strings.Repeat("─", max(inner, 0))), nil)

	switch m.palette.Mode() {
	case palette.OpenEmpty:
		m.renderZeroQuery(add)
	case palette.OpenSearching:
		m.renderResults(add)
	}

	keys := paletteKeys{KeyMap: m.keys, empty: m.palette.Mode() == palette.OpenEmpty}
	add("", nil)
	add(m.help.ShortHelpView(keys.ShortHelp()), nil)
	return lines, actions
}

var sectionTitles = map[actionKind]string{
	actionCategory: "Quick categories",
	actionPopular:  "Popular tools",
	actionRecent:   "Recent searches",
}

func (m *Model) renderZeroQuery(add func(string, *rowAction)) {
	items := m.zeroQueryActions()
	last := actionKind(-1)

	for i := range items {
		a := &items[i]
		if a.kind != last {
			if last >= 0 {
				add("", nil)
			}
			add(sectionStyle.Render(sectionTitles[a.kind]), nil)
			last = a.kind
		}

		plain, styled := m.zeroQueryLabel(*a)
		if i == m.zeroCursor {
			add(activeRowStyle.Render(plain), a)
		} else {
			add(rowStyle.Render(styled), a)
		}
	}
}

func (m *Model) zeroQueryLabel(a rowAction) (plain, styled string) {
	switch a.kind {
	case actionCategory:
		icon := catalog.Icon(a.category.ID)
		return icon + " " + a.category.Name,
			icon + " " + categoryStyle(a.category).Render(a.category.Name)
	case actionPopular:
		icon := catalog.Icon(a.tool.Category)
		cat, _ := m.cat.CategoryOf(a.tool.Category)
		return icon + " " + a.tool.Name,
			icon + " " + a.tool.Name + "  " + dimStyle.Render(cat.Name)
	default:
		return "↺ " + a.query, dimStyle.Render("↺ ") + a.query
	}
}

func (m *Model) renderResults(add func(string, *rowAction)) {
	results := m.palette.Results()
	if len(results) == 0 {
		add(dimStyle.Render(fmt.Sprintf("No tools match %q", m.palette.Query())), nil)
		return
	}

	highlighted := m.palette.Highlighted()
	query := strings.TrimSpace(m.palette.Query())

	for i, tool := range results {
		a := &rowAction{kind: actionResult, index: i, tool: tool}
		cat, _ := m.cat.CategoryOf(tool.Category)
		icon := catalog.Icon(tool.Category)

		if i == highlighted {
			add(activeRowStyle.Render(
				activeTextStyle.Render(icon+" ")+
					highlightMatches(query, tool.Name, activeTextStyle)+
					activeTextStyle.Render("  "+cat.Name)), a)
			continue
		}
		add(rowStyle.Render(icon+" "+highlightMatches(query, tool.Name, lipgloss.NewStyle())+"  "+categoryStyle(cat).Render(cat.Name)), a)
	}
}

// highlightMatches emphasises the runes of text that the query matched.
// Every run is rendered in base so a row background survives the
// emphasis.
func highlightMatches(query, text string, base lipgloss.Style) string {
	offsets := search.Highlight(query, text)
	if len(offsets) == 0 {
		return base.Render(text)
	}

	matched := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		matched[o] = true
	}
	emphasis := matchStyle.Inherit(base)

	var b strings.Builder
	start, inMatch := 0, matched[0]
	for i := range text {
		if matched[i] == inMatch {
			continue
		}
		b.WriteString(runStyle(inMatch, base, emphasis).Render(text[start:i]))
		start, inMatch = i, matched[i]
	}
	b.WriteString(runStyle(inMatch, base, emphasis).Render(text[start:]))
	return b.String()
}

func runStyle(match bool, base, emphasis lipgloss.Style) lipgloss.Style {
	if match {
		return emphasis
	}
	return base
}
