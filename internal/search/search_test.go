package search

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/jasperwreed/toolfind/internal/models"
)

func scenarioTools() []models.Tool {
	return []models.Tool{
		{ID: "1", Name: "JSON Formatter", Description: "Pretty-print and validate documents", Category: "developer", Slug: "json-formatter", Keywords: []string{"beautify", "pretty"}},
		{ID: "2", Name: "Base64 Encoder", Description: "Encode and decode text", Category: "encoding", Slug: "base64-encoder", Keywords: []string{"binary"}},
		{ID: "3", Name: "CSS Minifier", Description: "Compress stylesheets", Category: "css", Slug: "css-minifier", Keywords: []string{"minify", "compress"}},
	}
}

func newTestSearcher(tools []models.Tool) *Searcher {
	return NewSearcher(NewIndex(tools), DefaultOptions())
}

func TestSearcher_EmptyQuery(t *testing.T) {
	s := newTestSearcher(scenarioTools())

	for _, q := range []string{"", "   ", "\t\n"} {
		if got := s.Search(q); len(got) != 0 {
			t.Errorf("Search(%q) returned %d results, want 0", q, len(got))
		}
	}
}

func TestSearcher_EmptyIndex(t *testing.T) {
	s := newTestSearcher(nil)

	if got := s.Search("json"); len(got) != 0 {
		t.Errorf("Search() on empty index returned %d results, want 0", len(got))
	}
}

func TestSearcher_TransposedQuery(t *testing.T) {
	s := newTestSearcher(scenarioTools())

	results := s.Search("jsno")
	if len(results) == 0 {
		t.Fatal("Search(jsno) returned no results")
	}
	if results[0].Name != "JSON Formatter" {
		t.Errorf("Search(jsno)[0] = %q, want JSON Formatter", results[0].Name)
	}
}

func TestSearcher_UnrelatedQuery(t *testing.T) {
	s := newTestSearcher(scenarioTools())

	if got := s.Search("xyzxyz"); len(got) != 0 {
		t.Errorf("Search(xyzxyz) = %v, want no results", got)
	}
}

func TestSearcher_CaseInsensitive(t *testing.T) {
	s := newTestSearcher(scenarioTools())

	results := s.Search("CSS")
	if len(results) == 0 || results[0].Slug != "css-minifier" {
		t.Errorf("Search(CSS) = %v, want css-minifier first", results)
	}
}

func TestSearcher_PartialToken(t *testing.T) {
	s := newTestSearcher(scenarioTools())

	results := s.Search("encod")
	if len(results) == 0 || results[0].Slug != "base64-encoder" {
		t.Errorf("Search(encod) = %v, want base64-encoder first", results)
	}
}

func TestSearcher_NameOutranksOtherFields(t *testing.T) {
	tools := []models.Tool{
		{ID: "1", Name: "Color Picker", Description: "Pick a shadow color", Slug: "color-picker"},
		{ID: "2", Name: "Shadow Maker", Description: "Layered shadows", Slug: "shadow-maker"},
		{ID: "3", Name: "Border Tool", Keywords: []string{"shadow"}, Slug: "border-tool"},
	}
	s := newTestSearcher(tools)

	ranked := s.Rank("shadow")
	if len(ranked) != 3 {
		t.Fatalf("Rank(shadow) returned %d results, want 3", len(ranked))
	}
	want := []string{"shadow-maker", "border-tool", "color-picker"}
	for i, slug := range want {
		if ranked[i].Tool.Slug != slug {
			t.Errorf("Rank(shadow)[%d] = %s, want %s", i, ranked[i].Tool.Slug, slug)
		}
	}
	if ranked[0].Field != "name" {
		t.Errorf("Rank(shadow)[0].Field = %s, want name", ranked[0].Field)
	}
	if ranked[1].Field != "keywords" || ranked[2].Field != "description" {
		t.Errorf("fields = %s, %s; want keywords, description", ranked[1].Field, ranked[2].Field)
	}
}

func TestSearcher_TiesKeepCatalogOrder(t *testing.T) {
	tools := []models.Tool{
		{ID: "1", Name: "Text Diff", Slug: "c"},
		{ID: "2", Name: "Text Counter", Slug: "a"},
		{ID: "3", Name: "Text Case", Slug: "b"},
	}
	s := newTestSearcher(tools)

	got := s.Search("text")
	var slugs []string
	for _, tool := range got {
		slugs = append(slugs, tool.Slug)
	}
	if !reflect.DeepEqual(slugs, []string{"c", "a", "b"}) {
		t.Errorf("Search(text) order = %v, want catalog order [c a b]", slugs)
	}
}

func TestSearcher_CappedAtMaxResults(t *testing.T) {
	var tools []models.Tool
	for i := range 30 {
		tools = append(tools, models.Tool{
			ID:   fmt.Sprint(i),
			Name: fmt.Sprintf("Generator %d", i),
			Slug: fmt.Sprintf("generator-%d", i),
		})
	}
	s := newTestSearcher(tools)

	for _, q := range []string{"generator", "gen", "genertor", "g", "xyz"} {
		if got := len(s.Search(q)); got > DefaultMaxResults {
			t.Errorf("Search(%q) returned %d results, want at most %d", q, got, DefaultMaxResults)
		}
	}
	if got := len(s.Search("generator")); got != DefaultMaxResults {
		t.Errorf("Search(generator) returned %d results, want %d", got, DefaultMaxResults)
	}
}

func TestSearcher_Deterministic(t *testing.T) {
	tools := scenarioTools()
	first := newTestSearcher(tools)
	second := newTestSearcher(tools)

	for _, q := range []string{"css", "jsno", "encode", "e", "pretty print", "zz"} {
		a := first.Search(q)
		b := first.Search(q)
		c := second.Search(q)
		if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
			t.Errorf("Search(%q) is not deterministic: %v / %v / %v", q, a, b, c)
		}
	}
}

func TestSearcher_MultiWordQuery(t *testing.T) {
	s := newTestSearcher(scenarioTools())

	results := s.Search("css minfier")
	if len(results) == 0 || results[0].Slug != "css-minifier" {
		t.Errorf("Search(css minfier) = %v, want css-minifier first", results)
	}
}

func TestNewSearcher_DefaultsOptions(t *testing.T) {
	s := NewSearcher(NewIndex(nil), Options{})
	if s.Options() != DefaultOptions() {
		t.Errorf("Options() = %+v, want %+v", s.Options(), DefaultOptions())
	}
}

func TestRunePrefix(t *testing.T) {
	tests := []struct {
		s      string
		n      int
		want   string
		wantOK bool
	}{
		{"json", 2, "js", true},
		{"json", 4, "json", true},
		{"json", 5, "", false},
		{"héllo", 2, "hé", true},
	}
	for _, tt := range tests {
		got, ok := runePrefix(tt.s, tt.n)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("runePrefix(%q, %d) = %q, %v; want %q, %v", tt.s, tt.n, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestHighlight(t *testing.T) {
	got := Highlight("css", "CSS Minifier")
	if len(got) != 3 || got[0] != 0 {
		t.Errorf("Highlight(css) = %v, want three offsets starting at 0", got)
	}
	if got := Highlight("", "CSS Minifier"); got != nil {
		t.Errorf("Highlight(\"\") = %v, want nil", got)
	}
	if got := Highlight("qqq", "CSS Minifier"); got != nil {
		t.Errorf("Highlight(qqq) = %v, want nil", got)
	}
}

func TestIndex_RebuildIsIdempotent(t *testing.T) {
	tools := scenarioTools()
	first := NewSearcher(NewIndex(tools), DefaultOptions())
	second := NewSearcher(NewIndex(tools), DefaultOptions())

	if first.index.Len() != len(tools) || second.index.Len() != len(tools) {
		t.Fatalf("index.Len() = %d, %d, want %d", first.index.Len(), second.index.Len(), len(tools))
	}

	for _, q := range []string{"json", "compress", "css minfier", "encoding"} {
		if a, b := first.Rank(q), second.Rank(q); !reflect.DeepEqual(a, b) {
			t.Errorf("Rank(%q) differs between identical indexes: %v vs %v", q, a, b)
		}
	}
}

var catalogVocabulary = []string{
	"convert", "format", "validate", "encode", "decode", "compress", "minify",
	"beautify", "generate", "random", "color", "palette", "gradient", "shadow",
	"border", "radius", "image", "vector", "path", "text", "case", "counter",
	"diff", "compare", "hash", "checksum", "token", "regex", "tester", "preview",
	"markdown", "table", "timestamp", "unix", "date", "calendar", "unit",
	"length", "weight", "currency", "password", "strength", "url", "query",
	"string", "escape", "unescape", "html", "entity", "stylesheet", "selector",
	"layout", "grid", "flexbox", "animation", "easing", "curve", "icon",
	"favicon", "manifest", "schema", "yaml", "toml", "csv", "spreadsheet",
}

var catalogCategories = []string{"css", "svg", "text", "color", "developer", "encoding", "image", "converter", "generator"}

// generatedTools builds a deterministic catalog of n entries whose
// descriptions run to about thirty words.
func generatedTools(n int) []models.Tool {
	word := func(i int) string { return catalogVocabulary[i%len(catalogVocabulary)] }

	tools := make([]models.Tool, n)
	for i := range n {
		desc := make([]string, 30)
		for j := range desc {
			desc[j] = word(i*7 + j*13)
		}
		tools[i] = models.Tool{
			ID:          fmt.Sprintf("tool-%d", i),
			Name:        strings.ToUpper(word(i)[:1]) + word(i)[1:] + " " + word(i*3+1),
			Description: strings.Join(desc, " "),
			Category:    catalogCategories[i%len(catalogCategories)],
			Slug:        fmt.Sprintf("tool-%d", i),
			Keywords:    []string{word(i + 5), word(i*11 + 2), word(i*17 + 3)},
		}
	}
	return tools
}

// fullAlignmentDistance runs the alignment against every window and prefix
// with no pruning.
func fullAlignmentDistance(q string, f indexedField) int {
	if f.text == "" {
		return math.MaxInt
	}
	if strings.Contains(f.text, q) {
		return 0
	}

	qLen := utf8.RuneCountInString(q)
	qWords := max(len(tokenize(q)), 1)
	best := math.MaxInt
	for i := range f.words {
		w := strings.Join(f.words[i:min(i+qWords, len(f.words))], " ")
		best = min(best, edlib.OSADamerauLevenshteinDistance(q, w))
		for n := qLen - 1; n <= qLen+1; n++ {
			if n < 1 {
				continue
			}
			prefix, ok := runePrefix(w, n)
			if !ok {
				break
			}
			best = min(best, edlib.OSADamerauLevenshteinDistance(q, prefix))
		}
	}
	return best
}

func TestMatcher_PruningKeepsDistances(t *testing.T) {
	ix := NewIndex(append(scenarioTools(), generatedTools(60)...))
	queries := []string{
		"formatter", "jsno", "css minfier", "encod", "e", "co", "grdient",
		"pretty print data", "random color palette generator", "héllo", "zzzz",
	}

	for _, raw := range queries {
		q := normalize(raw)
		m := newMatcher(q, DefaultThreshold)
		for _, doc := range ix.docs {
			for f := range numFields {
				want := min(fullAlignmentDistance(q, doc.fields[f]), m.limit+1)
				if got := m.fieldDistance(&doc.fields[f]); got != want {
					t.Fatalf("fieldDistance(%q, %s of %s) = %d, want %d", q, f, doc.tool.ID, got, want)
				}
			}
		}
	}
}

func TestMatcher_BagDistanceIsLowerBound(t *testing.T) {
	pairs := [][2]string{
		{"json", "jsno"},
		{"formatter", "format"},
		{"css", "stylesheet"},
		{"héllo", "hello"},
		{"abc", ""},
	}
	for _, p := range pairs {
		m := newMatcher(p[0], DefaultThreshold)
		bound := m.bagDistance(p[1])
		if d := edlib.OSADamerauLevenshteinDistance(p[0], p[1]); bound > d {
			t.Errorf("bagDistance(%q, %q) = %d exceeds distance %d", p[0], p[1], bound, d)
		}
		if m.scratch != m.profile {
			t.Errorf("bagDistance(%q, %q) left scratch counts modified", p[0], p[1])
		}
	}
}

// frameBudget is one frame at 60Hz; a keystroke must rank the catalog
// inside it.
const frameBudget = time.Second / 60

func TestSearcher_KeystrokeWithinFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	s := newTestSearcher(generatedTools(500))

	const query = "formatter"
	for n := 1; n <= len(query); n++ {
		prefix := query[:n]
		fastest := time.Duration(math.MaxInt64)
		for range 5 {
			start := time.Now()
			s.Search(prefix)
			fastest = min(fastest, time.Since(start))
		}
		if fastest > frameBudget {
			t.Errorf("Search(%q) over 500 tools took %v, want under %v", prefix, fastest, frameBudget)
		}
	}
}

func BenchmarkSearcher_Search(b *testing.B) {
	s := newTestSearcher(generatedTools(500))
	const query = "formatter"

	keystrokes := 0
	start := time.Now()
	for b.Loop() {
		for n := 1; n <= len(query); n++ {
			s.Search(query[:n])
			keystrokes++
		}
	}
	perKeystroke := time.Since(start) / time.Duration(max(keystrokes, 1))
	b.ReportMetric(float64(perKeystroke.Microseconds()), "µs/keystroke")
	b.ReportMetric(float64(perKeystroke)/float64(frameBudget), "frames/keystroke")
}
