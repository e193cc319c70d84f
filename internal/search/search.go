package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/jasperwreed/toolfind/internal/models"
)

const (
	DefaultMaxResults = 8
	DefaultThreshold  = 0.4
)

type Options struct {
	// MaxResults caps the ranked list.
	MaxResults int
	// Threshold is the largest accepted edit distance as a fraction of
	// the query length.
	Threshold float64
}

func DefaultOptions() Options {
	return Options{MaxResults: DefaultMaxResults, Threshold: DefaultThreshold}
}

// Searcher ranks catalog entries against a query. It holds no mutable
// state, so the same query against the same index always yields the same
// ordered results.
type Searcher struct {
	index *Index
	opts  Options
}

func NewSearcher(index *Index, opts Options) *Searcher {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	return &Searcher{index: index, opts: opts}
}

func (s *Searcher) Options() Options {
	return s.opts
}

// Search returns at most MaxResults tools ordered by ascending score,
// ties in catalog order. An empty or blank query returns nothing.
func (s *Searcher) Search(query string) []models.Tool {
	ranked := s.Rank(query)
	if len(ranked) == 0 {
		return nil
	}
	tools := make([]models.Tool, len(ranked))
	for i, r := range ranked {
		tools[i] = r.Tool
	}
	return tools
}

// Rank is Search with the winning field and score of every result.
func (s *Searcher) Rank(query string) []models.SearchResult {
	q := normalize(query)
	if q == "" || s.index == nil {
		return nil
	}

	m := newMatcher(q, s.opts.Threshold)

	var results []models.SearchResult
	for i := range s.index.docs {
		doc := &s.index.docs[i]
		best := -1.0
		bestField := FieldName
		for f := range numFields {
			d := m.fieldDistance(&doc.fields[f])
			if d > m.limit {
				continue
			}
			score := float64(d)/float64(m.qLen) + fieldPenalty[f]
			if best < 0 || score < best {
				best = score
				bestField = f
			}
		}
		if best >= 0 {
			results = append(results, models.SearchResult{
				Tool:  doc.tool,
				Field: bestField.String(),
				Score: best,
			})
		}
	}

	// Stable sort keeps catalog order among equal scores.
	slices.SortStableFunc(results, func(a, b models.SearchResult) int {
		return cmp.Compare(a.Score, b.Score)
	})

	if len(results) > s.opts.MaxResults {
		results = results[:s.opts.MaxResults]
	}
	return results
}

// runeProfile counts runes by their low seven bits. Folding non-ASCII
// runes into shared buckets only loosens the bound computed from it.
type runeProfile [128]int32

// matcher holds the per-query state for one ranking pass.
type matcher struct {
	q      string
	qLen   int
	qWords int
	// limit is the largest edit distance a field may have and still match.
	limit   int
	profile runeProfile
	scratch runeProfile
}

func newMatcher(q string, threshold float64) *matcher {
	m := &matcher{
		q:      q,
		qLen:   utf8.RuneCountInString(q),
		qWords: max(len(tokenize(q)), 1),
	}
	m.limit = int(threshold * float64(m.qLen))
	for _, r := range q {
		m.profile[r&127]++
	}
	m.scratch = m.profile
	return m
}

// fieldDistance is the smallest optimal-string-alignment distance between
// the query and any window of consecutive words in the field, compared
// both whole and as a prefix of roughly the query's length. A literal
// substring is distance zero. Anything over the limit reports limit+1.
func (m *matcher) fieldDistance(f *indexedField) int {
	best := m.limit + 1
	if f.text == "" {
		return best
	}
	if strings.Contains(f.text, m.q) {
		return 0
	}

	for i := range f.words {
		w := f.windowAt(i, m.qWords)
		best = m.distance(w.text, w.runes, best)

		for n := m.qLen - 1; n <= m.qLen+1; n++ {
			if n < 1 {
				continue
			}
			prefix, ok := runePrefix(w.text, n)
			if !ok {
				break
			}
			best = m.distance(prefix, n, best)
		}
		if best == 0 {
			break
		}
	}
	return best
}

// distance returns the edit distance to s when it is below best, and best
// otherwise. Candidates whose length gap or rune-count gap already reaches
// best are rejected without running the full alignment.
func (m *matcher) distance(s string, runes, best int) int {
	if abs(runes-m.qLen) >= best {
		return best
	}
	if m.bagDistance(s) >= best {
		return best
	}
	if d := edlib.OSADamerauLevenshteinDistance(m.q, s); d < best {
		return d
	}
	return best
}

// bagDistance is a lower bound on the edit distance between the query and
// s: every edit changes the rune multiset by at most one on each side.
func (m *matcher) bagDistance(s string) int {
	missing, extra := m.qLen, 0
	for _, r := range s {
		if m.scratch[r&127] > 0 {
			m.scratch[r&127]--
			missing--
		} else {
			extra++
		}
	}
	for _, r := range s {
		m.scratch[r&127] = m.profile[r&127]
	}
	return max(missing, extra)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// runePrefix returns the first n runes of s, or false when s is shorter.
func runePrefix(s string, n int) (string, bool) {
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	if count == n {
		return s, true
	}
	return "", false
}
