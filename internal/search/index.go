package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/jasperwreed/toolfind/internal/models"
)

// Field identifies a searchable part of a tool record.
type Field int

const (
	FieldName Field = iota
	FieldKeywords
	FieldCategory
	FieldDescription
	numFields
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldKeywords:
		return "keywords"
	case FieldCategory:
		return "category"
	case FieldDescription:
		return "description"
	default:
		return "unknown"
	}
}

// fieldPenalty is added to a field's normalized distance so that a name
// match outranks a keyword, category or description match at the same
// edit distance.
var fieldPenalty = [numFields]float64{
	FieldName:        0,
	FieldKeywords:    0.05,
	FieldCategory:    0.05,
	FieldDescription: 0.1,
}

// maxCachedWindow is the longest run of consecutive words precomputed per
// field. Longer queries join their windows at search time.
const maxCachedWindow = 3

type window struct {
	text  string
	runes int
}

type indexedField struct {
	text  string
	words []string
	// windows[k-1][i] joins up to k words starting at word i.
	windows [maxCachedWindow][]window
}

// windowAt returns the run of up to k words starting at word i.
func (f *indexedField) windowAt(i, k int) window {
	if k <= maxCachedWindow {
		return f.windows[k-1][i]
	}
	return newWindow(f.words[i:min(i+k, len(f.words))])
}

func newWindow(words []string) window {
	text := strings.Join(words, " ")
	return window{text: text, runes: utf8.RuneCountInString(text)}
}

type document struct {
	tool   models.Tool
	fields [numFields]indexedField
}

// Index is the precomputed, read-only search representation of a catalog.
// Building it has no side effects and does not validate the catalog.
type Index struct {
	docs []document
}

func NewIndex(tools []models.Tool) *Index {
	ix := &Index{docs: make([]document, len(tools))}
	for i, tool := range tools {
		ix.docs[i] = document{
			tool: tool,
			fields: [numFields]indexedField{
				FieldName:        newIndexedField(tool.Name),
				FieldKeywords:    newIndexedField(strings.Join(tool.Keywords, " ")),
				FieldCategory:    newIndexedField(tool.Category),
				FieldDescription: newIndexedField(tool.Description),
			},
		}
	}
	return ix
}

func (ix *Index) Len() int {
	return len(ix.docs)
}

func newIndexedField(raw string) indexedField {
	text := normalize(raw)
	f := indexedField{text: text, words: tokenize(text)}
	for k := 1; k <= maxCachedWindow; k++ {
		ws := make([]window, len(f.words))
		for i := range f.words {
			ws[i] = newWindow(f.words[i:min(i+k, len(f.words))])
		}
		f.windows[k-1] = ws
	}
	return f
}

// normalize case-folds s and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
