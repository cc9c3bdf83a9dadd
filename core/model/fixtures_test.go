package model

import (
	"fmt"
	"testing"
	"time"

	"nested-models/core/events"
	"nested-models/core/utils"

	"github.com/stretchr/testify/require"
)

// library builds the book/person/page types used across the tests.
type library struct {
	person *Type
	page   *Type
	pages  *CollectionType
	book   *Type
}

func parseTime(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("not a timestamp: %T", raw)
	}
	return time.Parse(time.RFC3339Nano, s)
}

func newLibrary() *library {
	l := &library{
		person: &Type{Name: "person"},
		page:   &Type{Name: "page"},
	}
	l.pages = &CollectionType{Name: "pages", Model: l.page}
	l.book = &Type{Name: "book", Schema: Schema{
		"author":      One(l.person),
		"pages":       Many(l.pages),
		"released_on": Custom(parseTime),
		"foreword_by": One(l.person),
		"keywords":    Plain(),
	}}
	return l
}

// seededBook returns a book with an author and two pages, the way most tests
// start.
func seededBook(t *testing.T, rt *Runtime, l *library) *Model {
	t.Helper()
	book, err := rt.New(l.book, nil)
	require.NoError(t, err)
	require.NoError(t, book.Set(Attrs{
		"author": map[string]any{
			"name":  "Heber J. Grant",
			"title": "President",
			"age":   "47",
		},
		"pages": []any{
			map[string]any{"number": 1, "words": 500},
			map[string]any{"number": 2, "words": 450},
		},
	}, Options{}))
	return book
}

func author(t *testing.T, book *Model) *Model {
	t.Helper()
	a, ok := book.Get("author").(*Model)
	require.True(t, ok, "author is %T", book.Get("author"))
	return a
}

func pages(t *testing.T, book *Model) *Collection {
	t.Helper()
	c, ok := book.Get("pages").(*Collection)
	require.True(t, ok, "pages is %T", book.Get("pages"))
	return c
}

// recorder collects event names in delivery order.
type recorder struct {
	names []string
}

func (r *recorder) handler() events.Handler {
	return func(e events.Event) { r.names = append(r.names, e.Name) }
}

func (r *recorder) count(name string) int {
	n := 0
	for _, got := range r.names {
		if got == name {
			n++
		}
	}
	return n
}

func numberOf(m *Model) int {
	return utils.ToInt(m.Get("number"))
}
