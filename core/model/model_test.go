package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"nested-models/core/events"
	"nested-models/core/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_BuildsModelRelation(t *testing.T) {
	l := newLibrary()
	book := seededBook(t, NewRuntime(), l)

	a := author(t, book)
	assert.Equal(t, l.person, a.Type())
	assert.Equal(t, "Heber J. Grant", a.Get("name"))
	assert.Equal(t, "President", a.Get("title"))
	assert.Equal(t, "47", a.Get("age"))
}

func TestModel_BuildsCollectionRelation(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	p := pages(t, book)
	require.Equal(t, 2, p.Len())
	assert.Equal(t, 1, p.At(0).Get("number"))
	assert.Equal(t, 2, p.At(1).Get("number"))
	assert.Equal(t, 500, p.At(0).Get("words"))
	assert.Equal(t, 450, p.At(1).Get("words"))
}

func TestModel_ConstructedRelationValue(t *testing.T) {
	rt := NewRuntime()
	l := newLibrary()
	book := seededBook(t, rt, l)
	original := author(t, book)

	viky, err := rt.New(l.person, Attrs{"name": "Viky", "title": "UX engineer", "age": 47})
	require.NoError(t, err)
	require.NoError(t, book.SetKey("author", viky, Options{}))

	// no identity on either side: merged into the existing author
	assert.Same(t, original, author(t, book))
	assert.Equal(t, "Viky", author(t, book).Get("name"))
}

func TestModel_ReplacesRelationWithDifferentIdentity(t *testing.T) {
	rt := NewRuntime()
	l := newLibrary()
	book := seededBook(t, rt, l)
	old := author(t, book)

	var rec recorder
	book.On(events.Change, rec.handler())

	viky, err := rt.New(l.person, Attrs{"id": "new_id", "name": "Viky"})
	require.NoError(t, err)
	require.NoError(t, book.SetKey("author", viky, Options{}))

	assert.Same(t, viky, author(t, book))
	assert.Same(t, book, viky.Parent())
	assert.Nil(t, old.Parent())
	assert.Equal(t, 1, rec.count(events.Change))
}

func TestModel_CustomConversion(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	require.NoError(t, book.SetKey("released_on", "2013-09-12T07:07:00.825Z", Options{}))
	released, ok := book.Get("released_on").(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2013, released.Year())

	// conversion failure keeps the raw value
	require.NoError(t, book.SetKey("released_on", 42, Options{}))
	assert.Equal(t, 42, book.Get("released_on"))
}

func TestModel_NilPassesThrough(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	require.NoError(t, book.SetKey("released_on", nil, Options{}))
	v, ok := book.Lookup("released_on")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.False(t, book.Has("released_on"))
}

func TestModel_NilReplacesRelation(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	a := author(t, book)

	require.NoError(t, book.SetKey("author", nil, Options{}))
	assert.Nil(t, book.Get("author"))
	assert.Nil(t, a.Parent())
}

func TestModel_ScalarKeepsEstablishedRelation(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	orig := author(t, book)
	p := pages(t, book)

	var rec recorder
	book.On(events.All, rec.handler())

	require.NoError(t, book.Set(Attrs{"author": "Viky", "pages": 7}, Options{}))
	assert.Same(t, orig, book.Get("author"))
	assert.Same(t, p, book.Get("pages"))
	assert.Empty(t, rec.names)
}

func TestModel_ScalarStoredWithoutPreviousRelation(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	require.NoError(t, book.SetKey("foreword_by", "Viky", Options{}))
	assert.Equal(t, "Viky", book.Get("foreword_by"))
}

func TestModel_BackReferences(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	assert.Same(t, book, author(t, book).Parent())
	assert.Same(t, book, pages(t, book).Parent())
	assert.Same(t, pages(t, book), pages(t, book).At(0).Collection())
	assert.Same(t, book, pages(t, book).At(0).Parent())
}

func TestModel_MergesIntoExistingRelation(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	a := author(t, book)

	require.NoError(t, book.Set(Attrs{"author": map[string]any{"city": "SLC"}}, Options{}))

	assert.Same(t, a, author(t, book))
	assert.Equal(t, "Heber J. Grant", a.Get("name"))
	assert.Equal(t, "SLC", a.Get("city"))
}

func TestModel_UnsetDetachesRelation(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	a := author(t, book)
	p := pages(t, book)

	require.NoError(t, book.Unset("author", Options{}))
	require.NoError(t, book.Unset("pages", Options{}))

	_, ok := book.Lookup("author")
	assert.False(t, ok)
	assert.Nil(t, a.Parent())
	assert.Nil(t, p.Parent())
	assert.Nil(t, p.At(0).Parent())
}

func TestModel_UnsetMissingKeyIsNoChange(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	var rec recorder
	book.On(events.All, rec.handler())

	require.NoError(t, book.Unset("missing", Options{}))
	assert.Empty(t, rec.names)
}

func TestModel_ClearRemovesEverything(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	a := author(t, book)

	require.NoError(t, book.Clear(Options{}))
	assert.Zero(t, book.Len())
	assert.Nil(t, a.Parent())
	assert.True(t, book.HasChanged("author"))
	assert.True(t, book.HasChanged("pages"))
}

func TestModel_Defaults(t *testing.T) {
	typ := &Type{Name: "settings", Defaults: Attrs{"theme": "dark", "size": 10}}

	m, err := New(typ, Attrs{"size": 12})
	require.NoError(t, err)
	assert.Equal(t, "dark", m.Get("theme"))
	assert.Equal(t, 12, m.Get("size"))
	assert.Empty(t, m.Changed())
}

func TestModel_IdentityAttribute(t *testing.T) {
	rt := NewRuntime(WithConfig(Config{IDAttribute: "_id"}))
	plain := &Type{Name: "plain"}
	keyed := &Type{Name: "keyed", IDAttribute: "key"}

	a, err := rt.New(plain, Attrs{"_id": 5, "id": 1})
	require.NoError(t, err)
	assert.Equal(t, 5, a.ID())

	b, err := rt.New(keyed, Attrs{"key": "k1", "_id": 5})
	require.NoError(t, err)
	assert.Equal(t, "k1", b.ID())
	assert.NotEqual(t, a.CID(), b.CID())
}

func TestModel_ValidationRejectsWithoutMutation(t *testing.T) {
	rt := NewRuntime()
	typ := &Type{Name: "page", Validator: validation.New(validation.Rules{"words": "omitempty,min=0"})}

	m, err := rt.New(typ, Attrs{"words": 10})
	require.NoError(t, err)

	var rec recorder
	m.On(events.All, rec.handler())

	err = m.Set(Attrs{"words": -1, "number": 3}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "page", verr.Type)
	assert.Equal(t, err, m.ValidationError())

	assert.Equal(t, 10, m.Get("words"))
	assert.False(t, m.Has("number"))
	assert.Empty(t, rec.names)

	require.NoError(t, m.SetKey("words", 20, Options{}))
	assert.NoError(t, m.ValidationError())
}

func TestModel_ConstructionValidationFails(t *testing.T) {
	typ := &Type{Name: "page", Validator: ValidatorFunc(func(attrs map[string]any) error {
		if _, ok := attrs["number"]; !ok {
			return errors.New("number required")
		}
		return nil
	})}

	m, err := New(typ, Attrs{"words": 1})
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestModel_InvalidNestedMergeIsSkipped(t *testing.T) {
	l := newLibrary()
	l.person.Validator = ValidatorFunc(func(attrs map[string]any) error {
		if attrs["name"] == "" {
			return errors.New("name required")
		}
		return nil
	})
	book := seededBook(t, NewRuntime(), l)

	require.NoError(t, book.Set(Attrs{"author": map[string]any{"name": ""}}, Options{}))
	assert.Equal(t, "Heber J. Grant", author(t, book).Get("name"))
	assert.Error(t, author(t, book).ValidationError())
}

func TestModel_InitializeHook(t *testing.T) {
	var seen *Model
	typ := &Type{Name: "hooked", Initialize: func(m *Model) { seen = m }}

	m, err := New(typ, Attrs{"a": 1})
	require.NoError(t, err)
	assert.Same(t, m, seen)
}

func TestModel_MarshalJSON(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	raw, err := json.Marshal(book)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Heber J. Grant", decoded["author"].(map[string]any)["name"])
	assert.Len(t, decoded["pages"], 2)
}
