package model

import (
	"strings"
	"testing"

	"nested-models/core/events"
	"nested-models/core/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// spy is a testify mock receiving events.
type spy struct {
	mock.Mock
}

func (s *spy) handle(e events.Event) {
	s.Called(e.Name)
}

func TestSet_ChangeEventsInBatchOrder(t *testing.T) {
	m, err := New(nil, nil)
	require.NoError(t, err)

	var rec recorder
	m.On(events.All, rec.handler())

	b := NewBatch().Put("zeta", 1).Put("alpha", 2).Put("mid", 3)
	require.NoError(t, m.SetBatch(b, Options{}))

	assert.Equal(t, []string{"change:zeta", "change:alpha", "change:mid", "change"}, rec.names)
}

func TestSet_CommitsBeforeNotifying(t *testing.T) {
	m, err := New(nil, nil)
	require.NoError(t, err)

	var seen []any
	m.On(events.ChangeOf("a"), func(events.Event) {
		seen = append(seen, m.Get("a"), m.Get("b"))
	})
	require.NoError(t, m.Set(Attrs{"a": 1, "b": 2}, Options{}))

	assert.Equal(t, []any{1, 2}, seen)
}

func TestSet_UnchangedValueIsSilent(t *testing.T) {
	m, err := New(nil, Attrs{"tags": []any{"a", "b"}})
	require.NoError(t, err)

	s := new(spy)
	m.On(events.All, s.handle)

	require.NoError(t, m.Set(Attrs{"tags": []any{"a", "b"}}, Options{}))
	s.AssertNotCalled(t, "handle", mock.Anything)
	assert.False(t, m.HasChanged(""))
}

func TestSet_SilentSuppressesNotifications(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	s := new(spy)
	book.On(events.All, s.handle)
	author(t, book).On(events.All, s.handle)

	require.NoError(t, book.Set(Attrs{
		"title":  "Gospel Standards",
		"author": map[string]any{"name": "Viky"},
	}, Options{Silent: true}))

	s.AssertNotCalled(t, "handle", mock.Anything)
	assert.Equal(t, "Viky", author(t, book).Get("name"))
	assert.True(t, book.HasChanged("title"))
}

func TestSet_NestedChangeBubblesAsOneAggregate(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	a := author(t, book)

	var bookEvents, authorEvents recorder
	book.On(events.All, bookEvents.handler())
	a.On(events.All, authorEvents.handler())

	require.NoError(t, book.Set(Attrs{"author": map[string]any{"city": "SLC"}}, Options{}))

	assert.Equal(t, []string{"change:city", "change"}, authorEvents.names)
	// the relation itself kept its identity, only the aggregate fires
	assert.Equal(t, []string{"change"}, bookEvents.names)
	assert.False(t, book.HasChanged("author"))
}

func TestSet_MergingSamePayloadTwiceIsIdempotent(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())
	payload := func() Attrs {
		return Attrs{
			"author": map[string]any{"name": "Lorenzo Snow", "age": 84},
			"pages":  []any{map[string]any{"id": 1, "number": 3, "words": 600}},
		}
	}

	require.NoError(t, book.Set(payload(), Options{}))
	once := book.ToJSON()

	var rec recorder
	book.On(events.All, rec.handler())
	author(t, book).On(events.All, rec.handler())
	for _, m := range pages(t, book).Models() {
		m.On(events.All, rec.handler())
	}
	pages(t, book).On(events.All, rec.handler())

	require.NoError(t, book.Set(payload(), Options{}))

	assert.Equal(t, once, book.ToJSON())
	assert.Empty(t, rec.names)
	assert.Equal(t, 3, pages(t, book).Len())
}

func TestSet_CollectionReconcileBubbles(t *testing.T) {
	book := seededBook(t, NewRuntime(), newLibrary())

	s := new(spy)
	s.On("handle", events.Change).Once()
	book.On(events.Change, s.handle)

	require.NoError(t, book.Set(Attrs{"pages": []any{map[string]any{"id": 9, "number": 3}}}, Options{}))

	s.AssertExpectations(t)
	assert.Equal(t, 3, pages(t, book).Len())
}

func TestSet_ReentrantSetJoinsTransaction(t *testing.T) {
	m, err := New(nil, nil)
	require.NoError(t, err)

	var rec recorder
	m.On(events.ChangeOf("a"), rec.handler())
	m.On(events.ChangeOf("a"), func(events.Event) {
		require.True(t, m.Changing())
		require.NoError(t, m.SetKey("b", 2, Options{}))
	})
	m.On(events.ChangeOf("b"), rec.handler())
	m.On(events.Change, rec.handler())

	require.NoError(t, m.SetKey("a", 1, Options{}))

	assert.Equal(t, []string{"change:a", "change:b", "change"}, rec.names)
	assert.False(t, m.Changing())
	assert.Equal(t, Attrs{"a": 1, "b": 2}, m.Changed())
}

func TestSet_HandlerChangingDuringAggregateRepeatsIt(t *testing.T) {
	m, err := New(nil, nil)
	require.NoError(t, err)

	aggregates := 0
	m.On(events.Change, func(events.Event) {
		aggregates++
		if aggregates == 1 {
			require.NoError(t, m.SetKey("follow", true, Options{}))
		}
	})

	require.NoError(t, m.SetKey("a", 1, Options{}))
	assert.Equal(t, 2, aggregates)
}

func TestSet_ChangedAndPrevious(t *testing.T) {
	m, err := New(nil, Attrs{"a": 1, "b": 2})
	require.NoError(t, err)

	require.NoError(t, m.Set(Attrs{"a": 10, "c": 3}, Options{}))

	assert.Equal(t, Attrs{"a": 10, "c": 3}, m.Changed())
	assert.True(t, m.HasChanged("a"))
	assert.False(t, m.HasChanged("b"))
	assert.Equal(t, 1, m.Previous("a"))
	assert.Nil(t, m.Previous("c"))
	assert.Equal(t, Attrs{"a": 1, "b": 2}, m.PreviousAttributes())
}

func TestSet_ChangeRevertedWithinTransaction(t *testing.T) {
	m, err := New(nil, Attrs{"a": 1})
	require.NoError(t, err)

	m.On(events.ChangeOf("a"), func(e events.Event) {
		if e.Value == 2 {
			require.NoError(t, m.SetKey("a", 1, Options{}))
		}
	})
	require.NoError(t, m.SetKey("a", 2, Options{}))

	assert.Equal(t, 1, m.Get("a"))
	assert.False(t, m.HasChanged("a"))
}

func TestSet_EntityEqualityIsIdentity(t *testing.T) {
	rt := NewRuntime()
	l := newLibrary()
	a1, err := rt.New(l.person, Attrs{"name": "x"})
	require.NoError(t, err)
	a2, err := rt.New(l.person, Attrs{"name": "x"})
	require.NoError(t, err)

	assert.True(t, Equal(a1, a1))
	assert.False(t, Equal(a1, a2))
	assert.True(t, Equal(map[string]any{"k": []any{1}}, map[string]any{"k": []any{1}}))
	assert.False(t, Equal(nil, a1))
}

func TestSet_CustomEquality(t *testing.T) {
	caseless := func(a, b any) bool {
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return strings.EqualFold(as, bs)
		}
		return Equal(a, b)
	}
	rt := NewRuntime(WithEqual(caseless))
	m, err := rt.New(nil, Attrs{"name": "viky"})
	require.NoError(t, err)

	var rec recorder
	m.On(events.All, rec.handler())
	require.NoError(t, m.SetKey("name", "VIKY", Options{}))

	assert.Empty(t, rec.names)
}

func TestSet_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg, "test")
	require.NoError(t, err)

	rt := NewRuntime(WithMetrics(rec))
	l := newLibrary()
	l.person.Validator = ValidatorFunc(func(attrs map[string]any) error {
		if attrs["name"] == "" {
			return assert.AnError
		}
		return nil
	})
	book := seededBook(t, rt, l)

	require.NoError(t, book.SetKey("title", "T", Options{}))
	_, err = rt.New(l.person, Attrs{"name": ""})
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "test_transactions_total")
	require.NoError(t, err)
	assert.Positive(t, count)

	expected := `
# HELP test_validation_failures_total Set calls rejected by the validation hook, by model type.
# TYPE test_validation_failures_total counter
test_validation_failures_total{type="person"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_validation_failures_total"))
}
