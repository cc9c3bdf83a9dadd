package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_OnTrigger(t *testing.T) {
	var b Bus
	var got []string

	b.On("change:name", func(e Event) { got = append(got, "specific:"+e.Key) })
	b.On(All, func(e Event) { got = append(got, "all:"+e.Name) })

	b.Trigger(Event{Name: "change:name", Key: "name"})

	assert.Equal(t, []string{"specific:name", "all:change:name"}, got)
}

func TestBus_Off(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := b.On(Change, func(Event) { calls++ })

	b.Trigger(Event{Name: Change})
	require.True(t, b.Off(sub))
	assert.False(t, b.Off(sub))
	b.Trigger(Event{Name: Change})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Count(Change))
}

func TestBus_Once(t *testing.T) {
	b := NewBus()
	calls := 0
	b.Once(Reset, func(Event) { calls++ })

	b.Trigger(Event{Name: Reset})
	b.Trigger(Event{Name: Reset})

	assert.Equal(t, 1, calls)
}

func TestBus_HandlerSubscribesDuringTrigger(t *testing.T) {
	b := NewBus()
	late := 0
	b.On(Add, func(Event) {
		b.On(Add, func(Event) { late++ })
	})

	b.Trigger(Event{Name: Add})
	assert.Equal(t, 0, late, "handler added during dispatch must not run in the same dispatch")

	b.Trigger(Event{Name: Add})
	assert.Equal(t, 1, late)
}

func TestBus_OffAll(t *testing.T) {
	b := NewBus()
	b.On(Add, func(Event) {})
	b.On(Remove, func(Event) {})

	b.OffAll(Add)
	assert.Equal(t, 0, b.Count(Add))
	assert.Equal(t, 1, b.Count(Remove))

	b.OffAll("")
	assert.Equal(t, 0, b.Count(Remove))
}

func TestBus_NilSafe(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() { b.Trigger(Event{Name: Change}) })
}

func TestChangeNames(t *testing.T) {
	assert.Equal(t, "change:author", ChangeOf("author"))

	attr, ok := AttrOf("change:author")
	assert.True(t, ok)
	assert.Equal(t, "author", attr)

	_, ok = AttrOf("reset")
	assert.False(t, ok)
}
