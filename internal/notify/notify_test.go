package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "info", KindInfo.String())
	assert.Equal(t, "success", KindSuccess.String())
	assert.Equal(t, "warning", KindWarning.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestFuncAdapter(t *testing.T) {
	var got Notification
	n := Func(func(title, description string, kind Kind) {
		got = Notification{Title: title, Description: description, Kind: kind}
	})
	n.Notify("Saved", "record 1", KindSuccess)
	assert.Equal(t, "Saved", got.Title)
	assert.Equal(t, KindSuccess, got.Kind)
}

func TestBuffer(t *testing.T) {
	var callbacks []Notification
	b := NewBuffer(func(n Notification) {
		callbacks = append(callbacks, n)
	})

	_, ok := b.Latest()
	assert.False(t, ok)

	b.Notify("First", "", KindInfo)
	b.Notify("Second", "details", KindError)

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, "Second", latest.Title)
	assert.False(t, latest.Timestamp.IsZero())

	all := b.All()
	require.Len(t, all, 2)
	assert.Equal(t, "First", all[0].Title)
	assert.Len(t, callbacks, 2)

	b.Clear()
	assert.Empty(t, b.All())
	_, ok = b.Latest()
	assert.False(t, ok)
}
