package scribe_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/object"
	"github.com/jonwraymond/scribe/scribe"
)

func newMath(t *testing.T) *object.Object {
	t.Helper()
	math := mustWrap(t, scribe.Wrap, object.FromMap(map[string]any{
		"add": add("add"),
		"multiply": fn("multiply", 2, func(_ *object.Object, args ...any) (any, error) {
			return args[0].(int) * args[1].(int), nil
		}),
	}))
	mustCall(t, math, "add", 2, 3)
	mustCall(t, math, "multiply", 4, 5)
	mustCall(t, math, "add", 6, 7)
	return math
}

func TestInspect_LastCall(t *testing.T) {
	math := newMath(t)

	last, ok := mustInspect(t, math).LastCall()
	require.True(t, ok)
	assert.Equal(t, "add", last.Name)
	assert.Equal(t, []any{6, 7}, last.Call.Args)
	assert.Equal(t, 13, last.Call.ReturnValue)

	h, err := scribe.InspectMethod(method(t, math, "multiply"))
	require.NoError(t, err)
	lastMul, ok := h.LastCall()
	require.True(t, ok)
	assert.Equal(t, []any{4, 5}, lastMul.Args)
	assert.Equal(t, 20, lastMul.ReturnValue)
}

func TestInspect_Tail(t *testing.T) {
	math := newMath(t)
	h := mustInspect(t, math)

	assert.Len(t, h.Tail(2), 2)
	last, _ := h.LastCall()
	assert.Same(t, last, h.Tail(1)[0])
	assert.Len(t, h.Tail(20), 3)
	assert.Equal(t, h.Tail(2), h.Tail(-2))
	assert.Empty(t, h.Tail(0))

	addHandle, err := scribe.InspectMethod(method(t, math, "add"))
	require.NoError(t, err)
	assert.Len(t, addHandle.Tail(20), 2)
}

func TestInspect_Calls(t *testing.T) {
	h := mustInspect(t, newMath(t))
	assert.Equal(t, h.Tail(20), h.Calls())
}

func TestInspect_EmptyHistory(t *testing.T) {
	h := mustInspect(t, mustWrap(t, scribe.Wrap, object.FromMap(map[string]any{"add": add("add")})))

	_, ok := h.LastCall()
	assert.False(t, ok)
	assert.Empty(t, h.Calls())
	assert.Empty(t, h.Tail(5))
}

func TestInspect_AttachedHandle(t *testing.T) {
	english := mustWrap(t, scribe.Wrap, object.FromMap(map[string]any{
		"greet": fn("greet", 1, func(_ *object.Object, args ...any) (any, error) {
			return "Hello " + args[0].(string), nil
		}),
		"concat": fn("concat", 0, func(_ *object.Object, args ...any) (any, error) {
			words := make([]string, len(args))
			for i, a := range args {
				words[i] = a.(string)
			}
			return strings.Join(words, " "), nil
		}),
	}))

	mustCall(t, english, "greet", "Tom")
	mustCall(t, english, "concat", "how", "now", "brown", "cow")
	mustCall(t, english, "greet", "Steve")

	v, ok := english.Slot(scribe.InspectKey)
	require.True(t, ok)
	attached := v.(history.Handle[*history.MethodCall])
	looked := mustInspect(t, english)
	assert.Equal(t, looked.Tail(2), attached.Tail(2))
	a, _ := attached.LastCall()
	l, _ := looked.LastCall()
	assert.Same(t, l, a)

	concat := method(t, english, "concat")
	v, ok = concat.Slot(scribe.InspectKey)
	require.True(t, ok)
	attachedConcat := v.(history.Handle[*history.FunctionCall])
	lookedConcat, err := scribe.InspectMethod(concat)
	require.NoError(t, err)
	assert.Equal(t, lookedConcat.Tail(1), attachedConcat.Tail(1))
	assert.Equal(t, "how now brown cow", attachedConcat.Tail(1)[0].ReturnValue)
}

func TestInspect_NotInstrumented(t *testing.T) {
	_, err := scribe.Inspect(object.New())
	assert.ErrorIs(t, err, scribe.ErrNotInstrumented)

	_, err = scribe.Inspect(nil)
	assert.ErrorIs(t, err, scribe.ErrNotInstrumented)

	_, err = scribe.InspectMethod(constant("plain", 1))
	assert.ErrorIs(t, err, scribe.ErrNotInstrumented)

	malformed := object.New()
	malformed.SetSlot(scribe.HistoryKey, []string{"not", "a", "store"})
	_, err = scribe.Inspect(malformed)
	var inspectErr *scribe.InspectError
	require.ErrorAs(t, err, &inspectErr)
	assert.Equal(t, "object", inspectErr.Target)
}

func TestInspect_InheritingObjectSeesParentHistory(t *testing.T) {
	wrapped := mustWrap(t, scribe.Wrap, object.FromMap(map[string]any{"add": add("add")}))
	mustCall(t, wrapped, "add", 1, 2)

	child := object.Create(object.Create(wrapped))
	h, err := scribe.Inspect(child)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())

	parent, err := scribe.Inspect(wrapped)
	require.NoError(t, err)
	assert.Equal(t, parent.Calls(), h.Calls())

	_, err = scribe.Inspect(object.Create(object.New()))
	assert.ErrorIs(t, err, scribe.ErrNotInstrumented)
}
