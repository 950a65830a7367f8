package scribe_test

import (
	"fmt"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/object"
	"github.com/jonwraymond/scribe/scribe"
)

func ExampleWrap() {
	calc := object.FromMap(map[string]any{
		"add": object.NewFunction("add", 2, func(_ *object.Object, args ...any) (any, error) {
			return args[0].(int) + args[1].(int), nil
		}),
	})

	wrapped, err := scribe.Wrap(calc, scribe.WithObjectName("calc"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	sum, _ := wrapped.Call("add", 2, 3)
	fmt.Println("sum:", sum)

	h, _ := scribe.Inspect(wrapped)
	last, _ := h.LastCall()
	fmt.Println(last.Name, last.Call.Args, last.Call.ReturnValue)
	// Output:
	// sum: 5
	// add [2 3] 5
}

func ExampleMutative() {
	counter := object.FromMap(map[string]any{"count": 0})
	_ = counter.Set("inc", object.NewFunction("inc", 0, func(this *object.Object, _ ...any) (any, error) {
		n := this.Get("count").(int) + 1
		return n, this.Set("count", n)
	}))

	same, _ := scribe.Mutative(counter, scribe.WithLog(func(name string, call *history.MethodCall, methodHistory []*history.FunctionCall, _ []*history.MethodCall) {
		fmt.Printf("%s.%s -> %v (call %d)\n", name, call.Name, call.Call.ReturnValue, len(methodHistory))
	}), scribe.WithObjectName("counter"))

	_, _ = counter.Call("inc")
	_, _ = counter.Call("inc")
	fmt.Println(same == counter)
	// Output:
	// counter.inc -> 1 (call 1)
	// counter.inc -> 2 (call 2)
	// true
}

func ExampleInspect_tail() {
	rec, _ := scribe.Wrap(object.FromMap(map[string]any{
		"echo": object.NewFunction("echo", 1, func(_ *object.Object, args ...any) (any, error) {
			return args[0], nil
		}),
	}))
	for _, word := range []string{"a", "b", "c"} {
		_, _ = rec.Call("echo", word)
	}

	h, _ := scribe.Inspect(rec)
	for _, c := range h.Tail(-2) {
		fmt.Println(c.Call.ReturnValue)
	}
	// Output:
	// b
	// c
}
