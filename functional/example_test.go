package functional_test

import (
	"errors"
	"fmt"

	"github.com/gofunctional/compose/functional"
)

func ExampleCompose() {
	produce := func(struct{}) string { return "Complex" }
	concat := func(s string) string { return s + "Thing" }
	complexThing := functional.Compose(produce, concat)
	fmt.Println(complexThing(struct{}{}))
	// Output:
	// ComplexThing
}

func ExampleAfter() {
	hello := func(struct{}) string { return "Hello" }
	world := func(s string) string { return s + "World" }
	fmt.Println(functional.After(world, hello)(struct{}{}))
	// Output:
	// HelloWorld
}

func ExampleComposeErrorable() {
	errNotFound := errors.New("not found")
	read := func(key string) ([]int, error) {
		if key != "someKey" {
			return nil, errNotFound
		}
		return []int{1, 2, 3, 0, -1, 100}, nil
	}
	count := func(seq []int) int {
		n := 0
		for _, v := range seq {
			if v <= 1 {
				n++
			}
		}
		return n
	}
	valuable := functional.ComposeErrorable(read, functional.Lift(count))

	n, err := valuable("someKey")
	fmt.Println(n, err)
	_, err = valuable("otherKey")
	fmt.Println(errors.Is(err, errNotFound))
	// Output:
	// 3 <nil>
	// true
}
