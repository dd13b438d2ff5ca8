package dict_test

import (
	"errors"
	"fmt"

	"github.com/amp-labs/dict/dict"
)

func Example() {
	d := dict.New[string, int]()

	_ = d.Set("a", 1)
	_ = d.Set("b", 2)
	_ = d.Set("a", 3)

	v, _ := d.Get("a")
	fmt.Println(d.Size(), v)

	_, err := d.Remove("x")
	fmt.Println(errors.Is(err, dict.ErrKeyNotFound))

	_ = d.Enum(func(inner *dict.Dict[string, int], key string, value int) bool {
		fmt.Println(key, value, inner.Set("c", 3) != nil)

		return false
	})

	// Output:
	// 2 3
	// true
	// a 3 true
	// b 2 true
}
