package maze

import (
	"runtime"
	"strings"

	"github.com/fruitnuke/maze/pkg/errors"
)

// makeSlice allocates a zeroed slice of n elements. A length the runtime
// refuses to allocate is reported as OUT_OF_MEMORY instead of a panic.
func makeSlice[T any](n int, what string) (s []T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if re, ok := r.(runtime.Error); ok && strings.Contains(re.Error(), "makeslice") {
			s, err = nil, errors.Wrap(errors.ErrCodeOutOfMemory, re, "%s of %d elements", what, n)
			return
		}
		panic(r)
	}()
	return make([]T, n), nil
}
