// Package goid recovers the calling goroutine's runtime id. Go has no
// thread-local storage, and the scheduler needs to answer "is the caller one
// of my worker goroutines" the same way the original asks "is this
// std::this_thread::get_id() in my worker map" — a stable per-goroutine key
// it can look up in a map populated once at worker startup. Parsing the id
// out of runtime.Stack is the usual way Go code fills that gap; it costs an
// allocation-free stack walk, not a syscall.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Get returns the id of the calling goroutine. The id is stable for the
// life of the goroutine and unique among currently live goroutines, but is
// an implementation detail of the runtime: nothing here interprets its
// value or persists it across a restart, only uses it as an opaque map key.
func Get() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}
