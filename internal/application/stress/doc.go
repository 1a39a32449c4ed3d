// Package stress implements the worker pool behind the CPU-burn endpoint.
//
// The pool manages a fixed number of goroutines so concurrent stress
// requests occupy workers instead of spawning unbounded CPU burners, and
// never stall unrelated request handling.
package stress
