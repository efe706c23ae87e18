package main

import (
	"testing"
	"time"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	deb := newDebouncer(30 * time.Millisecond)
	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		deb.Do(func() { done <- struct{}{} })
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function never ran")
	}
	select {
	case <-done:
		t.Fatal("debounced function ran more than once")
	case <-time.After(100 * time.Millisecond):
	}
}
