package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var group SingleFlight
	var executions atomic.Int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	var shared atomic.Int32
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, wasShared := group.Do("key", func() (any, error) {
				executions.Add(1)
				time.Sleep(10 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if got, _ := val.(int); got != 42 {
				t.Errorf("unexpected value: got=%v want=42", val)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("fn executed %d times, want 1", got)
	}
	if got := shared.Load(); got != workers-1 {
		t.Fatalf("%d callers shared the result, want %d", got, workers-1)
	}
}

func TestSingleFlight_IndependentKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var group SingleFlight
	var executions atomic.Int32

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			_, _, _ = group.Do(k, func() (any, error) {
				executions.Add(1)
				return k, nil
			})
		}(key)
	}
	wg.Wait()

	if got := executions.Load(); got != 3 {
		t.Fatalf("fn executed %d times, want 3", got)
	}
}

func TestSingleFlight_KeyReusableAfterCompletion(t *testing.T) {
	t.Parallel()

	var group SingleFlight
	var executions atomic.Int32

	for i := 0; i < 2; i++ {
		_, _, _ = group.Do("key", func() (any, error) {
			executions.Add(1)
			return nil, nil
		})
	}

	if got := executions.Load(); got != 2 {
		t.Fatalf("fn executed %d times, want 2", got)
	}
}
