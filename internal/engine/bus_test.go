package engine

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSyncBusPriorityOrder(t *testing.T) {
	bus := NewSyncBus()
	var order []string

	bus.Subscribe(KindPlay, PriorityLow, func(Event) { order = append(order, "low") })
	bus.Subscribe(KindPlay, PriorityImportant, func(Event) { order = append(order, "important") })
	bus.Subscribe(KindPlay, PriorityNormal, func(Event) { order = append(order, "normal-a") })
	bus.Subscribe(KindPlay, PriorityNormal, func(Event) { order = append(order, "normal-b") })
	bus.Subscribe(KindPlay, PriorityHigh, func(Event) { order = append(order, "high") })

	bus.Publish(PlayEvent{})

	want := []string{"important", "high", "normal-a", "normal-b", "low"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSyncBusRoutesByKind(t *testing.T) {
	bus := NewSyncBus()
	var plays, updates int

	bus.Subscribe(KindPlay, PriorityNormal, func(Event) { plays++ })
	bus.Subscribe(KindUpdate, PriorityNormal, func(Event) { updates++ })

	bus.Publish(PlayEvent{})
	bus.Publish(UpdateEvent{})
	bus.Publish(UpdateEvent{})

	if plays != 1 || updates != 2 {
		t.Fatalf("plays = %d, updates = %d; want 1, 2", plays, updates)
	}
}

func TestAsyncBusDeliversOffCaller(t *testing.T) {
	bus := NewBus()
	done := make(chan PlayerID, 1)

	bus.Subscribe(KindPlayerJoin, PriorityNormal, func(e Event) {
		done <- e.(PlayerJoinEvent).Player
	})
	bus.Publish(PlayerJoinEvent{Player: "alice"})

	select {
	case p := <-done:
		if p != "alice" {
			t.Fatalf("player = %q, want alice", p)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestFilterChainAllMustPermit(t *testing.T) {
	chain := NewFilterChain()
	chain.Append(PriorityNormal, func(a Action) bool { return a.Type != ActionBreak })
	chain.Append(PriorityNormal, func(a Action) bool { return a.Team != 3 })

	tests := []struct {
		name   string
		action Action
		want   bool
	}{
		{"allowed", Action{Type: ActionBuild, Team: 7}, true},
		{"first filter denies", Action{Type: ActionBreak, Team: 7}, false},
		{"second filter denies", Action{Type: ActionBuild, Team: 3}, false},
	}
	for _, tc := range tests {
		if got := chain.Permit(tc.action); got != tc.want {
			t.Fatalf("%s: Permit = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterChainShortCircuits(t *testing.T) {
	chain := NewFilterChain()
	var secondRan bool
	chain.Append(PriorityImportant, func(Action) bool { return false })
	chain.Append(PriorityNormal, func(Action) bool { secondRan = true; return true })

	if chain.Permit(Action{Type: ActionBuild}) {
		t.Fatal("denied action permitted")
	}
	if secondRan {
		t.Fatal("later filter ran after a denial")
	}
}

func TestSerialExecutorRunsSubmittedWork(t *testing.T) {
	exec := NewSerialExecutor(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = exec.Run(ctx) }()

	var mu sync.Mutex
	var values []int
	for i := 0; i < 10; i++ {
		i := i
		exec.Submit(func() {
			mu.Lock()
			values = append(values, i)
			mu.Unlock()
		})
	}

	var done bool
	if err := exec.Do(ctx, func() { done = true }); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !done {
		t.Fatal("Do returned before the work ran")
	}

	// Work runs in submission order on one goroutine.
	mu.Lock()
	defer mu.Unlock()
	for i, v := range values {
		if v != i {
			t.Fatalf("values = %v, want ascending order", values)
		}
	}
}

func TestSerialExecutorDoHonorsContext(t *testing.T) {
	exec := NewSerialExecutor(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No Run loop is draining the queue; a canceled context must still
	// unblock the caller.
	exec.Submit(func() {})
	if err := exec.Do(ctx, func() {}); err == nil {
		t.Fatal("Do ignored a canceled context")
	}
}
