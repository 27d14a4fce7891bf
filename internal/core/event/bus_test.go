package event

import "testing"

func TestBusDoubleBuffering(t *testing.T) {
	b := NewBus()

	var got []MobDiscovered
	Subscribe(b, func(ev MobDiscovered) { got = append(got, ev) })

	Emit(b, MobDiscovered{PlayerID: "p1", Kind: "wild:wolf"})

	// 同一 tick 內發出的事件要等下一次 swap 才可見
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("dispatched %d events before swap, want 0", len(got))
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0].Kind != "wild:wolf" {
		t.Fatalf("got = %v, want one wild:wolf event", got)
	}

	// swap 清空 back buffer:不重複投遞
	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatalf("events redelivered: %d", len(got))
	}
}

func TestBusTypedRouting(t *testing.T) {
	b := NewBus()

	discovered := 0
	completed := 0
	Subscribe(b, func(MobDiscovered) { discovered++ })
	Subscribe(b, func(CompendiumCompleted) { completed++ })

	Emit(b, MobDiscovered{})
	Emit(b, MobDiscovered{})
	Emit(b, CompendiumCompleted{})
	b.SwapBuffers()
	b.DispatchAll()

	if discovered != 2 || completed != 1 {
		t.Fatalf("discovered = %d, completed = %d", discovered, completed)
	}
}
