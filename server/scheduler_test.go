package server

import "testing"

func TestSchedulerCadence(t *testing.T) {
	sc := NewScheduler(0.5, 2.0)

	var aiTicks, refreshes int
	var firstAI, firstRefresh int = -1, -1
	for frame := 0; frame < 100; frame++ { // 10 seconds at 0.1s frames
		runAI, refresh := sc.Advance(0.1)
		if refresh && !runAI {
			t.Fatalf("frame %d: refresh without an AI tick", frame)
		}
		if runAI {
			aiTicks++
			if firstAI < 0 {
				firstAI = frame
			}
		}
		if refresh {
			refreshes++
			if firstRefresh < 0 {
				firstRefresh = frame
			}
		}
	}

	if firstAI != firstRefresh {
		t.Errorf("first AI tick at frame %d but first refresh at %d", firstAI, firstRefresh)
	}
	// 0.1 does not sum exactly, so allow one tick of slack
	if aiTicks < 19 || aiTicks > 20 {
		t.Errorf("got %d AI ticks in 10s, want ~20", aiTicks)
	}
	if refreshes < 5 || refreshes > 6 {
		t.Errorf("got %d refreshes in 10s, want ~5", refreshes)
	}
}

func TestSchedulerSkipsBacklog(t *testing.T) {
	sc := NewScheduler(0.5, 2.0)
	runAI, refresh := sc.Advance(10)
	if !runAI || !refresh {
		t.Fatal("a long frame should still run one AI tick")
	}
	if runAI, _ := sc.Advance(0.1); runAI {
		t.Error("backlog was not dropped")
	}
}
