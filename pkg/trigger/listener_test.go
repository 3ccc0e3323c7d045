package trigger

import (
	"testing"
	"time"

	"github.com/codeready-toolchain/scene-validator/pkg/gating"
	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGate(t *testing.T, sched scheduler.Scheduler) *gating.Gate {
	t.Helper()
	return gating.NewGate(gating.Config{
		DebounceWindow:   30 * time.Second,
		MaxGlobalPerMin:  20,
		MaxScenePerMin:   5,
		TransitionDelay:  5 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		BreakerTimeout:   300 * time.Second,
	}, sched, nil)
}

func TestListener_QualifyingChangeReachesGate(t *testing.T) {
	sched := scheduler.NewVirtual(time.Now())
	fakeHub := hub.NewFake()
	fakeHub.SetSceneMeta("scene.evening_relax", hub.SceneMeta{UID: "u1", Name: "Evening Relax"})

	var accepted []string
	l := &Listener{
		Hub:       fakeHub,
		Gate:      testGate(t, sched),
		Scheduler: sched,
		OnAccept:  func(c gating.Candidate) { accepted = append(accepted, c.SceneEntityID) },
	}
	require.NoError(t, l.Start(nil))

	fakeHub.Trigger("scene.evening_relax", "2026-01-01T00:00:00", "2026-01-01T00:00:05")

	sched.Drain()
	sched.Advance(5 * time.Second)
	assert.Equal(t, []string{"scene.evening_relax"}, accepted)
}

func TestListener_IgnoresUnavailableState(t *testing.T) {
	sched := scheduler.NewVirtual(time.Now())
	fakeHub := hub.NewFake()

	var accepted []string
	l := &Listener{
		Hub:       fakeHub,
		Gate:      testGate(t, sched),
		Scheduler: sched,
		OnAccept:  func(c gating.Candidate) { accepted = append(accepted, c.SceneEntityID) },
	}
	require.NoError(t, l.Start(nil))

	fakeHub.Trigger("scene.evening_relax", "2026-01-01T00:00:00", "unavailable")

	sched.Drain()
	assert.Empty(t, accepted)
}

func TestListener_IgnoresUnchangedState(t *testing.T) {
	sched := scheduler.NewVirtual(time.Now())
	fakeHub := hub.NewFake()

	var accepted []string
	l := &Listener{
		Hub:       fakeHub,
		Gate:      testGate(t, sched),
		Scheduler: sched,
		OnAccept:  func(c gating.Candidate) { accepted = append(accepted, c.SceneEntityID) },
	}
	require.NoError(t, l.Start(nil))

	fakeHub.Trigger("scene.evening_relax", "same", "same")

	sched.Drain()
	assert.Empty(t, accepted)
}

func TestListener_SceneFilterRejectionDoesNotPanic(t *testing.T) {
	sched := scheduler.NewVirtual(time.Now())
	fakeHub := hub.NewFake()
	fakeHub.SetSceneMeta("scene.blocked", hub.SceneMeta{UID: "blocked-uid"})

	gate := gating.NewGate(gating.Config{
		DebounceWindow:   30 * time.Second,
		MaxGlobalPerMin:  20,
		MaxScenePerMin:   5,
		TransitionDelay:  5 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		BreakerTimeout:   300 * time.Second,
	}, sched, gating.NewSceneFilter([]string{"blocked-uid"}, nil, nil, nil))

	var accepted []string
	l := &Listener{
		Hub:       fakeHub,
		Gate:      gate,
		Scheduler: sched,
		OnAccept:  func(c gating.Candidate) { accepted = append(accepted, c.SceneEntityID) },
	}
	require.NoError(t, l.Start(nil))

	fakeHub.Trigger("scene.blocked", "off", "on")

	sched.Drain()
	sched.Advance(5 * time.Second)
	assert.Empty(t, accepted)
}
