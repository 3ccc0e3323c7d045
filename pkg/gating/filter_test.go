package gating

import (
	"testing"

	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/stretchr/testify/assert"
)

func TestSceneFilter_NoRulesAllowsEverything(t *testing.T) {
	f := NewSceneFilter(nil, nil, nil, nil)
	assert.True(t, f.Allow(hub.SceneMeta{UID: "u1", Name: "Evening Relax"}))
}

func TestSceneFilter_ExcludeUIDWins(t *testing.T) {
	f := NewSceneFilter([]string{"u1"}, nil, nil, nil)
	assert.False(t, f.Allow(hub.SceneMeta{UID: "u1", Name: "Anything"}))
	assert.True(t, f.Allow(hub.SceneMeta{UID: "u2", Name: "Anything"}))
}

func TestSceneFilter_ExcludeLabelTakesPriorityOverInclude(t *testing.T) {
	f := NewSceneFilter(nil, []string{"noisy"}, []string{"noisy"}, nil)
	assert.False(t, f.Allow(hub.SceneMeta{Labels: []string{"noisy"}}))
}

func TestSceneFilter_IncludeLabelRestrictsToMatchingScenes(t *testing.T) {
	f := NewSceneFilter(nil, nil, []string{"validated"}, nil)
	assert.True(t, f.Allow(hub.SceneMeta{Labels: []string{"validated", "other"}}))
	assert.False(t, f.Allow(hub.SceneMeta{Labels: []string{"other"}}))
	assert.False(t, f.Allow(hub.SceneMeta{}))
}

func TestSceneFilter_NamePatternAllowList(t *testing.T) {
	f := NewSceneFilter(nil, nil, nil, []string{"^Evening .*"})
	assert.True(t, f.Allow(hub.SceneMeta{Name: "Evening Relax"}))
	assert.False(t, f.Allow(hub.SceneMeta{Name: "Morning Bright"}))
}

func TestSceneFilter_NamePatternIsAnchoredAtStart(t *testing.T) {
	f := NewSceneFilter(nil, nil, nil, []string{"Evening"})
	assert.True(t, f.Allow(hub.SceneMeta{Name: "Evening Relax"}))
	assert.False(t, f.Allow(hub.SceneMeta{Name: "Good Evening Scene"}))
}

func TestSceneFilter_InvalidPatternIsSkippedNotFatal(t *testing.T) {
	f := NewSceneFilter(nil, nil, nil, []string{"(unterminated", "^Evening .*"})
	assert.True(t, f.Allow(hub.SceneMeta{Name: "Evening Relax"}))
}

func TestSceneFilter_IncludeLabelsTakePriorityOverNamePatterns(t *testing.T) {
	f := NewSceneFilter(nil, nil, []string{"validated"}, []string{"^Evening .*"})
	// Name would match the pattern, but no include-label is present.
	assert.False(t, f.Allow(hub.SceneMeta{Name: "Evening Relax"}))
}
