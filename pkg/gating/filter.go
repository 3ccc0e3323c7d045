package gating

import (
	"regexp"
	"slices"

	"github.com/codeready-toolchain/scene-validator/pkg/hub"
)

// SceneFilter evaluates the optional scene inclusion/exclusion rules. Name
// patterns are compiled once at construction rather than per comparison.
type SceneFilter struct {
	excludeUIDs   []string
	excludeLabels []string
	includeLabels []string
	namePatterns  []*regexp.Regexp
}

// NewSceneFilter compiles every name pattern. A pattern that fails to
// compile is dropped (config.Validate already rejects invalid patterns at
// startup, so this should not occur with a validated Config).
func NewSceneFilter(excludeUIDs, excludeLabels, includeLabels, namePatterns []string) *SceneFilter {
	f := &SceneFilter{
		excludeUIDs:   excludeUIDs,
		excludeLabels: excludeLabels,
		includeLabels: includeLabels,
	}
	for _, pattern := range namePatterns {
		// Anchored at the start to match Python's re.match semantics
		// (unanchored Go regexps would admit "Good Evening Scene" for "Evening").
		compiled, err := regexp.Compile("^(?:" + pattern + ")")
		if err != nil {
			continue
		}
		f.namePatterns = append(f.namePatterns, compiled)
	}
	return f
}

// Allow applies, in order: UID exclusion, label exclusion (takes priority),
// label inclusion, then — only when no include-labels are configured — the
// name pattern allow-list.
func (f *SceneFilter) Allow(meta hub.SceneMeta) bool {
	if meta.UID != "" && slices.Contains(f.excludeUIDs, meta.UID) {
		return false
	}

	if len(f.excludeLabels) > 0 {
		for _, label := range meta.Labels {
			if slices.Contains(f.excludeLabels, label) {
				return false
			}
		}
	}

	if len(f.includeLabels) > 0 {
		hasLabel := false
		for _, label := range meta.Labels {
			if slices.Contains(f.includeLabels, label) {
				hasLabel = true
				break
			}
		}
		return hasLabel
	}

	if len(f.namePatterns) == 0 {
		return true
	}
	for _, pattern := range f.namePatterns {
		if pattern.MatchString(meta.Name) {
			return true
		}
	}
	return false
}
