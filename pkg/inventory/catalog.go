package inventory

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// catalogDocument mirrors the on-disk shape of a single catalog file:
// resources.scenes.items[] with id, metadata.name, and actions[].
type catalogDocument struct {
	Resources struct {
		Scenes struct {
			Items []rawScene `yaml:"items"`
		} `yaml:"scenes"`
	} `yaml:"resources"`
}

type rawScene struct {
	ID       string `yaml:"id"`
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
	Actions yaml.Node `yaml:"actions"`
}

type rawAction struct {
	Target struct {
		RID string `yaml:"rid"`
	} `yaml:"target"`
	Action struct {
		On struct {
			On bool `yaml:"on"`
		} `yaml:"on"`
		Dimming struct {
			Brightness *float64 `yaml:"brightness"`
		} `yaml:"dimming"`
		Color struct {
			XY *struct {
				X float64 `yaml:"x"`
				Y float64 `yaml:"y"`
			} `yaml:"xy"`
		} `yaml:"color"`
		ColorTemperature struct {
			Mirek *int `yaml:"mirek"`
		} `yaml:"color_temperature"`
	} `yaml:"action"`
}

// toScene converts a rawScene into a Scene, detecting the legacy variant
// where actions[] is a sequence of opaque strings rather than structured
// action objects.
func (r rawScene) toScene() (Scene, error) {
	scene := Scene{ID: r.ID, Name: r.Metadata.Name}

	if r.Actions.Kind != yaml.SequenceNode {
		return scene, fmt.Errorf("scene %q: actions is not a sequence", r.ID)
	}

	if isLegacySequence(r.Actions) {
		scene.Legacy = true
		return scene, nil
	}

	for i, node := range r.Actions.Content {
		var raw rawAction
		if err := node.Decode(&raw); err != nil {
			return scene, fmt.Errorf("scene %q: action %d: %w", r.ID, i, err)
		}
		scene.Actions = append(scene.Actions, raw.toAction())
	}
	return scene, nil
}

// isLegacySequence reports whether every element of a YAML sequence is a
// scalar (opaque string) rather than a mapping. An empty sequence is not
// legacy — it is simply a scene with no actions.
func isLegacySequence(seq yaml.Node) bool {
	if len(seq.Content) == 0 {
		return false
	}
	for _, item := range seq.Content {
		if item.Kind != yaml.ScalarNode {
			return false
		}
	}
	return true
}

func (r rawAction) toAction() Action {
	a := Action{
		TargetRID: r.Target.RID,
		On:        r.Action.On.On,
		Brightness: r.Action.Dimming.Brightness,
		Mirek:      r.Action.ColorTemperature.Mirek,
	}
	if xy := r.Action.Color.XY; xy != nil {
		a.Color = &XY{X: xy.X, Y: xy.Y}
	}
	return a
}
