// Package color holds the RGB palette shared by entities and the message log.
package color

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String renders the colour as a hex triplet, e.g. "#bf0000".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// UnmarshalYAML accepts a three-element sequence such as [0, 191, 255].
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var rgb []int
	if err := node.Decode(&rgb); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if len(rgb) != 3 {
		return fmt.Errorf("color: expected [r, g, b], got %d components", len(rgb))
	}
	for _, v := range rgb {
		if v < 0 || v > 255 {
			return fmt.Errorf("color: component %d out of range [0, 255]", v)
		}
	}
	*c = Color{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2])}
	return nil
}

// MarshalYAML writes the colour back as a flow sequence.
func (c Color) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []uint8{c.R, c.G, c.B} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return node, nil
}

var (
	White = Color{0xFF, 0xFF, 0xFF}
	Black = Color{0x00, 0x00, 0x00}
	Red   = Color{0xFF, 0x00, 0x00}

	PlayerAtk       = Color{0xE0, 0xE0, 0xE0}
	EnemyAtk        = Color{0xFF, 0xC0, 0xC0}
	NeedsTarget     = Color{0x3F, 0xFF, 0xFF}
	StatusEffect    = Color{0x3F, 0xFF, 0x3F}
	Descend         = Color{0x9F, 0x3F, 0xFF}
	PlayerDie       = Color{0xFF, 0x30, 0x30}
	EnemyDie        = Color{0xFF, 0xA0, 0x30}
	Invalid         = Color{0xFF, 0xFF, 0x00}
	Impossible      = Color{0x80, 0x80, 0x80}
	Error           = Color{0xFF, 0x40, 0x40}
	Welcome         = Color{0x20, 0xA0, 0xFF}
	HealthRecovered = Color{0x00, 0xFF, 0x00}

	// Corpse is the colour an actor takes on at death.
	Corpse = Color{191, 0, 0}
)
