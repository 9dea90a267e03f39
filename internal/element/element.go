package element

import "strings"

// Element identifies an elemental affinity carried by items and combatants.
type Element uint8

const (
	None Element = iota
	Fire
	Frost
	Thunder
	Nature

	count
)

// All lists every real element in declaration order (None excluded).
var All = [...]Element{Fire, Frost, Thunder, Nature}

// String returns the lowercase config name of the element.
func (e Element) String() string {
	switch e {
	case Fire:
		return "fire"
	case Frost:
		return "frost"
	case Thunder:
		return "thunder"
	case Nature:
		return "nature"
	default:
		return "none"
	}
}

// Parse converts a config name into an Element.
// Unknown or empty names resolve to None.
func Parse(s string) Element {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fire", "flame", "hot":
		return Fire
	case "frost", "ice", "cold":
		return Frost
	case "thunder", "lightning", "shock":
		return Thunder
	case "nature", "wood":
		return Nature
	default:
		return None
	}
}

// Valid reports whether e is a real element.
func (e Element) Valid() bool {
	return e > None && e < count
}

// IsHot reports whether e is the hot element.
func (e Element) IsHot() bool { return e == Fire }

// IsCold reports whether e is the cold element.
func (e Element) IsCold() bool { return e == Frost }

// IsColdOrCharged reports whether wetness amplifies e.
func (e Element) IsColdOrCharged() bool { return e == Frost || e == Thunder }

// UnmarshalText lets Element be used directly in YAML/env configs.
func (e *Element) UnmarshalText(text []byte) error {
	*e = Parse(string(text))
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
