// Package strategy defines the fixed ladder of layout-compression strategies used to fit a résumé on one page.
package strategy

import (
	"fmt"
	"strings"
)

// Strategy is one rung of the compression ladder. The zero value is Normal.
type Strategy int

const (
	// Normal uses full-size type and generous spacing.
	Normal Strategy = iota
	// Compact trims spacing and text budgets.
	Compact
	// Ultra is the most aggressive strategy that still reads comfortably.
	Ultra
	// Extreme shrinks type to the limit of legibility.
	Extreme
	// Windows compensates for hosts whose font rasterizer lays text out taller.
	Windows
)

// Forced is the strategy rendered unconditionally when nothing fits.
const Forced = Ultra

var names = [...]string{"normal", "compact", "ultra", "extreme", "windows"}

// All returns the strategies in order of increasing aggressiveness.
func All() []Strategy {
	return []Strategy{Normal, Compact, Ultra, Extreme, Windows}
}

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	if s < Normal || s > Windows {
		return names[Normal]
	}
	return names[s]
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	return s >= Normal && s <= Windows
}

// Parse maps a wire name to a Strategy. Unknown names map to Normal.
func Parse(name string) Strategy {
	s, err := ParseStrict(name)
	if err != nil {
		return Normal
	}
	return s
}

// ParseStrict maps a wire name to a Strategy and reports unknown names.
func ParseStrict(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal":
		return Normal, nil
	case "compact":
		return Compact, nil
	case "ultra":
		return Ultra, nil
	case "extreme":
		return Extreme, nil
	case "windows":
		return Windows, nil
	default:
		return Normal, fmt.Errorf("unknown strategy %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to Normal.
func (s *Strategy) UnmarshalText(text []byte) error {
	*s = Parse(string(text))
	return nil
}
