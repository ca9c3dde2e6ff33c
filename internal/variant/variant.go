// Package variant holds the validation and option-derivation rules that
// decide whether a (base piece, color, material, board) selection is a
// purchasable configuration, and what price/image it resolves to. The same
// rules drive both write validation and the options endpoint, so the two
// can never drift.
package variant

import "strings"

// Strategy selects how create/update validation resolves a selection
// against the catalog.
type Strategy string

const (
	// StrategyStrict requires a catalog row matching the exact
	// (base piece id, color, material) triple.
	StrategyStrict Strategy = "strict"

	// StrategyMaterialBoard validates the material/board pairing against a
	// fixed compatibility table and only requires the base piece to exist.
	StrategyMaterialBoard Strategy = "material-board"
)

// ParseStrategy maps a configuration string to a Strategy.
// Unknown values fall back to StrategyStrict.
func ParseStrategy(s string) Strategy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StrategyMaterialBoard):
		return StrategyMaterialBoard
	default:
		return StrategyStrict
	}
}

// BoardOption is a selectable board theme.
type BoardOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
	Image string `json:"image"`
}

// MaterialOption is a selectable piece finish.
type MaterialOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Config carries the closed board/material sets and the compatibility
// mapping. It is injected at startup rather than read from package-level
// literals so the transport layer and the resolver always agree.
type Config struct {
	Strategy       Strategy
	Boards         []BoardOption
	BoardAliases   map[string]string
	Materials      []MaterialOption
	MaterialBoards map[string]string
}

// DefaultConfig returns the shipped board and material sets.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyStrict,
		Boards: []BoardOption{
			{ID: "classic", Value: "green", Label: "Classic", Image: "/boards/classic.png"},
			{ID: "black-white", Value: "black-white", Label: "Black/White", Image: "/boards/black-white.jpg"},
			{ID: "wooden", Value: "wooden", Label: "Wooden", Image: "/boards/wooden.webp"},
		},
		BoardAliases: map[string]string{
			"classic": "green",
		},
		Materials: []MaterialOption{
			{Value: "glass", Label: "Glass"},
			{Value: "stone", Label: "Stone"},
			{Value: "wood", Label: "Wood"},
		},
		MaterialBoards: map[string]string{
			"glass": "green",
			"stone": "black-white",
			"wood":  "wooden",
		},
	}
}

// NormalizeBoard lowercases the input, resolves aliases, and reports
// whether the result is a member of the closed board set.
func (c Config) NormalizeBoard(board string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(board))
	if alias, ok := c.BoardAliases[normalized]; ok {
		normalized = alias
	}
	for _, option := range c.Boards {
		if option.Value == normalized {
			return normalized, true
		}
	}
	return normalized, false
}

// NormalizeMaterial lowercases the input and reports whether it is a
// member of the closed material set.
func (c Config) NormalizeMaterial(material string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(material))
	for _, option := range c.Materials {
		if option.Value == normalized {
			return normalized, true
		}
	}
	return normalized, false
}

// ActiveBoard returns the board option for the given value, falling back
// to the first option when the value is unknown.
func (c Config) ActiveBoard(value string) BoardOption {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if alias, ok := c.BoardAliases[normalized]; ok {
		normalized = alias
	}
	for _, option := range c.Boards {
		if option.Value == normalized || option.ID == normalized {
			return option
		}
	}
	return c.Boards[0]
}
