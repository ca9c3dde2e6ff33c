package variant

import (
	"strings"

	"github.com/customchess/chessdb/internal/models"
)

// Option derivation over an in-memory catalog snapshot. This is the logic
// a storefront needs to build its customization form; serving it from the
// same package that validates writes keeps the advisory option sets and
// the authoritative resolver in lockstep.

// Group returns all catalog rows sharing the given piece name,
// case-insensitively, preserving catalog order.
func Group(pieces []models.ChessPiece, name string) []models.ChessPiece {
	target := strings.ToLower(name)
	var group []models.ChessPiece
	for _, piece := range pieces {
		if strings.ToLower(piece.Name) == target {
			group = append(group, piece)
		}
	}
	return group
}

// Colors returns the distinct lowercased colors across a variant group,
// in order of first appearance.
func Colors(group []models.ChessPiece) []string {
	seen := make(map[string]struct{})
	var colors []string
	for _, piece := range group {
		color := strings.ToLower(piece.PieceColor)
		if color == "" {
			continue
		}
		if _, ok := seen[color]; ok {
			continue
		}
		seen[color] = struct{}{}
		colors = append(colors, color)
	}
	return colors
}

// MaterialsFor returns the distinct lowercased materials among rows of
// the given color. An empty color means the whole group.
func MaterialsFor(group []models.ChessPiece, color string) []string {
	target := strings.ToLower(color)
	seen := make(map[string]struct{})
	var materials []string
	for _, piece := range group {
		if target != "" && strings.ToLower(piece.PieceColor) != target {
			continue
		}
		material := strings.ToLower(piece.Material)
		if material == "" {
			material = "wood"
		}
		if _, ok := seen[material]; ok {
			continue
		}
		seen[material] = struct{}{}
		materials = append(materials, material)
	}
	return materials
}

// ExactMatch returns the first row of the group matching both color and
// material, or nil. Duplicates are tolerated; the first match wins.
func ExactMatch(group []models.ChessPiece, color, material string) *models.ChessPiece {
	targetColor := strings.ToLower(color)
	targetMaterial := strings.ToLower(material)
	if targetMaterial == "" {
		targetMaterial = "wood"
	}
	for i := range group {
		if strings.ToLower(group[i].PieceColor) == targetColor &&
			strings.ToLower(group[i].Material) == targetMaterial {
			return &group[i]
		}
	}
	return nil
}

// Preview resolves the row to render for a selection: the exact
// color+material match, else the first row matching just the color, else
// the originally requested piece.
func Preview(group []models.ChessPiece, base *models.ChessPiece, color, material string) *models.ChessPiece {
	if exact := ExactMatch(group, color, material); exact != nil {
		return exact
	}
	targetColor := strings.ToLower(color)
	for i := range group {
		if strings.ToLower(group[i].PieceColor) == targetColor {
			return &group[i]
		}
	}
	return base
}

// MaterialOptionsFor filters the configured material options down to those
// available in the variant group for the chosen color. When nothing
// matches, the full configured set is offered.
func (c Config) MaterialOptionsFor(group []models.ChessPiece, color string) []MaterialOption {
	available := make(map[string]struct{})
	for _, material := range MaterialsFor(group, color) {
		available[material] = struct{}{}
	}
	var filtered []MaterialOption
	for _, option := range c.Materials {
		if _, ok := available[option.Value]; ok {
			filtered = append(filtered, option)
		}
	}
	if len(filtered) == 0 {
		return c.Materials
	}
	return filtered
}
