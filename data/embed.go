package data

import (
	_ "embed"
)

//go:embed seed/chess.json
var SeedChessJSON []byte
