package parser

import (
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/onbeat/internal/game"
)

type Parser interface {
	Parse(file string) (*game.Song, error)
}

// ForFile picks the parser for a chart or sidecar file.
func ForFile(file string) Parser {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return &YAMLParser{}
	}
	return &DefaultParser{}
}
