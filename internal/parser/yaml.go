package parser

import (
	"io/ioutil"

	"git.lost.host/meutraa/onbeat/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAMLParser reads a song.yaml sidecar, for songs without a chart.
type YAMLParser struct{}

type yamlSong struct {
	Title  string  `yaml:"title"`
	Artist string  `yaml:"artist"`
	Music  string  `yaml:"music"`
	BPM    float64 `yaml:"bpm"`
	Offset float64 `yaml:"offset"`
}

func (p *YAMLParser) Parse(file string) (*game.Song, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to read song")
	}
	var s yamlSong
	if err := yaml.Unmarshal(data, &s); nil != err {
		return nil, errors.Wrapf(err, "unable to parse %v", file)
	}
	if s.BPM == 0 {
		return nil, errors.Errorf("no bpm in %v", file)
	}
	return &game.Song{
		Title:  s.Title,
		Artist: s.Artist,
		Music:  s.Music,
		Source: file,
		BPM:    s.BPM,
		Offset: s.Offset,
	}, nil
}
