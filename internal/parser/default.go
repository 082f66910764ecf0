package parser

import (
	"io/ioutil"
	"sort"
	"strconv"
	"strings"

	"git.lost.host/meutraa/onbeat/internal/game"
	"github.com/pkg/errors"
)

// DefaultParser reads the header of a StepMania .sm chart. The note data is
// ignored, every beat of the song is a target.
type DefaultParser struct{}

type bpm struct {
	StartingBeat float64
	Value        float64
}

func (p *DefaultParser) parseBPMs(value string) ([]bpm, error) {
	value = strings.ReplaceAll(value, "\n", "")
	bpms := []bpm{}
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		as := strings.Split(pair, "=")
		if len(as) != 2 {
			return nil, errors.Errorf("malformed bpm %q", pair)
		}
		sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
		if nil != err {
			return nil, errors.Wrapf(err, "bpm starting beat %q", as[0])
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
		if nil != err {
			return nil, errors.Wrapf(err, "bpm value %q", as[1])
		}
		bpms = append(bpms, bpm{StartingBeat: sb, Value: v})
	}
	sort.SliceStable(bpms, func(i, j int) bool {
		return bpms[i].StartingBeat < bpms[j].StartingBeat
	})
	return bpms, nil
}

func (p *DefaultParser) Parse(file string) (*game.Song, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to read chart")
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	meta := strings.SplitN(str, "#NOTES:", 2)[0]

	song := &game.Song{Source: file}
	bpms := []bpm{}

	for _, mdl := range strings.Split(meta, "#") {
		mdl = strings.TrimSpace(mdl)
		i := strings.Index(mdl, ":")
		if i < 0 {
			continue
		}
		key := strings.ToUpper(mdl[:i])
		value := strings.TrimSpace(strings.TrimSuffix(mdl[i+1:], ";"))
		switch key {
		case "TITLE":
			song.Title = value
		case "ARTIST":
			song.Artist = value
		case "MUSIC":
			song.Music = value
		case "OFFSET":
			// Beat 0 is at -OFFSET seconds, which is what the phase offset means
			song.Offset, err = strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, errors.Wrapf(err, "offset %q", value)
			}
		case "BPMS":
			bpms, err = p.parseBPMs(value)
			if nil != err {
				return nil, err
			}
		}
	}

	if len(bpms) == 0 {
		return nil, errors.Errorf("no #BPMS in %v", file)
	}
	song.BPM = bpms[0].Value
	song.BPMChanges = len(bpms) - 1

	return song, nil
}
