package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"git.lost.host/meutraa/onbeat/internal/audio"
	"git.lost.host/meutraa/onbeat/internal/beat"
	"git.lost.host/meutraa/onbeat/internal/clock"
	"git.lost.host/meutraa/onbeat/internal/config"
	"git.lost.host/meutraa/onbeat/internal/game"
	"git.lost.host/meutraa/onbeat/internal/input"
	"git.lost.host/meutraa/onbeat/internal/parser"
	"git.lost.host/meutraa/onbeat/internal/render"
	"git.lost.host/meutraa/onbeat/internal/score"
	"git.lost.host/meutraa/onbeat/internal/session"
	"git.lost.host/meutraa/onbeat/internal/theme"
)

const (
	judgementFrames = 60
	missFrames      = 120
)

type Program struct {
	Options  *config.Options
	Parser   parser.Parser
	Scorer   score.Scorer
	Theme    theme.Theme
	Renderer render.Renderer

	files      parser.Files
	song       *game.Song
	config     beat.Config
	judgements []game.Judgement

	session *session.Session
	clock   clock.Clock
	length  time.Duration
	now     func() time.Time

	middle, centre int
	sideCol        int
}

func (p *Program) Init() error {
	var err error
	p.files, err = parser.Find(p.Options.Directory)
	if nil != err {
		return err
	}
	if nil == p.Parser {
		p.Parser = parser.ForFile(p.files.Chart)
	}
	if nil == p.Scorer {
		p.Scorer = &score.DefaultScorer{}
	}
	if nil == p.Theme {
		p.Theme = &theme.DefaultTheme{}
	}
	if nil == p.Renderer {
		p.Renderer = render.NewDefaultRenderer()
	}

	p.song, err = p.Parser.Parse(p.files.Chart)
	if nil != err {
		return err
	}
	if p.song.BPMChanges > 0 {
		log.Printf("%v changes tempo %v times, judging at %v bpm\n", p.song, p.song.BPMChanges, p.song.BPM)
	}

	p.config, err = p.Options.BeatConfig(p.song)
	if nil != err {
		return err
	}
	p.judgements = p.Options.Judgements()

	return p.Scorer.Init(p.Options.Database)
}

func (p *Program) Deinit() {
	p.Scorer.Deinit()
}

func (p *Program) openInput() (input.Source, error) {
	kb, err := input.NewKeyboard(p.Options.Keys)
	if nil != err {
		return nil, err
	}
	sources := []input.Source{kb}
	if p.Options.MIDI != "" {
		m, err := input.NewMIDI(p.Options.MIDI)
		if nil != err {
			closeAll(sources)
			return nil, err
		}
		sources = append(sources, m)
	}
	if p.Options.Device != "" {
		e, err := input.NewEvdev(p.Options.Device)
		if nil != err {
			closeAll(sources)
			return nil, err
		}
		sources = append(sources, e)
	}
	if p.Options.Serial != "" {
		s, err := input.NewSerial(p.Options.Serial, p.Options.Baud)
		if nil != err {
			closeAll(sources)
			return nil, err
		}
		sources = append(sources, s)
	}
	return input.Merge(sources...), nil
}

func closeAll(sources []input.Source) {
	for _, s := range sources {
		if err := s.Close(); nil != err {
			log.Println("unable to close input", err)
		}
	}
}

func (p *Program) Resize() {
	columns, rows := p.Renderer.Size()
	p.middle = columns >> 1
	p.centre = rows >> 1
	p.sideCol = p.middle - 48
	if p.sideCol < 2 {
		p.sideCol = 2
	}
}

func (p *Program) Play() error {
	audioFile := parser.Music(p.Options.Directory, p.song.Music, p.files)
	log.Printf("Opening %v (%v)\n", audioFile, p.files.Chart)
	streamer, format, err := audio.Decode(audioFile)
	if nil != err {
		return err
	}
	defer streamer.Close()

	source, err := p.openInput()
	if nil != err {
		return err
	}
	defer func() {
		if err := source.Close(); nil != err {
			log.Println("unable to close input", err)
		}
	}()

	stream := clock.NewStream(streamer, format, clock.NewWall(p.Options.Delay, p.Options.Rate))
	p.clock = stream
	p.length = stream.Length()
	p.session, err = session.New(p.config, stream, p.judgements)
	if nil != err {
		return err
	}

	done, err := audio.Play(streamer, format, p.Options.Rate, p.Options.Delay)
	if nil != err {
		return err
	}

	if err := p.Renderer.Init(); nil != err {
		return err
	}
	p.Resize()

	presses := source.Presses()
	p.Renderer.RenderLoop(p.Options.Delay, p.Options.FramePeriod, func(_ time.Duration) bool {
		select {
		case <-done:
			return false
		default:
		}

		// get the presses that occured so far
		for len(presses) > 0 {
			press := <-presses
			if press.Quit {
				return false
			}
			p.Update(p.session.PressAt(press.Key, p.pressTime(press)))
		}
		p.Update(p.session.Advance())
		p.Render()
		return true
	})

	if err := p.Renderer.Deinit(); nil != err {
		log.Println("unable to restore terminal", err)
	}

	p.printStats()
	return p.save(stream.Elapsed())
}

// pressTime is the song time a press happened at. Presses wait in their
// channel until the next frame, that wait is taken off the clock reading.
func (p *Program) pressTime(press input.Press) time.Duration {
	elapsed := p.clock.Elapsed()
	if press.At.IsZero() {
		return elapsed
	}
	now := p.now
	if nil == now {
		now = time.Now
	}
	waited := now().Sub(press.At)
	if waited <= 0 {
		return elapsed
	}
	return elapsed - time.Duration(float64(waited)*p.Options.Rate)
}

func (p *Program) save(length time.Duration) error {
	inputs := p.session.Inputs()
	if len(inputs) == 0 {
		return nil
	}
	return p.Scorer.Save(p.song, &score.History{
		Inputs:   &inputs,
		Rate:     p.Options.Rate,
		Config:   p.config,
		Length:   length,
		PlayedAt: time.Now(),
	})
}

// Update shows the outcome of presses and closed beats.
func (p *Program) Update(events []session.Event) {
	for _, e := range events {
		switch e.Kind {
		case session.Hit:
			log.Printf("ON! beat %v %+v\n", e.Beat, e.Error)
			if !e.Counts {
				continue
			}
			p.Renderer.AddDecoration(p.centre+2, p.middle-6, p.Theme.RenderJudgement(e.Judgement), judgementFrames)
			col := p.middle + int(e.Error/(10*time.Millisecond))
			p.Renderer.AddDecoration(p.centre+4, col, "|", missFrames)
		case session.OffBeat:
			log.Printf("OFF! beat %v %+v\n", e.Beat, e.Error)
			p.Renderer.AddDecoration(p.centre+2, p.middle, p.Theme.RenderOffBeat(), judgementFrames)
		case session.Duplicate:
			log.Printf("OFF! beat %v already hit\n", e.Beat)
		case session.Miss:
			log.Printf("missed beat %v\n", e.Beat)
			p.Renderer.AddDecoration(p.centre-2, p.middle+2*(e.Beat%game.BeatsPerMeasure)-3, p.Theme.RenderMiss(), missFrames)
		}
	}
}

func (p *Program) Render() {
	r := p.Renderer
	elapsed := p.clock.Elapsed()

	// Beat pulse for the current measure
	j := p.config.Judge(elapsed.Seconds())
	first := j.Beat - j.Beat%game.BeatsPerMeasure
	for i := 0; i < game.BeatsPerMeasure; i++ {
		r.Fill(p.centre, p.middle+2*i-3, p.Theme.RenderBeat(first+i, j.OnBeat && first+i == j.Beat))
	}

	if p.length > 0 && elapsed > 0 {
		columns, _ := r.Size()
		progress := int(float64(columns) * float64(elapsed) / float64(p.length))
		if progress > columns {
			progress = columns
		}
		r.Fill(1, 1, strings.Repeat("━", progress))
	}

	st := p.session.Stats()
	r.Fill(10, p.sideCol, fmt.Sprintf("   Error dt:  %6.0f ms", ms(st.TotalError)))
	r.Fill(11, p.sideCol, fmt.Sprintf("      Stdev:  %6.2f ms", ms(st.Stdev)))
	r.Fill(12, p.sideCol, fmt.Sprintf("       Mean:  %6.2f ms", ms(st.Mean)))
	r.Fill(13, p.sideCol, fmt.Sprintf("       Hits:  %6v", st.Hits))
	r.Fill(14, p.sideCol, fmt.Sprintf("   Off beat:  %6v", st.OffBeat))
	r.Fill(15, p.sideCol, fmt.Sprintf(" Duplicates:  %6v", st.Duplicates))
	for i, judgement := range p.judgements {
		r.FillColor(18+i, p.sideCol, judgement.Color, fmt.Sprintf("%11v:  %6v", judgement.Name, st.Counts[i]))
	}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (p *Program) printStats() {
	st := p.session.Stats()
	fmt.Printf("%v\n", p.song)
	fmt.Printf("hits %v, misses %v, off beat %v, mean %.2f ms, stdev %.2f ms\n",
		st.Hits, st.Misses, st.OffBeat, ms(st.Mean), ms(st.Stdev))
}

// History lists the saved plays of the song, judged again with the current
// timing tiers.
func (p *Program) History(w io.Writer) error {
	histories, err := p.Scorer.Load(p.song)
	if nil != err {
		return err
	}
	fmt.Fprintf(w, "%v\n", p.song)
	if len(histories) == 0 {
		fmt.Fprintln(w, "no saved plays")
		return nil
	}
	fmt.Fprintf(w, "%-17v %5v %6v %6v %6v %9v\n", "played", "rate", "hits", "misses", "off", "error")
	for i := range histories {
		h := &histories[i]
		sc, err := p.Scorer.Score(h, p.judgements)
		if nil != err {
			log.Println("unable to score play", h.ID, err)
			continue
		}
		fmt.Fprintf(w, "%-17v %5.2f %6v %6v %6v %6.0f ms\n",
			h.PlayedAt.Local().Format("2006-01-02 15:04"), h.Rate, sc.Hits, sc.MissCount, sc.OffBeat, ms(sc.TotalError))
	}
	return nil
}
