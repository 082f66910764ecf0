package config

import (
	"strconv"
	"time"

	"git.lost.host/meutraa/onbeat/internal/beat"
	"git.lost.host/meutraa/onbeat/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const version = "0.3.0"

const (
	CommandPlay    = "play"
	CommandHistory = "history"
)

type Options struct {
	Command   string
	Directory string

	Rate        float64
	Offset      time.Duration // Global offset, added to every song
	Delay       time.Duration
	Tolerance   time.Duration
	WarmUp      uint
	FramePeriod time.Duration
	Keys        string
	Database    string
	MIDI        string
	Device      string
	Serial      string
	Baud        int
	Log         string
}

func defaults(f File) map[string]string {
	d := map[string]string{
		"rate":         "1.0",
		"offset":       "0ms",
		"delay":        "1.5s",
		"tolerance":    "100ms",
		"warm-up":      "4",
		"frame-period": "4ms",
		"keys":         "",
		"db":           DefaultDBPath(),
		"midi":         "",
		"device":       "",
		"serial":       "",
		"baud":         "115200",
		"log":          "",
	}
	set := func(name string, value *string) {
		if value != nil {
			d[name] = *value
		}
	}
	p := f.Play
	if p.Rate != nil {
		d["rate"] = strconv.FormatFloat(*p.Rate, 'f', -1, 64)
	}
	if p.WarmUp != nil {
		d["warm-up"] = strconv.Itoa(*p.WarmUp)
	}
	if p.Baud != nil {
		d["baud"] = strconv.Itoa(*p.Baud)
	}
	set("offset", p.Offset)
	set("delay", p.Delay)
	set("tolerance", p.Tolerance)
	set("frame-period", p.FramePeriod)
	set("keys", p.Keys)
	set("db", p.Database)
	set("midi", p.MIDI)
	set("device", p.Device)
	set("serial", p.Serial)
	set("log", p.Log)
	return d
}

// Parse reads the command line, with values from the config file as defaults.
func Parse(args []string, f File) (*Options, error) {
	o := &Options{}
	d := defaults(f)

	app := kingpin.New("onbeat", "Tap along to the beat of a song.")
	app.Version(version)

	app.Flag("rate", "Playback rate").Default(d["rate"]).Short('r').Float64Var(&o.Rate)
	app.Flag("offset", "Global offset").Default(d["offset"]).Short('o').DurationVar(&o.Offset)
	app.Flag("delay", "Start delay").Default(d["delay"]).Short('d').DurationVar(&o.Delay)
	app.Flag("tolerance", "Half width of the on beat window").Default(d["tolerance"]).Short('t').DurationVar(&o.Tolerance)
	app.Flag("warm-up", "Leading beats that do not count").Default(d["warm-up"]).Short('w').UintVar(&o.WarmUp)
	app.Flag("frame-period", "Render frame period").Default(d["frame-period"]).Short('p').DurationVar(&o.FramePeriod)
	app.Flag("keys", "Keys that count as presses, empty for any key").Default(d["keys"]).Short('k').StringVar(&o.Keys)
	app.Flag("db", "Score database").Default(d["db"]).StringVar(&o.Database)
	app.Flag("midi", "MIDI input port to read pads from").Default(d["midi"]).StringVar(&o.MIDI)
	app.Flag("device", "Linux input device to read keys from").Default(d["device"]).StringVar(&o.Device)
	app.Flag("serial", "Serial port of a tap pedal").Default(d["serial"]).StringVar(&o.Serial)
	app.Flag("baud", "Baud rate of the tap pedal").Default(d["baud"]).IntVar(&o.Baud)
	app.Flag("log", "Log file").Default(d["log"]).StringVar(&o.Log)

	play := app.Command(CommandPlay, "Play a song.").Default()
	play.Arg("directory", "Song directory").Required().ExistingDirVar(&o.Directory)
	history := app.Command(CommandHistory, "List saved plays of a song.")
	history.Arg("directory", "Song directory").Required().ExistingDirVar(&o.Directory)

	command, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	o.Command = command

	if err := o.validate(); nil != err {
		return nil, err
	}
	return o, nil
}

func (o *Options) validate() error {
	if o.Rate <= 0 {
		return errors.New("--rate must be > 0")
	}
	if o.Tolerance < 0 {
		return errors.New("--tolerance must be >= 0")
	}
	if o.FramePeriod <= 0 {
		return errors.New("--frame-period must be > 0")
	}
	if o.Delay < 0 {
		return errors.New("--delay must be >= 0")
	}
	if o.Serial != "" && o.Baud <= 0 {
		return errors.New("--baud must be > 0")
	}
	return nil
}

// BeatConfig is the timing for a song with these options applied.
func (o *Options) BeatConfig(song *game.Song) (beat.Config, error) {
	c := beat.Config{
		Tempo:     song.BPM,
		Offset:    song.Offset + o.Offset.Seconds(),
		Tolerance: o.Tolerance.Seconds(),
		WarmUp:    int(o.WarmUp),
	}
	if err := c.Validate(); nil != err {
		return c, errors.Wrapf(err, "unable to judge %v", song)
	}
	return c, nil
}

var tiers = []game.Judgement{
	{Time: 5 * time.Millisecond, Name: "Exact", Color: "#FFD700"},
	{Time: 10 * time.Millisecond, Name: "Ridiculous", Color: "#D75FD7"},
	{Time: 20 * time.Millisecond, Name: "Marvelous", Color: "#AFD7FF"},
	{Time: 40 * time.Millisecond, Name: "Great", Color: "#00D7D7"},
	{Time: 60 * time.Millisecond, Name: "Good", Color: "#00D700"},
}

// Judgements are the timing tiers that fit inside the tolerance, then Okay for
// the rest of the window and Miss.
func (o *Options) Judgements() []game.Judgement {
	judgements := []game.Judgement{}
	for _, j := range tiers {
		if j.Time <= o.Tolerance {
			judgements = append(judgements, j)
		}
	}
	return append(judgements,
		game.Judgement{Time: o.Tolerance + time.Nanosecond, Name: "Okay", Color: "#FF8700"},
		game.Judgement{Name: "Miss", Color: "#FF0000"},
	)
}
