package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"git.lost.host/meutraa/onbeat/internal/config"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	file, err := config.LoadFile(config.DefaultConfigPath())
	if nil != err {
		return fmt.Errorf("unable to load config: %w", err)
	}
	opts, err := config.Parse(args, file)
	if nil != err {
		return err
	}

	// The renderer owns the terminal while playing
	if opts.Log != "" {
		f, err := os.OpenFile(opts.Log, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if nil != err {
			return fmt.Errorf("unable to open log: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if opts.Command == config.CommandPlay {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	p := &Program{Options: opts}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	switch opts.Command {
	case config.CommandHistory:
		return p.History(os.Stdout)
	default:
		return p.Play()
	}
}
