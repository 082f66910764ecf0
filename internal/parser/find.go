package parser

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type Files struct {
	Audio string
	Chart string
}

// Find looks through a song directory for an audio file and a chart, a .sm
// chart is preferred over a song.yaml sidecar.
func Find(dir string) (Files, error) {
	var files Files
	var sidecar string

	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(info.Name())) {
		case ".ogg", ".mp3", ".wav":
			files.Audio = p
		case ".sm":
			files.Chart = p
		case ".yaml", ".yml":
			if strings.HasPrefix(strings.ToLower(info.Name()), "song.") {
				sidecar = p
			}
		}
		return nil
	}); nil != err {
		return files, errors.Wrap(err, "unable to walk song directory")
	}

	if files.Chart == "" {
		files.Chart = sidecar
	}
	if files.Audio == "" || files.Chart == "" {
		return files, errors.New("unable to find .sm or song.yaml and .mp3/.ogg/.wav file in given directory")
	}
	return files, nil
}

// Music resolves the audio file named by a song, falling back to the one found
// in the directory.
func Music(dir, music string, files Files) string {
	if music == "" {
		return files.Audio
	}
	p := filepath.Join(dir, music)
	if _, err := os.Stat(p); nil != err {
		return files.Audio
	}
	return p
}
