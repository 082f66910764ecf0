package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"git.lost.host/meutraa/onbeat/internal/clock"
	"git.lost.host/meutraa/onbeat/internal/game"
	"git.lost.host/meutraa/onbeat/internal/session"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type DefaultScorer struct {
	db *sql.DB
}

type InputsCompact struct {
	Index int
	Times []time.Duration
}

func compactInputs(inputs *[]game.Input) []InputsCompact {
	colCount := 0
	for _, i := range *inputs {
		if i.Key+1 > colCount {
			colCount = i.Key + 1
		}
	}
	ins := make([]InputsCompact, colCount)
	for i := range ins {
		ins[i].Index = i
	}
	for _, i := range *inputs {
		if i.Key < 0 {
			continue
		}
		ins[i.Key].Times = append(ins[i.Key].Times, i.HitTime)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) *[]game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Key: i.Index, HitTime: t})
		}
	}
	sort.SliceStable(ins, func(a, b int) bool {
		return ins[a].HitTime < ins[b].HitTime
	})
	return &ins
}

func (s *DefaultScorer) Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "unable to create score directory")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrap(err, "unable to open scores")
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text not null,
		  rate real not null,
		  tempo real not null,
		  phase_offset real not null,
		  tolerance real not null,
		  warm_up integer not null,
		  length integer not null,
		  played_at text not null,
		  inputs blob
	  );
	create index if not exists idx_scores_sum on scores(sum);
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create scores table")
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err {
			log.Println("unable to close scores", err)
		}
		s.db = nil
	}
}

func (s *DefaultScorer) hashSong(song *game.Song) string {
	key := fmt.Sprintf("%s\x00%s\x00%v\x00%v", song.Title, song.Artist, song.BPM, song.Offset)
	sum := sha256.Sum256([]byte(key))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultScorer) Save(song *game.Song, history *History) error {
	if nil == s.db {
		return errors.New("scores are not open")
	}
	data, err := json.Marshal(compactInputs(history.Inputs))
	if nil != err {
		return errors.Wrap(err, "unable to marshal inputs")
	}
	if history.PlayedAt.IsZero() {
		history.PlayedAt = time.Now()
	}
	history.Sum = s.hashSong(song)
	c := history.Config
	res, err := s.db.Exec(
		"insert into scores(sum, rate, tempo, phase_offset, tolerance, warm_up, length, played_at, inputs) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		history.Sum, history.Rate, c.Tempo, c.Offset, c.Tolerance, c.WarmUp,
		int64(history.Length), history.PlayedAt.UTC().Format(time.RFC3339Nano), data,
	)
	if nil != err {
		return errors.Wrap(err, "unable to save score")
	}
	history.ID, err = res.LastInsertId()
	if nil != err {
		return errors.Wrap(err, "unable to read score id")
	}
	return nil
}

func (s *DefaultScorer) Load(song *game.Song) ([]History, error) {
	if nil == s.db {
		return nil, errors.New("scores are not open")
	}
	histories := []History{}
	rows, err := s.db.Query(
		"select id, sum, rate, tempo, phase_offset, tolerance, warm_up, length, played_at, inputs from scores where sum = ? order by id",
		s.hashSong(song),
	)
	if nil != err {
		return histories, errors.Wrap(err, "unable to load scores")
	}
	defer rows.Close()
	for rows.Next() {
		var h History
		var length int64
		var playedAt string
		var inputs []byte
		if err := rows.Scan(
			&h.ID, &h.Sum, &h.Rate,
			&h.Config.Tempo, &h.Config.Offset, &h.Config.Tolerance, &h.Config.WarmUp,
			&length, &playedAt, &inputs,
		); nil != err {
			return histories, errors.Wrap(err, "unable to read score")
		}
		var ns []InputsCompact
		if err := json.Unmarshal(inputs, &ns); nil != err {
			log.Println("unable to unmarshal input history", h.ID, err)
			continue
		}
		h.Inputs = uncompactInputs(ns)
		h.Length = time.Duration(length)
		h.PlayedAt, err = time.Parse(time.RFC3339Nano, playedAt)
		if nil != err {
			log.Println("unable to parse play time", h.ID, err)
		}
		histories = append(histories, h)
	}
	return histories, errors.Wrap(rows.Err(), "unable to read scores")
}

// Score judges a saved play again, from its first press to its length.
func (s *DefaultScorer) Score(history *History, judgements []game.Judgement) (Score, error) {
	var score Score
	sess, err := session.New(history.Config, &clock.Manual{}, judgements)
	if nil != err {
		return score, err
	}
	if nil != history.Inputs {
		for _, input := range *history.Inputs {
			sess.PressAt(input.Key, input.HitTime)
		}
	}
	sess.AdvanceTo(history.Length)

	st := sess.Stats()
	score.Hits = uint64(st.Hits)
	score.MissCount = uint64(st.Misses)
	score.OffBeat = uint64(st.OffBeat)
	score.TotalError = st.TotalError
	score.Counts = st.Counts
	return score, nil
}
