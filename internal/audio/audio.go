// Package audio plays short square-wave tones for game sound cues.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone in a cue. A zero frequency is a rest.
type note struct {
	freq     float64
	duration time.Duration
}

// cueNotes are the tones played for each cue.
var cueNotes = map[core.Cue][]note{
	core.CueWall:    {{440, 30 * time.Millisecond}},
	core.CuePaddle:  {{880, 50 * time.Millisecond}},
	core.CueBlock:   {{660, 30 * time.Millisecond}},
	core.CueBreak:   {{990, 40 * time.Millisecond}},
	core.CuePowerUp: {{523, 60 * time.Millisecond}, {659, 60 * time.Millisecond}, {784, 90 * time.Millisecond}},
	core.CueLoseLife: {
		{660, 100 * time.Millisecond}, {0, 20 * time.Millisecond},
		{440, 100 * time.Millisecond}, {0, 20 * time.Millisecond},
		{330, 150 * time.Millisecond},
	},
	core.CueLevelUp: {{523, 80 * time.Millisecond}, {784, 80 * time.Millisecond}, {1047, 160 * time.Millisecond}},
	core.CueGameOver: {
		{392, 150 * time.Millisecond}, {0, 30 * time.Millisecond},
		{330, 150 * time.Millisecond}, {0, 30 * time.Millisecond},
		{262, 300 * time.Millisecond},
	},
}

// Player plays cues through the system speaker.
// The zero value and a nil *Player are silent.
type Player struct {
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
}

// New initializes the speaker. On failure it returns a silent player along
// with the error so callers can log it and carry on.
func New(logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Player{logger: logger}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return p, err
	}
	p.enabled = true
	logger.Debug("audio initialized", "sample_rate", int(sampleRate))
	return p, nil
}

// Play queues the tones for a cue. It never blocks on playback.
func (p *Player) Play(c core.Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	if s := streamer(cueNotes[c]); s != nil {
		speaker.Play(s)
	}
}

// PlayAll plays every cue of a step. Repeats of a cue within one step are
// played once.
func (p *Player) PlayAll(cues []core.Cue) {
	seen := make(map[core.Cue]bool, len(cues))
	for _, c := range cues {
		if seen[c] {
			continue
		}
		seen[c] = true
		p.Play(c)
	}
}

// Close shuts the speaker down.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}

// streamer chains the notes into one stream, or nil when there are none.
func streamer(notes []note) beep.Streamer {
	if len(notes) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, squareWave(n.freq, n.duration))
	}
	return beep.Seq(parts...)
}

// squareWave generates a square wave tone (retro 8-bit feel). A zero
// frequency yields silence of the same length.
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)
	volume := 0.2
	if freq <= 0 {
		volume = 0
	}

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, i > 0
			}
			val := volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}
