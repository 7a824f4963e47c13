package round

import (
	"fmt"
	"hash/fnv"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/effect"
	"github.com/vovakirdan/tui-breakout/internal/entity"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

// Snapshot is the complete state of a round between ticks, for saving,
// replay checks and determinism tests.
type Snapshot struct {
	Ticks uint64 `msgpack:"ticks"`
	Score int    `msgpack:"score"`
	Lives int    `msgpack:"lives"`
	Over  bool   `msgpack:"over"`
	RNG   uint64 `msgpack:"rng"`

	Paddle   PaddleState    `msgpack:"paddle"`
	Balls    []BallState    `msgpack:"balls"`
	Blocks   []BlockState   `msgpack:"blocks"`
	PowerUps []PowerUpState `msgpack:"powerups"`

	PendingBalls    []BallState    `msgpack:"pending_balls,omitempty"`
	PendingPowerUps []PowerUpState `msgpack:"pending_powerups,omitempty"`
	Retired         []int          `msgpack:"retired,omitempty"` // Indexes into Balls

	Effects []effect.Record `msgpack:"effects,omitempty"`
}

// PaddleState is the saved form of a paddle.
type PaddleState struct {
	X, Y      float64
	W, H      float64
	Intent    float64 `msgpack:"intent"`
	Speed     float64 `msgpack:"speed"`
	OriginalW float64 `msgpack:"orig_w"`
	OriginalH float64 `msgpack:"orig_h"`
}

// BallState is the saved form of a ball.
type BallState struct {
	X, Y      float64
	W, H      float64
	DirX      float64 `msgpack:"dx"`
	DirY      float64 `msgpack:"dy"`
	Speed     float64 `msgpack:"speed"`
	Strength  int     `msgpack:"strength"`
	Active    bool    `msgpack:"active"`
	OriginalW float64 `msgpack:"orig_w"`
	OriginalH float64 `msgpack:"orig_h"`
	OrigSpeed float64 `msgpack:"orig_speed"`
	OrigStr   int     `msgpack:"orig_strength"`
}

// BlockState is the saved form of a block.
type BlockState struct {
	X, Y          float64
	W, H          float64
	Health        int `msgpack:"health"`
	InitialHealth int `msgpack:"initial"`
	Row           int `msgpack:"row"`
	Col           int `msgpack:"col"`
}

// PowerUpState is the saved form of a falling capsule.
type PowerUpState struct {
	X, Y  float64
	W, H  float64
	Power powerup.Power `msgpack:"power"`
	VY    float64       `msgpack:"vy"`
}

// Snapshot captures the current state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Ticks: r.ticks,
		Score: r.score,
		Lives: r.lives,
		Over:  r.over,
		RNG:   r.rng.State(),
		Paddle: PaddleState{
			X: r.paddle.Pos.X(), Y: r.paddle.Pos.Y(),
			W: r.paddle.Width(), H: r.paddle.Height(),
			Intent:    r.paddle.Intent,
			Speed:     r.paddle.Speed,
			OriginalW: r.paddle.OriginalWidth,
			OriginalH: r.paddle.OriginalHeight,
		},
		Balls:           saveBalls(r.balls),
		PendingBalls:    saveBalls(r.pendingBalls),
		PowerUps:        savePowerUps(r.powerUps),
		PendingPowerUps: savePowerUps(r.pendingPowerUps),
		Effects:         r.effects.Records(),
	}
	for i, b := range r.balls {
		for _, retired := range r.retiredBalls {
			if b == retired {
				s.Retired = append(s.Retired, i)
			}
		}
	}
	s.Blocks = make([]BlockState, len(r.blocks))
	for i, b := range r.blocks {
		s.Blocks[i] = BlockState{
			X: b.Pos.X(), Y: b.Pos.Y(), W: b.Width(), H: b.Height(),
			Health:        b.Health,
			InitialHealth: b.InitialHealth,
			Row:           b.Row,
			Col:           b.Col,
		}
	}
	return s
}

func saveBalls(balls []*entity.Ball) []BallState {
	out := make([]BallState, len(balls))
	for i, b := range balls {
		out[i] = BallState{
			X: b.Pos.X(), Y: b.Pos.Y(), W: b.Width(), H: b.Height(),
			DirX:      b.Dir.X(),
			DirY:      b.Dir.Y(),
			Speed:     b.Speed,
			Strength:  b.Strength,
			Active:    b.Active,
			OriginalW: b.OriginalSize.X(),
			OriginalH: b.OriginalSize.Y(),
			OrigSpeed: b.OriginalSpeed,
			OrigStr:   b.OriginalStrength,
		}
	}
	return out
}

func savePowerUps(pus []*entity.PowerUp) []PowerUpState {
	out := make([]PowerUpState, len(pus))
	for i, p := range pus {
		out[i] = PowerUpState{
			X: p.Pos.X(), Y: p.Pos.Y(), W: p.Width(), H: p.Height(),
			Power: p.Power,
			VY:    p.Velocity.Y(),
		}
	}
	return out
}

// Restore rebuilds a round from a snapshot.
func Restore(s Settings, snap Snapshot, table *powerup.Table, logger *log.Logger) *Round {
	rng := core.NewSimpleRNG(1)
	rng.SetState(snap.RNG)

	r := newRound(s, table, rng, logger)
	r.ticks = snap.Ticks
	r.score = snap.Score
	r.lives = snap.Lives
	r.over = snap.Over

	p := snap.Paddle
	r.paddle = entity.NewPaddle(p.X+p.OriginalW/2, p.Y+p.H, p.OriginalW, p.OriginalH, p.Speed)
	r.paddle.Pos = core.Vec{p.X, p.Y}
	r.paddle.Size = core.Vec{p.W, p.H}
	r.paddle.Intent = p.Intent
	r.paddle.Snapshot()

	r.balls = loadBalls(snap.Balls)
	r.pendingBalls = loadBalls(snap.PendingBalls)
	for _, i := range snap.Retired {
		if i >= 0 && i < len(r.balls) {
			r.retiredBalls = append(r.retiredBalls, r.balls[i])
		}
	}
	r.powerUps = loadPowerUps(snap.PowerUps)
	r.pendingPowerUps = loadPowerUps(snap.PendingPowerUps)

	r.blocks = make([]*entity.Block, len(snap.Blocks))
	for i, bs := range snap.Blocks {
		b := entity.NewBlock(bs.X, bs.Y, bs.W, bs.H, bs.InitialHealth)
		b.Health = bs.Health
		b.Row, b.Col = bs.Row, bs.Col
		r.blocks[i] = b
	}

	r.effects.Restore(snap.Effects)
	return r
}

func loadBalls(states []BallState) []*entity.Ball {
	out := make([]*entity.Ball, len(states))
	for i, bs := range states {
		b := entity.NewBall(core.Vec{bs.OriginalW, bs.OriginalH}, bs.OrigSpeed, bs.OrigStr)
		b.Pos = core.Vec{bs.X, bs.Y}
		b.Size = core.Vec{bs.W, bs.H}
		b.Dir = core.Vec{bs.DirX, bs.DirY}
		b.Speed = bs.Speed
		b.Strength = bs.Strength
		b.Active = bs.Active
		b.Snapshot()
		out[i] = b
	}
	return out
}

func loadPowerUps(states []PowerUpState) []*entity.PowerUp {
	out := make([]*entity.PowerUp, len(states))
	for i, ps := range states {
		p := entity.NewPowerUp(ps.Power, core.Vec{}, core.Vec{ps.W, ps.H}, ps.VY)
		p.Pos = core.Vec{ps.X, ps.Y}
		p.Snapshot()
		out[i] = p
	}
	return out
}

// Marshal encodes the snapshot with msgpack.
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("round: encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a msgpack snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("round: decode snapshot: %w", err)
	}
	return s, nil
}

// Hash returns an FNV-1a hash of the encoded snapshot for determinism checks.
func (s Snapshot) Hash() uint64 {
	data, err := s.Marshal()
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}
