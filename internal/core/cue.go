package core

// Cue is a platform-neutral sound hint emitted by a game step.
// The platform decides whether and how to play it.
type Cue int

const (
	CueNone Cue = iota
	CueWall
	CuePaddle
	CueBlock
	CueBreak
	CuePowerUp
	CueLoseLife
	CueLevelUp
	CueGameOver
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueNone:
		return "None"
	case CueWall:
		return "Wall"
	case CuePaddle:
		return "Paddle"
	case CueBlock:
		return "Block"
	case CueBreak:
		return "Break"
	case CuePowerUp:
		return "PowerUp"
	case CueLoseLife:
		return "LoseLife"
	case CueLevelUp:
		return "LevelUp"
	case CueGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
