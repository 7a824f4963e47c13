// Package physics resolves ball collisions against the field edges, the
// blocks and the paddle using axis-aligned bounding boxes.
//
// A ball is advanced first and resolved afterwards. The bounce axis is chosen
// from the shape of the union of every overlap the ball has this tick: a wide
// union means the ball hit a horizontal face, a tall one a vertical face, and
// a square one a corner.
package physics

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/entity"
)

// Field is the play area. The ball is lost past the bottom edge.
type Field struct {
	Width  float64
	Height float64
}

// Bounds returns the field as a rectangle at the origin.
func (f Field) Bounds() core.Rect {
	return core.NewRect(0, 0, f.Width, f.Height)
}

// Axis is the bounce axis chosen from an overlap rectangle.
type Axis int

const (
	AxisVertical   Axis = iota // Hit a top or bottom face, reflect y
	AxisHorizontal             // Hit a left or right face, reflect x
	AxisCorner                 // Reflect both
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return "corner"
	}
}

// AxisOf picks the bounce axis for an overlap rectangle.
func AxisOf(overlap core.Rect) Axis {
	switch {
	case overlap.W > overlap.H:
		return AxisVertical
	case overlap.H > overlap.W:
		return AxisHorizontal
	default:
		return AxisCorner
	}
}

// Result describes what happened to one ball during a tick.
type Result struct {
	Wall    bool            // Bounced off the left, right or top edge
	Lost    bool            // Crossed the bottom edge
	Paddle  bool            // Bounced off the paddle
	Missed  bool            // Struck the paddle's side and was caught
	Blocks  []*entity.Block // Blocks damaged this tick
	Overlap core.Rect       // Union of all overlaps, zero when nothing was hit
}

// Collided reports whether the ball touched anything besides the field edges.
func (r Result) Collided() bool {
	return r.Paddle || r.Missed || len(r.Blocks) > 0
}

// Step advances an active ball by dt and resolves its collisions. The
// direction is normalized before moving and again after resolving.
func Step(b *entity.Ball, dt float64, blocks []*entity.Block, paddle *entity.Paddle, f Field) Result {
	if !b.Active {
		return Result{}
	}
	b.Normalize()
	b.Move(dt)
	res := Resolve(b, blocks, paddle, f)
	if b.Active {
		b.Normalize()
	}
	return res
}

// Resolve applies field-edge handling followed by entity collisions to a
// ball that has already moved.
func Resolve(b *entity.Ball, blocks []*entity.Block, paddle *entity.Paddle, f Field) Result {
	var res Result

	res.Wall, res.Lost = resolveEdges(b, f)
	if res.Lost {
		b.Active = false
		return res
	}

	ballRect := b.Rect()
	var hitBlocks []*entity.Block
	for _, blk := range blocks {
		if ballRect.Intersects(blk.Rect()) {
			hitBlocks = append(hitBlocks, blk)
		}
	}
	hitPaddle := paddle != nil && ballRect.Intersects(paddle.Rect())
	if len(hitBlocks) == 0 && !hitPaddle {
		return res
	}

	rects := make([]core.Rect, 0, len(hitBlocks)+1)
	for _, blk := range hitBlocks {
		rects = append(rects, blk.Rect())
	}
	if hitPaddle {
		rects = append(rects, paddle.Rect())
	}
	res.Overlap = OverlapUnion(ballRect, rects)

	if hitPaddle {
		if bouncePaddle(b, paddle, res.Overlap) {
			res.Paddle = true
		} else {
			res.Missed = true
		}
		return res
	}

	for _, blk := range hitBlocks {
		blk.Damage(b.Strength)
	}
	res.Blocks = hitBlocks
	bounceBlock(b, res.Overlap)
	return res
}

// resolveEdges clamps the ball into the field and reflects it off the left,
// right and top edges.
func resolveEdges(b *entity.Ball, f Field) (wall, lost bool) {
	r := b.Rect()
	switch {
	case r.Left() < 0:
		b.SetLeft(0)
		b.Dir[0] = -b.Dir[0]
		wall = true
	case r.Right() > f.Width:
		b.SetRight(f.Width)
		b.Dir[0] = -b.Dir[0]
		wall = true
	}

	switch {
	case r.Top() < 0:
		b.SetTop(0)
		b.Dir[1] = -b.Dir[1]
		wall = true
	case r.Bottom() > f.Height:
		lost = true
	}
	return wall, lost
}

// OverlapUnion returns the smallest rectangle containing the intersection of
// ball with every rectangle in others.
func OverlapUnion(ball core.Rect, others []core.Rect) core.Rect {
	if len(others) == 0 {
		return core.Rect{}
	}
	left, top := math.Inf(1), math.Inf(1)
	right, bottom := math.Inf(-1), math.Inf(-1)
	for _, o := range others {
		clip := ball.Clip(o)
		left = math.Min(left, clip.Left())
		top = math.Min(top, clip.Top())
		right = math.Max(right, clip.Right())
		bottom = math.Max(bottom, clip.Bottom())
	}
	return core.RectFromEdges(left, top, right, bottom)
}

func snapVertical(b *entity.Ball, overlap core.Rect) {
	if b.Dir.Y() < 0 {
		b.SetTop(overlap.Bottom())
	} else {
		b.SetBottom(overlap.Top())
	}
}

func snapHorizontal(b *entity.Ball, overlap core.Rect) {
	if b.Dir.X() < 0 {
		b.SetLeft(overlap.Right())
	} else {
		b.SetRight(overlap.Left())
	}
}

// bounceBlock pushes the ball out of the overlap and reflects it on the
// chosen axis.
func bounceBlock(b *entity.Ball, overlap core.Rect) {
	switch AxisOf(overlap) {
	case AxisVertical:
		snapVertical(b, overlap)
		b.Dir[1] = -b.Dir[1]
	case AxisHorizontal:
		snapHorizontal(b, overlap)
		b.Dir[0] = -b.Dir[0]
	case AxisCorner:
		snapHorizontal(b, overlap)
		b.Dir[0] = -b.Dir[0]
		snapVertical(b, overlap)
		b.Dir[1] = -b.Dir[1]
	}
}

// bouncePaddle handles a paddle hit. A hit on the top face sends the ball up
// at an angle set by how far from the paddle center it landed. A side or
// corner hit catches the ball: it becomes inactive and its direction is kept.
func bouncePaddle(b *entity.Ball, p *entity.Paddle, overlap core.Rect) bool {
	if AxisOf(overlap) != AxisVertical {
		b.Active = false
		return false
	}
	snapVertical(b, overlap)
	b.Dir = DeflectFromPaddle(b.Dir, overlap.CenterX(), p.Rect())
	return true
}

// Paddle deflection limits, measured from the horizontal.
const (
	centerAngle = math.Pi / 2 // Straight up at the paddle center
	edgeAngle   = math.Pi / 6 // Shallowest angle at either end
)

// DeflectFromPaddle returns the direction after a top-face paddle hit at
// hitX. The vertical component always points up.
func DeflectFromPaddle(dir core.Vec, hitX float64, paddle core.Rect) core.Vec {
	half := paddle.W / 2
	d := 0.0
	if half > 0 {
		d = core.ClampF((hitX-paddle.CenterX())/half, -1, 1)
	}

	dy := math.Abs(dir.Y())
	if dy == 0 {
		// a ball skimming flat onto the top face still has to leave upward
		dy = 1
	}
	if d == 0 {
		return core.Vec{0, -dy}
	}
	angle := centerAngle - math.Abs(d)*(centerAngle-edgeAngle)
	cot := 1 / math.Tan(angle)
	return core.Vec{math.Copysign(cot*dy, d), -dy}
}
