package mandala

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// DefaultApproachRate is the fraction of the remaining distance the centre
// covers each tick.
const DefaultApproachRate = 0.05

// Animator owns the focus point of all shapes.
type Animator struct {
	Center Point
	Rate   float64
}

// NewAnimator starts the focus at start.
func NewAnimator(start Point, rate float64) *Animator {
	if rate <= 0 {
		rate = DefaultApproachRate
	}
	return &Animator{Center: start, Rate: rate}
}

// Tick moves the centre a fixed fraction of the way towards target.
//
// Both the falling and the expanding mode use this same rule; the falling
// toggle does not change the motion.
func (a *Animator) Tick(target Point) Point {
	a.Center.X += (target.X - a.Center.X) * a.Rate
	a.Center.Y += (target.Y - a.Center.Y) * a.Rate
	return a.Center
}
