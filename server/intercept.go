package server

import (
	"math"

	"github.com/lab1702/fleetcommand/game"
	"gonum.org/v1/gonum/spatial/r2"
)

// InterceptSolution contains the result of an intercept course calculation
type InterceptSolution struct {
	Heading         float64  // Course to steer in radians
	TimeToIntercept float64  // Seconds until the paths meet
	Point           game.Vec // Where the paths meet, wrapped into the sector
}

// InterceptPoint predicts where to warp to land ahead of a moving target:
// lookahead seconds along its velocity, plus overshoot further along the same
// heading. A stationary target's position is returned unchanged.
func InterceptPoint(target *game.Ship, lookahead, overshoot float64) game.Vec {
	ahead := r2.Add(target.Pos, r2.Scale(lookahead, target.Vel))
	dir := game.Unit(target.Vel)
	return game.Wrap(r2.Add(ahead, r2.Scale(overshoot, dir)))
}

// InterceptCourse calculates the course a chaser at the given speed must steer
// to meet a target moving at constant velocity. Positions are compared through
// the shortest toroidal displacement.
//
// Returns false when the target cannot be caught at that speed.
func InterceptCourse(from, targetPos, targetVel game.Vec, speed float64) (InterceptSolution, bool) {
	if speed <= 0 {
		return InterceptSolution{}, false
	}

	rel := game.Delta(from, targetPos)
	distSq := r2.Dot(rel, rel)
	if distSq < 1e-9 {
		return InterceptSolution{Heading: 0, TimeToIntercept: 0, Point: targetPos}, true
	}

	velSq := r2.Dot(targetVel, targetVel)
	if velSq < 1e-9 {
		// Stationary target - head straight for it
		return InterceptSolution{
			Heading:         game.Heading(rel),
			TimeToIntercept: math.Sqrt(distSq) / speed,
			Point:           targetPos,
		}, true
	}

	// |rel + vel*t| = speed*t
	// a*t² + b*t + c = 0
	a := velSq - speed*speed
	b := 2.0 * r2.Dot(rel, targetVel)
	c := distSq

	var t float64
	if math.Abs(a) < 1e-9 {
		// Linear case: same speed
		if math.Abs(b) < 1e-9 {
			return InterceptSolution{}, false
		}
		t = -c / b
		if t < 0 {
			return InterceptSolution{}, false
		}
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			// Target is too fast to intercept
			return InterceptSolution{}, false
		}
		sq := math.Sqrt(disc)
		t1 := (-b + sq) / (2 * a)
		t2 := (-b - sq) / (2 * a)
		switch {
		case t1 > 0 && t2 > 0:
			t = math.Min(t1, t2)
		case t1 > 0:
			t = t1
		case t2 > 0:
			t = t2
		default:
			return InterceptSolution{}, false
		}
	}

	meet := r2.Add(rel, r2.Scale(t, targetVel))
	return InterceptSolution{
		Heading:         game.Heading(meet),
		TimeToIntercept: t,
		Point:           game.Wrap(r2.Add(from, meet)),
	}, true
}
