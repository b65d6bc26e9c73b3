package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D position, velocity or offset in sector units.
type Vec = r2.Vec

// Sector dimensions. Space wraps on both axes.
const (
	SectorWidth  = 40000.0
	SectorHeight = 40000.0
)

// Wrap maps a point back onto the torus.
func Wrap(p Vec) Vec {
	p.X = math.Mod(p.X, SectorWidth)
	if p.X < 0 {
		p.X += SectorWidth
	}
	p.Y = math.Mod(p.Y, SectorHeight)
	if p.Y < 0 {
		p.Y += SectorHeight
	}
	return p
}

// Delta returns the shortest displacement from one point to another across the wrap.
func Delta(from, to Vec) Vec {
	d := r2.Sub(to, from)
	d.X = wrapAxis(d.X, SectorWidth)
	d.Y = wrapAxis(d.Y, SectorHeight)
	return d
}

func wrapAxis(d, size float64) float64 {
	d = math.Mod(d, size)
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// Distance is the toroidal distance between two points.
func Distance(a, b Vec) float64 {
	return r2.Norm(Delta(a, b))
}

// Direction returns the unit vector pointing from one point to another,
// or the zero vector when they coincide.
func Direction(from, to Vec) Vec {
	return Unit(Delta(from, to))
}

// Unit normalizes v. The zero vector stays zero.
func Unit(v Vec) Vec {
	n := r2.Norm(v)
	if n < 1e-9 {
		return Vec{}
	}
	return r2.Scale(1/n, v)
}

// Heading returns the angle of v in radians.
func Heading(v Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// FromHeading returns the unit vector for an angle.
func FromHeading(h float64) Vec {
	return Vec{X: math.Cos(h), Y: math.Sin(h)}
}

// ToWorld rotates an offset expressed in a local frame (X forward, Y left)
// into world space for the given heading.
func ToWorld(offset Vec, heading float64) Vec {
	return r2.Rotate(offset, heading, Vec{})
}

// PointAt returns the wrapped point dist units from origin along a heading.
func PointAt(origin Vec, heading, dist float64) Vec {
	return Wrap(r2.Add(origin, r2.Scale(dist, FromHeading(heading))))
}

// Offset adds a displacement to a point and wraps the result.
func Offset(origin, d Vec) Vec {
	return Wrap(r2.Add(origin, d))
}

// NormalizeAngle keeps angle between 0 and 2*PI
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
