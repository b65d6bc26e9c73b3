package server

import (
	"math"

	"github.com/lab1702/fleetcommand/game"
	"gonum.org/v1/gonum/spatial/r2"
)

// updateShipPhysics handles warp completion and movement for a single ship
func (s *Server) updateShipPhysics(sh *game.Ship, dt float64) {
	if !sh.Alive() {
		return
	}
	now := s.world.Now

	// A ship in warp is out of normal space until it lands
	if sh.Warping() {
		if now >= sh.Warp.CompleteAt {
			sh.Pos = sh.Warp.Destination
			sh.Vel = game.Vec{}
			sh.Warp.State = game.WarpIdle
			sh.Warp.ReadyAt = now + game.WarpCooldown
		}
		return
	}

	if sh.Accel <= 0 {
		return
	}

	// Desired velocity toward the commanded destination, slowing on arrival
	want := game.Vec{}
	to := game.Delta(sh.Pos, sh.Dest)
	if dist := r2.Norm(to); dist > 1 && sh.DesSpeed > 0 {
		speed := math.Min(sh.DesSpeed, sh.EffectiveMaxSpeed())
		speed = math.Min(speed, dist/dt)
		// Brake in time to stop on the destination
		speed = math.Min(speed, math.Sqrt(2*sh.Accel*dist))
		want = r2.Scale(speed/dist, to)
	}

	// Bounded acceleration
	dv := r2.Sub(want, sh.Vel)
	if n, limit := r2.Norm(dv), sh.Accel*dt; n > limit {
		dv = r2.Scale(limit/n, dv)
	}
	sh.Vel = r2.Add(sh.Vel, dv)

	// Webs cap speed immediately rather than waiting for the ship to slow
	if top := sh.EffectiveMaxSpeed(); r2.Norm(sh.Vel) > top {
		sh.Vel = r2.Scale(top/r2.Norm(sh.Vel), sh.Vel)
	}

	sh.Pos = game.Offset(sh.Pos, r2.Scale(dt, sh.Vel))
	if r2.Norm(sh.Vel) > 1e-6 {
		sh.Rotation = game.NormalizeAngle(game.Heading(sh.Vel))
	}
}

// updatePhysics moves every living ship for one frame
func (s *Server) updatePhysics(dt float64) {
	for _, sh := range s.world.Ships {
		s.updateShipPhysics(sh, dt)
	}
}
