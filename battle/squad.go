package battle

import (
	"math"

	"github.com/nstehr/vimy/vimy-core/geometry"
)

// Squad is a leader soldier index plus an ordered members list (which
// includes the leader). A squad's side is always its leader's side (§3
// invariant: every soldier belongs to exactly one squad).
type Squad struct {
	Index   SquadIndex
	Leader  SoldierIndex
	Members []SoldierIndex
}

func NewSquad(index SquadIndex, leader SoldierIndex, members []SoldierIndex) Squad {
	return Squad{Index: index, Leader: leader, Members: members}
}

// Subordinates returns the squad's members excluding the leader.
func (s Squad) Subordinates() []SoldierIndex {
	out := make([]SoldierIndex, 0, len(s.Members))
	for _, m := range s.Members {
		if m != s.Leader {
			out = append(out, m)
		}
	}
	return out
}

// ElectLeader runs the squad's election rule: the first surviving member in
// declaration order becomes leader. Called on a squad's first resolve and
// again whenever the current leader dies (§3).
func (s *Squad) ElectLeader(isAlive func(SoldierIndex) bool) bool {
	if isAlive(s.Leader) {
		return true
	}
	for _, m := range s.Members {
		if isAlive(m) {
			s.Leader = m
			return true
		}
	}
	return false
}

// Formation names a squad placement layout. Only Line is implemented — the
// source engine never ships a second formation.
type Formation int

const (
	FormationLine Formation = iota
)

// Positions computes a world point for every non-leader member, arranged in
// a staggered line around a reference point (the leader's position, unless
// overridden), rotated to the leader's facing angle. Ported from
// squad_positions in the source engine's squad placement helper.
func Positions(members []SoldierIndex, leader SoldierIndex, leaderPoint geometry.WorldPoint, leaderAngle geometry.Angle, refPoint *geometry.WorldPoint) map[SoldierIndex]geometry.WorldPoint {
	ref := leaderPoint
	if refPoint != nil {
		ref = *refPoint
	}
	positions := make(map[SoldierIndex]geometry.WorldPoint)
	var xOffset, yOffset float64
	counter := 0
	for i, idx := range members {
		if idx == leader {
			continue
		}
		if counter%2 == 0 {
			xOffset += 10.0
		}
		counter++
		dx, dy := xOffset, yOffset
		if i%2 != 0 {
			dx, dy = -xOffset, -yOffset
		}
		memberPoint := geometry.NewWorldPoint(ref.X+dx, ref.Y+dy)
		positions[idx] = applyAngleOnPoint(memberPoint, ref, leaderAngle)
	}
	return positions
}

// applyAngleOnPoint rotates point around pivot by angle.
func applyAngleOnPoint(point, pivot geometry.WorldPoint, angle geometry.Angle) geometry.WorldPoint {
	rel := point.Sub(pivot)
	cos := math.Cos(float64(angle))
	sin := math.Sin(float64(angle))
	rotated := geometry.NewWorldPoint(rel.X*cos-rel.Y*sin, rel.X*sin+rel.Y*cos)
	return pivot.Add(rotated)
}

// Health is a squad's fraction of members still able to be counted for
// morale purposes (§4.11).
type Health float64

func SquadHealth(members []SoldierIndex, countable func(SoldierIndex) bool) Health {
	if len(members) == 0 {
		return 0
	}
	ready := 0
	for _, m := range members {
		if countable(m) {
			ready++
		}
	}
	return Health(float64(ready) / float64(len(members)))
}
