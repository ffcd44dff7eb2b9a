package battle

import "github.com/nstehr/vimy/vimy-core/geometry"

// Body is a soldier's idle posture. The three variants exist because the
// original engine's visibility_behavior_modifier distinguishes them in its
// signature, but its match arms all return the same constant today — see
// DESIGN.md, which preserves that collapse rather than inventing the
// per-posture split (§9 open question).
type Body int

const (
	BodyStanding Body = iota
	BodyCrouched
	BodyLying
)

// BehaviorKind tags the closed set of behavior variants.
type BehaviorKind int

const (
	BehaviorIdle BehaviorKind = iota
	BehaviorMoveTo
	BehaviorMoveFastTo
	BehaviorSneakTo
	BehaviorDriveTo
	BehaviorRotateTo
	BehaviorDefend
	BehaviorHide
	BehaviorSuppressFire
	BehaviorEngageSoldier
	BehaviorDead
	BehaviorUnconscious
)

func (k BehaviorKind) String() string {
	switch k {
	case BehaviorIdle:
		return "Idle"
	case BehaviorMoveTo:
		return "MoveTo"
	case BehaviorMoveFastTo:
		return "MoveFastTo"
	case BehaviorSneakTo:
		return "SneakTo"
	case BehaviorDriveTo:
		return "DriveTo"
	case BehaviorRotateTo:
		return "RotateTo"
	case BehaviorDefend:
		return "Defend"
	case BehaviorHide:
		return "Hide"
	case BehaviorSuppressFire:
		return "SuppressFire"
	case BehaviorEngageSoldier:
		return "EngageSoldier"
	case BehaviorDead:
		return "Dead"
	case BehaviorUnconscious:
		return "Unconscious"
	default:
		return "Unknown"
	}
}

// Propagation tags how a squad leader's resolved behavior is broadcast to
// its members (§4.5).
type Propagation int

const (
	PropagationNone Propagation = iota
	PropagationOnChange
	PropagationRegularly
)

// Behavior is the executor state derived from a soldier's Order plus the
// current battle context. Modeled as one tagged struct (not a variant
// hierarchy) so the gesture/movement executors can exhaustively switch on
// Kind — see DESIGN.md, "dynamic dispatch".
type Behavior struct {
	Kind     BehaviorKind
	Body     Body
	Paths    geometry.WorldPaths
	Angle    geometry.Angle
	Point    geometry.WorldPoint
	Opponent SoldierIndex
}

func IdleBehavior(body Body) Behavior           { return Behavior{Kind: BehaviorIdle, Body: body} }
func MoveToBehavior(p geometry.WorldPaths) Behavior {
	return Behavior{Kind: BehaviorMoveTo, Paths: p}
}
func MoveFastToBehavior(p geometry.WorldPaths) Behavior {
	return Behavior{Kind: BehaviorMoveFastTo, Paths: p}
}
func SneakToBehavior(p geometry.WorldPaths) Behavior {
	return Behavior{Kind: BehaviorSneakTo, Paths: p}
}
func DriveToBehavior(p geometry.WorldPaths) Behavior {
	return Behavior{Kind: BehaviorDriveTo, Paths: p}
}
func RotateToBehavior(a geometry.Angle) Behavior { return Behavior{Kind: BehaviorRotateTo, Angle: a} }
func DefendBehavior(a geometry.Angle) Behavior   { return Behavior{Kind: BehaviorDefend, Angle: a} }
func HideBehavior(a geometry.Angle) Behavior     { return Behavior{Kind: BehaviorHide, Angle: a} }
func SuppressFireBehavior(p geometry.WorldPoint) Behavior {
	return Behavior{Kind: BehaviorSuppressFire, Point: p}
}
func EngageSoldierBehavior(s SoldierIndex) Behavior {
	return Behavior{Kind: BehaviorEngageSoldier, Opponent: s}
}
func DeadBehavior() Behavior         { return Behavior{Kind: BehaviorDead} }
func UnconsciousBehavior() Behavior  { return Behavior{Kind: BehaviorUnconscious} }

// OpponentIndex returns the soldier this behavior is currently engaging, if any.
func (b Behavior) OpponentIndex() (SoldierIndex, bool) {
	if b.Kind == BehaviorEngageSoldier {
		return b.Opponent, true
	}
	return 0, false
}

// Propagation reports how this behavior should be broadcast to squad
// members when resolved by the squad leader (§4.5).
func (b Behavior) Propagation() Propagation {
	switch b.Kind {
	case BehaviorEngageSoldier, BehaviorSuppressFire:
		return PropagationRegularly
	case BehaviorMoveTo, BehaviorMoveFastTo, BehaviorSneakTo, BehaviorDriveTo,
		BehaviorRotateTo, BehaviorDefend, BehaviorHide:
		return PropagationOnChange
	default:
		return PropagationNone
	}
}

// Equal reports whether two behaviors are the same variant with the same
// payload — WorldPaths holds slices, so Behavior cannot use the == operator.
func (b Behavior) Equal(other Behavior) bool {
	if b.Kind != other.Kind {
		return false
	}
	switch b.Kind {
	case BehaviorIdle:
		return b.Body == other.Body
	case BehaviorMoveTo, BehaviorMoveFastTo, BehaviorSneakTo, BehaviorDriveTo:
		return worldPathsEqual(b.Paths, other.Paths)
	case BehaviorRotateTo, BehaviorDefend, BehaviorHide:
		return b.Angle == other.Angle
	case BehaviorSuppressFire:
		return b.Point == other.Point
	case BehaviorEngageSoldier:
		return b.Opponent == other.Opponent
	default:
		return true
	}
}

func worldPathsEqual(a, b geometry.WorldPaths) bool {
	if len(a.Paths) != len(b.Paths) {
		return false
	}
	for i := range a.Paths {
		if len(a.Paths[i].Points) != len(b.Paths[i].Points) {
			return false
		}
		for j := range a.Paths[i].Points {
			if a.Paths[i].Points[j] != b.Paths[i].Points[j] {
				return false
			}
		}
	}
	return true
}

// BehaviorMode distinguishes ground soldiers from vehicle crew; several
// behaviors (Defend/Hide/Move) resolve differently depending on it.
type BehaviorMode int

const (
	BehaviorModeGround BehaviorMode = iota
	BehaviorModeVehicle
)
