package battle

import "github.com/nstehr/vimy/vimy-core/geometry"

// OrderKind tags the closed set of order variants. Orders are modeled as a
// single tagged struct rather than an interface/vtable hierarchy so the
// resolver can exhaustively switch on Kind (see DESIGN.md, "dynamic
// dispatch").
type OrderKind int

const (
	OrderIdle OrderKind = iota
	OrderMoveTo
	OrderMoveFastTo
	OrderSneakTo
	OrderDefend
	OrderHide
	OrderEngageSquad
	OrderSuppressFire
)

func (k OrderKind) String() string {
	switch k {
	case OrderIdle:
		return "Idle"
	case OrderMoveTo:
		return "MoveTo"
	case OrderMoveFastTo:
		return "MoveFastTo"
	case OrderSneakTo:
		return "SneakTo"
	case OrderDefend:
		return "Defend"
	case OrderHide:
		return "Hide"
	case OrderEngageSquad:
		return "EngageSquad"
	case OrderSuppressFire:
		return "SuppressFire"
	default:
		return "Unknown"
	}
}

// Order is the player's persistent intent for a soldier. MoveTo/MoveFastTo/
// SneakTo carry an optional continuation order ("then"), modeling a one-shot
// coroutine-style chain without a scheduler (§9): on reaching the terminal
// waypoint the movement executor pops Then and adopts it.
type Order struct {
	Kind     OrderKind
	Paths    geometry.WorldPaths
	Then     *Order
	Angle    geometry.Angle
	Squad    SquadIndex
	Point    geometry.WorldPoint
}

func IdleOrder() Order { return Order{Kind: OrderIdle} }

func MoveToOrder(paths geometry.WorldPaths, then *Order) Order {
	return Order{Kind: OrderMoveTo, Paths: paths, Then: then}
}

func MoveFastToOrder(paths geometry.WorldPaths, then *Order) Order {
	return Order{Kind: OrderMoveFastTo, Paths: paths, Then: then}
}

func SneakToOrder(paths geometry.WorldPaths, then *Order) Order {
	return Order{Kind: OrderSneakTo, Paths: paths, Then: then}
}

func DefendOrder(angle geometry.Angle) Order { return Order{Kind: OrderDefend, Angle: angle} }

func HideOrder(angle geometry.Angle) Order { return Order{Kind: OrderHide, Angle: angle} }

func EngageSquadOrder(squad SquadIndex) Order { return Order{Kind: OrderEngageSquad, Squad: squad} }

func SuppressFireOrder(point geometry.WorldPoint) Order {
	return Order{Kind: OrderSuppressFire, Point: point}
}

// ExpectPathFinding reports whether this order kind requires a computed path
// before it can be resolved into a behavior.
func (o Order) ExpectPathFinding() bool {
	switch o.Kind {
	case OrderMoveTo, OrderMoveFastTo, OrderSneakTo:
		return true
	default:
		return false
	}
}

// ReachStep advances a movement order by one waypoint. It reports true once
// the last waypoint has been consumed (the order is exhausted).
func (o *Order) ReachStep() bool {
	switch o.Kind {
	case OrderMoveTo, OrderMoveFastTo, OrderSneakTo:
		if _, ok := o.Paths.RemoveNextPoint(); !ok {
			panic("ReachStep called on an order with no remaining waypoints")
		}
		if _, ok := o.Paths.NextPoint(); !ok {
			return true
		}
	}
	return false
}

// DefaultBehavior derives the behavior an order maps to with no context
// (no visible opponent, no under-fire feeling). EngageSquad and
// SuppressFire never reach this path — their resolution always depends on
// battle state, never just the order itself.
func (o Order) DefaultBehavior() Behavior {
	switch o.Kind {
	case OrderIdle:
		return IdleBehavior(BodyCrouched)
	case OrderMoveTo:
		return MoveToBehavior(o.Paths)
	case OrderMoveFastTo:
		return MoveFastToBehavior(o.Paths)
	case OrderSneakTo:
		return SneakToBehavior(o.Paths)
	case OrderDefend:
		return DefendBehavior(o.Angle)
	case OrderHide:
		return HideBehavior(o.Angle)
	default:
		return IdleBehavior(BodyCrouched)
	}
}

// PendingOrderKind tags an order issued by a client that has not yet been
// materialized (it may still need path-finding computed for it).
type PendingOrderKind int

const (
	PendingMoveTo PendingOrderKind = iota
	PendingMoveFastTo
	PendingSneakTo
	PendingDefend
	PendingHide
	PendingEngageOrFire
)

// PendingOrder is a squad-level order awaiting path resolution before it is
// distributed to members as per-soldier Orders.
type PendingOrder struct {
	Kind         PendingOrderKind
	Squad        SquadIndex
	Marker       *OrderMarkerIndex
	CachedPoints []geometry.WorldPoint
}

func (p PendingOrder) ExpectPathFinding() bool {
	switch p.Kind {
	case PendingMoveTo, PendingMoveFastTo, PendingSneakTo:
		return true
	default:
		return false
	}
}

func (p *PendingOrder) PushCachePoint(pt geometry.WorldPoint) {
	if p.ExpectPathFinding() {
		p.CachedPoints = append(p.CachedPoints, pt)
	}
}

func (p PendingOrder) IsHide() bool { return p.Kind == PendingHide }
