package battle

import (
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

// Soldier is a single combatant. It carries its own order/behavior/gesture
// triple (§4's three-layer state machine), its weapon and loose magazines,
// and the feeling gauge that downgrades movement orders under fire.
type Soldier struct {
	Index       SoldierIndex
	Side        Side
	Squad       SquadIndex
	WorldPoint  geometry.WorldPoint
	Angle       geometry.Angle

	Order    Order
	Behavior Behavior
	Gesture  Gesture

	Alive       bool
	Unconscious bool

	UnderFire UnderFire

	MainWeapon *weapon.Weapon
	Magazines  []weapon.Magazine

	LastShootFrame uint64
}

// NewSoldier builds a fresh soldier, idle, alive, conscious, with no
// under-fire feeling accrued yet — mirrors the source engine's Soldier::new.
func NewSoldier(index SoldierIndex, side Side, squad SquadIndex, point geometry.WorldPoint, main *weapon.Weapon, magazines []weapon.Magazine) *Soldier {
	return &Soldier{
		Index:      index,
		Side:       side,
		Squad:      squad,
		WorldPoint: point,
		Order:      IdleOrder(),
		Behavior:   IdleBehavior(BodyCrouched),
		Gesture:    IdleGesture(),
		Alive:      true,
		MainWeapon: main,
		Magazines:  magazines,
	}
}

// CanBeAnimated ⇔ alive ∧ ¬unconscious (§3 invariant).
func (s *Soldier) CanBeAnimated() bool { return s.Alive && !s.Unconscious }

// CanBeDesignedAsTarget ⇔ alive ∧ ¬unconscious — same invariant as
// CanBeAnimated, kept distinct because the two checks protect different
// call sites (animation vs. targeting) even though they currently agree.
func (s *Soldier) CanBeDesignedAsTarget() bool { return s.Alive && !s.Unconscious }

func (s *Soldier) CanProduceSound() bool  { return s.Alive && !s.Unconscious }
func (s *Soldier) CanFeelExplosion() bool { return s.Alive }
func (s *Soldier) CanFeelBulletFire() bool { return s.Alive }
func (s *Soldier) CanSeeInterior() bool   { return s.Alive && !s.Unconscious }
func (s *Soldier) CanSeek() bool          { return s.Alive && !s.Unconscious }

// CanBeCountedForMorale reports whether this soldier still contributes to
// its squad's health ratio (§4.11).
func (s *Soldier) CanBeCountedForMorale() bool { return s.Alive && !s.Unconscious }

// Target returns the soldier currently being engaged, if Behavior is
// EngageSoldier.
func (s *Soldier) Target() (SoldierIndex, bool) { return s.Behavior.OpponentIndex() }

func (s *Soldier) IncreaseUnderFire(value int) { s.UnderFire.Increase(value) }
func (s *Soldier) DecreaseUnderFire()          { s.UnderFire.Decrease() }

// Weapon returns the weapon mounted in the given slot. Only WeaponClassMain
// is ever populated (see gesture.go).
func (s *Soldier) Weapon(class WeaponClass) *weapon.Weapon {
	switch class {
	case WeaponClassMain:
		return s.MainWeapon
	default:
		return nil
	}
}

// ReloadWeapon reloads the weapon in the given slot, pulling a fresh
// magazine from the soldier's loose reserve if the mounted one runs dry —
// ported from Soldier::reload_weapon.
func (s *Soldier) ReloadWeapon(class WeaponClass) {
	w := s.Weapon(class)
	if w == nil {
		return
	}
	w.Reload()
	if w.Magazine == nil {
		remaining, picked := weapon.PopMatchingLoose(s.Magazines, w.Family)
		if picked != nil {
			w.MountPtr(picked)
			s.Magazines = remaining
		}
	}
}

// WeaponShot marks the weapon in the given slot as having fired.
func (s *Soldier) WeaponShot(class WeaponClass) {
	if w := s.Weapon(class); w != nil {
		w.Shot()
	}
}

// CurrentAction summarizes a soldier's behavior+gesture pair into a single
// display-friendly action tag (§4.5, used for squad status resumes).
type CurrentAction int

const (
	ActionIdle CurrentAction = iota
	ActionWalking
	ActionRunning
	ActionCrawling
	ActionTargetFiring
	ActionSuppressFiring
	ActionAiming
	ActionReloading
	ActionDefending
	ActionHiding
	ActionDriving
	ActionRotating
)

func (a CurrentAction) String() string {
	switch a {
	case ActionIdle:
		return ""
	case ActionWalking:
		return "move"
	case ActionRunning:
		return "move fast"
	case ActionCrawling:
		return "crawling"
	case ActionTargetFiring:
		return "firing target"
	case ActionSuppressFiring:
		return "suppress firing"
	case ActionAiming:
		return "aiming"
	case ActionReloading:
		return "reloading"
	case ActionDefending:
		return "defending"
	case ActionHiding:
		return "hiding"
	case ActionDriving:
		return "driving"
	case ActionRotating:
		return "rotating"
	default:
		return ""
	}
}

// Action derives a soldier's CurrentAction from its behavior and, for the
// firing behaviors, its gesture.
func (s *Soldier) Action() CurrentAction {
	switch s.Behavior.Kind {
	case BehaviorMoveTo:
		return ActionWalking
	case BehaviorMoveFastTo:
		return ActionRunning
	case BehaviorSneakTo:
		return ActionCrawling
	case BehaviorDriveTo:
		return ActionDriving
	case BehaviorRotateTo:
		return ActionRotating
	case BehaviorDefend:
		return ActionDefending
	case BehaviorHide:
		return ActionHiding
	case BehaviorSuppressFire:
		return gestureAction(s.Gesture, ActionSuppressFiring)
	case BehaviorEngageSoldier:
		return gestureAction(s.Gesture, ActionTargetFiring)
	default:
		return ActionIdle
	}
}

func gestureAction(g Gesture, firing CurrentAction) CurrentAction {
	switch g.Kind {
	case GestureReloading:
		return ActionReloading
	case GestureAiming:
		return ActionAiming
	case GestureFiring:
		return firing
	default:
		return ActionIdle
	}
}

// AmmunitionReserveStatus reports whether a soldier is running low on
// magazines compatible with its mounted weapon (§4.11).
type AmmunitionReserveStatus int

const (
	AmmunitionOk AmmunitionReserveStatus = iota
	AmmunitionLow
	AmmunitionEmpty
)

// OkMagazineCount is the reserve threshold below which ammunition is
// reported Low rather than Ok.
const OkMagazineCount = 2

func (s *Soldier) AmmunitionReserve() AmmunitionReserveStatus {
	w := s.MainWeapon
	if w == nil {
		return AmmunitionOk
	}
	count := 0
	for _, m := range s.Magazines {
		if w.AcceptsMagazine(m) {
			count++
		}
	}
	if count == 0 {
		return AmmunitionEmpty
	}
	if count < OkMagazineCount {
		return AmmunitionLow
	}
	return AmmunitionOk
}

// UnderFireCoefficient is the under-fire gauge normalized to [0, 1], used
// for client-facing status display.
func (s *Soldier) UnderFireCoefficient() float64 {
	return float64(s.UnderFire.Value) / float64(UnderFireMax)
}
