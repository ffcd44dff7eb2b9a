package battle

// WeaponClass identifies which of a soldier's weapon slots a gesture or
// message refers to. Only Main is modeled — the original engine's soldiers
// never carry a secondary weapon in the shipped path.
type WeaponClass int

const (
	WeaponClassMain WeaponClass = iota
)

// GestureKind tags the closed set of within-behavior animation states that
// produce physics events.
type GestureKind int

const (
	GestureIdle GestureKind = iota
	GestureReloading
	GestureAiming
	GestureFiring
)

func (k GestureKind) String() string {
	switch k {
	case GestureIdle:
		return "Idle"
	case GestureReloading:
		return "Reloading"
	case GestureAiming:
		return "Aiming"
	case GestureFiring:
		return "Firing"
	default:
		return "Unknown"
	}
}

// Gesture is the within-behavior sub-state machine: idle, aiming, reloading,
// or firing, each (except Idle) timestamped with the frame it ends.
type Gesture struct {
	Kind  GestureKind
	Until uint64
	Class WeaponClass
}

func IdleGesture() Gesture { return Gesture{Kind: GestureIdle} }

func ReloadingGesture(until uint64, class WeaponClass) Gesture {
	return Gesture{Kind: GestureReloading, Until: until, Class: class}
}

func AimingGesture(until uint64, class WeaponClass) Gesture {
	return Gesture{Kind: GestureAiming, Until: until, Class: class}
}

func FiringGesture(until uint64, class WeaponClass) Gesture {
	return Gesture{Kind: GestureFiring, Until: until, Class: class}
}

func (g Gesture) Equal(other Gesture) bool {
	return g.Kind == other.Kind && g.Until == other.Until && g.Class == other.Class
}
