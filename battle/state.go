package battle

// BoardPlacement records which vehicle seat a soldier occupies.
type BoardPlacement struct {
	Vehicle VehicleIndex
	Place   BoardingPlace
}

// State is the complete authoritative simulation state: every soldier and
// vehicle, the bidirectional boarding maps between them, squads, in-flight
// bullet fires and explosions, the latest visibility map, flag ownership,
// and the phase/frame counter. It is exclusively owned by the single
// simulation thread (§5); nothing outside the reducer mutates it directly.
type State struct {
	FrameI uint64
	Phase  Phase
	Victor *Side

	Soldiers []*Soldier
	Vehicles []*Vehicle
	Squads   []Squad

	SoldiersOnBoard map[SoldierIndex]BoardPlacement
	VehicleBoard    map[VehicleIndex][]struct {
		Place   BoardingPlace
		Soldier SoldierIndex
	}

	BulletFires []BulletFire
	Explosions  []Explosion

	Visibilities map[VisibilityKey]Visibility

	FlagsOwnership map[string]FlagOwner

	AConnected, BConnected bool
	AReady, BReady         bool
	AMorale, BMorale       float64

	nextSquadIndex int
}

// NewState builds an empty battle in the Placement phase, mirroring
// BattleState::empty.
func NewState() *State {
	return &State{
		Phase:           PhasePlacement,
		SoldiersOnBoard: make(map[SoldierIndex]BoardPlacement),
		VehicleBoard: make(map[VehicleIndex][]struct {
			Place   BoardingPlace
			Soldier SoldierIndex
		}),
		Visibilities:   make(map[VisibilityKey]Visibility),
		FlagsOwnership: make(map[string]FlagOwner),
		AMorale:        1.0,
		BMorale:        1.0,
	}
}

func (s *State) Soldier(idx SoldierIndex) *Soldier { return s.Soldiers[idx] }
func (s *State) Vehicle(idx VehicleIndex) *Vehicle  { return s.Vehicles[idx] }

func (s *State) Squad(idx SquadIndex) *Squad { return &s.Squads[idx] }

// SquadOf returns the squad a soldier belongs to.
func (s *State) SquadOf(soldier SoldierIndex) *Squad {
	return &s.Squads[s.Soldier(soldier).Squad]
}

// NextSquadIndex hands out a fresh dense squad index — the generator
// referenced by §9's "global mutable state" note; it lives on State (not a
// package-level counter) so a fresh battle always starts from zero.
func (s *State) NextSquadIndex() SquadIndex {
	idx := SquadIndex(s.nextSquadIndex)
	s.nextSquadIndex++
	return idx
}

// SetNextSquadIndex resets the squad-index generator, used when a full
// snapshot is restored (replication.Restore) so a squad created afterward
// never collides with one the snapshot already carries.
func (s *State) SetNextSquadIndex(n int) {
	s.nextSquadIndex = n
}

// RebuildVehicleBoard derives VehicleBoard from SoldiersOnBoard, exactly as
// BattleState::new does from a freshly loaded deployment — the forward map
// (soldier → seat) is authoritative; the inverse is always rebuilt, never
// stored independently, so `LoadFromCopy` can't leave the two maps
// inconsistent (§9 "cyclic references").
func (s *State) RebuildVehicleBoard() {
	board := make(map[VehicleIndex][]struct {
		Place   BoardingPlace
		Soldier SoldierIndex
	})
	for soldier, placement := range s.SoldiersOnBoard {
		board[placement.Vehicle] = append(board[placement.Vehicle], struct {
			Place   BoardingPlace
			Soldier SoldierIndex
		}{Place: placement.Place, Soldier: soldier})
	}
	s.VehicleBoard = board
}

// Clean retires bullet fires and explosions whose end frame has passed,
// per §3's "Lifecycles" note that they are destroyed by the scheduler, not
// the reducer.
func (s *State) Clean() {
	frame := s.FrameI

	keptFires := s.BulletFires[:0]
	for _, b := range s.BulletFires {
		if !b.Expired(frame) {
			keptFires = append(keptFires, b)
		}
	}
	s.BulletFires = keptFires

	keptExplosions := s.Explosions[:0]
	for _, e := range s.Explosions {
		if !e.Expired(frame) {
			keptExplosions = append(keptExplosions, e)
		}
	}
	s.Explosions = keptExplosions
}

// UpdateSquads runs leader election on every squad, reassigning leadership
// to the first surviving member when the current leader has died (§3).
func (s *State) UpdateSquads() {
	for i := range s.Squads {
		s.Squads[i].ElectLeader(func(idx SoldierIndex) bool {
			return s.Soldier(idx).Alive
		})
	}
}

// AllOrders returns the current order of every squad whose leader is on
// the given side, alongside its squad index.
func (s *State) AllOrders(side Side) []struct {
	Squad SquadIndex
	Order Order
} {
	var out []struct {
		Squad SquadIndex
		Order Order
	}
	for i, squad := range s.Squads {
		if s.Soldier(squad.Leader).Side != side {
			continue
		}
		out = append(out, struct {
			Squad SquadIndex
			Order Order
		}{Squad: SquadIndex(i), Order: s.Soldier(squad.Leader).Order})
	}
	return out
}
