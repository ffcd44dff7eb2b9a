package replication

import (
	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

// copySoldier deep-copies a soldier's weapon and magazine reserve so a
// snapshot never shares mutable pointers with the live State it was taken
// from (§9 "cyclic references" — a Soldier's pointers are its mounted
// weapon and that weapon's magazine, and neither may alias across a
// snapshot boundary).
func copySoldier(src battle.Soldier) battle.Soldier {
	if src.MainWeapon != nil {
		w := *src.MainWeapon
		if w.Magazine != nil {
			mag := *w.Magazine
			w.Magazine = &mag
		}
		src.MainWeapon = &w
	}
	if src.Magazines != nil {
		mags := make([]weapon.Magazine, len(src.Magazines))
		copy(mags, src.Magazines)
		src.Magazines = mags
	}
	return src
}

// StateCopy is the full-state snapshot carried by LoadFromCopy (§8): every
// field Reduce can otherwise only reach incrementally, captured at once so
// a reconnecting or resyncing client can rebuild State without replaying
// history.
type StateCopy struct {
	FrameI uint64       `json:"frame_i"`
	Phase  battle.Phase `json:"phase"`
	Victor *battle.Side `json:"victor,omitempty"`

	Soldiers []battle.Soldier `json:"soldiers"`
	Vehicles []battle.Vehicle `json:"vehicles"`
	Squads   []battle.Squad   `json:"squads"`

	SoldiersOnBoard map[battle.SoldierIndex]battle.BoardPlacement `json:"soldiers_on_board"`

	BulletFires []battle.BulletFire `json:"bullet_fires"`
	Explosions  []battle.Explosion  `json:"explosions"`

	Visibilities map[battle.VisibilityKey]battle.Visibility `json:"visibilities"`

	FlagsOwnership map[string]battle.FlagOwner `json:"flags_ownership"`

	AConnected, BConnected bool    `json:"-"`
	AReady, BReady         bool    `json:"-"`
	AMorale, BMorale       float64 `json:"morale"`

	NextSquadIndex int `json:"next_squad_index"`
}

// Snapshot captures s's complete state. Slices and maps are copied rather
// than aliased so a later mutation of s never reaches back into a
// snapshot already handed to a publisher (§8's idempotence guarantee
// depends on LoadFromCopy only ever reading self-contained data).
func Snapshot(s *battle.State) StateCopy {
	soldiers := make([]battle.Soldier, len(s.Soldiers))
	for i, p := range s.Soldiers {
		soldiers[i] = copySoldier(*p)
	}
	vehicles := make([]battle.Vehicle, len(s.Vehicles))
	for i, p := range s.Vehicles {
		vehicles[i] = *p
	}
	squads := make([]battle.Squad, len(s.Squads))
	for i, sq := range s.Squads {
		members := make([]battle.SoldierIndex, len(sq.Members))
		copy(members, sq.Members)
		sq.Members = members
		squads[i] = sq
	}

	board := make(map[battle.SoldierIndex]battle.BoardPlacement, len(s.SoldiersOnBoard))
	for k, v := range s.SoldiersOnBoard {
		board[k] = v
	}

	fires := make([]battle.BulletFire, len(s.BulletFires))
	copy(fires, s.BulletFires)
	explosions := make([]battle.Explosion, len(s.Explosions))
	copy(explosions, s.Explosions)

	visibilities := make(map[battle.VisibilityKey]battle.Visibility, len(s.Visibilities))
	for k, v := range s.Visibilities {
		visibilities[k] = v
	}

	flags := make(map[string]battle.FlagOwner, len(s.FlagsOwnership))
	for k, v := range s.FlagsOwnership {
		flags[k] = v
	}

	return StateCopy{
		FrameI:          s.FrameI,
		Phase:           s.Phase,
		Victor:          s.Victor,
		Soldiers:        soldiers,
		Vehicles:        vehicles,
		Squads:          squads,
		SoldiersOnBoard: board,
		BulletFires:     fires,
		Explosions:      explosions,
		Visibilities:    visibilities,
		FlagsOwnership:  flags,
		AConnected:      s.AConnected,
		BConnected:      s.BConnected,
		AReady:          s.AReady,
		BReady:          s.BReady,
		AMorale:         s.AMorale,
		BMorale:         s.BMorale,
		NextSquadIndex:  len(squads),
	}
}

// Restore replaces every field of s with what c carries. Applying the same
// copy twice is equivalent to applying it once (§8): Restore never reads
// s's prior contents, it only overwrites, so there is no accumulation
// across repeated calls.
func Restore(s *battle.State, c StateCopy) {
	s.FrameI = c.FrameI
	s.Phase = c.Phase
	s.Victor = c.Victor

	s.Soldiers = make([]*battle.Soldier, len(c.Soldiers))
	for i := range c.Soldiers {
		soldier := copySoldier(c.Soldiers[i])
		s.Soldiers[i] = &soldier
	}

	s.Vehicles = make([]*battle.Vehicle, len(c.Vehicles))
	for i := range c.Vehicles {
		vehicle := c.Vehicles[i]
		s.Vehicles[i] = &vehicle
	}

	s.Squads = make([]battle.Squad, len(c.Squads))
	for i, sq := range c.Squads {
		members := make([]battle.SoldierIndex, len(sq.Members))
		copy(members, sq.Members)
		sq.Members = members
		s.Squads[i] = sq
	}

	s.SoldiersOnBoard = make(map[battle.SoldierIndex]battle.BoardPlacement, len(c.SoldiersOnBoard))
	for k, v := range c.SoldiersOnBoard {
		s.SoldiersOnBoard[k] = v
	}
	s.RebuildVehicleBoard()

	s.BulletFires = make([]battle.BulletFire, len(c.BulletFires))
	copy(s.BulletFires, c.BulletFires)
	s.Explosions = make([]battle.Explosion, len(c.Explosions))
	copy(s.Explosions, c.Explosions)

	s.Visibilities = make(map[battle.VisibilityKey]battle.Visibility, len(c.Visibilities))
	for k, v := range c.Visibilities {
		s.Visibilities[k] = v
	}

	s.FlagsOwnership = make(map[string]battle.FlagOwner, len(c.FlagsOwnership))
	for k, v := range c.FlagsOwnership {
		s.FlagsOwnership[k] = v
	}

	s.AConnected, s.BConnected = c.AConnected, c.BConnected
	s.AReady, s.BReady = c.AReady, c.BReady
	s.AMorale, s.BMorale = c.AMorale, c.BMorale

	s.SetNextSquadIndex(c.NextSquadIndex)
}
