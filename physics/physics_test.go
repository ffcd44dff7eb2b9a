package physics

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

func TestSweepIgnoresBulletFiresOutsideTheirEffectiveFrame(t *testing.T) {
	state := battle.NewState()
	target := battle.NewSoldier(0, battle.SideB, 0, geometry.NewWorldPoint(10, 0), nil, nil)
	state.Soldiers = []*battle.Soldier{target}
	state.BulletFires = []battle.BulletFire{
		battle.NewBulletFire(0, 100, 0, geometry.NewWorldPoint(0, 0), geometry.NewWorldPoint(10, 0),
			&battle.Target{Soldier: 0, Precision: battle.PrecisionNormal}, weapon.Ammunition762x54R, nil, weapon.Shot{Count: 1}),
	}

	msgs := Sweep(state, 50)
	if len(msgs) != 0 {
		t.Fatalf("expected no effects before the bullet's effective frame, got %v", msgs)
	}
}

func TestSweepResolvesBulletHitAtEffectiveFrame(t *testing.T) {
	state := battle.NewState()
	target := battle.NewSoldier(0, battle.SideB, 0, geometry.NewWorldPoint(10, 0), nil, nil)
	state.Soldiers = []*battle.Soldier{target}
	b := battle.NewBulletFire(0, 100, 0, geometry.NewWorldPoint(0, 0), geometry.NewWorldPoint(10, 0),
		&battle.Target{Soldier: 0, Precision: battle.PrecisionNormal}, weapon.Ammunition762x54R, nil, weapon.Shot{Count: 1})
	state.BulletFires = []battle.BulletFire{b}

	var sawAliveFalse bool
	for i := 0; i < 200; i++ {
		msgs := Sweep(state, b.EffectiveFrame())
		for _, m := range msgs {
			if m.Kind == battle.MsgSoldier && m.Soldier.Kind == battle.SoldierSetAlive && !m.Soldier.Alive {
				sawAliveFalse = true
			}
		}
		if sawAliveFalse {
			break
		}
	}
	if !sawAliveFalse {
		t.Fatal("expected a normal-precision bullet fire to eventually kill its target over repeated rolls")
	}
}

func TestSweepExplosionKillsWithinDirectDeathRadius(t *testing.T) {
	state := battle.NewState()
	s := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(1, 0), nil, nil)
	state.Soldiers = []*battle.Soldier{s}
	e := battle.NewExplosion(0, geometry.NewWorldPoint(0, 0), battle.ExplosiveGrenade, 10)
	state.Explosions = []battle.Explosion{e}

	msgs := Sweep(state, 10)
	var killed bool
	for _, m := range msgs {
		if m.Kind == battle.MsgSoldier && m.SoldierIdx == 0 && m.Soldier.Kind == battle.SoldierSetAlive && !m.Soldier.Alive {
			killed = true
		}
	}
	if !killed {
		t.Fatalf("expected a soldier within the direct-death radius to be killed, got %v", msgs)
	}
}

func TestSweepExplosionLeavesDistantSoldiersUntouched(t *testing.T) {
	state := battle.NewState()
	s := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(1000, 0), nil, nil)
	state.Soldiers = []*battle.Soldier{s}
	e := battle.NewExplosion(0, geometry.NewWorldPoint(0, 0), battle.ExplosiveGrenade, 10)
	state.Explosions = []battle.Explosion{e}

	msgs := Sweep(state, 10)
	if len(msgs) != 0 {
		t.Fatalf("expected no effect far outside every radius, got %v", msgs)
	}
}
