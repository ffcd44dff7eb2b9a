package battle

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

func newTestSoldier() *Soldier {
	w := weapon.NewWeapon(weapon.FamilyMosinNagant)
	w.ReadyBullet = true
	return NewSoldier(0, SideA, 0, geometry.NewWorldPoint(0, 0), &w, nil)
}

func TestCanBeAnimatedInvariant(t *testing.T) {
	s := newTestSoldier()
	if !s.CanBeAnimated() {
		t.Fatal("fresh soldier should be animatable")
	}
	s.Unconscious = true
	if s.CanBeAnimated() {
		t.Fatal("unconscious soldier must not be animatable")
	}
	s.Unconscious = false
	s.Alive = false
	if s.CanBeAnimated() || s.CanBeDesignedAsTarget() {
		t.Fatal("dead soldier must not be animatable or targetable")
	}
}

func TestReloadWeaponPullsFromLooseMagazines(t *testing.T) {
	s := newTestSoldier()
	s.MainWeapon.ReadyBullet = false
	s.Magazines = []weapon.Magazine{weapon.FullMagazine(weapon.FamilyMosinNagant)}

	s.ReloadWeapon(WeaponClassMain)

	if s.MainWeapon.Magazine == nil {
		t.Fatal("expected a magazine to be mounted from the loose reserve")
	}
	if len(s.Magazines) != 0 {
		t.Errorf("expected loose magazine to be consumed, got %d remaining", len(s.Magazines))
	}
	if !s.MainWeapon.ReadyBullet {
		t.Error("expected a bullet to be chambered after reload")
	}
}

func TestAmmunitionReserveStatus(t *testing.T) {
	s := newTestSoldier()
	if s.AmmunitionReserve() != AmmunitionEmpty {
		t.Errorf("expected empty reserve with no loose magazines, got %v", s.AmmunitionReserve())
	}
	s.Magazines = []weapon.Magazine{weapon.FullMagazine(weapon.FamilyMosinNagant)}
	if s.AmmunitionReserve() != AmmunitionLow {
		t.Errorf("expected low reserve with one loose magazine, got %v", s.AmmunitionReserve())
	}
	s.Magazines = append(s.Magazines, weapon.FullMagazine(weapon.FamilyMosinNagant))
	if s.AmmunitionReserve() != AmmunitionOk {
		t.Errorf("expected ok reserve with two loose magazines, got %v", s.AmmunitionReserve())
	}
}

func TestActionDerivesFromBehaviorAndGesture(t *testing.T) {
	s := newTestSoldier()
	s.Behavior = EngageSoldierBehavior(1)
	s.Gesture = FiringGesture(10, WeaponClassMain)
	if s.Action() != ActionTargetFiring {
		t.Errorf("expected target firing, got %v", s.Action())
	}
	s.Gesture = ReloadingGesture(10, WeaponClassMain)
	if s.Action() != ActionReloading {
		t.Errorf("expected reloading, got %v", s.Action())
	}
}
