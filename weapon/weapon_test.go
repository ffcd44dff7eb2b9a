package weapon

import "testing"

func TestFullMagazineIgnoresFamilyCapacity(t *testing.T) {
	mosin := FullMagazine(FamilyMosinNagant)
	mauser := FullMagazine(FamilyMauser)
	if mosin.Fill != 5 || mauser.Fill != 5 {
		t.Fatalf("expected both families to fill to 5 regardless of family, got mosin=%d mauser=%d", mosin.Fill, mauser.Fill)
	}
}

func TestReloadChambersFromMountedMagazine(t *testing.T) {
	w := NewWeapon(FamilyMosinNagant)
	mag := FullMagazine(FamilyMosinNagant)
	w.Mount(mag)

	w.Reload()

	if !w.ReadyBullet {
		t.Fatal("expected a bullet chambered after reload")
	}
	if w.Magazine == nil || w.Magazine.Fill != 4 {
		t.Fatalf("expected mounted magazine to drop to 4, got %v", w.Magazine)
	}
}

func TestReloadUnmountsExhaustedMagazine(t *testing.T) {
	w := NewWeapon(FamilyMauser)
	mag := Magazine{Family: FamilyMauser, Fill: 1}
	w.Mount(mag)

	w.Reload()

	if w.Magazine != nil {
		t.Fatalf("expected magazine to be unmounted once exhausted, got %v", w.Magazine)
	}
	if !w.ReadyBullet {
		t.Fatal("expected the last round to be chambered before unmounting")
	}
}

func TestReloadNoOpWhenAlreadyChambered(t *testing.T) {
	w := NewWeapon(FamilyMosinNagant)
	w.ReadyBullet = true
	mag := FullMagazine(FamilyMosinNagant)
	w.Mount(mag)

	w.Reload()

	if w.Magazine.Fill != 5 {
		t.Errorf("expected magazine untouched when already chambered, got %d", w.Magazine.Fill)
	}
}

func TestAcceptsMagazineChecksFamily(t *testing.T) {
	w := NewWeapon(FamilyMosinNagant)
	if !w.AcceptsMagazine(Magazine{Family: FamilyMosinNagant}) {
		t.Error("expected matching family to be accepted")
	}
	if w.AcceptsMagazine(Magazine{Family: FamilyMauser}) {
		t.Error("expected mismatched family to be rejected")
	}
}

func TestPopMatchingLoose(t *testing.T) {
	loose := []Magazine{
		{Family: FamilyMauser, Fill: 3},
		{Family: FamilyMosinNagant, Fill: 5},
	}
	remaining, picked := PopMatchingLoose(loose, FamilyMosinNagant)
	if picked == nil || picked.Family != FamilyMosinNagant {
		t.Fatalf("expected to pick a Mosin Nagant magazine, got %v", picked)
	}
	if len(remaining) != 1 || remaining[0].Family != FamilyMauser {
		t.Fatalf("expected only the Mauser magazine to remain, got %v", remaining)
	}
}

func TestShotTypeEscalatesWithOpponentsAround(t *testing.T) {
	w := NewWeapon(FamilyMosinNagant)
	if w.ShotType(0).Count != 1 {
		t.Error("expected single shot with no opponents around")
	}
	if w.ShotType(2).Count != 3 {
		t.Error("expected burst with multiple opponents around")
	}
}
