package battle

import "testing"

func TestElectLeaderKeepsSurvivingLeader(t *testing.T) {
	sq := NewSquad(0, 1, []SoldierIndex{1, 2, 3})
	alive := map[SoldierIndex]bool{1: true, 2: true, 3: true}

	if !sq.ElectLeader(func(i SoldierIndex) bool { return alive[i] }) {
		t.Fatal("expected election to succeed")
	}
	if sq.Leader != 1 {
		t.Errorf("expected leader to remain 1, got %d", sq.Leader)
	}
}

func TestElectLeaderPromotesFirstSurvivor(t *testing.T) {
	sq := NewSquad(0, 1, []SoldierIndex{1, 2, 3})
	alive := map[SoldierIndex]bool{1: false, 2: false, 3: true}

	if !sq.ElectLeader(func(i SoldierIndex) bool { return alive[i] }) {
		t.Fatal("expected election to succeed")
	}
	if sq.Leader != 3 {
		t.Errorf("expected leader 3, got %d", sq.Leader)
	}
}

func TestElectLeaderFailsWhenSquadWiped(t *testing.T) {
	sq := NewSquad(0, 1, []SoldierIndex{1, 2})
	if sq.ElectLeader(func(SoldierIndex) bool { return false }) {
		t.Fatal("expected election to fail when no member survives")
	}
}

func TestSubordinatesExcludesLeader(t *testing.T) {
	sq := NewSquad(0, 1, []SoldierIndex{1, 2, 3})
	subs := sq.Subordinates()
	if len(subs) != 2 {
		t.Fatalf("expected 2 subordinates, got %d", len(subs))
	}
	for _, s := range subs {
		if s == sq.Leader {
			t.Error("leader must not appear among subordinates")
		}
	}
}

func TestSquadHealthRatio(t *testing.T) {
	members := []SoldierIndex{1, 2, 3, 4}
	countable := map[SoldierIndex]bool{1: true, 2: true, 3: false, 4: false}
	h := SquadHealth(members, func(i SoldierIndex) bool { return countable[i] })
	if h != 0.5 {
		t.Errorf("expected 0.5 health, got %v", h)
	}
}
