package battle

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/geometry"
)

func TestBehaviorPropagation(t *testing.T) {
	cases := []struct {
		b    Behavior
		want Propagation
	}{
		{EngageSoldierBehavior(3), PropagationRegularly},
		{SuppressFireBehavior(geometry.WorldPoint{}), PropagationRegularly},
		{MoveToBehavior(geometry.WorldPaths{}), PropagationOnChange},
		{DefendBehavior(0), PropagationOnChange},
		{IdleBehavior(BodyCrouched), PropagationNone},
		{DeadBehavior(), PropagationNone},
	}
	for _, c := range cases {
		if got := c.b.Propagation(); got != c.want {
			t.Errorf("%v: expected propagation %v, got %v", c.b.Kind, c.want, got)
		}
	}
}

func TestBehaviorEqual(t *testing.T) {
	a := MoveToBehavior(geometry.WorldPaths{})
	b := MoveToBehavior(geometry.WorldPaths{})
	if !a.Equal(b) {
		t.Error("expected equal behaviors with identical empty paths")
	}
	if a.Equal(DeadBehavior()) {
		t.Error("expected different kinds to be unequal")
	}
}
