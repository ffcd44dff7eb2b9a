package battle

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/weapon"
)

func TestBulletFireEffectiveFrameIsStartFrame(t *testing.T) {
	b := NewBulletFire(0, 100, 6, geometry.WorldPoint{}, geometry.WorldPoint{}, nil, weapon.Ammunition762x54R, nil, weapon.Shot{Count: 1})
	if b.EffectiveFrame() != 106 {
		t.Errorf("expected effective frame 106, got %d", b.EffectiveFrame())
	}
	if b.Expired(106) {
		t.Error("bullet fire should not be expired on its own effective frame")
	}
	if !b.Expired(106 + BulletFireDurationFrames + 1) {
		t.Error("bullet fire should be expired well past its end frame")
	}
}

func TestExplosionRadiiByType(t *testing.T) {
	grenade := ExplosiveGrenade.Radii()
	shell := ExplosiveArtilleryShell.Radii()
	if shell.DirectDeath.Meters() <= grenade.DirectDeath.Meters() {
		t.Error("expected an artillery shell's direct-death radius to exceed a grenade's")
	}
}
