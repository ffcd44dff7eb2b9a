// Package config holds the single mutable tunables struct every subsystem
// reads from — frequencies, velocities, opacity tables, tolerance
// coefficients — ported from the original engine's battle_core::config.
// There is deliberately no file-watching configuration framework: the
// teacher reacts to a single mutated settings struct (rules.Doctrine /
// Engine.Swap), and this module follows the same shape with
// (*Config).Apply(ChangeConfigMessage).
package config

import "github.com/nstehr/vimy/vimy-core/worldmap"

// Config is every spec-named tunable in one struct, constructed with
// Default() and mutated only through Apply.
type Config struct {
	TargetFPS int

	// Subsystem periods, in frames, gating the tick scheduler (§4.9).
	SoldierUpdatePeriod      int
	PhysicsSweepPeriod       int
	AnimatePeriod            int
	VisibilityPeriod         int
	InteriorsVisibilityPeriod int
	SquadLeadersPeriod       int
	FlagsOwnershipPeriod     int
	FeelingsDecrementPeriod  int
	MoralePeriod             int
	VictoryCheckPeriod       int

	// Visibility engine (§4.4).
	VisibilityPixelStep              int
	VisibilityExclusionCells         int
	VisibilityLastShotRevealCells    int
	VisibilityByLastFrameShootFrames uint64
	VisibleStartsAt                  float64
	TargetAlterationFactor           float64
	TerrainOpacity                   map[worldmap.TerrainType]float64
	BehaviorVisibilityModifier       map[int]float64 // keyed by battle.BehaviorKind, avoids import cycle

	// Pathfinder (§4.3, §9 bounded-expansion fix).
	PathfindMaxExpansions int

	// Movement executor (§4.7).
	WalkVelocity     float64
	MoveFastVelocity float64
	SneakVelocity    float64
	ChassisRotationToleranceCoeff float64
	AdvanceToleranceDiff          float64

	// Gesture resolver (§4.6), in frames.
	AimDurationFrames    uint64
	FireDurationFrames   uint64
	ReloadDurationFrames uint64
	InaccurateFireFactor float64

	// Placement phase (§4.8).
	CoverDistance float64

	// Victory / morale (§4.11).
	EndMorale float64
	// FlagWeightFormula is an expr-lang expression evaluated once per flag
	// per tick against victory.FlagWeightEnv; default weighs every flag
	// equally. See victory.CompileWeightFormula.
	FlagWeightFormula string

	// Under-fire feeling (§3, §4.11).
	UnderFireTick    int
	UnderFireMax     int
	UnderFireDanger  int
	UnderFireWarning int
}

// Default returns the engine's stock tuning, matching the original's
// constants (battle_core::config defaults) wherever spec.md or
// original_source names one.
func Default() *Config {
	return &Config{
		TargetFPS: 60,

		SoldierUpdatePeriod:       1,
		PhysicsSweepPeriod:        1,
		AnimatePeriod:             20,
		VisibilityPeriod:          60,
		InteriorsVisibilityPeriod: 60,
		SquadLeadersPeriod:        120,
		FlagsOwnershipPeriod:      120,
		FeelingsDecrementPeriod:   60,
		MoralePeriod:              300,
		VictoryCheckPeriod:        300,

		VisibilityPixelStep:              5,
		VisibilityExclusionCells:         6,
		VisibilityLastShotRevealCells:    3,
		VisibilityByLastFrameShootFrames: 30,
		VisibleStartsAt:                  0.5,
		TargetAlterationFactor:           6.0,
		TerrainOpacity:                   defaultTerrainOpacity(),
		BehaviorVisibilityModifier:       defaultBehaviorVisibilityModifier(),

		PathfindMaxExpansions: 4000,

		WalkVelocity:                  1.4,
		MoveFastVelocity:              3.2,
		SneakVelocity:                 0.8,
		ChassisRotationToleranceCoeff: 100,
		AdvanceToleranceDiff:          0.08,

		AimDurationFrames:    45,
		FireDurationFrames:   10,
		ReloadDurationFrames: 90,
		InaccurateFireFactor: 0.08,

		CoverDistance: 30,

		EndMorale:         0.2,
		FlagWeightFormula: "1.0",

		UnderFireTick:    10,
		UnderFireMax:     200,
		UnderFireDanger:  150,
		UnderFireWarning: 100,
	}
}

// defaultTerrainOpacity ports the original's TILE_TYPE_OPACITY_* table:
// dense vegetation and walls occlude heavily, open ground barely at all.
func defaultTerrainOpacity() map[worldmap.TerrainType]float64 {
	return map[worldmap.TerrainType]float64{
		worldmap.ShortGrass:      0.02,
		worldmap.MiddleGrass:     0.05,
		worldmap.HighGrass:       0.35,
		worldmap.Dirt:            0.0,
		worldmap.Concrete:        0.0,
		worldmap.Mud:             0.02,
		worldmap.BrickWall:       1.0,
		worldmap.Trunk:           1.0,
		worldmap.Water:           0.0,
		worldmap.DeepWater:       0.0,
		worldmap.Underbrush:      0.5,
		worldmap.LightUnderbrush: 0.25,
		worldmap.MiddleWoodLogs:  0.6,
		worldmap.Hedge:           0.7,
		worldmap.MiddleRock:      1.0,
	}
}

// Opacity returns the configured opacity for a terrain type, defaulting to
// zero (fully transparent) for any type absent from the table — e.g. after
// a ChangeConfig message narrows it.
func (c *Config) Opacity(t worldmap.TerrainType) float64 {
	return c.TerrainOpacity[t]
}

// defaultBehaviorVisibilityModifier collapses Crouched/Lying/Standing to a
// single constant per Body variant, per §9's open question: the original's
// visibility_behavior_modifier match arms for all three postures return the
// same value, and that collapse is preserved rather than invented apart.
// Keys are battle.BehaviorKind values, duplicated here as plain ints to
// avoid an import cycle (battle does not depend on config).
func defaultBehaviorVisibilityModifier() map[int]float64 {
	const (
		behaviorIdle          = 0
		behaviorMoveTo        = 1
		behaviorMoveFastTo    = 2
		behaviorSneakTo       = 3
		behaviorDriveTo       = 4
		behaviorRotateTo      = 5
		behaviorDefend        = 6
		behaviorHide          = 7
		behaviorSuppressFire  = 8
		behaviorEngageSoldier = 9
		behaviorDead          = 10
		behaviorUnconscious   = 11
	)
	return map[int]float64{
		behaviorIdle:          0.0,
		behaviorMoveTo:        1.0,
		behaviorMoveFastTo:    2.0,
		behaviorSneakTo:       -0.9,
		behaviorDriveTo:       1.5,
		behaviorRotateTo:      0.5,
		behaviorDefend:        0.0,
		behaviorHide:          -0.9,
		behaviorSuppressFire:  0.5,
		behaviorEngageSoldier: 0.5,
		behaviorDead:          0.0,
		behaviorUnconscious:   0.0,
	}
}

// ChangeConfigMessage is the one Input/Output message kind that mutates
// Config — the only seam through which the authoritative server's tuning
// changes mid-battle (§4.10 message taxonomy: "ChangeConfig(...)").
type ChangeConfigMessage struct {
	VisibleStartsAt   *float64
	EndMorale         *float64
	FlagWeightFormula *string
}

// Apply mutates only the fields the message sets, leaving the rest of the
// running configuration untouched.
func (c *Config) Apply(msg ChangeConfigMessage) {
	if msg.VisibleStartsAt != nil {
		c.VisibleStartsAt = *msg.VisibleStartsAt
	}
	if msg.EndMorale != nil {
		c.EndMorale = *msg.EndMorale
	}
	if msg.FlagWeightFormula != nil {
		c.FlagWeightFormula = *msg.FlagWeightFormula
	}
}
