// Package victory resolves flag ownership and side morale each tick
// (§4.11): a flag is owned by whichever side holds an alive soldier inside
// its shape, contested ownership goes to Both, and an empty flag keeps its
// previous owner. Morale is an expr-lang weighted sum of the flags each
// side owns, and the battle ends once either side's morale drops to or
// below the configured floor.
package victory

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

// FlagWeightEnv is the expr evaluation environment for a flag's weight
// formula — it exposes only what the formula is allowed to read, not the
// whole battle state.
type FlagWeightEnv struct {
	Name       string
	AreaMeters float64
	TileCount  int
	OwningSide string
}

// CompileWeightFormula compiles a flag weight expression against
// FlagWeightEnv, mirroring rules.compileRules' expr.Compile/expr.Env/
// expr.AsFloat64 pattern.
func CompileWeightFormula(src string) (*vm.Program, error) {
	prog, err := expr.Compile(src, expr.Env(FlagWeightEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile flag weight formula %q: %w", src, err)
	}
	return prog, nil
}

// EvaluateOwnership recomputes every flag's ownership for one tick (§4.11
// transition rules) and returns the messages needed to apply the result —
// it never mutates state directly so the replication envelope matches
// exactly what changed.
func EvaluateOwnership(state *battle.State, m *worldmap.Map) []battle.BattleStateMessage {
	next := make(map[string]battle.FlagOwner, len(m.Flags))
	for name, flag := range m.Flags {
		aIn, bIn := presence(state, flag)
		switch {
		case aIn && bIn:
			next[name] = battle.FlagOwnerBoth
		case aIn:
			next[name] = battle.FlagOwnerA
		case bIn:
			next[name] = battle.FlagOwnerB
		default:
			next[name] = state.FlagsOwnership[name]
		}
	}
	return []battle.BattleStateMessage{battle.SetFlagsOwnershipMessage(next)}
}

// presence reports whether an alive, conscious soldier of each side stands
// inside the flag's shape (§4.11 "a_in"/"b_in").
func presence(state *battle.State, flag worldmap.Flag) (aIn, bIn bool) {
	for _, s := range state.Soldiers {
		if !s.CanBeCountedForMorale() || !flag.Shape.Contains(s.WorldPoint) {
			continue
		}
		if s.Side == battle.SideA {
			aIn = true
		} else {
			bIn = true
		}
		if aIn && bIn {
			return true, true
		}
	}
	return aIn, bIn
}

// EvaluateMorale sums each side's owned-flag weights into [0,1] morale and
// returns the SetAMorale/SetBMorale messages (§4.11: "aggregate morale is a
// float in [0,1] summed across flag weights").
func EvaluateMorale(state *battle.State, m *worldmap.Map, prog *vm.Program) ([]battle.BattleStateMessage, error) {
	total := 0.0
	aWeight := 0.0
	bWeight := 0.0
	for name, flag := range m.Flags {
		w, err := evalWeight(prog, m, flag, state.FlagsOwnership[name])
		if err != nil {
			return nil, err
		}
		total += w
		switch state.FlagsOwnership[name] {
		case battle.FlagOwnerA:
			aWeight += w
		case battle.FlagOwnerB:
			bWeight += w
		case battle.FlagOwnerBoth:
			aWeight += w / 2
			bWeight += w / 2
		}
	}
	aMorale, bMorale := 1.0, 1.0
	if total > 0 {
		aMorale = clamp01(aWeight / total)
		bMorale = clamp01(bWeight / total)
	}
	return []battle.BattleStateMessage{
		battle.SetAMoraleMessage(aMorale),
		battle.SetBMoraleMessage(bMorale),
	}, nil
}

func evalWeight(prog *vm.Program, m *worldmap.Map, flag worldmap.Flag, owner battle.FlagOwner) (float64, error) {
	env := FlagWeightEnv{
		Name:       flag.Name,
		AreaMeters: flagArea(flag),
		TileCount:  tileCount(m, flag),
		OwningSide: owner.String(),
	}
	result, err := vm.Run(prog, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate flag weight for %q: %w", flag.Name, err)
	}
	w, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("flag weight formula for %q did not return a float", flag.Name)
	}
	return w, nil
}

func flagArea(flag worldmap.Flag) float64 {
	dx := float64(flag.Shape.Max.X - flag.Shape.Min.X)
	dy := float64(flag.Shape.Max.Y - flag.Shape.Min.Y)
	return dx * dy
}

// tileCount counts the in-map grid cells the flag's shape overlaps — the
// "tile composition" a weight formula can read.
func tileCount(m *worldmap.Map, flag worldmap.Flag) int {
	min := m.GridFromWorld(flag.Shape.Min)
	max := m.GridFromWorld(flag.Shape.Max)
	count := 0
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			if m.Contains(geometry.NewGridPoint(x, y)) {
				count++
			}
		}
	}
	return count
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CheckEnd reports whether either side's morale has dropped to or below
// the configured floor, in which case the battle ends (§4.11) and the
// opposite side is recorded as victor (§3 "Ended(Victor)"). A's morale is
// checked first, so a tie where both sides cross the floor the same tick
// is resolved in B's favor.
func CheckEnd(state *battle.State, cfg *config.Config) []battle.BattleStateMessage {
	if state.AMorale <= cfg.EndMorale {
		return []battle.BattleStateMessage{battle.SetPhaseEndedMessage(battle.SideB)}
	}
	if state.BMorale <= cfg.EndMorale {
		return []battle.BattleStateMessage{battle.SetPhaseEndedMessage(battle.SideA)}
	}
	return nil
}
