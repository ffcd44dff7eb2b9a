package movement

import (
	"testing"

	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
)

func pathTo(points ...geometry.WorldPoint) geometry.WorldPaths {
	return geometry.NewWorldPaths([]geometry.WorldPath{geometry.NewWorldPath(points)})
}

func TestStepPedestrianAdvancesTowardWaypoint(t *testing.T) {
	s := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(0, 0), nil, nil)
	s.Order = battle.MoveToOrder(pathTo(geometry.NewWorldPoint(100, 0)), nil)
	s.Behavior = battle.MoveToBehavior(s.Order.Paths)
	cfg := config.Default()

	msgs := Resolve(s, battle.NewState(), ModeGround, cfg)
	if len(msgs) == 0 {
		t.Fatal("expected movement messages")
	}
	var moved bool
	for _, m := range msgs {
		if m.Kind == battle.MsgSoldier && m.Soldier.Kind == battle.SoldierSetWorldPosition {
			moved = true
			if m.Soldier.WorldPoint.X <= 0 || m.Soldier.WorldPoint.X >= 100 {
				t.Errorf("expected partial advance toward waypoint, got %v", m.Soldier.WorldPoint)
			}
		}
	}
	if !moved {
		t.Error("expected a world position message")
	}
}

func TestStepPedestrianArrivesAndAdoptsThen(t *testing.T) {
	s := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(0, 0), nil, nil)
	then := battle.DefendOrder(0)
	s.Order = battle.MoveToOrder(pathTo(geometry.NewWorldPoint(0.01, 0)), &then)
	s.Behavior = battle.MoveToBehavior(s.Order.Paths)
	cfg := config.Default()

	msgs := Resolve(s, battle.NewState(), ModeGround, cfg)
	battle.ReduceAll(&battle.State{Soldiers: []*battle.Soldier{s}}, msgs)

	if s.Order.Kind != battle.OrderDefend {
		t.Errorf("expected the order to adopt its Then continuation, got %v", s.Order.Kind)
	}
}

func TestStepVehicleRotatesBeforeDriving(t *testing.T) {
	state := battle.NewState()
	v := battle.NewVehicle(0, battle.VehicleTypeLightCar, geometry.NewWorldPoint(0, 0), geometry.Angle(0))
	state.Vehicles = []*battle.Vehicle{v}
	driver := battle.NewSoldier(0, battle.SideA, 0, geometry.NewWorldPoint(0, 0), nil, nil)
	driver.Order = battle.MoveToOrder(pathTo(geometry.NewWorldPoint(1000, 0)), nil)
	driver.Behavior = battle.DriveToBehavior(driver.Order.Paths)
	state.Soldiers = []*battle.Soldier{driver}
	state.SoldiersOnBoard = map[battle.SoldierIndex]battle.BoardPlacement{
		0: {Vehicle: 0, Place: battle.PlaceDriver},
	}
	cfg := config.Default()

	msgs := Resolve(driver, state, ModeVehicle, cfg)
	if len(msgs) != 1 || msgs[0].Kind != battle.MsgVehicle || msgs[0].Vehicle.Kind != battle.VehicleSetChassisOrientation {
		t.Fatalf("expected a chassis rotation message while misaligned, got %v", msgs)
	}

	battle.ReduceAll(state, msgs)
	for i := 0; i < 100; i++ {
		if v.ChassisOrientationMatch(geometry.AngleFromPoints(geometry.NewWorldPoint(1000, 0), v.Point), 0.05) {
			break
		}
		battle.ReduceAll(state, Resolve(driver, state, ModeVehicle, cfg))
	}

	msgs2 := Resolve(driver, state, ModeVehicle, cfg)
	var drove bool
	for _, m := range msgs2 {
		if m.Kind == battle.MsgVehicle && m.Vehicle.Kind == battle.VehicleSetWorldPosition {
			drove = true
		}
	}
	if !drove {
		t.Errorf("expected the vehicle to advance once its chassis is aligned, got %v", msgs2)
	}
}
