package battle

import (
	"math"

	"github.com/nstehr/vimy/vimy-core/geometry"
)

// VehicleType names a vehicle's class and the constants that govern its
// movement: drive speed, chassis rotation speed, and its footprint size in
// the size×size sense used by worldmap's Map.PointAllowVehicle.
type VehicleType int

const (
	VehicleTypeLightCar VehicleType = iota
	VehicleTypeTruck
	VehicleTypeTank
)

func (t VehicleType) String() string {
	switch t {
	case VehicleTypeLightCar:
		return "Light Car"
	case VehicleTypeTruck:
		return "Truck"
	case VehicleTypeTank:
		return "Tank"
	default:
		return "Unknown"
	}
}

// DriveSpeed is the vehicle's forward travel speed, in millimeters per
// tick, once its chassis is aligned with its target bearing.
func (t VehicleType) DriveSpeed() geometry.Distance {
	switch t {
	case VehicleTypeLightCar:
		return geometry.DistanceFromMeters(8)
	case VehicleTypeTruck:
		return geometry.DistanceFromMeters(5)
	case VehicleTypeTank:
		return geometry.DistanceFromMeters(3)
	default:
		return geometry.DistanceFromMeters(5)
	}
}

// ChassisRotationSpeed is the maximum angle, in radians, the chassis can
// turn in a single tick while rotating toward a target bearing.
func (t VehicleType) ChassisRotationSpeed() geometry.Angle {
	switch t {
	case VehicleTypeLightCar:
		return geometry.Angle(0.10)
	case VehicleTypeTruck:
		return geometry.Angle(0.06)
	case VehicleTypeTank:
		return geometry.Angle(0.03)
	default:
		return geometry.Angle(0.05)
	}
}

// Size is the vehicle's footprint, used by pathfind's size×size blocking
// check (§C3).
func (t VehicleType) Size() VehicleSize {
	switch t {
	case VehicleTypeLightCar:
		return 1
	case VehicleTypeTruck:
		return 2
	case VehicleTypeTank:
		return 2
	default:
		return 1
	}
}

// Vehicle is a driveable chassis that soldiers can board. Vehicles have no
// order/behavior/gesture of their own — a boarded soldier with the driver
// role executes DriveTo/RotateTo behaviors that mutate the vehicle's
// chassis fields directly (§4.7).
type Vehicle struct {
	Index  VehicleIndex
	Type   VehicleType
	Point  geometry.WorldPoint
	Angle  geometry.Angle
}

func NewVehicle(index VehicleIndex, t VehicleType, point geometry.WorldPoint, angle geometry.Angle) *Vehicle {
	return &Vehicle{Index: index, Type: t, Point: point, Angle: angle}
}

// ChassisOrientationMatch reports whether the chassis is aligned with
// target within the given tolerance — the gate the movement executor uses
// to decide RotateTo vs DriveTo (§4.7/§4.5).
func (v *Vehicle) ChassisOrientationMatch(target geometry.Angle, tolerance geometry.Angle) bool {
	diff := geometry.ShortAngle(v.Angle, target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// RotateToward turns the chassis by at most its type's rotation speed,
// never overshooting target. Returns true once alignment is reached.
func (v *Vehicle) RotateToward(target geometry.Angle, tolerance geometry.Angle) bool {
	if v.ChassisOrientationMatch(target, tolerance) {
		return true
	}
	step := v.Type.ChassisRotationSpeed()
	diff := geometry.ShortAngle(v.Angle, target)
	if diff > 0 {
		if diff < step {
			v.Angle = target
		} else {
			v.Angle = (v.Angle + step).Normalize()
		}
	} else {
		if -diff < step {
			v.Angle = target
		} else {
			v.Angle = (v.Angle - step).Normalize()
		}
	}
	return v.ChassisOrientationMatch(target, tolerance)
}

// DriveForward advances the chassis position along its current heading by
// its type's drive speed, converted from the angle's unit direction.
func (v *Vehicle) DriveForward() {
	dir := geometry.WorldPoint{X: math.Sin(float64(v.Angle)), Y: -math.Cos(float64(v.Angle))}
	meters := float64(v.Type.DriveSpeed().Meters())
	v.Point = v.Point.Add(dir.Scale(meters))
}

// BoardingPlace identifies a seat within a vehicle (driver, or a numbered
// passenger slot).
type BoardingPlace int

const (
	PlaceDriver BoardingPlace = iota
	PlacePassenger1
	PlacePassenger2
	PlacePassenger3
)
