package transform

import "math"

// gimbalTol bounds |sin(y/2)| or |cos(y/2)| below which the middle Z-Y-Z
// angle is taken as exactly 0 or pi and the outer angles collapse into one.
const gimbalTol = 1e-12

// yzyToZyz converts a Y-Z-Y Euler triple into the equivalent Z-Y-Z triple.
// Both describe the same SU(2) rotation; the conversion goes through the
// quaternion of the composite rotation. The two gimbal-locked cases (middle
// angle 0 or pi) are handled separately: there the atan2 extraction is fed
// only rounding noise and its result would be arbitrary.
func yzyToZyz(y1, z, y2 float64) (float64, float64, float64) {
	if y1 == 0 && z == 0 && y2 == 0 {
		return 0, 0, 0
	}

	qw := math.Cos(z/2) * math.Cos((y1+y2)/2)
	qx := math.Sin(z/2) * math.Sin((y2-y1)/2)
	qy := math.Cos(z/2) * math.Sin((y1+y2)/2)
	qz := math.Sin(z/2) * math.Cos((y2-y1)/2)

	// For the target Z-Y-Z triple the quaternion components factor as
	//   qw = cos(y/2) cos((z1+z2)/2)   qz = cos(y/2) sin((z1+z2)/2)
	//   qy = sin(y/2) cos((z1-z2)/2)   qx = sin(y/2) sin((z1-z2)/2)
	sy := math.Hypot(qx, qy)
	cy := math.Hypot(qw, qz)
	if sy < gimbalTol {
		// Pure Z rotation
		return 2 * math.Atan2(qz, qw), 0, 0
	}
	if cy < gimbalTol {
		return 2 * math.Atan2(qx, qy), math.Pi, 0
	}

	sum := math.Atan2(qz, qw)
	diff := math.Atan2(qx, qy)
	return sum + diff, 2 * math.Atan2(sy, cy), sum - diff
}

// fuseRot returns the ZYZ angles of Rot(b) applied after Rot(a), i.e. the
// angles of the product Rot(b)·Rot(a). The inner RZ(omega1)·RZ(phi2) pair
// collapses, leaving an RY-RZ-RY core that yzyToZyz re-expresses.
func fuseRot(a, b [3]float64) [3]float64 {
	z1, y, z2 := yzyToZyz(a[1], a[2]+b[0], b[1])
	return [3]float64{a[0] + z1, y, z2 + b[2]}
}

// anglesClose reports whether every angle is within tol of zero.
func anglesClose(angles []float64, tol float64) bool {
	for _, a := range angles {
		if math.Abs(a) > tol {
			return false
		}
	}
	return true
}
