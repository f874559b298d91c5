package calib

import "math"

// Rotation converts a Rodrigues rotation vector to a rotation matrix.
func Rotation(rvec [3]float64) [3][3]float64 {
	theta := math.Sqrt(rvec[0]*rvec[0] + rvec[1]*rvec[1] + rvec[2]*rvec[2])
	if theta < 1e-12 {
		return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}

	kx, ky, kz := rvec[0]/theta, rvec[1]/theta, rvec[2]/theta
	c, s := math.Cos(theta), math.Sin(theta)
	v := 1 - c

	return [3][3]float64{
		{c + kx*kx*v, kx*ky*v - kz*s, kx*kz*v + ky*s},
		{ky*kx*v + kz*s, c + ky*ky*v, ky*kz*v - kx*s},
		{kz*kx*v - ky*s, kz*ky*v + kx*s, c + kz*kz*v},
	}
}

// Project maps an object-space point to pixel coordinates for a pose given
// as rotation and translation vectors. ok is false when the point does not
// lie in front of the camera (z <= 0), in which case x and y are zero.
// Distortion terms beyond k1, k2, p1, p2, k3 are ignored.
func (c Coefficients) Project(p, rvec, tvec [3]float64) (x, y float64, ok bool) {
	r := Rotation(rvec)

	var cam [3]float64
	for i := 0; i < 3; i++ {
		cam[i] = r[i][0]*p[0] + r[i][1]*p[1] + r[i][2]*p[2] + tvec[i]
	}
	if cam[2] <= 0 {
		return 0, 0, false
	}

	xn, yn := cam[0]/cam[2], cam[1]/cam[2]

	var k1, k2, p1, p2, k3 float64
	coeffs := []*float64{&k1, &k2, &p1, &p2, &k3}
	for i := 0; i < len(coeffs) && i < len(c.d); i++ {
		*coeffs[i] = c.d[i]
	}

	r2 := xn*xn + yn*yn
	radial := 1 + k1*r2 + k2*r2*r2 + k3*r2*r2*r2
	xd := xn*radial + 2*p1*xn*yn + p2*(r2+2*xn*xn)
	yd := yn*radial + p1*(r2+2*yn*yn) + 2*p2*xn*yn

	x = c.K[0][0]*xd + c.K[0][1]*yd + c.K[0][2]
	y = c.K[1][1]*yd + c.K[1][2]
	return x, y, true
}
