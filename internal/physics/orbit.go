package physics

// CircularSpeed is the speed of a circular orbit at distance d around mass.
func CircularSpeed(mass, d float32) float32 {
	return sqrt32(mass / d)
}

// OrbitVelocity returns the tangential circular-orbit velocity for a
// body at (x, y) around a mass at (cx, cy). ok is false when the body sits
// within distance 1 of the center, where no sensible tangent exists.
func OrbitVelocity(x, y, cx, cy, mass float32) (vx, vy float32, ok bool) {
	dx, dy := x-cx, y-cy
	d := sqrt32(dx*dx + dy*dy)
	if d <= 1 {
		return 0, 0, false
	}
	v := CircularSpeed(mass, d)
	return -dy / d * v, dx / d * v, true
}
