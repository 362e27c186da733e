// Package chem provides stateless conversion helpers between stored mass and
// derived concentration, plus the shared growth-curve primitives used by the
// biochemical systems.
package chem

// PPM derives concentration in parts per million from absolute mass (mg) and
// water volume (L). Returns 0 when no water is present; concentration in an
// empty tank is undefined and must never propagate NaN.
func PPM(massMg, waterL float64) float64 {
	if waterL <= 0 {
		return 0
	}
	return massMg / waterL
}

// MassFromPPM is the inverse of PPM for waterL > 0.
func MassFromPPM(ppm, waterL float64) float64 {
	if waterL <= 0 {
		return 0
	}
	return ppm * waterL
}

// CarryingCapacity returns the maximum sustainable bacteria population for a
// colonizable area.
func CarryingCapacity(surfaceCm2, bacteriaPerArea float64) float64 {
	if surfaceCm2 <= 0 || bacteriaPerArea <= 0 {
		return 0
	}
	return surfaceCm2 * bacteriaPerArea
}

// Logistic computes carrying-capacity-bounded growth r*N*(1 - N/K), clamped
// so the population never overshoots K. A non-positive capacity yields no
// growth rather than a division blowup.
func Logistic(population, rate, capacity float64) float64 {
	if population <= 0 || rate <= 0 || capacity <= 0 {
		return 0
	}
	headroom := capacity - population
	if headroom <= 0 {
		return 0
	}
	growth := population * rate * (1 - population/capacity)
	if growth > headroom {
		growth = headroom
	}
	return growth
}

// Saturation is a Michaelis-Menten style curve: value/(value+halfMax),
// rising from 0 toward 1. A non-positive halfMax means no limiting factor
// and yields 1.
func Saturation(value, halfMax float64) float64 {
	if value <= 0 {
		return 0
	}
	if halfMax <= 0 {
		return 1
	}
	return value / (value + halfMax)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
