package counter

// Step returns the per-tick increment for a number counting up to target.
// It yields roughly one hundred visible increments whatever the magnitude and never
// less than 1, so every finite target is reached.
func Step(target int64) int64 {
	step := target / 100
	if step < 1 {
		return 1
	}
	return step
}
