package config

// DifficultyTier is one step of the speed curve: scores up to and including
// Threshold use Factor as the enemy travel duration in seconds.
type DifficultyTier struct {
	Threshold int
	Factor    float64
}

// difficultyTable is ordered by ascending threshold. Factors only decrease,
// so enemies cross the screen faster as the score grows.
var difficultyTable = [...]DifficultyTier{
	{Threshold: 20, Factor: 2.0},
	{Threshold: 40, Factor: 1.75},
	{Threshold: 60, Factor: 1.5},
	{Threshold: 80, Factor: 1.25},
	{Threshold: 100, Factor: 1.0},
}

// DifficultyTiers returns a copy of the fixed difficulty table.
func DifficultyTiers() []DifficultyTier {
	tiers := difficultyTable
	return tiers[:]
}

// TierIndex returns the index of the active tier for score: the first tier
// whose threshold is at least score, or the last tier past every threshold.
func TierIndex(score int) int {
	for i, t := range difficultyTable {
		if score <= t.Threshold {
			return i
		}
	}
	return len(difficultyTable) - 1
}

// DifficultyFactor returns the enemy travel duration for score.
func DifficultyFactor(score int) float64 {
	return difficultyTable[TierIndex(score)].Factor
}
