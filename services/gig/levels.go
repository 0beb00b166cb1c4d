package gig

import "dashdine/models"

// LowestLevel is the tier callers fall back to when the stored level is
// malformed. Falling back upward would widen the horizon for free.
const LowestLevel = models.LevelBronze

var levelTable = map[models.RiderLevel]models.LevelProfile{
	models.LevelBronze:   {Level: models.LevelBronze, Badge: "🥉 Bronze", AdvanceDays: 1},
	models.LevelSilver:   {Level: models.LevelSilver, Badge: "🥈 Silver", AdvanceDays: 3},
	models.LevelGold:     {Level: models.LevelGold, Badge: "🥇 Gold", AdvanceDays: 7},
	models.LevelPlatinum: {Level: models.LevelPlatinum, Badge: "💎 Platinum", AdvanceDays: 14},
}

// LevelProfile returns the horizon and badge for a tier.
func LevelProfile(level models.RiderLevel) (models.LevelProfile, error) {
	p, ok := levelTable[level]
	if !ok {
		return models.LevelProfile{}, ErrInvalidLevel
	}
	return p, nil
}

// HorizonDays returns how many days past today the tier may book.
func HorizonDays(level models.RiderLevel) (int, error) {
	p, err := LevelProfile(level)
	if err != nil {
		return 0, err
	}
	return p.AdvanceDays, nil
}
