package progression

import (
	"math"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

// XPRequiredForLevel returns the XP needed to go from level to level+1:
// floor(100 * level^1.5). Levels below 1 are treated as 1.
func XPRequiredForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// LevelFromXP places cumulative XP on the level curve. Level starts at 1 for
// zero XP; negative XP is treated as zero. The remaining XP is compared
// instead of the running sum so the loop ends for any int.
func LevelFromXP(totalXP int) domain.LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	used := 0
	for {
		need := XPRequiredForLevel(level)
		if need > totalXP-used {
			return domain.LevelProgress{
				Level:            level,
				CurrentXPInLevel: totalXP - used,
				XPToNextLevel:    need,
			}
		}
		used += need
		level++
	}
}
