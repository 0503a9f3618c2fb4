package advisory

import (
	"cmp"
	"iter"
	"slices"

	"farmadvisor/internal/models"
)

// Rank orders scores by descending score, breaking ties by crop name.
// The input is copied when Rank is called; each iteration of the returned
// sequence sorts a fresh copy, so it can be ranged over any number of times.
func Rank(scores []models.SuitabilityScore) iter.Seq[models.SuitabilityScore] {
	snapshot := slices.Clone(scores)

	return func(yield func(models.SuitabilityScore) bool) {
		ordered := slices.Clone(snapshot)
		slices.SortStableFunc(ordered, compareScores)

		for _, s := range ordered {
			if !yield(s) {
				return
			}
		}
	}
}

func compareScores(a, b models.SuitabilityScore) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Crop.Name, b.Crop.Name)
}

// TierGroup is one display section of the crop suggestions
type TierGroup struct {
	Tier  models.Tier               `json:"tier"`
	Crops []models.SuitabilityScore `json:"crops"`
}

var tierOrder = []models.Tier{models.HighlyRecommended, models.GoodOption, models.ConsiderLater}

// GroupByTier buckets a ranked sequence into tiers in display order.
// Every tier is present, possibly empty, and keeps the sequence's order.
func GroupByTier(ranked iter.Seq[models.SuitabilityScore]) []TierGroup {
	byTier := make(map[models.Tier][]models.SuitabilityScore, len(tierOrder))
	for s := range ranked {
		byTier[s.Tier] = append(byTier[s.Tier], s)
	}

	groups := make([]TierGroup, 0, len(tierOrder))
	for _, t := range tierOrder {
		groups = append(groups, TierGroup{Tier: t, Crops: byTier[t]})
	}
	return groups
}
