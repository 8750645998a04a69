package performance

import (
	"strconv"
	"time"

	"hrerp/internal/domain/rollup"
)

// BuildSummary rolls goals up into completion, progress and rating figures.
// Cancelled goals are counted but excluded from the completion rate and the
// progress average. Ratings are bucketed by nearest whole point.
func BuildSummary(goals []Goal, now time.Time) PerformanceSummary {
	summary := PerformanceSummary{
		GoalsTotal:         len(goals),
		RatingDistribution: map[string]int{},
	}
	var progress, ratings []float64
	today := truncateDay(now)
	for _, g := range goals {
		switch g.Status {
		case GoalStatusCompleted:
			summary.GoalsCompleted++
		case GoalStatusCancelled:
			summary.GoalsCancelled++
			continue
		default:
			if g.DueDate != nil && truncateDay(*g.DueDate).Before(today) {
				summary.GoalsOverdue++
			}
		}
		progress = append(progress, g.Progress)
		if g.Rating != nil {
			ratings = append(ratings, *g.Rating)
			key := strconv.Itoa(int(*g.Rating + 0.5))
			summary.RatingDistribution[key]++
		}
	}
	summary.RatedGoals = len(ratings)
	summary.CompletionRate = rollup.Percentage(summary.GoalsCompleted, summary.GoalsTotal-summary.GoalsCancelled)
	summary.AverageProgress = rollup.Round1(rollup.Average(progress))
	summary.AverageRating = rollup.Round1(rollup.Average(ratings))
	return summary
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
