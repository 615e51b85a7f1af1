package coupling

import "migration-advisor/src/model"

// complexityScore combines five normalized sub-scores into the migration
// complexity score in [0,100]. Each sub-score is scaled into [0,100] and
// clamped before weighting: afferent and efferent peaks at 2 points per
// dependency, the instability and distance means at 100 points full scale,
// and cycles at 10 points per detected chain. The weights are validated at
// configuration time to sum to 1.0.
func (e *Engine) complexityScore(summary model.CouplingSummary) float64 {
	w := e.cfg.Weights
	score := clampScore(float64(summary.MaxAfferent)*2)*w.MaxAfferent +
		clampScore(float64(summary.MaxEfferent)*2)*w.MaxEfferent +
		clampScore(summary.MeanInstability*100)*w.MeanInstability +
		clampScore(summary.MeanDistance*100)*w.MeanDistance +
		clampScore(float64(summary.CycleCount)*10)*w.CycleCount

	return clampScore(score)
}

// clampScore clamps into the score range [0,100]
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
