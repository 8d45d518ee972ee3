package model

// Quality score weights. Contact reachability dominates, then budget
// signal, then qualification fields.
const (
	scorePhone       = 25
	scoreBudgetExact = 20
	scoreBudgetRange = 15
	scoreMethod      = 12
	scoreMotivation  = 10
	scoreName        = 6
	scoreEmail       = 6
	scoreTimeline    = 4
	scoreUrgencyHigh = 2

	scoreMax = 100
)

// RecomputeScore rebuilds QualityScore from the current profile state.
// The score is a pure function of the profile, so re-stating a fact
// never changes it and learning a fact never lowers it.
func (lp *LeadProfile) RecomputeScore() {
	s := 0
	if lp.Phone != nil {
		s += scorePhone
	}
	if lp.Budget.Exact != nil {
		s += scoreBudgetExact
	} else if lp.Budget.Min != nil || lp.Budget.Max != nil {
		s += scoreBudgetRange
	}
	if lp.Purchase.Method != nil {
		s += scoreMethod
	}
	if lp.Motivation.Primary != nil {
		s += scoreMotivation
	}
	if lp.Name != nil {
		s += scoreName
	}
	if lp.Email != nil {
		s += scoreEmail
	}
	if lp.Timeline.When != nil {
		s += scoreTimeline
		if lp.Timeline.Urgency != nil && *lp.Timeline.Urgency == UrgencyHigh {
			s += scoreUrgencyHigh
		}
	}
	if s > scoreMax {
		s = scoreMax
	}
	lp.QualityScore = s
}

// IsComplete reports whether the profile carries enough to close the
// conversation and show results: at least one search axis (type, budget
// or location) plus at least one qualification axis (bedrooms,
// motivation or timeline).
func (lp *LeadProfile) IsComplete() bool {
	searchAxis := lp.PropertyType != nil || lp.Budget.IsSet() || lp.Location != nil
	qualAxis := lp.Bedrooms != nil || lp.Motivation.Primary != nil || lp.Timeline.When != nil
	return searchAxis && qualAxis
}
