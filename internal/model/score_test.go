package model

import "testing"

func TestScoreContactOutweighsEverythingElse(t *testing.T) {
	withPhone := NewLeadProfile("a")
	withPhone.Apply(Patch{Phone: strPtr("51999998888")})

	withBudget := NewLeadProfile("b")
	exact := 500000
	withBudget.Apply(Patch{Budget: &BudgetPatch{Exact: &exact}})

	if withPhone.QualityScore <= withBudget.QualityScore {
		t.Fatalf("phone (%d) must outscore exact budget (%d)",
			withPhone.QualityScore, withBudget.QualityScore)
	}
}

func TestScoreExactBudgetBeatsRange(t *testing.T) {
	exactLead := NewLeadProfile("a")
	exact := 500000
	exactLead.Apply(Patch{Budget: &BudgetPatch{Exact: &exact}})

	rangeLead := NewLeadProfile("b")
	max := 500000
	rangeLead.Apply(Patch{Budget: &BudgetPatch{Max: &max}})

	if exactLead.QualityScore <= rangeLead.QualityScore {
		t.Fatalf("exact budget (%d) must outscore a range (%d)",
			exactLead.QualityScore, rangeLead.QualityScore)
	}
}

func TestScoreGrowsMonotonically(t *testing.T) {
	lp := NewLeadProfile("lead")
	mot := MotivationFirstHome
	when := TimelineImmediate
	urgency := UrgencyHigh
	method := PaymentFinancing

	steps := []Patch{
		{Budget: &BudgetPatch{Max: intPtr(500000)}},
		{Timeline: &TimelinePatch{When: &when, Urgency: &urgency}},
		{Motivation: &MotivationPatch{Primary: &mot}},
		{Purchase: &PurchasePatch{Method: &method}},
		{Name: strPtr("Ana")},
		{Phone: strPtr("51999998888")},
		{Email: strPtr("ana@example.com")},
	}

	prev := lp.QualityScore
	for i, patch := range steps {
		lp.Apply(patch)
		if lp.QualityScore < prev {
			t.Fatalf("step %d lowered the score: %d -> %d", i, prev, lp.QualityScore)
		}
		prev = lp.QualityScore
	}
	if prev > 100 {
		t.Fatalf("score exceeds cap: %d", prev)
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*LeadProfile)
		want  bool
	}{
		{"empty profile", func(*LeadProfile) {}, false},
		{"search axis only", func(lp *LeadProfile) {
			lp.Location = strPtr("Porto Alegre")
		}, false},
		{"qualification axis only", func(lp *LeadProfile) {
			lp.Bedrooms = intPtr(2)
		}, false},
		{"location plus bedrooms", func(lp *LeadProfile) {
			lp.Location = strPtr("Porto Alegre")
			lp.Bedrooms = intPtr(2)
		}, true},
		{"budget plus timeline", func(lp *LeadProfile) {
			lp.Budget.Max = intPtr(500000)
			when := Timeline1To3
			lp.Timeline.When = &when
		}, true},
		{"type plus motivation", func(lp *LeadProfile) {
			lp.PropertyType = typePtr(PropertyHouse)
			mot := MotivationUpgrade
			lp.Motivation.Primary = &mot
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp := NewLeadProfile("lead")
			tt.setup(lp)
			if got := lp.IsComplete(); got != tt.want {
				t.Fatalf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}
