package model

import (
	"time"
)

// TimelineBucket classifies when the visitor intends to buy.
type TimelineBucket string

const (
	TimelineImmediate TimelineBucket = "immediate"
	Timeline1To3      TimelineBucket = "1-3months"
	Timeline3To6      TimelineBucket = "3-6months"
	Timeline6To12     TimelineBucket = "6-12months"
	TimelineExploring TimelineBucket = "exploring"
)

// Urgency is derived jointly with the timeline bucket.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// PaymentMethod is how the visitor intends to pay.
type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "cash"
	PaymentFinancing PaymentMethod = "financing"
	PaymentBoth      PaymentMethod = "both"
)

// Motivation is the primary reason the visitor is looking.
type Motivation string

const (
	MotivationFirstHome  Motivation = "first_home"
	MotivationUpgrade    Motivation = "upgrade"
	MotivationInvestment Motivation = "investment"
	MotivationLifeChange Motivation = "life_change"
	MotivationWork       Motivation = "work"
	MotivationOther      Motivation = "other"
)

// LivingSituation is where the visitor lives today.
type LivingSituation string

const (
	LivingRenting    LivingSituation = "renting"
	LivingOwning     LivingSituation = "owning"
	LivingWithFamily LivingSituation = "with_family"
	LivingOther      LivingSituation = "other"
)

// Intensity classifies how strongly a mentioned amenity is desired.
type Intensity string

const (
	IntensityEssential Intensity = "essential"
	IntensityHigh      Intensity = "high"
	IntensityMedium    Intensity = "medium"
	IntensityExclusion Intensity = "exclusion"
)

// Budget holds the visitor's price range in whole currency units.
// When both Min and Max are set, Min <= Max. Exact overrides the range for
// display purposes only.
type Budget struct {
	Min      *int `json:"min,omitempty"`
	Max      *int `json:"max,omitempty"`
	Exact    *int `json:"exact,omitempty"`
	Flexible bool `json:"flexible"`
}

// IsSet reports whether any budget figure is known.
func (b Budget) IsSet() bool {
	return b.Min != nil || b.Max != nil || b.Exact != nil
}

// AmenityPrefs partitions mentioned amenities by intensity. The slices
// behave as sets: merges union, never truncate.
type AmenityPrefs struct {
	Essential      []string `json:"essential,omitempty"`
	HighPriority   []string `json:"high_priority,omitempty"`
	MediumPriority []string `json:"medium_priority,omitempty"`
	Excluded       []string `json:"excluded,omitempty"`
}

// Wanted returns the amenities the visitor asked for (essential plus
// high-priority), in that order, without duplicates.
func (a AmenityPrefs) Wanted() []string {
	return unionStrings(a.Essential, a.HighPriority)
}

// PurchaseCondition describes how the purchase would be paid.
type PurchaseCondition struct {
	Method      *PaymentMethod `json:"method,omitempty"`
	PreApproved bool           `json:"pre_approved"`
}

// TimelineInfo describes when and how urgently the visitor wants to buy.
type TimelineInfo struct {
	When    *TimelineBucket `json:"when,omitempty"`
	Urgency *Urgency        `json:"urgency,omitempty"`
}

// MotivationInfo captures why the visitor is looking, the free-text story
// they told, and pain points inferred along the way.
type MotivationInfo struct {
	Primary    *Motivation `json:"primary,omitempty"`
	Story      *string     `json:"story,omitempty"`
	PainPoints []string    `json:"pain_points,omitempty"`
}

// SituationInfo describes the visitor's current housing situation.
type SituationInfo struct {
	Living *LivingSituation `json:"living,omitempty"`
}

// DecisionMakers captures who participates in the purchase decision.
type DecisionMakers struct {
	Alone   bool `json:"alone"`
	Partner bool `json:"partner"`
	Family  bool `json:"family"`
}

// LeadProfile is the accumulating structured record for one visitor
// session. One session owns exactly one profile; it is created empty at
// conversation start and mutated turn by turn through Apply and SetField.
type LeadProfile struct {
	ID string `json:"id"`

	// Identity
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`

	// Property criteria
	PropertyType *PropertyType `json:"property_type,omitempty"`
	Bedrooms     *int          `json:"bedrooms,omitempty"`
	Bathrooms    *int          `json:"bathrooms,omitempty"`
	Location     *string       `json:"location,omitempty"`
	Zone         *string       `json:"zone,omitempty"`
	Neighborhood *string       `json:"neighborhood,omitempty"`
	MinArea      *int          `json:"min_area,omitempty"`
	PropertyAge  *string       `json:"property_age,omitempty"`

	Budget     Budget            `json:"budget"`
	Amenities  AmenityPrefs      `json:"amenities"`
	Purchase   PurchaseCondition `json:"purchase"`
	Timeline   TimelineInfo      `json:"timeline"`
	Motivation MotivationInfo    `json:"motivation"`
	Situation  SituationInfo     `json:"situation"`
	Deciders   DecisionMakers    `json:"decision_makers"`

	// Derived; recomputed as a pure function of the fields above on every
	// mutation, never hand-set.
	QualityScore int `json:"quality_score"`

	QuestionsAnswered int       `json:"questions_answered"`
	StartedAt         time.Time `json:"started_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewLeadProfile returns an empty profile for a new session.
func NewLeadProfile(id string) *LeadProfile {
	now := time.Now()
	return &LeadProfile{
		ID:        id,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// unionStrings merges slices preserving first-seen order and dropping
// duplicates.
func unionStrings(slices ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range slices {
		for _, v := range s {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
