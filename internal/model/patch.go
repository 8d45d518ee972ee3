package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patch is the typed partial update the extractor produces from one
// utterance. Nil pointers mean "nothing learned for this field"; merge
// logic is exhaustive over the struct rather than over runtime keys.
type Patch struct {
	Name  *string
	Phone *string
	Email *string

	PropertyType *PropertyType
	Bedrooms     *int
	Bathrooms    *int
	Location     *string
	Zone         *string
	Neighborhood *string
	MinArea      *int
	PropertyAge  *string

	Budget     *BudgetPatch
	Amenities  *AmenityPatch
	Purchase   *PurchasePatch
	Timeline   *TimelinePatch
	Motivation *MotivationPatch
	Situation  *SituationPatch
	Deciders   *DecidersPatch
}

// BudgetPatch updates budget leaves independently.
type BudgetPatch struct {
	Min      *int
	Max      *int
	Exact    *int
	Flexible *bool
}

// AmenityPatch carries amenity tags per intensity class; merged by union.
type AmenityPatch struct {
	Essential      []string
	HighPriority   []string
	MediumPriority []string
	Excluded       []string
}

// PurchasePatch updates purchase-condition leaves.
type PurchasePatch struct {
	Method      *PaymentMethod
	PreApproved *bool
}

// TimelinePatch updates timeline leaves.
type TimelinePatch struct {
	When    *TimelineBucket
	Urgency *Urgency
}

// MotivationPatch updates motivation leaves; pain points union.
type MotivationPatch struct {
	Primary    *Motivation
	Story      *string
	PainPoints []string
}

// SituationPatch updates the current-situation leaf.
type SituationPatch struct {
	Living *LivingSituation
}

// DecidersPatch sets decision-maker flags; only true values are applied,
// so a later "we decide together" never unsets an earlier flag.
type DecidersPatch struct {
	Alone   *bool
	Partner *bool
	Family  *bool
}

// IsEmpty reports whether the patch carries no information at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil &&
		p.PropertyType == nil && p.Bedrooms == nil && p.Bathrooms == nil &&
		p.Location == nil && p.Zone == nil && p.Neighborhood == nil &&
		p.MinArea == nil && p.PropertyAge == nil &&
		p.Budget == nil && p.Amenities == nil && p.Purchase == nil &&
		p.Timeline == nil && p.Motivation == nil && p.Situation == nil &&
		p.Deciders == nil
}

// Apply deep-merges the patch into the profile. Scalar leaves follow
// last-write-wins for non-nil incoming values; a known value is never
// replaced with null because nil patch fields are skipped. Slice-valued
// leaves accumulate by set-union. The quality score is recomputed after
// every apply.
func (lp *LeadProfile) Apply(p Patch) {
	if p.Name != nil {
		lp.Name = p.Name
	}
	if p.Phone != nil {
		lp.Phone = p.Phone
	}
	if p.Email != nil {
		lp.Email = p.Email
	}
	if p.PropertyType != nil {
		lp.PropertyType = p.PropertyType
	}
	if p.Bedrooms != nil {
		lp.Bedrooms = p.Bedrooms
	}
	if p.Bathrooms != nil {
		lp.Bathrooms = p.Bathrooms
	}
	if p.Location != nil {
		lp.Location = p.Location
	}
	if p.Zone != nil {
		lp.Zone = p.Zone
	}
	if p.Neighborhood != nil {
		lp.Neighborhood = p.Neighborhood
	}
	if p.MinArea != nil {
		lp.MinArea = p.MinArea
	}
	if p.PropertyAge != nil {
		lp.PropertyAge = p.PropertyAge
	}
	if p.Budget != nil {
		if p.Budget.Min != nil {
			lp.Budget.Min = p.Budget.Min
		}
		if p.Budget.Max != nil {
			lp.Budget.Max = p.Budget.Max
		}
		if p.Budget.Exact != nil {
			lp.Budget.Exact = p.Budget.Exact
		}
		if p.Budget.Flexible != nil {
			lp.Budget.Flexible = *p.Budget.Flexible
		}
	}
	if p.Amenities != nil {
		lp.Amenities.Essential = unionStrings(lp.Amenities.Essential, p.Amenities.Essential)
		lp.Amenities.HighPriority = unionStrings(lp.Amenities.HighPriority, p.Amenities.HighPriority)
		lp.Amenities.MediumPriority = unionStrings(lp.Amenities.MediumPriority, p.Amenities.MediumPriority)
		lp.Amenities.Excluded = unionStrings(lp.Amenities.Excluded, p.Amenities.Excluded)
	}
	if p.Purchase != nil {
		if p.Purchase.Method != nil {
			lp.Purchase.Method = p.Purchase.Method
		}
		if p.Purchase.PreApproved != nil && *p.Purchase.PreApproved {
			lp.Purchase.PreApproved = true
		}
	}
	if p.Timeline != nil {
		if p.Timeline.When != nil {
			lp.Timeline.When = p.Timeline.When
		}
		if p.Timeline.Urgency != nil {
			lp.Timeline.Urgency = p.Timeline.Urgency
		}
	}
	if p.Motivation != nil {
		if p.Motivation.Primary != nil {
			lp.Motivation.Primary = p.Motivation.Primary
		}
		if p.Motivation.Story != nil {
			lp.Motivation.Story = p.Motivation.Story
		}
		lp.Motivation.PainPoints = unionStrings(lp.Motivation.PainPoints, p.Motivation.PainPoints)
	}
	if p.Situation != nil && p.Situation.Living != nil {
		lp.Situation.Living = p.Situation.Living
	}
	if p.Deciders != nil {
		if p.Deciders.Alone != nil && *p.Deciders.Alone {
			lp.Deciders.Alone = true
		}
		if p.Deciders.Partner != nil && *p.Deciders.Partner {
			lp.Deciders.Partner = true
		}
		if p.Deciders.Family != nil && *p.Deciders.Family {
			lp.Deciders.Family = true
		}
	}

	lp.UpdatedAt = time.Now()
	lp.RecomputeScore()
}

var (
	phoneDigitsRe = regexp.MustCompile(`^\d{10,11}$`)
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// SetField writes a single nested field by dot path. It is used for
// structured answers (menu buttons, dedicated contact questions) rather
// than free-text extraction. Invalid phone/email values are rejected so
// the presentation layer can re-ask; the profile is left untouched.
func (lp *LeadProfile) SetField(path string, value string) error {
	value = strings.TrimSpace(value)

	switch path {
	case "name":
		if len(value) < 2 {
			return fmt.Errorf("name too short")
		}
		lp.Name = &value
	case "phone":
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, value)
		if !phoneDigitsRe.MatchString(digits) {
			return fmt.Errorf("invalid phone number: %q", value)
		}
		lp.Phone = &digits
	case "email":
		if !emailRe.MatchString(value) {
			return fmt.Errorf("invalid email address: %q", value)
		}
		lp.Email = &value
	case "propertyType":
		t := PropertyType(value)
		lp.PropertyType = &t
	case "bedrooms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid bedroom count: %q", value)
		}
		lp.Bedrooms = &n
	case "location":
		lp.Location = &value
	case "budget.min", "budget.max", "budget.exact":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid budget value: %q", value)
		}
		switch path {
		case "budget.min":
			lp.Budget.Min = &n
		case "budget.max":
			lp.Budget.Max = &n
		default:
			lp.Budget.Exact = &n
		}
	case "purchase.method":
		m := PaymentMethod(value)
		lp.Purchase.Method = &m
	case "timeline.when":
		w := TimelineBucket(value)
		lp.Timeline.When = &w
	case "motivation.primary":
		m := Motivation(value)
		lp.Motivation.Primary = &m
	case "situation.living":
		l := LivingSituation(value)
		lp.Situation.Living = &l
	default:
		return fmt.Errorf("unknown field path: %q", path)
	}

	lp.UpdatedAt = time.Now()
	lp.RecomputeScore()
	return nil
}
