package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"concierge/internal/lexicon"
	"concierge/internal/model"
	"concierge/internal/utils"
)

// Extractor turns one free-text utterance into a typed profile patch.
// Extraction never fails: text that matches nothing yields an empty
// patch, and running the same text twice yields the same patch.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Budget patterns operate on folded text. "milhao" anywhere in the
// message suppresses the thousand pattern, so "1.5 milhão" is never
// misread as 1500.
var (
	budgetTopicRe = regexp.MustCompile(`\bmil\b|milh(?:ao|oes)|reais|r\$|\d\s*k\b`)
	millionWordRe = regexp.MustCompile(`milh(?:ao|oes)`)
	millionMaxRe  = regexp.MustCompile(`(?:ate\s*|uns?\s*|maximo\s*(?:de\s*)?)?(?:r\$\s*)?(\d+(?:[.,]\d+)?)\s*milh(?:ao|oes)`)
	thousandMaxRe = regexp.MustCompile(`(?:ate\s*|uns?\s*|maximo\s*(?:de\s*)?)?(?:r\$\s*)?(\d+(?:[.,]\d+)?)\s*(?:mil\b|k\b)`)
	rangeRe       = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:a|ate|-)\s*(\d+(?:[.,]\d+)?)\s*(milh(?:ao|oes)|mil\b|k\b)`)
	budgetMinRe   = regexp.MustCompile(`(?:a partir de|no minimo|minimo)\s*(?:de\s*)?(?:r\$\s*)?(\d+(?:[.,]\d+)?)\s*(milh(?:ao|oes)|mil\b|k\b)?`)
	bareAmountRe  = regexp.MustCompile(`(?:ate\s*|uns?\s*)?(?:r\$\s*)?(\d{4,9})\b`)

	bedroomDigitRe = regexp.MustCompile(`(\d+)\s*(?:quartos?|dormitorios?|dorm\b)`)
	bedroomWordRe  = regexp.MustCompile(`(um|uma|dois|duas|tres|quatro|cinco|seis)\s*(?:quartos?|dormitorios?)`)
	bathroomRe     = regexp.MustCompile(`(\d+)\s*(?:banheiros?|wc\b|lavabo)`)
	areaRe         = regexp.MustCompile(`(\d+)\s*(?:m²|m2\b|metros quadrados)`)
	ageNewRe       = regexp.MustCompile(`\bnovos?\b|recente|lancamento`)
	ageUsedRe      = regexp.MustCompile(`usado|antigo|reformado`)

	phoneRe = regexp.MustCompile(`(?:\(?\d{2}\)?\s*)?\d{4,5}[-.\s]?\d{4,5}`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	namePrefixRe    = regexp.MustCompile(`(?i)^(?:oi[,!]?\s*)?(?:me chamo|meu nome [eé]|sou [oa]|sou)\s+`)
	freeLocationRe  = regexp.MustCompile(`(?:\bem\b|\bna\b|\bno\b)\s+([a-z][a-z ]{2,28}?)(?:,|\.|$)`)
	transportRe     = regexp.MustCompile(`\bmetro\b|onibus|transporte|estacao`)
	petMentionRe    = regexp.MustCompile(`\bpets?\b|cachorro|gato`)
	amenityWindowSz = 50
)

// Extract parses the utterance into a patch, using the profile only to
// honor the never-overwrite rules: a known phone, email or property
// type is not replaced by a weaker free-text match unless the
// conversation is explicitly focused on that field.
func (e *Extractor) Extract(text string, focus model.FieldID, profile *model.LeadProfile) model.Patch {
	var p model.Patch
	if strings.TrimSpace(text) == "" {
		return p
	}
	folded := utils.Fold(text)

	if focus == model.FieldName {
		name := strings.TrimSpace(namePrefixRe.ReplaceAllString(strings.TrimSpace(text), ""))
		name = strings.Trim(name, ".!")
		if len(name) >= 2 {
			p.Name = &name
		}
	}

	if focus == model.FieldPropertyType || profile.PropertyType == nil {
		if t, ok := lexicon.PropertyTypeOf(folded); ok {
			p.PropertyType = &t
		}
	}

	e.extractRooms(folded, focus, profile, &p)
	e.extractLocation(folded, focus, profile, &p)
	e.extractBudget(folded, focus, &p)
	e.extractAmenities(folded, &p)
	e.extractContact(text, focus, profile, &p)
	e.extractQualification(text, folded, focus, profile, &p)

	if m := areaRe.FindStringSubmatch(folded); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			p.MinArea = &n
		}
	}

	// "novo hamburgo" would otherwise read as a new-build preference
	ageText := strings.ReplaceAll(folded, "novo hamburgo", "")
	if ageNewRe.MatchString(ageText) {
		age := "new"
		p.PropertyAge = &age
	} else if ageUsedRe.MatchString(ageText) {
		age := "used"
		p.PropertyAge = &age
	}

	return p
}

func (e *Extractor) extractRooms(folded string, focus model.FieldID, profile *model.LeadProfile, p *model.Patch) {
	if focus == model.FieldBedrooms || profile.Bedrooms == nil {
		// An explicit count always beats household inference.
		if m := bedroomDigitRe.FindStringSubmatch(folded); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				p.Bedrooms = &n
			}
		} else if m := bedroomWordRe.FindStringSubmatch(folded); m != nil {
			if n, ok := lexicon.NumberWord[m[1]]; ok {
				p.Bedrooms = &n
			}
		} else if n, ok := lexicon.HouseholdBedrooms(folded); ok {
			p.Bedrooms = &n
		}
	}

	if m := bathroomRe.FindStringSubmatch(folded); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			p.Bathrooms = &n
		}
	}
}

func (e *Extractor) extractLocation(folded string, focus model.FieldID, profile *model.LeadProfile, p *model.Patch) {
	if focus == model.FieldLocation || profile.Location == nil {
		if city, ok := lexicon.CityOf(folded); ok {
			p.Location = &city
		} else if focus == model.FieldLocation {
			// Only when directly asked: take "em <place>" at face value.
			if m := freeLocationRe.FindStringSubmatch(folded); m != nil {
				place := strings.TrimSpace(m[1])
				if !isStopPhrase(place) {
					p.Location = &place
				}
			}
		}
	}

	if profile.Zone == nil {
		if zone, ok := lexicon.ZoneOf(folded); ok {
			p.Zone = &zone
		}
	}
	if profile.Neighborhood == nil {
		if hood, ok := lexicon.NeighborhoodOf(folded); ok {
			p.Neighborhood = &hood
		}
	}
}

var stopPhrases = map[string]bool{
	"casa": true, "geral": true, "verdade": true, "principio": true,
	"momento": true, "breve": true, "conta": true,
}

func isStopPhrase(s string) bool {
	return len(s) < 3 || stopPhrases[s]
}

func (e *Extractor) extractBudget(folded string, focus model.FieldID, p *model.Patch) {
	if focus != model.FieldBudgetMax && !budgetTopicRe.MatchString(folded) {
		return
	}

	b := &model.BudgetPatch{}
	hasMillion := millionWordRe.MatchString(folded)
	scaled := func(v, scale float64) int { return int(math.Round(v * scale)) }

	if hasMillion {
		if m := millionMaxRe.FindStringSubmatch(folded); m != nil {
			if v, ok := utils.ParseDecimal(m[1]); ok {
				n := scaled(v, 1_000_000)
				b.Max = &n
			}
		}
	} else {
		if m := thousandMaxRe.FindStringSubmatch(folded); m != nil {
			if v, ok := utils.ParseDecimal(m[1]); ok {
				n := scaled(v, 1_000)
				b.Max = &n
			}
		}
	}

	// "de X a Y mil" overrides a single bound with a full range.
	if m := rangeRe.FindStringSubmatch(folded); m != nil {
		lo, okLo := utils.ParseDecimal(m[1])
		hi, okHi := utils.ParseDecimal(m[2])
		if okLo && okHi {
			scale := 1_000.0
			if strings.HasPrefix(m[3], "milh") {
				scale = 1_000_000.0
			}
			min := scaled(lo, scale)
			max := scaled(hi, scale)
			b.Min = &min
			b.Max = &max
		}
	}

	if m := budgetMinRe.FindStringSubmatch(folded); m != nil {
		if v, ok := utils.ParseDecimal(m[1]); ok {
			scale := 1.0
			if strings.HasPrefix(m[2], "milh") {
				scale = 1_000_000.0
			} else if m[2] != "" {
				scale = 1_000.0
			}
			n := scaled(v, scale)
			b.Min = &n
		}
	}

	// A bare figure like "uns 450000" only counts when nothing with a
	// unit matched.
	if b.Min == nil && b.Max == nil {
		if m := bareAmountRe.FindStringSubmatch(folded); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 10_000 {
				b.Max = &n
			}
		}
	}

	// Contradictory bounds ("até 300 mil, a partir de 500 mil") are
	// kept as a coherent range rather than min > max.
	if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
		b.Min, b.Max = b.Max, b.Min
	}

	if b.Min != nil || b.Max != nil || b.Exact != nil {
		p.Budget = b
	}
}

func (e *Extractor) extractAmenities(folded string, p *model.Patch) {
	a := &model.AmenityPatch{}
	seen := make(map[string]bool)

	add := func(tag string, idx, keyLen int) {
		if seen[tag] {
			return
		}
		seen[tag] = true
		start := idx - amenityWindowSz
		if start < 0 {
			start = 0
		}
		end := idx + keyLen + amenityWindowSz
		if end > len(folded) {
			end = len(folded)
		}
		switch lexicon.ClassifyIntensity(folded[start:end]) {
		case model.IntensityEssential:
			a.Essential = append(a.Essential, tag)
		case model.IntensityExclusion:
			a.Excluded = append(a.Excluded, tag)
		case model.IntensityMedium:
			a.MediumPriority = append(a.MediumPriority, tag)
		default:
			a.HighPriority = append(a.HighPriority, tag)
		}
	}

	for _, entry := range lexicon.Amenities {
		if idx := strings.Index(folded, entry.Keyword); idx >= 0 {
			add(entry.Tag, idx, len(entry.Keyword))
		}
	}
	if loc := transportRe.FindStringIndex(folded); loc != nil {
		add("transporte", loc[0], loc[1]-loc[0])
	}
	if loc := petMentionRe.FindStringIndex(folded); loc != nil {
		add("pet_friendly", loc[0], loc[1]-loc[0])
	}

	if len(a.Essential)+len(a.HighPriority)+len(a.MediumPriority)+len(a.Excluded) > 0 {
		p.Amenities = a
	}
}

func (e *Extractor) extractContact(text string, focus model.FieldID, profile *model.LeadProfile, p *model.Patch) {
	if focus == model.FieldPhone || profile.Phone == nil {
		if m := phoneRe.FindString(text); m != "" {
			digits := utils.DigitsOnly(m)
			if len(digits) == 10 || len(digits) == 11 {
				p.Phone = &digits
			}
		}
	}

	if focus == model.FieldEmail || profile.Email == nil {
		if m := emailRe.FindString(text); m != "" {
			p.Email = &m
		}
	}
}

func (e *Extractor) extractQualification(text, folded string, focus model.FieldID, profile *model.LeadProfile, p *model.Patch) {
	if focus == model.FieldTimeline || profile.Timeline.When == nil {
		if when, urg, ok := lexicon.TimelineOf(folded); ok {
			p.Timeline = &model.TimelinePatch{When: &when, Urgency: &urg}
		}
	}

	if focus == model.FieldMotivation || profile.Motivation.Primary == nil {
		mp := &model.MotivationPatch{}
		if m, ok := lexicon.MotivationOf(folded); ok {
			mp.Primary = &m
		}
		mp.PainPoints = lexicon.PainPointsOf(folded)
		if focus == model.FieldMotivation {
			story := strings.TrimSpace(text)
			if story != "" {
				mp.Story = &story
			}
		}
		if mp.Primary != nil || mp.Story != nil || len(mp.PainPoints) > 0 {
			p.Motivation = mp
		}
	}

	if focus == model.FieldMethod || profile.Purchase.Method == nil {
		if method, pre, ok := lexicon.PaymentMethodOf(folded); ok {
			pp := &model.PurchasePatch{Method: &method}
			if pre {
				t := true
				pp.PreApproved = &t
			}
			p.Purchase = pp
		}
	}

	// Living situation and decision makers use patterns too loose for
	// free text, so they only run when directly asked.
	if focus == model.FieldSituation {
		if living, ok := lexicon.LivingSituationOf(folded); ok {
			p.Situation = &model.SituationPatch{Living: &living}
		}
	}
	if focus == model.FieldDeciders {
		if alone, partner, family, ok := lexicon.DecisionMakersOf(folded); ok {
			dp := &model.DecidersPatch{}
			if alone {
				dp.Alone = &alone
			}
			if partner {
				dp.Partner = &partner
			}
			if family {
				dp.Family = &family
			}
			p.Deciders = dp
		}
	}
}
