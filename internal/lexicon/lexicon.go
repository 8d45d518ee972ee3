// Package lexicon holds the Portuguese vocabulary used to interpret
// buyer messages: property types, amenity keywords, intensity markers,
// the metro-area gazetteer and qualification phrase tables.
//
// Every function expects text already folded by utils.Fold (lowercase,
// accents stripped), so all patterns here are written unaccented.
package lexicon

import (
	"regexp"

	"concierge/internal/model"
)

// Property type keywords, checked in order. "apartamento" before "casa"
// so "apartamento em casa de condominio" resolves to apartment.
var propertyTypePatterns = []struct {
	re *regexp.Regexp
	t  model.PropertyType
}{
	{regexp.MustCompile(`apartamento|apto|\bap\b`), model.PropertyApartment},
	{regexp.MustCompile(`\bcasa\b|sobrado|residencial`), model.PropertyHouse},
	{regexp.MustCompile(`studio|loft|kitnet|kitchenette`), model.PropertyStudio},
	{regexp.MustCompile(`cobertura|penthouse`), model.PropertyPenthouse},
}

// PropertyTypeOf returns the property type mentioned in the folded
// text, if any.
func PropertyTypeOf(folded string) (model.PropertyType, bool) {
	for _, p := range propertyTypePatterns {
		if p.re.MatchString(folded) {
			return p.t, true
		}
	}
	return "", false
}

var (
	intensityEssential = regexp.MustCompile(`preciso|essencial|obrigatorio|tem que ter|nao pode faltar|fundamental|indispensavel`)
	intensityExclusion = regexp.MustCompile(`nao quero|nao gosto|evitar|\bsem\b|nao precisa`)
	intensityHigh      = regexp.MustCompile(`gostaria|seria legal|seria otimo|quero|desejo|preferencia`)
	intensityMedium    = regexp.MustCompile(`se tiver|se der|seria bom|opcional`)
)

// ClassifyIntensity classifies how strongly an amenity is wanted based
// on the words around it. Essential wins over exclusion wins over high
// wins over medium; a bare mention defaults to high priority.
func ClassifyIntensity(foldedContext string) model.Intensity {
	switch {
	case intensityEssential.MatchString(foldedContext):
		return model.IntensityEssential
	case intensityExclusion.MatchString(foldedContext):
		return model.IntensityExclusion
	case intensityHigh.MatchString(foldedContext):
		return model.IntensityHigh
	case intensityMedium.MatchString(foldedContext):
		return model.IntensityMedium
	default:
		return model.IntensityHigh
	}
}

// AmenityEntry maps one surface keyword to a canonical amenity tag.
type AmenityEntry struct {
	Keyword string
	Tag     string
}

// Amenities is ordered so multi-word keywords are tried before their
// single-word prefixes ("portaria 24h" before "portaria").
var Amenities = []AmenityEntry{
	{"piscina aquecida", "piscina_aquecida"},
	{"portaria 24h", "portaria_24h"},
	{"area de lazer", "area_lazer"},
	{"salao de festas", "salao_festas"},
	{"espaco gourmet", "espaco_gourmet"},
	{"pet friendly", "pet_friendly"},
	{"aceita pets", "pet_friendly"},
	{"aceita pet", "pet_friendly"},
	{"piscina", "piscina"},
	{"garagem", "garagem"},
	{"vaga", "garagem"},
	{"estacionamento", "garagem"},
	{"academia", "academia"},
	{"ginasio", "academia"},
	{"elevador", "elevador"},
	{"portaria", "portaria"},
	{"seguranca", "seguranca"},
	{"churrasqueira", "churrasqueira"},
	{"churrasco", "churrasqueira"},
	{"playground", "playground"},
	{"animais", "pet_friendly"},
	{"sacada", "sacada"},
	{"varanda", "sacada"},
	{"terraco", "terraco"},
	{"lavanderia", "lavanderia"},
	{"quintal", "quintal"},
	{"jardim", "jardim"},
	{"sauna", "sauna"},
	{"quadra", "quadra"},
}

// Metro-area gazetteer. Entries are matched in order, so multi-word
// names and their full forms come before shorter aliases ("sapucaia do
// sul" before "sapucaia"). Short aliases use word boundaries to avoid
// firing inside unrelated words.
var cityEntries = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`eldorado do sul`), "Eldorado do Sul"},
	{regexp.MustCompile(`sapucaia do sul`), "Sapucaia do Sul"},
	{regexp.MustCompile(`porto alegre`), "Porto Alegre"},
	{regexp.MustCompile(`sao leopoldo`), "São Leopoldo"},
	{regexp.MustCompile(`novo hamburgo`), "Novo Hamburgo"},
	{regexp.MustCompile(`cachoeirinha`), "Cachoeirinha"},
	{regexp.MustCompile(`gravatai`), "Gravataí"},
	{regexp.MustCompile(`alvorada`), "Alvorada"},
	{regexp.MustCompile(`viamao`), "Viamão"},
	{regexp.MustCompile(`canoas`), "Canoas"},
	{regexp.MustCompile(`esteio`), "Esteio"},
	{regexp.MustCompile(`guaiba`), "Guaíba"},
	{regexp.MustCompile(`sapucaia`), "Sapucaia do Sul"},
	{regexp.MustCompile(`\bpoa\b`), "Porto Alegre"},
}

// CityOf returns the canonical metro-area city mentioned in the folded
// text, if any.
func CityOf(folded string) (string, bool) {
	for _, c := range cityEntries {
		if c.re.MatchString(folded) {
			return c.name, true
		}
	}
	return "", false
}

var zoneRe = regexp.MustCompile(`zona\s*(norte|sul|leste|oeste|centro)`)

// ZoneOf returns the city zone mentioned in the folded text, if any.
func ZoneOf(folded string) (string, bool) {
	m := zoneRe.FindStringSubmatch(folded)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var neighborhoodRe = regexp.MustCompile(`bairro\s+([a-z][a-z ]{1,28}?)(?:,|\.|$| regiao| zona)`)

// NeighborhoodOf returns the neighborhood named after "bairro", if any.
func NeighborhoodOf(folded string) (string, bool) {
	m := neighborhoodRe.FindStringSubmatch(folded)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var timelineEntries = []struct {
	re      *regexp.Regexp
	when    model.TimelineBucket
	urgency model.Urgency
}{
	{regexp.MustCompile(`urgente|\blogo\b|\bja\b|agora|imediat`), model.TimelineImmediate, model.UrgencyHigh},
	{regexp.MustCompile(`proximo mes|mes que vem|\bbreve\b`), model.Timeline1To3, model.UrgencyHigh},
	{regexp.MustCompile(`3.*6.*mes|semestre`), model.Timeline3To6, model.UrgencyMedium},
	{regexp.MustCompile(`6.*12.*mes|ano que vem|final do ano`), model.Timeline6To12, model.UrgencyMedium},
	{regexp.MustCompile(`explorando|quando der|sem pressa`), model.TimelineExploring, model.UrgencyLow},
}

// TimelineOf returns the purchase timeline and its implied urgency.
func TimelineOf(folded string) (model.TimelineBucket, model.Urgency, bool) {
	for _, t := range timelineEntries {
		if t.re.MatchString(folded) {
			return t.when, t.urgency, true
		}
	}
	return "", "", false
}

var motivationEntries = []struct {
	re *regexp.Regexp
	m  model.Motivation
}{
	{regexp.MustCompile(`primeiro\b|primeira vez|nunca tive`), model.MotivationFirstHome},
	{regexp.MustCompile(`upgrade|trocar|melhor\b|maior\b`), model.MotivationUpgrade},
	{regexp.MustCompile(`investir|investimento|renda|alugar\b`), model.MotivationInvestment},
	{regexp.MustCompile(`casamento|casou|filhos|nasc`), model.MotivationLifeChange},
	{regexp.MustCompile(`trabalho|emprego|mudanca`), model.MotivationWork},
}

// MotivationOf returns the primary purchase motivation, if detectable.
func MotivationOf(folded string) (model.Motivation, bool) {
	for _, e := range motivationEntries {
		if e.re.MatchString(folded) {
			return e.m, true
		}
	}
	return "", false
}

var (
	painHighRent    = regexp.MustCompile(`aluguel.*caro|muito.*pagar`)
	painLackOfSpace = regexp.MustCompile(`pequeno|apertado|pouco espaco|falta.*espaco`)
)

// PainPointsOf lists buying pain points implied by the folded text.
func PainPointsOf(folded string) []string {
	var points []string
	if painHighRent.MatchString(folded) {
		points = append(points, "high_rent")
	}
	if painLackOfSpace.MatchString(folded) {
		points = append(points, "lack_of_space")
	}
	return points
}

var (
	paymentCash      = regexp.MustCompile(`a vista|dinheiro|\bpronto\b`)
	paymentFinancing = regexp.MustCompile(`financiamento|financiar|banco|parcela`)
	preApprovedRe    = regexp.MustCompile(`ja.*consultei|pre.?aprov|simulei`)
)

// PaymentMethodOf returns the payment method and whether financing is
// already pre-approved.
func PaymentMethodOf(folded string) (model.PaymentMethod, bool, bool) {
	switch {
	case paymentCash.MatchString(folded):
		return model.PaymentCash, false, true
	case paymentFinancing.MatchString(folded):
		return model.PaymentFinancing, preApprovedRe.MatchString(folded), true
	}
	return "", false, false
}

var (
	livingRenting    = regexp.MustCompile(`alugando|alugo\b|aluguel`)
	livingOwning     = regexp.MustCompile(`ja tenho|proprio|propria`)
	livingWithFamily = regexp.MustCompile(`familia|\bpais\b|\bmae\b|\bpai\b`)
)

// LivingSituationOf classifies where the buyer lives today. These
// patterns are loose, so the extractor only applies them when the
// conversation is focused on the living situation.
func LivingSituationOf(folded string) (model.LivingSituation, bool) {
	switch {
	case livingRenting.MatchString(folded):
		return model.LivingRenting, true
	case livingOwning.MatchString(folded):
		return model.LivingOwning, true
	case livingWithFamily.MatchString(folded):
		return model.LivingWithFamily, true
	}
	return "", false
}

var (
	decidesAlone   = regexp.MustCompile(`so eu|sozinho|eu mesmo`)
	decidesPartner = regexp.MustCompile(`esposa|marido|parceir|conjuge|\bnos\b`)
	decidesFamily  = regexp.MustCompile(`familia|\btodos\b|juntos`)
)

// DecisionMakersOf reports who is involved in the purchase decision.
func DecisionMakersOf(folded string) (alone, partner, family, ok bool) {
	alone = decidesAlone.MatchString(folded)
	partner = decidesPartner.MatchString(folded)
	family = decidesFamily.MatchString(folded)
	return alone, partner, family, alone || partner || family
}

var (
	householdAlone  = regexp.MustCompile(`sozinho|so eu`)
	householdCouple = regexp.MustCompile(`casal|eu e (?:minha|meu)`)
	householdFamily = regexp.MustCompile(`filhos|familia`)
)

// HouseholdBedrooms infers a bedroom count from household size when no
// explicit count was given. Singles get one, couples two, families
// three.
func HouseholdBedrooms(folded string) (int, bool) {
	switch {
	case householdAlone.MatchString(folded):
		return 1, true
	case householdCouple.MatchString(folded):
		return 2, true
	case householdFamily.MatchString(folded):
		return 3, true
	}
	return 0, false
}

// NumberWord maps spelled-out pt-BR numbers one through six.
var NumberWord = map[string]int{
	"um": 1, "uma": 1, "dois": 2, "duas": 2, "tres": 3,
	"quatro": 4, "cinco": 5, "seis": 6,
}

// Topic names a conversation subject the planner tracks to avoid
// asking about something the buyer already brought up.
type Topic string

const (
	TopicPropertyType Topic = "property_type"
	TopicBudget       Topic = "budget"
	TopicLocation     Topic = "location"
	TopicBedrooms     Topic = "bedrooms"
	TopicTimeline     Topic = "timeline"
	TopicPayment      Topic = "payment"
	TopicMotivation   Topic = "motivation"
	TopicSituation    Topic = "current_situation"
)

var topicPatterns = []struct {
	re *regexp.Regexp
	t  Topic
}{
	{regexp.MustCompile(`apartamento|apto|\bap\b|\bcasa\b|sobrado|studio|loft|cobertura`), TopicPropertyType},
	{regexp.MustCompile(`\bmil\b|milhao|milhoes|reais|r\$`), TopicBudget},
	{regexp.MustCompile(`zona|bairro|regiao|localizacao|perto|proximo`), TopicLocation},
	{regexp.MustCompile(`quarto|dormitorio|espaco|familia|casal|sozinho`), TopicBedrooms},
	{regexp.MustCompile(`quando|prazo|urgente|\blogo\b|\bmes\b|\bano\b`), TopicTimeline},
	{regexp.MustCompile(`pagamento|vista|financiamento|banco`), TopicPayment},
	{regexp.MustCompile(`primeiro|upgrade|investir|mudanca|casamento|filhos`), TopicMotivation},
	{regexp.MustCompile(`alugando|aluguel|moro|familia`), TopicSituation},
}

// TopicsOf lists the subjects mentioned in the folded text.
func TopicsOf(folded string) map[Topic]bool {
	topics := make(map[Topic]bool)
	for _, p := range topicPatterns {
		if p.re.MatchString(folded) {
			topics[p.t] = true
		}
	}
	return topics
}
