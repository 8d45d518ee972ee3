package lexicon

import (
	"testing"

	"concierge/internal/model"
	"concierge/internal/utils"
)

func TestPropertyTypeOf(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.PropertyType
		ok   bool
	}{
		{"apartment", "quero um apartamento grande", model.PropertyApartment, true},
		{"apartment abbreviation", "procuro um apto de 2 quartos", model.PropertyApartment, true},
		{"house", "uma casa com quintal", model.PropertyHouse, true},
		{"studio", "um studio perto do centro", model.PropertyStudio, true},
		{"kitnet maps to studio", "uma kitnet barata", model.PropertyStudio, true},
		{"penthouse", "sonho com uma cobertura", model.PropertyPenthouse, true},
		{"none", "algo legal pra morar", "", false},
		{"casamento is not casa", "depois do casamento vamos comprar", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PropertyTypeOf(utils.Fold(tt.text))
			if ok != tt.ok || got != tt.want {
				t.Errorf("PropertyTypeOf(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClassifyIntensity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Intensity
	}{
		{"essential", "preciso muito de garagem", model.IntensityEssential},
		{"essential beats high", "quero e preciso de piscina", model.IntensityEssential},
		{"exclusion", "nao quero piscina", model.IntensityExclusion},
		{"bare sem", "pode ser sem elevador", model.IntensityExclusion},
		{"high", "gostaria de uma sacada", model.IntensityHigh},
		{"medium", "se tiver academia seria bom", model.IntensityMedium},
		{"default is high", "tem churrasqueira", model.IntensityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIntensity(utils.Fold(tt.text)); got != tt.want {
				t.Errorf("ClassifyIntensity(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCityOf(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"capital", "quero morar em Porto Alegre", "Porto Alegre", true},
		{"capital alias", "algo em poa mesmo", "Porto Alegre", true},
		{"accented", "pode ser em Gravataí", "Gravataí", true},
		{"unaccented input", "pode ser em gravatai", "Gravataí", true},
		{"long name before alias", "moro em sapucaia do sul", "Sapucaia do Sul", true},
		{"short alias still resolves", "perto de sapucaia", "Sapucaia do Sul", true},
		{"sao leopoldo", "trabalho em São Leopoldo", "São Leopoldo", true},
		{"no city", "quero algo perto do trabalho", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CityOf(utils.Fold(tt.text))
			if ok != tt.ok || got != tt.want {
				t.Errorf("CityOf(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestZoneOf(t *testing.T) {
	got, ok := ZoneOf(utils.Fold("procuro na zona norte"))
	if !ok || got != "norte" {
		t.Errorf("ZoneOf = (%q, %v), want (norte, true)", got, ok)
	}
	if _, ok := ZoneOf(utils.Fold("perto do centro da cidade")); ok {
		t.Error("ZoneOf should not fire without the word zona")
	}
}

func TestTimelineOf(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		when    model.TimelineBucket
		urgency model.Urgency
		ok      bool
	}{
		{"urgent", "preciso urgente de um lugar", model.TimelineImmediate, model.UrgencyHigh, true},
		{"next month", "quero mudar mes que vem", model.Timeline1To3, model.UrgencyHigh, true},
		{"semester", "algo pro proximo semestre", model.Timeline3To6, model.UrgencyMedium, true},
		{"end of year", "ate o final do ano", model.Timeline6To12, model.UrgencyMedium, true},
		{"no rush", "to olhando sem pressa", model.TimelineExploring, model.UrgencyLow, true},
		{"nothing", "quero uma casa", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			when, urg, ok := TimelineOf(utils.Fold(tt.text))
			if ok != tt.ok || when != tt.when || urg != tt.urgency {
				t.Errorf("TimelineOf(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.text, when, urg, ok, tt.when, tt.urgency, tt.ok)
			}
		})
	}
}

func TestMotivationOf(t *testing.T) {
	tests := []struct {
		text string
		want model.Motivation
	}{
		{"vai ser meu primeiro imovel", model.MotivationFirstHome},
		{"quero trocar por um maior", model.MotivationUpgrade},
		{"penso em investir pra ter renda", model.MotivationInvestment},
		{"acabei de casar e vamos ter filhos", model.MotivationLifeChange},
		{"mudanca de emprego", model.MotivationWork},
	}

	for _, tt := range tests {
		got, ok := MotivationOf(utils.Fold(tt.text))
		if !ok || got != tt.want {
			t.Errorf("MotivationOf(%q) = (%q, %v), want %q", tt.text, got, ok, tt.want)
		}
	}
}

func TestPaymentMethodOf(t *testing.T) {
	m, pre, ok := PaymentMethodOf(utils.Fold("vou pagar à vista"))
	if !ok || m != model.PaymentCash || pre {
		t.Errorf("cash: got (%q, %v, %v)", m, pre, ok)
	}

	m, pre, ok = PaymentMethodOf(utils.Fold("vou de financiamento, já simulei no banco"))
	if !ok || m != model.PaymentFinancing || !pre {
		t.Errorf("financing pre-approved: got (%q, %v, %v)", m, pre, ok)
	}

	m, pre, ok = PaymentMethodOf(utils.Fold("financiamento provavelmente"))
	if !ok || m != model.PaymentFinancing || pre {
		t.Errorf("financing: got (%q, %v, %v)", m, pre, ok)
	}
}

func TestHouseholdBedrooms(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"moro sozinho", 1, true},
		{"somos um casal", 2, true},
		{"eu e minha esposa", 2, true},
		{"tenho dois filhos", 3, true},
		{"quero uma casa", 0, false},
	}

	for _, tt := range tests {
		got, ok := HouseholdBedrooms(utils.Fold(tt.text))
		if ok != tt.ok || got != tt.want {
			t.Errorf("HouseholdBedrooms(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTopicsOf(t *testing.T) {
	topics := TopicsOf(utils.Fold("quero um apartamento de 2 quartos em porto alegre até 500 mil"))

	for _, want := range []Topic{TopicPropertyType, TopicBedrooms, TopicBudget} {
		if !topics[want] {
			t.Errorf("expected topic %q to be detected", want)
		}
	}
	if topics[TopicPayment] {
		t.Error("payment topic should not be detected")
	}
}
