package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/model"
)

func TestExtract_BudgetMillions(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t1")

	tests := []struct {
		name string
		text string
		min  int
		max  int
	}{
		{"million with decimal", "meu limite é até 1.5 milhão", 0, 1_500_000},
		{"million with comma", "posso ir até 1,2 milhão", 0, 1_200_000},
		{"thousands", "até 700 mil", 0, 700_000},
		{"thousands with uns", "acho que uns 300 mil", 0, 300_000},
		{"range in millions", "algo de 1 a 2 milhões", 1_000_000, 2_000_000},
		{"range in thousands", "entre 400 a 600 mil", 400_000, 600_000},
		{"minimum marker", "a partir de 500 mil", 500_000, 0},
		{"k suffix", "no máximo 800k", 0, 800_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := e.Extract(tt.text, "", profile)
			require.NotNil(t, p.Budget, "expected a budget patch")
			if tt.min > 0 {
				require.NotNil(t, p.Budget.Min)
				assert.Equal(t, tt.min, *p.Budget.Min)
			}
			if tt.max > 0 {
				require.NotNil(t, p.Budget.Max)
				assert.Equal(t, tt.max, *p.Budget.Max)
			}
		})
	}
}

func TestExtract_ContradictoryBoundsKeptOrdered(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("até 300 mil, mas a partir de 500 mil", "", model.NewLeadProfile("t9"))

	require.NotNil(t, p.Budget)
	require.NotNil(t, p.Budget.Min)
	require.NotNil(t, p.Budget.Max)
	assert.LessOrEqual(t, *p.Budget.Min, *p.Budget.Max)
	assert.Equal(t, 300_000, *p.Budget.Min)
	assert.Equal(t, 500_000, *p.Budget.Max)
}

func TestExtract_MillionNeverReadAsThousand(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("uns 1.5 milhão no máximo", "", model.NewLeadProfile("t2"))

	require.NotNil(t, p.Budget)
	require.NotNil(t, p.Budget.Max)
	assert.Equal(t, 1_500_000, *p.Budget.Max)
}

func TestExtract_FullUtterance(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("Quero um apartamento de 2 quartos em Porto Alegre até 500 mil", "", model.NewLeadProfile("t3"))

	require.NotNil(t, p.PropertyType)
	assert.Equal(t, model.PropertyApartment, *p.PropertyType)
	require.NotNil(t, p.Bedrooms)
	assert.Equal(t, 2, *p.Bedrooms)
	require.NotNil(t, p.Location)
	assert.Equal(t, "Porto Alegre", *p.Location)
	require.NotNil(t, p.Budget)
	require.NotNil(t, p.Budget.Max)
	assert.Equal(t, 500_000, *p.Budget.Max)
}

func TestExtract_HouseholdInference(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("só eu, sem pressa, uns 300 mil", "", model.NewLeadProfile("t4"))

	require.NotNil(t, p.Bedrooms)
	assert.Equal(t, 1, *p.Bedrooms)
	require.NotNil(t, p.Timeline)
	assert.Equal(t, model.TimelineExploring, *p.Timeline.When)
	assert.Equal(t, model.UrgencyLow, *p.Timeline.Urgency)
	require.NotNil(t, p.Budget)
	assert.Equal(t, 300_000, *p.Budget.Max)
}

func TestExtract_ExplicitBedroomsBeatInference(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("somos um casal mas queremos 3 quartos", "", model.NewLeadProfile("t5"))

	require.NotNil(t, p.Bedrooms)
	assert.Equal(t, 3, *p.Bedrooms)
}

func TestExtract_SpelledOutBedrooms(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("uma casa de três quartos", "", model.NewLeadProfile("t6"))

	require.NotNil(t, p.Bedrooms)
	assert.Equal(t, 3, *p.Bedrooms)
	require.NotNil(t, p.PropertyType)
	assert.Equal(t, model.PropertyHouse, *p.PropertyType)
}

func TestExtract_KnownTypeNotOverwritten(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t7")
	apt := model.PropertyApartment
	profile.PropertyType = &apt

	p := e.Extract("uma casa seria legal também", "", profile)
	assert.Nil(t, p.PropertyType, "free text must not overwrite a known type")

	p = e.Extract("na verdade prefiro uma casa", model.FieldPropertyType, profile)
	require.NotNil(t, p.PropertyType, "a focused answer may change the type")
	assert.Equal(t, model.PropertyHouse, *p.PropertyType)
}

func TestExtract_AmenityIntensity(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t8")

	p := e.Extract("preciso de garagem", "", profile)
	require.NotNil(t, p.Amenities)
	assert.Contains(t, p.Amenities.Essential, "garagem")

	p = e.Extract("não quero piscina", "", profile)
	require.NotNil(t, p.Amenities)
	assert.Contains(t, p.Amenities.Excluded, "piscina")

	p = e.Extract("se tiver elevador seria bom", "", profile)
	require.NotNil(t, p.Amenities)
	assert.Contains(t, p.Amenities.MediumPriority, "elevador")

	p = e.Extract("tem churrasqueira?", "", profile)
	require.NotNil(t, p.Amenities)
	assert.Contains(t, p.Amenities.HighPriority, "churrasqueira")
}

func TestExtract_AmenityAliases(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("uma vaga de estacionamento e varanda", "", model.NewLeadProfile("t9"))

	require.NotNil(t, p.Amenities)
	assert.Contains(t, p.Amenities.HighPriority, "garagem")
	assert.Contains(t, p.Amenities.HighPriority, "sacada")
	// Two surface words, one canonical tag
	count := 0
	for _, tag := range p.Amenities.HighPriority {
		if tag == "garagem" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtract_Contact(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t10")

	p := e.Extract("meu whatsapp é (51) 99999-8888", "", profile)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "51999998888", *p.Phone)

	p = e.Extract("pode mandar pra ana.souza@example.com", "", profile)
	require.NotNil(t, p.Email)
	assert.Equal(t, "ana.souza@example.com", *p.Email)
}

func TestExtract_KnownPhoneNotOverwritten(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t11")
	phone := "51999998888"
	profile.Phone = &phone

	p := e.Extract("liga no (51) 98888-7777", "", profile)
	assert.Nil(t, p.Phone)
}

func TestExtract_BudgetNumbersAreNotPhones(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("até 500 mil", "", model.NewLeadProfile("t12"))
	assert.Nil(t, p.Phone)
}

func TestExtract_Qualification(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t13")

	p := e.Extract("é meu primeiro imóvel, o aluguel tá muito caro", "", profile)
	require.NotNil(t, p.Motivation)
	require.NotNil(t, p.Motivation.Primary)
	assert.Equal(t, model.MotivationFirstHome, *p.Motivation.Primary)
	assert.Contains(t, p.Motivation.PainPoints, "high_rent")

	p = e.Extract("vou financiar, já simulei no banco", "", profile)
	require.NotNil(t, p.Purchase)
	assert.Equal(t, model.PaymentFinancing, *p.Purchase.Method)
	require.NotNil(t, p.Purchase.PreApproved)
	assert.True(t, *p.Purchase.PreApproved)
}

func TestExtract_FocusedSituationAndDeciders(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t14")

	p := e.Extract("hoje estou alugando", model.FieldSituation, profile)
	require.NotNil(t, p.Situation)
	assert.Equal(t, model.LivingRenting, *p.Situation.Living)

	p = e.Extract("eu e minha esposa decidimos juntos", model.FieldDeciders, profile)
	require.NotNil(t, p.Deciders)
	require.NotNil(t, p.Deciders.Partner)
	assert.True(t, *p.Deciders.Partner)

	// The same text without focus stays out of the patch.
	p = e.Extract("hoje estou alugando", "", profile)
	assert.Nil(t, p.Situation)
}

func TestExtract_Idempotent(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t15")
	text := "apartamento de 2 quartos com piscina em Canoas até 400 mil"

	first := e.Extract(text, "", profile)
	second := e.Extract(text, "", profile)
	assert.Equal(t, first, second)
}

func TestExtract_EmptyAndNoise(t *testing.T) {
	e := NewExtractor()
	profile := model.NewLeadProfile("t16")

	assert.True(t, e.Extract("", "", profile).IsEmpty())
	assert.True(t, e.Extract("hmm deixa eu pensar", "", profile).IsEmpty())
}
