package service

import (
	"fmt"
	"regexp"
	"strings"

	"concierge/internal/lexicon"
	"concierge/internal/model"
	"concierge/internal/utils"
)

// Planner decides what the assistant says next. It is a pure decision
// function over the profile and the conversation state: the caller owns
// rendering, pacing and capturing the next utterance.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// Greeting is the fixed opening sequence for a new session.
func (p *Planner) Greeting() []string {
	return []string{
		"Oi! 👋 Que bom você ter chegado até aqui!",
		"Eu sou a Luna! Estou aqui pra te ajudar a encontrar o lugar perfeito pra você. 😊",
		"Me conta: o que você tá procurando? Pode falar do jeito que quiser, sem pressa!",
	}
}

// PlanInput carries everything the planner needs for one turn.
type PlanInput struct {
	Profile    *model.LeadProfile
	Asked      map[model.FieldID]bool
	Topics     map[lexicon.Topic]bool
	LastTopics map[lexicon.Topic]bool
	UserText   string
	Patch      model.Patch
}

// Plan applies the priority rules: location first, then budget, then
// the mandatory identity and contact slots, then close as soon as the
// profile is complete enough to show results. A slot already asked is
// not asked again, except name and contact, which stay mandatory until
// answered.
func (p *Planner) Plan(in PlanInput) model.Reply {
	reply := model.Reply{
		Acknowledgment: p.acknowledge(in.UserText, in.Patch),
	}
	profile := in.Profile

	switch {
	case profile.Location == nil && !in.LastTopics[lexicon.TopicLocation] &&
		!in.Topics[lexicon.TopicLocation] && !in.Asked[model.FieldLocation]:
		reply.NextQuestion = &model.Question{
			Message:     "E sobre localização... tem algum lugar que você já pensou? Pode ser cidade, bairro ou região.",
			TargetField: model.FieldLocation,
		}

	case !profile.Budget.IsSet() && !in.LastTopics[lexicon.TopicBudget] &&
		!in.Topics[lexicon.TopicBudget] && !in.Asked[model.FieldBudgetMax]:
		msg := "E me conta... você já pensou em quanto conseguiria investir nisso? "
		if profile.PropertyType != nil {
			msg = fmt.Sprintf("Ah, legal! E quando você pensa nesse %s, você já tem uma ideia de quanto conseguiria investir? ", *profile.PropertyType)
		}
		msg += "Não precisa ser nada exato, só pra eu ter uma noção do que faz sentido te mostrar!"
		reply.NextQuestion = &model.Question{
			Message:     msg,
			TargetField: model.FieldBudgetMax,
			Optional:    true,
		}

	case profile.Name == nil:
		reply.NextQuestion = &model.Question{
			Message:     "Pra eu personalizar as opções, me diz seu nome? 😊",
			TargetField: model.FieldName,
		}

	case profile.Phone == nil && profile.Email == nil:
		reply.NextQuestion = &model.Question{
			Message:     "Me passa seu WhatsApp? Assim eu consigo te enviar as melhores opções e um dos nossos consultores pode te ajudar com qualquer dúvida.",
			TargetField: model.FieldPhone,
		}

	case profile.IsComplete():
		reply.NextQuestion = &model.Question{
			Message:          p.closingMessage(profile),
			CloseAndRedirect: true,
		}

	default:
		reply.NextQuestion = &model.Question{
			Message:     "Me conta um pouco mais sobre o que você está procurando?",
			TargetField: model.FieldMotivation,
			Optional:    true,
		}
	}

	return reply
}

// acknowledge echoes the visitor's own words back, the way a person
// showing they listened would. Million amounts are echoed verbatim so
// "1.5 milhão" is never read back as thousands.
func (p *Planner) acknowledge(userText string, patch model.Patch) string {
	if strings.TrimSpace(userText) == "" {
		return ""
	}
	folded := utils.Fold(userText)
	var parts []string

	switch {
	case strings.Contains(folded, "apartamento"):
		parts = append(parts, "um apartamento")
	case strings.Contains(folded, "studio") || strings.Contains(folded, "loft"):
		parts = append(parts, "um studio")
	case patch.PropertyType != nil:
		artigo := "um"
		if *patch.PropertyType == model.PropertyHouse {
			artigo = "uma"
		}
		parts = append(parts, fmt.Sprintf("%s %s", artigo, *patch.PropertyType))
	}

	if patch.Bedrooms != nil {
		plural := ""
		if *patch.Bedrooms > 1 {
			plural = "s"
		}
		parts = append(parts, fmt.Sprintf("com %d quarto%s", *patch.Bedrooms, plural))
	}

	switch {
	case strings.Contains(folded, "familia"):
		parts = append(parts, "para sua família")
	case strings.Contains(folded, "filhos"):
		parts = append(parts, "para você e seus filhos")
	case strings.Contains(folded, "casal"):
		parts = append(parts, "para o casal")
	}

	if phrase := millionPhraseRe.FindString(strings.ToLower(userText)); phrase != "" {
		parts = append(parts, strings.TrimSpace(phrase))
	} else if patch.Budget != nil && patch.Budget.Max != nil {
		parts = append(parts, "até "+FormatAmount(*patch.Budget.Max))
	}

	if patch.Location != nil {
		parts = append(parts, "na região de "+*patch.Location)
	}

	switch {
	case strings.Contains(folded, "primeiro imovel") || strings.Contains(folded, "primeira vez"):
		parts = append(parts, "e é seu primeiro imóvel")
	case strings.Contains(folded, "aluguel") || strings.Contains(folded, "alugando"):
		parts = append(parts, "e você está alugando agora")
	case strings.Contains(folded, "investi"):
		parts = append(parts, "para investimento")
	}

	if len(parts) > 0 {
		return "Ah, entendi! Então você busca " + strings.Join(parts, ", ") + "."
	}
	if len(userText) > 30 {
		return "Entendi! Deixa eu ver se entendi direito o que você precisa..."
	}
	return "Entendi!"
}

// Matched against the lowercased original text, not the folded form,
// so the echo keeps the visitor's accents.
var millionPhraseRe = regexp.MustCompile(`(?:até\s*|ate\s*|uns?\s*)?(?:r\$\s*)?[\d.,]+\s*milh(?:ão|ao|ões|oes)`)

func (p *Planner) closingMessage(profile *model.LeadProfile) string {
	var details []string
	if profile.PropertyType != nil {
		artigo := "um"
		if *profile.PropertyType == model.PropertyHouse {
			artigo = "uma"
		}
		details = append(details, fmt.Sprintf("%s %s", artigo, *profile.PropertyType))
	}
	if profile.Bedrooms != nil {
		plural := ""
		if *profile.Bedrooms > 1 {
			plural = "s"
		}
		details = append(details, fmt.Sprintf("%d quarto%s", *profile.Bedrooms, plural))
	}
	if b := displayBudget(profile.Budget); b > 0 {
		details = append(details, "até "+FormatAmount(b))
	}
	if profile.Location != nil {
		details = append(details, "na região de "+*profile.Location)
	}

	msg := "Perfeito! "
	if profile.Name != nil {
		msg = fmt.Sprintf("Perfeito, %s! ", *profile.Name)
	}
	if len(details) > 0 {
		msg += "Entendi que você busca " + strings.Join(details, ", ") + ". "
	}
	msg += "Com o que você me contou, já consigo te mostrar algumas opções que podem fazer sentido pra você. Que tal darmos uma olhada? 😊"
	return msg
}

func displayBudget(b model.Budget) int {
	// Exact wins for display; otherwise the upper bound.
	if b.Exact != nil {
		return *b.Exact
	}
	if b.Max != nil {
		return *b.Max
	}
	if b.Min != nil {
		return *b.Min
	}
	return 0
}

// FormatAmount renders a price the way people say it: "500 mil",
// "1.5 milhão", "2 milhões". Small values fall back to plain reais.
func FormatAmount(v int) string {
	switch {
	case v >= 1_000_000:
		millions := float64(v) / 1_000_000
		label := "milhões"
		if millions <= 1 {
			label = "milhão"
		}
		if millions == float64(int(millions)) {
			return fmt.Sprintf("%d %s", int(millions), label)
		}
		return strings.Replace(fmt.Sprintf("%.1f %s", millions, label), ".", ",", 1)
	case v >= 1_000:
		thousands := float64(v) / 1_000
		if thousands == float64(int(thousands)) {
			return fmt.Sprintf("%d mil", int(thousands))
		}
		return strings.Replace(fmt.Sprintf("%.1f mil", thousands), ".", ",", 1)
	default:
		return fmt.Sprintf("R$ %d", v)
	}
}

// FiltersFromProfile derives the search filters the results page
// receives when the conversation closes.
func FiltersFromProfile(profile *model.LeadProfile) model.SearchFilters {
	f := model.SearchFilters{}
	if profile.PropertyType != nil {
		t := *profile.PropertyType
		f.Type = &t
	}
	if profile.Bedrooms != nil {
		n := *profile.Bedrooms
		f.Bedrooms = &n
	}
	if profile.Budget.Min != nil {
		n := *profile.Budget.Min
		f.PriceMin = &n
	}
	if profile.Budget.Max != nil {
		n := *profile.Budget.Max
		f.PriceMax = &n
	} else if profile.Budget.Exact != nil {
		n := *profile.Budget.Exact
		f.PriceMax = &n
	}
	if profile.Location != nil {
		loc := *profile.Location
		f.Location = &loc
	}
	f.Features = profile.Amenities.Wanted()
	return f
}
