package model

import "time"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a session transcript.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// FieldID names a profile slot the planner can ask about. Values match
// SetField dot paths so structured answers route directly.
type FieldID string

const (
	FieldName         FieldID = "name"
	FieldPhone        FieldID = "phone"
	FieldEmail        FieldID = "email"
	FieldPropertyType FieldID = "propertyType"
	FieldBedrooms     FieldID = "bedrooms"
	FieldLocation     FieldID = "location"
	FieldBudgetMax    FieldID = "budget.max"
	FieldMethod       FieldID = "purchase.method"
	FieldTimeline     FieldID = "timeline.when"
	FieldMotivation   FieldID = "motivation.primary"
	FieldSituation    FieldID = "situation.living"
	FieldDeciders     FieldID = "deciders"
)

// Question is the next thing the assistant asks. CloseAndRedirect marks
// the conversation-ending message that hands off to search results.
type Question struct {
	Message          string  `json:"message"`
	TargetField      FieldID `json:"targetField,omitempty"`
	Optional         bool    `json:"optional,omitempty"`
	CloseAndRedirect bool    `json:"closeAndRedirect,omitempty"`
}

// Reply is the planner's full response to one user message.
type Reply struct {
	Acknowledgment string          `json:"acknowledgment,omitempty"`
	Messages       []string        `json:"messages,omitempty"`
	NextQuestion   *Question       `json:"nextQuestion,omitempty"`
	Filters        *SearchFilters  `json:"filters,omitempty"`
	Results        []ListingResult `json:"results,omitempty"`
}

// Texts flattens the reply into the ordered outgoing message list.
func (r Reply) Texts() []string {
	out := make([]string, 0, len(r.Messages)+2)
	if r.Acknowledgment != "" {
		out = append(out, r.Acknowledgment)
	}
	out = append(out, r.Messages...)
	if r.NextQuestion != nil {
		out = append(out, r.NextQuestion.Message)
	}
	return out
}
