package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"concierge/internal/lexicon"
	"concierge/internal/model"
	"concierge/internal/utils"
)

// LeadStore is the optional persistence collaborator. Saves are
// best-effort: the conversation never blocks on storage.
type LeadStore interface {
	UpsertLead(ctx context.Context, profile *model.LeadProfile) error
	LogTurn(ctx context.Context, sessionID string, turn model.Turn) error
}

// Session is the state of one visitor conversation. It is owned by the
// ConversationService and only touched under its lock.
type Session struct {
	ID        string
	Profile   *model.LeadProfile
	Turns     []model.Turn
	Topics    map[lexicon.Topic]bool
	Asked     map[model.FieldID]bool
	Pending   model.FieldID
	Completed bool

	lastUserText string
	lastResponse *model.MessageResponse
}

// ConversationService runs the chat loop: extract, merge, plan, and
// close into search results once the profile is complete enough.
type ConversationService struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	extractor *Extractor
	planner   *Planner
	search    *SearchService
	store     LeadStore // nil when persistence is disabled
}

func NewConversationService(search *SearchService, store LeadStore) *ConversationService {
	return &ConversationService{
		sessions:  make(map[string]*Session),
		extractor: NewExtractor(),
		planner:   NewPlanner(),
		search:    search,
		store:     store,
	}
}

// StartSession creates a fresh session and returns the greeting.
func (c *ConversationService) StartSession() *model.StartSessionResponse {
	s := &Session{
		ID:      uuid.NewString(),
		Profile: model.NewLeadProfile(uuid.NewString()),
		Topics:  make(map[lexicon.Topic]bool),
		Asked:   make(map[model.FieldID]bool),
		Pending: model.FieldMotivation,
	}
	greeting := c.planner.Greeting()
	now := time.Now()
	for _, msg := range greeting {
		s.Turns = append(s.Turns, model.Turn{Role: model.RoleAssistant, Text: msg, At: now})
	}

	c.mu.Lock()
	c.sessions[s.ID] = s
	c.mu.Unlock()

	return &model.StartSessionResponse{SessionID: s.ID, Messages: greeting}
}

// ProcessMessage handles one incoming message. Re-sending the exact
// same text (a double click, a retried request) returns the previous
// reply without mutating the session.
func (c *ConversationService) ProcessMessage(sessionID string, req model.MessageRequest) (*model.MessageResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	if req.Field != "" {
		return c.answerField(s, req)
	}

	if req.Text == s.lastUserText && s.lastResponse != nil {
		return s.lastResponse, nil
	}

	now := time.Now()
	userTurn := model.Turn{Role: model.RoleUser, Text: req.Text, At: now}
	s.Turns = append(s.Turns, userTurn)
	c.logTurn(s.ID, userTurn)

	patch := c.extractor.Extract(req.Text, s.Pending, s.Profile)
	if !patch.IsEmpty() {
		s.Profile.Apply(patch)
		s.Profile.QuestionsAnswered++
	}

	lastTopics := lexicon.TopicsOf(utils.Fold(req.Text))
	reply := c.planner.Plan(PlanInput{
		Profile:    s.Profile,
		Asked:      s.Asked,
		Topics:     s.Topics,
		LastTopics: lastTopics,
		UserText:   req.Text,
		Patch:      patch,
	})
	// Topics only grow, and only after planning so "just mentioned" and
	// "anywhere in history" stay distinct signals.
	for t := range lastTopics {
		s.Topics[t] = true
	}

	resp := c.respond(s, reply)
	s.lastUserText = req.Text
	s.lastResponse = resp
	c.persist(s)
	return resp, nil
}

// answerField applies a structured answer (a menu button, a dedicated
// contact form) directly to the profile. Invalid values re-ask instead
// of mutating.
func (c *ConversationService) answerField(s *Session, req model.MessageRequest) (*model.MessageResponse, error) {
	if err := s.Profile.SetField(string(req.Field), req.Text); err != nil {
		return &model.MessageResponse{
			SessionID:    s.ID,
			Messages:     []string{reAskHint(req.Field)},
			Question:     &model.Question{Message: reAskHint(req.Field), TargetField: req.Field},
			Completed:    s.Completed,
			QualityScore: s.Profile.QualityScore,
		}, nil
	}
	s.Profile.QuestionsAnswered++

	userTurn := model.Turn{Role: model.RoleUser, Text: req.Text, At: time.Now()}
	s.Turns = append(s.Turns, userTurn)
	c.logTurn(s.ID, userTurn)

	reply := c.planner.Plan(PlanInput{
		Profile:    s.Profile,
		Asked:      s.Asked,
		Topics:     s.Topics,
		LastTopics: map[lexicon.Topic]bool{},
	})
	resp := c.respond(s, reply)
	c.persist(s)
	return resp, nil
}

func reAskHint(field model.FieldID) string {
	switch field {
	case model.FieldPhone:
		return "Hmm, esse número não parece válido. Pode me passar com DDD?"
	case model.FieldEmail:
		return "Esse e-mail não parece válido. Pode conferir?"
	case model.FieldName:
		return "Pode me dizer seu nome?"
	default:
		return "Não consegui entender, pode tentar de novo?"
	}
}

// respond turns a planner reply into the outgoing response, running the
// search handoff when the conversation closes. Duplicate outgoing text
// is suppressed by content equality.
func (c *ConversationService) respond(s *Session, reply model.Reply) *model.MessageResponse {
	resp := &model.MessageResponse{
		SessionID:    s.ID,
		QualityScore: s.Profile.QualityScore,
		Question:     reply.NextQuestion,
	}

	seen := make(map[string]bool, len(s.Turns))
	for _, t := range s.Turns {
		if t.Role == model.RoleAssistant {
			seen[t.Text] = true
		}
	}
	now := time.Now()
	for _, msg := range reply.Texts() {
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		resp.Messages = append(resp.Messages, msg)
		turn := model.Turn{Role: model.RoleAssistant, Text: msg, At: now}
		s.Turns = append(s.Turns, turn)
		c.logTurn(s.ID, turn)
	}

	if q := reply.NextQuestion; q != nil {
		if q.CloseAndRedirect {
			s.Completed = true
			filters := FiltersFromProfile(s.Profile)
			results, _ := c.search.Search(filters, model.SearchOptions{})
			resp.Completed = true
			resp.Filters = &filters
			resp.Results = results
		} else if q.TargetField != "" {
			s.Asked[q.TargetField] = true
			s.Pending = q.TargetField
		}
	}
	resp.Completed = s.Completed
	return resp
}

// Snapshot returns the full session state.
func (c *ConversationService) Snapshot(sessionID string) (*model.SessionSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	turns := make([]model.Turn, len(s.Turns))
	copy(turns, s.Turns)
	return &model.SessionSnapshot{
		SessionID: s.ID,
		Profile:   *s.Profile,
		Turns:     turns,
		Completed: s.Completed,
	}, nil
}

func (c *ConversationService) persist(s *Session) {
	if c.store == nil {
		return
	}
	snapshot := *s.Profile
	go func() {
		if err := c.store.UpsertLead(context.Background(), &snapshot); err != nil {
			log.Printf("lead save failed for session %s: %v", s.ID, err)
		}
	}()
}

func (c *ConversationService) logTurn(sessionID string, turn model.Turn) {
	if c.store == nil {
		return
	}
	go func() {
		if err := c.store.LogTurn(context.Background(), sessionID, turn); err != nil {
			log.Printf("turn log failed for session %s: %v", sessionID, err)
		}
	}()
}
