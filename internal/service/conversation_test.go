package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/model"
)

func newTestConversation(t *testing.T) *ConversationService {
	t.Helper()
	return NewConversationService(newTestSearch(t), nil)
}

func TestConversation_FullFlow(t *testing.T) {
	c := newTestConversation(t)

	start := c.StartSession()
	require.NotEmpty(t, start.SessionID)
	assert.Len(t, start.Messages, 3, "greeting is the fixed three-message opener")

	// One rich opening message fills the whole search axis at once.
	resp, err := c.ProcessMessage(start.SessionID, model.MessageRequest{
		Text: "Quero um apartamento de 2 quartos em Porto Alegre até 500 mil",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, model.FieldName, resp.Question.TargetField,
		"location and budget already given, next mandatory slot is the name")
	assert.False(t, resp.Completed)
	scoreAfterCriteria := resp.QualityScore

	resp, err = c.ProcessMessage(start.SessionID, model.MessageRequest{Text: "Me chamo Ana"})
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, model.FieldPhone, resp.Question.TargetField)
	assert.GreaterOrEqual(t, resp.QualityScore, scoreAfterCriteria,
		"quality score never decreases as the profile grows")

	resp, err = c.ProcessMessage(start.SessionID, model.MessageRequest{Text: "51 99999 8888"})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	require.NotNil(t, resp.Filters)
	require.NotEmpty(t, resp.Results)
	first := resp.Results[0]
	assert.Equal(t, model.PropertyApartment, first.Type)
	assert.LessOrEqual(t, first.Price, 500000)
	assert.Equal(t, "Porto Alegre", first.City)

	snap, err := c.Snapshot(start.SessionID)
	require.NoError(t, err)
	require.NotNil(t, snap.Profile.Name)
	assert.Equal(t, "Ana", *snap.Profile.Name)
	require.NotNil(t, snap.Profile.Phone)
	assert.Equal(t, "51999998888", *snap.Profile.Phone)
	assert.True(t, snap.Completed)
}

func TestConversation_DuplicateMessageReturnsCachedReply(t *testing.T) {
	c := newTestConversation(t)
	start := c.StartSession()

	first, err := c.ProcessMessage(start.SessionID, model.MessageRequest{Text: "procuro casa em Canoas"})
	require.NoError(t, err)

	again, err := c.ProcessMessage(start.SessionID, model.MessageRequest{Text: "procuro casa em Canoas"})
	require.NoError(t, err)
	assert.Equal(t, first, again, "a retried message must not advance the conversation")

	snap, err := c.Snapshot(start.SessionID)
	require.NoError(t, err)
	var userTurns int
	for _, turn := range snap.Turns {
		if turn.Role == model.RoleUser {
			userTurns++
		}
	}
	assert.Equal(t, 1, userTurns)
}

func TestConversation_NeverRepeatsAnOutgoingMessage(t *testing.T) {
	c := newTestConversation(t)
	start := c.StartSession()

	seen := make(map[string]int)
	for _, msg := range start.Messages {
		seen[msg]++
	}
	inputs := []string{
		"quero comprar um imóvel",
		"pode ser em qualquer lugar da zona sul",
		"tanto faz o valor",
	}
	for _, text := range inputs {
		resp, err := c.ProcessMessage(start.SessionID, model.MessageRequest{Text: text})
		require.NoError(t, err)
		for _, msg := range resp.Messages {
			seen[msg]++
		}
	}
	for msg, n := range seen {
		assert.Equal(t, 1, n, "repeated outgoing message: %q", msg)
	}
}

func TestConversation_FieldAnswerValidation(t *testing.T) {
	c := newTestConversation(t)
	start := c.StartSession()

	resp, err := c.ProcessMessage(start.SessionID, model.MessageRequest{
		Field: model.FieldPhone,
		Text:  "123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, model.FieldPhone, resp.Question.TargetField, "invalid value re-asks the same field")

	snap, err := c.Snapshot(start.SessionID)
	require.NoError(t, err)
	assert.Nil(t, snap.Profile.Phone, "invalid value must not touch the profile")

	resp, err = c.ProcessMessage(start.SessionID, model.MessageRequest{
		Field: model.FieldPhone,
		Text:  "(51) 99999-8888",
	})
	require.NoError(t, err)
	snap, err = c.Snapshot(start.SessionID)
	require.NoError(t, err)
	require.NotNil(t, snap.Profile.Phone)
	assert.Equal(t, "51999998888", *snap.Profile.Phone)
}

func TestConversation_UnknownSession(t *testing.T) {
	c := newTestConversation(t)

	_, err := c.ProcessMessage("nope", model.MessageRequest{Text: "oi"})
	assert.Error(t, err)

	_, err = c.Snapshot("nope")
	assert.Error(t, err)
}
