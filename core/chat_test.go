package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChatterSend(t *testing.T) {
	ctx := context.Background()

	t.Run("successful reply is persisted", func(t *testing.T) {
		completer := &contract.MockCompleter{}
		store := &contract.MockStore{}
		session := NewChatSession(7, schema.EmotionalSupportCategory, schema.AvoidantProfile)

		completer.On("Complete", ctx, SystemPrompt(schema.EmotionalSupportCategory, schema.AvoidantProfile),
			[]schema.ChatTurn{{Role: schema.UserRole, Text: "I feel stuck"}}).
			Return(schema.Completed("Let's talk about it."))
		store.On("AppendChatMessage", ctx, mock.MatchedBy(func(m schema.ChatMessageRecord) bool {
			return m.UserID == 7 && m.Category == schema.EmotionalSupportCategory && m.CreatedAt.Equal(fixedTime)
		})).Return(int64(1), nil).Twice()

		chatter := NewChatter(completer, store, nil)
		chatter.Now = fixedClock
		reply, err := chatter.Send(ctx, session, "  I feel stuck ")
		require.NoError(t, err)

		assert.Equal(t, "Let's talk about it.", reply.Text)
		assert.False(t, reply.Failed)
		assert.True(t, reply.Persisted)
		assert.Equal(t, []schema.ChatTurn{
			{Role: schema.UserRole, Text: "I feel stuck"},
			{Role: schema.AssistantRole, Text: "Let's talk about it."},
		}, session.Turns())
		completer.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("failed completion yields apology", func(t *testing.T) {
		completer := &contract.MockCompleter{}
		completer.On("Complete", ctx, mock.Anything, mock.Anything).Return(schema.CompletionFailure("rate limited"))

		session := NewChatSession(0, schema.GeneralCategory, schema.NoProfile)
		reply, err := NewChatter(completer, nil, nil).Send(ctx, session, "hello")
		require.NoError(t, err)

		assert.True(t, reply.Failed)
		assert.Equal(t, schema.ServiceUnavailableReply, reply.Text)
		assert.Equal(t, "rate limited", reply.Reason)
		assert.False(t, reply.Persisted)
		assert.Len(t, session.Turns(), 2)
	})

	t.Run("persistence failure is not a chat failure", func(t *testing.T) {
		completer := &contract.MockCompleter{}
		store := &contract.MockStore{}
		completer.On("Complete", ctx, mock.Anything, mock.Anything).Return(schema.Completed("ok"))
		store.On("AppendChatMessage", ctx, mock.Anything).Return(int64(0), errors.New("disk full"))

		session := NewChatSession(3, schema.GeneralCategory, schema.NoProfile)
		reply, err := NewChatter(completer, store, nil).Send(ctx, session, "hi")
		require.NoError(t, err)

		assert.False(t, reply.Failed)
		assert.False(t, reply.Persisted)
		assert.Equal(t, "ok", reply.Text)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		completer := &contract.MockCompleter{}
		session := NewChatSession(0, schema.GeneralCategory, schema.NoProfile)

		_, err := NewChatter(completer, nil, nil).Send(ctx, session, "   ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Empty(t, session.Turns())
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChatterContextWindow(t *testing.T) {
	ctx := context.Background()
	completer := &contract.MockCompleter{}

	var seen [][]schema.ChatTurn
	completer.On("Complete", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			seen = append(seen, args.Get(2).([]schema.ChatTurn))
		}).
		Return(schema.Completed("reply"))

	chatter := NewChatter(completer, nil, nil)
	chatter.HistoryTurns = 4
	session := NewChatSession(0, schema.GeneralCategory, schema.NoProfile)
	for _, msg := range []string{"one", "two", "three", "four"} {
		_, err := chatter.Send(ctx, session, msg)
		require.NoError(t, err)
	}

	require.Len(t, seen, 4)
	assert.Equal(t, []schema.ChatTurn{{Role: schema.UserRole, Text: "one"}}, seen[0])
	// The last four turns before "four" are two, reply, three, reply; only user turns are kept.
	assert.Equal(t, []schema.ChatTurn{
		{Role: schema.UserRole, Text: "two"},
		{Role: schema.UserRole, Text: "three"},
		{Role: schema.UserRole, Text: "four"},
	}, seen[3])

	session.Clear()
	assert.Empty(t, session.Turns())
}

func TestChatterPromptOverride(t *testing.T) {
	ctx := context.Background()
	completer := &contract.MockCompleter{}
	completer.On("Complete", ctx, "custom marketing context", mock.Anything).Return(schema.Completed("ok"))

	session := NewChatSession(0, schema.MarketingCategory, schema.ImpulsiveProfile)
	session.Prompt = "custom marketing context"
	_, err := NewChatter(completer, nil, nil).Send(ctx, session, "plan my launch")
	require.NoError(t, err)
	completer.AssertExpectations(t)
}

func TestChatterNarrate(t *testing.T) {
	ctx := context.Background()
	rb := DefaultRulebook()
	result := rb.Analyze(schema.Response{"q11": schema.VeryOften})

	t.Run("success", func(t *testing.T) {
		completer := &contract.MockCompleter{}
		completer.On("Complete", ctx, SystemPrompt(schema.PersonalDevelopmentCategory, schema.IsolativeProfile), mock.Anything).
			Return(schema.Completed("You value independence."))

		reply := NewChatter(completer, nil, nil).Narrate(ctx, rb, result)
		assert.False(t, reply.Failed)
		assert.Equal(t, "You value independence.", reply.Text)
	})

	t.Run("failure", func(t *testing.T) {
		completer := &contract.MockCompleter{}
		completer.On("Complete", ctx, mock.Anything, mock.Anything).Return(schema.CompletionFailure("boom"))

		reply := NewChatter(completer, nil, nil).Narrate(ctx, rb, result)
		assert.True(t, reply.Failed)
		assert.Equal(t, schema.ProcessingErrorReply, reply.Text)
	})
}

func TestChatSessionHistoryIsBounded(t *testing.T) {
	ctx := context.Background()
	completer := &contract.MockCompleter{}
	completer.On("Complete", ctx, mock.Anything, mock.Anything).Return(schema.Completed("ok"))
	chatter := NewChatter(completer, nil, nil)
	session := NewChatSession(0, schema.GeneralCategory, schema.NoProfile)

	for i := range maxSessionTurns {
		_, err := chatter.Send(ctx, session, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	turns := session.Turns()
	require.Len(t, turns, maxSessionTurns)
	assert.Equal(t, fmt.Sprintf("message %d", maxSessionTurns/2), turns[0].Text, "oldest turns dropped first")
	assert.Equal(t, "ok", turns[len(turns)-1].Text)
}
