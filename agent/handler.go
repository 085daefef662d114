package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/imkonsowa/menu-assistant/menu"
	"github.com/tmc/langchaingo/llms"
)

// ChatHistory stores the conversation. langchaingo's chat message histories satisfy it.
type ChatHistory interface {
	AddUserMessage(ctx context.Context, message string) error
	AddAIMessage(ctx context.Context, message string) error
	Messages(ctx context.Context) ([]llms.ChatMessage, error)
}

type AnswerPublisher interface {
	PublishAnswer(reply Reply) error
}

// Assistant answers menu queries one at a time for every transport.
type Assistant struct {
	engine    *menu.Engine
	history   ChatHistory
	publisher AnswerPublisher

	mu       sync.Mutex
	lastCard string
}

func NewAssistant(engine *menu.Engine, history ChatHistory) *Assistant {
	return &Assistant{
		engine:  engine,
		history: history,
	}
}

func (a *Assistant) SetPublisher(p AnswerPublisher) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.publisher = p
}

// Ask resolves a query. Queries from all transports are serialized.
func (a *Assistant) Ask(ctx context.Context, query string) Reply {
	a.mu.Lock()
	defer a.mu.Unlock()

	requestID := uuid.NewString()
	slog.InfoContext(ctx, "query received", "request_id", requestID, "query", query)

	answer := a.engine.Resolve(ctx, query)
	if answer.CardPath != "" {
		a.lastCard = answer.CardPath
	}

	reply := Reply{
		RequestID: requestID,
		Query:     query,
		Answer:    answer.Text,
		Outcome:   answer.Outcome,
		Card:      answer.CardPath != "",
	}
	slog.InfoContext(ctx, "query answered", "request_id", requestID, "outcome", answer.Outcome, "card", reply.Card)

	if a.history != nil {
		if err := a.history.AddUserMessage(ctx, query); err != nil {
			slog.Error("failed to store user message", "request_id", requestID, "error", err)
		}
		if err := a.history.AddAIMessage(ctx, answer.Text); err != nil {
			slog.Error("failed to store answer", "request_id", requestID, "error", err)
		}
	}

	if a.publisher != nil {
		if err := a.publisher.PublishAnswer(reply); err != nil {
			slog.Warn("failed to publish answer", "request_id", requestID, "error", err)
		}
	}

	return reply
}

// LastCard is the path of the most recently generated menu card, if any.
func (a *Assistant) LastCard() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.lastCard, a.lastCard != ""
}

func (a *Assistant) History(ctx context.Context) ([]HistoryEntry, error) {
	if a.history == nil {
		return nil, nil
	}

	messages, err := a.history.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, HistoryEntry{
			Role:    string(m.GetType()),
			Content: m.GetContent(),
		})
	}

	return entries, nil
}
