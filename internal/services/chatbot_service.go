// Package services – ChatbotService
//
// ChatbotService proxies visitor messages to the conversational upstream.
// When the upstream is unreachable it answers from the FAQ table if the best
// matching question scores at or above Threshold. Turns can optionally be
// written to chat history.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/tarumenyan/studio-backend/internal/chatbot"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FallbackIntent tags history rows answered from the FAQ table.
const FallbackIntent = "faq_fallback"

// ChatbotClient is the upstream contract used by ChatbotService.
type ChatbotClient interface {
	Send(ctx context.Context, sender, message string) ([]chatbot.Message, error)
	Online() bool
}

// FAQMatcher finds the FAQ entry closest to a message.
type FAQMatcher interface {
	Best(ctx context.Context, q string) (*FAQMatch, error)
}

// TurnMeta carries request details recorded with a turn.
type TurnMeta struct {
	UserIP    string
	UserAgent string
}

// ChatbotReply is the answer to one visitor message.
type ChatbotReply struct {
	Messages []chatbot.Message
	// Fallback is true when the reply came from the FAQ table.
	Fallback bool
}

// ChatbotService forwards messages upstream with an FAQ fallback.
type ChatbotService struct {
	Client    ChatbotClient
	FAQ       FAQMatcher
	Threshold float64

	// History, when set, receives every answered turn.
	History *ChatHistoryService
	// OnRecordError receives history write failures; the reply is still sent.
	OnRecordError func(error)
}

// Reply answers message from sender.
func (s *ChatbotService) Reply(ctx context.Context, sender, message string, meta TurnMeta) (*ChatbotReply, error) {
	tr := otel.Tracer("services/ChatbotService")
	ctx, span := tr.Start(ctx, "Reply",
		trace.WithAttributes(attribute.String("session.id", sender)),
	)
	defer span.End()

	sender, message = strings.TrimSpace(sender), strings.TrimSpace(message)
	if sender == "" || message == "" {
		return nil, invalid("sender and message are required")
	}

	msgs, err := s.Client.Send(ctx, sender, message)
	if err == nil {
		s.record(ctx, sender, message, joinTexts(msgs), "", nil, meta)
		return &ChatbotReply{Messages: msgs}, nil
	}
	if !errors.Is(err, chatbot.ErrUnavailable) {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("chatbot.unavailable", true))
	if s.FAQ == nil {
		return nil, ErrChatbotUnavailable
	}
	best, ferr := s.FAQ.Best(ctx, message)
	if ferr != nil || best == nil || best.Score < s.Threshold {
		return nil, ErrChatbotUnavailable
	}

	score := best.Score
	s.record(ctx, sender, message, best.FAQ.Answer, FallbackIntent, &score, meta)
	span.SetAttributes(attribute.Float64("faq.score", score))
	return &ChatbotReply{
		Messages: []chatbot.Message{{RecipientID: sender, Text: best.FAQ.Answer, Buttons: []chatbot.Button{}}},
		Fallback: true,
	}, nil
}

// Online reports the upstream's last known state.
func (s *ChatbotService) Online() bool { return s.Client.Online() }

func (s *ChatbotService) record(ctx context.Context, sender, message, reply, intent string, confidence *float64, meta TurnMeta) {
	if s.History == nil || reply == "" {
		return
	}
	_, _, err := s.History.Create(ctx, ChatHistoryInput{
		SessionID:   sender,
		UserMessage: message,
		BotResponse: reply,
		Intent:      intent,
		Confidence:  confidence,
		UserIP:      meta.UserIP,
		UserAgent:   meta.UserAgent,
	}, "")
	if err != nil && s.OnRecordError != nil {
		s.OnRecordError(err)
	}
}

func joinTexts(msgs []chatbot.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if t := strings.TrimSpace(m.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
