package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tarumenyan/studio-backend/internal/chatbot"
	"github.com/tarumenyan/studio-backend/internal/domain"
)

type fakeBot struct {
	msgs   []chatbot.Message
	err    error
	online bool
	calls  int
}

func (f *fakeBot) Send(_ context.Context, _, _ string) ([]chatbot.Message, error) {
	f.calls++
	return f.msgs, f.err
}

func (f *fakeBot) Online() bool { return f.online }

func TestChatbot_Reply_ForwardsAndRecords(t *testing.T) {
	db := newServiceDB(t)
	bot := &fakeBot{online: true, msgs: []chatbot.Message{{Text: "Halo!"}, {Image: "https://x/y.jpg"}, {Text: "Ada yang bisa dibantu?"}}}
	svc := &ChatbotService{Client: bot, History: NewChatHistoryService(db, time.Hour)}

	if _, err := svc.Reply(context.Background(), "", "halo", TurnMeta{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing sender: want ErrValidation, got %v", err)
	}
	if bot.calls != 0 {
		t.Fatalf("invalid input must not reach upstream")
	}

	r, err := svc.Reply(context.Background(), "sess-1", "halo", TurnMeta{UserIP: "1.2.3.4", UserAgent: "ua"})
	if err != nil || r.Fallback || len(r.Messages) != 3 {
		t.Fatalf("Reply = %+v err=%v", r, err)
	}
	if !svc.Online() {
		t.Fatalf("Online should mirror the client")
	}

	var rows []domain.ChatHistoryEntry
	db.Find(&rows)
	if len(rows) != 1 || rows[0].SessionID != "sess-1" || rows[0].BotResponse != "Halo!\nAda yang bisa dibantu?" || rows[0].UserIP != "1.2.3.4" {
		t.Fatalf("recorded rows = %+v", rows)
	}
}

func TestChatbot_Reply_FallsBackToFAQ(t *testing.T) {
	db := newServiceDB(t)
	faq := NewFAQService(db)
	_, _ = faq.Create(context.Background(), "Di mana lokasi studio?", "Di Denpasar, Bali.")

	bot := &fakeBot{err: fmt.Errorf("%w: connection refused", chatbot.ErrUnavailable)}
	svc := &ChatbotService{Client: bot, FAQ: faq, Threshold: 0.32, History: NewChatHistoryService(db, time.Hour)}

	r, err := svc.Reply(context.Background(), "s", "lokasi studio di mana", TurnMeta{})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !r.Fallback || len(r.Messages) != 1 || r.Messages[0].Text != "Di Denpasar, Bali." || r.Messages[0].RecipientID != "s" {
		t.Fatalf("fallback reply = %+v", r)
	}
	var row domain.ChatHistoryEntry
	db.First(&row)
	if row.Intent == nil || *row.Intent != FallbackIntent || row.Confidence == nil {
		t.Fatalf("fallback turn should be tagged: %+v", row)
	}

	if _, err := svc.Reply(context.Background(), "s", "harga drone berapa", TurnMeta{}); !errors.Is(err, ErrChatbotUnavailable) {
		t.Fatalf("low score: want ErrChatbotUnavailable, got %v", err)
	}

	noFAQ := &ChatbotService{Client: bot}
	if _, err := noFAQ.Reply(context.Background(), "s", "lokasi", TurnMeta{}); !errors.Is(err, ErrChatbotUnavailable) {
		t.Fatalf("no FAQ: want ErrChatbotUnavailable, got %v", err)
	}
}

func TestChatbot_Reply_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	svc := &ChatbotService{Client: &fakeBot{err: boom}}
	if _, err := svc.Reply(context.Background(), "s", "m", TurnMeta{}); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestChatbot_Reply_UpstreamRejectionSkipsFallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer upstream.Close()

	db := newServiceDB(t)
	faq := NewFAQService(db)
	_, _ = faq.Create(context.Background(), "Di mana lokasi studio?", "Di Denpasar, Bali.")
	client := chatbot.New(chatbot.Config{URL: upstream.URL, Timeout: time.Second, Attempts: 2, Backoff: time.Millisecond})
	svc := &ChatbotService{Client: client, FAQ: faq, Threshold: 0.1}

	_, err := svc.Reply(context.Background(), "s", "lokasi studio di mana", TurnMeta{})
	if err == nil || errors.Is(err, chatbot.ErrUnavailable) || errors.Is(err, ErrChatbotUnavailable) {
		t.Fatalf("400 from upstream: got %v", err)
	}
	if !svc.Online() {
		t.Fatalf("upstream answered, it must stay online")
	}
}

func TestChatbot_RecordErrorsDoNotFailReply(t *testing.T) {
	db := newServiceDB(t)
	var recorded error
	svc := &ChatbotService{
		Client:        &fakeBot{msgs: []chatbot.Message{{Text: "ok"}}},
		History:       NewChatHistoryService(db, time.Hour),
		OnRecordError: func(err error) { recorded = err },
	}
	if err := db.Migrator().DropTable(&domain.ChatHistoryEntry{}); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := svc.Reply(context.Background(), "s", "m", TurnMeta{}); err != nil {
		t.Fatalf("Reply should succeed: %v", err)
	}
	if recorded == nil {
		t.Fatalf("record failure should be reported")
	}
}
