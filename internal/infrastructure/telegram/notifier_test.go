package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"designdaily/internal/config"
)

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = r.ParseForm()
		gotChat = r.FormValue("chat_id")
		gotText = r.FormValue("text")
	}))
	defer server.Close()

	n := NewNotifier(config.TelegramConfig{BotToken: "tok", ChatID: "42"}, server.Client())
	n.apiBase = server.URL

	if err := n.PublishDigest(context.Background(), "*Award pick*: something"); err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}

	if gotPath != "/bottok/sendMessage" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotChat != "42" {
		t.Fatalf("unexpected chat id %s", gotChat)
	}
	if gotText != "*Award pick*: something" {
		t.Fatalf("unexpected text %s", gotText)
	}
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewNotifier(config.TelegramConfig{}, nil)
	if err := n.PublishDigest(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
}
