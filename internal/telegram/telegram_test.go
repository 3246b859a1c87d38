package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessagePostsToBotEndpoint(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request failed: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient("bot-token", "chat-42", WithBaseURL(server.URL))
	if err := client.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if gotPath != "/botbot-token/sendMessage" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["chat_id"] != "chat-42" || gotBody["text"] != "hello" {
		t.Fatalf("body = %v", gotBody)
	}
	if gotBody["parse_mode"] != "Markdown" {
		t.Fatalf("parse_mode = %v", gotBody["parse_mode"])
	}
}

func TestSendMessageAPIRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	client := NewClient("bot-token", "chat-42", WithBaseURL(server.URL))
	err := client.SendMessage(context.Background(), "hello")
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("api rejection: got %v, want %v", err, ErrResponseInvalid)
	}
}

func TestSendMessageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("bot-token", "chat-42", WithBaseURL(server.URL))
	err := client.SendMessage(context.Background(), "hello")
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("http error: got %v, want %v", err, ErrRequestFailed)
	}
}

func TestDisabledClient(t *testing.T) {
	client := NewClient("", "")
	if client.Enabled() {
		t.Fatalf("client without credentials reports enabled")
	}
	if err := client.SendMessage(context.Background(), "hello"); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("disabled send: got %v, want %v", err, ErrConfigInvalid)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client reports enabled")
	}
}

func TestSendMessageSkipsEmptyText(t *testing.T) {
	client := NewClient("bot-token", "chat-42", WithBaseURL("http://127.0.0.1:1"))
	// Blank text is dropped without a request; the unreachable host would
	// fail the send otherwise.
	if err := client.SendMessage(context.Background(), "   "); err != nil {
		t.Fatalf("blank send: got %v, want nil", err)
	}
}
