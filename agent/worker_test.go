package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestQueryQueue(t *testing.T) {
	ctx := context.Background()

	queue := NewQueryQueue(ctx, 1, 4, func(ctx context.Context, data []byte) ([]byte, error) {
		if string(data) == "fail" {
			return nil, errors.New("boom")
		}
		return []byte(strings.ToUpper(string(data))), nil
	})
	defer func() {
		queue.Stop()
		queue.Wait()
	}()

	replies := make(chan string, 2)
	respond := func(data []byte) error {
		replies <- string(data)
		return nil
	}

	if !queue.Submit(ctx, []byte("burgers"), respond) {
		t.Fatal("expected submit to succeed")
	}
	if !queue.Submit(ctx, []byte("fail"), respond) {
		t.Fatal("expected submit to succeed")
	}

	for _, want := range []string{"BURGERS", `{"error":"boom"}`} {
		select {
		case got := <-replies:
			if got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a reply")
		}
	}
}

func TestQueryQueue_SubmitAfterStop(t *testing.T) {
	queue := NewQueryQueue(context.Background(), 1, 1, func(ctx context.Context, data []byte) ([]byte, error) {
		return data, nil
	})
	queue.Stop()
	queue.Wait()

	if queue.Submit(context.Background(), []byte("a"), func([]byte) error { return nil }) {
		t.Error("expected submit to fail on a stopped queue")
	}
}

func TestAssistantQueryHandler(t *testing.T) {
	handler := AssistantQueryHandler(newTestAssistant(t))

	for _, payload := range []string{`{"query":"price of club sandwich"}`, "price of club sandwich"} {
		data, err := handler(context.Background(), []byte(payload))
		if err != nil {
			t.Fatalf("%s: handler failed: %v", payload, err)
		}

		var reply Reply
		if err := json.Unmarshal(data, &reply); err != nil {
			t.Fatalf("failed to decode reply: %v", err)
		}
		if !strings.HasPrefix(reply.Answer, "**Club Sandwich** — ₨450") {
			t.Errorf("%s: unexpected answer %q", payload, reply.Answer)
		}
	}

	if _, err := handler(context.Background(), []byte(`{"query":""}`)); !errors.Is(err, errEmptyQuery) {
		t.Errorf("expected errEmptyQuery, got %v", err)
	}
}
