package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/menu-assistant/config"
	"github.com/imkonsowa/menu-assistant/menu"
	"github.com/imkonsowa/menu-assistant/models"
	"github.com/tmc/langchaingo/memory"
)

type fileRenderer struct {
	path string
}

func (f *fileRenderer) Render(table *menu.Table) (string, error) {
	if err := os.WriteFile(f.path, []byte("%PDF-1.3 test"), 0o644); err != nil {
		return "", err
	}

	return f.path, nil
}

type recordingPublisher struct {
	replies []Reply
}

func (p *recordingPublisher) PublishAnswer(reply Reply) error {
	p.replies = append(p.replies, reply)
	return nil
}

func newTestAssistant(t *testing.T) *Assistant {
	t.Helper()

	rows := []models.MenuRow{
		{Restaurant: "Xanders", Category: "Sandwiches", Dish: "Club Sandwich", Price: "450", Description: "Triple decker with chicken and egg"},
		{Restaurant: "Xanders", Category: "Burgers", Dish: "Classic Beef Burger", Price: "1,200", Description: "Beef patty, cheddar"},
		{Restaurant: "Xanders", Category: "Burgers", Dish: "Crispy Chicken Burger", Price: "950", Description: "Fried chicken thigh"},
		{Restaurant: "Xanders", Category: "Soups", Dish: "Tomato Soup", Price: "550", Description: "Roasted tomatoes, basil"},
	}

	table, err := menu.NewTable(menu.Normalize(rows))
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}

	renderer := &fileRenderer{path: filepath.Join(t.TempDir(), "menu_card.pdf")}
	engine, err := menu.NewEngine(table, menu.WithCardRenderer(renderer))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	return NewAssistant(engine, memory.NewChatMessageHistory())
}

func setupTestRouter(t *testing.T) (*gin.Engine, *Assistant) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	assistant := newTestAssistant(t)
	agent := NewAgent(&config.Config{}, assistant)

	return agent.Router(), assistant
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) Reply {
	t.Helper()

	var reply Reply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("failed to decode reply %q: %v", w.Body.String(), err)
	}

	return reply
}

func TestHealth(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"rows":4`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestMenuQuery(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu?query="+url.QueryEscape("price of club sandwich"), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	reply := decodeReply(t, w)
	if reply.Answer != "**Club Sandwich** — ₨450\n*Triple decker with chicken and egg*" {
		t.Errorf("unexpected answer %q", reply.Answer)
	}
	if reply.Outcome != menu.OutcomeDish || reply.Card {
		t.Errorf("unexpected reply %+v", reply)
	}
	if reply.RequestID == "" {
		t.Error("expected a request id")
	}
}

func TestMenuQuery_JSONBody(t *testing.T) {
	r, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]string{"query": "dishes under 500"})
	req := httptest.NewRequest(http.MethodPost, "/menu", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if reply := decodeReply(t, w); !strings.Contains(reply.Answer, "**Club Sandwich** — ₨450") || strings.Contains(reply.Answer, "Burger") {
		t.Errorf("unexpected answer %q", reply.Answer)
	}
}

func TestMenuQuery_Missing(t *testing.T) {
	r, _ := setupTestRouter(t)

	for _, target := range []string{"/menu", "/menu?query=%20%20"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", target, w.Code)
		}
	}
}

func TestMenuCard(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu/card", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 before any card, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu?query="+url.QueryEscape("burgers pdf"), nil))
	reply := decodeReply(t, w)
	if !reply.Card || !strings.HasSuffix(reply.Answer, "📄 Generated **menu_card.pdf** for you!") {
		t.Fatalf("expected a card, got %+v", reply)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu/card", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Errorf("expected the card file, got %q", w.Body.String())
	}
}

func TestToolCall(t *testing.T) {
	r, _ := setupTestRouter(t)

	call := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/tools/call", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := call(`{"name":"menu_lookup","arguments":{"query":"show me burgers"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" || !strings.HasPrefix(result.Content[0].Text, "### 🍴 Burgers Items") {
		t.Errorf("unexpected result %+v", result)
	}

	if w := call(`{"name":"order_food","arguments":{}}`); w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for an unknown tool, got %d", w.Code)
	}
	if w := call(`{"name":"menu_lookup","arguments":{}}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without a query, got %d", w.Code)
	}
	if w := call(`not json`); w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for a malformed request, got %d", w.Code)
	}
}

func TestHistory(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu?query=xyzzy", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Messages []HistoryEntry `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(body.Messages) != 2 {
		t.Fatalf("expected a question and an answer, got %+v", body.Messages)
	}
	if body.Messages[0].Content != "xyzzy" || body.Messages[1].Content != menu.NotFoundMessage {
		t.Errorf("unexpected history %+v", body.Messages)
	}
}

func TestChat(t *testing.T) {
	r, _ := setupTestRouter(t)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/chat", nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	read := func() WebSocketsMessage {
		t.Helper()
		var msg WebSocketsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("failed to read message: %v", err)
		}
		return msg
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("burgers pdf")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	msg := read()
	if msg.Type != "chat" || !strings.Contains(msg.Data.(string), "**Classic Beef Burger** — ₨1,200") {
		t.Errorf("unexpected chat message %+v", msg)
	}
	if msg = read(); msg.Type != "card" || msg.Data != "/menu/card" {
		t.Errorf("unexpected card message %+v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("   ")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if msg = read(); msg.Type != "error" {
		t.Errorf("expected an error message, got %+v", msg)
	}
}

func TestMenuTool(t *testing.T) {
	assistant := newTestAssistant(t)
	publisher := &recordingPublisher{}
	assistant.SetPublisher(publisher)

	tool := NewMenuTool(assistant)
	if tool.Name() != "menu_lookup" || tool.Description() == "" {
		t.Errorf("unexpected tool metadata %q", tool.Name())
	}

	answer, err := tool.Call(context.Background(), "basil")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if !strings.Contains(answer, "**Tomato Soup** — ₨550") {
		t.Errorf("unexpected answer %q", answer)
	}
	if len(publisher.replies) != 1 || publisher.replies[0].Query != "basil" {
		t.Errorf("expected the answer to be published, got %+v", publisher.replies)
	}

	if _, err := tool.Call(context.Background(), ""); err == nil {
		t.Error("expected an error for an empty query")
	}
}
