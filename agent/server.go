package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/menu-assistant/config"
)

type Agent struct {
	config    *config.Config
	assistant *Assistant
	tool      *MenuTool
	upgrader  websocket.Upgrader
}

func NewAgent(cfg *config.Config, assistant *Assistant) *Agent {
	return &Agent{
		config:    cfg,
		assistant: assistant,
		tool:      NewMenuTool(assistant),
		upgrader:  websocket.Upgrader{},
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cfg
}

func (a *Agent) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(a.config.Server.AllowOrigins)))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "rows": a.assistant.engine.Table().Len()})
	})

	r.GET("/menu", a.handleQuery)
	r.POST("/menu", a.handleQuery)

	r.GET("/menu/card", func(ctx *gin.Context) {
		path, ok := a.assistant.LastCard()
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "no menu card has been generated yet"})
			return
		}

		ctx.FileAttachment(path, filepath.Base(path))
	})

	r.GET("/history", func(ctx *gin.Context) {
		entries, err := a.assistant.History(ctx)
		if err != nil {
			slog.Error("failed to load history", "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"messages": entries})
	})

	r.GET("/chat", a.handleChat)

	r.POST("/tools/call", func(ctx *gin.Context) {
		var request protocol.CallToolRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if request.Name != MenuToolName {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + request.Name})
			return
		}

		result, err := a.tool.CallTool(ctx, &request)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, result)
	})

	return r
}

func (a *Agent) handleQuery(ctx *gin.Context) {
	var req QueryRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, a.assistant.Ask(ctx, req.Query))
}

// handleChat treats every text frame as a query and answers with a chat message,
// followed by a card message when a menu card was generated.
func (a *Agent) handleChat(ctx *gin.Context) {
	w, r := ctx.Writer, ctx.Request
	c, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("failed to read from ws connection", "error", err)
			}
			return
		}

		req := QueryRequest{Query: string(message)}
		if err := req.Validate(); err != nil {
			if err := c.WriteJSON(WebSocketsMessage{Type: "error", Data: err.Error()}); err != nil {
				slog.Error("failed to write to ws connection", "error", err)
				return
			}
			continue
		}

		reply := a.assistant.Ask(r.Context(), req.Query)
		if err := c.WriteJSON(WebSocketsMessage{Type: "chat", Data: reply.Answer}); err != nil {
			slog.Error("failed to write to ws connection", "error", err)
			return
		}

		if reply.Card {
			if err := c.WriteJSON(WebSocketsMessage{Type: "card", Data: "/menu/card"}); err != nil {
				slog.Error("failed to write to ws connection", "error", err)
				return
			}
		}
	}
}

// Run serves HTTP until ctx is done, then shuts the server down.
func (a *Agent) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.config.Server.Address(),
		Handler: a.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting http server", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
