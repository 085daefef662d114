package main

import (
	"errors"
	"strings"

	"github.com/imkonsowa/menu-assistant/menu"
)

const maxQueryLength = 500

var errEmptyQuery = errors.New("query is required")

type WebSocketsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Reply is what every transport sends back for one query.
type Reply struct {
	RequestID string       `json:"request_id"`
	Query     string       `json:"query"`
	Answer    string       `json:"answer"`
	Outcome   menu.Outcome `json:"outcome"`
	Card      bool         `json:"card"`
}

type QueryRequest struct {
	Query string `json:"query" form:"query"`
}

func (q *QueryRequest) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return errEmptyQuery
	}
	if len(q.Query) > maxQueryLength {
		return errors.New("query is too long")
	}

	return nil
}

type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
