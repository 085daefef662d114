package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/imkonsowa/menu-assistant/config"
	"github.com/nats-io/nats.go"
)

const queueGroup = "menu-assistant"

// NatsClient answers queries sent as NATS requests and records every answer on a JetStream stream.
type NatsClient struct {
	conn           *nats.Conn
	js             nats.JetStreamContext
	answersSubject string
}

func NewNatsClient(cfg *config.Nats) (*NatsClient, error) {
	nc, err := nats.Connect(cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  []string{cfg.AnswersSubject},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, err
	}

	return &NatsClient{conn: nc, js: js, answersSubject: cfg.AnswersSubject}, nil
}

func (c *NatsClient) Close() {
	c.conn.Close()
}

func (c *NatsClient) PublishAnswer(reply Reply) error {
	data, err := json.Marshal(reply)
	if err != nil {
		return err
	}

	_, err = c.js.PublishAsync(c.answersSubject, data)

	return err
}

// Serve hands every request on subject to the queue until ctx is done.
func (c *NatsClient) Serve(ctx context.Context, subject string, queue *QueryQueue) error {
	subscription, err := c.conn.QueueSubscribe(subject, queueGroup, func(m *nats.Msg) {
		if !queue.Submit(ctx, m.Data, m.Respond) {
			slog.Warn("dropped query message", "subject", subject)
		}
	})
	if err != nil {
		return err
	}
	slog.Info("listening for menu queries", "subject", subject)

	<-ctx.Done()

	if err := subscription.Drain(); err != nil {
		slog.Warn("failed to drain subscription", "subject", subject, "error", err)
	}

	return nil
}
