// Package nats carries extraction job IDs from the API to the worker
// pool over a single NATS subject, with the publish side wrapped in a
// retry-and-breaker guard.
package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/office-text-extractor/internal/infrastructure/resilience"
)

// workerGroup is the queue group name; every worker instance joins it
// so each submitted extraction is processed exactly once.
const workerGroup = "workers"

type Queue struct {
	conn    *nats.Conn
	subject string
	guard   *resilience.PublishGuard
	logger  *slog.Logger
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool

	// Publish overrides the guard settings; nil uses PublishDefaults.
	Publish *resilience.Config
	Logger  *slog.Logger
}

func New(url, subject string, logger *slog.Logger) (*Queue, error) {
	return NewWithOptions(url, subject, Options{Logger: logger})
}

func NewWithOptions(url, subject string, options Options) (*Queue, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}
	publishCfg := resilience.PublishDefaults()
	if options.Publish != nil {
		publishCfg = *options.Publish
	}

	conn, err := nats.Connect(
		url,
		nats.Name("office-text-extractor"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("queue_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("queue_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return &Queue{
		conn:    conn,
		subject: subject,
		guard:   resilience.NewPublishGuard("nats."+subject, publishCfg, classifyPublishError, logger),
		logger:  logger,
	}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// PublishExtractionSubmitted announces a new job to the worker group.
// Broker outages surface as ErrTemporary so the API can answer 503
// rather than 500.
func (q *Queue) PublishExtractionSubmitted(ctx context.Context, extractionID string) error {
	err := q.guard.Do(ctx, func(_ context.Context) error {
		if err := q.conn.Publish(q.subject, []byte(extractionID)); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	})
	return markTemporary(err)
}

// SubscribeExtractionSubmitted joins the worker group and runs the
// handler for each job ID until the context ends, then drains.
func (q *Queue) SubscribeExtractionSubmitted(ctx context.Context, handler func(context.Context, string) error) error {
	sub, err := q.conn.QueueSubscribe(q.subject, workerGroup, func(msg *nats.Msg) {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		extractionID := string(msg.Data)
		handlerCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := handler(handlerCtx, extractionID); err != nil {
			q.logger.Error("extraction_processing_failed",
				"extraction_id", extractionID,
				"error", err,
			)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}
