// internal/adapter/events/publisher.go

package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"mangaintel/internal/domain/news"
)

// Subject suffixes published under the configured topic prefix.
const (
	SubjectArticleCreated = "article.created"
	SubjectAlertCreated   = "alert.created"
	SubjectTrendUpdated   = "trend.updated"
)

// Envelope wraps every published event with its kind and emit time.
type Envelope struct {
	Kind    string      `json:"kind"`
	Time    time.Time   `json:"time"`
	Payload interface{} `json:"payload"`
}

// Publisher emits pipeline events to NATS. A nil Publisher (or one
// built without a connection) silently drops events, so components can
// run without a broker in tests.
type Publisher struct {
	conn   *nats.Conn
	topic  string
	logger *slog.Logger
}

// NewPublisher wires a NATS connection to a topic prefix.
func NewPublisher(conn *nats.Conn, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{conn: conn, topic: topic, logger: logger}
}

// ArticleCreated announces a newly ingested article.
func (p *Publisher) ArticleCreated(a news.Article) {
	p.publish(SubjectArticleCreated, a)
}

// AlertCreated announces a newly raised alert.
func (p *Publisher) AlertCreated(a news.Alert) {
	p.publish(SubjectAlertCreated, a)
}

// TrendUpdated announces a created or recomputed trend.
func (p *Publisher) TrendUpdated(t news.Trend) {
	p.publish(SubjectTrendUpdated, t)
}

func (p *Publisher) publish(kind string, payload interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(Envelope{Kind: kind, Time: time.Now(), Payload: payload})
	if err != nil {
		p.log("marshal event", kind, err)
		return
	}

	subject := fmt.Sprintf("%s.%s", p.topic, kind)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log("publish event", subject, err)
	}
}

func (p *Publisher) log(msg, subject string, err error) {
	if p.logger != nil {
		p.logger.Warn(msg, "subject", subject, "error", err)
	}
}
