package transcript

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// pageSize is the most messages Discord returns per history request.
	pageSize = 100

	contentTypeHTML = "text/html"
)

// Artifact is a rendered transcript.
type Artifact struct {
	// ID identifies the transcript in logs.
	ID string

	// Name is the file name.
	Name string

	// ContentType is the MIME type of Data.
	ContentType string

	// Data is the rendered document.
	Data []byte

	// MessageCount is the number of messages in the transcript.
	MessageCount int
}

// File returns the transcript as a message attachment.
func (a *Artifact) File() *discordgo.File {
	return &discordgo.File{
		Name:        a.Name,
		ContentType: a.ContentType,
		Reader:      bytes.NewReader(a.Data),
	}
}

// Generator renders the full history of a channel.
type Generator interface {
	Generate(ctx context.Context, channel *discordgo.Channel) (*Artifact, error)
}

// HistorySource pages through the messages of a channel, newest first.
type HistorySource interface {
	Messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error)
}

type htmlGenerator struct {
	l       *slog.Logger
	source  HistorySource
	limiter *rate.Limiter
	now     func() time.Time
}

// NewHTMLGenerator creates a generator producing a standalone HTML document. History requests are limited to
// requestsPerSecond, zero or less means unlimited.
func NewHTMLGenerator(l *slog.Logger, source HistorySource, requestsPerSecond float64) Generator {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &htmlGenerator{
		l:       l,
		source:  source,
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
	}
}

func (g *htmlGenerator) Generate(ctx context.Context, channel *discordgo.Channel) (*Artifact, error) {
	messages, err := g.history(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	doc := document{
		ID:          id,
		ChannelName: channel.Name,
		Topic:       channel.Topic,
		GeneratedAt: g.now().UTC().Format(time.RFC1123),
		Messages:    make([]entry, 0, len(messages)),
	}
	for _, m := range messages {
		doc.Messages = append(doc.Messages, newEntry(m))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("error rendering transcript: %w", err)
	}

	g.l.Debug("Transcript generated",
		slog.String("transcript", id),
		slog.String(logging.KeyChannel, channel.ID),
		slog.Int("messages", len(messages)),
	)

	return &Artifact{
		ID:           id,
		Name:         fmt.Sprintf("transcript-%s.html", channel.Name),
		ContentType:  contentTypeHTML,
		Data:         buf.Bytes(),
		MessageCount: len(messages),
	}, nil
}

// history fetches every message of the channel in chronological order.
func (g *htmlGenerator) history(ctx context.Context, channelID string) ([]*discordgo.Message, error) {
	all := make([]*discordgo.Message, 0, pageSize)
	before := ""
	for {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("error waiting for history request: %w", err)
		}

		page, err := g.source.Messages(channelID, pageSize, before)
		if err != nil {
			return nil, fmt.Errorf("error fetching message history: %w", err)
		}
		all = append(all, page...)

		if len(page) < pageSize {
			break
		}
		before = page[len(page)-1].ID
	}

	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

type document struct {
	ID          string
	ChannelName string
	Topic       string
	GeneratedAt string
	Messages    []entry
}

type entry struct {
	Author      string
	Bot         bool
	Timestamp   string
	Content     template.HTML
	Embeds      []embed
	Attachments []attachment
}

type embed struct {
	Title       string
	Description template.HTML
}

type attachment struct {
	Name string
	URL  string
}

func newEntry(m *discordgo.Message) entry {
	e := entry{
		Author:    "Unknown",
		Timestamp: m.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		Content:   renderMarkdown(m.Content),
	}
	if m.Author != nil {
		e.Author = m.Author.Username
		e.Bot = m.Author.Bot
	}
	for _, em := range m.Embeds {
		if em == nil {
			continue
		}
		e.Embeds = append(e.Embeds, embed{
			Title:       em.Title,
			Description: renderMarkdown(em.Description),
		})
	}
	for _, a := range m.Attachments {
		if a == nil {
			continue
		}
		e.Attachments = append(e.Attachments, attachment{Name: a.Filename, URL: a.URL})
	}
	return e
}

var pageTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Transcript #{{.ChannelName}}</title>
<style>
body{font-family:sans-serif;background:#313338;color:#dbdee1;margin:0;padding:16px}
header{border-bottom:1px solid #4e5058;margin-bottom:16px}
.msg{padding:6px 0}
.author{font-weight:bold;color:#f2f3f5}
.bot{background:#5865f2;color:#fff;font-size:10px;padding:1px 4px;border-radius:3px;margin-left:4px}
.time{color:#949ba4;font-size:12px;margin-left:8px}
.embed{border-left:4px solid #5865f2;background:#2b2d31;padding:6px 10px;margin:4px 0}
a{color:#00a8fc}
</style>
</head>
<body>
<header>
<h1>#{{.ChannelName}}</h1>
{{if .Topic}}<p>{{.Topic}}</p>{{end}}
<p>{{len .Messages}} messages. Generated {{.GeneratedAt}}. Transcript {{.ID}}.</p>
</header>
{{range .Messages}}<div class="msg">
<span class="author">{{.Author}}</span>{{if .Bot}}<span class="bot">BOT</span>{{end}}<span class="time">{{.Timestamp}}</span>
<div class="content">{{.Content}}</div>
{{range .Embeds}}<div class="embed">{{if .Title}}<strong>{{.Title}}</strong>{{end}}{{.Description}}</div>
{{end}}{{range .Attachments}}<div class="attachment"><a href="{{.URL}}">{{.Name}}</a></div>
{{end}}</div>
{{end}}</body>
</html>
`))
