package tickets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/transcript"
)

const testBotID = "bot"

func missingPermissions() error {
	return &discordgo.RESTError{
		Response: &http.Response{Status: "403 Forbidden", StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
	}
}

type sentMessage struct {
	ChannelID string
	Data      *discordgo.MessageSend
}

type permissionCall struct {
	ChannelID string
	TargetID  string
	Allow     int64
	Deny      int64
}

// fakeClient is an in-memory guild.
type fakeClient struct {
	mut sync.Mutex

	channels map[string]*discordgo.Channel
	history  map[string][]*discordgo.Message
	nextID   int

	sent        []sentMessage
	dms         []sentMessage
	edits       []*discordgo.MessageEdit
	created     []discordgo.GuildChannelCreateData
	permissions []permissionCall
	removed     []string
	renamed     []string
	deleted     []string

	sendErr   map[string]error
	createErr error
	dmErr     error

	// deleteErr fails the next channel deletion only.
	deleteErr error
}

func newFakeClient(channels ...*discordgo.Channel) *fakeClient {
	c := &fakeClient{
		channels: make(map[string]*discordgo.Channel),
		history:  make(map[string][]*discordgo.Message),
		nextID:   1000,
		sendErr:  make(map[string]error),
	}
	for _, ch := range channels {
		c.channels[ch.ID] = ch
	}
	return c
}

func (c *fakeClient) id() string {
	c.nextID++
	return fmt.Sprintf("%d", c.nextID)
}

func (c *fakeClient) BotUserID() string {
	return testBotID
}

func (c *fakeClient) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	out := make([]*discordgo.Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		if ch.GuildID == guildID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (c *fakeClient) Channel(channelID string) (*discordgo.Channel, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	ch, ok := c.channels[channelID]
	if !ok {
		return nil, &discordgo.RESTError{
			Response: &http.Response{Status: "404 Not Found", StatusCode: http.StatusNotFound},
			Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel, Message: "Unknown Channel"},
		}
	}
	return ch, nil
}

func (c *fakeClient) CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.createErr != nil {
		return nil, c.createErr
	}

	c.created = append(c.created, data)
	ch := &discordgo.Channel{
		ID:                   c.id(),
		GuildID:              guildID,
		Name:                 data.Name,
		Topic:                data.Topic,
		Type:                 data.Type,
		ParentID:             data.ParentID,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	c.channels[ch.ID] = ch
	return ch, nil
}

func (c *fakeClient) EditChannel(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	ch, ok := c.channels[channelID]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	ch.Name = data.Name
	c.renamed = append(c.renamed, data.Name)
	return ch, nil
}

func (c *fakeClient) DeleteChannel(channelID string) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if err := c.deleteErr; err != nil {
		c.deleteErr = nil
		return err
	}

	delete(c.channels, channelID)
	c.deleted = append(c.deleted, channelID)
	return nil
}

func (c *fakeClient) SetPermission(channelID, targetID string, _ discordgo.PermissionOverwriteType, allow, deny int64) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	c.permissions = append(c.permissions, permissionCall{ChannelID: channelID, TargetID: targetID, Allow: allow, Deny: deny})
	return nil
}

func (c *fakeClient) DeletePermission(channelID, targetID string) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	c.removed = append(c.removed, targetID)
	return nil
}

func (c *fakeClient) SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	if err := c.sendErr[channelID]; err != nil {
		return nil, err
	}

	c.sent = append(c.sent, sentMessage{ChannelID: channelID, Data: data})
	msg := &discordgo.Message{
		ID:        c.id(),
		ChannelID: channelID,
		Content:   data.Content,
		Author:    &discordgo.User{ID: testBotID, Bot: true},
	}
	if data.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{data.Embed}
	}
	c.history[channelID] = append([]*discordgo.Message{msg}, c.history[channelID]...)
	return msg, nil
}

func (c *fakeClient) EditMessage(data *discordgo.MessageEdit) (*discordgo.Message, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	c.edits = append(c.edits, data)
	return &discordgo.Message{ID: data.ID, ChannelID: data.Channel}, nil
}

func (c *fakeClient) Messages(channelID string, limit int, _ string) ([]*discordgo.Message, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	msgs := c.history[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (c *fakeClient) DirectMessage(userID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.dmErr != nil {
		return nil, c.dmErr
	}
	c.dms = append(c.dms, sentMessage{ChannelID: userID, Data: data})
	return &discordgo.Message{ID: c.id()}, nil
}

// chatter adds messages from a user to the channel history.
func (c *fakeClient) chatter(channelID, userID string, n int) {
	c.mut.Lock()
	defer c.mut.Unlock()

	for i := 0; i < n; i++ {
		msg := &discordgo.Message{
			ID:        c.id(),
			ChannelID: channelID,
			Content:   fmt.Sprintf("message %d", i),
			Author:    &discordgo.User{ID: userID},
		}
		c.history[channelID] = append([]*discordgo.Message{msg}, c.history[channelID]...)
	}
}

func (c *fakeClient) sentTo(channelID string) []*discordgo.MessageSend {
	c.mut.Lock()
	defer c.mut.Unlock()

	var out []*discordgo.MessageSend
	for _, s := range c.sent {
		if s.ChannelID == channelID {
			out = append(out, s.Data)
		}
	}
	return out
}

type fakeGuildDal struct {
	mut    sync.Mutex
	guilds map[string]*entities.GuildConfig
}

func (f *fakeGuildDal) GetGuild(_ context.Context, guildID string) (*entities.GuildConfig, error) {
	f.mut.Lock()
	defer f.mut.Unlock()

	g, ok := f.guilds[guildID]
	if !ok {
		g = &entities.GuildConfig{GuildID: guildID, Topics: []entities.Topic{}}
		f.guilds[guildID] = g
	}
	cp := *g
	cp.Topics = append([]entities.Topic{}, g.Topics...)
	return &cp, nil
}

func (f *fakeGuildDal) ReplaceGuild(_ context.Context, guildID string, guild *entities.GuildConfig) error {
	f.mut.Lock()
	defer f.mut.Unlock()

	cp := *guild
	cp.GuildID = guildID
	f.guilds[guildID] = &cp
	return nil
}

func (f *fakeGuildDal) PatchGuild(_ context.Context, guildID string, patch entities.GuildPatch) error {
	f.mut.Lock()
	defer f.mut.Unlock()

	g, ok := f.guilds[guildID]
	if !ok {
		g = &entities.GuildConfig{GuildID: guildID}
		f.guilds[guildID] = g
	}
	if patch.CategoryID != nil {
		g.CategoryID = *patch.CategoryID
	}
	if patch.SupportRoleID != nil {
		g.SupportRoleID = *patch.SupportRoleID
	}
	if patch.LogsChannelID != nil {
		g.LogsChannelID = *patch.LogsChannelID
	}
	if patch.Topics != nil {
		g.Topics = *patch.Topics
	}
	return nil
}

type fakeTicketDal struct {
	mut     sync.Mutex
	tickets map[string]entities.Ticket
	saves   int
}

func (f *fakeTicketDal) SaveTicket(_ context.Context, t *entities.Ticket) error {
	f.mut.Lock()
	defer f.mut.Unlock()

	f.tickets[t.ChannelID] = *t
	f.saves++
	return nil
}

func (f *fakeTicketDal) GetTicket(_ context.Context, guildID, channelID string) (*entities.Ticket, error) {
	f.mut.Lock()
	defer f.mut.Unlock()

	t, ok := f.tickets[channelID]
	if !ok || t.GuildID != guildID {
		return nil, dataaccess.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTicketDal) ListOpenTickets(_ context.Context, guildID string) ([]*entities.Ticket, error) {
	f.mut.Lock()
	defer f.mut.Unlock()

	var out []*entities.Ticket
	for _, t := range f.tickets {
		if t.GuildID == guildID && !t.Closed {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func (f *fakeTicketDal) get(channelID string) entities.Ticket {
	f.mut.Lock()
	defer f.mut.Unlock()
	return f.tickets[channelID]
}

type fakeTranscripts struct {
	err       error
	generated []string

	// ctxErrs are the context errors seen at each generation.
	ctxErrs []error
}

func (f *fakeTranscripts) Generate(ctx context.Context, ch *discordgo.Channel) (*transcript.Artifact, error) {
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.err != nil {
		return nil, f.err
	}
	f.generated = append(f.generated, ch.ID)
	return &transcript.Artifact{
		ID:           "transcript-id",
		Name:         "transcript-" + ch.Name + ".html",
		ContentType:  "text/html",
		Data:         []byte("<html></html>"),
		MessageCount: 42,
	}, nil
}

const (
	testGuild    = "guild"
	testCategory = "category"
	testRole     = "support"
	testLogs     = "logs"
)

type harness struct {
	m           *Manager
	client      *fakeClient
	guilds      *fakeGuildDal
	tickets     *fakeTicketDal
	cooldowns   dataaccess.CooldownDal
	transcripts *fakeTranscripts
	slept       []time.Duration
}

func configuredGuild() *entities.GuildConfig {
	return &entities.GuildConfig{
		GuildID:       testGuild,
		CategoryID:    testCategory,
		SupportRoleID: testRole,
		LogsChannelID: testLogs,
		Topics: []entities.Topic{
			{Label: "Billing", Value: "billing", Description: "Payments and invoices"},
			{Label: "Technical", Value: "tech"},
		},
	}
}

func newHarness(cfg *entities.GuildConfig, channels ...*discordgo.Channel) *harness {
	h := &harness{
		client:      newFakeClient(channels...),
		guilds:      &fakeGuildDal{guilds: map[string]*entities.GuildConfig{}},
		tickets:     &fakeTicketDal{tickets: map[string]entities.Ticket{}},
		cooldowns:   dataaccess.NewMemoryCooldowns(),
		transcripts: &fakeTranscripts{},
	}
	if cfg != nil {
		h.guilds.guilds[cfg.GuildID] = cfg
	}

	h.m = NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), h.client, h.guilds, h.tickets, h.cooldowns, h.transcripts, DefaultSettings())
	h.m.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	h.m.sleep = func(_ context.Context, d time.Duration) { h.slept = append(h.slept, d) }
	return h
}

func textChannel(id, name, parent string) *discordgo.Channel {
	return &discordgo.Channel{ID: id, GuildID: testGuild, Name: name, ParentID: parent, Type: discordgo.ChannelTypeGuildText}
}

var (
	creator  = Actor{UserID: "creator", Username: "casey"}
	staff    = Actor{UserID: "staff", Username: "sam", RoleIDs: []string{testRole}}
	staff2   = Actor{UserID: "staff2", Username: "sky", RoleIDs: []string{testRole}}
	stranger = Actor{UserID: "stranger"}
)
