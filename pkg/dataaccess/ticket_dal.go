package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ticketDalName = "ticket_dal"

type TicketDal interface {
	// SaveTicket saves a ticket.
	SaveTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetTicket gets the ticket of a channel. ErrNotFound is returned if the channel has no ticket record.
	GetTicket(ctx context.Context, guildID string, channelID string) (*entities.Ticket, error)

	// ListOpenTickets lists the tickets of a guild that are not closed.
	ListOpenTickets(ctx context.Context, guildID string) ([]*entities.Ticket, error)
}

type ticketDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal(logger *slog.Logger) TicketDal {
	l := logger.With(slog.String(logging.KeyDal, ticketDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDal{
		l:      l,
		client: MongoDB,
	}
}

func (d *ticketDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection(ticketsCollection)
}

func (d *ticketDal) SaveTicket(ctx context.Context, ticket *entities.Ticket) error {
	t := observe(ticketDalName, "save_ticket", ticketsCollection)
	defer t.ObserveDuration()

	opts := options.Update().SetUpsert(true)
	_, err := d.collection().UpdateOne(ctx, bson.M{"guild_id": ticket.GuildID, "channel_id": ticket.ChannelID}, bson.M{"$set": ticket}, opts)
	if err != nil {
		return fmt.Errorf("error saving ticket: %w", err)
	}
	return nil
}

func (d *ticketDal) GetTicket(ctx context.Context, guildID string, channelID string) (*entities.Ticket, error) {
	t := observe(ticketDalName, "get_ticket", ticketsCollection)
	defer t.ObserveDuration()

	ticket := new(entities.Ticket)
	err := d.collection().FindOne(ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	}).Decode(ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return ticket, nil
}

func (d *ticketDal) ListOpenTickets(ctx context.Context, guildID string) ([]*entities.Ticket, error) {
	t := observe(ticketDalName, "list_open_tickets", ticketsCollection)
	defer t.ObserveDuration()

	opts := options.Find().SetSort(bson.M{"number": 1})
	cur, err := d.collection().Find(ctx, bson.M{"guild_id": guildID, "closed": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing tickets: %w", err)
	}

	tickets := make([]*entities.Ticket, 0)
	if err := cur.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("error decoding tickets: %w", err)
	}
	return tickets, nil
}
