package entities

import (
	"fmt"
	"time"
)

// Ticket is the record of a ticket channel.
type Ticket struct {
	// Number is the number of the ticket. The channel is named "ticket-<number>".
	Number int `json:"number" bson:"number"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// ChannelID is the ID of the channel that the ticket is in.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// CreatorID is the ID of the user that created the ticket.
	CreatorID string `json:"creator_id" bson:"creator_id"`

	// CreatorName is the username of the user that created the ticket.
	CreatorName string `json:"creator_name" bson:"creator_name"`

	// TopicValue is the value of the topic the ticket was opened for, copied at creation.
	TopicValue string `json:"topic_value" bson:"topic_value"`

	// TopicLabel is the label of the topic the ticket was opened for, copied at creation.
	TopicLabel string `json:"topic_label" bson:"topic_label"`

	// ClaimedBy is the ID of the user that claimed the ticket.
	ClaimedBy string `json:"claimed_by" bson:"claimed_by"`

	// Locked is whether the creator has lost send permission.
	Locked bool `json:"locked" bson:"locked"`

	// CloseRequestedBy are the users with a pending close confirmation, in request order.
	CloseRequestedBy []string `json:"close_requested_by,omitempty" bson:"close_requested_by,omitempty"`

	// Closed is whether the ticket has been closed.
	Closed bool `json:"closed" bson:"closed"`

	// ClosedBy is the ID of the user that closed the ticket.
	ClosedBy string `json:"closed_by,omitempty" bson:"closed_by,omitempty"`

	// CreatedAt is the time that the ticket was created.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// ClosedAt is the time that the ticket was closed.
	ClosedAt *time.Time `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
}

// Name is the channel name of the ticket.
func (t Ticket) Name() string {
	return fmt.Sprintf("ticket-%d", t.Number)
}

// Closing reports whether anyone has a pending close confirmation.
func (t Ticket) Closing() bool {
	return len(t.CloseRequestedBy) > 0
}
