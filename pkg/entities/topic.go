package entities

// Topic is an operator defined ticket category offered to users when they open a ticket.
type Topic struct {
	// Label is the display name.
	Label string `json:"label" bson:"label"`

	// Value is the stable unique key of the topic.
	Value string `json:"value" bson:"value"`

	// Description is shown next to the label on the panel.
	Description string `json:"description" bson:"description"`

	// Emoji is an optional emoji shown before the label.
	Emoji string `json:"emoji,omitempty" bson:"emoji,omitempty"`
}

// Display returns the label prefixed with the emoji, if set.
func (t Topic) Display() string {
	if t.Emoji == "" {
		return t.Label
	}
	return t.Emoji + " " + t.Label
}
