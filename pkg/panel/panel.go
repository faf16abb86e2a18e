package panel

import (
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
)

const (
	// MaxButtons is the most topics that can be rendered as buttons.
	MaxButtons = 5

	// OpenButtonPrefix prefixes the custom ID of a topic button. The topic value follows it.
	OpenButtonPrefix = "ticket_open:"

	// SelectMenuID is the custom ID of the topic select menu.
	SelectMenuID = "ticket_open_menu"
)

// Style is how the panel offers topics.
type Style string

const (
	// StyleAuto picks buttons when they fit, otherwise a select menu.
	StyleAuto Style = "auto"

	// StyleButtons renders one button per topic.
	StyleButtons Style = "buttons"

	// StyleMenu renders a single select menu.
	StyleMenu Style = "menu"
)

// ParseStyle parses a style name, defaulting to StyleAuto.
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(s)) {
	case StyleButtons:
		return StyleButtons
	case StyleMenu:
		return StyleMenu
	default:
		return StyleAuto
	}
}

// Resolve picks the concrete style for the number of topics.
func Resolve(style Style, topicCount int) (Style, error) {
	if topicCount == 0 {
		return "", errs.New(errs.NotConfigured, "there are no topics to offer")
	}

	switch style {
	case StyleButtons:
		if topicCount > MaxButtons {
			return "", errs.New(errs.TooManyTopicsForButtons, "%d topics do not fit in %d buttons", topicCount, MaxButtons)
		}
		return StyleButtons, nil
	case StyleMenu:
		return StyleMenu, nil
	default:
		if topicCount <= MaxButtons {
			return StyleButtons, nil
		}
		return StyleMenu, nil
	}
}

// Components renders the topics of the configuration as message components.
func Components(cfg *entities.GuildConfig, style Style) ([]discordgo.MessageComponent, error) {
	resolved, err := Resolve(style, len(cfg.Topics))
	if err != nil {
		return nil, err
	}

	if resolved == StyleButtons {
		buttons := make([]discordgo.MessageComponent, 0, len(cfg.Topics))
		for _, t := range cfg.Topics {
			buttons = append(buttons, discordgo.Button{
				Label:    t.Display(),
				Style:    discordgo.PrimaryButton,
				CustomID: OpenButtonPrefix + t.Value,
			})
		}
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: buttons},
		}, nil
	}

	options := make([]discordgo.SelectMenuOption, 0, len(cfg.Topics))
	for _, t := range cfg.Topics {
		options = append(options, discordgo.SelectMenuOption{
			Label:       t.Display(),
			Value:       t.Value,
			Description: t.Description,
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    SelectMenuID,
					Placeholder: "Select a topic to open a ticket",
					Options:     options,
				},
			},
		},
	}, nil
}

// Message builds the panel message posted in the panel channel.
func Message(cfg *entities.GuildConfig, style Style, title, description string) (*discordgo.MessageSend, error) {
	components, err := Components(cfg, style)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = "Support Tickets"
	}
	if description == "" {
		description = "Need help? Pick a topic below and a private ticket will be opened for you."
	}

	var desc strings.Builder
	desc.WriteString(description)
	desc.WriteString("\n\n")
	for _, t := range cfg.Topics {
		if t.Description != "" {
			desc.WriteString(fmt.Sprintf("**%s**: %s\n", t.Display(), t.Description))
		} else {
			desc.WriteString(fmt.Sprintf("**%s**\n", t.Display()))
		}
	}

	return &discordgo.MessageSend{
		Embed: &discordgo.MessageEmbed{
			Title:       title,
			Description: desc.String(),
			Color:       0x5865F2,
		},
		Components: components,
	}, nil
}

// TopicFromCustomID extracts the topic value from a topic button custom ID.
func TopicFromCustomID(customID string) (string, bool) {
	if !strings.HasPrefix(customID, OpenButtonPrefix) {
		return "", false
	}
	return strings.TrimPrefix(customID, OpenButtonPrefix), true
}
