package main

import (
	"errors"

	"github.com/Jacobbrewer1/discordgo"
)

// optionMap indexes command options by name.
type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

// subcommand returns the invoked sub command and its options.
func subcommand(i *discordgo.InteractionCreate) (string, optionMap, error) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 || data.Options[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", nil, errors.New("no sub command provided")
	}

	sub := data.Options[0]
	opts := make(optionMap, len(sub.Options))
	for _, o := range sub.Options {
		opts[o.Name] = o
	}
	return sub.Name, opts, nil
}

func (o optionMap) stringValue(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o optionMap) boolValue(name string) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return false
}

// id returns the ID held by a channel, role or user option.
func (o optionMap) id(name string) string {
	opt, ok := o[name]
	if !ok {
		return ""
	}
	id, _ := opt.Value.(string)
	return id
}
