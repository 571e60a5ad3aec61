package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Options indexes the options of a slash subcommand by name
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// SubcommandOptions returns the subcommand name and its options.
// Commands without subcommands return an empty name and the top-level options.
func SubcommandOptions(i *discordgo.InteractionCreate) (string, Options) {
	data := i.ApplicationCommandData()
	if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		return data.Options[0].Name, NewOptions(data.Options[0].Options)
	}
	return "", NewOptions(data.Options)
}

// NewOptions indexes a list of options
func NewOptions(options []*discordgo.ApplicationCommandInteractionDataOption) Options {
	indexed := make(Options, len(options))
	for _, opt := range options {
		indexed[opt.Name] = opt
	}
	return indexed
}

// StringValue returns a string option or an empty string
func (o Options) StringValue(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// Int returns an integer option and whether it was given
func (o Options) Int(name string) (int64, bool) {
	if opt, ok := o[name]; ok {
		return opt.IntValue(), true
	}
	return 0, false
}

// Snowflake returns a user, role or channel option as an int64 id and whether it was given
func (o Options) Snowflake(name string) (int64, bool) {
	opt, ok := o[name]
	if !ok {
		return 0, false
	}
	raw, ok := opt.Value.(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// FocusedOption returns the option an autocomplete interaction is typing into
func FocusedOption(i *discordgo.InteractionCreate) *discordgo.ApplicationCommandInteractionDataOption {
	return findFocused(i.ApplicationCommandData().Options)
}

func findFocused(options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Focused {
			return opt
		}
		if found := findFocused(opt.Options); found != nil {
			return found
		}
	}
	return nil
}
