package commands

import (
	"fmt"
	"strings"
)

var Help = Define(Definition{
	Name:        "help",
	Aliases:     []string{"?"},
	Usage:       "help",
	Description: "show this message",
}, func(ctx *Context) (Reply, error) {
	message := helpMessage("Commands:", commandsForGroup(GroupGeneral))
	if ctx.IsAdmin {
		message += "\n" + helpMessage("Admin commands:", commandsForGroup(GroupAdmin))
	}
	return Reply{Text: message}, nil
})

func helpMessage(title string, commands []*Command) string {
	var builder strings.Builder
	builder.WriteString(title + "\n")
	for _, cmd := range commands {
		usage := cmd.Usage
		if strings.TrimSpace(usage) == "" {
			usage = cmd.Name
		}
		builder.WriteString(fmt.Sprintf("  /%-26s - %s\n", usage, cmd.Description))
	}
	return builder.String()
}

func commandsForGroup(group CommandGroup) []*Command {
	all := All()
	filtered := make([]*Command, 0, len(all))
	for _, cmd := range all {
		if cmd.Group == group {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}
