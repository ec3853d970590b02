package commands

import (
	"fmt"
	"strings"
)

var Where = Define(Definition{
	Name:        "where",
	Usage:       "where",
	Description: "show your current location",
}, func(ctx *Context) (Reply, error) {
	view, err := ctx.Engine.CurrentMap(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf(
		"You are in %s.\n%s\nRecommended level %d-%d.",
		view.Name, view.Description, view.LevelRange[0], view.LevelRange[1],
	)}, nil
})

var Maps = Define(Definition{
	Name:        "maps",
	Usage:       "maps",
	Description: "list every hunting ground",
}, func(ctx *Context) (Reply, error) {
	var b strings.Builder
	b.WriteString("Known places:")
	for _, view := range ctx.Engine.ListMaps() {
		fmt.Fprintf(&b, "\n  %-10s %s (lv %d-%d, %d monster kinds)",
			view.ID, view.Name, view.LevelRange[0], view.LevelRange[1], view.MonsterKinds)
	}
	b.WriteString("\nUse /map <id> to travel.")
	return Reply{Text: b.String()}, nil
})

var Travel = Define(Definition{
	Name:        "map",
	Aliases:     []string{"go", "travel"},
	Usage:       "map <map_id>",
	Description: "travel to another map",
}, func(ctx *Context) (Reply, error) {
	if ctx.Arg == "" {
		return usageReply(ctx), nil
	}
	result, err := ctx.Engine.Travel(ctx.Player, ctx.Arg)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf(
		"You leave %s and arrive in %s.\n%s",
		result.From.Name, result.To.Name, result.To.Description,
	)}, nil
})

var NPCs = Define(Definition{
	Name:        "npc",
	Aliases:     []string{"npcs"},
	Usage:       "npc",
	Description: "list the people on your map",
}, func(ctx *Context) (Reply, error) {
	list, err := ctx.Engine.ListNPCs(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	if len(list.NPCs) == 0 {
		return Reply{Text: "There is no one to talk to in " + list.MapName + "."}, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "People in %s:", list.MapName)
	for _, npc := range list.NPCs {
		fmt.Fprintf(&b, "\n  %-8s %s - %s", npc.ID, npc.Name, npc.Description)
	}
	b.WriteString("\nUse /move <npc_id> to approach someone.")
	return Reply{Text: b.String()}, nil
})

var Move = Define(Definition{
	Name:        "move",
	Aliases:     []string{"talk"},
	Usage:       "move <npc_id>",
	Description: "approach an NPC",
}, func(ctx *Context) (Reply, error) {
	if ctx.Arg == "" {
		return usageReply(ctx), nil
	}
	visit, err := ctx.Engine.Approach(ctx.Player, ctx.Arg)
	if err != nil {
		return Reply{}, err
	}
	if visit.Shop != nil {
		return Reply{Text: formatShop(visit.Shop)}, nil
	}
	if visit.Quest != nil {
		return Reply{Text: formatQuestVisit(visit.NPC.Name, visit.Quest)}, nil
	}
	return Reply{Text: "You approach " + visit.NPC.Name + "."}, nil
})

var Leave = Define(Definition{
	Name:        "leave",
	Usage:       "leave",
	Description: "walk away from the NPC you are with",
}, func(ctx *Context) (Reply, error) {
	result, err := ctx.Engine.Leave(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: "You walk away from " + result.NPCName + "."}, nil
})
