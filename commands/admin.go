package commands

import (
	"fmt"
	"strconv"
	"strings"

	"EmberVale/internal/game"
)

var Admin = Define(Definition{
	Name:        "admin",
	Usage:       "admin <heal|gold|potion|level|kill|reset|list|bc> ...",
	Description: "administrator tools",
	Group:       GroupAdmin,
}, func(ctx *Context) (Reply, error) {
	parts := strings.Fields(ctx.Arg)
	if len(parts) == 0 {
		return usageReply(ctx), nil
	}
	switch parts[0] {
	case "heal":
		if len(parts) != 2 {
			return Reply{Text: "Usage: /admin heal <player>"}, nil
		}
		result, notices, err := ctx.Engine.AdminHeal(parts[1])
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:    fmt.Sprintf("%s healed to %d/%d.", result.Target, result.Health, result.MaxHealth),
			Notices: notices,
		}, nil
	case "gold":
		if len(parts) != 3 {
			return Reply{Text: "Usage: /admin gold <player> <amount>"}, nil
		}
		amount, err := strconv.Atoi(parts[2])
		if err != nil {
			return Reply{Text: "'" + parts[2] + "' is not a number."}, nil
		}
		result, notices, err := ctx.Engine.AdminGiveGold(parts[1], amount)
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:    fmt.Sprintf("Gave %d gold to %s (now %d).", result.Amount, result.Target, result.Total),
			Notices: notices,
		}, nil
	case "potion":
		if len(parts) != 3 {
			return Reply{Text: "Usage: /admin potion <player> <quantity>"}, nil
		}
		quantity, err := strconv.Atoi(parts[2])
		if err != nil {
			return Reply{Text: "'" + parts[2] + "' is not a number."}, nil
		}
		result, notices, err := ctx.Engine.AdminGivePotions(parts[1], quantity)
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:    fmt.Sprintf("Gave %d potion(s) to %s (now %d).", result.Amount, result.Target, result.Total),
			Notices: notices,
		}, nil
	case "level":
		if len(parts) != 3 {
			return Reply{Text: "Usage: /admin level <player> <level>"}, nil
		}
		level, err := strconv.Atoi(parts[2])
		if err != nil {
			return Reply{Text: "'" + parts[2] + "' is not a number."}, nil
		}
		result, notices, err := ctx.Engine.AdminSetLevel(parts[1], level)
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text: fmt.Sprintf("%s is now level %d (HP %d, DMG %d).",
				result.Target, result.Stats.Level, result.Stats.MaxHealth, result.Stats.Damage),
			Notices: notices,
		}, nil
	case "kill":
		if len(parts) != 2 {
			return Reply{Text: "Usage: /admin kill <player>"}, nil
		}
		result, notices, err := ctx.Engine.AdminKillMonster(parts[1])
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:    fmt.Sprintf("Finished %s's fight with the %s.", result.Target, result.Victory.MonsterName),
			Notices: notices,
		}, nil
	case "reset":
		if len(parts) != 2 {
			return Reply{Text: "Usage: /admin reset <player>"}, nil
		}
		result, notices, err := ctx.Engine.AdminResetState(parts[1])
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:    fmt.Sprintf("%s reset to idle (was %s).", result.Target, result.Was),
			Notices: notices,
		}, nil
	case "list":
		summaries, err := ctx.Engine.ListPlayers()
		if err != nil {
			return Reply{}, err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d player(s):", len(summaries))
		for _, s := range summaries {
			fmt.Fprintf(&b, "\n  %-16s lv%-3d %d/%d HP  %d gold  %s [%s]",
				s.Name, s.Level, s.Health, s.MaxHP, s.Gold, s.MapID, s.State)
		}
		return Reply{Text: b.String()}, nil
	case "bc":
		message := strings.TrimSpace(strings.TrimPrefix(ctx.Arg, "bc"))
		if message == "" {
			return Reply{Text: "Usage: /admin bc <message>"}, nil
		}
		// A notice with an empty To is delivered to everyone.
		return Reply{
			Text:    "Broadcast sent.",
			Notices: []game.Notice{{Text: "[ANNOUNCEMENT] " + message}},
		}, nil
	default:
		return usageReply(ctx), nil
	}
})
