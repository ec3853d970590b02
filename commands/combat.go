package commands

import (
	"fmt"
	"strings"

	"EmberVale/internal/game"
)

var FindCmd = Define(Definition{
	Name:        "find",
	Usage:       "find",
	Description: "hunt for a monster on the current map",
}, func(ctx *Context) (Reply, error) {
	result, err := ctx.Engine.Find(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	if result.Resumed {
		return Reply{Text: fmt.Sprintf(
			"You are already fighting a %s! (%d/%d HP)\nUse /attack to fight or /run to flee.",
			result.Monster.Name, result.Monster.HP, result.Monster.MaxHP,
		)}, nil
	}
	return Reply{Text: fmt.Sprintf(
		"A wild %s appears in %s!\nHP %d  DMG %d  EXP %d\nUse /attack to fight or /run to flee.",
		result.Monster.Name, result.MapName,
		result.Monster.MaxHP, result.Monster.Damage, result.Monster.EXP,
	)}, nil
})

var Attack = Define(Definition{
	Name:        "attack",
	Aliases:     []string{"a"},
	Usage:       "attack",
	Description: "strike the monster you are fighting",
}, func(ctx *Context) (Reply, error) {
	result, err := ctx.Engine.Attack(ctx.Player)
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You hit the %s for %d damage!", result.Monster.Name, result.PlayerDamage)

	switch {
	case result.Victory != nil:
		b.WriteString("\n" + formatVictory(result.Victory))
	case result.Outcome == game.OutcomeOngoing:
		fmt.Fprintf(&b, " (%d/%d HP)\n", result.Monster.HP, result.Monster.MaxHP)
		fmt.Fprintf(&b, "The %s hits you for %d damage! (Your HP: %d/%d)",
			result.Monster.Name, result.MonsterDamage,
			result.Stats.Health, result.Stats.MaxHealth)
	default:
		fmt.Fprintf(&b, " (%d/%d HP)\n", result.Monster.HP, result.Monster.MaxHP)
		fmt.Fprintf(&b, "The %s hits you for %d damage!\n", result.Monster.Name, result.MonsterDamage)
		fmt.Fprintf(&b, "You were defeated... You come to with %d/%d HP.",
			result.Stats.Health, result.Stats.MaxHealth)
	}
	return Reply{Text: b.String()}, nil
})

var Run = Define(Definition{
	Name:        "run",
	Aliases:     []string{"flee"},
	Usage:       "run",
	Description: "flee from the current fight",
}, func(ctx *Context) (Reply, error) {
	result, err := ctx.Engine.Run(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: "You fled from the " + result.MonsterName + "!"}, nil
})
