package commands

import (
	"fmt"
	"strings"
)

var Stats = Define(Definition{
	Name:        "stats",
	Aliases:     []string{"st"},
	Usage:       "stats",
	Description: "show your character sheet",
}, func(ctx *Context) (Reply, error) {
	view, err := ctx.Engine.StatsFor(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", view.Name)
	fmt.Fprintf(&b, "Level %d  EXP %d/%d\n", view.Stats.Level, view.Stats.EXP, view.NextLevelEXP)
	if view.BonusHP > 0 {
		fmt.Fprintf(&b, "HP %d/%d (+%d from equipment)\n", view.Stats.Health, view.Stats.MaxHealth, view.BonusHP)
	} else {
		fmt.Fprintf(&b, "HP %d/%d\n", view.Stats.Health, view.Stats.MaxHealth)
	}
	fmt.Fprintf(&b, "DMG %d\n", view.Stats.Damage)
	fmt.Fprintf(&b, "Location: %s\n", view.MapName)
	b.WriteString("Equipment:")
	for _, worn := range view.Equipment {
		if worn.ItemID == "" {
			fmt.Fprintf(&b, "\n  %-7s (empty)", worn.Slot)
		} else {
			fmt.Fprintf(&b, "\n  %-7s %s (+%d HP)", worn.Slot, worn.Name, worn.HP)
		}
	}
	return Reply{Text: b.String()}, nil
})

var Inv = Define(Definition{
	Name:        "inv",
	Aliases:     []string{"inventory", "i"},
	Usage:       "inv",
	Description: "show your inventory",
}, func(ctx *Context) (Reply, error) {
	view, err := ctx.Engine.InventoryFor(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s's inventory ===\n", view.Owner)
	fmt.Fprintf(&b, "Gold: %d\n", view.Gold)
	fmt.Fprintf(&b, "HP Potions: %d", view.Potions)
	for _, stack := range view.Equipment {
		fmt.Fprintf(&b, "\n  %s x%d (+%d HP) [%s]", stack.Name, stack.Count, stack.HP, stack.ItemID)
	}
	if len(view.Equipment) == 0 {
		b.WriteString("\nNo equipment. Monsters sometimes drop some.")
	}
	return Reply{Text: b.String()}, nil
})

var Potion = Define(Definition{
	Name:        "potion",
	Aliases:     []string{"drink"},
	Usage:       "potion",
	Description: "drink an HP potion",
}, func(ctx *Context) (Reply, error) {
	result, err := ctx.Engine.UsePotion(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf(
		"You drink an HP Potion and recover %d HP! (%d/%d)",
		result.Healed, result.Health, result.MaxHealth,
	)}, nil
})

var Equip = Define(Definition{
	Name:        "equip",
	Usage:       "equip <item_id>",
	Description: "wear a piece of equipment",
}, func(ctx *Context) (Reply, error) {
	if ctx.Arg == "" {
		return usageReply(ctx), nil
	}
	result, err := ctx.Engine.Equip(ctx.Player, ctx.Arg)
	if err != nil {
		return Reply{}, err
	}
	text := fmt.Sprintf("You equip the %s! (+%d HP, now %d/%d)",
		result.ItemName, result.BonusHP, result.Stats.Health, result.Stats.MaxHealth)
	if result.ReturnedName != "" {
		text += "\nYour " + result.ReturnedName + " goes back into the bag."
	}
	return Reply{Text: text}, nil
})

var Unequip = Define(Definition{
	Name:        "unequip",
	Usage:       "unequip <helmet|armor|boots>",
	Description: "remove a piece of equipment",
}, func(ctx *Context) (Reply, error) {
	if ctx.Arg == "" {
		return usageReply(ctx), nil
	}
	result, err := ctx.Engine.Unequip(ctx.Player, ctx.Arg)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf(
		"You take off the %s. (-%d HP, now %d/%d)",
		result.ItemName, result.BonusHP, result.Stats.Health, result.Stats.MaxHealth,
	)}, nil
})
