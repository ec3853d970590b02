package commands

import (
	"fmt"
	"strings"

	"EmberVale/internal/game"
)

func usageReply(ctx *Context) Reply {
	return Reply{Text: "Usage: /" + ctx.Command.Usage}
}

func formatVictory(report *game.VictoryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You defeated the %s!\n", report.MonsterName)
	if report.Multiplier > 1.0 {
		fmt.Fprintf(&b, "+%d EXP (%d base x%.2f party bonus)\n", report.TotalEXP, report.BaseEXP, report.Multiplier)
	} else {
		fmt.Fprintf(&b, "+%d EXP\n", report.TotalEXP)
	}
	for _, drop := range report.Drops {
		fmt.Fprintf(&b, "You found %d %s!\n", drop.Quantity, drop.Name)
	}
	if q := report.Quest; q != nil {
		if q.Completed {
			fmt.Fprintf(&b, "[Quest] Complete! +%d Gold, +%d EXP\n", q.RewardGold, q.RewardEXP)
		} else {
			fmt.Fprintf(&b, "[Quest] %s: %d/%d\n", q.Target, q.Progress, q.Required)
		}
	}
	if report.LeveledUp {
		fmt.Fprintf(&b, "LEVEL UP! You are now level %d! (HP %d, DMG %d)\n",
			report.Stats.Level, report.Stats.MaxHealth, report.Stats.Damage)
	}
	fmt.Fprintf(&b, "EXP: %d/%d", report.Stats.EXP, report.NextLevelEXP)
	return b.String()
}

func formatContract(quest *game.Quest, mapName string) string {
	if mapName == "" {
		mapName = quest.Map
	}
	return fmt.Sprintf("Slay %d %s in %s.\nReward: %d Gold, %d EXP",
		quest.Required, quest.Target, mapName, quest.RewardGold, quest.RewardEXP)
}

func formatQuestVisit(npcName string, offer *game.QuestOffer) string {
	var b strings.Builder
	for _, line := range offer.Greeting {
		b.WriteString(line)
		b.WriteString("\n")
	}
	switch {
	case offer.Active != nil:
		q := offer.Active
		fmt.Fprintf(&b, "%s: \"You already carry my contract.\"\n", npcName)
		fmt.Fprintf(&b, "[Quest] %s: %d/%d\nUse /quest cancel to abandon it.", q.Target, q.Progress, q.Required)
	case offer.Pending != nil:
		fmt.Fprintf(&b, "%s offers a contract:\n", npcName)
		b.WriteString(formatContract(offer.Pending, offer.MapName))
		b.WriteString("\nUse /quest accept or /quest decline.")
	}
	return b.String()
}

func formatShop(view *game.ShopView) string {
	var b strings.Builder
	for _, line := range view.Greeting {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "=== %s ===\n", view.NPCName)
	for _, item := range view.Items {
		stock := "unlimited"
		if item.Stock >= 0 {
			stock = fmt.Sprintf("%d left", item.Stock)
		}
		if item.HP > 0 {
			fmt.Fprintf(&b, "  %-14s %4d gold  +%d HP  (%s)\n", item.ItemID, item.Price, item.HP, stock)
		} else {
			fmt.Fprintf(&b, "  %-14s %4d gold  (%s)\n", item.ItemID, item.Price, stock)
		}
	}
	b.WriteString("Use /buy <quantity> <item_id>, or /leave to walk away.")
	return b.String()
}

func formatTrade(view *game.TradeView, viewer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trade: %s <-> %s\n", view.Sender, view.Receiver)
	b.WriteString(offerLine(view.Sender, view.SenderOffer, view.SenderAccepted, viewer))
	b.WriteString(offerLine(view.Receiver, view.ReceiverOffer, view.ReceiverAccepted, viewer))
	if view.BothOffered {
		b.WriteString("Both sides must /trade accept to complete.")
	} else {
		fmt.Fprintf(&b, "Waiting for %s's counter offer.", view.Receiver)
	}
	return b.String()
}

func offerLine(name string, offer *game.TradeOffer, accepted bool, viewer string) string {
	who := name
	if name == viewer {
		who = "You"
	}
	line := fmt.Sprintf("  %s: ", who)
	if offer == nil {
		line += "(no offer yet)"
	} else {
		line += fmt.Sprintf("%d %s", offer.Amount, offer.Name)
	}
	if accepted {
		line += " [accepted]"
	}
	return line + "\n"
}
