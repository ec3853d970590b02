package commands

import "fmt"

var Quest = Define(Definition{
	Name:        "quest",
	Aliases:     []string{"q"},
	Usage:       "quest [accept|decline|cancel]",
	Description: "show or resolve your kill contract",
}, func(ctx *Context) (Reply, error) {
	switch ctx.Arg {
	case "":
		return questStatus(ctx)
	case "accept":
		quest, err := ctx.Engine.AcceptQuest(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Contract accepted!\n" + formatContract(quest, "")}, nil
	case "decline":
		if err := ctx.Engine.DeclineQuest(ctx.Player); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "You decline the contract and walk away."}, nil
	case "cancel":
		quest, err := ctx.Engine.CancelQuest(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: fmt.Sprintf("You abandon the contract on %s.", quest.Target)}, nil
	default:
		return usageReply(ctx), nil
	}
})

func questStatus(ctx *Context) (Reply, error) {
	status, err := ctx.Engine.QuestFor(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	switch {
	case status.Active != nil:
		q := status.Active
		return Reply{Text: fmt.Sprintf(
			"[Quest] %s: %d/%d\nReward: %d Gold, %d EXP\nHunting ground: %s",
			q.Target, q.Progress, q.Required, q.RewardGold, q.RewardEXP, status.MapName,
		)}, nil
	case status.Pending != nil:
		return Reply{Text: "A contract awaits your answer:\n" +
			formatContract(status.Pending, status.MapName) +
			"\nReturn to the quest giver and /quest accept or /quest decline."}, nil
	default:
		return Reply{Text: "You have no contract. Visit the quest giver with /move quest."}, nil
	}
}
