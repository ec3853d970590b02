package commands

import (
	"fmt"
	"strconv"
	"strings"
)

var Trade = Define(Definition{
	Name:        "trade",
	Usage:       "trade <player> <amount> <item> | offer <amount> <item> | accept | cancel",
	Description: "trade gold, potions, or equipment with another player",
}, func(ctx *Context) (Reply, error) {
	parts := strings.Fields(ctx.Arg)
	if len(parts) == 0 {
		return tradeStatus(ctx)
	}
	switch parts[0] {
	case "offer":
		if len(parts) != 3 {
			return usageReply(ctx), nil
		}
		amount, err := strconv.Atoi(parts[1])
		if err != nil {
			return Reply{Text: "'" + parts[1] + "' is not a number."}, nil
		}
		view, notices, err := ctx.Engine.CounterOffer(ctx.Player, amount, parts[2])
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:    "Counter offer made!\n" + formatTrade(view, ctx.Player),
			Notices: notices,
		}, nil
	case "accept":
		result, notices, err := ctx.Engine.AcceptTrade(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		if result.Executed == nil {
			return Reply{Text: "Accepted. Waiting for " + result.Waiting + " to accept."}, nil
		}
		done := result.Executed
		return Reply{
			Text: fmt.Sprintf(
				"TRADE COMPLETE!\nYou sent: %d %s\nYou received: %d %s",
				done.Gave.Amount, done.Gave.Name, done.Got.Amount, done.Got.Name,
			),
			Notices: notices,
		}, nil
	case "cancel":
		result, notices, err := ctx.Engine.CancelTrade(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Trade with " + result.Partner + " cancelled.", Notices: notices}, nil
	default:
		if len(parts) != 3 {
			return usageReply(ctx), nil
		}
		amount, err := strconv.Atoi(parts[1])
		if err != nil {
			return Reply{Text: "'" + parts[1] + "' is not a number."}, nil
		}
		view, notices, err := ctx.Engine.ProposeTrade(ctx.Player, parts[0], amount, parts[2])
		if err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:    "Trade proposed!\n" + formatTrade(view, ctx.Player),
			Notices: notices,
		}, nil
	}
})

func tradeStatus(ctx *Context) (Reply, error) {
	view, err := ctx.Engine.TradeFor(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: formatTrade(view, ctx.Player)}, nil
}
