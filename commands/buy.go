package commands

import (
	"fmt"
	"strconv"
	"strings"
)

var Buy = Define(Definition{
	Name:        "buy",
	Usage:       "buy <quantity> <item_id>",
	Description: "buy from the shop you are visiting",
}, func(ctx *Context) (Reply, error) {
	parts := strings.Fields(ctx.Arg)
	if len(parts) != 2 {
		return usageReply(ctx), nil
	}
	quantity, err := strconv.Atoi(parts[0])
	if err != nil {
		return Reply{Text: "'" + parts[0] + "' is not a number. " + usageReply(ctx).Text}, nil
	}
	result, err := ctx.Engine.Buy(ctx.Player, quantity, parts[1])
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf(
		"You bought %d %s for %d gold! (%d gold left)",
		result.Quantity, result.ItemName, result.TotalCost, result.GoldLeft,
	)}, nil
})
