package commands

import (
	"fmt"
	"strings"
)

var Party = Define(Definition{
	Name:        "party",
	Aliases:     []string{"p"},
	Usage:       "party [create|invite <player>|accept|decline|kick <player>|leave]",
	Description: "manage your hunting party",
}, func(ctx *Context) (Reply, error) {
	parts := strings.Fields(ctx.Arg)
	if len(parts) == 0 {
		return partyStatus(ctx)
	}
	switch parts[0] {
	case "create":
		view, err := ctx.Engine.CreateParty(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: fmt.Sprintf(
			"Party created! You are the leader.\nEXP bonus: x%.2f\nUse /party invite <player> to grow it.",
			view.Multiplier,
		)}, nil
	case "invite":
		if len(parts) != 2 {
			return usageReply(ctx), nil
		}
		notices, err := ctx.Engine.InviteToParty(ctx.Player, parts[1])
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Invitation sent to " + parts[1] + "!", Notices: notices}, nil
	case "accept":
		view, err := ctx.Engine.AcceptPartyInvite(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: fmt.Sprintf(
			"You joined %s's party! (%d/%d members, EXP bonus x%.2f)",
			view.Leader, len(view.Members), view.MaxMembers, view.Multiplier,
		)}, nil
	case "decline":
		inviter, err := ctx.Engine.DeclinePartyInvite(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: "You declined " + inviter + "'s invitation."}, nil
	case "kick":
		if len(parts) != 2 {
			return usageReply(ctx), nil
		}
		notices, err := ctx.Engine.KickFromParty(ctx.Player, parts[1])
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: parts[1] + " was kicked from the party.", Notices: notices}, nil
	case "leave":
		result, notices, err := ctx.Engine.LeaveParty(ctx.Player)
		if err != nil {
			return Reply{}, err
		}
		if result.Disbanded {
			return Reply{Text: "You left and the party disbanded.", Notices: notices}, nil
		}
		return Reply{Text: "You left " + result.Leader + "'s party.", Notices: notices}, nil
	default:
		return usageReply(ctx), nil
	}
})

func partyStatus(ctx *Context) (Reply, error) {
	view, err := ctx.Engine.PartyFor(ctx.Player)
	if err != nil {
		return Reply{}, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "=== Party (%d/%d) ===\n", len(view.Members), view.MaxMembers)
	fmt.Fprintf(&b, "EXP bonus: x%.2f\n", view.Multiplier)
	for _, member := range view.Members {
		if member == view.Leader {
			fmt.Fprintf(&b, "  %s (leader)\n", member)
		} else {
			fmt.Fprintf(&b, "  %s\n", member)
		}
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n")}, nil
}
