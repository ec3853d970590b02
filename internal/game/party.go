package game

import (
	"time"

	"github.com/google/uuid"
)

// PartyView is a read-only snapshot of a party roster.
type PartyView struct {
	ID         string
	Leader     string
	Members    []string
	MaxMembers int
	Multiplier float64
}

func partyViewOf(party *PartyRecord) *PartyView {
	members := make([]string, len(party.Members))
	copy(members, party.Members)
	return &PartyView{
		ID:         party.ID,
		Leader:     party.Leader,
		Members:    members,
		MaxMembers: maxPartyMembers,
		Multiplier: party.EXPMultiplier(),
	}
}

// PartyFor returns the party the player belongs to.
func (e *Engine) PartyFor(name string) (*PartyView, error) {
	var view *PartyView
	err := e.store.View(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		party, err := e.partyFor(tx, record)
		if err != nil {
			return err
		}
		if party == nil {
			return E(KindNotFound, "You are not in a party! Use /party create, or wait for an invitation.")
		}
		view = partyViewOf(party)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CreateParty starts a new party led by the caller.
func (e *Engine) CreateParty(name string) (*PartyView, error) {
	var view *PartyView
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if party, err := e.partyFor(tx, record); err != nil {
			return err
		} else if party != nil {
			return E(KindConflict, "You are already in a party! Use /party leave first.")
		}
		if record.Invite != nil {
			return E(KindConflict, "You have a pending invitation! Use /party accept or /party decline first.")
		}
		party := &PartyRecord{
			ID:        uuid.NewString(),
			Leader:    record.Name,
			Members:   []string{record.Name},
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.SaveParty(party); err != nil {
			return err
		}
		record.PartyID = party.ID
		if err := tx.SavePlayer(record); err != nil {
			return err
		}
		view = partyViewOf(party)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// InviteToParty sends a party invitation. Only the leader may invite, a
// player holds at most one pending invitation, and the roster is capped.
func (e *Engine) InviteToParty(name, target string) ([]Notice, error) {
	var notices []Notice
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		party, err := e.partyFor(tx, record)
		if err != nil {
			return err
		}
		if party == nil {
			return E(KindInvalidState, "You are not in a party! Use /party create first.")
		}
		if party.Leader != record.Name {
			return E(KindInvalidState, "Only the party leader can invite members!")
		}
		if target == record.Name {
			return E(KindInvalidArgument, "You cannot invite yourself!")
		}
		invited, err := tx.Player(target)
		if err != nil {
			return err
		}
		if party.HasMember(invited.Name) {
			return E(KindConflict, "%s is already in the party!", invited.Name)
		}
		if invitedParty, err := e.partyFor(tx, invited); err != nil {
			return err
		} else if invitedParty != nil {
			return E(KindConflict, "%s is already in a party!", invited.Name)
		}
		if invited.Invite != nil {
			return E(KindConflict, "%s already has a pending invitation!", invited.Name)
		}
		if len(party.Members) >= maxPartyMembers {
			return E(KindConflict, "The party is full! (max %d members)", maxPartyMembers)
		}
		invited.Invite = &PartyInvite{PartyID: party.ID, Inviter: record.Name}
		if err := tx.SavePlayer(invited); err != nil {
			return err
		}
		notices = append(notices, Notice{
			To: invited.Name,
			Text: record.Name + " invited you to their party!\n" +
				"Use /party accept to join or /party decline to refuse.",
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notices, nil
}

// AcceptPartyInvite joins the party behind the caller's pending
// invitation. A stale invitation to a disbanded or full party is consumed
// without joining.
func (e *Engine) AcceptPartyInvite(name string) (*PartyView, error) {
	var view *PartyView
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if record.Invite == nil {
			return E(KindNotFound, "You have no party invitation!")
		}
		party, err := tx.Party(record.Invite.PartyID)
		if err != nil {
			record.Invite = nil
			if saveErr := tx.SavePlayer(record); saveErr != nil {
				return saveErr
			}
			return err
		}
		if len(party.Members) >= maxPartyMembers {
			record.Invite = nil
			if saveErr := tx.SavePlayer(record); saveErr != nil {
				return saveErr
			}
			return E(KindConflict, "The party is already full!")
		}
		party.Members = append(party.Members, record.Name)
		record.PartyID = party.ID
		record.Invite = nil
		if err := tx.SaveParty(party); err != nil {
			return err
		}
		if err := tx.SavePlayer(record); err != nil {
			return err
		}
		view = partyViewOf(party)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeclinePartyInvite refuses the pending invitation.
func (e *Engine) DeclinePartyInvite(name string) (string, error) {
	inviter := ""
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if record.Invite == nil {
			return E(KindNotFound, "You have no party invitation!")
		}
		inviter = record.Invite.Inviter
		record.Invite = nil
		return tx.SavePlayer(record)
	})
	if err != nil {
		return "", err
	}
	return inviter, nil
}

// KickFromParty removes a member. Leader only; the leader leaves via
// /party leave instead.
func (e *Engine) KickFromParty(name, target string) ([]Notice, error) {
	var notices []Notice
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		party, err := e.partyFor(tx, record)
		if err != nil {
			return err
		}
		if party == nil {
			return E(KindInvalidState, "You are not in a party!")
		}
		if party.Leader != record.Name {
			return E(KindInvalidState, "Only the party leader can kick members!")
		}
		if target == record.Name {
			return E(KindInvalidArgument, "You cannot kick yourself! Use /party leave instead.")
		}
		if !party.HasMember(target) {
			return E(KindNotFound, "%s is not in the party!", target)
		}
		party.RemoveMember(target)
		if err := tx.SaveParty(party); err != nil {
			return err
		}
		kicked, err := tx.Player(target)
		if err != nil {
			return err
		}
		kicked.PartyID = ""
		if err := tx.SavePlayer(kicked); err != nil {
			return err
		}
		notices = append(notices, Notice{To: target, Text: "You were kicked from " + record.Name + "'s party."})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notices, nil
}

// LeavePartyResult reports how a departure resolved.
type LeavePartyResult struct {
	Leader    string
	Disbanded bool
}

// LeaveParty removes the caller from their party. When the leader leaves,
// the party disbands and every member's membership is cleared in the same
// transaction.
func (e *Engine) LeaveParty(name string) (*LeavePartyResult, []Notice, error) {
	var result *LeavePartyResult
	var notices []Notice
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		party, err := e.partyFor(tx, record)
		if err != nil {
			return err
		}
		if party == nil {
			return E(KindInvalidState, "You are not in a party!")
		}
		if party.Leader == record.Name {
			for _, member := range party.Members {
				if member == record.Name {
					continue
				}
				other, err := tx.Player(member)
				if err != nil {
					if IsKind(err, KindNotFound) {
						continue
					}
					return err
				}
				other.PartyID = ""
				if err := tx.SavePlayer(other); err != nil {
					return err
				}
				notices = append(notices, Notice{To: member, Text: "The party was disbanded: the leader left."})
			}
			if err := tx.DeleteParty(party.ID); err != nil {
				return err
			}
			record.PartyID = ""
			result = &LeavePartyResult{Leader: party.Leader, Disbanded: true}
			return tx.SavePlayer(record)
		}
		party.RemoveMember(record.Name)
		if err := tx.SaveParty(party); err != nil {
			return err
		}
		record.PartyID = ""
		result = &LeavePartyResult{Leader: party.Leader}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, nil, err
	}
	return result, notices, nil
}
