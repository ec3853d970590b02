package game

import (
	"fmt"
	"strings"
	"sync"
)

// Trade sessions live in process memory only. A restart drops every
// in-flight negotiation; inventories are never touched until the final
// atomic execution, so nothing is lost but the conversation.

type tradeStatus string

const (
	tradePendingOffer tradeStatus = "pending_receiver_offer"
	tradeBothOffered  tradeStatus = "both_offered"
)

// TradeOffer is one side's stake.
type TradeOffer struct {
	Amount int
	ItemID string
	Name   string
}

type tradeSession struct {
	sender           string
	receiver         string
	senderOffer      *TradeOffer
	receiverOffer    *TradeOffer
	senderAccepted   bool
	receiverAccepted bool
	status           tradeStatus
}

func (s *tradeSession) other(name string) string {
	if name == s.sender {
		return s.receiver
	}
	return s.sender
}

// tradeTable indexes the shared session under both participant names.
type tradeTable struct {
	mu       sync.Mutex
	sessions map[string]*tradeSession
}

func newTradeTable() *tradeTable {
	return &tradeTable{sessions: make(map[string]*tradeSession)}
}

func (t *tradeTable) clear(session *tradeSession) {
	delete(t.sessions, session.sender)
	delete(t.sessions, session.receiver)
}

// TradeView is a read-only snapshot of a negotiation.
type TradeView struct {
	Sender           string
	Receiver         string
	SenderOffer      *TradeOffer
	ReceiverOffer    *TradeOffer
	SenderAccepted   bool
	ReceiverAccepted bool
	BothOffered      bool
}

func (s *tradeSession) view() *TradeView {
	view := &TradeView{
		Sender:           s.sender,
		Receiver:         s.receiver,
		SenderAccepted:   s.senderAccepted,
		ReceiverAccepted: s.receiverAccepted,
		BothOffered:      s.status == tradeBothOffered,
	}
	if s.senderOffer != nil {
		offer := *s.senderOffer
		view.SenderOffer = &offer
	}
	if s.receiverOffer != nil {
		offer := *s.receiverOffer
		view.ReceiverOffer = &offer
	}
	return view
}

// normalizeTradeItem resolves the item a player named into a tradable
// catalog id. "potion" is accepted as shorthand for hp_potion.
func (e *Engine) normalizeTradeItem(itemID string) (string, string, error) {
	switch itemID {
	case "gold":
		return "gold", "Gold", nil
	case "potion", "hp_potion":
		return "hp_potion", "HP Potion", nil
	}
	item, ok := e.catalog.Item(itemID)
	if !ok || item.Type != ItemEquipment {
		return "", "", E(KindInvalidArgument, "'%s' cannot be traded. Use gold, potion, or an equipment id.", itemID)
	}
	return itemID, item.Name, nil
}

// ProposeTrade opens a negotiation: the sender stakes an offer and the
// receiver is asked for a counter offer.
func (e *Engine) ProposeTrade(sender, receiver string, amount int, itemID string) (*TradeView, []Notice, error) {
	if amount <= 0 {
		return nil, nil, E(KindInvalidArgument, "Amount must be greater than zero!")
	}
	normalizedID, itemName, err := e.normalizeTradeItem(itemID)
	if err != nil {
		return nil, nil, err
	}
	if strings.EqualFold(sender, receiver) {
		return nil, nil, E(KindInvalidArgument, "You cannot trade with yourself!")
	}

	e.trades.mu.Lock()
	defer e.trades.mu.Unlock()

	if _, busy := e.trades.sessions[sender]; busy {
		return nil, nil, E(KindConflict, "You already have a trade in progress! Use /trade cancel first.")
	}
	if _, busy := e.trades.sessions[receiver]; busy {
		return nil, nil, E(KindConflict, "%s is already in another trade!", receiver)
	}

	err = e.store.View(func(tx *Tx) error {
		if !tx.PlayerExists(receiver) {
			return E(KindNotFound, "Player '%s' does not exist.", receiver)
		}
		record, err := tx.Player(sender)
		if err != nil {
			return err
		}
		if record.Inventory.Count(normalizedID) < amount {
			return E(KindInsufficient, "You do not have enough %s! (have %d)", itemName, record.Inventory.Count(normalizedID))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	session := &tradeSession{
		sender:      sender,
		receiver:    receiver,
		senderOffer: &TradeOffer{Amount: amount, ItemID: normalizedID, Name: itemName},
		status:      tradePendingOffer,
	}
	e.trades.sessions[sender] = session
	e.trades.sessions[receiver] = session

	notices := []Notice{{
		To: receiver,
		Text: "A trade invitation from " + sender + "!\n" +
			sender + " offers: " + formatOffer(session.senderOffer) + "\n" +
			"Use /trade offer <amount> <gold/potion/item_id> to make your counter offer.",
	}}
	return session.view(), notices, nil
}

// CounterOffer lets the receiver stake their side, moving the negotiation
// to the mutual-accept phase.
func (e *Engine) CounterOffer(name string, amount int, itemID string) (*TradeView, []Notice, error) {
	if amount <= 0 {
		return nil, nil, E(KindInvalidArgument, "Amount must be greater than zero!")
	}
	normalizedID, itemName, err := e.normalizeTradeItem(itemID)
	if err != nil {
		return nil, nil, err
	}

	e.trades.mu.Lock()
	defer e.trades.mu.Unlock()

	session, ok := e.trades.sessions[name]
	if !ok {
		return nil, nil, E(KindNotFound, "You have no trade in progress!")
	}
	if session.receiver != name {
		return nil, nil, E(KindInvalidState, "You are not the receiver of this trade!")
	}
	if session.status != tradePendingOffer {
		return nil, nil, E(KindInvalidState, "You already made your offer!")
	}

	err = e.store.View(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if record.Inventory.Count(normalizedID) < amount {
			return E(KindInsufficient, "You do not have enough %s! (have %d)", itemName, record.Inventory.Count(normalizedID))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	session.receiverOffer = &TradeOffer{Amount: amount, ItemID: normalizedID, Name: itemName}
	session.status = tradeBothOffered

	notices := []Notice{{
		To: session.sender,
		Text: name + " made a counter offer!\n" +
			"You offer: " + formatOffer(session.senderOffer) + "\n" +
			name + " offers: " + formatOffer(session.receiverOffer) + "\n" +
			"Both sides must /trade accept to complete, or /trade cancel to walk away.",
	}}
	return session.view(), notices, nil
}

// TradeExecution reports a completed swap from the acceptor's perspective.
type TradeExecution struct {
	Partner string
	Gave    TradeOffer
	Got     TradeOffer
}

// AcceptResult reports an accept: either the trade executed, or we are
// still waiting on the partner.
type AcceptResult struct {
	Executed *TradeExecution
	Waiting  string
}

// AcceptTrade marks the caller's consent. When both sides have accepted,
// both inventories are re-validated and the swap executes atomically in one
// transaction; any shortage voids the whole trade.
func (e *Engine) AcceptTrade(name string) (*AcceptResult, []Notice, error) {
	e.trades.mu.Lock()
	defer e.trades.mu.Unlock()

	session, ok := e.trades.sessions[name]
	if !ok {
		return nil, nil, E(KindNotFound, "You have no trade in progress!")
	}
	if session.status != tradeBothOffered {
		return nil, nil, E(KindInvalidState, "Cannot accept yet! Wait for the counter offer.")
	}
	switch name {
	case session.sender:
		session.senderAccepted = true
	case session.receiver:
		session.receiverAccepted = true
	default:
		return nil, nil, E(KindInvalidState, "You are not part of this trade!")
	}

	if !session.senderAccepted || !session.receiverAccepted {
		return &AcceptResult{Waiting: session.other(name)}, nil, nil
	}

	err := e.store.Update(func(tx *Tx) error {
		sender, err := tx.Player(session.sender)
		if err != nil {
			return err
		}
		receiver, err := tx.Player(session.receiver)
		if err != nil {
			return err
		}
		if sender.Inventory.Count(session.senderOffer.ItemID) < session.senderOffer.Amount {
			return E(KindInsufficient, "%s no longer has enough to trade!", session.sender)
		}
		if receiver.Inventory.Count(session.receiverOffer.ItemID) < session.receiverOffer.Amount {
			return E(KindInsufficient, "%s no longer has enough to trade!", session.receiver)
		}
		if !sender.Inventory.Remove(session.senderOffer.ItemID, session.senderOffer.Amount) {
			return E(KindInsufficient, "%s no longer has enough to trade!", session.sender)
		}
		receiver.Inventory.Add(session.senderOffer.ItemID, session.senderOffer.Amount)
		if !receiver.Inventory.Remove(session.receiverOffer.ItemID, session.receiverOffer.Amount) {
			return E(KindInsufficient, "%s no longer has enough to trade!", session.receiver)
		}
		sender.Inventory.Add(session.receiverOffer.ItemID, session.receiverOffer.Amount)
		if err := tx.SavePlayer(sender); err != nil {
			return err
		}
		return tx.SavePlayer(receiver)
	})
	if err != nil {
		// A shortage voids the trade. A store fault does not: the
		// negotiation stays up so the accept can simply be retried.
		if _, classified := KindOf(err); classified {
			e.trades.clear(session)
		}
		return nil, nil, err
	}
	e.trades.clear(session)

	gave, got := *session.senderOffer, *session.receiverOffer
	if name == session.receiver {
		gave, got = got, gave
	}
	execution := &TradeExecution{Partner: session.other(name), Gave: gave, Got: got}
	notices := []Notice{{
		To: session.other(name),
		Text: "TRADE COMPLETE!\n" +
			"You sent: " + formatOffer(&got) + "\n" +
			"You received: " + formatOffer(&gave),
	}}
	return &AcceptResult{Executed: execution}, notices, nil
}

// CancelResult names the partner whose trade was abandoned.
type CancelResult struct {
	Partner string
}

// CancelTrade voids the negotiation for both sides. Either participant may
// cancel at any phase before execution.
func (e *Engine) CancelTrade(name string) (*CancelResult, []Notice, error) {
	e.trades.mu.Lock()
	defer e.trades.mu.Unlock()

	session, ok := e.trades.sessions[name]
	if !ok {
		return nil, nil, E(KindNotFound, "You have no trade in progress!")
	}
	e.trades.clear(session)

	other := session.other(name)
	notices := []Notice{{To: other, Text: name + " cancelled the trade!"}}
	return &CancelResult{Partner: other}, notices, nil
}

func formatOffer(offer *TradeOffer) string {
	return fmt.Sprintf("%d %s", offer.Amount, offer.Name)
}

// TradeFor returns the caller's current negotiation, if any.
func (e *Engine) TradeFor(name string) (*TradeView, error) {
	e.trades.mu.Lock()
	defer e.trades.mu.Unlock()

	session, ok := e.trades.sessions[name]
	if !ok {
		return nil, E(KindNotFound, "You have no trade in progress!")
	}
	return session.view(), nil
}
