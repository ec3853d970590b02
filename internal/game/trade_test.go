package game

import "testing"

func setupTraders(t *testing.T, engine *Engine) {
	t.Helper()
	mustRegister(t, engine, "alice", "bob")
	mutatePlayer(t, engine, "alice", func(record *PlayerRecord) {
		record.Inventory.Gold = 100
	})
	mutatePlayer(t, engine, "bob", func(record *PlayerRecord) {
		record.Inventory.Potions = 3
	})
}

func TestTradeCompletesAtomically(t *testing.T) {
	engine := newTestEngine(t)
	setupTraders(t, engine)

	view, notices, err := engine.ProposeTrade("alice", "bob", 50, "gold")
	if err != nil {
		t.Fatalf("ProposeTrade returned error: %v", err)
	}
	if view.BothOffered {
		t.Fatalf("trade should wait for the counter offer")
	}
	if len(notices) != 1 || notices[0].To != "bob" {
		t.Fatalf("expected invitation notice for bob, got %+v", notices)
	}

	// "potion" is accepted as shorthand.
	view, _, err = engine.CounterOffer("bob", 2, "potion")
	if err != nil {
		t.Fatalf("CounterOffer returned error: %v", err)
	}
	if !view.BothOffered || view.ReceiverOffer.ItemID != "hp_potion" {
		t.Fatalf("unexpected trade view: %+v", view)
	}

	first, _, err := engine.AcceptTrade("alice")
	if err != nil {
		t.Fatalf("AcceptTrade(alice) returned error: %v", err)
	}
	if first.Executed != nil || first.Waiting != "bob" {
		t.Fatalf("expected to wait for bob, got %+v", first)
	}

	second, notices, err := engine.AcceptTrade("bob")
	if err != nil {
		t.Fatalf("AcceptTrade(bob) returned error: %v", err)
	}
	if second.Executed == nil || second.Executed.Partner != "alice" {
		t.Fatalf("expected execution, got %+v", second)
	}
	if len(notices) != 1 || notices[0].To != "alice" {
		t.Fatalf("expected completion notice for alice, got %+v", notices)
	}

	alice := loadPlayer(t, engine, "alice")
	bob := loadPlayer(t, engine, "bob")
	if alice.Inventory.Gold != 50 || alice.Inventory.Potions != 2 {
		t.Fatalf("alice holdings wrong: %+v", alice.Inventory)
	}
	if bob.Inventory.Gold != 50 || bob.Inventory.Potions != 1 {
		t.Fatalf("bob holdings wrong: %+v", bob.Inventory)
	}
	if _, err := engine.TradeFor("alice"); !IsKind(err, KindNotFound) {
		t.Fatalf("session should be gone after execution, got %v", err)
	}
}

func TestTradeSurvivesStoreFault(t *testing.T) {
	engine := newTestEngine(t)
	setupTraders(t, engine)

	if _, _, err := engine.ProposeTrade("alice", "bob", 50, "gold"); err != nil {
		t.Fatalf("ProposeTrade returned error: %v", err)
	}
	if _, _, err := engine.CounterOffer("bob", 2, "potion"); err != nil {
		t.Fatalf("CounterOffer returned error: %v", err)
	}
	if _, _, err := engine.AcceptTrade("alice"); err != nil {
		t.Fatalf("AcceptTrade(alice) returned error: %v", err)
	}

	// A store fault on the final accept must not void the negotiation.
	if err := engine.store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	_, _, err := engine.AcceptTrade("bob")
	if err == nil {
		t.Fatalf("expected a store error on the closed database")
	}
	if _, classified := KindOf(err); classified {
		t.Fatalf("store fault came back classified: %v", err)
	}
	view, err := engine.TradeFor("bob")
	if err != nil {
		t.Fatalf("session gone after a store fault: %v", err)
	}
	if !view.BothOffered {
		t.Fatalf("negotiation state lost: %+v", view)
	}
}

func TestTradeAllOrNothingOnShortage(t *testing.T) {
	engine := newTestEngine(t)
	setupTraders(t, engine)

	if _, _, err := engine.ProposeTrade("alice", "bob", 50, "gold"); err != nil {
		t.Fatalf("ProposeTrade returned error: %v", err)
	}
	if _, _, err := engine.CounterOffer("bob", 2, "potion"); err != nil {
		t.Fatalf("CounterOffer returned error: %v", err)
	}
	if _, _, err := engine.AcceptTrade("alice"); err != nil {
		t.Fatalf("AcceptTrade(alice) returned error: %v", err)
	}

	// Bob's potions vanish between offer and final accept.
	mutatePlayer(t, engine, "bob", func(record *PlayerRecord) {
		record.Inventory.Potions = 0
	})

	if _, _, err := engine.AcceptTrade("bob"); !IsKind(err, KindInsufficient) {
		t.Fatalf("expected shortage error, got %v", err)
	}

	alice := loadPlayer(t, engine, "alice")
	bob := loadPlayer(t, engine, "bob")
	if alice.Inventory.Gold != 100 {
		t.Fatalf("alice lost gold on a voided trade: %+v", alice.Inventory)
	}
	if bob.Inventory.Gold != 0 {
		t.Fatalf("bob gained gold on a voided trade: %+v", bob.Inventory)
	}
	if _, err := engine.TradeFor("alice"); !IsKind(err, KindNotFound) {
		t.Fatalf("voided session should be cleared, got %v", err)
	}
}

func TestTradeCancelClearsBothSides(t *testing.T) {
	engine := newTestEngine(t)
	setupTraders(t, engine)

	if _, _, err := engine.ProposeTrade("alice", "bob", 10, "gold"); err != nil {
		t.Fatalf("ProposeTrade returned error: %v", err)
	}
	result, notices, err := engine.CancelTrade("bob")
	if err != nil {
		t.Fatalf("CancelTrade returned error: %v", err)
	}
	if result.Partner != "alice" {
		t.Fatalf("partner = %q, want alice", result.Partner)
	}
	if len(notices) != 1 || notices[0].To != "alice" {
		t.Fatalf("expected cancel notice for alice, got %+v", notices)
	}
	for _, name := range []string{"alice", "bob"} {
		if _, err := engine.TradeFor(name); !IsKind(err, KindNotFound) {
			t.Fatalf("%s still has a session after cancel: %v", name, err)
		}
	}
}

func TestTradeValidation(t *testing.T) {
	engine := newTestEngine(t)
	setupTraders(t, engine)
	mustRegister(t, engine, "carol")

	if _, _, err := engine.ProposeTrade("alice", "Alice", 10, "gold"); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("expected self-trade rejection, got %v", err)
	}
	if _, _, err := engine.ProposeTrade("alice", "nobody", 10, "gold"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected unknown receiver error, got %v", err)
	}
	if _, _, err := engine.ProposeTrade("alice", "bob", 500, "gold"); !IsKind(err, KindInsufficient) {
		t.Fatalf("expected shortage on oversized offer, got %v", err)
	}
	if _, _, err := engine.ProposeTrade("alice", "bob", 10, "slum"); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("expected untradable item rejection, got %v", err)
	}

	if _, _, err := engine.ProposeTrade("alice", "bob", 10, "gold"); err != nil {
		t.Fatalf("ProposeTrade returned error: %v", err)
	}
	if _, _, err := engine.ProposeTrade("carol", "bob", 1, "gold"); !IsKind(err, KindConflict) {
		t.Fatalf("expected busy-receiver conflict, got %v", err)
	}
	if _, _, err := engine.AcceptTrade("alice"); !IsKind(err, KindInvalidState) {
		t.Fatalf("accept before counter offer must fail, got %v", err)
	}
	if _, _, err := engine.CounterOffer("alice", 1, "gold"); !IsKind(err, KindInvalidState) {
		t.Fatalf("only the receiver may counter, got %v", err)
	}
}
