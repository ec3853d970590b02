package game

import "testing"

func TestQuestOfferAcceptAndProgress(t *testing.T) {
	rng := &scriptedRand{
		ints:     []int{0, 0},      // quest target Sewer Rat, then monster pick
		betweens: []int{2, 30, 30}, // 2 kills required, then combat rolls
	}
	engine := newTestEngine(t, WithRandomizer(rng))
	mustRegister(t, engine, "hero")
	mutatePlayer(t, engine, "hero", func(record *PlayerRecord) {
		record.Stats.Damage = 40
	})

	visit, err := engine.Approach("hero", "quest")
	if err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}
	if visit.Quest == nil || visit.Quest.Pending == nil || !visit.Quest.Fresh {
		t.Fatalf("expected a fresh contract, got %+v", visit.Quest)
	}
	offer := visit.Quest.Pending
	if offer.Target != "Sewer Rat" || offer.Required != 2 {
		t.Fatalf("unexpected contract: %+v", offer)
	}
	if offer.RewardGold != 20 || offer.RewardEXP != 10 {
		t.Fatalf("rewards not scaled per kill: %+v", offer)
	}

	accepted, err := engine.AcceptQuest("hero")
	if err != nil {
		t.Fatalf("AcceptQuest returned error: %v", err)
	}
	if accepted.Target != "Sewer Rat" {
		t.Fatalf("accepted wrong contract: %+v", accepted)
	}
	if record := loadPlayer(t, engine, "hero"); !record.Idle() {
		t.Fatalf("accepting should end the conversation")
	}

	// First kill advances progress without completing.
	if _, err := engine.Find("hero"); err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	result, err := engine.Attack("hero")
	if err != nil {
		t.Fatalf("Attack returned error: %v", err)
	}
	if result.Victory == nil || result.Victory.Quest == nil {
		t.Fatalf("expected quest progress on victory, got %+v", result)
	}
	if result.Victory.Quest.Completed || result.Victory.Quest.Progress != 1 {
		t.Fatalf("unexpected progress: %+v", result.Victory.Quest)
	}

	status, err := engine.QuestFor("hero")
	if err != nil {
		t.Fatalf("QuestFor returned error: %v", err)
	}
	if status.Active == nil || status.Active.Progress != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestQuestDeclineAndLeaveDiscardOffer(t *testing.T) {
	rng := &scriptedRand{ints: []int{1, 2}, betweens: []int{3, 4}}
	engine := newTestEngine(t, WithRandomizer(rng))
	mustRegister(t, engine, "hero")

	if _, err := engine.AcceptQuest("hero"); !IsKind(err, KindInvalidState) {
		t.Fatalf("accepting away from the giver must fail, got %v", err)
	}

	if _, err := engine.Approach("hero", "quest"); err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}
	if err := engine.DeclineQuest("hero"); err != nil {
		t.Fatalf("DeclineQuest returned error: %v", err)
	}
	record := loadPlayer(t, engine, "hero")
	if record.PendingQuest != nil || !record.Idle() {
		t.Fatalf("decline should clear the offer and idle: %+v", record)
	}

	// Walking away also discards the offer.
	if _, err := engine.Approach("hero", "quest"); err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}
	if _, err := engine.Leave("hero"); err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	if record := loadPlayer(t, engine, "hero"); record.PendingQuest != nil {
		t.Fatalf("leaving should discard the pending offer")
	}
}

func TestQuestCancel(t *testing.T) {
	engine := newTestEngine(t)
	mustRegister(t, engine, "hero")
	if _, err := engine.CancelQuest("hero"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected nothing to cancel, got %v", err)
	}
	mutatePlayer(t, engine, "hero", func(record *PlayerRecord) {
		record.Quest = &Quest{Target: "Sewer Rat", Required: 3, Map: "slum"}
	})
	cancelled, err := engine.CancelQuest("hero")
	if err != nil {
		t.Fatalf("CancelQuest returned error: %v", err)
	}
	if cancelled.Target != "Sewer Rat" {
		t.Fatalf("cancelled wrong quest: %+v", cancelled)
	}
	if record := loadPlayer(t, engine, "hero"); record.Quest != nil {
		t.Fatalf("quest still present after cancel")
	}
}

func TestApproachReshowsExistingContract(t *testing.T) {
	engine := newTestEngine(t)
	mustRegister(t, engine, "hero")
	mutatePlayer(t, engine, "hero", func(record *PlayerRecord) {
		record.Quest = &Quest{Target: "Stray Hound", Required: 4, Progress: 1, Map: "slum"}
	})
	visit, err := engine.Approach("hero", "quest")
	if err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}
	if visit.Quest.Active == nil || visit.Quest.Active.Target != "Stray Hound" {
		t.Fatalf("expected the active contract back, got %+v", visit.Quest)
	}
	if visit.Quest.Pending != nil || visit.Quest.Fresh {
		t.Fatalf("no new contract should be generated: %+v", visit.Quest)
	}
}
