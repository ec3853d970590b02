package game

import "testing"

func TestTravelBetweenMaps(t *testing.T) {
	engine := newTestEngine(t)
	mustRegister(t, engine, "hero")

	if _, err := engine.Travel("hero", "void"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected unknown map error, got %v", err)
	}
	if _, err := engine.Travel("hero", "slum"); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected same-map rejection, got %v", err)
	}

	result, err := engine.Travel("hero", "forest")
	if err != nil {
		t.Fatalf("Travel returned error: %v", err)
	}
	if result.From.ID != "slum" || result.To.ID != "forest" {
		t.Fatalf("unexpected route: %+v", result)
	}
	if record := loadPlayer(t, engine, "hero"); record.Stats.CurrentMap != "forest" {
		t.Fatalf("current map = %q", record.Stats.CurrentMap)
	}

	// Travel is blocked mid-fight.
	if _, err := engine.Find("hero"); err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if _, err := engine.Travel("hero", "slum"); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected combat to block travel, got %v", err)
	}
}

func TestNPCListingAndReachability(t *testing.T) {
	engine := newTestEngine(t)
	mustRegister(t, engine, "hero")

	list, err := engine.ListNPCs("hero")
	if err != nil {
		t.Fatalf("ListNPCs returned error: %v", err)
	}
	if len(list.NPCs) != 2 || list.MapName != "Slum City" {
		t.Fatalf("unexpected listing: %+v", list)
	}

	// The forest has no NPCs; approaching from there fails.
	if _, err := engine.Travel("hero", "forest"); err != nil {
		t.Fatalf("Travel returned error: %v", err)
	}
	if _, err := engine.Approach("hero", "shop"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected out-of-reach error, got %v", err)
	}
	if _, err := engine.Approach("hero", "ghost"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected unknown npc error, got %v", err)
	}
}

func TestStateGuardsBlockCrossActivity(t *testing.T) {
	engine := newTestEngine(t)
	mustRegister(t, engine, "hero")

	if _, err := engine.Approach("hero", "shop"); err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}
	// Busy with the shop: no hunting, no second conversation.
	if _, err := engine.Find("hero"); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected busy error, got %v", err)
	}
	if _, err := engine.Approach("hero", "quest"); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected busy error, got %v", err)
	}

	if _, err := engine.Leave("hero"); err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	if _, err := engine.Leave("hero"); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected nothing to leave, got %v", err)
	}

	if _, err := engine.Find("hero"); err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	// Fighting: no shopping trips.
	if _, err := engine.Approach("hero", "shop"); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected combat to block the visit, got %v", err)
	}
}

func TestStatsView(t *testing.T) {
	engine := newTestEngine(t)
	mustRegister(t, engine, "hero")
	mutatePlayer(t, engine, "hero", func(record *PlayerRecord) {
		record.Inventory.Items["iron_armor"] = 1
	})
	if _, err := engine.Equip("hero", "iron_armor"); err != nil {
		t.Fatalf("Equip returned error: %v", err)
	}

	view, err := engine.StatsFor("hero")
	if err != nil {
		t.Fatalf("StatsFor returned error: %v", err)
	}
	if view.BonusHP != 10 || view.Stats.MaxHealth != 110 {
		t.Fatalf("bonus not reflected: %+v", view)
	}
	if view.NextLevelEXP != 110 {
		t.Fatalf("next level exp = %d, want 110", view.NextLevelEXP)
	}
	if len(view.Equipment) != 3 {
		t.Fatalf("all slots must be listed, got %+v", view.Equipment)
	}
	for _, worn := range view.Equipment {
		if worn.Slot == SlotArmor && worn.ItemID != "iron_armor" {
			t.Fatalf("armor slot = %+v", worn)
		}
		if worn.Slot == SlotHelmet && worn.ItemID != "" {
			t.Fatalf("helmet slot should be empty: %+v", worn)
		}
	}
}
