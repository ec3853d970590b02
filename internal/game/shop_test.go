package game

import (
	"path/filepath"
	"testing"
)

func newShopEngine(t *testing.T) *Engine {
	t.Helper()
	catalog := DefaultCatalog()
	catalog.NPCs["shop"].Inventory["hp_potion"] = ShopEntry{Price: 20, Stock: 2}
	store, err := OpenStore(filepath.Join(t.TempDir(), "players.db"))
	if err != nil {
		t.Fatalf("OpenStore returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewEngine(catalog, store)
}

func TestBuyFromShop(t *testing.T) {
	engine := newShopEngine(t)
	mustRegister(t, engine, "hero")
	mutatePlayer(t, engine, "hero", func(record *PlayerRecord) {
		record.Inventory.Gold = 100
	})

	if _, err := engine.Buy("hero", 1, "hp_potion"); !IsKind(err, KindInvalidState) {
		t.Fatalf("buying away from the shop must fail, got %v", err)
	}

	visit, err := engine.Approach("hero", "shop")
	if err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}
	if visit.Shop == nil {
		t.Fatalf("expected a storefront, got %+v", visit)
	}
	for _, item := range visit.Shop.Items {
		if item.ItemID == "hp_potion" && item.Stock != 2 {
			t.Fatalf("potion stock = %d, want 2", item.Stock)
		}
	}

	result, err := engine.Buy("hero", 1, "hp_potion")
	if err != nil {
		t.Fatalf("Buy returned error: %v", err)
	}
	if result.TotalCost != 20 || result.GoldLeft != 80 {
		t.Fatalf("unexpected purchase: %+v", result)
	}

	// Only one left now; asking for two must fail without charging.
	if _, err := engine.Buy("hero", 2, "hp_potion"); !IsKind(err, KindInsufficient) {
		t.Fatalf("expected stock shortage, got %v", err)
	}
	if record := loadPlayer(t, engine, "hero"); record.Inventory.Gold != 80 {
		t.Fatalf("gold changed on failed purchase: %d", record.Inventory.Gold)
	}

	if _, err := engine.Buy("hero", 1, "hp_potion"); err != nil {
		t.Fatalf("buying the last potion returned error: %v", err)
	}
	if _, err := engine.Buy("hero", 1, "hp_potion"); !IsKind(err, KindInsufficient) {
		t.Fatalf("expected sold-out error, got %v", err)
	}

	record := loadPlayer(t, engine, "hero")
	if record.Inventory.Potions != 2 || record.Inventory.Gold != 60 {
		t.Fatalf("final holdings wrong: %+v", record.Inventory)
	}
}

func TestBuyValidation(t *testing.T) {
	engine := newShopEngine(t)
	mustRegister(t, engine, "hero")
	if _, err := engine.Approach("hero", "shop"); err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}

	if _, err := engine.Buy("hero", 0, "hp_potion"); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("expected zero-quantity rejection, got %v", err)
	}
	if _, err := engine.Buy("hero", 1, "iron_helmet"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected unknown-stock error, got %v", err)
	}
	if _, err := engine.Buy("hero", 1, "copper_helmet"); !IsKind(err, KindInsufficient) {
		t.Fatalf("expected gold shortage, got %v", err)
	}
}

func TestUnlimitedStockNeverDepletes(t *testing.T) {
	engine := newTestEngine(t)
	mustRegister(t, engine, "hero")
	mutatePlayer(t, engine, "hero", func(record *PlayerRecord) {
		record.Inventory.Gold = 10000
	})
	if _, err := engine.Approach("hero", "shop"); err != nil {
		t.Fatalf("Approach returned error: %v", err)
	}
	result, err := engine.Buy("hero", 100, "hp_potion")
	if err != nil {
		t.Fatalf("Buy returned error: %v", err)
	}
	if result.Quantity != 100 || result.GoldLeft != 8000 {
		t.Fatalf("unexpected bulk purchase: %+v", result)
	}
}
