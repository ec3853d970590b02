package game

import "sync"

// shopStock tracks remaining stock per NPC shop in process memory. Catalog
// entries with stock -1 are unlimited and never tracked.
type shopStock struct {
	mu        sync.Mutex
	remaining map[string]map[string]int
}

func newShopStock(catalog *Catalog) *shopStock {
	stock := &shopStock{remaining: make(map[string]map[string]int)}
	for npcID, npc := range catalog.NPCs {
		for itemID, entry := range npc.Inventory {
			if entry.Stock < 0 {
				continue
			}
			if stock.remaining[npcID] == nil {
				stock.remaining[npcID] = make(map[string]int)
			}
			stock.remaining[npcID][itemID] = entry.Stock
		}
	}
	return stock
}

// level returns the remaining stock, or -1 for unlimited.
func (s *shopStock) level(npcID, itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.remaining[npcID]
	if !ok {
		return -1
	}
	remaining, ok := items[itemID]
	if !ok {
		return -1
	}
	return remaining
}

func (s *shopStock) take(npcID, itemID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.remaining[npcID]
	if !ok {
		return true
	}
	remaining, ok := items[itemID]
	if !ok {
		return true
	}
	if remaining < quantity {
		return false
	}
	items[itemID] = remaining - quantity
	return true
}

// ShopItem is one line of a shop listing.
type ShopItem struct {
	ItemID string
	Name   string
	HP     int
	Price  int
	Stock  int
}

// ShopView is the storefront shown when approaching a shop NPC.
type ShopView struct {
	NPCName  string
	Greeting []string
	Items    []ShopItem
}

func (e *Engine) shopView(npc *NPC) *ShopView {
	view := &ShopView{NPCName: npc.Name, Greeting: e.greetingLines(npc, "")}
	for _, itemID := range sortedKeys(npc.Inventory) {
		item, ok := e.catalog.Item(itemID)
		if !ok {
			continue
		}
		view.Items = append(view.Items, ShopItem{
			ItemID: itemID,
			Name:   item.Name,
			HP:     item.HP,
			Price:  npc.Inventory[itemID].Price,
			Stock:  e.stock.level(npc.ID, itemID),
		})
	}
	return view
}

// PurchaseResult reports a completed shop purchase.
type PurchaseResult struct {
	ItemName  string
	Quantity  int
	TotalCost int
	GoldLeft  int
}

// Buy purchases quantity of an item from the shop the player is visiting.
// Gold and goods move in the same transaction; stock decrements only after
// payment succeeds.
func (e *Engine) Buy(name string, quantity int, itemID string) (*PurchaseResult, error) {
	if quantity <= 0 {
		return nil, E(KindInvalidArgument, "Quantity must be greater than zero!")
	}
	var result *PurchaseResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := e.requireNPC(record, "shop"); err != nil {
			return err
		}
		npc, ok := e.catalog.NPC(record.State.NPC)
		if !ok {
			return E(KindNotFound, "The shop has vanished.")
		}
		entry, ok := npc.Inventory[itemID]
		if !ok {
			return E(KindNotFound, "The shop does not sell '%s'!", itemID)
		}
		item, ok := e.catalog.Item(itemID)
		if !ok {
			return E(KindNotFound, "The shop does not sell '%s'!", itemID)
		}
		if remaining := e.stock.level(npc.ID, itemID); remaining >= 0 && quantity > remaining {
			return E(KindInsufficient, "The shop only has %d %s left!", remaining, item.Name)
		}
		totalCost := entry.Price * quantity
		if record.Inventory.Gold < totalCost {
			return E(KindInsufficient, "Not enough gold! Need %d, have %d.", totalCost, record.Inventory.Gold)
		}
		if !record.Inventory.Remove("gold", totalCost) {
			return E(KindInsufficient, "Not enough gold! Need %d, have %d.", totalCost, record.Inventory.Gold)
		}
		record.Inventory.Add(itemID, quantity)
		if err := tx.SavePlayer(record); err != nil {
			return err
		}
		if !e.stock.take(npc.ID, itemID, quantity) {
			return E(KindInsufficient, "The shop ran out of %s!", item.Name)
		}
		result = &PurchaseResult{
			ItemName:  item.Name,
			Quantity:  quantity,
			TotalCost: totalCost,
			GoldLeft:  record.Inventory.Gold,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
