package game

const potionHealFraction = 0.5

// Count returns how many of the item the inventory holds. Gold and potions
// live in dedicated counters; everything else stacks in Items.
func (inv *Inventory) Count(itemID string) int {
	switch itemID {
	case "gold":
		return inv.Gold
	case "hp_potion":
		return inv.Potions
	default:
		return inv.Items[itemID]
	}
}

// Add credits the inventory.
func (inv *Inventory) Add(itemID string, amount int) {
	switch itemID {
	case "gold":
		inv.Gold += amount
	case "hp_potion":
		inv.Potions += amount
	default:
		inv.Items[itemID] += amount
	}
}

// Remove debits the inventory. It refuses without mutating when the stock
// is short; this guard is the only thing keeping quantities non-negative.
func (inv *Inventory) Remove(itemID string, amount int) bool {
	if inv.Count(itemID) < amount {
		return false
	}
	switch itemID {
	case "gold":
		inv.Gold -= amount
	case "hp_potion":
		inv.Potions -= amount
	default:
		inv.Items[itemID] -= amount
		if inv.Items[itemID] <= 0 {
			delete(inv.Items, itemID)
		}
	}
	return true
}

// ItemStack is one line of an inventory listing.
type ItemStack struct {
	ItemID string
	Name   string
	Count  int
	HP     int
}

// InventoryView is a read-only snapshot for display.
type InventoryView struct {
	Owner     string
	Gold      int
	Potions   int
	Equipment []ItemStack
}

// InventoryFor returns the player's holdings.
func (e *Engine) InventoryFor(name string) (*InventoryView, error) {
	view := &InventoryView{}
	err := e.store.View(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		view.Owner = record.Name
		view.Gold = record.Inventory.Gold
		view.Potions = record.Inventory.Potions
		for _, itemID := range sortedKeys(record.Inventory.Items) {
			item, ok := e.catalog.Item(itemID)
			if !ok || item.Type != ItemEquipment {
				continue
			}
			view.Equipment = append(view.Equipment, ItemStack{
				ItemID: itemID,
				Name:   item.Name,
				Count:  record.Inventory.Items[itemID],
				HP:     item.HP,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// PotionResult reports a healed drink.
type PotionResult struct {
	Healed    int
	Health    int
	MaxHealth int
}

// UsePotion drinks one HP potion, restoring half of max health capped at
// the maximum.
func (e *Engine) UsePotion(name string) (*PotionResult, error) {
	var result *PotionResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if record.Inventory.Potions <= 0 {
			return E(KindInsufficient, "You have no HP Potions!")
		}
		if record.Stats.Health >= record.Stats.MaxHealth {
			return E(KindInvalidState, "Your health is already full!")
		}
		record.Inventory.Potions--
		heal := int(float64(record.Stats.MaxHealth) * potionHealFraction)
		record.Stats.Health = min(record.Stats.Health+heal, record.Stats.MaxHealth)
		result = &PotionResult{
			Healed:    heal,
			Health:    record.Stats.Health,
			MaxHealth: record.Stats.MaxHealth,
		}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EquipResult reports a successful equip and anything swapped back.
type EquipResult struct {
	ItemName     string
	BonusHP      int
	ReturnedName string
	Stats        Stats
}

// Equip wears an equipment item from the inventory. Anything already in the
// slot returns to the inventory, and max health shifts by the difference in
// bonuses. Current health is preserved, clamped to the new max.
func (e *Engine) Equip(name, itemID string) (*EquipResult, error) {
	item, ok := e.catalog.Item(itemID)
	if !ok {
		return nil, E(KindNotFound, "There is no item called '%s'.", itemID)
	}
	if item.Type != ItemEquipment {
		return nil, E(KindInvalidArgument, "%s cannot be equipped!", item.Name)
	}
	var result *EquipResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if record.Inventory.Items[itemID] <= 0 {
			return E(KindInsufficient, "You do not have a %s!", item.Name)
		}

		oldID := record.Equipment[item.Slot]
		oldBonus := 0
		returnedName := ""
		if oldID != "" {
			record.Inventory.Items[oldID]++
			if old, ok := e.catalog.Item(oldID); ok {
				oldBonus = old.HP
				returnedName = old.Name
			} else {
				returnedName = oldID
			}
		}

		record.Equipment[item.Slot] = itemID
		record.Inventory.Items[itemID]--
		if record.Inventory.Items[itemID] <= 0 {
			delete(record.Inventory.Items, itemID)
		}

		record.Stats.MaxHealth += item.HP - oldBonus
		record.Stats.Health = min(record.Stats.Health, record.Stats.MaxHealth)

		result = &EquipResult{
			ItemName:     item.Name,
			BonusHP:      item.HP,
			ReturnedName: returnedName,
			Stats:        record.Stats,
		}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UnequipResult reports a removed piece of equipment.
type UnequipResult struct {
	ItemName string
	BonusHP  int
	Stats    Stats
}

// Unequip removes the item in the given slot, returning it to the
// inventory. Max health drops by its bonus and current health clamps.
func (e *Engine) Unequip(name, slot string) (*UnequipResult, error) {
	switch slot {
	case SlotHelmet, SlotArmor, SlotBoots:
	default:
		return nil, E(KindInvalidArgument, "Unknown slot '%s'. Use helmet, armor, or boots.", slot)
	}
	var result *UnequipResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		itemID := record.Equipment[slot]
		if itemID == "" {
			return E(KindNotFound, "You are wearing nothing in the %s slot!", slot)
		}
		record.Inventory.Items[itemID]++
		delete(record.Equipment, slot)

		bonus := 0
		itemName := itemID
		if item, ok := e.catalog.Item(itemID); ok {
			bonus = item.HP
			itemName = item.Name
		}
		record.Stats.MaxHealth -= bonus
		record.Stats.Health = min(record.Stats.Health, record.Stats.MaxHealth)

		result = &UnequipResult{ItemName: itemName, BonusHP: bonus, Stats: record.Stats}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
