package game

// EquippedItem describes one worn piece for display.
type EquippedItem struct {
	Slot   string
	ItemID string
	Name   string
	HP     int
}

// StatsView is the character sheet snapshot.
type StatsView struct {
	Name         string
	Stats        Stats
	BonusHP      int
	NextLevelEXP int
	MapName      string
	Equipment    []EquippedItem
}

// StatsFor returns the player's character sheet.
func (e *Engine) StatsFor(name string) (*StatsView, error) {
	view := &StatsView{}
	err := e.store.View(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		view.Name = record.Name
		view.Stats = record.Stats
		view.NextLevelEXP = expForLevel(record.Stats.Level)
		view.MapName = e.mapName(record.Stats.CurrentMap)
		for _, slot := range EquipmentSlots() {
			equipped := EquippedItem{Slot: slot}
			if itemID := record.Equipment[slot]; itemID != "" {
				equipped.ItemID = itemID
				equipped.Name = itemID
				if item, ok := e.catalog.Item(itemID); ok {
					equipped.Name = item.Name
					equipped.HP = item.HP
					view.BonusHP += item.HP
				}
			}
			view.Equipment = append(view.Equipment, equipped)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
