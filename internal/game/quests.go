package game

// applyQuestKill advances the active quest when the killed monster matches
// its target. Completion pays out immediately; the experience lands before
// the victory's level check so it counts toward the same threshold.
func applyQuestKill(record *PlayerRecord, monsterName string) *QuestUpdate {
	quest := record.Quest
	if quest == nil || quest.Target != monsterName {
		return nil
	}
	quest.Progress++
	update := &QuestUpdate{
		Target:     quest.Target,
		Progress:   quest.Progress,
		Required:   quest.Required,
		RewardGold: quest.RewardGold,
		RewardEXP:  quest.RewardEXP,
	}
	if quest.Progress >= quest.Required {
		record.Inventory.Gold += quest.RewardGold
		record.Stats.EXP += quest.RewardEXP
		record.Quest = nil
		update.Completed = true
	}
	return update
}

// generateQuest rolls a kill contract against the player's current map.
func (e *Engine) generateQuest(record *PlayerRecord) *Quest {
	info, ok := e.catalog.Map(record.Stats.CurrentMap)
	if !ok || len(info.Monsters) == 0 {
		return nil
	}
	target := info.Monsters[e.rng.IntN(len(info.Monsters))]
	kills := e.rng.Between(e.catalog.Quest.MinKills, e.catalog.Quest.MaxKills)
	return &Quest{
		Target:     target.Name,
		Required:   kills,
		RewardGold: kills * e.catalog.Quest.GoldPerKill,
		RewardEXP:  kills * e.catalog.Quest.EXPPerKill,
		Map:        record.Stats.CurrentMap,
	}
}

// QuestOffer describes what the quest giver is currently showing a player.
type QuestOffer struct {
	// Active is set when the player already holds a contract.
	Active *Quest
	// Pending is the offer awaiting accept or decline.
	Pending *Quest
	// Fresh marks an offer generated by this visit, as opposed to one
	// re-shown from an earlier visit.
	Fresh    bool
	Greeting []string
	MapName  string
}

// offerQuest is invoked when the player approaches the quest giver. A fresh
// contract is only generated when none is active or pending.
func (e *Engine) offerQuest(tx *Tx, record *PlayerRecord, npc *NPC) (*QuestOffer, error) {
	offer := &QuestOffer{Greeting: e.greetingLines(npc, record.Name)}
	if record.Quest != nil {
		offer.Active = record.Quest
		return offer, nil
	}
	if record.PendingQuest != nil {
		offer.Pending = record.PendingQuest
		offer.MapName = e.mapName(record.PendingQuest.Map)
		return offer, nil
	}
	quest := e.generateQuest(record)
	if quest == nil {
		return nil, E(KindNotFound, "There is nothing to hunt here, so no contract can be drawn up.")
	}
	record.PendingQuest = quest
	offer.Pending = quest
	offer.Fresh = true
	offer.MapName = e.mapName(quest.Map)
	return offer, tx.SavePlayer(record)
}

func (e *Engine) mapName(id string) string {
	if info, ok := e.catalog.Map(id); ok {
		return info.Name
	}
	return id
}

// AcceptQuest turns the pending offer into the active contract and ends the
// conversation.
func (e *Engine) AcceptQuest(name string) (*Quest, error) {
	var accepted *Quest
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := e.requireNPC(record, "quest"); err != nil {
			return err
		}
		if record.PendingQuest == nil {
			return E(KindNotFound, "There is no contract waiting for you.")
		}
		record.Quest = record.PendingQuest
		record.PendingQuest = nil
		record.ClearState()
		accepted = record.Quest
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// DeclineQuest discards the pending offer and ends the conversation.
func (e *Engine) DeclineQuest(name string) error {
	return e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := e.requireNPC(record, "quest"); err != nil {
			return err
		}
		if record.PendingQuest == nil {
			return E(KindNotFound, "There is no contract waiting for you.")
		}
		record.PendingQuest = nil
		record.ClearState()
		return tx.SavePlayer(record)
	})
}

// CancelQuest abandons the active contract without reward.
func (e *Engine) CancelQuest(name string) (*Quest, error) {
	var cancelled *Quest
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if record.Quest == nil {
			return E(KindNotFound, "You have no contract to cancel!")
		}
		cancelled = record.Quest
		record.Quest = nil
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// QuestStatus reports the player's pending and active contracts.
type QuestStatus struct {
	Pending *Quest
	Active  *Quest
	MapName string
}

// QuestFor returns the player's current quest state without changing it.
func (e *Engine) QuestFor(name string) (*QuestStatus, error) {
	status := &QuestStatus{}
	err := e.store.View(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		status.Pending = record.PendingQuest
		status.Active = record.Quest
		if record.PendingQuest != nil {
			status.MapName = e.mapName(record.PendingQuest.Map)
		} else if record.Quest != nil {
			status.MapName = e.mapName(record.Quest.Map)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}
