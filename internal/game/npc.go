package game

// NPCView summarizes an NPC for listings.
type NPCView struct {
	ID          string
	Name        string
	Description string
	Type        NPCType
}

// NPCList names the NPCs reachable from the player's map.
type NPCList struct {
	MapName string
	NPCs    []NPCView
}

// ListNPCs returns the NPCs present on the player's current map.
func (e *Engine) ListNPCs(name string) (*NPCList, error) {
	list := &NPCList{}
	err := e.store.View(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		list.MapName = e.mapName(record.Stats.CurrentMap)
		for _, npc := range e.catalog.NPCsInMap(record.Stats.CurrentMap) {
			list.NPCs = append(list.NPCs, NPCView{
				ID:          npc.ID,
				Name:        npc.Name,
				Description: npc.Description,
				Type:        npc.Type,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// NPCVisit reports what happened when the player approached an NPC. Exactly
// one of Shop and Quest is populated, matching the NPC's type.
type NPCVisit struct {
	NPC   NPCView
	Shop  *ShopView
	Quest *QuestOffer
}

// Approach starts a conversation with an NPC on the player's current map.
func (e *Engine) Approach(name, npcID string) (*NPCVisit, error) {
	npc, ok := e.catalog.NPC(npcID)
	if !ok {
		return nil, E(KindNotFound, "There is no one called '%s' here.", npcID)
	}
	var visit *NPCVisit
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := e.requireIdle(record); err != nil {
			return err
		}
		reachable := false
		for _, m := range npc.Maps {
			if m == record.Stats.CurrentMap {
				reachable = true
				break
			}
		}
		if !reachable {
			return E(KindNotFound, "%s is not in %s!", npc.Name, e.mapName(record.Stats.CurrentMap))
		}
		record.EnterNPC(npcID)
		if err := tx.SavePlayer(record); err != nil {
			return err
		}
		visit = &NPCVisit{NPC: NPCView{ID: npc.ID, Name: npc.Name, Description: npc.Description, Type: npc.Type}}
		switch npc.Type {
		case NPCQuest:
			offer, err := e.offerQuest(tx, record, npc)
			if err != nil {
				return err
			}
			visit.Quest = offer
		case NPCShop:
			visit.Shop = e.shopView(npc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return visit, nil
}

// LeaveResult names the NPC the player walked away from.
type LeaveResult struct {
	NPCName string
}

// Leave ends the current NPC conversation. Walking away from the quest
// giver discards any offer still on the table.
func (e *Engine) Leave(name string) (*LeaveResult, error) {
	var result *LeaveResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := e.requireNPC(record, ""); err != nil {
			return err
		}
		npcID := record.State.NPC
		npcName := npcID
		if npc, ok := e.catalog.NPC(npcID); ok {
			npcName = npc.Name
		}
		if npc, ok := e.catalog.NPC(npcID); ok && npc.Type == NPCQuest {
			record.PendingQuest = nil
		}
		record.ClearState()
		result = &LeaveResult{NPCName: npcName}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
