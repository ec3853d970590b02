package game

// The guard helpers reject operations that are illegal in the player's
// current activity state. Their messages always name the command that
// leads back out.

func (e *Engine) requireIdle(record *PlayerRecord) error {
	switch record.State.Type {
	case StateCombat:
		return E(KindInvalidState, "You cannot do that while fighting! Use /run to flee.")
	case StateNPC:
		name := record.State.NPC
		if npc, ok := e.catalog.NPC(record.State.NPC); ok {
			name = npc.Name
		}
		return E(KindInvalidState, "You are busy with %s! Use /leave to walk away.", name)
	}
	return nil
}

func requireCombat(record *PlayerRecord) error {
	if !record.InCombat() {
		return E(KindInvalidState, "You are not fighting anything! Use /find to hunt for a monster.")
	}
	return nil
}

func (e *Engine) requireNPC(record *PlayerRecord, id string) error {
	if record.AtNPC(id) {
		return nil
	}
	if id == "" {
		return E(KindInvalidState, "You are not talking to anyone!")
	}
	name := id
	if npc, ok := e.catalog.NPC(id); ok {
		name = npc.Name
	}
	return E(KindInvalidState, "You must be with %s first! Use /move %s.", name, id)
}
