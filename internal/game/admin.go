package game

import (
	"fmt"
	"sort"
	"strings"
)

const (
	minAdminLevel = 1
	maxAdminLevel = 100
)

// AdminHealResult reports a forced heal.
type AdminHealResult struct {
	Target    string
	Health    int
	MaxHealth int
}

// AdminHeal restores the target to full health.
func (e *Engine) AdminHeal(target string) (*AdminHealResult, []Notice, error) {
	var result *AdminHealResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(target)
		if err != nil {
			return err
		}
		record.Stats.Health = record.Stats.MaxHealth
		result = &AdminHealResult{Target: record.Name, Health: record.Stats.Health, MaxHealth: record.Stats.MaxHealth}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, nil, err
	}
	notices := []Notice{{To: result.Target, Text: "An admin restored you to full health!"}}
	return result, notices, nil
}

// AdminGrantResult reports a granted resource.
type AdminGrantResult struct {
	Target string
	Amount int
	Total  int
}

// AdminGiveGold adds gold to the target's inventory.
func (e *Engine) AdminGiveGold(target string, amount int) (*AdminGrantResult, []Notice, error) {
	if amount <= 0 {
		return nil, nil, E(KindInvalidArgument, "Amount must be greater than zero!")
	}
	var result *AdminGrantResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(target)
		if err != nil {
			return err
		}
		record.Inventory.Gold += amount
		result = &AdminGrantResult{Target: record.Name, Amount: amount, Total: record.Inventory.Gold}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, nil, err
	}
	notices := []Notice{{To: result.Target, Text: fmt.Sprintf("An admin granted you %d gold!", amount)}}
	return result, notices, nil
}

// AdminGivePotions adds HP potions to the target's inventory.
func (e *Engine) AdminGivePotions(target string, quantity int) (*AdminGrantResult, []Notice, error) {
	if quantity <= 0 {
		return nil, nil, E(KindInvalidArgument, "Quantity must be greater than zero!")
	}
	var result *AdminGrantResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(target)
		if err != nil {
			return err
		}
		record.Inventory.Potions += quantity
		result = &AdminGrantResult{Target: record.Name, Amount: quantity, Total: record.Inventory.Potions}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, nil, err
	}
	notices := []Notice{{To: result.Target, Text: fmt.Sprintf("An admin granted you %d HP Potion(s)!", quantity)}}
	return result, notices, nil
}

// AdminLevelResult reports a forced level change.
type AdminLevelResult struct {
	Target string
	Stats  Stats
}

// AdminSetLevel rewrites the target's progression to the given level.
func (e *Engine) AdminSetLevel(target string, level int) (*AdminLevelResult, []Notice, error) {
	if level < minAdminLevel || level > maxAdminLevel {
		return nil, nil, E(KindInvalidArgument, "Level must be between %d and %d!", minAdminLevel, maxAdminLevel)
	}
	var result *AdminLevelResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(target)
		if err != nil {
			return err
		}
		record.SetLevel(level, e.catalog)
		result = &AdminLevelResult{Target: record.Name, Stats: record.Stats}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, nil, err
	}
	notices := []Notice{{To: result.Target, Text: fmt.Sprintf("An admin set your level to %d!", level)}}
	return result, notices, nil
}

// AdminKillResult reports a force-finished fight.
type AdminKillResult struct {
	Target  string
	Victory *VictoryReport
}

// AdminKillMonster instantly finishes the target's current fight as a
// victory, with the usual rewards.
func (e *Engine) AdminKillMonster(target string) (*AdminKillResult, []Notice, error) {
	var result *AdminKillResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(target)
		if err != nil {
			return err
		}
		if err := requireCombat(record); err != nil {
			return err
		}
		session := record.State.Combat
		session.MonsterHP = 0
		report, err := e.resolveVictory(tx, record, session)
		if err != nil {
			return err
		}
		result = &AdminKillResult{Target: record.Name, Victory: report}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, nil, err
	}
	notices := []Notice{{
		To:   result.Target,
		Text: "An admin struck down the " + result.Victory.MonsterName + " for you!",
	}}
	return result, notices, nil
}

// AdminResetResult reports a cleared player state.
type AdminResetResult struct {
	Target string
	Was    StateType
}

// AdminResetState returns the target to idle, abandoning any fight or
// conversation without rewards.
func (e *Engine) AdminResetState(target string) (*AdminResetResult, []Notice, error) {
	var result *AdminResetResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(target)
		if err != nil {
			return err
		}
		result = &AdminResetResult{Target: record.Name, Was: record.State.Type}
		record.ClearState()
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, nil, err
	}
	notices := []Notice{{To: result.Target, Text: "An admin reset your state. You are idle again."}}
	return result, notices, nil
}

// PlayerSummary is one row of the admin roster listing.
type PlayerSummary struct {
	Name    string
	Level   int
	Health  int
	MaxHP   int
	Gold    int
	MapID   string
	State   StateType
	PartyID string
}

// ListPlayers returns a summary of every registered player, sorted by name.
func (e *Engine) ListPlayers() ([]PlayerSummary, error) {
	var summaries []PlayerSummary
	err := e.store.View(func(tx *Tx) error {
		return tx.EachPlayer(func(record *PlayerRecord) error {
			summaries = append(summaries, PlayerSummary{
				Name:    record.Name,
				Level:   record.Stats.Level,
				Health:  record.Stats.Health,
				MaxHP:   record.Stats.MaxHealth,
				Gold:    record.Inventory.Gold,
				MapID:   record.Stats.CurrentMap,
				State:   record.State.Type,
				PartyID: record.PartyID,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
	})
	return summaries, nil
}
