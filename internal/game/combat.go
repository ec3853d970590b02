package game

const (
	playerVarianceMin = -2
	playerVarianceMax = 5
	monsterVarianceMin = -2
	monsterVarianceMax = 3

	defeatHealthFraction = 0.5

	goldDropChance      = 0.5
	potionDropChance    = 0.5
	equipmentDropChance = 0.2
)

// MonsterView is a read-only snapshot of the monster in an encounter.
type MonsterView struct {
	Name   string
	HP     int
	MaxHP  int
	Damage int
	EXP    int
}

func monsterView(session *CombatSession) MonsterView {
	return MonsterView{
		Name:   session.MonsterName,
		HP:     session.MonsterHP,
		MaxHP:  session.MonsterMaxHP,
		Damage: session.MonsterDamage,
		EXP:    session.MonsterEXP,
	}
}

// FindResult reports the encounter a /find produced or resumed.
type FindResult struct {
	Resumed     bool
	MapName     string
	Monster     MonsterView
	PlayerHP    int
	PlayerMaxHP int
}

// Find starts a new encounter on the player's current map. If a fight is
// already in progress it is reported again instead of being replaced.
func (e *Engine) Find(name string) (*FindResult, error) {
	var result *FindResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if record.InCombat() {
			result = &FindResult{
				Resumed:     true,
				Monster:     monsterView(record.State.Combat),
				PlayerHP:    record.Stats.Health,
				PlayerMaxHP: record.Stats.MaxHealth,
			}
			return nil
		}
		if err := e.requireIdle(record); err != nil {
			return err
		}
		info, ok := e.catalog.Map(record.Stats.CurrentMap)
		if !ok || len(info.Monsters) == 0 {
			return E(KindNotFound, "There are no monsters to hunt here!")
		}
		template := info.Monsters[e.rng.IntN(len(info.Monsters))]
		session := &CombatSession{
			MonsterName:   template.Name,
			MonsterHP:     template.Health,
			MonsterMaxHP:  template.Health,
			MonsterDamage: template.Damage,
			MonsterEXP:    template.EXP,
			GoldRange:     template.GoldRange,
		}
		record.EnterCombat(session)
		if err := tx.SavePlayer(record); err != nil {
			return err
		}
		result = &FindResult{
			MapName:     info.Name,
			Monster:     monsterView(session),
			PlayerHP:    record.Stats.Health,
			PlayerMaxHP: record.Stats.MaxHealth,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Outcome classifies how an attack round ended.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// VictoryReport details everything a won fight awarded.
type VictoryReport struct {
	MonsterName  string
	BaseEXP      int
	TotalEXP     int
	Multiplier   float64
	Drops        []Drop
	Quest        *QuestUpdate
	LeveledUp    bool
	Stats        Stats
	NextLevelEXP int
}

// AttackResult reports one round: the player's strike, the counterattack
// when the monster survives, and the final outcome.
type AttackResult struct {
	PlayerDamage  int
	MonsterDamage int
	Outcome       Outcome
	Monster       MonsterView
	Victory       *VictoryReport
	Stats         Stats
	NextLevelEXP  int
}

// Attack resolves one combat round. The player always strikes first; the
// monster only counterattacks if it survives.
func (e *Engine) Attack(name string) (*AttackResult, error) {
	var result *AttackResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := requireCombat(record); err != nil {
			return err
		}
		session := record.State.Combat

		playerDamage := record.Stats.Damage + e.rng.Between(playerVarianceMin, playerVarianceMax)
		session.MonsterHP -= playerDamage

		if session.MonsterHP <= 0 {
			report, err := e.resolveVictory(tx, record, session)
			if err != nil {
				return err
			}
			result = &AttackResult{
				PlayerDamage: playerDamage,
				Outcome:      OutcomeVictory,
				Monster:      monsterView(session),
				Victory:      report,
				Stats:        record.Stats,
				NextLevelEXP: expForLevel(record.Stats.Level),
			}
			return tx.SavePlayer(record)
		}

		monsterDamage := session.MonsterDamage + e.rng.Between(monsterVarianceMin, monsterVarianceMax)
		record.Stats.Health -= monsterDamage

		outcome := OutcomeOngoing
		if record.Stats.Health <= 0 {
			record.Stats.Health = int(float64(record.Stats.MaxHealth) * defeatHealthFraction)
			record.ClearState()
			outcome = OutcomeDefeat
		}

		result = &AttackResult{
			PlayerDamage:  playerDamage,
			MonsterDamage: monsterDamage,
			Outcome:       outcome,
			Monster:       monsterView(session),
			Stats:         record.Stats,
			NextLevelEXP:  expForLevel(record.Stats.Level),
		}
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveVictory applies rewards for a dead monster: party-multiplied
// experience, up to three independent drops, quest progress, and a single
// level-up check. The caller saves the record.
func (e *Engine) resolveVictory(tx *Tx, record *PlayerRecord, session *CombatSession) (*VictoryReport, error) {
	party, err := e.partyFor(tx, record)
	if err != nil {
		return nil, err
	}
	multiplier := party.EXPMultiplier()
	totalEXP := int(float64(session.MonsterEXP) * multiplier)
	record.Stats.EXP += totalEXP

	report := &VictoryReport{
		MonsterName: session.MonsterName,
		BaseEXP:     session.MonsterEXP,
		TotalEXP:    totalEXP,
		Multiplier:  multiplier,
	}

	if e.rng.Chance(goldDropChance) {
		amount := e.rng.Between(session.GoldRange[0], session.GoldRange[1])
		record.Inventory.Gold += amount
		report.Drops = append(report.Drops, Drop{ItemID: "gold", Name: "Gold", Quantity: amount})
	}
	if e.rng.Chance(potionDropChance) {
		record.Inventory.Potions++
		report.Drops = append(report.Drops, Drop{ItemID: "hp_potion", Name: "HP Potion", Quantity: 1})
	}
	if e.rng.Chance(equipmentDropChance) {
		if ids := e.catalog.EquipmentIDs(); len(ids) > 0 {
			itemID := ids[e.rng.IntN(len(ids))]
			record.Inventory.Items[itemID]++
			itemName := itemID
			if item, ok := e.catalog.Item(itemID); ok {
				itemName = item.Name
			}
			report.Drops = append(report.Drops, Drop{ItemID: itemID, Name: itemName, Quantity: 1})
		}
	}

	report.Quest = applyQuestKill(record, session.MonsterName)

	// One level check per victory, even if the quest reward pushed the
	// total past two thresholds.
	if required := expForLevel(record.Stats.Level); record.Stats.EXP >= required {
		record.Stats.EXP -= required
		record.Stats.Level++
		record.Stats.MaxHealth += hpGainPerLevel
		record.Stats.Health = record.Stats.MaxHealth
		record.Stats.Damage += damageGainPerLevel
		report.LeveledUp = true
	}

	record.ClearState()
	report.Stats = record.Stats
	report.NextLevelEXP = expForLevel(record.Stats.Level)
	return report, nil
}

// RunResult reports a successful flight.
type RunResult struct {
	MonsterName string
}

// Run abandons the current fight. Fleeing always succeeds and forfeits
// nothing but the encounter itself.
func (e *Engine) Run(name string) (*RunResult, error) {
	var result *RunResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := requireCombat(record); err != nil {
			return err
		}
		result = &RunResult{MonsterName: record.State.Combat.MonsterName}
		record.ClearState()
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
