package game

import "time"

// recordVersion is stamped into every player record. Records are fully
// normalized when loaded, so older versions are upgraded in one place
// instead of at each call site.
const recordVersion = 1

const (
	baseHealth = 100
	baseDamage = 10
	defaultMap = "slum"

	hpGainPerLevel     = 10
	damageGainPerLevel = 2
	maxPartyMembers    = 10
	partyBonusPerMember = 0.05
)

// expForLevel is the experience needed to advance past the given level.
func expForLevel(level int) int {
	return 100 + 10*level
}

// StateType tags the player's current activity.
type StateType string

const (
	StateIdle   StateType = "idle"
	StateCombat StateType = "combat"
	StateNPC    StateType = "npc"
)

// CombatSession snapshots the monster a player is fighting. The snapshot is
// taken at encounter time and never re-reads the catalog, so content edits
// cannot corrupt a fight in progress.
type CombatSession struct {
	MonsterName   string `json:"monster_name"`
	MonsterHP     int    `json:"monster_hp"`
	MonsterMaxHP  int    `json:"monster_max_hp"`
	MonsterDamage int    `json:"monster_damage"`
	MonsterEXP    int    `json:"monster_exp"`
	GoldRange     [2]int `json:"gold_range"`
}

// PlayerState is the tagged activity union. Exactly one of Combat and NPC is
// populated, matching Type.
type PlayerState struct {
	Type   StateType      `json:"type"`
	Combat *CombatSession `json:"combat,omitempty"`
	NPC    string         `json:"npc,omitempty"`
}

// Stats holds the core progression numbers.
type Stats struct {
	Health     int    `json:"health"`
	MaxHealth  int    `json:"max_health"`
	Damage     int    `json:"damage"`
	Level      int    `json:"level"`
	EXP        int    `json:"exp"`
	CurrentMap string `json:"current_map"`
}

// Inventory tracks currency, potions, and stackable items. Items holds only
// positive quantities; entries are removed when they reach zero.
type Inventory struct {
	Gold    int            `json:"gold"`
	Potions int            `json:"hp_potion"`
	Items   map[string]int `json:"items"`
}

// Quest is a generated kill contract.
type Quest struct {
	Target     string `json:"target"`
	Required   int    `json:"required"`
	Progress   int    `json:"progress"`
	RewardGold int    `json:"reward_gold"`
	RewardEXP  int    `json:"reward_exp"`
	Map        string `json:"map"`
}

// PartyInvite records a pending invitation. A player holds at most one.
type PartyInvite struct {
	PartyID string `json:"party_id"`
	Inviter string `json:"inviter"`
}

// PlayerRecord is the persistent state of one account. All of it is saved
// and loaded as a unit.
type PlayerRecord struct {
	Version      int               `json:"version"`
	Name         string            `json:"name"`
	PasswordHash string            `json:"password"`
	CreatedAt    time.Time         `json:"created_at"`
	LastLogin    time.Time         `json:"last_login,omitempty"`
	TotalLogins  int               `json:"total_logins,omitempty"`
	Stats        Stats             `json:"stats"`
	Inventory    Inventory         `json:"inventory"`
	Equipment    map[string]string `json:"equipment"`
	State        PlayerState       `json:"state"`
	Quest        *Quest            `json:"quest,omitempty"`
	PendingQuest *Quest            `json:"pending_quest,omitempty"`
	Invite       *PartyInvite      `json:"pending_party_invite,omitempty"`
	PartyID      string            `json:"party_id,omitempty"`
}

// NewPlayerRecord builds a fresh record with starting stats.
func NewPlayerRecord(name, passwordHash string, now time.Time) *PlayerRecord {
	record := &PlayerRecord{
		Version:      recordVersion,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
	}
	record.normalize()
	return record
}

// normalize fills defaults so the rest of the engine never checks for
// missing fields.
func (p *PlayerRecord) normalize() {
	if p.Version == 0 {
		p.Version = recordVersion
	}
	if p.Stats.MaxHealth == 0 {
		p.Stats.MaxHealth = baseHealth
	}
	if p.Stats.Health == 0 {
		p.Stats.Health = p.Stats.MaxHealth
	}
	if p.Stats.Damage == 0 {
		p.Stats.Damage = baseDamage
	}
	if p.Stats.Level == 0 {
		p.Stats.Level = 1
	}
	if p.Stats.CurrentMap == "" {
		p.Stats.CurrentMap = defaultMap
	}
	if p.Inventory.Items == nil {
		p.Inventory.Items = make(map[string]int)
	}
	if p.Equipment == nil {
		p.Equipment = make(map[string]string)
	}
	if p.State.Type == "" {
		p.State.Type = StateIdle
	}
}

// Idle reports whether the player is free to start a new activity.
func (p *PlayerRecord) Idle() bool {
	return p.State.Type == StateIdle
}

// InCombat reports whether the player is mid-fight.
func (p *PlayerRecord) InCombat() bool {
	return p.State.Type == StateCombat && p.State.Combat != nil
}

// AtNPC reports whether the player is talking to the given NPC, or to any
// NPC when id is empty.
func (p *PlayerRecord) AtNPC(id string) bool {
	if p.State.Type != StateNPC {
		return false
	}
	return id == "" || p.State.NPC == id
}

// EnterCombat transitions the player into a fight.
func (p *PlayerRecord) EnterCombat(session *CombatSession) {
	p.State = PlayerState{Type: StateCombat, Combat: session}
}

// EnterNPC transitions the player into an NPC conversation.
func (p *PlayerRecord) EnterNPC(id string) {
	p.State = PlayerState{Type: StateNPC, NPC: id}
}

// ClearState returns the player to idle.
func (p *PlayerRecord) ClearState() {
	p.State = PlayerState{Type: StateIdle}
}

// SetLevel overwrites progression with the derived stats for the given
// level, as if the player had levelled there from scratch. Equipment
// bonuses are reapplied on top.
func (p *PlayerRecord) SetLevel(level int, catalog *Catalog) {
	p.Stats.Level = level
	p.Stats.MaxHealth = baseHealth + (level-1)*hpGainPerLevel + p.equipmentBonus(catalog)
	p.Stats.Health = p.Stats.MaxHealth
	p.Stats.Damage = baseDamage + (level-1)*damageGainPerLevel
	p.Stats.EXP = 0
}

func (p *PlayerRecord) equipmentBonus(catalog *Catalog) int {
	total := 0
	for _, itemID := range p.Equipment {
		if item, ok := catalog.Item(itemID); ok {
			total += item.HP
		}
	}
	return total
}

// PartyRecord is the persistent state of one party.
type PartyRecord struct {
	ID        string    `json:"id"`
	Leader    string    `json:"leader"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether name belongs to the party.
func (p *PartyRecord) HasMember(name string) bool {
	for _, member := range p.Members {
		if member == name {
			return true
		}
	}
	return false
}

// RemoveMember drops name from the roster if present.
func (p *PartyRecord) RemoveMember(name string) {
	for i, member := range p.Members {
		if member == name {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			return
		}
	}
}

// EXPMultiplier is the party bonus applied to combat experience:
// 1 + 0.05 per member, counting the player themselves.
func (p *PartyRecord) EXPMultiplier() float64 {
	if p == nil {
		return 1.0
	}
	return 1.0 + float64(len(p.Members))*partyBonusPerMember
}
