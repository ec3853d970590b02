package game

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultCatalogPath is where the server looks for world content unless
// configured otherwise.
const DefaultCatalogPath = "data/catalog.json"

// ItemType distinguishes how an item participates in the economy.
type ItemType string

const (
	ItemEquipment  ItemType = "equipment"
	ItemConsumable ItemType = "consumable"
	ItemCurrency   ItemType = "currency"
)

// Equipment slots. Every equipment item occupies exactly one.
const (
	SlotHelmet = "helmet"
	SlotArmor  = "armor"
	SlotBoots  = "boots"
)

// EquipmentSlots lists the slots in display order.
func EquipmentSlots() []string {
	return []string{SlotHelmet, SlotArmor, SlotBoots}
}

// Item describes a catalog item. HP and Slot are only meaningful for
// equipment.
type Item struct {
	ID   string   `json:"-"`
	Name string   `json:"name"`
	Type ItemType `json:"type"`
	HP   int      `json:"hp,omitempty"`
	Slot string   `json:"slot,omitempty"`
}

// MonsterTemplate is the immutable blueprint an encounter is stamped from.
type MonsterTemplate struct {
	Name      string `json:"name"`
	Health    int    `json:"health"`
	Damage    int    `json:"damage"`
	EXP       int    `json:"exp"`
	GoldRange [2]int `json:"gold_range"`
}

// MapInfo describes a hunting ground and the monsters that spawn there.
type MapInfo struct {
	ID          string            `json:"-"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	LevelRange  [2]int            `json:"level_range"`
	Monsters    []MonsterTemplate `json:"monsters"`
}

// ShopEntry prices one item in an NPC shop. Stock -1 means unlimited.
type ShopEntry struct {
	Price int `json:"price"`
	Stock int `json:"stock"`
}

// NPCType routes the interaction that opens when a player approaches.
type NPCType string

const (
	NPCQuest NPCType = "quest"
	NPCShop  NPCType = "shop"
)

// NPC describes a stationary interactable character.
type NPC struct {
	ID          string               `json:"-"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Type        NPCType              `json:"type"`
	Greeting    string               `json:"greeting"`
	Maps        []string             `json:"available_maps"`
	Inventory   map[string]ShopEntry `json:"inventory,omitempty"`
	Script      string               `json:"script,omitempty"`
}

// QuestConfig tunes generated kill quests.
type QuestConfig struct {
	MinKills    int `json:"min_kills"`
	MaxKills    int `json:"max_kills"`
	GoldPerKill int `json:"gold_per_kill"`
	EXPPerKill  int `json:"exp_per_kill"`
}

// Catalog is the immutable world content: maps, items, NPCs, and quest
// tuning. It is loaded once at startup and never mutated afterwards.
type Catalog struct {
	Maps  map[string]*MapInfo
	Items map[string]*Item
	NPCs  map[string]*NPC
	Quest QuestConfig
}

type catalogFile struct {
	Maps  map[string]*MapInfo `json:"maps"`
	Items map[string]*Item    `json:"items"`
	NPCs  map[string]*NPC     `json:"npcs"`
	Quest QuestConfig         `json:"quest"`
}

// LoadCatalog reads and validates world content from a JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}
	catalog := &Catalog{
		Maps:  file.Maps,
		Items: file.Items,
		NPCs:  file.NPCs,
		Quest: file.Quest,
	}
	if err := catalog.normalize(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *Catalog) normalize() error {
	if c.Maps == nil {
		c.Maps = make(map[string]*MapInfo)
	}
	if c.Items == nil {
		c.Items = make(map[string]*Item)
	}
	if c.NPCs == nil {
		c.NPCs = make(map[string]*NPC)
	}
	for id, info := range c.Maps {
		if info == nil {
			return fmt.Errorf("map %q has no body", id)
		}
		info.ID = id
		if strings.TrimSpace(info.Name) == "" {
			info.Name = id
		}
		for i, monster := range info.Monsters {
			if strings.TrimSpace(monster.Name) == "" {
				return fmt.Errorf("map %q monster %d has no name", id, i)
			}
			if monster.Health <= 0 {
				return fmt.Errorf("map %q monster %q has no health", id, monster.Name)
			}
			if monster.GoldRange[1] < monster.GoldRange[0] {
				return fmt.Errorf("map %q monster %q has inverted gold range", id, monster.Name)
			}
		}
	}
	for id, item := range c.Items {
		if item == nil {
			return fmt.Errorf("item %q has no body", id)
		}
		item.ID = id
		if strings.TrimSpace(item.Name) == "" {
			item.Name = id
		}
		switch item.Type {
		case ItemEquipment:
			switch item.Slot {
			case SlotHelmet, SlotArmor, SlotBoots:
			default:
				return fmt.Errorf("item %q has unknown slot %q", id, item.Slot)
			}
		case ItemConsumable, ItemCurrency:
		default:
			return fmt.Errorf("item %q has unknown type %q", id, item.Type)
		}
	}
	for id, npc := range c.NPCs {
		if npc == nil {
			return fmt.Errorf("npc %q has no body", id)
		}
		npc.ID = id
		if strings.TrimSpace(npc.Name) == "" {
			npc.Name = id
		}
		switch npc.Type {
		case NPCQuest, NPCShop:
		default:
			return fmt.Errorf("npc %q has unknown type %q", id, npc.Type)
		}
		for itemID := range npc.Inventory {
			if _, ok := c.Items[itemID]; !ok {
				return fmt.Errorf("npc %q sells unknown item %q", id, itemID)
			}
		}
	}
	if c.Quest.MinKills <= 0 {
		c.Quest.MinKills = 2
	}
	if c.Quest.MaxKills < c.Quest.MinKills {
		c.Quest.MaxKills = c.Quest.MinKills
	}
	if c.Quest.GoldPerKill <= 0 {
		c.Quest.GoldPerKill = 10
	}
	if c.Quest.EXPPerKill <= 0 {
		c.Quest.EXPPerKill = 5
	}
	return nil
}

// Map returns the map with the given id.
func (c *Catalog) Map(id string) (*MapInfo, bool) {
	info, ok := c.Maps[id]
	return info, ok
}

// Item returns the item with the given id.
func (c *Catalog) Item(id string) (*Item, bool) {
	item, ok := c.Items[id]
	return item, ok
}

// NPC returns the NPC with the given id.
func (c *Catalog) NPC(id string) (*NPC, bool) {
	npc, ok := c.NPCs[id]
	return npc, ok
}

// MapIDs returns all map ids in stable order.
func (c *Catalog) MapIDs() []string {
	ids := make([]string, 0, len(c.Maps))
	for id := range c.Maps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EquipmentIDs returns every equipment item id in stable order. Equipment
// drops draw uniformly from this full list regardless of where the kill
// happened.
func (c *Catalog) EquipmentIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for id, item := range c.Items {
		if item.Type == ItemEquipment {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// NPCsInMap returns the NPCs reachable from the given map in stable order.
func (c *Catalog) NPCsInMap(mapID string) []*NPC {
	var found []*NPC
	for _, npc := range c.NPCs {
		for _, m := range npc.Maps {
			if m == mapID {
				found = append(found, npc)
				break
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

// DefaultCatalog builds the built-in world content. It backs the server when
// no catalog file is present and gives tests a realistic fixture.
func DefaultCatalog() *Catalog {
	catalog := &Catalog{
		Maps: map[string]*MapInfo{
			"slum": {
				Name:        "Slum City",
				Description: "Crumbling tenements on the edge of the old quarter.",
				LevelRange:  [2]int{1, 5},
				Monsters: []MonsterTemplate{
					{Name: "Sewer Rat", Health: 30, Damage: 4, EXP: 12, GoldRange: [2]int{1, 8}},
					{Name: "Street Thug", Health: 50, Damage: 7, EXP: 20, GoldRange: [2]int{5, 15}},
					{Name: "Stray Hound", Health: 40, Damage: 6, EXP: 16, GoldRange: [2]int{2, 10}},
				},
			},
			"forest": {
				Name:        "Ember Forest",
				Description: "Scorched pines where the ash never settles.",
				LevelRange:  [2]int{4, 10},
				Monsters: []MonsterTemplate{
					{Name: "Ash Wolf", Health: 80, Damage: 12, EXP: 35, GoldRange: [2]int{10, 25}},
					{Name: "Cinder Boar", Health: 110, Damage: 15, EXP: 50, GoldRange: [2]int{15, 35}},
					{Name: "Hollow Treant", Health: 160, Damage: 18, EXP: 75, GoldRange: [2]int{20, 50}},
				},
			},
		},
		Items: map[string]*Item{
			"copper_helmet": {Name: "Copper Helmet", Type: ItemEquipment, HP: 5, Slot: SlotHelmet},
			"iron_helmet":   {Name: "Iron Helmet", Type: ItemEquipment, HP: 10, Slot: SlotHelmet},
			"copper_armor":  {Name: "Copper Armor", Type: ItemEquipment, HP: 5, Slot: SlotArmor},
			"iron_armor":    {Name: "Iron Armor", Type: ItemEquipment, HP: 10, Slot: SlotArmor},
			"copper_boots":  {Name: "Copper Boots", Type: ItemEquipment, HP: 5, Slot: SlotBoots},
			"iron_boots":    {Name: "Iron Boots", Type: ItemEquipment, HP: 10, Slot: SlotBoots},
			"hp_potion":     {Name: "HP Potion", Type: ItemConsumable},
			"gold":          {Name: "Gold", Type: ItemCurrency},
		},
		NPCs: map[string]*NPC{
			"quest": {
				Name:        "Old Man Harlan",
				Description: "Hands out monster-hunting contracts.",
				Type:        NPCQuest,
				Greeting:    `"Welcome, warrior! I have work that needs doing..."`,
				Maps:        []string{"slum"},
			},
			"shop": {
				Name:        "General Store",
				Description: "Buys and sells gear and supplies.",
				Type:        NPCShop,
				Greeting:    `"Welcome to the store! Have a look at my wares..."`,
				Maps:        []string{"slum"},
				Inventory: map[string]ShopEntry{
					"hp_potion":     {Price: 20, Stock: -1},
					"copper_helmet": {Price: 50, Stock: -1},
					"copper_armor":  {Price: 50, Stock: -1},
					"copper_boots":  {Price: 50, Stock: -1},
				},
			},
		},
		Quest: QuestConfig{MinKills: 2, MaxKills: 15, GoldPerKill: 10, EXPPerKill: 5},
	}
	if err := catalog.normalize(); err != nil {
		panic(err)
	}
	return catalog
}
