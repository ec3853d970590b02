package game

import "sort"

// Notice is an out-of-band message produced by an operation for a player
// other than the one who issued the command. The transport delivers notices
// through the shared message feed.
type Notice struct {
	To   string
	Text string
}

// Drop is one item awarded by a victory.
type Drop struct {
	ItemID   string
	Name     string
	Quantity int
}

// QuestUpdate reports quest progress made by a kill.
type QuestUpdate struct {
	Target     string
	Progress   int
	Required   int
	Completed  bool
	RewardGold int
	RewardEXP  int
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
