package game

// MapView summarizes a hunting ground for listings.
type MapView struct {
	ID           string
	Name         string
	Description  string
	LevelRange   [2]int
	MonsterKinds int
}

func mapViewOf(info *MapInfo) MapView {
	return MapView{
		ID:           info.ID,
		Name:         info.Name,
		Description:  info.Description,
		LevelRange:   info.LevelRange,
		MonsterKinds: len(info.Monsters),
	}
}

// ListMaps returns every map in stable order.
func (e *Engine) ListMaps() []MapView {
	views := make([]MapView, 0, len(e.catalog.Maps))
	for _, id := range e.catalog.MapIDs() {
		views = append(views, mapViewOf(e.catalog.Maps[id]))
	}
	return views
}

// CurrentMap returns the map the player is standing in.
func (e *Engine) CurrentMap(name string) (*MapView, error) {
	var view *MapView
	err := e.store.View(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		info, ok := e.catalog.Map(record.Stats.CurrentMap)
		if !ok {
			return E(KindNotFound, "Your current location is unknown.")
		}
		v := mapViewOf(info)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// TravelResult reports a completed move between maps.
type TravelResult struct {
	From MapView
	To   MapView
}

// Travel moves an idle player to another map.
func (e *Engine) Travel(name, mapID string) (*TravelResult, error) {
	info, ok := e.catalog.Map(mapID)
	if !ok {
		return nil, E(KindNotFound, "There is no place called '%s'. Use /maps to see where you can go.", mapID)
	}
	var result *TravelResult
	err := e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(name)
		if err != nil {
			return err
		}
		if err := e.requireIdle(record); err != nil {
			return err
		}
		if record.Stats.CurrentMap == mapID {
			return E(KindInvalidState, "You are already in %s!", info.Name)
		}
		result = &TravelResult{To: mapViewOf(info)}
		if from, ok := e.catalog.Map(record.Stats.CurrentMap); ok {
			result.From = mapViewOf(from)
		} else {
			result.From = MapView{ID: record.Stats.CurrentMap, Name: record.Stats.CurrentMap}
		}
		record.Stats.CurrentMap = mapID
		return tx.SavePlayer(record)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
