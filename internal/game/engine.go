package game

import "strings"

const defaultAdminAccount = "admin"

// Engine executes game operations against the record store. Persistent
// state lives in the store; trade sessions and shop stock are process
// memory by design and reset on restart.
type Engine struct {
	catalog *Catalog
	store   *Store
	rng     Randomizer
	trades  *tradeTable
	stock   *shopStock
	scripts *scriptEngine
	admin   string
}

// EngineOption customises engine construction.
type EngineOption func(*Engine)

// WithRandomizer substitutes the randomness source. Tests use this to make
// combat and drops deterministic.
func WithRandomizer(rng Randomizer) EngineOption {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithAdminAccount names the account granted administrator commands.
func WithAdminAccount(name string) EngineOption {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			e.admin = trimmed
		}
	}
}

// NewEngine builds an engine over the given content and store.
func NewEngine(catalog *Catalog, store *Store, opts ...EngineOption) *Engine {
	engine := &Engine{
		catalog: catalog,
		store:   store,
		rng:     NewRandomizer(),
		trades:  newTradeTable(),
		scripts: newScriptEngine(),
		admin:   defaultAdminAccount,
	}
	engine.stock = newShopStock(catalog)
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Catalog exposes the immutable world content.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// IsAdmin reports whether name holds administrator privileges.
func (e *Engine) IsAdmin(name string) bool {
	return strings.EqualFold(name, e.admin)
}

// partyFor loads the party the player belongs to, or nil when they have
// none. A dangling party id is treated as no party.
func (e *Engine) partyFor(tx *Tx, record *PlayerRecord) (*PartyRecord, error) {
	if record.PartyID == "" {
		return nil, nil
	}
	party, err := tx.Party(record.PartyID)
	if err != nil {
		if IsKind(err, KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return party, nil
}
