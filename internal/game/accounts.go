package game

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Register creates a new account with starting stats. The whole record,
// password hash included, is written in one transaction.
func (e *Engine) Register(name, password string) error {
	normalized, err := NormalizeUsername(name)
	if err != nil {
		return err
	}
	if password == "" {
		return E(KindInvalidArgument, "Password must not be empty.")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return e.store.Update(func(tx *Tx) error {
		if tx.PlayerExists(normalized) {
			return E(KindConflict, "The name '%s' is already taken.", normalized)
		}
		record := NewPlayerRecord(normalized, string(hashed), time.Now())
		return tx.SavePlayer(record)
	})
}

// LoginResult carries the stats snapshot returned on a successful login.
type LoginResult struct {
	Name  string
	Stats Stats
}

// Login validates credentials and records the visit.
func (e *Engine) Login(name, password string) (*LoginResult, error) {
	normalized, err := NormalizeUsername(name)
	if err != nil {
		return nil, err
	}
	var result *LoginResult
	err = e.store.Update(func(tx *Tx) error {
		record, err := tx.Player(normalized)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
			return E(KindInvalidArgument, "Wrong password.")
		}
		record.LastLogin = time.Now().UTC()
		record.TotalLogins++
		if err := tx.SavePlayer(record); err != nil {
			return err
		}
		result = &LoginResult{Name: record.Name, Stats: record.Stats}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PlayerExists reports whether an account with this name is registered.
func (e *Engine) PlayerExists(name string) bool {
	exists := false
	_ = e.store.View(func(tx *Tx) error {
		exists = tx.PlayerExists(name)
		return nil
	})
	return exists
}
