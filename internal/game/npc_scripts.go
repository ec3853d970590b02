package game

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// NPC catalog entries may carry a Go snippet declaring an OnGreet hook:
//
//	func OnGreet(ctx map[string]any) {
//		say := ctx["say"].(func(string))
//		say("Back again, " + ctx["player"].(string) + "?")
//	}
//
// The hook runs when a player approaches the NPC and may add greeting lines
// beyond the static one. Scripts are compiled once and cached by content
// hash.

type scriptEntry struct {
	script *compiledScript
	err    error
}

type compiledScript struct {
	onGreet func(map[string]any)
}

type scriptEngine struct {
	mu      sync.RWMutex
	scripts map[string]*scriptEntry
}

func newScriptEngine() *scriptEngine {
	return &scriptEngine{scripts: make(map[string]*scriptEntry)}
}

// greetingLines collects the NPC's greeting: the static line from the
// catalog plus anything the OnGreet hook says. Script failures are
// swallowed so broken content never blocks the conversation.
func (e *Engine) greetingLines(npc *NPC, playerName string) []string {
	var lines []string
	if strings.TrimSpace(npc.Greeting) != "" {
		lines = append(lines, npc.Greeting)
	}
	script, err := e.scripts.scriptFor(npc.Script)
	if err != nil {
		fmt.Printf("npc %s script failed to load: %v\n", npc.ID, err)
		return lines
	}
	if script == nil || script.onGreet == nil {
		return lines
	}
	payload := map[string]any{
		"npc":    npc.Name,
		"player": playerName,
		"say": func(text string) {
			if cleaned := strings.TrimSpace(text); cleaned != "" {
				lines = append(lines, cleaned)
			}
		},
	}
	invokeScript(npc.ID, "OnGreet", func() {
		script.onGreet(payload)
	})
	return lines
}

func invokeScript(name, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("script %s %s panic: %v\n", name, hook, r)
		}
	}()
	fn()
}

func (e *scriptEngine) scriptFor(source string) (*compiledScript, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, nil
	}
	key := hashScript(trimmed)
	e.mu.RLock()
	entry, ok := e.scripts[key]
	e.mu.RUnlock()
	if ok {
		return entry.script, entry.err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if entry, ok := e.scripts[key]; ok {
		return entry.script, entry.err
	}
	script, err := compileScript(trimmed)
	e.scripts[key] = &scriptEntry{script: script, err: err}
	return script, err
}

func compileScript(source string) (*compiledScript, error) {
	interpreter := interp.New(interp.Options{})
	interpreter.Use(stdlib.Symbols)
	if _, err := interpreter.Eval(source); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	compiled := &compiledScript{}
	if value, err := interpreter.Eval("OnGreet"); err == nil {
		fn, ok := value.Interface().(func(map[string]any))
		if !ok {
			return nil, fmt.Errorf("OnGreet has unexpected type %T", value.Interface())
		}
		compiled.onGreet = fn
	} else if !isUndefinedSymbol(err) {
		return nil, fmt.Errorf("OnGreet: %w", err)
	}
	return compiled, nil
}

func hashScript(src string) string {
	sum := sha1.Sum([]byte(src))
	return hex.EncodeToString(sum[:])
}

func isUndefinedSymbol(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "undefined") || strings.Contains(msg, "not declared")
}
