package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"EmberVale/internal/game"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := game.OpenStore(filepath.Join(t.TempDir(), "players.db"))
	if err != nil {
		t.Fatalf("OpenStore returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	engine := game.NewEngine(game.DefaultCatalog(), store)
	server := NewServer(engine)
	// Exercise the full handler chain without tripping rate limits.
	server.shield.Whitelist("192.0.2.1")
	return server
}

func postJSON(t *testing.T, server *Server, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encoding payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginFlow(t *testing.T) {
	server := newTestServer(t)

	rec := postJSON(t, server, "/register", credentialsRequest{Username: "hero", Password: "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	var registered okReply
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil || !registered.OK {
		t.Fatalf("register reply = %s (%v)", rec.Body.String(), err)
	}

	rec = postJSON(t, server, "/register", credentialsRequest{Username: "hero", Password: "other"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d", rec.Code)
	}

	rec = postJSON(t, server, "/login", credentialsRequest{Username: "hero", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}

	rec = postJSON(t, server, "/login", credentialsRequest{Username: "hero", Password: "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var logged loginReply
	if err := json.Unmarshal(rec.Body.Bytes(), &logged); err != nil {
		t.Fatalf("decoding login reply: %v", err)
	}
	if !logged.OK || logged.Stats == nil || logged.Stats.Health != 100 {
		t.Fatalf("login reply = %s", rec.Body.String())
	}
}

func TestSendAndPoll(t *testing.T) {
	server := newTestServer(t)
	postJSON(t, server, "/register", credentialsRequest{Username: "hero", Password: "secret"})

	rec := postJSON(t, server, "/send", sendRequest{Name: "hero", Msg: "hello world"})
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("send = %d %q", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, server, "/send", sendRequest{Name: "ghost", Msg: "boo"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unregistered send status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/poll?since=0&user=hero", nil)
	poll := httptest.NewRecorder()
	server.ServeHTTP(poll, req)
	if poll.Code != http.StatusOK {
		t.Fatalf("poll status = %d", poll.Code)
	}
	var messages []game.Message
	if err := json.Unmarshal(poll.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decoding poll reply: %v", err)
	}
	if len(messages) != 1 || messages[0].Msg != "hello world" || messages[0].IsServer {
		t.Fatalf("unexpected feed: %+v", messages)
	}

	// Incremental poll sees nothing new.
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/poll?since=%d", messages[0].ID), nil)
	poll = httptest.NewRecorder()
	server.ServeHTTP(poll, req)
	var rest []game.Message
	if err := json.Unmarshal(poll.Body.Bytes(), &rest); err != nil || len(rest) != 0 {
		t.Fatalf("incremental poll = %s (%v)", poll.Body.String(), err)
	}
}

func TestSendDispatchesCommands(t *testing.T) {
	server := newTestServer(t)
	postJSON(t, server, "/register", credentialsRequest{Username: "hero", Password: "secret"})

	rec := postJSON(t, server, "/send", sendRequest{Name: "hero", Msg: "/stats"})
	if rec.Code != http.StatusOK {
		t.Fatalf("command send status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/poll?since=0", nil)
	poll := httptest.NewRecorder()
	server.ServeHTTP(poll, req)
	var messages []game.Message
	if err := json.Unmarshal(poll.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decoding poll reply: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected command marker plus server reply, got %+v", messages)
	}
	if !messages[0].IsCommand || messages[0].TargetUser != "hero" {
		t.Fatalf("command marker malformed: %+v", messages[0])
	}
	if !messages[1].IsServer || messages[1].TargetUser != "hero" {
		t.Fatalf("server reply malformed: %+v", messages[1])
	}
	if !strings.Contains(messages[1].Msg, "Level 1") {
		t.Fatalf("stats reply = %q", messages[1].Msg)
	}
}

func TestStatsEndpoint(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var reply statsReply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decoding stats reply: %v", err)
	}
	if reply.Shield.Allowed == 0 {
		t.Fatalf("shield counters missing: %+v", reply)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("CORS header missing")
	}
}
