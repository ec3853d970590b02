package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"EmberVale/commands"
	"EmberVale/internal/game"
)

// Server is the HTTP polling transport. Clients post chat and commands to
// /send and pull the shared feed from /poll; server replies to commands are
// feed messages targeted at the issuing player.
type Server struct {
	engine  *game.Engine
	mailbox *game.Mailbox
	shield  *game.Shield
	monitor *game.Monitor
	mux     *http.ServeMux
}

func NewServer(engine *game.Engine) *Server {
	s := &Server{
		engine:  engine,
		mailbox: game.NewMailbox(),
		shield:  game.NewShield(),
		monitor: game.NewMonitor(),
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/poll", s.handlePoll)
	s.mux.HandleFunc("/send", s.handleSend)
	s.mux.HandleFunc("/register", s.handleRegister)
	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/logout", s.handleLogout)
	s.mux.HandleFunc("/stats", s.handleStats)
	return s
}

// Monitor exposes the collector for the periodic report.
func (s *Server) Monitor() *game.Monitor {
	return s.monitor
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	endpoint := strings.TrimPrefix(r.URL.Path, "/")
	if allowed, reason := s.shield.Check(clientAddr(r), endpoint); !allowed {
		s.monitor.Error()
		http.Error(w, reason, http.StatusTooManyRequests)
		return
	}

	started := time.Now()
	s.mux.ServeHTTP(w, r)
	s.monitor.Request(time.Since(started))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type okReply struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.monitor.Error()
	writeJSON(w, status, okReply{OK: false, Msg: msg})
}

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	since, _ := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
	if user := r.URL.Query().Get("user"); user != "" {
		s.monitor.Touch(user)
	}
	messages := s.mailbox.Snapshot(since)
	if messages == nil {
		messages = []game.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

type sendRequest struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.fail(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "bad request body")
		return
	}
	name, err := game.NormalizeUsername(req.Name)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.engine.PlayerExists(name) {
		s.fail(w, http.StatusUnauthorized, "Unknown player. Register first.")
		return
	}
	text := game.SanitizeMessage(req.Msg)
	if strings.TrimSpace(text) == "" {
		s.fail(w, http.StatusBadRequest, "empty message")
		return
	}
	s.monitor.Touch(name)
	s.monitor.Message()

	if strings.HasPrefix(text, "/") {
		s.monitor.Command()
		s.mailbox.PostCommand(name, text)
		reply, err := commands.Dispatch(s.engine, name, text)
		if err != nil {
			fmt.Printf("command %q from %s failed: %v\n", text, name, err)
			s.mailbox.PostServer(name, "Something went wrong. Try again.")
			s.fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		if reply.Text != "" {
			s.mailbox.PostServer(name, reply.Text)
		}
		for _, notice := range reply.Notices {
			s.mailbox.PostServer(notice.To, notice.Text)
		}
	} else {
		s.mailbox.PostChat(name, text)
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "OK")
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.fail(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "bad request body")
		return
	}
	if err := s.engine.Register(req.Username, req.Password); err != nil {
		if _, classified := game.KindOf(err); classified {
			s.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		fmt.Printf("register failed: %v\n", err)
		s.fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, okReply{OK: true, Msg: "Welcome to EmberVale! You can log in now."})
}

type loginReply struct {
	OK    bool        `json:"ok"`
	Msg   string      `json:"msg,omitempty"`
	Name  string      `json:"name,omitempty"`
	Stats *game.Stats `json:"stats,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.fail(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "bad request body")
		return
	}
	result, err := s.engine.Login(req.Username, req.Password)
	if err != nil {
		if _, classified := game.KindOf(err); classified {
			s.fail(w, http.StatusUnauthorized, err.Error())
			return
		}
		fmt.Printf("login failed: %v\n", err)
		s.fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.monitor.Touch(result.Name)
	writeJSON(w, http.StatusOK, loginReply{OK: true, Name: result.Name, Stats: &result.Stats})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.fail(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	writeJSON(w, http.StatusOK, okReply{OK: true, Msg: "Goodbye."})
}

type statsReply struct {
	Monitor game.MonitorSnapshot `json:"monitor"`
	Shield  game.ShieldStats     `json:"shield"`
	Mailbox int                  `json:"mailbox_len"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	writeJSON(w, http.StatusOK, statsReply{
		Monitor: s.monitor.Snapshot(),
		Shield:  s.shield.Stats(),
		Mailbox: s.mailbox.Len(),
	})
}
