package game

import (
	"sync"
	"time"
)

const (
	mailboxHighWater = 150
	mailboxKeep      = 100
)

// Message is one entry of the shared chat feed. Server replies carry a
// TargetUser so clients can hide messages meant for someone else.
type Message struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Msg        string `json:"msg"`
	IsServer   bool   `json:"isServer"`
	IsCommand  bool   `json:"isCommand"`
	TargetUser string `json:"targetUser,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// Mailbox is the in-memory chat feed polled by clients. When it grows past
// the high-water mark only the most recent messages survive.
type Mailbox struct {
	mu       sync.Mutex
	nextID   int64
	messages []Message
}

func NewMailbox() *Mailbox {
	return &Mailbox{nextID: 1}
}

func (m *Mailbox) post(msg Message) Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = m.nextID
	m.nextID++
	msg.Timestamp = time.Now().Unix()
	m.messages = append(m.messages, msg)
	if len(m.messages) > mailboxHighWater {
		m.messages = append([]Message(nil), m.messages[len(m.messages)-mailboxKeep:]...)
	}
	return msg
}

// PostChat publishes a plain chat line from a player.
func (m *Mailbox) PostChat(name, text string) Message {
	return m.post(Message{Name: name, Msg: text})
}

// PostCommand records that a player issued a command. The command text
// itself stays private; the feed only shows that something happened.
func (m *Mailbox) PostCommand(name, text string) Message {
	return m.post(Message{Name: name, Msg: text, IsCommand: true, TargetUser: name})
}

// PostServer publishes a server reply addressed to one player. An empty
// target broadcasts to everyone.
func (m *Mailbox) PostServer(target, text string) Message {
	return m.post(Message{Name: "SERVER", Msg: text, IsServer: true, TargetUser: target})
}

// Snapshot returns all messages newer than since, oldest first.
func (m *Mailbox) Snapshot(since int64) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := len(m.messages)
	for i, msg := range m.messages {
		if msg.ID > since {
			start = i
			break
		}
	}
	out := make([]Message, len(m.messages)-start)
	copy(out, m.messages[start:])
	return out
}

// Len reports how many messages are currently retained.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
