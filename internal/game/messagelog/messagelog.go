// Package messagelog records the in-game messages shown to the player.
package messagelog

import (
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/color"
)

// Message is one log line. Count > 1 when identical messages were stacked.
type Message struct {
	Text  string      `json:"text"`
	Color color.Color `json:"color"`
	Count int         `json:"count"`
}

// FullText renders the message with its stack count, e.g. "Orc attacks (x3)".
func (m Message) FullText() string {
	if m.Count > 1 {
		return fmt.Sprintf("%s (x%d)", m.Text, m.Count)
	}
	return m.Text
}

// Log is an append-only message history.
type Log struct {
	messages []Message
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Add appends text. When stack is true and the previous message has the same
// text, its count is incremented instead.
func (l *Log) Add(text string, c color.Color, stack bool) {
	if n := len(l.messages); stack && n > 0 && l.messages[n-1].Text == text {
		l.messages[n-1].Count++
		return
	}
	l.messages = append(l.messages, Message{Text: text, Color: c, Count: 1})
}

// Messages returns a copy of the history, oldest first.
func (l *Log) Messages() []Message {
	return append([]Message(nil), l.messages...)
}

// Last returns up to n of the most recent messages, oldest first.
func (l *Log) Last(n int) []Message {
	if n >= len(l.messages) {
		return l.Messages()
	}
	return append([]Message(nil), l.messages[len(l.messages)-n:]...)
}

// Len returns the number of stored messages.
func (l *Log) Len() int { return len(l.messages) }

// Restore replaces the history, used when loading a save.
func (l *Log) Restore(msgs []Message) {
	l.messages = append([]Message(nil), msgs...)
}
