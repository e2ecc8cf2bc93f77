package models

import "time"

// ChatMessage is a persisted direct message. Timestamp is server-assigned at
// insert; IsRead flips when the receiver loads the conversation.
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	Sender    string    `json:"sender" db:"sender"`
	Receiver  string    `json:"receiver" db:"receiver"`
	Message   string    `json:"message" db:"message"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	IsRead    bool      `json:"is_read" db:"is_read"`
}
