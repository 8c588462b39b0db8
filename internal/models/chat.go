// Package models defines data structures and domain types.
package models

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	// RoleUser marks messages typed by the operator.
	RoleUser ChatRole = "user"
	// RoleAssistant marks replies, including synthesized error replies.
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the in-memory conversation log.
type ChatMessage struct {
	Timestamp time.Time
	Role      ChatRole
	Content   string
}

// ChatRequest is the body posted to the assistant endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the assistant endpoint response.
type ChatReply struct {
	Response string `json:"response"`
}
