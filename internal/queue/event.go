// Package queue defines message payloads exchanged over the message broker.
package queue

// NotePublishedEvent is published when a note goes live. It carries enough
// information for downstream consumers to notify or log without querying
// the primary database.
type NotePublishedEvent struct {
	NoteID      uint64 `json:"note_id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	PublishedBy string `json:"published_by"`
	NotifyEmail string `json:"notify_email"` // empty -> consumer only logs
}
