package models

import "time"

// SnapshotVersion guards the on-disk session snapshot format.
const SnapshotVersion = 1

type PersistedSession struct {
	User     User      `json:"user"`
	LastSeen time.Time `json:"last_seen"`
}

// SessionSnapshot is the persistence envelope for logged-in identities.
// Transient state (results, previews, history caches) is never persisted.
type SessionSnapshot struct {
	Version  int                          `json:"version"`
	Sessions map[string]*PersistedSession `json:"sessions"`
}
