// Package session is the persistence seam for conversation metadata. The
// orchestration core treats engine session ids as opaque strings; this
// package stores them keyed by a caller-chosen conversation key so a later
// request can restore continuity via agent.SetSessionID.
//
// Store is the interface the surrounding application implements against its
// database of choice; InMemoryStore is the volatile default used by tests
// and ephemeral servers. The core itself never reads or writes a database.
package session
