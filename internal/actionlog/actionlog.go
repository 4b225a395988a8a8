// Append-only audit trail of automation actions
// One entry per backend invocation, in invocation order

package actionlog

import "time"

//Entry records a single backend invocation.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
}

//Log is the audit trail for one search invocation. It is owned by exactly one
//invocation and never shared across sessions, so no locking is needed.
type Log struct {
	entries []Entry
}

func New() *Log {
	return &Log{}
}

//Append records one action. Entries stay strictly time ordered because the
//invocation runs on a single logical thread.
func (l *Log) Append(action, details string) {
	l.entries = append(l.entries, Entry{
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
	})
}

//Entries returns a copy of the trail in append order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	return len(l.entries)
}
