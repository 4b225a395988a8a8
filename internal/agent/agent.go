// Orchestrate one search invocation end to end
// The action log and record accumulator belong to the invocation, not the process

package agent

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"go-jobfinder-automation/internal/actionlog"
	"go-jobfinder-automation/internal/backend"
	"go-jobfinder-automation/internal/dedup"
	"go-jobfinder-automation/internal/export"
	"go-jobfinder-automation/internal/gate"
	"go-jobfinder-automation/internal/search"
	"go-jobfinder-automation/internal/task"
)

//Envelope is the result of one search invocation. Records always hold the
//deduplicated set, never the raw accumulator; on failure PartialRecords holds
//whatever was collected before the error, deduplicated the same way.
type Envelope struct {
	Success        bool              `json:"success"`
	RunID          string            `json:"runId"`
	Count          int               `json:"count"`
	Records        []search.Record   `json:"records,omitempty"`
	PartialRecords []search.Record   `json:"partialRecords,omitempty"`
	AppliedFilters map[string]string `json:"appliedFilters"`
	Error          string            `json:"error,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	ActionLog      []actionlog.Entry `json:"actionLog"`
}

//Options configure an invocation.
type Options struct {
	BaseURL string
	Extract search.Options
}

//Invocation owns the state of a single search run: the logged backend, the
//audit trail and the record accumulator. Parallel searches must each get
//their own Invocation; nothing here is shared.
type Invocation struct {
	backend backend.Backend
	log     *actionlog.Log
	opts    Options
}

//NewInvocation wires b behind the action-log decorator so every backend call
//the invocation makes is audited.
func NewInvocation(b backend.Backend, opts Options) *Invocation {
	alog := actionlog.New()
	return &Invocation{
		backend: actionlog.Wrap(b, alog),
		log:     alog,
		opts:    opts,
	}
}

//Log returns a copy of the audit trail accumulated so far.
func (inv *Invocation) Log() []actionlog.Entry {
	return inv.log.Entries()
}

//Search executes one task and always returns an envelope: on failure it
//carries the error plus whatever partial records were collected.
func (inv *Invocation) Search(ctx context.Context, t task.Task) *Envelope {
	env := &Envelope{
		RunID:          uuid.NewString(),
		AppliedFilters: search.AppliedFilters(t.Filters),
		Timestamp:      time.Now(),
	}

	url := search.BuildURL(inv.opts.BaseURL, t.Filters)
	log.Printf("🎯 Goal: %s", t.Goal)
	log.Printf("🌐 Search URL: %s", url)

	extractor := search.NewExtractor(inv.backend, inv.opts.Extract)
	raw, err := extractor.Run(ctx, url)
	if err != nil {
		env.Success = false
		env.Error = err.Error()
		env.PartialRecords = dedup.Unique(raw)
		env.ActionLog = inv.log.Entries()
		log.Printf("❌ Search failed after %d records: %v", len(env.PartialRecords), err)
		return env
	}

	unique := dedup.Unique(raw)
	log.Printf("🔍 Deduplication: %d raw -> %d unique records", len(raw), len(unique))

	env.Success = true
	env.Records = unique
	env.Count = len(unique)
	env.ActionLog = inv.log.Entries()
	return env
}

//Export serializes records through this invocation's logged backend, so the
//file write shows up on the same audit trail.
func (inv *Invocation) Export(ctx context.Context, records []search.Record, format, path string) (string, error) {
	return export.New(inv.backend).Export(ctx, records, format, path)
}

//PerformAction clicks target after routing the named action through the
//confirmation gate. A denied irreversible action never reaches the backend.
func (inv *Invocation) PerformAction(ctx context.Context, action, target string) gate.Outcome {
	return gate.New(inv.backend).Perform(ctx, action, target, func(ctx context.Context) error {
		return inv.backend.Click(ctx, target)
	})
}
