package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-jobfinder-automation/internal/backend"
	"go-jobfinder-automation/internal/search"
	"go-jobfinder-automation/internal/task"
)

const resultsPage = `
<html>
<body>
<div id="global-nav"></div>
<ul class="jobs-search__results-list">
  <li data-job-id="a" data-job-url="https://www.linkedin.com/jobs/view/a">
    <span data-field="title">Backend Engineer</span>
    <span data-field="company">Northwind Labs</span>
    <span data-field="location">Amsterdam</span>
    <span data-field="description">Go services</span>
  </li>
  <li data-job-id="b" data-job-url="https://www.linkedin.com/jobs/view/b">
    <span data-field="title">Platform Engineer</span>
    <span data-field="company">Ferrofluid BV</span>
    <span data-field="location">Utrecht</span>
    <span data-field="description">Tooling</span>
  </li>
</ul>
</body>
</html>`

func fastOptions() Options {
	return Options{
		Extract: search.Options{
			SessionTimeout: 50 * time.Millisecond,
			ScrollPasses:   2,
			MinDelay:       time.Millisecond,
			MaxDelay:       2 * time.Millisecond,
			RateLimit:      10000,
		},
	}
}

func searchTask() task.Task {
	return task.Task{
		Goal: "Find golang jobs",
		Filters: task.FilterSet{
			Keywords: "golang",
			JobType:  "full-time",
		},
	}
}

func TestSearchSuccessEnvelope(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	inv := NewInvocation(fx, fastOptions())
	env := inv.Search(context.Background(), searchTask())

	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RunID)
	assert.Empty(t, env.Error)
	assert.Empty(t, env.PartialRecords)

	//two scroll passes over a static page extract each card twice;
	//the envelope still carries the deduplicated set, never the raw one
	assert.Equal(t, 2, env.Count)
	assert.Len(t, env.Records, 2)
	assert.Equal(t, "a", env.Records[0].ID)
	assert.Equal(t, "b", env.Records[1].ID)

	assert.Equal(t, "F", env.AppliedFilters["f_JT"])
	assert.False(t, env.Timestamp.IsZero())
}

func TestSearchActionLogOrdering(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	inv := NewInvocation(fx, fastOptions())
	env := inv.Search(context.Background(), searchTask())

	assert.NotEmpty(t, env.ActionLog)
	assert.Equal(t, "navigate", env.ActionLog[0].Action)
	assert.Equal(t, "await_element", env.ActionLog[1].Action)

	for i := 1; i < len(env.ActionLog); i++ {
		assert.False(t, env.ActionLog[i].Timestamp.Before(env.ActionLog[i-1].Timestamp),
			"entries must be time ordered")
	}
}

type scrollFailBackend struct {
	backend.Backend
}

func (b *scrollFailBackend) Scroll(ctx context.Context, target string) error {
	return errors.New("page crashed")
}

func TestSearchFailureKeepsPartialRecords(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	inv := NewInvocation(&scrollFailBackend{Backend: fx}, fastOptions())
	env := inv.Search(context.Background(), searchTask())

	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
	assert.Empty(t, env.Records)
	assert.Len(t, env.PartialRecords, 2, "the completed first pass survives the failure")

	var sawScroll bool
	for _, e := range env.ActionLog {
		if e.Action == "scroll" {
			sawScroll = true
		}
	}
	assert.True(t, sawScroll, "the failed call still has its log entry")
}

type navFailBackend struct {
	backend.Backend
}

func (b *navFailBackend) Navigate(ctx context.Context, url string) error {
	return errors.New("dns lookup failed")
}

func TestSearchNavigationFailure(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	inv := NewInvocation(&navFailBackend{Backend: fx}, fastOptions())
	env := inv.Search(context.Background(), searchTask())

	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "navigation failed")
	assert.Empty(t, env.PartialRecords)
	assert.Len(t, env.ActionLog, 1, "only the failed navigation ran")
	assert.Equal(t, "navigate", env.ActionLog[0].Action)
}

func TestPerformActionDeniedLeavesNoClick(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)
	//no ConfirmFunc wired: the backend denies by default

	inv := NewInvocation(fx, fastOptions())
	out := inv.PerformAction(context.Background(), "Apply to Job", "button.apply")

	assert.False(t, out.Success)
	assert.Equal(t, "User cancelled", out.Reason)
	assert.Empty(t, fx.Clicked)

	entries := inv.Log()
	assert.Len(t, entries, 1)
	assert.Equal(t, "request_confirmation", entries[0].Action)
}

func TestPerformActionConfirmed(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)
	fx.ConfirmFunc = func(action, details string) bool { return true }

	inv := NewInvocation(fx, fastOptions())
	out := inv.PerformAction(context.Background(), "Apply to Job", "button.apply")

	assert.True(t, out.Success)
	assert.Equal(t, []string{"button.apply"}, fx.Clicked)
}

func TestExportThroughInvocationIsLogged(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	inv := NewInvocation(fx, fastOptions())
	env := inv.Search(context.Background(), searchTask())
	assert.True(t, env.Success)

	path, err := inv.Export(context.Background(), env.Records, "json", "out.json")
	assert.NoError(t, err)
	assert.Equal(t, "out.json", path)
	assert.Contains(t, fx.Written, "out.json")

	entries := inv.Log()
	last := entries[len(entries)-1]
	assert.Equal(t, "write_file", last.Action)
	assert.Equal(t, "out.json", last.Details)
}

func TestInvocationsAreIndependent(t *testing.T) {
	fx1, _ := backend.NewFixtureFromHTML(resultsPage)
	fx2, _ := backend.NewFixtureFromHTML(resultsPage)

	inv1 := NewInvocation(fx1, fastOptions())
	inv2 := NewInvocation(fx2, fastOptions())

	_ = inv1.Search(context.Background(), searchTask())

	assert.NotEmpty(t, inv1.Log())
	assert.Empty(t, inv2.Log(), "log state must not leak across invocations")
}

//end-to-end run against the simulated backend, including its human-scale
//delays, so it only runs outside -short
func TestSearchSimulatedBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulated-backend integration test in short mode")
	}

	sim := backend.NewSimulated(nil)
	sim.MinDelayMs = 1
	sim.MaxDelayMs = 2

	inv := NewInvocation(sim, fastOptions())
	env := inv.Search(context.Background(), searchTask())

	assert.True(t, env.Success)
	//the simulated page starts with two cards loaded and reveals the rest on
	//the first scroll, so the second pass picks up the remainder
	assert.Equal(t, 4, env.Count)
	assert.Empty(t, env.PartialRecords)
}
