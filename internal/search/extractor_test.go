package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-jobfinder-automation/internal/backend"
)

const resultsPage = `
<html>
<body>
<div id="global-nav"></div>
<ul class="jobs-search__results-list">
  <li data-job-id="4201" data-job-url="https://www.linkedin.com/jobs/view/4201?refId=abc&trackingId=def" data-listed-at="2026-08-20" data-easy-apply="true">
    <span data-field="title">Backend Engineer (Go)</span>
    <span data-field="company">Northwind Labs</span>
    <span data-field="location">Amsterdam, Netherlands</span>
    <span data-field="description">Go services, Docker, Kubernetes</span>
  </li>
  <li data-job-id="4202" data-job-url="https://www.linkedin.com/jobs/view/4202">
    <span data-field="title">Platform Engineer</span>
    <span data-field="company">Ferrofluid BV</span>
    <span data-field="location">Utrecht, Netherlands</span>
    <span data-field="description">Platform tooling in Go</span>
  </li>
</ul>
</body>
</html>`

//page without a session marker: the extractor must proceed regardless
const loggedOutPage = `
<html>
<body>
<ul class="jobs-search__results-list">
  <li data-job-id="9001" data-job-url="https://www.linkedin.com/jobs/view/9001">
    <span data-field="title">Data Engineer</span>
    <span data-field="company">Tidal Compute</span>
    <span data-field="location">Remote</span>
    <span data-field="description">Pipelines</span>
  </li>
</ul>
</body>
</html>`

func fastOptions() Options {
	return Options{
		SessionTimeout: 50 * time.Millisecond,
		ScrollPasses:   2,
		MinDelay:       time.Millisecond,
		MaxDelay:       2 * time.Millisecond,
		RateLimit:      10000,
	}
}

func TestExtractorRun(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	ex := NewExtractor(fx, fastOptions())
	records, err := ex.Run(context.Background(), "https://www.linkedin.com/jobs/search/?keywords=golang")

	assert.NoError(t, err)
	assert.Equal(t, StateDone, ex.State())
	//two passes over a static page re-extract the same two cards
	assert.Len(t, records, 4)

	first := records[0]
	assert.Equal(t, "4201", first.ID)
	assert.Equal(t, "Backend Engineer (Go)", first.Title)
	assert.Equal(t, "Northwind Labs", first.Company)
	assert.Equal(t, "Amsterdam, Netherlands", first.Location)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/4201", first.URL, "tracking params are stripped")
	assert.True(t, first.EasyApply)
	assert.Equal(t, 2026, first.PostedDate.Year())

	assert.False(t, records[1].EasyApply)
	assert.Equal(t, []string{"https://www.linkedin.com/jobs/search/?keywords=golang"}, fx.Navigated)
}

func TestExtractorProceedsWithoutSessionMarker(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(loggedOutPage)
	assert.NoError(t, err)

	opts := fastOptions()
	opts.ScrollPasses = 1
	ex := NewExtractor(fx, opts)

	records, err := ex.Run(context.Background(), "https://example.test/search")

	assert.NoError(t, err, "a missing session marker is a soft miss, not a failure")
	assert.Len(t, records, 1)
	assert.Equal(t, "9001", records[0].ID)
}

func TestExtractorNoStrategyMatches(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(`<html><body><div id="global-nav"></div></body></html>`)
	assert.NoError(t, err)

	opts := fastOptions()
	opts.ScrollPasses = 1
	ex := NewExtractor(fx, opts)

	records, err := ex.Run(context.Background(), "https://example.test/search")

	assert.NoError(t, err)
	assert.Empty(t, records, "all strategies missing yields zero records, not an error")
	assert.Equal(t, StateDone, ex.State())
}

type navFailBackend struct {
	backend.Backend
}

func (b *navFailBackend) Navigate(ctx context.Context, url string) error {
	return errors.New("net::ERR_CONNECTION_RESET")
}

func TestExtractorNavigationFailure(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	ex := NewExtractor(&navFailBackend{Backend: fx}, fastOptions())
	records, err := ex.Run(context.Background(), "https://example.test/search")

	assert.ErrorIs(t, err, backend.ErrNavigation)
	assert.Empty(t, records)
	assert.Equal(t, StateErrored, ex.State())
}

type scrollFailBackend struct {
	backend.Backend
}

func (b *scrollFailBackend) Scroll(ctx context.Context, target string) error {
	return errors.New("page crashed")
}

func TestExtractorKeepsPartialRecordsOnFailure(t *testing.T) {
	fx, err := backend.NewFixtureFromHTML(resultsPage)
	assert.NoError(t, err)

	ex := NewExtractor(&scrollFailBackend{Backend: fx}, fastOptions())
	records, err := ex.Run(context.Background(), "https://example.test/search")

	assert.Error(t, err)
	assert.Equal(t, StateErrored, ex.State())
	//the first pass completed before the scroll blew up
	assert.Len(t, records, 2)
}
