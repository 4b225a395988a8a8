package search

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"go-jobfinder-automation/internal/backend"
)

//State tracks extraction progress through one search invocation.
type State int

const (
	StateNotStarted State = iota
	StateNavigating
	StateAwaitingSession
	StateExtracting
	StateScrolling
	StateDone
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateNavigating:
		return "Navigating"
	case StateAwaitingSession:
		return "AwaitingSession"
	case StateExtracting:
		return "Extracting"
	case StateScrolling:
		return "Scrolling"
	case StateDone:
		return "Done"
	case StateErrored:
		return "Errored"
	}
	return "Unknown"
}

//cardStrategy names one known shape of the results list. Strategies are tried
//in a fixed order and the first one that reports cards wins; continuing past
//a match would re-extract the same cards through a second selector.
type cardStrategy struct {
	name string
	list string
}

var defaultStrategies = []cardStrategy{
	{name: "card-list", list: "ul.jobs-search__results-list"},
	{name: "search-results", list: ".jobs-search-results__list"},
	{name: "scaffold", list: ".scaffold-layout__list ul"},
}

//Options bound one extraction run.
type Options struct {
	//SessionMarker is the element whose presence proves a logged-in session.
	SessionMarker string
	//SessionTimeout bounds the wait for the marker. Expiry is non-fatal.
	SessionTimeout time.Duration
	//ScrollPasses is the number of extract/scroll repetitions.
	ScrollPasses int
	//MinDelay and MaxDelay bound the randomized pause between passes.
	MinDelay time.Duration
	MaxDelay time.Duration
	//RateLimit caps backend calls per second.
	RateLimit float64
}

func (o Options) withDefaults() Options {
	if o.SessionMarker == "" {
		o.SessionMarker = "#global-nav"
	}
	if o.SessionTimeout <= 0 {
		o.SessionTimeout = 10 * time.Second
	}
	if o.ScrollPasses <= 0 {
		o.ScrollPasses = 3
	}
	if o.MinDelay <= 0 {
		o.MinDelay = 1200 * time.Millisecond
	}
	if o.MaxDelay <= o.MinDelay {
		o.MaxDelay = o.MinDelay + 2*time.Second
	}
	if o.RateLimit <= 0 {
		o.RateLimit = 4
	}
	return o
}

//Extractor drives page-load confirmation, record extraction and progressive
//scrolled loading against an automation backend. Strictly sequential: every
//backend call completes before the next one starts.
type Extractor struct {
	backend    backend.Backend
	opts       Options
	strategies []cardStrategy
	limiter    *rate.Limiter
	state      State
	activeList string
}

func NewExtractor(b backend.Backend, opts Options) *Extractor {
	opts = opts.withDefaults()
	return &Extractor{
		backend:    b,
		opts:       opts,
		strategies: defaultStrategies,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		state:      StateNotStarted,
	}
}

func (e *Extractor) State() State {
	return e.state
}

//Run navigates to url and accumulates records across scroll passes. On
//failure the records collected so far are returned alongside the error:
//partial failure never discards prior work.
func (e *Extractor) Run(ctx context.Context, url string) ([]Record, error) {
	var records []Record

	e.state = StateNavigating
	e.pace(ctx)
	if err := e.backend.Navigate(ctx, url); err != nil {
		e.state = StateErrored
		return records, fmt.Errorf("%w: %v", backend.ErrNavigation, err)
	}

	//session check is best effort: a missing marker means we proceed anyway
	e.state = StateAwaitingSession
	if err := e.backend.AwaitElement(ctx, e.opts.SessionMarker, e.opts.SessionTimeout); err != nil {
		log.Printf("⚠️ Session marker %q not confirmed, proceeding anyway: %v", e.opts.SessionMarker, err)
	}

	for pass := 0; pass < e.opts.ScrollPasses; pass++ {
		e.state = StateExtracting
		found := e.extractOnce(ctx)
		records = append(records, found...)
		log.Printf("📄 Pass %d/%d: %d records (%d accumulated)", pass+1, e.opts.ScrollPasses, len(found), len(records))

		if pass == e.opts.ScrollPasses-1 {
			break
		}

		e.state = StateScrolling
		e.pace(ctx)
		if err := e.backend.Scroll(ctx, "end"); err != nil {
			e.state = StateErrored
			return records, fmt.Errorf("scroll pass %d: %w", pass+1, err)
		}
		if e.activeList != "" {
			//wait for lazily loaded cards before re-extracting
			_ = e.backend.AwaitElement(ctx, e.activeList, 5*time.Second)
		}
		e.randomPause()
	}

	e.state = StateDone
	return records, nil
}

//extractOnce tries each card strategy in order and stops at the first one
//that reports cards. A selector miss is logged and the next strategy tried;
//a pass where nothing matches yields zero records, not an error.
func (e *Extractor) extractOnce(ctx context.Context) []Record {
	for _, s := range e.strategies {
		e.pace(ctx)
		raw, err := e.backend.GetAttribute(ctx, s.list, backend.CardCountAttr)
		if err != nil {
			log.Printf("🔍 Strategy %s: miss (%v), trying next", s.name, err)
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || count <= 0 {
			log.Printf("🔍 Strategy %s: no cards reported", s.name)
			continue
		}
		e.activeList = s.list
		return e.extractCards(ctx, s, count)
	}
	log.Printf("⚠️ No card strategy matched on this pass")
	return nil
}

//extractCards reads every loaded card. Individual field misses degrade to
//empty values; a card with no stable id falls back to its index so ids stay
//unique within the run.
func (e *Extractor) extractCards(ctx context.Context, s cardStrategy, count int) []Record {
	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		card := backend.CardTarget(s.list, i)

		id, _ := e.backend.GetAttribute(ctx, card, "data-job-id")
		if strings.TrimSpace(id) == "" {
			id = strconv.Itoa(i)
		}
		title, _ := e.backend.GetText(ctx, backend.CardFieldTarget(s.list, i, "title"))
		company, _ := e.backend.GetText(ctx, backend.CardFieldTarget(s.list, i, "company"))
		location, _ := e.backend.GetText(ctx, backend.CardFieldTarget(s.list, i, "location"))
		description, _ := e.backend.GetText(ctx, backend.CardFieldTarget(s.list, i, "description"))
		jobURL, _ := e.backend.GetAttribute(ctx, card, "data-job-url")
		listedAt, _ := e.backend.GetAttribute(ctx, card, "data-listed-at")
		easyApply, _ := e.backend.GetAttribute(ctx, card, "data-easy-apply")

		records = append(records, Record{
			ID:          strings.TrimSpace(id),
			Title:       strings.TrimSpace(title),
			Company:     strings.TrimSpace(company),
			Location:    strings.TrimSpace(location),
			Description: strings.TrimSpace(description),
			URL:         canonicalURL(strings.TrimSpace(jobURL)),
			PostedDate:  parsePostedDate(listedAt),
			EasyApply:   strings.EqualFold(strings.TrimSpace(easyApply), "true"),
		})
	}
	return records
}

//pace enforces the call-rate ceiling. A context cancellation here surfaces on
//the next backend call instead.
func (e *Extractor) pace(ctx context.Context) {
	_ = e.limiter.Wait(ctx)
}

//randomPause sleeps a human-scale random interval between passes.
func (e *Extractor) randomPause() {
	span := int64(e.opts.MaxDelay - e.opts.MinDelay)
	time.Sleep(e.opts.MinDelay + time.Duration(rand.Int63n(span+1)))
}

//canonicalURL strips the query string. Job links carry tracking params
//(refId, trackingId) that make one job look like many.
func canonicalURL(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}
