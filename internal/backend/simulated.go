package backend

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

//SimulatedCard is one canned listing served by the simulated backend.
type SimulatedCard struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	ListedAt    time.Time
	EasyApply   bool
}

//Simulated is the placeholder backend used when no real browser is wired up.
//Calls succeed after short human-scale delays and serve a canned result page
//that loads progressively across scrolls. RequestConfirmation denies unless
//an explicit ConfirmFunc is provided; defaulting to allow here would be a
//safety regression.
type Simulated struct {
	//ConfirmFunc supplies interactive confirmation decisions.
	ConfirmFunc func(action, details string) bool

	MinDelayMs int
	MaxDelayMs int

	currentURL string
	cards      []SimulatedCard
	loaded     int
}

func NewSimulated(cards []SimulatedCard) *Simulated {
	if len(cards) == 0 {
		cards = defaultCards()
	}
	initial := 2
	if len(cards) < initial {
		initial = len(cards)
	}
	return &Simulated{
		MinDelayMs: 150,
		MaxDelayMs: 450,
		cards:      cards,
		loaded:     initial,
	}
}

func (s *Simulated) delay() {
	RandomDelay(s.MinDelayMs, s.MaxDelayMs)
}

func (s *Simulated) Navigate(ctx context.Context, url string) error {
	s.delay()
	s.currentURL = url
	return nil
}

func (s *Simulated) AwaitElement(ctx context.Context, target string, timeout time.Duration) error {
	s.delay()
	if s.currentURL == "" {
		return fmt.Errorf("%w: %s (no page loaded)", ErrSelectorNotFound, target)
	}
	return nil
}

func (s *Simulated) Click(ctx context.Context, target string) error {
	s.delay()
	return nil
}

func (s *Simulated) Type(ctx context.Context, text, target string) error {
	s.delay()
	return nil
}

//Scroll reveals the rest of the canned cards, the way a lazily loaded results
//page fills in as the user scrolls.
func (s *Simulated) Scroll(ctx context.Context, target string) error {
	s.delay()
	s.loaded = len(s.cards)
	return nil
}

func (s *Simulated) GetText(ctx context.Context, selector string) (string, error) {
	s.delay()
	list, index, field, ok := ParseCardTarget(selector)
	_ = list
	if !ok || index >= s.loaded {
		return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
	}
	card := s.cards[index]
	switch field {
	case "title":
		return card.Title, nil
	case "company":
		return card.Company, nil
	case "location":
		return card.Location, nil
	case "description":
		return card.Description, nil
	}
	return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
}

func (s *Simulated) GetAttribute(ctx context.Context, selector, attr string) (string, error) {
	s.delay()
	if list, index, _, ok := ParseCardTarget(selector); ok {
		_ = list
		if index >= s.loaded {
			return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
		}
		card := s.cards[index]
		switch attr {
		case "data-job-id":
			return card.ID, nil
		case "data-job-url":
			return card.URL, nil
		case "data-listed-at":
			if card.ListedAt.IsZero() {
				return "", nil
			}
			return strconv.FormatInt(card.ListedAt.UnixMilli(), 10), nil
		case "data-easy-apply":
			return strconv.FormatBool(card.EasyApply), nil
		}
		return "", fmt.Errorf("%w: %s@%s", ErrSelectorNotFound, selector, attr)
	}

	if attr == CardCountAttr {
		if s.currentURL == "" {
			return "", fmt.Errorf("%w: %s (no page loaded)", ErrSelectorNotFound, selector)
		}
		return strconv.Itoa(s.loaded), nil
	}
	return "", fmt.Errorf("%w: %s@%s", ErrSelectorNotFound, selector, attr)
}

func (s *Simulated) WriteFile(ctx context.Context, path, content string) (string, error) {
	s.delay()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (s *Simulated) RequestConfirmation(ctx context.Context, action, details string) (bool, error) {
	s.delay()
	if s.ConfirmFunc == nil {
		return false, nil
	}
	return s.ConfirmFunc(action, details), nil
}

func defaultCards() []SimulatedCard {
	now := time.Now()
	return []SimulatedCard{
		{
			ID:          "4201",
			Title:       "Backend Engineer (Go)",
			Company:     "Northwind Labs",
			Location:    "Amsterdam, Netherlands",
			Description: "Build and operate Go services. Docker, Kubernetes, gRPC.",
			URL:         "https://www.linkedin.com/jobs/view/4201",
			ListedAt:    now.Add(-36 * time.Hour),
			EasyApply:   true,
		},
		{
			ID:          "4202",
			Title:       "Platform Engineer",
			Company:     "Ferrofluid BV",
			Location:    "Utrecht, Netherlands (Hybrid)",
			Description: "Platform tooling in Go and Terraform.",
			URL:         "https://www.linkedin.com/jobs/view/4202",
			ListedAt:    now.Add(-3 * 24 * time.Hour),
		},
		{
			ID:          "4203",
			Title:       "Software Engineer, Distributed Systems",
			Company:     "Tidal Compute",
			Location:    "Remote, EU",
			Description: "Consensus, storage engines, performance work.",
			URL:         "https://www.linkedin.com/jobs/view/4203",
			ListedAt:    now.Add(-6 * 24 * time.Hour),
			EasyApply:   true,
		},
		{
			ID:          "4204",
			Title:       "Site Reliability Engineer",
			Company:     "Northwind Labs",
			Location:    "Amsterdam, Netherlands",
			Description: "Keep the lights on. On-call, observability, automation.",
			URL:         "https://www.linkedin.com/jobs/view/4204",
			ListedAt:    now.Add(-12 * 24 * time.Hour),
		},
	}
}
