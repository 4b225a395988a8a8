// Define the capability contract every automation variant must satisfy
// The core never depends on a concrete browser engine

package backend

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrNavigation marks a failed page navigation. Navigation failures end the
// search loop; records accumulated before them are preserved.
var ErrNavigation = errors.New("navigation failed")

// ErrSelectorNotFound marks a selector miss. Misses are recoverable: the
// extractor falls back to its next selector strategy.
var ErrSelectorNotFound = errors.New("selector not found")

//Backend is the automation capability interface {navigate, interact, extract,
//confirm, persist}. Concrete implementations (browser-driver, recorded-fixture,
//simulated) are variants behind this interface.
type Backend interface {
	//Navigate points the session at url.
	Navigate(ctx context.Context, url string) error

	//AwaitElement blocks until target is present or timeout expires.
	AwaitElement(ctx context.Context, target string, timeout time.Duration) error

	//Click clicks the element identified by target.
	Click(ctx context.Context, target string) error

	//Type types text into target.
	Type(ctx context.Context, text, target string) error

	//Scroll scrolls to target. The special target "end" scrolls to the
	//bottom of the page to trigger lazy loading.
	Scroll(ctx context.Context, target string) error

	//GetText returns the inner text of selector.
	GetText(ctx context.Context, selector string) (string, error)

	//GetAttribute returns an attribute value of selector.
	GetAttribute(ctx context.Context, selector, attr string) (string, error)

	//WriteFile persists content and returns the path written.
	WriteFile(ctx context.Context, path, content string) (string, error)

	//RequestConfirmation asks the user to allow an irreversible action.
	//Implementations without a real confirmation UI must answer false.
	RequestConfirmation(ctx context.Context, action, details string) (bool, error)
}

//CardCountAttr is the virtual attribute every backend answers on a card-list
//selector with the number of result cards currently loaded.
const CardCountAttr = "data-card-count"

var cardTargetRegex = regexp.MustCompile(`^(.+)\[(\d+)\](?:\.([a-zA-Z]+))?$`)

//ParseCardTarget splits a card pseudo-selector of the form "<list>[<index>]"
//or "<list>[<index>].<field>" into its parts. ok is false for plain selectors.
func ParseCardTarget(target string) (list string, index int, field string, ok bool) {
	m := cardTargetRegex.FindStringSubmatch(target)
	if m == nil {
		return "", 0, "", false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, "", false
	}
	return m[1], index, m[3], true
}

//CardTarget builds the pseudo-selector for the index-th card of list.
func CardTarget(list string, index int) string {
	return fmt.Sprintf("%s[%d]", list, index)
}

//CardFieldTarget builds the pseudo-selector for a text field of a card.
func CardFieldTarget(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}
