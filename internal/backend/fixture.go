package backend

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

//Fixture replays a recorded results page through the Backend contract so the
//extraction pipeline can run against saved HTML instead of a live browser.
//Cards are the direct children of the card-list element; text fields are
//marked with data-field attributes.
type Fixture struct {
	doc *goquery.Document

	//ConfirmFunc supplies confirmation decisions; nil denies everything.
	ConfirmFunc func(action, details string) bool

	//Navigated holds every URL passed to Navigate, in order.
	Navigated []string
	//Clicked holds every target passed to Click, in order.
	Clicked []string
	//Written maps file paths to the content handed to WriteFile.
	Written map[string]string
}

func NewFixtureFromHTML(html string) (*Fixture, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &Fixture{doc: doc, Written: make(map[string]string)}, nil
}

func NewFixtureFromFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return NewFixtureFromHTML(string(data))
}

func (f *Fixture) Navigate(ctx context.Context, url string) error {
	f.Navigated = append(f.Navigated, url)
	return nil
}

func (f *Fixture) AwaitElement(ctx context.Context, target string, timeout time.Duration) error {
	if f.find(target).Length() == 0 {
		return fmt.Errorf("%w: %s", ErrSelectorNotFound, target)
	}
	return nil
}

func (f *Fixture) Click(ctx context.Context, target string) error {
	f.Clicked = append(f.Clicked, target)
	return nil
}

func (f *Fixture) Type(ctx context.Context, text, target string) error {
	return nil
}

func (f *Fixture) Scroll(ctx context.Context, target string) error {
	//a recorded page is static; scrolling reveals nothing new
	return nil
}

func (f *Fixture) GetText(ctx context.Context, selector string) (string, error) {
	if list, index, field, ok := ParseCardTarget(selector); ok {
		card, err := f.card(list, index)
		if err != nil {
			return "", err
		}
		sel := card.Find(fmt.Sprintf("[data-field=%q]", field)).First()
		if sel.Length() == 0 {
			return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
		}
		return strings.TrimSpace(sel.Text()), nil
	}

	sel := f.find(selector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
	}
	return strings.TrimSpace(sel.First().Text()), nil
}

func (f *Fixture) GetAttribute(ctx context.Context, selector, attr string) (string, error) {
	if list, index, _, ok := ParseCardTarget(selector); ok {
		card, err := f.card(list, index)
		if err != nil {
			return "", err
		}
		value, exists := card.Attr(attr)
		if !exists {
			return "", fmt.Errorf("%w: %s@%s", ErrSelectorNotFound, selector, attr)
		}
		return value, nil
	}

	sel := f.find(selector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
	}
	if attr == CardCountAttr {
		//honor an explicit count when recorded, otherwise count the cards
		if value, exists := sel.First().Attr(CardCountAttr); exists {
			return value, nil
		}
		return strconv.Itoa(sel.First().Children().Length()), nil
	}
	value, exists := sel.First().Attr(attr)
	if !exists {
		return "", fmt.Errorf("%w: %s@%s", ErrSelectorNotFound, selector, attr)
	}
	return value, nil
}

func (f *Fixture) WriteFile(ctx context.Context, path, content string) (string, error) {
	f.Written[path] = content
	return path, nil
}

func (f *Fixture) RequestConfirmation(ctx context.Context, action, details string) (bool, error) {
	if f.ConfirmFunc == nil {
		return false, nil
	}
	return f.ConfirmFunc(action, details), nil
}

//find resolves a selector either as plain CSS or as a recorded data-testid.
func (f *Fixture) find(selector string) *goquery.Selection {
	sel := f.doc.Find(selector)
	if sel.Length() > 0 {
		return sel
	}
	return f.doc.Find(fmt.Sprintf("[data-testid=%q]", selector))
}

func (f *Fixture) card(list string, index int) (*goquery.Selection, error) {
	cards := f.find(list).First().Children()
	if index >= cards.Length() {
		return nil, fmt.Errorf("%w: %s[%d]", ErrSelectorNotFound, list, index)
	}
	return cards.Eq(index), nil
}
