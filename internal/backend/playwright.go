package backend

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
)

//PlaywrightOptions configures the browser-driver backend variant.
type PlaywrightOptions struct {
	Headless    bool
	CookiesPath string
	//ConfirmFunc supplies interactive confirmation decisions. When nil,
	//every irreversible action is denied.
	ConfirmFunc func(action, details string) bool
}

//Playwright drives a real Chromium session through the Backend contract.
type Playwright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	confirm func(action, details string) bool
}

//Selectors for the fields of a result card. Listed as comma-separated
//alternatives because LinkedIn ships several card layouts.
var cardFieldSelectors = map[string]string{
	"title":       ".job-card-list__title, .artdeco-entity-lockup__title, strong",
	"company":     ".job-card-container__primary-description, .artdeco-entity-lockup__subtitle",
	"location":    ".job-card-container__metadata-item, .artdeco-entity-lockup__caption",
	"description": ".job-card-list__footer-wrapper, .job-card-container__footer-item",
}

func NewPlaywright(ctx context.Context, opts PlaywrightOptions) (*Playwright, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not launch playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	browserCtx, err := browser.NewContext()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	//load session cookies if available; a missing cookie file only means
	//the session check will not find a logged-in marker
	if opts.CookiesPath != "" {
		cookies, err := LoadCookies(opts.CookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load cookies from %s: %v. Continuing.", opts.CookiesPath, err)
		} else if err := browserCtx.AddCookies(cookies); err != nil {
			log.Printf("⚠️ Could not add cookies: %v. Continuing.", err)
		} else {
			log.Printf("🍪 Loaded %d cookies", len(cookies))
		}
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &Playwright{pw: pw, browser: browser, page: page, confirm: opts.ConfirmFunc}, nil
}

func (p *Playwright) Close() error {
	if p.browser != nil {
		if err := p.browser.Close(); err != nil {
			return err
		}
	}
	if p.pw != nil {
		return p.pw.Stop()
	}
	return nil
}

func (p *Playwright) Navigate(ctx context.Context, url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	return nil
}

func (p *Playwright) AwaitElement(ctx context.Context, target string, timeout time.Duration) error {
	_, err := p.page.WaitForSelector(target, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSelectorNotFound, target)
	}
	return nil
}

func (p *Playwright) Click(ctx context.Context, target string) error {
	return p.page.Locator(target).First().Click()
}

func (p *Playwright) Type(ctx context.Context, text, target string) error {
	return p.page.Locator(target).First().Fill(text)
}

func (p *Playwright) Scroll(ctx context.Context, target string) error {
	if target == "end" {
		return humanScroll(p.page)
	}
	return p.page.Locator(target).First().ScrollIntoViewIfNeeded()
}

func (p *Playwright) GetText(ctx context.Context, selector string) (string, error) {
	if list, index, field, ok := ParseCardTarget(selector); ok {
		card, err := p.card(list, index)
		if err != nil {
			return "", err
		}
		sub, ok := cardFieldSelectors[field]
		if !ok {
			return "", fmt.Errorf("%w: unknown card field %q", ErrSelectorNotFound, field)
		}
		text, err := card.Locator(sub).First().InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(2000),
		})
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
		}
		return text, nil
	}

	text, err := p.page.Locator(selector).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
	}
	return text, nil
}

func (p *Playwright) GetAttribute(ctx context.Context, selector, attr string) (string, error) {
	if list, index, _, ok := ParseCardTarget(selector); ok {
		card, err := p.card(list, index)
		if err != nil {
			return "", err
		}
		if attr == "data-job-url" {
			href, err := card.Locator("a").First().GetAttribute("href")
			if err != nil {
				return "", fmt.Errorf("%w: %s link", ErrSelectorNotFound, selector)
			}
			return href, nil
		}
		value, err := card.GetAttribute(attr)
		if err != nil {
			return "", fmt.Errorf("%w: %s@%s", ErrSelectorNotFound, selector, attr)
		}
		return value, nil
	}

	if attr == CardCountAttr {
		count, err := p.page.Locator(selector + " > *").Count()
		if err != nil || count == 0 {
			return "", fmt.Errorf("%w: %s", ErrSelectorNotFound, selector)
		}
		return fmt.Sprintf("%d", count), nil
	}

	value, err := p.page.Locator(selector).First().GetAttribute(attr)
	if err != nil {
		return "", fmt.Errorf("%w: %s@%s", ErrSelectorNotFound, selector, attr)
	}
	return value, nil
}

//card returns the index-th direct child of the result list.
func (p *Playwright) card(list string, index int) (playwright.Locator, error) {
	cards := p.page.Locator(list + " > *")
	count, err := cards.Count()
	if err != nil || index >= count {
		return nil, fmt.Errorf("%w: %s[%d]", ErrSelectorNotFound, list, index)
	}
	return cards.Nth(index), nil
}

func (p *Playwright) WriteFile(ctx context.Context, path, content string) (string, error) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

//RequestConfirmation defaults to deny when no confirmation UI is wired up.
//Fail-safe: an unanswerable irreversible action never runs.
func (p *Playwright) RequestConfirmation(ctx context.Context, action, details string) (bool, error) {
	if p.confirm == nil {
		return false, nil
	}
	return p.confirm(action, details), nil
}
