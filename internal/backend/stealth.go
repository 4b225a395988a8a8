package backend

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits for a random duration between min and max milliseconds
func RandomDelay(min, max int) {
	duration := rand.Intn(max-min+1) + min
	time.Sleep(time.Duration(duration) * time.Millisecond)
}

// humanScroll pages down toward the bottom in uneven viewport-sized steps,
// pausing between them, then nudges back up. Lazy-loading result lists only
// fill in when the scrolling looks like a person reading.
func humanScroll(page playwright.Page) error {
	steps := 4 + rand.Intn(3)
	for i := 0; i < steps; i++ {
		fraction := 0.4 + rand.Float64()*0.4
		script := fmt.Sprintf("window.scrollBy(0, window.innerHeight * %.2f)", fraction)
		if _, err := page.Evaluate(script); err != nil {
			return err
		}
		RandomDelay(500, 1500)
	}
	_, err := page.Evaluate("window.scrollBy(0, -150)")
	return err
}
