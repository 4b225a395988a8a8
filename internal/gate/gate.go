// Safety gate for actions that change remote state
// No irreversible backend call runs without a prior affirmative confirmation

package gate

import (
	"context"
	"strings"

	"go-jobfinder-automation/internal/backend"
)

//Actions whose name contains one of these tokens change remote state and
//cannot be undone by this system.
var irreversibleTokens = []string{"apply", "follow", "save", "share", "message"}

//Outcome reports whether a gated action ran. A denial is a normal negative
//result, not an application error.
type Outcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

//Gate classifies actions and blocks irreversible ones on an explicit yes/no
//decision from the automation backend.
type Gate struct {
	backend backend.Backend
}

func New(b backend.Backend) *Gate {
	return &Gate{backend: b}
}

//IsIrreversible reports whether the named action changes remote state.
func IsIrreversible(action string) bool {
	name := strings.ToLower(action)
	for _, token := range irreversibleTokens {
		if strings.Contains(name, token) {
			return true
		}
	}
	return false
}

//Perform routes action through the safety gate. Irreversible actions require
//an affirmative confirmation first; a denial, or an error from the
//confirmation primitive itself, short-circuits without touching the backend.
//Reversible actions bypass confirmation entirely.
func (g *Gate) Perform(ctx context.Context, action, details string, run func(context.Context) error) Outcome {
	if IsIrreversible(action) {
		allowed, err := g.backend.RequestConfirmation(ctx, action, details)
		if err != nil || !allowed {
			//deny on broken confirmation wiring too, never allow
			return Outcome{Success: false, Reason: "User cancelled"}
		}
	}
	if err := run(ctx); err != nil {
		return Outcome{Success: false, Reason: err.Error()}
	}
	return Outcome{Success: true}
}
