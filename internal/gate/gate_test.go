package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

//recorder is a minimal backend that records confirmation requests and clicks.
type recorder struct {
	confirmAnswer bool
	confirmErr    error
	confirmCalls  []string
	clicks        []string
}

func (r *recorder) Navigate(ctx context.Context, url string) error { return nil }
func (r *recorder) AwaitElement(ctx context.Context, target string, timeout time.Duration) error {
	return nil
}
func (r *recorder) Click(ctx context.Context, target string) error {
	r.clicks = append(r.clicks, target)
	return nil
}
func (r *recorder) Type(ctx context.Context, text, target string) error   { return nil }
func (r *recorder) Scroll(ctx context.Context, target string) error       { return nil }
func (r *recorder) GetText(ctx context.Context, s string) (string, error) { return "", nil }
func (r *recorder) GetAttribute(ctx context.Context, s, a string) (string, error) {
	return "", nil
}
func (r *recorder) WriteFile(ctx context.Context, p, c string) (string, error) { return p, nil }
func (r *recorder) RequestConfirmation(ctx context.Context, action, details string) (bool, error) {
	r.confirmCalls = append(r.confirmCalls, action)
	return r.confirmAnswer, r.confirmErr
}

func TestIsIrreversible(t *testing.T) {
	tests := []struct {
		action   string
		expected bool
	}{
		{"Apply to Job", true},
		{"FOLLOW company", true},
		{"Save listing", true},
		{"share with network", true},
		{"Send Message", true},
		{"Scroll results", false},
		{"Extract listings", false},
		{"navigate", false},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := IsIrreversible(tt.action); got != tt.expected {
				t.Errorf("IsIrreversible(%q) = %v, want %v", tt.action, got, tt.expected)
			}
		})
	}
}

func TestDeniedActionNeverRuns(t *testing.T) {
	rec := &recorder{confirmAnswer: false}
	g := New(rec)

	out := g.Perform(context.Background(), "Apply to Job", "button.apply", func(ctx context.Context) error {
		return rec.Click(ctx, "button.apply")
	})

	assert.False(t, out.Success)
	assert.Equal(t, "User cancelled", out.Reason)
	assert.Equal(t, []string{"Apply to Job"}, rec.confirmCalls)
	assert.Empty(t, rec.clicks, "a denied irreversible action must not reach the backend")
}

func TestConfirmedActionRuns(t *testing.T) {
	rec := &recorder{confirmAnswer: true}
	g := New(rec)

	out := g.Perform(context.Background(), "Apply to Job", "button.apply", func(ctx context.Context) error {
		return rec.Click(ctx, "button.apply")
	})

	assert.True(t, out.Success)
	assert.Equal(t, []string{"Apply to Job"}, rec.confirmCalls)
	assert.Equal(t, []string{"button.apply"}, rec.clicks)
}

func TestReversibleActionBypassesConfirmation(t *testing.T) {
	rec := &recorder{}
	g := New(rec)

	out := g.Perform(context.Background(), "Scroll results", "end", func(ctx context.Context) error {
		return rec.Click(ctx, "end")
	})

	assert.True(t, out.Success)
	assert.Empty(t, rec.confirmCalls, "reversible actions never ask for confirmation")
	assert.Equal(t, []string{"end"}, rec.clicks)
}

func TestConfirmationErrorCountsAsDenial(t *testing.T) {
	rec := &recorder{confirmAnswer: true, confirmErr: errors.New("confirmation channel down")}
	g := New(rec)

	out := g.Perform(context.Background(), "Follow company", "button.follow", func(ctx context.Context) error {
		return rec.Click(ctx, "button.follow")
	})

	assert.False(t, out.Success)
	assert.Equal(t, "User cancelled", out.Reason)
	assert.Empty(t, rec.clicks)
}
