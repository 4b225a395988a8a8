package actionlog

import (
	"context"
	"fmt"
	"time"

	"go-jobfinder-automation/internal/backend"
)

//Wrap decorates a backend so every invocation lands in the log before it runs.
//Failed calls get their entry too, before the failure is raised; the trail
//stays 1:1 with backend invocations by construction.
func Wrap(inner backend.Backend, log *Log) backend.Backend {
	return &logged{inner: inner, log: log}
}

type logged struct {
	inner backend.Backend
	log   *Log
}

func (b *logged) Navigate(ctx context.Context, url string) error {
	b.log.Append("navigate", url)
	return b.inner.Navigate(ctx, url)
}

func (b *logged) AwaitElement(ctx context.Context, target string, timeout time.Duration) error {
	b.log.Append("await_element", fmt.Sprintf("%s (timeout %s)", target, timeout))
	return b.inner.AwaitElement(ctx, target, timeout)
}

func (b *logged) Click(ctx context.Context, target string) error {
	b.log.Append("click", target)
	return b.inner.Click(ctx, target)
}

func (b *logged) Type(ctx context.Context, text, target string) error {
	b.log.Append("type", target)
	return b.inner.Type(ctx, text, target)
}

func (b *logged) Scroll(ctx context.Context, target string) error {
	b.log.Append("scroll", target)
	return b.inner.Scroll(ctx, target)
}

func (b *logged) GetText(ctx context.Context, selector string) (string, error) {
	b.log.Append("get_text", selector)
	return b.inner.GetText(ctx, selector)
}

func (b *logged) GetAttribute(ctx context.Context, selector, attr string) (string, error) {
	b.log.Append("get_attribute", selector+"@"+attr)
	return b.inner.GetAttribute(ctx, selector, attr)
}

func (b *logged) WriteFile(ctx context.Context, path, content string) (string, error) {
	b.log.Append("write_file", path)
	return b.inner.WriteFile(ctx, path, content)
}

func (b *logged) RequestConfirmation(ctx context.Context, action, details string) (bool, error) {
	b.log.Append("request_confirmation", action)
	return b.inner.RequestConfirmation(ctx, action, details)
}
