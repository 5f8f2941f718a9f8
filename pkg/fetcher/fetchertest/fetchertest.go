// Package fetchertest provides an in-memory Fetcher for tests.
package fetchertest

import (
	"context"
	"fmt"
	"sync"
)

// Fetcher serves canned pages by URL and counts every request.
type Fetcher struct {
	Pages  map[string]string
	Errors map[string]error

	lock  sync.Mutex
	calls map[string]int
}

func New() *Fetcher {
	return &Fetcher{
		Pages:  map[string]string{},
		Errors: map[string]error{},
		calls:  map[string]int{},
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.lock.Lock()
	f.calls[url]++
	f.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err, ok := f.Errors[url]; ok {
		return nil, err
	}

	page, ok := f.Pages[url]
	if !ok {
		return nil, fmt.Errorf("fetchertest: no page registered for %s", url)
	}

	return []byte(page), nil
}

// Calls returns how many times url was requested.
func (f *Fetcher) Calls(url string) int {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.calls[url]
}

// TotalCalls returns the number of requests across all URLs.
func (f *Fetcher) TotalCalls() int {
	f.lock.Lock()
	defer f.lock.Unlock()

	total := 0
	for _, count := range f.calls {
		total += count
	}

	return total
}
