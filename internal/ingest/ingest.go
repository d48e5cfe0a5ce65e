// Package ingest implements the paginated fetch-and-store loop shared by all
// source integrations. A Source pages through an external listing; Run feeds
// every item to a process callback (normalize + upsert) and keeps per-run
// counters. A failing item is counted and skipped; a failing page fetch
// aborts the run.
package ingest

import (
	"context"
	"log"
)

// Counters aggregates the outcome of one run.
// Requested == Success + Failed always holds.
type Counters struct {
	Requested int `json:"requested"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
}

// Options bounds the work of a single run.
type Options struct {
	// MaxPages stops pagination after this many pages. 0 means no page bound.
	MaxPages int
	// MaxItems stops the run once this many items have been seen. 0 means no
	// item bound. The final page request is shrunk to the remaining budget.
	MaxItems int
	// PageSize is the per-page item count requested from the source.
	PageSize int
}

// Source yields one page of raw items per call. cursor is opaque to the
// runner: the empty string requests the first page, and the returned next
// cursor is passed back verbatim on the following call. An empty item slice
// signals exhaustion.
type Source[T any] interface {
	FetchPage(ctx context.Context, cursor string, pageSize int) (items []T, next string, err error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(ctx context.Context, cursor string, pageSize int) ([]T, string, error)

func (f SourceFunc[T]) FetchPage(ctx context.Context, cursor string, pageSize int) ([]T, string, error) {
	return f(ctx, cursor, pageSize)
}

// ProcessFunc handles one raw item: per-item detail fetch, normalization and
// upsert all live here. An error marks the item failed without stopping the
// run.
type ProcessFunc[T any] func(ctx context.Context, item T) error

// Run drives one complete run against src. Pages are fetched strictly
// sequentially (the next cursor may depend on the last item of the previous
// page) and items within a page are processed in order. name tags the
// per-item failure logs.
func Run[T any](ctx context.Context, name string, src Source[T], process ProcessFunc[T], opts Options) (Counters, error) {
	var c Counters

	cursor := ""
	for page := 0; ; page++ {
		if opts.MaxPages > 0 && page >= opts.MaxPages {
			break
		}
		if opts.MaxItems > 0 && c.Requested >= opts.MaxItems {
			break
		}

		size := opts.PageSize
		if opts.MaxItems > 0 && opts.MaxItems-c.Requested < size {
			size = opts.MaxItems - c.Requested
		}

		items, next, err := src.FetchPage(ctx, cursor, size)
		if err != nil {
			return c, err
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			if opts.MaxItems > 0 && c.Requested >= opts.MaxItems {
				break
			}
			c.Requested++
			if err := process(ctx, item); err != nil {
				c.Failed++
				log.Printf("[%s] item failed: %v", name, err)
				continue
			}
			c.Success++
		}

		if next == "" {
			break
		}
		cursor = next
	}

	return c, nil
}
