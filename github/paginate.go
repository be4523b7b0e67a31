package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"maps"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mbrinkhoff/pontos/httpclient"
	"github.com/mbrinkhoff/pontos/logger"
	"github.com/mbrinkhoff/pontos/observability"
	"github.com/mbrinkhoff/pontos/schema"
)

// PerPage is the page size requested from listing endpoints.
const PerPage = 100

// PaginationError reports a listing page that does not have the expected
// shape. It is never turned into an empty result.
type PaginationError struct {
	Page   int
	URL    string
	Key    string
	Reason string
	Err    error
}

func (e *PaginationError) Error() string {
	msg := fmt.Sprintf("github: listing page %d of %s: %s", e.Page, e.URL, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PaginationError) Unwrap() error {
	return e.Err
}

// Result is one item of a Stream: either a value or the error that ended
// the listing.
type Result[T any] struct {
	Value T
	Err   error
}

// Pager describes a paginated listing. Nothing is fetched until one of its
// consuming methods is called, and each call starts a fresh listing.
type Pager[T any] struct {
	client *Client
	path   string
	query  map[string]string
	// key is the object field holding the items; "" for bare arrays.
	key string
	err error
}

func newPager[T any](c *Client, path, key string, query map[string]string) *Pager[T] {
	return &Pager[T]{client: c, path: path, key: key, query: query}
}

// failedPager returns a Pager whose listing fails immediately with err.
func failedPager[T any](err error) *Pager[T] {
	return &Pager[T]{err: err}
}

// All fetches every page and returns the items in server order. On error it
// returns the items received before the failure together with the error.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	it := p.Iter()
	defer func() { _ = it.Close() }()

	var items []T
	for {
		item, ok, err := it.Next(ctx)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

// Iter returns a pull iterator over the listing. Each Next call takes the
// context for the page request it may issue.
func (p *Pager[T]) Iter() *Iterator[T] {
	return &Iterator[T]{
		pager:         p,
		page:          1,
		correlationID: uuid.NewString(),
		err:           p.err,
	}
}

// Seq returns the listing as a range-over-func sequence. Iteration stops
// after the first error.
func (p *Pager[T]) Seq(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := p.Iter()
		defer func() { _ = it.Close() }()
		for {
			item, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(item, nil) {
				return
			}
		}
	}
}

// Stream runs the listing in a producer goroutine. The channel is closed
// after the last item or after the first error. Canceling ctx stops the
// producer before its next page request.
func (p *Pager[T]) Stream(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T])
	go func() {
		defer close(out)
		for item, err := range p.Seq(ctx) {
			select {
			case out <- Result[T]{Value: item, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Iterator pulls listing items one page at a time.
type Iterator[T any] struct {
	pager         *Pager[T]
	page          int
	next          string
	buf           []T
	pos           int
	done          bool
	err           error
	seen          int
	correlationID string
}

// Next returns the next item. It returns (zero, false, nil) when the
// listing is exhausted. Errors are sticky.
func (it *Iterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		if it.err != nil {
			return zero, false, it.err
		}
		if it.pos < len(it.buf) {
			item := it.buf[it.pos]
			it.pos++
			return item, true, nil
		}
		if it.done {
			return zero, false, nil
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return zero, false, err
		}
	}
}

// Close stops the iterator. Subsequent calls to Next report exhaustion.
func (it *Iterator[T]) Close() error {
	it.done = true
	it.buf = nil
	it.pos = 0
	return nil
}

// fetch requests the next page and decides how the listing continues.
func (it *Iterator[T]) fetch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := it.pager
	c := p.client
	req := httpclient.Request{Method: http.MethodGet}
	if it.next != "" {
		req.Path = it.next
	} else {
		req.Path = p.path
		req.Query = maps.Clone(p.query)
		if req.Query == nil {
			req.Query = make(map[string]string, 2)
		}
		req.Query["per_page"] = strconv.Itoa(PerPage)
		req.Query["page"] = strconv.Itoa(it.page)
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanAPIListing)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrHTTPRoute, p.path)
	observability.SetSpanAttribute(ctx, observability.AttrPage, it.page)
	observability.SetSpanAttribute(ctx, observability.AttrCorrelationID, it.correlationID)

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}

	items, err := decodePage[T](resp.Body, p.key)
	if err != nil {
		observability.SetSpanError(ctx, err)
		var schemaErr *schema.Error
		if errors.As(err, &schemaErr) {
			return err
		}
		return &PaginationError{Page: it.page, URL: req.Path, Key: p.key, Reason: "malformed listing", Err: err}
	}

	observability.SetSpanAttribute(ctx, observability.AttrItems, len(items))
	if c.metrics != nil {
		c.metrics.RecordPage(ctx, p.path, len(items))
	}
	c.log.Debug("fetched page", logger.Fields(
		logger.FieldCorrelationID, it.correlationID,
		logger.FieldPath, p.path,
		logger.FieldPage, it.page,
		logger.FieldItems, len(items),
	))

	it.buf = items
	it.pos = 0
	it.seen += len(items)

	// A Link header is authoritative. Without one, a short page ends the
	// listing; a full page is followed by a request for the next one, so
	// totals that are exact multiples of PerPage end on an empty page.
	switch {
	case resp.HasLinks():
		it.next = resp.Links()["next"]
		it.done = it.next == ""
	case len(items) < PerPage:
		it.done = true
	}
	if it.done {
		c.log.Debug("listing complete", logger.Fields(
			logger.FieldCorrelationID, it.correlationID,
			logger.FieldPath, p.path,
			logger.FieldItems, it.seen,
		))
	}
	it.page++
	return nil
}

// decodePage extracts and decodes the items of one listing page.
func decodePage[T any](body []byte, key string) ([]T, error) {
	raw := body
	if key != "" {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("response is not an object: %w", err)
		}
		listing, ok := envelope[key]
		if !ok {
			return nil, fmt.Errorf("missing listing key %q", key)
		}
		raw = listing
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("listing %q is null", key)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("listing %q is not an array: %w", key, err)
	}

	items := make([]T, 0, len(elems))
	for i, elem := range elems {
		item, err := schema.Decode[T](elem)
		if err != nil {
			var schemaErr *schema.Error
			if errors.As(err, &schemaErr) {
				schemaErr.Field = itemField(key, i, schemaErr.Field)
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func itemField(key string, index int, field string) string {
	path := key + "[" + strconv.Itoa(index) + "]"
	if field == "" {
		return path
	}
	return path + "." + field
}
