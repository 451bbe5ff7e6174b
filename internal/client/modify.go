package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hmc-client/internal/constants"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// The optimistic-concurrency update loop: fetch the current entity, apply
// the caller's in-memory mutation, re-encode the payload tree, and submit it
// to the canonical location conditionally on the version tag captured by
// that same fetch. A version conflict means another writer got there first;
// the loop re-fetches and tries again up to the attempt budget. No lock is
// held at any point; correctness rests entirely on the console rejecting
// stale conditional writes.

// Modify implements hmc.Client.Modify.
func (c *Client) Modify(ctx context.Context, location string, mutate func(*hmc.Entity) error, maxAttempts int) (*hmc.Entity, error) {
	supplier := func(ctx context.Context) (*hmc.Entity, error) {
		return c.fetchFreestanding(ctx, location)
	}

	return c.modify(ctx, location, supplier, mutate, maxAttempts)
}

// ModifyEntity runs the same loop starting from an already-fetched entity.
// The first attempt submits the given entity's tree; retries always re-fetch
// through the entity's self link, since another writer may have changed the
// resource.
func (c *Client) ModifyEntity(ctx context.Context, entity *hmc.Entity, mutate func(*hmc.Entity) error, maxAttempts int) (*hmc.Entity, error) {
	if entity.SelfLink() == "" {
		return nil, hmc.ErrNoSelfLink
	}

	first := entity
	supplier := func(ctx context.Context) (*hmc.Entity, error) {
		if first != nil {
			current := first
			first = nil

			return current, nil
		}

		return c.fetchFreestanding(ctx, entity.SelfLink())
	}

	return c.modify(ctx, entity.SelfLink(), supplier, mutate, maxAttempts)
}

func (c *Client) modify(ctx context.Context, location string, supplier func(context.Context) (*hmc.Entity, error), mutate func(*hmc.Entity) error, maxAttempts int) (*hmc.Entity, error) {
	if maxAttempts < 1 {
		return nil, hmc.ErrInvalidMaxAttempt
	}

	for attempt := 1; ; attempt++ {
		entity, err := supplier(ctx)
		if err != nil {
			return nil, err
		}

		err = mutate(entity)
		if err != nil {
			return nil, fmt.Errorf("applying mutation to %s: %w", entity.Kind(), err)
		}

		submitted, err := c.submitConditional(ctx, entity)
		if err == nil {
			return submitted, nil
		}

		// Only a version conflict is retryable, and only while budget
		// remains. The tag submitted above was captured by this attempt's
		// own fetch, so a retry can never clobber a concurrent writer with
		// a stale tag.
		if !hmc.IsConflict(err) {
			return nil, err
		}

		if attempt >= maxAttempts {
			return nil, &hmc.ConflictError{Location: location, Attempts: maxAttempts}
		}
	}
}

// submitConditional re-encodes the entity's tree and writes it to the
// canonical location, guarded by the version tag captured at fetch time.
func (c *Client) submitConditional(ctx context.Context, entity *hmc.Entity) (*hmc.Entity, error) {
	if entity.SelfLink() == "" {
		return nil, hmc.ErrNoSelfLink
	}

	body, err := entity.Encode()
	if err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if entity.ETag() != "" {
		headers[constants.IfMatchHeader] = entity.ETag()
	}

	resp, err := c.httpClient.Put(ctx, entity.SelfLink(), uomContentType(entity.Kind()), body, headers)
	if err != nil {
		return nil, err
	}

	// The console echoes the updated entity; fall back to the submitted
	// state when the response body is empty.
	entry, err := hmc.DecodeEntry(resp.Body)
	if err != nil || entry == nil {
		return entity, nil
	}

	updated, err := hmc.ParseEntry(entry, entity.Kind())
	if err != nil || updated == nil {
		return entity, nil
	}

	return updated, nil
}

// fetchFreestanding fetches the entity at location, resolving its kind from
// the entry's own type indicator.
func (c *Client) fetchFreestanding(ctx context.Context, location string) (*hmc.Entity, error) {
	resp, err := c.httpClient.Get(ctx, location, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}

	entry, err := hmc.DecodeEntry(resp.Body)
	if err != nil {
		return nil, err
	}

	if entry == nil || entry.Kind() == "" {
		return nil, &hmc.ProtocolError{
			Op:     "fetching entity",
			Detail: fmt.Sprintf("%s returned no typed entry", location),
		}
	}

	entity, err := hmc.ParseEntry(entry, entry.Kind())
	if err != nil {
		return nil, err
	}

	if entity == nil {
		return nil, &hmc.ProtocolError{
			Op:     "fetching entity",
			Detail: fmt.Sprintf("%s returned an entry without a payload", location),
		}
	}

	return entity, nil
}
