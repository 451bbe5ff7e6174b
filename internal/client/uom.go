package client

import (
	"context"
	"fmt"
	"sort"

	"github.com/fivetwenty-io/hmc-client/internal/constants"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// Generic fetch/list primitives. Every resource client is a thin layer over
// these: assemble a path, fetch, decode, dispatch through the entity mapper.

// getEntity fetches the single freestanding entity of the given kind at
// path. A response that does not resolve to the requested kind is fatal.
func (c *Client) getEntity(ctx context.Context, path string, kind hmc.Kind) (*hmc.Entity, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", kind, err)
	}

	entry, err := hmc.DecodeEntry(resp.Body)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		return nil, &hmc.ProtocolError{
			Op:     fmt.Sprintf("getting %s", kind),
			Detail: "response holds no entry",
		}
	}

	entity, err := hmc.ParseEntry(entry, kind)
	if err != nil {
		return nil, err
	}

	if entity == nil {
		return nil, &hmc.ProtocolError{
			Op:     fmt.Sprintf("getting %s", kind),
			Detail: fmt.Sprintf("entry does not carry a %s payload", kind),
		}
	}

	return entity, nil
}

// listEntities fetches the feed at path and keeps the entries of the given
// kind; entries of other kinds are dropped, since feeds legitimately mix
// them.
func (c *Client) listEntities(ctx context.Context, path string, kind hmc.Kind) ([]*hmc.Entity, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}

	entries, err := hmc.DecodeFeed(resp.Body)
	if err != nil {
		return nil, err
	}

	return hmc.ParseFeed(entries, kind)
}

// uomPath assembles /rest/api/uom/{Kind}[/{uuid}[...]].
func uomPath(kind hmc.Kind, segments ...string) string {
	path := constants.UOMPath + "/" + string(kind)
	for _, segment := range segments {
		path += "/" + segment
	}

	return path
}

// uomContentType names the payload kind on entity and job submissions.
func uomContentType(kind hmc.Kind) string {
	return constants.ContentTypeUOM + "; type=" + string(kind)
}

// sortedKeys keeps generated documents deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
