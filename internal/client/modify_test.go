package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// partitionServer serves a LogicalPartition at /rest/api/uom/LogicalPartition/lpar-1
// whose version tag advances on every fetch, and records the conditional
// writes it receives. The first `conflicts` writes are rejected with 412.
type partitionServer struct {
	*httptest.Server

	fetches   int
	ifMatches []string
	bodies    []string
	conflicts int
}

func newPartitionServer(t *testing.T) *partitionServer {
	t.Helper()

	ps := &partitionServer{}

	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/uom/LogicalPartition/lpar-1", r.URL.Path)

		location := "http://" + r.Host + "/rest/api/uom/LogicalPartition/lpar-1"

		switch r.Method {
		case http.MethodGet:
			ps.fetches++

			etag := etagForFetch(ps.fetches)
			_, _ = w.Write([]byte(entryXML("LogicalPartition", "lpar-1", etag, location,
				"<PartitionName>lpar1</PartitionName><PartitionState>running</PartitionState>")))
		case http.MethodPut:
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			ps.ifMatches = append(ps.ifMatches, r.Header.Get("If-Match"))
			ps.bodies = append(ps.bodies, string(body))

			if ps.conflicts > 0 {
				ps.conflicts--

				w.WriteHeader(http.StatusPreconditionFailed)

				return
			}

			_, _ = w.Write([]byte(entryXML("LogicalPartition", "lpar-1", etagForFetch(ps.fetches+1), location,
				"<PartitionName>renamed</PartitionName><PartitionState>running</PartitionState>")))
		}
	}))

	t.Cleanup(ps.Close)

	return ps
}

func etagForFetch(n int) string {
	return strconv.Itoa(n)
}

func TestClient_Modify(t *testing.T) {
	t.Run("clean update succeeds on the first attempt", func(t *testing.T) {
		server := newPartitionServer(t)
		c := newTestClient(t, server.URL)

		entity, err := c.Modify(context.Background(), "/rest/api/uom/LogicalPartition/lpar-1", func(p *hmc.Entity) error {
			return p.Set("Name", "renamed")
		}, 3)
		require.NoError(t, err)

		assert.Equal(t, 1, server.fetches)
		require.Len(t, server.ifMatches, 1)
		assert.Equal(t, "1", server.ifMatches[0])
		assert.Contains(t, server.bodies[0], "<PartitionName>renamed</PartitionName>")

		name, ok := entity.Get("Name")
		require.True(t, ok)
		assert.Equal(t, "renamed", name)
	})

	t.Run("conflict re-fetches and resubmits with the fresh tag", func(t *testing.T) {
		server := newPartitionServer(t)
		server.conflicts = 1
		c := newTestClient(t, server.URL)

		entity, err := c.Modify(context.Background(), "/rest/api/uom/LogicalPartition/lpar-1", func(p *hmc.Entity) error {
			return p.Set("Name", "renamed")
		}, 3)
		require.NoError(t, err)

		assert.Equal(t, 2, server.fetches)
		require.Len(t, server.ifMatches, 2)
		assert.Equal(t, "1", server.ifMatches[0])
		assert.Equal(t, "2", server.ifMatches[1])
		assert.Contains(t, server.bodies[1], "<PartitionName>renamed</PartitionName>")
		assert.NotNil(t, entity)
	})

	t.Run("exhausted budget surfaces a conflict error", func(t *testing.T) {
		server := newPartitionServer(t)
		server.conflicts = 10
		c := newTestClient(t, server.URL)

		_, err := c.Modify(context.Background(), "/rest/api/uom/LogicalPartition/lpar-1", func(p *hmc.Entity) error {
			return p.Set("Name", "renamed")
		}, 2)
		require.Error(t, err)
		assert.True(t, hmc.IsConflict(err))

		conflictErr := &hmc.ConflictError{}
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, 2, conflictErr.Attempts)
		assert.Len(t, server.ifMatches, 2)
	})

	t.Run("non-conflict failures are fatal", func(t *testing.T) {
		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			location := "http://" + r.Host + "/rest/api/uom/LogicalPartition/lpar-1"

			if r.Method == http.MethodGet {
				_, _ = w.Write([]byte(entryXML("LogicalPartition", "lpar-1", "1", location, "<PartitionName>lpar1</PartitionName>")))

				return
			}

			attempts++

			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		_, err := c.Modify(context.Background(), "/rest/api/uom/LogicalPartition/lpar-1", func(p *hmc.Entity) error {
			return p.Set("Name", "renamed")
		}, 5)
		require.Error(t, err)
		assert.False(t, hmc.IsConflict(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("mutation errors abort before any write", func(t *testing.T) {
		server := newPartitionServer(t)
		c := newTestClient(t, server.URL)

		_, err := c.Modify(context.Background(), "/rest/api/uom/LogicalPartition/lpar-1", func(p *hmc.Entity) error {
			return p.Set("NoSuchField", "value")
		}, 3)
		require.Error(t, err)
		assert.Empty(t, server.ifMatches)
	})

	t.Run("rejects a zero attempt budget", func(t *testing.T) {
		c := newTestClient(t, "https://console.invalid")

		_, err := c.Modify(context.Background(), "/rest/api/uom/LogicalPartition/lpar-1", func(p *hmc.Entity) error {
			return nil
		}, 0)
		require.ErrorIs(t, err, hmc.ErrInvalidMaxAttempt)
	})

	t.Run("empty echo falls back to the submitted state", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			location := "http://" + r.Host + "/rest/api/uom/LogicalPartition/lpar-1"

			if r.Method == http.MethodGet {
				_, _ = w.Write([]byte(entryXML("LogicalPartition", "lpar-1", "1", location, "<PartitionName>lpar1</PartitionName>")))

				return
			}

			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		entity, err := c.Modify(context.Background(), "/rest/api/uom/LogicalPartition/lpar-1", func(p *hmc.Entity) error {
			return p.Set("Name", "renamed")
		}, 3)
		require.NoError(t, err)

		name, _ := entity.Get("Name")
		assert.Equal(t, "renamed", name)
	})
}

func TestClient_ModifyEntity(t *testing.T) {
	t.Run("first attempt reuses the fetched entity", func(t *testing.T) {
		server := newPartitionServer(t)
		c := newTestClient(t, server.URL)

		partition, err := c.LogicalPartitions().Get(context.Background(), "lpar-1")
		require.NoError(t, err)
		require.Equal(t, 1, server.fetches)

		_, err = c.ModifyEntity(context.Background(), partition.Entity, func(p *hmc.Entity) error {
			return p.Set("Name", "renamed")
		}, 3)
		require.NoError(t, err)

		// No re-fetch: the conditional write rides on the tag captured by the
		// caller's own Get.
		assert.Equal(t, 1, server.fetches)
		require.Len(t, server.ifMatches, 1)
		assert.Equal(t, "1", server.ifMatches[0])
	})

	t.Run("retries re-fetch through the self link", func(t *testing.T) {
		server := newPartitionServer(t)
		server.conflicts = 1
		c := newTestClient(t, server.URL)

		partition, err := c.LogicalPartitions().Get(context.Background(), "lpar-1")
		require.NoError(t, err)

		_, err = c.ModifyEntity(context.Background(), partition.Entity, func(p *hmc.Entity) error {
			return p.Set("Name", "renamed")
		}, 3)
		require.NoError(t, err)

		assert.Equal(t, 2, server.fetches)
		require.Len(t, server.ifMatches, 2)
		assert.Equal(t, "1", server.ifMatches[0])
		assert.Equal(t, "2", server.ifMatches[1])
	})

	t.Run("requires a self link", func(t *testing.T) {
		entity, err := hmc.NewEmbedded(hmc.KindLogicalPartition, etree.NewElement("LogicalPartition"))
		require.NoError(t, err)

		c := newTestClient(t, "https://console.invalid")

		_, err = c.ModifyEntity(context.Background(), entity, func(p *hmc.Entity) error {
			return nil
		}, 3)
		require.ErrorIs(t, err, hmc.ErrNoSelfLink)
	})
}
