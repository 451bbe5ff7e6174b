package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hmc-client/internal/client"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

func TestNew(t *testing.T) {
	t.Run("requires an endpoint", func(t *testing.T) {
		_, err := client.New(&hmc.Config{})
		require.ErrorIs(t, err, hmc.ErrEndpointRequired)
	})

	t.Run("builds a client with all resource surfaces", func(t *testing.T) {
		c, err := client.New(&hmc.Config{Endpoint: "console.example.com", UserID: "hscroot", Password: "abc123"})
		require.NoError(t, err)

		assert.NotNil(t, c.ManagedSystems())
		assert.NotNil(t, c.LogicalPartitions())
		assert.NotNil(t, c.VirtualIOServers())
		assert.NotNil(t, c.VirtualSwitches())
		assert.NotNil(t, c.VirtualNetworks())
		assert.NotNil(t, c.Jobs())
	})
}

func TestManagedSystemsClient(t *testing.T) {
	t.Run("list keeps only managed systems", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/ManagedSystem", r.URL.Path)

			_, _ = w.Write([]byte(feedXML(
				entryXML("ManagedSystem", "sys-1", "", "", "<SystemName>p950-a</SystemName><State>operating</State>"),
				entryXML("LogicalPartition", "lpar-9", "", "", "<PartitionName>stray</PartitionName>"),
				entryXML("ManagedSystem", "sys-2", "", "", "<SystemName>p950-b</SystemName><State>standby</State>"),
			)))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		systems, err := c.ManagedSystems().List(context.Background())
		require.NoError(t, err)
		require.Len(t, systems, 2)
		assert.Equal(t, "p950-a", systems[0].Name())
		assert.Equal(t, "p950-b", systems[1].Name())
		assert.Equal(t, "standby", systems[1].State())
	})

	t.Run("get resolves nested fields and relationships", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/ManagedSystem/sys-1", r.URL.Path)

			payload := "<SystemName>p950-a</SystemName>" +
				"<MachineTypeModelAndSerialNumber><MachineType>9009</MachineType><Model>42A</Model><SerialNumber>SN123</SerialNumber></MachineTypeModelAndSerialNumber>" +
				`<AssociatedLogicalPartitions>` +
				`<link href="https://` + r.Host + `/rest/api/uom/LogicalPartition/lpar-1"/>` +
				`<link href="https://` + r.Host + `/rest/api/uom/LogicalPartition/lpar-2"/>` +
				`</AssociatedLogicalPartitions>`

			_, _ = w.Write([]byte(entryXML("ManagedSystem", "sys-1", "", "", payload)))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		system, err := c.ManagedSystems().Get(context.Background(), "sys-1")
		require.NoError(t, err)
		assert.Equal(t, "p950-a", system.Name())
		assert.Equal(t, "SN123", system.SerialNumber())
		assert.Equal(t, []string{"lpar-1", "lpar-2"}, system.PartitionIDs())
	})

	t.Run("get of the wrong kind is fatal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(entryXML("LogicalPartition", "lpar-1", "", "", "<PartitionName>notasystem</PartitionName>")))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		_, err := c.ManagedSystems().Get(context.Background(), "sys-1")
		require.Error(t, err)

		protoErr := &hmc.ProtocolError{}
		require.ErrorAs(t, err, &protoErr)
	})
}

func TestLogicalPartitionsClient(t *testing.T) {
	t.Run("list scoped to a system", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/ManagedSystem/sys-1/LogicalPartition", r.URL.Path)

			_, _ = w.Write([]byte(feedXML(
				entryXML("LogicalPartition", "lpar-1", "", "", "<PartitionName>db01</PartitionName><PartitionState>running</PartitionState>"),
			)))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		partitions, err := c.LogicalPartitions().ListForSystem(context.Background(), "sys-1")
		require.NoError(t, err)
		require.Len(t, partitions, 1)
		assert.Equal(t, "db01", partitions[0].Name())
		assert.Equal(t, "running", partitions[0].State())
	})

	t.Run("delete", func(t *testing.T) {
		var deleted string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			deleted = r.URL.Path

			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		require.NoError(t, c.LogicalPartitions().Delete(context.Background(), "lpar-1"))
		assert.Equal(t, "/rest/api/uom/LogicalPartition/lpar-1", deleted)
	})

	t.Run("rename runs the conditional-update loop", func(t *testing.T) {
		server := newPartitionServer(t)
		c := newTestClient(t, server.URL)

		partition, err := c.LogicalPartitions().Rename(context.Background(), "lpar-1", "renamed")
		require.NoError(t, err)
		assert.Equal(t, "renamed", partition.Name())
		require.Len(t, server.ifMatches, 1)
		assert.Equal(t, "1", server.ifMatches[0])
	})

	t.Run("shutdown submits a power-off job with the shutdown operation", func(t *testing.T) {
		var submitted string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/LogicalPartition/lpar-1/do/PowerOff", r.URL.Path)

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			submitted = string(body)

			location := "http://" + r.Host + "/rest/api/uom/jobs/job-1"
			_, _ = w.Write([]byte(jobResponseXML("job-1", location, hmc.JobStateNotStarted, nil)))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)
		job := c.LogicalPartitions().Shutdown("lpar-1", map[string]string{"immediate": "true"})

		require.NoError(t, job.Submit(context.Background()))
		assert.Contains(t, submitted, "<OperationName>PowerOff</OperationName>")
		assert.Contains(t, submitted, "<ParameterName>operation</ParameterName>")
		assert.Contains(t, submitted, "<ParameterValue>shutdown</ParameterValue>")
		assert.Contains(t, submitted, "<ParameterName>immediate</ParameterName>")
	})

	t.Run("shutdown lets callers override the operation", func(t *testing.T) {
		var submitted string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			submitted = string(body)

			location := "http://" + r.Host + "/rest/api/uom/jobs/job-1"
			_, _ = w.Write([]byte(jobResponseXML("job-1", location, hmc.JobStateNotStarted, nil)))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)
		job := c.LogicalPartitions().Shutdown("lpar-1", map[string]string{"operation": "osshutdown"})

		require.NoError(t, job.Submit(context.Background()))
		assert.Contains(t, submitted, "<ParameterValue>osshutdown</ParameterValue>")
		assert.NotContains(t, submitted, "<ParameterValue>shutdown</ParameterValue>")
	})
}

func TestVirtualIOServersClient(t *testing.T) {
	t.Run("storage mappings are polymorphic", func(t *testing.T) {
		payload := "<PartitionName>vios1</PartitionName>" +
			"<VirtualSCSIMappings>" +
			"<VirtualSCSIMapping>" +
			"<ClientAdapter><VirtualSlotNumber>2</VirtualSlotNumber></ClientAdapter>" +
			"<Storage>" +
			"<PhysicalVolume><VolumeName>hdisk3</VolumeName></PhysicalVolume>" +
			"<VirtualDisk><DiskName>lv01</DiskName></VirtualDisk>" +
			"<HolographicVolume><VolumeName>future</VolumeName></HolographicVolume>" +
			"</Storage>" +
			"</VirtualSCSIMapping>" +
			"</VirtualSCSIMappings>"

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/VirtualIOServer/vios-1", r.URL.Path)

			_, _ = w.Write([]byte(entryXML("VirtualIOServer", "vios-1", "", "", payload)))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		vios, err := c.VirtualIOServers().Get(context.Background(), "vios-1")
		require.NoError(t, err)
		assert.Equal(t, "vios1", vios.Name())

		mappings := vios.SCSIMappings()
		require.Len(t, mappings, 1)

		storage := mappings[0].Storage()
		// The unregistered device kind is dropped, not fatal.
		require.Len(t, storage, 2)
		assert.Equal(t, hmc.KindPhysicalVolume, storage[0].Kind())
		assert.Equal(t, hmc.KindVirtualDisk, storage[1].Kind())
	})
}

func TestVirtualNetworking(t *testing.T) {
	t.Run("switches are scoped under their system", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/ManagedSystem/sys-1/VirtualSwitch", r.URL.Path)

			payload := "<SwitchName>ETHERNET0</SwitchName><SwitchMode>Veb</SwitchMode>" +
				`<VirtualNetworks>` +
				`<link href="https://` + r.Host + `/rest/api/uom/ManagedSystem/sys-1/VirtualNetwork/net-1"/>` +
				`</VirtualNetworks>`

			_, _ = w.Write([]byte(feedXML(entryXML("VirtualSwitch", "vswitch-1", "", "", payload))))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		switches, err := c.VirtualSwitches().List(context.Background(), "sys-1")
		require.NoError(t, err)
		require.Len(t, switches, 1)
		assert.Equal(t, "ETHERNET0", switches[0].Name())
		assert.Equal(t, "Veb", switches[0].Mode())
		assert.Equal(t, []string{"net-1"}, switches[0].VirtualNetworkIDs())
	})

	t.Run("network get", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/ManagedSystem/sys-1/VirtualNetwork/net-1", r.URL.Path)

			_, _ = w.Write([]byte(entryXML("VirtualNetwork", "net-1", "", "",
				"<NetworkName>VLAN42-ETHERNET0</NetworkName><NetworkVLANID>42</NetworkVLANID>")))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		network, err := c.VirtualNetworks().Get(context.Background(), "sys-1", "net-1")
		require.NoError(t, err)
		assert.Equal(t, "VLAN42-ETHERNET0", network.Name())
		assert.Equal(t, "42", network.VLANID())
	})
}

func TestClient_ManagementConsole(t *testing.T) {
	t.Run("returns the console entity", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/uom/ManagementConsole", r.URL.Path)

			_, _ = w.Write([]byte(feedXML(entryXML("ManagementConsole", "mc-1", "", "",
				"<ManagementConsoleName>hmc01</ManagementConsoleName><BaseVersion>V10R2</BaseVersion>"))))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		console, err := c.ManagementConsole(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "hmc01", console.Name())
		assert.Equal(t, "V10R2", console.Version())
	})

	t.Run("empty console feed is a protocol error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(feedXML()))
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		_, err := c.ManagementConsole(context.Background())
		require.Error(t, err)

		protoErr := &hmc.ProtocolError{}
		require.ErrorAs(t, err, &protoErr)
	})
}
