package hmc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

func TestSchema_Inheritance(t *testing.T) {
	parent := &hmc.Schema{
		Kind: "Parent",
		Fields: map[string]string{
			"Name":  "ObjectName",
			"State": "ObjectState",
		},
	}

	child := &hmc.Schema{
		Kind:   "Child",
		Parent: parent,
		Fields: map[string]string{
			"State": "DetailedState",
			"Mode":  "ObjectMode",
		},
	}

	t.Run("effective table is a superset of the parent's keys", func(t *testing.T) {
		names := child.FieldNames()
		assert.ElementsMatch(t, []string{"Name", "State", "Mode"}, names)

		for _, name := range parent.FieldNames() {
			_, ok := child.Path(name)
			assert.True(t, ok, "parent field %s missing from child", name)
		}
	})

	t.Run("subtype path wins on collision", func(t *testing.T) {
		path, ok := child.Path("State")
		require.True(t, ok)
		assert.Equal(t, "DetailedState", path)
	})

	t.Run("inherited field resolves through the parent", func(t *testing.T) {
		path, ok := child.Path("Name")
		require.True(t, ok)
		assert.Equal(t, "ObjectName", path)
	})

	t.Run("undeclared field resolves nowhere", func(t *testing.T) {
		_, ok := child.Path("Flavor")
		assert.False(t, ok)
	})
}

func TestRegisteredPartitionSchemas(t *testing.T) {
	// LogicalPartition and VirtualIOServer share the base partition table.
	lpar, ok := hmc.SchemaFor(hmc.KindLogicalPartition)
	require.True(t, ok)

	vios, ok := hmc.SchemaFor(hmc.KindVirtualIOServer)
	require.True(t, ok)

	for _, field := range []string{"Name", "ID", "State", "Memory", "RMCState"} {
		_, ok := lpar.Path(field)
		assert.True(t, ok, "LogicalPartition missing %s", field)

		_, ok = vios.Path(field)
		assert.True(t, ok, "VirtualIOServer missing %s", field)
	}

	// Subtype-only fields stay private to each subtype.
	_, ok = lpar.Path("RestrictedIO")
	assert.True(t, ok)

	_, ok = vios.Path("RestrictedIO")
	assert.False(t, ok)

	_, ok = vios.Path("LicenseAccepted")
	assert.True(t, ok)
}

func TestRegistryIsClosed(t *testing.T) {
	_, ok := hmc.SchemaFor("QuantumPartition")
	assert.False(t, ok)

	kinds := hmc.RegisteredKinds()
	assert.Contains(t, kinds, hmc.KindManagedSystem)
	assert.Contains(t, kinds, hmc.KindJobResponse)
}
