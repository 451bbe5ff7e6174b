package hmc

// Concrete kinds known to this client. The registry is closed at build time:
// a response naming a kind outside this set is either skipped (feed and
// nested-collection filtering) or fatal (explicit single-entity resolution).
const (
	KindManagementConsole   Kind = "ManagementConsole"
	KindManagedSystem       Kind = "ManagedSystem"
	KindLogicalPartition    Kind = "LogicalPartition"
	KindVirtualIOServer     Kind = "VirtualIOServer"
	KindVirtualSwitch       Kind = "VirtualSwitch"
	KindVirtualNetwork      Kind = "VirtualNetwork"
	KindJobResponse         Kind = "JobResponse"
	KindVirtualSCSIMapping  Kind = "VirtualSCSIMapping"
	KindPhysicalVolume      Kind = "PhysicalVolume"
	KindVirtualDisk         Kind = "VirtualDisk"
	KindVirtualOpticalMedia Kind = "VirtualOpticalMedia"
	KindJobParameter        Kind = "JobParameter"
)

var registry = map[Kind]*Schema{
	KindManagementConsole:   managementConsoleSchema,
	KindManagedSystem:       managedSystemSchema,
	KindLogicalPartition:    logicalPartitionSchema,
	KindVirtualIOServer:     virtualIOServerSchema,
	KindVirtualSwitch:       virtualSwitchSchema,
	KindVirtualNetwork:      virtualNetworkSchema,
	KindJobResponse:         jobResponseSchema,
	KindVirtualSCSIMapping:  virtualSCSIMappingSchema,
	KindPhysicalVolume:      physicalVolumeSchema,
	KindVirtualDisk:         virtualDiskSchema,
	KindVirtualOpticalMedia: virtualOpticalMediaSchema,
	KindJobParameter:        jobParameterSchema,
}

// SchemaFor looks a kind up in the closed registry.
func SchemaFor(kind Kind) (*Schema, bool) {
	schema, ok := registry[kind]

	return schema, ok
}

// RegisteredKinds returns the kinds known to the registry.
func RegisteredKinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}

	return kinds
}
