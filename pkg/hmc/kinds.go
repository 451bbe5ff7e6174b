package hmc

// Attribute tables for the concrete kinds in the registry. Paths are relative
// to the payload element; field existence is driven entirely by these tables,
// so one generic constructor serves every shape.

var managementConsoleSchema = &Schema{
	Kind: KindManagementConsole,
	Fields: map[string]string{
		"Name":       "ManagementConsoleName",
		"Version":    "BaseVersion",
		"BuildLevel": "VersionInfo/BuildLevel",
	},
}

var managedSystemSchema = &Schema{
	Kind: KindManagedSystem,
	Fields: map[string]string{
		"Name":                    "SystemName",
		"State":                   "State",
		"Hostname":                "Hostname",
		"IPAddress":               "PrimaryIPAddress",
		"MachineType":             "MachineTypeModelAndSerialNumber/MachineType",
		"Model":                   "MachineTypeModelAndSerialNumber/Model",
		"SerialNumber":            "MachineTypeModelAndSerialNumber/SerialNumber",
		"InstalledMemory":         "AssociatedSystemMemoryConfiguration/InstalledSystemMemory",
		"AvailableMemory":         "AssociatedSystemMemoryConfiguration/CurrentAvailableSystemMemory",
		"InstalledProcessorUnits": "AssociatedSystemProcessorConfiguration/InstalledSystemProcessorUnits",
		"AvailableProcessorUnits": "AssociatedSystemProcessorConfiguration/CurrentAvailableSystemProcessorUnits",
	},
}

// basePartitionSchema is the shared ancestor table of LogicalPartition and
// VirtualIOServer. It is not registered: no entry ever carries it directly.
var basePartitionSchema = &Schema{
	Kind: "BasePartition",
	Fields: map[string]string{
		"Name":            "PartitionName",
		"ID":              "PartitionID",
		"State":           "PartitionState",
		"Type":            "PartitionType",
		"Memory":          "PartitionMemoryConfiguration/CurrentMemory",
		"ProcessorUnits":  "PartitionProcessorConfiguration/CurrentProcessorUnits",
		"RMCState":        "ResourceMonitoringControlState",
		"RMCIPAddress":    "ResourceMonitoringIPAddress",
		"OperatingSystem": "OperatingSystemVersion",
		"ReferenceCode":   "ReferenceCode",
	},
}

var logicalPartitionSchema = &Schema{
	Kind:   KindLogicalPartition,
	Parent: basePartitionSchema,
	Fields: map[string]string{
		"RestrictedIO": "IsRestrictedIOPartition",
		"BootMode":     "BootMode",
	},
}

var virtualIOServerSchema = &Schema{
	Kind:   KindVirtualIOServer,
	Parent: basePartitionSchema,
	Fields: map[string]string{
		"LicenseAccepted": "VirtualIOServerLicenseAccepted",
	},
}

var virtualSwitchSchema = &Schema{
	Kind: KindVirtualSwitch,
	Fields: map[string]string{
		"Name": "SwitchName",
		"Mode": "SwitchMode",
		"ID":   "SwitchID",
	},
}

var virtualNetworkSchema = &Schema{
	Kind: KindVirtualNetwork,
	Fields: map[string]string{
		"Name":   "NetworkName",
		"VLANID": "NetworkVLANID",
		"Tagged": "TaggedNetwork",
	},
}

var jobResponseSchema = &Schema{
	Kind: KindJobResponse,
	Fields: map[string]string{
		"JobID":   "JobID",
		"Status":  "Status",
		"Message": "ResponseException/Message",
	},
}

var virtualSCSIMappingSchema = &Schema{
	Kind: KindVirtualSCSIMapping,
	Fields: map[string]string{
		"ClientAdapterSlot": "ClientAdapter/VirtualSlotNumber",
		"ServerAdapterSlot": "ServerAdapter/VirtualSlotNumber",
	},
}

var physicalVolumeSchema = &Schema{
	Kind: KindPhysicalVolume,
	Fields: map[string]string{
		"Name":     "VolumeName",
		"Capacity": "VolumeCapacity",
		"State":    "VolumeState",
		"UDID":     "VolumeUniqueID",
	},
}

var virtualDiskSchema = &Schema{
	Kind: KindVirtualDisk,
	Fields: map[string]string{
		"Name":     "DiskName",
		"Capacity": "DiskCapacity",
		"Label":    "DiskLabel",
	},
}

var virtualOpticalMediaSchema = &Schema{
	Kind: KindVirtualOpticalMedia,
	Fields: map[string]string{
		"Name":      "MediaName",
		"Size":      "Size",
		"MountType": "MountType",
	},
}

var jobParameterSchema = &Schema{
	Kind: KindJobParameter,
	Fields: map[string]string{
		"Name":  "ParameterName",
		"Value": "ParameterValue",
	},
}

// Typed wrappers. Each concrete kind is one statically declared struct over
// the shared Entity capability; the accessors below name the fields callers
// reach for most, everything else stays available through Get/Set.

// ManagementConsole represents the console's own entity.
type ManagementConsole struct {
	*Entity
}

func (c *ManagementConsole) Name() string       { return c.getString("Name") }
func (c *ManagementConsole) Version() string    { return c.getString("Version") }
func (c *ManagementConsole) BuildLevel() string { return c.getString("BuildLevel") }

// ManagedSystem represents one physical system managed by the console.
type ManagedSystem struct {
	*Entity
}

func (s *ManagedSystem) Name() string         { return s.getString("Name") }
func (s *ManagedSystem) State() string        { return s.getString("State") }
func (s *ManagedSystem) Hostname() string     { return s.getString("Hostname") }
func (s *ManagedSystem) SerialNumber() string { return s.getString("SerialNumber") }

// PartitionIDs returns the UUIDs of the partitions hosted by this system,
// extracted from the associated-partition link collection.
func (s *ManagedSystem) PartitionIDs() []string {
	return s.LinkedIDs("AssociatedLogicalPartitions", -1)
}

// LogicalPartition represents a client partition.
type LogicalPartition struct {
	*Entity
}

func (p *LogicalPartition) Name() string     { return p.getString("Name") }
func (p *LogicalPartition) State() string    { return p.getString("State") }
func (p *LogicalPartition) Memory() string   { return p.getString("Memory") }
func (p *LogicalPartition) RMCState() string { return p.getString("RMCState") }

// VirtualIOServer represents a VIOS partition.
type VirtualIOServer struct {
	*Entity
}

func (v *VirtualIOServer) Name() string  { return v.getString("Name") }
func (v *VirtualIOServer) State() string { return v.getString("State") }

// SCSIMappings returns the virtual SCSI mappings embedded in the server's
// payload.
func (v *VirtualIOServer) SCSIMappings() []*VirtualSCSIMapping {
	children := v.Children("VirtualSCSIMappings", KindVirtualSCSIMapping)

	mappings := make([]*VirtualSCSIMapping, 0, len(children))
	for _, child := range children {
		mappings = append(mappings, &VirtualSCSIMapping{Entity: child})
	}

	return mappings
}

// VirtualSCSIMapping is an embedded entity: a storage device mapped from a
// VIOS to a client partition. It has no identity of its own and is owned by
// the containing VIOS payload.
type VirtualSCSIMapping struct {
	*Entity
}

// Storage returns the backing device of the mapping. The device element is
// polymorphic (physical volume, virtual disk, optical media); kinds the
// registry does not know are skipped so new device types on the console do
// not break existing callers.
func (m *VirtualSCSIMapping) Storage() []*Entity {
	return m.Children("Storage")
}

// VirtualSwitch represents a virtual switch on a managed system.
type VirtualSwitch struct {
	*Entity
}

func (s *VirtualSwitch) Name() string { return s.getString("Name") }
func (s *VirtualSwitch) Mode() string { return s.getString("Mode") }

// VirtualNetworkIDs returns the UUIDs of the networks attached to this
// switch.
func (s *VirtualSwitch) VirtualNetworkIDs() []string {
	return s.LinkedIDs("VirtualNetworks", -1)
}

// VirtualNetwork represents a VLAN-backed virtual network.
type VirtualNetwork struct {
	*Entity
}

func (n *VirtualNetwork) Name() string   { return n.getString("Name") }
func (n *VirtualNetwork) VLANID() string { return n.getString("VLANID") }

func (e *Entity) getString(field string) string {
	value, _ := e.Get(field)

	return value
}
