// internal/registers/registers.go
package registers

// Kind identifies the wire encoding of a register.
// The set is closed: every table entry carries exactly one of these.
type Kind int

const (
	String8 Kind = iota // 8 words, NUL-padded text
	String32            // 32 words, NUL-padded text
	Float32             // 2 words, IEEE 754 single
	UInt16              // 1 word
	UInt32              // 2 words
	Int16               // 1 word
	UInt8               // 1 word; device widens the 8-bit value to a full register
)

// Words returns the register span the kind occupies on the wire.
func (k Kind) Words() uint16 {
	switch k {
	case String8:
		return 8
	case String32:
		return 32
	case Float32, UInt32:
		return 2
	default:
		return 1
	}
}

// String returns the datatype name used by the Kostal interface description.
func (k Kind) String() string {
	switch k {
	case String8:
		return "Strg8"
	case String32:
		return "Strg32"
	case Float32:
		return "Float"
	case UInt16:
		return "U16"
	case UInt32:
		return "U32"
	case Int16:
		return "S16"
	case UInt8:
		return "U8"
	default:
		return "unknown"
	}
}

// Descriptor binds a register address to its display name and encoding.
// Descriptors are immutable; the table below is the only source of them.
type Descriptor struct {
	Addr uint16
	Name string
	Kind Kind
}

// AddrGenerationPowerActual is register 575. The device occasionally returns
// the S16 maximum (32767) instead of 0; the poller clamps that artifact.
const AddrGenerationPowerActual uint16 = 575

// table lists every readable register of the Plenticore, ascending by address.
// Registers 212 (battery state) and 578 (total energy) were dropped from the
// vendor documentation and are intentionally absent.
var table = []Descriptor{
	{6, "Inverter article number", String8},
	{46, "Software-Version IO-Controller (IOC)", String8},
	{56, "Inverter State", UInt16},
	{100, "Total DC power", Float32},
	{104, "State of energy manager", Float32},
	{106, "Home own consumption from battery", Float32},
	{108, "Home own consumption from grid", Float32},
	{110, "Total home consumption Battery", Float32},
	{112, "Total home consumption Grid", Float32},
	{114, "Total home consumption PV", Float32},
	{116, "Home own consumption from PV", Float32},
	{118, "Total home consumption", Float32},
	{120, "Isolation resistance", Float32},
	{122, "Power limit from EVU", Float32},
	{124, "Total home consumption rate", Float32},
	{144, "Worktime", Float32},
	{150, "Actual cos phi", Float32},
	{152, "Grid frequency", Float32},
	{154, "Current Phase 1", Float32},
	{156, "Active power Phase 1", Float32},
	{158, "Voltage Phase 1", Float32},
	{160, "Current Phase 2", Float32},
	{162, "Active power Phase 2", Float32},
	{164, "Voltage Phase 2", Float32},
	{166, "Current Phase 3", Float32},
	{168, "Active power Phase 3", Float32},
	{170, "Voltage Phase 3", Float32},
	{172, "Total AC active power", Float32},
	{174, "Total AC reactive power", Float32},
	{178, "Total AC apparent power", Float32},
	{190, "Battery charge current", Float32},
	{194, "Number of battery cycles", Float32},
	{200, "Actual battery charge -minus or discharge -plus current", Float32},
	{202, "PSSB fuse state", Float32},
	{208, "Battery ready flag", Float32},
	{210, "Act. state of charge", Float32},
	{214, "Battery temperature", Float32},
	{216, "Battery voltage", Float32},
	{218, "Cos phi (powermeter)", Float32},
	{220, "Frequency (powermeter)", Float32},
	{222, "Current phase 1 (powermeter)", Float32},
	{224, "Active power phase 1 (powermeter)", Float32},
	{226, "Reactive power phase 1 (powermeter)", Float32},
	{228, "Apparent power phase 1 (powermeter)", Float32},
	{230, "Voltage phase 1 (powermeter)", Float32},
	{232, "Current phase 2 (powermeter)", Float32},
	{234, "Active power phase 2 (powermeter)", Float32},
	{236, "Reactive power phase 2 (powermeter)", Float32},
	{238, "Apparent power phase 2 (powermeter)", Float32},
	{240, "Voltage phase 2 (powermeter)", Float32},
	{242, "Current phase 3 (powermeter)", Float32},
	{244, "Active power phase 3 (powermeter)", Float32},
	{246, "Reactive power phase 3 (powermeter)", Float32},
	{248, "Apparent power phase 3 (powermeter)", Float32},
	{250, "Voltage phase 3 (powermeter)", Float32},
	{252, "Total active power (powermeter)", Float32},
	{254, "Total reactive power (powermeter)", Float32},
	{256, "Total apparent power (powermeter)", Float32},
	{258, "Current DC1", Float32},
	{260, "Power DC1", Float32},
	{266, "Voltage DC1", Float32},
	{268, "Current DC2", Float32},
	{270, "Power DC2", Float32},
	{276, "Voltage DC2", Float32},
	{278, "Current DC3", Float32},
	{280, "Power DC3", Float32},
	{286, "Voltage DC3", Float32},
	{320, "Total yield", Float32},
	{322, "Daily yield", Float32},
	{324, "Yearly yield", Float32},
	{326, "Monthly yield", Float32},
	{512, "Battery Gross Capacity", UInt32},
	{514, "Battery actual SOC", UInt16},
	{515, "Firmware Maincontroller (MC)", UInt32},
	{517, "Battery Manufacturer", String8},
	{525, "Battery Model ID", UInt32},
	{527, "Battery Serial Number", UInt32},
	{529, "Battery Operation mode", UInt32},
	{531, "Inverter Max Power", Float32},
	{575, "Inverter Generation Power (actual)", Int16},
	{577, "Generation Energy", UInt32},
	{580, "Battery Net Capacity", UInt32},
	{582, "Actual battery charge-discharge power", Int16},
	{586, "Battery Firmware", UInt32},
	{588, "Battery Type", UInt16},
	{768, "Productname", String32},
	{800, "Power Class", String32},
	{1024, "Battery charge power (AC) setpoint", Int16},
	{1025, "Power Scale Factor", Int16},
	{1026, "Battery charge power (AC) setpoint, absolute", Float32},
	{1028, "Battery charge current (DC) setpoint, relative", Float32},
	{1030, "Battery charge power (AC) setpoint, relative", Float32},
	{1032, "Battery charge current (DC) setpoint, absolute", Float32},
	{1034, "Battery charge power (DC) setpoint, absolute", Float32},
	{1036, "Battery charge power (DC) setpoint, relative", Float32},
	{1038, "Battery max charge power limit, absolute", UInt32},
	{1040, "Battery max discharge power limit, absolute", UInt32},
	{1042, "Minimum SOC", Float32},
	{1044, "Maximum SOC", Float32},
	{1046, "Total DC charge energy (DC-side to battery)", Float32},
	{1048, "Total DC discharge energy (DC-side from battery)", Float32},
	{1050, "Total AC charge energy (AC-side to battery)", Float32},
	{1052, "Total AC discharge energy (Battery to grid)", Float32},
	{1054, "Total AC charge energy (grid to battery)", Float32},
	{1056, "Total DC PV energy (sum of all PV inputs)", Float32},
	{1058, "Total DC energy from PV1", Float32},
	{1060, "Total DC energy from PV2", Float32},
	{1062, "Total DC energy from PV3", Float32},
	{1064, "Total energy AC-side to grid", Float32},
	{1066, "Total DC power (sum of all PV inputs)", Float32},
	{1068, "Battery work capacity", Float32},
	{1070, "Battery serial number", UInt32},
	{1076, "Maximum charge power limit (readout from battery)", Float32},
	{1078, "Maximum discharge power limit (readout from battery)", Float32},
	{1080, "Battery management mode", UInt8},
	{1082, "Installed sensor type", UInt8},
}

var (
	byAddress = buildAddressIndex()
	byName    = buildNameIndex()
)

func buildAddressIndex() map[uint16]Descriptor {
	m := make(map[uint16]Descriptor, len(table))
	for _, d := range table {
		if _, dup := m[d.Addr]; dup {
			panic("registers: duplicate address in table")
		}
		m[d.Addr] = d
	}
	return m
}

func buildNameIndex() map[string]Descriptor {
	m := make(map[string]Descriptor, len(table))
	for _, d := range table {
		if _, dup := m[d.Name]; dup {
			panic("registers: duplicate name in table")
		}
		m[d.Name] = d
	}
	return m
}

// All returns every descriptor in ascending address order.
// The returned slice is a copy; callers may not mutate the catalog.
func All() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table)
	return out
}

// Count returns the number of catalogued registers.
func Count() int { return len(table) }

// ByAddress looks a descriptor up by register address.
func ByAddress(addr uint16) (Descriptor, bool) {
	d, ok := byAddress[addr]
	return d, ok
}

// ByName looks a descriptor up by display name.
func ByName(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}
