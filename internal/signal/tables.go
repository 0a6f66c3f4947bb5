// Package signal maps raw logger counts to physical engine measurements.
package signal

import (
	"fmt"
	"sort"
)

// Class groups the conversion parameters shared by channels of one physical
// kind: physical = Coefficient*raw + Offset, expressed in Unit.
type Class struct {
	Coefficient float64
	Offset      float64
	Unit        string
}

// ChannelSpec describes one data-log channel keyed by its 12-bit code.
type ChannelSpec struct {
	Name       string
	ClassIndex int
	DisplayMin float64
	DisplayMax float64
}

// Channel codes referenced by the summary view.
const (
	CodePropellerSpeed     = 802
	CodeCoolantTemperature = 806
)

var classes = []Class{
	{10.0, 0.0, "rpm/s"},          // 0
	{0.01955034, 0.0, "V"},        // 1
	{9.424778, 0.0, "W"},          // 2
	{0.0001220703, 0.0, "-"},      // 3
	{0.1, 0.0, "Nm"},              // 4
	{1.0, 0.0, "hPa"},             // 5
	{1.0, 0.0, "hPa"},             // 6
	{0.0234375, 0.0, "deg CrS"},   // 7
	{0.1, -273.14, "deg C"},       // 8
	{1.0, 0.0, "deg C/s"},         // 9
	{0.01, 0.0, "mm3/cyc"},        // 10
	{0.1, 0.0, "bar"},             // 11
	{0.01, 0.0, "%"},              // 12
	{0.1, 0.0, "mm"},              // 13
	{0.1, 0.0, "Nm"},              // 14
	{0.01220703, 0.0, "%"},        // 15
	{0.01, 0.0, "mm3/hub"},        // 16
	{1.0, 0.0, "mA"},              // 17
	{0.01, 0.0, "l/h"},            // 18
	{4.887586, 0.0, "mV"},         // 19
	{1.0, 0.0, "-"},               // 20
	{1.0, 0.0, "us"},              // 21
	{1.0, 0.0, "s"},               // 22
	{1.0, 0.0, "rpm"},             // 23
	{0.0234375, 0.0, "deg CrS"},   // 24
	{1.0, 0.0, "bin"},             // 25
}

var channels = map[int]ChannelSpec{
	800: {"Boost Pressure", 6, 0, 3500},
	801: {"Ambient Air Pressure", 6, 400, 1200},
	802: {"Propeller Speed", 23, 0, 2500},
	803: {"Engine Oil Pressure", 6, 0, 8000},
	804: {"Rail Pressure", 11, 0, 2000},
	805: {"Power Lever Position", 15, 0, 100},
	806: {"Coolant Temperature", 8, -40, 160},
	807: {"Intake Air Temperature", 8, -40, 160},
	808: {"Battery Voltage", 1, 16, 36},
	809: {"Fuel Pressure", 6, 0, 8000},
	810: {"Gearbox Oil Temperature", 8, -40, 160},
	811: {"Engine Oil Temperature", 8, -40, 160},
	812: {"Prop Actuator Duty Cycle", 12, -100, 100},
	813: {"Engine Status", 25, 0, 256},
	814: {"Engine Oil Level", 13, 0, 100},
	815: {"Engine Load", 15, 0, 100},
}

// LookupChannel returns the spec for a channel code. Unknown codes report
// ok=false and stay opaque downstream rather than mapping to a default.
func LookupChannel(code int) (ChannelSpec, bool) {
	spec, ok := channels[code]
	return spec, ok
}

// LookupClass returns the signal class for a class index.
func LookupClass(index int) (Class, bool) {
	if index < 0 || index >= len(classes) {
		return Class{}, false
	}
	return classes[index], true
}

// Codes lists every known channel code in ascending order.
func Codes() []int {
	codes := make([]int, 0, len(channels))
	for code := range channels {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// Header renders the column label for a channel code: "<name> [<unit>]" for
// known codes, "Channel <code>" otherwise.
func Header(code int) string {
	spec, ok := channels[code]
	if !ok {
		return fmt.Sprintf("Channel %d", code)
	}
	cls, _ := LookupClass(spec.ClassIndex)
	return fmt.Sprintf("%s [%s]", spec.Name, cls.Unit)
}

// Decimals returns the number of decimal places used when formatting values
// of a channel. Classes 1, 8, 11, 12 and 15 carry sub-unit resolution.
func Decimals(code int) int {
	spec, ok := channels[code]
	if !ok {
		return 0
	}
	switch spec.ClassIndex {
	case 1, 8, 11, 12, 15:
		return 1
	default:
		return 0
	}
}
