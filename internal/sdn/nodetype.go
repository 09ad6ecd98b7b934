package sdn

import "fmt"

// NodeType is the 4-bit destination-family flag carried in every frame.
// Unknown values pass through as raw integers; String still renders them.
type NodeType uint8

const (
	TypeAll            NodeType = 0x00
	Type30DCSeries     NodeType = 0x02
	TypeRTSTransmitter NodeType = 0x05
	TypeGlydea         NodeType = 0x06
	Type50ACSeries     NodeType = 0x07
	Type50DCSeries     NodeType = 0x08
	Type40ACSeries     NodeType = 0x09
)

var nodeTypeNames = map[NodeType]string{
	TypeAll:            "TYPE_ALL",
	Type30DCSeries:     "TYPE_30DC_SERIES",
	TypeRTSTransmitter: "TYPE_RTS_TRANSMITTER",
	TypeGlydea:         "TYPE_GLYDEA",
	Type50ACSeries:     "TYPE_50AC_SERIES",
	Type50DCSeries:     "TYPE_50DC_SERIES",
	Type40ACSeries:     "TYPE_40AC_SERIES",
}

// String renders "02(name)" for known values, "02" for unknown ones,
// matching the Python source's hex_enum helper.
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return fmt.Sprintf("%02X(%s)", uint8(t), name)
	}
	return fmt.Sprintf("%02X", uint8(t))
}
