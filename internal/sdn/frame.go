package sdn

import "fmt"

// MinFrameLength and MaxFrameLength bound a valid serialized frame, the
// checksum included. A frame with no payload is 11 bytes; MaxContentLen is
// the largest content that keeps the frame within 32 bytes, the ring
// buffer's span. NewFrame and Serialize do not enforce that limit.
const (
	MinFrameLength = 11
	MaxFrameLength = 32
	MaxContentLen  = MaxFrameLength - MinFrameLength
)

// Frame is a single Somfy SDN message: header fields plus a typed payload.
type Frame struct {
	MsgID        MessageID
	FromNodeType NodeType
	FromAddr     Address
	ToNodeType   NodeType
	ToAddr       Address
	NeedAck      bool
	Payload      Payload
}

// NewFrame builds a frame, dispatching content through the payload
// catalogue so Payload is always the most specific type available.
func NewFrame(msgID MessageID, fromNodeType NodeType, fromAddr Address, toNodeType NodeType, toAddr Address, needAck bool, content []byte) Frame {
	return Frame{
		MsgID:        msgID,
		FromNodeType: fromNodeType,
		FromAddr:     fromAddr,
		ToNodeType:   toNodeType,
		ToAddr:       toAddr,
		NeedAck:      needAck,
		Payload:      decodePayload(msgID, content),
	}
}

// Serialize encodes the frame to its wire form: header and payload bytes
// bitwise-inverted, followed by a big-endian checksum computed over the
// inverted bytes.
func (f Frame) Serialize() []byte {
	content := f.Payload.Bytes()
	ackFlag := byte(0x00)
	if f.NeedAck {
		ackFlag = 0x80
	}
	destType := byte(f.FromNodeType)<<4 | byte(f.ToNodeType)

	plain := make([]byte, 0, MinFrameLength+len(content))
	plain = append(plain, byte(f.MsgID), byte(len(content)+MinFrameLength)|ackFlag, destType)
	plain = append(plain, f.FromAddr.Serialize()...)
	plain = append(plain, f.ToAddr.Serialize()...)
	plain = append(plain, content...)

	for i := range plain {
		plain[i] = ^plain[i]
	}
	sum := computeChecksum(plain)
	return append(plain, sum[0], sum[1])
}

// computeChecksum sums msg's bytes and splits the sum into a big-endian pair.
func computeChecksum(msg []byte) [2]byte {
	var sum int
	for _, b := range msg {
		sum += int(b)
	}
	return [2]byte{byte(sum >> 8), byte(sum)}
}

// TryParse attempts to decode data as a complete Somfy SDN frame. The
// checksum is validated against data as received, still bitwise-inverted;
// only once it matches is the rest of the frame un-inverted and decoded.
// It returns ok=false on any checksum, length, or structural mismatch.
func TryParse(data []byte) (frame Frame, ok bool) {
	if len(data) < MinFrameLength || len(data) > MaxFrameLength {
		return Frame{}, false
	}
	body := data[:len(data)-2]
	sum := computeChecksum(body)
	if sum[0] != data[len(data)-2] || sum[1] != data[len(data)-1] {
		return Frame{}, false
	}

	inverted := make([]byte, len(body))
	for i, b := range body {
		inverted[i] = ^b
	}

	msgID := MessageID(inverted[0])
	needAck := inverted[1]&0x80 != 0
	msgLen := inverted[1] & 0x7F
	if int(msgLen) != len(data) {
		return Frame{}, false
	}

	fromNodeType := NodeType(inverted[2] >> 4 & 0xF)
	toNodeType := NodeType(inverted[2] & 0xF)
	fromAddr := ParseAddressBytes(inverted[3:6])
	toAddr := ParseAddressBytes(inverted[6:9])
	content := inverted[9:]

	return Frame{
		MsgID:        msgID,
		FromNodeType: fromNodeType,
		FromAddr:     fromAddr,
		ToNodeType:   toNodeType,
		ToAddr:       toAddr,
		NeedAck:      needAck,
		Payload:      decodePayload(msgID, content),
	}, true
}

func (f Frame) String() string {
	return fmt.Sprintf("ID: %s FROM: %s %s TO: %s %s ACK: %t DATA: %s",
		f.MsgID, f.FromNodeType, f.FromAddr, f.ToNodeType, f.ToAddr, f.NeedAck, f.Payload)
}
