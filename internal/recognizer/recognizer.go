// Package recognizer extracts Somfy SDN frames from a noisy RS-485 byte
// stream: random padding and third-party traffic can appear before and after
// any message, so frames are recognized by walking a ring buffer backwards
// from a matching checksum rather than by any fixed framing byte.
package recognizer

import (
	"github.com/cyberax/somfy-sdn/internal/metrics"
	"github.com/cyberax/somfy-sdn/internal/sdn"
)

// minMessageLength and maxMessageLen bound a frame, checksum included (SDN
// integration guide, page 10).
const (
	minMessageLength = 11
	maxMessageLen    = 32
)

// Recognizer is a one-byte-at-a-time SDN frame detector backed by a 32-byte
// ring buffer. It is not safe for concurrent use; each exchange or sniff
// session should use its own instance.
type Recognizer struct {
	ring            [maxMessageLen]byte
	pos             int
	nodeTypeFilter  sdn.NodeType
	hasFilter       bool
}

// New creates a Recognizer that accepts frames from any node.
func New() *Recognizer {
	return &Recognizer{}
}

// NewFiltered creates a Recognizer that only returns frames whose
// FromNodeType equals filter, silently consuming anything else.
func NewFiltered(filter sdn.NodeType) *Recognizer {
	return &Recognizer{nodeTypeFilter: filter, hasFilter: true}
}

func (r *Recognizer) ringAt(i int) byte {
	idx := i % maxMessageLen
	if idx < 0 {
		idx += maxMessageLen
	}
	return r.ring[idx]
}

// AddByte feeds one byte of bus traffic into the recognizer. It returns the
// decoded frame and true as soon as a valid message is found ending at this
// byte; otherwise it returns false.
func (r *Recognizer) AddByte(curByte byte) (sdn.Frame, bool) {
	prevByte := r.ringAt(r.pos - 1)
	r.ring[r.pos] = curByte
	possibleChecksum := int(prevByte)*256 + int(curByte)
	r.pos = (r.pos + 1) % maxMessageLen

	if possibleChecksum >= maxMessageLen*256 || possibleChecksum == 0 {
		return sdn.Frame{}, false
	}

	probableStart := (r.pos - 3) % maxMessageLen
	if probableStart < 0 {
		probableStart += maxMessageLen
	}
	remainingSum := possibleChecksum
	count := 3

	for probableStart != r.pos {
		remainingSum -= int(r.ringAt(probableStart))
		if remainingSum == 0 {
			if count < minMessageLength {
				return sdn.Frame{}, false
			}

			buf := r.copy(probableStart, count)
			frame, ok := sdn.TryParse(buf)
			if !ok {
				metrics.IncFramesRejected()
				return sdn.Frame{}, false
			}

			r.blankOut(probableStart, count)
			if r.hasFilter && r.nodeTypeFilter != frame.FromNodeType {
				return sdn.Frame{}, false
			}
			metrics.IncFramesDecoded()
			return frame, true
		}

		probableStart = (probableStart - 1) % maxMessageLen
		if probableStart < 0 {
			probableStart += maxMessageLen
		}
		count++
	}
	return sdn.Frame{}, false
}

func (r *Recognizer) copy(from, count int) []byte {
	res := make([]byte, count)
	for i := 0; i < count; i++ {
		res[i] = r.ringAt(from + i)
	}
	return res
}

func (r *Recognizer) blankOut(from, count int) {
	for i := 0; i < count; i++ {
		r.ring[(from+i)%maxMessageLen] = 0xFF
	}
}
