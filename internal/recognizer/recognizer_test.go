package recognizer

import (
	"math/rand"
	"testing"

	"github.com/cyberax/somfy-sdn/internal/sdn"
)

func sampleFrames() []sdn.Frame {
	return []sdn.Frame{
		sdn.NewFrame(sdn.GetNodeAddr, sdn.TypeAll, sdn.Master, sdn.TypeAll, sdn.Broadcast, false, nil),
		sdn.NewFrame(sdn.CtrlStop, sdn.TypeAll, sdn.Master, sdn.Type50ACSeries, sdn.Address{A: 0x13, B: 0x3D, C: 0xC6}, true, []byte{0}),
		sdn.NewFrame(sdn.PostMotorLimits, sdn.Type50ACSeries, sdn.Address{A: 0x13, B: 0x3D, C: 0xC6}, sdn.TypeAll, sdn.Master, false, []byte{0, 0, 0x37, 0x13}),
	}
}

// TestAddByteRoundTrip feeds each sample frame's serialized bytes through the
// recognizer directly and expects it to come back out unchanged.
func TestAddByteRoundTrip(t *testing.T) {
	for _, want := range sampleFrames() {
		r := New()
		raw := want.Serialize()
		var got sdn.Frame
		var found bool
		for _, b := range raw {
			if f, ok := r.AddByte(b); ok {
				got, found = f, true
			}
		}
		if !found {
			t.Fatalf("frame %s: not recognized", want)
		}
		if got.String() != want.String() {
			t.Errorf("frame mismatch: got %s, want %s", got, want)
		}
	}
}

// TestAddByteWithNoise injects random padding before and after every frame,
// mirroring the noise tolerance the bus requires, and expects every frame to
// still be recognized in order.
func TestAddByteWithNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	frames := sampleFrames()

	var stream []byte
	for _, f := range frames {
		for n := rng.Intn(100); n > 0; n-- {
			stream = append(stream, byte(rng.Intn(256)))
		}
		stream = append(stream, f.Serialize()...)
	}
	for n := rng.Intn(100); n > 0; n-- {
		stream = append(stream, byte(rng.Intn(256)))
	}

	r := New()
	var got []sdn.Frame
	for _, b := range stream {
		if f, ok := r.AddByte(b); ok {
			got = append(got, f)
		}
	}

	if len(got) < len(frames) {
		t.Fatalf("recognized %d frames, want at least %d", len(got), len(frames))
	}
	for i, want := range frames {
		if got[i].String() != want.String() {
			t.Errorf("frame %d: got %s, want %s", i, got[i], want)
		}
	}
}

// TestAddByteBlanksOutConsumedRing feeds one frame into a fresh recognizer,
// expects exactly one match, and checks that the ring positions the frame
// occupied were overwritten with 0xFF.
func TestAddByteBlanksOutConsumedRing(t *testing.T) {
	r := New()
	f := sampleFrames()[0]
	raw := f.Serialize()

	var hits int
	for _, b := range raw {
		if _, ok := r.AddByte(b); ok {
			hits++
		}
	}
	if hits != 1 {
		t.Fatalf("got %d matches feeding one frame, want 1", hits)
	}
	for i := range raw {
		if r.ring[i] != 0xFF {
			t.Fatalf("ring[%d] = %#x after match, want 0xFF", i, r.ring[i])
		}
	}
}
