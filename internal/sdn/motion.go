package sdn

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Exchanger is the subset of bus functionality motion helpers need: send a
// frame and inspect replies until the consumer is done or the bus times out.
// The bus package's Exchanger and Reconnecting both satisfy it.
type Exchanger interface {
	Exchange(ctx context.Context, toSend *Frame, consumer func(Frame) bool) (bool, error)
}

// ErrNoAck is returned by MoveWithAck when the exchange completed without
// ever observing an ACK or NACK frame from addr.
var ErrNoAck = errors.New("sdn: no ACK or NACK received")

// ErrCommandFailed is returned by MoveWithAck when a NACK reply's payload
// does not decode as a NACK reason.
var ErrCommandFailed = errors.New("sdn: command failed")

// NackError wraps a NACK payload received in response to a command.
type NackError struct {
	Nack NackPayload
}

func (e *NackError) Error() string {
	return fmt.Sprintf("sdn: NACK received, reason: %s", e.Nack.NackCode())
}

// MoveWithAck sends toSend and waits for an ACK or NACK from addr, returning
// NackError if the node rejected the command.
func MoveWithAck(ctx context.Context, addr Address, conn Exchanger, toSend *Frame) error {
	var ackOrNack *Frame
	_, err := conn.Exchange(ctx, toSend, func(f Frame) bool {
		if f.FromAddr == addr && (f.MsgID == ACK || f.MsgID == NACK) {
			msg := f
			ackOrNack = &msg
			return false
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("sdn: command exchange failed: %w", err)
	}
	if ackOrNack == nil {
		return ErrNoAck
	}
	if ackOrNack.MsgID == NACK {
		nack, ok := ackOrNack.Payload.(NackPayload)
		if !ok {
			return ErrCommandFailed
		}
		return &NackError{Nack: nack}
	}
	if ackOrNack.MsgID != ACK {
		return ErrCommandFailed
	}
	return nil
}

// TryExchangeOne sends a one-off query to addr and returns the first reply
// matching expectedReply, or false if none arrived before the bus timeout.
func TryExchangeOne(ctx context.Context, conn Exchanger, addr Address, msgID, expectedReply MessageID, content []byte) (Frame, bool, error) {
	var result Frame
	var found bool
	sent := NewFrame(msgID, TypeAll, Master, TypeAll, addr, false, content)
	_, err := conn.Exchange(ctx, &sent, func(f Frame) bool {
		if f.FromAddr == addr && f.MsgID == expectedReply {
			result = f
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return Frame{}, false, err
	}
	return result, found, nil
}

// WaitForCompletion polls GET_MOTOR_POSITION every 500ms, calling progress
// for each reply, until the reported pulse count stops changing for a full
// second (matching the SDN docs' definition of "movement finished").
func WaitForCompletion(ctx context.Context, addr Address, conn Exchanger, progress func(PostMotorPositionPayload)) error {
	lastChange := time.Now()
	var lastPulses uint16
	for time.Since(lastChange) <= time.Second {
		reply, found, err := TryExchangeOne(ctx, conn, addr, GetMotorPosition, PostMotorPosition, nil)
		if err != nil {
			return err
		}
		if found {
			pos, ok := reply.Payload.(PostMotorPositionPayload)
			if ok {
				if pos.PositionPulses() != lastPulses {
					lastPulses = pos.PositionPulses()
					lastChange = time.Now()
				}
				if progress != nil {
					progress(pos)
				}
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	return nil
}
