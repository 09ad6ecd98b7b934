package bus

import (
	"context"

	"github.com/cyberax/somfy-sdn/internal/sdn"
)

// FireAndForget sends toSend and does not wait for any reply.
func FireAndForget(ctx context.Context, conn sdn.Exchanger, toSend *sdn.Frame) error {
	_, err := conn.Exchange(ctx, toSend, nil)
	return err
}

// DetectDevices broadcasts GET_NODE_ADDR and collects every POST_NODE_ADDR
// reply until the communication timeout elapses. If only is not TypeAll, it
// filters replies to that node type.
func DetectDevices(ctx context.Context, conn sdn.Exchanger, only sdn.NodeType) ([]DetectedNode, error) {
	detect := sdn.NewFrame(sdn.GetNodeAddr, sdn.TypeAll, sdn.Master, only, sdn.Broadcast, false, nil)

	var nodes []DetectedNode
	// The scan always runs to the communication timeout: the consumer keeps
	// returning true so Exchange's false result just means "timed out",
	// which is the expected way this loop ends.
	_, err := conn.Exchange(ctx, &detect, func(f sdn.Frame) bool {
		if f.MsgID == sdn.PostNodeAddr && (only == sdn.TypeAll || f.FromNodeType == only) {
			nodes = append(nodes, DetectedNode{Addr: f.FromAddr, NodeType: f.FromNodeType})
		}
		return true
	})
	return nodes, err
}

// DetectedNode is one node discovered by DetectDevices.
type DetectedNode struct {
	Addr     sdn.Address
	NodeType sdn.NodeType
}
