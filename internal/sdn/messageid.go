package sdn

import "fmt"

// MessageID is the 8-bit command/query/response code identifying a frame's
// payload shape. Unknown values pass through as raw integers.
type MessageID uint8

const (
	CtrlMoveForced    MessageID = 0x01 // reverse-engineered: move outside of bounds
	CtrlStop          MessageID = 0x02
	CtrlMoveTo        MessageID = 0x03
	CtrlMoveRelative  MessageID = 0x04 // reverse-engineered: move relative to current position
	CtrlWink          MessageID = 0x05
	GetMotorPosition  MessageID = 0x0C
	PostMotorPosition MessageID = 0x0D
	GetMotorStatus    MessageID = 0x0E
	PostMotorStatus   MessageID = 0x0F

	SetMotorLimits  MessageID = 0x11
	SetRotationDir  MessageID = 0x12
	SetRollingSpeed MessageID = 0x13
	SetMotorIP      MessageID = 0x15
	SetNetworkLock  MessageID = 0x16
	SetLocalUI      MessageID = 0x17

	GetMotorLimits  MessageID = 0x21
	GetRotationDir  MessageID = 0x22
	GetRollingSpeed MessageID = 0x23
	GetMotorIP      MessageID = 0x25
	GetNetworkLock  MessageID = 0x26
	GetLocalUI      MessageID = 0x27

	PostMotorLimits  MessageID = 0x31
	PostRotationDir  MessageID = 0x32
	PostRollingSpeed MessageID = 0x33
	PostMotorIP      MessageID = 0x35
	PostNetworkLock  MessageID = 0x36
	PostLocalUI      MessageID = 0x37

	GetNodeAddr  MessageID = 0x40
	GetGroupAddr MessageID = 0x41
	GetNodeLabel MessageID = 0x45

	SetNodeLabel MessageID = 0x55
	SetGroupAddr MessageID = 0x51

	PostGroupAddr MessageID = 0x61
	PostNodeAddr  MessageID = 0x60
	PostNodeLabel MessageID = 0x65

	NACK MessageID = 0x6F
	ACK  MessageID = 0x7F

	GetNodeAppVersion  MessageID = 0x74
	PostNodeAppVersion MessageID = 0x75
)

var messageIDNames = map[MessageID]string{
	CtrlMoveForced:     "CTRL_MOVE_FORCED",
	CtrlStop:           "CTRL_STOP",
	CtrlMoveTo:         "CTRL_MOVETO",
	CtrlMoveRelative:   "CTRL_MOVE_RELATIVE",
	CtrlWink:           "CTRL_WINK",
	GetMotorPosition:   "GET_MOTOR_POSITION",
	PostMotorPosition:  "POST_MOTOR_POSITION",
	GetMotorStatus:     "GET_MOTOR_STATUS",
	PostMotorStatus:    "POST_MOTOR_STATUS",
	SetMotorLimits:     "SET_MOTOR_LIMITS",
	SetRotationDir:     "SET_MOTOR_ROTATION_DIRECTION",
	SetRollingSpeed:    "SET_MOTOR_ROLLING_SPEED",
	SetMotorIP:         "SET_MOTOR_IP",
	SetNetworkLock:     "SET_NETWORK_LOCK",
	SetLocalUI:         "SET_LOCAL_UI",
	GetMotorLimits:     "GET_MOTOR_LIMITS",
	GetRotationDir:     "GET_MOTOR_ROTATION_DIRECTION",
	GetRollingSpeed:    "GET_MOTOR_ROLLING_SPEED",
	GetMotorIP:         "GET_MOTOR_IP",
	GetNetworkLock:     "GET_NETWORK_LOCK",
	GetLocalUI:         "GET_LOCAL_UI",
	PostMotorLimits:    "POST_MOTOR_LIMITS",
	PostRotationDir:    "POST_MOTOR_ROTATION_DIRECTION",
	PostRollingSpeed:   "POST_MOTOR_ROLLING_SPEED",
	PostMotorIP:        "POST_MOTOR_IP",
	PostNetworkLock:    "POST_NETWORK_LOCK",
	PostLocalUI:        "POST_LOCAL_UI",
	GetNodeAddr:        "GET_NODE_ADDR",
	GetGroupAddr:       "GET_GROUP_ADDR",
	GetNodeLabel:       "GET_NODE_LABEL",
	SetNodeLabel:       "SET_NODE_LABEL",
	SetGroupAddr:       "SET_GROUP_ADDR",
	PostGroupAddr:      "POST_GROUP_ADDR",
	PostNodeAddr:       "POST_NODE_ADDR",
	PostNodeLabel:      "POST_NODE_LABEL",
	NACK:               "NACK",
	ACK:                "ACK",
	GetNodeAppVersion:  "GET_NODE_APP_VERSION",
	PostNodeAppVersion: "POST_NODE_APP_VERSION",
}

// String renders "40(name)" for known values, "40" otherwise.
func (id MessageID) String() string {
	if name, ok := messageIDNames[id]; ok {
		return fmt.Sprintf("%02X(%s)", uint8(id), name)
	}
	return fmt.Sprintf("%02X", uint8(id))
}
