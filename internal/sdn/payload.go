package sdn

import (
	"fmt"
)

// Payload is a typed view over a frame's content bytes. Bytes returns the
// exact content a Frame should serialize; every concrete payload type is
// built from (and renders back to) that byte slice.
type Payload interface {
	Bytes() []byte
	fmt.Stringer
}

// Opaque is the fallback payload for message ids the catalogue doesn't know,
// or whose content length doesn't match any expected length for the id.
type Opaque struct {
	Content []byte
}

func (p Opaque) Bytes() []byte { return p.Content }
func (p Opaque) String() string { return fmt.Sprintf("raw(% X)", p.Content) }

// lengthOK reports whether n is one of the expected content lengths.
func lengthOK(n int, expected ...int) bool {
	for _, e := range expected {
		if n == e {
			return true
		}
	}
	return false
}

// EmptyPayload carries no content; used by bare commands and queries.
type EmptyPayload struct{}

func (EmptyPayload) Bytes() []byte  { return nil }
func (EmptyPayload) String() string { return "{}" }

// GroupAddrPayload carries a group index and the 24-bit group address it
// resolves to.
type GroupAddrPayload struct{ content []byte }

func NewGroupAddrPayload(groupIndex int, groupID uint32) GroupAddrPayload {
	return GroupAddrPayload{content: []byte{byte(groupIndex), byte(groupID >> 16), byte(groupID >> 8), byte(groupID)}}
}
func (p GroupAddrPayload) Bytes() []byte  { return p.content }
func (p GroupAddrPayload) GroupIndex() int { return int(p.content[0]) }
func (p GroupAddrPayload) GroupID() uint32 {
	return uint32(p.content[1])<<16 | uint32(p.content[2])<<8 | uint32(p.content[3])
}
func (p GroupAddrPayload) String() string {
	return fmt.Sprintf("{group_index:%d group_id:%06X}", p.GroupIndex(), p.GroupID())
}

// GroupIndexPayload carries only a group index, used by GET_GROUP_ADDR.
type GroupIndexPayload struct{ content []byte }

func NewGroupIndexPayload(groupIndex int) GroupIndexPayload {
	return GroupIndexPayload{content: []byte{byte(groupIndex)}}
}
func (p GroupIndexPayload) Bytes() []byte   { return p.content }
func (p GroupIndexPayload) GroupIndex() int { return int(p.content[0]) }
func (p GroupIndexPayload) String() string  { return fmt.Sprintf("{group_index:%d}", p.GroupIndex()) }

// NackPayload reports why a message was rejected.
type NackPayload struct{ content []byte }

func NewNackPayload(reason NackReason) NackPayload {
	return NackPayload{content: []byte{byte(reason)}}
}
func (p NackPayload) Bytes() []byte       { return p.content }
func (p NackPayload) NackCode() NackReason { return NackReason(p.content[0]) }
func (p NackPayload) String() string      { return fmt.Sprintf("{nack_code:%s}", p.NackCode()) }

// NodeAppVersionPayload carries a node's six-byte application version.
type NodeAppVersionPayload struct{ content []byte }

func NewNodeAppVersionPayload(version []byte) NodeAppVersionPayload {
	return NodeAppVersionPayload{content: append([]byte(nil), version...)}
}
func (p NodeAppVersionPayload) Bytes() []byte   { return p.content }
func (p NodeAppVersionPayload) Version() []byte { return p.content }
func (p NodeAppVersionPayload) String() string  { return fmt.Sprintf("{version:% X}", p.content) }

// NodeLabelPayload carries a 16-byte UTF-8 node label, space-padded on the
// wire.
type NodeLabelPayload struct{ content []byte }

func NewNodeLabelPayload(label string) (NodeLabelPayload, error) {
	b := []byte(label)
	if len(b) > 16 {
		return NodeLabelPayload{}, fmt.Errorf("sdn: label %q too long", label)
	}
	for len(b) < 16 {
		b = append(b, ' ')
	}
	return NodeLabelPayload{content: b}, nil
}
func (p NodeLabelPayload) Bytes() []byte { return p.content }
func (p NodeLabelPayload) Label() string {
	end := len(p.content)
	for end > 0 && (p.content[end-1] == 0 || p.content[end-1] == ' ') {
		end--
	}
	return string(p.content[:end])
}
func (p NodeLabelPayload) String() string { return fmt.Sprintf("{label:%q}", p.Label()) }

// SetLocalUIPayload enables or disables a local UI input at a priority.
type SetLocalUIPayload struct{ content []byte }

func NewSetLocalUIPayload(fn UIFunction, idx UIIndex, priority byte) SetLocalUIPayload {
	return SetLocalUIPayload{content: []byte{byte(fn), byte(idx), priority}}
}
func (p SetLocalUIPayload) Bytes() []byte      { return p.content }
func (p SetLocalUIPayload) Function() UIFunction { return UIFunction(p.content[0]) }
func (p SetLocalUIPayload) UIIndex() UIIndex    { return UIIndex(p.content[1]) }
func (p SetLocalUIPayload) Priority() byte      { return p.content[2] }
func (p SetLocalUIPayload) String() string {
	return fmt.Sprintf("{function:%s ui_index:%s priority:%d}", p.Function(), p.UIIndex(), p.Priority())
}

// GetLocalUIPayload queries the state of a local UI input.
type GetLocalUIPayload struct{ content []byte }

func NewGetLocalUIPayload(idx UIIndex) GetLocalUIPayload {
	return GetLocalUIPayload{content: []byte{byte(idx)}}
}
func (p GetLocalUIPayload) Bytes() []byte   { return p.content }
func (p GetLocalUIPayload) UIIndex() UIIndex { return UIIndex(p.content[0]) }
func (p GetLocalUIPayload) String() string  { return fmt.Sprintf("{ui_index:%s}", p.UIIndex()) }

// PostLocalUIPayload reports a local UI function change along with the
// address of the node that triggered it.
type PostLocalUIPayload struct{ content []byte }

func NewPostLocalUIPayload(fn UIFunction, source Address, priority byte) PostLocalUIPayload {
	c := []byte{byte(fn)}
	c = append(c, source.Serialize()...)
	c = append(c, priority)
	return PostLocalUIPayload{content: c}
}
func (p PostLocalUIPayload) Bytes() []byte        { return p.content }
func (p PostLocalUIPayload) Function() UIFunction { return UIFunction(p.content[0]) }
func (p PostLocalUIPayload) SourceAddr() Address  { return ParseAddressBytes(p.content[1:4]) }
func (p PostLocalUIPayload) Priority() byte       { return p.content[4] }
func (p PostLocalUIPayload) String() string {
	return fmt.Sprintf("{function:%s source_addr:%s priority:%d}", p.Function(), p.SourceAddr(), p.Priority())
}

// SetMotorIPPayload defines or updates an intermediate position.
type SetMotorIPPayload struct{ content []byte }

const motorIPPositionUndefined = 0xFFFF

func NewSetMotorIPPayload(fn MotorIPFunction, ipIndex byte, position uint16, angle *uint16) SetMotorIPPayload {
	c := []byte{byte(fn), ipIndex, byte(position), byte(position >> 8)}
	if angle != nil {
		c = append(c, byte(*angle), byte(*angle>>8))
	}
	return SetMotorIPPayload{content: c}
}
func (p SetMotorIPPayload) Bytes() []byte             { return p.content }
func (p SetMotorIPPayload) Function() MotorIPFunction { return MotorIPFunction(p.content[0]) }
func (p SetMotorIPPayload) IPIndex() byte             { return p.content[1] }
func (p SetMotorIPPayload) Position() uint16 {
	return uint16(p.content[3])<<8 | uint16(p.content[2])
}
func (p SetMotorIPPayload) Angle() (uint16, bool) {
	if len(p.content) != 6 {
		return 0, false
	}
	return uint16(p.content[5])<<8 | uint16(p.content[4]), true
}
func (p SetMotorIPPayload) String() string {
	angle, ok := p.Angle()
	if !ok {
		return fmt.Sprintf("{function:%s ip_index:%d position:%d angle:none}", p.Function(), p.IPIndex(), p.Position())
	}
	return fmt.Sprintf("{function:%s ip_index:%d position:%d angle:%d}", p.Function(), p.IPIndex(), p.Position(), angle)
}

// GetMotorIPPayload queries an intermediate position slot.
type GetMotorIPPayload struct{ content []byte }

func NewGetMotorIPPayload(ipIndex byte) GetMotorIPPayload {
	return GetMotorIPPayload{content: []byte{ipIndex}}
}
func (p GetMotorIPPayload) Bytes() []byte  { return p.content }
func (p GetMotorIPPayload) IPIndex() byte  { return p.content[0] }
func (p GetMotorIPPayload) String() string { return fmt.Sprintf("{ip_index:%d}", p.IPIndex()) }

// PostMotorIPPayload reports the state of an intermediate position slot.
type PostMotorIPPayload struct{ content []byte }

const motorIPUnsetPosition = 0xFF

func NewPostMotorIPPayload(ipIndex byte, position byte, angle *uint16) PostMotorIPPayload {
	c := []byte{ipIndex, 0, position}
	if angle != nil {
		c = append(c, 0, 0, 0, byte(*angle), byte(*angle>>8))
	}
	return PostMotorIPPayload{content: c}
}
func (p PostMotorIPPayload) Bytes() []byte  { return p.content }
func (p PostMotorIPPayload) IPIndex() byte  { return p.content[0] }
func (p PostMotorIPPayload) Position() byte { return p.content[2] }
func (p PostMotorIPPayload) Angle() (uint16, bool) {
	if len(p.content) != 9 {
		return 0, false
	}
	return uint16(p.content[8])<<8 | uint16(p.content[7]), true
}
func (p PostMotorIPPayload) String() string {
	angle, ok := p.Angle()
	if !ok {
		return fmt.Sprintf("{ip_index:%d position:%d angle:none}", p.IPIndex(), p.Position())
	}
	return fmt.Sprintf("{ip_index:%d position:%d angle:%d}", p.IPIndex(), p.Position(), angle)
}

// MotorSpeedPayload carries the three configurable rolling speeds.
type MotorSpeedPayload struct{ content []byte }

func NewMotorSpeedPayload(up, down, slow byte) MotorSpeedPayload {
	return MotorSpeedPayload{content: []byte{up, down, slow}}
}
func (p MotorSpeedPayload) Bytes() []byte   { return p.content }
func (p MotorSpeedPayload) UpRPM() byte     { return p.content[0] }
func (p MotorSpeedPayload) DownRPM() byte   { return p.content[1] }
func (p MotorSpeedPayload) SlowRPM() byte   { return p.content[2] }
func (p MotorSpeedPayload) String() string {
	return fmt.Sprintf("{up_speed_rpm:%d down_speed_rpm:%d slow_speed_rpm:%d}", p.UpRPM(), p.DownRPM(), p.SlowRPM())
}

// SetNetworkLockPayload requests a network lock state change.
type SetNetworkLockPayload struct{ content []byte }

func NewSetNetworkLockPayload(fn LockNetworkFunction, priority byte) SetNetworkLockPayload {
	return SetNetworkLockPayload{content: []byte{byte(fn), priority}}
}
func (p SetNetworkLockPayload) Bytes() []byte                   { return p.content }
func (p SetNetworkLockPayload) Function() LockNetworkFunction  { return LockNetworkFunction(p.content[0]) }
func (p SetNetworkLockPayload) Priority() byte                  { return p.content[1] }
func (p SetNetworkLockPayload) String() string {
	return fmt.Sprintf("{function:%s priority:%d}", p.Function(), p.Priority())
}

// PostNetworkLockPayload reports the current network lock state.
//
// The content is always flattened to 6 bytes: locked flag, 3-byte lock
// holder address, priority, persistence flag.
type PostNetworkLockPayload struct{ content []byte }

func NewPostNetworkLockPayload(locked bool, holder Address, priority byte, persistent bool) PostNetworkLockPayload {
	c := make([]byte, 0, 6)
	c = append(c, boolByte(locked))
	c = append(c, holder.Serialize()...)
	c = append(c, priority, boolByte(persistent))
	return PostNetworkLockPayload{content: c}
}
func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
func (p PostNetworkLockPayload) Bytes() []byte    { return p.content }
func (p PostNetworkLockPayload) IsLocked() bool   { return p.content[0] != 0 }
func (p PostNetworkLockPayload) LockHolder() Address { return ParseAddressBytes(p.content[1:4]) }
func (p PostNetworkLockPayload) Priority() byte   { return p.content[4] }
func (p PostNetworkLockPayload) IsPersistent() bool { return p.content[5] != 0 }
func (p PostNetworkLockPayload) String() string {
	return fmt.Sprintf("{is_locked:%t lock_holder:%s priority:%d is_persistent_across_power_cycle:%t}",
		p.IsLocked(), p.LockHolder(), p.Priority(), p.IsPersistent())
}

// CtrlMoveToPayload commands a motor to a position, and optionally an angle.
type CtrlMoveToPayload struct{ content []byte }

func NewCtrlMoveToPayload(fn CtrlMoveToFunction, position uint16, angle *uint16) CtrlMoveToPayload {
	c := []byte{byte(fn), byte(position), byte(position >> 8), 0}
	if angle != nil {
		c = append(c, byte(*angle), byte(*angle>>8))
	}
	return CtrlMoveToPayload{content: c}
}
func (p CtrlMoveToPayload) Bytes() []byte                 { return p.content }
func (p CtrlMoveToPayload) Function() CtrlMoveToFunction { return CtrlMoveToFunction(p.content[0]) }
func (p CtrlMoveToPayload) Position() uint16 {
	return uint16(p.content[2])<<8 | uint16(p.content[1])
}
func (p CtrlMoveToPayload) Angle() (uint16, bool) {
	if len(p.content) != 6 {
		return 0, false
	}
	return uint16(p.content[5])<<8 | uint16(p.content[4]), true
}
func (p CtrlMoveToPayload) String() string {
	angle, ok := p.Angle()
	if !ok {
		return fmt.Sprintf("{function:%s position:%d angle:none}", p.Function(), p.Position())
	}
	return fmt.Sprintf("{function:%s position:%d angle:%d}", p.Function(), p.Position(), angle)
}

// CtrlStopPayload halts motion.
type CtrlStopPayload struct{ content []byte }

func NewCtrlStopPayload(reserved byte) CtrlStopPayload {
	return CtrlStopPayload{content: []byte{reserved}}
}
func (p CtrlStopPayload) Bytes() []byte   { return p.content }
func (p CtrlStopPayload) Reserved() byte  { return p.content[0] }
func (p CtrlStopPayload) String() string  { return fmt.Sprintf("{reserved:%d}", p.Reserved()) }

// PostMotorPositionPayload reports the motor's current position.
type PostMotorPositionPayload struct{ content []byte }

const postMotorPositionIPUndefined = 0xFF

func NewPostMotorPositionPayload(pulses uint16, percent, tilt, ip byte, tiltDegrees *uint16) PostMotorPositionPayload {
	c := []byte{byte(pulses), byte(pulses >> 8), percent, tilt, ip}
	if tiltDegrees != nil {
		c = append(c, 0, 0, byte(*tiltDegrees), byte(*tiltDegrees>>8), 0, 0)
	}
	return PostMotorPositionPayload{content: c}
}
func (p PostMotorPositionPayload) Bytes() []byte { return p.content }
func (p PostMotorPositionPayload) PositionPulses() uint16 {
	return uint16(p.content[1])<<8 | uint16(p.content[0])
}
func (p PostMotorPositionPayload) PositionPercent() byte { return p.content[2] }
func (p PostMotorPositionPayload) TiltPercent() byte     { return p.content[3] }
func (p PostMotorPositionPayload) IP() (byte, bool) {
	ip := p.content[4]
	if ip == postMotorPositionIPUndefined {
		return 0, false
	}
	return ip, true
}
func (p PostMotorPositionPayload) TiltDegrees() (uint16, bool) {
	if len(p.content) != 11 {
		return 0, false
	}
	return uint16(p.content[8])<<8 | uint16(p.content[7]), true
}
func (p PostMotorPositionPayload) String() string {
	ip, ipOK := p.IP()
	tilt, tiltOK := p.TiltDegrees()
	ipStr, tiltStr := "none", "none"
	if ipOK {
		ipStr = fmt.Sprintf("%d", ip)
	}
	if tiltOK {
		tiltStr = fmt.Sprintf("%d", tilt)
	}
	return fmt.Sprintf("{position_pulses:%d position_percent:%d tilt_percent:%d ip:%s tilt_degrees:%s}",
		p.PositionPulses(), p.PositionPercent(), p.TiltPercent(), ipStr, tiltStr)
}

// PostMotorStatusPayload reports the motor's run state and what caused it.
type PostMotorStatusPayload struct{ content []byte }

func NewPostMotorStatusPayload(status MotorStatus, dir MotorDirection, source MotorCommandSource, cause MotorStatusCause) PostMotorStatusPayload {
	return PostMotorStatusPayload{content: []byte{byte(status), byte(dir), byte(source), byte(cause)}}
}
func (p PostMotorStatusPayload) Bytes() []byte { return p.content }
func (p PostMotorStatusPayload) Status() MotorStatus { return MotorStatus(p.content[0]) }
func (p PostMotorStatusPayload) Direction() MotorDirection { return MotorDirection(p.content[1]) }
func (p PostMotorStatusPayload) CommandSource() MotorCommandSource {
	return MotorCommandSource(p.content[2])
}
func (p PostMotorStatusPayload) StatusCause() MotorStatusCause { return MotorStatusCause(p.content[3]) }
func (p PostMotorStatusPayload) String() string {
	return fmt.Sprintf("{status:%s direction:%s command_source:%s status_cause:%s}",
		p.Status(), p.Direction(), p.CommandSource(), p.StatusCause())
}

// CtrlMoveForcedPayload is a reverse-engineered command to move outside of
// the configured limits for a given duration.
type CtrlMoveForcedPayload struct{ content []byte }

func NewCtrlMoveForcedPayload(dir Direction, tensOfMs uint16) CtrlMoveForcedPayload {
	return CtrlMoveForcedPayload{content: []byte{byte(dir), byte(tensOfMs), byte(tensOfMs >> 8)}}
}
func (p CtrlMoveForcedPayload) Bytes() []byte      { return p.content }
func (p CtrlMoveForcedPayload) Direction() Direction { return Direction(p.content[0]) }

// TensOfMs is the movement duration in units of 10ms.
func (p CtrlMoveForcedPayload) TensOfMs() uint16 {
	return uint16(p.content[2])<<8 | uint16(p.content[1])
}
func (p CtrlMoveForcedPayload) String() string {
	return fmt.Sprintf("{direction:%s tens_of_ms:%d}", p.Direction(), p.TensOfMs())
}

// CtrlMoveRelativePayload is a reverse-engineered command to move relative to
// the current position.
type CtrlMoveRelativePayload struct{ content []byte }

func NewCtrlMoveRelativePayload(fn RelativeMoveFunction, parameter uint16) CtrlMoveRelativePayload {
	return CtrlMoveRelativePayload{content: []byte{byte(fn), byte(parameter), byte(parameter >> 8), 0}}
}
func (p CtrlMoveRelativePayload) Bytes() []byte { return p.content }
func (p CtrlMoveRelativePayload) Function() RelativeMoveFunction {
	return RelativeMoveFunction(p.content[0])
}

// Parameter combines content[1] and content[2] into the 16-bit move
// parameter (pulse count or tens-of-ms, depending on Function).
func (p CtrlMoveRelativePayload) Parameter() uint16 {
	return uint16(p.content[2])<<8 | uint16(p.content[1])
}
func (p CtrlMoveRelativePayload) String() string {
	return fmt.Sprintf("{function:%s parameter:%d}", p.Function(), p.Parameter())
}

// SetMotorLimitsPayload adjusts or sets a travel limit.
type SetMotorLimitsPayload struct{ content []byte }

func NewSetMotorLimitsPayload(fn SetLimitsFunction, dir Direction, parameter uint16) SetMotorLimitsPayload {
	return SetMotorLimitsPayload{content: []byte{byte(fn), byte(dir), byte(parameter), byte(parameter >> 8)}}
}
func (p SetMotorLimitsPayload) Bytes() []byte                 { return p.content }
func (p SetMotorLimitsPayload) Function() SetLimitsFunction   { return SetLimitsFunction(p.content[0]) }
func (p SetMotorLimitsPayload) Direction() Direction           { return Direction(p.content[1]) }
func (p SetMotorLimitsPayload) Parameter() uint16 {
	return uint16(p.content[3])<<8 | uint16(p.content[2])
}
func (p SetMotorLimitsPayload) String() string {
	return fmt.Sprintf("{function:%s direction:%s parameter:%d}", p.Function(), p.Direction(), p.Parameter())
}

// PostMotorLimitsPayload reports a travel limit in pulses.
type PostMotorLimitsPayload struct{ content []byte }

func NewPostMotorLimitsPayload(limit uint16) PostMotorLimitsPayload {
	return PostMotorLimitsPayload{content: []byte{0, 0, byte(limit), byte(limit >> 8)}}
}
func (p PostMotorLimitsPayload) Bytes() []byte { return p.content }
func (p PostMotorLimitsPayload) Reserved() uint16 {
	return uint16(p.content[1])<<8 | uint16(p.content[0])
}
func (p PostMotorLimitsPayload) Limit() uint16 {
	return uint16(p.content[3])<<8 | uint16(p.content[2])
}
func (p PostMotorLimitsPayload) String() string {
	return fmt.Sprintf("{reserved:%d limit:%d}", p.Reserved(), p.Limit())
}

// MotorRotationDirectionPayload carries the motor's configured rotation
// sense, used by both SET_ and POST_MOTOR_ROTATION_DIRECTION.
type MotorRotationDirectionPayload struct{ content []byte }

func NewMotorRotationDirectionPayload(dir MotorRotationDirection) MotorRotationDirectionPayload {
	return MotorRotationDirectionPayload{content: []byte{byte(dir)}}
}
func (p MotorRotationDirectionPayload) Bytes() []byte { return p.content }
func (p MotorRotationDirectionPayload) Direction() MotorRotationDirection {
	return MotorRotationDirection(p.content[0])
}
func (p MotorRotationDirectionPayload) String() string {
	return fmt.Sprintf("{direction:%s}", p.Direction())
}

// payloadKinds maps every documented message id to the expected content
// lengths and constructor for its payload type. decodePayload consults this
// table; ids or lengths it doesn't recognize fall back to Opaque.
var payloadKinds = map[MessageID]struct {
	lengths []int
	build   func([]byte) Payload
}{
	GetNodeAddr:        {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostNodeAddr:       {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	SetGroupAddr:       {[]int{4}, func(c []byte) Payload { return GroupAddrPayload{content: c} }},
	GetGroupAddr:       {[]int{1}, func(c []byte) Payload { return GroupIndexPayload{content: c} }},
	PostGroupAddr:      {[]int{4}, func(c []byte) Payload { return GroupAddrPayload{content: c} }},
	ACK:                {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	NACK:               {[]int{1}, func(c []byte) Payload { return NackPayload{content: c} }},
	GetNodeAppVersion:  {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostNodeAppVersion: {[]int{6}, func(c []byte) Payload { return NodeAppVersionPayload{content: c} }},
	SetNodeLabel:       {[]int{16}, func(c []byte) Payload { return NodeLabelPayload{content: c} }},
	GetNodeLabel:       {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostNodeLabel:      {[]int{16}, func(c []byte) Payload { return NodeLabelPayload{content: c} }},
	SetLocalUI:         {[]int{3}, func(c []byte) Payload { return SetLocalUIPayload{content: c} }},
	GetLocalUI:         {[]int{1}, func(c []byte) Payload { return GetLocalUIPayload{content: c} }},
	PostLocalUI:        {[]int{5}, func(c []byte) Payload { return PostLocalUIPayload{content: c} }},
	SetMotorIP:         {[]int{4, 6}, func(c []byte) Payload { return SetMotorIPPayload{content: c} }},
	GetMotorIP:         {[]int{1}, func(c []byte) Payload { return GetMotorIPPayload{content: c} }},
	PostMotorIP:        {[]int{4, 9}, func(c []byte) Payload { return PostMotorIPPayload{content: c} }},
	SetRollingSpeed:    {[]int{3}, func(c []byte) Payload { return MotorSpeedPayload{content: c} }},
	GetRollingSpeed:    {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostRollingSpeed:   {[]int{3}, func(c []byte) Payload { return MotorSpeedPayload{content: c} }},
	SetNetworkLock:     {[]int{2}, func(c []byte) Payload { return SetNetworkLockPayload{content: c} }},
	GetNetworkLock:     {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostNetworkLock:    {[]int{6}, func(c []byte) Payload { return PostNetworkLockPayload{content: c} }},
	CtrlMoveTo:         {[]int{4, 6}, func(c []byte) Payload { return CtrlMoveToPayload{content: c} }},
	CtrlStop:           {[]int{1}, func(c []byte) Payload { return CtrlStopPayload{content: c} }},
	GetMotorPosition:   {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostMotorPosition:  {[]int{5, 11}, func(c []byte) Payload { return PostMotorPositionPayload{content: c} }},
	GetMotorStatus:     {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostMotorStatus:    {[]int{4}, func(c []byte) Payload { return PostMotorStatusPayload{content: c} }},
	CtrlMoveForced:     {[]int{3}, func(c []byte) Payload { return CtrlMoveForcedPayload{content: c} }},
	CtrlMoveRelative:   {[]int{4}, func(c []byte) Payload { return CtrlMoveRelativePayload{content: c} }},
	SetMotorLimits:     {[]int{4}, func(c []byte) Payload { return SetMotorLimitsPayload{content: c} }},
	GetMotorLimits:     {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostMotorLimits:    {[]int{4}, func(c []byte) Payload { return PostMotorLimitsPayload{content: c} }},
	SetRotationDir:     {[]int{1}, func(c []byte) Payload { return MotorRotationDirectionPayload{content: c} }},
	GetRotationDir:     {[]int{0}, func([]byte) Payload { return EmptyPayload{} }},
	PostRotationDir:    {[]int{1}, func(c []byte) Payload { return MotorRotationDirectionPayload{content: c} }},
}

// decodePayload builds the typed payload for msgID/content, falling back to
// Opaque when the id is undocumented or the content length doesn't match.
func decodePayload(msgID MessageID, content []byte) Payload {
	kind, ok := payloadKinds[msgID]
	if !ok || !lengthOK(len(content), kind.lengths...) {
		return Opaque{Content: content}
	}
	return kind.build(content)
}
