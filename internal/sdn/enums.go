package sdn

import "fmt"

// formatEnum renders a byte-sized enum as "NAME(v)" for known values, and the
// plain decimal value otherwise, matching the source catalogue's convention
// of tolerating reverse-engineered or as-yet-undocumented values.
func formatEnum(names map[uint8]string, v uint8) string {
	if n, ok := names[v]; ok {
		return fmt.Sprintf("%s(%d)", n, v)
	}
	return fmt.Sprintf("%d", v)
}

// NackReason classifies why a node rejected a message.
type NackReason uint8

const (
	NackDataOutOfRange    NackReason = 0x01
	NackUnknownMessage    NackReason = 0x10
	NackMessageLenError   NackReason = 0x11
	NackInSecurity        NackReason = 0x27
	NackLastIPReached     NackReason = 0x28
	NackBusy              NackReason = 0xFF
)

var nackReasonNames = map[uint8]string{
	uint8(NackDataOutOfRange):  "DATA_OUT_OF_RANGE",
	uint8(NackUnknownMessage):  "UNKNOWN_MESSAGE",
	uint8(NackMessageLenError): "MESSAGE_LENGTH_ERROR",
	uint8(NackInSecurity):      "IN_SECURITY",
	uint8(NackLastIPReached):   "LAST_IP_REACHED",
	uint8(NackBusy):            "BUSY",
}

func (r NackReason) String() string { return formatEnum(nackReasonNames, uint8(r)) }

// UIFunction enables or disables a local UI input.
type UIFunction uint8

const (
	UIEnable  UIFunction = 0x00
	UIDisable UIFunction = 0x01
)

var uiFunctionNames = map[uint8]string{0x00: "ENABLE", 0x01: "DISABLE"}

func (f UIFunction) String() string { return formatEnum(uiFunctionNames, uint8(f)) }

// UIIndex selects which local UI input a SetLocalUI/GetLocalUI/PostLocalUI
// message addresses.
type UIIndex uint8

const (
	UIAllControls  UIIndex = 0x00
	UIDCTInput     UIIndex = 0x01
	UILocalStimuli UIIndex = 0x02
	UILocalRadio   UIIndex = 0x03
	UITouchMotion  UIIndex = 0x04
	UILEDs         UIIndex = 0x05
)

var uiIndexNames = map[uint8]string{
	0x00: "ALL_CONTROLS", 0x01: "DCT_INPUT", 0x02: "LOCAL_STIMULI",
	0x03: "LOCAL_RADIO", 0x04: "TOUCH_MOTION", 0x05: "LEDS",
}

func (i UIIndex) String() string { return formatEnum(uiIndexNames, uint8(i)) }

// MotorIPFunction selects the operation a SET_MOTOR_IP message performs on an
// intermediate position slot.
type MotorIPFunction uint8

const (
	IPDelete                     MotorIPFunction = 0x00
	IPSetAtCurrent               MotorIPFunction = 0x01
	IPSetAtSpecifiedPercent      MotorIPFunction = 0x03
	IPDivideIntoEqualRanges      MotorIPFunction = 0x04
	IPSetAtCurrentPositionAngle  MotorIPFunction = 0x05
	IPSetAtSpecifiedPercentAngle MotorIPFunction = 0x0A
	IPSetAtSpecifiedDegreesAngle MotorIPFunction = 0x0B
)

var motorIPFunctionNames = map[uint8]string{
	0x00: "DELETE",
	0x01: "SET_IP_AT_CURRENT",
	0x03: "SET_IP_AT_SPECIFIED_PERCENT",
	0x04: "DIVIDE_INTO_EQUAL_RANGES",
	0x05: "SET_AT_CURRENT_POSITION_AND_ANGLE",
	0x0A: "SET_AT_SPECIFIED_POSITION_AND_ANGLE_IN_PERCENTS",
	0x0B: "SET_AT_SPECIFIED_POSITION_AND_ANGLE_IN_DEGREES",
}

func (f MotorIPFunction) String() string { return formatEnum(motorIPFunctionNames, uint8(f)) }

// LockNetworkFunction is the operation a SET_NETWORK_LOCK message requests.
type LockNetworkFunction uint8

const (
	LockUnlock                       LockNetworkFunction = 0x00
	LockLock                         LockNetworkFunction = 0x01
	LockPreserveOnPowerCycle         LockNetworkFunction = 0x03
	LockUnpreserveOnPowerCycle       LockNetworkFunction = 0x04
)

var lockNetworkFunctionNames = map[uint8]string{
	0x00: "UNLOCK", 0x01: "LOCK",
	0x03: "PRESERVE_LOCK_ON_POWER_CYCLE", 0x04: "UNPRESERVE_LOCK_ON_POWER_CYCLE",
}

func (f LockNetworkFunction) String() string { return formatEnum(lockNetworkFunctionNames, uint8(f)) }

// CtrlMoveToFunction selects how a CTRL_MOVETO command interprets its
// position/angle fields.
type CtrlMoveToFunction uint8

const (
	MoveToDownLimit                    CtrlMoveToFunction = 0x00
	MoveToUpLimit                      CtrlMoveToFunction = 0x01
	MoveToIP                           CtrlMoveToFunction = 0x02
	MoveToPositionPercent              CtrlMoveToFunction = 0x04
	MoveToPositionPercentAnglePercent  CtrlMoveToFunction = 0x0C
	MoveToPositionPercentAngleDegrees  CtrlMoveToFunction = 0x0D
	MoveToCurrentPositionAnglePercent  CtrlMoveToFunction = 0x0F
	MoveToCurrentPositionAngleDegrees  CtrlMoveToFunction = 0x10
)

var ctrlMoveToFunctionNames = map[uint8]string{
	0x00: "DOWN_LIMIT", 0x01: "UP_LIMIT", 0x02: "IP",
	0x04: "POSITION_PERCENT", 0x0C: "POSITION_PERCENT_ANGLE_PERCENT",
	0x0D: "POSITION_PERCENT_ANGLE_DEGREES", 0x0F: "CURRENT_POSITION_ANGLE_PERCENT",
	0x10: "CURRENT_POSITION_ANGLE_DEGREES",
}

func (f CtrlMoveToFunction) String() string { return formatEnum(ctrlMoveToFunctionNames, uint8(f)) }

// MotorStatus is the run state reported by POST_MOTOR_STATUS.
type MotorStatus uint8

const (
	MotorStopped MotorStatus = 0x00
	MotorRunning MotorStatus = 0x01
	MotorBlocked MotorStatus = 0x02
	MotorLocked  MotorStatus = 0x03
)

var motorStatusNames = map[uint8]string{0x00: "STOPPED", 0x01: "RUNNING", 0x02: "BLOCKED", 0x03: "LOCKED"}

func (s MotorStatus) String() string { return formatEnum(motorStatusNames, uint8(s)) }

// MotorDirection is the direction of the motor's last or current movement.
type MotorDirection uint8

const (
	DirectionDown    MotorDirection = 0x00
	DirectionUp      MotorDirection = 0x01
	DirectionUnknown MotorDirection = 0xFF
)

var motorDirectionNames = map[uint8]string{0x00: "DOWN", 0x01: "UP", 0xFF: "UNKNOWN"}

func (d MotorDirection) String() string { return formatEnum(motorDirectionNames, uint8(d)) }

// MotorCommandSource identifies what triggered a motor status change.
type MotorCommandSource uint8

const (
	SourceInternal       MotorCommandSource = 0x00
	SourceNetworkMessage MotorCommandSource = 0x01
	SourceLocalUI        MotorCommandSource = 0x02
)

var motorCommandSourceNames = map[uint8]string{0x00: "INTERNAL", 0x01: "NETWORK_MESSAGE", 0x02: "LOCAL_UI"}

func (s MotorCommandSource) String() string { return formatEnum(motorCommandSourceNames, uint8(s)) }

// MotorStatusCause further qualifies a POST_MOTOR_STATUS report.
type MotorStatusCause uint8

const (
	CauseTargetReached      MotorStatusCause = 0x00
	CauseExplicitCommand    MotorStatusCause = 0x01
	CauseWink               MotorStatusCause = 0x02
	CauseObstacleDetection  MotorStatusCause = 0x20
	CauseOvercurrent        MotorStatusCause = 0x21
	CauseThermalProtection  MotorStatusCause = 0x22
	CauseRuntimeExceeded    MotorStatusCause = 0x30
	CauseTimeoutExceeded    MotorStatusCause = 0x32
	CausePowerCycle         MotorStatusCause = 0xFF
)

var motorStatusCauseNames = map[uint8]string{
	0x00: "TARGET_REACHED", 0x01: "EXPLICIT_COMMAND", 0x02: "WINK",
	0x20: "OBSTACLE_DETECTION", 0x21: "OVERCURRENT_PROTECTION", 0x22: "THERMAL_PROTECTION",
	0x30: "RUNTIME_EXCEEDED", 0x32: "TIMEOUT_EXCEEDED", 0xFF: "POWER_CYCLE",
}

func (c MotorStatusCause) String() string { return formatEnum(motorStatusCauseNames, uint8(c)) }

// Direction is a plain up/down movement direction, used by the
// reverse-engineered forced-move and limit-setting messages.
type Direction uint8

const (
	Down Direction = 0x00
	Up   Direction = 0x01
)

var directionNames = map[uint8]string{0x00: "DOWN", 0x01: "UP"}

func (d Direction) String() string { return formatEnum(directionNames, uint8(d)) }

// RelativeMoveFunction selects the unit and direction of a CTRL_MOVE_RELATIVE
// command.
type RelativeMoveFunction uint8

const (
	MoveNextIPDown      RelativeMoveFunction = 0x00
	MoveNextIPUp        RelativeMoveFunction = 0x01
	MoveNumPulsesDown   RelativeMoveFunction = 0x02
	MoveNumPulsesUp     RelativeMoveFunction = 0x03
	MoveTensOfMsDown    RelativeMoveFunction = 0x04
	MoveTensOfMsUp      RelativeMoveFunction = 0x05
)

var relativeMoveFunctionNames = map[uint8]string{
	0x00: "MOVE_NEXT_IP_DOWN", 0x01: "MOVE_NEXT_IP_UP",
	0x02: "MOVE_NUM_PULSES_DOWN", 0x03: "MOVE_NUM_PULSES_UP",
	0x04: "MOVE_TENS_OF_MS_DOWN", 0x05: "MOVE_TENS_OF_MS_UP",
}

func (f RelativeMoveFunction) String() string { return formatEnum(relativeMoveFunctionNames, uint8(f)) }

// SetLimitsFunction selects how SET_MOTOR_LIMITS interprets its parameter.
type SetLimitsFunction uint8

const (
	LimitsSetAtCurrent        SetLimitsFunction = 0x01
	LimitsSetAtPulseCount     SetLimitsFunction = 0x02
	LimitsAdjustByTensOfMs    SetLimitsFunction = 0x04
	LimitsAdjustByPulseCount  SetLimitsFunction = 0x05
)

var setLimitsFunctionNames = map[uint8]string{
	0x01: "SET_AT_CURRENT", 0x02: "SET_AT_PULSE_COUNT",
	0x04: "ADJUST_BY_TENS_OF_MS", 0x05: "ADJUST_BY_PULSE_COUNT",
}

func (f SetLimitsFunction) String() string { return formatEnum(setLimitsFunctionNames, uint8(f)) }

// MotorRotationDirection is the motor's configured rotation sense.
type MotorRotationDirection uint8

const (
	RotationStandard MotorRotationDirection = 0x00
	RotationReversed MotorRotationDirection = 0x01
)

var motorRotationDirectionNames = map[uint8]string{0x00: "STANDARD", 0x01: "REVERSED"}

func (d MotorRotationDirection) String() string {
	return formatEnum(motorRotationDirectionNames, uint8(d))
}
