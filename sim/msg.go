package sim

// A Msg is a piece of information that is transferred between components.
type Msg interface {
	Meta() *MsgMeta
}

// MsgMeta contains the meta data that is attached to every message.
type MsgMeta struct {
	ID           string
	Src, Dst     Port
	TrafficClass string
	TrafficBytes int
}

// Rsp is a special message that is used to indicate the completion of a
// request.
type Rsp interface {
	Msg
	GetRspTo() string
}

// A SendError happens when a port cannot accept a message for sending or
// delivering.
type SendError struct {
}

// NewSendError creates a SendError
func NewSendError() *SendError {
	e := new(SendError)
	return e
}
