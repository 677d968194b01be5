package dmac

import "fmt"

// A ChannelState is the lifecycle state of a channel.
type ChannelState int

// The lifecycle of a channel. A channel is configured while Idle, armed by
// Enable, moved to Transferring by a trigger, and parks in Done after the
// last descriptor in its chain retires.
const (
	ChannelIdle ChannelState = iota
	ChannelEnabled
	ChannelTransferring
	ChannelDone
)

func (s ChannelState) String() string {
	switch s {
	case ChannelIdle:
		return "idle"
	case ChannelEnabled:
		return "enabled"
	case ChannelTransferring:
		return "transferring"
	case ChannelDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// A channel owns an ordered chain of descriptors and executes them strictly
// one after another.
type channel struct {
	state       ChannelState
	descriptors []DescriptorConfig
	responses   []Response

	current     int
	bytesCopied uint64

	taskID     string
	descTaskID string
}

func (ch *channel) currentDescriptor() DescriptorConfig {
	return ch.descriptors[ch.current]
}
