package dmac

import "github.com/sarchlab/dmacsim/sim"

// A TriggerMsg is the one-shot software trigger that starts the descriptor
// chain of a channel. PulseCycles selects how many cycles the trigger line
// stays asserted.
type TriggerMsg struct {
	sim.MsgMeta

	Channel     int
	PulseCycles int
}

// Meta returns the meta data attached to the message.
func (m *TriggerMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// TriggerMsgBuilder can build trigger messages.
type TriggerMsgBuilder struct {
	src, dst    sim.Port
	channel     int
	pulseCycles int
}

// MakeTriggerMsgBuilder creates a new TriggerMsgBuilder
func MakeTriggerMsgBuilder() TriggerMsgBuilder {
	return TriggerMsgBuilder{}
}

// WithSrc sets the source of the message to build.
func (b TriggerMsgBuilder) WithSrc(src sim.Port) TriggerMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message to build.
func (b TriggerMsgBuilder) WithDst(dst sim.Port) TriggerMsgBuilder {
	b.dst = dst
	return b
}

// WithChannel sets the channel that the trigger starts.
func (b TriggerMsgBuilder) WithChannel(channel int) TriggerMsgBuilder {
	b.channel = channel
	return b
}

// WithPulseCycles sets the number of cycles the trigger line is asserted.
func (b TriggerMsgBuilder) WithPulseCycles(cycles int) TriggerMsgBuilder {
	b.pulseCycles = cycles
	return b
}

// Build creates a new TriggerMsg
func (b TriggerMsgBuilder) Build() *TriggerMsg {
	m := &TriggerMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.Channel = b.channel
	m.PulseCycles = b.pulseCycles
	return m
}
