package uart

import "github.com/sarchlab/dmacsim/sim"

// A TxMsg carries one byte to be written out on the serial line.
type TxMsg struct {
	sim.MsgMeta

	Data byte
}

// Meta returns the meta data attached to the message.
func (m *TxMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// TxMsgBuilder can build TxMsgs.
type TxMsgBuilder struct {
	src, dst sim.Port
	data     byte
}

// MakeTxMsgBuilder creates a new TxMsgBuilder
func MakeTxMsgBuilder() TxMsgBuilder {
	return TxMsgBuilder{}
}

// WithSrc sets the source of the message to build.
func (b TxMsgBuilder) WithSrc(src sim.Port) TxMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message to build.
func (b TxMsgBuilder) WithDst(dst sim.Port) TxMsgBuilder {
	b.dst = dst
	return b
}

// WithData sets the byte that the message carries.
func (b TxMsgBuilder) WithData(data byte) TxMsgBuilder {
	b.data = data
	return b
}

// Build creates a new TxMsg
func (b TxMsgBuilder) Build() *TxMsg {
	m := &TxMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.Data = b.data
	return m
}
