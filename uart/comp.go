// Package uart models the serial console that the demo reports over.
package uart

import (
	"io"
	"log"
	"reflect"

	"github.com/sarchlab/dmacsim/sim"
)

// Comp is the serial transmitter. It accepts one byte per message on its Rx
// port and shifts one byte out per tick, where the tick rate is derived from
// the baud rate. The Rx buffer holds a single byte, so a sender that is
// faster than the wire stalls until the transmitter is ready again, the same
// way firmware spins on a tx-ready flag.
type Comp struct {
	*sim.TickingComponent

	rxPort sim.Port
	writer io.Writer
}

// Tick shifts out one byte.
func (c *Comp) Tick() bool {
	msg := c.rxPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	txMsg, ok := msg.(*TxMsg)
	if !ok {
		log.Panicf("cannot process msg of type %s", reflect.TypeOf(msg))
	}

	_, err := c.writer.Write([]byte{txMsg.Data})
	if err != nil {
		log.Panic(err)
	}

	return true
}
