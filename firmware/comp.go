// Package firmware runs the demo program: it configures a two-descriptor
// ping/pong chain, fires a software trigger, busy-polls the last descriptor
// for completion, and reports the transfer over the serial console.
package firmware

import (
	"github.com/sarchlab/dmacsim/dmac"
	"github.com/sarchlab/dmacsim/sim"
	"github.com/sarchlab/dmacsim/uart"
)

// TransferSize is the number of bytes each descriptor moves.
const TransferSize = 16

// SourcePattern is the data preloaded into both source regions.
const SourcePattern = "PSoC4_HVMS-DMADC"

// The SRAM layout of the four transfer regions.
var (
	PingSrcRegion = dmac.Region{Name: "PingSrc", Addr: 0x00, Size: TransferSize}
	PingDstRegion = dmac.Region{Name: "PingDst", Addr: 0x10, Size: TransferSize}
	PongSrcRegion = dmac.Region{Name: "PongSrc", Addr: 0x20, Size: TransferSize}
	PongDstRegion = dmac.Region{Name: "PongDst", Addr: 0x30, Size: TransferSize}
)

const (
	dmaChannel     = 0
	pingDescriptor = 0
	pongDescriptor = 1

	// The trigger line stays asserted for 4 cycles.
	triggerPulseCycles = 4
)

type phase int

const (
	phasePrintBanner phase = iota
	phaseTrigger
	phasePollDone
	phasePrintReport
	phaseHalt
)

// Comp is the processor that runs the demo program.
type Comp struct {
	*sim.TickingComponent

	txPort      sim.Port
	triggerPort sim.Port

	consoleRx   sim.Port
	dmacTrigger sim.Port
	dmaCtrl     *dmac.Comp

	phase   phase
	txQueue []byte
}

// Boot starts the program.
func (c *Comp) Boot() {
	c.TickLater()
}

// Tick executes one cycle of the program.
func (c *Comp) Tick() bool {
	switch c.phase {
	case phasePrintBanner:
		if len(c.txQueue) == 0 {
			c.phase = phaseTrigger
			return true
		}
		return c.sendNextByte()
	case phaseTrigger:
		return c.sendTrigger()
	case phasePollDone:
		if c.dmaCtrl.DescriptorResponse(
			dmaChannel, pongDescriptor) == dmac.ResponseDone {
			c.queueReport()
			c.phase = phasePrintReport
		}

		// Reading the response register is this cycle's work, so the poll
		// loop spins until the transfer completes.
		return true
	case phasePrintReport:
		if len(c.txQueue) == 0 {
			c.phase = phaseHalt
			return true
		}
		return c.sendNextByte()
	case phaseHalt:
		return false
	}

	return false
}

func (c *Comp) sendTrigger() bool {
	msg := dmac.MakeTriggerMsgBuilder().
		WithSrc(c.triggerPort).
		WithDst(c.dmacTrigger).
		WithChannel(dmaChannel).
		WithPulseCycles(triggerPulseCycles).
		Build()

	err := c.triggerPort.Send(msg)
	if err != nil {
		return false
	}

	c.phase = phasePollDone

	return true
}

func (c *Comp) sendNextByte() bool {
	msg := uart.MakeTxMsgBuilder().
		WithSrc(c.txPort).
		WithDst(c.consoleRx).
		WithData(c.txQueue[0]).
		Build()

	err := c.txPort.Send(msg)
	if err != nil {
		return false
	}

	c.txQueue = c.txQueue[1:]

	return true
}

func (c *Comp) queueBanner() {
	stars := "************************************************************"

	c.queueString("\x1b[2J\x1b[;H")
	c.queueString(stars + "\r\n")
	c.queueString("DMA Data Transfer with Descriptor Chain \r\n")
	c.queueString(stars + "\r\n\n")
}

func (c *Comp) queueReport() {
	c.queueString("PING source = ")
	c.queueRegionForward(PingSrcRegion)
	c.queueString("\r\n")

	c.queueString("PING destination = ")
	c.queueRegionForward(PingDstRegion)
	c.queueString("\r\n")

	c.queueString("PONG source = ")
	c.queueRegionReverse(PongSrcRegion)
	c.queueString("\r\n")

	c.queueString("PONG destination = ")
	c.queueRegionReverse(PongDstRegion)
	c.queueString("\r\n")

	c.queueString("- DMA transfer is completed. \r\n")
}

func (c *Comp) queueString(s string) {
	c.txQueue = append(c.txQueue, s...)
}

func (c *Comp) queueRegionForward(r dmac.Region) {
	c.txQueue = append(c.txQueue, c.dmaCtrl.ReadRegion(r)...)
}

// queueRegionReverse prints a region from the highest index down to 0. The
// original demo prints the PONG regions this way while printing the PING
// regions forward, and the asymmetry is preserved on purpose.
func (c *Comp) queueRegionReverse(r dmac.Region) {
	data := c.dmaCtrl.ReadRegion(r)
	for i := len(data) - 1; i >= 0; i-- {
		c.txQueue = append(c.txQueue, data[i])
	}
}
