package firmware

import (
	"github.com/sarchlab/dmacsim/dmac"
	"github.com/sarchlab/dmacsim/sim"
	"github.com/sarchlab/dmacsim/uart"
)

// A Builder for the demo firmware.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	dmaCtrl *dmac.Comp
	console *uart.Comp
}

// MakeBuilder returns a new Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq: 48 * sim.MHz,
	}
}

// WithEngine sets the engine of the firmware.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the processor.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithDMAController sets the DMA controller the program drives.
func (b Builder) WithDMAController(d *dmac.Comp) Builder {
	b.dmaCtrl = d
	return b
}

// WithConsole sets the serial console the program reports over.
func (b Builder) WithConsole(console *uart.Comp) Builder {
	b.console = console
	return b
}

// Build creates the firmware and performs platform init: it preloads the
// source regions, configures the ping/pong descriptor chain, and arms the
// channel. Any failure here is fatal and panics before a single byte is
// printed.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.dmaCtrl = b.dmaCtrl
	c.consoleRx = b.console.GetPortByName("Rx")
	c.dmacTrigger = b.dmaCtrl.GetPortByName("Trigger")

	c.txPort = sim.NewPort(c, 1, 4, name+".TxPort")
	c.AddPort("Tx", c.txPort)

	c.triggerPort = sim.NewPort(c, 1, 1, name+".TriggerPort")
	c.AddPort("TriggerOut", c.triggerPort)

	b.platformInit(c)

	c.phase = phasePrintBanner
	c.queueBanner()

	return c
}

func (b Builder) platformInit(c *Comp) {
	c.dmaCtrl.WriteRegion(PingSrcRegion, []byte(SourcePattern))
	c.dmaCtrl.WriteRegion(PongSrcRegion, []byte(SourcePattern))

	c.dmaCtrl.ConfigureChannel(dmaChannel, []dmac.DescriptorConfig{
		{
			Src:      PingSrcRegion,
			Dst:      PingDstRegion,
			NumBytes: TransferSize,
			Next:     pongDescriptor,
		},
		{
			Src:      PongSrcRegion,
			Dst:      PongDstRegion,
			NumBytes: TransferSize,
			Next:     dmac.NoNextDescriptor,
		},
	})
	c.dmaCtrl.EnableChannel(dmaChannel)
}
