package dmac

import (
	"github.com/sarchlab/dmacsim/mem"
	"github.com/sarchlab/dmacsim/sim"
)

// A Builder for DMA controllers.
type Builder struct {
	engine         sim.Engine
	freq           sim.Freq
	sramCapacity   uint64
	numChannels    int
	triggerBufSize int
}

// MakeBuilder returns a new Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:           48 * sim.MHz,
		sramCapacity:   8 * mem.KB,
		numChannels:    1,
		triggerBufSize: 4,
	}
}

// WithEngine sets the engine of the controller.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the controller.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSRAMCapacity sets the capacity of the SRAM the controller fronts.
func (b Builder) WithSRAMCapacity(capacity uint64) Builder {
	b.sramCapacity = capacity
	return b
}

// WithNumChannels sets the number of channels of the controller.
func (b Builder) WithNumChannels(n int) Builder {
	b.numChannels = n
	return b
}

// Build creates a new DMA controller.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.Storage = mem.NewStorage(b.sramCapacity)

	for i := 0; i < b.numChannels; i++ {
		c.channels = append(c.channels, &channel{})
	}

	c.triggerPort = sim.NewPort(c, b.triggerBufSize, b.triggerBufSize,
		name+".TriggerPort")
	c.AddPort("Trigger", c.triggerPort)

	return c
}
