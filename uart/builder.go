package uart

import (
	"io"
	"os"

	"github.com/sarchlab/dmacsim/sim"
)

// A Builder for serial transmitters.
type Builder struct {
	engine   sim.Engine
	baudRate int
	writer   io.Writer
}

// MakeBuilder returns a new Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		baudRate: 115200,
		writer:   os.Stdout,
	}
}

// WithEngine sets the engine of the transmitter.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithBaudRate sets the baud rate of the serial line. With 8N1 framing, one
// byte takes 10 bit times on the wire.
func (b Builder) WithBaudRate(baudRate int) Builder {
	b.baudRate = baudRate
	return b
}

// WithWriter sets where the transmitted bytes end up.
func (b Builder) WithWriter(w io.Writer) Builder {
	b.writer = w
	return b
}

// Build creates a new serial transmitter.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}

	byteFreq := sim.Freq(b.baudRate) / 10

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, byteFreq, c)
	c.writer = b.writer

	c.rxPort = sim.NewPort(c, 1, 1, name+".RxPort")
	c.AddPort("Rx", c.rxPort)

	return c
}
