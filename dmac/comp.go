// Package dmac models a DMA controller that executes chained block-copy
// descriptors over the SRAM it fronts.
package dmac

import (
	"fmt"
	"log"
	"reflect"

	"github.com/sarchlab/dmacsim/mem"
	"github.com/sarchlab/dmacsim/sim"
	"github.com/sarchlab/dmacsim/tracing"
)

// Comp is the DMA controller. It owns the SRAM that holds the transfer
// regions and one or more channels, each with a chain of descriptors. The
// controller moves one byte per cycle and retires descriptors in strict
// chain order.
type Comp struct {
	*sim.TickingComponent

	triggerPort sim.Port

	// Storage is the SRAM the controller copies within. It is exported so
	// that the platform-init code can preload source regions.
	Storage *mem.Storage

	channels []*channel
}

// ConfigureChannel binds a descriptor chain to a channel. The channel must
// be Idle. Configuration errors are programming errors and panic.
func (c *Comp) ConfigureChannel(id int, descriptors []DescriptorConfig) {
	ch := c.channelMustExist(id)

	if ch.state != ChannelIdle {
		panic(fmt.Sprintf(
			"cannot configure channel %d in state %s", id, ch.state))
	}

	if len(descriptors) == 0 {
		panic(fmt.Sprintf(
			"channel %d must be configured with at least one descriptor", id))
	}

	for i, d := range descriptors {
		d.mustBeValid(i, len(descriptors), c.Storage.Capacity())
	}

	ch.descriptors = append([]DescriptorConfig{}, descriptors...)
	ch.responses = make([]Response, len(descriptors))
}

// EnableChannel arms a configured channel so that it accepts a trigger.
// Enabling a channel that is not freshly configured is undefined on real
// hardware; here it panics.
func (c *Comp) EnableChannel(id int) {
	ch := c.channelMustExist(id)

	if ch.state != ChannelIdle {
		panic(fmt.Sprintf(
			"cannot enable channel %d in state %s", id, ch.state))
	}

	if len(ch.descriptors) == 0 {
		panic(fmt.Sprintf("cannot enable unconfigured channel %d", id))
	}

	ch.state = ChannelEnabled
}

// ChannelState returns the lifecycle state of a channel.
func (c *Comp) ChannelState(id int) ChannelState {
	return c.channelMustExist(id).state
}

// DescriptorResponse is a non-blocking read of one descriptor's completion
// flag. Callers waiting for the whole chain must poll the last descriptor.
func (c *Comp) DescriptorResponse(id, descriptorIndex int) Response {
	ch := c.channelMustExist(id)

	if descriptorIndex < 0 || descriptorIndex >= len(ch.responses) {
		panic(fmt.Sprintf(
			"channel %d has no descriptor %d", id, descriptorIndex))
	}

	return ch.responses[descriptorIndex]
}

// ReadRegion returns the current content of a region.
func (c *Comp) ReadRegion(r Region) []byte {
	r.mustBeValid(c.Storage.Capacity())

	data, err := c.Storage.Read(r.Addr, r.Size)
	if err != nil {
		log.Panic(err)
	}

	return data
}

// WriteRegion stores data into a region. It is meant for platform-init code
// that preloads source regions before the channel is armed.
func (c *Comp) WriteRegion(r Region, data []byte) {
	r.mustBeValid(c.Storage.Capacity())

	if uint64(len(data)) > r.Size {
		panic(fmt.Sprintf(
			"writing %d bytes into region %s of %d bytes",
			len(data), r.Name, r.Size))
	}

	err := c.Storage.Write(r.Addr, data)
	if err != nil {
		log.Panic(err)
	}
}

// Tick updates the state of the controller by one cycle.
func (c *Comp) Tick() bool {
	madeProgress := false

	madeProgress = c.copyBeat() || madeProgress
	madeProgress = c.processTrigger() || madeProgress

	return madeProgress
}

// processTrigger retrieves one trigger message and starts the descriptor
// chain of the targeted channel.
func (c *Comp) processTrigger() bool {
	msg := c.triggerPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	trigger, ok := msg.(*TriggerMsg)
	if !ok {
		log.Panicf("cannot process msg of type %s", reflect.TypeOf(msg))
	}

	if trigger.PulseCycles <= 0 {
		panic("trigger pulse must be asserted for at least one cycle")
	}

	ch := c.channelMustExist(trigger.Channel)
	if ch.state != ChannelEnabled {
		// A trigger on a channel that is not armed is lost, as on hardware.
		return true
	}

	ch.state = ChannelTransferring
	ch.current = 0
	ch.bytesCopied = 0

	ch.taskID = sim.GetIDGenerator().Generate()
	tracing.StartTask(ch.taskID, trigger.ID, c,
		"dma_transfer", fmt.Sprintf("channel_%d", trigger.Channel), trigger)
	c.startDescriptorTask(ch)

	return true
}

// copyBeat moves one byte for every transferring channel.
func (c *Comp) copyBeat() bool {
	madeProgress := false

	for _, ch := range c.channels {
		if ch.state != ChannelTransferring {
			continue
		}

		desc := ch.currentDescriptor()

		data, err := c.Storage.Read(desc.Src.Addr+ch.bytesCopied, 1)
		if err != nil {
			log.Panic(err)
		}

		err = c.Storage.Write(desc.Dst.Addr+ch.bytesCopied, data)
		if err != nil {
			log.Panic(err)
		}

		ch.bytesCopied++
		if ch.bytesCopied == desc.NumBytes {
			c.retireDescriptor(ch)
		}

		madeProgress = true
	}

	return madeProgress
}

// retireDescriptor marks the current descriptor done and either follows the
// chain link or parks the channel in Done.
func (c *Comp) retireDescriptor(ch *channel) {
	desc := ch.currentDescriptor()

	ch.responses[ch.current] = ResponseDone
	tracing.EndTask(ch.descTaskID, c)
	tracing.AddTaskStep(ch.taskID, c,
		fmt.Sprintf("%s->%s retired", desc.Src.Name, desc.Dst.Name))

	if desc.Next == NoNextDescriptor {
		ch.state = ChannelDone
		tracing.EndTask(ch.taskID, c)
		return
	}

	ch.current = desc.Next
	ch.bytesCopied = 0
	c.startDescriptorTask(ch)
}

func (c *Comp) startDescriptorTask(ch *channel) {
	desc := ch.currentDescriptor()

	ch.descTaskID = sim.GetIDGenerator().Generate()
	tracing.StartTask(ch.descTaskID, ch.taskID, c,
		"descriptor_copy",
		fmt.Sprintf("%s->%s", desc.Src.Name, desc.Dst.Name), nil)
}

func (c *Comp) channelMustExist(id int) *channel {
	if id < 0 || id >= len(c.channels) {
		panic(fmt.Sprintf("channel %d does not exist", id))
	}

	return c.channels[id]
}
