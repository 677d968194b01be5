package dmac

import "fmt"

// NoNextDescriptor marks the end of a descriptor chain.
const NoNextDescriptor = -1

// A Response is the completion flag of one descriptor.
type Response int

// The possible responses of a descriptor.
const (
	ResponsePending Response = iota
	ResponseDone
)

func (r Response) String() string {
	switch r {
	case ResponsePending:
		return "pending"
	case ResponseDone:
		return "done"
	default:
		return fmt.Sprintf("response(%d)", int(r))
	}
}

// A DescriptorConfig describes one block-copy operation: the source and
// destination regions, the number of bytes to move, and the index of the
// descriptor that executes next (NoNextDescriptor terminates the chain).
type DescriptorConfig struct {
	Src      Region
	Dst      Region
	NumBytes uint64
	Next     int
}

func (d DescriptorConfig) mustBeValid(index, numDescriptors int, capacity uint64) {
	d.Src.mustBeValid(capacity)
	d.Dst.mustBeValid(capacity)

	if d.NumBytes == 0 {
		panic(fmt.Sprintf("descriptor %d moves zero bytes", index))
	}

	if d.Src.Size < d.NumBytes {
		panic(fmt.Sprintf(
			"descriptor %d: source region %s (%d bytes) is smaller than "+
				"the transfer size %d",
			index, d.Src.Name, d.Src.Size, d.NumBytes))
	}

	if d.Dst.Size < d.NumBytes {
		panic(fmt.Sprintf(
			"descriptor %d: destination region %s (%d bytes) is smaller "+
				"than the transfer size %d",
			index, d.Dst.Name, d.Dst.Size, d.NumBytes))
	}

	if d.Next != NoNextDescriptor && (d.Next < 0 || d.Next >= numDescriptors) {
		panic(fmt.Sprintf(
			"descriptor %d links to descriptor %d, which does not exist",
			index, d.Next))
	}
}
