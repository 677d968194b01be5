package dmac

import "fmt"

// A Region is a fixed-size window of the controller's SRAM that serves as a
// transfer source or destination.
type Region struct {
	Name string
	Addr uint64
	Size uint64
}

func (r Region) mustBeValid(capacity uint64) {
	if r.Size == 0 {
		panic(fmt.Sprintf("region %s has zero size", r.Name))
	}

	if r.Addr+r.Size > capacity {
		panic(fmt.Sprintf(
			"region %s [0x%02x, 0x%02x) exceeds the SRAM capacity %d",
			r.Name, r.Addr, r.Addr+r.Size, capacity))
	}
}
