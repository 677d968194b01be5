// Package mem provides the memory model that backs simulated SRAM.
package mem

import "errors"

// Common memory capacity units.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)

// A Storage keeps the data of the simulated system.
//
// A storage is an abstraction over all types of memory, including registers,
// SRAM, and main memory. The storage manages its content in units. Units
// that are never touched by Read or Write do not allocate any host memory.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage object with the given capacity
func NewStorage(capacity uint64) *Storage {
	storage := new(Storage)

	storage.unitSize = 4096
	storage.capacity = capacity
	storage.data = make(map[uint64][]byte)

	return storage
}

// Capacity returns the number of bytes that the storage can hold.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) createOrGetStorageUnit(address uint64) ([]byte, error) {
	if address >= s.capacity {
		return nil, errors.New(
			"accessing an address beyond the storage capacity")
	}

	baseAddr, _ := s.parseAddress(address)
	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}
	return unit, nil
}

func (s *Storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr
	return
}

// Read returns a copy of `size` bytes starting at `address`.
func (s *Storage) Read(address, size uint64) ([]byte, error) {
	currAddr := address
	sizeLeft := size
	dataOffset := uint64(0)
	res := make([]byte, size)

	for currAddr < address+size {
		unit, err := s.createOrGetStorageUnit(currAddr)
		if err != nil {
			return nil, err
		}

		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		sizeLeftInUnit := baseAddr + s.unitSize - currAddr
		sizeToRead := sizeLeft
		if sizeToRead > sizeLeftInUnit {
			sizeToRead = sizeLeftInUnit
		}

		copy(res[dataOffset:dataOffset+sizeToRead],
			unit[inUnitAddr:inUnitAddr+sizeToRead])
		sizeLeft -= sizeToRead
		dataOffset += sizeToRead
		currAddr += sizeToRead
	}

	return res, nil
}

// Write stores `data` starting at `address`.
func (s *Storage) Write(address uint64, data []byte) error {
	currAddr := address
	dataOffset := uint64(0)

	for dataOffset < uint64(len(data)) {
		unit, err := s.createOrGetStorageUnit(currAddr)
		if err != nil {
			return err
		}

		_, inUnitAddr := s.parseAddress(currAddr)
		sizeLeftInData := uint64(len(data)) - dataOffset
		sizeLeftInUnit := s.unitSize - inUnitAddr
		sizeToWrite := sizeLeftInData
		if sizeToWrite > sizeLeftInUnit {
			sizeToWrite = sizeLeftInUnit
		}

		copy(unit[inUnitAddr:inUnitAddr+sizeToWrite],
			data[dataOffset:dataOffset+sizeToWrite])
		dataOffset += sizeToWrite
		currAddr += sizeToWrite
	}

	return nil
}
