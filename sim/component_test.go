package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("ComponentBase", func() {
	var (
		mockCtrl *gomock.Controller
		comp     *ComponentBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		comp = NewComponentBase("Comp")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should return the name", func() {
		Expect(comp.Name()).To(Equal("Comp"))
	})

	It("should register and return ports in order", func() {
		port1 := NewMockPort(mockCtrl)
		port2 := NewMockPort(mockCtrl)

		comp.AddPort("A", port1)
		comp.AddPort("B", port2)

		Expect(comp.Ports()).To(HaveLen(2))
		Expect(comp.Ports()[0]).To(BeIdenticalTo(port1))
		Expect(comp.Ports()[1]).To(BeIdenticalTo(port2))
	})

	It("should get a port by name", func() {
		port := NewMockPort(mockCtrl)
		comp.AddPort("A", port)

		Expect(comp.GetPortByName("A")).To(BeIdenticalTo(port))
	})

	It("should panic when registering the same port name twice", func() {
		port := NewMockPort(mockCtrl)
		comp.AddPort("A", port)

		Expect(func() { comp.AddPort("A", port) }).To(Panic())
	})

	It("should panic when a port is not found", func() {
		Expect(func() { comp.GetPortByName("Missing") }).To(Panic())
	})
})

var _ = Describe("ID Generator", func() {
	It("should generate unique IDs", func() {
		g := GetIDGenerator()

		id1 := g.Generate()
		id2 := g.Generate()

		Expect(id1).NotTo(Equal(id2))
	})

	It("should generate unique IDs in parallel mode", func() {
		g := parallelIDGenerator{}

		id1 := g.Generate()
		id2 := g.Generate()

		Expect(id1).NotTo(Equal(id2))
		Expect(id1).To(HaveLen(20))
	})
})
