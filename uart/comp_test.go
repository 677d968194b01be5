package uart

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dmacsim/sim"
)

var _ = Describe("Serial Transmitter", func() {
	var (
		engine  *sim.SerialEngine
		console *Comp
		out     *bytes.Buffer
		sender  sim.Port
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		out = &bytes.Buffer{}
		console = MakeBuilder().
			WithEngine(engine).
			WithWriter(out).
			Build("Console")
		sender = sim.NewPort(nil, 1, 1, "Sender")
	})

	It("should write a delivered byte", func() {
		msg := MakeTxMsgBuilder().
			WithSrc(sender).
			WithDst(console.GetPortByName("Rx")).
			WithData('A').
			Build()

		err := console.GetPortByName("Rx").Deliver(msg)
		Expect(err).To(BeNil())

		engine.Run()

		Expect(out.String()).To(Equal("A"))
	})

	It("should reject a second byte while one is pending", func() {
		rx := console.GetPortByName("Rx")

		msg1 := MakeTxMsgBuilder().
			WithSrc(sender).WithDst(rx).WithData('A').Build()
		msg2 := MakeTxMsgBuilder().
			WithSrc(sender).WithDst(rx).WithData('B').Build()

		Expect(rx.Deliver(msg1)).To(BeNil())
		Expect(rx.Deliver(msg2)).NotTo(BeNil())
	})

	It("should panic on a message that does not carry a byte", func() {
		rx := console.GetPortByName("Rx")

		msg := &wrongMsg{}

		Expect(rx.Deliver(msg)).To(BeNil())
		Expect(func() { engine.Run() }).
			To(PanicWith(MatchRegexp("cannot process msg of type")))
	})
})

type wrongMsg struct {
	sim.MsgMeta
}

func (m *wrongMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}
