// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"sync"

	"github.com/ik5/dsdplay/utils"
)

// The demodulator is a symmetric 96-tap FIR low-pass running at the 1-bit
// rate and evaluated once per input byte. Only the first half of the taps
// is stored; each group of 8 taps is folded into a 256-entry table indexed
// by one input byte.
const (
	halfTaps  = 48
	numTables = halfTaps / 8
	fifoSize  = 16
	fifoMask  = fifoSize - 1
)

var halfTapValues = [halfTaps]float64{
	0.09950731974056658,
	0.09562845727714668,
	0.08819647126516944,
	0.07782552527068175,
	0.06534876523171299,
	0.05172629311427257,
	0.0379429484910187,
	0.02490921351762261,
	0.0133774746265897,
	0.003883043418804416,
	-0.003284703416210726,
	-0.008080250212687497,
	-0.01067241812471033,
	-0.01139427235000863,
	-0.0106813877974587,
	-0.009007905078766049,
	-0.006828859761015335,
	-0.004535184322001496,
	-0.002425035959059578,
	-0.0006922187080790708,
	0.0005700762133516592,
	0.001353838005269448,
	0.001713709169690937,
	0.001742046839472948,
	0.001545601648013235,
	0.001226696225277855,
	0.0008704322683580222,
	0.0005381636200535649,
	0.000266446345425276,
	7.002968738383528e-05,
	-5.279407053811266e-05,
	-0.0001140625650874684,
	-0.0001304796361231895,
	-0.0001189970287491285,
	-9.396247155265073e-05,
	-6.577634378272832e-05,
	-4.07492895872535e-05,
	-2.17407957554587e-05,
	-9.163058931391722e-06,
	-2.017460145032201e-06,
	1.249721855219005e-06,
	2.166655190537392e-06,
	1.930520892991082e-06,
	1.319400334374195e-06,
	7.410039764949091e-07,
	3.423230509967409e-07,
	1.244182214744588e-07,
	3.130441005359396e-08,
}

var (
	tablesOnce sync.Once
	// tables[numTables-1] holds the centre taps, tables[0] the outermost.
	tables [numTables][256]float64
)

func initTables() {
	for t := range numTables {
		for e := range 256 {
			var acc float64
			for m := range 8 {
				bit := float64((e>>(7-m))&1)*2 - 1
				acc += bit * halfTapValues[t*8+m]
			}
			tables[numTables-1-t][e] = acc
		}
	}
}

// demodContext is the filter history of one channel.
type demodContext struct {
	fifo [fifoSize]byte
	pos  int
}

func newDemodContext() *demodContext {
	tablesOnce.Do(initTables)

	c := &demodContext{}
	c.reset()
	return c
}

// reset fills the history with the idle pattern.
func (c *demodContext) reset() {
	for i := range c.fifo {
		c.fifo[i] = 0x69
	}
	c.pos = 0
}

// translate filters n bytes read from src at off, off+step, ... and stores
// one sample per byte into dst at doff, doff+dstep, ...
func (c *demodContext) translate(n int, src []byte, off, step int, lsbFirst bool, dst []float32, doff, dstep int) {
	pos := c.pos

	for range n {
		b := src[off]
		off += step
		if lsbFirst {
			b = utils.BitReverse(b)
		}
		c.fifo[pos] = b

		// The second half of the window runs backwards in time, so the
		// byte entering it is mirrored.
		p := (pos - numTables) & fifoMask
		c.fifo[p] = utils.BitReverse(c.fifo[p])

		var acc float64
		for i := range numTables {
			acc += tables[i][c.fifo[(pos-i)&fifoMask]] +
				tables[i][c.fifo[(pos-(numTables*2-1)+i)&fifoMask]]
		}

		dst[doff] = float32(acc)
		doff += dstep
		pos = (pos + 1) & fifoMask
	}

	c.pos = pos
}
