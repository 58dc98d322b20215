// SPDX-License-Identifier: EPL-2.0

package dsd

import "github.com/ik5/dsdplay/utils"

// Layout describes how one block of 1-bit audio is laid out in memory.
//
// Byte i of channel ch lives at Data[ch*ChannelStep + i*SampleStep], so a
// fully interleaved block has SampleStep == channels and ChannelStep == 1,
// while a block-planar block has SampleStep == 1 and ChannelStep == Capacity.
type Layout struct {
	// Capacity in bytes per channel.
	Capacity int
	// LSBFirst is set when the oldest sample of each byte is in bit 0.
	LSBFirst bool

	SampleStep  int
	ChannelStep int
}

// Interleaved returns the layout of a fully interleaved block.
func Interleaved(channels, capacity int) Layout {
	return Layout{Capacity: capacity, SampleStep: channels, ChannelStep: 1}
}

// Planar returns the layout of a block stored one channel after another.
func Planar(capacity int) Layout {
	return Layout{Capacity: capacity, SampleStep: 1, ChannelStep: capacity}
}

// Buffer is a reusable fixed-capacity block of 1-bit audio for all channels.
type Buffer struct {
	Layout

	Channels int
	// BytesPerChannel is the number of valid bytes per channel in the
	// current fill. It never exceeds Capacity.
	BytesPerChannel int

	Data []byte
}

// NewBuffer allocates a buffer holding capacity bytes for each channel.
func NewBuffer(channels int, l Layout) *Buffer {
	return &Buffer{
		Layout:   l,
		Channels: channels,
		Data:     make([]byte, l.Capacity*channels),
	}
}

// At returns byte i of channel ch.
func (b *Buffer) At(ch, i int) byte {
	return b.Data[ch*b.ChannelStep+i*b.SampleStep]
}

// Set stores v as byte i of channel ch.
func (b *Buffer) Set(ch, i int, v byte) {
	b.Data[ch*b.ChannelStep+i*b.SampleStep] = v
}

// Frames returns the number of valid bytes per channel.
func (b *Buffer) Frames() int { return b.BytesPerChannel }

// ToMSB converts the whole block to most-significant-bit-first order in place.
// It does nothing when the block already is MSB first.
func (b *Buffer) ToMSB() {
	if !b.LSBFirst {
		return
	}
	utils.BitReverseBytes(b.Data)
	b.LSBFirst = false
}

// half returns the layout of a block holding half as many bytes per channel,
// keeping the interleaved or planar arrangement of l.
func (l Layout) half(channels int) Layout {
	capacity := l.Capacity / 2
	if l.ChannelStep == 1 && channels > 1 {
		return Interleaved(channels, capacity)
	}
	return Planar(capacity)
}
