// SPDX-License-Identifier: EPL-2.0

// Package wav writes 24-bit PCM WAV files.
//
// When the output implements io.WriteSeeker the file is produced by
// github.com/go-audio/wav, which patches the RIFF and data sizes on Close.
// Other writers, such as standard output piped into another program, get a
// canonical 44-byte header whose size fields are set to 0xFFFFFFFF,
// followed by tightly packed little-endian 24-bit samples.
//
//	sink, err := wav.NewSink(file, audio.Format{SampleRate: 352800, Channels: 2, BitDepth: 24})
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//	err = sink.WriteBlock(samples)
package wav
