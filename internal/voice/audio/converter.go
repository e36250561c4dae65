// Package audio converts between telephony mu-law frames and the linear PCM
// the live model consumes and produces.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

const (
	// TelephonyRate is the sample rate of mu-law media frames.
	TelephonyRate = 8000
	// ModelInputRate is the PCM rate the live model expects for input audio.
	ModelInputRate = 16000
	// ModelOutputRate is the PCM rate of audio the live model returns.
	ModelOutputRate = 24000
)

const (
	mulawBias = 0x84
	mulawClip = 32635
)

// MuLawToPCM16k decodes 8kHz mu-law into little-endian 16-bit PCM at 16kHz.
func MuLawToPCM16k(mulaw []byte) []byte {
	samples := make([]int16, len(mulaw))
	for i, b := range mulaw {
		samples[i] = mulawToLinear(b)
	}
	return encodePCM(upsample(samples, ModelInputRate/TelephonyRate))
}

// PCMToMuLaw8k encodes little-endian 16-bit PCM at rate into 8kHz mu-law.
// rate must be a whole multiple of 8000.
func PCMToMuLaw8k(pcm []byte, rate int) ([]byte, error) {
	if rate < TelephonyRate || rate%TelephonyRate != 0 {
		return nil, fmt.Errorf("unsupported sample rate %d", rate)
	}
	samples := downsample(decodePCM(pcm), rate/TelephonyRate)
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = linearToMulaw(s)
	}
	return out, nil
}

// DecodePayload decodes a base64 media payload.
func DecodePayload(payload string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(payload)
}

// EncodePayload base64-encodes raw audio for a media envelope.
func EncodePayload(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func mulawToLinear(b byte) int16 {
	b = ^b
	sign := b & 0x80
	exponent := (b >> 4) & 0x07
	mantissa := int32(b & 0x0F)

	sample := ((mantissa << 3) + mulawBias) << exponent
	sample -= mulawBias
	if sign != 0 {
		return int16(-sample)
	}
	return int16(sample)
}

func linearToMulaw(sample int16) byte {
	s := int32(sample)
	var sign byte
	if s < 0 {
		sign = 0x80
		s = -s
	}
	if s > mulawClip {
		s = mulawClip
	}
	s += mulawBias

	exponent := byte(7)
	for mask := int32(0x4000); exponent > 0 && s&mask == 0; mask >>= 1 {
		exponent--
	}
	mantissa := byte((s >> (exponent + 3)) & 0x0F)
	return ^(sign | exponent<<4 | mantissa)
}

func decodePCM(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return samples
}

func encodePCM(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// downsample keeps every factor-th sample.
func downsample(samples []int16, factor int) []int16 {
	if factor <= 1 {
		return samples
	}
	out := make([]int16, 0, len(samples)/factor+1)
	for i := 0; i < len(samples); i += factor {
		out = append(out, samples[i])
	}
	return out
}

// upsample linearly interpolates factor-1 samples between each pair.
func upsample(samples []int16, factor int) []int16 {
	if factor <= 1 || len(samples) == 0 {
		return samples
	}
	out := make([]int16, len(samples)*factor)
	for i, cur := range samples {
		next := cur
		if i+1 < len(samples) {
			next = samples[i+1]
		}
		delta := int32(next) - int32(cur)
		for j := 0; j < factor; j++ {
			out[i*factor+j] = int16(int32(cur) + delta*int32(j)/int32(factor))
		}
	}
	return out
}
