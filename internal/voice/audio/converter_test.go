package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMuLawRoundTrip(t *testing.T) {
	// 0xFF and 0x7F are the two encodings of silence.
	for _, b := range []byte{0x00, 0x0F, 0x7F, 0x80, 0x8F, 0xFF} {
		got := linearToMulaw(mulawToLinear(b))
		want := b
		if b == 0x7F {
			want = 0xFF
		}
		assert.Equalf(t, want, got, "round trip of 0x%02X", b)
	}
}

func TestMuLawToPCM16k_DoublesSampleCount(t *testing.T) {
	mulaw := []byte{0xFF, 0x80, 0x00, 0xFF}
	pcm := MuLawToPCM16k(mulaw)

	// 2 bytes per sample, 2x rate.
	assert.Len(t, pcm, len(mulaw)*2*2)
}

func TestMuLawToPCM16k_Empty(t *testing.T) {
	assert.Empty(t, MuLawToPCM16k(nil))
}

func TestPCMToMuLaw8k(t *testing.T) {
	t.Run("24kHz keeps every third sample", func(t *testing.T) {
		pcm := encodePCM([]int16{0, 100, 200, 1000, 1100, 1200})
		out, err := PCMToMuLaw8k(pcm, ModelOutputRate)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, linearToMulaw(0), out[0])
		assert.Equal(t, linearToMulaw(1000), out[1])
	})

	t.Run("rejects odd rates", func(t *testing.T) {
		_, err := PCMToMuLaw8k([]byte{0, 0}, 22050)
		assert.Error(t, err)
	})
}

func TestPayloadRoundTrip(t *testing.T) {
	raw := []byte{0xFF, 0x7F, 0x00}
	decoded, err := DecodePayload(EncodePayload(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	_, err = DecodePayload("%%%")
	assert.Error(t, err)
}
