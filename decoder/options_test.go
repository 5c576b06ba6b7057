package decoder_test

import (
	"testing"

	"github.com/ada-tools/ccbor/decoder"
	"github.com/stretchr/testify/require"
)

func TestStrictPresetForcesCanonicalDerivedOptions(t *testing.T) {
	d, err := decoder.New(decoder.Strict()...)
	require.NoError(t, err)
	require.NotNil(t, d)

	// strict forces allow_indefinite=false: an indefinite array must fail.
	_, _, err = d.Parse([]byte{0x9f, 0xff})
	require.Error(t, err)
}

func TestPermissiveAllowsIndefiniteAndSkipsValidation(t *testing.T) {
	d, err := decoder.New(decoder.Permissive()...)
	require.NoError(t, err)

	_, _, err = d.Parse([]byte{0x9f, 0xff})
	require.NoError(t, err)
}

func TestWithMaxInputSizeRejectsOversizedInput(t *testing.T) {
	d, err := decoder.New(decoder.WithMaxInputSize(2))
	require.NoError(t, err)

	_, _, err = d.Parse([]byte{0x83, 0x01, 0x02})
	require.Error(t, err)
}

func TestNewConfigRejectsNegativeLimit(t *testing.T) {
	_, err := decoder.NewConfig(decoder.WithMaxDepth(-1))
	require.Error(t, err)
}
