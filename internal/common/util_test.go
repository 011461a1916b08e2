package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	require.Len(t, s, n*2)

	_, err = hex.DecodeString(s)
	require.NoError(t, err)
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestGenerateRandByteArray_Length(t *testing.T) {
	buf := GenerateRandByteArray(24)
	require.Len(t, buf, 24)
}

func TestGenerateRandByteArray_Differs(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	if string(a) == string(b) {
		t.Logf("warning: two 32-byte random buffers are identical; extremely unlikely")
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("1234")
	WipeByteArray(buf)
	require.Equal(t, []byte{0, 0, 0, 0}, buf)
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	require.NotPanics(t, func() { WipeByteArray(nil) })
}
