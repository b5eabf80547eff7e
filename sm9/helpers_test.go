/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm9

import (
	"bytes"
	"encoding/hex"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func hexInt(t *testing.T, s string) *big.Int {
	t.Helper()
	return new(big.Int).SetBytes(hexBytes(t, s))
}

// fixedScalars returns a reader that yields each scalar left-padded to 32
// bytes, the way randScalar consumes randomness.
func fixedScalars(t *testing.T, scalars ...string) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	for _, s := range scalars {
		buf.Write(hexInt(t, s).FillBytes(make([]byte, scalarSize)))
	}
	return buf
}
