/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetHashOpt(t *testing.T) {
	for _, ho := range []string{SM3, SHA256, SHA384, SHA3_256, SHA3_384} {
		opt, err := GetHashOpt(ho)
		require.NoError(t, err)
		require.Equal(t, opt.Algorithm(), ho)
	}
	_, err := GetHashOpt("foo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "hash function not recognized")
}
