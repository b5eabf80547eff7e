/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm9

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjfoc/gmsm/sm3"
)

func TestHashToRangeBounds(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"Alice", "Bob", "", "a longer identifier than the others"} {
		h := H1([]byte(id), HidSign)
		assert.Equal(t, 1, h.Sign())
		assert.Equal(t, -1, h.Cmp(bn256.Order))
	}
	assert.NotEqual(t, H1([]byte("Alice"), HidSign), H1([]byte("Alice"), HidEncrypt))
	assert.NotEqual(t, H1([]byte("Alice"), HidSign), H2([]byte("Alice"), []byte{HidSign}))
}

func TestKDFPrefixProperty(t *testing.T) {
	t.Parallel()

	z := []byte("shared secret")
	long := KDF(100, z)
	require.Len(t, long, 100)
	for _, n := range []int{1, 16, 31, 32, 33, 64, 99} {
		assert.Equal(t, long[:n], KDF(n, z))
	}
	assert.Equal(t, KDF(40, []byte("ab"), []byte("cd")), KDF(40, []byte("abcd")))
	assert.Empty(t, KDF(0, z))
}

func TestHashToRangeUsesFortyBytes(t *testing.T) {
	t.Parallel()

	block := func(ct byte) []byte {
		return sm3.Sm3Sum([]byte{hashPrefixH1, 'B', 'o', 'b', HidEncrypt, 0, 0, 0, ct})
	}
	ha := append(block(1), block(2)...)
	expected := new(big.Int).SetBytes(ha[:40])
	expected.Mod(expected, new(big.Int).Sub(bn256.Order, big.NewInt(1)))
	expected.Add(expected, big.NewInt(1))

	assert.Equal(t, expected, H1([]byte("Bob"), HidEncrypt))
}

func TestKDFBeyondOneBlock(t *testing.T) {
	t.Parallel()

	k := KDF(33, []byte("z"))
	require.Len(t, k, 33)
	assert.Equal(t, sm3.Sm3Sum([]byte{'z', 0, 0, 0, 1}), k[:32])
	assert.Equal(t, sm3.Sm3Sum([]byte{'z', 0, 0, 0, 2})[:1], k[32:])
}

func TestRandScalar(t *testing.T) {
	t.Parallel()

	// Zero and values ≥ N are rejected.
	reader := bytes.NewReader(append(append(make([]byte, 32), bytes.Repeat([]byte{0xff}, 32)...), append(make([]byte, 31), 7)...))
	k, err := randScalar(reader)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), k)

	_, err = randScalar(bytes.NewReader(make([]byte, 5)))
	assert.Error(t, err)
}

func TestMasterKeyRange(t *testing.T) {
	t.Parallel()

	for _, d := range []*big.Int{nil, big.NewInt(0), big.NewInt(-1), bn256.Order} {
		_, err := NewSignMasterKey(d)
		assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
		_, err = NewEncryptMasterKey(d)
		assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	}
}

func TestUserKeyDerivationZero(t *testing.T) {
	t.Parallel()

	// Choose ks = N - H1(ID‖hid) so that t1 vanishes.
	uid := []byte("Alice")
	ks := new(big.Int).Sub(bn256.Order, H1(uid, HidSign))
	master, err := NewSignMasterKey(ks)
	require.NoError(t, err)

	_, err = master.GenerateUserKey(uid, HidSign)
	assert.Equal(t, ErrKeyDerivation, errors.Cause(err))

	_, err = master.GenerateUserKey(nil, HidSign)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
}

func TestKGC(t *testing.T) {
	t.Parallel()

	kgc := NewKGC(rand.Reader)
	assert.Nil(t, kgc.SignMasterPublicKey())
	assert.Nil(t, kgc.EncryptMasterPublicKey())

	_, err := kgc.GenerateSignKey([]byte("Alice"), 0)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = kgc.GenerateEncryptKey([]byte("Bob"), 0)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))

	spub, err := kgc.GenerateSignMasterKey()
	require.NoError(t, err)
	epub, err := kgc.GenerateEncryptMasterKey()
	require.NoError(t, err)
	assert.Same(t, spub, kgc.SignMasterPublicKey())
	assert.Same(t, epub, kgc.EncryptMasterPublicKey())

	sk, err := kgc.GenerateSignKey([]byte("Alice"), 0)
	require.NoError(t, err)
	assert.Equal(t, HidSign, sk.Hid)
	assert.Equal(t, []byte("Alice"), sk.UID)
	assert.Same(t, spub, sk.Master)

	ek, err := kgc.GenerateEncryptKey([]byte("Bob"), HidExchange)
	require.NoError(t, err)
	assert.Equal(t, HidExchange, ek.Hid)
	assert.Same(t, epub, ek.Master)
}

func TestKGCImport(t *testing.T) {
	t.Parallel()

	kgc := NewKGC(rand.Reader)
	spub, err := kgc.ImportSignMasterKey(big.NewInt(12345))
	require.NoError(t, err)
	assert.True(t, spub.Ppub.Equal(new(bn256.G2).ScalarBaseMult(big.NewInt(12345))))

	epub, err := kgc.ImportEncryptMasterKey(big.NewInt(54321))
	require.NoError(t, err)
	assert.True(t, epub.Ppub.Equal(new(bn256.G1).ScalarBaseMult(big.NewInt(54321))))

	_, err = kgc.ImportSignMasterKey(big.NewInt(0))
	assert.Error(t, err)
}

// The user key satisfies e(ds, [H1]P2 + Ppub-s) = e(P1, Ppub-s).
func TestUserKeyPairingRelation(t *testing.T) {
	t.Parallel()

	master, err := GenerateSignMasterKey(rand.Reader)
	require.NoError(t, err)
	uid := []byte("carol@example.com")
	sk, err := master.GenerateUserKey(uid, HidSign)
	require.NoError(t, err)

	lhs := bn256.Pair(sk.D, master.Public.userPublicG2(uid, HidSign))
	rhs := bn256.Pair(bn256.Gen1(), master.Public.Ppub)
	assert.True(t, lhs.Equal(rhs))
}
