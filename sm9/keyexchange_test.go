/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm9

import (
	"crypto/rand"
	"testing"

	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GM/T 0044-2016 part 5, annex B.
const (
	kxMasterSecret = "02E65B0762D042F51F0D23542B13ED8CFA2E9A0E7206361E013A283905E31F"
	kxMasterPublic = "04" +
		"9174542668E8F14AB273C0945C3690C66E5DD09678B86F734C4350567ED06283" +
		"54E598C6BF749A3DACC9FFFEDD9DB6866C50457CFC7AA2A4AD65C3168FF74210"
	kxUserKeyA = "04" +
		"0FE8EAB395199B56BF1D75BD2CD610B6424F08D1092922C5882B52DCD6CA832A" +
		"7DA57BC50241F9E5BFDDC075DD9D32C7777100D736916CFC165D8D36E0634CD7" +
		"83A457DAF52CAD464C903B26062CAF937BB40E37DADED9EDA401050E49C8AD0C" +
		"6970876B9AAD1B7A50BB4863A11E574AF1FE3C5975161D73DE4C3AF621FB1EFB"
	kxUserKeyB = "04" +
		"74CCC3AC9C383C60AF083972B96D05C75F12C8907D128A17ADAFBAB8C5A4ACF7" +
		"01092FF4DE89362670C21711B6DBE52DCD5F8E40C6654B3DECE573C2AB3D29B2" +
		"44B0294AA04290E1524FF3E3DA8CFD432BB64DE3A8040B5B88D1B5FC86A4EBC1" +
		"8CFC48FB4FF37F1E27727464F3C34E2153861AD08E972D1625FC1A7BD18D5539"
	kxNonceA = "5879DD1D51E175946F23B1B41E93BA31C584AE59A426EC1046A4D03B06C8"
	kxNonceB = "018B98C44BEF9F8537FB7D071B2C928B3BC65BD3D69E1EEE213564905634FE"
	kxKey    = "C5C13A8F59A97CDEAE64F16A2272A9E7"
)

func exchangeVectorKeys(t *testing.T) (*EncryptMasterPrivateKey, *EncryptPrivateKey, *EncryptPrivateKey) {
	master, err := NewEncryptMasterKey(hexInt(t, kxMasterSecret))
	require.NoError(t, err)
	skA, err := master.GenerateUserKey([]byte("Alice"), HidExchange)
	require.NoError(t, err)
	skB, err := master.GenerateUserKey([]byte("Bob"), HidExchange)
	require.NoError(t, err)
	return master, skA, skB
}

func TestKeyExchangeVector(t *testing.T) {
	t.Parallel()

	master, skA, skB := exchangeVectorKeys(t)
	assert.Equal(t, hexBytes(t, kxMasterPublic), master.Public.Ppub.Marshal())
	assert.Equal(t, hexBytes(t, kxUserKeyA), skA.D.Marshal())
	assert.Equal(t, hexBytes(t, kxUserKeyB), skB.D.Marshal())

	alice, err := NewKeyExchange(skA, []byte("Alice"), []byte("Bob"), 16, true)
	require.NoError(t, err)
	bob, err := NewKeyExchange(skB, []byte("Bob"), []byte("Alice"), 16, true)
	require.NoError(t, err)

	ra, err := alice.InitKeyExchange(fixedScalars(t, kxNonceA), HidExchange)
	require.NoError(t, err)

	rb, sb, err := bob.RespondKeyExchange(fixedScalars(t, kxNonceB), HidExchange, ra)
	require.NoError(t, err)
	require.Len(t, sb, 32)

	keyA, sa, err := alice.ConfirmResponder(rb, sb)
	require.NoError(t, err)
	assert.Equal(t, hexBytes(t, kxKey), keyA)

	keyB, err := bob.ConfirmInitiator(sa)
	require.NoError(t, err)
	assert.Equal(t, hexBytes(t, kxKey), keyB)
}

func TestKeyExchangeBeginEnd(t *testing.T) {
	t.Parallel()

	master, skA, skB := exchangeVectorKeys(t)

	rA, RA, err := BeginKeyExchange(fixedScalars(t, kxNonceA), master.Public, []byte("Bob"), HidExchange)
	require.NoError(t, err)
	rB, RB, err := BeginKeyExchange(fixedScalars(t, kxNonceB), master.Public, []byte("Alice"), HidExchange)
	require.NoError(t, err)

	keyA, err := EndKeyExchange(Initiator, skA, []byte("Alice"), []byte("Bob"), rA, RA, RB, 16)
	require.NoError(t, err)
	keyB, err := EndKeyExchange(Responder, skB, []byte("Bob"), []byte("Alice"), rB, RB, RA, 16)
	require.NoError(t, err)
	assert.Equal(t, hexBytes(t, kxKey), keyA)
	assert.Equal(t, keyA, keyB)

	// Both parties claiming the initiator role disagree.
	wrong, err := EndKeyExchange(Initiator, skB, []byte("Bob"), []byte("Alice"), rB, RB, RA, 16)
	require.NoError(t, err)
	assert.NotEqual(t, keyA, wrong)

	_, err = EndKeyExchange(Initiator, skA, []byte("Alice"), []byte("Bob"), rA, RA, new(bn256.G1), 16)
	assert.Equal(t, ErrDecoding, err)
}

func TestKeyExchangeWithoutConfirmation(t *testing.T) {
	t.Parallel()

	_, skA, skB := exchangeVectorKeys(t)

	alice, err := NewKeyExchange(skA, []byte("Alice"), []byte("Bob"), 48, false)
	require.NoError(t, err)
	bob, err := NewKeyExchange(skB, []byte("Bob"), []byte("Alice"), 48, false)
	require.NoError(t, err)

	ra, err := alice.InitKeyExchange(rand.Reader, HidExchange)
	require.NoError(t, err)
	rb, sb, err := bob.RespondKeyExchange(rand.Reader, HidExchange, ra)
	require.NoError(t, err)
	assert.Nil(t, sb)

	keyA, sa, err := alice.ConfirmResponder(rb, nil)
	require.NoError(t, err)
	assert.Nil(t, sa)
	keyB, err := bob.ConfirmInitiator(nil)
	require.NoError(t, err)
	assert.Len(t, keyA, 48)
	assert.Equal(t, keyA, keyB)
}

func TestKeyExchangeConfirmationMismatch(t *testing.T) {
	t.Parallel()

	_, skA, skB := exchangeVectorKeys(t)

	alice, err := NewKeyExchange(skA, []byte("Alice"), []byte("Bob"), 16, true)
	require.NoError(t, err)
	bob, err := NewKeyExchange(skB, []byte("Bob"), []byte("Alice"), 16, true)
	require.NoError(t, err)

	ra, err := alice.InitKeyExchange(rand.Reader, HidExchange)
	require.NoError(t, err)
	rb, sb, err := bob.RespondKeyExchange(rand.Reader, HidExchange, ra)
	require.NoError(t, err)

	badSB := append([]byte(nil), sb...)
	badSB[0] ^= 0xff
	_, _, err = alice.ConfirmResponder(rb, badSB)
	assert.Equal(t, ErrKeyExchangeConfirm, err)

	_, sa, err := alice.ConfirmResponder(rb, sb)
	require.NoError(t, err)
	sa[5] ^= 0x01
	_, err = bob.ConfirmInitiator(sa)
	assert.Equal(t, ErrKeyExchangeConfirm, err)
}

func TestKeyExchangeMisuse(t *testing.T) {
	t.Parallel()

	_, skA, _ := exchangeVectorKeys(t)

	_, err := NewKeyExchange(nil, []byte("Alice"), []byte("Bob"), 16, true)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = NewKeyExchange(skA, []byte("Alice"), nil, 16, true)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = NewKeyExchange(skA, []byte("Alice"), []byte("Bob"), 0, true)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))

	ke, err := NewKeyExchange(skA, []byte("Alice"), []byte("Bob"), 16, true)
	require.NoError(t, err)
	_, _, err = ke.ConfirmResponder(bn256.Gen1(), nil)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = ke.ConfirmInitiator(nil)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, _, err = ke.RespondKeyExchange(rand.Reader, HidExchange, new(bn256.G1))
	assert.Equal(t, ErrDecoding, err)
}

func TestEndKeyExchangeInvalidInputs(t *testing.T) {
	t.Parallel()

	master, skA, _ := exchangeVectorKeys(t)
	rA, RA, err := BeginKeyExchange(fixedScalars(t, kxNonceA), master.Public, []byte("Bob"), HidExchange)
	require.NoError(t, err)
	RB := bn256.Gen1()

	_, err = EndKeyExchange(Initiator, nil, []byte("Alice"), []byte("Bob"), rA, RA, RB, 16)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = EndKeyExchange(Initiator, &EncryptPrivateKey{D: skA.D}, []byte("Alice"), []byte("Bob"), rA, RA, RB, 16)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = EndKeyExchange(Initiator, skA, []byte("Alice"), []byte("Bob"), nil, RA, RB, 16)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = EndKeyExchange(Initiator, skA, []byte("Alice"), []byte("Bob"), rA, RA, RB, 0)
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
}
