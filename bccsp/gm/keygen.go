/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"io"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/pkg/errors"
)

type sm9SignMasterKeyGenerator struct {
	rand io.Reader
}

func (kg *sm9SignMasterKeyGenerator) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	privKey, err := sm9.GenerateSignMasterKey(kg.rand)
	if err != nil {
		return nil, errors.Wrap(err, "Failed generating SM9 sign master key")
	}

	return &sm9SignMasterPrivateKey{privKey}, nil
}

type sm9EncryptMasterKeyGenerator struct {
	rand io.Reader
}

func (kg *sm9EncryptMasterKeyGenerator) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	privKey, err := sm9.GenerateEncryptMasterKey(kg.rand)
	if err != nil {
		return nil, errors.Wrap(err, "Failed generating SM9 encrypt master key")
	}

	return &sm9EncryptMasterPrivateKey{privKey}, nil
}

type symmetricKeyGenerator struct {
	rand   io.Reader
	length int
	newKey func(raw []byte) bccsp.Key
}

func (kg *symmetricKeyGenerator) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	lowLevelKey, err := getRandomBytes(kg.rand, kg.length)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed generating %s %d key", opts.Algorithm(), kg.length)
	}

	return kg.newKey(lowLevelKey), nil
}

func getRandomBytes(rand io.Reader, len int) ([]byte, error) {
	if len < 0 {
		return nil, errors.New("Len must be larger than 0")
	}

	buffer := make([]byte, len)
	if _, err := io.ReadFull(rand, buffer); err != nil {
		return nil, err
	}

	return buffer, nil
}
