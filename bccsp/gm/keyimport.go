/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"math/big"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/pkg/errors"
)

func clone(src []byte) []byte {
	clone := make([]byte, len(src))
	copy(clone, src)
	return clone
}

type symmetricImportKeyOptsKeyImporter struct {
	length int
	newKey func(raw []byte) bccsp.Key
}

func (ki *symmetricImportKeyOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	symRaw, ok := raw.([]byte)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected byte array.")
	}

	if symRaw == nil {
		return nil, errors.New("Invalid raw material. It must not be nil.")
	}

	if len(symRaw) != ki.length {
		return nil, errors.Errorf("Invalid Key Length [%d]. Must be %d bytes", len(symRaw), ki.length)
	}

	return ki.newKey(clone(symRaw)), nil
}

type sm9SignMasterPublicKeyImportOptsKeyImporter struct{}

func (*sm9SignMasterPublicKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	switch r := raw.(type) {
	case *sm9.SignMasterPublicKey:
		if r.Ppub == nil {
			return nil, errors.New("Invalid raw material. Public point must not be nil.")
		}
		return &sm9SignMasterPublicKey{r}, nil
	case []byte:
		if len(r) == 0 {
			return nil, errors.New("Invalid raw. It must not be nil.")
		}
		pub, err := sm9.UnmarshalSignMasterPublicKeyASN1(r)
		if err != nil {
			return nil, errors.Wrap(err, "Failed converting DER to SM9 sign master public key")
		}
		return &sm9SignMasterPublicKey{pub}, nil
	default:
		return nil, errors.New("Invalid raw material. Expected *sm9.SignMasterPublicKey or DER bytes.")
	}
}

type sm9EncryptMasterPublicKeyImportOptsKeyImporter struct{}

func (*sm9EncryptMasterPublicKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	switch r := raw.(type) {
	case *sm9.EncryptMasterPublicKey:
		if r.Ppub == nil {
			return nil, errors.New("Invalid raw material. Public point must not be nil.")
		}
		return &sm9EncryptMasterPublicKey{r}, nil
	case []byte:
		if len(r) == 0 {
			return nil, errors.New("Invalid raw. It must not be nil.")
		}
		pub, err := sm9.UnmarshalEncryptMasterPublicKeyASN1(r)
		if err != nil {
			return nil, errors.Wrap(err, "Failed converting DER to SM9 encrypt master public key")
		}
		return &sm9EncryptMasterPublicKey{pub}, nil
	default:
		return nil, errors.New("Invalid raw material. Expected *sm9.EncryptMasterPublicKey or DER bytes.")
	}
}

type sm9SignMasterPrivateKeyImportOptsKeyImporter struct{}

func (*sm9SignMasterPrivateKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	var (
		privKey *sm9.SignMasterPrivateKey
		err     error
	)
	switch r := raw.(type) {
	case *big.Int:
		privKey, err = sm9.NewSignMasterKey(r)
	case []byte:
		privKey, err = sm9.UnmarshalSignMasterPrivateKeyASN1(r)
	default:
		return nil, errors.New("Invalid raw material. Expected *big.Int or DER bytes.")
	}
	if err != nil {
		return nil, errors.Wrap(err, "Failed importing SM9 sign master private key")
	}
	return &sm9SignMasterPrivateKey{privKey}, nil
}

type sm9EncryptMasterPrivateKeyImportOptsKeyImporter struct{}

func (*sm9EncryptMasterPrivateKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	var (
		privKey *sm9.EncryptMasterPrivateKey
		err     error
	)
	switch r := raw.(type) {
	case *big.Int:
		privKey, err = sm9.NewEncryptMasterKey(r)
	case []byte:
		privKey, err = sm9.UnmarshalEncryptMasterPrivateKeyASN1(r)
	default:
		return nil, errors.New("Invalid raw material. Expected *big.Int or DER bytes.")
	}
	if err != nil {
		return nil, errors.Wrap(err, "Failed importing SM9 encrypt master private key")
	}
	return &sm9EncryptMasterPrivateKey{privKey}, nil
}
