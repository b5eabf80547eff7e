/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"encoding/hex"
	"encoding/pem"
	"fmt"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/pkg/errors"
)

const (
	pemSignMasterPrivateKey    = "SM9 SIGN MASTER PRIVATE KEY"
	pemEncryptMasterPrivateKey = "SM9 ENCRYPT MASTER PRIVATE KEY"
	pemSignMasterPublicKey     = "SM9 SIGN MASTER PUBLIC KEY"
	pemEncryptMasterPublicKey  = "SM9 ENCRYPT MASTER PUBLIC KEY"
	pemSignPrivateKey          = "SM9 SIGN PRIVATE KEY"
	pemEncryptPrivateKey       = "SM9 ENCRYPT PRIVATE KEY"
	pemSM4Key                  = "SM4 KEY"
	pemZUCKey                  = "ZUC KEY"
)

func userHeaders(uid []byte, hid byte) map[string]string {
	return map[string]string{
		"UID": hex.EncodeToString(uid),
		"HID": fmt.Sprintf("%02x", hid),
	}
}

// keyToPEM encodes k for the file keystore and reports the file suffix it
// belongs under.
func keyToPEM(k bccsp.Key) (raw []byte, suffix string, err error) {
	var (
		block = &pem.Block{}
		der   []byte
	)
	switch kk := k.(type) {
	case *sm9SignMasterPrivateKey:
		block.Type, suffix = pemSignMasterPrivateKey, suffixPrivate
		der, err = kk.privKey.MarshalASN1()
	case *sm9EncryptMasterPrivateKey:
		block.Type, suffix = pemEncryptMasterPrivateKey, suffixPrivate
		der, err = kk.privKey.MarshalASN1()
	case *sm9SignMasterPublicKey:
		block.Type, suffix = pemSignMasterPublicKey, suffixPublic
		der, err = kk.pubKey.MarshalASN1()
	case *sm9EncryptMasterPublicKey:
		block.Type, suffix = pemEncryptMasterPublicKey, suffixPublic
		der, err = kk.pubKey.MarshalASN1()
	case *sm9SignPrivateKey:
		block.Type, suffix = pemSignPrivateKey, suffixPrivate
		block.Headers = userHeaders(kk.privKey.UID, kk.privKey.Hid)
		der, err = kk.privKey.MarshalASN1()
	case *sm9EncryptPrivateKey:
		block.Type, suffix = pemEncryptPrivateKey, suffixPrivate
		block.Headers = userHeaders(kk.privKey.UID, kk.privKey.Hid)
		der, err = kk.privKey.MarshalASN1()
	case *sm4PrivateKey:
		block.Type, suffix = pemSM4Key, suffixSymmetric
		der = clone(kk.privKey)
	case *zucPrivateKey:
		block.Type, suffix = pemZUCKey, suffixSymmetric
		der = clone(kk.privKey)
	default:
		return nil, "", errors.Errorf("key type not reconigned [%s]", k)
	}
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed marshalling %s", block.Type)
	}
	block.Bytes = der
	return pem.EncodeToMemory(block), suffix, nil
}

// pemToKey reverses keyToPEM.
func pemToKey(raw []byte) (bccsp.Key, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("failed decoding PEM. Block must be different from nil")
	}

	switch block.Type {
	case pemSignMasterPrivateKey:
		k, err := sm9.UnmarshalSignMasterPrivateKeyASN1(block.Bytes)
		if err != nil {
			return nil, err
		}
		return &sm9SignMasterPrivateKey{k}, nil
	case pemEncryptMasterPrivateKey:
		k, err := sm9.UnmarshalEncryptMasterPrivateKeyASN1(block.Bytes)
		if err != nil {
			return nil, err
		}
		return &sm9EncryptMasterPrivateKey{k}, nil
	case pemSignMasterPublicKey:
		k, err := sm9.UnmarshalSignMasterPublicKeyASN1(block.Bytes)
		if err != nil {
			return nil, err
		}
		return &sm9SignMasterPublicKey{k}, nil
	case pemEncryptMasterPublicKey:
		k, err := sm9.UnmarshalEncryptMasterPublicKeyASN1(block.Bytes)
		if err != nil {
			return nil, err
		}
		return &sm9EncryptMasterPublicKey{k}, nil
	case pemSignPrivateKey:
		k, err := sm9.UnmarshalSignPrivateKeyASN1(block.Bytes)
		if err != nil {
			return nil, err
		}
		return &sm9SignPrivateKey{k}, nil
	case pemEncryptPrivateKey:
		k, err := sm9.UnmarshalEncryptPrivateKeyASN1(block.Bytes)
		if err != nil {
			return nil, err
		}
		return &sm9EncryptPrivateKey{k}, nil
	case pemSM4Key:
		if len(block.Bytes) != 16 {
			return nil, errors.Errorf("invalid SM4 key length [%d]", len(block.Bytes))
		}
		return &sm4PrivateKey{privKey: block.Bytes, exportable: false}, nil
	case pemZUCKey:
		if len(block.Bytes) != ZUCKeySize {
			return nil, errors.Errorf("invalid ZUC key length [%d]", len(block.Bytes))
		}
		return &zucPrivateKey{privKey: block.Bytes, exportable: false}, nil
	default:
		return nil, errors.Errorf("key type not recognized [%s]", block.Type)
	}
}
