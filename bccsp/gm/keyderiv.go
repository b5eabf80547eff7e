/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/pkg/errors"
)

func userKeyDerivOpts(opts bccsp.KeyDerivOpts) (*bccsp.SM9UserKeyDerivOpts, error) {
	o, ok := opts.(*bccsp.SM9UserKeyDerivOpts)
	if !ok {
		return nil, errors.Errorf("Unsupported 'KeyDerivOpts' provided [%v]", opts)
	}
	if len(o.ID) == 0 {
		return nil, errors.New("Invalid opts. ID must not be empty.")
	}
	return o, nil
}

type sm9SignMasterKeyDeriver struct{}

func (kd *sm9SignMasterKeyDeriver) KeyDeriv(k bccsp.Key, opts bccsp.KeyDerivOpts) (bccsp.Key, error) {
	o, err := userKeyDerivOpts(opts)
	if err != nil {
		return nil, err
	}
	hid := o.Hid
	if hid == 0 {
		hid = sm9.HidSign
	}

	privKey, err := k.(*sm9SignMasterPrivateKey).privKey.GenerateUserKey(o.ID, hid)
	if err != nil {
		return nil, err
	}
	return &sm9SignPrivateKey{privKey}, nil
}

type sm9EncryptMasterKeyDeriver struct{}

func (kd *sm9EncryptMasterKeyDeriver) KeyDeriv(k bccsp.Key, opts bccsp.KeyDerivOpts) (bccsp.Key, error) {
	o, err := userKeyDerivOpts(opts)
	if err != nil {
		return nil, err
	}
	hid := o.Hid
	if hid == 0 {
		hid = sm9.HidEncrypt
	}

	privKey, err := k.(*sm9EncryptMasterPrivateKey).privKey.GenerateUserKey(o.ID, hid)
	if err != nil {
		return nil, err
	}
	return &sm9EncryptPrivateKey{privKey}, nil
}
