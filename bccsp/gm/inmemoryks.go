/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"encoding/hex"
	"sync"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/pkg/errors"
)

// NewInMemoryKeyStore instantiates an ephemeral in-memory keystore
func NewInMemoryKeyStore() bccsp.KeyStore {
	eks := &inmemoryKeyStore{}
	eks.keys = make(map[string]bccsp.Key)
	return eks
}

// NewDummyKeyStore returns a keystore that holds nothing and refuses writes.
// A provider built on it only serves Temporary keys and keys the caller
// keeps itself, such as SM9 identity keys rebuilt from a master public key.
func NewDummyKeyStore() bccsp.KeyStore {
	return &inmemoryKeyStore{dummy: true}
}

type inmemoryKeyStore struct {
	// keys maps the hex-encoded SKI to keys
	keys  map[string]bccsp.Key
	m     sync.RWMutex
	dummy bool
}

// ReadOnly is true only for the dummy keystore.
func (ks *inmemoryKeyStore) ReadOnly() bool {
	return ks.dummy
}

// GetKey returns the key for the provided SKI
func (ks *inmemoryKeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	if ks.dummy {
		return nil, errors.New("Key not found. This is a dummy KeyStore")
	}
	if len(ski) == 0 {
		return nil, errors.New("ski is nil or empty")
	}

	skiStr := hex.EncodeToString(ski)

	ks.m.RLock()
	defer ks.m.RUnlock()
	if key, found := ks.keys[skiStr]; found {
		return key, nil
	}
	return nil, errors.Errorf("no key found for ski %x", ski)
}

// StoreKey stores a key in the keystore
func (ks *inmemoryKeyStore) StoreKey(k bccsp.Key) error {
	if ks.dummy {
		return errors.New("Cannot store key. This is a dummy read-only KeyStore")
	}
	if k == nil {
		return errors.New("key is nil")
	}

	ski := hex.EncodeToString(k.SKI())

	ks.m.Lock()
	defer ks.m.Unlock()

	if _, found := ks.keys[ski]; found {
		return errors.Errorf("ski %x already exists in the keystore", k.SKI())
	}
	ks.keys[ski] = k

	return nil
}
