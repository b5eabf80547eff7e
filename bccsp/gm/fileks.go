/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/pkg/errors"
)

// maxKeyFileSize bounds the files considered when scanning the folder. SM9
// master public keys are the largest entries at a few hundred bytes.
const maxKeyFileSize = 1 << 16

// Key files are named <hex SKI>_<suffix>. An SM9 master key pair and its
// public half share one SKI, so the suffix tells them apart.
const (
	suffixPrivate   = "sk"
	suffixPublic    = "pk"
	suffixSymmetric = "key"
)

// suffixRank orders the candidates for one SKI; the private half wins.
var suffixRank = map[string]int{
	suffixPrivate:   3,
	suffixSymmetric: 2,
	suffixPublic:    1,
}

// NewFileBasedKeyStore opens a folder of PEM encoded SM9, SM4 and ZUC keys,
// creating it when missing. A read only store refuses StoreKey.
func NewFileBasedKeyStore(path string, readOnly bool) (bccsp.KeyStore, error) {
	ks := &fileBasedKeyStore{}
	return ks, ks.Init(path, readOnly)
}

type fileBasedKeyStore struct {
	path     string
	readOnly bool
	isOpen   bool

	m sync.Mutex
}

// Init binds the store to path. It may only be called once.
func (ks *fileBasedKeyStore) Init(path string, readOnly bool) error {
	if len(path) == 0 {
		return errors.New("an invalid KeyStore path provided. Path cannot be an empty string")
	}

	ks.m.Lock()
	defer ks.m.Unlock()

	if ks.isOpen {
		return errors.New("keystore is already initialized")
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, "failed creating keystore folder [%s]", path)
	}

	ks.path = path
	ks.readOnly = readOnly
	ks.isOpen = true
	logger.Debugf("KeyStore opened at [%s]", path)
	return nil
}

func (ks *fileBasedKeyStore) ReadOnly() bool {
	return ks.readOnly
}

// GetKey loads the key stored under ski. When no file carries the SKI in its
// name, every PEM file in the folder is decoded and matched on its SKI.
func (ks *fileBasedKeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	if len(ski) == 0 {
		return nil, errors.New("invalid SKI. Cannot be of zero length")
	}

	alias := hex.EncodeToString(ski)
	suffix := ks.bestSuffix(alias)
	if suffix == "" {
		return ks.scan(ski)
	}

	k, err := ks.loadKey(ks.fileFor(alias, suffix))
	if err != nil {
		return nil, errors.Wrapf(err, "failed loading key [%s]", alias)
	}
	if !bytes.Equal(k.SKI(), ski) {
		return nil, errors.Errorf("key file [%s_%s] holds key with SKI [%x]", alias, suffix, k.SKI())
	}
	return k, nil
}

// StoreKey writes k under its SKI. Storing the public half of an SM9 master
// key next to its private half is allowed; both files coexist.
func (ks *fileBasedKeyStore) StoreKey(k bccsp.Key) error {
	if ks.readOnly {
		return errors.New("read only KeyStore")
	}
	if k == nil {
		return errors.New("invalid key. It must be different from nil")
	}

	raw, suffix, err := keyToPEM(k)
	if err != nil {
		return err
	}

	alias := hex.EncodeToString(k.SKI())
	if err := os.WriteFile(ks.fileFor(alias, suffix), raw, 0600); err != nil {
		logger.WithSKI(k.SKI()).Errorf("Failed storing key: [%s]", err)
		return errors.Wrapf(err, "failed storing key [%s]", alias)
	}

	logger.WithSKI(k.SKI()).Debugf("Stored key [%s_%s]", alias, suffix)
	return nil
}

func (ks *fileBasedKeyStore) bestSuffix(alias string) string {
	matches, _ := filepath.Glob(filepath.Join(ks.path, alias+"_*"))
	best := ""
	for _, m := range matches {
		s := strings.TrimPrefix(filepath.Base(m), alias+"_")
		if suffixRank[s] > suffixRank[best] {
			best = s
		}
	}
	return best
}

func (ks *fileBasedKeyStore) scan(ski []byte) (bccsp.Key, error) {
	entries, _ := os.ReadDir(ks.path)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if info, err := e.Info(); err != nil || info.Size() > maxKeyFileSize {
			continue
		}
		k, err := ks.loadKey(filepath.Join(ks.path, e.Name()))
		if err != nil {
			continue
		}
		if bytes.Equal(k.SKI(), ski) {
			return k, nil
		}
	}
	return nil, errors.Errorf("key with SKI %x not found in %s", ski, ks.path)
}

func (ks *fileBasedKeyStore) loadKey(path string) (bccsp.Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	k, err := pemToKey(raw)
	if err != nil {
		logger.Debugf("Failed parsing key file [%s]: [%s]", path, err)
		return nil, err
	}
	return k, nil
}

func (ks *fileBasedKeyStore) fileFor(alias, suffix string) string {
	return filepath.Join(ks.path, alias+"_"+suffix)
}
