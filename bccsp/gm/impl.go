/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"
	"reflect"
	"time"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/gmsuite/gmsuite/common/metrics"
	"github.com/gmsuite/gmsuite/common/metrics/disabled"
	"github.com/gmsuite/gmsuite/internal/gmcipher"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm3"
	"golang.org/x/crypto/sha3"
)

var logger = flogging.MustGetLogger("bccsp_gm")

// CSP provides the Chinese national cryptographic algorithms (SM3, SM4,
// SM9 and ZUC) behind the bccsp.BCCSP interface.
type CSP struct {
	ks      bccsp.KeyStore
	rand    io.Reader
	metrics *Metrics

	KeyGenerators map[reflect.Type]KeyGenerator
	KeyDerivers   map[reflect.Type]KeyDeriver
	KeyImporters  map[reflect.Type]KeyImporter
	Encryptors    map[reflect.Type]Encryptor
	Decryptors    map[reflect.Type]Decryptor
	Signers       map[reflect.Type]Signer
	Verifiers     map[reflect.Type]Verifier
	Encapsulators map[reflect.Type]KeyEncapsulator
	Decapsulators map[reflect.Type]KeyDecapsulator
	Hashers       map[reflect.Type]Hasher
}

// New returns a GM provider backed by keyStore. A nil metricsProvider
// disables metrics.
func New(keyStore bccsp.KeyStore, metricsProvider metrics.Provider) (*CSP, error) {
	return newCSP(keyStore, metricsProvider, rand.Reader)
}

func newCSP(keyStore bccsp.KeyStore, metricsProvider metrics.Provider, prng io.Reader) (*CSP, error) {
	// Check KeyStore
	if keyStore == nil {
		return nil, errors.Errorf("Invalid bccsp.KeyStore instance. It must be different from nil.")
	}
	if metricsProvider == nil {
		metricsProvider = &disabled.Provider{}
	}

	newSM4Key := func(raw []byte) bccsp.Key { return &sm4PrivateKey{privKey: raw, exportable: false} }
	newZUCKey := func(raw []byte) bccsp.Key { return &zucPrivateKey{privKey: raw, exportable: false} }

	csp := &CSP{
		ks:      keyStore,
		rand:    prng,
		metrics: NewMetrics(metricsProvider),

		KeyGenerators: map[reflect.Type]KeyGenerator{
			reflect.TypeOf(&bccsp.SM9SignMasterKeyGenOpts{}):    &sm9SignMasterKeyGenerator{rand: prng},
			reflect.TypeOf(&bccsp.SM9EncryptMasterKeyGenOpts{}): &sm9EncryptMasterKeyGenerator{rand: prng},
			reflect.TypeOf(&bccsp.SM4KeyGenOpts{}):              &symmetricKeyGenerator{rand: prng, length: gmcipher.BlockSize, newKey: newSM4Key},
			reflect.TypeOf(&bccsp.ZUCKeyGenOpts{}):              &symmetricKeyGenerator{rand: prng, length: ZUCKeySize, newKey: newZUCKey},
		},
		KeyDerivers: map[reflect.Type]KeyDeriver{
			reflect.TypeOf(&sm9SignMasterPrivateKey{}):    &sm9SignMasterKeyDeriver{},
			reflect.TypeOf(&sm9EncryptMasterPrivateKey{}): &sm9EncryptMasterKeyDeriver{},
		},
		KeyImporters: map[reflect.Type]KeyImporter{
			reflect.TypeOf(&bccsp.SM9SignMasterPublicKeyImportOpts{}):     &sm9SignMasterPublicKeyImportOptsKeyImporter{},
			reflect.TypeOf(&bccsp.SM9EncryptMasterPublicKeyImportOpts{}):  &sm9EncryptMasterPublicKeyImportOptsKeyImporter{},
			reflect.TypeOf(&bccsp.SM9SignMasterPrivateKeyImportOpts{}):    &sm9SignMasterPrivateKeyImportOptsKeyImporter{},
			reflect.TypeOf(&bccsp.SM9EncryptMasterPrivateKeyImportOpts{}): &sm9EncryptMasterPrivateKeyImportOptsKeyImporter{},
			reflect.TypeOf(&bccsp.SM4ImportKeyOpts{}):                     &symmetricImportKeyOptsKeyImporter{length: gmcipher.BlockSize, newKey: newSM4Key},
			reflect.TypeOf(&bccsp.ZUCImportKeyOpts{}):                     &symmetricImportKeyOptsKeyImporter{length: ZUCKeySize, newKey: newZUCKey},
		},
		Encryptors: map[reflect.Type]Encryptor{
			reflect.TypeOf(&sm9EncryptIdentityKey{}):     &sm9Encryptor{rand: prng},
			reflect.TypeOf(&sm9EncryptMasterPublicKey{}): &sm9Encryptor{rand: prng},
			reflect.TypeOf(&sm4PrivateKey{}):             &sm4Encryptor{prng: prng},
			reflect.TypeOf(&zucPrivateKey{}):             &zucEncryptor{},
		},
		Decryptors: map[reflect.Type]Decryptor{
			reflect.TypeOf(&sm9EncryptPrivateKey{}): &sm9Decryptor{},
			reflect.TypeOf(&sm4PrivateKey{}):        &sm4Decryptor{},
			reflect.TypeOf(&zucPrivateKey{}):        &zucDecryptor{},
		},
		Signers: map[reflect.Type]Signer{
			reflect.TypeOf(&sm9SignPrivateKey{}): &sm9Signer{rand: prng},
		},
		Verifiers: map[reflect.Type]Verifier{
			reflect.TypeOf(&sm9SignPrivateKey{}):      &sm9SignPrivateKeyVerifier{},
			reflect.TypeOf(&sm9SignIdentityKey{}):     &sm9SignIdentityKeyVerifier{},
			reflect.TypeOf(&sm9SignMasterPublicKey{}): &sm9SignMasterPublicKeyVerifier{},
		},
		Encapsulators: map[reflect.Type]KeyEncapsulator{
			reflect.TypeOf(&sm9EncryptIdentityKey{}):     &sm9IdentityKeyEncapsulator{rand: prng},
			reflect.TypeOf(&sm9EncryptMasterPublicKey{}): &sm9MasterPublicKeyEncapsulator{rand: prng},
		},
		Decapsulators: map[reflect.Type]KeyDecapsulator{
			reflect.TypeOf(&sm9EncryptPrivateKey{}): &sm9KeyDecapsulator{},
		},
		Hashers: map[reflect.Type]Hasher{
			reflect.TypeOf(&bccsp.SM3Opts{}):      &hasher{hash: sm3.New},
			reflect.TypeOf(&bccsp.SHA256Opts{}):   &hasher{hash: sha256.New},
			reflect.TypeOf(&bccsp.SHA384Opts{}):   &hasher{hash: sha512.New384},
			reflect.TypeOf(&bccsp.SHA3_256Opts{}): &hasher{hash: sha3.New256},
			reflect.TypeOf(&bccsp.SHA3_384Opts{}): &hasher{hash: sha3.New384},
		},
	}

	return csp, nil
}

func keyAlgorithm(k bccsp.Key) string {
	if a, ok := k.(interface{ algorithm() string }); ok {
		return a.algorithm()
	}
	return "unknown"
}

// KeyGen generates a key using opts.
func (csp *CSP) KeyGen(opts bccsp.KeyGenOpts) (k bccsp.Key, err error) {
	// Validate arguments
	if opts == nil {
		return nil, errors.New("Invalid Opts parameter. It must not be nil.")
	}
	defer func(start time.Time) { csp.metrics.observe("keygen", opts.Algorithm(), start, err) }(time.Now())

	keyGenerator, found := csp.KeyGenerators[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'KeyGenOpts' provided [%v]", opts)
	}

	k, err = keyGenerator.KeyGen(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed generating key with opts [%v]", opts)
	}

	// If the key is not Ephemeral, store it.
	if !opts.Ephemeral() {
		// Store the key
		err = csp.ks.StoreKey(k)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed storing key [%s]", opts.Algorithm())
		}
	}

	logger.WithSKI(k.SKI()).Debugf("generated %s key", opts.Algorithm())
	return k, nil
}

// KeyDeriv derives a key from k using opts.
// The opts argument should be appropriate for the primitive used.
func (csp *CSP) KeyDeriv(k bccsp.Key, opts bccsp.KeyDerivOpts) (dk bccsp.Key, err error) {
	// Validate arguments
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}
	if opts == nil {
		return nil, errors.New("Invalid opts. It must not be nil.")
	}
	defer func(start time.Time) { csp.metrics.observe("keyderiv", keyAlgorithm(k), start, err) }(time.Now())

	keyDeriver, found := csp.KeyDerivers[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'Key' provided [%v]", k)
	}

	dk, err = keyDeriver.KeyDeriv(k, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed deriving key with opts [%v]", opts)
	}

	// If the key is not Ephemeral, store it.
	if !opts.Ephemeral() {
		// Store the key
		err = csp.ks.StoreKey(dk)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed storing key [%s]", opts.Algorithm())
		}
	}

	return dk, nil
}

// KeyImport imports a key from its raw representation using opts.
// The opts argument should be appropriate for the primitive used.
func (csp *CSP) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (k bccsp.Key, err error) {
	// Validate arguments
	if raw == nil {
		return nil, errors.New("Invalid raw. It must not be nil.")
	}
	if opts == nil {
		return nil, errors.New("Invalid opts. It must not be nil.")
	}
	defer func(start time.Time) { csp.metrics.observe("keyimport", opts.Algorithm(), start, err) }(time.Now())

	keyImporter, found := csp.KeyImporters[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'KeyImportOpts' provided [%v]", opts)
	}

	k, err = keyImporter.KeyImport(raw, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed importing key with opts [%v]", opts)
	}

	// If the key is not Ephemeral, store it.
	if !opts.Ephemeral() {
		// Store the key
		err = csp.ks.StoreKey(k)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed storing imported key with opts [%v]", opts)
		}
	}

	return
}

// GetKey returns the key this CSP associates to
// the Subject Key Identifier ski.
func (csp *CSP) GetKey(ski []byte) (k bccsp.Key, err error) {
	k, err = csp.ks.GetKey(ski)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed getting key for SKI [%v]", ski)
	}

	return
}

// Hash hashes messages msg using options opts.
func (csp *CSP) Hash(msg []byte, opts bccsp.HashOpts) (digest []byte, err error) {
	// Validate arguments
	if opts == nil {
		return nil, errors.New("Invalid opts. It must not be nil.")
	}

	hasher, found := csp.Hashers[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'HashOpt' provided [%v]", opts)
	}

	digest, err = hasher.Hash(msg, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed hashing with opts [%v]", opts)
	}

	return
}

// GetHash returns and instance of hash.Hash using options opts.
func (csp *CSP) GetHash(opts bccsp.HashOpts) (h hash.Hash, err error) {
	// Validate arguments
	if opts == nil {
		return nil, errors.New("Invalid opts. It must not be nil.")
	}

	hasher, found := csp.Hashers[reflect.TypeOf(opts)]
	if !found {
		return nil, errors.Errorf("Unsupported 'HashOpt' provided [%v]", opts)
	}

	h, err = hasher.GetHash(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed getting hash function with opts [%v]", opts)
	}

	return
}

// Sign signs digest using key k. SM9 keys sign the whole message.
func (csp *CSP) Sign(k bccsp.Key, digest []byte, opts bccsp.SignerOpts) (signature []byte, err error) {
	// Validate arguments
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}
	if len(digest) == 0 {
		return nil, errors.New("Invalid digest. Cannot be empty.")
	}
	defer func(start time.Time) { csp.metrics.observe("sign", keyAlgorithm(k), start, err) }(time.Now())

	signer, found := csp.Signers[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'SignKey' provided [%s]", k)
	}

	signature, err = signer.Sign(k, digest, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed signing with opts [%v]", opts)
	}

	return
}

// Verify verifies signature against key k and digest.
func (csp *CSP) Verify(k bccsp.Key, signature, digest []byte, opts bccsp.SignerOpts) (valid bool, err error) {
	// Validate arguments
	if k == nil {
		return false, errors.New("Invalid Key. It must not be nil.")
	}
	if len(signature) == 0 {
		return false, errors.New("Invalid signature. Cannot be empty.")
	}
	if len(digest) == 0 {
		return false, errors.New("Invalid digest. Cannot be empty.")
	}
	defer func(start time.Time) { csp.metrics.observe("verify", keyAlgorithm(k), start, err) }(time.Now())

	verifier, found := csp.Verifiers[reflect.TypeOf(k)]
	if !found {
		return false, errors.Errorf("Unsupported 'VerifyKey' provided [%v]", k)
	}

	valid, err = verifier.Verify(k, signature, digest, opts)
	if err != nil {
		return false, errors.Wrapf(err, "Failed verifing with opts [%v]", opts)
	}

	return
}

// Encrypt encrypts plaintext using key k.
func (csp *CSP) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) (ciphertext []byte, err error) {
	// Validate arguments
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}
	defer func(start time.Time) { csp.metrics.observe("encrypt", keyAlgorithm(k), start, err) }(time.Now())

	encryptor, found := csp.Encryptors[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'EncryptKey' provided [%v]", k)
	}

	return encryptor.Encrypt(k, plaintext, opts)
}

// Decrypt decrypts ciphertext using key k.
func (csp *CSP) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) (plaintext []byte, err error) {
	// Validate arguments
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}
	defer func(start time.Time) { csp.metrics.observe("decrypt", keyAlgorithm(k), start, err) }(time.Now())

	decryptor, found := csp.Decryptors[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'DecryptKey' provided [%v]", k)
	}

	plaintext, err = decryptor.Decrypt(k, ciphertext, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed decrypting with opts [%v]", opts)
	}

	return
}

// Encapsulate draws a fresh key of opts.KeyLen bytes for the recipient named
// by k and returns it with its encapsulation. k is either an encryption
// identity key or an encryption master public key, in which case opts names
// the recipient.
func (csp *CSP) Encapsulate(k bccsp.Key, opts *bccsp.SM9KeyEncapsulationOpts) (key, encapsulation []byte, err error) {
	if k == nil {
		return nil, nil, errors.New("Invalid Key. It must not be nil.")
	}
	if opts == nil {
		return nil, nil, errors.New("Invalid opts. It must not be nil.")
	}
	defer func(start time.Time) { csp.metrics.observe("encapsulate", keyAlgorithm(k), start, err) }(time.Now())

	encapsulator, found := csp.Encapsulators[reflect.TypeOf(k)]
	if !found {
		return nil, nil, errors.Errorf("Unsupported 'EncapsulateKey' provided [%v]", k)
	}

	key, encapsulation, err = encapsulator.Encapsulate(k, opts)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Failed encapsulating with opts [%v]", opts)
	}
	return key, encapsulation, nil
}

// Decapsulate recovers the key carried by encapsulation with the
// encryption user key k.
func (csp *CSP) Decapsulate(k bccsp.Key, encapsulation []byte, opts *bccsp.SM9KeyEncapsulationOpts) (key []byte, err error) {
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}
	if opts == nil {
		return nil, errors.New("Invalid opts. It must not be nil.")
	}
	defer func(start time.Time) { csp.metrics.observe("decapsulate", keyAlgorithm(k), start, err) }(time.Now())

	decapsulator, found := csp.Decapsulators[reflect.TypeOf(k)]
	if !found {
		return nil, errors.Errorf("Unsupported 'DecapsulateKey' provided [%v]", k)
	}

	key, err = decapsulator.Decapsulate(k, encapsulation, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed decapsulating with opts [%v]", opts)
	}
	return key, nil
}

// KeyExchange starts an SM9 key exchange for the owner of the encryption
// user key k. The peer is assumed to hold a key with the same hid.
func (csp *CSP) KeyExchange(k bccsp.Key, opts *bccsp.SM9KeyExchangeOpts) (*KeyExchange, error) {
	if k == nil {
		return nil, errors.New("Invalid Key. It must not be nil.")
	}
	if opts == nil {
		return nil, errors.New("Invalid opts. It must not be nil.")
	}

	priv, ok := k.(*sm9EncryptPrivateKey)
	if !ok {
		return nil, errors.Errorf("Unsupported 'KeyExchangeKey' provided [%v]", k)
	}

	ke, err := sm9.NewKeyExchange(priv.privKey, priv.privKey.UID, opts.PeerUID, opts.KeyLen, opts.Confirmation)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed starting key exchange with opts [%v]", opts)
	}
	return &KeyExchange{
		ke:      ke,
		rand:    csp.rand,
		hid:     priv.privKey.Hid,
		metrics: csp.metrics,
	}, nil
}
