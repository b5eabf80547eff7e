/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

import "crypto"

// SM9SignMasterKeyGenOpts contains options for SM9 signature master key generation.
type SM9SignMasterKeyGenOpts struct {
	Temporary bool
}

// Algorithm returns the key generation algorithm identifier (to be used).
func (opts *SM9SignMasterKeyGenOpts) Algorithm() string {
	return SM9SignMaster
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *SM9SignMasterKeyGenOpts) Ephemeral() bool {
	return opts.Temporary
}

// SM9EncryptMasterKeyGenOpts contains options for SM9 encryption master key generation.
type SM9EncryptMasterKeyGenOpts struct {
	Temporary bool
}

// Algorithm returns the key generation algorithm identifier (to be used).
func (opts *SM9EncryptMasterKeyGenOpts) Algorithm() string {
	return SM9EncryptMaster
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *SM9EncryptMasterKeyGenOpts) Ephemeral() bool {
	return opts.Temporary
}

// SM9UserKeyDerivOpts derives the private key of user ID from an SM9 master
// private key. A zero Hid selects the default for the master key type.
type SM9UserKeyDerivOpts struct {
	Temporary bool
	ID        []byte
	Hid       byte
}

// Algorithm returns the key derivation algorithm identifier (to be used).
func (opts *SM9UserKeyDerivOpts) Algorithm() string {
	return SM9UserKey
}

// Ephemeral returns true if the key to derived has to be ephemeral,
// false otherwise.
func (opts *SM9UserKeyDerivOpts) Ephemeral() bool {
	return opts.Temporary
}

// SM9SignMasterPublicKeyImportOpts imports an SM9 signature master public key
// from its DER encoding or from an *sm9.SignMasterPublicKey.
type SM9SignMasterPublicKeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *SM9SignMasterPublicKeyImportOpts) Algorithm() string {
	return SM9SignMaster
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *SM9SignMasterPublicKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// SM9EncryptMasterPublicKeyImportOpts imports an SM9 encryption master public
// key from its DER encoding or from an *sm9.EncryptMasterPublicKey.
type SM9EncryptMasterPublicKeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *SM9EncryptMasterPublicKeyImportOpts) Algorithm() string {
	return SM9EncryptMaster
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *SM9EncryptMasterPublicKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// SM9SignMasterPrivateKeyImportOpts imports an SM9 signature master private
// key from its DER encoding or from a *big.Int.
type SM9SignMasterPrivateKeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *SM9SignMasterPrivateKeyImportOpts) Algorithm() string {
	return SM9SignMaster
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *SM9SignMasterPrivateKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// SM9EncryptMasterPrivateKeyImportOpts imports an SM9 encryption master
// private key from its DER encoding or from a *big.Int.
type SM9EncryptMasterPrivateKeyImportOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *SM9EncryptMasterPrivateKeyImportOpts) Algorithm() string {
	return SM9EncryptMaster
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *SM9EncryptMasterPrivateKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// SM9SignerOpts names the signer when verifying against a master public key.
// Keys that already carry an identity ignore it.
type SM9SignerOpts struct {
	UID []byte
	Hid byte
}

// HashFunc returns zero: SM9 hashes the message internally with SM3.
func (opts *SM9SignerOpts) HashFunc() crypto.Hash {
	return 0
}

// SM9EncMode selects how the SM9 key stream protects the message.
type SM9EncMode int

const (
	// SM9EncModeXOR XORs the message with the KDF output.
	SM9EncModeXOR SM9EncMode = iota
	// SM9EncModeSM4ECB encrypts the message with SM4-ECB and PKCS#7 padding.
	SM9EncModeSM4ECB
)

// SM9EncrypterOpts names the recipient when encrypting to a master public
// key and selects the encryption mode. It also serves as DecrypterOpts,
// where only Mode is read.
type SM9EncrypterOpts struct {
	UID  []byte
	Hid  byte
	Mode SM9EncMode
}

// SM9KeyEncapsulationOpts drives Encapsulate and Decapsulate.
type SM9KeyEncapsulationOpts struct {
	UID    []byte
	Hid    byte
	KeyLen int
}

// SM9KeyExchangeOpts drives an SM9 key exchange started from a user key.
type SM9KeyExchangeOpts struct {
	PeerUID      []byte
	KeyLen       int
	Confirmation bool
}
