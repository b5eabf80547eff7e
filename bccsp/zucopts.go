/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

// ZUCKeyGenOpts contains options for ZUC-128 key generation.
type ZUCKeyGenOpts struct {
	Temporary bool
}

// Algorithm returns the key generation algorithm identifier (to be used).
func (opts *ZUCKeyGenOpts) Algorithm() string {
	return ZUC
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *ZUCKeyGenOpts) Ephemeral() bool {
	return opts.Temporary
}

// ZUCImportKeyOpts contains options for importing a 16-byte ZUC key.
type ZUCImportKeyOpts struct {
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *ZUCImportKeyOpts) Algorithm() string {
	return ZUC
}

// Ephemeral returns true if the key generated has to be ephemeral,
// false otherwise.
func (opts *ZUCImportKeyOpts) Ephemeral() bool {
	return opts.Temporary
}

// ZUCStreamOpts carries the 16-byte initialization vector for ZUC
// encryption. Decryption is the same keystream XOR and takes the same opts.
type ZUCStreamOpts struct {
	IV []byte
}
