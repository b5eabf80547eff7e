/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

const (
	// SM9 identity-based cryptography (GM/T 0044)
	SM9 = "SM9"

	// SM9SignMaster is the SM9 signature master key algorithm
	SM9SignMaster = "SM9_SIGN_MASTER"

	// SM9EncryptMaster is the SM9 encryption master key algorithm, also used
	// for key encapsulation and key exchange
	SM9EncryptMaster = "SM9_ENCRYPT_MASTER"

	// SM9UserKey identifies the derivation of an SM9 user key from a master key
	SM9UserKey = "SM9_USER"

	// SM4 block cipher
	SM4 = "SM4"

	// ZUC stream cipher (ZUC-128)
	ZUC = "ZUC"

	// SM3 hash function
	SM3 = "SM3"

	// SHA256
	SHA256 = "SHA256"

	// SHA384
	SHA384 = "SHA384"

	// SHA3_256
	SHA3_256 = "SHA3_256"

	// SHA3_384
	SHA3_384 = "SHA3_384"
)
