// Package cryptography implements the cryptographic builtin family.
// The AES-CCM functions expect three named arguments, key, data and iv,
// each either a string or raw data.
package cryptography

import (
	"crypto/aes"
	"strconv"

	"github.com/pion/dtls/v3/pkg/crypto/ccm"

	"vulnscript/internal/builtin"
	"vulnscript/internal/interpreter"
	"vulnscript/internal/storage"
)

// cryptMode selects the operation a registered builtin is bound to.
type cryptMode int

const (
	modeEncrypt cryptMode = iota
	modeDecrypt
)

// tagLength is the CCM authentication tag size for this function family.
const tagLength = 16

// RegisterCryptoFunctions registers the AES-CCM builtins.
func RegisterCryptoFunctions(interp *interpreter.Interpreter) {
	register := func(name string, keyLen int, mode cryptMode) {
		interp.RegisterBuiltin(name, func(function string, sink storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
			return aesCCM(keyLen, mode, function, reg)
		})
	}
	register("aes128_ccm_encrypt", 16, modeEncrypt)
	register("aes128_ccm_decrypt", 16, modeDecrypt)
	register("aes192_ccm_encrypt", 24, modeEncrypt)
	register("aes192_ccm_decrypt", 24, modeDecrypt)
	register("aes256_ccm_encrypt", 32, modeEncrypt)
	register("aes256_ccm_decrypt", 32, modeDecrypt)
}

// aesCCM is the generic core shared by all six AES-CCM builtins. The iv
// length configures the CCM nonce size (RFC 3610 allows 7 to 13 octets;
// the length field takes the remaining 15 - len(iv)); the check below is
// the single place the supported range is decided.
func aesCCM(keyLen int, mode cryptMode, function string, reg *interpreter.Register) (interpreter.Value, error) {
	key, ferr := builtin.NamedData(reg, "key", function)
	if ferr != nil {
		return nil, ferr
	}
	data, ferr := builtin.NamedData(reg, "data", function)
	if ferr != nil {
		return nil, ferr
	}
	iv, ferr := builtin.NamedData(reg, "iv", function)
	if ferr != nil {
		return nil, ferr
	}

	if len(iv) < 7 || len(iv) > 13 {
		return nil, builtin.WrongArgumentErr(function,
			"length of iv", "between 7 and 13", strconv.Itoa(len(iv)))
	}

	// The key length decides the AES variant, so it must match the
	// variant this builtin is registered for; aes.NewCipher alone would
	// accept any of 16, 24 or 32 bytes.
	if len(key) != keyLen {
		return nil, builtin.WrongArgumentErr(function,
			"length of key", strconv.Itoa(keyLen), strconv.Itoa(len(key)))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, builtin.GeneralErr(function, "Authentication failed")
	}
	cipher, err := ccm.NewCCM(block, tagLength, len(iv))
	if err != nil {
		return nil, builtin.GeneralErr(function, "Authentication failed")
	}

	switch mode {
	case modeEncrypt:
		return cipher.Seal(nil, iv, data, nil), nil
	default:
		plaintext, err := cipher.Open(nil, iv, data, nil)
		if err != nil {
			// The primitive does not distinguish failure causes and
			// neither do we.
			return nil, builtin.GeneralErr(function, "Authentication failed")
		}
		return plaintext, nil
	}
}
