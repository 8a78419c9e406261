package cryptography

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"

	"vulnscript/internal/builtin"
	"vulnscript/internal/interpreter"
	"vulnscript/internal/storage"
)

// RegisterHashFunctions registers the digest builtins. Each takes one
// positional string-or-data argument and returns the digest as raw data.
func RegisterHashFunctions(interp *interpreter.Interpreter) {
	interp.RegisterBuiltin("MD5", digest(func(data []byte) []byte {
		sum := md5.Sum(data)
		return sum[:]
	}))
	interp.RegisterBuiltin("SHA1", digest(func(data []byte) []byte {
		sum := sha1.Sum(data)
		return sum[:]
	}))
	interp.RegisterBuiltin("SHA256", digest(func(data []byte) []byte {
		sum := sha256.Sum256(data)
		return sum[:]
	}))
}

func digest(sum func([]byte) []byte) interpreter.NativeFunction {
	return func(function string, _ storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
		data, ferr := builtin.PositionalData(reg, 0, function)
		if ferr != nil {
			return nil, ferr
		}
		return sum(data), nil
	}
}
