package builtin

import (
	"encoding/hex"

	"vulnscript/internal/interpreter"
	"vulnscript/internal/storage"
)

// RegisterDataFunctions registers the raw-data conversion builtins.
func RegisterDataFunctions(interp *interpreter.Interpreter) {
	interp.RegisterBuiltin("hexstr_to_data", hexstrToData)
	interp.RegisterBuiltin("data_to_hexstr", dataToHexstr)
	interp.RegisterBuiltin("strlen", strlen)
}

// hexstr_to_data("d24a...") decodes a hex string into raw data.
func hexstrToData(function string, _ storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
	s, ferr := PositionalString(reg, 0, function)
	if ferr != nil {
		return nil, ferr
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, WrongArgumentErr(function, "#0", "a hex string", s)
	}
	return data, nil
}

// data_to_hexstr(data) renders raw data as a lowercase hex string.
func dataToHexstr(function string, _ storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
	data, ferr := PositionalData(reg, 0, function)
	if ferr != nil {
		return nil, ferr
	}
	return hex.EncodeToString(data), nil
}

// strlen(x) returns the byte length of a string or data value.
func strlen(function string, _ storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
	data, ferr := PositionalData(reg, 0, function)
	if ferr != nil {
		return nil, ferr
	}
	return float64(len(data)), nil
}
