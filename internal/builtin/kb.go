package builtin

import (
	"vulnscript/internal/interpreter"
	"vulnscript/internal/storage"
)

// RegisterKBFunctions registers the knowledge-base builtins backed by the
// shared storage sink.
func RegisterKBFunctions(interp *interpreter.Interpreter) {
	interp.RegisterBuiltin("set_kb_item", setKBItem)
	interp.RegisterBuiltin("get_kb_item", getKBItem)
}

// set_kb_item(name: "Ports/tcp/22", value: "open") records an item.
func setKBItem(function string, sink storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
	name, ferr := NamedString(reg, "name", function)
	if ferr != nil {
		return nil, ferr
	}
	value, ferr := NamedValue(reg, "value", function)
	if ferr != nil {
		return nil, ferr
	}
	if err := sink.Dispatch(name, interpreter.ToString(value)); err != nil {
		return nil, GeneralErr(function, err.Error())
	}
	return nil, nil
}

// get_kb_item(name: "Ports/tcp/22") returns the recorded item: null when
// absent, the value when single, an array when multiple.
func getKBItem(function string, sink storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
	name, ferr := NamedString(reg, "name", function)
	if ferr != nil {
		return nil, ferr
	}
	values, err := sink.Retrieve(name)
	if err != nil {
		return nil, GeneralErr(function, err.Error())
	}
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return values[0], nil
	default:
		arr := interpreter.NewArray(len(values))
		for _, v := range values {
			arr.Elements = append(arr.Elements, v)
		}
		return arr, nil
	}
}
