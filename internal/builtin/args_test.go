package builtin_test

import (
	"bytes"
	"testing"

	"vulnscript/internal/builtin"
	"vulnscript/internal/interpreter"
)

func frame(named map[string]interpreter.Value, positional ...interpreter.Value) *interpreter.Register {
	return interpreter.NewRegister().CallFrame(named, positional)
}

func TestNamedData(t *testing.T) {
	tests := []struct {
		name     string
		value    interpreter.Value
		expected []byte
		wantErr  bool
		actual   string
	}{
		{name: "raw data", value: []byte{1, 2, 3}, expected: []byte{1, 2, 3}},
		{name: "string coerced", value: "abc", expected: []byte("abc")},
		{name: "number refused", value: float64(7), wantErr: true, actual: "number"},
		{name: "array refused", value: interpreter.NewArray(0), wantErr: true, actual: "array"},
		{name: "bool refused", value: true, wantErr: true, actual: "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := frame(map[string]interpreter.Value{"key": tt.value})
			data, ferr := builtin.NamedData(reg, "key", "test_fn")
			if tt.wantErr {
				if ferr == nil {
					t.Fatal("expected WrongArgument error")
				}
				kind, ok := ferr.Kind.(builtin.WrongArgument)
				if !ok {
					t.Fatalf("expected WrongArgument kind, got %T", ferr.Kind)
				}
				if kind.Parameter != "key" || kind.Actual != tt.actual {
					t.Errorf("unexpected error detail: %+v", kind)
				}
				return
			}
			if ferr != nil {
				t.Fatalf("unexpected error: %v", ferr)
			}
			if !bytes.Equal(data, tt.expected) {
				t.Errorf("expected %x, got %x", tt.expected, data)
			}
		})
	}
}

func TestNamedDataMissing(t *testing.T) {
	reg := frame(nil)
	_, ferr := builtin.NamedData(reg, "iv", "aes128_ccm_encrypt")
	if ferr == nil {
		t.Fatal("expected error for missing argument")
	}
	if ferr.Function != "aes128_ccm_encrypt" {
		t.Errorf("error should carry the function name, got %q", ferr.Function)
	}
	kind, ok := ferr.Kind.(builtin.WrongArgument)
	if !ok {
		t.Fatalf("expected WrongArgument kind, got %T", ferr.Kind)
	}
	if kind.Parameter != "iv" || kind.Actual != "missing" {
		t.Errorf("unexpected error detail: %+v", kind)
	}
}

func TestOptionalNamed(t *testing.T) {
	reg := frame(map[string]interpreter.Value{"flag": true})
	if _, ok := builtin.OptionalNamed(reg, "absent"); ok {
		t.Error("absent optional argument should not be found")
	}
	v, ok := builtin.OptionalNamed(reg, "flag")
	if !ok || v != true {
		t.Errorf("expected bound optional argument, got %v, %v", v, ok)
	}
}

func TestPositionalAccessors(t *testing.T) {
	reg := frame(nil, "deadbeef", []byte{1})
	s, ferr := builtin.PositionalString(reg, 0, "hexstr_to_data")
	if ferr != nil || s != "deadbeef" {
		t.Fatalf("expected positional string, got %q, %v", s, ferr)
	}
	data, ferr := builtin.PositionalData(reg, 1, "data_to_hexstr")
	if ferr != nil || !bytes.Equal(data, []byte{1}) {
		t.Fatalf("expected positional data, got %x, %v", data, ferr)
	}
	if _, ferr := builtin.PositionalString(reg, 2, "strlen"); ferr == nil {
		t.Error("expected error for out-of-range positional argument")
	}
}

func TestFunctionErrorMessages(t *testing.T) {
	err := builtin.WrongArgumentErr("aes128_ccm_encrypt", "length of iv", "between 7 and 13", "14")
	want := `aes128_ccm_encrypt: wrong argument "length of iv": expected between 7 and 13, got 14`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	gerr := builtin.GeneralErr("aes128_ccm_decrypt", "Authentication failed")
	if gerr.Error() != "aes128_ccm_decrypt: Authentication failed" {
		t.Errorf("unexpected message %q", gerr.Error())
	}
}

// Accessors must not mutate the register.
func TestAccessorsDoNotMutate(t *testing.T) {
	reg := frame(map[string]interpreter.Value{"key": []byte{1, 2}})
	if _, ferr := builtin.NamedData(reg, "key", "fn"); ferr != nil {
		t.Fatalf("unexpected error: %v", ferr)
	}
	if _, ferr := builtin.NamedData(reg, "missing", "fn"); ferr == nil {
		t.Fatal("expected error")
	}
	v, ok := reg.Named("key")
	if !ok || !bytes.Equal(v.([]byte), []byte{1, 2}) {
		t.Error("register contents changed after accessor calls")
	}
}
