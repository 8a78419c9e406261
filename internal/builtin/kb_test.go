package builtin_test

import (
	"testing"

	"vulnscript/internal/interpreter"
	"vulnscript/internal/scripttest"
)

func TestKBItems(t *testing.T) {
	b := scripttest.New(t)
	b.Ok(`get_kb_item(name: "Services/www");`, nil)
	b.Run(`set_kb_item(name: "Services/www", value: "8080");`)
	b.Ok(`get_kb_item(name: "Services/www");`, "8080")
	b.Run(`set_kb_item(name: "Services/www", value: "8443");`)
	b.Check(`get_kb_item(name: "Services/www");`, func(o interpreter.Outcome) bool {
		arr, ok := o.Value.(*interpreter.Array)
		return o.Err == nil && ok && len(arr.Elements) == 2 &&
			arr.Elements[0] == "8080" && arr.Elements[1] == "8443"
	})
}

func TestDataConversions(t *testing.T) {
	b := scripttest.New(t)
	b.Ok(`hexstr_to_data("00ff10");`, []byte{0x00, 0xff, 0x10})
	b.Ok(`data_to_hexstr(hexstr_to_data("00ff10"));`, "00ff10")
	b.Ok(`strlen("hello");`, 5)
	b.Check(`hexstr_to_data("zz");`, func(o interpreter.Outcome) bool {
		return o.Err != nil
	})
}
