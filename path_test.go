package objenc_test

import (
	"testing"

	"github.com/reoring/objenc"
)

func TestPath_Pointer(t *testing.T) {
	cases := []struct {
		name string
		path objenc.Path
		want string
	}{
		{"root", nil, "/"},
		{"field", objenc.Path{}.Field("name"), "/name"},
		{"nested", objenc.Path{}.Field("items").Index(2).Field("price"), "/items/2/price"},
		{"escaped", objenc.Path{}.Field("a/b").Field("c~d"), "/a~1b/c~0d"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.path.Pointer(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestPath_ExtensionDoesNotAlias(t *testing.T) {
	base := objenc.Path{}.Field("a").Field("b")
	x := base.Field("x")
	y := base.Field("y")
	if x.Pointer() != "/a/b/x" || y.Pointer() != "/a/b/y" {
		t.Fatalf("siblings clobbered each other: %s %s", x, y)
	}
	if len(base) != 2 {
		t.Fatalf("base modified: %s", base)
	}
}

func TestPathKey_Kinds(t *testing.T) {
	if k := objenc.IndexKey(3); !k.IsIndex() || k.Index() != 3 || k.String() != "3" {
		t.Fatalf("unexpected index key %#v", k)
	}
	if k := objenc.FieldKey("super"); k.IsIndex() || k.String() != "super" {
		t.Fatalf("unexpected field key %#v", k)
	}
}
