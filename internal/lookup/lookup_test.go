package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"Device": map[string]any{
			"id":    "dev-1",
			"Model": "Pixel 9",
		},
		"locale": "en-US",
	}

	cases := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{name: "exact", path: "locale", want: "en-US", wantOK: true},
		{name: "nested", path: "Device.id", want: "dev-1", wantOK: true},
		{name: "case-insensitive root", path: "device.id", want: "dev-1", wantOK: true},
		{name: "case-insensitive leaf", path: "device.model", want: "Pixel 9", wantOK: true},
		{name: "missing leaf", path: "device.type", wantOK: false},
		{name: "missing intermediate", path: "screen.width", wantOK: false},
		{name: "scalar intermediate", path: "locale.lang", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Get(m, tc.path)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestGetNilMap(t *testing.T) {
	_, ok := Get(nil, "device.id")
	assert.False(t, ok)
}

func TestFieldPrefersExactThenSmallest(t *testing.T) {
	m := map[string]any{"ID": 1, "Id": 2, "id": 3}
	v, ok := Field(m, "id")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	delete(m, "id")
	v, ok = Field(m, "id")
	assert.True(t, ok)
	assert.Equal(t, 1, v) // "ID" < "Id"
}

func TestCoercions(t *testing.T) {
	m := map[string]any{
		"str":   "hello",
		"float": 1.5,
		"int":   7,
		"obj":   map[string]any{"a": 1},
		"list":  []any{"x"},
	}

	assert.Equal(t, "hello", String(Get(m, "str")))
	assert.Equal(t, "", String(Get(m, "float")))
	assert.Equal(t, "", String(Get(m, "missing")))

	f, ok := Float(Get(m, "float"))
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	f, ok = Float(Get(m, "int"))
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)
	_, ok = Float(Get(m, "str"))
	assert.False(t, ok)

	obj, ok := Map(Get(m, "obj"))
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"a": 1}, obj)

	list, ok := Slice(Get(m, "list"))
	assert.True(t, ok)
	assert.Len(t, list, 1)
}
