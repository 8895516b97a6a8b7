package datamall

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEnvelope_RequiresValue(t *testing.T) {
	var env Envelope[[]int]
	if err := json.Unmarshal([]byte(`{"odata.metadata":"m","value":[1,2]}`), &env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Metadata != "m" || len(env.Value) != 2 {
		t.Fatalf("unexpected envelope %+v", env)
	}

	for _, body := range []string{`{}`, `{"value":null}`, `{"odata.metadata":"m"}`} {
		var e Envelope[[]int]
		if err := json.Unmarshal([]byte(body), &e); err == nil {
			t.Fatalf("%s: expected error", body)
		}
	}
}

func TestEnvelope_IgnoresUnknownMembers(t *testing.T) {
	var env Envelope[struct {
		Status int `json:"Status"`
	}]
	if err := json.Unmarshal([]byte(`{"extra":true,"value":{"Status":1,"New":"x"}}`), &env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Value.Status != 1 {
		t.Fatalf("expected Status=1, got %d", env.Value.Status)
	}
}

func TestDecodeInto(t *testing.T) {
	var out map[string]int
	if err := decodeInto([]byte(` {"a":1} `), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["a"] != 1 {
		t.Fatalf("unexpected result %v", out)
	}

	if err := decodeInto([]byte(`{}`), out); err == nil {
		t.Fatalf("expected error for non-pointer destination")
	}
	var nilPtr *map[string]int
	if err := decodeInto([]byte(`{}`), nilPtr); err == nil {
		t.Fatalf("expected error for nil pointer")
	}

	keep := map[string]int{"keep": 1}
	for _, body := range []string{"", "  ", "null", `{"a":"x"}`} {
		if err := decodeInto([]byte(body), &keep); err == nil {
			t.Fatalf("%q: expected error", body)
		}
		if keep["keep"] != 1 || len(keep) != 1 {
			t.Fatalf("%q: destination modified: %v", body, keep)
		}
	}
}

type shapeRow struct {
	Code  string   `json:"Code" validate:"required"`
	Items []string `json:"Items" validate:"required"`
}

func TestDecodeInto_ChecksShape(t *testing.T) {
	var row shapeRow
	if err := decodeInto([]byte(`{"Code":"A1","Items":[]}`), &row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Code != "A1" || row.Items == nil {
		t.Fatalf("unexpected result %+v", row)
	}

	cases := []struct {
		name string
		body string
		dst  func() any
	}{
		{"foreign object", `{"unexpected":true}`, func() any { return new(shapeRow) }},
		{"missing list", `{"Code":"A1"}`, func() any { return new(shapeRow) }},
		{"foreign elements", `{"value":[{"foo":1},{"bar":2}]}`, func() any { return new(Envelope[[]shapeRow]) }},
		{"second element", `{"value":[{"Code":"A1","Items":[]},{"Code":""}]}`, func() any { return new(Envelope[[]*shapeRow]) }},
		{"empty object value", `{"value":{}}`, func() any { return new(Envelope[shapeRow]) }},
	}
	for _, tc := range cases {
		if err := decodeInto([]byte(tc.body), tc.dst()); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	keep := Envelope[[]shapeRow]{Value: []shapeRow{{Code: "sentinel"}}}
	err := decodeInto([]byte(`{"value":[{"Code":"B2","Items":["x"]},{"foo":1}]}`), &keep)
	if err == nil || !strings.Contains(err.Error(), "element 1") {
		t.Fatalf("expected error naming element 1, got %v", err)
	}
	if len(keep.Value) != 1 || keep.Value[0].Code != "sentinel" {
		t.Fatalf("destination modified: %+v", keep.Value)
	}

	var anyRows []map[string]any
	if err := decodeInto([]byte(`[{"foo":1}]`), &anyRows); err != nil {
		t.Fatalf("untagged types must decode: %v", err)
	}
}

func TestUpstreamMessage(t *testing.T) {
	cases := []struct{ body, want string }{
		{`{"fault":{"faultstring":"Invalid ApiKey"}}`, "Invalid ApiKey"},
		{`{"message":"Too many requests"}`, "Too many requests"},
		{`{"odata.error":{"message":{"value":"Bad filter"}}}`, "Bad filter"},
		{`{"error":"oops"}`, "oops"},
		{"<html>\n  <body>Gateway\n error</body></html>", "<html> <body>Gateway error</body></html>"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := upstreamMessage([]byte(tc.body)); got != tc.want {
			t.Fatalf("upstreamMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("x", 500)
	if got := snippet([]byte(long), snippetLen); len(got) != snippetLen {
		t.Fatalf("expected %d bytes, got %d", snippetLen, len(got))
	}

	// "é" is two bytes; cutting through it must not leave invalid UTF-8.
	s := snippet([]byte("aé"), 2)
	if s != "a" {
		t.Fatalf("expected %q, got %q", "a", s)
	}

	binary := []byte(strings.Repeat("\xff", 300))
	got := snippet(binary, snippetLen)
	if got == "" {
		t.Fatalf("expected a quoted prefix for invalid UTF-8")
	}
	if !strings.HasPrefix(got, `"\xff`) {
		t.Fatalf("expected quoted bytes, got %.20q", got)
	}
}
