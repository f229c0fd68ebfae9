package util

import (
	"encoding/json"
	"testing"
)

type optionalPayload struct {
	Name  Optional[string] `json:"name"`
	Count Optional[int]    `json:"count"`
}

func TestOptional_TriState(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantNull  bool
		wantValue string
	}{
		{name: "absent", body: `{}`, wantSet: false},
		{name: "explicit null", body: `{"name":null}`, wantSet: true, wantNull: true},
		{name: "empty string", body: `{"name":""}`, wantSet: true, wantValue: ""},
		{name: "value", body: `{"name":"Rao"}`, wantSet: true, wantValue: "Rao"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p optionalPayload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.Name.Set != tt.wantSet || p.Name.Null != tt.wantNull || p.Name.Value != tt.wantValue {
				t.Fatalf("got %+v", p.Name)
			}
			if p.Name.HasValue() != (tt.wantSet && !tt.wantNull) {
				t.Fatalf("HasValue mismatch for %+v", p.Name)
			}
		})
	}
}

func TestOptional_WrongType_ReturnsError(t *testing.T) {
	var p optionalPayload
	if err := json.Unmarshal([]byte(`{"count":"three"}`), &p); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestOptional_Marshal(t *testing.T) {
	p := optionalPayload{Name: Some("Rao")}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"Rao","count":null}` {
		t.Fatalf("unexpected json: %s", b)
	}
}
