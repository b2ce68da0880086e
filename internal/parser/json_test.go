package parser

import (
	"strings"
	"testing"

	"github.com/alexhholmes/flyweight/schema"
)

func TestLoadJSON(t *testing.T) {
	b, err := LoadJSON("testdata/schema.json")
	if err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}

	host, ok := b.Record("Host")
	if !ok {
		t.Fatal("LoadJSON() missing record Host")
	}
	if n, _, _ := host.Fields[0].Annotations.MaxLength(); n != 40 {
		t.Errorf("Host.hostName maxLength = %d, want 40", n)
	}
	if host.Fields[1].Annotations != nil {
		t.Errorf("Host.port annotations = %v, want nil", host.Fields[1].Annotations)
	}

	if len(b.Messages) != 2 {
		t.Fatalf("LoadJSON() found %d messages, want 2", len(b.Messages))
	}
	conn := b.Messages[0]
	if conn.ID != 1 || conn.Version != 2 || !conn.HasHeader {
		t.Errorf("HostConnection = %+v", conn)
	}
	if conn.Fields[1].Type != schema.RepeatableRecord || conn.Fields[1].Annotations.RecordType() != "Host" {
		t.Errorf("HostConnection.hosts = %+v", conn.Fields[1])
	}

	ack := b.Messages[1]
	if ack.ID != schema.AutoID {
		t.Errorf("Ack.ID = %d, want AutoID", ack.ID)
	}
	if n, _, _ := ack.Fields[1].Annotations.MaxLength(); n != 16 {
		t.Errorf("Ack.reason maxLength = %d, want 16", n)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		errMsg string
	}{
		{
			name:   "malformed",
			doc:    `{"messages": [`,
			errMsg: "decode schema json",
		},
		{
			name:   "unknown key",
			doc:    `{"messages": [{"name": "A", "fileds": []}]}`,
			errMsg: "decode schema json",
		},
		{
			name:   "unknown type",
			doc:    `{"messages": [{"name": "A", "fields": [{"name": "x", "type": "uint8"}]}]}`,
			errMsg: "A.x: unknown field type: uint8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatalf("ParseJSON() expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ParseJSON() error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"testdata/simple.go", "testdata/schema.json"} {
		b, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%s) error: %v", name, err)
		}
		if len(b.Messages) != 2 {
			t.Errorf("Load(%s) found %d messages, want 2", name, len(b.Messages))
		}
	}

	if _, err := Load("testdata/schema.yaml"); err == nil {
		t.Error("Load() expected error for unsupported extension")
	}
}
