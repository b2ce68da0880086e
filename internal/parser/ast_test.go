package parser

import (
	"strings"
	"testing"

	"github.com/alexhholmes/flyweight/schema"
)

func TestParseFile(t *testing.T) {
	types, err := ParseFile("testdata/simple.go")
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}

	// Host, HostConnection and AckMessage; IgnoredType has no annotation
	if len(types) != 3 {
		t.Fatalf("ParseFile() found %d types, want 3", len(types))
	}

	host := types[0]
	if host.Name != "Host" || host.Anno.Kind != KindRecord {
		t.Errorf("types[0] = %s (%s), want Host (record)", host.Name, host.Anno.Kind)
	}
	if len(host.Fields) != 2 {
		t.Fatalf("Host has %d fields, want 2", len(host.Fields))
	}
	if f := host.Fields[0]; f.Name != "HostName" || f.GoType != "string" || f.Layout.MaxLength != 40 {
		t.Errorf("Host.Fields[0] = {%s %s maxlen=%d}, want {HostName string maxlen=40}",
			f.Name, f.GoType, f.Layout.MaxLength)
	}

	conn := types[1]
	if conn.Anno.ID != 1 || conn.Anno.Version != 2 || !conn.Anno.Header {
		t.Errorf("HostConnection annotation = %+v, want id=1 version=2 header", conn.Anno)
	}
	if f := conn.Fields[1]; f.GoType != "[]Host" {
		t.Errorf("HostConnection.Fields[1].GoType = %q, want %q", f.GoType, "[]Host")
	}

	// Unexported and "-" fields are dropped
	ack := types[2]
	var names []string
	for _, f := range ack.Fields {
		names = append(names, f.Name)
	}
	if got := strings.Join(names, ","); got != "OK,Ratio,Code,Tag" {
		t.Errorf("AckMessage fields = %s, want OK,Ratio,Code,Tag", got)
	}
}

func TestLoadGo(t *testing.T) {
	b, err := LoadGo("testdata/simple.go")
	if err != nil {
		t.Fatalf("LoadGo() error: %v", err)
	}

	if len(b.Records) != 1 || len(b.Messages) != 2 {
		t.Fatalf("LoadGo() = %d records, %d messages, want 1 and 2", len(b.Records), len(b.Messages))
	}

	conn := b.Messages[0]
	if conn.Name != "HostConnection" || conn.ID != 1 || conn.Version != 2 || !conn.HasHeader {
		t.Errorf("Messages[0] = %+v", conn)
	}
	hosts := conn.Fields[1]
	if hosts.Type != schema.RepeatableRecord || hosts.Annotations.RecordType() != "Host" {
		t.Errorf("Hosts = %v %q, want repeatable_record Host", hosts.Type, hosts.Annotations.RecordType())
	}

	ack := b.Messages[1]
	if ack.Name != "Ack" {
		t.Errorf("Messages[1].Name = %q, want Ack", ack.Name)
	}
	if ack.ID != schema.AutoID {
		t.Errorf("Messages[1].ID = %d, want AutoID", ack.ID)
	}
	wantTypes := []schema.FieldType{schema.Boolean, schema.Double, schema.Int16, schema.FixedString}
	for i, want := range wantTypes {
		if ack.Fields[i].Type != want {
			t.Errorf("Ack.Fields[%d].Type = %v, want %v", i, ack.Fields[i].Type, want)
		}
	}
	if n, ok, err := ack.Fields[3].Annotations.MaxLength(); n != 8 || !ok || err != nil {
		t.Errorf("Ack.Tag maxLength = %d, %v, %v; want 8", n, ok, err)
	}
}

func TestParseFile_GroupedAndBroken(t *testing.T) {
	types, err := ParseFile("testdata/complex.go")
	if err == nil {
		t.Fatal("ParseFile() expected error for Broken")
	}
	if !strings.Contains(err.Error(), "Broken") || !strings.Contains(err.Error(), "maxlen") {
		t.Errorf("ParseFile() error = %v, want mention of Broken and maxlen", err)
	}

	// The grouped declarations still parse
	if len(types) != 2 {
		t.Fatalf("ParseFile() found %d types, want 2", len(types))
	}
	if types[0].Name != "Quote" || types[0].Anno.Kind != KindRecord {
		t.Errorf("types[0] = %s (%s), want Quote (record)", types[0].Name, types[0].Anno.Kind)
	}
	if types[1].Name != "QuoteBook" || !types[1].Anno.Fixed || types[1].Anno.ID != 20 {
		t.Errorf("types[1] = %s %+v, want QuoteBook id=20 fixed", types[1].Name, types[1].Anno)
	}
}

func TestBatch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		errMsg string
	}{
		{
			name: "unsupported Go type",
			code: `package test
// @message
type M struct {
	Count uint32
}`,
			errMsg: "type uint32 has no wire encoding",
		},
		{
			name: "maxlen on integer",
			code: `package test
// @message
type M struct {
	Count int32 ` + "`layout:\"maxlen=4\"`" + `
}`,
			errMsg: "maxlen= is only valid on string fields",
		},
		{
			name: "record on scalar",
			code: `package test
// @message
type M struct {
	Count int32 ` + "`layout:\"record=Host\"`" + `
}`,
			errMsg: "record= is only valid on repeated fields",
		},
		{
			name: "pointer field",
			code: `package test
// @message
type M struct {
	Next *M
}`,
			errMsg: "type *M has no wire encoding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types, err := ParseSource("test.go", tt.code)
			if err != nil {
				t.Fatalf("ParseSource() error: %v", err)
			}

			_, err = Batch(types)
			if err == nil {
				t.Fatalf("Batch() expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Batch() error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestParseSource_EmbeddedField(t *testing.T) {
	code := `package test
type Base struct{}
// @message
type M struct {
	Base
	Count int32
}`
	_, err := ParseSource("test.go", code)
	if err == nil || !strings.Contains(err.Error(), "embedded field Base") {
		t.Errorf("ParseSource() error = %v, want embedded field error", err)
	}
}
