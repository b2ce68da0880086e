package parser

import (
	"testing"

	"github.com/alexhholmes/flyweight/schema"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		comment     string
		wantKind    Kind
		wantID      int
		wantVersion int
		wantHeader  bool
		wantFixed   bool
		wantName    string
		wantErr     bool
	}{
		// Valid annotations
		{"@record", KindRecord, schema.AutoID, 0, false, false, "", false},
		{"@message", KindMessage, schema.AutoID, 0, false, false, "", false},
		{"@message id=7", KindMessage, 7, 0, false, false, "", false},
		{"@message id=7 version=3", KindMessage, 7, 3, false, false, "", false},
		{"@message version=3 id=7", KindMessage, 7, 3, false, false, "", false}, // order doesn't matter
		{"@message header", KindMessage, schema.AutoID, 0, true, false, "", false},
		{"@message id=0 header fixed", KindMessage, 0, 0, true, true, "", false},
		{"@message name=HostConn", KindMessage, schema.AutoID, 0, false, false, "HostConn", false},

		// Error cases
		{"", "", 0, 0, false, false, "", true},                 // no annotation
		{"id=4", "", 0, 0, false, false, "", true},             // missing @message
		{"@layout size=4096", "", 0, 0, false, false, "", true}, // other annotation
		{"@message id=abc", "", 0, 0, false, false, "", true},  // non-numeric id
		{"@message id=-1", "", 0, 0, false, false, "", true},   // negative id
		{"@message version=-2", "", 0, 0, false, false, "", true},
		{"@message header=yes", "", 0, 0, false, false, "", true}, // flag with value
		{"@message size=4", "", 0, 0, false, false, "", true},     // unknown param
		{"@record id=1", "", 0, 0, false, false, "", true},        // records have no wire identity
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			got, err := ParseAnnotation(tt.comment)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAnnotation(%q) expected error, got nil", tt.comment)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseAnnotation(%q) unexpected error: %v", tt.comment, err)
			}

			if got.Kind != tt.wantKind {
				t.Errorf("ParseAnnotation(%q).Kind = %q, want %q", tt.comment, got.Kind, tt.wantKind)
			}
			if got.ID != tt.wantID {
				t.Errorf("ParseAnnotation(%q).ID = %d, want %d", tt.comment, got.ID, tt.wantID)
			}
			if got.Version != tt.wantVersion {
				t.Errorf("ParseAnnotation(%q).Version = %d, want %d", tt.comment, got.Version, tt.wantVersion)
			}
			if got.Header != tt.wantHeader || got.Fixed != tt.wantFixed {
				t.Errorf("ParseAnnotation(%q) header=%v fixed=%v, want header=%v fixed=%v",
					tt.comment, got.Header, got.Fixed, tt.wantHeader, tt.wantFixed)
			}
			if got.Name != tt.wantName {
				t.Errorf("ParseAnnotation(%q).Name = %q, want %q", tt.comment, got.Name, tt.wantName)
			}
		})
	}
}

func TestCleanComment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"// @message id=1", "@message id=1"},
		{"  //   @message id=1  ", "@message id=1"},
		{"/* @record */", "@record"},
		{"  /*  @record  */  ", "@record"},
		{"@record", "@record"}, // no markers
		{"", ""},
	}

	for _, tt := range tests {
		got := CleanComment(tt.input)
		if got != tt.want {
			t.Errorf("CleanComment(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFindAnnotation(t *testing.T) {
	tests := []struct {
		name      string
		comments  []string
		wantKind  Kind
		wantID    int
		wantFound bool
		wantErr   bool
	}{
		{
			name: "found in first line",
			comments: []string{
				"@message id=4",
				"other comment",
			},
			wantKind:  KindMessage,
			wantID:    4,
			wantFound: true,
		},
		{
			name: "found in second line",
			comments: []string{
				"Host is one endpoint.",
				"@record",
			},
			wantKind:  KindRecord,
			wantID:    schema.AutoID,
			wantFound: true,
		},
		{
			name: "not found",
			comments: []string{
				"Just a comment",
				"Another comment",
			},
		},
		{
			name:     "empty comments",
			comments: []string{},
		},
		{
			name:     "malformed",
			comments: []string{"@message id=x"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := FindAnnotation(tt.comments)

			if (err != nil) != tt.wantErr {
				t.Fatalf("FindAnnotation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if found != tt.wantFound {
				t.Fatalf("FindAnnotation() found = %v, want %v", found, tt.wantFound)
			}
			if !tt.wantFound {
				return
			}

			if got.Kind != tt.wantKind {
				t.Errorf("FindAnnotation().Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.ID != tt.wantID {
				t.Errorf("FindAnnotation().ID = %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}
