package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	json "github.com/goccy/go-json"
	"go.uber.org/multierr"

	"github.com/alexhholmes/flyweight/schema"
)

// jsonField is one field of a JSON schema document.
//
//	{"name": "hostName", "type": "string", "maxLength": 40}
//	{"name": "hosts", "type": "record", "recordType": "Host"}
type jsonField struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	MaxLength   *int              `json:"maxLength,omitempty"`
	RecordType  string            `json:"recordType,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

type jsonRecord struct {
	Name   string      `json:"name"`
	Fields []jsonField `json:"fields"`
}

type jsonMessage struct {
	Name        string      `json:"name"`
	ID          *int        `json:"id,omitempty"`
	Version     int         `json:"version"`
	Header      bool        `json:"header"`
	FixedLength bool        `json:"fixedLength"`
	Fields      []jsonField `json:"fields"`
}

type jsonSchema struct {
	Records  []jsonRecord  `json:"records"`
	Messages []jsonMessage `json:"messages"`
}

// ParseJSON decodes a JSON schema document into a batch. Unknown keys are
// rejected so typos in field names surface as errors.
func ParseJSON(r io.Reader) (schema.Batch, error) {
	var doc jsonSchema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return schema.Batch{}, fmt.Errorf("decode schema json: %w", err)
	}

	var b schema.Batch
	var errs error

	for _, rec := range doc.Records {
		fields, err := jsonFields(rec.Name, rec.Fields)
		errs = multierr.Append(errs, err)
		b.Records = append(b.Records, schema.Record{Name: rec.Name, Fields: fields})
	}

	for _, msg := range doc.Messages {
		fields, err := jsonFields(msg.Name, msg.Fields)
		errs = multierr.Append(errs, err)

		id := schema.AutoID
		if msg.ID != nil {
			id = *msg.ID
		}
		b.Messages = append(b.Messages, schema.Message{
			Name:        msg.Name,
			ID:          id,
			Version:     msg.Version,
			Fields:      fields,
			HasHeader:   msg.Header,
			FixedLength: msg.FixedLength,
		})
	}

	return b, errs
}

func jsonFields(owner string, in []jsonField) ([]schema.Field, error) {
	fields := make([]schema.Field, 0, len(in))
	var errs error

	for _, f := range in {
		t, err := schema.ParseFieldType(f.Type)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s.%s: %w", owner, f.Name, err))
			continue
		}

		annotations := schema.Annotations{}
		for k, v := range f.Annotations {
			annotations[k] = v
		}
		if f.MaxLength != nil {
			annotations[schema.AnnotationMaxLength] = strconv.Itoa(*f.MaxLength)
		}
		if f.RecordType != "" {
			annotations[schema.AnnotationRecordType] = f.RecordType
		}
		if len(annotations) == 0 {
			annotations = nil
		}

		fields = append(fields, schema.Field{Name: f.Name, Type: t, Annotations: annotations})
	}

	return fields, errs
}

// LoadJSON reads a JSON schema file into a batch.
func LoadJSON(filename string) (schema.Batch, error) {
	f, err := os.Open(filename)
	if err != nil {
		return schema.Batch{}, err
	}
	defer f.Close()

	return ParseJSON(f)
}

// Load reads a schema file, choosing the front-end by extension: .go files
// are parsed as annotated Go source, .json files as JSON schema documents.
func Load(filename string) (schema.Batch, error) {
	switch filepath.Ext(filename) {
	case ".go":
		return LoadGo(filename)
	case ".json":
		return LoadJSON(filename)
	}
	return schema.Batch{}, fmt.Errorf("%s: unsupported schema file, want .go or .json", filename)
}
