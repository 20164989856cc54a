package ndlcore

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/theodi/ndlcore/internal/jsoncodec"
)

// Column describes one field of a corpus record.
type Column struct {
	Name        string
	Description string
}

// Schema is an ordered, read-only set of column descriptions.
// The zero value is an empty schema.
type Schema struct {
	cols  []Column
	index map[string]int
}

// NewSchema builds a schema from columns. Later duplicates replace the
// description of an earlier column but keep its position.
func NewSchema(cols ...Column) Schema {
	s := Schema{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if i, ok := s.index[c.Name]; ok {
			s.cols[i].Description = c.Description
			continue
		}
		s.index[c.Name] = len(s.cols)
		s.cols = append(s.cols, c)
	}
	return s
}

var corpusSchema = NewSchema(
	Column{"identifier", "string (UUID). Globally unique identifier for the record."},
	Column{"title", "string. Title of the resource or filename where a title is not available."},
	Column{"description", "string. Human-readable description or summary of the resource."},
	Column{"source", "string. Origin of the data (e.g. gov.uk, ons.gov.uk, legislation.gov.uk)."},
	Column{"date", "date (ISO 8601). Original publication or creation date of the resource, where available."},
	Column{"collection_time", "datetime (ISO 8601). Timestamp indicating when the data was crawled or ingested into the corpus."},
	Column{"open_type", "string. Classification of the openness context (e.g. Open Government, Open Data, Open Source)."},
	Column{"license", "string. Usage and redistribution rights associated with the resource."},
	Column{"tags", "array[string]. Automatically assigned EU Data Theme Vocabulary tags describing the content domain."},
	Column{"language", "string (ISO 639-1). Automatically detected language of the resource content."},
	Column{"format", "string. Data format of the record (e.g. text, parquet)."},
	Column{"text", "string. Preview of the extracted textual content of the resource (first 100 characters only)."},
	Column{"word_count", "integer. Number of space-delimited words in the text field."},
	Column{"token_count", "integer. Number of tokens calculated using the embedding model tokenizer."},
	Column{"data_file", "string. Relative path to the associated structured data file, if applicable. Data files exist in the ndl-core-structured-data dataset."},
	Column{"extra_metadata", "object. Source-specific, sparse metadata not covered by the core schema."},
	Column{"_distance", "double. Similarity score from the semantic search (cosine distance). Lower values indicate higher similarity."},
	Column{"download", "array[string]. One or more URLs where the dataset can be downloaded."},
)

// CorpusSchema returns the NDL Core Corpus field registry.
// The value is shared; Schema exposes no mutators.
func CorpusSchema() Schema { return corpusSchema }

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.cols) }

// Names returns column names in registry order.
func (s Schema) Names() []string {
	out := make([]string, len(s.cols))
	for i, c := range s.cols {
		out[i] = c.Name
	}
	return out
}

// Description returns the description of a column.
func (s Schema) Description(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.cols[i].Description, true
}

// Columns returns a copy of the columns in registry order.
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.cols))
	copy(out, s.cols)
	return out
}

// Map returns a copy of the schema as a name → description map.
func (s Schema) Map() map[string]string {
	out := make(map[string]string, len(s.cols))
	for _, c := range s.cols {
		out[c.Name] = c.Description
	}
	return out
}

// Equal reports whether both schemas hold the same columns in the same order.
func (s Schema) Equal(o Schema) bool {
	if len(s.cols) != len(o.cols) {
		return false
	}
	for i := range s.cols {
		if s.cols[i] != o.cols[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the schema as a JSON object in registry order.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := jsoncodec.Marshal(c.Name)
		if err != nil {
			return nil, fmt.Errorf("encode column name: %w", err)
		}
		v, err := jsoncodec.Marshal(c.Description)
		if err != nil {
			return nil, fmt.Errorf("encode column %q: %w", c.Name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string descriptions, keeping document order.
func (s *Schema) UnmarshalJSON(data []byte) error {
	iter := jsoncodec.API.BorrowIterator(data)
	defer jsoncodec.API.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return errors.New("column descriptions: expected a JSON object")
	}
	var cols []Column
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		if it.WhatIsNext() != jsoniter.StringValue {
			it.ReportError("read column description", fmt.Sprintf("column %q is not a string", key))
			return false
		}
		cols = append(cols, Column{Name: key, Description: it.ReadString()})
		return true
	})
	if iter.Error != nil {
		return fmt.Errorf("column descriptions: %w", iter.Error)
	}
	*s = NewSchema(cols...)
	return nil
}
