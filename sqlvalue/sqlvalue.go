// Package sqlvalue provides driver.Valuer/sql.Scanner value wrappers for
// the shapes that commonly flow through a ParameterValues: compressed
// blobs, embedded JSON documents, and single-bit booleans. A caller binds
// one of these to a parameter name the same as any other Go value;
// ddbc.ParameterValues.Apply passes it straight to the statement writer,
// which defers to its Value()/Scan() for the wire representation.
package sqlvalue

import (
	"bytes"
	"compress/gzip"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
)

// GzippedText is a []byte that gzips on the way into the database and
// ungzips on the way out.
type GzippedText []byte

// Value implements driver.Valuer.
func (g GzippedText) Value() (driver.Value, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(g); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Scan implements sql.Scanner.
func (g *GzippedText) Scan(src interface{}) error {
	source, err := asBytes(src, "GzippedText")
	if err != nil {
		return err
	}
	reader, err := gzip.NewReader(bytes.NewReader(source))
	if err != nil {
		return err
	}
	defer reader.Close()
	b, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	*g = GzippedText(b)
	return nil
}

// JSONText is a json.RawMessage underneath. Value validates the content
// is well-formed JSON and fails otherwise; Scan performs no validation.
type JSONText json.RawMessage

// MarshalJSON returns j unchanged.
func (j *JSONText) MarshalJSON() ([]byte, error) {
	if j == nil || *j == nil {
		return []byte("null"), nil
	}
	return *j, nil
}

// UnmarshalJSON stores a copy of data in *j.
func (j *JSONText) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("sqlvalue: UnmarshalJSON on nil *JSONText")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// Value validates j as JSON by round-tripping it through a RawMessage,
// failing if it is malformed; an empty or nil j is treated as valid.
func (j JSONText) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte(nil), nil
	}
	var m json.RawMessage
	if err := j.Unmarshal(&m); err != nil {
		return nil, err
	}
	return []byte(j), nil
}

// Scan stores src in *j without validating it.
func (j *JSONText) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}
	source, err := asBytes(src, "JSONText")
	if err != nil {
		return err
	}
	*j = JSONText(append((*j)[0:0], source...))
	return nil
}

// Unmarshal decodes the JSON in j into v.
func (j *JSONText) Unmarshal(v interface{}) error {
	if len(*j) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(*j), v)
}

func (j JSONText) String() string {
	return string(j)
}

// NullJSONText is a nullable JSONText, on the model of sql.NullString.
type NullJSONText struct {
	JSONText
	Valid bool
}

// Scan implements sql.Scanner; a nil src leaves Valid false.
func (n *NullJSONText) Scan(src interface{}) error {
	if src == nil {
		n.JSONText, n.Valid = nil, false
		return nil
	}
	n.Valid = true
	return n.JSONText.Scan(src)
}

// Value implements driver.Valuer.
func (n NullJSONText) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.JSONText.Value()
}

// BitBool is a bool stored as a single-bit BIT(1) column, the way MySQL
// driver returns it as a one-byte []byte rather than a native bool.
type BitBool bool

// Value implements driver.Valuer.
func (b BitBool) Value() (driver.Value, error) {
	if b {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// Scan implements sql.Scanner.
func (b *BitBool) Scan(src interface{}) error {
	v, ok := src.([]byte)
	if !ok {
		return errors.New("sqlvalue: BitBool Scan expects []byte")
	}
	if len(v) == 0 {
		return errors.New("sqlvalue: BitBool Scan received empty []byte")
	}
	*b = v[0] != 0
	return nil
}

func asBytes(src interface{}, typeName string) ([]byte, error) {
	switch v := src.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, errors.New("sqlvalue: incompatible type for " + typeName)
	}
}
