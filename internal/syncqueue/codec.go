package syncqueue

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Codec turns payloads into the text stored in SyncUpdate.payload and
// back. Wire form: compact JSON, zlib, zero padding up to the minimum
// size of the operation, URL-safe base64 without '='.
type Codec struct {
	level   int
	minSize map[string]int
}

func NewCodec(level int, minSize map[string]int) *Codec {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		level = zlib.BestCompression
	}
	// config loaders lowercase map keys, so lookups ignore case.
	sizes := make(map[string]int, len(minSize))
	for op, n := range minSize {
		sizes[strings.ToLower(op)] = n
	}
	return &Codec{level: level, minSize: sizes}
}

// MinSize reports the padded length for op; zero means no padding.
func (c *Codec) MinSize(op string) int {
	return c.minSize[strings.ToLower(op)]
}

func (c *Codec) Encode(p Payload) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	doc, err := marshalOrdered(p.Fields)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write(doc); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	raw := buf.Bytes()
	if size := c.MinSize(p.Operation); len(raw) < size {
		raw = append(raw, make([]byte, size-len(raw))...)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. Trailing bytes after the zlib stream must all
// be zero.
func (c *Codec) Decode(text string) (Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(text), "="))
	if err != nil {
		return Payload{}, fmt.Errorf("base64: %w", err)
	}

	r := bytes.NewReader(raw)
	zr, err := zlib.NewReader(r)
	if err != nil {
		return Payload{}, fmt.Errorf("zlib: %w", err)
	}
	doc, err := io.ReadAll(zr)
	if err != nil {
		return Payload{}, fmt.Errorf("zlib: %w", err)
	}
	if err := zr.Close(); err != nil {
		return Payload{}, fmt.Errorf("zlib: %w", err)
	}
	if err := checkPadding(raw[len(raw)-r.Len():]); err != nil {
		return Payload{}, err
	}

	fields, err := unmarshalOrdered(doc)
	if err != nil {
		return Payload{}, fmt.Errorf("json: %w", err)
	}
	p := Payload{Fields: fields}
	op, ok := p.Get(OperationField)
	if !ok {
		return Payload{}, fmt.Errorf("payload has no %s field", OperationField)
	}
	if p.Operation, ok = op.(string); !ok || p.Operation == "" {
		return Payload{}, fmt.Errorf("payload %s field is not a string", OperationField)
	}
	return p, nil
}

func checkPadding(rest []byte) error {
	for i, b := range rest {
		if b != 0 {
			return fmt.Errorf("non-zero byte 0x%02x in padding at offset %d", b, i)
		}
	}
	return nil
}

func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalOrdered(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshalValue(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := marshalValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalOrdered(doc []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("payload is not an object")
	}

	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: normalize(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// normalize maps json.Number to int64 when integral, float64 otherwise.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalize(t[k])
		}
		return t
	default:
		return v
	}
}
