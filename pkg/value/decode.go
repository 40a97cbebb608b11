package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decode parses a JSON document into a Value tree. Object key order and
// number literals are preserved exactly as they appear in the input.
func Decode(doc string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Anything after the first value makes the document invalid.
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("unexpected end of JSON document")
		}
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return NumFromLiteral(t.String())
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key, Val: val})
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Array{}
	for dec.More() {
		el, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, el)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
