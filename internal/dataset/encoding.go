package dataset

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var errInvalidUTF8 = errors.New("invalid utf-8 byte sequence")

type textDecoder struct {
	name   string
	decode func([]byte) ([]byte, error)
}

// Tried in order; the first decoder that succeeds wins.
var textDecoders = []textDecoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "latin-1", decode: decodeCharmap(charmap.ISO8859_1)},
	{name: "iso-8859-1", decode: decodeCharmap(charmap.ISO8859_1)},
	{name: "cp1252", decode: decodeCharmap(charmap.Windows1252)},
	{name: "utf-8-sig", decode: decodeUTF8BOM},
}

// Encodings returns the encoding names in the order they are attempted.
func Encodings() []string {
	names := make([]string, len(textDecoders))
	for i, d := range textDecoders {
		names[i] = d.name
	}
	return names
}

func decodeUTF8(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, errInvalidUTF8
	}
	return raw, nil
}

func decodeUTF8BOM(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, errInvalidUTF8
	}
	return unicode.UTF8BOM.NewDecoder().Bytes(raw)
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) ([]byte, error) {
	return func(raw []byte) ([]byte, error) {
		return cm.NewDecoder().Bytes(raw)
	}
}

// decode returns the text of raw under the first encoding that accepts it.
func decode(raw []byte) (string, []byte, error) {
	var errs []error
	for _, d := range textDecoders {
		text, err := d.decode(raw)
		if err == nil {
			return d.name, text, nil
		}
		errs = append(errs, err)
	}
	return "", nil, errors.Join(errs...)
}
