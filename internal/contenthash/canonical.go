// Package contenthash produces deterministic digests of structured payloads.
//
// Canonical form (version 2):
//   - the value is encoded with encoding/json and decoded again, so struct
//     tags and custom marshalers are honored;
//   - object keys are sorted byte-wise;
//   - object members whose value is null are dropped, so an absent field and
//     an explicit null hash the same; null array elements are kept. The bytes
//     therefore never contain `"k":null`, unlike a form that writes nullish
//     members out as explicit nulls;
//   - numbers keep their exact decimal value and are printed in plain
//     notation with no exponent, no leading zeros, no trailing fraction
//     zeros and no negative zero (`1.50e2` -> `150`, `-0.0` -> `0`); values
//     outside the float64 range are rejected;
//   - strings are JSON-escaped without HTML escaping and there is no
//     whitespace between tokens.
//
// Changing any of these rules changes every digest ever stored.
package contenthash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// CanonicalVersion identifies the encoding rules above.
const CanonicalVersion = 2

// Canonicalize returns the canonical JSON encoding of v.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("contenthash: marshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("contenthash: decode: %w", err)
	}

	var buf bytes.Buffer
	if err := writeValue(&buf, generic); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case json.Number:
		return writeNumber(buf, val)
	case string:
		return writeString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k, item := range val {
			if item == nil {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("contenthash: unexpected type %T", v)
	}
	return nil
}

func writeNumber(buf *bytes.Buffer, n json.Number) error {
	text := n.String()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("contenthash: number %q out of range", text)
	}
	mantissa, _, _ := strings.Cut(strings.ToLower(text), "e")
	if f == 0 && strings.ContainsAny(mantissa, "123456789") {
		return fmt.Errorf("contenthash: number %q out of range", text)
	}

	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return fmt.Errorf("contenthash: number %q is not a decimal", text)
	}
	buf.WriteString(decimalString(r))
	return nil
}

// decimalString prints r, whose denominator has no prime factors other than
// 2 and 5, as a finite decimal.
func decimalString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}

	d := new(big.Int).Set(r.Denom())
	twos := int(d.TrailingZeroBits())
	d.Rsh(d, uint(twos))
	fives := 0
	five := big.NewInt(5)
	m := new(big.Int)
	for d.Cmp(big.NewInt(1)) > 0 {
		q, rem := new(big.Int).QuoRem(d, five, m)
		if rem.Sign() != 0 {
			break
		}
		d = q
		fives++
	}

	out := r.FloatString(max(twos, fives))
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("contenthash: string: %w", err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
