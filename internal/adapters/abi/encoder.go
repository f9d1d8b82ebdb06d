package abi

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// ArgumentEncoder coerces loosely typed constructor arguments to the Go types
// the go-ethereum ABI packer expects. Values that already have the right type
// pass through untouched.
type ArgumentEncoder struct{}

// NewArgumentEncoder creates a new argument encoder
func NewArgumentEncoder() *ArgumentEncoder {
	return &ArgumentEncoder{}
}

// EncodeArgs coerces args against inputs. The returned slice can be handed to
// abi.Pack / bind.DeployContract.
func (e *ArgumentEncoder) EncodeArgs(inputs abi.Arguments, args []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("%w: constructor%s expects %d, got %d",
			domain.ErrArgumentCount, signature(inputs), len(inputs), len(args))
	}

	out := make([]any, len(args))
	for i, input := range inputs {
		value, err := coerce(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		out[i] = value
	}

	// Let the packer have the final word on types
	if _, err := inputs.Pack(out...); err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}

	return out, nil
}

func signature(inputs abi.Arguments) string {
	types := make([]string, len(inputs))
	for i, input := range inputs {
		types[i] = input.Type.String()
	}
	return "(" + strings.Join(types, ",") + ")"
}

// coerce converts value to the Go representation of typ
func coerce(typ abi.Type, value any) (any, error) {
	goType := typ.GetType()
	if value != nil && reflect.TypeOf(value) == goType {
		return value, nil
	}

	switch typ.T {
	case abi.StringTy:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(value), nil

	case abi.BoolTy:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("cannot use %T as bool", value)
		}
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", s)
		}
		return b, nil

	case abi.AddressTy:
		return coerceAddress(value)

	case abi.IntTy, abi.UintTy:
		return coerceInteger(typ, value)

	case abi.BytesTy:
		return coerceBytes(value)

	case abi.FixedBytesTy:
		raw, err := coerceBytes(value)
		if err != nil {
			return nil, err
		}
		if len(raw) > typ.Size {
			return nil, fmt.Errorf("value has %d bytes, max %d", len(raw), typ.Size)
		}
		arr := reflect.New(goType).Elem()
		reflect.Copy(arr, reflect.ValueOf(raw))
		return arr.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		return coerceList(typ, value)

	default:
		return nil, fmt.Errorf("unsupported constructor parameter type %s", typ.String())
	}
}

func coerceAddress(value any) (common.Address, error) {
	switch v := value.(type) {
	case *common.Address:
		if v != nil {
			return *v, nil
		}
	case string:
		s := strings.TrimSpace(v)
		if common.IsHexAddress(s) {
			return common.HexToAddress(s), nil
		}
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, v)
	}
	return common.Address{}, fmt.Errorf("%w: cannot use %T", domain.ErrInvalidAddress, value)
}

func coerceInteger(typ abi.Type, value any) (any, error) {
	var n *big.Int
	switch v := value.(type) {
	case *big.Int:
		n = v
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, "_", ""))
		parsed, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		n = parsed
	case int:
		n = big.NewInt(int64(v))
	case int64:
		n = big.NewInt(v)
	case uint64:
		n = new(big.Int).SetUint64(v)
	default:
		return nil, fmt.Errorf("cannot use %T as %s", value, typ.String())
	}

	if typ.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for %s", n, typ.String())
		}
		if n.BitLen() > typ.Size {
			return nil, fmt.Errorf("value %s overflows %s", n, typ.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("value %s overflows %s", n, typ.String())
		}
	}

	goType := typ.GetType()
	if goType == reflect.TypeOf(&big.Int{}) {
		return n, nil
	}

	// Sized integers (uint8..uint64, int8..int64) must use the exact Go type
	out := reflect.New(goType).Elem()
	if typ.T == abi.UintTy {
		out.SetUint(n.Uint64())
	} else {
		out.SetInt(n.Int64())
	}
	return out.Interface(), nil
}

func coerceBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if !strings.HasPrefix(s, "0x") {
			s = "0x" + s
		}
		raw, err := hexutil.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex bytes %q: %w", v, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("cannot use %T as bytes", value)
}

// coerceList accepts []any, []string or a JSON array string
func coerceList(typ abi.Type, value any) (any, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	case string:
		dec := json.NewDecoder(strings.NewReader(v))
		dec.UseNumber()
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("expected a JSON array, got %q", v)
		}
		items = normalizeJSON(items)
	default:
		return nil, fmt.Errorf("cannot use %T as %s", value, typ.String())
	}

	if typ.T == abi.ArrayTy && len(items) != typ.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", typ.Size, len(items))
	}

	goType := typ.GetType()
	var out reflect.Value
	if typ.T == abi.ArrayTy {
		out = reflect.New(goType).Elem()
	} else {
		out = reflect.MakeSlice(goType, len(items), len(items))
	}

	for i, item := range items {
		elem, err := coerce(*typ.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(elem))
	}
	return out.Interface(), nil
}

// normalizeJSON turns JSON numbers and bools into strings so the scalar
// coercion rules apply to them
func normalizeJSON(items []any) []any {
	for i, item := range items {
		switch v := item.(type) {
		case []any:
			items[i] = normalizeJSON(v)
		case json.Number:
			items[i] = v.String()
		case bool:
			items[i] = strconv.FormatBool(v)
		}
	}
	return items
}

// Ensure the encoder implements the interface
var _ usecase.ArgumentEncoder = (*ArgumentEncoder)(nil)
