package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money 金额（十进制定点数，避免二进制浮点求和误差）
// 数据库中以 Decimal128 存储，JSON 中以不带引号的数字输出
type Money struct {
	decimal.Decimal
}

// NewMoney 从 decimal 构造金额
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromString 解析十进制金额字符串，如 "12.50"
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

// Equal 金额数值是否相等（12.5 与 12.50 视为相等）
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// MarshalJSON 输出不带引号的十进制数字，如 12.5
// 反序列化沿用 decimal 自带实现（同时接受数字与字符串）
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// MarshalBSONValue 以 Decimal128 写入 MongoDB
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	dec, err := primitive.ParseDecimal128(m.Decimal.String())
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode amount %q: %w", m.Decimal.String(), err)
	}
	return bson.MarshalValue(dec)
}

// UnmarshalBSONValue 从 MongoDB 读取金额
// 主路径是 Decimal128，同时兼容历史数据中的 double/string/int 形式
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Decimal128:
		var dec primitive.Decimal128
		if err := rv.Unmarshal(&dec); err != nil {
			return fmt.Errorf("failed to decode amount: %w", err)
		}
		d, err := decimal.NewFromString(dec.String())
		if err != nil {
			return fmt.Errorf("failed to parse amount %q: %w", dec.String(), err)
		}
		m.Decimal = d
		return nil
	case bsontype.Double:
		f, ok := rv.DoubleOK()
		if !ok {
			return fmt.Errorf("failed to decode amount: malformed double")
		}
		m.Decimal = decimal.NewFromFloat(f)
		return nil
	case bsontype.String:
		s, ok := rv.StringValueOK()
		if !ok {
			return fmt.Errorf("failed to decode amount: malformed string")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("failed to parse amount %q: %w", s, err)
		}
		m.Decimal = d
		return nil
	case bsontype.Int32:
		v, ok := rv.Int32OK()
		if !ok {
			return fmt.Errorf("failed to decode amount: malformed int32")
		}
		m.Decimal = decimal.NewFromInt(int64(v))
		return nil
	case bsontype.Int64:
		v, ok := rv.Int64OK()
		if !ok {
			return fmt.Errorf("failed to decode amount: malformed int64")
		}
		m.Decimal = decimal.NewFromInt(v)
		return nil
	default:
		return fmt.Errorf("cannot decode BSON type %s into Money", t)
	}
}
