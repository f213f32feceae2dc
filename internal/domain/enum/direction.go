package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Direction represents whether a settlement sells stock out or buys stock in
type Direction int

const (
	DirectionSale     Direction = 0
	DirectionPurchase Direction = 1
)

func (d Direction) String() string {
	if d == DirectionPurchase {
		return "Purchase"
	}
	return "Sale"
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = Direction(i)
		return nil
	}
	switch str {
	case "Purchase":
		*d = DirectionPurchase
	default:
		*d = DirectionSale
	}
	return nil
}

func (d Direction) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *Direction) Scan(value interface{}) error {
	if value == nil {
		*d = DirectionSale
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = Direction(v)
	case int:
		*d = Direction(v)
	}
	return nil
}
