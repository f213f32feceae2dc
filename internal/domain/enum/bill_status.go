package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BillStatus represents the visibility of a posted bill header.
// Readers must ignore headers still in Pending status: the staged settlement
// writer creates the header as Pending, writes the term and line records, and
// flips the status to Posted last.
type BillStatus int

const (
	BillStatusPending BillStatus = 0
	BillStatusPosted  BillStatus = 1
)

func (s BillStatus) String() string {
	if s == BillStatusPosted {
		return "Posted"
	}
	return "Pending"
}

func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillStatus(i)
		return nil
	}
	switch str {
	case "Posted":
		*s = BillStatusPosted
	default:
		*s = BillStatusPending
	}
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BillStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BillStatus(v)
	case int:
		*s = BillStatus(v)
	}
	return nil
}
