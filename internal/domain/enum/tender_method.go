package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TenderMethod represents the payment method chosen for a settlement
type TenderMethod int

const (
	TenderCash TenderMethod = iota
	TenderCard
	TenderUPI
	TenderCredit
	TenderFree
	TenderOwnerDiscount
)

var tenderMethodNames = [...]string{"CASH", "CARD", "UPI", "CREDIT", "FREE", "OWNER_DISCOUNT"}

func (m TenderMethod) String() string {
	if int(m) < 0 || int(m) >= len(tenderMethodNames) {
		return "CASH"
	}
	return tenderMethodNames[m]
}

// IsValid reports whether the method is one of the known tender methods
func (m TenderMethod) IsValid() bool {
	return int(m) >= 0 && int(m) < len(tenderMethodNames)
}

// ParseTenderMethod resolves a method by its wire name
func ParseTenderMethod(name string) (TenderMethod, bool) {
	for i, n := range tenderMethodNames {
		if n == name {
			return TenderMethod(i), true
		}
	}
	return TenderCash, false
}

// IsDeferred reports whether the method settles without monetary coverage now.
// Credit and owner-discount settlements commit with the outstanding amount
// carried as balance (credit) or zeroed by definition (owner discount).
func (m TenderMethod) IsDeferred() bool {
	return m == TenderCredit || m == TenderOwnerDiscount
}

func (m TenderMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *TenderMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = TenderMethod(i)
		return nil
	}
	for i, name := range tenderMethodNames {
		if name == str {
			*m = TenderMethod(i)
			return nil
		}
	}
	*m = TenderCash
	return nil
}

func (m TenderMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *TenderMethod) Scan(value interface{}) error {
	if value == nil {
		*m = TenderCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = TenderMethod(v)
	case int:
		*m = TenderMethod(v)
	}
	return nil
}
