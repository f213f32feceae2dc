package enum

// DiscountType tags the active discount on a settlement, if any.
// At most one of promo/owner may be active at a time.
type DiscountType int

const (
	DiscountNone  DiscountType = 0
	DiscountPromo DiscountType = 1
	DiscountOwner DiscountType = 2
)

func (t DiscountType) String() string {
	switch t {
	case DiscountPromo:
		return "Promo"
	case DiscountOwner:
		return "Owner"
	default:
		return "None"
	}
}

// OwnerDiscountKind selects how an owner-authorized discount value is read
type OwnerDiscountKind int

const (
	OwnerDiscountPercent OwnerDiscountKind = 0
	OwnerDiscountFixed   OwnerDiscountKind = 1
)

func (k OwnerDiscountKind) String() string {
	if k == OwnerDiscountFixed {
		return "Fixed"
	}
	return "Percent"
}
