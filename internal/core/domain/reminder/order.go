package reminder

import "errors"

type OrderBy struct {
	v string
}

var (
	OrderByNotSet        OrderBy = OrderBy{}
	OrderByIDAsc         OrderBy = OrderBy{v: "id_asc"}
	OrderByIDDesc        OrderBy = OrderBy{v: "id_desc"}
	OrderByTriggerAtAsc  OrderBy = OrderBy{v: "trigger_at_asc"}
	OrderByTriggerAtDesc OrderBy = OrderBy{v: "trigger_at_desc"}
)

var ErrParseOrderBy = errors.New("invalid order")

func ParseOrderBy(value string) (OrderBy, error) {
	switch value {
	case "id_asc":
		return OrderByIDAsc, nil
	case "id_desc":
		return OrderByIDDesc, nil
	case "trigger_at_asc":
		return OrderByTriggerAtAsc, nil
	case "trigger_at_desc":
		return OrderByTriggerAtDesc, nil
	default:
		return OrderByNotSet, ErrParseOrderBy
	}
}
