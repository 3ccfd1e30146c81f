package customer

// VIPSet holds the customer ids flagged as VIP.
type VIPSet map[int64]struct{}

func NewVIPSet(ids ...int64) VIPSet {
	set := make(VIPSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports membership of id. A missing id is never a VIP.
func (s VIPSet) Contains(id *int64) bool {
	if id == nil {
		return false
	}
	_, ok := s[*id]
	return ok
}
