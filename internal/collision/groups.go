package collision

// Groups filters which objects may interact. Two objects interact when each
// one's membership intersects the other's whitelist and neither's membership
// hits the other's blacklist.
type Groups struct {
	Membership uint32
	Whitelist  uint32
	Blacklist  uint32
}

const allGroups = ^uint32(0)

// NewGroups returns groups that belong to, and interact with, everything.
func NewGroups() Groups {
	return Groups{Membership: allGroups, Whitelist: allGroups}
}

// WithMembership replaces the membership with the given group numbers (0-31).
func (g Groups) WithMembership(groups ...uint) Groups {
	g.Membership = mask(groups)
	return g
}

// WithWhitelist replaces the whitelist with the given group numbers.
func (g Groups) WithWhitelist(groups ...uint) Groups {
	g.Whitelist = mask(groups)
	return g
}

// WithBlacklist replaces the blacklist with the given group numbers.
func (g Groups) WithBlacklist(groups ...uint) Groups {
	g.Blacklist = mask(groups)
	return g
}

func (g Groups) CanInteractWith(o Groups) bool {
	return g.Membership&o.Whitelist != 0 &&
		o.Membership&g.Whitelist != 0 &&
		g.Membership&o.Blacklist == 0 &&
		o.Membership&g.Blacklist == 0
}

func mask(groups []uint) uint32 {
	var m uint32
	for _, n := range groups {
		if n < 32 {
			m |= 1 << n
		}
	}
	return m
}

// QueryKind selects which event stream an interacting pair reports on.
type QueryKind uint8

const (
	QueryContacts QueryKind = iota
	QueryProximity
)

func (k QueryKind) String() string {
	if k == QueryProximity {
		return "proximity"
	}
	return "contacts"
}

// Query is the geometric query an object takes part in. Margin widens the
// overlap test so that near-touching pairs already count.
type Query struct {
	Kind   QueryKind
	Margin float64
}

func Contacts(margin float64) Query  { return Query{Kind: QueryContacts, Margin: margin} }
func Proximity(margin float64) Query { return Query{Kind: QueryProximity, Margin: margin} }
