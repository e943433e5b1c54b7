package matching

import (
	"fmt"
	"strings"
)

// RegionTable maps a country name to the id of the region it belongs to.
type RegionTable map[string]string

const (
	RegionEastAfrica     = "east_africa"
	RegionWestAfrica     = "west_africa"
	RegionSouthernAfrica = "southern_africa"
)

// DefaultRegions returns the built-in country groupings.
func DefaultRegions() RegionTable {
	t := RegionTable{}
	t.Add(RegionEastAfrica, "Kenya", "Uganda", "Tanzania", "Rwanda", "Burundi")
	t.Add(RegionWestAfrica, "Nigeria", "Ghana", "Senegal", "Ivory Coast")
	t.Add(RegionSouthernAfrica, "South Africa", "Zambia", "Zimbabwe", "Botswana")
	return t
}

// Add assigns countries to a region, overriding any previous assignment.
func (t RegionTable) Add(region string, countries ...string) {
	for _, c := range countries {
		c = strings.TrimSpace(c)
		if c != "" {
			t[c] = region
		}
	}
}

// SameRegion reports whether both countries are known and grouped together.
func (t RegionTable) SameRegion(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ra, ok := t[a]
	if !ok {
		return false
	}
	rb, ok := t[b]
	return ok && ra == rb
}

// ParseRegions reads a table from the compact form
// "east_africa:Kenya|Uganda;west_africa:Nigeria|Ghana".
func ParseRegions(s string) (RegionTable, error) {
	t := RegionTable{}
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		region, countries, ok := strings.Cut(group, ":")
		region = strings.TrimSpace(region)
		if !ok || region == "" {
			return nil, fmt.Errorf("invalid region group %q", group)
		}
		t.Add(region, strings.Split(countries, "|")...)
	}
	return t, nil
}
