package model

// FilterName identifies a lens filter.
type FilterName string

const (
	// FilterNone means no filter compensation.
	FilterNone FilterName = "None"
	// FilterYellow is a one-stop yellow filter.
	FilterYellow FilterName = "Yellow"
	// FilterOrange is a two-stop orange filter.
	FilterOrange FilterName = "Orange"
	// FilterRed is a three-stop red filter.
	FilterRed FilterName = "Red"
)

// FilterOption is a reference entry for a filter and its exposure factor.
type FilterOption struct {
	Name  FilterName `json:"name"`
	Color string     `json:"color"`
	Stops int        `json:"stops"`
}

// Filters is the fixed filter list. None comes first.
var Filters = []FilterOption{
	{Name: FilterNone, Stops: 0, Color: "transparent"},
	{Name: FilterYellow, Stops: 1, Color: "#FFD700"},
	{Name: FilterOrange, Stops: 2, Color: "#FF8C00"},
	{Name: FilterRed, Stops: 3, Color: "#DC143C"},
}

// FindFilter looks up a filter by exact name. An empty name is None.
func FindFilter(name FilterName) (FilterOption, bool) {
	if name == "" {
		return Filters[0], true
	}
	for _, f := range Filters {
		if f.Name == name {
			return f, true
		}
	}
	return FilterOption{}, false
}
