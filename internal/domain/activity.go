package domain

// Category is the closed set of activity kinds known to the planner.
type Category string

const (
	CategoryHotel      Category = "hotel"
	CategoryBreakfast  Category = "breakfast"
	CategoryLunch      Category = "lunch"
	CategoryDinner     Category = "dinner"
	CategoryCafe       Category = "cafe"
	CategoryTemple     Category = "temple"
	CategoryMuseum     Category = "museum"
	CategoryPark       Category = "park"
	CategoryShopping   Category = "shopping"
	CategoryNightlife  Category = "nightlife"
	CategoryAttraction Category = "attraction"
	CategoryCulture    Category = "culture"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryHotel,
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryCafe,
	CategoryTemple,
	CategoryMuseum,
	CategoryPark,
	CategoryShopping,
	CategoryNightlife,
	CategoryAttraction,
	CategoryCulture,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Activity is catalog reference data.
//
// Catalog records are treated as immutable. When an activity is placed into a
// slot or a route it is copied with Clone, so the per-placement EstimatedCost
// override never leaks into the catalog or into another slot holding the same
// activity.
type Activity struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Duration      int      `json:"duration"` // minutes
	Rating        float64  `json:"rating"`
	PriceLevel    int      `json:"priceLevel"` // 1-4
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
	ImageURL      string   `json:"imageUrl"`
	ExternalURL   string   `json:"externalUrl"`
	Location      Location `json:"location"`
	Description   string   `json:"description"`
	RegionID      string   `json:"regionId"`
	Tags          []string `json:"tags"`
}

// Clone returns a value copy safe to mutate independently of a.
func (a Activity) Clone() Activity {
	out := a
	if a.EstimatedCost != nil {
		cost := *a.EstimatedCost
		out.EstimatedCost = &cost
	}
	if a.Tags != nil {
		out.Tags = append([]string(nil), a.Tags...)
	}
	return out
}

// WithCost returns a copy of a carrying the given cost override.
func (a Activity) WithCost(cost float64) Activity {
	out := a.Clone()
	out.EstimatedCost = &cost
	return out
}

// Cost returns the estimated cost, or zero when none was assigned.
func (a Activity) Cost() float64 {
	if a.EstimatedCost == nil {
		return 0
	}
	return *a.EstimatedCost
}

// CloneActivities copies every activity in list.
func CloneActivities(list []Activity) []Activity {
	if list == nil {
		return nil
	}
	out := make([]Activity, len(list))
	for i, a := range list {
		out[i] = a.Clone()
	}
	return out
}
