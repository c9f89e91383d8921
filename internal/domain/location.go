package domain

// Geographic position of an activity, in raw degrees.
// No projection is applied; distance strategies decide how to interpret it.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Country groups the regions a traveller can plan a trip in.
type Country struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Code    string   `json:"code"`
	Flag    string   `json:"flag"`
	Regions []Region `json:"regions"`
}

// Region is the unit of planning: days, catalog lookups and backfill all
// scope to a single region.
type Region struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CountryID         string     `json:"countryId"`
	Coordinates       [2]float64 `json:"coordinates"`
	PopularActivities []Category `json:"popularActivities"`
}

// Clone returns a copy that shares no slices with r.
func (r Region) Clone() Region {
	out := r
	if r.PopularActivities != nil {
		out.PopularActivities = append([]Category(nil), r.PopularActivities...)
	}
	return out
}
