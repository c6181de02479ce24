package domain

type Flight struct {
	ID            int64  `json:"flight_id"`
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
}

// Route is the ordered (departure, arrival) pair of cities.
type Route struct {
	DepartureCity string
	ArrivalCity   string
}

func (f Flight) Route() Route {
	return Route{DepartureCity: f.DepartureCity, ArrivalCity: f.ArrivalCity}
}

// SameRoute compares city fields only, the id is ignored.
func (f Flight) SameRoute(other Flight) bool {
	return f.Route() == other.Route()
}
