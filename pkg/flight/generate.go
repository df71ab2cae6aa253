// pkg/flight/generate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	"fmt"

	"github.com/mmp/skymap/pkg/math"
	"github.com/mmp/skymap/pkg/rand"
)

type Airport struct {
	Code string
	Name string
}

type Airline struct {
	Name  string
	Code  string
	Color string
}

// Region is an area around which simulated traffic is spawned.
type Region struct {
	Name   string
	Center math.Point2LL
	Count  int
}

var Airports = []Airport{
	{"LHR", "London Heathrow"}, {"JFK", "New York JFK"}, {"LAX", "Los Angeles"},
	{"DXB", "Dubai"}, {"SIN", "Singapore"}, {"HKG", "Hong Kong"},
	{"CDG", "Paris CDG"}, {"FRA", "Frankfurt"}, {"SYD", "Sydney"},
	{"NRT", "Tokyo Narita"}, {"ICN", "Seoul Incheon"}, {"DEL", "Delhi"},
	{"BOM", "Mumbai"}, {"GRU", "São Paulo"}, {"EZE", "Buenos Aires"},
	{"JNB", "Johannesburg"}, {"CAI", "Cairo"}, {"IST", "Istanbul"},
	{"SVO", "Moscow"}, {"PEK", "Beijing"}, {"PVG", "Shanghai"},
	{"BKK", "Bangkok"}, {"KUL", "Kuala Lumpur"}, {"CGK", "Jakarta"},
	{"MNL", "Manila"}, {"MEX", "Mexico City"}, {"YYZ", "Toronto"},
	{"YVR", "Vancouver"}, {"ORD", "Chicago"}, {"ATL", "Atlanta"},
	{"DFW", "Dallas"}, {"MIA", "Miami"}, {"SEA", "Seattle"},
	{"SFO", "San Francisco"}, {"AKL", "Auckland"}, {"PER", "Perth"},
}

var Airlines = []Airline{
	{"Emirates", "EK", "#d71921"},
	{"Delta", "DL", "#003a70"},
	{"United", "UA", "#0076bd"},
	{"British Airways", "BA", "#075aaa"},
	{"Lufthansa", "LH", "#f9b700"},
	{"Air France", "AF", "#002157"},
	{"Qatar Airways", "QR", "#5c0632"},
	{"Singapore Airlines", "SQ", "#f4c443"},
	{"Cathay Pacific", "CX", "#00645b"},
	{"Qantas", "QF", "#e0001b"},
	{"ANA", "NH", "#19428c"},
	{"Turkish Airlines", "TK", "#c60c30"},
}

var AircraftTypes = []string{
	"Boeing 777-300ER", "Airbus A380-800", "Boeing 787-9", "Airbus A350-900",
	"Boeing 737-800", "Airbus A320-200", "Boeing 747-8", "Airbus A330-300",
}

// Note: Point2LL is longitude, latitude.
var Regions = []Region{
	{"New York", math.Point2LL{-74.0, 40.7}, 8},
	{"Los Angeles", math.Point2LL{-118.2, 34.0}, 7},
	{"Chicago", math.Point2LL{-87.6, 41.8}, 6},
	{"Atlanta", math.Point2LL{-84.3, 33.9}, 5},
	{"Seattle", math.Point2LL{-122.3, 47.6}, 4},
	{"Houston", math.Point2LL{-95.3, 29.7}, 5},
	{"Toronto", math.Point2LL{-79.6, 43.6}, 5},
	{"Vancouver", math.Point2LL{-123.1, 49.2}, 4},
	{"Mexico City", math.Point2LL{-99.1, 19.4}, 6},

	{"London", math.Point2LL{-0.1, 51.5}, 7},
	{"Paris", math.Point2LL{2.3, 48.8}, 6},
	{"Frankfurt", math.Point2LL{8.7, 50.1}, 6},
	{"Rome", math.Point2LL{12.5, 41.9}, 5},
	{"Madrid", math.Point2LL{-3.7, 40.4}, 5},
	{"Stockholm", math.Point2LL{18.0, 59.3}, 4},

	{"Tokyo", math.Point2LL{139.7, 35.6}, 8},
	{"Beijing", math.Point2LL{116.4, 39.9}, 8},
	{"Shanghai", math.Point2LL{121.5, 31.2}, 7},
	{"Hong Kong", math.Point2LL{114.2, 22.3}, 6},
	{"Seoul", math.Point2LL{126.9, 37.5}, 6},
	{"Singapore", math.Point2LL{103.8, 1.3}, 7},
	{"Bangkok", math.Point2LL{100.5, 13.7}, 6},
	{"Delhi", math.Point2LL{77.2, 28.6}, 7},
	{"Mumbai", math.Point2LL{72.8, 19.0}, 6},
	{"Dubai", math.Point2LL{55.3, 25.2}, 8},

	{"Istanbul", math.Point2LL{28.9, 41.0}, 6},
	{"Cairo", math.Point2LL{31.2, 30.0}, 5},
	{"Johannesburg", math.Point2LL{28.0, -26.2}, 5},
	{"Nairobi", math.Point2LL{36.8, -1.2}, 4},

	{"São Paulo", math.Point2LL{-46.6, -23.5}, 7},
	{"Buenos Aires", math.Point2LL{-58.4, -34.6}, 5},
	{"Bogotá", math.Point2LL{-74.0, 4.7}, 4},

	{"Sydney", math.Point2LL{151.2, -33.8}, 7},
	{"Melbourne", math.Point2LL{144.9, -37.8}, 5},
	{"Auckland", math.Point2LL{174.7, -36.8}, 4},

	{"Moscow", math.Point2LL{37.6, 55.7}, 6},
	{"Almaty", math.Point2LL{76.8, 43.2}, 4},

	{"Honolulu", math.Point2LL{-157.8, 21.3}, 3},
	{"Guam", math.Point2LL{144.7, 13.4}, 3},

	{"Bermuda", math.Point2LL{-64.7, 32.2}, 3},
	{"Reykjavik", math.Point2LL{-21.9, 64.1}, 3},

	{"Manila", math.Point2LL{121.0, 14.5}, 5},
	{"Jakarta", math.Point2LL{106.8, -6.2}, 5},
	{"Kuala Lumpur", math.Point2LL{101.6, 3.1}, 5},
}

const (
	regionLatitudeJitter  = 5
	regionLongitudeJitter = 7.5
)

// TotalFlights returns the number of flights Generate returns.
func TotalFlights() int {
	n := 0
	for _, r := range Regions {
		n += r.Count
	}
	return n
}

// Generate returns a set of simulated flights spread around the traffic
// regions. The flights are a deterministic function of the state of r.
func Generate(r *rand.Rand) []Flight {
	flights := make([]Flight, 0, TotalFlights())

	for _, region := range Regions {
		for range region.Count {
			airline := rand.SampleSlice(r, Airlines)
			origin := rand.SampleSlice(r, Airports)
			destination := rand.SampleSlice(r, Airports)
			aircraft := rand.SampleSlice(r, AircraftTypes)

			pos := math.Point2LL{
				region.Center[0] + r.Uniform(-regionLongitudeJitter, regionLongitudeJitter),
				region.Center[1] + r.Uniform(-regionLatitudeJitter, regionLatitudeJitter),
			}

			depHour, depMin := r.Intn(24), r.Intn(60)
			duration := r.Intn(10) + 2
			arrHour, arrMin := (depHour+duration)%24, (depMin+r.Intn(60))%60

			flights = append(flights, Flight{
				ID:           fmt.Sprintf("FL%d", len(flights)+1),
				Heading:      r.Uniform(0, 360),
				Altitude:     r.Intn(35000) + 10000,
				Callsign:     fmt.Sprintf("%s%d", airline.Code, r.Intn(900)+100),
				Origin:       origin.Code,
				Destination:  destination.Code,
				Speed:        r.Intn(150) + 450,
				Aircraft:     aircraft,
				FlightTime:   fmt.Sprintf("%dh %dm", duration, r.Intn(60)),
				Airline:      airline.Name,
				AirlineColor: airline.Color,
				Position:     pos,
				Departure:    fmt.Sprintf("%02d:%02d", depHour, depMin),
				Arrival:      fmt.Sprintf("%02d:%02d", arrHour, arrMin),
			})
		}
	}

	return flights
}
