package transperth

import "time"

const LocationName = "Australia/Perth"

// Western Australia does not observe daylight saving.
var perthLocation = loadLocation()

func loadLocation() *time.Location {
	location, err := time.LoadLocation(LocationName)
	if err != nil {
		return time.FixedZone("AWST", 8*60*60)
	}

	return location
}

func Location() *time.Location {
	return perthLocation
}

// Now is the current wall clock time in Perth.
func Now() time.Time {
	return time.Now().In(perthLocation)
}
