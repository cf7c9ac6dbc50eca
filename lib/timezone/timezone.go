package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Bogota")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Bogota because the portal renders dates
// in Colombian local time and our servers may end up elsewhere,
// which would skew anything derived from <time.Time>.Year()/Month()/Day()
func Now() time.Time {
	return time.Now().In(Location)
}
