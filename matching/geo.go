package matching

import (
	"math"
	"sort"

	"github.com/SOUNDAR42/medicare-backend/models"
	"gorm.io/gorm"
)

// nearbyRadiusKm bounds the fallback search when no hospital sits exactly at
// the requested pincode.
const nearbyRadiusKm = 50

// Haversine returns the great-circle distance in kilometers between two
// coordinates given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	lat1 = lat1 * math.Pi / 180
	lon1 = lon1 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// SearchByPincode finds hospitals at the given pincode. When none match
// exactly it falls back to hospitals within nearbyRadiusKm of the caller's
// origin, sorted nearest first. The returned message explains a fallback or
// an unresolvable search.
func SearchByPincode(db *gorm.DB, pincode int, origin *Coord) ([]models.Hospital, string, error) {
	var hospitals []models.Hospital
	if err := db.Where("pincode = ?", pincode).Order("hospital_id").Find(&hospitals).Error; err != nil {
		return nil, "", err
	}
	if len(hospitals) > 0 {
		return hospitals, "", nil
	}

	message := "No hospitals found exactly at this pincode. Searching for nearby hospitals."
	if origin == nil {
		return nil, message + " Could not determine a location for this pincode to find nearby hospitals.", nil
	}

	var candidates []models.Hospital
	if err := db.Where("latitude != 0 AND longitude != 0").Find(&candidates).Error; err != nil {
		return nil, "", err
	}

	type withDistance struct {
		hospital models.Hospital
		distance float64
	}
	var nearby []withDistance
	for _, h := range candidates {
		d := Haversine(origin.Latitude, origin.Longitude, h.Latitude, h.Longitude)
		if d <= nearbyRadiusKm {
			nearby = append(nearby, withDistance{hospital: h, distance: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].distance < nearby[j].distance
	})

	result := make([]models.Hospital, 0, len(nearby))
	for _, n := range nearby {
		result = append(result, n.hospital)
	}
	return result, message, nil
}
