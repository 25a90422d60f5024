// Package matching ranks candidate hospitals for a patient once triage has
// assessed urgency. Eligibility comes from affiliation state: only doctors
// with an accepted affiliation count toward a hospital's offer.
package matching

import (
	"sort"

	"github.com/SOUNDAR42/medicare-backend/models"
	"gorm.io/gorm"
)

type Preference string

const (
	PreferenceCost     Preference = "cost"
	PreferenceDistance Preference = "distance"
)

// Coord is a caller-supplied origin for distance ranking.
type Coord struct {
	Latitude  float64
	Longitude float64
}

type RankedHospital struct {
	models.Hospital
	MeanFee     float64 `json:"mean_fee"`
	DoctorCount int     `json:"doctor_count"`
	DistanceKm  float64 `json:"distance_km"`
}

// Rank orders hospitals by the given preference. A hospital's representative
// cost is the arithmetic mean of the fees of its accepted doctors, computed
// live from current affiliations. Hospitals with no accepted doctor are
// excluded entirely. Under cost preference a mean fee of exactly 0 means the
// cost is unknown and sorts last; ties keep their original order.
func Rank(db *gorm.DB, preference Preference, origin *Coord) ([]RankedHospital, error) {
	var hospitals []models.Hospital
	if err := db.Order("hospital_id").Find(&hospitals).Error; err != nil {
		return nil, err
	}

	var affiliations []models.Affiliation
	if err := db.Where("state = ?", models.AffiliationAccepted).Find(&affiliations).Error; err != nil {
		return nil, err
	}

	type feeAgg struct {
		total float64
		count int
	}
	fees := make(map[uint]*feeAgg)
	for _, a := range affiliations {
		agg, ok := fees[a.HospitalID]
		if !ok {
			agg = &feeAgg{}
			fees[a.HospitalID] = agg
		}
		agg.total += float64(a.Fee)
		agg.count++
	}

	ranked := make([]RankedHospital, 0, len(hospitals))
	for _, h := range hospitals {
		agg, ok := fees[h.HospitalID]
		if !ok || agg.count == 0 {
			continue
		}
		entry := RankedHospital{
			Hospital:    h,
			MeanFee:     agg.total / float64(agg.count),
			DoctorCount: agg.count,
		}
		if origin != nil {
			entry.DistanceKm = Haversine(origin.Latitude, origin.Longitude, h.Latitude, h.Longitude)
		}
		ranked = append(ranked, entry)
	}

	switch preference {
	case PreferenceCost:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].MeanFee == 0 {
				return false
			}
			if ranked[j].MeanFee == 0 {
				return true
			}
			return ranked[i].MeanFee < ranked[j].MeanFee
		})
	case PreferenceDistance:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		})
	}

	return ranked, nil
}
