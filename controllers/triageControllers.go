package controllers

import (
	"net/http"
	"strconv"

	"github.com/SOUNDAR42/medicare-backend/configuration"
	"github.com/SOUNDAR42/medicare-backend/matching"
	"github.com/SOUNDAR42/medicare-backend/triage"
	"github.com/gin-gonic/gin"
)

// CheckSymptoms runs the triage classifier over a free-text symptom report
func CheckSymptoms(c *gin.Context) {
	var req struct {
		Symptoms string `json:"symptoms"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := triage.Classify(req.Symptoms)
	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Symptoms analyzed successfully",
		"data":    result,
	})
}

// RankHospitals orders candidate hospitals by cost or distance preference.
// Distance ranking needs lat/lon query parameters for the caller's origin.
func RankHospitals(c *gin.Context) {
	preference := matching.Preference(c.DefaultQuery("preference", string(matching.PreferenceDistance)))
	if preference != matching.PreferenceCost && preference != matching.PreferenceDistance {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preference must be cost or distance"})
		return
	}

	var origin *matching.Coord
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr != "" && lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lon"})
			return
		}
		origin = &matching.Coord{Latitude: lat, Longitude: lon}
	}
	if preference == matching.PreferenceDistance && origin == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "distance preference requires lat and lon"})
		return
	}

	ranked, err := matching.Rank(configuration.DB, preference, origin)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Hospitals ranked successfully",
		"data":    ranked,
	})
}

// SearchHospitals looks hospitals up by pincode with a nearby fallback
func SearchHospitals(c *gin.Context) {
	pincode, err := strconv.Atoi(c.Query("pincode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pincode format"})
		return
	}

	var origin *matching.Coord
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr != "" && lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat == nil && errLon == nil {
			origin = &matching.Coord{Latitude: lat, Longitude: lon}
		}
	}

	hospitals, message, err := matching.SearchByPincode(configuration.DB, pincode, origin)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": message,
		"data":    hospitals,
	})
}
