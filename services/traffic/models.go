package traffic

import (
	"strconv"
	"strings"
)

// ERPRate is one ERP charge.
type ERPRate struct {
	VehicleType   string  `json:"VehicleType"`
	DayType       string  `json:"DayType"`
	StartTime     string  `json:"StartTime"`
	EndTime       string  `json:"EndTime"`
	ZoneID        string  `json:"ZoneID" validate:"required"`
	ChargeAmount  float64 `json:"ChargeAmount"`
	EffectiveDate string  `json:"EffectiveDate"`
}

// CarPark is the availability of one lot type at a car park.
type CarPark struct {
	CarParkID     string `json:"CarParkID" validate:"required"`
	Area          string `json:"Area"`
	Development   string `json:"Development"`
	Location      string `json:"Location"` // "lat long"
	AvailableLots int    `json:"AvailableLots"`
	LotType       string `json:"LotType"`
	Agency        string `json:"Agency"`
}

// Coordinates parses Location.
func (c CarPark) Coordinates() (lat, long float64, ok bool) {
	parts := strings.Fields(c.Location)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(parts[0], 64)
	long, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, long, true
}

// TravelTime is the estimated time for one expressway segment.
type TravelTime struct {
	Name        string `json:"Name" validate:"required"`
	Direction   int    `json:"Direction"`
	FarEndPoint string `json:"FarEndPoint"`
	StartPoint  string `json:"StartPoint"`
	EndPoint    string `json:"EndPoint"`
	EstTime     int    `json:"EstTime"` // minutes
}

// FaultyTrafficLight is a traffic light outage.
type FaultyTrafficLight struct {
	AlarmID   string `json:"AlarmID" validate:"required"`
	NodeID    string `json:"NodeID"`
	Type      int    `json:"Type"` // 4 blackout, 13 flashing yellow
	StartDate string `json:"StartDate"`
	EndDate   string `json:"EndDate"`
	Message   string `json:"Message"`
}

// RoadEvent is a road opening or road work.
type RoadEvent struct {
	EventID   string `json:"EventID" validate:"required"`
	StartDate string `json:"StartDate"`
	EndDate   string `json:"EndDate"`
	SvcDept   string `json:"SvcDept"`
	RoadName  string `json:"RoadName"`
	Other     string `json:"Other"`
}

// TrafficImage is a traffic camera snapshot link.
type TrafficImage struct {
	CameraID  string  `json:"CameraID" validate:"required"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
	ImageLink string  `json:"ImageLink"`
}

// Incident is a reported road incident.
type Incident struct {
	Type      string  `json:"Type" validate:"required"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
	Message   string  `json:"Message"`
}

// SpeedBand is the speed band of one road link.
type SpeedBand struct {
	LinkID       string `json:"LinkID" validate:"required"`
	RoadName     string `json:"RoadName"`
	RoadCategory string `json:"RoadCategory"`
	SpeedBand    int    `json:"SpeedBand"`
	MinimumSpeed string `json:"MinimumSpeed"`
	MaximumSpeed string `json:"MaximumSpeed"`
	StartLon     string `json:"StartLon"`
	StartLat     string `json:"StartLat"`
	EndLon       string `json:"EndLon"`
	EndLat       string `json:"EndLat"`
}

// VMSMessage is the text on a variable message sign.
type VMSMessage struct {
	EquipmentID string  `json:"EquipmentID" validate:"required"`
	Latitude    float64 `json:"Latitude"`
	Longitude   float64 `json:"Longitude"`
	Message     string  `json:"Message"`
}

// BicycleParking is a bicycle rack location.
type BicycleParking struct {
	Description      string  `json:"Description" validate:"required"`
	Latitude         float64 `json:"Latitude"`
	Longitude        float64 `json:"Longitude"`
	RackType         string  `json:"RackType"`
	RackCount        int     `json:"RackCount"`
	ShelterIndicator string  `json:"ShelterIndicator"`
}

// Sheltered reports whether the racks are covered.
func (b BicycleParking) Sheltered() bool {
	return b.ShelterIndicator == "Y"
}
