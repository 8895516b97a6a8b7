package bus

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Operator codes.
const (
	OperatorSBST = "SBST" // SBS Transit
	OperatorSMRT = "SMRT" // SMRT Corporation
	OperatorTTS  = "TTS"  // Tower Transit Singapore
	OperatorGAS  = "GAS"  // Go Ahead Singapore
)

// Load describes how full a bus is.
const (
	LoadSeatsAvailable    = "SEA"
	LoadStandingAvailable = "SDA"
	LoadLimitedStanding   = "LSD"
)

// Vehicle types.
const (
	TypeSingleDeck = "SD"
	TypeDoubleDeck = "DD"
	TypeBendy      = "BD"
)

// FeatureWheelchair marks a wheelchair-accessible bus.
const FeatureWheelchair = "WAB"

// Arrival is the arrival board for one bus stop.
type Arrival struct {
	BusStopCode string           `json:"BusStopCode" validate:"required"`
	Services    []ArrivalService `json:"Services" validate:"required,dive"`
}

// ArrivalService is one service calling at the stop and its next three buses.
type ArrivalService struct {
	ServiceNo string  `json:"ServiceNo" validate:"required"`
	Operator  string  `json:"Operator"`
	NextBus   NextBus `json:"NextBus"`
	NextBus2  NextBus `json:"NextBus2"`
	NextBus3  NextBus `json:"NextBus3"`
}

// Next returns the upcoming buses that carry an estimate.
func (s ArrivalService) Next() []NextBus {
	out := make([]NextBus, 0, 3)
	for _, nb := range []NextBus{s.NextBus, s.NextBus2, s.NextBus3} {
		if nb.EstimatedArrival != "" {
			out = append(out, nb)
		}
	}
	return out
}

// NextBus is a single upcoming bus. Fields are empty when no bus is expected.
type NextBus struct {
	OriginCode       string `json:"OriginCode"`
	DestinationCode  string `json:"DestinationCode"`
	EstimatedArrival string `json:"EstimatedArrival"`
	Monitored        int    `json:"Monitored"`
	Latitude         string `json:"Latitude"`
	Longitude        string `json:"Longitude"`
	VisitNumber      string `json:"VisitNumber"`
	Load             string `json:"Load"`
	Feature          string `json:"Feature"`
	Type             string `json:"Type"`
}

// Arrives parses EstimatedArrival.
func (n NextBus) Arrives() (time.Time, bool) {
	if n.EstimatedArrival == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, n.EstimatedArrival)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Position returns the bus location. ok is false when the service reports
// none, which it does as "0" or an empty string.
func (n NextBus) Position() (lat, long float64, ok bool) {
	lat, err1 := strconv.ParseFloat(n.Latitude, 64)
	long, err2 := strconv.ParseFloat(n.Longitude, 64)
	if err1 != nil || err2 != nil || (lat == 0 && long == 0) {
		return 0, 0, false
	}
	return lat, long, true
}

// Service is a bus service in one direction.
type Service struct {
	ServiceNo       string `json:"ServiceNo" validate:"required"`
	Operator        string `json:"Operator"`
	Direction       int    `json:"Direction"`
	Category        string `json:"Category"`
	OriginCode      string `json:"OriginCode"`
	DestinationCode string `json:"DestinationCode"`
	AMPeakFreq      string `json:"AM_Peak_Freq"`
	AMOffpeakFreq   string `json:"AM_Offpeak_Freq"`
	PMPeakFreq      string `json:"PM_Peak_Freq"`
	PMOffpeakFreq   string `json:"PM_Offpeak_Freq"`
	LoopDesc        string `json:"LoopDesc"`
}

// RouteStop is one stop along a service route.
type RouteStop struct {
	ServiceNo    string  `json:"ServiceNo" validate:"required"`
	Operator     string  `json:"Operator"`
	Direction    int     `json:"Direction"`
	StopSequence int     `json:"StopSequence"`
	BusStopCode  string  `json:"BusStopCode" validate:"required"`
	Distance     float64 `json:"Distance"`
	WDFirstBus   string  `json:"WD_FirstBus"`
	WDLastBus    string  `json:"WD_LastBus"`
	SATFirstBus  string  `json:"SAT_FirstBus"`
	SATLastBus   string  `json:"SAT_LastBus"`
	SUNFirstBus  string  `json:"SUN_FirstBus"`
	SUNLastBus   string  `json:"SUN_LastBus"`
}

// Stop is a bus stop.
type Stop struct {
	BusStopCode string  `json:"BusStopCode" validate:"required"`
	RoadName    string  `json:"RoadName"`
	Description string  `json:"Description"`
	Latitude    float64 `json:"Latitude"`
	Longitude   float64 `json:"Longitude"`
}

// Frequency is a dispatch interval range in minutes. Nil bounds mean the
// service does not report one.
type Frequency struct {
	Min *int
	Max *int
}

// ParseFrequency parses the service's frequency strings: "12-15", "10",
// "-" or "".
func ParseFrequency(s string) (Frequency, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return Frequency{}, nil
	}

	lo, hi, found := strings.Cut(s, "-")
	minV, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Frequency{}, fmt.Errorf("parse frequency %q: %w", s, err)
	}
	f := Frequency{Min: &minV}
	if !found || strings.TrimSpace(hi) == "" {
		return f, nil
	}
	maxV, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Frequency{}, fmt.Errorf("parse frequency %q: %w", s, err)
	}
	f.Max = &maxV
	return f, nil
}
