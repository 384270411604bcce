package discovery

import (
	"math"
	"strconv"
	"strings"
)

const (
	MapStyle = "mapbox://styles/mapbox/light-v11"
	MapZoom  = 13
	MapPitch = 45

	// TokenPrompt replaces the map until a public token is supplied.
	TokenPrompt = "Enter your Mapbox public token to enable interactive shop discovery"
)

// LngLat is a [longitude, latitude] pair, the order map clients expect.
type LngLat [2]float64

// DefaultLocation is used whenever the visitor's position is unknown (Karachi).
var DefaultLocation = LngLat{67.0011, 24.8607}

// ParseLocation reads a client-reported coordinate. Anything missing or out of
// range falls back to DefaultLocation without error.
func ParseLocation(lng, lat string) LngLat {
	x, errX := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if errX != nil || errY != nil || !finite(x) || !finite(y) {
		return DefaultLocation
	}
	if x < -180 || x > 180 || y < -90 || y > 90 {
		return DefaultLocation
	}
	return LngLat{x, y}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarkerKind tells the visitor's own marker apart from shop markers.
type MarkerKind string

const (
	MarkerUser MarkerKind = "user"
	MarkerShop MarkerKind = "shop"
)

// Marker is a pin with its popup content.
type Marker struct {
	ID           string     `json:"id"`
	Kind         MarkerKind `json:"kind"`
	Name         string     `json:"name"`
	Category     string     `json:"category,omitempty"`
	Position     LngLat     `json:"position"`
	Rating       float64    `json:"rating,omitempty"`
	DeliveryTime string     `json:"delivery_time,omitempty"`
}

var shopMarkers = []Marker{
	{ID: "1", Kind: MarkerShop, Name: "Fresh Groceries", Category: "Grocery", Position: LngLat{67.0011, 24.8607}, Rating: 4.5, DeliveryTime: "15-25 min"},
	{ID: "2", Kind: MarkerShop, Name: "Pizza Palace", Category: "Restaurant", Position: LngLat{67.0031, 24.8647}, Rating: 4.2, DeliveryTime: "20-30 min"},
	{ID: "3", Kind: MarkerShop, Name: "Tech Store", Category: "Electronics", Position: LngLat{67.0051, 24.8587}, Rating: 4.8, DeliveryTime: "30-45 min"},
}

// MapView is what a map client needs to draw the shops around the visitor.
// Without a token only Prompt is set.
type MapView struct {
	Configured bool     `json:"configured"`
	Prompt     string   `json:"prompt,omitempty"`
	Token      string   `json:"token,omitempty"`
	Style      string   `json:"style,omitempty"`
	Center     LngLat   `json:"center"`
	Zoom       int      `json:"zoom,omitempty"`
	Pitch      int      `json:"pitch,omitempty"`
	Markers    []Marker `json:"markers,omitempty"`
}

// NewMapView centers the map on center and places the visitor and shop markers.
func NewMapView(token string, center LngLat) MapView {
	token = strings.TrimSpace(token)
	if token == "" {
		return MapView{Prompt: TokenPrompt, Center: center}
	}

	markers := make([]Marker, 0, len(shopMarkers)+1)
	markers = append(markers, Marker{ID: "me", Kind: MarkerUser, Name: "Your Location", Position: center})
	markers = append(markers, shopMarkers...)

	return MapView{
		Configured: true,
		Token:      token,
		Style:      MapStyle,
		Center:     center,
		Zoom:       MapZoom,
		Pitch:      MapPitch,
		Markers:    markers,
	}
}
