// Package mapdata reads district-level risk for the map panel and bridges
// map clicks back into the conversation.
package mapdata

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jalrakshak/jalrakshak-go/internal/config"
	"github.com/jalrakshak/jalrakshak-go/internal/logger"
)

// District is one map marker: [lat, lon] plus the current risk category.
type District struct {
	Coords [2]float64 `json:"coords"`
	Risk   string     `json:"risk"`
}

// Client fetches the district risk map from the map data service. The data
// is consumed read-only and is not part of the session state.
type Client struct {
	r *resty.Client
}

// NewClient creates a map data client from service config.
func NewClient(cfg config.ServiceConfig) *Client {
	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	return &Client{r: r}
}

// Districts returns the current district risk map. When the service is
// unreachable it falls back to the static geography with unknown risk, so
// the map always renders.
func (c *Client) Districts(ctx context.Context) map[string]District {
	var out map[string]District
	resp, err := c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/map")
	if err != nil || resp.IsError() || len(out) == 0 {
		if err != nil {
			logger.L.Warn("map data fetch failed; using static geography", "error", err)
		} else {
			logger.L.Warn("map data fetch failed; using static geography", "status", resp.StatusCode())
		}
		return Static()
	}
	return out
}

// Static returns the fixed Tamil Nadu district geography with risk set to
// Unknown for every district.
func Static() map[string]District {
	out := make(map[string]District, len(districtCoords))
	for name, coords := range districtCoords {
		out[name] = District{Coords: coords, Risk: "Unknown"}
	}
	return out
}

// Static geography for Tamil Nadu districts.
var districtCoords = map[string][2]float64{
	// Northern districts
	"Chennai":        {13.0827, 80.2707},
	"Tiruvallur":     {13.1230, 79.9120},
	"Kancheepuram":   {12.8342, 79.7036},
	"Chengalpattu":   {12.6841, 79.9836},
	"Vellore":        {12.9165, 79.1325},
	"Ranipet":        {12.9273, 79.3330},
	"Tirupathur":     {12.4920, 78.5670},
	"Tiruvannamalai": {12.2330, 79.0667},
	"Villupuram":     {11.9398, 79.4920},
	"Kallakurichi":   {11.7380, 78.9630},

	// West
	"Salem":       {11.6643, 78.1460},
	"Erode":       {11.3410, 77.7172},
	"Namakkal":    {11.2190, 78.1680},
	"Coimbatore":  {11.0168, 76.9558},
	"Tiruppur":    {11.1085, 77.3411},
	"Nilgiris":    {11.4100, 76.6950},
	"Dharmapuri":  {12.1277, 78.1578},
	"Krishnagiri": {12.5266, 78.2146},

	// Central
	"Tiruchirappalli": {10.7905, 78.7047},
	"Karur":           {10.9597, 78.0830},
	"Perambalur":      {11.2349, 78.8720},
	"Ariyalur":        {11.1400, 79.0780},
	"Pudukkottai":     {10.3800, 78.8200},
	"Thanjavur":       {10.7870, 79.1378},
	"Thiruvarur":      {10.7760, 79.6370},
	"Nagapattinam":    {10.7600, 79.8400},

	// South
	"Madurai":        {9.9252, 78.1198},
	"Dindigul":       {10.3673, 77.9803},
	"Theni":          {10.0104, 77.4768},
	"Virudhunagar":   {9.5680, 77.9624},
	"Sivagangai":     {9.8433, 78.4809},
	"Ramanathapuram": {9.3660, 78.8350},
	"Thoothukudi":    {8.7642, 78.1348},
	"Tirunelveli":    {8.7139, 77.7567},
	"Tenkasi":        {8.9660, 77.3000},
	"Kanniyakumari":  {8.0883, 77.5385},
}
