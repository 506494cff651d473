package geo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Coord is a WGS84 coordinate pair.
type Coord struct {
	Latitude  float64
	Longitude float64
}

// IGeocoder resolves a street address to coordinates. A nil result means the
// address could not be resolved; geocoding failures are never fatal.
type IGeocoder interface {
	Geocode(ctx context.Context, address string) *Coord
}

// vworldGeocoder calls the VWorld address search API.
type vworldGeocoder struct {
	client *resty.Client
	apiKey string
	logger *zap.Logger
}

// NewVWorldGeocoder creates a geocoder backed by the VWorld API.
func NewVWorldGeocoder(baseURL, apiKey string, logger *zap.Logger) IGeocoder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)
	return &vworldGeocoder{
		client: client,
		apiKey: apiKey,
		logger: logger,
	}
}

type vworldResponse struct {
	Response struct {
		Status string `json:"status"`
		Result *struct {
			Point *struct {
				X string `json:"x"` // longitude
				Y string `json:"y"` // latitude
			} `json:"point"`
		} `json:"result"`
	} `json:"response"`
}

func (g *vworldGeocoder) Geocode(ctx context.Context, address string) *Coord {
	var body vworldResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"service": "address",
			"request": "GetCoord",
			"version": "2.0",
			"format":  "json",
			"crs":     "epsg:4326",
			"type":    "ROAD",
			"refine":  "true",
			"simple":  "false",
			"address": address,
			"key":     g.apiKey,
		}).
		SetResult(&body).
		Get("/req/address")
	if err != nil {
		g.logger.Warn("geocoding request failed", zap.String("address", address), zap.Error(err))
		return nil
	}
	if resp.IsError() {
		g.logger.Warn("geocoding request rejected",
			zap.String("address", address),
			zap.Int("status", resp.StatusCode()))
		return nil
	}
	if !strings.EqualFold(body.Response.Status, "OK") {
		g.logger.Info("address not resolved",
			zap.String("address", address),
			zap.String("status", body.Response.Status))
		return nil
	}
	result := body.Response.Result
	if result == nil || result.Point == nil {
		return nil
	}

	lon, err := strconv.ParseFloat(result.Point.X, 64)
	if err != nil {
		g.logger.Warn("geocoding returned malformed longitude", zap.String("x", result.Point.X))
		return nil
	}
	lat, err := strconv.ParseFloat(result.Point.Y, 64)
	if err != nil {
		g.logger.Warn("geocoding returned malformed latitude", zap.String("y", result.Point.Y))
		return nil
	}
	return &Coord{Latitude: lat, Longitude: lon}
}
