package service

import (
	"context"

	"farmapi/internal/model"
)

// Weather lookups are stubbed: every location gets the same report.
const (
	weatherTemperature = 28
	weatherHumidity    = 65
	weatherConditions  = "Partly Cloudy"
	weatherAdvisory    = "Good time for irrigation 🌾"
)

func (s *assistantService) Weather(ctx context.Context, location string) (*model.WeatherReport, error) {
	if location == "" {
		return nil, validationError(MsgLocationRequired)
	}
	return &model.WeatherReport{
		Location:    location,
		Temperature: weatherTemperature,
		Humidity:    weatherHumidity,
		Conditions:  weatherConditions,
		Advisory:    weatherAdvisory,
	}, nil
}
