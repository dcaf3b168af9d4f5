package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

const mapBaseURL = "https://www.google.com/maps/dir/"

// BuildTourURL concatenates "lat,lng" waypoints in the order given. Stops
// are visited in store iteration order; no route optimization happens here.
func BuildTourURL(stops []model.Food) string {
	waypoints := make([]string, 0, len(stops))
	for _, s := range stops {
		if s.Coordinates == nil {
			continue
		}
		waypoints = append(waypoints,
			strconv.FormatFloat(s.Coordinates.Lat, 'f', -1, 64)+","+
				strconv.FormatFloat(s.Coordinates.Lng, 'f', -1, 64))
	}
	return mapBaseURL + strings.Join(waypoints, "/")
}

// foodTour assembles a tour from every coordinate-bearing food record. Fewer
// than two qualifying stops yields a plain-text apology, not an error.
func (o *Orchestrator) foodTour(ctx context.Context) (*model.Message, error) {
	foods, err := o.store.ListFoods(ctx)
	if err != nil {
		return nil, err
	}

	var stops []model.Food
	for _, f := range foods {
		if f.Coordinates != nil {
			stops = append(stops, f)
		}
	}
	if len(stops) < 2 {
		logx.Debug().Int("stops", len(stops)).Msg("not enough located foods for a tour")
		return model.NewTextMessage(tourApology), nil
	}

	tour := model.FoodTour{
		Title:  fmt.Sprintf("Your Dynamic %s Food Tour!", o.prompt.CityName),
		Stops:  make([]model.TourStop, 0, len(stops)),
		MapURL: BuildTourURL(stops),
	}
	for _, s := range stops {
		tour.Stops = append(tour.Stops, model.TourStop{
			Meal:       s.Type,
			Name:       s.Name,
			Restaurant: s.Restaurant,
		})
	}
	return model.NewFoodTourMessage(tour), nil
}
