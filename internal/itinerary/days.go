package itinerary

import (
	"trip-decoder/internal/common"
	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
	"trip-decoder/internal/transport"
)

func (as *Assembler) dailyPlan(a document.Accessor, diags *diagnostic.Diagnostics) (DailyPlan, error) {
	key, ok := a.First("day", "dayNumber")
	if !ok {
		return DailyPlan{}, document.Missing(a.Sub("day"))
	}

	day, err := a.RequireInt(key)
	if err != nil {
		return DailyPlan{}, err
	}

	activities, err := collect(as, a, "activity", diags, as.activity, "activities")
	if err != nil {
		return DailyPlan{}, err
	}

	meals, err := collect(as, a, "meal", diags, as.meal, "meals")
	if err != nil {
		return DailyPlan{}, err
	}

	return DailyPlan{
		Day:        day,
		Date:       a.Time("date"),
		Title:      common.FirstNonBlank(a.String("title", ""), a.String("theme", "")),
		Location:   a.String("location", ""),
		Activities: activities,
		Meals:      meals,
		Notes:      a.String("notes", ""),
	}, nil
}

func (as *Assembler) activity(a document.Accessor, _ *diagnostic.Diagnostics) (Activity, error) {
	name := common.FirstNonBlank(a.String("name", ""), a.String("title", ""), a.String("activity", ""))
	if name == "" {
		return Activity{}, document.Missing(a.Sub("name"))
	}

	return Activity{
		Name:        name,
		Time:        a.Text("time", ""),
		Duration:    a.Text("duration", ""),
		Location:    a.String("location", ""),
		Description: a.String("description", ""),
		Cost:        as.costOf(a, "cost", "estimatedCost"),
		Booking:     transport.DecodeBooking(a),
	}, nil
}

func (as *Assembler) meal(a document.Accessor, _ *diagnostic.Diagnostics) (Meal, error) {
	return Meal{
		Type:       common.FirstNonBlank(a.String("type", ""), a.String("mealType", "")),
		Restaurant: common.FirstNonBlank(a.String("restaurant", ""), a.String("name", "")),
		Cuisine:    a.String("cuisine", ""),
		Cost:       as.costOf(a, "cost", "estimatedCost"),
	}, nil
}
