package weather

import (
	"github.com/pkg/errors"
)

// wttr.in j1 schema, reduced to what is read. Every scalar is a pointer so a
// missing key can be told apart from an empty value.

type document struct {
	CurrentCondition []currentCondition `json:"current_condition"`
	Weather          []day              `json:"weather"`
}

type currentCondition struct {
	TempC       *string `json:"temp_C"`
	Humidity    *string `json:"humidity"`
	WeatherDesc []value `json:"weatherDesc"`
	PrecipMM    *string `json:"precipMM"`
	Visibility  *string `json:"visibility"`
}

type day struct {
	Hourly []hourly `json:"hourly"`
}

type hourly struct {
	Time        *string `json:"time"`
	TempC       *string `json:"tempC"`
	WeatherDesc []value `json:"weatherDesc"`
}

type value struct {
	Value *string `json:"value"`
}

func required(field string, v *string) (string, error) {
	if v == nil {
		return "", errors.Errorf("missing %s", field)
	}
	return *v, nil
}

func description(field string, values []value) (string, error) {
	if len(values) == 0 {
		return "", errors.Errorf("missing %s", field)
	}
	return required(field, values[0].Value)
}

// report builds the summary, failing on the first absent field.
func (d *document) report(location string) (Report, error) {
	if len(d.CurrentCondition) == 0 {
		return Report{}, errors.New("missing current_condition")
	}
	cur := d.CurrentCondition[0]

	temp, err := required("current_condition.temp_C", cur.TempC)
	if err != nil {
		return Report{}, err
	}
	humidity, err := required("current_condition.humidity", cur.Humidity)
	if err != nil {
		return Report{}, err
	}
	condition, err := description("current_condition.weatherDesc", cur.WeatherDesc)
	if err != nil {
		return Report{}, err
	}
	precip, err := required("current_condition.precipMM", cur.PrecipMM)
	if err != nil {
		return Report{}, err
	}
	visibility, err := required("current_condition.visibility", cur.Visibility)
	if err != nil {
		return Report{}, err
	}

	if len(d.Weather) == 0 {
		return Report{}, errors.New("missing weather")
	}
	if d.Weather[0].Hourly == nil {
		return Report{}, errors.New("missing weather.hourly")
	}

	hours := d.Weather[0].Hourly
	if len(hours) > ForecastHours {
		hours = hours[:ForecastHours]
	}

	forecast := make([]Forecast, 0, len(hours))
	for i, h := range hours {
		entry, err := h.forecast()
		if err != nil {
			return Report{}, errors.Wrapf(err, "hourly[%d]", i)
		}
		forecast = append(forecast, entry)
	}

	return Report{
		Location:        location,
		TemperatureC:    temp + "°C",
		HumidityPct:     humidity + "%",
		Condition:       condition,
		PrecipitationMm: precip + " mm",
		VisibilityKm:    visibility + " km",
		Forecast:        forecast,
	}, nil
}

func (h hourly) forecast() (Forecast, error) {
	t, err := required("time", h.Time)
	if err != nil {
		return Forecast{}, err
	}
	temp, err := required("tempC", h.TempC)
	if err != nil {
		return Forecast{}, err
	}
	desc, err := description("weatherDesc", h.WeatherDesc)
	if err != nil {
		return Forecast{}, err
	}

	return Forecast{
		Hour:         t,
		TemperatureC: temp + "°C",
		Description:  desc,
	}, nil
}
