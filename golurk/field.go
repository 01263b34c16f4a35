package golurk

import "github.com/samber/lo"

// Field holds battle wide conditions.
type Field struct {
	Weather      ID
	WeatherState *EffectState
	Terrain      ID
	TerrainState *EffectState
	// PseudoWeather are independent "room" style effects. A duration of 0 never times out.
	PseudoWeather []*EffectState
}

func (f *Field) PseudoWeatherState(id ID) *EffectState {
	state, _ := lo.Find(f.PseudoWeather, func(s *EffectState) bool {
		return s.ID == id
	})
	return state
}

func (f *Field) HasPseudoWeather(id ID) bool {
	return f.PseudoWeatherState(id) != nil
}

func (f *Field) IsWeather(ids ...ID) bool {
	return f.Weather != "" && lo.Contains(ids, f.Weather)
}

func (f *Field) IsTerrain(id ID) bool {
	return f.Terrain != "" && f.Terrain == id
}
