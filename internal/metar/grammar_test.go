package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindField(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Wind
		wantOK bool
	}{
		{name: "calm", input: "00000KT", want: Wind{Unit: "KT"}, wantOK: true},
		{name: "light", input: "00001KT", want: Wind{Speed: Speed{Value: 1}, Unit: "KT"}, wantOK: true},
		{name: "steady", input: "24008KT", want: Wind{Direction: Direction{Degrees: 240}, Speed: Speed{Value: 8}, Unit: "KT"}, wantOK: true},
		{name: "variable", input: "VRB02KT", want: Wind{Direction: Direction{Marker: "VRB"}, Speed: Speed{Value: 2}, Unit: "KT"}, wantOK: true},
		{name: "not observed", input: "/////KT", want: Wind{Direction: Direction{Marker: "///"}, Speed: Speed{Marker: "//"}, Unit: "KT"}, wantOK: true},
		{
			name:   "three digit speed with gust",
			input:  "270105G130KMH",
			want:   Wind{Direction: Direction{Degrees: 270}, Speed: Speed{Value: 105}, Gust: &Speed{Value: 130}, Unit: "KMH"},
			wantOK: true,
		},
		{
			name:   "above range",
			input:  "240P49GP60KT",
			want:   Wind{Direction: Direction{Degrees: 240}, Speed: Speed{Value: 49, Above: true}, Gust: &Speed{Value: 60, Above: true}, Unit: "KT"},
			wantOK: true,
		},
		{
			name:  "variable sector",
			input: "31015G27MPS 280V350",
			want: Wind{
				Direction:    Direction{Degrees: 310},
				Speed:        Speed{Value: 15},
				Gust:         &Speed{Value: 27},
				Unit:         "MPS",
				VariableFrom: intPtr(280),
				VariableTo:   intPtr(350),
			},
			wantOK: true,
		},
		{name: "direction out of range", input: "37010KT", wantOK: false},
		{name: "missing unit", input: "24008", wantOK: false},
		{name: "glued to next group", input: "24008KT9999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, rest := windField(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name == "variable", got.Direction.Variable())
			if ok {
				assert.Empty(t, rest)
			} else {
				assert.Equal(t, tt.input, rest)
			}
		})
	}
}

func TestVisibilityField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Visibility
		wantOK   bool
		wantRest string
	}{
		{name: "ten kilometres or more", input: "9999", want: Visibility{Distance: 10000}, wantOK: true},
		{name: "verbatim", input: "0800", want: Visibility{Distance: 800}, wantOK: true},
		{name: "no directional variation", input: "4000NDV", want: Visibility{Distance: 4000, NDV: true}, wantOK: true},
		{
			name:   "minimum with direction",
			input:  "6000 1200NW",
			want:   Visibility{Distance: 6000, MinDistance: intPtr(1200), MinDirection: "NW"},
			wantOK: true,
		},
		{name: "minimum needs a direction", input: "6000 1200", want: Visibility{Distance: 6000}, wantOK: true, wantRest: " 1200"},
		{name: "three digits", input: "999", wantRest: "999"},
		{name: "statute miles", input: "10SM", wantRest: "10SM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, rest := visibilityField(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestRVRField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []RunwayVisualRange
	}{
		{
			name:  "plain",
			input: "R01/0250",
			want:  []RunwayVisualRange{{Runway: "01", Distance: 250}},
		},
		{
			name:  "modifiers variation and tendency",
			input: "R01/M0250VP0500U",
			want: []RunwayVisualRange{{
				Runway:            "01",
				Distance:          250,
				Modifier:          "M",
				Variation:         intPtr(500),
				VariationModifier: "P",
				Tendency:          "U",
			}},
		},
		{
			name:  "several runways in order",
			input: "R27L/1200N R27R/P2000 R09C/0600D",
			want: []RunwayVisualRange{
				{Runway: "27L", Distance: 1200, Tendency: "N"},
				{Runway: "27R", Distance: 2000, Modifier: "P"},
				{Runway: "09C", Distance: 600, Tendency: "D"},
			},
		},
		{name: "none", input: "FEW011", want: []RunwayVisualRange{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, _ := rvrField(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhenomenaFields(t *testing.T) {
	tests := []struct {
		name     string
		field    func(string) (Phenomena, bool, string)
		input    string
		want     Phenomena
		wantOK   bool
		wantRest string
	}{
		{name: "heavy rain and snow", field: precipitationField, input: "+RASN", want: Phenomena{Intensity: "+", Codes: []string{"RA", "SN"}}, wantOK: true},
		{name: "separate tokens", field: precipitationField, input: "+RA SN", want: Phenomena{Intensity: "+", Codes: []string{"RA"}}, wantOK: true, wantRest: " SN"},
		{name: "moderate drizzle", field: precipitationField, input: "DZ BR", want: Phenomena{Codes: []string{"DZ"}}, wantOK: true, wantRest: " BR"},
		{name: "freezing rain", field: precipitationField, input: "-FZRA", want: Phenomena{Intensity: "-", Codes: []string{"FZRA"}}, wantOK: true},
		{name: "showers in the vicinity are not precipitation", field: precipitationField, input: "VCSH", wantRest: "VCSH"},
		{name: "intensity alone", field: precipitationField, input: "+ FEW011", wantRest: "+ FEW011"},
		{name: "unknown code glued on", field: precipitationField, input: "RAXX", wantRest: "RAXX"},
		{name: "showers in the vicinity", field: otherField, input: "VCSH", want: Phenomena{Intensity: "VC", Codes: []string{"SH"}}, wantOK: true},
		{name: "thunderstorm", field: otherField, input: "TS SCT030CB", want: Phenomena{Codes: []string{"TS"}}, wantOK: true, wantRest: " SCT030CB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, rest := tt.field(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseClouds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     *CloudCover
		wantRest string
	}{
		{
			name:  "layers with types",
			input: "FEW008 SCT015TCU BKN030CB OVC///",
			want: &CloudCover{Layers: []Cloud{
				{Amount: "FEW", Height: 800},
				{Amount: "SCT", Height: 1500, Type: "TCU"},
				{Amount: "BKN", Height: 3000, Type: "CB"},
				{Amount: "OVC", Height: -1},
			}},
		},
		{
			name:  "at most four layers",
			input: "FEW005 FEW010 SCT020 BKN030 OVC040",
			want: &CloudCover{Layers: []Cloud{
				{Amount: "FEW", Height: 500},
				{Amount: "FEW", Height: 1000},
				{Amount: "SCT", Height: 2000},
				{Amount: "BKN", Height: 3000},
			}},
			wantRest: " OVC040",
		},
		{name: "vertical visibility", input: "VV003", want: &CloudCover{VerticalVisibility: intPtr(300)}},
		{name: "vertical visibility not observed", input: "VV///", want: &CloudCover{VerticalVisibility: intPtr(-1)}},
		{name: "sky clear", input: "SKC", want: &CloudCover{SkyClear: "SKC"}},
		{name: "layers take priority", input: "FEW020 VV001", want: &CloudCover{Layers: []Cloud{{Amount: "FEW", Height: 2000}}}, wantRest: " VV001"},
		{name: "none", input: "12/10", wantRest: "12/10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := parseClouds(nil, tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestTemperatureAndPressure(t *testing.T) {
	temp, ok, _ := temperatureField("M05/M12")
	require.True(t, ok)
	assert.Equal(t, Temperature{Air: -5, DewPoint: -12}, temp)

	temp, ok, _ = temperatureField("00/M00")
	require.True(t, ok)
	assert.Equal(t, Temperature{}, temp)

	_, ok, _ = temperatureField("5/3")
	assert.False(t, ok)

	qnh, ok, _ := pressureField("Q0998")
	require.True(t, ok)
	assert.Equal(t, 998, qnh)

	_, ok, _ = pressureField("A2992")
	assert.False(t, ok)
}

func TestParseSupplementary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Supplementary
		wantRest string
	}{
		{name: "none", input: "NOSIG", wantRest: "NOSIG"},
		{name: "recent thunderstorm with rain", input: "RETSRA", want: Supplementary{RecentWeather: []string{"TSRA"}}},
		{
			name:  "several recent groups",
			input: "REFZDZ REBLSN RETS",
			want:  Supplementary{RecentWeather: []string{"FZDZ", "BLSN", "TS"}},
		},
		{name: "recent group ends at its token", input: "RERA BR", want: Supplementary{RecentWeather: []string{"RA"}}, wantRest: " BR"},
		{name: "other phenomenon after recent group", input: "RERA TS", want: Supplementary{RecentWeather: []string{"RA"}}, wantRest: " TS"},
		{name: "header without code blocks the rest", input: "RE W15/S2", wantRest: "RE W15/S2"},
		{name: "windshear all runways", input: "WS ALL RWY", want: Supplementary{Windshear: &Windshear{AllRunways: true}}},
		{
			name:  "windshear runway list",
			input: "WS R03 WS RWY21L",
			want:  Supplementary{Windshear: &Windshear{Runways: []string{"03", "21L"}}},
		},
		{name: "windshear without runway", input: "WS NOSIG", wantRest: "WS NOSIG"},
		{name: "negative sea temperature", input: "WM01/S3", want: Supplementary{SeaState: &SeaState{Temperature: -1, State: 3}}},
		{
			name:  "all three",
			input: "RERA WS R27L W12/S4 NOSIG",
			want: Supplementary{
				RecentWeather: []string{"RA"},
				Windshear:     &Windshear{Runways: []string{"27L"}},
				SeaState:      &SeaState{Temperature: 12, State: 4},
			},
			wantRest: " NOSIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := parseSupplementary(nil, tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
			assert.Nil(t, got.RunwayState)
		})
	}
}
