// Package config loads Parameters for the wave engine from two sources:
// named presets embedded in the binary (defaults.yaml, grounded on
// in-pack embed+YAML conventions), and JSON scene files describing one
// run's Parameters plus the times to propagate, following the shape of
// a classic scene-file loader: read, decode, validate, return.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blackencino/EncinoWaves/params"
	"github.com/blackencino/EncinoWaves/waverr"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DirectionalSpreadingConfig is the YAML/JSON mirror of
// params.DirectionalSpreadingConfig, with the kernel spelled by name.
type DirectionalSpreadingConfig struct {
	Type  string  `yaml:"type" json:"type"`
	Swell float64 `yaml:"swell" json:"swell"`
}

// FilterConfig is the YAML/JSON mirror of params.FilterConfig.
type FilterConfig struct {
	Type            string  `yaml:"type" json:"type"`
	SoftWidth       float64 `yaml:"soft_width" json:"soft_width"`
	SmallWavelength float64 `yaml:"small_wavelength" json:"small_wavelength"`
	BigWavelength   float64 `yaml:"big_wavelength" json:"big_wavelength"`
	Min             float64 `yaml:"min" json:"min"`
	Invert          bool    `yaml:"invert" json:"invert"`
}

// RandomConfig is the YAML/JSON mirror of params.RandomConfig.
type RandomConfig struct {
	Type string `yaml:"type" json:"type"`
	Seed int    `yaml:"seed" json:"seed"`
}

// ParametersConfig is the human-editable mirror of params.Parameters:
// every field the numeric kernels need, with enum selectors spelled as
// their String() names so YAML/JSON files stay readable.
type ParametersConfig struct {
	ResolutionPowerOfTwo int     `yaml:"resolution_power_of_two" json:"resolution_power_of_two"`
	Domain               float64 `yaml:"domain" json:"domain"`
	Gravity              float64 `yaml:"gravity" json:"gravity"`
	SurfaceTension       float64 `yaml:"surface_tension" json:"surface_tension"`
	Density              float64 `yaml:"density" json:"density"`
	Depth                float64 `yaml:"depth" json:"depth"`
	WindSpeed            float64 `yaml:"wind_speed" json:"wind_speed"`
	Fetch                float64 `yaml:"fetch" json:"fetch"`

	Pinch         float64 `yaml:"pinch" json:"pinch"`
	AmplitudeGain float64 `yaml:"amplitude_gain" json:"amplitude_gain"`

	TroughDamping                float64 `yaml:"trough_damping" json:"trough_damping"`
	TroughDampingSmallWavelength float64 `yaml:"trough_damping_small_wavelength" json:"trough_damping_small_wavelength"`
	TroughDampingBigWavelength   float64 `yaml:"trough_damping_big_wavelength" json:"trough_damping_big_wavelength"`
	TroughDampingSoftWidth       float64 `yaml:"trough_damping_soft_width" json:"trough_damping_soft_width"`

	MinClipE float64 `yaml:"min_clip_e" json:"min_clip_e"`
	MaxClipE float64 `yaml:"max_clip_e" json:"max_clip_e"`

	Dispersion           string                     `yaml:"dispersion" json:"dispersion"`
	Spectrum             string                     `yaml:"spectrum" json:"spectrum"`
	DirectionalSpreading DirectionalSpreadingConfig `yaml:"directional_spreading" json:"directional_spreading"`
	Filter               FilterConfig               `yaml:"filter" json:"filter"`
	Random               RandomConfig               `yaml:"random" json:"random"`
}

func parseDispersion(s string) (params.DispersionType, error) {
	switch s {
	case "Deep":
		return params.Deep, nil
	case "FiniteDepth":
		return params.FiniteDepth, nil
	case "Capillary":
		return params.Capillary, nil
	default:
		return 0, &waverr.InvalidParameters{Field: "dispersion", Value: s, Reason: "must be one of Deep, FiniteDepth, Capillary"}
	}
}

func parseSpectrum(s string) (params.SpectrumType, error) {
	switch s {
	case "PiersonMoskowitz":
		return params.PiersonMoskowitz, nil
	case "JONSWAP":
		return params.JONSWAP, nil
	case "TMA":
		return params.TMA, nil
	default:
		return 0, &waverr.InvalidParameters{Field: "spectrum", Value: s, Reason: "must be one of PiersonMoskowitz, JONSWAP, TMA"}
	}
}

func parseSpreading(s string) (params.DirectionalSpreadingType, error) {
	switch s {
	case "PosCosSquared":
		return params.PosCosSquared, nil
	case "Mitsuyasu":
		return params.Mitsuyasu, nil
	case "Hasselmann":
		return params.Hasselmann, nil
	case "DonelanBanner":
		return params.DonelanBanner, nil
	default:
		return 0, &waverr.InvalidParameters{Field: "directional_spreading.type", Value: s, Reason: "must be one of PosCosSquared, Mitsuyasu, Hasselmann, DonelanBanner"}
	}
}

func parseFilterType(s string) (params.FilterType, error) {
	switch s {
	case "", "NullFilter":
		return params.NullFilter, nil
	case "SmoothInvertibleBandPass":
		return params.SmoothInvertibleBandPass, nil
	default:
		return 0, &waverr.InvalidParameters{Field: "filter.type", Value: s, Reason: "must be one of NullFilter, SmoothInvertibleBandPass"}
	}
}

func parseRandomType(s string) (params.RandomType, error) {
	switch s {
	case "", "Normal":
		return params.Normal, nil
	case "LogNormal":
		return params.LogNormal, nil
	default:
		return 0, &waverr.InvalidParameters{Field: "random.type", Value: s, Reason: "must be one of Normal, LogNormal"}
	}
}

// ToParameters converts the editable config into a params.Parameters,
// resolving every enum field by name. It does not call Validate;
// callers should do that once, at the boundary where the Parameters
// value is put to use.
func (c ParametersConfig) ToParameters() (params.Parameters, error) {
	dispersion, err := parseDispersion(c.Dispersion)
	if err != nil {
		return params.Parameters{}, err
	}
	spectrum, err := parseSpectrum(c.Spectrum)
	if err != nil {
		return params.Parameters{}, err
	}
	spreading, err := parseSpreading(c.DirectionalSpreading.Type)
	if err != nil {
		return params.Parameters{}, err
	}
	filterType, err := parseFilterType(c.Filter.Type)
	if err != nil {
		return params.Parameters{}, err
	}
	randomType, err := parseRandomType(c.Random.Type)
	if err != nil {
		return params.Parameters{}, err
	}

	return params.Parameters{
		ResolutionPowerOfTwo: c.ResolutionPowerOfTwo,
		Domain:               c.Domain,
		Gravity:              c.Gravity,
		SurfaceTension:       c.SurfaceTension,
		Density:              c.Density,
		Depth:                c.Depth,
		WindSpeed:            c.WindSpeed,
		Fetch:                c.Fetch,
		Pinch:                c.Pinch,
		AmplitudeGain:        c.AmplitudeGain,

		TroughDamping:                c.TroughDamping,
		TroughDampingSmallWavelength: c.TroughDampingSmallWavelength,
		TroughDampingBigWavelength:   c.TroughDampingBigWavelength,
		TroughDampingSoftWidth:       c.TroughDampingSoftWidth,

		MinClipE: c.MinClipE,
		MaxClipE: c.MaxClipE,

		Dispersion: dispersion,
		Spectrum:   spectrum,
		DirectionalSpreading: params.DirectionalSpreadingConfig{
			Type:  spreading,
			Swell: c.DirectionalSpreading.Swell,
		},
		Filter: params.FilterConfig{
			Type:            filterType,
			SoftWidth:       c.Filter.SoftWidth,
			SmallWavelength: c.Filter.SmallWavelength,
			BigWavelength:   c.Filter.BigWavelength,
			Min:             c.Filter.Min,
			Invert:          c.Filter.Invert,
		},
		Random: params.RandomConfig{
			Type: randomType,
			Seed: c.Random.Seed,
		},
	}, nil
}

// Defaults holds the named Parameters presets embedded at build time.
type Defaults struct {
	Presets map[string]ParametersConfig `yaml:"presets"`
}

// LoadDefaults parses the embedded preset document.
func LoadDefaults() (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return &d, nil
}

// Preset resolves one named preset to a validated params.Parameters.
func Preset(name string) (params.Parameters, error) {
	defaults, err := LoadDefaults()
	if err != nil {
		return params.Parameters{}, err
	}
	preset, ok := defaults.Presets[name]
	if !ok {
		return params.Parameters{}, &waverr.InvalidParameters{Field: "preset", Value: name, Reason: "no such preset in defaults.yaml"}
	}
	p, err := preset.ToParameters()
	if err != nil {
		return params.Parameters{}, err
	}
	if err := p.Validate(); err != nil {
		return params.Parameters{}, err
	}
	return p, nil
}

// Scene describes one simulation run: the Parameters to build it with,
// the sequence of times to propagate, and where a caller should write
// output.
type Scene struct {
	Parameters ParametersConfig `json:"parameters"`
	Times      []float64        `json:"times"`
	OutputDir  string           `json:"output_dir"`
}

// LoadScene reads and decodes a JSON scene file.
func LoadScene(filename string) (*Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

// Resolve converts a Scene's ParametersConfig to a validated
// params.Parameters.
func (s *Scene) Resolve() (params.Parameters, error) {
	p, err := s.Parameters.ToParameters()
	if err != nil {
		return params.Parameters{}, err
	}
	if err := p.Validate(); err != nil {
		return params.Parameters{}, err
	}
	return p, nil
}
