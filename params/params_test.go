package params

import "testing"

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
}

func TestResolutionIsPowerOfTwo(t *testing.T) {
	p := Default()
	p.ResolutionPowerOfTwo = 7
	if got, want := p.Resolution(), 128; got != want {
		t.Errorf("Resolution() = %d, want %d", got, want)
	}
}

func TestValidateRejectsOutOfRangeResolution(t *testing.T) {
	p := Default()
	p.ResolutionPowerOfTwo = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for ResolutionPowerOfTwo=0")
	}
	p.ResolutionPowerOfTwo = 31
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for ResolutionPowerOfTwo=31")
	}
}

func TestValidateRejectsNonFiniteOrNonPositiveFields(t *testing.T) {
	cases := []func(*Parameters){
		func(p *Parameters) { p.Domain = 0 },
		func(p *Parameters) { p.Domain = -1 },
		func(p *Parameters) { p.Gravity = 0 },
		func(p *Parameters) { p.WindSpeed = -1 },
		func(p *Parameters) { p.Depth = 0 },
		func(p *Parameters) { p.Fetch = 0 },
		func(p *Parameters) { p.TroughDamping = -0.1 },
		func(p *Parameters) { p.TroughDamping = 1.1 },
		func(p *Parameters) { p.DirectionalSpreading.Swell = -1.1 },
		func(p *Parameters) { p.DirectionalSpreading.Swell = 2.1 },
		func(p *Parameters) { p.Filter.Min = -0.1 },
		func(p *Parameters) { p.Filter.Min = 1.1 },
	}
	for i, mutate := range cases {
		p := Default()
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("case %d: expected Validate to reject %+v", i, p)
		}
	}
}

func TestEnumStringersCoverAllValues(t *testing.T) {
	for _, d := range []DispersionType{Deep, FiniteDepth, Capillary} {
		if d.String() == "Unknown" {
			t.Errorf("DispersionType(%d).String() = Unknown", d)
		}
	}
	for _, s := range []SpectrumType{PiersonMoskowitz, JONSWAP, TMA} {
		if s.String() == "Unknown" {
			t.Errorf("SpectrumType(%d).String() = Unknown", s)
		}
	}
	for _, s := range []DirectionalSpreadingType{PosCosSquared, Mitsuyasu, Hasselmann, DonelanBanner} {
		if s.String() == "Unknown" {
			t.Errorf("DirectionalSpreadingType(%d).String() = Unknown", s)
		}
	}
	for _, f := range []FilterType{NullFilter, SmoothInvertibleBandPass} {
		if f.String() == "Unknown" {
			t.Errorf("FilterType(%d).String() = Unknown", f)
		}
	}
	for _, r := range []RandomType{Normal, LogNormal} {
		if r.String() == "Unknown" {
			t.Errorf("RandomType(%d).String() = Unknown", r)
		}
	}
	if DispersionType(99).String() != "Unknown" {
		t.Errorf("out-of-range DispersionType should stringify to Unknown")
	}
}
