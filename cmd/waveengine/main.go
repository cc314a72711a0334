// Command waveengine drives the wave field engine across a sequence of
// times, reporting per-frame statistics and optionally writing a CSV
// time series, mirroring the way wave2D's main() drives its WaveEngine
// across a time-stepped run from parsed flags or a scene file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/blackencino/EncinoWaves/config"
	"github.com/blackencino/EncinoWaves/initialstate"
	"github.com/blackencino/EncinoWaves/mipmap"
	"github.com/blackencino/EncinoWaves/normals"
	"github.com/blackencino/EncinoWaves/params"
	"github.com/blackencino/EncinoWaves/propagate"
	"github.com/blackencino/EncinoWaves/spectral"
	"github.com/blackencino/EncinoWaves/stats"
)

const version = "0.1.0"

// Config holds the parsed CLI flags for one run.
type Config struct {
	Preset     string
	SceneFile  string
	Resolution int
	Seed       int
	Workers    int
	Frames     int
	Dt         float64
	T0         float64
	Normals    bool
	MipLevels  int
	OutputDir  string
	Verbose    bool
	Quiet      bool
	ProfileCPU string
	ProfileMem string
}

func parseFlags() *Config {
	c := &Config{}

	flag.StringVar(&c.Preset, "preset", "calm", "named preset from the embedded defaults (calm, storm, shallow-swell)")
	flag.StringVar(&c.SceneFile, "scene", "", "JSON scene file to load, overrides -preset")
	flag.IntVar(&c.Resolution, "resolution", 0, "override resolution power of two (0 = use preset/scene value)")
	flag.IntVar(&c.Seed, "seed", -1, "override random seed (-1 = use preset/scene value)")
	flag.IntVar(&c.Workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.IntVar(&c.Frames, "frames", 8, "number of frames to propagate")
	flag.Float64Var(&c.Dt, "dt", 0.25, "time between frames, in seconds")
	flag.Float64Var(&c.T0, "t0", 0.0, "time of the first frame, in seconds")
	flag.BoolVar(&c.Normals, "normals", false, "also compute surface normals each frame")
	flag.IntVar(&c.MipLevels, "mip-levels", 0, "number of 2x downsample levels to compute each frame")
	flag.StringVar(&c.OutputDir, "output", "", "directory to write stats.csv into (empty disables CSV output)")
	flag.BoolVar(&c.Verbose, "verbose", false, "verbose logging")
	flag.BoolVar(&c.Quiet, "quiet", false, "suppress all but fatal logging")
	flag.StringVar(&c.ProfileCPU, "profile-cpu", "", "CPU profile output file")
	flag.StringVar(&c.ProfileMem, "profile-mem", "", "memory profile output file")

	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "waveengine - FFT ocean wave field engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -preset storm -frames 32 -dt 0.1 -output ./run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -scene scene.json -normals -mip-levels 2\n", os.Args[0])
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("waveengine version %s\n", version)
		os.Exit(0)
	}

	return c
}

// frameStats is one row of the optional CSV time series.
type frameStats struct {
	Frame      int     `csv:"frame"`
	Time       float64 `csv:"time"`
	MinHeight  float64 `csv:"min_height"`
	MaxHeight  float64 `csv:"max_height"`
	MeanHeight float64 `csv:"mean_height"`
	MeanMinE   float64 `csv:"mean_min_e"`
	StdDevMinE float64 `csv:"stddev_min_e"`
}

func defaultTimes(c *Config) []float64 {
	times := make([]float64, c.Frames)
	for i := range times {
		times[i] = c.T0 + float64(i)*c.Dt
	}
	return times
}

func resolveParameters(c *Config) (params.Parameters, []float64, error) {
	if c.SceneFile == "" {
		p, err := config.Preset(c.Preset)
		if err != nil {
			return params.Parameters{}, nil, fmt.Errorf("resolving preset %q: %w", c.Preset, err)
		}
		return applyOverrides(p, c), defaultTimes(c), nil
	}

	scene, err := config.LoadScene(c.SceneFile)
	if err != nil {
		return params.Parameters{}, nil, fmt.Errorf("loading scene: %w", err)
	}
	p, err := scene.Resolve()
	if err != nil {
		return params.Parameters{}, nil, fmt.Errorf("resolving scene parameters: %w", err)
	}
	p = applyOverrides(p, c)

	times := scene.Times
	if len(times) == 0 {
		times = defaultTimes(c)
	}
	return p, times, nil
}

func applyOverrides(p params.Parameters, c *Config) params.Parameters {
	if c.Resolution > 0 {
		p.ResolutionPowerOfTwo = c.Resolution
	}
	if c.Seed >= 0 {
		p.Random.Seed = c.Seed
	}
	return p
}

func setUpLogging(c *Config) {
	if c.Quiet {
		log.SetOutput(io.Discard)
	} else if c.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

func startCPUProfile(path string) func() {
	if path == "" {
		return func() {}
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("creating CPU profile: %v", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatalf("starting CPU profile: %v", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}

func writeMemProfile(path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("creating memory profile: %v", err)
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Fatalf("writing memory profile: %v", err)
	}
}

func main() {
	c := parseFlags()
	setUpLogging(c)

	stopCPUProfile := startCPUProfile(c.ProfileCPU)
	defer stopCPUProfile()
	defer writeMemProfile(c.ProfileMem)

	p, times, err := resolveParameters(c)
	if err != nil {
		log.Fatalf("resolving parameters: %v", err)
	}

	if !c.Quiet {
		log.Printf("waveengine v%s", version)
		log.Printf("Resolution: %d, Domain: %.1fm, Wind: %.1fm/s", p.Resolution(), p.Domain, p.WindSpeed)
		log.Printf("Dispersion=%s Spectrum=%s Spreading=%s Workers=%d",
			p.Dispersion, p.Spectrum, p.DirectionalSpreading.Type, c.Workers)
	}

	pool := spectral.NewPool(c.Workers)
	defer pool.Close()

	start := time.Now()
	initial, err := initialstate.Build(p, pool)
	if err != nil {
		log.Fatalf("building initial state: %v", err)
	}
	if !c.Quiet {
		log.Printf("Initial state built in %v", time.Since(start))
	}

	propagator, err := propagate.NewPropagator(p, c.Workers)
	if err != nil {
		log.Fatalf("creating propagator: %v", err)
	}
	defer propagator.Close()

	out, err := propagate.NewPropagatedState(p.Resolution())
	if err != nil {
		log.Fatalf("allocating propagated state: %v", err)
	}

	var mipStates []*propagate.PropagatedState
	if c.MipLevels > 0 {
		n := p.Resolution()
		for level := 0; level < c.MipLevels; level++ {
			n /= 2
			if n < 2 {
				log.Printf("stopping mip chain at level %d: resolution would drop below 2", level)
				break
			}
			mipState, err := propagate.NewPropagatedState(n)
			if err != nil {
				log.Fatalf("allocating mip level %d: %v", level, err)
			}
			mipStates = append(mipStates, mipState)
		}
	}

	csvPath, records := setUpCSV(c.OutputDir)

	for frame, t := range times {
		frameStart := time.Now()
		if err := propagator.Propagate(p, initial, out, t); err != nil {
			log.Fatalf("propagating frame %d (t=%.3f): %v", frame, t, err)
		}

		s := stats.Compute(out.Height.Raw(), out.MinE.Raw())
		if !c.Quiet {
			log.Printf("Frame %3d t=%7.3f  height[min=%+.3f max=%+.3f mean=%+.4f]  minE[mean=%.4f std=%.4f]  (%v)",
				frame, t, s.MinHeight, s.MaxHeight, s.MeanHeight, s.MeanMinE, s.StdDevMinE, time.Since(frameStart))
		}
		if records != nil {
			*records = append(*records, frameStats{
				Frame: frame, Time: t,
				MinHeight: s.MinHeight, MaxHeight: s.MaxHeight, MeanHeight: s.MeanHeight,
				MeanMinE: s.MeanMinE, StdDevMinE: s.StdDevMinE,
			})
		}

		if c.Normals {
			if _, err := normals.Compute(p, out, pool); err != nil {
				log.Fatalf("computing normals for frame %d: %v", frame, err)
			}
		}

		src := out
		for level, mipState := range mipStates {
			if err := mipmap.DownsampleState(src, mipState); err != nil {
				log.Fatalf("downsampling to mip level %d: %v", level, err)
			}
			src = mipState
		}
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, *records); err != nil {
			log.Fatalf("writing %s: %v", csvPath, err)
		}
		if !c.Quiet {
			log.Printf("Wrote %d stats rows to %s", len(*records), csvPath)
		}
	}

	if !c.Quiet {
		log.Printf("Done: %d frames in %v", len(times), time.Since(start))
	}
}

func setUpCSV(dir string) (path string, records *[]frameStats) {
	if dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("creating output directory %s: %v", dir, err)
	}
	rows := make([]frameStats, 0)
	return filepath.Join(dir, "stats.csv"), &rows
}

func writeCSV(path string, records []frameStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}
	return nil
}
