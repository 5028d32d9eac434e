// Package dataset loads and caches the per-airport JSON data the reference
// site is built from: the call scripts, the parameter/tooltip dictionary and
// the aircraft catalog.
package dataset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rtref/internal/rtcall"
	"rtref/pkg/logger"
)

// Dataset file names inside each airport directory.
const (
	callsFile      = "calls.json"
	parametersFile = "parameters.json"
	aircraftFile   = "aircraft.json"
)

// Dataset is the loaded, read-only data for one airport.
type Dataset struct {
	ICAO       string
	Calls      rtcall.CallSet
	Parameters []rtcall.ParameterSpec
	Aircraft   []rtcall.Aircraft
	LoadedAt   time.Time
}

// Loader reads airport datasets from a directory tree laid out as
// <dir>/<icao>/{calls,parameters,aircraft}.json.
type Loader struct {
	dir    string
	logger *logger.Logger
}

// NewLoader creates a loader rooted at the given data directory.
func NewLoader(dir string, log *logger.Logger) *Loader {
	return &Loader{
		dir:    dir,
		logger: log.Named("dataset-loader"),
	}
}

// ListAirports returns the ICAO codes of every airport directory that
// carries a calls file, sorted.
func (l *Loader) ListAirports() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, &FileError{Path: l.dir, Op: "read", Err: err}
	}

	var airports []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.dir, entry.Name(), callsFile)); err == nil {
			airports = append(airports, entry.Name())
		}
	}
	sort.Strings(airports)
	return airports, nil
}

// LoadAirport loads the dataset for one airport. The call scripts and the
// parameter dictionary are both required and load concurrently; either
// failure aborts the load. A missing aircraft catalog only degrades the
// catalog view and is not an error.
func (l *Loader) LoadAirport(ctx context.Context, icao string) (*Dataset, error) {
	icao = strings.ToLower(strings.TrimSpace(icao))
	airportDir := filepath.Join(l.dir, icao)
	if info, err := os.Stat(airportDir); err != nil || !info.IsDir() {
		return nil, ErrAirportNotFound
	}

	ds := &Dataset{ICAO: icao}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		calls, err := l.loadCalls(filepath.Join(airportDir, callsFile))
		if err != nil {
			return err
		}
		ds.Calls = calls
		return nil
	})
	g.Go(func() error {
		params, err := l.loadParameters(filepath.Join(airportDir, parametersFile))
		if err != nil {
			return err
		}
		ds.Parameters = params
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	aircraft, err := l.loadAircraft(filepath.Join(airportDir, aircraftFile))
	if err != nil {
		l.logger.Warn("Aircraft catalog unavailable",
			logger.String("airport", icao),
			logger.Error(err))
	} else {
		ds.Aircraft = aircraft
	}

	ds.LoadedAt = time.Now().UTC()

	l.logger.Info("Loaded airport dataset",
		logger.String("airport", icao),
		logger.Int("calls", ds.Calls.Count()),
		logger.Int("parameters", len(ds.Parameters)),
		logger.Int("aircraft", len(ds.Aircraft)))

	return ds, nil
}

// loadCalls reads the call scripts file: a JSON object keyed by phase, each
// value an array of call records in display order. Unknown phase keys are
// skipped with a warning so one stray key never hides the rest of the file.
func (l *Loader) loadCalls(path string) (rtcall.CallSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "read", Err: err}
	}

	var raw map[string][]rtcall.CallRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FileError{Path: path, Op: "parse", Err: err}
	}

	calls := make(rtcall.CallSet, len(raw))
	for key, records := range raw {
		phase, ok := rtcall.ParsePhase(key)
		if !ok {
			l.logger.Warn("Skipping unknown phase key",
				logger.String("file", path),
				logger.String("phase", key))
			continue
		}
		calls[phase] = records
	}

	return calls, nil
}

// loadParameters reads the tooltip dictionary: a JSON object mapping the
// parameter name to its description and allowed values. Entries come back
// sorted by name so normalization collisions resolve the same way on every
// load.
func (l *Loader) loadParameters(path string) ([]rtcall.ParameterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "read", Err: err}
	}

	var raw map[string]struct {
		Description string   `json:"description"`
		Values      []string `json:"values"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FileError{Path: path, Op: "parse", Err: err}
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]rtcall.ParameterSpec, 0, len(raw))
	for _, name := range names {
		entry := raw[name]
		params = append(params, rtcall.ParameterSpec{
			Name:        name,
			Description: entry.Description,
			Values:      entry.Values,
		})
	}

	return params, nil
}

// loadAircraft reads the aircraft catalog: a JSON array of aircraft records.
func (l *Loader) loadAircraft(path string) ([]rtcall.Aircraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "read", Err: err}
	}

	var aircraft []rtcall.Aircraft
	if err := json.Unmarshal(data, &aircraft); err != nil {
		return nil, &FileError{Path: path, Op: "parse", Err: err}
	}

	return aircraft, nil
}
