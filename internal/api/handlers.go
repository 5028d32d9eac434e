package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"rtref/internal/config"
	"rtref/internal/dataset"
	"rtref/internal/rtcall"
	"rtref/internal/view"
	"rtref/pkg/logger"
)

// Handler holds the HTTP handlers for pages, fragments and the JSON API.
type Handler struct {
	store     *dataset.Store
	builder   *view.Builder
	renderer  *view.Renderer
	config    *config.Config
	logger    *logger.Logger
	startTime time.Time
}

// NewHandler creates a new API handler
func NewHandler(store *dataset.Store, builder *view.Builder, renderer *view.Renderer, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		store:     store,
		builder:   builder,
		renderer:  renderer,
		config:    config,
		logger:    logger.Named("api-handler"),
		startTime: time.Now().UTC(),
	}
}

// stateFromRequest reads the complete UI state off the query string. The
// view builder clamps whatever comes in, so no validation happens here.
func stateFromRequest(r *http.Request, airport string) view.State {
	q := r.URL.Query()
	phase, _ := rtcall.ParsePhase(q.Get("phase"))
	return view.State{
		Airport:   airport,
		Phase:     phase,
		Category:  q.Get("category"),
		Highlight: q.Get("highlight"),
	}
}

// airport returns the airport query parameter, falling back to the
// configured default.
func (h *Handler) airport(r *http.Request) string {
	if a := r.URL.Query().Get("airport"); a != "" {
		return a
	}
	return h.config.Data.DefaultAirport
}

// loadDataset fetches the dataset for the request's airport. On failure it
// writes the appropriate error response and returns ok=false. html selects
// between the error page and a JSON error body.
func (h *Handler) loadDataset(w http.ResponseWriter, r *http.Request, airport string, html bool) (*dataset.Dataset, bool) {
	ds, err := h.store.Get(r.Context(), airport)
	if err == nil {
		return ds, true
	}

	status := http.StatusInternalServerError
	msg := "Failed to load airport data"
	if errors.Is(err, dataset.ErrAirportNotFound) {
		status = http.StatusNotFound
		msg = "Unknown airport: " + airport
	} else {
		h.logger.Error("Dataset load failed",
			logger.String("airport", airport),
			logger.Error(err))
	}

	if html {
		h.renderErrorPage(w, status, msg)
	} else {
		h.respondError(w, status, msg)
	}
	return nil, false
}

// Index serves the main reference page. A request without an airport
// parameter redirects to the default airport.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("airport") == "" {
		// Keep whatever state the URL already carries, only the airport
		// is filled in.
		q := r.URL.Query()
		q.Set("airport", h.config.Data.DefaultAirport)
		http.Redirect(w, r, "/?"+q.Encode(), http.StatusFound)
		return
	}

	airport := h.airport(r)
	ds, ok := h.loadDataset(w, r, airport, true)
	if !ok {
		return
	}

	airports, err := h.store.ListAirports()
	if err != nil {
		h.logger.Warn("Failed to list airports", logger.Error(err))
		airports = []string{airport}
	}

	page := h.builder.BuildPage(ds, airports, stateFromRequest(r, airport))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Page(w, page); err != nil {
		h.logger.Error("Failed to render index", logger.Error(err))
	}
}

// AircraftPage serves the aircraft catalog view.
func (h *Handler) AircraftPage(w http.ResponseWriter, r *http.Request) {
	airport := h.airport(r)
	ds, ok := h.loadDataset(w, r, airport, true)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.AircraftPage(w, &view.AircraftPage{
		Airport:  airport,
		Aircraft: ds.Aircraft,
	}); err != nil {
		h.logger.Error("Failed to render aircraft page", logger.Error(err))
	}
}

// SessionsFragment serves the session list as a bare HTML fragment.
func (h *Handler) SessionsFragment(w http.ResponseWriter, r *http.Request) {
	airport := h.airport(r)
	ds, ok := h.loadDataset(w, r, airport, true)
	if !ok {
		return
	}

	page := h.builder.BuildPage(ds, nil, stateFromRequest(r, airport))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Sessions(w, page); err != nil {
		h.logger.Error("Failed to render sessions fragment", logger.Error(err))
	}
}

// findRecord resolves the phase and call query parameters to a record,
// writing a 404 when either does not exist.
func (h *Handler) findRecord(w http.ResponseWriter, r *http.Request, ds *dataset.Dataset) (rtcall.CallRecord, bool) {
	phase, ok := rtcall.ParsePhase(r.URL.Query().Get("phase"))
	if !ok {
		http.Error(w, "unknown phase", http.StatusNotFound)
		return rtcall.CallRecord{}, false
	}
	rec, found := view.FindRecord(ds, phase, r.URL.Query().Get("call"))
	if !found {
		http.Error(w, "unknown call", http.StatusNotFound)
		return rtcall.CallRecord{}, false
	}
	return rec, true
}

// DescriptionPopup serves the record description modal fragment.
func (h *Handler) DescriptionPopup(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.loadDataset(w, r, h.airport(r), false)
	if !ok {
		return
	}
	rec, ok := h.findRecord(w, r, ds)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.DescriptionPopup(w, h.builder.BuildDescriptionPopup(rec)); err != nil {
		h.logger.Error("Failed to render description popup", logger.Error(err))
	}
}

// CommandPopup serves the command detail modal fragment. Commands marked
// play-on-awake get the informational notice instead of the detail view.
func (h *Handler) CommandPopup(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.loadDataset(w, r, h.airport(r), false)
	if !ok {
		return
	}
	rec, ok := h.findRecord(w, r, ds)
	if !ok {
		return
	}
	slot, ok := view.ParseSlot(r.URL.Query().Get("slot"))
	if !ok {
		http.Error(w, "unknown command slot", http.StatusNotFound)
		return
	}

	popup, automatic := h.builder.BuildCommandPopup(ds, rec, slot)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch {
	case automatic:
		if err := h.renderer.AwakeNotice(w); err != nil {
			h.logger.Error("Failed to render awake notice", logger.Error(err))
		}
	case popup == nil:
		http.Error(w, "no command available", http.StatusNotFound)
	default:
		if err := h.renderer.CommandPopup(w, popup); err != nil {
			h.logger.Error("Failed to render command popup", logger.Error(err))
		}
	}
}

// AwakeNotice serves the automatic-action notice fragment.
func (h *Handler) AwakeNotice(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.AwakeNotice(w); err != nil {
		h.logger.Error("Failed to render awake notice", logger.Error(err))
	}
}

// AirportsResponse is the JSON body of the airports endpoint.
type AirportsResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Default   string    `json:"default"`
	Count     int       `json:"count"`
	Airports  []string  `json:"airports"`
}

// GetAirports returns the airports available on disk.
func (h *Handler) GetAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.store.ListAirports()
	if err != nil {
		h.logger.Error("Failed to list airports", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list airports")
		return
	}

	h.respondJSON(w, http.StatusOK, AirportsResponse{
		Timestamp: time.Now().UTC(),
		Default:   h.config.Data.DefaultAirport,
		Count:     len(airports),
		Airports:  airports,
	})
}

// CallsResponse is the JSON body of the calls endpoint.
type CallsResponse struct {
	Timestamp time.Time           `json:"timestamp"`
	Airport   string              `json:"airport"`
	Phase     string              `json:"phase,omitempty"`
	Category  string              `json:"category,omitempty"`
	Count     int                 `json:"count"`
	Calls     []rtcall.CallRecord `json:"calls"`
}

// GetCalls returns call records, optionally filtered by phase and category.
// Without a phase the records of every phase come back in navigation order.
func (h *Handler) GetCalls(w http.ResponseWriter, r *http.Request) {
	airport := h.airport(r)
	ds, ok := h.loadDataset(w, r, airport, false)
	if !ok {
		return
	}

	phaseStr := r.URL.Query().Get("phase")
	category := r.URL.Query().Get("category")

	var records []rtcall.CallRecord
	if phaseStr == "" {
		for _, p := range ds.Calls.Phases() {
			records = append(records, ds.Calls[p]...)
		}
	} else {
		phase, valid := rtcall.ParsePhase(phaseStr)
		if !valid {
			h.respondError(w, http.StatusBadRequest, "unknown phase: "+phaseStr)
			return
		}
		records = ds.Calls.Filter(phase, category)
	}
	if records == nil {
		records = []rtcall.CallRecord{}
	}

	h.respondJSON(w, http.StatusOK, CallsResponse{
		Timestamp: time.Now().UTC(),
		Airport:   airport,
		Phase:     phaseStr,
		Category:  category,
		Count:     len(records),
		Calls:     records,
	})
}

// ParametersResponse is the JSON body of the parameters endpoint.
type ParametersResponse struct {
	Timestamp  time.Time              `json:"timestamp"`
	Airport    string                 `json:"airport"`
	Count      int                    `json:"count"`
	Parameters []rtcall.ParameterSpec `json:"parameters"`
}

// GetParameters returns the tooltip dictionary for an airport.
func (h *Handler) GetParameters(w http.ResponseWriter, r *http.Request) {
	airport := h.airport(r)
	ds, ok := h.loadDataset(w, r, airport, false)
	if !ok {
		return
	}

	h.respondJSON(w, http.StatusOK, ParametersResponse{
		Timestamp:  time.Now().UTC(),
		Airport:    airport,
		Count:      len(ds.Parameters),
		Parameters: ds.Parameters,
	})
}

// AircraftResponse is the JSON body of the aircraft endpoint.
type AircraftResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Airport   string            `json:"airport"`
	Count     int               `json:"count"`
	Aircraft  []rtcall.Aircraft `json:"aircraft"`
}

// GetAircraft returns the aircraft catalog for an airport.
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	airport := h.airport(r)
	ds, ok := h.loadDataset(w, r, airport, false)
	if !ok {
		return
	}

	aircraft := ds.Aircraft
	if aircraft == nil {
		aircraft = []rtcall.Aircraft{}
	}

	h.respondJSON(w, http.StatusOK, AircraftResponse{
		Timestamp: time.Now().UTC(),
		Airport:   airport,
		Count:     len(aircraft),
		Aircraft:  aircraft,
	})
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	UptimeSecs int64     `json:"uptime_secs"`
	Airports   []string  `json:"airports"`
}

// GetHealth returns the server health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	airports, err := h.store.ListAirports()
	if err != nil {
		h.logger.Warn("Failed to list airports for health check", logger.Error(err))
	}

	h.respondJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now().UTC(),
		UptimeSecs: int64(time.Since(h.startTime).Seconds()),
		Airports:   airports,
	})
}

// ConfigResponse is the JSON body of the config endpoint: only the settings
// a client needs.
type ConfigResponse struct {
	DefaultAirport      string `json:"default_airport"`
	TooltipDelayMS      int    `json:"tooltip_delay_ms"`
	HighlightDurationMS int    `json:"highlight_duration_ms"`
}

// GetConfig returns the UI-relevant configuration.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, ConfigResponse{
		DefaultAirport:      h.config.Data.DefaultAirport,
		TooltipDelayMS:      h.config.UI.TooltipDelayMS,
		HighlightDurationMS: h.config.UI.HighlightDurationMS,
	})
}

// respondJSON writes a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", logger.Error(err))
	}
}

// respondError writes a JSON error response
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// renderErrorPage replaces the content area with a static error view.
func (h *Handler) renderErrorPage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.ErrorPage(w, &view.ErrorPage{Status: status, Message: message}); err != nil {
		h.logger.Error("Failed to render error page", logger.Error(err))
	}
}
