package daemon

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"budgetd/internal/model"
	"budgetd/internal/planner"
)

// dataResponse wraps every data endpoint payload with the degraded
// indicator from the planner.
type dataResponse struct {
	Data     any  `json:"data"`
	Degraded bool `json:"degraded"`
}

// syncResponse is the JSON shape of a sync outcome.
type syncResponse struct {
	At        time.Time `json:"at"`
	Skipped   bool      `json:"skipped"`
	Profile   string    `json:"profile,omitempty"`
	Dashboard string    `json:"dashboard,omitempty"`
	Calendar  string    `json:"calendar,omitempty"`
}

func toSyncResponse(out planner.SyncOutcome) syncResponse {
	resp := syncResponse{At: out.At, Skipped: out.Skipped}
	if out.Profile != nil {
		resp.Profile = out.Profile.Error()
	}
	if out.Dashboard != nil {
		resp.Dashboard = out.Dashboard.Error()
	}
	if out.Calendar != nil {
		resp.Calendar = out.Calendar.Error()
	}
	return resp
}

// Router builds the local API routes.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/v1/calendar/{year}/{month}", s.handleCalendar).Methods(http.MethodGet)
	r.HandleFunc("/v1/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/v1/classify", s.handleClassify).Methods(http.MethodPost)
	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.status())
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	snap, degraded := s.planner.GetDashboardData()
	writeJSON(w, dataResponse{Data: snap, Degraded: degraded})
}

func (s *Service) handleCalendar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1970 || year > 9999 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	monthNum, err := strconv.Atoi(vars["month"])
	if err != nil || monthNum < 1 || monthNum > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	plan, degraded := s.planner.GetCalendarData(year, time.Month(monthNum))
	writeJSON(w, dataResponse{Data: plan, Degraded: degraded})
}

func (s *Service) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	out := s.ForceSync(3 * s.cfg.ResourceTimeout())
	writeJSON(w, toSyncResponse(out))
}

func (s *Service) handleClassify(w http.ResponseWriter, r *http.Request) {
	var profile model.UserFinancialProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid profile payload", http.StatusBadRequest)
		return
	}

	tier := s.planner.ClassifyIncome(profile)
	writeJSON(w, map[string]string{"tier": string(tier), "label": tier.Label()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
