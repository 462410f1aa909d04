package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitus/internal/app"
	"github.com/julianstephens/habitus/internal/metrics"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage/sqlite"
	"github.com/julianstephens/habitus/internal/utils"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitus.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := metrics.New()
	api := &API{
		Service: app.New(store, utils.FixedDay("2024-06-03"), m),
		Metrics: m,
	}
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type mutation struct {
	Applied bool         `json:"applied"`
	Child   models.Child `json:"child"`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]string
	if status := do(t, srv, http.MethodGet, "/health", nil, &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["today"] != "2024-06-03" {
		t.Errorf("today = %q", body["today"])
	}
}

func TestHabitAndRewardFlow(t *testing.T) {
	srv := newTestServer(t)

	var family models.Family
	if status := do(t, srv, http.MethodPost, "/families", map[string]string{"name": "Silva"}, &family); status != http.StatusCreated {
		t.Fatalf("create family status = %d", status)
	}
	base := "/families/" + family.ID

	var child models.Child
	if status := do(t, srv, http.MethodPost, base+"/children", map[string]string{"name": "Ana"}, &child); status != http.StatusCreated {
		t.Fatalf("create child status = %d", status)
	}
	childPath := base + "/children/" + child.ID

	habit := map[string]any{
		"name":     "Ler",
		"schedule": map[string]any{"type": "WEEKLY", "days": []int{1, 3}},
		"reward":   map[string]any{"type": "STARS", "value": 4},
	}
	var added mutation
	if status := do(t, srv, http.MethodPost, childPath+"/habits", habit, &added); status != http.StatusCreated {
		t.Fatalf("add habit status = %d", status)
	}
	if !added.Applied || len(added.Child.Habits) != 1 {
		t.Fatalf("add habit = %+v", added)
	}
	habitID := added.Child.Habits[0].ID

	var second mutation
	brush := map[string]any{"id": habitID, "name": "Brush teeth"}
	if status := do(t, srv, http.MethodPost, childPath+"/habits", brush, &second); status != http.StatusCreated {
		t.Fatalf("add second habit status = %d", status)
	}
	if got := second.Child.Habits[1].ID; got == habitID || got == "" {
		t.Errorf("second habit ID = %q, want a fresh ID", got)
	}
	do(t, srv, http.MethodDelete, childPath+"/habits/"+second.Child.Habits[1].ID, nil, nil)

	var dup mutation
	habit["name"] = " ler"
	if status := do(t, srv, http.MethodPost, childPath+"/habits", habit, &dup); status != http.StatusOK || dup.Applied {
		t.Errorf("duplicate habit status = %d, applied = %v", status, dup.Applied)
	}

	var due []models.Habit
	do(t, srv, http.MethodGet, childPath+"/due?date=2024-06-04", nil, &due)
	if len(due) != 0 {
		t.Errorf("due on Tuesday = %d habits, want 0", len(due))
	}
	do(t, srv, http.MethodGet, childPath+"/due", nil, &due)
	if len(due) != 1 {
		t.Errorf("due today = %d habits, want 1", len(due))
	}

	var toggled mutation
	if status := do(t, srv, http.MethodPost, childPath+"/habits/"+habitID+"/toggle", nil, &toggled); status != http.StatusOK {
		t.Fatalf("toggle status = %d", status)
	}
	if !toggled.Applied || toggled.Child.Stars != 4 {
		t.Errorf("toggle = applied %v, stars %d", toggled.Applied, toggled.Child.Stars)
	}

	limit := map[string]any{"period": "DAY", "count": 1}
	var reward models.ShopReward
	if status := do(t, srv, http.MethodPost, base+"/rewards", map[string]any{"name": "Sorvete", "cost": 3, "limit": limit}, &reward); status != http.StatusCreated {
		t.Fatalf("create reward status = %d", status)
	}

	var redeemed map[string]any
	if status := do(t, srv, http.MethodPost, childPath+"/rewards/"+reward.ID+"/redeem", nil, &redeemed); status != http.StatusCreated {
		t.Fatalf("redeem status = %d", status)
	}
	if redeemed["applied"] != true {
		t.Errorf("redeem = %v", redeemed)
	}

	var avail map[string]any
	do(t, srv, http.MethodGet, childPath+"/rewards/"+reward.ID+"/availability", nil, &avail)
	if avail["isAvailable"] != false || avail["label"] != "tomorrow" {
		t.Errorf("availability = %v", avail)
	}

	var blocked map[string]any
	if status := do(t, srv, http.MethodPost, childPath+"/rewards/"+reward.ID+"/redeem", nil, &blocked); status != http.StatusOK {
		t.Errorf("blocked redeem status = %d", status)
	}
	if blocked["applied"] != false {
		t.Errorf("blocked redeem = %v", blocked)
	}

	var history []models.RedeemedReward
	do(t, srv, http.MethodGet, base+"/redemptions?child="+child.ID, nil, &history)
	if len(history) != 1 {
		t.Fatalf("history = %d records, want 1", len(history))
	}

	var delivered models.RedeemedReward
	do(t, srv, http.MethodPost, base+"/redemptions/"+history[0].ID+"/delivery", nil, &delivered)
	if !delivered.IsDelivered || delivered.DeliveryDate != "2024-06-03" {
		t.Errorf("delivery = %+v", delivered)
	}
}

func TestAssignHabit(t *testing.T) {
	srv := newTestServer(t)

	var family models.Family
	do(t, srv, http.MethodPost, "/families", map[string]string{"name": "Silva"}, &family)
	base := "/families/" + family.ID

	var a, b models.Child
	do(t, srv, http.MethodPost, base+"/children", map[string]string{"name": "Ana"}, &a)
	do(t, srv, http.MethodPost, base+"/children", map[string]string{"name": "Bruno"}, &b)

	habit := map[string]any{"name": "Dentes", "reward": map[string]any{"type": "STARS", "value": 1}}
	var result struct {
		Assigned []string `json:"assigned"`
	}
	body := map[string]any{"childIds": []string{a.ID, b.ID}, "habit": habit}
	if status := do(t, srv, http.MethodPost, base+"/habits/assign", body, &result); status != http.StatusOK {
		t.Fatalf("assign status = %d", status)
	}
	if len(result.Assigned) != 2 {
		t.Errorf("assigned = %v, want both children", result.Assigned)
	}

	do(t, srv, http.MethodPost, base+"/habits/assign", body, &result)
	if len(result.Assigned) != 0 {
		t.Errorf("second assign = %v, want none", result.Assigned)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	var errBody errorResponse
	if status := do(t, srv, http.MethodGet, "/families/missing", nil, &errBody); status != http.StatusNotFound {
		t.Errorf("missing family status = %d, want 404", status)
	}
	if errBody.Error.Code != "NOT_FOUND" {
		t.Errorf("error code = %q", errBody.Error.Code)
	}

	if status := do(t, srv, http.MethodPost, "/families", map[string]string{"name": "  "}, &errBody); status != http.StatusBadRequest {
		t.Errorf("blank family status = %d, want 400", status)
	}
	if errBody.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error code = %q", errBody.Error.Code)
	}

	var family models.Family
	do(t, srv, http.MethodPost, "/families", map[string]string{"name": "Silva"}, &family)
	if status := do(t, srv, http.MethodGet, "/families/"+family.ID+"/children/x/due?date=June", nil, &errBody); status != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/health", nil, nil)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), `route="/health"`) {
		t.Errorf("metrics output missing /health route")
	}
}
