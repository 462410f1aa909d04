package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/habitus/internal/app"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/utils"
)

// childResult is the body of every child mutation. Applied is false when the
// rules declined the change; Child is then the unchanged stored child.
type childResult struct {
	Applied bool         `json:"applied"`
	Child   models.Child `json:"child"`
}

type familyRequest struct {
	Name string `json:"name"`
}

type childRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type childPatchRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	Stars  *int    `json:"stars"`
}

type dateRequest struct {
	Date string `json:"date"`
}

type assignRequest struct {
	ChildIDs []string     `json:"childIds"`
	Habit    models.Habit `json:"habit"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "today": a.Service.Today()})
}

func (a *API) handleListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := a.Service.Families()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, families)
}

func (a *API) handleCreateFamily(w http.ResponseWriter, r *http.Request) {
	var req familyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	family, err := a.Service.CreateFamily(req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, family)
}

func (a *API) handleGetFamily(w http.ResponseWriter, r *http.Request) {
	family, err := a.Service.Family(chi.URLParam(r, "familyID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, family)
}

func (a *API) handleAudit(w http.ResponseWriter, r *http.Request) {
	result, err := a.Service.Audit(chi.URLParam(r, "familyID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := a.Service.Children(chi.URLParam(r, "familyID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, children)
}

func (a *API) handleCreateChild(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	child, err := a.Service.AddChild(chi.URLParam(r, "familyID"), req.Name, req.Avatar)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, child)
}

func (a *API) handleGetChild(w http.ResponseWriter, r *http.Request) {
	child, err := a.Service.Child(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (a *API) handleUpdateChild(w http.ResponseWriter, r *http.Request) {
	var req childPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	child, err := a.Service.UpdateChild(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), app.ChildProfile{
		Name:   req.Name,
		Avatar: req.Avatar,
		Stars:  req.Stars,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (a *API) handleDeleteChild(w http.ResponseWriter, r *http.Request) {
	if err := a.Service.DeleteChild(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryDate reads ?date=, defaulting to today. It writes a 400 and returns
// false on a malformed value.
func queryDate(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	day := r.URL.Query().Get(key)
	if day != "" && !utils.ValidateDate(day) {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+key+", expected YYYY-MM-DD")
		return "", false
	}
	return day, true
}

func (a *API) handleDue(w http.ResponseWriter, r *http.Request) {
	day, ok := queryDate(w, r, "date")
	if !ok {
		return
	}
	due, err := a.Service.DueHabits(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, due)
}

func (a *API) handleWeek(w http.ResponseWriter, r *http.Request) {
	day, ok := queryDate(w, r, "date")
	if !ok {
		return
	}
	week, err := a.Service.Week(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

func (a *API) handleStarsEarned(w http.ResponseWriter, r *http.Request) {
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "from and to are required")
		return
	}
	total, err := a.Service.StarsEarned(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"from": from, "to": to, "stars": total})
}

func (a *API) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	var habit models.Habit
	if !decodeJSON(w, r, &habit) {
		return
	}
	habit.ID = ""
	child, applied, err := a.Service.AddHabit(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), habit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	status := http.StatusOK
	if applied {
		status = http.StatusCreated
	}
	writeJSON(w, status, childResult{Applied: applied, Child: child})
}

func (a *API) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var habit models.Habit
	if !decodeJSON(w, r, &habit) {
		return
	}
	habit.ID = chi.URLParam(r, "habitID")
	child, applied, err := a.Service.UpdateHabit(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), habit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, childResult{Applied: applied, Child: child})
}

func (a *API) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	child, applied, err := a.Service.DeleteHabit(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), chi.URLParam(r, "habitID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, childResult{Applied: applied, Child: child})
}

func (a *API) handleHabitAction(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	if req.Date != "" && !utils.ValidateDate(req.Date) {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}

	var op func(familyID, childID, habitID, day string) (models.Child, bool, error)
	switch chi.URLParam(r, "action") {
	case "toggle":
		op = a.Service.ToggleCompletion
	case "request":
		op = a.Service.RequestCompletion
	case "reject":
		op = a.Service.RejectCompletion
	case "skip":
		op = a.Service.SkipForDate
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown habit action")
		return
	}

	child, applied, err := op(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), chi.URLParam(r, "habitID"), req.Date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, childResult{Applied: applied, Child: child})
}

func (a *API) handleAssignHabit(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.ChildIDs) == 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "childIds required")
		return
	}
	assigned, err := a.Service.AssignHabit(chi.URLParam(r, "familyID"), req.ChildIDs, req.Habit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assigned": assigned})
}

func (a *API) handleListRewards(w http.ResponseWriter, r *http.Request) {
	includeDeleted, _ := strconv.ParseBool(r.URL.Query().Get("includeDeleted"))
	rewards, err := a.Service.ShopRewards(chi.URLParam(r, "familyID"), includeDeleted)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (a *API) handleCreateReward(w http.ResponseWriter, r *http.Request) {
	var reward models.ShopReward
	if !decodeJSON(w, r, &reward) {
		return
	}
	reward.ID = ""
	reward.FamilyID = chi.URLParam(r, "familyID")
	saved, err := a.Service.SaveShopReward(reward)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (a *API) handleUpdateReward(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyID")
	current, err := a.Service.ShopReward(familyID, chi.URLParam(r, "rewardID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var reward models.ShopReward
	if !decodeJSON(w, r, &reward) {
		return
	}
	reward.ID = current.ID
	reward.FamilyID = familyID
	reward.CreatedAt = current.CreatedAt
	saved, err := a.Service.SaveShopReward(reward)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (a *API) handleDeleteReward(w http.ResponseWriter, r *http.Request) {
	if err := a.Service.DeleteShopReward(chi.URLParam(r, "familyID"), chi.URLParam(r, "rewardID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRestoreReward(w http.ResponseWriter, r *http.Request) {
	if err := a.Service.RestoreShopReward(chi.URLParam(r, "familyID"), chi.URLParam(r, "rewardID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAvailability(w http.ResponseWriter, r *http.Request) {
	avail, err := a.Service.CheckAvailability(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), chi.URLParam(r, "rewardID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"isAvailable":   avail.IsAvailable,
		"count":         avail.Count,
		"max":           avail.Max,
		"window":        avail.Window,
		"nextAvailable": avail.NextAvailable,
		"label":         avail.Label(),
	})
}

func (a *API) handleRedeem(w http.ResponseWriter, r *http.Request) {
	child, record, applied, err := a.Service.Redeem(chi.URLParam(r, "familyID"), chi.URLParam(r, "childID"), chi.URLParam(r, "rewardID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := map[string]any{"applied": applied, "child": child}
	status := http.StatusOK
	if applied {
		resp["redemption"] = record
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (a *API) handleListRedemptions(w http.ResponseWriter, r *http.Request) {
	list, err := a.Service.Redemptions(chi.URLParam(r, "familyID"), r.URL.Query().Get("child"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleToggleDelivery(w http.ResponseWriter, r *http.Request) {
	record, err := a.Service.ToggleDelivery(chi.URLParam(r, "familyID"), chi.URLParam(r, "redemptionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
