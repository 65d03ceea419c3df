package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sawantaditi24/RoomSync/internal/model"
	"github.com/sawantaditi24/RoomSync/internal/store"
)

// AvailabilitiesHandler handles roommate availability post endpoints.
type AvailabilitiesHandler struct {
	DB  *sql.DB
	Log *zap.SugaredLogger
}

type createAvailabilityRequest struct {
	UserID              int64    `json:"user_id"`
	HousingProperty     string   `json:"housing_property"`
	ApartmentPlan       string   `json:"apartment_plan"`
	RoommatesPreferred  int      `json:"number_of_roommates_preferred"`
	GenderPreference    string   `json:"gender_preference"`
	CostPreferenceMin   *float64 `json:"cost_preference_min"`
	CostPreferenceMax   *float64 `json:"cost_preference_max"`
	LeaseTerm           string   `json:"lease_term"`
	DietaryRestrictions string   `json:"dietary_restrictions"`
	CourseProgram       string   `json:"course_program"`
	Community           string   `json:"community"`
	Miscellaneous       string   `json:"miscellaneous"`
	Status              string   `json:"status"`
	PostType            string   `json:"post_type"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /api/availabilities.
func (h *AvailabilitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.UserID <= 0:
		jsonError(w, http.StatusBadRequest, "user_id required")
		return
	case req.HousingProperty == "":
		jsonError(w, http.StatusBadRequest, "housing_property required")
		return
	case req.ApartmentPlan == "":
		jsonError(w, http.StatusBadRequest, "apartment_plan required")
		return
	case req.RoommatesPreferred <= 0:
		jsonError(w, http.StatusBadRequest, "number_of_roommates_preferred must be positive")
		return
	case !model.ValidGenderPreference(req.GenderPreference):
		jsonError(w, http.StatusBadRequest, "gender_preference must be Male, Female or Any")
		return
	case req.CostPreferenceMin == nil || req.CostPreferenceMax == nil:
		jsonError(w, http.StatusBadRequest, "cost_preference_min and cost_preference_max required")
		return
	case req.LeaseTerm == "":
		jsonError(w, http.StatusBadRequest, "lease_term required")
		return
	case !model.ValidPostType(req.PostType):
		jsonError(w, http.StatusBadRequest, "post_type must be post_availability or seek_availability")
		return
	}
	if req.Status != "" && !model.ValidAvailabilityStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	post, err := store.CreateAvailability(r.Context(), h.DB, &model.Availability{
		UserID:              req.UserID,
		HousingProperty:     req.HousingProperty,
		ApartmentPlan:       req.ApartmentPlan,
		RoommatesPreferred:  req.RoommatesPreferred,
		GenderPreference:    req.GenderPreference,
		CostPreferenceMin:   *req.CostPreferenceMin,
		CostPreferenceMax:   *req.CostPreferenceMax,
		LeaseTerm:           req.LeaseTerm,
		DietaryRestrictions: req.DietaryRestrictions,
		CourseProgram:       req.CourseProgram,
		Community:           req.Community,
		Miscellaneous:       req.Miscellaneous,
		Status:              req.Status,
		PostType:            req.PostType,
	})
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create availability")
		return
	}

	jsonResponse(w, http.StatusCreated, post)
}

// List handles GET /api/availabilities. Orphaned and expired filled_up
// posts are swept before the filtered read, so the cleanup cost rides on
// the request instead of a background timer.
func (h *AvailabilitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orphanedPosts, orphanedItems, err := store.DeleteOrphans(ctx, h.DB)
	if err != nil {
		h.Log.Errorw("orphan sweep failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list availabilities")
		return
	}
	if orphanedPosts > 0 || orphanedItems > 0 {
		h.Log.Infow("removed orphaned records",
			"availabilities", orphanedPosts, "marketplace_items", orphanedItems)
	}

	pruned, err := store.PruneExpiredFilled(ctx, h.DB, store.FilledRetention)
	if err != nil {
		h.Log.Errorw("retention prune failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list availabilities")
		return
	}
	if pruned > 0 {
		h.Log.Infow("pruned expired filled posts", "count", pruned)
	}

	filter, err := availabilityFilterFromQuery(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, err := store.ListAvailabilities(ctx, h.DB, filter)
	if err != nil {
		h.Log.Errorw("listing availabilities failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list availabilities")
		return
	}
	if posts == nil {
		posts = []model.Availability{}
	}
	jsonResponse(w, http.StatusOK, posts)
}

// Get handles GET /api/availabilities/{id}.
func (h *AvailabilitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid availability id")
		return
	}

	post, err := store.GetAvailability(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get availability")
		return
	}
	if post == nil {
		jsonError(w, http.StatusNotFound, "availability not found")
		return
	}

	jsonResponse(w, http.StatusOK, post)
}

// UpdateStatus handles PUT /api/availabilities/{id}/status.
func (h *AvailabilitiesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid availability id")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidAvailabilityStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, "status must be available, booking_fast or filled_up")
		return
	}

	err = store.SetAvailabilityStatus(r.Context(), h.DB, id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "availability not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// availabilityFilterFromQuery builds the filter from query parameters.
// A missing or empty parameter imposes no constraint; numeric parameters
// that are present always filter, even at zero.
func availabilityFilterFromQuery(r *http.Request) (store.AvailabilityFilter, error) {
	var f store.AvailabilityFilter
	q := r.URL.Query()

	if v := q.Get("post_type"); v != "" {
		f.PostType = &v
	}
	if v := q.Get("housing_property"); v != "" {
		f.HousingProperty = &v
	}
	if v := q.Get("community"); v != "" {
		f.Community = &v
	}
	if v := q.Get("gender_preference"); v != "" {
		f.GenderPreference = &v
	}
	if v := q.Get("cost_max"); v != "" {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("invalid cost_max")
		}
		f.CostMax = &cost
	}
	if v := q.Get("lease_term"); v != "" {
		f.LeaseTerm = &v
	}
	if v := q.Get("apartment_plan"); v != "" {
		f.ApartmentPlan = &v
	}
	if v := q.Get("number_of_roommates"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, errors.New("invalid number_of_roommates")
		}
		f.Roommates = &n
	}
	if v := q.Get("course_program"); v != "" {
		f.CourseProgram = &v
	}
	if v := q.Get("status"); v != "" {
		f.Status = &v
	}

	return f, nil
}
