package exercises

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Get(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context, params ListParams) ([]Exercise, error)
	Create(ctx context.Context, exercise Exercise) (*Exercise, error)
	CompletedSetCounts(ctx context.Context, userID int, muscle string) (map[int]int, error)
}

var validate = validator.New()

type CreateExerciseRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Equipment    string   `json:"equipment" validate:"max=50"`
	Muscles      []string `json:"muscles" validate:"max=10,dive,required,max=30"`
	InputType    string   `json:"input_type"`
	MinReps      *int     `json:"min_reps" validate:"omitempty,gte=0"`
	MaxReps      *int     `json:"max_reps" validate:"omitempty,gte=0"`
	MinDuration  *int     `json:"min_duration" validate:"omitempty,gte=0"`
	MaxDuration  *int     `json:"max_duration" validate:"omitempty,gte=0"`
	MinDistance  *float64 `json:"min_distance" validate:"omitempty,gte=0"`
	MaxDistance  *float64 `json:"max_distance" validate:"omitempty,gte=0"`
	MinWeight    *float64 `json:"min_weight" validate:"omitempty,gte=0"`
	MaxWeight    *float64 `json:"max_weight" validate:"omitempty,gte=0"`
	RangeEnabled bool     `json:"range_enabled"`
	RestSeconds  int      `json:"rest_seconds" validate:"gte=0,lte=3600"`
}

func (req *CreateExerciseRequest) toExercise(userID int) (Exercise, error) {
	if err := validate.Struct(req); err != nil {
		return Exercise{}, apperr.Validation("invalid exercise: %s", err)
	}
	if req.MinReps != nil && req.MaxReps != nil && *req.MinReps > *req.MaxReps {
		return Exercise{}, apperr.Validation("min_reps must not exceed max_reps")
	}
	if req.MinDuration != nil && req.MaxDuration != nil && *req.MinDuration > *req.MaxDuration {
		return Exercise{}, apperr.Validation("min_duration must not exceed max_duration")
	}
	if req.MinDistance != nil && req.MaxDistance != nil && *req.MinDistance > *req.MaxDistance {
		return Exercise{}, apperr.Validation("min_distance must not exceed max_distance")
	}
	if req.MinWeight != nil && req.MaxWeight != nil && *req.MinWeight > *req.MaxWeight {
		return Exercise{}, apperr.Validation("min_weight must not exceed max_weight")
	}

	muscles := make([]string, 0, len(req.Muscles))
	for _, m := range req.Muscles {
		muscles = append(muscles, strings.ToLower(strings.TrimSpace(m)))
	}

	return Exercise{
		Name:         strings.TrimSpace(req.Name),
		Equipment:    req.Equipment,
		Muscles:      muscles,
		InputType:    ParseInputType(req.InputType),
		MinReps:      req.MinReps,
		MaxReps:      req.MaxReps,
		MinDuration:  req.MinDuration,
		MaxDuration:  req.MaxDuration,
		MinDistance:  req.MinDistance,
		MaxDistance:  req.MaxDistance,
		MinWeight:    req.MinWeight,
		MaxWeight:    req.MaxWeight,
		RangeEnabled: req.RangeEnabled,
		RestSeconds:  req.RestSeconds,
		UserCreated:  true,
		CreatedBy:    &userID,
	}, nil
}

type Handler struct {
	repo     exercisesRepo
	analyzer *Analyzer
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: NewAnalyzer(repo),
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercises", handler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", handler.HandleCreate).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id:[0-9]+}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/stats/muscle/{muscle}/distribution", handler.HandleMuscleDistribution).Methods("GET", "OPTIONS").Name("muscle-distribution")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	query := r.URL.Query()
	inputType := query.Get("input_type")
	if inputType != "" {
		inputType = string(ParseInputType(inputType))
	}

	exercises, err := handler.repo.List(ctx, ListParams{
		UserID:    userID,
		Muscle:    strings.ToLower(query.Get("muscle")),
		InputType: inputType,
		Search:    query.Get("q"),
	})
	if err != nil {
		log.Errorf("failed to list exercises: %s", err)
		http.Error(w, "failed to list exercises", http.StatusInternalServerError)
		return
	}
	if exercises == nil {
		exercises = []Exercise{}
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	ex, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get exercise %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to get exercise")
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	if !ex.VisibleTo(userID) {
		apperr.WriteHTTP(w, ErrExerciseNotFound, "exercise not found")
		return
	}

	pkg.WriteJSON(w, ex, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid exercise payload", http.StatusBadRequest)
		return
	}

	exercise, err := req.toExercise(userID)
	if err != nil {
		apperr.WriteHTTP(w, err, "invalid exercise")
		return
	}

	created, err := handler.repo.Create(ctx, exercise)
	if err != nil {
		log.Errorf("failed to create exercise [%s]: %s", exercise.Name, err)
		http.Error(w, "failed to create exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("custom exercise %d [%s] created by user %d", created.ID, created.Name, userID)
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleMuscleDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.muscleDistribution")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	muscle := strings.ToLower(mux.Vars(r)["muscle"])
	if muscle == "" {
		http.Error(w, "error, muscle empty", http.StatusBadRequest)
		return
	}

	distribution, err := handler.analyzer.MuscleDistribution(ctx, userID, muscle)
	if err != nil {
		log.Errorf("failed to get muscle distribution [%s]: %s", muscle, err)
		http.Error(w, "failed to get muscle distribution", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, distribution, http.StatusOK)
}
