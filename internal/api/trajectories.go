package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mural-robotics/wallplan/internal/db"
	"github.com/mural-robotics/wallplan/internal/geom"
	"github.com/mural-robotics/wallplan/internal/httputil"
	"github.com/mural-robotics/wallplan/internal/monitoring"
	"github.com/mural-robotics/wallplan/internal/planner"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// WallDimensions describes the wall to be covered.
type WallDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Obstacle is an input obstacle, bottom-left corner plus size.
type Obstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ForbiddenRect is an inflated and merged forbidden region.
type ForbiddenRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TrajectoryRequest is the request body for creating a trajectory.
type TrajectoryRequest struct {
	JobName       *string        `json:"job_name,omitempty"`
	Wall          WallDimensions `json:"wall"`
	Obstacles     []Obstacle     `json:"obstacles"`
	PlannerParams planner.Params `json:"planner_params"`
}

// TrajectoryMeta is the response form of the planner metadata.
type TrajectoryMeta struct {
	PathLengthM        float64  `json:"path_length_m"`
	CoverageFraction   float64  `json:"coverage_fraction"`
	NumWaypoints       int      `json:"num_waypoints"`
	PlannerVersion     string   `json:"planner_version"`
	ValidationWarnings []string `json:"validation_warnings,omitempty"`
	CollisionFlag      bool     `json:"collision_flag"`
}

// TrajectoryResponse is the full record returned for a planning job.
type TrajectoryResponse struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	JobName        *string         `json:"job_name,omitempty"`
	Wall           WallDimensions  `json:"wall"`
	Obstacles      []Obstacle      `json:"obstacles"`
	PlannerParams  planner.Params  `json:"planner_params"`
	ForbiddenRects []ForbiddenRect `json:"forbidden_rects"`
	Waypoints      []db.Waypoint   `json:"waypoints"`
	Meta           TrajectoryMeta  `json:"meta"`
}

func trajectoryResponse(t *db.Trajectory) TrajectoryResponse {
	obstacles := make([]Obstacle, 0, len(t.Obstacles))
	for _, o := range t.Obstacles {
		obstacles = append(obstacles, Obstacle{X: o.X, Y: o.Y, Width: o.W, Height: o.H})
	}
	forbidden := make([]ForbiddenRect, 0, len(t.ForbiddenRects))
	for _, r := range t.ForbiddenRects {
		forbidden = append(forbidden, ForbiddenRect{X: r.X, Y: r.Y, Width: r.W, Height: r.H})
	}

	return TrajectoryResponse{
		ID:             t.ID,
		CreatedAt:      t.CreatedAt().UTC(),
		JobName:        t.JobName,
		Wall:           WallDimensions{Width: t.WallWidth, Height: t.WallHeight},
		Obstacles:      obstacles,
		PlannerParams:  t.PlannerParams,
		ForbiddenRects: forbidden,
		Waypoints:      t.Waypoints,
		Meta: TrajectoryMeta{
			PathLengthM:        t.Meta.PathLength,
			CoverageFraction:   t.Meta.CoverageFraction,
			NumWaypoints:       t.Meta.NumWaypoints,
			PlannerVersion:     t.Meta.PlannerVersion,
			ValidationWarnings: t.Meta.ValidationWarnings,
			CollisionFlag:      t.Meta.CollisionFlag,
		},
	}
}

// createTrajectory runs the planner synchronously on the request,
// persists the result and returns the stored record with 201.
func (s *Server) createTrajectory(w http.ResponseWriter, r *http.Request) {
	var req TrajectoryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Wall.Width <= 0 || req.Wall.Height <= 0 {
		httputil.BadRequest(w, "wall width and height must be positive")
		return
	}

	obstacles := make([]geom.Rect, 0, len(req.Obstacles))
	for _, o := range req.Obstacles {
		obstacles = append(obstacles, geom.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height})
	}

	params := s.defaults.ApplyTo(req.PlannerParams)

	result, err := planner.Plan(planner.Request{
		WallWidth:  req.Wall.Width,
		WallHeight: req.Wall.Height,
		Obstacles:  obstacles,
		Params:     params,
	})
	if err != nil {
		if errors.Is(err, planner.ErrInvalidParameter) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("planner failed: %v", err))
		return
	}

	if result.Meta.CollisionFlag {
		for _, warning := range result.Meta.ValidationWarnings {
			monitoring.Logf("%s", warning)
		}
	}

	waypoints := make([]db.Waypoint, 0, len(result.Waypoints))
	for i, wp := range result.Waypoints {
		waypoints = append(waypoints, db.Waypoint{
			Seq:   i + 1,
			X:     wp.X,
			Y:     wp.Y,
			Theta: wp.Theta,
			Speed: wp.Speed,
		})
	}

	record := &db.Trajectory{
		JobName:        req.JobName,
		WallWidth:      req.Wall.Width,
		WallHeight:     req.Wall.Height,
		Obstacles:      obstacles,
		PlannerParams:  params,
		ForbiddenRects: result.ForbiddenRects,
		Waypoints:      waypoints,
		Meta:           result.Meta,
	}
	if err := s.db.InsertTrajectory(record); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store trajectory: %v", err))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, trajectoryResponse(record))
}

func (s *Server) listTrajectories(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			httputil.BadRequest(w, "invalid 'limit' parameter")
			return
		}
		limit = min(parsed, maxListLimit)
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			httputil.BadRequest(w, "invalid 'offset' parameter")
			return
		}
		offset = parsed
	}

	trajectories, err := s.db.ListTrajectories(limit, offset)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list trajectories: %v", err))
		return
	}

	responses := make([]TrajectoryResponse, 0, len(trajectories))
	for i := range trajectories {
		responses = append(responses, trajectoryResponse(&trajectories[i]))
	}
	httputil.WriteJSONOK(w, responses)
}

func (s *Server) getTrajectory(w http.ResponseWriter, r *http.Request, id string) {
	t, err := s.db.GetTrajectory(id)
	if err != nil {
		if errors.Is(err, db.ErrTrajectoryNotFound) {
			httputil.NotFound(w, "trajectory not found")
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("failed to fetch trajectory: %v", err))
		return
	}
	httputil.WriteJSONOK(w, trajectoryResponse(t))
}
