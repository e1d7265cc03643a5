package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mural-robotics/wallplan/internal/geom"
	"github.com/mural-robotics/wallplan/internal/planner"
)

// ErrTrajectoryNotFound is returned when a lookup misses.
var ErrTrajectoryNotFound = errors.New("trajectory not found")

// Waypoint is the persisted form of a planner waypoint, with an explicit
// 1-based sequence number so consumers reading the stored JSON do not
// depend on array order.
type Waypoint struct {
	Seq   int      `json:"seq"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Theta float64  `json:"theta"`
	Speed *float64 `json:"speed,omitempty"`
}

// Trajectory is one stored planning job: the request inputs, the derived
// forbidden regions, the waypoint path and the run metadata.
type Trajectory struct {
	ID             string         `json:"id"`
	JobName        *string        `json:"job_name,omitempty"`
	WallWidth      float64        `json:"wall_width"`
	WallHeight     float64        `json:"wall_height"`
	Obstacles      []geom.Rect    `json:"obstacles"`
	PlannerParams  planner.Params `json:"planner_params"`
	ForbiddenRects []geom.Rect    `json:"forbidden_rects"`
	Waypoints      []Waypoint     `json:"waypoints"`
	Meta           planner.Meta   `json:"meta"`
	Status         string         `json:"status"`
	CreatedAtNs    int64          `json:"created_at_ns"`
}

// CreatedAt returns the creation time as a time.Time.
func (t *Trajectory) CreatedAt() time.Time {
	return time.Unix(0, t.CreatedAtNs)
}

// InsertTrajectory stores a trajectory. If t.ID is empty a new UUID is
// generated; if CreatedAtNs is zero the current time is used. Both are
// written back to t.
func (db *DB) InsertTrajectory(t *Trajectory) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAtNs == 0 {
		t.CreatedAtNs = time.Now().UnixNano()
	}
	if t.Status == "" {
		t.Status = "completed"
	}

	obstacles, err := json.Marshal(t.Obstacles)
	if err != nil {
		return fmt.Errorf("failed to marshal obstacles: %w", err)
	}
	params, err := json.Marshal(t.PlannerParams)
	if err != nil {
		return fmt.Errorf("failed to marshal planner params: %w", err)
	}
	forbidden, err := json.Marshal(t.ForbiddenRects)
	if err != nil {
		return fmt.Errorf("failed to marshal forbidden rects: %w", err)
	}
	waypoints, err := json.Marshal(t.Waypoints)
	if err != nil {
		return fmt.Errorf("failed to marshal waypoints: %w", err)
	}
	meta, err := json.Marshal(t.Meta)
	if err != nil {
		return fmt.Errorf("failed to marshal meta: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO trajectories (
			trajectory_id, job_name, wall_width, wall_height,
			obstacles_json, planner_params_json, forbidden_rects_json,
			waypoints_json, meta_json, status, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.JobName, t.WallWidth, t.WallHeight,
		string(obstacles), string(params), string(forbidden),
		string(waypoints), string(meta), t.Status, t.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trajectory: %w", err)
	}
	return nil
}

const trajectoryColumns = `trajectory_id, job_name, wall_width, wall_height,
	obstacles_json, planner_params_json, forbidden_rects_json,
	waypoints_json, meta_json, status, created_at_ns`

// GetTrajectory fetches one trajectory by id. Returns
// ErrTrajectoryNotFound when no record exists.
func (db *DB) GetTrajectory(id string) (*Trajectory, error) {
	row := db.QueryRow(
		`SELECT `+trajectoryColumns+` FROM trajectories WHERE trajectory_id = ?`, id)

	t, err := scanTrajectory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrajectoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTrajectories returns a page of trajectories, newest first.
func (db *DB) ListTrajectories(limit, offset int) ([]Trajectory, error) {
	rows, err := db.Query(
		`SELECT `+trajectoryColumns+` FROM trajectories
		 ORDER BY created_at_ns DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trajectories []Trajectory
	for rows.Next() {
		t, err := scanTrajectory(rows.Scan)
		if err != nil {
			return nil, err
		}
		trajectories = append(trajectories, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trajectories, nil
}

// CountTrajectories returns the total number of stored trajectories.
func (db *DB) CountTrajectories() (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trajectories`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanTrajectory(scan func(dest ...any) error) (*Trajectory, error) {
	var (
		t         Trajectory
		obstacles string
		params    string
		forbidden string
		waypoints string
		meta      string
	)

	err := scan(
		&t.ID, &t.JobName, &t.WallWidth, &t.WallHeight,
		&obstacles, &params, &forbidden, &waypoints, &meta,
		&t.Status, &t.CreatedAtNs,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(obstacles), &t.Obstacles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal obstacles for %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(params), &t.PlannerParams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal planner params for %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(forbidden), &t.ForbiddenRects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forbidden rects for %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(waypoints), &t.Waypoints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal waypoints for %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(meta), &t.Meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meta for %s: %w", t.ID, err)
	}

	return &t, nil
}
