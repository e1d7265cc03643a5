// Package config loads service-level planner defaults from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mural-robotics/wallplan/internal/planner"
)

// PlannerDefaults holds server-side fallbacks for planner parameters.
// All fields are pointers so a partial config file only overrides what
// it names; requests that set a parameter always win over the file.
type PlannerDefaults struct {
	ToolWidth        *float64 `json:"tool_width,omitempty"`
	Overlap          *float64 `json:"overlap,omitempty"`
	SafeMargin       *float64 `json:"safe_margin,omitempty"`
	Orientation      *string  `json:"orientation,omitempty"`
	WaypointSpacing  *float64 `json:"waypoint_spacing,omitempty"`
	MinSegmentLength *float64 `json:"min_segment_length,omitempty"`
	Speed            *float64 `json:"speed,omitempty"`
}

// LoadPlannerDefaults loads a PlannerDefaults from a JSON file.
// The file is validated to ensure it has a .json extension and is under
// the max file size. Fields omitted from the JSON file stay nil, so
// partial configs are safe.
func LoadPlannerDefaults(path string) (*PlannerDefaults, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadPlannerDefaultsFromJSON(data)
}

// LoadPlannerDefaultsFromJSON parses and validates defaults from raw
// JSON bytes.
func LoadPlannerDefaultsFromJSON(data []byte) (*PlannerDefaults, error) {
	cfg := &PlannerDefaults{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *PlannerDefaults) Validate() error {
	if c.ToolWidth != nil && *c.ToolWidth <= 0 {
		return fmt.Errorf("tool_width must be positive, got %f", *c.ToolWidth)
	}
	if c.Overlap != nil && (*c.Overlap < 0 || *c.Overlap >= 1) {
		return fmt.Errorf("overlap must be in [0, 1), got %f", *c.Overlap)
	}
	if c.SafeMargin != nil && *c.SafeMargin < 0 {
		return fmt.Errorf("safe_margin must be non-negative, got %f", *c.SafeMargin)
	}
	if c.Orientation != nil {
		switch planner.Orientation(*c.Orientation) {
		case planner.OrientationAuto, planner.OrientationVertical, planner.OrientationHorizontal:
		default:
			return fmt.Errorf("unknown orientation %q", *c.Orientation)
		}
	}
	if c.WaypointSpacing != nil && *c.WaypointSpacing <= 0 {
		return fmt.Errorf("waypoint_spacing must be positive, got %f", *c.WaypointSpacing)
	}
	if c.MinSegmentLength != nil && *c.MinSegmentLength < 0 {
		return fmt.Errorf("min_segment_length must be non-negative, got %f", *c.MinSegmentLength)
	}
	if c.Speed != nil && *c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %f", *c.Speed)
	}
	return nil
}

// ApplyTo fills zero-valued or unset fields of params from the
// defaults. Request-level values always take precedence.
func (c *PlannerDefaults) ApplyTo(params planner.Params) planner.Params {
	if c == nil {
		return params
	}
	if params.ToolWidth == 0 && c.ToolWidth != nil {
		params.ToolWidth = *c.ToolWidth
	}
	if params.Overlap == 0 && c.Overlap != nil {
		params.Overlap = *c.Overlap
	}
	if params.SafeMargin == 0 && c.SafeMargin != nil {
		params.SafeMargin = *c.SafeMargin
	}
	if params.Orientation == "" && c.Orientation != nil {
		params.Orientation = planner.Orientation(*c.Orientation)
	}
	if params.WaypointSpacing == nil && c.WaypointSpacing != nil {
		v := *c.WaypointSpacing
		params.WaypointSpacing = &v
	}
	if params.MinSegmentLength == nil && c.MinSegmentLength != nil {
		v := *c.MinSegmentLength
		params.MinSegmentLength = &v
	}
	if params.Speed == nil && c.Speed != nil {
		v := *c.Speed
		params.Speed = &v
	}
	return params
}
