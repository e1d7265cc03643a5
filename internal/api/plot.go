package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mural-robotics/wallplan/internal/db"
	"github.com/mural-robotics/wallplan/internal/httputil"
)

// plotTrajectory renders a quick HTML preview of a stored trajectory
// using go-echarts: the waypoint path as a line in wall coordinates and
// each forbidden rectangle as a closed outline. This is a debugging
// view, not the production frontend.
func (s *Server) plotTrajectory(w http.ResponseWriter, r *http.Request, id string) {
	t, err := s.db.GetTrajectory(id)
	if err != nil {
		if errors.Is(err, db.ErrTrajectoryNotFound) {
			httputil.NotFound(w, "trajectory not found")
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("failed to fetch trajectory: %v", err))
		return
	}

	path := make([]opts.LineData, 0, len(t.Waypoints))
	for _, wp := range t.Waypoints {
		path = append(path, opts.LineData{Value: []interface{}{wp.X, wp.Y}})
	}

	// Pad the axes slightly so waypoints on the wall edge stay visible.
	padX := t.WallWidth * 0.05
	padY := t.WallHeight * 0.05

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Wallplan Trajectory",
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Coverage trajectory",
			Subtitle: fmt.Sprintf("id=%s waypoints=%d path=%.2fm coverage=%.1f%%",
				t.ID, t.Meta.NumWaypoints, t.Meta.PathLength, t.Meta.CoverageFraction*100),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: -padX, Max: t.WallWidth + padX, Name: "X (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: -padY, Max: t.WallHeight + padY, Name: "Y (m)"}),
	)
	line.AddSeries("path", path)

	for i, rect := range t.ForbiddenRects {
		outline := []opts.LineData{
			{Value: []interface{}{rect.X, rect.Y}},
			{Value: []interface{}{rect.MaxX(), rect.Y}},
			{Value: []interface{}{rect.MaxX(), rect.MaxY()}},
			{Value: []interface{}{rect.X, rect.MaxY()}},
			{Value: []interface{}{rect.X, rect.Y}},
		}
		line.AddSeries(fmt.Sprintf("forbidden %d", i), outline)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render plot: %v", err))
	}
}
