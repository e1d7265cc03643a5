// plan-plot renders a stored trajectory to a PNG for offline review.
//
// Usage:
//
//	plan-plot -db wallplan.db -id <trajectory-id> [-out path.png]
//	plan-plot -db wallplan.db -list
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mural-robotics/wallplan/internal/db"
)

var (
	dbPath = flag.String("db", "wallplan.db", "Path to the sqlite database file")
	id     = flag.String("id", "", "Trajectory id to render")
	out    = flag.String("out", "", "Output PNG path (default <id>.png)")
	list   = flag.Bool("list", false, "List stored trajectories and exit")
)

func main() {
	flag.Parse()

	database, err := db.OpenDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if *list {
		if err := listTrajectories(database); err != nil {
			log.Fatalf("failed to list trajectories: %v", err)
		}
		return
	}

	if *id == "" {
		flag.Usage()
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = *id + ".png"
	}

	if err := renderTrajectory(database, *id, outPath); err != nil {
		log.Fatalf("failed to render trajectory: %v", err)
	}
	log.Printf("wrote %s", outPath)
}

func listTrajectories(database *db.DB) error {
	trajectories, err := database.ListTrajectories(50, 0)
	if err != nil {
		return err
	}
	for _, t := range trajectories {
		name := ""
		if t.JobName != nil {
			name = *t.JobName
		}
		fmt.Printf("%s  %s  %.1fx%.1fm  %d waypoints  %q\n",
			t.ID, t.CreatedAt().Format("2006-01-02 15:04:05"),
			t.WallWidth, t.WallHeight, t.Meta.NumWaypoints, name)
	}
	return nil
}

func renderTrajectory(database *db.DB, id, outPath string) error {
	t, err := database.GetTrajectory(id)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trajectory %s", t.ID)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	// Fix the axes to the wall so aspect and position read correctly.
	p.X.Min, p.X.Max = 0, t.WallWidth
	p.Y.Min, p.Y.Max = 0, t.WallHeight

	wall := plotter.XYs{
		{X: 0, Y: 0},
		{X: t.WallWidth, Y: 0},
		{X: t.WallWidth, Y: t.WallHeight},
		{X: 0, Y: t.WallHeight},
		{X: 0, Y: 0},
	}
	wallLine, err := plotter.NewLine(wall)
	if err != nil {
		return err
	}
	wallLine.Color = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	p.Add(wallLine)

	for _, r := range t.ForbiddenRects {
		outline := plotter.XYs{
			{X: r.X, Y: r.Y},
			{X: r.MaxX(), Y: r.Y},
			{X: r.MaxX(), Y: r.MaxY()},
			{X: r.X, Y: r.MaxY()},
			{X: r.X, Y: r.Y},
		}
		rectLine, err := plotter.NewLine(outline)
		if err != nil {
			return err
		}
		rectLine.Color = color.RGBA{R: 200, G: 60, B: 60, A: 255}
		rectLine.Width = vg.Points(1.5)
		p.Add(rectLine)
	}

	path := make(plotter.XYs, 0, len(t.Waypoints))
	for _, wp := range t.Waypoints {
		path = append(path, plotter.XY{X: wp.X, Y: wp.Y})
	}
	pathLine, err := plotter.NewLine(path)
	if err != nil {
		return err
	}
	pathLine.Color = color.RGBA{R: 34, G: 102, B: 204, A: 255}
	p.Add(pathLine)
	p.Legend.Add("path", pathLine)
	p.Legend.Top = true

	width := 10 * vg.Inch
	height := vg.Length(float64(width) * t.WallHeight / t.WallWidth)
	return p.Save(width, height, outPath)
}
