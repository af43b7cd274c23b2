package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/polyview/pkg/collide"
	"github.com/taigrr/polyview/pkg/models"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.obj|model.glb>",
		Short: "Display model information",
		Long:  "Display information about a mesh file including vertex, polygon and material counts, bounding box and bounding cylinder.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

func runInfo(modelPath string) error {
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	mesh, err := models.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	lo, hi := mesh.Bounds()
	size := mesh.Size()
	center := mesh.Center()
	cyl := collide.NewCylinder(mesh.Points())

	fmt.Printf("File:       %s\n", filepath.Base(modelPath))
	fmt.Printf("Format:     %s\n", strings.ToUpper(strings.TrimPrefix(filepath.Ext(modelPath), ".")))
	fmt.Printf("Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Println()
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Polygons:   %d\n", mesh.PolygonCount())
	fmt.Printf("Materials:  %s\n", strings.Join(mesh.Materials.Names(), ", "))
	fmt.Println()
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", lo.X, lo.Y, lo.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", hi.X, hi.Y, hi.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
	fmt.Printf("Cylinder:   radius %.3f, height %.3f\n", cyl.Radius, cyl.Height)

	return nil
}
