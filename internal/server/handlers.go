package server

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/philipparndt/printweight/pkg/analysis"
	"github.com/philipparndt/printweight/pkg/estimate"
	"github.com/philipparndt/printweight/pkg/render"
	"github.com/philipparndt/printweight/pkg/stl"
)

// Handler holds the API handlers
type Handler struct {
	maxUploadBytes int64
}

// NewHandler creates a new Handler
func NewHandler(maxUploadBytes int64) *Handler {
	return &Handler{
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadLimitMiddleware caps the request body size so an oversized
// upload fails with a clear error instead of exhausting memory
func (h *Handler) UploadLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
		}
		c.Next()
	}
}

// Index serves the embedded upload form
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// settingsForm carries the user-entered print settings. The basic five
// feed the weight formula; the advanced fields are recorded and echoed
// back only.
type settingsForm struct {
	Material           string  `form:"material,default=PLA"`
	MaterialDensity    float64 `form:"material_density"`
	InfillDensity      float64 `form:"infill_density,default=20"`
	InfillPattern      string  `form:"infill_pattern,default=Grid"`
	WallThickness      float64 `form:"wall_thickness,default=1.2"`
	TopBottomThickness float64 `form:"top_bottom_thickness,default=0.8"`
	LayerHeight        float64 `form:"layer_height,default=0.3"`

	InitialLayerHeight float64 `form:"initial_layer_height"`
	LineWidth          float64 `form:"line_width"`
	WallLineCount      int     `form:"wall_line_count"`
	InfillOverlap      float64 `form:"infill_overlap"`
	TopLayers          int     `form:"top_layers"`
	BottomLayers       int     `form:"bottom_layers"`
	PrintSpeed         float64 `form:"print_speed"`
	TravelSpeed        float64 `form:"travel_speed"`
	EnableRetraction   bool    `form:"enable_retraction"`
	GenerateSupport    bool    `form:"generate_support"`
	AdhesionType       string  `form:"adhesion_type,default=None"`
}

// parameters resolves the form into estimator parameters. An explicit
// density overrides the material table.
func (f settingsForm) parameters() (estimate.PrintParameters, error) {
	density := f.MaterialDensity
	if density == 0 {
		var err error
		density, err = estimate.DensityFor(f.Material)
		if err != nil {
			return estimate.PrintParameters{}, err
		}
	}

	params := estimate.PrintParameters{
		MaterialDensity:      density,
		InfillDensityPercent: f.InfillDensity,
		WallThicknessMM:      f.WallThickness,
		TopBottomThicknessMM: f.TopBottomThickness,
		LayerHeightMM:        f.LayerHeight,
	}
	if err := params.Validate(); err != nil {
		return estimate.PrintParameters{}, err
	}
	if f.InfillPattern != "" && !estimate.IsValidInfillPattern(f.InfillPattern) {
		return estimate.PrintParameters{}, fmt.Errorf("unknown infill pattern %q", f.InfillPattern)
	}
	return params, nil
}

// parseUpload reads and parses the uploaded model file
func parseUpload(c *gin.Context) (*stl.Model, *multipart.FileHeader, error) {
	fileHeader, err := c.FormFile("model")
	if err != nil {
		return nil, nil, fmt.Errorf("missing model file: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	model, err := stl.ParseReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse model as STL: %w", err)
	}
	return model, fileHeader, nil
}

// Estimate computes the print weight for an uploaded model
func (h *Handler) Estimate(c *gin.Context) {
	var form settingsForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := form.parameters()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, fileHeader, err := parseUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := estimate.Estimate(model.Volume(), params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("could not estimate weight: %v (the mesh may be inverted or non-manifold)", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  uuid.New().String(),
		"file":                fileHeader.Filename,
		"triangles":           model.TriangleCount(),
		"material":            form.Material,
		"material_density":    params.MaterialDensity,
		"infill_pattern":      form.InfillPattern,
		"volume_mm3":          result.VolumeMM3,
		"volume_cm3":          result.VolumeCM3,
		"adjusted_volume_cm3": result.AdjustedVolumeCM3,
		"weight_grams":        result.WeightGrams,
	})
}

// Analyze returns mesh statistics for an uploaded model
func (h *Handler) Analyze(c *gin.Context) {
	model, fileHeader, err := parseUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := analysis.AnalyzeModel(model)

	c.JSON(http.StatusOK, gin.H{
		"file":            fileHeader.Filename,
		"name":            model.Name,
		"triangles":       result.TriangleCount,
		"edges":           result.EdgeCount,
		"volume_mm3":      result.MeshVolume,
		"surface_area":    result.SurfaceArea,
		"dimensions":      result.Dimensions,
		"bounding_box":    result.BoundingBox,
		"min_edge_length": result.MinEdgeLength,
		"max_edge_length": result.MaxEdgeLength,
		"avg_edge_length": result.AvgEdgeLength,
	})
}

// previewForm carries the optional snapshot settings
type previewForm struct {
	Width     int     `form:"width,default=640"`
	Height    int     `form:"height,default=480"`
	RotationX float64 `form:"rotation_x,default=-0.45"`
	RotationY float64 `form:"rotation_y,default=0.6"`
}

// Preview renders an uploaded model to a PNG snapshot
func (h *Handler) Preview(c *gin.Context) {
	var form previewForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if form.Width < 16 || form.Width > 2048 || form.Height < 16 || form.Height > 2048 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preview size must be between 16 and 2048 pixels"})
		return
	}

	model, _, err := parseUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := render.DefaultOptions()
	opts.Width = form.Width
	opts.Height = form.Height
	opts.RotationX = form.RotationX
	opts.RotationY = form.RotationY

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, render.Snapshot(model, opts)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Materials returns the material density table
func (h *Handler) Materials(c *gin.Context) {
	c.JSON(http.StatusOK, estimate.Materials())
}

// Patterns returns the supported infill pattern names
func (h *Handler) Patterns(c *gin.Context) {
	c.JSON(http.StatusOK, estimate.InfillPatterns())
}
