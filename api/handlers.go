package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-dedupe-engine/config"
	"github.com/gcbaptista/go-dedupe-engine/internal/analytics"
	"github.com/gcbaptista/go-dedupe-engine/internal/engine"
	enginerrors "github.com/gcbaptista/go-dedupe-engine/internal/errors"
	"github.com/gcbaptista/go-dedupe-engine/model"
	"github.com/gcbaptista/go-dedupe-engine/services"
)

// API holds dependencies for API handlers, primarily the dedupe engine manager.
type API struct {
	engine    services.DatasetManager
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.DatasetManager, analyticsService *analytics.Service) *API {
	return &API{
		engine:    engine,
		analytics: analyticsService,
	}
}

// SetupRoutes defines all the API routes for the dedupe engine.
func SetupRoutes(router *gin.Engine, engine services.DatasetManager, analyticsService *analytics.Service) {
	apiHandler := NewAPI(engine, analyticsService)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}

	// Dataset management routes
	datasetRoutes := router.Group("/datasets")
	{
		datasetRoutes.POST("", apiHandler.CreateDatasetHandler)                      // Create a new dataset
		datasetRoutes.GET("", apiHandler.ListDatasetsHandler)                        // List all datasets
		datasetRoutes.GET("/:datasetName", apiHandler.GetDatasetHandler)             // Get dataset details (settings)
		datasetRoutes.DELETE("/:datasetName", apiHandler.DeleteDatasetHandler)       // Delete a dataset
		datasetRoutes.GET("/:datasetName/stats", apiHandler.GetDatasetStatsHandler)  // Get dataset statistics
		datasetRoutes.GET("/:datasetName/jobs", apiHandler.ListJobsHandler)          // List jobs for a dataset
		datasetRoutes.PUT("/:datasetName/synonyms", apiHandler.SetSynonymsHandler)   // Replace the synonym dictionary
		datasetRoutes.GET("/:datasetName/matches", apiHandler.GetMatchesHandler)     // Get the last scan result

		// Name management routes per dataset
		nameRoutes := datasetRoutes.Group("/:datasetName/names")
		{
			nameRoutes.PUT("", apiHandler.AddNamesHandler)      // Add names
			nameRoutes.GET("", apiHandler.GetNamesHandler)      // List names with pagination
			nameRoutes.DELETE("", apiHandler.ClearNamesHandler) // Delete all names
		}

		// Scan routes per dataset
		datasetRoutes.POST("/:datasetName/_scan", apiHandler.ScanHandler)            // Synchronous pairwise scan
		datasetRoutes.POST("/:datasetName/_scan_async", apiHandler.ScanAsyncHandler) // Background pairwise scan
	}
}

// CreateDatasetHandler handles the request to create a new dataset.
// Request Body: config.DatasetSettings
func (api *API) CreateDatasetHandler(c *gin.Context) {
	var settings config.DatasetSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateDatasetSettings(&settings); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if err := api.engine.CreateDataset(settings); err != nil {
		if errors.Is(err, enginerrors.ErrDatasetAlreadyExists) {
			SendDatasetExistsError(c, settings.Name)
			return
		}
		if errors.Is(err, enginerrors.ErrInvalidInput) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
			return
		}
		SendInternalError(c, "dataset creation", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Dataset '" + settings.Name + "' created successfully"})
}

// ListDatasetsHandler lists all available datasets.
func (api *API) ListDatasetsHandler(c *gin.Context) {
	names := api.engine.ListDatasets()
	c.JSON(http.StatusOK, gin.H{"datasets": names, "count": len(names)})
}

// GetDatasetHandler retrieves details about a specific dataset (its settings).
func (api *API) GetDatasetHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}
	c.JSON(http.StatusOK, accessor.Settings())
}

// DeleteDatasetHandler handles deleting a dataset.
func (api *API) DeleteDatasetHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")

	if err := api.engine.DeleteDataset(datasetName); err != nil {
		if errors.Is(err, enginerrors.ErrDatasetNotFound) {
			SendDatasetNotFoundError(c, datasetName)
			return
		}
		SendInternalError(c, "dataset deletion", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dataset '" + datasetName + "' deleted successfully"})
}

// GetDatasetStatsHandler returns statistics for a specific dataset.
func (api *API) GetDatasetStatsHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}
	c.JSON(http.StatusOK, accessor.Stats())
}

// AddNamesRequest defines the structure for adding candidate names.
type AddNamesRequest struct {
	Names []string `json:"names" binding:"required"`
}

// AddNamesHandler handles adding candidate names to a dataset. Large batches
// run as a background job when the engine supports it.
func (api *API) AddNamesHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}

	var req AddNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateNames(req.Names); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.AddNamesAsync(datasetName, req.Names)
		if err != nil {
			SendJobExecutionError(c, "name addition", err)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":     "accepted",
			"message":    fmt.Sprintf("Name addition started for dataset '%s' (%d names)", datasetName, len(req.Names)),
			"job_id":     jobID,
			"name_count": len(req.Names),
		})
		return
	}

	added, err := accessor.AddNames(req.Names)
	if err != nil {
		SendInternalError(c, "name addition", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d name(s) added to dataset '%s'", added, datasetName)})
}

// NameListRequest defines the structure for name listing requests.
type NameListRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// GetNamesHandler lists names in a dataset with pagination.
func (api *API) GetNamesHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}

	var req NameListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid query parameters: "+err.Error())
		return
	}

	// Set defaults
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100 // Maximum page size
	}

	names, total := accessor.Names((req.Page-1)*req.PageSize, req.PageSize)

	c.JSON(http.StatusOK, gin.H{
		"names":     names,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
		"pages":     (total + req.PageSize - 1) / req.PageSize,
	})
}

// ClearNamesHandler deletes all names from a dataset.
func (api *API) ClearNamesHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}

	if err := accessor.ClearNames(); err != nil {
		SendInternalError(c, "name deletion", err)
		return
	}
	if err := api.engine.PersistDataset(datasetName); err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed,
			"Failed to persist dataset '"+datasetName+"': "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All names deleted from dataset '" + datasetName + "'"})
}

// SetSynonymsRequest defines the structure for replacing a dataset's synonym
// dictionary. Each key maps a word to its acceptable substitutes.
type SetSynonymsRequest struct {
	Synonyms map[string][]string `json:"synonyms" binding:"required"`
}

// SetSynonymsHandler replaces the synonym dictionary of a dataset.
func (api *API) SetSynonymsHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}

	var req SetSynonymsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := accessor.SetSynonyms(req.Synonyms); err != nil {
		SendInternalError(c, "synonym update", err)
		return
	}
	if err := api.engine.PersistDataset(datasetName); err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed,
			"Failed to persist dataset '"+datasetName+"': "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Synonym dictionary replaced for dataset '%s'", datasetName),
		"key_count": len(req.Synonyms),
	})
}

// ScanHandler runs a synchronous pairwise match scan over a dataset.
// Request Body: services.ScanOptions (optional overrides)
func (api *API) ScanHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}

	var opts services.ScanOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			SendInvalidJSONError(c, err)
			return
		}
	}

	result, err := accessor.Scan(opts)
	if err != nil {
		if errors.Is(err, enginerrors.ErrBufferCapacity) {
			SendBufferCapacityError(c, datasetName, err)
			return
		}
		SendScanError(c, datasetName, err)
		return
	}

	// Record the scan for the analytics dashboard
	api.analytics.TrackScanEvent(model.ScanEvent{
		DatasetName:      datasetName,
		NameCount:        result.ScannedNames,
		MatchCount:       len(result.Pairs),
		WorkerCount:      result.WorkerCount,
		ProcessingTimeMs: float64(result.Took),
	})

	c.JSON(http.StatusOK, result)
}

// ScanAsyncHandler runs a pairwise match scan as a background job.
func (api *API) ScanAsyncHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")

	var opts services.ScanOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			SendInvalidJSONError(c, err)
			return
		}
	}

	concreteEngine, ok := api.engine.(*engine.Engine)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError,
			"Background scans not supported by this engine")
		return
	}

	jobID, err := concreteEngine.ScanAsync(datasetName, opts)
	if err != nil {
		if errors.Is(err, enginerrors.ErrDatasetNotFound) {
			SendDatasetNotFoundError(c, datasetName)
			return
		}
		SendJobExecutionError(c, "match scan", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Match scan started for dataset '" + datasetName + "'",
		"job_id":  jobID,
	})
}

// GetMatchesHandler returns the most recent scan result for a dataset.
func (api *API) GetMatchesHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	accessor, err := api.engine.GetDataset(datasetName)
	if err != nil {
		SendDatasetNotFoundError(c, datasetName)
		return
	}

	result := accessor.LastResult()
	if result == nil {
		SendError(c, http.StatusNotFound, ErrorCodeInvalidRequest,
			"Dataset '"+datasetName+"' has not been scanned yet")
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-dedupe-engine",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError,
			"Job management not supported by this engine")
		return
	}

	job, err := jobManager.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs for a dataset
func (api *API) ListJobsHandler(c *gin.Context) {
	datasetName := c.Param("datasetName")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError,
			"Job management not supported by this engine")
		return
	}

	jobs := jobManager.ListJobs(datasetName, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":         jobs,
		"dataset_name": datasetName,
		"total":        len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	engineWithMetrics, ok := api.engine.(*engine.Engine)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError,
			"Job metrics not supported by this engine")
		return
	}

	// Metrics are returned as a copy without the mutex
	metrics := engineWithMetrics.GetJobMetrics()

	c.JSON(http.StatusOK, gin.H{
		"metrics":          metrics,
		"success_rate":     engineWithMetrics.GetJobSuccessRate(),
		"current_workload": engineWithMetrics.GetCurrentWorkload(),
	})
}
