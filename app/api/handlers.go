package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/okozhin/notion-ics/app/calendar"
)

func NewHandler(configCache *calendar.ConfigCache, assembler AssemblerInterface) *Handler {
	return &Handler{
		configCache: configCache,
		assembler:   assembler,
		generator:   calendar.NewGenerator(),
	}
}

func (h *Handler) GetCalendar(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".ics")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	viewConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("View configuration not found", "view", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	result, err := h.assembler.Run(c.Request.Context(), viewConfig)
	if err != nil {
		slog.Error("Feed assembly failed", "view", name, "error", err)
		c.Status(http.StatusBadGateway)
		return
	}

	ical, err := h.generator.Run(viewConfig, result.Events)
	if err != nil {
		slog.Error("ICS generation failed", "view", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("X-Feed-Events", strconv.Itoa(len(result.Events)))
	c.Header("X-Feed-Skipped", strconv.Itoa(result.Skipped))
	c.Header("X-Feed-Name", name)

	c.String(http.StatusOK, ical)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":             time.Now().In(time.Local).Format(time.RFC3339),
		"loaded_configurations": h.configCache.GetConfigCount(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListViews(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	views := make([]map[string]interface{}, 0, len(configs))

	for _, viewConfig := range configs {
		viewInfo := map[string]interface{}{
			"name":          viewConfig.Name,
			"database_id":   viewConfig.DatabaseID,
			"date_property": viewConfig.DateProperty,
			"timezone":      viewConfig.Timezone,
			"filters":       len(viewConfig.Filters),
		}
		if viewConfig.QueryDaysBack != nil {
			viewInfo["query_days_back"] = *viewConfig.QueryDaysBack
		}
		if viewConfig.QueryDaysForward != nil {
			viewInfo["query_days_forward"] = *viewConfig.QueryDaysForward
		}

		views = append(views, viewInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"views": views,
		"total": len(views),
	})
}

func (h *Handler) APIGetViewDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing view name parameter"})
		return
	}

	viewConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("View configuration not found", "view", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "View configuration not found"})
		return
	}

	details := map[string]interface{}{
		"name":                 viewConfig.Name,
		"database_id":          viewConfig.DatabaseID,
		"date_property":        viewConfig.DateProperty,
		"title_property":       viewConfig.TitleProperty,
		"description_property": viewConfig.DescriptionProperty,
		"location_property":    viewConfig.LocationProperty,
		"url_property":         viewConfig.URLProperty,
		"timezone":             viewConfig.Timezone,
		"title_prefix":         viewConfig.TitlePrefix,
		"calendar_name":        viewConfig.CalendarName,
		"filters":              viewConfig.Filters,
	}
	if viewConfig.QueryDaysBack != nil {
		details["query_days_back"] = *viewConfig.QueryDaysBack
	}
	if viewConfig.QueryDaysForward != nil {
		details["query_days_forward"] = *viewConfig.QueryDaysForward
	}

	c.JSON(http.StatusOK, details)
}
