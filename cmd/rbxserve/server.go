package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	rbxdoc "github.com/SergeyMakeev/RbxDoc"
	"github.com/SergeyMakeev/RbxDoc/internal/observability"
)

type server struct {
	doc       *rbxdoc.Document
	file      string
	startedAt time.Time
	router    *gin.Engine
}

func newServer(doc *rbxdoc.Document, cfg serveConfig, logger zerolog.Logger) *server {
	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware())
	if len(cfg.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CorsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	srv := &server{
		doc:       doc,
		file:      cfg.File,
		startedAt: time.Now(),
		router:    r,
	}

	r.GET("/health", srv.handleHealth)
	r.GET("/types", srv.handleTypes)
	r.GET("/instances", srv.handleInstances)
	r.GET("/instances/:id", srv.handleInstance)
	r.GET("/metadata", srv.handleMetadata)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return srv
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(s.startedAt).String(),
		"file":      s.file,
		"types":     len(s.doc.Types),
		"instances": len(s.doc.Instances),
	})
}

func (s *server) handleTypes(c *gin.Context) {
	counts := make([]int, len(s.doc.Types))
	for i := range s.doc.Instances {
		typeIndex := int(s.doc.Instances[i].TypeIndex)
		if typeIndex < len(counts) {
			counts[typeIndex]++
		}
	}

	out := make([]gin.H, 0, len(s.doc.Types))
	for i := range s.doc.Types {
		out = append(out, gin.H{
			"index":     i,
			"name":      s.doc.Types[i].Name,
			"instances": counts[i],
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) handleInstances(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad offset"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad limit"})
		return
	}

	end := offset + limit
	if offset > len(s.doc.Instances) {
		offset = len(s.doc.Instances)
	}
	if end > len(s.doc.Instances) {
		end = len(s.doc.Instances)
	}

	out := make([]gin.H, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, s.instanceSummary(&s.doc.Instances[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"total":     len(s.doc.Instances),
		"offset":    offset,
		"instances": out,
	})
}

func (s *server) handleInstance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 || id >= len(s.doc.Instances) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such instance"})
		return
	}

	inst := &s.doc.Instances[id]
	out := s.instanceSummary(inst)

	props := inst.Properties()
	rendered := make([]gin.H, 0, len(props))
	for i := range props {
		prop := &props[i]
		rendered = append(rendered, gin.H{
			"name":  prop.Name(),
			"kind":  prop.Kind().String(),
			"value": propertyValue(prop),
		})
	}
	out["properties"] = rendered
	c.JSON(http.StatusOK, out)
}

func (s *server) handleMetadata(c *gin.Context) {
	out := make([]gin.H, 0, len(s.doc.Metadata))
	for _, entry := range s.doc.Metadata {
		out = append(out, gin.H{"name": entry.Name, "value": entry.Value})
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) instanceSummary(inst *rbxdoc.Instance) gin.H {
	out := gin.H{
		"id":       inst.ID,
		"type":     s.doc.TypeName(inst),
		"parent":   inst.ParentID,
		"children": inst.ChildIDs(),
	}
	if inst.IsService {
		out["service"] = true
		out["serviceRooted"] = inst.IsServiceRooted
	}
	return out
}

// propertyValue maps a decoded property to a JSON-friendly value.
// Unknown wire formats render as null.
func propertyValue(p *rbxdoc.Property) any {
	if p.Kind() == rbxdoc.KindUnknown {
		return nil
	}
	return p.Value()
}
