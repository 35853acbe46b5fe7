package daemon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xclockdac/xclockd/internal/card"
	"github.com/xclockdac/xclockd/internal/clockgen"
	"github.com/xclockdac/xclockd/internal/codec"
	"github.com/xclockdac/xclockd/internal/observability"
)

type setRateRequest struct {
	Rate  uint32 `json:"rate"`
	Round bool   `json:"round"`
}

type streamRequest struct {
	Rate  uint32 `json:"rate"`
	Width int    `json:"width"`
}

// Router assembles the admin API.
func (s *Service) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(s.log))
	router.Use(observability.RequestMetricsMiddleware(s.cfg.Name))
	if len(s.cfg.CorsOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = s.cfg.CorsOrigins
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": s.cfg.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.GET("/status", s.handleStatus)
	api.GET("/rates", s.handleRates)
	api.GET("/round", s.handleRound)
	api.POST("/rate", s.handleSetRate)
	api.POST("/stream", s.handleStream)
	return router
}

func (s *Service) handleStatus(c *gin.Context) {
	rate := s.dev.RecalcRate()
	observability.RecordClockRate(ClockID, rate)
	c.JSON(http.StatusOK, gin.H{
		"card":            card.Name,
		"clock":           ClockID,
		"rate":            rate,
		"rate_known":      rate != 0,
		"register_value":  s.dev.Code(),
		"supported_rates": clockgen.SupportedRates(),
	})
}

func (s *Service) handleRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rates": clockgen.SupportedRates()})
}

func (s *Service) handleRound(c *gin.Context) {
	raw := c.Query("rate")
	requested, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate must be a positive integer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requested": requested,
		"rounded":   s.dev.RoundRate(uint32(requested)),
	})
}

func (s *Service) handleSetRate(c *gin.Context) {
	var req setRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rate := req.Rate
	if req.Round {
		rate = s.dev.RoundRate(rate)
	}
	if err := s.dev.SetRate(rate); err != nil {
		if errors.Is(err, clockgen.ErrInvalidRate) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	observability.RecordClockRate(ClockID, rate)
	c.JSON(http.StatusOK, gin.H{
		"requested": req.Rate,
		"rate":      rate,
	})
}

func (s *Service) handleStream(c *gin.Context) {
	var req streamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.card.HWParams(req.Rate, req.Width); err != nil {
		switch {
		case errors.Is(err, codec.ErrBadFrameSize),
			errors.Is(err, codec.ErrRateOutOfRange),
			errors.Is(err, clockgen.ErrInvalidRate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	observability.RecordClockRate(ClockID, s.dev.RecalcRate())
	c.JSON(http.StatusOK, gin.H{
		"rate":  req.Rate,
		"width": req.Width,
	})
}
