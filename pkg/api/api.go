// Package api serves paper cutting sessions over HTTP.
package api

import (
	"bytes"
	"net/http"

	"jcuts/pkg/cfg"
	"jcuts/pkg/compare"
	"jcuts/pkg/export"
	"jcuts/pkg/geometry"
	"jcuts/pkg/paper"
	"jcuts/pkg/shape"
	"jcuts/pkg/symmetry"

	"github.com/gin-gonic/gin"
)

type createRequest struct {
	EdgeCount int            `json:"edgeCount"`
	Center    geometry.Point `json:"center"`
	Radius    float64        `json:"radius"`
}

type createResponse struct {
	ID    string      `json:"id"`
	Shape shape.Shape `json:"shape"`
}

type cutRequest struct {
	Path geometry.Polyline `json:"path"`
}

type cutResponse struct {
	OK      bool              `json:"ok"`
	Error   string            `json:"error,omitempty"`
	Polygon geometry.Polyline `json:"polygon"`
	CutOff  geometry.Polyline `json:"cutOff"`
}

type compareRequest struct {
	A shape.Shape `json:"a"`
	B shape.Shape `json:"b"`
}

type server struct {
	store *Store
}

// NewRouter returns the HTTP handler for the sessions in store. Requests are
// logged when logRequests is set.
func NewRouter(store *Store, logRequests bool) *gin.Engine {
	r := gin.New()
	if logRequests {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	s := &server{store: store}
	r.POST("/papers", s.createPaper)
	r.GET("/papers/:id", s.getPaper)
	r.DELETE("/papers/:id", s.deletePaper)
	r.POST("/papers/:id/cut", s.cut)
	r.POST("/papers/:id/reset", s.reset)
	r.GET("/papers/:id/artwork", s.artwork)
	r.GET("/papers/:id/artwork.svg", s.artworkSVG)
	r.GET("/papers/:id/preview.png", s.preview)
	r.POST("/compare", s.compare)
	return r
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "no paper with id " + c.Param("id")})
}

// withPaper runs fn on the paper named by the request, or answers 404.
func (s *server) withPaper(c *gin.Context, fn func(p *paper.Paper)) {
	if !s.store.With(c.Param("id"), fn) {
		notFound(c)
	}
}

func (s *server) createPaper(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := paper.ValidateBase(req.EdgeCount, req.Center, req.Radius); err != nil {
		badRequest(c, err)
		return
	}
	p := paper.New(req.EdgeCount, req.Center, req.Radius)
	id := s.store.Create(p)
	c.JSON(http.StatusCreated, createResponse{ID: id, Shape: p.Serialize()})
}

func (s *server) getPaper(c *gin.Context) {
	s.withPaper(c, func(p *paper.Paper) {
		c.JSON(http.StatusOK, p.Serialize())
	})
}

func (s *server) deletePaper(c *gin.Context) {
	if !s.store.Delete(c.Param("id")) {
		notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) cut(c *gin.Context) {
	var req cutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.withPaper(c, func(p *paper.Paper) {
		resp := cutResponse{OK: true}
		if _, err := p.Cut(req.Path); err != nil {
			resp.OK = false
			resp.Error = err.Error()
		}
		resp.Polygon = p.Polygon()
		resp.CutOff = p.CutOffPolygon()
		c.JSON(http.StatusOK, resp)
	})
}

func (s *server) reset(c *gin.Context) {
	s.withPaper(c, func(p *paper.Paper) {
		p.Rebuild(p.EdgeCount(), p.Center(), p.Radius())
		c.JSON(http.StatusOK, p.Serialize())
	})
}

func (s *server) artwork(c *gin.Context) {
	s.withPaper(c, func(p *paper.Paper) {
		c.JSON(http.StatusOK, gin.H{"polygons": symmetry.ExpandShape(p.Serialize())})
	})
}

func (s *server) artworkSVG(c *gin.Context) {
	s.withPaper(c, func(p *paper.Paper) {
		size := 2 * p.Radius()
		data, err := export.Artwork(symmetry.ExpandShape(p.Serialize()), size, size).Marshal()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", data)
	})
}

func (s *server) preview(c *gin.Context) {
	s.withPaper(c, func(p *paper.Paper) {
		var buf bytes.Buffer
		if err := export.Preview(&buf, symmetry.ExpandShape(p.Serialize())); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	})
}

func (s *server) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	for _, sh := range []shape.Shape{req.A, req.B} {
		if err := sh.Validate(cfg.MinEdgeCount, cfg.MaxEdgeCount); err != nil {
			badRequest(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"similarity": compare.DiffShape(req.A, req.B)})
}
