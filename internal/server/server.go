/*
 * server.go, part of cebeconf.
 *
 *
 * Copyright 2026 The cebeconf authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

//Package server serves core binding energy predictions over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/internal/metrics"
	"github.com/rmera/cebeconf/krr"
	"github.com/rmera/cebeconf/report"
)

//RequestIDHeader carries the id of each request. A valid UUID sent by the
//client is kept, otherwise a new one is generated.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

const shutdownTimeout = 15 * time.Second

//Options configures a Server.
type Options struct {
	Addr         string
	MaxBodyBytes int64
	//Elements are the symbols of the loaded models, reported by /healthz.
	Elements []string
}

//Server is the HTTP front end of a predictor.
type Server struct {
	predictor *krr.Predictor
	log       *zap.Logger
	metrics   *metrics.Metrics
	opts      Options
	engine    *gin.Engine
	srv       *http.Server
}

//New returns a server that predicts with p. m may be nil, then no metrics
//are recorded and /metrics is not served.
func New(p *krr.Predictor, log *zap.Logger, m *metrics.Metrics, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	s := &Server{predictor: p, log: log, metrics: m, opts: opts}
	e := gin.New()
	e.Use(gin.Recovery(), s.requestID(), s.logRequests())
	e.GET("/healthz", s.healthz)
	e.POST("/v1/predict", s.predict)
	if m != nil {
		e.GET("/metrics", gin.WrapH(m.Handler()))
	}
	s.engine = e
	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

//Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

//Run listens on the configured address until ctx is done, then shuts the
//server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.opts.Addr))
		errc <- s.srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	s.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		if s.metrics != nil {
			s.metrics.Request(route, code, d)
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", code),
			zap.Duration("duration", d),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.Last().Error()))
		}
		switch {
		case code >= 500:
			s.log.Error("request", fields...)
		case code >= 400:
			s.log.Warn("request", fields...)
		default:
			s.log.Debug("request", fields...)
		}
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "elements": s.opts.Elements})
}

//predict reads an XYZ geometry from the body and answers with the JSON
//report, or the plain text one if the query has format=text.
func (s *Server) predict(c *gin.Context) {
	start := time.Now()
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	mol, err := cebe.XYZRead(bytes.NewReader(body))
	if err != nil {
		s.fail(c, StatusFor(err), err)
		return
	}
	preds, err := s.predictor.Molecule(c.Request.Context(), mol)
	if err != nil {
		s.fail(c, StatusFor(err), err)
		return
	}
	if s.metrics != nil {
		s.metrics.Molecules.Inc()
	}
	s.log.Debug("predicted", zap.String("formula", cebe.Formula(mol)), zap.String("request_id", c.GetString(requestIDKey)))
	r := &report.Report{
		Title:       mol.Title,
		Predictions: preds,
		Timings:     report.Timings{Total: time.Since(start)},
	}
	if c.Query("format") == "text" {
		var buf bytes.Buffer
		if err := report.Text(&buf, r); err != nil {
			s.fail(c, http.StatusInternalServerError, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, report.NewDocument(r))
}

func (s *Server) fail(c *gin.Context, code int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error(), "request_id": c.GetString(requestIDKey)})
}

//StatusFor maps an error to an HTTP status code: problems with the
//submitted geometry are client errors, everything else is a server error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, cebe.ErrFormat),
		errors.Is(err, cebe.ErrUnsupportedElement),
		errors.Is(err, cebe.ErrDescriptorSize):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
