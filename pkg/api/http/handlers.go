package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clusterlab/podlab/pkg/adapters/storage"
)

const kvKeyPrefix = "kv:"

const visitsKey = "visits"

// KeyValueRequest represents the body for POST /kv/{key}
type KeyValueRequest struct {
	Value string `json:"value" binding:"required"`
}

// LoginRequest represents the body for POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleRoot handles the greeting endpoint
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Hello from %s!", s.settings.AppName),
		"server":  s.hostname,
	})
}

// handleHealth handles liveness probe requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleReady handles readiness probe requests
func (s *Server) handleReady(c *gin.Context) {
	if s.ready.Ready() {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
}

// handleReadyEnable marks the instance ready. Deliberately unauthenticated:
// this is an exposed admin-style control surface for orchestration demos.
func (s *Server) handleReadyEnable(c *gin.Context) {
	s.ready.Enable()
	s.metrics.SetReady(true)

	s.logger.Info("readiness enabled")
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// handleReadyDisable marks the instance not ready
func (s *Server) handleReadyDisable(c *gin.Context) {
	s.ready.Disable()
	s.metrics.SetReady(false)

	s.logger.Info("readiness disabled")
	c.JSON(http.StatusOK, gin.H{"status": "not ready"})
}

// handleCrash terminates the process immediately so the orchestrator's
// restart behavior can be exercised. No graceful shutdown, no response.
func (s *Server) handleCrash(c *gin.Context) {
	s.logger.Warn("crash requested, terminating process")
	_ = s.logger.Sync()
	s.exit(1)
}

// handleStress burns CPU on a pool worker for the requested number of
// seconds, capped at the configured maximum.
func (s *Server) handleStress(c *gin.Context) {
	seconds, err := strconv.Atoi(c.DefaultQuery("seconds", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seconds must be an integer"})
		return
	}

	stressed, err := s.stress.Burn(c.Request.Context(), seconds)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	s.metrics.RecordStressSeconds(stressed)

	c.JSON(http.StatusOK, gin.H{
		"stressed_seconds": stressed,
		"server":           s.hostname,
	})
}

// handleConfig returns the configuration values sourced at process start
func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app_name":           s.settings.AppName,
		"log_level":          s.settings.LogLevel,
		"max_stress_seconds": s.settings.MaxStressSeconds,
	})
}

// handleVersion returns the app version and server hostname
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": s.version,
		"server":  s.hostname,
	})
}

// handleInfo returns pod metadata injected via downward API env vars
func (s *Server) handleInfo(c *gin.Context) {
	pod := s.settings.Pod
	c.JSON(http.StatusOK, gin.H{
		"pod_name":       pod.Name,
		"pod_ip":         pod.IP,
		"node_name":      pod.NodeName,
		"namespace":      pod.Namespace,
		"cpu_request":    pod.CPURequest,
		"cpu_limit":      pod.CPULimit,
		"memory_request": pod.MemoryRequest,
		"memory_limit":   pod.MemoryLimit,
	})
}

// handleVisits atomically increments and returns the shared visit counter
func (s *Server) handleVisits(c *gin.Context) {
	count, err := s.store.Incr(c.Request.Context(), visitsKey)
	s.recordStore("incr", err)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"visits": count,
		"server": s.hostname,
	})
}

// handleKVGet retrieves a value by key from the store
func (s *Server) handleKVGet(c *gin.Context) {
	key := c.Param("key")

	value, err := s.store.Get(c.Request.Context(), getKVKey(key))
	s.recordStore("get", err)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// handleKVSet stores a value under a namespaced key. Last write wins; there
// is no prior-value check.
func (s *Server) handleKVSet(c *gin.Context) {
	key := c.Param("key")

	var req KeyValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.store.Set(c.Request.Context(), getKVKey(key), req.Value, 0)
	s.recordStore("set", err)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// handleLogin checks credentials and issues a session cookie
func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !s.creds.Verify(req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := s.sessions.Create(c.Request.Context(), req.Username)
	s.recordStore("set", err)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}

	s.metrics.RecordSessionCreated()
	s.logger.Info("user logged in", zap.String("username", req.Username))

	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message":  "logged in",
		"username": req.Username,
	})
}

// handleLogout deletes the session if one exists and always clears the
// cookie. Store failures are swallowed so the client can clear its cookie
// even when the store is down.
func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		if err := s.sessions.Delete(c.Request.Context(), token); err != nil {
			s.logger.Warn("session delete failed during logout", zap.Error(err))
		}
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// handleMe returns the authenticated user resolved by requireSession
func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": c.GetString(contextKeyUsername),
		"server":   s.hostname,
	})
}

// writeStoreError translates storage error kinds into status codes. This is
// the single place where store failures become HTTP responses.
func (s *Server) writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "key not found"})
	case errors.Is(err, storage.ErrUnavailable):
		s.logger.Error("store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "redis unavailable"})
	default:
		s.logger.Error("store error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// recordStore records the outcome of a store call for metrics
func (s *Server) recordStore(operation string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		result = "not_found"
	case errors.Is(err, storage.ErrUnavailable):
		result = "unavailable"
	default:
		result = "error"
	}
	s.metrics.RecordStoreOperation(operation, result)
}

// getKVKey returns the namespaced store key for a user key
func getKVKey(key string) string {
	return kvKeyPrefix + key
}
