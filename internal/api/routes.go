package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"fairness-audit/backend/internal/ai"
	"fairness-audit/backend/internal/audit"
	"fairness-audit/backend/internal/fairness"
	"fairness-audit/backend/internal/store"
)

const maxRequestBytes = 32 << 20

// Config defines server dependencies.
type Config struct {
	DBPath              string
	DisablePersistence  bool
	SilentDB            bool
	HistoryLimit        int
	AllowedOrigins      []string
	AIConfig            ai.Config
	DisableAI           bool
	RecommendTimeout    time.Duration
	DefaultModelVersion string
}

// Server wires HTTP handlers with the audit engine and persistence.
type Server struct {
	db                  *store.Database
	engine              *audit.Engine
	notifier            *AuditNotifier
	schema              *jsonschema.Schema
	allowedOrigins      []string
	aiProvider          string
	recommendTimeout    time.Duration
	defaultModelVersion string
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	var db *store.Database
	var seed []audit.Result
	if cfg.DisablePersistence {
		logrus.Info("audit persistence disabled via configuration")
	} else {
		if cfg.DBPath == "" {
			return nil, errors.New("db path required")
		}
		opened, err := store.Open(cfg.DBPath, cfg.SilentDB)
		if err != nil {
			return nil, err
		}
		db = opened
		seed, err = db.LoadResults(context.Background(), cfg.HistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("load audit history: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"audits":  len(seed),
			"db_path": cfg.DBPath,
		}).Info("loaded audit history")
	}

	var recommender ai.Recommender
	provider := "rules"
	if cfg.DisableAI {
		logrus.Info("AI recommender disabled via configuration")
	} else if client, err := ai.NewClient(cfg.AIConfig); err == nil {
		recommender = client
		provider = client.Provider()
		logrus.WithField("provider", provider).Info("AI recommender enabled")
	} else if errors.Is(err, ai.ErrDisabled) {
		logrus.Info("AI recommender not configured, using rule table")
	} else {
		return nil, fmt.Errorf("ai client: %w", err)
	}

	notifier := NewAuditNotifier()
	opts := audit.Options{
		RecommendTimeout: cfg.RecommendTimeout,
		Publisher:        notifier,
	}
	if db != nil {
		opts.Recorder = db
	}
	engine := audit.NewEngine(audit.NewHistory(seed...), recommender, opts)

	server, err := newServer(engine, notifier, cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}
	server.db = db
	server.aiProvider = provider
	server.recommendTimeout = cfg.RecommendTimeout
	server.defaultModelVersion = cfg.DefaultModelVersion
	return server, nil
}

func newServer(engine *audit.Engine, notifier *AuditNotifier, origins []string) (*Server, error) {
	schema, err := compileAuditRequestSchema()
	if err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = NewAuditNotifier()
	}
	return &Server{
		engine:         engine,
		notifier:       notifier,
		schema:         schema,
		allowedOrigins: origins,
		aiProvider:     "rules",
	}, nil
}

// Close releases the database handle.
func (s *Server) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)

	api := r.Group("/api")
	{
		api.POST("/audits", s.handlePerformAudit)
		api.GET("/audits", s.handleHistory)
		api.GET("/audits/latest", s.handleLatest)
		api.GET("/audits/stream", s.handleAuditStream)
		api.GET("/audits/:id", s.handleGetAudit)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ai_provider":       s.aiProvider,
		"persistence":       s.db != nil,
		"recommend_timeout": s.recommendTimeout.String(),
		"audits":            s.engine.History().Len(),
		"categories":        fairness.Categories,
		"stream_clients":    s.notifier.ClientCount(),
	})
}

func (s *Server) handlePerformAudit(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBytes))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	req, err := decodeAuditRequest(s.schema, body)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	modelVersion := strings.TrimSpace(req.ModelVersion)
	if modelVersion == "" {
		modelVersion = s.defaultModelVersion
	}

	result, err := s.engine.PerformAudit(c.Request.Context(), req.Results, req.DatasetInfo, modelVersion)
	if err != nil {
		if errors.Is(err, fairness.ErrInvalidInput) {
			s.renderError(c, http.StatusBadRequest, err)
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.History().All())
}

func (s *Server) handleLatest(c *gin.Context) {
	latest, ok := s.engine.History().Latest()
	if !ok {
		s.renderError(c, http.StatusNotFound, errors.New("no audits recorded"))
		return
	}
	c.JSON(http.StatusOK, latest)
}

func (s *Server) handleGetAudit(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if result, ok := s.engine.History().Find(id); ok {
		c.JSON(http.StatusOK, result)
		return
	}
	if s.db != nil {
		entry, err := s.db.GetAudit(c.Request.Context(), id)
		if err == nil {
			result, decodeErr := entry.Result()
			if decodeErr != nil {
				s.renderError(c, http.StatusInternalServerError, decodeErr)
				return
			}
			c.JSON(http.StatusOK, result)
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			s.renderError(c, http.StatusInternalServerError, err)
			return
		}
	}
	s.renderError(c, http.StatusNotFound, fmt.Errorf("audit %s not found", id))
}

func (s *Server) handleAuditStream(c *gin.Context) {
	upgrader := websocket.Upgrader{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		CheckOrigin: func(r *http.Request) bool {
			if len(s.allowedOrigins) == 0 {
				return true
			}
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			for _, allowed := range s.allowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("upgrade websocket")
		return
	}

	client := s.notifier.Register(conn)
	logrus.WithField("remote", conn.RemoteAddr().String()).Info("audit websocket connected")
	defer s.notifier.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("remote", conn.RemoteAddr().String()).Info("audit websocket closed")
			}
			return
		}
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var verr *fairness.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	c.JSON(status, resp)
}
