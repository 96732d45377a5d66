package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/analysis"
	"github.com/warren-xu/exercise-form-analyzer/internal/auth"
	"github.com/warren-xu/exercise-form-analyzer/internal/coach"
	"github.com/warren-xu/exercise-form-analyzer/internal/config"
	"github.com/warren-xu/exercise-form-analyzer/internal/db"
	"github.com/warren-xu/exercise-form-analyzer/internal/middleware"
	"github.com/warren-xu/exercise-form-analyzer/internal/misc"
	"github.com/warren-xu/exercise-form-analyzer/internal/sessions"
	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/metrics"
	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	clientAppSecret   string // used by the form tracker client when posting new sessions
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	sessionsRepo *sessions.Repo
	warehouse    *sessions.WarehouseRepo
	coachApi     *coach.Api
	ttsClient    *coach.TTSClient

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config            *config.Config
	CoachAPIKey       string
	TTSAPIKey         string
	ClientAppSecret   string
	VersionInfo       string
	AdminUsername     string
	AdminPasswordHash string
	RedisPassword     string
	TracingEnabled    bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("formanalyzer", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	otelShutdown, err := tracing.Setup(ctx, params.TracingEnabled, "form-analyzer")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	s := &Server{
		config:          params.Config,
		dbPool:          dbPool,
		clientAppSecret: params.ClientAppSecret,
		versionInfo:     params.VersionInfo,

		sessionsRepo: sessions.NewRepo(dbPool),
		coachApi: coach.NewApi(
			params.Config.CoachAPIBaseURL,
			params.CoachAPIKey,
			params.Config.CoachLLMProvider,
			params.Config.CoachModel,
			tracedHttpClient,
			rdb,
		),
		ttsClient: coach.NewTTSClient(
			params.Config.TTSBaseURL,
			params.TTSAPIKey,
			params.Config.TTSVoiceID,
			tracedHttpClient,
		),

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if params.Config.StoreBackend == config.StoreBackendWarehouse {
		s.warehouse = sessions.NewWarehouseRepo(dbPool)
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	var analyzer *analysis.Analyzer
	var sessionsHandler *sessions.Handler
	if s.warehouse != nil {
		analyzer = analysis.NewAnalyzer(s.warehouse)
		sessionsHandler = sessions.NewHandler(s.sessionsRepo, s.warehouse, s.metricsManager)
	} else {
		analyzer = analysis.NewAnalyzer(s.sessionsRepo)
		sessionsHandler = sessions.NewHandler(s.sessionsRepo, nil, s.metricsManager)
	}
	r.HandleFunc("/sessions", sessionsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions/{sessionID}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/sessions/{sessionID}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/sessions/list/page/{page}/size/{size}", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/stats/scores", sessionsHandler.HandleAvgScorePerSession).Methods("GET", "OPTIONS").Name("session-scores")
	r.HandleFunc("/sessions/stats/feedback", sessionsHandler.HandleFeedbackDistribution).Methods("GET", "OPTIONS").Name("feedback-distribution")
	r.HandleFunc("/sessions/stats/trend", sessionsHandler.HandleScoreTrend).Methods("GET", "OPTIONS").Name("score-trend")

	analysisHandler := analysis.NewHandler(analyzer, s.metricsManager)
	r.HandleFunc("/analysis/session/{sessionID}", analysisHandler.HandleAnalyzeSession).Methods("GET", "OPTIONS").Name("analyze-session")

	coachHandler := coach.NewHandler(s.coachApi, s.ttsClient, s.metricsManager)
	r.HandleFunc("/coach/set", coachHandler.HandleCoachSet).Methods("POST", "OPTIONS").Name("coach-set")
	r.HandleFunc("/coach/rep", coachHandler.HandleCoachRep).Methods("POST", "OPTIONS").Name("coach-rep")
	r.HandleFunc("/tts", coachHandler.HandleTTS).Methods("POST", "OPTIONS").Name("tts")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.clientAppSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}
