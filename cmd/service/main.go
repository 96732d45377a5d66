package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/warren-xu/exercise-form-analyzer/internal"
	"github.com/warren-xu/exercise-form-analyzer/internal/config"
	"github.com/warren-xu/exercise-form-analyzer/internal/logging"
	"github.com/warren-xu/exercise-form-analyzer/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "form-analyzer",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("using store backend: [%s]", cfg.StoreBackend)

	coachAPIKey := os.Getenv("COACH_API_KEY")
	if coachAPIKey == "" {
		log.Errorf("coach API key not set, use COACH_API_KEY env var to set it; coach responses will be fallbacks")
	}

	ttsAPIKey := os.Getenv("TTS_API_KEY")
	if ttsAPIKey == "" {
		log.Errorf("tts API key not set, use TTS_API_KEY env var to set it; /tts will return no audio")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	adminUsername := os.Getenv("FORM_ANALYZER_ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("FORM_ANALYZER_ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		log.Errorf("admin username and password not set. use FORM_ANALYZER_ADMIN_USERNAME and FORM_ANALYZER_ADMIN_PASSWORD_HASH")
	}

	clientAppSecret := os.Getenv("FORM_ANALYZER_APP_SECRET")
	if clientAppSecret == "" {
		log.Errorf("form tracker client app secret not set. use FORM_ANALYZER_APP_SECRET")
	}

	redisPassword := os.Getenv("FORM_ANALYZER_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use FORM_ANALYZER_REDIS_PASS")
	}

	tracingEnabled := os.Getenv("OTEL_TRACING_ENABLED") == "true"
	if tracingEnabled {
		if otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); otelEndpoint == "" {
			log.Warnln("OTEL_EXPORTER_OTLP_ENDPOINT env var not set")
		}
	} else {
		log.Debugln("otel tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:            cfg,
			CoachAPIKey:       coachAPIKey,
			TTSAPIKey:         ttsAPIKey,
			ClientAppSecret:   clientAppSecret,
			VersionInfo:       versionInfo,
			AdminUsername:     adminUsername,
			AdminPasswordHash: adminPasswordHash,
			RedisPassword:     redisPassword,
			TracingEnabled:    tracingEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
