package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/admission"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/auth"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/catalog"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/dashboard"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/decision"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/hours"
	appmissions "github.com/HalimaaSeddik/dz-volunteer/internal/application/missions"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	appskills "github.com/HalimaaSeddik/dz-volunteer/internal/application/skills"
	"github.com/HalimaaSeddik/dz-volunteer/internal/config"
	infraauth "github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/auth"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/counters"
	infrahttp "github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/handlers"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/middleware"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/persistence/postgres"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/queue"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	pool, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	missionRepo := postgres.NewMissionRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	participationRepo := postgres.NewParticipationRepository(pool)
	volunteerRepo := postgres.NewVolunteerRepository(pool)
	organizationRepo := postgres.NewOrganizationRepository(pool)
	skillRepo := postgres.NewSkillRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	var tasks ports.TaskEnqueuer = queue.NewNoopEnqueuer()
	var worker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		tasks = queue.NewAsynqEnqueuer(asynqOpt, log)
		worker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Error().Err(err).Msg("task worker stopped")
			}
		}()
	} else {
		log.Warn().Msg("redis unavailable; notification tasks disabled")
	}

	var views ports.ViewCounter
	if redisClient != nil {
		views = counters.NewRedisViewCounter(redisClient, log)
	} else {
		views = counters.NewDBViewCounter(missionRepo, log)
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
	})

	privateKey, err := infraauth.LoadOrGenerateKey(cfg.JWT.PrivateKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load JWT signing key")
	}
	if cfg.JWT.PrivateKeyPath == "" {
		log.Warn().Msg("JWT_PRIVATE_KEY_PATH not set; using ephemeral signing key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	registerUC := auth.NewRegister(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, volunteerRepo, organizationRepo, hasher, issuer, cfg.JWT.AccessExpiry)
	submitUC := admission.NewSubmitApplication(missionRepo, applicationRepo, skillRepo, cfg.Applications.AllowReapply)
	cancelUC := admission.NewCancelApplication(applicationRepo)
	respondUC := decision.NewRespond(applicationRepo, missionRepo, volunteerRepo, userRepo, tasks)
	validateHoursUC := hours.NewValidate(missionRepo, participationRepo, volunteerRepo, userRepo, tasks, log)
	listMissionsUC := catalog.NewListMissions(missionRepo)
	getMissionUC := catalog.NewGetMission(missionRepo, views)
	createMissionUC := appmissions.NewCreateMission(missionRepo)
	publishMissionUC := appmissions.NewPublishMission(missionRepo)
	listOrgMissionsUC := appmissions.NewListOrganizationMissions(missionRepo)
	listApplicationsUC := appmissions.NewListApplications(missionRepo, applicationRepo)
	volunteerDashUC := dashboard.NewVolunteerDashboard(volunteerRepo, applicationRepo)
	orgDashUC := dashboard.NewOrganizationDashboard(organizationRepo, missionRepo, applicationRepo)
	claimSkillUC := appskills.NewClaimSkill(skillRepo)
	reviewClaimUC := appskills.NewReviewClaim(skillRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, userRepo, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)
	missionsHandler := handlers.NewMissionsHandler(listMissionsUC, getMissionUC, createMissionUC, publishMissionUC, listOrgMissionsUC, listApplicationsUC, validateHoursUC, log)
	applicationsHandler := handlers.NewApplicationsHandler(submitUC, cancelUC, respondUC, applicationRepo, participationRepo, log)
	dashboardHandler := handlers.NewDashboardHandler(volunteerDashUC, orgDashUC, statsRepo, log)
	skillsHandler := handlers.NewSkillsHandler(claimSkillUC, reviewClaimUC, skillRepo, log)

	requireJWT := middleware.NewAuthValidator(issuer).Handler

	var requireAdmin func(http.Handler) http.Handler
	if cfg.Admin.Secret != "" {
		requireAdmin = middleware.RequireAdminSecret(cfg.Admin.Secret)
	} else {
		log.Warn().Msg("DZV_ADMIN_SECRET not set; admin routes disabled")
	}

	var ipRateLimit func(http.Handler) http.Handler
	if cfg.RateLimit.RatePerIP != "" {
		ipRateLimit, err = middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid RATE_LIMIT_PER_IP")
		}
	}

	router := infrahttp.NewRouter(infrahttp.RouterConfig{
		AuthHandler:         authHandler,
		HealthHandler:       healthHandler,
		MissionsHandler:     missionsHandler,
		ApplicationsHandler: applicationsHandler,
		DashboardHandler:    dashboardHandler,
		SkillsHandler:       skillsHandler,
		RequireJWT:          requireJWT,
		RequireAdmin:        requireAdmin,
		Log:                 log,
		Secure:              middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:                middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil),
		IPRateLimit:         ipRateLimit,
		Metrics:             true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("stopped")
}
