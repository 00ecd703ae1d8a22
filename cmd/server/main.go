package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nippo/config"
	"nippo/database"
	"nippo/pkg/backup"
	"nippo/pkg/logger"
	"nippo/router"

	// Auth
	authCtrlImp "nippo/pkg/auth/controllerImp"
	authSvcImp "nippo/pkg/auth/serviceImp"

	// Reports, feedback
	fbCtrlImp "nippo/pkg/feedback/controllerImp"
	fbRepoImp "nippo/pkg/feedback/repositoryImp"
	fbSvcImp "nippo/pkg/feedback/serviceImp"
	reportCtrlImp "nippo/pkg/report/controllerImp"
	reportRepoImp "nippo/pkg/report/repositoryImp"
	reportSvcImp "nippo/pkg/report/serviceImp"

	// Weekly plans
	planCtrlImp "nippo/pkg/plan/controllerImp"
	planRepoImp "nippo/pkg/plan/repositoryImp"
	planSvcImp "nippo/pkg/plan/serviceImp"

	// Notifications, users, stores
	notifCtrlImp "nippo/pkg/notification/controllerImp"
	notifRepoImp "nippo/pkg/notification/repositoryImp"
	notifSvcImp "nippo/pkg/notification/serviceImp"
	storeCtrlImp "nippo/pkg/store/controllerImp"
	storeRepoImp "nippo/pkg/store/repositoryImp"
	storeSvcImp "nippo/pkg/store/serviceImp"
	userCtrlImp "nippo/pkg/user/controllerImp"
	userRepoImp "nippo/pkg/user/repositoryImp"
	userSvc "nippo/pkg/user/service"
	userSvcImp "nippo/pkg/user/serviceImp"

	// Export, health
	exportCtrlImp "nippo/pkg/export/controllerImp"
	healthCtrlImp "nippo/pkg/health/controllerImp"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "optional YAML config file")
	flag.Parse()

	// 1) Config + logging
	cfg := config.Load(*cfgPath)
	logger.Init(cfg.Log)
	defer logger.Sync()

	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.Printf("WARN: timezone %q: %v", cfg.Timezone, err)
	} else {
		time.Local = loc
	}

	// 2) DB (sqlite) + automigrate
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.L.Fatal("db.open_failed", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer database.Close(db)

	// 3) Repos/services
	fbRepo := fbRepoImp.New(db)
	uSvc := userSvcImp.NewUserService(userRepoImp.New(db))
	tokens := authSvcImp.NewTokenService(cfg.JWTSecret)
	rSvc := reportSvcImp.NewReportService(reportRepoImp.New(db), fbRepo)
	pSvc := planSvcImp.NewPlanService(planRepoImp.New(db), fbRepo)
	fSvc := fbSvcImp.NewFeedbackService(fbRepo)
	nSvc := notifSvcImp.NewNotificationService(notifRepoImp.New(db))
	sSvc := storeSvcImp.NewStoreService(storeRepoImp.New(db))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seedAdmin(ctx, uSvc, cfg.Admin)
	startBackups(ctx, db, cfg.Backup)

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Static("/static", "static")
	if _, err := os.Stat("static/index.html"); err == nil {
		e.File("/", "static/index.html")
	}

	// 5) Router
	r := router.New(
		e,
		tokens,
		authCtrlImp.NewAuthController(uSvc, tokens),
		reportCtrlImp.New(rSvc),
		fbCtrlImp.New(fSvc),
		planCtrlImp.NewPlanCtrl(pSvc),
		notifCtrlImp.New(nSvc),
		userCtrlImp.New(uSvc),
		storeCtrlImp.New(sSvc),
		exportCtrlImp.New(rSvc, pSvc),
		healthCtrlImp.NewHealthCtrl(db, cfg.DBPath),
	)

	// 6) Start
	go func() {
		logger.L.Info("server.listen", zap.String("port", cfg.Port))
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Fatal("server.failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("server.shutdown_failed", zap.Error(err))
	}
}

func seedAdmin(ctx context.Context, users userSvc.UserService, admin config.AdminConfig) {
	if admin.Username == "" || admin.Password == "" || len(users.List(ctx)) > 0 {
		return
	}
	if _, err := users.Create(ctx, userSvc.UserInput{
		Username: admin.Username,
		Password: admin.Password,
		IsAdmin:  true,
	}); err != nil {
		logger.L.Error("admin.seed_failed", zap.Error(err))
	}
}

func startBackups(ctx context.Context, db *gorm.DB, cfg config.BackupConfig) {
	if cfg.Interval <= 0 {
		return
	}
	runner, err := backup.FromConfig(ctx, db, cfg)
	if err != nil {
		// a failed backup setup is logged and the server keeps running
		logger.L.Error("backup.init_failed", zap.Error(err))
		return
	}
	logger.L.Info("backup.schedule", zap.Duration("every", cfg.Interval))
	go runner.Every(ctx, cfg.Interval)
}
