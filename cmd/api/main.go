package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/campushr/attendance-backend-go/internal/config"
	appHTTP "github.com/campushr/attendance-backend-go/internal/handler/http"
	"github.com/campushr/attendance-backend-go/internal/pkg/cron"
	"github.com/campushr/attendance-backend-go/internal/pkg/database"
	"github.com/campushr/attendance-backend-go/internal/pkg/jwt"
	"github.com/campushr/attendance-backend-go/internal/pkg/storage"
	"github.com/campushr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/campushr/attendance-backend-go/internal/service/attendance"
	captureService "github.com/campushr/attendance-backend-go/internal/service/capture"
	"github.com/campushr/attendance-backend-go/internal/service/file"
	reportService "github.com/campushr/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc := cfg.Location()

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeDirectory := postgresql.NewEmployeeDirectory(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewService(fileStorage, cfg.Storage.ExportDir)

	classifier, err := attendanceService.NewClassifier(cfg.Attendance.ExpectedArrival)
	if err != nil {
		log.Fatal("Invalid expected arrival time:", err)
	}

	attendanceSvc := attendanceService.NewService(db, attendanceRepo, classifier, loc)
	captureWorkflow := captureService.NewWorkflow(
		cfg.Attendance.Anchor,
		cfg.Attendance.RadiusKm,
		cfg.Attendance.LocationTimeout,
		attendanceSvc,
		fileService,
		loc,
	)
	reportSvc := reportService.NewService(attendanceRepo, employeeDirectory, classifier, loc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, employeeDirectory, reportSvc, fileService, loc)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, captureWorkflow, JWTService, fileService)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg, JWTService, attendanceHandler, reportHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
