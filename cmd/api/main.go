package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/edulab-vn/center-backend-go/internal/config"
	appHTTP "github.com/edulab-vn/center-backend-go/internal/handler/http"
	"github.com/edulab-vn/center-backend-go/internal/pkg/cron"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
	"github.com/edulab-vn/center-backend-go/internal/pkg/jwt"
	"github.com/edulab-vn/center-backend-go/internal/repository/postgresql"
	attendanceService "github.com/edulab-vn/center-backend-go/internal/service/attendance"
	authService "github.com/edulab-vn/center-backend-go/internal/service/auth"
	"github.com/edulab-vn/center-backend-go/internal/service/master"
	overtimeService "github.com/edulab-vn/center-backend-go/internal/service/overtime"
	payrollService "github.com/edulab-vn/center-backend-go/internal/service/payroll"
	scheduleService "github.com/edulab-vn/center-backend-go/internal/service/schedule"
	staffService "github.com/edulab-vn/center-backend-go/internal/service/staff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	loc, err := time.LoadLocation(cfg.Payroll.Timezone)
	if err != nil {
		log.Fatal("Invalid payroll timezone: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	sessionRepo := postgresql.NewClassSessionRepository(db)
	scheduleRepo := postgresql.NewStaffScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	otRepo := postgresql.NewOvertimeRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtSvc, logger)
	staffSvc := staffService.NewStaffService(staffRepo)
	masterSvc := master.NewMasterService(shiftRepo, roleRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, staffRepo, loc, logger)
	overtimeSvc := overtimeService.NewOvertimeService(otRepo, logger)

	scheduleSvc, err := scheduleService.NewScheduleService(
		db, scheduleRepo, shiftRepo, sessionRepo, staffRepo, cfg.Payroll, logger)
	if err != nil {
		log.Fatal("Failed to initialize schedule service: ", err)
	}

	payrollSvc, err := payrollService.NewPayrollService(
		staffRepo, scheduleRepo, attendanceRepo, otRepo, cfg.Payroll, logger)
	if err != nil {
		log.Fatal("Failed to initialize payroll service: ", err)
	}

	scheduler := cron.NewScheduler(logger)
	cron.NewOvertimeJobs(payrollSvc, loc, logger).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtSvc, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Staff:      appHTTP.NewStaffHandler(staffSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
