package main

import (
	"fmt"
	"net/http"

	"github.com/Mobiman12/stundenliste-backend-go/internal/config"
	appHTTP "github.com/Mobiman12/stundenliste-backend-go/internal/handler/http"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/jwt"
	"github.com/Mobiman12/stundenliste-backend-go/internal/repository/postgresql"
	bonusService "github.com/Mobiman12/stundenliste-backend-go/internal/service/bonus"
	closingService "github.com/Mobiman12/stundenliste-backend-go/internal/service/closing"
	employeeService "github.com/Mobiman12/stundenliste-backend-go/internal/service/employee"
	overtimeService "github.com/Mobiman12/stundenliste-backend-go/internal/service/overtime"
	shiftplanService "github.com/Mobiman12/stundenliste-backend-go/internal/service/shiftplan"
	timesheetService "github.com/Mobiman12/stundenliste-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	entryRepo := postgresql.NewDailyEntryRepository(db)
	planDayRepo := postgresql.NewPlanDayRepository(db)
	templateRepo := postgresql.NewTemplateRepository(db)
	overtimePayoutRepo := postgresql.NewOvertimePayoutRepository(db)
	bonusSchemeRepo := postgresql.NewBonusSchemeRepository(db)
	bonusPayoutRepo := postgresql.NewBonusPayoutRepository(db)
	closingRepo := postgresql.NewClosingRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	resolver := shiftplanService.NewResolver(planDayRepo, templateRepo, employeeRepo)
	recalculator := overtimeService.NewRecalculator(db, entryRepo, overtimePayoutRepo, employeeRepo, resolver)
	closingSvc := closingService.NewClosingService(closingRepo)
	timesheetSvc := timesheetService.NewTimesheetService(db, entryRepo, employeeRepo, resolver, closingSvc, recalculator)
	planner := shiftplanService.NewPlanner(db, planDayRepo, resolver, closingSvc, recalculator)
	bonusSvc := bonusService.NewBonusService(bonusSchemeRepo, bonusPayoutRepo, entryRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, recalculator)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	shiftPlanHandler := appHTTP.NewShiftPlanHandler(planner)
	overtimeHandler := appHTTP.NewOvertimeHandler(recalculator)
	bonusHandler := appHTTP.NewBonusHandler(bonusSvc)
	closingHandler := appHTTP.NewClosingHandler(closingSvc, closingRepo)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		timesheetHandler,
		shiftPlanHandler,
		overtimeHandler,
		bonusHandler,
		closingHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
