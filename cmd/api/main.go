package main

import (
	"fmt"
	"net/http"

	"github.com/TemperedKirin/fullstack-proyecto/internal/config"
	appHTTP "github.com/TemperedKirin/fullstack-proyecto/internal/handler/http"
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/database"
	"github.com/TemperedKirin/fullstack-proyecto/internal/repository/postgresql"
	catalogService "github.com/TemperedKirin/fullstack-proyecto/internal/service/catalog"
	employeeService "github.com/TemperedKirin/fullstack-proyecto/internal/service/employee"
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
	catalogRepo := postgresql.NewCatalogRepository(db)

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	catalogSvc := catalogService.NewCatalogService(catalogRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	catalogHandler := appHTTP.NewCatalogHandler(catalogSvc)
	healthHandler := appHTTP.NewHealthHandler(db)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		employeeHandler,
		catalogHandler,
		healthHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
