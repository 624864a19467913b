package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ssamucr/chenchen/internal/config"
	"github.com/ssamucr/chenchen/internal/database"
	"github.com/ssamucr/chenchen/internal/handlers"
	"github.com/ssamucr/chenchen/internal/logger"
	"github.com/ssamucr/chenchen/internal/middleware"
	"github.com/ssamucr/chenchen/internal/services"
	"github.com/ssamucr/chenchen/internal/validator"

	_ "github.com/ssamucr/chenchen/internal/docs" // Import swagger docs
)

// @title           Chenchen API
// @version         1.0
// @description     Chenchen is a personal bookkeeping backend: accounts, sub-accounts, debts, recurring commitments and a biweekly movement plan.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENVIRONMENT"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	usuarioService := services.NewUsuarioService(db)
	cuentaService := services.NewCuentaService(db)
	subcuentaService := services.NewSubcuentaService(db)
	categoriaService := services.NewCategoriaService(db)
	transaccionService := services.NewTransaccionService(db)
	deudaService := services.NewDeudaService(db)
	movimientoDeudaService := services.NewMovimientoDeudaService(db, cfg.AdjustmentEpsilon)
	movimientoSubcuentaService := services.NewMovimientoSubcuentaService(db)
	compromisoService := services.NewCompromisoService(db)
	planService := services.NewPlanQuincenalService(db)
	gastoService := services.NewGastoPlanificadoService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(usuarioService)
	cuentaHandler := handlers.NewCuentaHandler(cuentaService)
	subcuentaHandler := handlers.NewSubcuentaHandler(subcuentaService)
	categoriaHandler := handlers.NewCategoriaHandler(categoriaService)
	transaccionHandler := handlers.NewTransaccionHandler(transaccionService)
	deudaHandler := handlers.NewDeudaHandler(deudaService, movimientoDeudaService)
	movimientoSubcuentaHandler := handlers.NewMovimientoSubcuentaHandler(movimientoSubcuentaService)
	compromisoHandler := handlers.NewCompromisoHandler(compromisoService)
	planHandler := handlers.NewPlanHandler(planService)
	gastoHandler := handlers.NewGastoHandler(gastoService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/registro", authHandler.Registro)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/perfil", authHandler.GetPerfil)
	protected.PATCH("/perfil", authHandler.UpdatePerfil)
	protected.DELETE("/perfil", authHandler.DeletePerfil)

	// Account routes
	cuentas := protected.Group("/cuentas")
	cuentas.POST("", cuentaHandler.CreateCuenta)
	cuentas.GET("", cuentaHandler.GetUserCuentas)
	cuentas.GET("/resumen", cuentaHandler.GetResumen)
	cuentas.GET("/:id", cuentaHandler.GetCuentaByID)
	cuentas.PATCH("/:id", cuentaHandler.UpdateCuenta)
	cuentas.DELETE("/:id", cuentaHandler.DeleteCuenta)
	cuentas.GET("/:id/subcuentas", subcuentaHandler.GetCuentaSubcuentas)

	// Sub-account routes
	subcuentas := protected.Group("/subcuentas")
	subcuentas.POST("", subcuentaHandler.CreateSubcuenta)
	subcuentas.GET("/:id", subcuentaHandler.GetSubcuentaByID)
	subcuentas.PATCH("/:id", subcuentaHandler.UpdateSubcuenta)
	subcuentas.DELETE("/:id", subcuentaHandler.DeleteSubcuenta)
	subcuentas.GET("/:id/movimientos", movimientoSubcuentaHandler.GetSubcuentaMovimientos)
	subcuentas.GET("/:id/gastos-planificados", gastoHandler.GetSubcuentaGastos)

	// Category routes
	categorias := protected.Group("/categorias")
	categorias.POST("", categoriaHandler.CreateCategoria)
	categorias.GET("", categoriaHandler.GetCategorias)
	categorias.GET("/:id", categoriaHandler.GetCategoriaByID)
	categorias.PATCH("/:id", categoriaHandler.UpdateCategoria)
	categorias.DELETE("/:id", categoriaHandler.DeleteCategoria)

	// Transaction routes
	transacciones := protected.Group("/transacciones")
	transacciones.POST("", transaccionHandler.CreateTransaccion)
	transacciones.GET("", transaccionHandler.GetUserTransacciones)
	transacciones.GET("/:id", transaccionHandler.GetTransaccionByID)
	transacciones.PATCH("/:id", transaccionHandler.UpdateTransaccion)
	transacciones.DELETE("/:id", transaccionHandler.DeleteTransaccion)

	// Debt routes
	deudas := protected.Group("/deudas")
	deudas.POST("", deudaHandler.CreateDeuda)
	deudas.GET("", deudaHandler.GetUserDeudas)
	deudas.GET("/:id", deudaHandler.GetDeudaByID)
	deudas.PATCH("/:id", deudaHandler.UpdateDeuda)
	deudas.DELETE("/:id", deudaHandler.DeleteDeuda)
	deudas.GET("/:id/movimientos", deudaHandler.GetDeudaMovimientos)

	// Ledger routes
	protected.POST("/movimientos-deuda", deudaHandler.CreateMovimientoDeuda)
	protected.GET("/movimientos-deuda/:id", deudaHandler.GetMovimientoDeudaByID)
	protected.POST("/movimientos-subcuenta", movimientoSubcuentaHandler.CreateMovimientoSubcuenta)
	protected.GET("/movimientos-subcuenta/:id", movimientoSubcuentaHandler.GetMovimientoSubcuentaByID)

	// Recurring commitment routes
	compromisos := protected.Group("/compromisos")
	compromisos.POST("", compromisoHandler.CreateCompromiso)
	compromisos.GET("", compromisoHandler.GetUserCompromisos)
	compromisos.GET("/:id", compromisoHandler.GetCompromisoByID)
	compromisos.GET("/:id/proximo-evento", compromisoHandler.GetProximoEvento)
	compromisos.PATCH("/:id", compromisoHandler.UpdateCompromiso)
	compromisos.DELETE("/:id", compromisoHandler.DeleteCompromiso)

	// Biweekly plan routes
	plan := protected.Group("/plan")
	plan.POST("", planHandler.CreateItem)
	plan.GET("", planHandler.GetUserItems)
	plan.GET("/resumen", planHandler.GetResumen)
	plan.GET("/:id", planHandler.GetItemByID)
	plan.PATCH("/:id", planHandler.UpdateItem)
	plan.POST("/:id/ejecutar", planHandler.MarcarEjecutado)
	plan.DELETE("/:id", planHandler.DeleteItem)

	// Planned expense routes
	gastos := protected.Group("/gastos-planificados")
	gastos.POST("", gastoHandler.CreateGasto)
	gastos.GET("/:id", gastoHandler.GetGastoByID)
	gastos.GET("/:id/progreso", gastoHandler.GetProgreso)
	gastos.PATCH("/:id", gastoHandler.UpdateGasto)
	gastos.DELETE("/:id", gastoHandler.DeleteGasto)

	log.Infof("Starting chenchen backend server on port %s", cfg.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
