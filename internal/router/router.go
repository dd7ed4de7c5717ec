package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"comandapos/internal/config"
	"comandapos/internal/handler"
	"comandapos/internal/middleware"
	"comandapos/internal/repository"
	"comandapos/internal/service"
	"comandapos/internal/worker"
)

// New arma el árbol completo de dependencias y el router HTTP.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositorios
	usuarios := repository.NewUsuarioRepository(db)
	mesas := repository.NewMesaRepository(db)
	platos := repository.NewPlatoRepository(db)
	ingredientes := repository.NewIngredienteRepository(db)
	movimientos := repository.NewMovimientoRepository(db)
	ordenes := repository.NewOrdenRepository(db)
	tickets := repository.NewTicketRepository(db)
	anulaciones := repository.NewAnulacionRepository(db)
	cierres := repository.NewCierreRepository(db)
	configuracion := repository.NewConfiguracionRepository(db)
	auditoria := repository.NewAuditoriaRepository(db)
	reportes := repository.NewReporteRepository(db)

	// Servicios
	secuencias := service.NewSecuenciaService(ordenes, tickets, cierres, configuracion)
	inventarioSvc := service.NewInventarioService(ingredientes, movimientos, platos, configuracion, dispatcher)
	ordenSvc := service.NewOrdenService(ordenes, mesas, platos, secuencias, auditoria)
	anulacionSvc := service.NewAnulacionService(anulaciones, ordenes, inventarioSvc, auditoria)
	ticketSvc := service.NewTicketService(tickets, ordenes, secuencias, inventarioSvc, auditoria, dispatcher)
	cierreSvc := service.NewCierreService(cierres, tickets, secuencias, auditoria)
	cartaSvc := service.NewCartaService(platos, ingredientes, rdb)
	mesaSvc := service.NewMesaService(mesas)
	reporteSvc := service.NewReporteService(reportes, tickets)
	authSvc := service.NewAuthService(usuarios, auditoria, cfg)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	ticketsH := handler.NewTicketsHandler(ticketSvc)
	anulacionesH := handler.NewAnulacionesHandler(anulacionSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	cartaH := handler.NewCartaHandler(cartaSvc)
	mesasH := handler.NewMesasHandler(mesaSvc)
	cierresH := handler.NewCierresHandler(cierreSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	healthH := handler.NewHealthHandler(db, rdb)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(300, time.Minute),
	)

	r.GET("/health", healthH.Check)
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	v1 := r.Group("/v1")

	// Público
	v1.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)
	v1.POST("/auth/refresh", authH.Refresh)
	v1.GET("/carta/:id/precio", cartaH.ConsultaPrecio)

	auth := v1.Group("", middleware.Auth(cfg.JWTSecret))

	// Salón: meseros toman órdenes y gestionan sus anulaciones.
	salon := auth.Group("", middleware.RequireRole(middleware.RolMesero))
	salon.POST("/ordenes", ordenesH.Crear)
	salon.POST("/anulaciones/items", anulacionesH.SolicitarItem)
	salon.POST("/anulaciones/ordenes", anulacionesH.SolicitarOrden)
	salon.POST("/anulaciones/avisos/visto", anulacionesH.MarcarAvisoVisto)

	// Consulta de órdenes: cualquier rol autenticado.
	auth.GET("/ordenes", ordenesH.Listar)
	auth.GET("/ordenes/:id", ordenesH.Obtener)

	// Cocina y bar: tableros y despacho.
	auth.GET("/tableros/cocina", middleware.RequireRole(middleware.RolCocina), ordenesH.TableroCocina)
	auth.GET("/tableros/bar", middleware.RequireRole(middleware.RolBar), ordenesH.TableroBar)
	auth.POST("/ordenes/:id/despachar",
		middleware.RequireRole(middleware.RolCocina, middleware.RolBar), ordenesH.Despachar)

	// Caja: cobro y cierre.
	caja := auth.Group("", middleware.RequireRole(middleware.RolCajero))
	caja.POST("/tickets", ticketsH.EnviarACobro)
	caja.POST("/tickets/:id/pagar", ticketsH.ConfirmarPago)
	caja.GET("/tickets", ticketsH.Listar)
	caja.GET("/tickets/:id", ticketsH.Obtener)
	caja.POST("/cierres", cierresH.CerrarDia)
	caja.GET("/cierres", cierresH.Listar)

	// Administración.
	admin := auth.Group("", middleware.RequireRole(middleware.RolAdministrador))
	admin.POST("/anulaciones/items/:id/resolver", anulacionesH.ResolverItem)
	admin.POST("/anulaciones/ordenes/:id/resolver", anulacionesH.ResolverOrden)
	admin.GET("/anulaciones/pendientes", anulacionesH.ListarPendientes)

	admin.POST("/usuarios", usuariosH.Crear)
	admin.PUT("/usuarios/:id", usuariosH.Actualizar)
	admin.DELETE("/usuarios/:id", usuariosH.Desactivar)
	admin.GET("/usuarios", usuariosH.Listar)

	admin.POST("/mesas", mesasH.Crear)
	admin.PUT("/mesas/:id", mesasH.Actualizar)
	admin.DELETE("/mesas/:id", mesasH.Desactivar)
	auth.GET("/mesas", mesasH.Listar)

	admin.POST("/carta", cartaH.CrearPlato)
	admin.PUT("/carta/:id", cartaH.ActualizarPlato)
	admin.DELETE("/carta/:id", cartaH.DesactivarPlato)
	admin.PUT("/carta/:id/receta", cartaH.DefinirReceta)
	auth.GET("/carta", cartaH.ListarPlatos)
	auth.GET("/carta/:id", cartaH.ObtenerPlato)

	admin.POST("/inventario/ingredientes", inventarioH.CrearIngrediente)
	admin.PUT("/inventario/ingredientes/:id", inventarioH.ActualizarIngrediente)
	admin.DELETE("/inventario/ingredientes/:id", inventarioH.DesactivarIngrediente)
	admin.GET("/inventario/ingredientes", inventarioH.ListarIngredientes)
	admin.POST("/inventario/ajustes", inventarioH.RegistrarAjuste)
	admin.GET("/inventario/movimientos", inventarioH.ListarMovimientos)
	admin.GET("/inventario/alertas", inventarioH.Alertas)

	admin.GET("/reportes/resumen-diario", reportesH.ResumenDiario)

	return r
}
