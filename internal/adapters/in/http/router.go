package http

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP router: health, the API document and swagger UI
// are public; the API validates requests against doc and, except for
// self-registration, requires a resolved actor.
func NewEcho(s *Server, doc *openapi3.T, users UserLookup) (*echo.Echo, error) {
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = s.errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.InfoContext(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	e.GET("/openapi.yaml", serveOpenAPI)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	api.POST("/users", s.RegisterUser)

	secured := api.Group("", actorMiddleware(users))
	secured.GET("/users", s.GetUsers)
	secured.POST("/users/:userId/approve", s.ApproveUser)

	secured.GET("/orders", s.GetOrders)
	secured.POST("/orders", s.CreateOrder)
	secured.GET("/orders/:orderId", s.GetOrder)
	secured.PATCH("/orders/:orderId", s.EditOrder)
	secured.DELETE("/orders/:orderId", s.DeleteOrder)
	secured.POST("/orders/:orderId/driver", s.AssignDriver)
	secured.PATCH("/orders/:orderId/status", s.ChangeOrderStatus)
	secured.GET("/orders/:orderId/settlements", s.GetOrderSettlements)

	secured.GET("/settlements", s.GetSettlements)

	secured.GET("/stock", s.GetStock)
	secured.POST("/stock", s.CreateStock)
	secured.GET("/stock/:stockId", s.GetStockItem)
	secured.PATCH("/stock/:stockId", s.UpdateStock)
	secured.DELETE("/stock/:stockId", s.DeleteStock)
	secured.POST("/stock/:stockId/approve", s.ApproveStock)

	return e, nil
}
