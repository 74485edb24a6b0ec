package main

import (
	"runtime/pprof"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evidentia/opshub/internal/model"
	"github.com/evidentia/opshub/internal/wshandler"
	"github.com/evidentia/opshub/pkg/log"
)

func NewHttp(app *App) *fiber.App {
	srv := fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		BodyLimit:             app.config.BodyLimit(),
	})

	srv.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "http", DoMetrics: true, LogErrorsOnly: true}))

	srv.Get("/", getStatusHandler())
	srv.Get("/api/config", getConfigHandler(app))
	srv.Get("/api/incidents", getIncidentsHandler())
	srv.Get("/api/units", getUnitsHandler(app))
	srv.Get("/api/radio", getRadioHistoryHandler(app))

	srv.Get("/ws", getWsHandler(app))

	srv.Get("/stack", getStackHandler())
	srv.Get("/metrics", getMetricsHandler())

	return srv
}

func getStatusHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": "API is working correctly!"})
	}
}

func getConfigHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":  "Online",
			"mode":    "Hub",
			"version": getVersion(),
			"uid":     app.uid,
		})
	}
}

func getIncidentsHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON([]fiber.Map{
			{"id": 101, "type": "Unauthorized Access", "location": "Server-DB-04", "status": "Critical"},
			{"id": 102, "type": "Malware Detected", "location": "Workstation-22", "status": "Resolved"},
			{"id": 103, "type": "Port Scan", "location": "Gateway-North", "status": "Monitoring"},
		})
	}
}

func getUnitsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.hub.Registry().Snapshot())
	}
}

func getRadioHistoryHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if app.dbm == nil {
			return ctx.JSON([]*model.RadioLogDTO{})
		}

		recs := app.dbm.RadioQuery().
			Limit(ctx.QueryInt("limit", 100)).
			Offset(ctx.QueryInt("offset", 0)).
			Get()

		res := make([]*model.RadioLogDTO, 0, len(recs))
		for _, r := range recs {
			res = append(res, r.DTO())
		}

		return ctx.JSON(res)
	}
}

func getWsHandler(app *App) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		name := uuid.NewString()

		h := wshandler.NewHandler(name, c, &wshandler.HandlerConfig{
			Logger:         app.logger,
			MaxMessageSize: app.config.WsMaxMessageSize(),
			MessageCb:      app.hub.HandleMessage,
			RemoveCb:       app.hub.Disconnect,
		})

		app.hub.AddSession(h)
		h.Listen()
	})
}

func getStackHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return pprof.Lookup("goroutine").WriteTo(ctx.Response().BodyWriter(), 1)
	}
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
