package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/plugg/internal/app"
	"github.com/shrimpsizemoose/plugg/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to init service: %v", err)
	}
	defer service.Close()

	plannerHandler := handlers.NewPlannerHandler(service)

	http.HandleFunc("GET /api/v1/subjects", plannerHandler.HandleListSubjects)
	http.HandleFunc("POST /api/v1/subjects", plannerHandler.HandleCreateSubject)
	http.HandleFunc("PATCH /api/v1/subjects/{id}", plannerHandler.HandleUpdateSubject)
	http.HandleFunc("DELETE /api/v1/subjects/{id}", plannerHandler.HandleDeleteSubject)

	http.HandleFunc("GET /api/v1/events", plannerHandler.HandleListEvents)
	http.HandleFunc("POST /api/v1/events", plannerHandler.HandleCreateEvent)
	http.HandleFunc("PATCH /api/v1/events/{id}", plannerHandler.HandleUpdateEvent)
	http.HandleFunc("POST /api/v1/events/{id}/toggle", plannerHandler.HandleToggleEvent)
	http.HandleFunc("DELETE /api/v1/events/{id}", plannerHandler.HandleDeleteEvent)

	http.HandleFunc("GET /api/v1/exams", plannerHandler.HandleListExams)
	http.HandleFunc("GET /api/v1/exams/upcoming", plannerHandler.HandleUpcomingExams)
	http.HandleFunc("POST /api/v1/exams", plannerHandler.HandleCreateExam)
	http.HandleFunc("PATCH /api/v1/exams/{id}", plannerHandler.HandleUpdateExam)
	http.HandleFunc("DELETE /api/v1/exams/{id}", plannerHandler.HandleDeleteExam)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting plugg server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Plugg server failed: %v", err)
	}
}
