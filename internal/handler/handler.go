package handler

import (
	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/service"
	"dataset-cutter/internal/taskrunner"
)

var appDirsResolver = appdirs.Resolve

type Handler struct {
	Service      *service.Service
	RepairRunner *taskrunner.Runner

	// Quit asks the hosting process to shut down. Set by the server; nil in
	// tests.
	Quit func()
}

func NewHandler() *Handler {
	svc := service.NewService()
	return &Handler{
		Service:      svc,
		RepairRunner: taskrunner.NewRunner(svc),
	}
}
