package handlers

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/logger"
	"github.com/rogerio-castellano/inventory-dashboard/internal/reports"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
	"github.com/sirupsen/logrus"
)

var (
	productRepo    repo.ProductRepository
	submitter      *stock.Submitter
	allocator      *stock.Allocator
	reportsService *reports.Service

	log = logger.Discard()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSubmitter(s *stock.Submitter) {
	submitter = s
}

func SetAllocator(a *stock.Allocator) {
	allocator = a
}

func SetReportsService(s *reports.Service) {
	reportsService = s
}

func SetLogger(l *logrus.Logger) {
	log = l
}
