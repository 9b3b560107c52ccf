package catalog

import (
	"errors"

	"gorm.io/gorm"
)

// Service is the course catalog engine: search, enrollment lifecycle and
// dashboard aggregation over one shared store. It is stateless per call.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
