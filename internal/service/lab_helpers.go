package service

import (
	"errors"
	"strings"
	"time"

	"intellilab-gc-be/internal/pkg/serverutils"

	"gorm.io/gorm"
)

// notFoundOr turns a repository "no rows" error into a 404 for resource.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return serverutils.NewNotFound(resource)
	}
	return err
}

func nowPtr() *time.Time {
	now := time.Now()
	return &now
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
