package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	domainRepo "github.com/softencymsc/webbill-api/internal/domain/repository"
)

type transactionalWriter struct {
	db *gorm.DB
}

// NewTransactionalWriter creates a settlement writer that wraps the header,
// term and line inserts in one database transaction.
func NewTransactionalWriter(db *gorm.DB) domainRepo.SettlementWriter {
	return &transactionalWriter{db: db}
}

func (w *transactionalWriter) WriteSettlement(ctx context.Context, header *entity.BillHeader, term *entity.BillTerm, lines []entity.BillLine) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header.Status = enum.BillStatusPosted
		if err := tx.Create(header).Error; err != nil {
			return fmt.Errorf("failed to create bill header: %w", err)
		}

		if term != nil {
			term.BillHeaderID = header.ID
			if err := tx.Create(term).Error; err != nil {
				return fmt.Errorf("failed to create bill term: %w", err)
			}
		}

		for i := range lines {
			lines[i].BillHeaderID = header.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("failed to create bill lines: %w", err)
			}
		}

		return nil
	})
}

type stagedWriter struct {
	db *gorm.DB
}

// NewStagedWriter creates a settlement writer for backends without usable
// multi-statement transactions. The header goes in first under pending
// status, then terms and lines, and the status flips to posted last.
// Readers filter on posted status, so a crash mid-write leaves an invisible
// partial record rather than a half-readable bill.
func NewStagedWriter(db *gorm.DB) domainRepo.SettlementWriter {
	return &stagedWriter{db: db}
}

func (w *stagedWriter) WriteSettlement(ctx context.Context, header *entity.BillHeader, term *entity.BillTerm, lines []entity.BillLine) error {
	db := w.db.WithContext(ctx)

	header.Status = enum.BillStatusPending
	if err := db.Create(header).Error; err != nil {
		return fmt.Errorf("failed to create bill header: %w", err)
	}

	if term != nil {
		term.BillHeaderID = header.ID
		if err := db.Create(term).Error; err != nil {
			return fmt.Errorf("failed to create bill term: %w", err)
		}
	}

	for i := range lines {
		lines[i].BillHeaderID = header.ID
	}
	if len(lines) > 0 {
		if err := db.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to create bill lines: %w", err)
		}
	}

	if err := db.Model(&entity.BillHeader{}).
		Where("id = ?", header.ID).
		Update("status", enum.BillStatusPosted).Error; err != nil {
		return fmt.Errorf("failed to post bill header: %w", err)
	}
	header.Status = enum.BillStatusPosted

	return nil
}
