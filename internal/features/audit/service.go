package audit

import (
	"bytes"
	"context"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditService interface {
	History(ctx context.Context, requestID string) ([]ApprovalEvent, error)
	ListEvents(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]ApprovalEvent, error)
	// ExportEvents renders the ledger as an xlsx workbook.
	ExportEvents(ctx context.Context, filters map[string]interface{}) ([]byte, error)
}

type AuditServiceImpl struct {
	Repo EventRepository
}

func NewAuditService(repo EventRepository) AuditService {
	return &AuditServiceImpl{Repo: repo}
}

func (s *AuditServiceImpl) History(ctx context.Context, requestID string) ([]ApprovalEvent, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, apperrors.Validationf("invalid request id %q", requestID)
	}
	return s.Repo.ListByRequest(ctx, oid)
}

func (s *AuditServiceImpl) ListEvents(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]ApprovalEvent, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	offset := (page - 1) * limit
	return s.Repo.List(ctx, filters, limit, offset)
}

func (s *AuditServiceImpl) ExportEvents(ctx context.Context, filters map[string]interface{}) ([]byte, error) {
	events, err := s.Repo.List(ctx, filters, 10000, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "ApprovalEvents"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	columns := []string{"Request", "Rank", "Actor", "Acting As Delegate Of", "Decision", "Reason", "Occurred At"}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, ev := range events {
		values := []any{
			ev.RequestID.Hex(),
			ev.Rank,
			ev.ActorID,
			ev.ActingAsDelegateOf,
			string(ev.Decision),
			ev.Reason,
			ev.OccurredAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
