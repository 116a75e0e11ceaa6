package utils

import (
	"github.com/eoru5/airytable/internal/appcontext"
	"github.com/eoru5/airytable/internal/entity"
	"github.com/google/uuid"
)

// Ownership checks walk the chain up to the base's user. Every handler
// calls one of these before touching anything; a broken chain reads the
// same as a missing resource.

func UserOwnsBase(ctx *appcontext.Context, userID uuid.UUID, baseID uuid.UUID) bool {
	var base entity.Base

	if err := ctx.DB.Where("id = ? AND user_id = ?", baseID, userID).First(&base).Error; err != nil {
		return false
	}

	return true
}

func UserOwnsTable(ctx *appcontext.Context, userID uuid.UUID, tableID uuid.UUID) bool {
	var table entity.Table

	if err := ctx.DB.First(&table, "id = ?", tableID).Error; err != nil {
		return false
	}

	return UserOwnsBase(ctx, userID, table.BaseID)
}

func UserOwnsView(ctx *appcontext.Context, userID uuid.UUID, viewID uuid.UUID) bool {
	var view entity.View

	if err := ctx.DB.First(&view, "id = ?", viewID).Error; err != nil {
		return false
	}

	return UserOwnsTable(ctx, userID, view.TableID)
}

func UserOwnsField(ctx *appcontext.Context, userID uuid.UUID, fieldID uint) bool {
	var field entity.Field

	if err := ctx.DB.First(&field, "id = ?", fieldID).Error; err != nil {
		return false
	}

	return UserOwnsTable(ctx, userID, field.TableID)
}

func UserOwnsRecord(ctx *appcontext.Context, userID uuid.UUID, recordID uint) bool {
	var record entity.Record

	if err := ctx.DB.First(&record, "id = ?", recordID).Error; err != nil {
		return false
	}

	return UserOwnsTable(ctx, userID, record.TableID)
}
