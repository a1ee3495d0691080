package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quebra is one consumption/breakage event of a service. It owns its
// lines; a line references an inventory item by id only, so deleting the
// item later leaves the quebra intact.
type Quebra struct {
	ID        int              `gorm:"primary_key" json:"id"`
	ServiceId int              `gorm:"index;not null" json:"serviceId"`
	Service   Service          `gorm:"foreignKey:ServiceId" json:"service"`
	Comidas   []QuebraComida   `gorm:"foreignKey:QuebraId" json:"comidas"`
	Bebidas   []QuebraBebida   `gorm:"foreignKey:QuebraId" json:"bebidas"`
	Materiais []QuebraMaterial `gorm:"foreignKey:QuebraId" json:"materiais"`
	Data      time.Time        `gorm:"not null;index" json:"data"`
	CreatedBy int              `json:"createdBy"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

type QuebraComida struct {
	ID         int             `gorm:"primary_key" json:"id"`
	QuebraId   int             `gorm:"index;not null" json:"quebraId"`
	ComidaId   int             `gorm:"not null" json:"itemId"`
	Item       Comida          `gorm:"foreignKey:ComidaId" json:"item"`
	Quantidade decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantidade"`
	UsarTudo   bool            `gorm:"not null;default:false" json:"usarTudo"`
}

type QuebraBebida struct {
	ID         int             `gorm:"primary_key" json:"id"`
	QuebraId   int             `gorm:"index;not null" json:"quebraId"`
	BebidaId   int             `gorm:"not null" json:"itemId"`
	Item       Bebida          `gorm:"foreignKey:BebidaId" json:"item"`
	Quantidade decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantidade"`
	UsarTudo   bool            `gorm:"not null;default:false" json:"usarTudo"`
}

type QuebraMaterial struct {
	ID         int             `gorm:"primary_key" json:"id"`
	QuebraId   int             `gorm:"index;not null" json:"quebraId"`
	MaterialId int             `gorm:"not null" json:"itemId"`
	Item       MaterialSala    `gorm:"foreignKey:MaterialId" json:"item"`
	Quantidade decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantidade"`
	UsarTudo   bool            `gorm:"not null;default:false" json:"usarTudo"`
}

type NewQuebraLine struct {
	Item       int              `json:"item" binding:"required"`
	Quantidade *decimal.Decimal `json:"quantidade"`
	UsarTudo   bool             `json:"usarTudo"`
}

func (l NewQuebraLine) quantidade() decimal.Decimal {
	if l.Quantidade == nil {
		return decimal.Zero
	}
	return *l.Quantidade
}

type NewQuebra struct {
	Service   int             `json:"service" binding:"required"`
	Comidas   []NewQuebraLine `json:"comidas"`
	Bebidas   []NewQuebraLine `json:"bebidas"`
	Materiais []NewQuebraLine `json:"materiais"`
	Data      *time.Time      `json:"data"`
}

// The three catalogs share the columns the ledger touches, so stock
// mutation is table-driven instead of written out three times.
type quebraCategory struct {
	key   string
	label string
	table string
	lines []NewQuebraLine
}

func (input *NewQuebra) categories() []quebraCategory {
	return []quebraCategory{
		{key: "comidas", label: "Comida", table: "comidas", lines: input.Comidas},
		{key: "bebidas", label: "Bebida", table: "bebidas", lines: input.Bebidas},
		{key: "materiais", label: "Material", table: "material_salas", lines: input.Materiais},
	}
}

type itemSnapshot struct {
	ID         int
	Nome       string
	Quantidade decimal.Decimal
	Disponivel bool
}

func snapshotItems(tx *gorm.DB, table string, lines []NewQuebraLine) (map[int]itemSnapshot, error) {
	if len(lines) == 0 {
		return map[int]itemSnapshot{}, nil
	}
	ids := make([]int, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.Item)
	}

	var rows []itemSnapshot
	if err := tx.Table(table).
		Select("id, nome, quantidade, disponivel").
		Where("id IN ?", utils.UniqueSlice(ids)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	snap := make(map[int]itemSnapshot, len(rows))
	for _, row := range rows {
		snap[row.ID] = row
	}
	return snap, nil
}

// CreateQuebra applies a batch of stock deductions for one service.
//
// All lines are validated against a snapshot first and every violation is
// collected; nothing is mutated unless the whole batch is clean. The
// mutations then run in the same transaction as conditional decrements
// ("subtract only while enough stock remains"), so a concurrent writer
// that slips past the snapshot still cannot drive a quantity negative —
// the batch rolls back instead. When Redis is configured, creations are
// additionally serialized under a ledger lock.
func CreateQuebra(ctx context.Context, input *NewQuebra) (*Quebra, error) {
	release, err := utils.ObtainLedgerLock(ctx, "quebras:inventory", "models", "CreateQuebra")
	if err != nil {
		return nil, err
	}
	defer release()

	if err := utils.ValidateResourceId[Service](ctx, input.Service); err != nil {
		if _, ok := err.(*utils.NotFoundError); ok {
			return nil, utils.NewValidationError("Service not found")
		}
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	cats := input.categories()

	// validate-all phase
	var violations []utils.FieldError
	snapshots := make([]map[int]itemSnapshot, len(cats))
	for ci, cat := range cats {
		snap, err := snapshotItems(tx.WithContext(ctx), cat.table, cat.lines)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		snapshots[ci] = snap

		for i, line := range cat.lines {
			field := fmt.Sprintf("%s[%d]", cat.key, i)
			item, ok := snap[line.Item]
			if !ok {
				violations = append(violations, utils.FieldError{
					Field:   field,
					Message: fmt.Sprintf("%s %d not found", cat.label, line.Item),
				})
				continue
			}
			qty := line.quantidade()
			if qty.IsNegative() {
				violations = append(violations, utils.FieldError{
					Field:   field,
					Message: "Quantidade must be non-negative",
				})
				continue
			}
			if !line.UsarTudo && qty.GreaterThan(item.Quantidade) {
				violations = append(violations, utils.FieldError{
					Field:   field,
					Message: "Insufficient quantity for " + item.Nome,
				})
			}
		}
	}
	if len(violations) > 0 {
		tx.Rollback()
		return nil, &utils.ValidationError{Fields: violations}
	}

	// apply phase
	for ci, cat := range cats {
		for _, line := range cat.lines {
			if line.UsarTudo {
				// consume-all toggles availability only; the stored
				// quantity is left untouched so reversal can undo the
				// toggle without inventing a restored amount.
				if err := tx.WithContext(ctx).Table(cat.table).
					Where("id = ?", line.Item).
					Update("disponivel", false).Error; err != nil {
					tx.Rollback()
					return nil, err
				}
				continue
			}

			qty := line.quantidade()
			res := tx.WithContext(ctx).Table(cat.table).
				Where("id = ? AND quantidade >= ?", line.Item, qty).
				Update("quantidade", gorm.Expr("quantidade - ?", qty))
			if res.Error != nil {
				tx.Rollback()
				return nil, res.Error
			}
			if res.RowsAffected == 0 {
				// lost a race since the snapshot
				tx.Rollback()
				return nil, utils.NewValidationError("Insufficient quantity for " + snapshots[ci][line.Item].Nome)
			}

			if err := tx.WithContext(ctx).Table(cat.table).
				Where("id = ? AND quantidade = 0", line.Item).
				Update("disponivel", false).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	data := time.Now()
	if input.Data != nil {
		data = *input.Data
	}

	quebra := Quebra{
		ServiceId: input.Service,
		Data:      data,
		CreatedBy: userId,
	}
	for _, line := range input.Comidas {
		quebra.Comidas = append(quebra.Comidas, QuebraComida{
			ComidaId:   line.Item,
			Quantidade: line.quantidade(),
			UsarTudo:   line.UsarTudo,
		})
	}
	for _, line := range input.Bebidas {
		quebra.Bebidas = append(quebra.Bebidas, QuebraBebida{
			BebidaId:   line.Item,
			Quantidade: line.quantidade(),
			UsarTudo:   line.UsarTudo,
		})
	}
	for _, line := range input.Materiais {
		quebra.Materiais = append(quebra.Materiais, QuebraMaterial{
			MaterialId: line.Item,
			Quantidade: line.quantidade(),
			UsarTudo:   line.UsarTudo,
		})
	}

	if err := tx.WithContext(ctx).Create(&quebra).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetQuebra(ctx, quebra.ID)
}

// restoreLine puts a line's stock back. Items deleted after the quebra
// was created are skipped silently; there is nothing left to restore.
func restoreLine(tx *gorm.DB, table string, itemId int, qty decimal.Decimal, usarTudo bool) error {
	var count int64
	if err := tx.Table(table).Where("id = ?", itemId).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	if usarTudo {
		return tx.Table(table).Where("id = ?", itemId).Update("disponivel", true).Error
	}
	return tx.Table(table).Where("id = ?", itemId).Updates(map[string]interface{}{
		"quantidade": gorm.Expr("quantidade + ?", qty),
		"disponivel": true,
	}).Error
}

// DeleteQuebra reverses the consumption and removes the record.
func DeleteQuebra(ctx context.Context, id int) (*Quebra, error) {
	release, err := utils.ObtainLedgerLock(ctx, "quebras:inventory", "models", "DeleteQuebra")
	if err != nil {
		return nil, err
	}
	defer release()

	// Fetched under the lock so a concurrent delete of the same quebra
	// cannot restore the stock twice.
	quebra, err := utils.FetchSingleModel[Quebra](ctx, id, "Comidas", "Bebidas", "Materiais")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	for _, line := range quebra.Comidas {
		if err := restoreLine(tx.WithContext(ctx), "comidas", line.ComidaId, line.Quantidade, line.UsarTudo); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	for _, line := range quebra.Bebidas {
		if err := restoreLine(tx.WithContext(ctx), "bebidas", line.BebidaId, line.Quantidade, line.UsarTudo); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	for _, line := range quebra.Materiais {
		if err := restoreLine(tx.WithContext(ctx), "material_salas", line.MaterialId, line.Quantidade, line.UsarTudo); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.WithContext(ctx).Where("quebra_id = ?", id).Delete(&QuebraComida{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("quebra_id = ?", id).Delete(&QuebraBebida{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("quebra_id = ?", id).Delete(&QuebraMaterial{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(quebra).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return quebra, nil
}

func GetAllQuebras(ctx context.Context) ([]*Quebra, error) {
	return utils.FetchAllModels[Quebra](ctx, "data DESC",
		"Service", "Comidas.Item", "Bebidas.Item", "Materiais.Item")
}

func GetQuebra(ctx context.Context, id int) (*Quebra, error) {
	return utils.FetchSingleModel[Quebra](ctx, id, "Service", "Comidas.Item", "Bebidas.Item", "Materiais.Item")
}
