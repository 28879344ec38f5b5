package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Los detalles se guardan con una columna position
// para preservar el orden almacenado.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `
	id, warehouse_id, type, authorized, authorized_by, authorized_at,
	is_cancelled, cancelled_by, cancelled_at, cancellation_reason,
	is_reversal, original_movement_id, reference_document, notes,
	created_by, created_at`

// Create persiste cabecera y detalles. Debe invocarse dentro de una tx
// (vía TxRunner) para que cabecera y detalles sean atómicos.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.WarehouseID, movement.Type,
		movement.Authorized, nullable(movement.AuthorizedBy), movement.AuthorizedAt,
		movement.Cancelled, nullable(movement.CancelledBy), movement.CancelledAt, nullable(movement.CancellationReason),
		movement.Reversal, nullable(movement.OriginalMovementID),
		nullable(movement.ReferenceDocument), nullable(movement.Notes),
		nullable(movement.CreatedBy), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return r.insertDetails(movement.ID, movement.Details)
}

func (r *MovementRepo) insertDetails(movementID string, details []entity.MovementDetail) error {
	query := `
		INSERT INTO movement_details
			(id, movement_id, product_variant_id, direction, quantity, price, total, lote, expiration_date, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i := range details {
		d := &details[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.MovementID = movementID
		_, err := r.q.Exec(context.Background(), query,
			d.ID, movementID, d.ProductVariantID, string(d.Direction),
			d.Quantity, d.Price, d.Total,
			nullable(d.Lote), d.ExpirationDate, nullable(d.Notes), i,
		)
		if err != nil {
			return fmt.Errorf("create movement detail %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus detalles (nil si no existe).
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	return r.get(id, false)
}

// GetByIDForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
func (r *MovementRepo) GetByIDForUpdate(id string) (*entity.Movement, error) {
	return r.get(id, true)
}

func (r *MovementRepo) get(id string, forUpdate bool) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	details, err := r.listDetails(id)
	if err != nil {
		return nil, err
	}
	m.Details = details
	return m, nil
}

func (r *MovementRepo) listDetails(movementID string) ([]entity.MovementDetail, error) {
	query := `
		SELECT id, movement_id, product_variant_id, direction, quantity, price, total, lote, expiration_date, notes
		FROM movement_details WHERE movement_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement details: %w", err)
	}
	defer rows.Close()

	var details []entity.MovementDetail
	for rows.Next() {
		var d entity.MovementDetail
		var direction string
		var lote, notes *string
		if err := rows.Scan(&d.ID, &d.MovementID, &d.ProductVariantID, &direction,
			&d.Quantity, &d.Price, &d.Total, &lote, &d.ExpirationDate, &notes); err != nil {
			return nil, fmt.Errorf("scan movement detail: %w", err)
		}
		d.Direction = entity.Direction(direction)
		d.Lote = deref(lote)
		d.Notes = deref(notes)
		details = append(details, d)
	}
	return details, rows.Err()
}

// MarkAuthorized fija la bandera de autorización, quién y cuándo.
func (r *MovementRepo) MarkAuthorized(id, userID string, at time.Time) error {
	query := `
		UPDATE movements
		SET authorized = true, authorized_by = $2, authorized_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, userID, at)
	if err != nil {
		return fmt.Errorf("mark authorized: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark authorized: movimiento %s no existe", id)
	}
	return nil
}

// MarkCancelled fija la bandera de cancelación, quién, cuándo y el motivo.
func (r *MovementRepo) MarkCancelled(id, userID string, at time.Time, reason string) error {
	query := `
		UPDATE movements
		SET is_cancelled = true, cancelled_by = $2, cancelled_at = $3, cancellation_reason = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, userID, at, reason)
	if err != nil {
		return fmt.Errorf("mark cancelled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark cancelled: movimiento %s no existe", id)
	}
	return nil
}

// UpdateHeader actualiza los campos editables de la cabecera de un
// movimiento pendiente.
func (r *MovementRepo) UpdateHeader(movement *entity.Movement) error {
	query := `
		UPDATE movements
		SET warehouse_id = $2, type = $3, reference_document = $4, notes = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.WarehouseID, movement.Type,
		nullable(movement.ReferenceDocument), nullable(movement.Notes),
	)
	if err != nil {
		return fmt.Errorf("update movement header: %w", err)
	}
	return nil
}

// ReplaceDetails borra y recrea el conjunto de detalles (edición de pendientes).
func (r *MovementRepo) ReplaceDetails(movementID string, details []entity.MovementDetail) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM movement_details WHERE movement_id = $1`, movementID)
	if err != nil {
		return fmt.Errorf("delete movement details: %w", err)
	}
	return r.insertDetails(movementID, details)
}

// ListByWarehouse lista movimientos de una bodega, más recientes primero.
func (r *MovementRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements WHERE warehouse_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by warehouse: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		details, err := r.listDetails(m.ID)
		if err != nil {
			return nil, err
		}
		m.Details = details
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var authorizedBy, cancelledBy, cancellationReason *string
	var originalMovementID, referenceDocument, notes, createdBy *string
	err := row.Scan(
		&m.ID, &m.WarehouseID, &m.Type, &m.Authorized, &authorizedBy, &m.AuthorizedAt,
		&m.Cancelled, &cancelledBy, &m.CancelledAt, &cancellationReason,
		&m.Reversal, &originalMovementID, &referenceDocument, &notes,
		&createdBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.AuthorizedBy = deref(authorizedBy)
	m.CancelledBy = deref(cancelledBy)
	m.CancellationReason = deref(cancellationReason)
	m.OriginalMovementID = deref(originalMovementID)
	m.ReferenceDocument = deref(referenceDocument)
	m.Notes = deref(notes)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
