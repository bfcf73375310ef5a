package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventHub/internal/config"
	"eventHub/internal/eligibility"
	"eventHub/internal/models"
	"eventHub/internal/storage"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

const eventColumns = `
	e.id, e.share_code, e.title, e.description, e.location, e.category,
	e.event_date, e.registration_deadline, e.max_participants, e.organizer_id,
	(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id)`

func scanEvent(row *sql.Row) (*models.Event, error) {
	var event models.Event
	var maxParticipants sql.NullInt64

	err := row.Scan(
		&event.ID,
		&event.ShareCode,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Category,
		&event.EventDate,
		&event.RegistrationDeadline,
		&maxParticipants,
		&event.OrganizerID,
		&event.CurrentParticipants,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if maxParticipants.Valid {
		max := int(maxParticipants.Int64)
		event.MaxParticipants = &max
	}

	return &event, nil
}

func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (int64, string, error) {
	shareCode := strings.ReplaceAll(uuid.New().String(), "-", "")

	query := `
		INSERT INTO events (share_code, title, description, location, category,
			event_date, registration_deadline, max_participants, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var maxParticipants sql.NullInt64
	if event.MaxParticipants != nil {
		maxParticipants = sql.NullInt64{Int64: int64(*event.MaxParticipants), Valid: true}
	}

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		shareCode,
		event.Title,
		event.Description,
		event.Location,
		event.Category,
		event.EventDate,
		event.RegistrationDeadline,
		maxParticipants,
		event.OrganizerID,
	).Scan(&id)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create event: %w", err)
	}

	return id, shareCode, nil
}

func (s *Storage) EventByID(ctx context.Context, id int64, viewer models.Viewer) (*models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e
		WHERE e.id = $1`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return s.withRegistration(ctx, event, viewer)
}

func (s *Storage) EventByShareCode(ctx context.Context, code string, viewer models.Viewer) (*models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e
		WHERE e.share_code = $1`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, err
	}

	return s.withRegistration(ctx, event, viewer)
}

func (s *Storage) withRegistration(ctx context.Context, event *models.Event, viewer models.Viewer) (*models.Event, error) {
	if !viewer.Authenticated {
		return event, nil
	}

	query := `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND user_id = $2
		)`

	err := s.DB.QueryRowContext(ctx, query, event.ID, viewer.UserID).Scan(&event.IsRegistered)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}

	return event, nil
}

// RegisterUser performs the eligibility re-check and the registration
// insert as a single transaction, so the participant count can never exceed
// the limit under concurrent registrants. The event row stays locked for
// the duration.
func (s *Storage) RegisterUser(ctx context.Context, eventID, userID int64, now time.Time) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `
		SELECT id, event_date, registration_deadline, max_participants
		FROM events
		WHERE id = $1
		FOR UPDATE`

	var event models.Event
	var maxParticipants sql.NullInt64

	err = tx.QueryRowContext(ctx, lockQuery, eventID).Scan(
		&event.ID,
		&event.EventDate,
		&event.RegistrationDeadline,
		&maxParticipants,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to lock event: %w", err)
	}

	if maxParticipants.Valid {
		max := int(maxParticipants.Int64)
		event.MaxParticipants = &max
	}

	if !eligibility.WindowOpen(&event, now) {
		return storage.ErrRegistrationClosed
	}

	var alreadyRegistered bool
	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND user_id = $2
		)`

	err = tx.QueryRowContext(ctx, checkQuery, eventID, userID).Scan(&alreadyRegistered)
	if err != nil {
		return fmt.Errorf("failed to check existing registration: %w", err)
	}

	if alreadyRegistered {
		return storage.ErrAlreadyRegistered
	}

	countQuery := `
		SELECT COUNT(*) FROM registrations WHERE event_id = $1`

	err = tx.QueryRowContext(ctx, countQuery, eventID).Scan(&event.CurrentParticipants)
	if err != nil {
		return fmt.Errorf("failed to count registrations: %w", err)
	}

	if eligibility.ComputeCapacity(&event) == eligibility.CapacityFull {
		return storage.ErrEventFull
	}

	insertQuery := `
		INSERT INTO registrations (event_id, user_id, created_at)
		VALUES ($1, $2, NOW())`

	_, err = tx.ExecContext(ctx, insertQuery, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return tx.Commit()
}

func (s *Storage) UnregisterUser(ctx context.Context, eventID, userID int64) error {
	query := `
		DELETE FROM registrations
		WHERE event_id = $1 AND user_id = $2`

	result, err := s.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return storage.ErrNotRegistered
	}

	return nil
}

func (s *Storage) AllEvents(ctx context.Context, filter storage.EventFilter) ([]models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e`

	var conds []string
	var args []interface{}

	switch filter.When {
	case "upcoming":
		args = append(args, filter.Now)
		conds = append(conds, fmt.Sprintf("e.event_date > $%d", len(args)))
	case "past":
		args = append(args, filter.Now)
		conds = append(conds, fmt.Sprintf("e.event_date <= $%d", len(args)))
	}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("e.category = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(e.title ILIKE $%d OR e.description ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}

	query += "\n\t\tORDER BY e.event_date ASC"

	return s.queryEvents(ctx, query, args...)
}

func (s *Storage) RegisteredEvents(ctx context.Context, userID int64) ([]models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e
		JOIN registrations reg ON reg.event_id = e.id AND reg.user_id = $1
		ORDER BY e.event_date ASC`

	events, err := s.queryEvents(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].IsRegistered = true
	}

	return events, nil
}

func (s *Storage) OrganizedEvents(ctx context.Context, userID int64) ([]models.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events e
		WHERE e.organizer_id = $1
		ORDER BY e.event_date ASC`

	return s.queryEvents(ctx, query, userID)
}

func (s *Storage) queryEvents(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var maxParticipants sql.NullInt64

		err = rows.Scan(
			&event.ID,
			&event.ShareCode,
			&event.Title,
			&event.Description,
			&event.Location,
			&event.Category,
			&event.EventDate,
			&event.RegistrationDeadline,
			&maxParticipants,
			&event.OrganizerID,
			&event.CurrentParticipants,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if maxParticipants.Valid {
			max := int(maxParticipants.Int64)
			event.MaxParticipants = &max
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// UpdateEvent rewrites the descriptive fields and capacity. Only the
// organizer may edit; schedule invariants are checked by the caller at
// creation time and are not re-validated here.
func (s *Storage) UpdateEvent(ctx context.Context, event models.Event, userID int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var organizerID int64
	err = tx.QueryRowContext(ctx, `SELECT organizer_id FROM events WHERE id = $1 FOR UPDATE`, event.ID).Scan(&organizerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to lock event: %w", err)
	}

	if organizerID != userID {
		return storage.ErrNotOrganizer
	}

	var maxParticipants sql.NullInt64
	if event.MaxParticipants != nil {
		maxParticipants = sql.NullInt64{Int64: int64(*event.MaxParticipants), Valid: true}
	}

	updateQuery := `
		UPDATE events
		SET title = $1, description = $2, location = $3, category = $4,
			event_date = $5, registration_deadline = $6, max_participants = $7
		WHERE id = $8`

	_, err = tx.ExecContext(ctx, updateQuery,
		event.Title,
		event.Description,
		event.Location,
		event.Category,
		event.EventDate,
		event.RegistrationDeadline,
		maxParticipants,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return tx.Commit()
}

func (s *Storage) DeleteEvent(ctx context.Context, eventID, userID int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var organizerID int64
	err = tx.QueryRowContext(ctx, `SELECT organizer_id FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&organizerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to lock event: %w", err)
	}

	if organizerID != userID {
		return storage.ErrNotOrganizer
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete registrations: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return tx.Commit()
}
