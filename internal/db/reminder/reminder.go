package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/db"

	"github.com/jackc/pgx/v4"
)

const reminderColumns = "id, title, message, phone_number, trigger_at, timezone, status, created_at"

type PgxReminderRepository struct {
	db db.DBTX
}

func NewPgxReminderRepository(db db.DBTX) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{db: db}
}

func (r *PgxReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder (title, message, phone_number, trigger_at, timezone, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+reminderColumns,
		input.Title,
		input.Message,
		input.PhoneNumber,
		input.TriggerAt,
		input.Timezone,
		input.Status.String(),
		input.CreatedAt,
	)
	return decodeReminder(row)
}

func (r *PgxReminderRepository) GetByID(
	ctx context.Context,
	id reminder.ID,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+reminderColumns+` FROM reminder WHERE id = $1`,
		int64(id),
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) Read(
	ctx context.Context,
	options reminder.ReadOptions,
) (reminders []reminder.Reminder, err error) {
	where, args := encodeReadOptions(options)

	query := `SELECT ` + reminderColumns + ` FROM reminder` + where
	switch options.OrderBy {
	case reminder.OrderByIDAsc:
		query += " ORDER BY id ASC"
	case reminder.OrderByIDDesc:
		query += " ORDER BY id DESC"
	case reminder.OrderByTriggerAtDesc:
		query += " ORDER BY trigger_at DESC, id DESC"
	default:
		query += " ORDER BY trigger_at ASC, id ASC"
	}
	if options.Limit.IsPresent {
		args = append(args, options.Limit.Value)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if options.Offset > 0 {
		args = append(args, options.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders = make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := decodeReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) Count(
	ctx context.Context,
	options reminder.ReadOptions,
) (count uint, err error) {
	where, args := encodeReadOptions(options)
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reminder`+where, args...)
	err = row.Scan(&count)
	return count, err
}

func (r *PgxReminderRepository) Update(
	ctx context.Context,
	input reminder.UpdateInput,
) (rem reminder.Reminder, err error) {
	assignments := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)

	addAssignment := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if input.DoTitleUpdate {
		addAssignment("title", input.Title)
	}
	if input.DoMessageUpdate {
		addAssignment("message", input.Message)
	}
	if input.DoPhoneNumberUpdate {
		addAssignment("phone_number", input.PhoneNumber)
	}
	if input.DoTriggerAtUpdate {
		addAssignment("trigger_at", input.TriggerAt)
	}
	if input.DoTimezoneUpdate {
		addAssignment("timezone", input.Timezone)
	}
	if input.DoStatusUpdate {
		addAssignment("status", input.Status.String())
	}
	if len(assignments) == 0 {
		return r.GetByID(ctx, input.ID)
	}

	args = append(args, int64(input.ID))
	query := fmt.Sprintf(
		`UPDATE reminder SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(assignments, ", "),
		len(args),
		reminderColumns,
	)
	rem, err = decodeReminder(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) FindDue(
	ctx context.Context,
	now time.Time,
) (reminders []reminder.Reminder, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+reminderColumns+`
		 FROM reminder
		 WHERE status = $1 AND trigger_at <= $2
		 ORDER BY trigger_at ASC, id ASC`,
		reminder.StatusScheduled.String(),
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders = make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := decodeReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM reminder WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func encodeReadOptions(options reminder.ReadOptions) (where string, args []interface{}) {
	conditions := make([]string, 0, 3)

	if options.StatusIn.IsPresent {
		statuses := make([]string, 0, len(options.StatusIn.Value))
		for _, status := range options.StatusIn.Value {
			statuses = append(statuses, status.String())
		}
		args = append(args, statuses)
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if options.TitleILike.IsPresent {
		args = append(args, "%"+options.TitleILike.Value+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if options.TriggerAtBefore.IsPresent {
		args = append(args, options.TriggerAtBefore.Value)
		conditions = append(conditions, fmt.Sprintf("trigger_at <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func decodeReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var id int64
	var rawStatus string
	err = row.Scan(
		&id,
		&rem.Title,
		&rem.Message,
		&rem.PhoneNumber,
		&rem.TriggerAt,
		&rem.Timezone,
		&rawStatus,
		&rem.CreatedAt,
	)
	if err != nil {
		return rem, err
	}
	status, err := reminder.ParseStatus(rawStatus)
	if err != nil {
		return rem, err
	}
	rem.ID = reminder.ID(id)
	rem.Status = status
	rem.TriggerAt = rem.TriggerAt.UTC()
	rem.CreatedAt = rem.CreatedAt.UTC()
	return rem, nil
}
