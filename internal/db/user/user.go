package user

import (
	"context"
	"errors"
	c "pms/internal/core/domain/common"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/db"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, name, email, password_hash, role, department, is_active, created_at,
	reset_token_hash, reset_token_expires_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) *PgxUserRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: conn}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (name, email, password_hash, role, department, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		string(input.Role),
		input.Department,
		input.IsActive,
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if db.IsUniqueViolation(err, EMAIL_CONSTRAINT_NAME) {
		return u, user.ErrEmailAlreadyExists
	}
	return u, err
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	return notFoundAs(scanUser(row))(user.ErrUserDoesNotExist)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	return notFoundAs(scanUser(row))(user.ErrUserDoesNotExist)
}

func (r *PgxUserRepository) GetByPasswordResetTokenHash(
	ctx context.Context,
	hash user.PasswordResetTokenHash,
	now time.Time,
) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user"
		WHERE reset_token_hash = $1 AND reset_token_expires_at > $2`,
		string(hash),
		now,
	)
	return notFoundAs(scanUser(row))(user.ErrInvalidOrExpiredPasswordResetToken)
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	tag, err := r.db.Exec(ctx, `UPDATE "user" SET password_hash = $2 WHERE id = $1`, int64(id), string(password))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetPasswordResetToken(
	ctx context.Context,
	id user.ID,
	hash user.PasswordResetTokenHash,
	expiresAt time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_token_hash = $2, reset_token_expires_at = $3 WHERE id = $1`,
		int64(id),
		string(hash),
		expiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ResetPassword(
	ctx context.Context,
	hash user.PasswordResetTokenHash,
	password user.PasswordHash,
	now time.Time,
) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expires_at = NULL
		WHERE reset_token_hash = $1 AND reset_token_expires_at > $3
		RETURNING `+userColumns,
		string(hash),
		string(password),
		now,
	)
	return notFoundAs(scanUser(row))(user.ErrInvalidOrExpiredPasswordResetToken)
}

func (r *PgxUserRepository) List(ctx context.Context) (users []user.User, err error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM "user" ORDER BY id`)
	if err != nil {
		return users, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return users, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			name = CASE WHEN $2::bool THEN $3 ELSE name END,
			email = CASE WHEN $4::bool THEN $5 ELSE email END,
			role = CASE WHEN $6::bool THEN $7 ELSE role END,
			department = CASE WHEN $8::bool THEN $9 ELSE department END,
			is_active = CASE WHEN $10::bool THEN $11::bool ELSE is_active END
		WHERE id = $1
		RETURNING `+userColumns,
		int64(input.ID),
		input.DoNameUpdate,
		input.Name,
		input.DoEmailUpdate,
		string(input.Email),
		input.DoRoleUpdate,
		string(input.Role),
		input.DoDepartmentUpdate,
		input.Department,
		input.DoIsActiveUpdate,
		input.IsActive,
	)
	u, err = notFoundAs(scanUser(row))(user.ErrUserDoesNotExist)
	if db.IsUniqueViolation(err, EMAIL_CONSTRAINT_NAME) {
		return u, user.ErrEmailAlreadyExists
	}
	return u, err
}

func (r *PgxUserRepository) Delete(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func notFoundAs(u user.User, err error) func(error) (user.User, error) {
	return func(notFound error) (user.User, error) {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, notFound
		}
		return u, err
	}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id                  int64
		email               string
		passwordHash        string
		role                string
		createdAt           time.Time
		resetTokenHash      pgtype.Text
		resetTokenExpiresAt pgtype.Timestamptz
	)
	err = row.Scan(
		&id,
		&u.Name,
		&email,
		&passwordHash,
		&role,
		&u.Department,
		&u.IsActive,
		&createdAt,
		&resetTokenHash,
		&resetTokenExpiresAt,
	)
	if err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	u.Email = c.Email(email)
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.Role = user.Role(role)
	u.CreatedAt = createdAt.UTC()
	u.ResetTokenHash = decodeResetTokenHash(resetTokenHash)
	u.ResetTokenExpiresAt = decodeOptionalTime(resetTokenExpiresAt)
	return u, u.Validate()
}

func decodeResetTokenHash(v pgtype.Text) c.Optional[user.PasswordResetTokenHash] {
	return c.NewOptional(user.PasswordResetTokenHash(v.String), v.Status == pgtype.Present)
}

func decodeOptionalTime(v pgtype.Timestamptz) c.Optional[time.Time] {
	if v.Status != pgtype.Present {
		return c.None[time.Time]()
	}
	return c.NewOptional(v.Time.UTC(), true)
}
