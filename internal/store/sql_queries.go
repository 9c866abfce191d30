package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-accounts/models"
)

// accountColumns is the projection scanned by scanAccount.
const accountColumns = `id, email, password_hash, status, name, phone, location, company_name,
	position, customer_id, to_char(join_date, 'YYYY-MM-DD'), created_at, updated_at`

const fileColumns = `id, user_id, file_name, file_path, uploaded_at`

var (
	createAccount = `INSERT INTO users (email, password_hash, status, name, phone, location,
		company_name, position, customer_id, join_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE(NULLIF($10, '')::date, CURRENT_DATE))
	RETURNING ` + accountColumns + `;`

	findAccountByEmail = `SELECT ` + accountColumns + `
	FROM users
	WHERE email = $1;`

	findAccountByID = `SELECT ` + accountColumns + `
	FROM users
	WHERE id = $1;`

	deleteAccount = `DELETE FROM users
	WHERE id = $1;`

	setResetToken = `UPDATE users
	SET reset_password_token = $1, reset_password_expire = $2, updated_at = NOW()
	WHERE email = $3;`

	// redeemResetToken swaps the password and clears the token in one
	// statement, so of two concurrent redemptions only one matches a row.
	redeemResetToken = `UPDATE users
	SET password_hash = $1, reset_password_token = NULL, reset_password_expire = NULL, updated_at = NOW()
	WHERE reset_password_token = $2 AND reset_password_expire > $3
	RETURNING id;`

	createFile = `INSERT INTO user_files (user_id, file_name, file_path, uploaded_at)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + fileColumns + `;`

	findFile = `SELECT ` + fileColumns + `
	FROM user_files
	WHERE id = $1 AND user_id = $2;`

	listAllFiles = `SELECT ` + fileColumns + `
	FROM user_files
	WHERE user_id = $1
	ORDER BY uploaded_at DESC, id DESC;`

	listFilesPage = `SELECT ` + fileColumns + `
	FROM user_files
	WHERE user_id = $1
	ORDER BY uploaded_at DESC, id DESC
	LIMIT $2 OFFSET $3;`

	countFiles = `SELECT COUNT(*)
	FROM user_files
	WHERE user_id = $1;`

	updateFile = `UPDATE user_files
	SET file_name = $1, file_path = $2, uploaded_at = $3
	WHERE id = $4 AND user_id = $5;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// applyAccountFilter adds one WHERE clause per non-empty filter field.
// Text fields match partially and case-insensitively.
func applyAccountFilter(b sq.SelectBuilder, filter models.AccountFilter) sq.SelectBuilder {
	partial := []struct {
		column string
		value  string
	}{
		{"name", filter.Name},
		{"email", filter.Email},
		{"phone", filter.Phone},
		{"location", filter.Location},
		{"company_name", filter.CompanyName},
		{"position", filter.Position},
		{"customer_id", filter.CustomerID},
	}
	for _, f := range partial {
		if f.value != "" {
			b = b.Where(sq.ILike{f.column: "%" + f.value + "%"})
		}
	}

	if filter.JoinDate != "" {
		b = b.Where(sq.Eq{"join_date": filter.JoinDate})
	}
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": string(filter.Status)})
	}

	return b
}

// buildListAccountsQuery returns the page query for ListAccounts.
func buildListAccountsQuery(filter models.AccountFilter, page models.PageRequest) (string, []any, error) {
	b := applyAccountFilter(psql.Select(accountColumns).From("users"), filter).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset()))

	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildCountAccountsQuery returns the total count query for ListAccounts.
func buildCountAccountsQuery(filter models.AccountFilter) (string, []any, error) {
	query, args, err := applyAccountFilter(psql.Select("COUNT(*)").From("users"), filter).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateProfileQuery dynamically builds the UPDATE for the non-nil
// fields of update. updated_at is always bumped.
func buildUpdateProfileQuery(id int64, update models.ProfileUpdate) (string, []any, error) {
	b := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))

	fields := []struct {
		column string
		value  *string
	}{
		{"name", update.Name},
		{"phone", update.Phone},
		{"location", update.Location},
		{"company_name", update.CompanyName},
		{"position", update.Position},
		{"customer_id", update.CustomerID},
		{"join_date", update.JoinDate},
	}
	for _, f := range fields {
		if f.value != nil {
			b = b.Set(f.column, *f.value)
		}
	}
	if update.Status != nil {
		b = b.Set("status", string(*update.Status))
	}

	query, args, err := b.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
