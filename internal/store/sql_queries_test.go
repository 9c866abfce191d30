// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListAccountsQuery_NoFilter(t *testing.T) {
	query, args, err := buildListAccountsQuery(models.AccountFilter{}, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Empty(t, args)
	q := strings.ToLower(query)
	assert.Contains(t, q, "from users")
	assert.NotContains(t, q, "where")
	assert.Contains(t, q, "order by created_at desc, id desc")
	assert.Contains(t, q, "limit 10")
	assert.Contains(t, q, "offset 0")
}

func Test_buildListAccountsQuery_AllFilters(t *testing.T) {
	filter := models.AccountFilter{
		Name:        "ann",
		Email:       "example",
		Phone:       "555",
		Location:    "riga",
		CompanyName: "acme",
		Position:    "eng",
		CustomerID:  "c-1",
		JoinDate:    "2024-01-02",
		Status:      models.StatusBanned,
	}

	query, args, err := buildListAccountsQuery(filter, models.PageRequest{Page: 3, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, []any{
		"%ann%", "%example%", "%555%", "%riga%", "%acme%", "%eng%", "%c-1%",
		"2024-01-02", "banned",
	}, args)

	for _, part := range []string{
		"name ILIKE $1",
		"email ILIKE $2",
		"phone ILIKE $3",
		"location ILIKE $4",
		"company_name ILIKE $5",
		"position ILIKE $6",
		"customer_id ILIKE $7",
		"join_date = $8",
		"status = $9",
		"LIMIT 20",
		"OFFSET 40",
	} {
		assert.Contains(t, query, part)
	}
}

func Test_buildCountAccountsQuery(t *testing.T) {
	query, args, err := buildCountAccountsQuery(models.AccountFilter{Name: "bo"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE name ILIKE $1", query)
	assert.Equal(t, []any{"%bo%"}, args)
}

func Test_buildUpdateProfileQuery_OnlySetFields(t *testing.T) {
	name := "New Name"
	status := models.StatusInactive

	query, args, err := buildUpdateProfileQuery(7, models.ProfileUpdate{Name: &name, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET updated_at = NOW(), name = $1, status = $2 WHERE id = $3", query)
	assert.Equal(t, []any{"New Name", "inactive", int64(7)}, args)
}

func Test_buildUpdateProfileQuery_EmptyUpdateTouchesTimestamp(t *testing.T) {
	query, args, err := buildUpdateProfileQuery(1, models.ProfileUpdate{})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET updated_at = NOW() WHERE id = $1", query)
	assert.Equal(t, []any{int64(1)}, args)
}

func Test_redeemResetToken_IsSingleConditionalStatement(t *testing.T) {
	q := strings.Join(strings.Fields(redeemResetToken), " ")

	assert.Contains(t, q, "reset_password_token = NULL")
	assert.Contains(t, q, "reset_password_expire = NULL")
	assert.Contains(t, q, "WHERE reset_password_token = $2 AND reset_password_expire > $3")
	assert.Contains(t, q, "RETURNING id")
}
