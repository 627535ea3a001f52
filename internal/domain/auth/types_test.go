package auth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsValid(t *testing.T) {
	valid := []Role{
		RoleSystemAdmin, RoleBasetypeAdmin, RoleHRAdmin,
		RoleOrganizationAdmin, RoleOrganizationUser, RolePersonUser,
	}
	for _, r := range valid {
		assert.True(t, r.IsValid(), "role %q should be valid", r)
	}

	assert.False(t, Role("").IsValid())
	assert.False(t, Role("super_admin").IsValid())
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleSystemAdmin.IsAdmin())
	assert.True(t, RoleBasetypeAdmin.IsAdmin())
	assert.True(t, RoleHRAdmin.IsAdmin())
	assert.True(t, RoleOrganizationAdmin.IsAdmin())
	assert.False(t, RolePersonUser.IsAdmin())
	assert.False(t, RoleOrganizationUser.IsAdmin())
}

func TestDecodePrincipal_Admin(t *testing.T) {
	raw := json.RawMessage(`{"id":1,"name":"Alice","email":"alice@example.com","role":"hr_admin","created_at":"2024-01-01T00:00:00Z","updated_at":null}`)

	principal, err := DecodePrincipal(RoleHRAdmin, raw)

	require.NoError(t, err)
	admin, ok := principal.(AdminPrincipal)
	require.True(t, ok)
	assert.Equal(t, int64(1), admin.PrincipalID())
	assert.Equal(t, RoleHRAdmin, admin.Role)
	assert.Equal(t, "alice@example.com", admin.Email)
}

func TestDecodePrincipal_Person(t *testing.T) {
	raw := json.RawMessage(`{"id":7,"username":"somchai","personal_id_number":"1234567890123","first_name":"Somchai","middle_name":null,"last_name":"J","nick_name":"Chai","birth_date":"1990-05-01","gender_type_id":2,"marital_status_type_id":null,"country_id":66,"height":175,"weight":70,"ethnicity_type_id":null,"income_range_id":3,"comment":"","created_at":"2024-01-01T00:00:00Z","updated_at":null}`)

	principal, err := DecodePrincipal(RolePersonUser, raw)

	require.NoError(t, err)
	person, ok := principal.(PersonPrincipal)
	require.True(t, ok)
	assert.Equal(t, int64(7), person.PrincipalID())
	assert.Equal(t, "somchai", person.Username)
	require.NotNil(t, person.GenderTypeID)
	assert.Equal(t, int64(2), *person.GenderTypeID)
	assert.Nil(t, person.MaritalStatusTypeID)
}

func TestDecodePrincipal_Organization(t *testing.T) {
	raw := json.RawMessage(`{"id":3,"federal_tax_id":"0105555000111","name_en":"Acme Co","name_th":"บริษัท แอคมี่","organization_type_id":1,"industry_type_id":null,"employee_count_range_id":2,"username":"acme","comment":"","created_at":"2024-01-01T00:00:00Z","updated_at":null}`)

	principal, err := DecodePrincipal(RoleOrganizationUser, raw)

	require.NoError(t, err)
	org, ok := principal.(OrganizationPrincipal)
	require.True(t, ok)
	assert.Equal(t, "Acme Co", org.NameEN)
	assert.Nil(t, org.IndustryTypeID)
}

func TestDecodePrincipal_UnknownRole(t *testing.T) {
	_, err := DecodePrincipal(Role("intruder"), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestSession_JSONRoundTrip(t *testing.T) {
	sess := Session{
		TokenHash: HashToken("token-1"),
		Role:      RolePersonUser,
		Principal: PersonPrincipal{ID: 9, Username: "somchai", FirstName: "Somchai", LastName: "J"},
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	data, err := json.Marshal(sess)
	require.NoError(t, err)

	var got Session
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, sess.TokenHash, got.TokenHash)
	assert.Equal(t, sess.Role, got.Role)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))
	person, ok := got.Principal.(PersonPrincipal)
	require.True(t, ok)
	assert.Equal(t, int64(9), person.ID)
	assert.Equal(t, "somchai", person.Username)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
