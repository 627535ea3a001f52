package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSystemAdmin       Role = "system_admin"
	RoleBasetypeAdmin     Role = "basetype_admin"
	RoleHRAdmin           Role = "hr_admin"
	RoleOrganizationAdmin Role = "organization_admin"
	RoleOrganizationUser  Role = "organization_user"
	RolePersonUser        Role = "person_user"
)

// IsValid reports whether r is one of the six known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystemAdmin, RoleBasetypeAdmin, RoleHRAdmin, RoleOrganizationAdmin,
		RoleOrganizationUser, RolePersonUser:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether r belongs to the admin principal family.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleSystemAdmin, RoleBasetypeAdmin, RoleHRAdmin, RoleOrganizationAdmin:
		return true
	default:
		return false
	}
}

// Principal is the resolved profile of an authenticated identity.
// Exactly three disjoint shapes implement it; the role determines which.
type Principal interface {
	// PrincipalID returns the backend identifier of the profile record.
	PrincipalID() int64
	isPrincipal()
}

// AdminPrincipal is the profile shape for the four admin roles.
type AdminPrincipal struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

func (p AdminPrincipal) PrincipalID() int64 { return p.ID }
func (AdminPrincipal) isPrincipal()         {}

// PersonPrincipal is the profile shape for role person_user.
type PersonPrincipal struct {
	ID                  int64   `json:"id"`
	Username            string  `json:"username"`
	PersonalIDNumber    string  `json:"personal_id_number"`
	FirstName           string  `json:"first_name"`
	MiddleName          *string `json:"middle_name"`
	LastName            string  `json:"last_name"`
	NickName            *string `json:"nick_name"`
	BirthDate           string  `json:"birth_date"`
	GenderTypeID        *int64  `json:"gender_type_id"`
	MaritalStatusTypeID *int64  `json:"marital_status_type_id"`
	CountryID           *int64  `json:"country_id"`
	Height              float64 `json:"height"`
	Weight              float64 `json:"weight"`
	EthnicityTypeID     *int64  `json:"ethnicity_type_id"`
	IncomeRangeID       *int64  `json:"income_range_id"`
	Comment             string  `json:"comment"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           *string `json:"updated_at"`
}

func (p PersonPrincipal) PrincipalID() int64 { return p.ID }
func (PersonPrincipal) isPrincipal()         {}

// OrganizationPrincipal is the profile shape for role organization_user.
type OrganizationPrincipal struct {
	ID                   int64   `json:"id"`
	FederalTaxID         string  `json:"federal_tax_id"`
	NameEN               string  `json:"name_en"`
	NameTH               string  `json:"name_th"`
	OrganizationTypeID   *int64  `json:"organization_type_id"`
	IndustryTypeID       *int64  `json:"industry_type_id"`
	EmployeeCountRangeID *int64  `json:"employee_count_range_id"`
	Username             string  `json:"username"`
	Comment              string  `json:"comment"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            *string `json:"updated_at"`
}

func (p OrganizationPrincipal) PrincipalID() int64 { return p.ID }
func (OrganizationPrincipal) isPrincipal()         {}

// DecodePrincipal decodes raw profile JSON into the principal shape matching
// the given role. The role is the discriminator; the payload itself carries
// none usable client-side.
func DecodePrincipal(role Role, raw json.RawMessage) (Principal, error) {
	switch {
	case role.IsAdmin():
		var p AdminPrincipal
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode admin principal: %w", err)
		}
		return p, nil
	case role == RolePersonUser:
		var p PersonPrincipal
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode person principal: %w", err)
		}
		return p, nil
	case role == RoleOrganizationUser:
		var p OrganizationPrincipal
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode organization principal: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("decode principal: unknown role %q", role)
	}
}

// Session is the server-side record we persist for an authenticated user.
// TokenHash is the SHA-256 of the bearer credential; the raw credential is
// never stored server-side.
type Session struct {
	TokenHash string
	Role      Role
	Principal Principal
	ExpiresAt time.Time
}

// sessionEnvelope is the wire form of Session. The principal travels as raw
// JSON and is re-decoded by role on the way out.
type sessionEnvelope struct {
	TokenHash string          `json:"token_hash"`
	Role      Role            `json:"role"`
	Principal json.RawMessage `json:"principal"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// MarshalJSON implements json.Marshaler using the role-discriminated envelope.
func (s Session) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(s.Principal)
	if err != nil {
		return nil, fmt.Errorf("marshal principal: %w", err)
	}
	return json.Marshal(sessionEnvelope{
		TokenHash: s.TokenHash,
		Role:      s.Role,
		Principal: raw,
		ExpiresAt: s.ExpiresAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler using the role-discriminated envelope.
func (s *Session) UnmarshalJSON(data []byte) error {
	var env sessionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal session envelope: %w", err)
	}
	principal, err := DecodePrincipal(env.Role, env.Principal)
	if err != nil {
		return err
	}
	s.TokenHash = env.TokenHash
	s.Role = env.Role
	s.Principal = principal
	s.ExpiresAt = env.ExpiresAt
	return nil
}

// HashToken derives the opaque session key for a bearer credential.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
