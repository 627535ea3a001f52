package partyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/ports"
)

// ErrResolution is returned when every applicable profile endpoint rejected
// the credential. The caller must purge the credential.
var ErrResolution = errors.New("profile resolution failed")

// Profile endpoint paths, one per principal family.
const (
	currentRolePath         = "/currentrole"
	adminProfilePath        = "/users/me"
	personProfilePath       = "/persons/me"
	organizationProfilePath = "/organizations/me"
)

// ResolverOptions groups construction parameters for Resolver.
type ResolverOptions struct {
	Client *Client
	// UseCurrentRole enables the direct-resolution fast path: ask the
	// backend for the role first, then fetch exactly the matching profile.
	// When disabled (or when /currentrole fails) the resolver falls back
	// to the admin→person→organization probing chain.
	UseCurrentRole bool
	Logger         *slog.Logger
}

// Resolver implements ports.ProfileResolver against the party backend.
type Resolver struct {
	client         *Client
	useCurrentRole bool
	logger         *slog.Logger
}

var _ ports.ProfileResolver = (*Resolver)(nil)

// NewResolver constructs a Resolver.
func NewResolver(opts ResolverOptions) (*Resolver, error) {
	if opts.Client == nil {
		return nil, errors.New("partyapi: client is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client:         opts.Client,
		useCurrentRole: opts.UseCurrentRole,
		logger:         logger,
	}, nil
}

// Resolve determines which principal family the credential belongs to and
// returns its decoded profile. The fast path asks /currentrole and then
// fetches exactly one profile; any fast-path failure falls through to the
// probing chain rather than failing outright.
func (r *Resolver) Resolve(ctx context.Context, token string) (ports.Resolution, error) {
	if token == "" {
		return ports.Resolution{}, fmt.Errorf("%w: empty credential", ErrResolution)
	}

	if r.useCurrentRole {
		res, err := r.resolveByRole(ctx, token)
		if err == nil {
			return res, nil
		}
		// Transport errors and auth errors alike fall back to probing;
		// the distinction only matters in logs.
		r.logger.DebugContext(ctx, "currentrole fast path failed, probing", "error", err)
	}

	return r.resolveByProbing(ctx, token)
}

// resolveByRole fetches the role directly and dispatches to the single
// matching profile endpoint.
func (r *Resolver) resolveByRole(ctx context.Context, token string) (ports.Resolution, error) {
	var payload struct {
		Role domainauth.Role `json:"role"`
	}
	if err := r.client.getJSON(ctx, token, currentRolePath, &payload); err != nil {
		return ports.Resolution{}, fmt.Errorf("current role: %w", err)
	}

	switch {
	case payload.Role.IsAdmin():
		return r.adminResolution(ctx, token)
	case payload.Role == domainauth.RolePersonUser:
		return r.personResolution(ctx, token)
	case payload.Role == domainauth.RoleOrganizationUser:
		return r.organizationResolution(ctx, token)
	default:
		return ports.Resolution{}, fmt.Errorf("current role: unknown role %q", payload.Role)
	}
}

// probe is one entry in the fallback chain. Order is semantic: on a token
// nominally valid for more than one family, the earlier probe wins.
type probe struct {
	name  string
	fetch func(context.Context, string) (ports.Resolution, error)
}

// resolveByProbing tries each profile family in the fixed precedence order
// admin → person → organization, short-circuiting on the first success.
// Probes run strictly sequentially: a later probe must not start until the
// earlier one's failure is observed.
func (r *Resolver) resolveByProbing(ctx context.Context, token string) (ports.Resolution, error) {
	probes := []probe{
		{name: "admin", fetch: r.adminResolution},
		{name: "person", fetch: r.personResolution},
		{name: "organization", fetch: r.organizationResolution},
	}

	var failures []error
	for _, p := range probes {
		res, err := p.fetch(ctx, token)
		if err == nil {
			return res, nil
		}
		failures = append(failures, fmt.Errorf("%s probe: %w", p.name, err))
	}

	return ports.Resolution{}, errors.Join(ErrResolution, errors.Join(failures...))
}

// adminResolution fetches the admin profile. The payload declares which of
// the four admin roles the token carries.
func (r *Resolver) adminResolution(ctx context.Context, token string) (ports.Resolution, error) {
	var raw json.RawMessage
	if err := r.client.getJSON(ctx, token, adminProfilePath, &raw); err != nil {
		return ports.Resolution{}, err
	}
	principal, err := domainauth.DecodePrincipal(domainauth.RoleSystemAdmin, raw)
	if err != nil {
		return ports.Resolution{}, err
	}
	admin, ok := principal.(domainauth.AdminPrincipal)
	if !ok || !admin.Role.IsAdmin() {
		return ports.Resolution{}, fmt.Errorf("admin profile carries non-admin role %q", admin.Role)
	}
	return ports.Resolution{Role: admin.Role, Principal: admin}, nil
}

func (r *Resolver) personResolution(ctx context.Context, token string) (ports.Resolution, error) {
	var raw json.RawMessage
	if err := r.client.getJSON(ctx, token, personProfilePath, &raw); err != nil {
		return ports.Resolution{}, err
	}
	principal, err := domainauth.DecodePrincipal(domainauth.RolePersonUser, raw)
	if err != nil {
		return ports.Resolution{}, err
	}
	return ports.Resolution{Role: domainauth.RolePersonUser, Principal: principal}, nil
}

func (r *Resolver) organizationResolution(ctx context.Context, token string) (ports.Resolution, error) {
	var raw json.RawMessage
	if err := r.client.getJSON(ctx, token, organizationProfilePath, &raw); err != nil {
		return ports.Resolution{}, err
	}
	principal, err := domainauth.DecodePrincipal(domainauth.RoleOrganizationUser, raw)
	if err != nil {
		return ports.Resolution{}, err
	}
	return ports.Resolution{Role: domainauth.RoleOrganizationUser, Principal: principal}, nil
}
