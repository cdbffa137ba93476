package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/planpush/planpush/internal/azdo"
	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/repository"
)

var (
	// ErrNoOrganization indicates no organization could be determined.
	ErrNoOrganization = errors.New("no organization configured")

	// ErrNoProject indicates no project could be determined.
	ErrNoProject = errors.New("no project configured")

	// ErrNoToken indicates no credential is available.
	ErrNoToken = errors.New("no access token configured")
)

// ProfileSource supplies the active stored connection profile. A nil source
// means only environment variables are consulted.
type ProfileSource interface {
	GetActive(ctx context.Context) (*domain.Profile, error)
}

// ResolvedContext is everything a publish run needs: the remote addressing
// context plus run-wide classification defaults. It lives for exactly one
// run and is never cached by the resolver.
type ResolvedContext struct {
	Remote      azdo.RemoteContext
	AreaPath    string
	Iteration   string
	ProfileName string
}

// Resolver determines the remote context for a publish run. Environment
// variables override the active profile, which overrides settings-file
// defaults. Resolution failures are fatal: no remote call is made without a
// complete context.
type Resolver struct {
	profiles ProfileSource
	settings Settings
}

// NewResolver creates a Resolver. profiles may be nil.
func NewResolver(profiles ProfileSource, settings Settings) *Resolver {
	return &Resolver{profiles: profiles, settings: settings}
}

// Resolve produces the context for one run. Call it once per run; the
// organization and project do not vary within a run.
func (r *Resolver) Resolve(ctx context.Context) (ResolvedContext, error) {
	resolved := ResolvedContext{
		Remote: azdo.RemoteContext{
			Organization: os.Getenv("PLANPUSH_AZDO_ORG"),
			Project:      os.Getenv("PLANPUSH_AZDO_PROJECT"),
			Token:        os.Getenv("PLANPUSH_AZDO_TOKEN"),
			BaseURL:      os.Getenv("PLANPUSH_AZDO_BASE_URL"),
		},
		AreaPath:  r.settings.AreaPath,
		Iteration: r.settings.Iteration,
	}

	if r.profiles != nil {
		profile, err := r.profiles.GetActive(ctx)
		switch {
		case err == nil && profile != nil:
			resolved.ProfileName = profile.Name
			resolved.Remote.Organization = domain.CoalesceStr(resolved.Remote.Organization, profile.Organization)
			resolved.Remote.Project = domain.CoalesceStr(resolved.Remote.Project, profile.Project)
			resolved.Remote.Token = domain.CoalesceStr(resolved.Remote.Token, profile.Token)
			resolved.AreaPath = domain.CoalesceStr(resolved.AreaPath, profile.AreaPath)
			resolved.Iteration = domain.CoalesceStr(resolved.Iteration, profile.Iteration)
		case errors.Is(err, repository.ErrNotFound):
			// No active profile stored; the per-field checks below tell the
			// user what is missing and how to supply it.
		case err != nil && resolvedIncomplete(resolved):
			// The profile would have been needed; surface the lookup failure.
			return ResolvedContext{}, fmt.Errorf("loading active profile: %w", err)
		}
	}

	if resolved.Remote.Organization == "" {
		return ResolvedContext{}, fmt.Errorf("%w: set PLANPUSH_AZDO_ORG or add a profile", ErrNoOrganization)
	}
	if resolved.Remote.Project == "" {
		return ResolvedContext{}, fmt.Errorf("%w: set PLANPUSH_AZDO_PROJECT or add a profile", ErrNoProject)
	}
	if resolved.Remote.Token == "" {
		return ResolvedContext{}, fmt.Errorf("%w: set PLANPUSH_AZDO_TOKEN or add a profile", ErrNoToken)
	}
	return resolved, nil
}

func resolvedIncomplete(rc ResolvedContext) bool {
	return rc.Remote.Organization == "" || rc.Remote.Project == "" || rc.Remote.Token == ""
}
