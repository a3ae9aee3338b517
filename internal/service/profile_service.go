package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/identity"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrProfileExists is returned when the external identity already
// registered a profile.
var ErrProfileExists = errors.New("profile already exists for this identity")

// Marker appended to rep names recorded before the rep registered.
const unregisteredMarker = "(ยังไม่ลงทะเบียน)"

type ProfileService struct {
	profiles *repository.ProfileRepository
	visits   *repository.VisitRepository
	plans    *repository.PlanRepository
	idp      identity.Provider
	logger   *zap.Logger
}

func NewProfileService(profiles *repository.ProfileRepository, visits *repository.VisitRepository, plans *repository.PlanRepository, idp identity.Provider, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, visits: visits, plans: plans, idp: idp, logger: logger}
}

type CreateProfileInput struct {
	ClerkID      string `json:"clerkId"`
	Email        string `json:"email" binding:"omitempty,email"`
	ProfileImage string `json:"profileImage"`
	Name         string `json:"name" binding:"required,min=1"`
	Phone        string `json:"phone"`
}

func (s *ProfileService) List(ctx context.Context) ([]entity.Profile, error) {
	return s.profiles.List(ctx)
}

// Create registers a profile once per external identity, marks the
// identity as registered and merges historical free-text rep names onto
// the canonical one.
func (s *ProfileService) Create(ctx context.Context, input *CreateProfileInput) (*entity.Profile, error) {
	if existing, err := s.profiles.FindByClerkID(ctx, input.ClerkID); err == nil && existing != nil {
		return nil, ErrProfileExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile := &entity.Profile{
		ID:           uuid.New().String(),
		ClerkID:      input.ClerkID,
		Email:        input.Email,
		ProfileImage: input.ProfileImage,
		Name:         strings.TrimSpace(input.Name),
		Phone:        input.Phone,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.idp.SetMetadata(ctx, input.ClerkID, "registered", true); err != nil {
		// Identity metadata is advisory; the profile row is the source
		// of truth here.
		s.logger.Warn("failed to flag identity as registered",
			zap.String("clerk_id", input.ClerkID), zap.Error(err))
	}

	if err := s.MergeSalesNames(ctx, profile.Name); err != nil {
		s.logger.Warn("sales name merge failed",
			zap.String("name", profile.Name), zap.Error(err))
	}

	return profile, nil
}

// Registered reports whether the caller's identity record carries the
// registered flag.
func (s *ProfileService) Registered(ctx context.Context, clerkID string) (bool, error) {
	user, err := s.idp.CurrentUser(ctx, clerkID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	registered, _ := user.Metadata["registered"].(bool)
	return registered, nil
}

// NameKey normalizes a rep display name for comparison: the
// unregistered marker is stripped and whitespace collapsed and lowered.
func NameKey(name string) string {
	s := strings.ReplaceAll(name, unregisteredMarker, "")
	s = strings.ReplaceAll(s, "(unregistered)", "")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MergeSalesNames rewrites every historical Visit/Plan sales value whose
// comparison key matches the canonical name. Mutates rows in place.
func (s *ProfileService) MergeSalesNames(ctx context.Context, canonical string) error {
	canonical = strings.TrimSpace(canonical)
	key := NameKey(canonical)
	if key == "" {
		return nil
	}

	seen := map[string]struct{}{}
	for _, source := range []func(context.Context) ([]string, error){
		s.visits.DistinctSales,
		s.plans.DistinctSales,
	} {
		names, err := source(ctx)
		if err != nil {
			return err
		}
		for _, n := range names {
			seen[n] = struct{}{}
		}
	}

	var merged int64
	for name := range seen {
		if name == canonical || NameKey(name) != key {
			continue
		}
		n1, err := s.visits.RenameSales(ctx, name, canonical)
		if err != nil {
			return err
		}
		n2, err := s.plans.RenameSales(ctx, name, canonical)
		if err != nil {
			return err
		}
		merged += n1 + n2
	}
	if merged > 0 {
		s.logger.Info("merged historical sales names",
			zap.String("canonical", canonical), zap.Int64("rows", merged))
	}
	return nil
}
