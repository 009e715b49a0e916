package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/clock"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/repository"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

	errUserNotFound = common.NewError(common.ErrNotFound, "User not found")
	errEmailTaken   = common.Validationf("Email is already taken")
)

type UserService struct {
	userRepo repository.UserRepository
	clock    clock.Clock
}

func NewUserService(userRepo repository.UserRepository, clk clock.Clock) *UserService {
	return &UserService{userRepo: userRepo, clock: clk}
}

type RoleChangeRequest struct {
	Role string `json:"role"`
}

type ProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsers returns every user, newest first, without credentials.
func (s *UserService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// ChangeRole sets targetID's role on behalf of actor. Checks run in a fixed
// order: self change, role value, target existence. Ids are compared as
// uuids, not as strings.
func (s *UserService) ChangeRole(ctx context.Context, actor *model.User, targetID, role string) (*model.RoleChange, error) {
	target, validTarget := canonicalID(targetID)
	if self, _ := canonicalID(actor.ID); targetID == actor.ID || (validTarget && target == self) {
		return nil, common.NewError(common.ErrSelfModification, "You cannot change your own role")
	}
	if !model.ValidRole(role) {
		return nil, common.Validationf(`Invalid role. Must be "normal" or "superuser"`)
	}
	if !validTarget {
		return nil, errUserNotFound
	}

	change, err := s.userRepo.UpdateRole(ctx, target, role, s.clock.Now())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("changing role: %w", err)
	}
	return change, nil
}

// UpdateProfile edits the caller's own name and email.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User, in ProfileInput) (*model.UserSummary, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return nil, common.Validationf("Name is required")
	}
	if email == "" {
		return nil, common.Validationf("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, common.Validationf("Please enter a valid email address")
	}

	if email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(ctx, email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("checking email: %w", err)
		}
		if taken {
			return nil, errEmailTaken
		}
	}

	updated, err := s.userRepo.UpdateProfile(ctx, user.ID, name, email, s.clock.Now())
	if err != nil {
		// Lost a race with another account claiming the same email.
		if errors.Is(err, common.ErrConflict) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return updated, nil
}
