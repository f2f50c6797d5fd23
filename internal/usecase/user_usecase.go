package usecase

import (
	"context"
	"errors"
	"strings"

	"hackmatch/internal/domain/user"
	"hackmatch/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnknownRole  = errors.New("unknown role")
)

type UpdateProfileInput struct {
	Username    *string
	FullName    *string
	MainRole    *string
	ReadyToTeam *bool
	Skills      []string
}

type UserUsecase interface {
	GetByID(ctx context.Context, id uuid.UUID) (user.User, []string, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, []string, error)
	List(ctx context.Context, f repository.UserListFilter) ([]user.User, error)
	ListSkills(ctx context.Context) ([]repository.Skill, error)
}

type Users struct {
	users  repository.UserRepository
	skills repository.SkillRepository
}

func NewUserUsecase(users repository.UserRepository, skills repository.SkillRepository) *Users {
	return &Users{users: users, skills: skills}
}

func (u *Users) GetByID(ctx context.Context, id uuid.UUID) (user.User, []string, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, nil, ErrUserNotFound
		}
		return user.User{}, nil, ErrInternal
	}

	names, err := u.users.SkillNamesByUserID(ctx, id)
	if err != nil {
		// profile still renders without the skill relation
		names = []string{}
	}
	return sanitize(usr), names, nil
}

func (u *Users) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, []string, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, nil, ErrUserNotFound
		}
		return user.User{}, nil, ErrInternal
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return user.User{}, nil, ErrInvalidInput
		}
		usr.Username = username
	}
	if in.FullName != nil {
		usr.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.MainRole != nil {
		role := strings.ToLower(strings.TrimSpace(*in.MainRole))
		if role != "" && !isKnownRole(role) {
			return user.User{}, nil, ErrUnknownRole
		}
		usr.MainRole = role
	}
	if in.ReadyToTeam != nil {
		usr.ReadyToTeam = *in.ReadyToTeam
	}

	if err := u.users.Update(ctx, usr); err != nil {
		return user.User{}, nil, ErrInternal
	}

	if in.Skills != nil {
		skillIDs := make([]uuid.UUID, 0, len(in.Skills))
		seen := make(map[string]struct{}, len(in.Skills))
		for _, name := range in.Skills {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			s, err := u.skills.EnsureByName(ctx, name)
			if err != nil {
				return user.User{}, nil, ErrInternal
			}
			skillIDs = append(skillIDs, s.ID)
		}
		if err := u.users.ReplaceSkills(ctx, userID, skillIDs); err != nil {
			return user.User{}, nil, ErrInternal
		}
	}

	return u.GetByID(ctx, userID)
}

func (u *Users) List(ctx context.Context, f repository.UserListFilter) ([]user.User, error) {
	out, err := u.users.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range out {
		out[i] = sanitize(out[i])
	}
	return out, nil
}

func (u *Users) ListSkills(ctx context.Context) ([]repository.Skill, error) {
	out, err := u.skills.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func isKnownRole(role string) bool {
	for _, known := range user.KnownRoles() {
		if role == known {
			return true
		}
	}
	return false
}
