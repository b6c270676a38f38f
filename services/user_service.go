package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/DRainger/MyMDb/apperrors"
	"github.com/DRainger/MyMDb/models"
)

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context) ([]models.User, error)
}

type userWatchlistStore interface {
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type userRatingStore interface {
	DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error
}

// UserService owns profile operations. Deleting a user cascades to the
// user's watchlist and rating rows.
type UserService struct {
	users     UserStore
	watchlist userWatchlistStore
	ratings   userRatingStore
	log       *zap.Logger
}

func NewUserService(users UserStore, watchlist userWatchlistStore, ratings userRatingStore, log *zap.Logger) *UserService {
	return &UserService{
		users:     users,
		watchlist: watchlist,
		ratings:   ratings,
		log:       log,
	}
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

// UpdateProfile applies a self-service update. Role changes are only honored
// when asAdmin is set.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.UserUpdate, asAdmin bool) (*models.User, error) {
	if !asAdmin {
		upd.Role = nil
	}
	if upd.Empty() {
		return nil, apperrors.Validation("no valid fields to update")
	}
	if upd.Role != nil && *upd.Role != models.RoleUser && *upd.Role != models.RoleAdmin {
		return nil, apperrors.Validation("role must be user or admin")
	}
	if upd.Password != nil {
		if len(*upd.Password) < 6 {
			return nil, apperrors.Validation("password must be at least 6 characters long")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), 12)
		if err != nil {
			return nil, err
		}
		hash := string(hashed)
		upd.Password = &hash
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	s.log.Info("user profile updated", zap.String("user_id", id.Hex()))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("user not found")
	}

	// Sub-entities live in their own collections now, so the cascade is
	// explicit.
	if err := s.watchlist.Clear(ctx, id); err != nil {
		return err
	}
	if err := s.ratings.DeleteAllForUser(ctx, id); err != nil {
		return err
	}

	s.log.Info("user deleted", zap.String("user_id", id.Hex()))
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
