package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
)

const (
	msgAdminNotFound      = "Yönetici bulunamadı."
	msgInvalidCredentials = "Kullanıcı adı veya şifre hatalı."
	minAdminPasswordLen   = 8
)

type Admins struct {
	c *mongo.Collection
}

func NewAdmins(db *mongo.Database) *Admins {
	return &Admins{c: db.Collection(database.AdminsCollection)}
}

var decodeAdmin = decodeWith[models.AdminProfile](models.AdminSchema)

func normalizeUserName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Authenticate checks a username and password against the stored bcrypt
// hash. Unknown, inactive and wrong-password logins fail the same way.
func (s *Admins) Authenticate(ctx context.Context, userName, password string) (models.AdminProfile, error) {
	userName = normalizeUserName(userName)
	fail := &Error{Kind: ErrInvalidCredentials, Message: msgInvalidCredentials}
	if userName == "" || password == "" {
		return models.AdminProfile{}, fail
	}

	var raw bson.M
	if err := s.c.FindOne(ctx, bson.M{"userName": userName}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.AdminProfile{}, fail
		}
		return models.AdminProfile{}, err
	}
	admin, err := decodeAdmin(normalize.ID(raw), raw)
	if err != nil {
		return models.AdminProfile{}, err
	}
	if !admin.IsActive {
		zap.L().Warn("login attempt on inactive admin", zap.String("userName", userName))
		return models.AdminProfile{}, fail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return models.AdminProfile{}, fail
	}

	now := clock()
	if _, err := s.c.UpdateByID(ctx, admin.ID, bson.M{"$set": bson.M{"lastLoginAt": now}}); err != nil {
		zap.L().Warn("lastLoginAt not updated", zap.String("id", admin.ID), zap.Error(err))
	} else {
		admin.LastLoginAt = normalize.FormatTime(now)
	}
	return admin, nil
}

// Add creates an admin account. Usernames are stored lower-case and must be
// unique.
func (s *Admins) Add(ctx context.Context, userName, password string, role models.AdminRole) (models.AdminProfile, error) {
	userName = normalizeUserName(userName)
	if userName == "" {
		return models.AdminProfile{}, invalid("Kullanıcı adı boş olamaz.")
	}
	if len(password) < minAdminPasswordLen {
		return models.AdminProfile{}, invalidf("Şifre en az %d karakter olmalı.", minAdminPasswordLen)
	}
	if _, err := models.ParseAdminRole(string(role)); err != nil {
		return models.AdminProfile{}, invalid("Geçersiz yönetici rolü. 'admin' veya 'superAdmin' olmalı.")
	}

	n, err := s.c.CountDocuments(ctx, bson.M{"userName": userName}, options.Count().SetLimit(1))
	if err != nil {
		return models.AdminProfile{}, err
	}
	if n > 0 {
		return models.AdminProfile{}, conflict("Bu kullanıcı adı zaten kullanılıyor.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.AdminProfile{}, err
	}

	now := clock()
	admin := models.AdminProfile{
		ID:           newID(),
		UserName:     userName,
		Role:         role,
		IsActive:     true,
		PasswordHash: string(hash),
	}
	stored, err := storageDocument(admin, models.AdminSchema)
	if err != nil {
		return models.AdminProfile{}, err
	}
	stored["createdAt"] = now

	if _, err := s.c.InsertOne(ctx, stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.AdminProfile{}, conflict("Bu kullanıcı adı zaten kullanılıyor.")
		}
		return models.AdminProfile{}, err
	}
	zap.L().Info("admin added", zap.String("userName", userName), zap.String("role", string(role)))
	admin.CreatedAt = normalize.FormatTime(now)
	return admin, nil
}

func (s *Admins) Get(ctx context.Context, id string) (models.AdminProfile, error) {
	raw, err := findRaw(ctx, s.c, bson.M{"_id": id}, msgAdminNotFound)
	if err != nil {
		return models.AdminProfile{}, err
	}
	return decodeAdmin(id, raw)
}

func (s *Admins) List(ctx context.Context) ([]models.AdminProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "userName", Value: 1}})
	return findAll(ctx, s.c, bson.M{}, opts, decodeAdmin)
}

// lastSuperAdmin reports whether id is the only active super admin.
func (s *Admins) lastSuperAdmin(ctx context.Context, id string) (bool, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if admin.Role != models.AdminRoleSuperAdmin || !admin.IsActive {
		return false, nil
	}
	n, err := s.c.CountDocuments(ctx, bson.M{
		"_id":      bson.M{"$ne": id},
		"role":     string(models.AdminRoleSuperAdmin),
		"isActive": bson.M{"$ne": false},
	})
	return n == 0, err
}

func (s *Admins) guardLastSuperAdmin(ctx context.Context, id string) error {
	last, err := s.lastSuperAdmin(ctx, id)
	if err != nil {
		return err
	}
	if last {
		return conflict("Son aktif süper yönetici kaldırılamaz veya yetkisi düşürülemez.")
	}
	return nil
}

func (s *Admins) UpdateRole(ctx context.Context, id string, role models.AdminRole) error {
	if _, err := models.ParseAdminRole(string(role)); err != nil {
		return invalid("Geçersiz yönetici rolü. 'admin' veya 'superAdmin' olmalı.")
	}
	if role != models.AdminRoleSuperAdmin {
		if err := s.guardLastSuperAdmin(ctx, id); err != nil {
			return err
		}
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": string(role)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(msgAdminNotFound)
	}
	return nil
}

func (s *Admins) SetActive(ctx context.Context, id string, active bool) error {
	if !active {
		if err := s.guardLastSuperAdmin(ctx, id); err != nil {
			return err
		}
	}
	return setActive(ctx, s.c, id, active, msgAdminNotFound)
}

func (s *Admins) ToggleActive(ctx context.Context, id string) (bool, error) {
	if err := s.guardLastSuperAdmin(ctx, id); err != nil {
		return false, err
	}
	return toggleActive(ctx, s.c, id, msgAdminNotFound)
}

func (s *Admins) Delete(ctx context.Context, id string) error {
	if err := s.guardLastSuperAdmin(ctx, id); err != nil {
		return err
	}
	return deleteByID(ctx, s.c, id, msgAdminNotFound)
}

// EnsureBootstrap seeds a super admin when no admin with userName exists.
// It reports whether an account was created.
func (s *Admins) EnsureBootstrap(ctx context.Context, userName, password string) (bool, error) {
	if strings.TrimSpace(userName) == "" || password == "" {
		return false, nil
	}
	_, err := s.Add(ctx, userName, password, models.AdminRoleSuperAdmin)
	if errors.Is(err, ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
