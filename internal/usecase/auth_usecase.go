package usecase

import (
	"context"
	"errors"
	"fmt"

	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/domain/repository"
	"medfi-backend/internal/service"
	"medfi-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminInactive      = errors.New("admin account is disabled")
)

type AuthUsecase interface {
	EnsureAdmin(ctx context.Context, email, password, fullName string) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, adminID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*dto.AdminResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		auditService: auditService,
		jwtService:   jwtService,
		redisClient:  redisClient,
	}
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// EnsureAdmin creates the operator account named in the environment if
// it does not exist yet. Two instances racing on first boot both pass
// the existence check; the loser's insert hits the unique index and is
// treated as already seeded.
func (u *authUsecase) EnsureAdmin(ctx context.Context, email, password, fullName string) error {
	existing, err := u.adminRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find admin by email: %+v", err)
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	admin := &entity.Admin{
		Email:    email,
		Password: string(hashedPassword),
		FullName: fullName,
	}

	if err := u.adminRepo.Create(u.db.WithContext(ctx), admin); err != nil {
		if isDuplicateKeyError(err) {
			return nil
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return err
	}

	u.log.Infof("Seeded admin account: %s", email)
	return nil
}

func accessKey(adminID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", adminID.String(), tokenID)
}

func refreshKey(adminID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", adminID.String(), tokenID)
}

func (u *authUsecase) issueTokens(ctx context.Context, admin *entity.Admin) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(admin.ID, admin.Email)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, accessKey(admin.ID, accessTokenID), "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey(admin.ID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// Login authenticates a review-console operator. Unknown email and
// wrong password collapse into the same error so neither can be probed.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := u.adminRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find admin by email: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if admin.IsActive != nil && !*admin.IsActive {
		return nil, ErrAdminInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, admin)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogChange(u.db.WithContext(ctx), &admin.ID, "", entity.AuditActionAdminLogin, nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tokens, nil
}

// Logout revokes the caller's tokens. Refresh tokens belonging to the
// same admin are swept by pattern so a stolen refresh token dies with
// the session.
func (u *authUsecase) Logout(ctx context.Context, adminID uuid.UUID, accessTokenID string) error {
	if err := u.redisClient.Del(ctx, accessKey(adminID, accessTokenID)).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	refreshKeys, err := u.redisClient.Keys(ctx, fmt.Sprintf("refresh_token:%s:*", adminID.String())).Result()
	if err != nil {
		u.log.Warnf("Failed to get refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	if err := u.auditService.LogChange(u.db.WithContext(ctx), &adminID, "", entity.AuditActionAdminLogout, nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

// RefreshToken rotates the session: the presented refresh token is
// consumed and a fresh pair is issued. A replayed token finds its Redis
// key gone and fails with ErrTokenRevoked.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	key := refreshKey(claims.AdminID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, key).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	if err := u.redisClient.Del(ctx, key).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), claims.AdminID)
	if err != nil {
		u.log.Warnf("Failed to find admin by id: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	if admin.IsActive != nil && !*admin.IsActive {
		return nil, ErrAdminInactive
	}

	return u.issueTokens(ctx, admin)
}

func (u *authUsecase) GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*dto.AdminResponse, error) {
	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), adminID)
	if err != nil {
		u.log.Warnf("Failed to find admin by id: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return &dto.AdminResponse{
		ID:       admin.ID,
		Email:    admin.Email,
		FullName: admin.FullName,
	}, nil
}
