package service

import (
	"errors"

	"user-management/internal/config"
	"user-management/internal/models"
	"user-management/internal/utils"
)

type AuthService struct {
	operators OperatorStore
	cfg       *config.Config
}

func NewAuthService(operators OperatorStore, cfg *config.Config) *AuthService {
	return &AuthService{
		operators: operators,
		cfg:       cfg,
	}
}

func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	// Find operator by username
	operator, err := s.operators.FindByUsername(req.Username)
	if err != nil {
		return nil, errors.New("invalid username or password")
	}

	if !operator.IsActive {
		return nil, errors.New("operator account is inactive")
	}

	if !utils.CheckPasswordHash(req.Password, operator.PasswordHash) {
		return nil, errors.New("invalid username or password")
	}

	accessToken, err := utils.GenerateAccessToken(*operator, s.cfg.JWTSecret, s.cfg.JWTAccessExpire)
	if err != nil {
		return nil, errors.New("failed to generate access token")
	}

	return &models.LoginResponse{
		AccessToken: accessToken,
		Operator:    *operator,
	}, nil
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.Operator, error) {
	// Check if username already exists
	existing, _ := s.operators.FindByUsername(req.Username)
	if existing != nil {
		return nil, errors.New("username already exists")
	}

	existingEmail, _ := s.operators.FindByEmail(req.Email)
	if existingEmail != nil {
		return nil, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	operator := &models.Operator{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         "operator", // Default role
		IsActive:     true,
	}

	if err := s.operators.Create(operator); err != nil {
		return nil, errors.New("failed to create operator")
	}

	return operator, nil
}

func (s *AuthService) GetOperatorByID(id int) (*models.Operator, error) {
	return s.operators.FindByID(id)
}
