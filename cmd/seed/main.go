package main

import (
	"context"
	"errors"
	"pms/internal/app/deps"
	c "pms/internal/core/domain/common"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/user"
	registeruser "pms/internal/core/services/register_user"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	deps, shutdownDeps := deps.InitStorageDeps()
	defer shutdownDeps()

	ctx := context.Background()
	log := deps.Logger
	cfg := deps.Config
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Error(ctx, "ADMIN_EMAIL and ADMIN_PASSWORD must be set.")
		return
	}

	register := registeruser.New(log, deps.UnitOfWork, deps.PasswordHasher, deps.Now)
	result, err := register.Run(ctx, registeruser.Input{
		Name:       cfg.AdminName,
		Email:      c.NewEmail(cfg.AdminEmail),
		Password:   user.RawPassword(cfg.AdminPassword),
		Role:       user.RoleAdmin,
		Department: "Administration",
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		log.Info(ctx, "Admin user already exists.", logging.Entry("email", cfg.AdminEmail))
		return
	}
	if err != nil {
		logging.Error(ctx, log, err)
		return
	}
	log.Info(ctx, "Admin user created.", logging.Entry("userId", result.User.ID))
}
