package admin

import (
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"example.com/catalog-service/internal/config"
	domuser "example.com/catalog-service/internal/domain/user"
	"example.com/catalog-service/internal/logger"
	"example.com/catalog-service/internal/server"
	useruc "example.com/catalog-service/internal/usecase/user"
)

const (
	nameFlag     = "name"
	emailFlag    = "email"
	passwordFlag = "password"
)

// newCreateFlags returns a fresh flag set per command; cobraflags binds each
// Flag to the first command it was registered on.
func newCreateFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		nameFlag: &cobraflags.StringFlag{
			Name:  nameFlag,
			Value: "Administrator",
			Usage: "Display name of the admin user",
		},
		emailFlag: &cobraflags.StringFlag{
			Name:  emailFlag,
			Value: "",
			Usage: "Login email (required)",
		},
		passwordFlag: &cobraflags.StringFlag{
			Name:  passwordFlag,
			Value: "",
			Usage: "Login password (required)",
		},
	}
}

func NewAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}
	cmd.AddCommand(newCreateCommand())
	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with the ADMIN role",
		Long: `Create a user with the ADMIN role. Tokens issued to this user at
POST /api/v1/auth/login pass the admin gate of the catalog routes.

Example:
  catalog admin create --email admin@example.com --password s3cret!`,
	}
	flags := newCreateFlags()
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return createCommand(cmd, flags)
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func createCommand(cmd *cobra.Command, createFlags map[string]cobraflags.Flag) error {
	email := createFlags[emailFlag].GetString()
	password := createFlags[passwordFlag].GetString()
	if email == "" || password == "" {
		return errors.New("--email and --password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	srv, err := server.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer srv.DB.Close()

	u, err := srv.Users.CreateUser(cmd.Context(), useruc.CreateUserInput{
		Name:     createFlags[nameFlag].GetString(),
		Email:    email,
		Password: password,
		RoleCode: domuser.RoleCodeAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info().Int64("user_id", u.ID).Str("email", u.Email).Msg("admin user created")
	return nil
}
