package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rqa-security/guardhouse/api"
	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/pkg/commands/text"
)

// minPasswordLength is the shortest password accepted by users create.
const minPasswordLength = 8

var (
	usersCreateShort = "Create a dashboard login"

	usersCreateExample = text.Examples(`
		guardhouse users create --email admin@agency.ph --password 'correct horse battery'
	`)

	hashPasswordsShort = "Hash plaintext passwords"

	hashPasswordsLong = text.LongDesc(`
		Replaces every password that is still stored in plaintext with its bcrypt hash
		and prints the emails of the affected users. All users are updated in a single
		transaction.
	`)
)

func (a *app) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Dashboard login commands",
	}

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   usersCreateShort,
		Example: usersCreateExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			return a.runUsersCreate(cmd, strings.TrimSpace(email), password)
		},
	}
	createCmd.Flags().String("email", "", "Login email (required)")
	createCmd.Flags().String("password", "", "Login password (required)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	hashCmd := &cobra.Command{
		Use:   "hash-passwords",
		Short: hashPasswordsShort,
		Long:  hashPasswordsLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHashPasswords(cmd)
		},
	}

	cmd.AddCommand(createCmd, hashCmd)

	return cmd
}

func (a *app) runUsersCreate(cmd *cobra.Command, email, password string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email %q", email)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := api.HashPassword(password)
	if err != nil {
		return err
	}

	return a.withStore(cmd, func(store Store) error {
		user, err := store.Users().Create(cmd.Context(), email, hash)
		if errors.Is(err, datastore.ErrConflict) {
			return fmt.Errorf("user %s already exists", email)
		}
		if err != nil {
			return err
		}
		cmd.Printf("Created user %s (id %d)\n", user.Email, user.UserID)

		return nil
	})
}

func (a *app) runHashPasswords(cmd *cobra.Command) error {
	return a.withStore(cmd, func(store Store) error {
		var rehashed []string
		err := store.WithTransaction(cmd.Context(), func(ctx context.Context, tx datastore.Store) error {
			users, err := tx.Users().PlaintextPasswords(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				hash, err := api.HashPassword(u.PasswordHash)
				if err != nil {
					return err
				}
				if err = tx.Users().UpdatePasswordHash(ctx, u.UserID, hash); err != nil {
					return fmt.Errorf("user %s: %w", u.Email, err)
				}
				rehashed = append(rehashed, u.Email)
			}

			return nil
		})
		if err != nil {
			return err
		}

		a.lggr.Infow("Hashed plaintext passwords", "count", len(rehashed))
		for _, email := range rehashed {
			cmd.Println(email)
		}

		return nil
	})
}
