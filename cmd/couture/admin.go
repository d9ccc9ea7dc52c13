package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/gaayatricouture/couture/internal/auth"
	"github.com/gaayatricouture/couture/internal/model"
	"github.com/gaayatricouture/couture/internal/store"
)

const defaultAdminEmail = "admin@gaayatricouture.local"

var (
	initEmail    string
	userPassword string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and the first admin account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		n, err := st.CountUsers(ctx)
		if err != nil {
			return fmt.Errorf("counting users: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("database already has %d admin account(s); use \"couture user add\"", n)
		}

		password, err := createAdmin(ctx, st, initEmail)
		if err != nil {
			return err
		}
		printAdminCredentials(cmd.OutOrStdout(), initEmail, password)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage admin accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add an admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		existing, err := st.GetUserByEmail(ctx, args[0])
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("admin %s already exists", args[0])
		}

		password, err := choosePassword(userPassword)
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		if _, err := st.CreateUser(ctx, args[0], hash); err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		printAdminCredentials(cmd.OutOrStdout(), args[0], password)
		return nil
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <email>",
	Short: "Reset an admin account's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		user, err := st.GetUserByEmail(ctx, args[0])
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no admin with email %s", args[0])
		}

		password, err := choosePassword(userPassword)
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		if err := st.UpdateUserPassword(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("updating password: %w", err)
		}

		printAdminCredentials(cmd.OutOrStdout(), user.Email, password)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initEmail, "email", "e", defaultAdminEmail, "admin email")
	for _, c := range []*cobra.Command{userAddCmd, userPasswdCmd} {
		c.Flags().StringVarP(&userPassword, "password", "p", "", "password to set (default: generated)")
	}
}

// createAdmin creates an admin account with a generated password.
func createAdmin(ctx context.Context, st store.UserStore, email string) (string, error) {
	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if _, err := st.CreateUser(ctx, email, hash); err != nil {
		return "", fmt.Errorf("creating admin user: %w", err)
	}
	return password, nil
}

// choosePassword validates an explicit password or generates one.
func choosePassword(explicit string) (string, error) {
	if explicit == "" {
		return generatePassword(16)
	}
	if err := model.ValidatePassword(explicit); err != nil {
		return "", err
	}
	return explicit, nil
}

// printAdminCredentials prints the account details to out.
func printAdminCredentials(out io.Writer, email, password string) {
	fmt.Fprintln(out, "Admin account:")
	fmt.Fprintf(out, "  Email:    %s\n", email)
	fmt.Fprintf(out, "  Password: %s\n", password)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Save this password. It cannot be recovered.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
