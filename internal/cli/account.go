package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/state"
)

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.client.Login(cmd.Context(), email, password)
			if err != nil {
				if msg := errmsg.Notice(err); msg != "" {
					return errors.New(msg)
				}
				return fmt.Errorf("%s: %w", errmsg.OpLogin, err)
			}
			sess := state.NewSession(u.ID, u.Username, u.Email, bool(u.Premium), time.Now())
			if err := e.state.SaveSession(cmd.Context(), sess); err != nil {
				return err
			}
			e.log.Info("signed in", zap.Int64("user", u.ID), zap.Bool("premium", sess.Premium))
			printf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", u.Username, tier(sess.Premium))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.state.ClearSession(cmd.Context()); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Signed out\n")
			return nil
		},
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			s, err := e.state.Session(cmd.Context())
			if err != nil {
				return err
			}
			if s == nil {
				printf(cmd.OutOrStdout(), "Not signed in\n")
				return nil
			}
			printf(cmd.OutOrStdout(), "%s <%s> %s\n", s.Username, s.Email, tier(s.Premium))
			return nil
		},
	}
}

func newRegisterCmd(opts *options) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, email = strings.TrimSpace(username), strings.TrimSpace(email)
			if username == "" || email == "" || password == "" {
				return errors.New("--username, --email and --password are required")
			}
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.client.Register(cmd.Context(), username, email, password)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpRegister, err))
			}
			printf(cmd.OutOrStdout(), "Created account %s, sign in with: tunedeck login --email %s\n", u.Username, email)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newUpgradeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the signed-in account to Premium",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			s, err := requireSession(cmd, e)
			if err != nil {
				return err
			}
			if s.Premium {
				printf(cmd.OutOrStdout(), "Already Premium\n")
				return nil
			}
			u, err := e.client.UpgradeToPremium(cmd.Context(), &api.User{ID: s.UserID, Username: s.Username, Email: s.Email})
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpUpgrade, err))
			}
			s.Premium = bool(u.Premium)
			if err := e.state.SaveSession(cmd.Context(), *s); err != nil {
				return err
			}
			e.log.Info("account upgraded", zap.Int64("user", s.UserID), zap.Bool("premium", s.Premium))
			printf(cmd.OutOrStdout(), "%s is now %s\n", s.Username, tier(s.Premium))
			return nil
		},
	}
}

const minPasswordLen = 8

func newPasswdCmd(opts *options) *cobra.Command {
	var current, next string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if current == "" || next == "" {
				return errors.New("--current and --new are required")
			}
			if len(next) < minPasswordLen {
				return fmt.Errorf("the new password must have at least %d characters", minPasswordLen)
			}
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			s, err := requireSession(cmd, e)
			if err != nil {
				return err
			}
			if err := e.client.ChangePassword(cmd.Context(), s.UserID, current, next); err != nil {
				return errors.New(errmsg.Format(errmsg.OpChangePassword, err))
			}
			e.log.Info("password changed", zap.Int64("user", s.UserID))
			printf(cmd.OutOrStdout(), "Password changed\n")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	return cmd
}

// requireSession returns the stored session or fails when signed out.
func requireSession(cmd *cobra.Command, e *env) (*state.Session, error) {
	s, err := e.state.Session(cmd.Context())
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("not signed in")
	}
	return s, nil
}

func tier(premium bool) string {
	if premium {
		return "Premium"
	}
	return "Free"
}
