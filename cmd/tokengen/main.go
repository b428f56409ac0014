// Command tokengen prints a bearer token for calling the user API locally.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"user-management-api/pkg/security"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "tokengen",
		Short: "Mint a development bearer token for the user API",
		Long: `tokengen signs an HS256 JWT that can be sent as
"Authorization: Bearer <token>" to the /users and /api/users routes.
The API only checks that the token decodes, so any secret works.`,
		Args: cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ttl := v.GetDuration("ttl")
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}

			token, err := security.GenerateToken(v.GetString("secret"), v.GetString("subject"), ttl)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().String("subject", "developer", "value of the sub claim")
	cmd.Flags().String("secret", "dev-secret", "HMAC secret (env TOKEN_SECRET)")
	cmd.Flags().Duration("ttl", time.Hour, "token lifetime")

	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindEnv("secret", "TOKEN_SECRET")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
