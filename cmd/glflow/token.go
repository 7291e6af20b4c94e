package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/auth"
	glerrors "github.com/glflowdev/glflow/errors"
)

var tokenScopes []string
var tokenTTL time.Duration
var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue and verify serve bearer tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a bearer token for the serve transport",
	Long: `Issue a bearer token for 'glflow serve --http'.

Without flags this generates a static token and prints it once, along
with its hash. Store the hash as serve_token_hash and hand the token to
the client; the token itself is never stored.

With --scopes this instead issues a short-lived JWT signed with the
configured jwt_secret, limited to the named operations (mr:create,
rebase, health).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(tokenScopes) > 0 {
			return issueScopedToken()
		}
		return issueStaticToken()
	},
}

var tokenVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Check a bearer token against the configured credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]
		cfg, err := glflow.LoadConfig()
		if err != nil && !errors.Is(err, glflow.ErrConfigMissing) {
			return err
		}

		// Three dot-separated segments means a JWT.
		if strings.Count(token, ".") == 2 && cfg.JWTSecret != "" {
			return verifyScopedToken(cfg, token)
		}

		if cfg.ServeTokenHash == "" {
			return glerrors.NewConfigIncompleteError([]string{"serve_token_hash"})
		}
		if !auth.VerifyTokenHash(token, cfg.ServeTokenHash) {
			fmt.Println("Token does not match the configured serve token hash.")
			os.Exit(1)
		}
		fmt.Println("Token matches the configured serve token hash.")
		return nil
	},
}

func issueStaticToken() error {
	token, hash, err := auth.GenerateServeToken()
	if err != nil {
		return err
	}

	fmt.Printf("Token: %s\n", token)
	fmt.Printf("Hash:  %s\n", hash)
	fmt.Println()
	fmt.Println("Store the hash with 'glflow config set serve_token_hash <hash>'.")
	fmt.Println("The token is shown only once and cannot be recovered.")
	return nil
}

func issueScopedToken() error {
	cfg, err := glflow.LoadConfig()
	if err != nil && !errors.Is(err, glflow.ErrConfigMissing) {
		return err
	}
	if cfg.JWTSecret == "" {
		return glerrors.NewConfigIncompleteError([]string{"jwt_secret (GLFLOW_JWT_SECRET)"})
	}

	jwtCfg := auth.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         "glflow",
		AccessTokenTTL: tokenTTL,
	}
	token, err := auth.GenerateScopedToken(jwtCfg, tokenSubject, tokenScopes)
	if err != nil {
		return err
	}

	fmt.Printf("Token:   %s\n", token)
	fmt.Printf("Subject: %s\n", tokenSubject)
	fmt.Printf("Scopes:  %s\n", strings.Join(tokenScopes, ", "))
	fmt.Printf("Expires: %s\n", time.Now().Add(jwtCfg.AccessTokenTTL).Format(time.RFC3339))
	return nil
}

func verifyScopedToken(cfg *glflow.Config, token string) error {
	claims, err := auth.ValidateScopedToken(auth.JWTConfig{Secret: []byte(cfg.JWTSecret)}, token)
	if err != nil {
		fmt.Printf("Token is not valid: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Token is valid.")
	fmt.Printf("Subject: %s\n", claims.Subject)
	fmt.Printf("Scopes:  %s\n", strings.Join(claims.Scopes, ", "))
	if claims.ExpiresAt != nil {
		fmt.Printf("Expires: %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return nil
}

func init() {
	tokenIssueCmd.Flags().StringSliceVar(&tokenScopes, "scopes", nil, "Issue a JWT limited to these scopes (mr:create, rebase, health)")
	tokenIssueCmd.Flags().DurationVar(&tokenTTL, "ttl", auth.DefaultAccessTokenTTL, "JWT lifetime (with --scopes)")
	tokenIssueCmd.Flags().StringVar(&tokenSubject, "subject", "agent", "JWT subject (with --scopes)")
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenCmd.AddCommand(tokenVerifyCmd)
	rootCmd.AddCommand(tokenCmd)
}
