// devtoken mints a Supabase-shaped access token signed with the local JWT
// secret, for exercising the API in AUTH_MODE=jwt without a real sign-in.
//
//	devtoken --email ada@example.com --name "Ada" --ttl 2h
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/common/security"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/config"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile  string
		claims   security.SessionClaims
		ttl      time.Duration
		asCookie bool
	)

	flagSet := pflag.NewFlagSet("devtoken", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file holding SUPABASE_JWT_SECRET")
	flagSet.StringVar(&claims.Email, "email", "", "email the token asserts (required)")
	flagSet.StringVar(&claims.UserID, "sub", "", "provider subject id (random when empty)")
	flagSet.StringVar(&claims.FullName, "name", "", "display name placed in user_metadata")
	flagSet.StringVar(&claims.Provider, "provider", "email", "sign-in provider, e.g. email or google")
	flagSet.BoolVar(&claims.EmailVerified, "verified", true, "mark the email as verified")
	flagSet.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	flagSet.BoolVar(&asCookie, "cookie", false, "print a Cookie header instead of the bare token")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if claims.Email == "" {
		return errors.New("--email is required")
	}
	if claims.UserID == "" {
		claims.UserID = uuid.NewString()
	}

	config.Load(envFile)
	if len(config.AppConfig.SupabaseJWTSecret) == 0 {
		return errors.New("SUPABASE_JWT_SECRET is not set")
	}
	security.InitJWT(config.AppConfig.SupabaseJWTSecret)

	token, err := security.GenerateToken(security.TokenAuth, claims, ttl)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	if asCookie {
		fmt.Printf("Cookie: %s=%s\n", config.AppConfig.SessionCookieName, token)
		return nil
	}
	fmt.Println(token)
	return nil
}
